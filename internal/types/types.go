// Package types holds the immutable data model shared by the search engine,
// heuristic model, frontier, and recognition orchestrator: transformation
// descriptors, chain steps, chains, and search nodes.
package types

import (
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// IsEncoderTag is the distinguished kind tag that classifies a transformation
// as an encoder. Its absence classifies the transformation as a cipher.
const IsEncoderTag = "is-encoder"

// TransformationDescriptor is the immutable, process-long metadata record
// for a registered transformation.
type TransformationDescriptor struct {
	Name        string
	KindTags    map[string]struct{}
	Popularity  float64
	Description string
	Link        string
}

// IsEncoder reports whether the descriptor carries the distinguished
// is-encoder tag.
func (d TransformationDescriptor) IsEncoder() bool {
	_, ok := d.KindTags[IsEncoderTag]
	return ok
}

// HasTag reports whether the descriptor carries the given kind tag.
func (d TransformationDescriptor) HasTag(tag string) bool {
	_, ok := d.KindTags[tag]
	return ok
}

// NewTransformationDescriptor builds a descriptor from a name and a list of
// kind tags.
func NewTransformationDescriptor(name string, popularity float64, description, link string, tags ...string) TransformationDescriptor {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return TransformationDescriptor{
		Name:        name,
		KindTags:    set,
		Popularity:  popularity,
		Description: description,
		Link:        link,
	}
}

// TransformationStep is an immutable record of one applied transformation:
// the text it consumed, the text it produced, and whether a recognizer
// confirmed the output as plaintext.
type TransformationStep struct {
	TransformationName string
	InputText          string
	OutputText         string
	Key                string // optional, e.g. a Caesar shift
	RecognizerName     string // set iff Success
	Success            bool
}

// Clone returns a value copy of the step, safe to embed in a result chain
// independent of the node that produced it.
func (s TransformationStep) Clone() TransformationStep {
	return s
}

// Chain is the ordered sequence of steps from the original input to the
// current text. len(Chain) is the node's depth.
type Chain []TransformationStep

// Clone returns an independent copy of the chain, safe to extend without
// aliasing the parent's backing array.
func (c Chain) Clone() Chain {
	out := make(Chain, len(c))
	copy(out, c)
	return out
}

// Extend returns a new chain consisting of c followed by step, never
// mutating c's backing array (siblings produced from the same parent node
// must not see each other's appended step).
func (c Chain) Extend(step TransformationStep) Chain {
	out := make(Chain, len(c), len(c)+1)
	copy(out, c)
	return append(out, step)
}

// Consistent reports whether adjacent steps satisfy
// step[i].OutputText == step[i+1].InputText, and that the chain actually
// starts at original and ends at final (an empty chain is consistent only
// when original == final).
func (c Chain) Consistent(original, final string) bool {
	if len(c) == 0 {
		return original == final
	}
	if c[0].InputText != original {
		return false
	}
	if c[len(c)-1].OutputText != final {
		return false
	}
	for i := 0; i+1 < len(c); i++ {
		if c[i].OutputText != c[i+1].InputText {
			return false
		}
	}
	return true
}

// CipherCount returns how many steps in the chain applied a cipher (a
// transformation whose descriptor lacks the is-encoder tag). The caller
// supplies a lookup since Chain itself carries only transformation names.
func (c Chain) CipherCount(isCipher func(name string) bool) int {
	n := 0
	for _, step := range c {
		if isCipher(step.TransformationName) {
			n++
		}
	}
	return n
}

// LastTransformationName returns the name of the last applied
// transformation, or "" for an empty chain.
func (c Chain) LastTransformationName() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1].TransformationName
}

// RecognitionResult is returned by every recognizer in the stack.
type RecognitionResult struct {
	IsPlaintext    bool
	RecognizerName string
	Description    string
	MatchedSpan    string // optional, the substring that triggered the match
}

// SearchNode is a node in the best-first search frontier. Ownership: created
// on expansion (or as the initial node), owned by the frontier until popped,
// and never mutated in place after being pushed — children are always new
// values.
type SearchNode struct {
	Text                   string
	FastHash               uint64 // xxhash64(Text), precomputed once at construction
	Chain                  Chain
	Depth                  int
	PathCost               float64
	Heuristic              float64
	PendingTransformations []string // names, in ranked order; front is tried first
	IsResult               bool
	insertionSeq           uint64 // FIFO tiebreak, set by the frontier on push
}

// NewSearchNode constructs a node, computing its FastHash once.
func NewSearchNode(text string, chain Chain, depth int, pathCost, heuristic float64, pending []string, isResult bool) SearchNode {
	return SearchNode{
		Text:                   text,
		FastHash:               FastHashString(text),
		Chain:                  chain,
		Depth:                  depth,
		PathCost:               pathCost,
		Heuristic:              heuristic,
		PendingTransformations: pending,
		IsResult:               isResult,
	}
}

// TotalCost is f = g + h.
func (n SearchNode) TotalCost() float64 {
	return n.PathCost + n.Heuristic
}

// InsertionSeq returns the FIFO tiebreak sequence assigned at push time.
func (n SearchNode) InsertionSeq() uint64 { return n.insertionSeq }

// WithInsertionSeq returns a copy of n stamped with the given sequence
// number; called exactly once, by the frontier, at push time.
func (n SearchNode) WithInsertionSeq(seq uint64) SearchNode {
	n.insertionSeq = seq
	return n
}

// FastHashString computes the xxhash64 fingerprint of a UTF-8 string. Used
// as a cheap pre-filter in the visited set before an authoritative string
// comparison — never used as a substitute for exact equality, since xxhash
// collisions are possible.
func FastHashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// ScalarLen returns the length of s in Unicode scalar values (runes), never
// byte length. All search/heuristic logic that measures "length" must call
// this rather than len(s).
func ScalarLen(s string) int {
	return utf8.RuneCountInString(s)
}

// CostBreakdown is a diagnostic-only record of how a node's cost was
// derived; never required for correctness, only for introspection/logging.
type CostBreakdown struct {
	EncoderCost      float64
	CipherCost       float64
	DepthPenaltyCost float64
	EntropyComponent float64
	QualityComponent float64
	PriorComponent   float64
	CipherHintDelta  float64
	ComputedAt       time.Time
}
