// Package transform defines the Transformation adapter interface (spec §6)
// and a registry of concrete variants keyed by stable name — "tagged
// enumerations of concrete variants backed by a registry keyed by stable
// string name, not open inheritance hierarchies" (spec §9). Individual
// transformation bodies are explicitly out of scope for the engine itself
// (spec §1); this package ships a small reference set so the search engine
// and its tests are concretely exercisable.
package transform

import (
	"context"
	"errors"

	"github.com/standardbeagle/decodex/internal/types"
)

// errNoChange signals that a transformation's decode produced output
// identical to its input — not a useful candidate, and a guard against the
// search looping on an identity transform.
var errNoChange = errors.New("transform: decode produced no change")

// ReciprocalTag marks a transformation as self-inverse (spec glossary:
// "Reciprocal"). The engine's acceptance filter (§4.3) rejects re-applying
// a reciprocal transformation immediately after itself.
const ReciprocalTag = "reciprocal"

// Recognizer is the minimal surface a Transformation needs from the
// recognition orchestrator: text in, the producing transformation's own
// name (for sensitivity selection, spec §4.1), result out. The
// orchestrator (package recognize) implements this.
type Recognizer interface {
	Recognize(ctx context.Context, text, producingTransformation string) types.RecognitionResult
}

// Attempt is one candidate output produced by a transformation, together
// with the recognizer's verdict on that specific output. Spec §4.4.c: "The
// transformation may return multiple candidate outputs... each output is
// processed independently" — Attempt is the per-output unit that
// independence operates over.
type Attempt struct {
	Output     string
	Key        string
	Recognized types.RecognitionResult
	Success    bool
}

// Transformation is the opaque adapter interface from spec §6. Apply
// receives the current text and the recognizer and returns zero or more
// attempts, one per distinct candidate output it produces.
type Transformation interface {
	Name() string
	Tags() map[string]struct{}
	Popularity() float64
	Description() string
	Link() string
	Apply(ctx context.Context, text string, recognizer Recognizer) ([]Attempt, error)
}

// IsEncoder reports whether t carries the distinguished is-encoder tag.
func IsEncoder(t Transformation) bool {
	_, ok := t.Tags()[types.IsEncoderTag]
	return ok
}

// IsReciprocal reports whether t is self-inverse.
func IsReciprocal(t Transformation) bool {
	_, ok := t.Tags()[ReciprocalTag]
	return ok
}

// Descriptor converts a Transformation's static metadata into the
// process-long TransformationDescriptor record (spec §3).
func Descriptor(t Transformation) types.TransformationDescriptor {
	tags := make([]string, 0, len(t.Tags()))
	for tag := range t.Tags() {
		tags = append(tags, tag)
	}
	return types.NewTransformationDescriptor(t.Name(), t.Popularity(), t.Description(), t.Link(), tags...)
}

// baseTransformation holds the static metadata shared by every concrete
// transformation in this package, so each variant only implements Apply.
type baseTransformation struct {
	name        string
	tags        map[string]struct{}
	popularity  float64
	description string
	link        string
}

func newBase(name string, popularity float64, description, link string, tags ...string) baseTransformation {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return baseTransformation{name: name, tags: set, popularity: popularity, description: description, link: link}
}

func (b baseTransformation) Name() string                { return b.name }
func (b baseTransformation) Tags() map[string]struct{}    { return b.tags }
func (b baseTransformation) Popularity() float64          { return b.popularity }
func (b baseTransformation) Description() string          { return b.description }
func (b baseTransformation) Link() string                 { return b.link }
