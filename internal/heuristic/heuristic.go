// Package heuristic implements the cost and heuristic model (spec §4.2): a
// composite pathCost over a chain prefix, a composite heuristic over a
// candidate output's text, and rankCandidates for ordering a node's pending
// transformations before expansion. All functions here are pure: they take
// a chain/text/descriptor and return a float, with no hidden state beyond
// the explicitly-passed PriorStats and optional CipherHinter.
package heuristic

import (
	"sort"

	"github.com/standardbeagle/decodex/internal/textutil"
	"github.com/standardbeagle/decodex/internal/types"
)

// Default tuning constants (spec §4.2, §6 configuration contract defaults).
const (
	EncoderFreshCost      = 0.7
	EncoderRepeatCost     = 0.2
	CipherBaseCost        = 2.0
	ContinuationPenalty   = 0.05
	DefaultDepthPenalty   = 0.5
	DefaultDecoderBatch   = 5
	DefaultParallelBatch  = 10
	DefaultInitialPrune   = 10000
	PruneDecayPerDepth    = 1000
	PruneFloor            = 1000
)

// DescriptorLookup resolves a transformation name to its descriptor. The
// heuristic model never owns the transformation registry; it is handed a
// lookup function so it stays decoupled from the transform package.
type DescriptorLookup func(name string) (types.TransformationDescriptor, bool)

// CipherHinter is the optional statistical cipher-identification
// sub-module (spec §4.2 component 4). Implementations return, for a given
// text, the name of their top-ranked cipher guess and a confidence in
// [0, 1]. A nil CipherHinter disables this heuristic component entirely.
type CipherHinter interface {
	TopCipher(text string) (name string, confidence float64)
}

// Model bundles the configuration and collaborators the cost/heuristic
// functions need: the transformation descriptor lookup, the depth penalty,
// the shared success-rate priors, and an optional cipher hinter.
type Model struct {
	Descriptors  DescriptorLookup
	DepthPenalty float64
	Priors       *PriorStats
	CipherHint   CipherHinter
}

// NewModel constructs a Model with the given descriptor lookup and depth
// penalty, a fresh PriorStats table, and no cipher hinter.
func NewModel(descriptors DescriptorLookup, depthPenalty float64) *Model {
	if depthPenalty < 0 {
		depthPenalty = DefaultDepthPenalty
	}
	return &Model{
		Descriptors:  descriptors,
		DepthPenalty: depthPenalty,
		Priors:       NewPriorStats(),
	}
}

func (m *Model) isEncoder(name string) bool {
	d, ok := m.Descriptors(name)
	return ok && d.IsEncoder()
}

// PathCost computes g(chain) per spec §4.2: per-step encoder
// fresh/repeat cost, escalating cipher cost, plus a flat depth penalty.
func (m *Model) PathCost(chain types.Chain) float64 {
	var cost float64
	cipherIndex := 0

	for i, step := range chain {
		if m.isEncoder(step.TransformationName) {
			if i > 0 && chain[i-1].TransformationName == step.TransformationName {
				cost += EncoderRepeatCost
			} else {
				cost += EncoderFreshCost
			}
			continue
		}
		cipherIndex++
		cost += CipherBaseCost * float64(cipherIndex)
	}

	cost += m.DepthPenalty * float64(len(chain))
	return cost
}

// Heuristic computes h(text, chain) per spec §4.2: normalized entropy,
// string quality, a success-rate prior reduction, and an optional
// structured-cipher hint. Always finite and non-negative.
func (m *Model) Heuristic(text string, chain types.Chain) float64 {
	entropy := textutil.Entropy(text)
	quality := textutil.Quality(text)

	// Base estimate: high entropy and low quality both push the estimated
	// remaining distance to plaintext up. Quality contributes inversely
	// (1 - quality): a clean, printable string is "closer" to recognizable
	// plaintext than one full of control characters.
	h := entropy*0.7 + (1-quality)*0.3

	if last := chain.LastTransformationName(); last != "" {
		h *= m.Priors.Factor(last)
	}

	if m.CipherHint != nil {
		if hintName, confidence := m.CipherHint.TopCipher(text); hintName != "" && confidence > 0 {
			// The hint only helps when the most-likely next candidate
			// matches the statistical guess; rankCandidates applies that
			// match test per-candidate, so here we only pre-discount by
			// the hint's own confidence, capped so a spurious 100%-
			// confidence guess can never zero out h entirely.
			discount := confidence
			if discount > 0.5 {
				discount = 0.5
			}
			h *= 1 - discount
		}
	}

	if h < 0 {
		h = 0
	}
	return h
}

// HeuristicForCandidate returns the heuristic estimate that would apply if
// candidateName were the next transformation applied to text — identical to
// Heuristic, except the optional cipher hint also checks whether
// candidateName matches the hinter's top guess, giving a further discount
// when it does (spec §4.2 component 4: "... when the candidate next
// transformation matches that cipher").
func (m *Model) HeuristicForCandidate(text string, chain types.Chain, candidateName string) float64 {
	h := m.Heuristic(text, chain)
	if m.CipherHint == nil {
		return h
	}
	if hintName, confidence := m.CipherHint.TopCipher(text); hintName != "" && hintName == candidateName {
		h *= 1 - confidence*0.5
	}
	if h < 0 {
		h = 0
	}
	return h
}

// TotalCostForCandidate estimates f = g + h as if candidateName were applied
// next to produce candidateOutput, without constructing a node — used by
// RankCandidates to order pending transformations before expansion.
func (m *Model) TotalCostForCandidate(chain types.Chain, candidateName, candidateOutput string) float64 {
	stepCost := m.stepCost(chain, candidateName)
	g := m.PathCost(chain) + stepCost + m.DepthPenalty
	h := m.HeuristicForCandidate(candidateOutput, chain, candidateName)
	return g + h
}

// stepCost estimates the marginal path cost contribution of applying name
// next, without materializing the extended chain.
func (m *Model) stepCost(chain types.Chain, name string) float64 {
	if m.isEncoder(name) {
		if last := chain.LastTransformationName(); last == name {
			return EncoderRepeatCost
		}
		return EncoderFreshCost
	}
	cipherIndex := chain.CipherCount(func(n string) bool { return !m.isEncoder(n) }) + 1
	return CipherBaseCost * float64(cipherIndex)
}

// RankCandidates orders candidate transformation names ascending by their
// estimated total cost were each applied next to text. previews supplies a
// representative output string per candidate name (e.g. the transformation's
// own popularity-weighted guess, or text unchanged when no preview is
// available) so the heuristic component can be evaluated without actually
// running the transformation.
func (m *Model) RankCandidates(text string, chain types.Chain, candidates []string, previews map[string]string) []string {
	ranked := make([]string, len(candidates))
	copy(ranked, candidates)

	cost := make(map[string]float64, len(ranked))
	for _, name := range ranked {
		preview := text
		if p, ok := previews[name]; ok {
			preview = p
		}
		cost[name] = m.TotalCostForCandidate(chain, name, preview)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := cost[ranked[i]], cost[ranked[j]]
		if ci != cj {
			return ci < cj
		}
		// Stable tiebreak: higher popularity first.
		di, _ := m.Descriptors(ranked[i])
		dj, _ := m.Descriptors(ranked[j])
		return di.Popularity > dj.Popularity
	})
	return ranked
}
