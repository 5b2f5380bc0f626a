package heuristic

import (
	"testing"

	"github.com/standardbeagle/decodex/internal/types"
)

func descriptorsFixture() DescriptorLookup {
	base64 := types.NewTransformationDescriptor("base64", 0.9, "", "", types.IsEncoderTag)
	caesar := types.NewTransformationDescriptor("caesar", 0.6, "", "")
	return func(name string) (types.TransformationDescriptor, bool) {
		switch name {
		case "base64":
			return base64, true
		case "caesar":
			return caesar, true
		}
		return types.TransformationDescriptor{}, false
	}
}

func chainOfRepeatedEncoder(name string, n int) types.Chain {
	chain := make(types.Chain, 0, n)
	for i := 0; i < n; i++ {
		chain = append(chain, types.TransformationStep{TransformationName: name})
	}
	return chain
}

func TestPathCostEncoderRepetitionMonotone(t *testing.T) {
	m := NewModel(descriptorsFixture(), 0.5)

	var prev float64 = -1
	for n := 1; n <= 5; n++ {
		chain := chainOfRepeatedEncoder("base64", n)
		cost := m.PathCost(chain)
		if cost < prev {
			t.Fatalf("expected pathCost to be monotone non-decreasing in n, got %f after %f at n=%d", cost, prev, n)
		}
		prev = cost

		expectedEncoderPortion := EncoderFreshCost + EncoderRepeatCost*float64(n-1)
		expectedDepth := m.DepthPenalty * float64(n)
		expected := expectedEncoderPortion + expectedDepth
		if diff := cost - expected; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("n=%d: expected pathCost ~%f, got %f", n, expected, cost)
		}
	}
}

func TestPathCostCipherEscalation(t *testing.T) {
	m := NewModel(descriptorsFixture(), 0)

	for k := 1; k <= 4; k++ {
		chain := chainOfRepeatedEncoder("caesar", k)
		cost := m.PathCost(chain)

		var expectedCipherCost float64
		for i := 1; i <= k; i++ {
			expectedCipherCost += CipherBaseCost * float64(i)
		}
		if diff := cost - expectedCipherCost; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("k=%d: expected cipher-escalated cost %f, got %f", k, expectedCipherCost, cost)
		}
	}
}

func TestHeuristicIsFiniteAndNonNegative(t *testing.T) {
	m := NewModel(descriptorsFixture(), 0.5)

	cases := []string{
		"",
		"Hello, World!",
		"SGVsbG8gV29ybGQ=",
		string([]byte{0x00, 0x01, 0x02, 0xff, 0xfe}),
	}
	for _, text := range cases {
		h := m.Heuristic(text, nil)
		if h < 0 {
			t.Fatalf("heuristic must be non-negative, got %f for %q", h, text)
		}
	}
}

func TestHeuristicLowEntropyTextScoresLowerThanHighEntropyText(t *testing.T) {
	m := NewModel(descriptorsFixture(), 0.5)

	plaintext := "the quick brown fox jumps over the lazy dog"
	randomish := "x7Qp#2@kZ!9mW&Lq0*VbN3$RtYx8Uc%Fz"

	hPlain := m.Heuristic(plaintext, nil)
	hRandom := m.Heuristic(randomish, nil)

	if hPlain >= hRandom {
		t.Fatalf("expected plaintext heuristic (%f) to be lower than high-entropy text heuristic (%f)", hPlain, hRandom)
	}
}

func TestRankCandidatesOrdersAscendingByEstimatedCost(t *testing.T) {
	m := NewModel(descriptorsFixture(), 0.5)

	ranked := m.RankCandidates("SGVsbG8=", nil, []string{"caesar", "base64"}, nil)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked candidates, got %d", len(ranked))
	}
	if ranked[0] != "base64" {
		t.Fatalf("expected base64 (fresh encoder) to rank before caesar (first cipher) at depth 0, got order %v", ranked)
	}
}

func TestSuccessRatePriorReducesHeuristicModestly(t *testing.T) {
	m := NewModel(descriptorsFixture(), 0.5)
	chain := types.Chain{{TransformationName: "base64"}}

	before := m.Heuristic("some text here", chain)
	for i := 0; i < 50; i++ {
		m.Priors.Record("base64", true)
	}
	after := m.Heuristic("some text here", chain)

	if after > before {
		t.Fatalf("expected a strong success prior to reduce heuristic, got before=%f after=%f", before, after)
	}
	minAllowed := before * minPriorFactor
	if after < minAllowed-1e-9 {
		t.Fatalf("expected reduction to be floored at factor %f, got after=%f (floor=%f)", minPriorFactor, after, minAllowed)
	}
}
