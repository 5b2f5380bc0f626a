package search

import (
	"context"
	"testing"
	"time"

	"github.com/standardbeagle/decodex/internal/recognize"
	"github.com/standardbeagle/decodex/internal/transform"
)

// shiftForTest rotates ASCII letters by shift, mirroring the unexported
// helper transform.shiftLetters uses internally — duplicated here rather
// than exported purely for a test's convenience.
func shiftForTest(text string, shift int) string {
	runes := []rune(text)
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z':
			runes[i] = 'a' + (r-'a'+rune(shift))%26
		case r >= 'A' && r <= 'Z':
			runes[i] = 'A' + (r-'A'+rune(shift))%26
		}
	}
	return string(runes)
}

// TestEngineThreadsProducingTransformationToOrchestrator exercises the full
// wiring from a transformation's Apply call through to
// recognize.Orchestrator's cipher-sensitivity selection (spec §4.1's
// sensitivity policy, spec §8 scenario S3). A candidate at a 0.5 match
// ratio is accepted under the default/medium threshold (0.45) but rejected
// under the cipher/low threshold (0.6); if the engine always told the
// orchestrator the producing transformation was "" (the bug this guards
// against), caesar's output would wrongly get the medium threshold and
// this candidate would be accepted as plaintext.
func TestEngineThreadsProducingTransformationToOrchestrator(t *testing.T) {
	registry := transform.NewRegistry()
	registry.Register(transform.NewCaesar())
	model := testModel(registry)

	orchestrator := recognize.NewOrchestrator(
		recognize.WithEnglishClassifier(recognize.NewEnglishClassifier(nil)),
		recognize.WithCipherNames([]string{"caesar"}),
	)

	engine := New(Config{
		Mode:       ModeCollectAll,
		Deadline:   300 * time.Millisecond,
		Registry:   registry,
		Model:      model,
		Recognizer: orchestrator,
	})

	plaintext := "the zzqq and wwbb" // 2 of 4 tokens match the seed vocabulary: ratio 0.5
	ciphertext := shiftForTest(plaintext, 3)

	results, _, err := engine.Run(context.Background(), ciphertext)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		if r.Text == plaintext {
			t.Fatalf("expected caesar's cipher (low) sensitivity to reject a 0.5 match ratio, but got %+v", r)
		}
	}
}
