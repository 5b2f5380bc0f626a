package recognize

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOrchestratorRegexIsExclusive(t *testing.T) {
	regex, err := NewRegexRecognizer(`^ACCEPT$`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	english := NewEnglishClassifier(nil)

	o := NewOrchestrator(WithRegex(regex), WithEnglishClassifier(english))

	// Would pass the English classifier easily, but regex exclusivity
	// means only the regex recognizer runs.
	result := o.Recognize(context.Background(), "the quick brown fox will come back", "")
	if result.IsPlaintext {
		t.Fatalf("expected non-matching text to be rejected when regex is configured")
	}

	result = o.Recognize(context.Background(), "ACCEPT", "")
	if !result.IsPlaintext {
		t.Fatalf("expected exact regex match to be accepted")
	}
}

func TestOrchestratorEarlyExitOnWordlist(t *testing.T) {
	dir := t.TempDir()
	writeWordlist(t, dir, "words.txt", "plaintext")

	wordlist, err := NewWordlistRecognizer([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer wordlist.Close()

	o := NewOrchestrator(WithWordlist(wordlist), WithPatternLibrary(NewPatternLibraryRecognizer()))

	result := o.Recognize(context.Background(), "plaintext", "")
	if result.RecognizerName != "wordlist" {
		t.Fatalf("expected wordlist stage to resolve first, got %s", result.RecognizerName)
	}
}

func TestOrchestratorWordlistExclusiveOnNonMatch(t *testing.T) {
	dir := t.TempDir()
	writeWordlist(t, dir, "words.txt", "plaintext")

	wordlist, err := NewWordlistRecognizer([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer wordlist.Close()

	// A URL the pattern-library recognizer would otherwise happily
	// accept; wordlist exclusivity (spec §4.1 step 2) means it never
	// gets the chance once a wordlist is configured.
	o := NewOrchestrator(WithWordlist(wordlist), WithPatternLibrary(NewPatternLibraryRecognizer()))

	result := o.Recognize(context.Background(), "https://example.com/path", "")
	if result.IsPlaintext {
		t.Fatalf("expected wordlist exclusivity to reject a wordlist miss, not fall through to pattern-library, got %+v", result)
	}
}

func TestOrchestratorCipherSensitivitySelection(t *testing.T) {
	english := NewEnglishClassifier(nil)
	o := NewOrchestrator(WithEnglishClassifier(english), WithCipherNames([]string{"caesar"}))

	marginal := "the zxqwplm jtbfkr wysole"

	cipherResult := o.Recognize(context.Background(), marginal, "caesar")
	encoderResult := o.Recognize(context.Background(), marginal, "base64")

	if cipherResult.IsPlaintext && !encoderResult.IsPlaintext {
		t.Fatalf("cipher (low sensitivity) should never accept where a non-cipher (medium) rejects")
	}
}

func TestOrchestratorSensitivityOverrideTakesPrecedence(t *testing.T) {
	// 2 of 5 tokens match the seed vocabulary (ratio 0.4): above the High
	// threshold (0.3) but below the Low threshold (0.6) caesar would
	// otherwise get as a cipher.
	marginal := "the and zzqq wwbb xxyy"

	withoutOverride := NewOrchestrator(
		WithEnglishClassifier(NewEnglishClassifier(nil)),
		WithCipherNames([]string{"caesar"}),
	)
	withOverride := NewOrchestrator(
		WithEnglishClassifier(NewEnglishClassifier(nil)),
		WithCipherNames([]string{"caesar"}),
		WithSensitivityOverrides(map[string]Sensitivity{"caesar": SensitivityHigh}),
	)

	if result := withoutOverride.Recognize(context.Background(), marginal, "caesar"); result.IsPlaintext {
		t.Fatalf("expected the default cipher sensitivity to reject a 0.4 match ratio")
	}
	if result := withOverride.Recognize(context.Background(), marginal, "caesar"); !result.IsPlaintext {
		t.Fatalf("expected the high-sensitivity override to accept a 0.4 match ratio")
	}
}

func TestOrchestratorFallsBackToInteractive(t *testing.T) {
	prompter := &fakePrompter{accept: true}
	interactive := NewInteractiveRecognizer(prompter)
	o := NewOrchestrator(WithInteractive(interactive))

	result := o.Recognize(context.Background(), "ambiguous candidate", "")
	if !result.IsPlaintext {
		t.Fatalf("expected interactive fallback to accept")
	}
	if prompter.calls != 1 {
		t.Fatalf("expected exactly one interactive prompt")
	}
}
