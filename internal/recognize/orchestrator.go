package recognize

import (
	"context"

	"github.com/standardbeagle/decodex/internal/transform"
	"github.com/standardbeagle/decodex/internal/types"
)

// Orchestrator composes the recognizer stack in the fixed, early-exit
// order spec §4.1 requires: regex (if configured, exclusively) → wordlist
// → pattern-library → English classifier → optional interactive
// confirmation. It implements transform.Recognizer so transformations can
// call it directly without knowing about the stack underneath.
type Orchestrator struct {
	regex       *RegexRecognizer
	wordlist    *WordlistRecognizer
	patternLib  *PatternLibraryRecognizer
	english     *EnglishClassifier
	interactive *InteractiveRecognizer

	cipherSensitivity  Sensitivity
	defaultSensitivity Sensitivity
	cipherNames        map[string]struct{}
	overrides          map[string]Sensitivity
}

var _ transform.Recognizer = (*Orchestrator)(nil)

// Option configures an Orchestrator at construction time.
type Option func(*Orchestrator)

func WithRegex(r *RegexRecognizer) Option           { return func(o *Orchestrator) { o.regex = r } }
func WithWordlist(w *WordlistRecognizer) Option     { return func(o *Orchestrator) { o.wordlist = w } }
func WithPatternLibrary(p *PatternLibraryRecognizer) Option {
	return func(o *Orchestrator) { o.patternLib = p }
}
func WithEnglishClassifier(e *EnglishClassifier) Option {
	return func(o *Orchestrator) { o.english = e }
}
func WithInteractive(i *InteractiveRecognizer) Option {
	return func(o *Orchestrator) { o.interactive = i }
}

// WithCipherNames marks which transformation names are ciphers for the
// purpose of sensitivity selection (spec §4.1: ciphers get low
// sensitivity, everything else gets medium, per the English classifier's
// higher false-positive rate on near-miss cipher output).
func WithCipherNames(names []string) Option {
	return func(o *Orchestrator) {
		set := make(map[string]struct{}, len(names))
		for _, n := range names {
			set[n] = struct{}{}
		}
		o.cipherNames = set
	}
}

// WithSensitivityOverrides sets a per-transformation-name sensitivity that
// takes precedence over the cipher/non-cipher default (spec §6 config
// contract: englishSensitivityOverrides), e.g. forcing "high" for a
// specific encoder known to produce noisy near-English output.
func WithSensitivityOverrides(overrides map[string]Sensitivity) Option {
	return func(o *Orchestrator) { o.overrides = overrides }
}

// NewOrchestrator builds the stack from the given options.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cipherSensitivity:  SensitivityLow,
		defaultSensitivity: SensitivityMedium,
		cipherNames:        make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Recognize runs the fixed-order stack against text, choosing
// English-classifier sensitivity based on whether producingTransformation
// (the name of the transformation that produced text; "" for the original
// input) is a cipher. Recognize satisfies transform.Recognizer directly.
func (o *Orchestrator) Recognize(ctx context.Context, text, producingTransformation string) types.RecognitionResult {
	if o.regex != nil {
		// Spec §4.1 step 1: when a regex is configured, it is the only
		// recognizer that runs — no other stage gets a chance.
		return o.regex.Recognize(ctx, text)
	}

	if o.wordlist != nil {
		// Spec §4.1 step 2: when a wordlist is configured, it is likewise
		// the only recognizer that runs, win or lose.
		return o.wordlist.Recognize(ctx, text)
	}

	if o.patternLib != nil {
		if result := o.patternLib.Recognize(ctx, text); result.IsPlaintext {
			return result
		}
	}

	if o.english != nil {
		sensitivity := o.defaultSensitivity
		if _, isCipher := o.cipherNames[producingTransformation]; isCipher {
			sensitivity = o.cipherSensitivity
		}
		if override, ok := o.overrides[producingTransformation]; ok {
			sensitivity = override
		}
		if result := o.english.RecognizeAt(ctx, text, sensitivity); result.IsPlaintext {
			return result
		}
	}

	if o.interactive != nil {
		return o.interactive.RecognizeWithDescription(ctx, text, "no automatic recognizer accepted this candidate")
	}

	return types.RecognitionResult{}
}
