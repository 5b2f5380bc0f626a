// Package recognize implements the recognition orchestrator (spec §4.1):
// regex, wordlist, pattern-library, and English-classifier recognizers
// composed in a fixed, early-exit order, plus optional interactive
// confirmation arbitrated across parallel workers.
package recognize

import (
	"context"

	"github.com/standardbeagle/decodex/internal/types"
)

// Sensitivity is the discrete dial on the English classifier trading false
// positives for false negatives (spec glossary).
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// Recognizer is the single-method interface every individual stage of the
// stack implements (regex, wordlist, pattern-library, English classifier,
// interactive). Only Orchestrator itself satisfies transform.Recognizer,
// since that interface also carries the producing-transformation name the
// stages here don't need.
type Recognizer interface {
	Recognize(ctx context.Context, text string) types.RecognitionResult
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, text string) types.RecognitionResult

func (f RecognizerFunc) Recognize(ctx context.Context, text string) types.RecognitionResult {
	return f(ctx, text)
}

// PreRecognizer is the fast-path check run once, before search begins
// (spec §4.1: isPreRecognizedPlaintext).
type PreRecognizer interface {
	IsPreRecognizedPlaintext(ctx context.Context, text string) bool
}
