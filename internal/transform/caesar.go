package transform

import (
	"context"
	"strconv"
)

// caesarTransform tries every non-trivial shift of a Caesar cipher, each as
// an independent Attempt (spec §4.4.c: "a Caesar cipher may return 25
// shifts; each output is processed independently").
type caesarTransform struct {
	baseTransformation
}

// NewCaesar returns the Caesar-shift cipher transformation.
func NewCaesar() Transformation {
	return &caesarTransform{
		baseTransformation: newBase("caesar", 0.7, "Caesar cipher (all 25 shifts)", "https://en.wikipedia.org/wiki/Caesar_cipher"),
	}
}

func (t *caesarTransform) Apply(ctx context.Context, text string, recognizer Recognizer) ([]Attempt, error) {
	attempts := make([]Attempt, 0, 25)
	for shift := 1; shift <= 25; shift++ {
		// Key is the encryption shift this attempt undoes: rotating forward
		// by 26-shift recovers text that was shifted forward by shift.
		output := shiftLetters(text, 26-shift)
		result := recognizer.Recognize(ctx, output, t.Name())
		attempts = append(attempts, Attempt{
			Output:     output,
			Key:        strconv.Itoa(shift),
			Recognized: result,
			Success:    result.IsPlaintext,
		})
	}
	return attempts, nil
}

// shiftLetters rotates ASCII letters by shift, leaving all other scalars
// (including multi-byte Unicode) untouched.
func shiftLetters(text string, shift int) string {
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
