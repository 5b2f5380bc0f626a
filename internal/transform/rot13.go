package transform

import "context"

// rot13Transform is the fixed 13-shift Caesar variant, self-inverse
// (applying it twice yields the original text), hence ReciprocalTag.
type rot13Transform struct {
	baseTransformation
}

// NewROT13 returns the ROT13 transformation.
func NewROT13() Transformation {
	return &rot13Transform{
		baseTransformation: newBase("rot13", 0.85, "ROT13 (fixed Caesar shift 13)", "https://en.wikipedia.org/wiki/ROT13", ReciprocalTag),
	}
}

func (t *rot13Transform) Apply(ctx context.Context, text string, recognizer Recognizer) ([]Attempt, error) {
	output := shiftLetters(text, 13)
	result := recognizer.Recognize(ctx, output, t.Name())
	return []Attempt{{
		Output:     output,
		Key:        "13",
		Recognized: result,
		Success:    result.IsPlaintext,
	}}, nil
}
