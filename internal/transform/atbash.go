package transform

import "context"

// atbashTransform reverses the alphabet (a<->z, b<->y, ...); self-inverse.
type atbashTransform struct {
	baseTransformation
}

// NewAtbash returns the Atbash cipher transformation.
func NewAtbash() Transformation {
	return &atbashTransform{
		baseTransformation: newBase("atbash", 0.4, "Atbash cipher (reversed alphabet)", "https://en.wikipedia.org/wiki/Atbash", ReciprocalTag),
	}
}

func (t *atbashTransform) Apply(ctx context.Context, text string, recognizer Recognizer) ([]Attempt, error) {
	runes := []rune(text)
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z':
			runes[i] = 'z' - (r - 'a')
		case r >= 'A' && r <= 'Z':
			runes[i] = 'Z' - (r - 'A')
		}
	}
	output := string(runes)
	result := recognizer.Recognize(ctx, output, t.Name())
	return []Attempt{{
		Output:     output,
		Recognized: result,
		Success:    result.IsPlaintext,
	}}, nil
}
