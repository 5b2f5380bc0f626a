package transform

import (
	"context"
	"net/url"

	"github.com/standardbeagle/decodex/internal/types"
)

// urlEncodingTransform decodes percent-encoded text (net/url is the
// standard library's idiomatic home for this — see DESIGN.md).
type urlEncodingTransform struct {
	baseTransformation
}

// NewURLEncoding returns the URL percent-decoding transformation.
func NewURLEncoding() Transformation {
	return &urlEncodingTransform{
		baseTransformation: newBase("url-encoding", 0.5, "URL percent-decoding", "", types.IsEncoderTag),
	}
}

func (t *urlEncodingTransform) Apply(ctx context.Context, text string, recognizer Recognizer) ([]Attempt, error) {
	decoded, err := url.QueryUnescape(text)
	if err != nil {
		return nil, err
	}
	if decoded == text {
		// No actual percent-escapes present; treat as a non-candidate
		// rather than letting an identity transform loop the search.
		return nil, errNoChange
	}
	result := recognizer.Recognize(ctx, decoded, t.Name())
	return []Attempt{{
		Output:     decoded,
		Recognized: result,
		Success:    result.IsPlaintext,
	}}, nil
}
