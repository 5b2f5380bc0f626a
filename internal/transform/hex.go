package transform

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/standardbeagle/decodex/internal/types"
)

// hexTransform decodes hexadecimal-encoded text.
type hexTransform struct {
	baseTransformation
}

// NewHex returns the hex decoder transformation.
func NewHex() Transformation {
	return &hexTransform{
		baseTransformation: newBase("hex", 0.8, "Hexadecimal decoding", "", types.IsEncoderTag),
	}
}

func (t *hexTransform) Apply(ctx context.Context, text string, recognizer Recognizer) ([]Attempt, error) {
	clean := strings.TrimSpace(text)
	clean = strings.ReplaceAll(clean, " ", "")
	decoded, err := hex.DecodeString(clean)
	if err != nil {
		return nil, err
	}
	output := string(decoded)
	result := recognizer.Recognize(ctx, output, t.Name())
	return []Attempt{{
		Output:     output,
		Recognized: result,
		Success:    result.IsPlaintext,
	}}, nil
}
