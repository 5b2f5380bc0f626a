package recognize

import (
	"context"
	"fmt"

	"github.com/coregx/coregex"

	internalerrors "github.com/standardbeagle/decodex/internal/errors"
	"github.com/standardbeagle/decodex/internal/types"
)

// RegexRecognizer matches a single user-configured pattern. Per spec §4.1
// step 1: "If regex is configured, no other recognizers run" — the
// orchestrator enforces that exclusivity, not this type.
//
// Built on coregx/coregex rather than stdlib regexp: coregx guarantees
// O(m*n) worst-case matching (ReDoS-safe) via its NFA/lazy-DFA engines,
// which matters here because a recognizer runs on every candidate output
// the search produces, often thousands per search.
type RegexRecognizer struct {
	pattern string
	re      *coregex.Regex
}

// NewRegexRecognizer compiles pattern. An invalid pattern is a
// configuration error (spec §4.1 Failure modes: "Regex invalid → fatal at
// configuration time"), surfaced as *errors.ConfigError.
func NewRegexRecognizer(pattern string) (*RegexRecognizer, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, internalerrors.NewConfigError("regex", pattern, err)
	}
	return &RegexRecognizer{pattern: pattern, re: re}, nil
}

func (r *RegexRecognizer) Recognize(ctx context.Context, text string) types.RecognitionResult {
	if match := r.re.Find([]byte(text)); match != nil {
		return types.RecognitionResult{
			IsPlaintext:    true,
			RecognizerName: "regex",
			Description:    fmt.Sprintf("matched configured pattern %q", r.pattern),
			MatchedSpan:    string(match),
		}
	}
	return types.RecognitionResult{}
}
