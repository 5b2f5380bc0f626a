package recognize

import (
	"context"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/coregx/ahocorasick"

	"github.com/standardbeagle/decodex/internal/types"
)

// structuralHint pairs a format name with the (comparatively expensive)
// structural check that confirms a candidate string is in that format.
type structuralHint struct {
	name  string
	check func(text string) (string, bool)
}

// jsonLikeRe and similar lightweight structural checks back the hints
// below; they are not used as general-purpose recognizers, only as a
// confirming pass after the Aho-Corasick pre-filter narrows candidates.
var (
	jsonLikeRe = regexp.MustCompile(`^\s*[\{\[].*[\}\]]\s*$`)
	uriRe      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://\S+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// PatternLibraryRecognizer detects structured formats — URLs, email
// addresses, JSON-shaped text, and cryptocurrency addresses — per spec
// §4.1 step 3. An Aho-Corasick automaton (github.com/coregx/ahocorasick)
// scans for cheap literal hints ("://", "@", "{", "[", "1", "3", "bc1") in
// a single pass over the text; any hit runs every structural/checksum
// confirmation in turn, keeping the common non-match case to
// one linear scan instead of N regex evaluations.
type PatternLibraryRecognizer struct {
	hintMatcher *ahocorasick.Matcher
	hints       []structuralHint
}

// NewPatternLibraryRecognizer builds the Aho-Corasick hint automaton and
// wires in the structural and checksum confirmers.
func NewPatternLibraryRecognizer() *PatternLibraryRecognizer {
	hints := []structuralHint{
		{name: "uri", check: checkURI},
		{name: "email", check: checkEmail},
		{name: "json", check: checkJSON},
		{name: "btc-address", check: checkBitcoinAddress},
	}
	literals := []string{"://", "@", "{", "[", "1", "3", "bc1"}
	return &PatternLibraryRecognizer{
		hintMatcher: ahocorasick.NewStringMatcher(literals),
		hints:       hints,
	}
}

func (p *PatternLibraryRecognizer) Recognize(ctx context.Context, text string) types.RecognitionResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.RecognitionResult{}
	}
	if !p.hintMatcher.ContainsString(trimmed) {
		return types.RecognitionResult{}
	}
	for _, hint := range p.hints {
		if span, ok := hint.check(trimmed); ok {
			return types.RecognitionResult{
				IsPlaintext:    true,
				RecognizerName: "pattern-library:" + hint.name,
				Description:    "matched structured format: " + hint.name,
				MatchedSpan:    span,
			}
		}
	}
	return types.RecognitionResult{}
}

func checkURI(text string) (string, bool) {
	if uriRe.MatchString(text) {
		return text, true
	}
	return "", false
}

func checkEmail(text string) (string, bool) {
	if emailRe.MatchString(text) {
		return text, true
	}
	return "", false
}

func checkJSON(text string) (string, bool) {
	if jsonLikeRe.MatchString(text) {
		return text, true
	}
	return "", false
}

// checkBitcoinAddress confirms a candidate token is a valid Bitcoin address
// by its base58/bech32 checksum (github.com/btcsuite/btcd/btcutil),
// distinguishing a real address from text that merely starts with the
// right prefix character.
func checkBitcoinAddress(text string) (string, bool) {
	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, ".,;:!?()[]{}\"'")
		if len(token) < 26 || len(token) > 62 {
			continue
		}
		if _, err := btcutil.DecodeAddress(token, &chaincfg.MainNetParams); err == nil {
			return token, true
		}
	}
	return "", false
}
