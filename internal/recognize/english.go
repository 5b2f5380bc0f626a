package recognize

import (
	"context"
	"strings"

	"github.com/standardbeagle/decodex/internal/semantic"
	"github.com/standardbeagle/decodex/internal/textutil"
	"github.com/standardbeagle/decodex/internal/types"
)

// commonEnglishWords seeds the classifier's reference vocabulary. It is
// intentionally small: exact hits are left to the wordlist recognizer
// upstream (spec §4.1 step 2), so by the time a candidate reaches here the
// bar is "looks like English prose", not "is a known word".
var commonEnglishWords = []string{
	"the", "and", "for", "you", "that", "with", "this", "have", "from",
	"they", "will", "would", "there", "their", "what", "about", "which",
	"when", "make", "like", "time", "just", "know", "take", "people",
	"into", "year", "your", "good", "some", "could", "them", "than",
	"then", "look", "only", "come", "over", "think", "also", "back",
	"after", "work", "first", "well", "even", "want", "because", "these",
	"give", "most", "password", "secret", "message", "hello", "world",
}

// EnglishClassifier is the last-resort recognizer in spec §4.1's fixed
// order. Sensitivity (spec glossary) tunes the fraction of reference
// vocabulary a candidate must fuzzy-match (or stem-match) before it is
// accepted as plaintext: Low demands more evidence (fewer false
// positives, used for cipher outputs where near-misses are common), High
// accepts weaker evidence. The orchestrator uses Medium for every
// non-cipher output unless a per-transformation override picks another
// level.
type EnglishClassifier struct {
	vocabulary []string
	fuzzy      *semantic.FuzzyMatcher
	stemmer    *semantic.Stemmer
}

// NewEnglishClassifier builds the classifier around the given vocabulary
// (nil uses the built-in seed list).
func NewEnglishClassifier(vocabulary []string) *EnglishClassifier {
	if len(vocabulary) == 0 {
		vocabulary = commonEnglishWords
	}
	return &EnglishClassifier{
		vocabulary: vocabulary,
		fuzzy:      semantic.NewFuzzyMatcher(true, 0.85, "jaro-winkler"),
		stemmer:    semantic.NewStemmer(true, "porter2", 3, nil),
	}
}

// thresholdFor maps a sensitivity level to the minimum fraction of tokens
// in text that must match the reference vocabulary (exactly, by stem, or
// by fuzzy similarity) for the text to be classified as plaintext.
func thresholdFor(s Sensitivity) float64 {
	switch s {
	case SensitivityLow:
		return 0.6
	case SensitivityHigh:
		return 0.3
	default:
		return 0.45
	}
}

// Recognize runs the classifier at medium sensitivity; RecognizeAt exposes
// the sensitivity dial the orchestrator drives per spec §4.1 step 4.
func (c *EnglishClassifier) Recognize(ctx context.Context, text string) types.RecognitionResult {
	return c.RecognizeAt(ctx, text, SensitivityMedium)
}

func (c *EnglishClassifier) RecognizeAt(ctx context.Context, text string, sensitivity Sensitivity) types.RecognitionResult {
	normalized := textutil.NormalizeForClassification(text)
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return types.RecognitionResult{}
	}

	matched := 0
	for _, token := range tokens {
		if c.tokenMatchesVocabulary(token) {
			matched++
		}
	}
	ratio := float64(matched) / float64(len(tokens))

	if ratio >= thresholdFor(sensitivity) {
		return types.RecognitionResult{
			IsPlaintext:    true,
			RecognizerName: "english-classifier",
			Description:    "english-like token ratio above sensitivity threshold",
			MatchedSpan:    text,
		}
	}
	return types.RecognitionResult{}
}

func (c *EnglishClassifier) tokenMatchesVocabulary(token string) bool {
	stem := c.stemmer.Stem(token)
	for _, word := range c.vocabulary {
		if token == word || stem == c.stemmer.Stem(word) {
			return true
		}
		if c.fuzzy.Match(token, word) {
			return true
		}
	}
	return false
}
