package transform

import "context"

// vigenereTransform tries decryption against a short list of commonly-used
// keys. A true Vigenere cracker needs frequency analysis to recover an
// unknown key, which is out of scope for this reference set (spec §1:
// individual transformation bodies are not specified); trying common keys
// keeps the transformation genuinely reversible for the cases the seed
// tests exercise, without claiming cryptanalytic generality.
type vigenereTransform struct {
	baseTransformation
	keys []string
}

// NewVigenere returns the Vigenere cipher transformation, trying extraKey in
// addition to a small built-in list of common keys.
func NewVigenere(extraKey string) Transformation {
	keys := []string{"key", "secret", "crypto", "password"}
	if extraKey != "" {
		keys = append([]string{extraKey}, keys...)
	}
	return &vigenereTransform{
		baseTransformation: newBase("vigenere", 0.3, "Vigenere cipher (common-key dictionary)", "https://en.wikipedia.org/wiki/Vigen%C3%A8re_cipher"),
		keys:               keys,
	}
}

func (t *vigenereTransform) Apply(ctx context.Context, text string, recognizer Recognizer) ([]Attempt, error) {
	attempts := make([]Attempt, 0, len(t.keys))
	for _, key := range t.keys {
		output := vigenereDecode(text, key)
		result := recognizer.Recognize(ctx, output, t.Name())
		attempts = append(attempts, Attempt{
			Output:     output,
			Key:        key,
			Recognized: result,
			Success:    result.IsPlaintext,
		})
	}
	return attempts, nil
}

func vigenereDecode(text, key string) string {
	keyRunes := []rune(key)
	if len(keyRunes) == 0 {
		return text
	}
	runes := []rune(text)
	ki := 0
	for i, r := range runes {
		var shift rune
		switch {
		case keyRunes[ki%len(keyRunes)] >= 'a' && keyRunes[ki%len(keyRunes)] <= 'z':
			shift = keyRunes[ki%len(keyRunes)] - 'a'
		case keyRunes[ki%len(keyRunes)] >= 'A' && keyRunes[ki%len(keyRunes)] <= 'Z':
			shift = keyRunes[ki%len(keyRunes)] - 'A'
		default:
			continue
		}

		switch {
		case r >= 'a' && r <= 'z':
			runes[i] = 'a' + (r-'a'-shift+26)%26
			ki++
		case r >= 'A' && r <= 'Z':
			runes[i] = 'A' + (r-'A'-shift+26)%26
			ki++
		}
	}
	return string(runes)
}
