// Package semantic provides fuzzy-matching primitives used by the English
// plaintext classifier (internal/recognize) to tolerate noisy decode
// output: a Vigenere guess with the wrong key, or an off-by-one Caesar
// shift, often produces text that is almost English rather than exactly
// English.
//
// FuzzyMatcher scores how close a candidate word is to a known English word
// using Jaro-Winkler, Levenshtein, or cosine similarity. Stemmer reduces
// words to their Porter2 root so that "decoding" and "decode" count as the
// same token when estimating how English-like a string is.
package semantic
