package recognize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeWordlist(t *testing.T, dir, name string, words ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := ""
	for _, w := range words {
		content += w + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write wordlist fixture: %v", err)
	}
	return path
}

func TestWordlistRecognizerExactMatch(t *testing.T) {
	dir := t.TempDir()
	writeWordlist(t, dir, "words.txt", "hello", "world", "plaintext")

	w, err := NewWordlistRecognizer([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	result := w.Recognize(context.Background(), "Hello")
	if !result.IsPlaintext {
		t.Fatalf("expected case-insensitive exact match to recognize as plaintext")
	}

	result = w.Recognize(context.Background(), "zzqx-not-a-word")
	if result.IsPlaintext {
		t.Fatalf("expected non-dictionary text to be rejected")
	}
}

func TestWordlistRecognizerGlobCombinesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeWordlist(t, dir, "a.txt", "alpha")
	writeWordlist(t, dir, "b.txt", "bravo")

	w, err := NewWordlistRecognizer([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if !w.Recognize(context.Background(), "alpha").IsPlaintext {
		t.Fatalf("expected alpha from a.txt to be recognized")
	}
	if !w.Recognize(context.Background(), "bravo").IsPlaintext {
		t.Fatalf("expected bravo from b.txt to be recognized")
	}
}

func TestWordlistRecognizerRejectsUnmatchedGlob(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWordlistRecognizer([]string{filepath.Join(dir, "*.nope")})
	if err == nil {
		t.Fatalf("expected configuration error for an empty glob match")
	}
}

func TestWordlistRecognizerEmptyInput(t *testing.T) {
	dir := t.TempDir()
	writeWordlist(t, dir, "words.txt", "hello")

	w, err := NewWordlistRecognizer([]string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if w.Recognize(context.Background(), "   ").IsPlaintext {
		t.Fatalf("expected blank text to never be recognized")
	}
}
