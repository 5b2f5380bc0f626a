package recognize

import (
	"context"
	"testing"
)

type fakePrompter struct {
	accept bool
	calls  int
}

func (f *fakePrompter) Confirm(ctx context.Context, candidateText, recognizerDescription string) (bool, error) {
	f.calls++
	return f.accept, nil
}

func TestInteractiveRecognizerConfirmsOnAccept(t *testing.T) {
	prompter := &fakePrompter{accept: true}
	r := NewInteractiveRecognizer(prompter)

	result := r.Recognize(context.Background(), "hello world")
	if !result.IsPlaintext {
		t.Fatalf("expected acceptance to mark plaintext")
	}
	if prompter.calls != 1 {
		t.Fatalf("expected exactly one prompt, got %d", prompter.calls)
	}
}

func TestInteractiveRecognizerCachesConfirmation(t *testing.T) {
	prompter := &fakePrompter{accept: true}
	r := NewInteractiveRecognizer(prompter)

	r.Recognize(context.Background(), "hello world")
	r.Recognize(context.Background(), "hello world")

	if prompter.calls != 1 {
		t.Fatalf("expected the second identical candidate to reuse the cached confirmation, got %d prompts", prompter.calls)
	}
}

func TestInteractiveRecognizerRejection(t *testing.T) {
	prompter := &fakePrompter{accept: false}
	r := NewInteractiveRecognizer(prompter)

	result := r.Recognize(context.Background(), "not plaintext")
	if result.IsPlaintext {
		t.Fatalf("expected rejection to not mark plaintext")
	}
}
