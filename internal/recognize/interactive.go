package recognize

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/standardbeagle/decodex/internal/types"
)

// Prompter asks a human to confirm a candidate decode and returns whether
// they accepted it. Production wiring reads from stdin; tests supply a
// fake.
type Prompter interface {
	Confirm(ctx context.Context, candidateText, recognizerDescription string) (bool, error)
}

// StdioPrompter implements Prompter against a terminal (spec §4.1:
// interactive confirmation is a fallback when no automatic recognizer
// accepts a candidate). The search deadline is not paused while a prompt
// waits for an answer.
type StdioPrompter struct {
	mu     sync.Mutex
	reader *bufio.Reader
	writer io.Writer
}

func NewStdioPrompter(r io.Reader, w io.Writer) *StdioPrompter {
	return &StdioPrompter{reader: bufio.NewReader(r), writer: w}
}

func (p *StdioPrompter) Confirm(ctx context.Context, candidateText, recognizerDescription string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "\ncandidate (%s):\n  %s\naccept as plaintext? [y/N] ", recognizerDescription, candidateText)
	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// InteractiveRecognizer arbitrates confirmation prompts across concurrent
// search workers. Per spec §4.1's interactive mode: a given (candidate
// text, recognizer description) pair is only ever asked about once — a
// dedup set keyed by that pair tracks pending and answered prompts so two
// workers racing on the same candidate don't double-prompt the operator.
// Each prompt's description carries a fresh google/uuid so the operator
// can tell prompts apart; the uuid is not part of the dedup key.
type InteractiveRecognizer struct {
	prompter Prompter

	mu        sync.Mutex
	confirmed map[string]string // dedup key -> confirmed text
	asked     map[string]struct{}
}

func NewInteractiveRecognizer(prompter Prompter) *InteractiveRecognizer {
	return &InteractiveRecognizer{
		prompter:  prompter,
		confirmed: make(map[string]string),
		asked:     make(map[string]struct{}),
	}
}

func dedupKey(description, text string) string {
	return description + "\x00" + text
}

// Recognize blocks on the prompter unless this exact (description, text)
// pair has already been confirmed or explicitly rejected in this session.
func (r *InteractiveRecognizer) Recognize(ctx context.Context, text string) types.RecognitionResult {
	return r.RecognizeWithDescription(ctx, text, "interactive confirmation")
}

func (r *InteractiveRecognizer) RecognizeWithDescription(ctx context.Context, text, description string) types.RecognitionResult {
	key := dedupKey(description, text)

	r.mu.Lock()
	if confirmedText, ok := r.confirmed[key]; ok {
		r.mu.Unlock()
		return types.RecognitionResult{
			IsPlaintext:    true,
			RecognizerName: "interactive",
			Description:    description,
			MatchedSpan:    confirmedText,
		}
	}
	if _, pending := r.asked[key]; pending {
		r.mu.Unlock()
		// Another worker is already prompting about this exact candidate,
		// or the operator already rejected it; either way, do not prompt
		// again.
		return types.RecognitionResult{}
	}
	r.asked[key] = struct{}{}
	r.mu.Unlock()

	sessionID := uuid.New().String()
	accepted, err := r.prompter.Confirm(ctx, text, description+" ["+sessionID+"]")

	r.mu.Lock()
	if err != nil {
		// No answer was given, so a later arrival may ask again.
		delete(r.asked, key)
	} else if accepted {
		r.confirmed[key] = text
	}
	r.mu.Unlock()

	if err != nil || !accepted {
		return types.RecognitionResult{}
	}
	return types.RecognitionResult{
		IsPlaintext:    true,
		RecognizerName: "interactive",
		Description:    description,
		MatchedSpan:    text,
	}
}
