package recognize

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	internalerrors "github.com/standardbeagle/decodex/internal/errors"
	"github.com/standardbeagle/decodex/internal/types"
)

// falsePositiveRate bounds the bloom filter's false-positive probability;
// the filter must never produce false negatives (spec §6), which
// bits-and-blooms/bloom guarantees by construction.
const falsePositiveRate = 0.01

// WordlistRecognizer performs the two-tier lookup from spec §4.1 step 2 and
// §6: a bloom-filter membership test gates an authoritative dictionary
// lookup. The dictionary is rebuilt from disk (glob-expanded via
// doublestar) whenever the source files change, watched with fsnotify —
// mirroring the teacher's internal/indexing/watcher.go debounce pattern.
type WordlistRecognizer struct {
	mu         sync.RWMutex
	bloomFil   *bloom.BloomFilter
	dictionary map[string]struct{}

	globs   []string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWordlistRecognizer loads the dictionary from the glob patterns in
// sourceGlobs (each resolved against the current working directory via
// doublestar.FilepathGlob), builds the bloom filter, and starts an fsnotify watcher
// that rebuilds both on any change. An unreadable or invalid-UTF-8 source
// is a fatal configuration error (spec §4.1 Failure modes).
func NewWordlistRecognizer(sourceGlobs []string) (*WordlistRecognizer, error) {
	w := &WordlistRecognizer{globs: sourceGlobs, done: make(chan struct{})}
	if err := w.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// A failing watcher is not fatal to the dictionary itself being
		// usable — the wordlist simply won't hot-reload on later edits.
		return w, nil
	}
	w.watcher = watcher

	for _, dir := range w.watchDirs() {
		_ = watcher.Add(dir)
	}
	go w.watchLoop()
	return w, nil
}

func (w *WordlistRecognizer) watchDirs() []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, g := range w.globs {
		matches, err := doublestar.FilepathGlob(g)
		if err != nil {
			continue
		}
		for _, m := range matches {
			dir := dirOf(m)
			if _, ok := seen[dir]; !ok {
				seen[dir] = struct{}{}
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

func dirOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "."
	}
	return path[:idx]
}

func (w *WordlistRecognizer) watchLoop() {
	debounce := make(chan struct{}, 1)
	for {
		select {
		case <-w.done:
			return
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			select {
			case debounce <- struct{}{}:
				go func() {
					_ = w.reload()
					<-debounce
				}()
			default:
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the filesystem watcher goroutine.
func (w *WordlistRecognizer) Close() error {
	close(w.done)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *WordlistRecognizer) reload() error {
	var paths []string
	for _, g := range w.globs {
		matches, err := doublestar.FilepathGlob(g)
		if err != nil {
			return internalerrors.NewConfigError("wordlistSource", g, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return internalerrors.NewConfigError("wordlistSource", strings.Join(w.globs, ","), fmt.Errorf("no files matched"))
	}

	dictionary := make(map[string]struct{})
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return internalerrors.NewConfigError("wordlistSource", path, err)
		}
		scanner := bufio.NewScanner(f)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if !utf8.ValidString(line) {
				f.Close()
				return internalerrors.NewConfigError("wordlistSource", fmt.Sprintf("%s:%d", path, lineNo), fmt.Errorf("invalid UTF-8"))
			}
			word := strings.TrimSpace(line)
			if word == "" {
				continue
			}
			dictionary[strings.ToLower(word)] = struct{}{}
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return internalerrors.NewConfigError("wordlistSource", path, err)
		}
	}

	filter := bloom.NewWithEstimates(uint(max(len(dictionary), 1)), falsePositiveRate)
	for word := range dictionary {
		filter.AddString(word)
	}

	w.mu.Lock()
	w.bloomFil = filter
	w.dictionary = dictionary
	w.mu.Unlock()
	return nil
}

// Recognize implements the two-tier lookup: a bloom-filter probe (never a
// false negative) gates the authoritative dictionary check.
func (w *WordlistRecognizer) Recognize(ctx context.Context, text string) types.RecognitionResult {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return types.RecognitionResult{}
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.bloomFil == nil || !w.bloomFil.TestString(normalized) {
		return types.RecognitionResult{}
	}
	if _, ok := w.dictionary[normalized]; !ok {
		// Bloom filter false positive; the authoritative dictionary is the
		// final word.
		return types.RecognitionResult{}
	}
	return types.RecognitionResult{
		IsPlaintext:    true,
		RecognizerName: "wordlist",
		Description:    "exact dictionary match",
		MatchedSpan:    normalized,
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
