// Package cache implements the look-aside decode cache (spec §6:
// "Persistent cache interface"): input text maps to a previously-found
// decoded_text, chain, recognizerName, key, and timing. An in-process L1
// layer sits in front of the Postgres-backed L2 store so repeated lookups
// of the same input within one process never round-trip to the database.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/standardbeagle/decodex/internal/types"
)

// Entry is one cached decode result (spec §6's cache contract fields).
type Entry struct {
	InputText      string
	DecodedText    string
	Chain          types.Chain
	RecognizerName string
	Key            string
	FoundAt        time.Time
	Elapsed        time.Duration
}

// L1 is an in-process, lock-free lookaside cache keyed by input text,
// adapted from the teacher's internal/cache/metrics_cache.go: a sync.Map
// of entries plus atomic hit/miss counters, no mutex on the hot path.
type L1 struct {
	entries sync.Map // map[string]Entry

	hits   int64
	misses int64
}

func NewL1() *L1 {
	return &L1{}
}

// Get returns the cached entry for input, if present.
func (c *L1) Get(input string) (Entry, bool) {
	v, ok := c.entries.Load(input)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return Entry{}, false
	}
	atomic.AddInt64(&c.hits, 1)
	return v.(Entry), true
}

// Put stores entry, replacing any existing value for the same input.
func (c *L1) Put(entry Entry) {
	c.entries.Store(entry.InputText, entry)
}

// Stats reports hit/miss counters for observability.
type Stats struct {
	Hits   int64
	Misses int64
}

func (c *L1) Stats() Stats {
	return Stats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
	}
}
