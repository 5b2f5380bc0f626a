package cache

import (
	"context"
	"time"

	"github.com/standardbeagle/decodex/internal/types"
)

// Lookaside composes the in-process L1 and the optional persistent L2
// (PostgresStore) into the single interface spec §6 describes: "the
// engine neither owns nor schedules cache I/O" — callers look up before
// search and store after, never the Engine itself.
type Lookaside struct {
	l1 *L1
	l2 *PostgresStore // nil when no persistent backing store is configured
}

func NewLookaside(l2 *PostgresStore) *Lookaside {
	return &Lookaside{l1: NewL1(), l2: l2}
}

// Lookup returns a cache hit for input, checking L1 before L2.
func (c *Lookaside) Lookup(ctx context.Context, input string) (Entry, bool) {
	if entry, ok := c.l1.Get(input); ok {
		return entry, true
	}
	if c.l2 == nil {
		return Entry{}, false
	}
	entry, ok, err := c.l2.Get(ctx, input)
	if err != nil || !ok {
		return Entry{}, false
	}
	c.l1.Put(entry)
	return entry, true
}

// Store writes entry into L1 immediately and, if a persistent store is
// configured, upserts it into L2 as well.
func (c *Lookaside) Store(ctx context.Context, entry Entry) error {
	c.l1.Put(entry)
	if c.l2 == nil {
		return nil
	}
	return c.l2.Put(ctx, entry)
}

// Stats reports the L1 hit/miss counters.
func (c *Lookaside) Stats() Stats {
	return c.l1.Stats()
}

// NewEntry constructs an Entry with FoundAt stamped to now.
func NewEntry(inputText, decodedText, recognizerName, key string, chain types.Chain, elapsed time.Duration) Entry {
	return Entry{
		InputText:      inputText,
		DecodedText:    decodedText,
		Chain:          chain,
		RecognizerName: recognizerName,
		Key:            key,
		FoundAt:        time.Now(),
		Elapsed:        elapsed,
	}
}
