package frontier

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/standardbeagle/decodex/internal/textutil"
	"github.com/standardbeagle/decodex/internal/types"
)

// numShards controls how many independent locks guard the visited set, so
// that pruning one shard never blocks lookups into another (spec §5:
// "pruning acquires an exclusive lock briefly").
const numShards = 16

type visitedShard struct {
	mu      sync.RWMutex
	buckets map[uint64][]string
}

// VisitedSet is the concurrent set of strings the engine has chosen to
// enqueue as a node's text (spec §3 visited-set invariant, §4.3).
type VisitedSet struct {
	shards [numShards]*visitedShard
	size   int64 // atomic, approximate but exact enough for pruning decisions
}

// NewVisitedSet creates an empty visited set.
func NewVisitedSet() *VisitedSet {
	v := &VisitedSet{}
	for i := range v.shards {
		v.shards[i] = &visitedShard{buckets: make(map[uint64][]string)}
	}
	return v
}

func (v *VisitedSet) shardFor(hash uint64) *visitedShard {
	return v.shards[hash%numShards]
}

// InsertIfAbsent inserts text if not already present, returning true if it
// was newly inserted. Re-insertion of an already-present string is a no-op
// and returns false.
func (v *VisitedSet) InsertIfAbsent(text string) bool {
	hash := types.FastHashString(text)
	shard := v.shardFor(hash)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	for _, existing := range shard.buckets[hash] {
		if existing == text {
			return false
		}
	}
	shard.buckets[hash] = append(shard.buckets[hash], text)
	atomic.AddInt64(&v.size, 1)
	return true
}

// Size returns the approximate number of strings currently retained.
func (v *VisitedSet) Size() int {
	return int(atomic.LoadInt64(&v.size))
}

// Retain keeps only the strings for which predicate returns true, dropping
// the rest. Used by Prune, and exposed directly for callers (tests) that
// want a custom retention rule.
func (v *VisitedSet) Retain(predicate func(string) bool) {
	var kept int64
	for _, shard := range v.shards {
		shard.mu.Lock()
		for hash, bucket := range shard.buckets {
			filtered := bucket[:0]
			for _, s := range bucket {
				if predicate(s) {
					filtered = append(filtered, s)
				}
			}
			if len(filtered) == 0 {
				delete(shard.buckets, hash)
			} else {
				shard.buckets[hash] = filtered
				kept += int64(len(filtered))
			}
		}
		shard.mu.Unlock()
	}
	atomic.StoreInt64(&v.size, kept)
}

// PruneThreshold computes the dynamic threshold for the given depth:
// initial - depth*decay, floored at floor (spec §4.3).
func PruneThreshold(depth, initial, decay, floor int) int {
	threshold := initial - depth*decay
	if threshold < floor {
		threshold = floor
	}
	return threshold
}

// PruneIfNeeded applies the top-50%-by-quality retention rule (spec §4.3)
// if Size() currently exceeds PruneThreshold(depth, initial, decay, floor).
// Returns true if a prune pass actually ran.
func (v *VisitedSet) PruneIfNeeded(depth, initial, decay, floor int) bool {
	threshold := PruneThreshold(depth, initial, decay, floor)
	if v.Size() <= threshold {
		return false
	}

	type scored struct {
		text    string
		quality float64
	}

	all := make([]scored, 0, v.Size())
	for _, shard := range v.shards {
		shard.mu.RLock()
		for _, bucket := range shard.buckets {
			for _, s := range bucket {
				all = append(all, scored{text: s, quality: textutil.Quality(s)})
			}
		}
		shard.mu.RUnlock()
	}

	sort.Slice(all, func(i, j int) bool { return all[i].quality > all[j].quality })

	keepCount := len(all) / 2
	keep := make(map[string]struct{}, keepCount)
	for i := 0; i < keepCount; i++ {
		keep[all[i].text] = struct{}{}
	}

	v.Retain(func(s string) bool {
		_, ok := keep[s]
		return ok
	})
	return true
}
