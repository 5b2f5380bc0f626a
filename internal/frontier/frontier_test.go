package frontier

import (
	"sync"
	"testing"

	"github.com/standardbeagle/decodex/internal/types"
)

func node(text string, pathCost, h float64, depth int) types.SearchNode {
	return types.NewSearchNode(text, nil, depth, pathCost, h, nil, false)
}

func TestFrontierOrdersByAscendingTotalCost(t *testing.T) {
	f := New()
	f.Push(node("c", 3, 0, 0))
	f.Push(node("a", 1, 0, 0))
	f.Push(node("b", 2, 0, 0))

	var order []string
	for {
		n, ok := f.Pop()
		if !ok {
			break
		}
		order = append(order, n.Text)
	}

	expected := []string{"a", "b", "c"}
	for i, want := range expected {
		if order[i] != want {
			t.Fatalf("expected pop order %v, got %v", expected, order)
		}
	}
}

func TestFrontierTiebreaksByDepthThenFIFO(t *testing.T) {
	f := New()
	f.Push(node("deep", 1, 0, 5))
	f.Push(node("shallow", 1, 0, 1))
	f.Push(node("first-equal", 1, 0, 1))

	n1, _ := f.Pop()
	n2, _ := f.Pop()
	n3, _ := f.Pop()

	if n1.Text != "shallow" {
		t.Fatalf("expected shallow depth to win equal cost, got %s first", n1.Text)
	}
	if n2.Text != "first-equal" {
		t.Fatalf("expected FIFO order among equal cost+depth, got %s second", n2.Text)
	}
	if n3.Text != "deep" {
		t.Fatalf("expected deep node last, got %s", n3.Text)
	}
}

func TestFrontierPopBatch(t *testing.T) {
	f := New()
	for i := 0; i < 5; i++ {
		f.Push(node("n", float64(i), 0, 0))
	}
	batch := f.PopBatch(3)
	if len(batch) != 3 {
		t.Fatalf("expected batch of 3, got %d", len(batch))
	}
	if f.Size() != 2 {
		t.Fatalf("expected 2 remaining, got %d", f.Size())
	}

	rest := f.PopBatch(10)
	if len(rest) != 2 {
		t.Fatalf("expected popBatch to cap at remaining size, got %d", len(rest))
	}
	if !f.IsEmpty() {
		t.Fatalf("expected frontier empty after draining")
	}
}

func TestVisitedSetNoRevisit(t *testing.T) {
	v := NewVisitedSet()
	if !v.InsertIfAbsent("hello") {
		t.Fatalf("expected first insert to succeed")
	}
	if v.InsertIfAbsent("hello") {
		t.Fatalf("expected re-insertion to be a no-op returning false")
	}
	if v.Size() != 1 {
		t.Fatalf("expected size 1, got %d", v.Size())
	}
}

func TestVisitedSetConcurrentInsertsAreDistinct(t *testing.T) {
	v := NewVisitedSet()
	const n = 200
	var wg sync.WaitGroup
	results := make([]bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = v.InsertIfAbsent("same-text-for-all")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, ok := range results {
		if ok {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one concurrent insert to win, got %d", successes)
	}
	if v.Size() != 1 {
		t.Fatalf("expected final size 1, got %d", v.Size())
	}
}

func TestPruneThresholdDecaysWithDepthAndFloors(t *testing.T) {
	if got := PruneThreshold(0, 10000, 1000, 1000); got != 10000 {
		t.Fatalf("expected threshold 10000 at depth 0, got %d", got)
	}
	if got := PruneThreshold(9, 10000, 1000, 1000); got != 1000 {
		t.Fatalf("expected threshold 1000 at depth 9, got %d", got)
	}
	if got := PruneThreshold(50, 10000, 1000, 1000); got != 1000 {
		t.Fatalf("expected threshold floored at 1000, got %d", got)
	}
}

func TestPruneIfNeededKeepsTopHalfByQuality(t *testing.T) {
	v := NewVisitedSet()
	// High-quality (clean printable) strings.
	for i := 0; i < 5; i++ {
		v.InsertIfAbsent("clean readable text number " + string(rune('a'+i)))
	}
	// Low-quality strings (heavy with control characters).
	for i := 0; i < 5; i++ {
		v.InsertIfAbsent(string([]byte{0x01, 0x02, 0x03, byte('a' + i), 0x04, 0x05}))
	}

	if v.Size() != 10 {
		t.Fatalf("expected 10 entries before prune, got %d", v.Size())
	}

	pruned := v.PruneIfNeeded(0, 9, 0, 0)
	if !pruned {
		t.Fatalf("expected prune to run once size exceeds threshold")
	}
	if v.Size() != 5 {
		t.Fatalf("expected top 50%% retained (5 of 10), got %d", v.Size())
	}
}
