// Package search implements the best-first decode search (spec §2–§5):
// a priority-queued frontier expanded in parallel batches, guarded by a
// visited set and a wall-clock deadline, producing either the first
// confirmed plaintext (single-shot mode) or every plaintext found before
// the deadline (collect-all mode).
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/decodex/internal/frontier"
	"github.com/standardbeagle/decodex/internal/heuristic"
	"github.com/standardbeagle/decodex/internal/textutil"
	"github.com/standardbeagle/decodex/internal/transform"
	"github.com/standardbeagle/decodex/internal/types"
)

// Mode selects whether Run returns on the first confirmed plaintext or
// keeps searching until the deadline, collecting every plaintext found
// (spec §4.6 / glossary: collectAll).
type Mode int

const (
	ModeSingleShot Mode = iota
	ModeCollectAll
)

// Config bundles the tunables spec §6 exposes (decoderBatchSize,
// parallelBatchSize, initialPruneThreshold, deadline) plus the wired
// components that drive scoring and acceptance.
type Config struct {
	Mode Mode

	Deadline time.Duration

	DecoderBatchSize       int
	ParallelBatchSize      int
	InitialPruneThreshold  int
	PruneDecayPerDepth     int
	PruneFloor             int

	Registry      *transform.Registry
	Model         *heuristic.Model
	Recognizer    transform.Recognizer
	CipherHinter  heuristic.CipherHinter
}

// Result is one accepted plaintext, with the chain of transformations
// that produced it (spec §3: Chain, the audit trail the caller needs to
// reproduce a decode).
type Result struct {
	Text  string
	Chain types.Chain
}

// Engine runs the best-first search described above. It holds no
// per-search state between Run calls — callers construct a fresh Engine
// per search, or reuse one by calling Run repeatedly (each call resets
// the frontier and visited set).
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	if cfg.DecoderBatchSize <= 0 {
		cfg.DecoderBatchSize = heuristic.DefaultDecoderBatch
	}
	if cfg.ParallelBatchSize <= 0 {
		cfg.ParallelBatchSize = heuristic.DefaultParallelBatch
	}
	if cfg.InitialPruneThreshold <= 0 {
		cfg.InitialPruneThreshold = heuristic.DefaultInitialPrune
	}
	if cfg.PruneDecayPerDepth <= 0 {
		cfg.PruneDecayPerDepth = heuristic.PruneDecayPerDepth
	}
	if cfg.PruneFloor <= 0 {
		cfg.PruneFloor = heuristic.PruneFloor
	}
	return &Engine{cfg: cfg}
}

// Stats reports counters useful for observability (SPEC_FULL §2.1's ambient
// logging needs something to log); all fields are updated atomically so
// Stats can be read from another goroutine while Run is in flight.
type Stats struct {
	NodesExpanded   int64
	NodesVisited    int64
	ResultsFound    int64
	PrunePasses     int64
}

func (s *Stats) snapshot() Stats {
	return Stats{
		NodesExpanded: atomic.LoadInt64(&s.NodesExpanded),
		NodesVisited:  atomic.LoadInt64(&s.NodesVisited),
		ResultsFound:  atomic.LoadInt64(&s.ResultsFound),
		PrunePasses:   atomic.LoadInt64(&s.PrunePasses),
	}
}

// Run executes the search against input. It blocks until a result is
// found (ModeSingleShot), the frontier is exhausted, or the deadline
// elapses — whichever comes first. Run never panics on malformed UTF-8
// input or intermediate candidates (spec §5); unusable candidates are
// filtered before they're ever pushed onto the frontier.
func (e *Engine) Run(ctx context.Context, input string) ([]Result, Stats, error) {
	stats := &Stats{}

	deadlineCtx := ctx
	var cancel context.CancelFunc
	if e.cfg.Deadline > 0 {
		deadlineCtx, cancel = context.WithTimeout(ctx, e.cfg.Deadline)
		defer cancel()
	}

	f := frontier.New()
	visited := frontier.NewVisitedSet()

	allNames := e.cfg.Registry.Names()
	root := types.NewSearchNode(input, nil, 0, 0, e.cfg.Model.Heuristic(input, nil),
		e.cfg.Model.RankCandidates(input, nil, allNames, nil), false)
	visited.InsertIfAbsent(input)
	f.Push(root)

	var (
		mu      sync.Mutex
		results []Result
	)

	recordResult := func(text string, chain types.Chain) bool {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, Result{Text: text, Chain: chain.Clone()})
		atomic.AddInt64(&stats.ResultsFound, 1)
		return e.cfg.Mode == ModeSingleShot
	}

	if e.cfg.Recognizer != nil {
		if result := e.cfg.Recognizer.Recognize(deadlineCtx, input, ""); result.IsPlaintext {
			recordResult(input, nil)
			if e.cfg.Mode == ModeSingleShot {
				return results, stats.snapshot(), nil
			}
		}
	}

	for !f.IsEmpty() {
		select {
		case <-deadlineCtx.Done():
			return results, stats.snapshot(), nil
		default:
		}

		batch := f.PopBatch(e.cfg.ParallelBatchSize)
		if len(batch) == 0 {
			break
		}

		done, err := e.expandBatch(deadlineCtx, batch, f, visited, stats, recordResult)
		if err != nil {
			return results, stats.snapshot(), err
		}
		if done {
			break
		}

		depth := batch[0].Depth
		if visited.PruneIfNeeded(depth, e.cfg.InitialPruneThreshold, e.cfg.PruneDecayPerDepth, e.cfg.PruneFloor) {
			atomic.AddInt64(&stats.PrunePasses, 1)
		}
	}

	return results, stats.snapshot(), nil
}

// expandBatch expands every node in batch in parallel (bounded by
// ParallelBatchSize, mirroring errgroup.SetLimit backpressure), pushing
// children onto f. It returns done=true once a single-shot result has
// been recorded, short-circuiting remaining expansion.
func (e *Engine) expandBatch(
	ctx context.Context,
	batch []types.SearchNode,
	f *frontier.Frontier,
	visited *frontier.VisitedSet,
	stats *Stats,
	recordResult func(text string, chain types.Chain) bool,
) (bool, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.ParallelBatchSize)

	var done atomic.Bool

	for _, node := range batch {
		node := node
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			if done.Load() {
				return nil
			}

			atomic.AddInt64(&stats.NodesExpanded, 1)
			stop := e.expandNode(gctx, node, f, visited, stats, recordResult)
			if stop {
				done.Store(true)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}
	return done.Load(), nil
}

// expandNode applies only the first decoderBatchSize of node's ranked
// pendingTransformations (spec §4.4 step 2.b), filters unusable/cyclic/
// duplicate candidates, checks each surviving candidate for plaintext, and
// pushes the rest as children. If pendingTransformations still has entries
// after that batch, it re-enqueues a continuation node carrying the
// remainder (step 2.f), so the node is never expanded against its full
// candidate list in one pass. It returns true if a single-shot search
// should stop.
func (e *Engine) expandNode(
	ctx context.Context,
	node types.SearchNode,
	f *frontier.Frontier,
	visited *frontier.VisitedSet,
	stats *Stats,
	recordResult func(text string, chain types.Chain) bool,
) bool {
	batchSize := e.cfg.DecoderBatchSize
	if batchSize > len(node.PendingTransformations) {
		batchSize = len(node.PendingTransformations)
	}
	batch, remaining := node.PendingTransformations[:batchSize], node.PendingTransformations[batchSize:]

	allNames := e.cfg.Registry.Names()

	for _, name := range batch {
		t, ok := e.cfg.Registry.Get(name)
		if !ok {
			continue
		}

		attempts, err := t.Apply(ctx, node.Text, e.cfg.Recognizer)
		if err != nil {
			continue
		}

		for _, attempt := range attempts {
			if textutil.CheckIfUnusable(attempt.Output) {
				continue
			}
			// A reciprocal transformation re-applied immediately after
			// itself undoes its own prior step; comparing against the
			// last-applied transformation name (not the output text)
			// catches this even though t(t(x)) lands back on the
			// grandparent's text, not node.Text.
			if transform.IsReciprocal(t) && name == node.Chain.LastTransformationName() {
				continue
			}

			step := types.TransformationStep{
				TransformationName: name,
				InputText:          node.Text,
				OutputText:         attempt.Output,
				Key:                attempt.Key,
				RecognizerName:     attempt.Recognized.RecognizerName,
				Success:            attempt.Success,
			}
			chain := node.Chain.Extend(step)

			if attempt.Success {
				if recordResult(attempt.Output, chain) {
					return true
				}
				continue
			}

			if !visited.InsertIfAbsent(attempt.Output) {
				continue
			}
			atomic.AddInt64(&stats.NodesVisited, 1)

			child := types.NewSearchNode(
				attempt.Output,
				chain,
				node.Depth+1,
				e.cfg.Model.PathCost(chain),
				e.cfg.Model.HeuristicForCandidate(attempt.Output, node.Chain, name),
				e.cfg.Model.RankCandidates(attempt.Output, chain, allNames, nil),
				false,
			)
			f.Push(child)
		}
	}

	if len(remaining) > 0 {
		continuation := types.NewSearchNode(
			node.Text,
			node.Chain,
			node.Depth,
			node.PathCost+heuristic.ContinuationPenalty,
			node.Heuristic,
			remaining,
			false,
		)
		f.Push(continuation)
	}

	return false
}
