package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"umlcmp/internal/metric"
	"umlcmp/internal/model"
)

// Run is one candidate run directory: its display name and the model document
// inside it.
type Run struct {
	Name string
	Path string
}

// Stage of one run inside a batch, for progress reporting.
type Stage uint8

const (
	StageQueued Stage = iota
	StageExtract
	StageScore
	StageDone
	StageFailed
)

// Event is one progress update from a running batch.
type Event struct {
	Run   string
	Stage Stage
	Err   error
}

// Sink consumes batch progress events.
type Sink interface {
	Send(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct{ Ch chan<- Event }

func (s ChannelSink) Send(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

type nopSink struct{}

func (nopSink) Send(Event) {}

// ExcludedRun records a run that failed and was left out of the aggregate.
type ExcludedRun struct {
	Name string
	Err  error
}

// BatchResult is the outcome of comparing every run against one reference.
type BatchResult struct {
	ReferencePath  string
	ReferenceStats model.Stats
	Comparisons    []*Comparison // run order, failed runs omitted
	Excluded       []ExcludedRun
	Summary        metric.Summary
}

// DiscoverRuns lists the run directories under dir that match pattern and
// contain filename, sorted by name for a deterministic batch order.
func DiscoverRuns(dir, pattern, filename string) ([]Run, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read runs directory %s: %w", dir, err)
	}

	var runs []Run
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("bad run pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}
		runs = append(runs, Run{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name(), filename),
		})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Name < runs[j].Name })
	return runs, nil
}

// CompareBatch extracts the reference once and scores every run against it.
// Runs are independent, so they execute in parallel up to opts.Jobs. One
// run's failure excludes that run from the aggregate; it never aborts the
// batch. The batch itself fails only when the reference is unreadable.
func CompareBatch(ctx context.Context, refPath string, runs []Run, opts Options, sink Sink) (*BatchResult, error) {
	if sink == nil {
		sink = nopSink{}
	}
	logger := opts.logger()

	reference, err := ExtractPath(refPath, opts)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// One slot per run; indexes are unique per goroutine, no mutex needed.
	comparisons := make([]*Comparison, len(runs))
	failures := make([]error, len(runs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(runs), 1)))

	for i, run := range runs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			sink.Send(Event{Run: run.Name, Stage: StageExtract})
			candidate, err := ExtractPath(run.Path, opts)
			if err != nil {
				failures[i] = err
				sink.Send(Event{Run: run.Name, Stage: StageFailed, Err: err})
				return nil
			}

			sink.Send(Event{Run: run.Name, Stage: StageScore})
			comparisons[i] = Compare(reference, candidate)
			sink.Send(Event{Run: run.Name, Stage: StageDone})
			logger.Debug("run scored", "run", run.Name, "f1", comparisons[i].Scores.Overall.F1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &BatchResult{
		ReferencePath:  reference.Path,
		ReferenceStats: reference.Facts.Stats(),
	}
	scores := make([]metric.RunScores, 0, len(runs))
	for i, run := range runs {
		if failures[i] != nil {
			logger.Warn("run excluded from aggregate", "run", run.Name, "err", failures[i])
			result.Excluded = append(result.Excluded, ExcludedRun{Name: run.Name, Err: failures[i]})
			continue
		}
		result.Comparisons = append(result.Comparisons, comparisons[i])
		scores = append(scores, comparisons[i].Scores)
	}
	result.Summary = metric.Summarize(scores)
	return result, nil
}
