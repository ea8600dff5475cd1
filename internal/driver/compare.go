// Package driver orchestrates comparisons: it extracts fact sets from model
// documents, scores candidates against the reference, and runs whole batches
// of runs in parallel. All fact sets are read-only snapshots; the reference is
// extracted once and shared by every comparison.
package driver

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"umlcmp/internal/diag"
	"umlcmp/internal/extract"
	"umlcmp/internal/metric"
	"umlcmp/internal/model"
	"umlcmp/internal/normalize"
)

// Options configures extraction and comparison.
type Options struct {
	// Normalize overrides the naming policy. Nil means normalize.Key. The
	// fact cache is bypassed for non-default policies.
	Normalize normalize.Func

	// MaxNotices caps the parse notices kept per document.
	MaxNotices int

	// Cache, when set, reuses previously extracted fact sets keyed by
	// document content and policy version.
	Cache *FactCache

	// Jobs limits batch parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	// Logger receives batch progress and excluded-run warnings.
	// Nil discards them.
	Logger *log.Logger
}

const defaultMaxNotices = 100

func (o Options) maxNotices() int {
	if o.MaxNotices > 0 {
		return o.MaxNotices
	}
	return defaultMaxNotices
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// FileResult is one extracted document.
type FileResult struct {
	Path  string
	Facts model.FactSet
	Bag   *diag.Bag
}

// ExtractPath extracts one document, consulting the fact cache when enabled.
// Cache hits carry no parse notices.
func ExtractPath(path string, opts Options) (*FileResult, error) {
	if opts.Cache != nil && opts.Normalize == nil {
		if facts, ok, err := opts.Cache.Lookup(path); err == nil && ok {
			return &FileResult{Path: path, Facts: facts, Bag: diag.NewBag(opts.maxNotices())}, nil
		}
	}

	bag := diag.NewBag(opts.maxNotices())
	res, err := extract.ExtractFile(path, extract.Options{
		Normalize: opts.Normalize,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	if err != nil {
		return nil, err
	}

	if opts.Cache != nil && opts.Normalize == nil {
		if err := opts.Cache.Store(path, res.Facts); err != nil {
			opts.logger().Warn("fact cache write failed", "path", path, "err", err)
		}
	}
	return &FileResult{Path: path, Facts: res.Facts, Bag: bag}, nil
}

// Comparison is the scored result of one candidate against the reference.
type Comparison struct {
	ReferencePath  string
	CandidatePath  string
	ReferenceStats model.Stats
	CandidateStats model.Stats
	Scores         metric.RunScores
	Diff           model.Diff
	Notices        *diag.Bag
}

// Compare scores an already-extracted candidate against the reference.
func Compare(reference, candidate *FileResult) *Comparison {
	return &Comparison{
		ReferencePath:  reference.Path,
		CandidatePath:  candidate.Path,
		ReferenceStats: reference.Facts.Stats(),
		CandidateStats: candidate.Facts.Stats(),
		Scores:         metric.ScoreRun(candidate.Facts, reference.Facts),
		Diff:           model.DiffFacts(candidate.Facts, reference.Facts),
		Notices:        candidate.Bag,
	}
}

// CompareFiles extracts both documents and scores the candidate against the
// reference. A failure on either side names the offending file.
func CompareFiles(refPath, candPath string, opts Options) (*Comparison, error) {
	reference, err := ExtractPath(refPath, opts)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	candidate, err := ExtractPath(candPath, opts)
	if err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}
	return Compare(reference, candidate), nil
}
