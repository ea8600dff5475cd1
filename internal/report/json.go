package report

import (
	"encoding/json"
	"io"

	"umlcmp/internal/driver"
	"umlcmp/internal/metric"
	"umlcmp/internal/model"
)

// Document is the machine-readable results format. Field names follow the
// published comparison methodology so downstream tooling keeps working.
type Document struct {
	ReferenceModel string          `json:"reference_model"`
	ReferenceStats model.Stats     `json:"reference_stats"`
	Comparisons    []ComparisonDoc `json:"comparisons"`
	ExcludedRuns   []string        `json:"excluded_runs,omitempty"`
	Summary        *metric.Summary `json:"summary,omitempty"`
}

// ComparisonDoc is one candidate's entry in the results document.
type ComparisonDoc struct {
	ModelPath   string           `json:"model_path"`
	ModelStats  model.Stats      `json:"model_stats"`
	Metrics     metric.RunScores `json:"metrics"`
	Differences model.Diff       `json:"differences"`
}

// FromComparisons builds a document for ad hoc comparisons against one
// reference.
func FromComparisons(refPath string, refStats model.Stats, comparisons []*driver.Comparison) Document {
	doc := Document{
		ReferenceModel: refPath,
		ReferenceStats: refStats,
		Comparisons:    make([]ComparisonDoc, 0, len(comparisons)),
	}
	for _, c := range comparisons {
		doc.Comparisons = append(doc.Comparisons, ComparisonDoc{
			ModelPath:   c.CandidatePath,
			ModelStats:  c.CandidateStats,
			Metrics:     c.Scores,
			Differences: c.Diff,
		})
	}
	return doc
}

// FromBatch builds a document for a batch result, including the summary and
// the excluded runs.
func FromBatch(batch *driver.BatchResult) Document {
	doc := FromComparisons(batch.ReferencePath, batch.ReferenceStats, batch.Comparisons)
	summary := batch.Summary
	doc.Summary = &summary
	for _, ex := range batch.Excluded {
		doc.ExcludedRuns = append(doc.ExcludedRuns, ex.Name)
	}
	return doc
}

// WriteJSON writes the document, indented.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
