package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/mattn/go-runewidth"

	"umlcmp/internal/driver"
	"umlcmp/internal/metric"
)

// Table writes the full markdown comparison table: reference stats, one
// section per element kind with a mean row, an F1 summary section, and the
// runs excluded from the aggregate.
func Table(w io.Writer, batch *driver.BatchResult) {
	fmt.Fprintf(w, "## Model Comparison Results\n\n")
	fmt.Fprintf(w, "**Reference Model:** `%s`\n\n", batch.ReferencePath)
	fmt.Fprintf(w, "- Classes: %d\n", batch.ReferenceStats.Classes)
	fmt.Fprintf(w, "- Relationships: %d\n", batch.ReferenceStats.Relationships)
	fmt.Fprintf(w, "- Attributes: %d\n\n", batch.ReferenceStats.Attributes)

	if n := len(batch.Comparisons); n > 0 {
		var classes, relationships, attributes int
		for _, c := range batch.Comparisons {
			classes += c.CandidateStats.Classes
			relationships += c.CandidateStats.Relationships
			attributes += c.CandidateStats.Attributes
		}
		fmt.Fprintf(w, "**Average Model Statistics (across %d runs):**\n\n", n)
		fmt.Fprintf(w, "- Classes: %.1f\n", float64(classes)/float64(n))
		fmt.Fprintf(w, "- Relationships: %.1f\n", float64(relationships)/float64(n))
		fmt.Fprintf(w, "- Attributes: %.1f\n\n", float64(attributes)/float64(n))
	}

	kindSection(w, batch, "Classes", func(s metric.RunScores) metric.Result { return s.Classes }, batch.Summary.Classes)
	kindSection(w, batch, "Relationships", func(s metric.RunScores) metric.Result { return s.Relationships }, batch.Summary.Relationships)
	kindSection(w, batch, "Attributes", func(s metric.RunScores) metric.Result { return s.Attributes }, batch.Summary.Attributes)
	kindSection(w, batch, "Overall", func(s metric.RunScores) metric.Result { return s.Overall }, batch.Summary.Overall)

	summarySection(w, batch)

	if len(batch.Excluded) > 0 {
		fmt.Fprintf(w, "### Excluded Runs\n\n")
		for _, ex := range batch.Excluded {
			fmt.Fprintf(w, "- `%s`: %v\n", ex.Name, ex.Err)
		}
		fmt.Fprintln(w)
	}
}

func kindSection(w io.Writer, batch *driver.BatchResult, title string, pick func(metric.RunScores) metric.Result, mean metric.Mean) {
	fmt.Fprintf(w, "### %s\n\n", title)
	fmt.Fprintln(w, "| Run | Precision | Recall | F1-Score | TP | FP | FN |")
	fmt.Fprintln(w, "|-----|-----------|--------|----------|----|----|-----|")
	for _, c := range batch.Comparisons {
		r := pick(c.Scores)
		fmt.Fprintf(w, "| %s | %.4f | %.4f | %.4f | %d | %d | %d |\n",
			runCell(c), r.Precision, r.Recall, r.F1, r.TP, r.FP, r.FN)
	}
	fmt.Fprintf(w, "| **Mean** | **%.4f** | **%.4f** | **%.4f** | %.1f | %.1f | %.1f |\n\n",
		mean.Precision, mean.Recall, mean.F1, mean.TP, mean.FP, mean.FN)
}

func summarySection(w io.Writer, batch *driver.BatchResult) {
	fmt.Fprintf(w, "### Summary (F1-Scores)\n\n")
	fmt.Fprintln(w, "| Run | Classes | Relationships | Attributes | Overall |")
	fmt.Fprintln(w, "|-----|---------|---------------|------------|---------|")
	for _, c := range batch.Comparisons {
		s := c.Scores
		fmt.Fprintf(w, "| %s | %.4f | %.4f | %.4f | %.4f |\n",
			runCell(c), s.Classes.F1, s.Relationships.F1, s.Attributes.F1, s.Overall.F1)
	}
	m := batch.Summary
	fmt.Fprintf(w, "| **Mean** | **%.4f** | **%.4f** | **%.4f** | **%.4f** |\n\n",
		m.Classes.F1, m.Relationships.F1, m.Attributes.F1, m.Overall.F1)
}

// runCell pads run names to a common display width so the raw markdown stays
// readable. Widths are display cells, not bytes; run names may be Unicode.
func runCell(c *driver.Comparison) string {
	name := filepath.Base(filepath.Dir(c.CandidatePath))
	return runewidth.FillRight(name, 8)
}
