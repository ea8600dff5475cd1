// Package report renders scorer output for humans and machines: colored
// terminal blocks, the markdown comparison table, and the JSON results
// document. Presentation only; no numeric value produced by the scorer is
// altered here.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"umlcmp/internal/diag"
	"umlcmp/internal/driver"
	"umlcmp/internal/metric"
)

// PrettyOpts controls terminal rendering.
type PrettyOpts struct {
	Color   bool
	Verbose bool
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	kindColWidth = 16
)

// Comparison writes one candidate's score blocks.
func Comparison(w io.Writer, c *driver.Comparison, opts PrettyOpts) {
	heading := fmt.Sprintf("%s vs %s", c.CandidatePath, c.ReferencePath)
	if opts.Color {
		heading = headerStyle.Render(heading)
	}
	fmt.Fprintln(w, heading)
	fmt.Fprintf(w, "  reference: %d classes, %d relationships, %d attributes\n",
		c.ReferenceStats.Classes, c.ReferenceStats.Relationships, c.ReferenceStats.Attributes)
	fmt.Fprintf(w, "  candidate: %d classes, %d relationships, %d attributes\n\n",
		c.CandidateStats.Classes, c.CandidateStats.Relationships, c.CandidateStats.Attributes)

	fmt.Fprintf(w, "  %-*s %-10s %-10s %-10s %4s %4s %4s\n", kindColWidth, "kind", "precision", "recall", "f1", "TP", "FP", "FN")
	scoreRow(w, "classes", c.Scores.Classes, opts)
	scoreRow(w, "relationships", c.Scores.Relationships, opts)
	scoreRow(w, "attributes", c.Scores.Attributes, opts)
	scoreRow(w, "overall", c.Scores.Overall, opts)
	fmt.Fprintln(w)

	if opts.Verbose {
		Differences(w, c)
	}
}

func scoreRow(w io.Writer, kind string, r metric.Result, opts PrettyOpts) {
	f1 := fmt.Sprintf("%-10.4f", r.F1)
	if opts.Color {
		f1 = f1Color(r.F1).Sprint(f1)
	}
	fmt.Fprintf(w, "  %-*s %-10.4f %-10.4f %s %4d %4d %4d\n",
		kindColWidth, kind, r.Precision, r.Recall, f1, r.TP, r.FP, r.FN)
}

func f1Color(f1 float64) *color.Color {
	switch {
	case f1 >= 0.8:
		return color.New(color.FgGreen)
	case f1 >= 0.5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// Differences writes the missing/extra fact lists of one comparison.
func Differences(w io.Writer, c *driver.Comparison) {
	section := func(title string, items []string, sign string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(w, "  %s (%d):\n", title, len(items))
		for _, it := range items {
			fmt.Fprintf(w, "    %s %s\n", sign, it)
		}
	}
	section("missing classes", c.Diff.MissingClasses, "-")
	section("extra classes", c.Diff.ExtraClasses, "+")
	section("missing relationships", c.Diff.MissingRelationships, "-")
	section("extra relationships", c.Diff.ExtraRelationships, "+")
	section("missing attributes", c.Diff.MissingAttributes, "-")
	section("extra attributes", c.Diff.ExtraAttributes, "+")
}

// Notices writes the parse notices collected for a document.
func Notices(w io.Writer, path string, bag *diag.Bag) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		if d.Line > 0 {
			fmt.Fprintf(w, "%s:%d: %s: %s\n", path, d.Line, d.Severity, d.Message)
		} else {
			fmt.Fprintf(w, "%s: %s: %s\n", path, d.Severity, d.Message)
		}
	}
}
