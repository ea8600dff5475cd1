package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"umlcmp/internal/diag"
	"umlcmp/internal/extract"
	"umlcmp/internal/model"
	"umlcmp/internal/report"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] file.puml",
	Short: "Extract the normalized fact sets of one model document",
	Long:  `Extract parses a PlantUML class diagram and prints the classes, relationships and attributes it would contribute to a comparison, after normalization.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	bag := diag.NewBag(100)
	result, err := extract.ExtractFile(args[0], extract.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if bag.HasNotes() && !quiet {
		report.Notices(os.Stderr, args[0], bag)
	}

	switch format {
	case "pretty":
		return writeFactsPretty(os.Stdout, result)
	case "json":
		return writeFactsJSON(os.Stdout, result.Facts)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeFactsPretty(w io.Writer, res *extract.Result) error {
	fmt.Fprintf(w, "declared entities (%d):\n", len(res.Entities))
	for _, e := range res.Entities {
		if e.Enum {
			fmt.Fprintf(w, "  %s (enum, %d values)\n", e.Name, len(e.Attrs))
		} else {
			fmt.Fprintf(w, "  %s (class, %d attrs)\n", e.Name, len(e.Attrs))
		}
	}

	facts := res.Facts
	stats := facts.Stats()
	fmt.Fprintf(w, "classes (%d):\n", stats.Classes)
	for _, c := range sorted(facts.Classes, func(c string) string { return c }) {
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintf(w, "relationships (%d):\n", stats.Relationships)
	for _, r := range sorted(facts.Relationships, model.Relationship.String) {
		fmt.Fprintf(w, "  %s\n", r)
	}
	fmt.Fprintf(w, "attributes (%d):\n", stats.Attributes)
	for _, a := range sorted(facts.Attributes, model.Attribute.String) {
		fmt.Fprintf(w, "  %s\n", a)
	}
	return nil
}

func writeFactsJSON(w io.Writer, facts model.FactSet) error {
	doc := struct {
		Stats         model.Stats `json:"stats"`
		Classes       []string    `json:"classes"`
		Relationships []string    `json:"relationships"`
		Attributes    []string    `json:"attributes"`
	}{
		Stats:         facts.Stats(),
		Classes:       sorted(facts.Classes, func(c string) string { return c }),
		Relationships: sorted(facts.Relationships, model.Relationship.String),
		Attributes:    sorted(facts.Attributes, model.Attribute.String),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func sorted[K comparable](s model.Set[K], render func(K) string) []string {
	out := make([]string, 0, s.Len())
	for k := range s {
		out = append(out, render(k))
	}
	sort.Strings(out)
	return out
}
