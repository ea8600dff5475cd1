package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"umlcmp/internal/driver"
	"umlcmp/internal/observ"
	"umlcmp/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare [flags] reference.puml candidate.puml...",
	Short: "Compare candidate models against a reference model",
	Long:  `Compare extracts fact sets from the reference and each candidate, then prints per-kind and overall precision/recall/F1 score blocks.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringP("output", "o", "", "write results as JSON to file")
	compareCmd.Flags().BoolP("verbose", "v", false, "show missing/extra elements and parse notices")
}

func runCompare(cmd *cobra.Command, args []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	timer := observ.NewTimer()
	opts := driver.Options{}

	refPhase := timer.Begin("extract reference")
	reference, err := driver.ExtractPath(args[0], opts)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	timer.End(refPhase, args[0])

	prettyOpts := report.PrettyOpts{
		Color:   useColor(cmd, os.Stdout),
		Verbose: verbose,
	}

	comparisons := make([]*driver.Comparison, 0, len(args)-1)
	for _, candPath := range args[1:] {
		phase := timer.Begin("compare candidate")
		candidate, err := driver.ExtractPath(candPath, opts)
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		c := driver.Compare(reference, candidate)
		timer.End(phase, candPath)
		comparisons = append(comparisons, c)

		report.Comparison(os.Stdout, c, prettyOpts)
		if verbose {
			report.Notices(os.Stderr, candPath, c.Notices)
		}
	}

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		doc := report.FromComparisons(reference.Path, reference.Facts.Stats(), comparisons)
		if err := report.WriteJSON(f, doc); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
