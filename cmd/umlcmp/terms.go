package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"umlcmp/internal/metric"
	"umlcmp/internal/terms"
)

var termsCmd = &cobra.Command{
	Use:   "terms [flags] [reference.csv] candidate.csv",
	Short: "Compare extracted terminology lists",
	Long: `Terms compares the "term" column of two CSV exports using the same
normalization policy as the model comparison, so the two comparators always
agree on what counts as the same name.

With a single argument the reference list is resolved from study.toml
(baseline.terms), searched upward from the working directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTerms,
}

func init() {
	termsCmd.Flags().String("study", "", "directory to search for study.toml")
	termsCmd.Flags().StringP("output", "o", "", "write results as JSON to file")
	termsCmd.Flags().BoolP("verbose", "v", false, "show missing/extra terms")
}

// resolveTermsPaths turns the positional arguments into (reference, candidate).
// Two arguments are explicit; one argument resolves the reference from the
// study manifest.
func resolveTermsPaths(cmd *cobra.Command, args []string) (refPath, candPath string, err error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	studyDir, _ := cmd.Flags().GetString("study")
	manifest, found, err := loadStudyManifest(studyDir)
	if err != nil {
		return "", "", err
	}
	if !found || manifest.Config.Baseline.Terms == "" {
		return "", "", fmt.Errorf("no baseline terms list configured; pass both CSV files or set baseline.terms in study.toml")
	}
	return manifest.BaselineTerms(), args[0], nil
}

func runTerms(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	refPath, candPath, err := resolveTermsPaths(cmd, args)
	if err != nil {
		return err
	}

	reference, err := terms.ReadFile(refPath, nil)
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	candidate, err := terms.ReadFile(candPath, nil)
	if err != nil {
		return fmt.Errorf("candidate: %w", err)
	}

	result, diff := terms.Compare(candidate, reference)

	fmt.Printf("%s vs %s\n", candidate.Path, reference.Path)
	fmt.Printf("  reference terms: %d, candidate terms: %d\n\n", reference.Keys.Len(), candidate.Keys.Len())
	fmt.Printf("  precision %.4f  recall %.4f  f1 %.4f  (TP %d, FP %d, FN %d)\n",
		result.Precision, result.Recall, result.F1, result.TP, result.FP, result.FN)

	if verbose {
		if len(diff.Missing) > 0 {
			fmt.Printf("\n  missing terms (%d):\n", len(diff.Missing))
			for _, term := range diff.Missing {
				fmt.Printf("    - %s\n", term)
			}
		}
		if len(diff.Extra) > 0 {
			fmt.Printf("\n  extra terms (%d):\n", len(diff.Extra))
			for _, term := range diff.Extra {
				fmt.Printf("    + %s\n", term)
			}
		}
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()

		doc := struct {
			Reference string        `json:"reference"`
			Candidate string        `json:"candidate"`
			Metrics   metric.Result `json:"metrics"`
			Diff      terms.Diff    `json:"differences"`
		}{reference.Path, candidate.Path, result, diff}

		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	return nil
}
