package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"umlcmp/internal/driver"
	"umlcmp/internal/observ"
	"umlcmp/internal/report"
)

var tableCmd = &cobra.Command{
	Use:   "table [flags]",
	Short: "Compare every run against the baseline and print a markdown table",
	Long: `Table discovers the run directories of a study, scores each run's model
against the baseline model, and prints the markdown comparison table with
per-kind metrics, micro-averaged overall scores and mean rows. A failed run is
reported and excluded from the aggregate; it does not abort the batch.

The study layout is read from study.toml (searched upward from the working
directory) unless --reference and --runs override it.`,
	Args: cobra.NoArgs,
	RunE: runTable,
}

func init() {
	tableCmd.Flags().String("study", "", "directory to search for study.toml")
	tableCmd.Flags().String("reference", "", "baseline model document (overrides study.toml)")
	tableCmd.Flags().String("runs", "", "runs directory (overrides study.toml)")
	tableCmd.Flags().String("pattern", "", "run directory glob (default run_*)")
	tableCmd.Flags().String("model", "", "model filename inside each run directory")
	tableCmd.Flags().StringP("output", "o", "", "write the markdown table to file instead of stdout")
	tableCmd.Flags().String("json", "", "also write the full results document as JSON to file")
	tableCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	tableCmd.Flags().Bool("cache", false, "reuse cached fact sets for unchanged documents")
}

type tableLayout struct {
	reference string
	runsDir   string
	pattern   string
	model     string
}

// resolveLayout merges the flags with study.toml. Flags win.
func resolveLayout(cmd *cobra.Command) (tableLayout, error) {
	layout := tableLayout{pattern: "run_*", model: "model.puml"}

	studyDir, _ := cmd.Flags().GetString("study")
	manifest, found, err := loadStudyManifest(studyDir)
	if err != nil {
		return tableLayout{}, err
	}
	if found {
		layout.reference = manifest.ReferenceModel()
		layout.runsDir = manifest.RunsDir()
		layout.pattern = manifest.RunPattern()
		layout.model = manifest.RunModel()
	}

	if v, _ := cmd.Flags().GetString("reference"); v != "" {
		layout.reference = v
	}
	if v, _ := cmd.Flags().GetString("runs"); v != "" {
		layout.runsDir = v
	}
	if v, _ := cmd.Flags().GetString("pattern"); v != "" {
		layout.pattern = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		layout.model = v
	}

	if layout.reference == "" || layout.runsDir == "" {
		return tableLayout{}, fmt.Errorf("%s", noStudyTomlMessage)
	}
	return layout, nil
}

func runTable(cmd *cobra.Command, _ []string) error {
	layout, err := resolveLayout(cmd)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	opts := driver.Options{Jobs: jobs}
	if !quiet {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	}
	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		cache, err := driver.OpenFactCache("umlcmp")
		if err != nil {
			return fmt.Errorf("open fact cache: %w", err)
		}
		opts.Cache = cache
	}

	runs, err := driver.DiscoverRuns(layout.runsDir, layout.pattern, layout.model)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return fmt.Errorf("no run directories matching %q under %s", layout.pattern, layout.runsDir)
	}

	timer := observ.NewTimer()
	phase := timer.Begin("batch compare")

	var batch *driver.BatchResult
	if shouldUseTUI(mode) {
		batch, err = runBatchWithUI(cmd.Context(), "comparing runs against "+layout.reference, layout.reference, runs, opts)
	} else {
		batch, err = driver.CompareBatch(cmd.Context(), layout.reference, runs, opts, nil)
	}
	if err != nil {
		return fmt.Errorf("batch comparison failed: %w", err)
	}
	timer.End(phase, fmt.Sprintf("%d runs", len(runs)))

	var out io.Writer = os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	report.Table(out, batch)

	if jsonPath, _ := cmd.Flags().GetString("json"); jsonPath != "" {
		f, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("create JSON file: %w", err)
		}
		defer f.Close()
		if err := report.WriteJSON(f, report.FromBatch(batch)); err != nil {
			return fmt.Errorf("write JSON results: %w", err)
		}
	}

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
