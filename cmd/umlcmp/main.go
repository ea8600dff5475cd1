package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"umlcmp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "umlcmp",
	Short: "Compare PlantUML class-diagram models against a reference",
	Long:  `umlcmp extracts classes, relationships and attributes from PlantUML class diagrams and scores candidate models against a reference with precision, recall and F1.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel comparisons in batch mode (0 = all CPUs)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	return flag == "on" || (flag == "auto" && isTerminal(f))
}
