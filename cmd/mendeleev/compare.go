package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kamilpajak/mendeleev/internal/analyze"
	"github.com/kamilpajak/mendeleev/internal/history"
	"github.com/kamilpajak/mendeleev/internal/parser"
	"github.com/kamilpajak/mendeleev/pkg/models"
)

var (
	compareFormat string
	compareRunID  string
)

var compareCmd = &cobra.Command{
	Use:   "compare <report-file>",
	Short: "Compare a report against a previously stored run",
	Long: `Compare clusters the given report and diffs its failure identities
against a stored run (the most recent one by default).

Examples:
  mendeleev compare ./results.json
  mendeleev compare ./results.json --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.ExactArgs(1),
	RunE: runCompareCmd,
}

func init() {
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "text", "Output format (text, json)")
	compareCmd.Flags().StringVar(&compareRunID, "run", "", "Compare against this stored run instead of the latest")
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID := compareRunID
	if runID == "" {
		latest, err := store.LatestRun(ctx)
		if err != nil {
			return err
		}
		if latest == nil {
			return fmt.Errorf("no stored runs to compare against; analyze with --save first")
		}
		runID = latest.ID
	}
	previous, err := store.Identities(ctx, runID)
	if err != nil {
		return err
	}

	outcome, err := analyze.Run(ctx, analyze.Params{
		Data:        data,
		Format:      parser.Format(""),
		Source:      args[0],
		Deduplicate: true,
		Workers:     cfg.Workers,
		Previous:    previous,
	})
	if err != nil {
		return err
	}

	if compareFormat == "json" {
		return writeJSON(os.Stdout, outcome.Output.Regression)
	}
	printRegression(os.Stdout, outcome.Output.Regression)
	return nil
}

func printRegression(w *os.File, reg *models.RegressionAnalysis) {
	if reg == nil {
		fmt.Fprintln(w, "No regression data.")
		return
	}
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "Regression rate: %.1f%% (%d current, %d previous)\n",
		reg.RegressionRate, reg.TotalCurrent, reg.TotalPrevious)

	printIdentityGroup(w, color.New(color.FgRed), "NEW", reg.NewFailures)
	printIdentityGroup(w, color.New(color.FgYellow), "RECURRING", reg.RecurringFailures)
	printIdentityGroup(w, color.New(color.FgGreen), "RESOLVED", reg.ResolvedFailures)
}

func printIdentityGroup(w *os.File, c *color.Color, label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintln(w)
	_, _ = c.Fprintf(w, "%s (%d)\n", label, len(ids))
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
