package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kamilpajak/mendeleev/internal/analyze"
	"github.com/kamilpajak/mendeleev/internal/history"
	"github.com/kamilpajak/mendeleev/internal/parser"
	"github.com/kamilpajak/mendeleev/internal/regression"
	"github.com/kamilpajak/mendeleev/internal/report"
)

var (
	analyzeFormat     string
	analyzeReportType string
	analyzeTriage     int
	analyzeMinSize    int
	analyzeWorkers    int
	analyzeNoDedup    bool
	analyzeAIScore    float64
	analyzeAINotes    string
	analyzeSave       bool
	analyzeCompare    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <report-file>",
	Short: "Analyze test failures from a report file",
	Long: `Analyze a test report: cluster failures by root cause, classify
severity and ownership, detect systemic patterns, and score confidence.

Examples:
  mendeleev analyze ./results.json
  mendeleev analyze ./junit.xml --format json
  mendeleev analyze ./results.json --triage 5
  mendeleev analyze ./results.json --save --compare`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyzeCmd,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "Output format (text, json, triage)")
	analyzeCmd.Flags().StringVar(&analyzeReportType, "report-type", "", "Report type (playwright, junit); auto-detected when empty")
	analyzeCmd.Flags().IntVar(&analyzeTriage, "triage", 0, "Emit condensed triage output with the top N issues (default size from config)")
	analyzeCmd.Flags().IntVar(&analyzeMinSize, "min-cluster-size", 0, "Drop clusters smaller than this (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Clustering parallelism (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoDedup, "no-dedup", false, "Keep repeat (fingerprint, test, step) observations")
	analyzeCmd.Flags().Float64Var(&analyzeAIScore, "ai-score", -1, "External AI score in [0,1] blended into confidence")
	analyzeCmd.Flags().StringVar(&analyzeAINotes, "ai-notes", "", "External AI explanation; sanitized and attached to output metadata")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Persist this run's failure identities to history")
	analyzeCmd.Flags().BoolVar(&analyzeCompare, "compare", false, "Compare against the previous stored run")
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := context.Background()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	params := analyze.Params{
		Data:           data,
		Format:         parser.Format(analyzeReportType),
		Source:         path,
		Deduplicate:    !analyzeNoDedup,
		MinClusterSize: orDefault(analyzeMinSize, cfg.MinClusterSize),
		Workers:        orDefault(analyzeWorkers, cfg.Workers),
		AINotes:        analyzeAINotes,
	}
	if analyzeAIScore >= 0 {
		score := analyzeAIScore
		params.AIScore = &score
	}

	var store *history.Store
	if analyzeSave || analyzeCompare {
		store, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}
	if analyzeCompare {
		previous, err := previousIdentities(ctx, store)
		if err != nil {
			return err
		}
		params.Previous = previous
	}

	stop := startSpinner(" Analyzing failures...")
	outcome, err := analyze.Run(ctx, params)
	stop()
	if err != nil {
		return err
	}

	if analyzeSave {
		run, err := store.SaveRun(ctx, path, outcome.Report.TotalTests, outcome.Report.FailedTests, outcome.Identities)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved run %s\n", run.ID)
	}

	if analyzeTriage > 0 || analyzeFormat == "triage" {
		triage := report.Triage(outcome.Output, orDefault(analyzeTriage, cfg.TriageSize))
		return writeJSON(os.Stdout, triage)
	}
	if analyzeFormat == "json" {
		return writeJSON(os.Stdout, outcome.Output)
	}
	if !outcome.Report.HasFailures() {
		_, _ = color.New(color.FgGreen).Fprintf(os.Stdout, "All %d tests passed, nothing to analyze\n", outcome.Report.TotalTests)
		return nil
	}
	printOutput(os.Stdout, outcome.Output)
	return nil
}

// previousIdentities loads the identity set of the most recent stored run.
// An empty history is not an error; comparison proceeds against nothing and
// every failure reports as new.
func previousIdentities(ctx context.Context, store *history.Store) ([]regression.Record, error) {
	latest, err := store.LatestRun(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return []regression.Record{}, nil
	}
	return store.Identities(ctx, latest.ID)
}

// startSpinner shows progress on a terminal; it is a no-op otherwise. The
// returned func stops it.
func startSpinner(suffix string) func() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

func writeJSON(w *os.File, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
