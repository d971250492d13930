package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamilpajak/mendeleev/internal/history"
)

var (
	runsLimit  int
	runsFormat string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored analysis runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsCmd,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	runsCmd.Flags().StringVarP(&runsFormat, "format", "f", "text", "Output format (text, json)")
}

func runRunsCmd(cmd *cobra.Command, args []string) error {
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), runsLimit)
	if err != nil {
		return err
	}

	if runsFormat == "json" {
		return writeJSON(os.Stdout, runs)
	}
	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tTESTS\tFAILED")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Source, run.TotalTests, run.Failed)
	}
	return tw.Flush()
}
