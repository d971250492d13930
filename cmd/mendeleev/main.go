package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamilpajak/mendeleev/internal/config"
	"github.com/kamilpajak/mendeleev/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgPath string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mendeleev",
	Short: "Deterministic test-failure classification and clustering",
	Long: `Mendeleev ingests test reports from multiple frameworks, reduces
redundant failures to root causes, and produces confidence-scored,
regression-aware triage reports. All classification is static-rule based:
deterministic, explainable, and offline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		logging.Setup(cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
