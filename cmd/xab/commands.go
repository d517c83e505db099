package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thalesfsp/xab/objective"
)

// --- Global Command Variables ---
var (
	configPath    string
	logLevel      string
	objectiveName string
	rounds        int
	seed          int64
	varianceAware bool
	noise         float64
	historyPath   string
	dotPath       string
	metricsAddr   string

	rootCmd = &cobra.Command{
		Use:          "xab",
		Short:        "Continuous-armed bandit optimization with HCT and VHCT",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

			return nil
		},
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a bandit against a synthetic objective",
		Long: `Run plays the given number of rounds of HCT (or VHCT with
--variance-aware) against one of the built-in objectives and reports the
best point and the cumulative regret.

Objectives: ` + strings.Join(objective.Names(), ", "),
		RunE: runBandit,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "zerolog level (debug, info, warn, error)")

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML or JSON config file")
	runCmd.Flags().StringVar(&objectiveName, "objective", "garland", "objective to maximize")
	runCmd.Flags().IntVar(&rounds, "rounds", 0, "rounds to play (overrides the config)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "split dimension seed (overrides the config)")
	runCmd.Flags().BoolVar(&varianceAware, "variance-aware", false, "use VHCT")
	runCmd.Flags().Float64Var(&noise, "noise", 0, "add uniform noise in [-noise, noise] to every reward")
	runCmd.Flags().StringVar(&historyPath, "history", "", "write the round history as CSV to this file")
	runCmd.Flags().StringVar(&dotPath, "dot", "", "write the final tree in DOT format to this file")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	rootCmd.AddCommand(runCmd)
}
