package main

import (
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/thalesfsp/xab"
	"github.com/thalesfsp/xab/objective"
)

func runBandit(cmd *cobra.Command, args []string) error {
	config, err := xab.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("rounds") {
		config.Rounds = rounds
	}
	if cmd.Flags().Changed("seed") {
		config.Seed = seed
	}
	if varianceAware {
		config.VarianceAware = true
	}

	target, err := objective.Lookup(objectiveName)
	if err != nil {
		return err
	}

	logger := log.With().Str("run", uuid.NewString()).Str("objective", objectiveName).Logger()

	reg := prometheus.NewRegistry()
	collector, err := xab.NewPrometheusCollector(reg, "xab")
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		go serveMetrics(reg, metricsAddr)
	}

	domain := make(xab.Domain, 0, len(target.Domain()))
	for _, r := range target.Domain() {
		domain = append(domain, xab.ParameterRange[float64]{Min: r[0], Max: r[1]})
	}

	newEngine, name := xab.NewHCT, "HCT"
	if config.VarianceAware {
		newEngine, name = xab.NewVHCT, "VHCT"
	}

	engine, err := newEngine(config, domain, xab.NewBinaryPartition, xab.WithLogger(logger), xab.WithCollector(collector))
	if err != nil {
		return err
	}

	logger.Info().
		Str("algorithm", name).
		Int("rounds", config.Rounds).
		Int64("seed", config.Seed).
		Float64("nu", config.Nu).
		Float64("rho", config.Rho).
		Float64("delta", config.Delta).
		Msg("starting run")

	noiseRng := rand.New(rand.NewSource(uint64(config.Seed)))

	var regret float64
	history, err := xab.Run(engine, func(point []float64) (float64, error) {
		value := target.F(point)
		regret += target.Max() - value

		return value + noise*(2*noiseRng.Float64()-1), nil
	}, config.Rounds, nil)
	if err != nil {
		return err
	}

	partition := engine.Partition()
	logger.Info().
		Floats64("last_point", engine.LastPoint()).
		Float64("cumulative_regret", regret).
		Int("tree_nodes", partition.Size()).
		Int("tree_depth", partition.Depth()-1).
		Msg("completed run")

	if historyPath != "" {
		if err := writeFile(historyPath, func(f *os.File) error { return xab.WriteHistory(f, history) }); err != nil {
			return err
		}
		logger.Info().Str("path", historyPath).Msg("stored round history")
	}

	if dotPath != "" {
		dot, err := engine.Dot()
		if err != nil {
			return err
		}
		if err := writeFile(dotPath, func(f *os.File) error {
			_, err := f.WriteString(dot)
			return err
		}); err != nil {
			return err
		}
		logger.Info().Str("path", dotPath).Msg("stored tree")
	}

	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	return errors.Wrapf(write(f), "failed to write %s", path)
}

func serveMetrics(reg *prometheus.Registry, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
	}
}
