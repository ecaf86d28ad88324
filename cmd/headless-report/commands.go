package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Squid-Sense/internal/config"
	"github.com/Garsondee/Squid-Sense/internal/persist"
	"github.com/Garsondee/Squid-Sense/internal/report"
	"github.com/Garsondee/Squid-Sense/internal/telemetry"
	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// runOptions are the flags of the root command.
type runOptions struct {
	configPath  string
	runs        int
	seedBase    int64
	seedStep    int64
	population  int
	top         int
	parallel    int
	save        bool
	metricsAddr string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:           "headless-report",
		Short:         "Run seeded tournaments without a window and print what happened",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("population") {
				opts.population = cfg.Population
			}
			if !cmd.Flags().Changed("metrics-addr") {
				opts.metricsAddr = cfg.MetricsAddr
			}
			logger := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format, stderr)
			return runReport(cmd.Context(), cfg, opts, stdout, logger)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file (default $"+config.EnvConfigPath+")")

	rf := cmd.Flags()
	rf.IntVar(&opts.runs, "runs", 5, "number of tournaments to run")
	rf.Int64Var(&opts.seedBase, "seed-base", 42, "seed of run 1")
	rf.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	rf.IntVar(&opts.population, "population", tournament.DefaultPopulation, "competitors per tournament")
	rf.IntVar(&opts.top, "top", 10, "ranking entries printed per run (0 = all)")
	rf.IntVar(&opts.parallel, "parallel", 4, "tournaments run concurrently")
	rf.BoolVar(&opts.save, "save", false, "store the last run in the configured save slot")
	rf.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics on this address until interrupted")

	cmd.AddCommand(newSavedCmd(&opts, stdout, stderr))
	return cmd
}

func newSavedCmd(opts *runOptions, stdout, stderr io.Writer) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Print the tournament stored in the save slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			logger := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format, stderr)
			return printSaved(cmd.Context(), cfg, top, stdout, logger)
		},
	}
	cmd.Flags().IntVar(&top, "top", 20, "ranking entries printed (0 = all)")
	return cmd
}

// loadConfig reads path, falling back to $SQUID_CONFIG.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	return config.Load(path)
}

func (o runOptions) validate() error {
	switch {
	case o.runs <= 0:
		return errors.New("--runs must be > 0")
	case o.population < 0:
		return errors.New("--population must be >= 0")
	case o.parallel <= 0:
		return errors.New("--parallel must be > 0")
	case o.top < 0:
		return errors.New("--top must be >= 0")
	}
	return nil
}

// seedFor is the seed of the i-th run, counting from zero.
func (o runOptions) seedFor(i int) int64 {
	return o.seedBase + int64(i)*o.seedStep
}

// runReport plays every run, prints them in order and the aggregate, and
// optionally saves the last run and serves metrics.
func runReport(ctx context.Context, cfg config.Config, opts runOptions, out io.Writer, logger *slog.Logger) error {
	if err := opts.validate(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewRoundMetrics(reg)

	runs := make([]report.RunReport, opts.runs)
	var last *tournament.Tournament

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallel)
	for i := 0; i < opts.runs; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seed := opts.seedFor(i)
			tr, err := tournament.New(
				tournament.WithSeed(seed),
				tournament.WithPopulation(opts.population),
				tournament.WithField(cfg.FieldWidth, cfg.FieldHeight),
				tournament.WithLogger(logger),
				tournament.WithObserver(metrics),
			)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			run, err := report.CollectRun(i+1, tr)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			runs[i] = run
			if i == opts.runs-1 {
				last = tr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	p := report.NewPrinter(out, opts.top)
	p.Header(opts.runs, opts.population, opts.seedBase, opts.seedStep)
	rep := report.NewReporter()
	for _, run := range runs {
		rep.Add(run)
		p.Run(run)
	}
	p.Aggregate(rep.Aggregate())

	if opts.save {
		if err := saveRun(ctx, cfg, last, logger); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s (run_id=%s)\n", report.MsgSaved, last.RunID())
	}

	if opts.metricsAddr != "" {
		return serveMetrics(ctx, opts.metricsAddr, reg, logger)
	}
	return nil
}

func saveRun(ctx context.Context, cfg config.Config, t *tournament.Tournament, logger *slog.Logger) error {
	slot, err := persist.OpenSlot(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer slot.Close()
	return persist.NewBridge(slot, logger).Save(ctx, t)
}

func printSaved(ctx context.Context, cfg config.Config, top int, out io.Writer, logger *slog.Logger) error {
	slot, err := persist.OpenSlot(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer slot.Close()

	snap, err := persist.NewBridge(slot, logger).Peek(ctx)
	if errors.Is(err, persist.ErrNoSave) {
		fmt.Fprintln(out, report.MsgNoSave)
		return nil
	}
	if err != nil {
		return err
	}
	report.NewPrinter(out, top).Snapshot(snap)
	return nil
}

// serveMetrics blocks serving reg on addr until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string, reg prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
