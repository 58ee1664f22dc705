package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/templui/importstage/internal/config"
	"github.com/templui/importstage/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(config.Load()).ExecuteContext(ctx)
	stop()

	if err != nil {
		if logger.Log != nil {
			logger.Log.Error("command failed", "error", err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
	logger.Flush()
	if err != nil {
		os.Exit(1)
	}
}

// cli holds the configuration resolved once from the environment and the
// global flags, before any subcommand runs.
type cli struct {
	cfg *config.Config
}

// existing returns the configuration for commands that work on a store
// that is already there. Only init may recreate the store.
func (c *cli) existing() *config.Config {
	if c.cfg.Recreate {
		slog.Warn("recreate is only honoured by init, keeping the store")
	}
	keep := false
	return c.cfg.WithOverrides(config.Overrides{Recreate: &keep})
}

func newRootCmd(base *config.Config) *cobra.Command {
	c := &cli{cfg: base}

	var (
		storeDir    string
		batchSize   int
		numericKeys bool
		verbose     bool
	)

	rootCmd := &cobra.Command{
		Use:           "stagingctl",
		Short:         "Inspect, repair and drain an import staging store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.cfg = base.WithOverrides(config.Overrides{
				Dir:         &storeDir,
				BatchSize:   &batchSize,
				NumericKeys: &numericKeys,
			})
			logger.Init(logger.Options{
				Development: c.cfg.IsDevelopment(),
				Verbose:     verbose,
				SentryDSN:   c.cfg.SentryDSN,
			})
		},
	}

	// Persistent flags override the environment
	rootCmd.PersistentFlags().StringVar(&storeDir, "dir", base.Dir, "Store directory or set STAGING_DIR env")
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", base.BatchSize, "Rows per batch or set STAGING_BATCH_SIZE env")
	rootCmd.PersistentFlags().BoolVar(&numericKeys, "numeric-keys", base.NumericKeys, "Use INTEGER key columns or set STAGING_NUMERIC_KEYS env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(initCmd(c))
	rootCmd.AddCommand(statsCmd(c))
	rootCmd.AddCommand(repairCmd(c))
	rootCmd.AddCommand(queryCmd(c))
	rootCmd.AddCommand(drainCmd(c))
	rootCmd.AddCommand(snapshotCmd(c))
	return rootCmd
}
