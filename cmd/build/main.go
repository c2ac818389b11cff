package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/midbel/effcharts"
	"github.com/midbel/effcharts/dash"
	"github.com/midbel/effcharts/decode"
	"github.com/midbel/effcharts/settings"
	"github.com/spf13/cobra"
)

var (
	settingsFile string
	outputDir    string
	workers      int
	strict       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "build [dashboard.yaml]",
		Short:         "Render every chart of a dashboard file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	rootCmd.Flags().StringVar(&settingsFile, "settings", "", "settings file")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "charts rendered at the same time")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "reject unknown options")

	if err := rootCmd.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("build failed", "err", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	set, err := settings.Load(settingsFile)
	if err != nil {
		return err
	}
	logger := set.Logger(os.Stderr)

	d, err := dash.Load(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		set.Workers = workers
	}
	if outputDir == "" {
		outputDir = set.Output
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		now = time.Now()
		b   = dash.Builder{
			Registry: charts.Builtin(),
			Loader:   decode.Loader{Strict: strict || set.Strict},
			Logger:   logger,
			Workers:  set.Workers,
			Output:   outputDir,
		}
	)
	results, err := b.Build(ctx, d)
	if err != nil {
		return err
	}
	logger.Info("dashboard built", "title", d.Title, "charts", len(results), "elapsed", time.Since(now))
	return nil
}
