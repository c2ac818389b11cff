package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/midbel/effcharts"
	"github.com/midbel/effcharts/serve"
	"github.com/midbel/effcharts/settings"
	"github.com/spf13/cobra"
)

var (
	settingsFile string
	listenAddr   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "serve",
		Short:         "Render charts over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	rootCmd.Flags().StringVar(&settingsFile, "settings", "", "settings file")
	rootCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address")

	if err := rootCmd.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("serve failed", "err", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	set, err := settings.Load(settingsFile)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		set.Listen = listenAddr
	}
	var (
		logger = set.Logger(os.Stderr)
		srv    = serve.New(charts.Builtin(), logger, serve.Options{
			Width:     set.Width,
			Height:    set.Height,
			Precision: set.Precision,
			Strict:    set.Strict,
			Timeout:   set.Timeout,
		})
		errc = make(chan error, 1)
	)
	go func() {
		errc <- srv.Start(set.Listen)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}
