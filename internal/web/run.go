package web

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/cloudsaver/internal/config"
	"github.com/JonMunkholm/cloudsaver/internal/core"
	"github.com/JonMunkholm/cloudsaver/internal/metrics"
	"github.com/JonMunkholm/cloudsaver/internal/report"
)

// Run builds the server from cfg, serves until ctx is cancelled, then shuts
// down gracefully within cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config) error {
	limiter := core.NewAnalysisLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime)

	renderer := report.NewRenderer(report.Options{
		FontPath:   cfg.Report.FontPath,
		FontFamily: cfg.Report.FontFamily,
		Logger:     slog.Default(),
	})
	slog.Info("report renderer ready",
		"font_family", cfg.Report.FontFamily,
		"unicode_font", renderer.UnicodeFont(),
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.WatchLimiter(limiter)
	}

	srv := NewServer(cfg, limiter, renderer, m)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
