package runner

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/preston-bernstein/permit-availability/internal/config"
	"github.com/preston-bernstein/permit-availability/internal/logging"
	"github.com/preston-bernstein/permit-availability/internal/metrics"
)

var metricsSetup = metrics.Setup

// buildMetrics never fails: telemetry problems degrade to an in-memory recorder.
func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, prometheus.Gatherer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, gatherer, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any("error", err))
		return metrics.NewRecorder(), nil, nil
	}
	return rec, gatherer, shutdown
}
