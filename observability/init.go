package observability

import (
	"context"
	"time"
)

// ShutdownFunc flushes and stops the telemetry providers.
type ShutdownFunc func(ctx context.Context) error

// Init initializes tracing and metrics from the config. When the config is
// disabled it returns a no-op shutdown and no error.
func Init(ctx context.Context, cfg Config, serviceName, serviceVersion string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tp, err := InitTracer(ctx, cfg, serviceName, serviceVersion)
	if err != nil {
		return nil, err
	}

	mp, err := InitMeter(ctx, cfg, serviceName, serviceVersion)
	if err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tp.Shutdown(shutdownCtx)
		return nil, err
	}

	return func(ctx context.Context) error {
		mpErr := mp.Shutdown(ctx)
		if tpErr := tp.Shutdown(ctx); tpErr != nil {
			return tpErr
		}
		return mpErr
	}, nil
}
