package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsenselab/summora/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config, serviceName, serviceVersion string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(serviceName, serviceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", serviceName,
		"endpoint", cfg.Endpoint,
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the pipeline's metric instruments.
// All record methods are safe to call on a nil receiver.
type Metrics struct {
	runTotal      metric.Int64Counter
	runDuration   metric.Float64Histogram
	pollCycles    metric.Int64Counter
	webhookTotal  metric.Int64Counter
	providerTotal metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runTotal, err := meter.Int64Counter("pipeline.run.total",
		metric.WithDescription("Total pipeline runs by mode and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.total counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("pipeline.run.duration",
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.duration histogram: %w", err)
	}

	pollCycles, err := meter.Int64Counter("transcription.poll.cycles",
		metric.WithDescription("Total transcription status poll cycles"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.poll.cycles counter: %w", err)
	}

	webhookTotal, err := meter.Int64Counter("webhook.received.total",
		metric.WithDescription("Webhook notifications by disposition"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating webhook.received.total counter: %w", err)
	}

	providerTotal, err := meter.Int64Counter("provider.call.total",
		metric.WithDescription("Upstream provider calls by provider and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating provider.call.total counter: %w", err)
	}

	return &Metrics{
		runTotal:      runTotal,
		runDuration:   runDuration,
		pollCycles:    pollCycles,
		webhookTotal:  webhookTotal,
		providerTotal: providerTotal,
	}, nil
}

// RecordRun records a completed pipeline run.
func (m *Metrics) RecordRun(ctx context.Context, mode, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("mode", mode),
	))
}

// RecordPollCycle records one transcription status poll.
func (m *Metrics) RecordPollCycle(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.pollCycles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordWebhook records a webhook notification by disposition.
func (m *Metrics) RecordWebhook(ctx context.Context, disposition string) {
	if m == nil {
		return
	}
	m.webhookTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("disposition", disposition),
	))
}

// RecordProviderCall records an upstream provider call.
func (m *Metrics) RecordProviderCall(ctx context.Context, provider, operation, status string) {
	if m == nil {
		return
	}
	m.providerTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}
