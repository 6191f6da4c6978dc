package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected default sample rate 1.0, got %v", cfg.SampleRate)
	}
	if cfg.MetricInterval != 15*time.Second {
		t.Errorf("expected default interval 15s, got %v", cfg.MetricInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Enabled: true, Endpoint: "localhost:4318", SampleRate: 0.5}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg = Config{Enabled: true, SampleRate: 2.0, Endpoint: "localhost:4318"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample rate > 1")
	}

	// Disabled config is always valid.
	cfg = Config{Enabled: false, SampleRate: 99}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected disabled config to validate, got %v", err)
	}
}

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false}, "test", "dev")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown returned %v", err)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	m.RecordRun(ctx, "sync", "ok", time.Second)
	m.RecordPollCycle(ctx, "processing")
	m.RecordWebhook(ctx, "processed")
	m.RecordProviderCall(ctx, "assemblyai", "upload", "ok")
}

func TestNewMetrics(t *testing.T) {
	m, err := NewMetrics(Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ctx := context.Background()
	m.RecordRun(ctx, "sync", "ok", 2*time.Second)
	m.RecordPollCycle(ctx, "completed")
	m.RecordWebhook(ctx, "ignored")
}

func TestSetSpanHelpersWithoutSpan(t *testing.T) {
	// No recording span in context; helpers must not panic.
	ctx := context.Background()
	SetSpanAttribute(ctx, "job_id", "abc")
	SetSpanAttribute(ctx, "attempt", 3)
	SetSpanError(ctx, errors.New("boom"))
}
