package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracer_Disabled(t *testing.T) {
	cfg := DefaultConfig("wellnessspace")
	cfg.Enabled = false

	shutdown, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTracer(disabled) returned error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("shutdown function should not be nil even when disabled")
	}

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown(disabled) returned error: %v", err)
	}
}

func TestInitTracer_Enabled(t *testing.T) {
	// Non-routable endpoint: the exporter never connects but the SDK
	// initializes successfully because batched export is async.
	cfg := Config{
		ServiceName:    "wellnessspace",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   "127.0.0.1:0",
		SampleRate:     1.0,
		Enabled:        true,
	}

	shutdown, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTracer(enabled) returned error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("shutdown function should not be nil")
	}

	tp := otel.GetTracerProvider()
	if _, ok := tp.(*sdktrace.TracerProvider); !ok {
		t.Errorf("expected *sdktrace.TracerProvider, got %T", tp)
	}

	if err := shutdown(context.Background()); err != nil {
		t.Logf("shutdown returned (expected due to unreachable endpoint): %v", err)
	}
}

func TestInitTracer_SamplerSelection(t *testing.T) {
	for _, rate := range []float64{0.0, 0.5} {
		cfg := Config{
			ServiceName:  "wellnessspace",
			Environment:  "test",
			OTLPEndpoint: "127.0.0.1:0",
			SampleRate:   rate,
			Enabled:      true,
		}

		shutdown, err := InitTracer(context.Background(), cfg)
		if err != nil {
			t.Fatalf("InitTracer(sample=%v) returned error: %v", rate, err)
		}
		_ = shutdown(context.Background())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("wellnessspace")

	if cfg.ServiceName != "wellnessspace" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "wellnessspace")
	}
	if cfg.Enabled {
		t.Error("default config should have Enabled = false")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %f, want 1.0", cfg.SampleRate)
	}
	if cfg.OTLPEndpoint != "localhost:4318" {
		t.Errorf("OTLPEndpoint = %q, want %q", cfg.OTLPEndpoint, "localhost:4318")
	}
}

func TestTracer(t *testing.T) {
	tracer := Tracer("sessions")
	if tracer == nil {
		t.Fatal("Tracer should not return nil")
	}

	_, span := tracer.Start(context.Background(), "list-published")
	defer span.End()

	if !span.SpanContext().IsValid() || !span.IsRecording() {
		// With no SDK provider configured the span is a no-op; just
		// verify nothing panics.
		t.Log("span is no-op (expected when no SDK provider is set)")
	}
}
