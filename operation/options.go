package operation

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/LucianoPAlmeida/OGMNeo/journal"
)

// Option configures an Executer.
type Option func(*Executer)

// WithLogger sets the logger used for statement and session logging.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTracer sets the tracer used to create execution spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Executer) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithTracerProvider creates the execution tracer from provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(e *Executer) {
		if provider != nil {
			e.tracer = provider.Tracer(instrumentationName)
		}
	}
}

// WithMeterProvider creates the execution metric instruments from provider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(e *Executer) {
		if provider != nil {
			e.meter = provider.Meter(instrumentationName)
		}
	}
}

// WithJournal sets the journal every executed statement is recorded to.
func WithJournal(j journal.Journal) Option {
	return func(e *Executer) {
		if j != nil {
			e.journal = j
		}
	}
}
