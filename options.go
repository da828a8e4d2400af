package ogmneo

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/LucianoPAlmeida/OGMNeo/journal"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
)

// Option configures a Connection.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	tracers  trace.TracerProvider
	meters   metric.MeterProvider
	journals []journal.Journal
	closers  []namedCloser
}

type namedCloser struct {
	name   string
	closer io.Closer
}

// WithLogger sets the logger used by the executer and the driver.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider for executions.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *options) {
		o.tracers = provider
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for execution
// metrics.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *options) {
		o.meters = provider
	}
}

// WithJournal adds a statement journal. It can be given more than once.
func WithJournal(j journal.Journal) Option {
	return func(o *options) {
		if j != nil {
			o.journals = append(o.journals, j)
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

func (o *options) executerOptions() []operation.Option {
	eo := []operation.Option{operation.WithLogger(o.logger)}
	if o.tracers != nil {
		eo = append(eo, operation.WithTracerProvider(o.tracers))
	}
	if o.meters != nil {
		eo = append(eo, operation.WithMeterProvider(o.meters))
	}
	switch len(o.journals) {
	case 0:
	case 1:
		eo = append(eo, operation.WithJournal(o.journals[0]))
	default:
		eo = append(eo, operation.WithJournal(journal.Multi(o.journals...)))
	}
	return eo
}
