package operation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/LucianoPAlmeida/OGMNeo/operation"

// Span names.
const (
	spanExecute = "ogmneo.operation.execute"
	spanBatch   = "ogmneo.operation.batch"
)

// Attribute keys.
const (
	attrOperationID = "ogmneo.operation.id"
	attrKind        = "ogmneo.operation.kind"
	attrStatement   = "db.query.text"
	attrBatchID     = "ogmneo.batch.id"
	attrBatchSize   = "ogmneo.batch.size"
	attrOutcome     = "ogmneo.outcome"
)

// instruments holds the metric instruments of an Executer. They are created
// once in NewExecuter and reused for every execution.
type instruments struct {
	// operations counts executed operations by kind and outcome
	operations metric.Int64Counter

	// duration records execution duration in milliseconds
	duration metric.Float64Histogram
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	ins := &instruments{}
	var err error

	ins.operations, err = meter.Int64Counter(
		"ogmneo.operations",
		metric.WithDescription("Number of operations executed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create operations counter: %w", err)
	}

	ins.duration, err = meter.Float64Histogram(
		"ogmneo.operation.duration",
		metric.WithDescription("Operation execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return ins, nil
}

func (ins *instruments) record(ctx context.Context, kind Kind, n int, elapsed time.Duration, err error) {
	if ins == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	opts := metric.WithAttributes(
		attribute.String(attrKind, string(kind)),
		attribute.String(attrOutcome, outcome),
	)
	ins.operations.Add(ctx, int64(n), opts)
	ins.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), opts)
}

// endSpan sets the span status from err and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
