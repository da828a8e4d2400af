package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/LucianoPAlmeida/OGMNeo/journal"
	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/session"
)

var (
	// ErrNoProvider is returned when the executer has to open a session but
	// was built without a session provider.
	ErrNoProvider = errors.New("operation: no session provider configured")

	// ErrUnexpectedResult is returned by As and ExecuteAs when the
	// transformed result has another type.
	ErrUnexpectedResult = errors.New("operation: unexpected result type")
)

const sessionRequiredMessage = "you must provide a session object"

// Executer runs operations inside transactions.
//
// Execute and ExecuteBatch open a session from the provider, run exactly one
// transaction of the operation kind and close the session whatever the
// outcome. The InSession and InTransaction variants run on caller-owned
// sessions and transactions, which are never closed by the Executer.
//
// Nothing is retried. Errors from the session provider, the database and
// result transforms are returned unmodified. An Executer is safe for
// concurrent use.
type Executer struct {
	provider session.Provider
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	metrics  *instruments
	journal  journal.Journal
}

// NewExecuter creates an executer opening sessions from provider. The
// provider may be nil when only caller-supplied sessions are used.
func NewExecuter(provider session.Provider, opts ...Option) *Executer {
	e := &Executer{
		provider: provider,
		logger:   slog.Default(),
		tracer:   tracenoop.NewTracerProvider().Tracer(instrumentationName),
		meter:    metricnoop.NewMeterProvider().Meter(instrumentationName),
		journal:  journal.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}

	ins, err := newInstruments(e.meter)
	if err != nil {
		e.logger.Warn("operation metrics disabled", "error", err)
	} else {
		e.metrics = ins
	}
	return e
}

// Execute runs op in a new session, inside a transaction matching its kind,
// and returns the transformed result.
func (e *Executer) Execute(ctx context.Context, op *Operation) (any, error) {
	if !op.valid() {
		return nil, invalidOperation("Executer.Execute")
	}
	return e.single(ctx, op, nil)
}

// ExecuteInSession runs op inside a new transaction of sess. The session is
// left open.
func (e *Executer) ExecuteInSession(ctx context.Context, sess session.Session, op *Operation) (any, error) {
	const name = "Executer.ExecuteInSession"
	if sess == nil {
		return nil, ogmerr.New(name, ogmerr.CodeSessionRequired, sessionRequiredMessage)
	}
	if !op.valid() {
		return nil, invalidOperation(name)
	}
	return e.single(ctx, op, sess)
}

// ExecuteInTransaction runs op inside an already open transaction, so that
// several operations can be composed into one unit with Transact. The
// transaction belongs to the caller, so its journal entry is recorded
// without knowing whether it commits.
func (e *Executer) ExecuteInTransaction(ctx context.Context, tx session.Transaction, op *Operation) (result any, err error) {
	const name = "Executer.ExecuteInTransaction"
	if tx == nil {
		return nil, ogmerr.New(name, ogmerr.CodeSessionRequired, sessionRequiredMessage)
	}
	if !op.valid() {
		return nil, invalidOperation(name)
	}

	ctx, span := e.startSpan(ctx, spanExecute, op.kind,
		attribute.String(attrOperationID, op.id),
		attribute.String(attrStatement, op.statement),
	)
	start := time.Now()
	defer func() {
		e.metrics.record(ctx, op.kind, 1, time.Since(start), err)
		endSpan(span, err)
	}()

	v, entry, err := e.run(ctx, tx, op, "", 0)
	e.record(ctx, nil, entry)
	return v, err
}

// ExecuteBatch runs ops in order inside one transaction of kind and returns
// their transformed results in the same order. The batch is validated
// before any session is opened: it must be non-nil, contain no nil
// operation and only operations of kind. An empty batch returns an empty
// slice without opening a session. The first failure aborts the
// transaction and is returned.
func (e *Executer) ExecuteBatch(ctx context.Context, kind Kind, ops []*Operation) ([]any, error) {
	if err := validateBatch("Executer.ExecuteBatch", kind, ops); err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return []any{}, nil
	}
	return e.batch(ctx, kind, ops, nil)
}

// ExecuteRead runs a batch of read operations in one read transaction.
func (e *Executer) ExecuteRead(ctx context.Context, ops []*Operation) ([]any, error) {
	return e.ExecuteBatch(ctx, Read, ops)
}

// ExecuteWrite runs a batch of write operations in one write transaction.
func (e *Executer) ExecuteWrite(ctx context.Context, ops []*Operation) ([]any, error) {
	return e.ExecuteBatch(ctx, Write, ops)
}

// ExecuteBatchInSession is ExecuteBatch on a caller-owned session.
func (e *Executer) ExecuteBatchInSession(ctx context.Context, sess session.Session, kind Kind, ops []*Operation) ([]any, error) {
	const name = "Executer.ExecuteBatchInSession"
	if sess == nil {
		return nil, ogmerr.New(name, ogmerr.CodeSessionRequired, sessionRequiredMessage)
	}
	if err := validateBatch(name, kind, ops); err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return []any{}, nil
	}
	return e.batch(ctx, kind, ops, sess)
}

// Transact opens a session, runs work inside one transaction of kind and
// closes the session.
func (e *Executer) Transact(ctx context.Context, kind Kind, work session.TransactionWork) (any, error) {
	const name = "Executer.Transact"
	if !kind.IsValid() {
		return nil, invalidKind(name, kind)
	}
	if work == nil {
		return nil, ogmerr.New(name, ogmerr.CodeInvalidOperation, "transaction work must not be nil")
	}
	return e.withSession(ctx, func(sess session.Session) (any, error) {
		return transact(ctx, sess, kind, work)
	})
}

// Read runs work inside a read transaction of a caller-owned session.
func (e *Executer) Read(ctx context.Context, sess session.Session, work session.TransactionWork) (any, error) {
	return e.inSession(ctx, "Executer.Read", sess, Read, work)
}

// Write runs work inside a write transaction of a caller-owned session.
func (e *Executer) Write(ctx context.Context, sess session.Session, work session.TransactionWork) (any, error) {
	return e.inSession(ctx, "Executer.Write", sess, Write, work)
}

func (e *Executer) inSession(ctx context.Context, name string, sess session.Session, kind Kind, work session.TransactionWork) (any, error) {
	if sess == nil {
		return nil, ogmerr.New(name, ogmerr.CodeSessionRequired, sessionRequiredMessage)
	}
	if work == nil {
		return nil, ogmerr.New(name, ogmerr.CodeInvalidOperation, "transaction work must not be nil")
	}
	return transact(ctx, sess, kind, work)
}

func (e *Executer) single(ctx context.Context, op *Operation, sess session.Session) (result any, err error) {
	ctx, span := e.startSpan(ctx, spanExecute, op.kind,
		attribute.String(attrOperationID, op.id),
		attribute.String(attrStatement, op.statement),
	)
	start := time.Now()
	defer func() {
		e.metrics.record(ctx, op.kind, 1, time.Since(start), err)
		endSpan(span, err)
	}()

	var entries []journal.Entry
	work := func(tx session.Transaction) (any, error) {
		v, entry, err := e.run(ctx, tx, op, "", 0)
		entries = append(entries[:0], entry)
		return v, err
	}
	defer func() { e.record(ctx, err, entries...) }()

	if sess != nil {
		return transact(ctx, sess, op.kind, work)
	}
	return e.withSession(ctx, func(s session.Session) (any, error) {
		return transact(ctx, s, op.kind, work)
	})
}

func (e *Executer) batch(ctx context.Context, kind Kind, ops []*Operation, sess session.Session) (results []any, err error) {
	batchID := uuid.NewString()
	ctx, span := e.startSpan(ctx, spanBatch, kind,
		attribute.String(attrBatchID, batchID),
		attribute.Int(attrBatchSize, len(ops)),
	)
	start := time.Now()
	defer func() {
		e.metrics.record(ctx, kind, len(ops), time.Since(start), err)
		endSpan(span, err)
	}()

	var entries []journal.Entry
	work := func(tx session.Transaction) (any, error) {
		entries = entries[:0]
		out := make([]any, len(ops))
		for i, op := range ops {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v, entry, err := e.run(ctx, tx, op, batchID, i)
			entries = append(entries, entry)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	defer func() { e.record(ctx, err, entries...) }()

	var v any
	if sess != nil {
		v, err = transact(ctx, sess, kind, work)
	} else {
		v, err = e.withSession(ctx, func(s session.Session) (any, error) {
			return transact(ctx, s, kind, work)
		})
	}
	if err != nil {
		return nil, err
	}
	results, _ = v.([]any)
	return results, nil
}

// run submits one statement and applies the transform. It is called inside
// the transaction function so a transform error rolls the transaction back.
// The returned entry is recorded by the caller once the transaction outcome
// is known.
func (e *Executer) run(ctx context.Context, tx session.Transaction, op *Operation, batchID string, index int) (any, journal.Entry, error) {
	e.logger.DebugContext(ctx, "running statement",
		"operation_id", op.id,
		"kind", op.kind,
		"statement", op.statement,
	)

	start := time.Now()
	result, err := tx.Run(ctx, op.statement, op.parameters)
	var value any
	if err == nil {
		value, err = op.Apply(result)
	}

	entry := journal.Entry{
		OperationID: op.id,
		BatchID:     batchID,
		Index:       index,
		Kind:        string(op.kind),
		Statement:   op.statement,
		Parameters:  op.parameters,
		StartedAt:   start,
		Duration:    time.Since(start),
		Rows:        result.Len(),
	}
	if err != nil {
		entry.Error = err.Error()
		return nil, entry, err
	}
	return value, entry, nil
}

// record writes entries to the journal. When the transaction failed, entries
// of statements that succeeded inside it are marked rolled back. A nil txErr
// on a caller-owned transaction means the outcome is not known yet.
func (e *Executer) record(ctx context.Context, txErr error, entries ...journal.Entry) {
	ctx = context.WithoutCancel(ctx)
	for _, entry := range entries {
		if txErr != nil && !entry.Failed() {
			entry.RolledBack = true
		}
		if jerr := e.journal.Record(ctx, entry); jerr != nil {
			e.logger.WarnContext(ctx, "failed to record journal entry", "operation_id", entry.OperationID, "error", jerr)
		}
	}
}

// withSession opens a session, calls fn and closes the session whatever fn
// returned.
func (e *Executer) withSession(ctx context.Context, fn func(session.Session) (any, error)) (any, error) {
	if e.provider == nil {
		return nil, ErrNoProvider
	}
	sess, err := e.provider.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ogmerr.New("Executer.NewSession", ogmerr.CodeSessionRequired, sessionRequiredMessage)
	}
	defer func() {
		if cerr := sess.Close(context.WithoutCancel(ctx)); cerr != nil {
			e.logger.WarnContext(ctx, "failed to close session", "error", cerr)
		}
	}()
	return fn(sess)
}

func (e *Executer) startSpan(ctx context.Context, name string, kind Kind, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String(attrKind, string(kind)))
	return e.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func transact(ctx context.Context, sess session.Session, kind Kind, work session.TransactionWork) (any, error) {
	switch kind {
	case Read:
		return sess.ReadTransaction(ctx, work)
	case Write:
		return sess.WriteTransaction(ctx, work)
	}
	return nil, invalidKind("Executer.transact", kind)
}

func validateBatch(name string, kind Kind, ops []*Operation) error {
	if !kind.IsValid() {
		return invalidKind(name, kind)
	}
	if ops == nil {
		return ogmerr.New(name, ogmerr.CodeInvalidBatch, "the parameter operations must be an array")
	}
	for i, op := range ops {
		if op == nil {
			return ogmerr.Newf(name, ogmerr.CodeInvalidBatchElement,
				"the parameter operations must be an array that contains only instances of Operation (nil at index %d)", i)
		}
		if !op.valid() {
			return ogmerr.Newf(name, ogmerr.CodeInvalidBatchElement,
				"the parameter operations must be an array that contains only instances of Operation (invalid at index %d)", i)
		}
		if op.kind != kind {
			return ogmerr.Newf(name, ogmerr.CodeBatchKindMismatch,
				"the parameter operations must be an array that contains only instances of Operation that have type : %s", kind)
		}
	}
	return nil
}

// valid reports whether op was built by a builder: zero values and
// hand-assembled operations have no kind or no statement.
func (op *Operation) valid() bool {
	return op != nil && op.kind.IsValid() && strings.TrimSpace(op.statement) != ""
}

func invalidOperation(name string) error {
	return ogmerr.New(name, ogmerr.CodeInvalidOperation, "the operation must be an instance of Operation")
}

func invalidKind(name string, kind Kind) error {
	return ogmerr.Newf(name, ogmerr.CodeInvalidKind, "operation kind must be READ or WRITE, got %q", string(kind))
}

// As converts a transformed result to T. A nil result yields the zero value.
func As[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %T", ErrUnexpectedResult, v, zero)
	}
	return t, nil
}

// ExecuteAs executes op and converts its result to T.
func ExecuteAs[T any](ctx context.Context, e *Executer, op *Operation) (T, error) {
	v, err := e.Execute(ctx, op)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](v)
}
