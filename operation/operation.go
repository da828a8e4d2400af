// Package operation provides deferred units of database work and the
// executer that runs them.
//
// An Operation pairs statement text and parameters with a read or write
// kind and an optional transform applied to the raw result. Operations are
// built with a Builder and are immutable once built. The Executer runs a
// single Operation in its own transaction, or a homogeneous batch inside one
// shared transaction, returning transformed results in input order.
package operation

import (
	"context"
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/session"
)

// Kind routes an operation to a read or a write transaction.
type Kind string

const (
	// Read operations run inside read transactions
	Read Kind = "READ"
	// Write operations run inside write transactions
	Write Kind = "WRITE"
)

// ParseKind parses a kind case insensitively and returns its normalised form.
func ParseKind(s string) (Kind, error) {
	if kind, ok := normalizeKind(s); ok {
		return kind, nil
	}
	return "", ogmerr.Newf("operation.ParseKind", ogmerr.CodeInvalidKind,
		"operation kind must be READ or WRITE, got %q", s)
}

func normalizeKind(s string) (Kind, bool) {
	kind := Kind(strings.ToUpper(strings.TrimSpace(s)))
	return kind, kind.IsValid()
}

// IsValid reports whether k is Read or Write.
func (k Kind) IsValid() bool {
	return k == Read || k == Write
}

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Transform converts the raw result of an operation into its final value.
type Transform func(result *session.Result) (any, error)

// Operation is one deferred statement execution.
type Operation struct {
	id         string
	statement  string
	parameters map[string]any
	kind       Kind
	transform  Transform
}

// ID returns the unique identifier assigned at build time.
func (o *Operation) ID() string { return o.id }

// Statement returns the Cypher statement text.
func (o *Operation) Statement() string { return o.statement }

// Kind returns the operation kind.
func (o *Operation) Kind() Kind { return o.kind }

// IsRead reports whether the operation runs in a read transaction.
func (o *Operation) IsRead() bool { return o.kind == Read }

// Parameters returns a copy of the named statement parameters, or nil.
func (o *Operation) Parameters() map[string]any {
	if o.parameters == nil {
		return nil
	}
	return maps.Clone(o.parameters)
}

// HasTransform reports whether a transform was set.
func (o *Operation) HasTransform() bool { return o.transform != nil }

// Apply runs the transform on result. Without a transform the raw result
// is returned unchanged.
func (o *Operation) Apply(result *session.Result) (any, error) {
	if o.transform == nil {
		return result, nil
	}
	return o.transform(result)
}

// Run submits the statement to tx and applies the transform.
func (o *Operation) Run(ctx context.Context, tx session.Transaction) (any, error) {
	result, err := tx.Run(ctx, o.statement, o.parameters)
	if err != nil {
		return nil, err
	}
	return o.Apply(result)
}

// Builder assembles an Operation. Each setter returns a new Builder.
//
//	op, err := operation.NewBuilder().
//		Statement("MATCH (n:Person) WHERE n.age > $age RETURN n").
//		Parameters(map[string]any{"age": 18}).
//		Kind(operation.Read).
//		Then(func(r *session.Result) (any, error) { return r.Len(), nil }).
//		Build()
type Builder struct {
	statement  string
	parameters map[string]any
	kind       string
	transform  Transform
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// Statement sets the statement text.
func (b Builder) Statement(statement string) Builder {
	b.statement = statement
	return b
}

// Parameters sets the named statement parameters. The map is copied.
func (b Builder) Parameters(params map[string]any) Builder {
	if params == nil {
		b.parameters = nil
		return b
	}
	b.parameters = maps.Clone(params)
	return b
}

// Kind sets the operation kind.
func (b Builder) Kind(kind Kind) Builder {
	b.kind = string(kind)
	return b
}

// KindString sets the kind from text such as "read" or "WRITE". The value
// is validated by Build.
func (b Builder) KindString(kind string) Builder {
	b.kind = kind
	return b
}

// Then sets the result transform.
func (b Builder) Then(transform Transform) Builder {
	b.transform = transform
	return b
}

// Build validates the builder and returns the operation.
func (b Builder) Build() (*Operation, error) {
	const op = "operation.Build"

	if strings.TrimSpace(b.statement) == "" {
		return nil, ogmerr.New(op, ogmerr.CodeInvalidStatement, "operation statement must be a non empty string")
	}
	kind, ok := normalizeKind(b.kind)
	if !ok {
		return nil, ogmerr.Newf(op, ogmerr.CodeInvalidKind, "operation kind must be READ or WRITE, got %q", b.kind)
	}

	return &Operation{
		id:         uuid.NewString(),
		statement:  b.statement,
		parameters: maps.Clone(b.parameters),
		kind:       kind,
		transform:  b.transform,
	}, nil
}

// New is a shorthand for building an operation in one call.
func New(kind Kind, statement string, params map[string]any, transform Transform) (*Operation, error) {
	return NewBuilder().Kind(kind).Statement(statement).Parameters(params).Then(transform).Build()
}

// NewRead builds a read operation.
func NewRead(statement string, params map[string]any, transform Transform) (*Operation, error) {
	return New(Read, statement, params, transform)
}

// NewWrite builds a write operation.
func NewWrite(statement string, params map[string]any, transform Transform) (*Operation, error) {
	return New(Write, statement, params, transform)
}
