// Package cypher runs raw statements inside a single transaction.
package cypher

import (
	"context"
	"strings"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/session"
)

const msgStatements = "cypher statements must be a string or a non empty string array"

// Runner executes raw statements through an operation.Executer.
type Runner struct {
	exec *operation.Executer
}

// NewRunner returns a Runner using exec.
func NewRunner(exec *operation.Executer) *Runner {
	return &Runner{exec: exec}
}

// TransactionalRead runs statements in order inside one read transaction and
// returns one result per non-blank statement. Blank statements are skipped.
func (r *Runner) TransactionalRead(ctx context.Context, statements ...string) ([]*session.Result, error) {
	return r.transactional(ctx, "cypher.TransactionalRead", operation.Read, statements)
}

// TransactionalWrite is TransactionalRead inside a write transaction.
func (r *Runner) TransactionalWrite(ctx context.Context, statements ...string) ([]*session.Result, error) {
	return r.transactional(ctx, "cypher.TransactionalWrite", operation.Write, statements)
}

// Run executes a single statement with named parameters.
func (r *Runner) Run(ctx context.Context, kind operation.Kind, statement string, params map[string]any) (*session.Result, error) {
	op, err := operation.New(kind, statement, params, nil)
	if err != nil {
		return nil, err
	}
	return operation.ExecuteAs[*session.Result](ctx, r.exec, op)
}

func (r *Runner) transactional(ctx context.Context, name string, kind operation.Kind, statements []string) ([]*session.Result, error) {
	ops, err := Operations(kind, statements...)
	if err != nil {
		return nil, ogmerr.InvalidArgument(name, msgStatements).WithCause(err)
	}
	if len(ops) == 0 {
		return nil, ogmerr.InvalidArgument(name, msgStatements)
	}

	values, err := r.exec.ExecuteBatch(ctx, kind, ops)
	if err != nil {
		return nil, err
	}
	results := make([]*session.Result, len(values))
	for i, v := range values {
		if results[i], err = operation.As[*session.Result](v); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Operations builds one operation of kind per non-blank statement. The
// operations have no transform, so each yields its *session.Result.
func Operations(kind operation.Kind, statements ...string) ([]*operation.Operation, error) {
	ops := make([]*operation.Operation, 0, len(statements))
	for _, s := range statements {
		if strings.TrimSpace(s) == "" {
			continue
		}
		op, err := operation.New(kind, s, nil, nil)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
