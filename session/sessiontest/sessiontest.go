// Package sessiontest provides an in-memory session.Provider for tests.
//
// A Provider answers statements from canned results keyed by statement text
// and records every statement it was asked to run, with its parameters and
// the transaction kind it ran under.
package sessiontest

import (
	"context"
	"sync"

	"github.com/LucianoPAlmeida/OGMNeo/session"
)

// Call is one statement seen by a fake transaction.
type Call struct {
	Statement string
	Params    map[string]any
	Write     bool
}

// Provider is a fake session provider. The zero value is not usable; use
// NewProvider.
type Provider struct {
	mu       sync.Mutex
	results  map[string]*session.Result
	errs     map[string]error
	fallback *session.Result
	openErr  error
	calls    []Call
	opened   int
	closed   int
	commits  int
	rollback int
}

// NewProvider returns a provider answering unknown statements with an empty
// result.
func NewProvider() *Provider {
	return &Provider{
		results:  map[string]*session.Result{},
		errs:     map[string]error{},
		fallback: &session.Result{},
	}
}

// On sets the result returned for statement.
func (p *Provider) On(statement string, result *session.Result) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[statement] = result
	return p
}

// Fail makes statement fail with err.
func (p *Provider) Fail(statement string, err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[statement] = err
	return p
}

// Default sets the result for statements without a canned answer.
func (p *Provider) Default(result *session.Result) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fallback = result
	return p
}

// FailOpen makes NewSession fail with err.
func (p *Provider) FailOpen(err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openErr = err
	return p
}

// NewSession implements session.Provider.
func (p *Provider) NewSession(context.Context) (session.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.openErr != nil {
		return nil, p.openErr
	}
	p.opened++
	return &fakeSession{p: p}, nil
}

// Calls returns a copy of the statements run so far.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// Statements returns the text of the statements run so far.
func (p *Provider) Statements() []string {
	calls := p.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Statement
	}
	return out
}

// Opened returns the number of sessions opened.
func (p *Provider) Opened() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opened
}

// Closed returns the number of sessions closed.
func (p *Provider) Closed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Commits returns the number of transactions whose work succeeded.
func (p *Provider) Commits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commits
}

// Rollbacks returns the number of transactions whose work failed.
func (p *Provider) Rollbacks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rollback
}

type fakeSession struct {
	p *Provider
}

func (s *fakeSession) ReadTransaction(_ context.Context, work session.TransactionWork) (any, error) {
	return s.transact(work, false)
}

func (s *fakeSession) WriteTransaction(_ context.Context, work session.TransactionWork) (any, error) {
	return s.transact(work, true)
}

func (s *fakeSession) transact(work session.TransactionWork, write bool) (any, error) {
	v, err := work(&fakeTx{p: s.p, write: write})
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	if err != nil {
		s.p.rollback++
		return nil, err
	}
	s.p.commits++
	return v, nil
}

func (s *fakeSession) Close(context.Context) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	s.p.closed++
	return nil
}

type fakeTx struct {
	p     *Provider
	write bool
}

func (tx *fakeTx) Run(_ context.Context, statement string, params map[string]any) (*session.Result, error) {
	p := tx.p
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, Call{Statement: statement, Params: params, Write: tx.write})
	if err, ok := p.errs[statement]; ok {
		return nil, err
	}
	if r, ok := p.results[statement]; ok {
		return r, nil
	}
	return p.fallback, nil
}

// Rows builds a result with the given column keys and rows.
func Rows(keys []string, rows ...[]any) *session.Result {
	r := &session.Result{Keys: keys}
	for _, row := range rows {
		r.Records = append(r.Records, session.NewRecord(keys, row))
	}
	return r
}

// NodeRows builds a result with one "n" column holding the given nodes.
func NodeRows(nodes ...session.Node) *session.Result {
	rows := make([][]any, len(nodes))
	for i, n := range nodes {
		rows[i] = []any{n}
	}
	return Rows([]string{"n"}, rows...)
}

// CountRows builds a result with a single "count" value.
func CountRows(n int64) *session.Result {
	return Rows([]string{"count"}, []any{n})
}
