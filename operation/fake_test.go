package operation

import (
	"context"
	"sync"

	"github.com/LucianoPAlmeida/OGMNeo/session"
)

type runCall struct {
	statement string
	params    map[string]any
}

// fakeTx records statements and answers from canned results.
type fakeTx struct {
	mu      sync.Mutex
	calls   []runCall
	results map[string]*session.Result
	errs    map[string]error
}

func newFakeTx() *fakeTx {
	return &fakeTx{results: map[string]*session.Result{}, errs: map[string]error{}}
}

func (tx *fakeTx) Run(_ context.Context, statement string, params map[string]any) (*session.Result, error) {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	tx.calls = append(tx.calls, runCall{statement: statement, params: params})
	if err, ok := tx.errs[statement]; ok {
		return nil, err
	}
	if r, ok := tx.results[statement]; ok {
		return r, nil
	}
	return &session.Result{
		Keys:    []string{"statement"},
		Records: []*session.Record{session.NewRecord([]string{"statement"}, []any{statement})},
	}, nil
}

func (tx *fakeTx) statements() []string {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	out := make([]string, len(tx.calls))
	for i, c := range tx.calls {
		out[i] = c.statement
	}
	return out
}

// fakeSession runs work against a shared fakeTx and tracks its lifecycle.
type fakeSession struct {
	mu         sync.Mutex
	tx         *fakeTx
	reads      int
	writes     int
	closed     int
	committed  int
	rolledBack int
}

func (s *fakeSession) ReadTransaction(_ context.Context, work session.TransactionWork) (any, error) {
	s.mu.Lock()
	s.reads++
	s.mu.Unlock()
	return s.finish(work(s.tx))
}

func (s *fakeSession) WriteTransaction(_ context.Context, work session.TransactionWork) (any, error) {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return s.finish(work(s.tx))
}

func (s *fakeSession) finish(v any, err error) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.rolledBack++
		return nil, err
	}
	s.committed++
	return v, nil
}

func (s *fakeSession) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// fakeProvider hands out fakeSessions sharing one fakeTx.
type fakeProvider struct {
	mu       sync.Mutex
	tx       *fakeTx
	err      error
	sessions []*fakeSession
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{tx: newFakeTx()}
}

func (p *fakeProvider) NewSession(context.Context) (session.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	s := &fakeSession{tx: p.tx}
	p.sessions = append(p.sessions, s)
	return s, nil
}

func (p *fakeProvider) opened() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}
