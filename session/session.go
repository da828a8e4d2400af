// Package session defines the boundary between the operation executer and
// the database driver.
//
// A Provider opens Sessions, a Session runs work inside read or write
// transactions, and a Transaction runs statements. Results are collected
// eagerly into a Result before the transaction function returns, so they stay
// valid after the transaction has been committed and the session closed.
package session

import "context"

// Transaction runs statements inside an open transaction.
type Transaction interface {
	// Run submits a statement with its named parameters and returns the
	// fully collected result.
	Run(ctx context.Context, statement string, params map[string]any) (*Result, error)
}

// TransactionWork is the unit of work run inside a transaction. Returning an
// error rolls the transaction back.
type TransactionWork func(tx Transaction) (any, error)

// Session runs transactions of a given kind. A Session is not safe for
// concurrent use.
type Session interface {
	// ReadTransaction runs work inside a read transaction and returns its value.
	ReadTransaction(ctx context.Context, work TransactionWork) (any, error)

	// WriteTransaction runs work inside a write transaction and returns its value.
	WriteTransaction(ctx context.Context, work TransactionWork) (any, error)

	// Close releases the session.
	Close(ctx context.Context) error
}

// Provider opens new sessions.
type Provider interface {
	NewSession(ctx context.Context) (Session, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (Session, error)

// NewSession calls f(ctx).
func (f ProviderFunc) NewSession(ctx context.Context) (Session, error) {
	return f(ctx)
}
