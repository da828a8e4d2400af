package neo4jdriver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/LucianoPAlmeida/OGMNeo/session"
)

type boltSession struct {
	session neo4j.SessionWithContext
}

func (s *boltSession) ReadTransaction(ctx context.Context, work session.TransactionWork) (any, error) {
	return s.session.ExecuteRead(ctx, managed(work))
}

func (s *boltSession) WriteTransaction(ctx context.Context, work session.TransactionWork) (any, error) {
	return s.session.ExecuteWrite(ctx, managed(work))
}

func (s *boltSession) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}

func managed(work session.TransactionWork) neo4j.ManagedTransactionWork {
	return func(tx neo4j.ManagedTransaction) (any, error) {
		return work(&boltTransaction{tx: tx})
	}
}

// runner is the part of neo4j.ManagedTransaction used here.
type runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error)
}

type boltTransaction struct {
	tx runner
}

// Run executes the statement and collects every record before returning,
// so the result outlives the transaction.
func (t *boltTransaction) Run(ctx context.Context, statement string, params map[string]any) (*session.Result, error) {
	res, err := t.tx.Run(ctx, statement, params)
	if err != nil {
		return nil, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := res.Keys()
	if err != nil && len(records) > 0 {
		keys = records[0].Keys
	}
	return convertResult(keys, records), nil
}
