package cypher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/session/sessiontest"
)

func TestTransactionalRead(t *testing.T) {
	p := sessiontest.NewProvider().
		On("MATCH (n) RETURN COUNT(n) AS count", sessiontest.CountRows(4)).
		On("RETURN 1 AS count", sessiontest.CountRows(1))
	r := NewRunner(operation.NewExecuter(p))

	results, err := r.TransactionalRead(context.Background(), "MATCH (n) RETURN COUNT(n) AS count", "  ", "RETURN 1 AS count")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(4), results[0].First().Values[0])
	assert.Equal(t, int64(1), results[1].First().Values[0])

	assert.Equal(t, 1, p.Opened())
	assert.Equal(t, 1, p.Commits())
	for _, c := range p.Calls() {
		assert.False(t, c.Write)
	}
}

func TestTransactionalWriteRollsBackOnError(t *testing.T) {
	boom := errors.New("syntax error")
	p := sessiontest.NewProvider().Fail("CREATE (n:Broken", boom)
	r := NewRunner(operation.NewExecuter(p))

	_, err := r.TransactionalWrite(context.Background(), "CREATE (n:A)", "CREATE (n:Broken", "CREATE (n:C)")
	assert.Same(t, boom, err)
	assert.Equal(t, []string{"CREATE (n:A)", "CREATE (n:Broken"}, p.Statements())
	assert.Equal(t, 1, p.Rollbacks())
	assert.True(t, p.Calls()[0].Write)
}

func TestTransactionalRequiresStatements(t *testing.T) {
	p := sessiontest.NewProvider()
	r := NewRunner(operation.NewExecuter(p))

	for _, statements := range [][]string{nil, {}, {"", " \n"}} {
		_, err := r.TransactionalWrite(context.Background(), statements...)
		var e *ogmerr.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, msgStatements, e.Message)
	}
	assert.Zero(t, p.Opened())
}

func TestRun(t *testing.T) {
	p := sessiontest.NewProvider().On("RETURN $x AS count", sessiontest.CountRows(7))
	r := NewRunner(operation.NewExecuter(p))

	res, err := r.Run(context.Background(), operation.Write, "RETURN $x AS count", map[string]any{"x": 7})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Len())
	assert.Equal(t, map[string]any{"x": 7}, p.Calls()[0].Params)

	_, err = r.Run(context.Background(), operation.Kind("MAYBE"), "RETURN 1", nil)
	assert.ErrorIs(t, err, ogmerr.ErrInvalidKind)
}
