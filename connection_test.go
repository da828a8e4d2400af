package ogmneo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/LucianoPAlmeida/OGMNeo/config"
	"github.com/LucianoPAlmeida/OGMNeo/journal"
	"github.com/LucianoPAlmeida/OGMNeo/neo4jdriver"
	"github.com/LucianoPAlmeida/OGMNeo/node"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/session"
	"github.com/LucianoPAlmeida/OGMNeo/session/sessiontest"
)

type recordingJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (j *recordingJournal) Record(_ context.Context, e journal.Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	return nil
}

func TestNewWiresServices(t *testing.T) {
	ctx := context.Background()
	ada := session.Node{ID: 1, Labels: []string{"Person"}, Props: map[string]any{"name": "ada"}}
	p := sessiontest.NewProvider().
		On("CREATE (n:Person { name : $name }) RETURN n", sessiontest.NodeRows(ada)).
		On("MATCH (n:Person) RETURN COUNT(n) AS count", sessiontest.CountRows(1)).
		On("MATCH p=(n1)-[r:KNOWS]->(n2) RETURN COUNT(r) AS count", sessiontest.CountRows(0))

	recorder := tracetest.NewSpanRecorder()
	first, second := &recordingJournal{}, &recordingJournal{}
	conn := New(p,
		WithTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))),
		WithJournal(first),
		WithJournal(second),
		WithJournal(nil),
	)

	created, err := conn.Nodes().Create(ctx, map[string]any{"name": "ada"}, "Person")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created["id"])

	n, err := conn.Nodes().CountWithLabel(ctx, "Person")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	exists, err := conn.Relations().Exists(ctx, query.NewRelation("KNOWS"))
	require.NoError(t, err)
	assert.False(t, exists)

	results, err := conn.Cypher().TransactionalRead(ctx, "RETURN 1")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	_, err = conn.Indexes().Create(ctx, "Person", "name")
	require.NoError(t, err)

	assert.Len(t, first.entries, 5)
	assert.Len(t, second.entries, 5)
	assert.Len(t, recorder.Ended(), 5)
	assert.NoError(t, conn.Close(ctx))
	assert.Equal(t, 5, p.Closed())
}

func TestBatchAcrossServices(t *testing.T) {
	ctx := context.Background()
	p := sessiontest.NewProvider().On("MATCH (n:Person) RETURN COUNT(n) AS count", sessiontest.CountRows(2))
	conn := New(p)

	create, err := node.CreateOperation(map[string]any{"name": "bob"}, "Person")
	require.NoError(t, err)
	count, err := node.CountWithLabelOperation("Person")
	require.NoError(t, err)

	results, err := conn.Executer().ExecuteWrite(ctx, []*operation.Operation{create, count})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[1])
	assert.Equal(t, 1, p.Opened())
	assert.Equal(t, 1, p.Commits())
}

func TestNewWithoutProvider(t *testing.T) {
	_, err := New(nil).Nodes().FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, operation.ErrNoProvider)
}

func TestOpenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := Open(ctx, neo4jdriver.Config{URI: "bolt://127.0.0.1:1", SocketConnectTimeout: 200 * time.Millisecond})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestOpenConfigInvalid(t *testing.T) {
	_, err := OpenConfig(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := config.Default()
	cfg.Neo4j.URI = "http://localhost"
	_, err = OpenConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestOpenConfigClosesJournalOnFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Neo4j.URI = "bolt://127.0.0.1:1"
	cfg.Neo4j.SocketConnectTimeout = "200ms"
	cfg.Journal.Log = true
	cfg.Journal.Redis = &config.RedisConfig{URL: "redis://" + mr.Addr()}

	_, err := OpenConfig(ctx, cfg, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.NotContains(t, buf.String(), "failed to close resource")
}

func TestCloseIsIdempotent(t *testing.T) {
	s := &stubCloser{err: errors.New("already closed")}
	conn := New(sessiontest.NewProvider())
	conn.closers = append(conn.closers, namedCloser{name: "stub", closer: s})

	err := conn.Close(context.Background())
	assert.ErrorContains(t, err, "already closed")
	assert.Equal(t, err, conn.Close(context.Background()))
	assert.Equal(t, 1, s.calls)
}

func TestHealth(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rj, err := journal.NewRedis(journal.RedisOptions{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		defer rj.Close()

		p := sessiontest.NewProvider()
		conn := New(p, WithJournal(rj), WithJournal(&recordingJournal{}))
		s := conn.Health(ctx)
		assert.True(t, s.IsHealthy(), s.Message)
		assert.Equal(t, "all 2 check(s) passed", s.Message)
		assert.Equal(t, []string{"RETURN 1"}, p.Statements())
	})

	t.Run("journal down is degraded", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rj, err := journal.NewRedis(journal.RedisOptions{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		defer rj.Close()
		mr.Close()

		s := New(sessiontest.NewProvider(), WithJournal(rj)).Health(ctx)
		assert.True(t, s.IsDegraded())
		assert.Equal(t, []string{"redis journal is unreachable"}, s.Details["degraded_checks"])
	})

	t.Run("database down is unhealthy", func(t *testing.T) {
		p := sessiontest.NewProvider().FailOpen(errors.New("connection refused"))
		s := New(p).Health(ctx)
		assert.True(t, s.IsUnhealthy())
		assert.Equal(t, []string{"neo4j is unreachable"}, s.Details["failed_checks"])
	})
}
