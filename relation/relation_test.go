package relation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/session"
	"github.com/LucianoPAlmeida/OGMNeo/session/sessiontest"
)

var (
	ada   = session.Node{ID: 1, Labels: []string{"Person"}, Props: map[string]any{"name": "ada"}}
	bob   = session.Node{ID: 2, Labels: []string{"Person"}, Props: map[string]any{"name": "bob"}}
	knows = session.Relationship{ID: 9, StartID: 1, EndID: 2, Type: "KNOWS", Props: map[string]any{"since": int64(2010)}}

	knowsMap = map[string]any{"id": int64(9), "type": "KNOWS", "start": int64(1), "end": int64(2), "since": int64(2010)}
)

func newService(p *sessiontest.Provider) *Service {
	return NewService(operation.NewExecuter(p))
}

func TestOperationStatements(t *testing.T) {
	q := query.NewRelation("KNOWS").StartNodeID(1)

	tests := []struct {
		name      string
		build     func() (*operation.Operation, error)
		statement string
		kind      operation.Kind
	}{
		{
			name: "relate",
			build: func() (*operation.Operation, error) {
				return RelateOperation(1, "KNOWS", 2, map[string]any{"since": 2010}, false)
			},
			statement: "MATCH (n1) WHERE ID(n1) = 1 MATCH (n2) WHERE ID(n2) = 2 CREATE (n1)-[r:KNOWS { since : $since }]->(n2) RETURN r",
			kind:      operation.Write,
		},
		{
			name:      "relate unique without properties",
			build:     func() (*operation.Operation, error) { return RelateOperation(0, "KNOWS", 2, nil, true) },
			statement: "MATCH (n1) WHERE ID(n1) = 0 MATCH (n2) WHERE ID(n2) = 2 MERGE (n1)-[r:KNOWS]->(n2) RETURN r",
			kind:      operation.Write,
		},
		{
			name:      "update",
			build:     func() (*operation.Operation, error) { return UpdateOperation(9, map[string]any{"since": 2011}) },
			statement: "MATCH p=(n1)-[r]->(n2) WHERE ID(r) = 9 SET r += { since : $since } RETURN r",
			kind:      operation.Write,
		},
		{
			name:      "update many",
			build:     func() (*operation.Operation, error) { return UpdateManyOperation(map[string]any{"weight": 1}, q) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 SET r += { weight : $weight } RETURN r",
			kind:      operation.Write,
		},
		{
			name:      "find",
			build:     func() (*operation.Operation, error) { return FindOperation(q) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 RETURN r",
			kind:      operation.Read,
		},
		{
			name:      "find one",
			build:     func() (*operation.Operation, error) { return FindOneOperation(q) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 RETURN r LIMIT 1",
			kind:      operation.Read,
		},
		{
			name:      "find populated",
			build:     func() (*operation.Operation, error) { return FindPopulatedOperation(q) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 RETURN r, n1, n2",
			kind:      operation.Read,
		},
		{
			name:      "find one populated",
			build:     func() (*operation.Operation, error) { return FindOnePopulatedOperation(q) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 RETURN r, n1, n2 LIMIT 1",
			kind:      operation.Read,
		},
		{
			name:      "find nodes",
			build:     func() (*operation.Operation, error) { return FindNodesOperation(q, query.EndEndpoint, true) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 RETURN DISTINCT n2",
			kind:      operation.Read,
		},
		{
			name:      "count",
			build:     func() (*operation.Operation, error) { return CountOperation(q) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 RETURN COUNT(r) AS count",
			kind:      operation.Read,
		},
		{
			name:      "exists",
			build:     func() (*operation.Operation, error) { return ExistsOperation(q) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 RETURN COUNT(r) AS count",
			kind:      operation.Read,
		},
		{
			name:      "delete",
			build:     func() (*operation.Operation, error) { return DeleteOperation(9) },
			statement: "MATCH p=(n1)-[r]->(n2) WHERE ID(r) = 9 DELETE r RETURN COUNT(r) AS count",
			kind:      operation.Write,
		},
		{
			name:      "delete many",
			build:     func() (*operation.Operation, error) { return DeleteManyOperation(q) },
			statement: "MATCH p=(n1)-[r:KNOWS]->(n2) WHERE ID(n1) = 1 DELETE r RETURN COUNT(r) AS count",
			kind:      operation.Write,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.statement, op.Statement())
			assert.Equal(t, tt.kind, op.Kind())
		})
	}
}

func TestOperationPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*operation.Operation, error)
		message string
	}{
		{"relate negative start", func() (*operation.Operation, error) { return RelateOperation(-1, "KNOWS", 2, nil, false) }, msgNodeIDs},
		{"relate without type", func() (*operation.Operation, error) { return RelateOperation(1, " ", 2, nil, false) }, msgType},
		{"relate bad property", func() (*operation.Operation, error) {
			return RelateOperation(1, "KNOWS", 2, map[string]any{"a b": 1}, false)
		}, `invalid property name "a b"`},
		{"update negative id", func() (*operation.Operation, error) { return UpdateOperation(-3, nil) }, msgRelationID},
		{"delete negative id", func() (*operation.Operation, error) { return DeleteOperation(-3) }, msgRelationID},
		{"update many nil query", func() (*operation.Operation, error) { return UpdateManyOperation(map[string]any{"a": 1}, nil) }, msgQuery},
		{"find nil query", func() (*operation.Operation, error) { return FindOperation(nil) }, msgQuery},
		{"find one nil query", func() (*operation.Operation, error) { return FindOneOperation(nil) }, msgQuery},
		{"find populated nil query", func() (*operation.Operation, error) { return FindPopulatedOperation(nil) }, msgQuery},
		{"find one populated nil query", func() (*operation.Operation, error) { return FindOnePopulatedOperation(nil) }, msgQuery},
		{"find nodes nil query", func() (*operation.Operation, error) { return FindNodesOperation(nil, query.BothEndpoints, false) }, msgQuery},
		{"count nil query", func() (*operation.Operation, error) { return CountOperation(nil) }, msgQuery},
		{"exists nil query", func() (*operation.Operation, error) { return ExistsOperation(nil) }, msgQuery},
		{"delete many nil query", func() (*operation.Operation, error) { return DeleteManyOperation(nil) }, msgQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			var e *ogmerr.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, ogmerr.CodeInvalidArgument, e.Code)
			assert.Equal(t, tt.message, e.Message)
		})
	}
}

func TestServiceRelate(t *testing.T) {
	ctx := context.Background()
	p := sessiontest.NewProvider().
		On("MATCH (n1) WHERE ID(n1) = 1 MATCH (n2) WHERE ID(n2) = 2 CREATE (n1)-[r:KNOWS { since : $since }]->(n2) RETURN r",
			sessiontest.Rows([]string{"r"}, []any{knows}))
	s := newService(p)

	rel, err := s.RelateNodes(ctx, map[string]any{"id": int64(1)}, "KNOWS", map[string]any{"id": 2}, map[string]any{"since": int64(2010)}, false)
	require.NoError(t, err)
	assert.Equal(t, knowsMap, rel)

	calls := p.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Write)
	assert.Equal(t, map[string]any{"since": int64(2010)}, calls[0].Params)

	_, err = s.RelateNodes(ctx, map[string]any{"name": "no id"}, "KNOWS", map[string]any{"id": 2}, nil, false)
	assert.ErrorIs(t, err, ogmerr.ErrInvalidArgument)
	assert.Len(t, p.Calls(), 1)
}

func TestServiceFind(t *testing.T) {
	ctx := context.Background()
	q := query.NewRelation("KNOWS")
	p := sessiontest.NewProvider().
		On(q.QueryCypher(), sessiontest.Rows([]string{"r"}, []any{knows})).
		On(q.Limit(1).QueryCypher(), sessiontest.Rows([]string{"r"}, []any{knows})).
		On(q.QueryPopulatedCypher(), sessiontest.Rows([]string{"r", "n1", "n2"}, []any{knows, ada, bob})).
		On(q.QueryNodesCypher(query.BothEndpoints, false), sessiontest.Rows([]string{"n1", "n2"}, []any{ada, bob}))
	s := newService(p)

	rels, err := s.Find(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{knowsMap}, rels)

	rel, err := s.FindOne(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, knowsMap, rel)

	populated, err := s.FindPopulated(ctx, q)
	require.NoError(t, err)
	require.Len(t, populated, 1)
	assert.Equal(t, map[string]any{"id": int64(1), "name": "ada"}, populated[0]["start"])
	assert.Equal(t, map[string]any{"id": int64(2), "name": "bob"}, populated[0]["end"])

	none, err := s.FindOnePopulated(ctx, q)
	require.NoError(t, err)
	assert.Nil(t, none)

	nodes, err := s.FindNodes(ctx, q, query.BothEndpoints, false)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{
		"start": map[string]any{"id": int64(1), "name": "ada"},
		"end":   map[string]any{"id": int64(2), "name": "bob"},
	}}, nodes)

	for _, c := range p.Calls() {
		assert.False(t, c.Write, c.Statement)
	}
}

func TestServiceCountExistsDelete(t *testing.T) {
	ctx := context.Background()
	q := query.NewRelation("KNOWS")
	p := sessiontest.NewProvider().
		On(q.CountCypher(), sessiontest.CountRows(3)).
		On("MATCH p=(n1)-[r]->(n2) WHERE ID(r) = 9 DELETE r RETURN COUNT(r) AS count", sessiontest.CountRows(1)).
		On(q.MatchCypher()+" DELETE r RETURN COUNT(r) AS count", sessiontest.CountRows(3))
	s := newService(p)

	n, err := s.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	ok, err := s.Exists(ctx, q)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, query.NewRelation("HATES"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Delete(ctx, 9)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = s.DeleteMany(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	p := sessiontest.NewProvider().
		On("MATCH p=(n1)-[r]->(n2) WHERE ID(r) = 9 SET r += { since : $since } RETURN r", sessiontest.Rows([]string{"r"}, []any{knows}))
	s := newService(p)

	rel, err := s.Update(ctx, 9, map[string]any{"since": int64(2010), "id": int64(100)})
	require.NoError(t, err)
	assert.Equal(t, knowsMap, rel)

	rels, err := s.UpdateMany(ctx, map[string]any{}, query.NewRelation("KNOWS"))
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{}, rels)
	assert.Equal(t, 1, p.Opened())
}

func TestServiceReturnsDatabaseErrors(t *testing.T) {
	boom := errors.New("connection reset")
	q := query.NewRelation("KNOWS")
	p := sessiontest.NewProvider().Fail(q.CountCypher(), boom)

	_, err := newService(p).Exists(context.Background(), q)
	assert.Same(t, boom, err)
}
