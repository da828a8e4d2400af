package node

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/typepb"

	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/session"
	"github.com/LucianoPAlmeida/OGMNeo/session/sessiontest"
)

func TestMessages(t *testing.T) {
	ctx := context.Background()
	email := session.Node{ID: 4, Labels: []string{"Field"}, Props: map[string]any{"name": "email", "number": int64(3)}}
	phone := session.Node{ID: 5, Labels: []string{"Field"}, Props: map[string]any{"name": "phone", "number": int64(4), "packed": true}}

	p := sessiontest.NewProvider().
		On("CREATE (n:Field { name : $name, number : $number }) RETURN n", sessiontest.NodeRows(email)).
		On("CREATE (n:Field { name : $name }) RETURN n", sessiontest.NodeRows(email)).
		On("MATCH (n:Field) RETURN n", sessiontest.NodeRows(email, phone)).
		On("MATCH (n) WHERE ID(n) = 5 RETURN n", sessiontest.NodeRows(phone))
	s := newService(p)

	created, err := CreateMessage(ctx, s, &typepb.Field{Name: "email", Number: 3}, "Field")
	require.NoError(t, err)
	assert.Equal(t, int64(4), created["id"])

	_, err = CreateMessage(ctx, s, &typepb.Field{Name: "email", Number: 3}, "Field", "name")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "email"}, p.Calls()[1].Params)

	fields, err := FindAs(ctx, s, query.NewNode("Field"), func() *typepb.Field { return &typepb.Field{} })
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].GetName())
	assert.Equal(t, int32(4), fields[1].GetNumber())
	assert.True(t, fields[1].GetPacked())

	var field typepb.Field
	found, err := FindByIDAs(ctx, s, 5, &field)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "phone", field.GetName())

	found, err = FindByIDAs(ctx, s, 6, &typepb.Field{})
	require.NoError(t, err)
	assert.False(t, found)
}
