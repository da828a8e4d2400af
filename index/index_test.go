package index

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

func TestOperations(t *testing.T) {
	name, op, err := CreateOperation("Person", "name", " ", "age")
	require.NoError(t, err)
	assert.Equal(t, "index_Person_name_age", name)
	assert.Equal(t, "CREATE INDEX index_Person_name_age IF NOT EXISTS FOR (n:Person) ON (n.name, n.age)", op.Statement())
	assert.Equal(t, operation.Write, op.Kind())

	name, op, err = DropOperation("Person", "name")
	require.NoError(t, err)
	assert.Equal(t, "index_Person_name", name)
	assert.Equal(t, "DROP INDEX index_Person_name IF EXISTS", op.Statement())
}

func TestOperationPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		props   []string
		message string
	}{
		{"no label", "", []string{"name"}, msgLabel},
		{"no properties", "Person", nil, msgProperties},
		{"blank properties", "Person", []string{"", " "}, msgProperties},
		{"bad property", "Person", []string{"na me"}, `invalid property name "na me"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CreateOperation(tt.label, tt.props...)
			var e *ogmerr.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.message, e.Message)

			_, _, err = DropOperation(tt.label, tt.props...)
			assert.ErrorIs(t, err, ogmerr.ErrInvalidArgument)
		})
	}
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("equivalent index exists")
	p := sessiontest.NewProvider().Fail("DROP INDEX index_City_name IF EXISTS", boom)
	m := NewManager(operation.NewExecuter(p))

	name, err := m.Create(ctx, "Person", "name")
	require.NoError(t, err)
	assert.Equal(t, "index_Person_name", name)

	_, err = m.Drop(ctx, "City", "name")
	assert.Same(t, boom, err)

	_, err = m.Create(ctx, "", "name")
	assert.ErrorIs(t, err, ogmerr.ErrInvalidArgument)

	assert.Equal(t, []string{
		"CREATE INDEX index_Person_name IF NOT EXISTS FOR (n:Person) ON (n.name)",
		"DROP INDEX index_City_name IF EXISTS",
	}, p.Statements())
	for _, c := range p.Calls() {
		assert.True(t, c.Write)
	}
}
