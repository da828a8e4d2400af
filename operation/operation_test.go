package operation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/session"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "READ", want: Read},
		{in: "read", want: Read},
		{in: "Write", want: Write},
		{in: " write ", want: Write},
		{in: "delete", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ogmerr.ErrInvalidKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	t.Run("normalises kind", func(t *testing.T) {
		op, err := NewBuilder().Statement("MATCH (n) RETURN n").KindString("read").Build()
		require.NoError(t, err)
		assert.Equal(t, Read, op.Kind())
		assert.True(t, op.IsRead())
		assert.NotEmpty(t, op.ID())
		assert.False(t, op.HasTransform())
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := NewBuilder().Statement("MATCH (n) RETURN n").KindString("update").Build()
		require.Error(t, err)
		assert.True(t, ogmerr.HasCode(err, ogmerr.CodeInvalidKind))
	})

	t.Run("missing kind", func(t *testing.T) {
		_, err := NewBuilder().Statement("MATCH (n) RETURN n").Build()
		assert.ErrorIs(t, err, ogmerr.ErrInvalidKind)
	})

	t.Run("missing statement", func(t *testing.T) {
		_, err := NewBuilder().Kind(Write).Statement("  ").Build()
		assert.ErrorIs(t, err, ogmerr.ErrInvalidStatement)
	})

	t.Run("parameters are copied", func(t *testing.T) {
		params := map[string]any{"name": "a"}
		op, err := NewBuilder().Statement("CREATE (n { name : $name })").Kind(Write).Parameters(params).Build()
		require.NoError(t, err)

		params["name"] = "b"
		assert.Equal(t, "a", op.Parameters()["name"])

		got := op.Parameters()
		got["name"] = "c"
		assert.Equal(t, "a", op.Parameters()["name"])
	})

	t.Run("nil parameters", func(t *testing.T) {
		op, err := NewRead("MATCH (n) RETURN n", nil, nil)
		require.NoError(t, err)
		assert.Nil(t, op.Parameters())
	})

	t.Run("unique ids", func(t *testing.T) {
		a, err := NewWrite("CREATE (n)", nil, nil)
		require.NoError(t, err)
		b, err := NewWrite("CREATE (n)", nil, nil)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestBuilderIsImmutable(t *testing.T) {
	base := NewBuilder().Statement("MATCH (n) RETURN n").Kind(Read)
	_ = base.Statement("CREATE (n)").Kind(Write)

	op, err := base.Build()
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n", op.Statement())
	assert.Equal(t, Read, op.Kind())
}

func TestApply(t *testing.T) {
	result := &session.Result{Keys: []string{"count"}, Records: []*session.Record{session.NewRecord([]string{"count"}, []any{int64(3)})}}

	identity, err := NewRead("MATCH (n) RETURN COUNT(n) AS count", nil, nil)
	require.NoError(t, err)
	v, err := identity.Apply(result)
	require.NoError(t, err)
	assert.Same(t, result, v)

	boom := errors.New("boom")
	failing, err := NewRead("MATCH (n) RETURN n", nil, func(*session.Result) (any, error) { return nil, boom })
	require.NoError(t, err)
	_, err = failing.Apply(result)
	assert.Same(t, boom, err)

	counting, err := NewRead("MATCH (n) RETURN COUNT(n) AS count", nil, func(r *session.Result) (any, error) {
		v, _ := r.First().Get("count")
		return v, nil
	})
	require.NoError(t, err)
	assert.True(t, counting.HasTransform())
	v, err = counting.Apply(result)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}
