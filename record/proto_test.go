package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/typepb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestToProto(t *testing.T) {
	t.Run("scalars enums and camelCase keys", func(t *testing.T) {
		field := &typepb.Field{}
		err := ToProto(map[string]any{
			"name":        "email",
			"number":      int64(3),
			"kind":        "TYPE_STRING",
			"cardinality": int64(1),
			"packed":      true,
			"typeUrl":     "type.googleapis.com/x",
			"ignored":     "value",
			"json_name":   nil,
		}, field)
		require.NoError(t, err)

		assert.Equal(t, "email", field.GetName())
		assert.Equal(t, int32(3), field.GetNumber())
		assert.Equal(t, typepb.Field_TYPE_STRING, field.GetKind())
		assert.Equal(t, typepb.Field_CARDINALITY_OPTIONAL, field.GetCardinality())
		assert.True(t, field.GetPacked())
		assert.Equal(t, "type.googleapis.com/x", field.GetTypeUrl())
		assert.Empty(t, field.GetJsonName())
	})

	t.Run("lowercase enum name", func(t *testing.T) {
		field := &typepb.Field{}
		require.NoError(t, ToProto(map[string]any{"kind": "type_bool"}, field))
		assert.Equal(t, typepb.Field_TYPE_BOOL, field.GetKind())
	})

	t.Run("time fills integer fields", func(t *testing.T) {
		ts := &timestamppb.Timestamp{}
		require.NoError(t, ToProto(map[string]any{"seconds": time.UnixMilli(5000)}, ts))
		assert.Equal(t, int64(5000), ts.GetSeconds())
	})

	t.Run("errors", func(t *testing.T) {
		assert.Error(t, ToProto(map[string]any{"number": int64(1) << 40}, &typepb.Field{}))
		assert.Error(t, ToProto(map[string]any{"name": 3}, &typepb.Field{}))
		assert.Error(t, ToProto(map[string]any{"kind": "TYPE_NOPE"}, &typepb.Field{}))
		assert.Error(t, ToProto(map[string]any{"kind": int64(999)}, &typepb.Field{}))
		assert.Error(t, ToProto(map[string]any{"value": int64(-1)}, &wrapperspb.UInt32Value{}))
		assert.Error(t, ToProto(nil, &typepb.Field{}))
		assert.Error(t, ToProto(map[string]any{}, nil))
	})
}

func TestToProtos(t *testing.T) {
	rows := []map[string]any{{"value": "a"}, nil, {"value": "b"}}
	got, err := ToProtos(rows, func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
	require.NoError(t, err)
	require.Len(t, got, 2, "nil rows are skipped")
	assert.Equal(t, "b", got[1].GetValue())

	none, err := ToProtos[*wrapperspb.StringValue](nil, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = ToProtos([]map[string]any{{"value": 1}}, func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
	assert.Error(t, err)
}

func TestFromProto(t *testing.T) {
	field := &typepb.Field{Name: "email", Number: 3, Kind: typepb.Field_TYPE_STRING, Packed: true}

	assert.Equal(t, map[string]any{
		"name":   "email",
		"number": int64(3),
		"kind":   "TYPE_STRING",
		"packed": true,
	}, FromProto(field))

	assert.Equal(t, map[string]any{"name": "email"}, FromProto(field, "name", "json_name", "missing"))
	assert.Nil(t, FromProto(nil))
}
