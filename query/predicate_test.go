package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPredicate(t *testing.T) {
	tests := []struct {
		name     string
		variable string
		property string
		op       Op
		value    any
		want     string
	}{
		{name: "equal string", property: "name", op: OpEq, value: "derp", want: "n.name = 'derp'"},
		{name: "equal nil", property: "name", op: OpEq, value: nil, want: "n.name = null"},
		{name: "less than", property: "age", op: OpLt, value: 25, want: "n.age < 25"},
		{name: "less or equal", property: "age", op: OpLte, value: 20, want: "n.age <= 20"},
		{name: "greater than", property: "age", op: OpGt, value: 1.5, want: "n.age > 1.5"},
		{name: "greater or equal", property: "age", op: OpGte, value: 18, want: "n.age >= 18"},
		{name: "not equal", property: "gender", op: OpNe, value: "m", want: "n.gender <> 'm'"},
		{name: "regex", property: "name", op: OpRegex, value: "^a.*", want: "n.name =~ '^a.*'"},
		{name: "starts with", property: "name", op: OpStartsWith, value: "a", want: "n.name STARTS WITH 'a'"},
		{name: "ends with", property: "name", op: OpEndsWith, value: "z", want: "n.name ENDS WITH 'z'"},
		{name: "contains", property: "name", op: OpContains, value: "r", want: "n.name CONTAINS 'r'"},
		{name: "in", property: "name", op: OpIn, value: []any{"value", 9, nil}, want: "n.name IN [ 'value' , 9 , null ]"},
		{name: "exists", property: "property", op: OpExists, value: true, want: "EXISTS(n.property)"},
		{name: "not exists", property: "property", op: OpExists, value: false, want: "NOT EXISTS(n.property)"},
		{name: "date", property: "date", op: OpGt, value: time.UnixMilli(1000), want: "n.date > 1000"},
		{name: "custom variable", variable: "r", property: "since", op: OpEq, value: 3, want: "r.since = 3"},
		{name: "contains with number", property: "name", op: OpContains, value: 3, want: ""},
		{name: "regex with nil", property: "name", op: OpRegex, value: nil, want: ""},
		{name: "in without list", property: "name", op: OpIn, value: "abc", want: ""},
		{name: "in with nil", property: "name", op: OpIn, value: nil, want: ""},
		{name: "exists with string", property: "name", op: OpExists, value: "yes", want: ""},
		{name: "unknown op", property: "name", op: Op(99), value: 1, want: ""},
		{name: "value without literal", property: "name", op: OpEq, value: map[string]int{}, want: ""},
		{name: "empty property", property: "", op: OpEq, value: 1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderPredicate(tt.variable, tt.property, tt.op, tt.value))
		})
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "STARTS WITH", OpStartsWith.String())
	assert.Equal(t, "<>", OpNe.String())
	assert.Equal(t, "Op(42)", Op(42).String())
	assert.False(t, Op(42).IsValid())
}

func TestParseOp(t *testing.T) {
	for name, want := range map[string]Op{
		"$eq":         OpEq,
		"lte":         OpLte,
		"$startsWith": OpStartsWith,
		"ENDSWITH":    OpEndsWith,
		" $in ":       OpIn,
		"$exists":     OpExists,
	} {
		got, err := ParseOp(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseOp("$between")
	assert.Error(t, err)
}

func TestParseEndpoints(t *testing.T) {
	for in, want := range map[string]Endpoints{"": BothEndpoints, "both": BothEndpoints, "Start": StartEndpoint, "end": EndEndpoint} {
		got, err := ParseEndpoints(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		if in != "" {
			assert.Equal(t, want.String(), got.String())
		}
	}
	_, err := ParseEndpoints("middle")
	assert.Error(t, err)
}
