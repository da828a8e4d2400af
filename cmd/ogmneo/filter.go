package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LucianoPAlmeida/OGMNeo/query"
)

// parseFilter parses "property:op:value", e.g. "age:gt:30" or
// "name:in:ada,bob". Values are read as integers, floats or booleans when
// they parse as such, and as strings otherwise.
func parseFilter(s string) (string, query.Condition, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] == "" {
		return "", query.Condition{}, fmt.Errorf("filter %q must look like property:op:value", s)
	}
	op, err := query.ParseOp(parts[1])
	if err != nil {
		return "", query.Condition{}, err
	}

	var value any
	switch op {
	case query.OpIn:
		var items []any
		for _, item := range strings.Split(parts[2], ",") {
			items = append(items, scalar(strings.TrimSpace(item)))
		}
		value = items
	case query.OpRegex, query.OpStartsWith, query.OpEndsWith, query.OpContains:
		value = parts[2]
	default:
		value = scalar(parts[2])
	}
	return parts[0], query.Condition{Op: op, Value: value}, nil
}

func scalar(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// buildWhere joins and-filters with AND and or-filters with OR, in that
// order. It returns nil when there are no filters.
func buildWhere(and, or []string) (*query.Where, error) {
	var w *query.Where
	for _, f := range and {
		prop, cond, err := parseFilter(f)
		if err != nil {
			return nil, err
		}
		w = w.And(prop, cond)
	}
	for _, f := range or {
		prop, cond, err := parseFilter(f)
		if err != nil {
			return nil, err
		}
		w = w.Or(prop, cond)
	}
	return w, nil
}

// parseParam parses "name=value" into a statement parameter.
func parseParam(s string) (string, any, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || !query.IsIdentifier(name) {
		return "", nil, fmt.Errorf("parameter %q must look like name=value", s)
	}
	return name, scalar(value), nil
}
