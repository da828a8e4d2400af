package query

import (
	"strconv"
	"strings"
)

// IDProperty marks the graph-native identifier in projections and ordering.
// It renders as ID(v) instead of a dotted property reference.
const IDProperty = "id"

// cleanProperties drops empty names and returns nil when nothing is left.
func cleanProperties(properties []string) []string {
	var kept []string
	for _, p := range properties {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return kept
}

// projection renders a RETURN item list for variable. An empty property
// list returns the whole variable. alias is used for the ID(v) column.
func projection(variable string, properties []string, alias string) string {
	if len(properties) == 0 {
		return variable
	}
	items := make([]string, len(properties))
	for i, p := range properties {
		if p == IDProperty {
			items[i] = "ID(" + variable + ") AS " + alias
			continue
		}
		items[i] = variable + "." + p
	}
	return strings.Join(items, ", ")
}

func orderItems(variable string, properties []string) []string {
	items := make([]string, len(properties))
	for i, p := range properties {
		if p == IDProperty {
			items[i] = "ID(" + variable + ")"
			continue
		}
		items[i] = variable + "." + p
	}
	return items
}

// ordering is an ORDER BY clause. The zero value renders nothing.
type ordering struct {
	items []string
	order Order
}

func (o ordering) clause() string {
	if len(o.items) == 0 {
		return ""
	}
	order := o.order
	if order == "" {
		order = Ascending
	}
	return "ORDER BY " + strings.Join(o.items, ", ") + " " + string(order)
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return "LIMIT " + strconv.Itoa(limit)
}

func assemble(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
