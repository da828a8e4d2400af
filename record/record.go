// Package record turns statement results into plain property maps.
//
// Nodes become their properties plus "id". Relationships become their
// properties plus "id", "type", "start" and "end". When a query projects
// individual properties, columns named "<variable>.<property>" are folded
// back into a map keyed by property.
package record

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/session"
)

// Keys added to materialized maps.
const (
	KeyID    = query.IDProperty
	KeyType  = "type"
	KeyStart = "start"
	KeyEnd   = "end"
)

// FromNode returns the node properties with its id under KeyID.
func FromNode(n session.Node) map[string]any {
	obj := make(map[string]any, len(n.Props)+1)
	for k, v := range n.Props {
		obj[k] = v
	}
	obj[KeyID] = n.ID
	return obj
}

// FromRelationship returns the relationship properties with its id, type
// and endpoint ids.
func FromRelationship(r session.Relationship) map[string]any {
	obj := make(map[string]any, len(r.Props)+4)
	for k, v := range r.Props {
		obj[k] = v
	}
	obj[KeyID] = r.ID
	obj[KeyType] = r.Type
	obj[KeyStart] = r.StartID
	obj[KeyEnd] = r.EndID
	return obj
}

// ID returns the integer id stored under KeyID in obj. Floats are accepted
// when they hold a whole number, as produced by JSON decoding.
func ID(obj map[string]any) (int64, bool) {
	v, ok := obj[KeyID]
	if !ok || v == nil {
		return 0, false
	}
	switch v := v.(type) {
	case float32:
		return wholeFloat(float64(v))
	case float64:
		return wholeFloat(v)
	case string, bool, time.Time:
		return 0, false
	}
	id, err := toInt64(v)
	if err != nil {
		return 0, false
	}
	return id, true
}

func wholeFloat(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// PropertiesFromVariable collects the columns of rec named
// "<variable>.<property>" into a map keyed by property. For the default
// variable a bare "id" column is taken as the node id.
func PropertiesFromVariable(rec *session.Record, variable string) map[string]any {
	obj := map[string]any{}
	if rec == nil {
		return obj
	}
	prefix := variable + "."
	for i, key := range rec.Keys {
		var value any
		if i < len(rec.Values) {
			value = rec.Values[i]
		}
		switch {
		case strings.HasPrefix(key, prefix):
			obj[key[len(prefix):]] = value
		case key == KeyID && variable == query.DefaultVariable:
			obj[KeyID] = value
		}
	}
	return obj
}

// Node materializes the node bound to variable in rec, falling back to
// projected columns when the variable itself was not returned.
func Node(rec *session.Record, variable string) map[string]any {
	if v, ok := rec.Get(variable); ok {
		if n, ok := v.(session.Node); ok {
			return FromNode(n)
		}
	}
	return PropertiesFromVariable(rec, variable)
}

// Relation materializes the relationship bound to r in rec, falling back to
// projected r.* columns.
func Relation(rec *session.Record) map[string]any {
	if v, ok := rec.Get(query.RelationVariable); ok {
		if r, ok := v.(session.Relationship); ok {
			return FromRelationship(r)
		}
	}
	return PropertiesFromVariable(rec, query.RelationVariable)
}

// PopulatedRelation materializes a relationship whose start and end keys
// hold the n1 and n2 nodes instead of their ids.
func PopulatedRelation(rec *session.Record) map[string]any {
	obj := Relation(rec)
	obj[KeyStart] = Node(rec, query.StartVariable)
	obj[KeyEnd] = Node(rec, query.EndVariable)
	return obj
}

// EndpointNodes materializes the n1 and/or n2 nodes of rec under "start"
// and "end".
func EndpointNodes(rec *session.Record, endpoints query.Endpoints) map[string]any {
	obj := map[string]any{}
	if endpoints != query.EndEndpoint {
		obj[KeyStart] = Node(rec, query.StartVariable)
	}
	if endpoints != query.StartEndpoint {
		obj[KeyEnd] = Node(rec, query.EndVariable)
	}
	return obj
}

// Nodes materializes the node bound to variable in every record.
func Nodes(r *session.Result, variable string) []map[string]any {
	return each(r, func(rec *session.Record) map[string]any { return Node(rec, variable) })
}

// Relations materializes the relationship of every record.
func Relations(r *session.Result) []map[string]any {
	return each(r, Relation)
}

// PopulatedRelations materializes every record with PopulatedRelation.
func PopulatedRelations(r *session.Result) []map[string]any {
	return each(r, PopulatedRelation)
}

// Endpoints materializes every record with EndpointNodes.
func Endpoints(r *session.Result, endpoints query.Endpoints) []map[string]any {
	return each(r, func(rec *session.Record) map[string]any { return EndpointNodes(rec, endpoints) })
}

// Count reads the "count" column of the first record. An empty result
// counts as zero.
func Count(r *session.Result) (int64, error) {
	rec := r.First()
	if rec == nil {
		return 0, nil
	}
	v, ok := rec.Get("count")
	if !ok {
		return 0, fmt.Errorf("record: result has no count column")
	}
	return toInt64(v)
}

func each(r *session.Result, fn func(*session.Record) map[string]any) []map[string]any {
	out := make([]map[string]any, 0, r.Len())
	if r == nil {
		return out
	}
	for _, rec := range r.Records {
		if rec == nil {
			continue
		}
		out = append(out, fn(rec))
	}
	return out
}
