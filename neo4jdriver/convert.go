package neo4jdriver

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/LucianoPAlmeida/OGMNeo/session"
)

func convertResult(keys []string, records []*neo4j.Record) *session.Result {
	out := &session.Result{
		Keys:    keys,
		Records: make([]*session.Record, 0, len(records)),
	}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		values := make([]any, len(rec.Values))
		for i, v := range rec.Values {
			values[i] = convertValue(v)
		}
		out.Records = append(out.Records, session.NewRecord(rec.Keys, values))
	}
	return out
}

// convertValue maps driver values onto session types. Graph entities become
// session.Node, session.Relationship and session.Path, temporal values with a
// date component become time.Time, and containers are converted
// recursively.
func convertValue(v any) any {
	switch x := v.(type) {
	case dbtype.Node:
		return convertNode(x)
	case dbtype.Relationship:
		return convertRelationship(x)
	case dbtype.Path:
		path := session.Path{
			Nodes:         make([]session.Node, len(x.Nodes)),
			Relationships: make([]session.Relationship, len(x.Relationships)),
		}
		for i, n := range x.Nodes {
			path.Nodes[i] = convertNode(n)
		}
		for i, r := range x.Relationships {
			path.Relationships[i] = convertRelationship(r)
		}
		return path
	case dbtype.Date:
		return x.Time()
	case dbtype.LocalDateTime:
		return x.Time()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = convertValue(item)
		}
		return out
	case map[string]any:
		return convertProps(x)
	}
	return v
}

func convertNode(n dbtype.Node) session.Node {
	return session.Node{
		ID:        n.Id, //nolint:staticcheck // numeric ids back ID(n) in generated statements
		ElementID: n.ElementId,
		Labels:    n.Labels,
		Props:     convertProps(n.Props),
	}
}

func convertRelationship(r dbtype.Relationship) session.Relationship {
	return session.Relationship{
		ID:        r.Id,      //nolint:staticcheck
		StartID:   r.StartId, //nolint:staticcheck
		EndID:     r.EndId,   //nolint:staticcheck
		ElementID: r.ElementId,
		Type:      r.Type,
		Props:     convertProps(r.Props),
	}
}

func convertProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = convertValue(v)
	}
	return out
}
