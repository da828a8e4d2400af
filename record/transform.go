package record

import (
	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/session"
)

// Transforms with the operation.Transform signature. Each returns a
// []map[string]any, a single map[string]any (nil when there is no row), an
// int64 or a bool.

// NodesTransform materializes the n node of every record.
func NodesTransform(r *session.Result) (any, error) {
	return Nodes(r, query.DefaultVariable), nil
}

// FirstNodeTransform materializes the n node of the first record.
func FirstNodeTransform(r *session.Result) (any, error) {
	return first(Nodes(r, query.DefaultVariable)), nil
}

// RelationsTransform materializes the relationship of every record.
func RelationsTransform(r *session.Result) (any, error) {
	return Relations(r), nil
}

// FirstRelationTransform materializes the relationship of the first record.
func FirstRelationTransform(r *session.Result) (any, error) {
	return first(Relations(r)), nil
}

// PopulatedRelationsTransform materializes every populated relationship.
func PopulatedRelationsTransform(r *session.Result) (any, error) {
	return PopulatedRelations(r), nil
}

// FirstPopulatedRelationTransform materializes the first populated
// relationship.
func FirstPopulatedRelationTransform(r *session.Result) (any, error) {
	return first(PopulatedRelations(r)), nil
}

// EndpointsTransform returns a transform materializing relation endpoints.
func EndpointsTransform(endpoints query.Endpoints) func(*session.Result) (any, error) {
	return func(r *session.Result) (any, error) {
		return Endpoints(r, endpoints), nil
	}
}

// CountTransform reads the count column.
func CountTransform(r *session.Result) (any, error) {
	return Count(r)
}

// ExistsTransform reports whether the count column is positive.
func ExistsTransform(r *session.Result) (any, error) {
	n, err := Count(r)
	if err != nil {
		return nil, err
	}
	return n > 0, nil
}

func first(rows []map[string]any) map[string]any {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}
