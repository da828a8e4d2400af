package relation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/record"
)

// ErrNothingToChange is returned by UpdateManyOperation when there are no
// properties to set.
var ErrNothingToChange = errors.New("relation: nothing to change")

const (
	msgNodeIDs    = "ids from nodes must be integers"
	msgType       = "a relationship type must be specified"
	msgRelationID = "relation id must be an integer"
	msgQuery      = "the query object can't be nil"
)

// RelateOperation builds a write operation creating a relationship of
// relType from the node startID to the node endID. When unique is set an
// existing relationship with the same type and properties is reused. The
// result is the relationship, or nil when either node does not exist.
func RelateOperation(startID int64, relType string, endID int64, props map[string]any, unique bool) (*operation.Operation, error) {
	const op = "relation.Relate"

	if startID < 0 || endID < 0 {
		return nil, ogmerr.InvalidArgument(op, msgNodeIDs)
	}
	if relType = strings.TrimSpace(relType); relType == "" {
		return nil, ogmerr.InvalidArgument(op, msgType)
	}
	params, keys, err := query.Parameters(props)
	if err != nil {
		return nil, ogmerr.InvalidArgument(op, err.Error())
	}

	rel := query.RelationVariable + ":" + relType
	if len(keys) > 0 {
		rel += " " + query.MapLiteral(keys)
	}
	verb := "CREATE"
	if unique {
		verb = "MERGE"
	}
	statement := fmt.Sprintf("MATCH (%[1]s) WHERE ID(%[1]s) = %[2]d MATCH (%[3]s) WHERE ID(%[3]s) = %[4]d %[5]s (%[1]s)-[%[6]s]->(%[3]s) RETURN %[7]s",
		query.StartVariable, startID, query.EndVariable, endID, verb, rel, query.RelationVariable)
	return operation.NewWrite(statement, params, record.FirstRelationTransform)
}

// UpdateOperation builds a write operation merging props into the
// relationship with id relID. The result is the updated relationship, or nil.
func UpdateOperation(relID int64, props map[string]any) (*operation.Operation, error) {
	const op = "relation.Update"

	if relID < 0 {
		return nil, ogmerr.InvalidArgument(op, msgRelationID)
	}
	params, keys, err := query.Parameters(props)
	if err != nil {
		return nil, ogmerr.InvalidArgument(op, err.Error())
	}
	statement := fmt.Sprintf("%s SET r += %s RETURN r", matchID(relID), query.MapLiteral(keys))
	return operation.NewWrite(statement, params, record.FirstRelationTransform)
}

// UpdateManyOperation builds a write operation merging props into every
// relationship matched by q. An empty props map yields ErrNothingToChange.
func UpdateManyOperation(props map[string]any, q *query.RelationQuery) (*operation.Operation, error) {
	const op = "relation.UpdateMany"

	if q == nil {
		return nil, ogmerr.InvalidArgument(op, msgQuery)
	}
	params, keys, err := query.Parameters(props)
	if err != nil {
		return nil, ogmerr.InvalidArgument(op, err.Error())
	}
	if len(keys) == 0 {
		return nil, ErrNothingToChange
	}
	statement := fmt.Sprintf("%s SET r += %s RETURN r", q.MatchCypher(), query.MapLiteral(keys))
	return operation.NewWrite(statement, params, record.RelationsTransform)
}

// FindOperation builds a read operation returning the relationships matched
// by q.
func FindOperation(q *query.RelationQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("relation.Find", msgQuery)
	}
	return operation.NewRead(q.QueryCypher(), nil, record.RelationsTransform)
}

// FindOneOperation is FindOperation limited to the first relationship.
func FindOneOperation(q *query.RelationQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("relation.FindOne", msgQuery)
	}
	return operation.NewRead(q.Limit(1).QueryCypher(), nil, record.FirstRelationTransform)
}

// FindPopulatedOperation builds a read operation returning the relationships
// matched by q with their endpoint nodes.
func FindPopulatedOperation(q *query.RelationQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("relation.FindPopulated", msgQuery)
	}
	return operation.NewRead(q.QueryPopulatedCypher(), nil, record.PopulatedRelationsTransform)
}

// FindOnePopulatedOperation is FindPopulatedOperation limited to the first
// relationship.
func FindOnePopulatedOperation(q *query.RelationQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("relation.FindOnePopulated", msgQuery)
	}
	return operation.NewRead(q.Limit(1).QueryPopulatedCypher(), nil, record.FirstPopulatedRelationTransform)
}

// FindNodesOperation builds a read operation returning the start and/or end
// nodes of the relationships matched by q. Each result row holds the nodes
// under "start" and "end".
func FindNodesOperation(q *query.RelationQuery, endpoints query.Endpoints, distinct bool) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("relation.FindNodes", msgQuery)
	}
	return operation.NewRead(q.QueryNodesCypher(endpoints, distinct), nil, record.EndpointsTransform(endpoints))
}

// CountOperation builds a read operation counting the relationships matched
// by q. The result is an int64.
func CountOperation(q *query.RelationQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("relation.Count", msgQuery)
	}
	return operation.NewRead(q.CountCypher(), nil, record.CountTransform)
}

// ExistsOperation builds a read operation reporting whether q matches any
// relationship.
func ExistsOperation(q *query.RelationQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("relation.Exists", msgQuery)
	}
	return operation.NewRead(q.CountCypher(), nil, record.ExistsTransform)
}

// DeleteOperation builds a write operation deleting the relationship with
// id relID. The result is true when a relationship was deleted.
func DeleteOperation(relID int64) (*operation.Operation, error) {
	if relID < 0 {
		return nil, ogmerr.InvalidArgument("relation.Delete", msgRelationID)
	}
	return operation.NewWrite(matchID(relID)+" DELETE r RETURN COUNT(r) AS count", nil, record.ExistsTransform)
}

// DeleteManyOperation builds a write operation deleting every relationship
// matched by q. The result is the number deleted as an int64.
func DeleteManyOperation(q *query.RelationQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("relation.DeleteMany", msgQuery)
	}
	return operation.NewWrite(q.MatchCypher()+" DELETE r RETURN COUNT(r) AS count", nil, record.CountTransform)
}

func matchID(relID int64) string {
	return fmt.Sprintf("MATCH p=(%s)-[%s]->(%s) WHERE ID(%s) = %d",
		query.StartVariable, query.RelationVariable, query.EndVariable, query.RelationVariable, relID)
}
