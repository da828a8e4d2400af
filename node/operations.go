package node

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/record"
)

// ErrNothingToChange is returned by operation builders whose input would not
// change anything, such as an empty property map or an empty id list. The
// Service methods answer these calls with an empty result instead.
var ErrNothingToChange = errors.New("node: nothing to change")

const (
	msgUpdateID = "node must have an integer id to be updated"
	msgDeleteID = "node must have a non-nil id to be deleted"
	msgFindID   = "you must provide a non-nil integer id to find the node"
	msgLabel    = "label must be a non empty string"
	msgIDs      = "nodes ids must be an array"
	msgQuery    = "a query object must be provided"
)

// CreateOperation builds a write operation creating a node with props and
// an optional label. The "id" key of props is ignored. The result is the
// created node.
func CreateOperation(props map[string]any, label string) (*operation.Operation, error) {
	params, keys, err := query.Parameters(props)
	if err != nil {
		return nil, ogmerr.InvalidArgument("node.Create", err.Error())
	}

	pattern := "n"
	if label = strings.TrimSpace(label); label != "" {
		pattern += ":" + label
	}
	if len(keys) > 0 {
		pattern += " " + query.MapLiteral(keys)
	}
	statement := fmt.Sprintf("CREATE (%s) RETURN n", pattern)
	return operation.NewWrite(statement, params, record.FirstNodeTransform)
}

// UpdateOperation builds a write operation merging props into the node
// whose id is props["id"]. The result is the updated node, or nil when no
// node has that id.
func UpdateOperation(props map[string]any) (*operation.Operation, error) {
	const op = "node.Update"

	id, ok := record.ID(props)
	if !ok || id < 0 {
		return nil, ogmerr.InvalidArgument(op, msgUpdateID)
	}
	params, keys, err := query.Parameters(props)
	if err != nil {
		return nil, ogmerr.InvalidArgument(op, err.Error())
	}

	statement := fmt.Sprintf("MATCH (n) WHERE %s SET n += %s RETURN n", idEquals(id), query.MapLiteral(keys))
	return operation.NewWrite(statement, params, record.FirstNodeTransform)
}

// UpdateManyOperation builds a write operation merging props into every
// node matched by q. The result is the list of updated nodes. An empty props
// map yields ErrNothingToChange.
func UpdateManyOperation(q *query.NodeQuery, props map[string]any) (*operation.Operation, error) {
	const op = "node.UpdateMany"

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

	statement := fmt.Sprintf("%s SET n += %s RETURN n", q.MatchCypher(), query.MapLiteral(keys))
	return operation.NewWrite(statement, params, record.NodesTransform)
}

// DeleteOperation builds a write operation deleting the node with id. The
// result is true when a node was deleted.
func DeleteOperation(id int64) (*operation.Operation, error) {
	if id < 0 {
		return nil, ogmerr.InvalidArgument("node.Delete", msgDeleteID)
	}
	statement := fmt.Sprintf("MATCH (n) WHERE %s DELETE n RETURN COUNT(n) AS count", idEquals(id))
	return operation.NewWrite(statement, nil, record.ExistsTransform)
}

// DeleteManyOperation builds a write operation deleting every node matched
// by q. The result is the number of deleted nodes as an int64.
func DeleteManyOperation(q *query.NodeQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("node.DeleteMany", msgQuery)
	}
	statement := q.MatchCypher() + " DELETE n RETURN COUNT(n) AS count"
	return operation.NewWrite(statement, nil, record.CountTransform)
}

// FindByIDOperation builds a read operation returning the node with id, or
// nil.
func FindByIDOperation(id int64) (*operation.Operation, error) {
	if id < 0 {
		return nil, ogmerr.InvalidArgument("node.FindByID", msgFindID)
	}
	statement := fmt.Sprintf("MATCH (n) WHERE %s RETURN n", idEquals(id))
	return operation.NewRead(statement, nil, record.FirstNodeTransform)
}

// FindOperation builds a read operation returning the nodes matched by q.
func FindOperation(q *query.NodeQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("node.Find", msgQuery)
	}
	return operation.NewRead(q.QueryCypher(), nil, record.NodesTransform)
}

// FindOneOperation builds a read operation returning the first node matched
// by q, or nil. Any limit on q is replaced by 1.
func FindOneOperation(q *query.NodeQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("node.FindOne", msgQuery)
	}
	return operation.NewRead(q.Limit(1).QueryCypher(), nil, record.FirstNodeTransform)
}

// CountOperation builds a read operation counting the nodes matched by q.
// The result is an int64.
func CountOperation(q *query.NodeQuery) (*operation.Operation, error) {
	if q == nil {
		return nil, ogmerr.InvalidArgument("node.Count", msgQuery)
	}
	return operation.NewRead(q.CountCypher(), nil, record.CountTransform)
}

// CountWithLabelOperation counts the nodes carrying label.
func CountWithLabelOperation(label string) (*operation.Operation, error) {
	if strings.TrimSpace(label) == "" {
		return nil, ogmerr.InvalidArgument("node.CountWithLabel", msgLabel)
	}
	return CountOperation(query.NewNode(label))
}

// AddLabelOperation builds a write operation adding label to the nodes with
// the given ids. The result is the list of updated nodes. A nil ids slice is
// rejected and an empty one yields ErrNothingToChange.
func AddLabelOperation(label string, ids []int64) (*operation.Operation, error) {
	list, err := labelTargets("node.AddLabel", label, ids)
	if err != nil {
		return nil, err
	}
	statement := fmt.Sprintf("MATCH (n) WHERE ID(n) IN %s SET n:%s RETURN n", list, label)
	return operation.NewWrite(statement, nil, record.NodesTransform)
}

// RemoveLabelOperation builds a write operation removing label from the
// nodes with the given ids. It follows the same input rules as
// AddLabelOperation.
func RemoveLabelOperation(label string, ids []int64) (*operation.Operation, error) {
	list, err := labelTargets("node.RemoveLabel", label, ids)
	if err != nil {
		return nil, err
	}
	statement := fmt.Sprintf("MATCH (n:%s) WHERE ID(n) IN %s REMOVE n:%s RETURN n", label, list, label)
	return operation.NewWrite(statement, nil, record.NodesTransform)
}

// labelTargets validates a label change and renders the id list. Negative
// ids never match a node and are dropped.
func labelTargets(op, label string, ids []int64) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", ogmerr.InvalidArgument(op, msgLabel)
	}
	if ids == nil {
		return "", ogmerr.InvalidArgument(op, msgIDs)
	}
	valid := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id >= 0 {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return "", ErrNothingToChange
	}
	return query.IDList(valid), nil
}

func idEquals(id int64) string {
	return fmt.Sprintf("ID(n) = %d", id)
}
