package node

import (
	"context"
	"errors"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/record"
)

// Service executes node operations. It is safe for concurrent use.
type Service struct {
	exec *operation.Executer
}

// NewService returns a Service running operations on exec.
func NewService(exec *operation.Executer) *Service {
	return &Service{exec: exec}
}

// Create creates a node and returns it with its id.
func (s *Service) Create(ctx context.Context, props map[string]any, label string) (map[string]any, error) {
	return s.one(ctx)(CreateOperation(props, label))
}

// Update merges props into the node identified by props["id"] and returns
// the updated node, or nil when it does not exist.
func (s *Service) Update(ctx context.Context, props map[string]any) (map[string]any, error) {
	return s.one(ctx)(UpdateOperation(props))
}

// UpdateMany merges props into every node matched by q.
func (s *Service) UpdateMany(ctx context.Context, q *query.NodeQuery, props map[string]any) ([]map[string]any, error) {
	return s.many(ctx)(UpdateManyOperation(q, props))
}

// Delete deletes the node identified by node["id"]. It reports whether a
// node was deleted.
func (s *Service) Delete(ctx context.Context, node map[string]any) (bool, error) {
	id, ok := record.ID(node)
	if !ok {
		return false, ogmerr.InvalidArgument("node.Delete", msgDeleteID)
	}
	return s.DeleteByID(ctx, id)
}

// DeleteByID deletes the node with id. It reports whether a node was deleted.
func (s *Service) DeleteByID(ctx context.Context, id int64) (bool, error) {
	op, err := DeleteOperation(id)
	if err != nil {
		return false, err
	}
	return operation.ExecuteAs[bool](ctx, s.exec, op)
}

// DeleteMany deletes every node matched by q and returns how many were
// deleted.
func (s *Service) DeleteMany(ctx context.Context, q *query.NodeQuery) (int64, error) {
	return s.count(ctx)(DeleteManyOperation(q))
}

// FindByID returns the node with id, or nil when it does not exist.
func (s *Service) FindByID(ctx context.Context, id int64) (map[string]any, error) {
	return s.one(ctx)(FindByIDOperation(id))
}

// Find returns the nodes matched by q.
func (s *Service) Find(ctx context.Context, q *query.NodeQuery) ([]map[string]any, error) {
	return s.many(ctx)(FindOperation(q))
}

// FindOne returns the first node matched by q, or nil.
func (s *Service) FindOne(ctx context.Context, q *query.NodeQuery) (map[string]any, error) {
	return s.one(ctx)(FindOneOperation(q))
}

// Count returns the number of nodes matched by q.
func (s *Service) Count(ctx context.Context, q *query.NodeQuery) (int64, error) {
	return s.count(ctx)(CountOperation(q))
}

// CountWithLabel returns the number of nodes carrying label.
func (s *Service) CountWithLabel(ctx context.Context, label string) (int64, error) {
	return s.count(ctx)(CountWithLabelOperation(label))
}

// AddLabel adds label to the nodes with ids and returns them.
func (s *Service) AddLabel(ctx context.Context, label string, ids []int64) ([]map[string]any, error) {
	return s.many(ctx)(AddLabelOperation(label, ids))
}

// RemoveLabel removes label from the nodes with ids and returns them.
func (s *Service) RemoveLabel(ctx context.Context, label string, ids []int64) ([]map[string]any, error) {
	return s.many(ctx)(RemoveLabelOperation(label, ids))
}

// AddLabelToNode adds label to a single node and returns it, or nil when it
// does not exist.
func (s *Service) AddLabelToNode(ctx context.Context, label string, id int64) (map[string]any, error) {
	return first(s.AddLabel(ctx, label, []int64{id}))
}

// RemoveLabelFromNode removes label from a single node and returns it, or
// nil when it does not exist.
func (s *Service) RemoveLabelFromNode(ctx context.Context, label string, id int64) (map[string]any, error) {
	return first(s.RemoveLabel(ctx, label, []int64{id}))
}

func (s *Service) one(ctx context.Context) func(*operation.Operation, error) (map[string]any, error) {
	return func(op *operation.Operation, err error) (map[string]any, error) {
		if err != nil {
			return nil, err
		}
		return operation.ExecuteAs[map[string]any](ctx, s.exec, op)
	}
}

func (s *Service) many(ctx context.Context) func(*operation.Operation, error) ([]map[string]any, error) {
	return func(op *operation.Operation, err error) ([]map[string]any, error) {
		if errors.Is(err, ErrNothingToChange) {
			return []map[string]any{}, nil
		}
		if err != nil {
			return nil, err
		}
		return operation.ExecuteAs[[]map[string]any](ctx, s.exec, op)
	}
}

func (s *Service) count(ctx context.Context) func(*operation.Operation, error) (int64, error) {
	return func(op *operation.Operation, err error) (int64, error) {
		if err != nil {
			return 0, err
		}
		return operation.ExecuteAs[int64](ctx, s.exec, op)
	}
}

func first(rows []map[string]any, err error) (map[string]any, error) {
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}
