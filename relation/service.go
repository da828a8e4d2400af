package relation

import (
	"context"
	"errors"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/record"
)

// Service executes relationship operations. It is safe for concurrent use.
type Service struct {
	exec *operation.Executer
}

// NewService returns a Service running operations on exec.
func NewService(exec *operation.Executer) *Service {
	return &Service{exec: exec}
}

// Relate creates a relationship of relType between two nodes and returns
// it, or nil when either node does not exist.
func (s *Service) Relate(ctx context.Context, startID int64, relType string, endID int64, props map[string]any, unique bool) (map[string]any, error) {
	op, err := RelateOperation(startID, relType, endID, props, unique)
	if err != nil {
		return nil, err
	}
	return operation.ExecuteAs[map[string]any](ctx, s.exec, op)
}

// RelateNodes is Relate for node maps carrying their id under "id".
func (s *Service) RelateNodes(ctx context.Context, start map[string]any, relType string, end map[string]any, props map[string]any, unique bool) (map[string]any, error) {
	startID, ok1 := record.ID(start)
	endID, ok2 := record.ID(end)
	if !ok1 || !ok2 {
		return nil, ogmerr.InvalidArgument("relation.Relate", msgNodeIDs)
	}
	return s.Relate(ctx, startID, relType, endID, props, unique)
}

// Update merges props into the relationship with id relID and returns it,
// or nil when it does not exist.
func (s *Service) Update(ctx context.Context, relID int64, props map[string]any) (map[string]any, error) {
	op, err := UpdateOperation(relID, props)
	if err != nil {
		return nil, err
	}
	return operation.ExecuteAs[map[string]any](ctx, s.exec, op)
}

// UpdateMany merges props into every relationship matched by q and returns
// them. Empty props return an empty slice without touching the database.
func (s *Service) UpdateMany(ctx context.Context, props map[string]any, q *query.RelationQuery) ([]map[string]any, error) {
	op, err := UpdateManyOperation(props, q)
	if errors.Is(err, ErrNothingToChange) {
		return []map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	return operation.ExecuteAs[[]map[string]any](ctx, s.exec, op)
}

// Find returns the relationships matched by q.
func (s *Service) Find(ctx context.Context, q *query.RelationQuery) ([]map[string]any, error) {
	return execute[[]map[string]any](ctx, s.exec)(FindOperation(q))
}

// FindOne returns the first relationship matched by q, or nil.
func (s *Service) FindOne(ctx context.Context, q *query.RelationQuery) (map[string]any, error) {
	return execute[map[string]any](ctx, s.exec)(FindOneOperation(q))
}

// FindPopulated returns the relationships matched by q with their endpoint
// nodes.
func (s *Service) FindPopulated(ctx context.Context, q *query.RelationQuery) ([]map[string]any, error) {
	return execute[[]map[string]any](ctx, s.exec)(FindPopulatedOperation(q))
}

// FindOnePopulated returns the first populated relationship matched by q,
// or nil.
func (s *Service) FindOnePopulated(ctx context.Context, q *query.RelationQuery) (map[string]any, error) {
	return execute[map[string]any](ctx, s.exec)(FindOnePopulatedOperation(q))
}

// FindNodes returns the endpoint nodes of the relationships matched by q.
func (s *Service) FindNodes(ctx context.Context, q *query.RelationQuery, endpoints query.Endpoints, distinct bool) ([]map[string]any, error) {
	return execute[[]map[string]any](ctx, s.exec)(FindNodesOperation(q, endpoints, distinct))
}

// Count returns the number of relationships matched by q.
func (s *Service) Count(ctx context.Context, q *query.RelationQuery) (int64, error) {
	return execute[int64](ctx, s.exec)(CountOperation(q))
}

// Exists reports whether q matches at least one relationship.
func (s *Service) Exists(ctx context.Context, q *query.RelationQuery) (bool, error) {
	return execute[bool](ctx, s.exec)(ExistsOperation(q))
}

// Delete deletes the relationship with id relID and reports whether it
// existed.
func (s *Service) Delete(ctx context.Context, relID int64) (bool, error) {
	return execute[bool](ctx, s.exec)(DeleteOperation(relID))
}

// DeleteMany deletes every relationship matched by q and returns how many
// were deleted.
func (s *Service) DeleteMany(ctx context.Context, q *query.RelationQuery) (int64, error) {
	return execute[int64](ctx, s.exec)(DeleteManyOperation(q))
}

func execute[T any](ctx context.Context, exec *operation.Executer) func(*operation.Operation, error) (T, error) {
	return func(op *operation.Operation, err error) (T, error) {
		if err != nil {
			var zero T
			return zero, err
		}
		return operation.ExecuteAs[T](ctx, exec, op)
	}
}
