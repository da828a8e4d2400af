package node

import (
	"context"

	"google.golang.org/protobuf/proto"

	"github.com/LucianoPAlmeida/OGMNeo/query"
	"github.com/LucianoPAlmeida/OGMNeo/record"
)

// CreateMessage creates a node from the set fields of msg. When fields are
// given only those are stored.
func CreateMessage(ctx context.Context, s *Service, msg proto.Message, label string, fields ...string) (map[string]any, error) {
	return s.Create(ctx, record.FromProto(msg, fields...), label)
}

// FindAs runs Find and converts every node into a message built by newMsg.
func FindAs[T proto.Message](ctx context.Context, s *Service, q *query.NodeQuery, newMsg func() T) ([]T, error) {
	nodes, err := s.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return record.ToProtos(nodes, newMsg)
}

// FindByIDAs fills target with the node identified by id. It reports false
// when there is no such node.
func FindByIDAs(ctx context.Context, s *Service, id int64, target proto.Message) (bool, error) {
	n, err := s.FindByID(ctx, id)
	if err != nil || n == nil {
		return false, err
	}
	return true, record.ToProto(n, target)
}
