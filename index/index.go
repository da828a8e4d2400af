// Package index creates and drops property indexes on node labels.
package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/LucianoPAlmeida/OGMNeo/ogmerr"
	"github.com/LucianoPAlmeida/OGMNeo/operation"
	"github.com/LucianoPAlmeida/OGMNeo/query"
)

const (
	msgLabel      = "you must provide a label"
	msgProperties = "you must provide a label and at least one property name"
)

// Manager runs index statements through an operation.Executer.
type Manager struct {
	exec *operation.Executer
}

// NewManager returns a Manager using exec.
func NewManager(exec *operation.Executer) *Manager {
	return &Manager{exec: exec}
}

// Create creates the index on label over properties, if it does not exist,
// and returns its name.
func (m *Manager) Create(ctx context.Context, label string, properties ...string) (string, error) {
	return m.run(ctx)(CreateOperation(label, properties...))
}

// Drop drops the index on label over properties, if it exists, and returns
// its name.
func (m *Manager) Drop(ctx context.Context, label string, properties ...string) (string, error) {
	return m.run(ctx)(DropOperation(label, properties...))
}

func (m *Manager) run(ctx context.Context) func(string, *operation.Operation, error) (string, error) {
	return func(name string, op *operation.Operation, err error) (string, error) {
		if err != nil {
			return "", err
		}
		if _, err := m.exec.Execute(ctx, op); err != nil {
			return "", err
		}
		return name, nil
	}
}

// CreateOperation builds the write operation creating an index and returns
// it with the index name.
func CreateOperation(label string, properties ...string) (string, *operation.Operation, error) {
	name, props, err := target("index.Create", label, properties)
	if err != nil {
		return "", nil, err
	}
	items := make([]string, len(props))
	for i, p := range props {
		items[i] = query.DefaultVariable + "." + p
	}
	statement := fmt.Sprintf("CREATE INDEX %s IF NOT EXISTS FOR (%s:%s) ON (%s)",
		name, query.DefaultVariable, strings.TrimSpace(label), strings.Join(items, ", "))
	op, err := operation.NewWrite(statement, nil, nil)
	return name, op, err
}

// DropOperation builds the write operation dropping an index and returns it
// with the index name.
func DropOperation(label string, properties ...string) (string, *operation.Operation, error) {
	name, _, err := target("index.Drop", label, properties)
	if err != nil {
		return "", nil, err
	}
	op, err := operation.NewWrite(fmt.Sprintf("DROP INDEX %s IF EXISTS", name), nil, nil)
	return name, op, err
}

// Name returns the index name used for label and properties, such as
// "index_Person_name_age".
func Name(label string, properties ...string) string {
	return "index_" + strings.TrimSpace(label) + "_" + strings.Join(properties, "_")
}

func target(op, label string, properties []string) (string, []string, error) {
	if strings.TrimSpace(label) == "" {
		return "", nil, ogmerr.InvalidArgument(op, msgLabel)
	}
	var props []string
	for _, p := range properties {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !query.IsIdentifier(p) {
			return "", nil, ogmerr.InvalidArgument(op, fmt.Sprintf("invalid property name %q", p))
		}
		props = append(props, p)
	}
	if len(props) == 0 {
		return "", nil, ogmerr.InvalidArgument(op, msgProperties)
	}
	return Name(label, props...), props, nil
}
