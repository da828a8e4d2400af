package journal

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Entry describes one executed statement.
type Entry struct {
	// OperationID is the id assigned to the operation when it was built
	OperationID string

	// BatchID correlates entries executed in one batch transaction.
	// Empty for single operations.
	BatchID string

	// Index is the position of the operation in its batch
	Index int

	// Kind is READ or WRITE
	Kind string

	// Statement is the Cypher text
	Statement string

	// Parameters are the named statement parameters
	Parameters map[string]any

	// StartedAt is when the statement was submitted
	StartedAt time.Time

	// Duration is how long the statement and its transform took
	Duration time.Duration

	// Rows is the number of records returned
	Rows int

	// Error is the failure message, empty on success
	Error string

	// RolledBack is set when the statement succeeded but its transaction
	// failed later, so its effects were discarded
	RolledBack bool
}

// Failed reports whether the entry records a failure.
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Journal records executed operations. Implementations must be safe for
// concurrent use.
type Journal interface {
	Record(ctx context.Context, entry Entry) error
}

// Func adapts a function to the Journal interface.
type Func func(ctx context.Context, entry Entry) error

// Record calls f(ctx, entry).
func (f Func) Record(ctx context.Context, entry Entry) error {
	return f(ctx, entry)
}

// Discard drops every entry.
var Discard Journal = Func(func(context.Context, Entry) error { return nil })

// ToStruct converts the entry into a protobuf Struct. Parameter values that
// have no JSON form are converted: times become RFC 3339 strings, typed
// slices and maps are widened, and anything else is formatted with %v.
func (e Entry) ToStruct() (*structpb.Struct, error) {
	fields := map[string]any{
		"operation_id": e.OperationID,
		"kind":         e.Kind,
		"statement":    e.Statement,
		"started_at":   e.StartedAt.UTC().Format(time.RFC3339Nano),
		"duration_ms":  float64(e.Duration) / float64(time.Millisecond),
		"rows":         e.Rows,
	}
	if e.BatchID != "" {
		fields["batch_id"] = e.BatchID
		fields["index"] = e.Index
	}
	if e.Error != "" {
		fields["error"] = e.Error
	}
	if e.RolledBack {
		fields["rolled_back"] = true
	}
	if len(e.Parameters) > 0 {
		params := make(map[string]any, len(e.Parameters))
		for k, v := range e.Parameters {
			params[k] = jsonValue(v)
		}
		fields["parameters"] = params
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("convert journal entry: %w", err)
	}
	return s, nil
}

// FromStruct rebuilds an entry from its Struct form. Numeric parameters come
// back as float64.
func FromStruct(s *structpb.Struct) (Entry, error) {
	if s == nil {
		return Entry{}, fmt.Errorf("journal entry struct cannot be nil")
	}
	m := s.AsMap()

	var e Entry
	e.OperationID, _ = m["operation_id"].(string)
	e.BatchID, _ = m["batch_id"].(string)
	e.Kind, _ = m["kind"].(string)
	e.Statement, _ = m["statement"].(string)
	e.Error, _ = m["error"].(string)
	e.RolledBack, _ = m["rolled_back"].(bool)
	if v, ok := m["index"].(float64); ok {
		e.Index = int(v)
	}
	if v, ok := m["rows"].(float64); ok {
		e.Rows = int(v)
	}
	if v, ok := m["duration_ms"].(float64); ok {
		e.Duration = time.Duration(v * float64(time.Millisecond))
	}
	if v, ok := m["started_at"].(string); ok && v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return Entry{}, fmt.Errorf("parse started_at: %w", err)
		}
		e.StartedAt = t
	}
	if v, ok := m["parameters"].(map[string]any); ok {
		e.Parameters = v
	}
	return e, nil
}

// Encode serialises the entry as protobuf JSON.
func Encode(e Entry) ([]byte, error) {
	s, err := e.ToStruct()
	if err != nil {
		return nil, err
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal journal entry: %w", err)
	}
	return data, nil
}

// Decode parses an entry produced by Encode.
func Decode(data []byte) (Entry, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal(data, &s); err != nil {
		return Entry{}, fmt.Errorf("unmarshal journal entry: %w", err)
	}
	return FromStruct(&s)
}

// jsonValue widens v into a value structpb.NewValue accepts.
func jsonValue(v any) any {
	switch x := v.(type) {
	case nil, bool, string, float64, float32, int, int32, int64, uint, uint32, uint64:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = jsonValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = jsonValue(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return jsonValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = jsonValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = jsonValue(iter.Value().Interface())
		}
		return out
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return fmt.Sprintf("%v", v)
}
