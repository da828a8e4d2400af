package session

// Result is the collected output of one statement.
type Result struct {
	// Keys are the column names in RETURN order
	Keys []string

	// Records are the returned rows
	Records []*Record
}

// First returns the first record, or nil when the result is empty.
func (r *Result) First() *Record {
	if r == nil || len(r.Records) == 0 {
		return nil
	}
	return r.Records[0]
}

// Len returns the number of records.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Records)
}

// Record is one row of a Result. Values are positionally aligned with Keys.
type Record struct {
	Keys   []string
	Values []any
}

// NewRecord builds a record from parallel key and value slices.
func NewRecord(keys []string, values []any) *Record {
	return &Record{Keys: keys, Values: values}
}

// Get returns the value for key and whether the key exists.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	for i, k := range r.Keys {
		if k == key {
			if i < len(r.Values) {
				return r.Values[i], true
			}
			return nil, true
		}
	}
	return nil, false
}

// Has reports whether the record contains key.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Node is a graph node as seen by the client.
type Node struct {
	// ID is the numeric identity used by ID(n) in statements
	ID        int64
	ElementID string
	Labels    []string
	Props     map[string]any
}

// Relationship is a graph relationship as seen by the client.
type Relationship struct {
	ID        int64
	ElementID string
	StartID   int64
	EndID     int64
	Type      string
	Props     map[string]any
}

// Path is an alternating sequence of nodes and relationships.
type Path struct {
	Nodes         []Node
	Relationships []Relationship
}
