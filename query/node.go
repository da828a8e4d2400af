package query

// NodeQuery describes a match over nodes with a single label.
//
// The zero value is usable and matches every node. Setters return a new
// query and never modify the receiver.
//
//	q := query.NewNode("Person").
//		Where(query.NewWhere("age", query.Gte(18))).
//		Return("name", query.IDProperty).
//		OrderBy(query.Descending, "age").
//		Limit(10)
//	q.QueryCypher()
//	// MATCH (n:Person) WHERE n.age >= 18 RETURN n.name, ID(n) AS id ORDER BY n.age DESC LIMIT 10
type NodeQuery struct {
	label   string
	where   *Where
	returns []string
	order   ordering
	limit   int
}

// NewNode returns a query over nodes carrying label. An empty label matches
// every node.
func NewNode(label string) *NodeQuery {
	return &NodeQuery{label: label}
}

// Label returns the query label.
func (q *NodeQuery) Label() string {
	if q == nil {
		return ""
	}
	return q.label
}

// Filter returns the condition chain or nil.
func (q *NodeQuery) Filter() *Where {
	if q == nil {
		return nil
	}
	return q.where
}

// MaxRows returns the row limit, 0 when unset.
func (q *NodeQuery) MaxRows() int {
	if q == nil {
		return 0
	}
	return q.limit
}

// WithLabel replaces the label.
func (q *NodeQuery) WithLabel(label string) *NodeQuery {
	next := q.clone()
	next.label = label
	return next
}

// Where replaces the condition chain. A nil chain clears it.
func (q *NodeQuery) Where(w *Where) *NodeQuery {
	next := q.clone()
	next.where = w
	return next
}

// Return projects the given properties instead of the whole node.
// IDProperty projects the node id. Calling it with no usable names keeps
// the current projection.
func (q *NodeQuery) Return(properties ...string) *NodeQuery {
	next := q.clone()
	if props := cleanProperties(properties); props != nil {
		next.returns = props
	}
	return next
}

// ReturnNode restores the whole-node projection.
func (q *NodeQuery) ReturnNode() *NodeQuery {
	next := q.clone()
	next.returns = nil
	return next
}

// Projected reports whether the query returns individual properties.
func (q *NodeQuery) Projected() bool {
	return q != nil && len(q.returns) > 0
}

// OrderBy sorts by the given properties in one direction. The last call wins.
func (q *NodeQuery) OrderBy(order Order, properties ...string) *NodeQuery {
	next := q.clone()
	props := cleanProperties(properties)
	if props == nil {
		return next
	}
	next.order = ordering{items: orderItems(DefaultVariable, props), order: order}
	return next
}

// AscOrderBy sorts ascending by properties.
func (q *NodeQuery) AscOrderBy(properties ...string) *NodeQuery {
	return q.OrderBy(Ascending, properties...)
}

// DescOrderBy sorts descending by properties.
func (q *NodeQuery) DescOrderBy(properties ...string) *NodeQuery {
	return q.OrderBy(Descending, properties...)
}

// Limit sets the row limit. Zero clears it and negative values are ignored.
func (q *NodeQuery) Limit(limit int) *NodeQuery {
	next := q.clone()
	if limit >= 0 {
		next.limit = limit
	}
	return next
}

// MatchCypher renders the MATCH clause with its WHERE clause, if any.
func (q *NodeQuery) MatchCypher() string {
	if q == nil {
		q = &NodeQuery{}
	}
	match := "MATCH (" + DefaultVariable + labelSuffix(q.label) + ")"
	if clause := q.where.WithVariable(DefaultVariable).Clause(); clause != "" {
		match += " WHERE " + clause
	}
	return match
}

// CountCypher renders a statement returning the number of matched nodes in
// a column named count.
func (q *NodeQuery) CountCypher() string {
	return q.MatchCypher() + " RETURN COUNT(" + DefaultVariable + ") AS count"
}

// QueryCypher renders the full query statement.
func (q *NodeQuery) QueryCypher() string {
	if q == nil {
		q = &NodeQuery{}
	}
	return assemble(
		q.MatchCypher(),
		"RETURN "+projection(DefaultVariable, q.returns, IDProperty),
		q.order.clause(),
		limitClause(q.limit),
	)
}

// String implements fmt.Stringer.
func (q *NodeQuery) String() string {
	return q.QueryCypher()
}

func (q *NodeQuery) clone() *NodeQuery {
	if q == nil {
		return &NodeQuery{}
	}
	next := *q
	return &next
}

func labelSuffix(label string) string {
	if label == "" {
		return ""
	}
	return ":" + label
}
