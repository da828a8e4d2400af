package query

import "strconv"

// Variables bound by relation patterns.
const (
	StartVariable    = "n1"
	RelationVariable = "r"
	EndVariable      = "n2"
)

type endpoint struct {
	id    int64
	hasID bool
	label string
}

func (e endpoint) idClause(variable string) string {
	if !e.hasID {
		return ""
	}
	return "ID(" + variable + ") = " + strconv.FormatInt(e.id, 10)
}

// RelationQuery describes a match over the pattern
// (n1)-[r]->(n2), optionally constrained by endpoint ids, labels and three
// independent condition chains bound to n1, r and n2.
//
// Setters return a new query and never modify the receiver.
//
//	q := query.NewRelation("relatedto").
//		StartNode(2, "label").
//		EndNode(43, "label")
//	q.MatchCypher()
//	// MATCH p=(n1:label)-[r:relatedto]->(n2:label) WHERE ID(n1) = 2 AND ID(n2) = 43
type RelationQuery struct {
	relType string
	start   endpoint
	end     endpoint

	relWhere   *Where
	startWhere *Where
	endWhere   *Where

	relReturns   []string
	startReturns []string
	endReturns   []string

	order ordering
	limit int
}

// NewRelation returns a query over relationships of relType. An empty type
// matches every relationship.
func NewRelation(relType string) *RelationQuery {
	return &RelationQuery{relType: relType}
}

// Type returns the relationship type.
func (q *RelationQuery) Type() string {
	if q == nil {
		return ""
	}
	return q.relType
}

// WithType replaces the relationship type.
func (q *RelationQuery) WithType(relType string) *RelationQuery {
	next := q.clone()
	next.relType = relType
	return next
}

// StartNode constrains the start node to the given id and label.
func (q *RelationQuery) StartNode(id int64, label string) *RelationQuery {
	next := q.clone()
	next.start = endpoint{id: id, hasID: true, label: label}
	return next
}

// EndNode constrains the end node to the given id and label.
func (q *RelationQuery) EndNode(id int64, label string) *RelationQuery {
	next := q.clone()
	next.end = endpoint{id: id, hasID: true, label: label}
	return next
}

// StartNodeID constrains the start node id and keeps its label.
func (q *RelationQuery) StartNodeID(id int64) *RelationQuery {
	next := q.clone()
	next.start.id, next.start.hasID = id, true
	return next
}

// StartNodeLabel constrains the start node label and keeps its id.
func (q *RelationQuery) StartNodeLabel(label string) *RelationQuery {
	next := q.clone()
	next.start.label = label
	return next
}

// EndNodeID constrains the end node id and keeps its label.
func (q *RelationQuery) EndNodeID(id int64) *RelationQuery {
	next := q.clone()
	next.end.id, next.end.hasID = id, true
	return next
}

// EndNodeLabel constrains the end node label and keeps its id.
func (q *RelationQuery) EndNodeLabel(label string) *RelationQuery {
	next := q.clone()
	next.end.label = label
	return next
}

// RelationWhere replaces the chain applied to r. Nil clears it.
func (q *RelationQuery) RelationWhere(w *Where) *RelationQuery {
	next := q.clone()
	next.relWhere = bind(w, RelationVariable)
	return next
}

// StartNodeWhere replaces the chain applied to n1. Nil clears it.
func (q *RelationQuery) StartNodeWhere(w *Where) *RelationQuery {
	next := q.clone()
	next.startWhere = bind(w, StartVariable)
	return next
}

// EndNodeWhere replaces the chain applied to n2. Nil clears it.
func (q *RelationQuery) EndNodeWhere(w *Where) *RelationQuery {
	next := q.clone()
	next.endWhere = bind(w, EndVariable)
	return next
}

// ReturnRelation projects relationship properties instead of r.
func (q *RelationQuery) ReturnRelation(properties ...string) *RelationQuery {
	next := q.clone()
	if props := cleanProperties(properties); props != nil {
		next.relReturns = props
	}
	return next
}

// ReturnStartNode projects start node properties instead of n1.
func (q *RelationQuery) ReturnStartNode(properties ...string) *RelationQuery {
	next := q.clone()
	if props := cleanProperties(properties); props != nil {
		next.startReturns = props
	}
	return next
}

// ReturnEndNode projects end node properties instead of n2.
func (q *RelationQuery) ReturnEndNode(properties ...string) *RelationQuery {
	next := q.clone()
	if props := cleanProperties(properties); props != nil {
		next.endReturns = props
	}
	return next
}

// Projected reports whether any of the three projections is explicit.
func (q *RelationQuery) Projected() bool {
	return q != nil && (len(q.relReturns) > 0 || len(q.startReturns) > 0 || len(q.endReturns) > 0)
}

// OrderBy sorts by relationship properties. The last ordering call wins.
func (q *RelationQuery) OrderBy(order Order, properties ...string) *RelationQuery {
	return q.OrderByPattern(order, properties, nil, nil)
}

// AscOrderBy sorts ascending by relationship properties.
func (q *RelationQuery) AscOrderBy(properties ...string) *RelationQuery {
	return q.OrderBy(Ascending, properties...)
}

// DescOrderBy sorts descending by relationship properties.
func (q *RelationQuery) DescOrderBy(properties ...string) *RelationQuery {
	return q.OrderBy(Descending, properties...)
}

// OrderByPattern sorts by relationship, start node and end node properties,
// in that order.
func (q *RelationQuery) OrderByPattern(order Order, relation, start, end []string) *RelationQuery {
	next := q.clone()
	var items []string
	items = append(items, orderItems(RelationVariable, cleanProperties(relation))...)
	items = append(items, orderItems(StartVariable, cleanProperties(start))...)
	items = append(items, orderItems(EndVariable, cleanProperties(end))...)
	if len(items) > 0 {
		next.order = ordering{items: items, order: order}
	}
	return next
}

// Limit sets the row limit. Zero clears it and negative values are ignored.
func (q *RelationQuery) Limit(limit int) *RelationQuery {
	next := q.clone()
	if limit >= 0 {
		next.limit = limit
	}
	return next
}

// MaxRows returns the row limit, 0 when unset.
func (q *RelationQuery) MaxRows() int {
	if q == nil {
		return 0
	}
	return q.limit
}

// MatchCypher renders the pattern MATCH with its WHERE clause. Constraints
// are joined with AND in a fixed order: start id, end id, relationship
// chain, start chain, end chain.
func (q *RelationQuery) MatchCypher() string {
	if q == nil {
		q = &RelationQuery{}
	}
	match := "MATCH p=(" + StartVariable + labelSuffix(q.start.label) + ")-[" +
		RelationVariable + labelSuffix(q.relType) + "]->(" +
		EndVariable + labelSuffix(q.end.label) + ")"

	where := joinClauses(
		q.start.idClause(StartVariable),
		q.end.idClause(EndVariable),
		q.relWhere.Clause(),
		q.startWhere.Clause(),
		q.endWhere.Clause(),
	)
	if where != "" {
		match += " WHERE " + where
	}
	return match
}

// QueryCypher renders a statement returning the relationship projection.
func (q *RelationQuery) QueryCypher() string {
	if q == nil {
		q = &RelationQuery{}
	}
	return q.withReturn(q.relationProjection())
}

// QueryPopulatedCypher renders a statement returning the relationship
// together with its start and end node projections.
func (q *RelationQuery) QueryPopulatedCypher() string {
	if q == nil {
		q = &RelationQuery{}
	}
	return q.withReturn(q.relationProjection() + ", " + q.startProjection() + ", " + q.endProjection())
}

// QueryNodesCypher renders a statement returning the selected endpoints of
// matching relationships, optionally with DISTINCT.
func (q *RelationQuery) QueryNodesCypher(endpoints Endpoints, distinct bool) string {
	if q == nil {
		q = &RelationQuery{}
	}
	var items string
	switch endpoints {
	case StartEndpoint:
		items = q.startProjection()
	case EndEndpoint:
		items = q.endProjection()
	default:
		items = q.startProjection() + ", " + q.endProjection()
	}
	if distinct {
		items = "DISTINCT " + items
	}
	return q.withReturn(items)
}

// CountCypher renders a statement returning the number of matched
// relationships in a column named count.
func (q *RelationQuery) CountCypher() string {
	return q.MatchCypher() + " RETURN COUNT(" + RelationVariable + ") AS count"
}

// String implements fmt.Stringer.
func (q *RelationQuery) String() string {
	return q.QueryCypher()
}

func (q *RelationQuery) withReturn(items string) string {
	return assemble(q.MatchCypher(), "RETURN "+items, q.order.clause(), limitClause(q.limit))
}

func (q *RelationQuery) relationProjection() string {
	return projection(RelationVariable, q.relReturns, aliasFor(RelationVariable))
}

func (q *RelationQuery) startProjection() string {
	return projection(StartVariable, q.startReturns, aliasFor(StartVariable))
}

func (q *RelationQuery) endProjection() string {
	return projection(EndVariable, q.endReturns, aliasFor(EndVariable))
}

// aliasFor names the id column of variable so it reads like its other
// projected columns (n1.name, n1.id).
func aliasFor(variable string) string {
	return "`" + variable + "." + IDProperty + "`"
}

func bind(w *Where, variable string) *Where {
	if w == nil {
		return nil
	}
	return w.WithVariable(variable)
}

func (q *RelationQuery) clone() *RelationQuery {
	if q == nil {
		return &RelationQuery{}
	}
	next := *q
	return &next
}
