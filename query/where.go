package query

import "strings"

type whereEntry struct {
	connective Connective
	property   string
	conditions []Condition
}

// Where is an ordered chain of property conditions.
//
// Entries are folded left to right and joined with their connective
// verbatim, without parentheses, so Cypher precedence (AND binds tighter
// than OR) applies to the rendered clause:
//
//	query.NewWhere("name", query.Eq("derp")).
//		Or("age", query.Lt(25)).
//		And("last", query.Eq("value")).
//		Clause()
//	// n.name = 'derp' OR n.age < 25 AND n.last = 'value'
//
// A Where is immutable. And, Or and WithVariable return new chains and the
// receiver is left untouched. A nil *Where behaves as an empty chain.
type Where struct {
	variable string
	entries  []whereEntry
}

// NewWhere starts a chain with conditions on property. Several conditions
// on the same entry are joined with AND.
func NewWhere(property string, conditions ...Condition) *Where {
	return (*Where)(nil).with(None, property, conditions)
}

// And appends an entry joined with AND.
func (w *Where) And(property string, conditions ...Condition) *Where {
	return w.with(And, property, conditions)
}

// Or appends an entry joined with OR.
func (w *Where) Or(property string, conditions ...Condition) *Where {
	return w.with(Or, property, conditions)
}

// WithVariable returns a copy of the chain bound to another match variable.
func (w *Where) WithVariable(variable string) *Where {
	next := w.clone(0)
	next.variable = variable
	return next
}

// Variable returns the match variable the chain renders against.
func (w *Where) Variable() string {
	if w == nil || w.variable == "" {
		return DefaultVariable
	}
	return w.variable
}

// Len returns the number of entries in the chain.
func (w *Where) Len() int {
	if w == nil {
		return 0
	}
	return len(w.entries)
}

// Clause renders the chain without the WHERE keyword. Entries whose
// conditions all render empty contribute nothing, and their connective is
// dropped with them.
func (w *Where) Clause() string {
	if w == nil {
		return ""
	}
	variable := w.Variable()

	var b strings.Builder
	for _, e := range w.entries {
		fragment := renderEntry(variable, e)
		if fragment == "" {
			continue
		}
		if b.Len() > 0 {
			conn := e.connective
			if conn == None {
				conn = And
			}
			b.WriteString(" ")
			b.WriteString(string(conn))
			b.WriteString(" ")
		}
		b.WriteString(fragment)
	}
	return b.String()
}

// String implements fmt.Stringer.
func (w *Where) String() string {
	return w.Clause()
}

func renderEntry(variable string, e whereEntry) string {
	parts := make([]string, 0, len(e.conditions))
	for _, c := range e.conditions {
		if p := RenderPredicate(variable, e.property, c.Op, c.Value); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " AND ")
}

func (w *Where) with(conn Connective, property string, conditions []Condition) *Where {
	next := w.clone(1)
	next.entries = append(next.entries, whereEntry{
		connective: conn,
		property:   property,
		conditions: append([]Condition(nil), conditions...),
	})
	return next
}

func (w *Where) clone(extra int) *Where {
	if w == nil {
		return &Where{entries: make([]whereEntry, 0, extra)}
	}
	entries := make([]whereEntry, len(w.entries), len(w.entries)+extra)
	copy(entries, w.entries)
	return &Where{variable: w.variable, entries: entries}
}

// joinClauses joins non-empty clauses with AND.
func joinClauses(clauses ...string) string {
	kept := clauses[:0:0]
	for _, c := range clauses {
		if c != "" {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, " AND ")
}
