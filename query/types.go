// Package query compiles declarative filters into Cypher statement text.
//
// A Where chain holds an ordered list of property conditions joined by AND or
// OR. A NodeQuery or RelationQuery combines match constraints, an optional
// chain, a projection, ordering and a limit, and renders deterministic
// statement text. All builders are immutable: every call returns a new value,
// so a query can be shared between goroutines and extended without affecting
// the original.
package query

import (
	"fmt"
	"strings"
)

// Op represents a comparison operator in a predicate.
type Op int

const (
	// OpEq represents equality comparison (=)
	OpEq Op = iota
	// OpLt represents less than comparison (<)
	OpLt
	// OpLte represents less than or equal comparison (<=)
	OpLte
	// OpGt represents greater than comparison (>)
	OpGt
	// OpGte represents greater than or equal comparison (>=)
	OpGte
	// OpNe represents inequality comparison (<>)
	OpNe
	// OpRegex represents regular expression match (=~), strings only
	OpRegex
	// OpStartsWith represents string prefix check (STARTS WITH), strings only
	OpStartsWith
	// OpEndsWith represents string suffix check (ENDS WITH), strings only
	OpEndsWith
	// OpContains represents string containment check (CONTAINS), strings only
	OpContains
	// OpIn represents list membership (IN), list values only
	OpIn
	// OpExists represents property existence (EXISTS / NOT EXISTS), bool values only
	OpExists
)

var opTokens = map[Op]string{
	OpEq:         "=",
	OpLt:         "<",
	OpLte:        "<=",
	OpGt:         ">",
	OpGte:        ">=",
	OpNe:         "<>",
	OpRegex:      "=~",
	OpStartsWith: "STARTS WITH",
	OpEndsWith:   "ENDS WITH",
	OpContains:   "CONTAINS",
	OpIn:         "IN",
	OpExists:     "EXISTS",
}

// String returns the Cypher token of the operator.
func (o Op) String() string {
	if tok, ok := opTokens[o]; ok {
		return tok
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// IsValid reports whether o is a known operator.
func (o Op) IsValid() bool {
	_, ok := opTokens[o]
	return ok
}

func (o Op) stringOnly() bool {
	return o == OpRegex || o == OpStartsWith || o == OpEndsWith || o == OpContains
}

var opNames = map[string]Op{
	"eq":         OpEq,
	"lt":         OpLt,
	"lte":        OpLte,
	"gt":         OpGt,
	"gte":        OpGte,
	"ne":         OpNe,
	"regex":      OpRegex,
	"startswith": OpStartsWith,
	"endswith":   OpEndsWith,
	"contains":   OpContains,
	"in":         OpIn,
	"exists":     OpExists,
}

// ParseOp parses an operator name such as "$eq", "lte" or "startsWith".
// Matching is case insensitive and the leading "$" is optional.
func ParseOp(name string) (Op, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "$"))
	if op, ok := opNames[key]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("unknown operator: %q", name)
}

// Condition is one operator applied to a value. The property it applies to
// is supplied by the Where entry holding it.
type Condition struct {
	Op    Op
	Value any
}

// Eq matches properties equal to v.
func Eq(v any) Condition { return Condition{Op: OpEq, Value: v} }

// Lt matches properties less than v.
func Lt(v any) Condition { return Condition{Op: OpLt, Value: v} }

// Lte matches properties less than or equal to v.
func Lte(v any) Condition { return Condition{Op: OpLte, Value: v} }

// Gt matches properties greater than v.
func Gt(v any) Condition { return Condition{Op: OpGt, Value: v} }

// Gte matches properties greater than or equal to v.
func Gte(v any) Condition { return Condition{Op: OpGte, Value: v} }

// Ne matches properties different from v.
func Ne(v any) Condition { return Condition{Op: OpNe, Value: v} }

// Regex matches string properties against a regular expression.
func Regex(v any) Condition { return Condition{Op: OpRegex, Value: v} }

// StartsWith matches string properties with the given prefix.
func StartsWith(v any) Condition { return Condition{Op: OpStartsWith, Value: v} }

// EndsWith matches string properties with the given suffix.
func EndsWith(v any) Condition { return Condition{Op: OpEndsWith, Value: v} }

// Contains matches string properties containing v.
func Contains(v any) Condition { return Condition{Op: OpContains, Value: v} }

// In matches properties whose value is a member of the list v.
func In(v any) Condition { return Condition{Op: OpIn, Value: v} }

// Exists matches nodes that have (true) or lack (false) the property.
func Exists(v any) Condition { return Condition{Op: OpExists, Value: v} }

// Connective joins two entries of a Where chain.
type Connective string

const (
	// None marks the first entry of a chain
	None Connective = ""
	// And joins with AND
	And Connective = "AND"
	// Or joins with OR
	Or Connective = "OR"
)

// Order is an ORDER BY direction.
type Order string

const (
	Ascending  Order = "ASC"
	Descending Order = "DESC"
)

// Endpoints selects which relation endpoints a node query returns.
type Endpoints int

const (
	// BothEndpoints returns start and end nodes
	BothEndpoints Endpoints = iota
	// StartEndpoint returns only start nodes
	StartEndpoint
	// EndEndpoint returns only end nodes
	EndEndpoint
)

// ParseEndpoints parses "both", "start" or "end". An empty string means both.
func ParseEndpoints(s string) (Endpoints, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return BothEndpoints, nil
	case "start":
		return StartEndpoint, nil
	case "end":
		return EndEndpoint, nil
	default:
		return 0, fmt.Errorf("invalid endpoints: %q", s)
	}
}

// String returns the endpoint selector name.
func (e Endpoints) String() string {
	switch e {
	case BothEndpoints:
		return "both"
	case StartEndpoint:
		return "start"
	case EndEndpoint:
		return "end"
	default:
		return fmt.Sprintf("Endpoints(%d)", int(e))
	}
}
