package query

// DefaultVariable is the match variable used when none is given.
const DefaultVariable = "n"

// RenderPredicate compiles a single property comparison into a Cypher
// fragment such as "n.age >= 18" or "EXISTS(n.email)".
//
// Operator and value mismatches are not errors: a string-only operator with
// a non-string value, In without a list, Exists without a bool, an unknown
// operator or a value without a literal form all render the empty string.
func RenderPredicate(variable, property string, op Op, value any) string {
	if property == "" {
		return ""
	}
	if variable == "" {
		variable = DefaultVariable
	}
	ref := variable + "." + property

	switch {
	case op == OpExists:
		b, ok := value.(bool)
		if !ok {
			return ""
		}
		if b {
			return "EXISTS(" + ref + ")"
		}
		return "NOT EXISTS(" + ref + ")"
	case op.stringOnly():
		if !isString(value) {
			return ""
		}
	case op == OpIn:
		if !isList(value) {
			return ""
		}
	case !op.IsValid():
		return ""
	}

	lit, ok := FormatLiteral(value)
	if !ok {
		return ""
	}
	return ref + " " + op.String() + " " + lit
}
