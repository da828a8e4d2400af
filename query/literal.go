package query

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var stringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Quote renders s as a single-quoted Cypher string literal.
func Quote(s string) string {
	return "'" + stringEscaper.Replace(s) + "'"
}

// FormatLiteral renders a Go value as a Cypher literal.
//
// Strings are single quoted with backslashes and quotes escaped, nil renders
// as null, numbers and booleans as their literal tokens and time.Time as epoch
// milliseconds. Slices and arrays render as "[ a , b ]" where members that are
// not primitives are dropped. Pointers are followed. The second return value
// is false when the value has no literal form.
func FormatLiteral(value any) (string, bool) {
	if value == nil {
		return "null", true
	}
	if t, ok := value.(time.Time); ok {
		return strconv.FormatInt(t.UnixMilli(), 10), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null", true
		}
		return FormatLiteral(rv.Elem().Interface())
	case reflect.String:
		return Quote(rv.String()), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, rv.Type().Bits()), true
	case reflect.Slice, reflect.Array:
		return formatList(rv), true
	}
	return "", false
}

func formatList(rv reflect.Value) string {
	members := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if !isPrimitive(elem) {
			continue
		}
		if lit, ok := FormatLiteral(elem); ok {
			members = append(members, " "+lit+" ")
		}
	}
	return "[" + strings.Join(members, ",") + "]"
}

func isPrimitive(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isString(v any) bool {
	return v != nil && reflect.ValueOf(v).Kind() == reflect.String
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
