package query

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether name can be used unquoted as a property or
// parameter name.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Parameters prepares a property map for use as named statement parameters.
// The IDProperty key is dropped and time.Time values become epoch
// milliseconds. The returned keys are sorted so statements built from them
// are deterministic. Keys that are not plain identifiers are rejected.
func Parameters(props map[string]any) (map[string]any, []string, error) {
	params := make(map[string]any, len(props))
	keys := make([]string, 0, len(props))
	for k, v := range props {
		if k == IDProperty {
			continue
		}
		if !IsIdentifier(k) {
			return nil, nil, fmt.Errorf("invalid property name %q", k)
		}
		if t, ok := v.(time.Time); ok {
			v = t.UnixMilli()
		}
		params[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return params, keys, nil
}

// MapLiteral renders a map literal binding each key to the parameter of the
// same name: "{ name : $name, age : $age }". No keys render "{}".
func MapLiteral(keys []string) string {
	if len(keys) == 0 {
		return "{}"
	}
	items := make([]string, len(keys))
	for i, k := range keys {
		items[i] = k + " : $" + k
	}
	return "{ " + strings.Join(items, ", ") + " }"
}

// IDList renders ids as a Cypher list literal: "[1, 2, 3]".
func IDList(ids []int64) string {
	items := make([]string, len(ids))
	for i, id := range ids {
		items[i], _ = FormatLiteral(id)
	}
	return "[" + strings.Join(items, ", ") + "]"
}
