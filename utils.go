package serpyco

import (
	"fmt"
	"strings"
)

// replace substitutes {name}-style placeholders in a template string with
// actual parameter values.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}
	return template
}

// mergeStringMaps merges two string-set maps. Values in the second map
// overwrite the first where keys overlap.
func mergeStringMaps(map1, map2 map[string]bool) map[string]bool {
	for key, value := range map2 {
		map1[key] = value
	}
	return map1
}

// isJSONPointer reports whether s has JSON Pointer syntax ("/a/b") rather
// than a bare property name.
func isJSONPointer(s string) bool {
	return strings.HasPrefix(s, "/")
}

// lengthDetail renders the minLength/maxLength failure detail, e.g.
// `must have its length >= 3 but length is 1`.
func lengthDetail(op string, bound, actual int) string {
	return fmt.Sprintf("must have its length %s %d but length is %d", op, bound, actual)
}

// formatNumber renders a float64 bound without a trailing ".0" for whole
// numbers, matching how minimum/maximum failure messages read in practice.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// quote renders a Value for inclusion in a ValidationFailure message,
// following the draft-04 convention of quoting strings and leaving other
// kinds bare.
func quote(v Value) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
