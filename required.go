package serpyco

import (
	"fmt"
	"sort"
	"strings"
)

// evaluateRequired checks the "required" keyword: `must define property
// "<name>"` for a single missing field, or `must define properties "a",
// "b"` (sorted) for several.
func evaluateRequired(schema *Schema, instance Value) *ValidationFailure {
	if len(schema.Required) == 0 {
		return nil
	}
	obj, ok := instance.(ValueMap)
	if !ok {
		return nil
	}

	var missing []string
	for _, name := range schema.Required {
		if _, exists := obj[name]; !exists {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	if len(missing) == 1 {
		return &ValidationFailure{
			Keyword: "required",
			Value:   instance,
			Detail:  fmt.Sprintf("must define property %q", missing[0]),
		}
	}

	quoted := make([]string, len(missing))
	for i, name := range missing {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return &ValidationFailure{
		Keyword: "required",
		Value:   instance,
		Detail:  "must define properties " + strings.Join(quoted, ", "),
	}
}
