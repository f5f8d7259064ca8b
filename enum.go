package serpyco

import (
	"fmt"
	"strings"
)

// evaluateEnum checks the "enum" keyword.
func evaluateEnum(schema *Schema, instance Value) *ValidationFailure {
	if len(schema.Enum) == 0 {
		return nil
	}
	for _, allowed := range schema.Enum {
		if Equal(instance, allowed) {
			return nil
		}
	}
	rendered := make([]string, len(schema.Enum))
	for i, v := range schema.Enum {
		rendered[i] = quote(v)
	}
	return &ValidationFailure{
		Keyword: "enum",
		Value:   instance,
		Detail:  fmt.Sprintf("must have a value in [%s]", strings.Join(rendered, ", ")),
	}
}
