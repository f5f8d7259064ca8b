package serpyco

// evaluateFormat checks the "format" keyword using the Formats registry
// (formats.go). Unknown formats are ignored (annotation-only), matching
// spec.md §4.5's deliberately small recognized set.
func evaluateFormat(schema *Schema, instance Value) *ValidationFailure {
	if schema.Format == "" {
		return nil
	}
	validate, ok := Formats[schema.Format]
	if !ok {
		return nil
	}
	if validate(instance) {
		return nil
	}
	return &ValidationFailure{
		Keyword: "format",
		Value:   instance,
		Detail:  "doesn't match defined format, expected \"" + schema.Format + "\"",
	}
}
