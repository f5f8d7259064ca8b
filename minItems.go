package serpyco

// evaluateMinItems checks the "minItems" keyword.
func evaluateMinItems(schema *Schema, instance Value) *ValidationFailure {
	if schema.MinItems == nil {
		return nil
	}
	arr, ok := instance.([]Value)
	if !ok {
		return nil
	}
	if len(arr) < *schema.MinItems {
		return &ValidationFailure{
			Keyword: "minItems",
			Value:   instance,
			Detail:  lengthDetail(">=", *schema.MinItems, len(arr)),
		}
	}
	return nil
}
