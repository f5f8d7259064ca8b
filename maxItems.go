package serpyco

// evaluateMaxItems checks the "maxItems" keyword.
func evaluateMaxItems(schema *Schema, instance Value) *ValidationFailure {
	if schema.MaxItems == nil {
		return nil
	}
	arr, ok := instance.([]Value)
	if !ok {
		return nil
	}
	if len(arr) > *schema.MaxItems {
		return &ValidationFailure{
			Keyword: "maxItems",
			Value:   instance,
			Detail:  lengthDetail("<=", *schema.MaxItems, len(arr)),
		}
	}
	return nil
}
