package serpyco

// evaluateMinimum checks the "minimum" keyword: inclusive lower bound.
func evaluateMinimum(schema *Schema, instance Value) *ValidationFailure {
	if schema.Minimum == nil {
		return nil
	}
	n, ok := AsFloat64(instance)
	if !ok {
		return nil
	}
	if n < *schema.Minimum {
		return &ValidationFailure{
			Keyword: "minimum",
			Value:   instance,
			Detail:  "must be >= " + formatNumber(*schema.Minimum),
		}
	}
	return nil
}
