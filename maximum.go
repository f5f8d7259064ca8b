package serpyco

// evaluateMaximum checks the "maximum" keyword: inclusive upper bound.
func evaluateMaximum(schema *Schema, instance Value) *ValidationFailure {
	if schema.Maximum == nil {
		return nil
	}
	n, ok := AsFloat64(instance)
	if !ok {
		return nil
	}
	if n > *schema.Maximum {
		return &ValidationFailure{
			Keyword: "maximum",
			Value:   instance,
			Detail:  "must be <= " + formatNumber(*schema.Maximum),
		}
	}
	return nil
}
