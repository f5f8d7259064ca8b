package serpyco

// evaluateType checks the "type" keyword: the instance's Value kind must
// match schema.Type exactly, except that an integer also satisfies
// "number" (draft-04 treats integer as a subset of number). A schema.Type
// of "" means no type constraint.
func evaluateType(schema *Schema, instance Value) *ValidationFailure {
	if schema.Type == "" {
		return nil
	}

	instanceType := TypeName(instance)
	if instanceType == schema.Type {
		return nil
	}
	if schema.Type == "number" && instanceType == "integer" {
		return nil
	}

	expected := schema.Type
	if expected == "null" {
		expected = "NoneType"
	}
	return &ValidationFailure{
		Keyword: "type",
		Value:   instance,
		Detail:  "has type " + quoteType(instanceType) + ", expected " + quoteType(expected),
	}
}

func quoteType(name string) string {
	return "\"" + name + "\""
}
