package serpyco

// propertyPairs returns the names of the schema's declared properties, in
// sorted key order so recursive validation visits properties
// deterministically; instance is not read. The actual recursion into each
// sub-schema/value pair happens in validate.go: "properties" isn't a
// single-shot keyword like "pattern" or "minimum", it's the fan-out point
// for the rest of the structural walk.
func propertyPairs(schema *Schema, instance ValueMap) []string {
	if schema.Properties == nil {
		return nil
	}
	return SortedKeys(map[string]*Schema(*schema.Properties))
}
