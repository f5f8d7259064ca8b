package serpyco

// itemSchemaAt returns the schema that governs array index i: the
// corresponding slot of TupleItems for a fixed-arity tuple, or the single
// Items schema for a homogeneous sequence. Returns nil if neither applies,
// meaning index i is unconstrained. Like properties.go, "items" is a
// fan-out point for the structural walk rather than a single-shot keyword,
// so the recursion itself lives in validate.go.
func itemSchemaAt(schema *Schema, i int) *Schema {
	if len(schema.TupleItems) > 0 {
		if i < len(schema.TupleItems) {
			return schema.TupleItems[i]
		}
		return nil
	}
	return schema.Items
}
