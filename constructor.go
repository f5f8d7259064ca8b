package serpyco

// This file and keywords.go are the builder DSL a FieldEncoder.JSONSchema
// implementation uses to assemble its contributed fragment without
// hand-populating Schema struct literals field by field. The built-in
// temporal and UUID encoders in registry.go use it; a custom FieldEncoder
// registered via RegisterGlobalType or Config.TypeEncoders can use it the
// same way.

// Property is a name/Schema pair passed to Object.
type Property struct {
	Name   string
	Schema *Schema
}

// Prop creates a property definition for use inside Object(...).
func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

// Object builds an object Schema from a mix of Property and Keyword
// arguments, a small builder DSL for assembling schema fragments without
// hand-populating struct literals.
func Object(items ...any) *Schema {
	schema := &Schema{Type: "object"}

	var properties []Property
	var keywords []Keyword
	for _, item := range items {
		switch v := item.(type) {
		case Property:
			properties = append(properties, v)
		case Keyword:
			keywords = append(keywords, v)
		}
	}

	if len(properties) > 0 {
		props := make(SchemaMap, len(properties))
		for _, p := range properties {
			props[p.Name] = p.Schema
		}
		schema.Properties = &props
	}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

// String builds a string Schema.
func String(keywords ...Keyword) *Schema { return build("string", keywords) }

// Integer builds an integer Schema.
func Integer(keywords ...Keyword) *Schema { return build("integer", keywords) }

// Number builds a number Schema.
func Number(keywords ...Keyword) *Schema { return build("number", keywords) }

// Boolean builds a boolean Schema.
func Boolean(keywords ...Keyword) *Schema { return build("boolean", keywords) }

// Null builds a null Schema.
func Null(keywords ...Keyword) *Schema { return build("null", keywords) }

// Array builds an array Schema.
func Array(keywords ...Keyword) *Schema { return build("array", keywords) }

// Any builds a Schema without a type restriction, used for Primitive(any).
func Any(keywords ...Keyword) *Schema { return build("", keywords) }

func build(typ string, keywords []Keyword) *Schema {
	schema := &Schema{Type: typ}
	for _, k := range keywords {
		k(schema)
	}
	return schema
}

// EnumSchema builds an enum Schema restricting the value to one of values.
func EnumSchema(values ...Value) *Schema {
	return &Schema{Enum: values}
}

// AnyOfSchema builds an anyOf combination Schema, used for Union/Optional.
func AnyOfSchema(schemas ...*Schema) *Schema {
	return &Schema{AnyOf: schemas}
}

// RefSchema builds a Schema containing only a "$ref" pointer.
func RefSchema(ref string) *Schema {
	return &Schema{Ref: ref}
}
