package serpyco

// Keyword applies one draft-04 keyword to a Schema under construction by
// the builder DSL in constructor.go.
type Keyword func(*Schema)

// MinLen sets the minLength keyword.
func MinLen(min int) Keyword {
	return func(s *Schema) { s.MinLength = IntPtr(min) }
}

// MaxLen sets the maxLength keyword.
func MaxLen(max int) Keyword {
	return func(s *Schema) { s.MaxLength = IntPtr(max) }
}

// SetPattern sets the pattern keyword.
func SetPattern(pattern string) Keyword {
	return func(s *Schema) { s.Pattern = pattern }
}

// SetFormat sets the format keyword.
func SetFormat(format string) Keyword {
	return func(s *Schema) { s.Format = format }
}

// Min sets the minimum keyword.
func Min(min float64) Keyword {
	return func(s *Schema) { s.Minimum = Float64Ptr(min) }
}

// Max sets the maximum keyword.
func Max(max float64) Keyword {
	return func(s *Schema) { s.Maximum = Float64Ptr(max) }
}

// WithItems sets the items keyword to a single homogeneous item schema.
func WithItems(itemSchema *Schema) Keyword {
	return func(s *Schema) { s.Items = itemSchema }
}

// WithTupleItems sets the items keyword to a fixed, positional list of
// schemas (draft-04's array form of "items").
func WithTupleItems(schemas ...*Schema) Keyword {
	return func(s *Schema) { s.TupleItems = schemas }
}

// MinItemCount sets the minItems keyword.
func MinItemCount(min int) Keyword {
	return func(s *Schema) { s.MinItems = IntPtr(min) }
}

// MaxItemCount sets the maxItems keyword.
func MaxItemCount(max int) Keyword {
	return func(s *Schema) { s.MaxItems = IntPtr(max) }
}

// MustDefine sets the required keyword.
func MustDefine(fields ...string) Keyword {
	return func(s *Schema) { s.Required = fields }
}

// AdditionalProps sets the additionalProperties keyword to a boolean.
func AdditionalProps(allowed bool) Keyword {
	return func(s *Schema) { s.AdditionalPropertiesBool = BoolPtr(allowed) }
}

// AdditionalPropsSchema sets the additionalProperties keyword to a schema,
// the Map(_, V) fragment rule's shape.
func AdditionalPropsSchema(schema *Schema) Keyword {
	return func(s *Schema) { s.AdditionalPropertiesSchema = schema }
}

// SetTitle sets the title keyword.
func SetTitle(title string) Keyword {
	return func(s *Schema) { s.Title = title }
}

// SetDescription sets the description keyword.
func SetDescription(desc string) Keyword {
	return func(s *Schema) { s.Description = desc }
}

// SetDefault sets the default keyword.
func SetDefault(value Value) Keyword {
	return func(s *Schema) { s.Default = value }
}

// SetExamples sets the examples keyword.
func SetExamples(examples ...Value) Keyword {
	return func(s *Schema) { s.Examples = examples }
}

const (
	FormatEmail    = "email"
	FormatDateTime = "date-time"
	FormatURI      = "uri"
	FormatUUID     = "uuid"
	FormatHostname = "hostname"
	FormatIPv4     = "ipv4"
	FormatIPv6     = "ipv6"
)
