package serpyco

import "unicode/utf8"

// evaluateMaxLength checks the "maxLength" keyword (rune count).
func evaluateMaxLength(schema *Schema, instance Value) *ValidationFailure {
	if schema.MaxLength == nil {
		return nil
	}
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	length := utf8.RuneCountInString(s)
	if length > *schema.MaxLength {
		return &ValidationFailure{
			Keyword: "maxLength",
			Value:   instance,
			Detail:  lengthDetail("<=", *schema.MaxLength, length),
		}
	}
	return nil
}
