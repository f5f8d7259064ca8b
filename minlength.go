package serpyco

import "unicode/utf8"

// evaluateMinLength checks the "minLength" keyword (rune count, per RFC 8259
// character semantics).
func evaluateMinLength(schema *Schema, instance Value) *ValidationFailure {
	if schema.MinLength == nil {
		return nil
	}
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	length := utf8.RuneCountInString(s)
	if length < *schema.MinLength {
		return &ValidationFailure{
			Keyword: "minLength",
			Value:   instance,
			Detail:  lengthDetail(">=", *schema.MinLength, length),
		}
	}
	return nil
}
