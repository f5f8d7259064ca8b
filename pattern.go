package serpyco

import "regexp"

// evaluatePattern checks the "pattern" keyword against a string instance.
func evaluatePattern(schema *Schema, instance Value) *ValidationFailure {
	if schema.Pattern == "" {
		return nil
	}
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	re, err := regexp.Compile(schema.Pattern)
	if err != nil || !re.MatchString(s) {
		return &ValidationFailure{
			Keyword: "pattern",
			Value:   instance,
			Detail:  "does not match pattern, expected \"" + schema.Pattern + "\"",
		}
	}
	return nil
}
