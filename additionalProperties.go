package serpyco

import (
	"fmt"
	"sort"
	"strings"
)

// evaluateAdditionalProperties checks the "additionalProperties" keyword:
// boolean false rejects any object key outside "properties"; a schema value
// is the Map(_, V) fragment and is checked separately by the caller walking
// into each extra property's value, since a failure there must report at
// that property's own path rather than at this schema's path.
func evaluateAdditionalProperties(schema *Schema, instance Value) *ValidationFailure {
	if schema.AdditionalPropertiesBool == nil || *schema.AdditionalPropertiesBool {
		return nil
	}
	obj, ok := instance.(ValueMap)
	if !ok {
		return nil
	}

	declared := map[string]bool{}
	if schema.Properties != nil {
		for name := range *schema.Properties {
			declared[name] = true
		}
	}

	var extra []string
	for name := range obj {
		if !declared[name] {
			extra = append(extra, name)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)

	quoted := make([]string, len(extra))
	for i, name := range extra {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return &ValidationFailure{
		Keyword: "additionalProperties",
		Value:   instance,
		Detail:  "properties " + strings.Join(quoted, ", ") + " cannot be defined",
	}
}

// extraProperties returns the object's keys not named in schema.Properties,
// sorted, for the caller to recurse into against AdditionalPropertiesSchema.
func extraProperties(schema *Schema, obj ValueMap) []string {
	declared := map[string]bool{}
	if schema.Properties != nil {
		for name := range *schema.Properties {
			declared[name] = true
		}
	}
	var extra []string
	for name := range obj {
		if !declared[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return extra
}
