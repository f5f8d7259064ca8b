// Package fieldtags parses the "serpyco" struct tag grammar: a
// comma-separated list of rule=value pairs describing one field's
// FieldHints, adapted from the jsonschema-tag parser this module's
// reflection layer is otherwise grounded on.
package fieldtags

import "strings"

// Rule is one parsed "name=value" (or bare "name") tag entry.
type Rule struct {
	Name   string
	Params []string
}

// Parse splits a serpyco struct tag into its rules. Values may be
// comma-lists themselves (only, exclude, allowed_values, examples) by
// wrapping them in brackets: `only=[a,b,c]`.
func Parse(tag string) []Rule {
	var rules []Rule
	for _, part := range splitTopLevel(tag) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "="); idx != -1 {
			name := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			rules = append(rules, Rule{Name: name, Params: splitValue(value)})
			continue
		}
		rules = append(rules, Rule{Name: part})
	}
	return rules
}

// splitTopLevel splits on commas that are not inside a bracketed list
// value, so `only=[a,b]` stays one rule.
func splitTopLevel(tag string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	for _, r := range tag {
		switch r {
		case '[':
			depth++
			cur.WriteRune(r)
		case ']':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case ',':
			if depth == 0 {
				parts = append(parts, cur.String())
				cur.Reset()
				continue
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// splitValue turns a bracketed list value "[a,b,c]" into its elements, or
// returns a single-element slice for a plain scalar value.
func splitValue(value string) []string {
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		inner := value[1 : len(value)-1]
		if inner == "" {
			return nil
		}
		items := strings.Split(inner, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		return items
	}
	if value == "" {
		return nil
	}
	return []string{value}
}

// Has reports whether rules contains a rule named name.
func Has(rules []Rule, name string) bool {
	for _, r := range rules {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Get returns the first rule named name, if any.
func Get(rules []Rule, name string) (Rule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Param returns a rule's sole scalar parameter, or "" if absent.
func (r Rule) Param() string {
	if len(r.Params) == 0 {
		return ""
	}
	return r.Params[0]
}
