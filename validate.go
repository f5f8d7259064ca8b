package serpyco

import (
	"strconv"
	"strings"
)

// firstFailure performs one structural validation pass, descending into
// the instance tree and returning the first violation found (depth-first,
// keyword order roughly mirrors draft-04's own evaluation order). disabled
// holds the (path, keyword) pairs a previous pass already reported; those
// checks are skipped so the walk can surface the next distinct error
// instead of repeating one already collected. This stands in for the
// literal clone-and-patch-to-"{}" described by spec.md §4.5: disabling a
// keyword at a path has the same effect as replacing it with an
// always-accepting schema, without needing to walk a cloned tree by path
// (including through $ref) on every pass.
func firstFailure(root, schema *Schema, instance Value, path string, disabled map[string]map[string]bool) *ValidationFailure {
	if schema.Ref != "" {
		target, err := resolveRef(root, schema.Ref)
		if err != nil {
			return &ValidationFailure{Path: path, Keyword: "$ref", Value: instance, Detail: err.Error()}
		}
		return firstFailure(root, target, instance, path, disabled)
	}

	checks := []struct {
		keyword string
		fn      func() *ValidationFailure
	}{
		{"type", func() *ValidationFailure { return evaluateType(schema, instance) }},
		{"enum", func() *ValidationFailure { return evaluateEnum(schema, instance) }},
		{"pattern", func() *ValidationFailure { return evaluatePattern(schema, instance) }},
		{"format", func() *ValidationFailure { return evaluateFormat(schema, instance) }},
		{"minimum", func() *ValidationFailure { return evaluateMinimum(schema, instance) }},
		{"maximum", func() *ValidationFailure { return evaluateMaximum(schema, instance) }},
		{"minLength", func() *ValidationFailure { return evaluateMinLength(schema, instance) }},
		{"maxLength", func() *ValidationFailure { return evaluateMaxLength(schema, instance) }},
		{"minItems", func() *ValidationFailure { return evaluateMinItems(schema, instance) }},
		{"maxItems", func() *ValidationFailure { return evaluateMaxItems(schema, instance) }},
		{"required", func() *ValidationFailure { return evaluateRequired(schema, instance) }},
		{"additionalProperties", func() *ValidationFailure { return evaluateAdditionalProperties(schema, instance) }},
	}
	for _, c := range checks {
		if disabled[path][c.keyword] {
			continue
		}
		if f := c.fn(); f != nil {
			f.Path = path
			return f
		}
	}

	if len(schema.AnyOf) > 0 && !disabled[path]["anyOf"] {
		if f := evaluateAnyOf(root, schema, instance, path, disabled); f != nil {
			return f
		}
	}

	if obj, ok := instance.(ValueMap); ok && schema.Properties != nil {
		for _, name := range propertyPairs(schema, obj) {
			val, exists := obj[name]
			if !exists {
				continue
			}
			childSchema := (*schema.Properties)[name]
			if f := firstFailure(root, childSchema, val, path+"/"+name, disabled); f != nil {
				return f
			}
		}
	}

	if obj, ok := instance.(ValueMap); ok && schema.AdditionalPropertiesSchema != nil {
		for _, name := range extraProperties(schema, obj) {
			if f := firstFailure(root, schema.AdditionalPropertiesSchema, obj[name], path+"/"+name, disabled); f != nil {
				return f
			}
		}
	}

	if arr, ok := instance.([]Value); ok {
		for i, v := range arr {
			itemSchema := itemSchemaAt(schema, i)
			if itemSchema == nil {
				continue
			}
			if f := firstFailure(root, itemSchema, v, path+"/"+strconv.Itoa(i), disabled); f != nil {
				return f
			}
		}
	}

	return nil
}

// evaluateAnyOf re-validates instance independently against every branch.
// If any branch validates fully, "anyOf" passes. Otherwise the per-branch
// failures are aggregated: a null branch's failure (the second variant of
// an Optional) is suppressed from the report unless every branch is the
// null branch, and a run of plain "type" mismatches collapses into one
// failure with an "or"-joined expected list.
func evaluateAnyOf(root, schema *Schema, instance Value, path string, disabled map[string]map[string]bool) *ValidationFailure {
	var failures []*ValidationFailure
	var nullFailure *ValidationFailure
	for _, branch := range schema.AnyOf {
		f := firstFailure(root, branch, instance, path, disabled)
		if f == nil {
			return nil
		}
		if branch.Type == "null" {
			nullFailure = f
			continue
		}
		failures = append(failures, f)
	}
	if len(failures) == 0 {
		return nullFailure
	}

	if agg := aggregateAnyOfTypeFailures(instance, failures); agg != nil {
		agg.Path = path
		return agg
	}
	first := failures[0]
	first.Path = path
	return first
}

const maxRefinementPasses = 10000

// validateValue runs the iterative error-refinement loop: collect the
// first failure, disable it, and re-validate until nothing more is found.
func validateValue(schema *Schema, instance Value) []ValidationFailure {
	disabled := map[string]map[string]bool{}
	var failures []ValidationFailure
	for i := 0; i < maxRefinementPasses; i++ {
		f := firstFailure(schema, schema, instance, "#", disabled)
		if f == nil {
			break
		}
		failures = append(failures, *f)
		if disabled[f.Path] == nil {
			disabled[f.Path] = map[string]bool{}
		}
		disabled[f.Path][f.Keyword] = true
	}
	return failures
}

// Validate checks instance against the schema, returning nil when it
// conforms or a *ValidationError collecting every distinct violation.
func (s *Schema) Validate(instance Value) *ValidationError {
	failures := validateValue(s, instance)
	if len(failures) == 0 {
		return nil
	}
	return &ValidationError{ClassName: s.Comment, Failures: failures}
}

// ValidateJSON parses data as a Value tree and validates it.
func (s *Schema) ValidateJSON(data []byte) (*ValidationError, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return s.Validate(v), nil
}

// ValidateMany validates a slice of instances independently, prefixing
// every reported path with the instance's index, for a Serializer
// configured with Many.
func (s *Schema) ValidateMany(instances []Value) *ValidationError {
	var all []ValidationFailure
	for i, inst := range instances {
		for _, f := range validateValue(s, inst) {
			f.Path = "#/" + strconv.Itoa(i) + strings.TrimPrefix(f.Path, "#")
			all = append(all, f)
		}
	}
	if len(all) == 0 {
		return nil
	}
	return &ValidationError{ClassName: s.Comment, Failures: all}
}

// PredicateFunc is a user-defined semantic check over a single Value,
// collected by the compiler from a field's Validator hint (set with the
// WithFieldValidator RecordOption).
type PredicateFunc func(Value) error

// Predicate pairs a JSON-pointer path (with "*" meaning "each element of
// a sequence", per spec.md §4.5) with the check to run against whatever
// it navigates to.
type Predicate struct {
	Path  string
	Check PredicateFunc
}

// Validator runs user predicates against a Value tree once structural
// validation has already succeeded.
type Validator struct {
	className  string
	predicates []Predicate
}

// NewValidator builds a Validator for a record named className.
func NewValidator(className string, predicates []Predicate) *Validator {
	return &Validator{className: className, predicates: predicates}
}

// Validate runs every predicate against root, navigating each one's path.
// A predicate whose path doesn't resolve (a missing key) is skipped
// silently; it fires only when the field is present.
func (v *Validator) Validate(root Value) *ValidationError {
	var failures []ValidationFailure
	for _, p := range v.predicates {
		for _, m := range navigate(root, p.Path) {
			if err := p.Check(m.value); err != nil {
				failures = append(failures, ValidationFailure{
					Path:    m.path,
					Keyword: "validator",
					Value:   m.value,
					Detail:  err.Error(),
				})
			}
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &ValidationError{ClassName: v.className, Failures: failures}
}

type pathValue struct {
	path  string
	value Value
}

// navigate walks root along path, splitting on "/" and expanding "*" into
// every element of whatever sequence it lands on. Any segment that can't
// be resolved against the current value (wrong shape, or key absent)
// drops that branch of the walk instead of erroring.
func navigate(root Value, path string) []pathValue {
	current := []pathValue{{"#", root}}
	if path == "" || path == "#" {
		return current
	}

	segments := strings.Split(strings.TrimPrefix(path, "#/"), "/")
	for _, seg := range segments {
		var next []pathValue
		for _, cur := range current {
			if seg == "*" {
				arr, ok := cur.value.([]Value)
				if !ok {
					continue
				}
				for i, v := range arr {
					next = append(next, pathValue{cur.path + "/" + strconv.Itoa(i), v})
				}
				continue
			}
			obj, ok := cur.value.(ValueMap)
			if !ok {
				continue
			}
			v, exists := obj[seg]
			if !exists {
				continue
			}
			next = append(next, pathValue{cur.path + "/" + seg, v})
		}
		current = next
	}
	return current
}
