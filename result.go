package serpyco

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationFailure is one distinct structural or semantic violation found
// while validating a Value against a compiled Schema, produced by the
// error-refinement loop in validate.go (spec.md §4.5).
type ValidationFailure struct {
	// Path is the JSON pointer, relative to the schema root ("#"), at which
	// the failure occurred.
	Path string

	// Keyword is the draft-04 keyword that rejected the value ("type",
	// "pattern", "format", "minimum", "maximum", "minLength", "maxLength",
	// "minItems", "maxItems", "required", "enum", "additionalProperties",
	// "$ref", "validator").
	Keyword string

	// Value is the offending Value, rendered into the message when Path is
	// not the schema root.
	Value Value

	// Detail is the keyword-specific tail of the message, already rendered
	// ("has type \"string\", expected \"integer\"", "must be >= 3", ...).
	Detail string
}

// Message renders a ValidationFailure using spec.md §4.5's exact phrasing:
// the detail, prefixed with `value "<val>" at path "<path>" ` whenever the
// failure is not at the schema root.
func (f ValidationFailure) Message() string {
	if f.Path == "" || f.Path == "#" {
		return f.Detail
	}
	return fmt.Sprintf("value %s at path %q %s", quote(f.Value), f.Path, f.Detail)
}

// ValidationError is the run-time failure of a single validate/load/dump
// call that rejects the data. It carries a one-line human summary and a
// full path -> message mapping, per spec.md §4.6.
type ValidationError struct {
	// ClassName is the record's qualified name, rendered on the top line as
	// `Validation failed for class "<ClassName>":`.
	ClassName string

	// Failures holds one entry per distinct violation, in the order they
	// were collected by the refinement loop (rendered sorted for Error()).
	Failures []ValidationFailure
}

// Error implements error. The top line reads
// `Validation failed for class "<name>":` followed by one `- <message>`
// line per failure, sorted by (path, keyword) so output is stable across
// runs even though refinement order depends on map iteration.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Validation failed for class %q:", e.ClassName)
	for _, msg := range e.sortedMessages() {
		b.WriteString("\n- ")
		b.WriteString(msg)
	}
	return b.String()
}

// Unwrap lets callers use errors.Is(err, ErrValidationFailed).
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Errors returns the path -> message mapping spec.md §4.6 requires every
// ValidationError to carry.
func (e *ValidationError) Errors() map[string]string {
	out := make(map[string]string, len(e.Failures))
	for _, f := range e.Failures {
		path := f.Path
		if path == "" {
			path = "#"
		}
		out[path] = f.Detail
	}
	return out
}

func (e *ValidationError) sortedMessages() []string {
	failures := make([]ValidationFailure, len(e.Failures))
	copy(failures, e.Failures)
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Path != failures[j].Path {
			return failures[i].Path < failures[j].Path
		}
		return failures[i].Keyword < failures[j].Keyword
	})
	msgs := make([]string, len(failures))
	for i, f := range failures {
		msgs[i] = f.Message()
	}
	return msgs
}
