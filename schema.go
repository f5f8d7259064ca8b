package serpyco

import (
	"maps"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Schema is a JSON Schema draft-04 document, carrying only the keywords
// spec.md §4.5 lists as needed for structural validation. "definitions"
// (not "$defs") is the draft-04 spelling for shared sub-schemas.
type Schema struct {
	Comment string `json:"$comment,omitempty"` // qualified record name, used by the validator's top-line message

	Type       string     `json:"type,omitempty"`
	Properties *SchemaMap `json:"properties,omitempty"`
	Required   []string   `json:"required,omitempty"`

	// AdditionalProperties is rendered manually (see MarshalJSONTo): the
	// draft-04 keyword is either a boolean (Bool set) or a schema every
	// additional property's value must satisfy (Schema set, the shape
	// Map(_, V) compiles to). At most one is set.
	AdditionalPropertiesBool   *bool   `json:"-"`
	AdditionalPropertiesSchema *Schema `json:"-"`

	Pattern   string   `json:"pattern,omitempty"`
	Format    string   `json:"format,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	Enum      []Value  `json:"enum,omitempty"`

	// Items is a single schema (homogeneous Seq); TupleItems, when
	// non-empty, holds one schema per positional slot (TupleFixed), matching how the
	// teacher's Items/PrefixItems pair folds into draft-04's single "items"
	// keyword (draft-04 has no "prefixItems"; the array form of "items" IS
	// its tuple validation).
	Items      *Schema   `json:"-"`
	TupleItems []*Schema `json:"-"`
	MinItems   *int      `json:"minItems,omitempty"`
	MaxItems   *int      `json:"maxItems,omitempty"`

	AnyOf []*Schema `json:"anyOf,omitempty"`
	Ref   string    `json:"$ref,omitempty"`

	Definitions map[string]*Schema `json:"definitions,omitempty"`

	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Default     Value   `json:"default,omitempty"`
	Examples    []Value `json:"examples,omitempty"`

	// SchemaURI is only set on the root schema:
	// "http://json-schema.org/draft-04/schema#".
	SchemaURI string `json:"$schema,omitempty"`
}

// SchemaMap is a string-keyed set of property schemas, rendered with
// deterministic key order for reproducible output (mirrors the teacher's
// SchemaMap in schema.go).
type SchemaMap map[string]*Schema

func (sm SchemaMap) MarshalJSON() ([]byte, error) {
	m := make(map[string]*Schema, len(sm))
	maps.Copy(m, sm)
	return json.Marshal(m, json.Deterministic(true))
}

func (sm *SchemaMap) UnmarshalJSON(data []byte) error {
	m := make(map[string]*Schema)
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*sm = SchemaMap(m)
	return nil
}

// MarshalJSONTo implements json.MarshalerTo, folding AdditionalProperties
// and the Items/TupleItems pair into their draft-04 wire shapes the way
// the teacher's own Schema.MarshalJSONTo folds ConstValue and Boolean.
func (s *Schema) MarshalJSONTo(enc *jsontext.Encoder, opts json.Options) error {
	type Alias Schema
	data, err := json.Marshal((*Alias)(s), json.Deterministic(true))
	if err != nil {
		return err
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}

	switch {
	case s.AdditionalPropertiesSchema != nil:
		result["additionalProperties"] = s.AdditionalPropertiesSchema
	case s.AdditionalPropertiesBool != nil:
		result["additionalProperties"] = *s.AdditionalPropertiesBool
	}
	if len(s.TupleItems) > 0 {
		result["items"] = s.TupleItems
	} else if s.Items != nil {
		result["items"] = s.Items
	}

	opts = json.JoinOptions(opts, json.Deterministic(true))
	return json.MarshalEncode(enc, result, opts)
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s, json.Deterministic(true))
}

// UnmarshalJSON handles "additionalProperties" (bool or schema) and the
// schema-or-array shape of "items".
func (s *Schema) UnmarshalJSON(data []byte) error {
	type Alias Schema
	aux := &struct {
		AdditionalProperties jsontext.Value `json:"additionalProperties,omitempty"`
		Items                jsontext.Value `json:"items,omitempty"`
		*Alias
	}{Alias: (*Alias)(s)}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	if len(aux.AdditionalProperties) > 0 {
		trimmed := bytesTrimSpace(aux.AdditionalProperties)
		if len(trimmed) > 0 && (trimmed[0] == 't' || trimmed[0] == 'f') {
			var b bool
			if err := json.Unmarshal(aux.AdditionalProperties, &b); err == nil {
				s.AdditionalPropertiesBool = &b
			}
		} else {
			if err := json.Unmarshal(aux.AdditionalProperties, &s.AdditionalPropertiesSchema); err != nil {
				return err
			}
		}
	}

	if len(aux.Items) > 0 {
		trimmed := bytesTrimSpace(aux.Items)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(aux.Items, &s.TupleItems); err != nil {
				return err
			}
		} else {
			if err := json.Unmarshal(aux.Items, &s.Items); err != nil {
				return err
			}
		}
	}

	return nil
}

func bytesTrimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isJSONSpace(b[start]) {
		start++
	}
	for end > start && isJSONSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// BoolPtr is a small helper for building *bool-valued Schema fields from a
// constructor call site.
func BoolPtr(b bool) *bool { return &b }

// IntPtr is the int analogue of BoolPtr.
func IntPtr(i int) *int { return &i }

// Float64Ptr is the float64 analogue of BoolPtr.
func Float64Ptr(f float64) *float64 { return &f }
