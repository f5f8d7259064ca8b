package serpyco

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"sort"
)

// Value is the language-neutral generic value tree that the compiled
// Serializer converts records to and from: null, bool, int64, float64,
// string, []Value, or map[string]Value (ValueMap). Integer vs float is
// preserved rather than collapsed to a single number kind.
type Value = any

// ValueMap is a string-keyed Value node, used for record and map fragments.
type ValueMap = map[string]Value

// TypeName returns the JSON Schema type name ("null", "boolean", "integer",
// "number", "string", "array", "object") for a Value, or "unknown" if v is
// not a member of the Value tree's closed type set.
func TypeName(v Value) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32:
		return numberKind(float64(t))
	case float64:
		return numberKind(t)
	case string:
		return "string"
	case []Value:
		return "array"
	case ValueMap:
		return "object"
	default:
		return "unknown"
	}
}

func numberKind(f float64) string {
	if bf := big.NewFloat(f); bf.IsInt() {
		return "integer"
	}
	return "number"
}

// IsInteger reports whether v decodes to a whole number (int64 kind or a
// float64/float32 with no fractional part), matching the "integer" case of
// the draft-04 "type" keyword which treats integers as a subset of numbers.
func IsInteger(v Value) bool {
	switch t := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return big.NewFloat(float64(t)).IsInt()
	case float64:
		return big.NewFloat(t).IsInt()
	default:
		return false
	}
}

// AsFloat64 coerces any numeric Value to float64, used by numeric keyword
// evaluation where the int/float distinction no longer matters.
func AsFloat64(v Value) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(rv.Uint()), true
		}
		return 0, false
	}
}

// Equal reports deep equality between two Value trees, used by the "enum"
// keyword and by set-semantics Seq load deduplication.
func Equal(a, b Value) bool {
	af, aok := AsFloat64(a)
	bf, bok := AsFloat64(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

// SortedKeys returns the keys of a ValueMap or map[string]*Schema in
// ascending order, used wherever the spec requires a stable ("sorted")
// rendering of a property-name set.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseJSON decodes JSON bytes into a Value tree, preserving the int/float
// distinction: a number with no fractional part and no exponent decodes to
// int64, otherwise to float64. This is the "parse: bytes -> Value" half of
// the pluggable JSON codec boundary spec.md declares out of scope (ch.1);
// it intentionally stays on the standard library rather than the richer
// go-json-experiment/json stack used elsewhere in this module (see
// DESIGN.md) because that boundary is an external collaborator contract,
// not a compiled-schema concern.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return normalizeDecoded(raw), nil
}

func normalizeDecoded(raw any) Value {
	switch t := raw.(type) {
	case json.Number:
		s := string(t)
		if i, err := t.Int64(); err == nil && !bytes.ContainsAny([]byte(s), ".eE") {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		out := make(ValueMap, len(t))
		for k, v := range t {
			out[k] = normalizeDecoded(v)
		}
		return out
	case []any:
		out := make([]Value, len(t))
		for i, v := range t {
			out[i] = normalizeDecoded(v)
		}
		return out
	default:
		return t
	}
}

// PrintJSON encodes a Value tree to JSON bytes. It refuses []byte-typed
// scalars (raw byte payloads) per spec.md §4.4: "strings bearing a raw byte
// payload must fail" so they cannot masquerade as validated strings.
func PrintJSON(v Value) ([]byte, error) {
	if err := rejectRawBytes(v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func rejectRawBytes(v Value) error {
	switch t := v.(type) {
	case []byte:
		return fmt.Errorf("%w: raw byte payload cannot be printed as JSON", ErrInvalidValue)
	case []Value:
		for _, item := range t {
			if err := rejectRawBytes(item); err != nil {
				return err
			}
		}
	case ValueMap:
		for _, item := range t {
			if err := rejectRawBytes(item); err != nil {
				return err
			}
		}
	}
	return nil
}
