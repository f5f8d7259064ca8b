package serpyco

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FieldEncoder is the C2 contract: a codec for one opaque type, bound to a
// resolved TypeExpr. Built-ins and user-registered encoders implement it
// identically; resolution order never distinguishes them once found.
type FieldEncoder interface {
	// Dump converts a Go value of the encoder's bound type to a Value.
	Dump(v any) (Value, error)

	// Load converts a Value back to a Go value of the encoder's bound type.
	Load(val Value) (any, error)

	// JSONSchema returns the schema fragment this encoder contributes
	// wherever its type appears ("json_schema() -> schema fragment").
	JSONSchema() *Schema
}

// encoderFuncs adapts three plain functions to FieldEncoder, the shape
// every built-in below is defined with.
type encoderFuncs struct {
	dump   func(v any) (Value, error)
	load   func(val Value) (any, error)
	schema func() *Schema
}

func (e encoderFuncs) Dump(v any) (Value, error)   { return e.dump(v) }
func (e encoderFuncs) Load(val Value) (any, error) { return e.load(val) }
func (e encoderFuncs) JSONSchema() *Schema         { return e.schema() }

// dateTimePattern is the ISO-8601/RFC 3339 regex the built-in temporal
// encoder bakes into its schema fragment, so structural validation rejects
// ill-formed date-time strings before the encoder ever attempts to parse
// them (spec.md §4.2).
const dateTimePattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`

var timeType = reflect.TypeOf(time.Time{})
var uuidType = reflect.TypeOf(uuid.UUID{})

var builtinTemporalEncoder = encoderFuncs{
	dump: func(v any) (Value, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("%w: expected time.Time, got %T", ErrInvalidValue, v)
		}
		return t.Format(time.RFC3339Nano), nil
	},
	load: func(val Value) (any, error) {
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string, got %s", ErrInvalidValue, TypeName(val))
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTimeParsing, err)
		}
		return t, nil
	},
	schema: func() *Schema {
		return String(SetFormat(FormatDateTime), SetPattern(dateTimePattern))
	},
}

var builtinUUIDEncoder = encoderFuncs{
	dump: func(v any) (Value, error) {
		u, ok := v.(uuid.UUID)
		if !ok {
			return nil, fmt.Errorf("%w: expected uuid.UUID, got %T", ErrInvalidValue, v)
		}
		return u.String(), nil
	},
	load: func(val Value) (any, error) {
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string, got %s", ErrInvalidValue, TypeName(val))
		}
		u, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUUIDParsing, err)
		}
		return u, nil
	},
	schema: func() *Schema {
		return String(SetFormat(FormatUUID))
	},
}

// UnionFieldEncoder composes an ordered list of (TypeExpr, FieldEncoder)
// pairs. Load tries each in declared order, returning the first success;
// Dump dispatches on the runtime variant by trying each encoder's Dump in
// turn, since Go has no tagged-union runtime representation to switch on
// directly (spec.md §4.2).
type UnionFieldEncoder struct {
	Variants []TypeExpr
	Encoders []FieldEncoder
}

func (u *UnionFieldEncoder) Load(val Value) (any, error) {
	var lastErr error
	for _, enc := range u.Encoders {
		out, err := enc.Load(val)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: no union branch accepted value: %v", ErrInvalidValue, lastErr)
}

func (u *UnionFieldEncoder) Dump(v any) (Value, error) {
	var lastErr error
	for _, enc := range u.Encoders {
		out, err := enc.Dump(v)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: no union branch accepted value: %v", ErrInvalidValue, lastErr)
}

func (u *UnionFieldEncoder) JSONSchema() *Schema {
	anyOf := make([]*Schema, len(u.Encoders))
	for i, enc := range u.Encoders {
		anyOf[i] = enc.JSONSchema()
	}
	return &Schema{AnyOf: anyOf}
}

// Registry resolves a FieldEncoder for a reflect.Type through four scopes,
// in order: field-scoped overrides, serializer-scoped overrides, the
// process-wide global registry, then built-ins (spec.md §4.2).
type Registry struct {
	serializerScoped map[reflect.Type]FieldEncoder
}

var (
	globalMu       sync.RWMutex
	globalRegistry = map[reflect.Type]FieldEncoder{}
)

// RegisterGlobalType installs a FieldEncoder for t in the process-wide
// registry. Per spec.md §5, call this during init, not concurrently with
// Serializer construction: the registry is read-locked on lookup and
// write-locked here, mirroring the teacher's struct_tags.go guard around
// globalValidatorRegistry.
func RegisterGlobalType(t reflect.Type, enc FieldEncoder) error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if _, exists := globalRegistry[t]; exists {
		return fmt.Errorf("%w: %s", ErrEncoderAlreadyRegistered, t)
	}
	globalRegistry[t] = enc
	return nil
}

// UnregisterGlobalType removes t's global FieldEncoder, if any.
func UnregisterGlobalType(t reflect.Type) {
	globalMu.Lock()
	defer globalMu.Unlock()
	delete(globalRegistry, t)
}

func lookupGlobal(t reflect.Type) (FieldEncoder, bool) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	enc, ok := globalRegistry[t]
	return enc, ok
}

// NewRegistry builds a Registry scoped to one Serializer, given its
// serializer-wide type encoder overrides.
func NewRegistry(serializerScoped map[reflect.Type]FieldEncoder) *Registry {
	return &Registry{serializerScoped: serializerScoped}
}

// Resolve finds a FieldEncoder for t, consulting fieldScoped (may be nil)
// first, then the serializer scope, then the global registry, then the
// built-in roster (temporal, UUID). Returns ErrNoEncoder if none match.
func (r *Registry) Resolve(t reflect.Type, fieldScoped map[reflect.Type]FieldEncoder) (FieldEncoder, error) {
	if fieldScoped != nil {
		if enc, ok := fieldScoped[t]; ok {
			return enc, nil
		}
	}
	if r != nil && r.serializerScoped != nil {
		if enc, ok := r.serializerScoped[t]; ok {
			return enc, nil
		}
	}
	if enc, ok := lookupGlobal(t); ok {
		return enc, nil
	}
	switch t {
	case timeType:
		return builtinTemporalEncoder, nil
	case uuidType:
		return builtinUUIDEncoder, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoEncoder, t)
}

// HasEncoder reports whether t resolves to a FieldEncoder in any scope,
// without erroring, used by the C1 reflect.Type -> TypeExpr mapping to
// decide whether a type becomes Opaque ahead of its structural shape.
func (r *Registry) HasEncoder(t reflect.Type, fieldScoped map[reflect.Type]FieldEncoder) bool {
	_, err := r.Resolve(t, fieldScoped)
	return err == nil
}
