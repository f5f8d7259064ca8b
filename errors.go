package serpyco

import "errors"

// === Reflection and Record Model Errors ===
var (
	// ErrNotARecord is returned when BuildRecord is asked to describe a Go
	// type that isn't a struct (after unwrapping pointers).
	ErrNotARecord = errors.New("not a record type")

	// ErrBadType is returned when a Go type cannot be mapped to any TypeExpr
	// case: unsupported kinds (chan, func, unsafe.Pointer, complex).
	ErrBadType = errors.New("unsupported type")

	// ErrStructTagParsing names a struct tag parsing failure. No function
	// in this package returns it.
	ErrStructTagParsing = errors.New("struct tag parsing failed")

	// ErrDuplicateField is returned when two fields of the same record
	// resolve to the same declared name or dict key.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrUnboundTypeParam is returned when a generic record is described
	// without binding one of its declared type parameters.
	ErrUnboundTypeParam = errors.New("unbound type parameter")
)

// === Encoder Registry Errors ===
var (
	// ErrNoEncoder is returned when no FieldEncoder can be resolved for a
	// field's TypeExpr at any registry scope.
	ErrNoEncoder = errors.New("no encoder for type")

	// ErrEncoderAlreadyRegistered is returned when a global encoder is
	// registered twice for the same reflect.Type without being removed.
	ErrEncoderAlreadyRegistered = errors.New("encoder already registered for type")
)

// === Schema Compilation Errors ===
var (
	// ErrSchemaCompilation is returned when a RecordType cannot be compiled
	// to a draft-04 Schema.
	ErrSchemaCompilation = errors.New("schema compilation failed")

	// ErrRefResolution is returned when a "$ref" cannot be resolved within
	// a compiled schema's own definitions.
	ErrRefResolution = errors.New("reference resolution failed")

	// ErrDefinitionCollision names two distinct compiled types sharing one
	// definition name. No function in this package returns it.
	ErrDefinitionCollision = errors.New("definition name collision")
)

// === Load/Dump Errors ===
var (
	// ErrInvalidValue is returned when a Value tree does not have the shape
	// a FieldPlan expects (wrong kind, malformed JSON, raw byte payload
	// where a string was expected).
	ErrInvalidValue = errors.New("invalid value")

	// ErrValidationFailed is returned by Load when structural or semantic
	// validation rejects the input Value before construction is attempted.
	ErrValidationFailed = errors.New("validation failed")

	// ErrHookFailed is returned when a pre_dump/post_dump/pre_load/post_load
	// hook panics; the panic is recovered, Load/Dump abort, and the returned
	// error wraps ErrHookFailed so errors.Is still finds it.
	ErrHookFailed = errors.New("hook failed")

	// ErrConstruct is returned when a decoded field set cannot be used to
	// construct the target struct (e.g. a required field is missing from
	// the Value tree after validation, which should not happen but is
	// checked defensively at the reflect boundary).
	ErrConstruct = errors.New("record construction failed")
)

// === Format and Value Conversion Errors ===
var (
	// ErrFormat names a "format" check failure. No function in this package
	// returns it: format failures are reported as ValidationFailure entries
	// with Keyword "format".
	ErrFormat = errors.New("format validation failed")

	// ErrTimeParsing is returned when a temporal FieldEncoder cannot parse
	// a string Value as RFC 3339.
	ErrTimeParsing = errors.New("time parsing failed")

	// ErrUUIDParsing is returned when the built-in uuid.UUID FieldEncoder
	// cannot parse a string Value.
	ErrUUIDParsing = errors.New("uuid parsing failed")
)
