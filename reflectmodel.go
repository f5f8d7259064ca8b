package serpyco

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/grignards/serpyco/pkg/fieldtags"
)

// recordBuildConfig collects everything a RecordOption can attach to a
// BuildRecord call: the parts of FieldHints that are Go functions rather
// than tag-expressible literals (getter, validator, type_encoders,
// default factory). Lifecycle hooks are not configured here: they are
// discovered from the Go type itself (hooks.go) once per BuildRecord call.
type recordBuildConfig struct {
	registry *Registry
	doc      string

	getters       map[string]func(any) (Value, error)
	validators    map[string]func(Value) error
	fieldEncoders map[string]map[reflect.Type]FieldEncoder
	defaults      map[string]Value
	defaultFuncs  map[string]func() Value
}

// RecordOption customizes one BuildRecord call: the function-valued field
// hints that a struct tag has no way to express.
type RecordOption func(*recordBuildConfig)

// WithRegistry scopes type-mapping's opaque-type detection (the
// field-scoped/serializer-scoped/global/built-in lookup of §4.2) to r
// instead of a registry with only the global and built-in scopes.
func WithRegistry(r *Registry) RecordOption {
	return func(cfg *recordBuildConfig) { cfg.registry = r }
}

// WithDoc sets the record's docstring, rendered as the compiled schema's
// top-level "description" (spec.md §4.3 Root assembly).
func WithDoc(doc string) RecordOption {
	return func(cfg *recordBuildConfig) { cfg.doc = doc }
}

// WithFieldGetter overrides dump's value extraction for field with an
// alternate accessor, per FieldHints.Getter.
func WithFieldGetter(field string, fn func(any) (Value, error)) RecordOption {
	return func(cfg *recordBuildConfig) {
		if cfg.getters == nil {
			cfg.getters = map[string]func(any) (Value, error){}
		}
		cfg.getters[field] = fn
	}
}

// WithFieldValidator attaches a user predicate to field, per
// FieldHints.Validator.
func WithFieldValidator(field string, fn func(Value) error) RecordOption {
	return func(cfg *recordBuildConfig) {
		if cfg.validators == nil {
			cfg.validators = map[string]func(Value) error{}
		}
		cfg.validators[field] = fn
	}
}

// WithFieldEncoders scopes FieldEncoder overrides to field's own subtree,
// per FieldHints.TypeEncoders.
func WithFieldEncoders(field string, encoders map[reflect.Type]FieldEncoder) RecordOption {
	return func(cfg *recordBuildConfig) {
		if cfg.fieldEncoders == nil {
			cfg.fieldEncoders = map[string]map[reflect.Type]FieldEncoder{}
		}
		cfg.fieldEncoders[field] = encoders
	}
}

// WithFieldDefault gives field a static default value, emitted as the
// field schema's "default" and applied on load when the key is absent.
func WithFieldDefault(field string, v Value) RecordOption {
	return func(cfg *recordBuildConfig) {
		if cfg.defaults == nil {
			cfg.defaults = map[string]Value{}
		}
		cfg.defaults[field] = v
	}
}

// WithFieldDefaultFunc gives field a default factory instead of a static
// value; per spec.md §4.3, a factory default is never materialized into
// the emitted schema.
func WithFieldDefaultFunc(field string, fn func() Value) RecordOption {
	return func(cfg *recordBuildConfig) {
		if cfg.defaultFuncs == nil {
			cfg.defaultFuncs = map[string]func() Value{}
		}
		cfg.defaultFuncs[field] = fn
	}
}

var (
	recordMu    sync.RWMutex
	recordCache = map[reflect.Type]*RecordType{}
)

// BuildRecord reflects t (a struct, or pointer to one) into a RecordType
// by the single recursive normalization pass spec.md §4.1 describes,
// caching the result by reflect.Type so a cyclic record graph terminates
// and repeated builds of the same type are free. Field-level behavior a
// struct tag can't express (getters, validators, per-field encoder
// overrides, default factories) is supplied via RecordOption; the record's
// lifecycle hooks are discovered from the Go type itself (hooks.go).
func BuildRecord(t reflect.Type, opts ...RecordOption) (*RecordType, error) {
	cfg := &recordBuildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = NewRegistry(nil)
	}
	return buildRecord(t, cfg)
}

func buildRecord(t reflect.Type, cfg *recordBuildConfig) (*RecordType, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrNotARecord, t)
	}

	recordMu.RLock()
	cached, ok := recordCache[t]
	recordMu.RUnlock()
	if ok {
		return cached, nil
	}

	record := &RecordType{ID: t.PkgPath() + "." + t.Name(), Name: t.Name(), GoType: t, Doc: cfg.doc}
	recordMu.Lock()
	recordCache[t] = record // placeholder: breaks recursion for self-referential records
	recordMu.Unlock()

	names := map[string]bool{}
	dictKeys := map[string]bool{}
	params := map[string]bool{}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("serpyco")
		if tag == "-" {
			continue
		}

		field, err := buildField(sf, i, fieldtags.Parse(tag), cfg)
		if err != nil {
			return nil, err
		}
		if field.Hints.Ignore {
			continue
		}
		if names[field.Name] {
			return nil, fmt.Errorf("%w: duplicate field %q on %s", ErrDuplicateField, field.Name, t)
		}
		names[field.Name] = true
		key := field.DictKey()
		if dictKeys[key] {
			return nil, fmt.Errorf("%w: duplicate dict_key %q on %s", ErrDuplicateField, key, t)
		}
		dictKeys[key] = true

		if pr, ok := field.Type.(ParamRef); ok && !params[pr.Name] {
			params[pr.Name] = true
			record.TypeParams = append(record.TypeParams, TypeParam{Name: pr.Name})
		}

		record.Fields = append(record.Fields, field)
	}

	record.hooks = discoverHooks(t)
	return record, nil
}

func buildField(sf reflect.StructField, index int, rules []fieldtags.Rule, cfg *recordBuildConfig) (Field, error) {
	var typeExpr TypeExpr
	var err error

	if r, ok := fieldtags.Get(rules, "type_param"); ok && sf.Type.Kind() == reflect.Interface {
		typeExpr = ParamRef{Name: r.Param()}
	} else {
		typeExpr, err = mapType(sf.Type, cfg)
		if err != nil {
			return Field{}, err
		}
	}

	hints := FieldHints{}
	var defaultFactory DefaultFactory
	for _, r := range rules {
		switch r.Name {
		case "dict_key":
			hints.DictKey = r.Param()
		case "ignore":
			hints.Ignore = true
		case "cast_on_load":
			hints.CastOnLoad = true
		case "description":
			hints.Description = r.Param()
		case "examples":
			for _, p := range r.Params {
				hints.Examples = append(hints.Examples, p)
			}
		case "format":
			hints.Format = r.Param()
		case "pattern":
			hints.Pattern = r.Param()
		case "min_length":
			if n, convErr := strconv.Atoi(r.Param()); convErr == nil {
				hints.MinLength = &n
			}
		case "max_length":
			if n, convErr := strconv.Atoi(r.Param()); convErr == nil {
				hints.MaxLength = &n
			}
		case "minimum":
			if f, convErr := strconv.ParseFloat(r.Param(), 64); convErr == nil {
				hints.Minimum = &f
			}
		case "maximum":
			if f, convErr := strconv.ParseFloat(r.Param(), 64); convErr == nil {
				hints.Maximum = &f
			}
		case "only":
			hints.Only = append(hints.Only, r.Params...)
		case "exclude":
			hints.Exclude = append(hints.Exclude, r.Params...)
		case "allowed_values":
			for _, p := range r.Params {
				hints.AllowedValues = append(hints.AllowedValues, p)
			}
		case "default_factory":
			fn, ok := lookupDefaultFunc(r.Param())
			if !ok {
				return Field{}, fmt.Errorf("%w: default factory %q is not registered", ErrBadType, r.Param())
			}
			defaultFactory = fn
		}
	}

	if fn, ok := cfg.getters[sf.Name]; ok {
		hints.Getter = fn
	}
	if fn, ok := cfg.validators[sf.Name]; ok {
		hints.Validator = fn
	}
	if encs, ok := cfg.fieldEncoders[sf.Name]; ok {
		hints.TypeEncoders = encs
	}

	field := Field{
		Name:   sf.Name,
		Type:   typeExpr,
		GoType: sf.Type,
		Hints:  hints,
		Index:  []int{index},
	}
	if defaultFactory != nil {
		field.HasDefaultFunc = true
		field.DefaultFunc = func() Value { return defaultFactory() }
	}
	if v, ok := cfg.defaults[sf.Name]; ok {
		field.HasDefault = true
		field.Default = v
	}
	if fn, ok := cfg.defaultFuncs[sf.Name]; ok {
		field.HasDefaultFunc = true
		field.DefaultFunc = fn
	}
	return field, nil
}

// mapType folds one Go reflect.Type into the normalized TypeExpr language,
// checking for a registered FieldEncoder ahead of every structural case
// per §4.2's resolution order: an opaque type wins even if it happens to
// also be a struct, slice, or map.
func mapType(t reflect.Type, cfg *recordBuildConfig) (TypeExpr, error) {
	if cfg.registry.HasEncoder(t, nil) {
		return OpaqueRef{Type: t}, nil
	}
	if en, ok := reflect.New(t).Elem().Interface().(SerpycoEnum); ok {
		return enumFromMembers(t, en)
	}

	switch t.Kind() {
	case reflect.Ptr:
		inner, err := mapType(t.Elem(), cfg)
		if err != nil {
			return nil, err
		}
		return UnionType{Variants: []TypeExpr{inner, PrimitiveType{Kind: KindNull}}}, nil

	case reflect.String:
		return PrimitiveType{Kind: KindString}, nil
	case reflect.Bool:
		return PrimitiveType{Kind: KindBoolean}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return PrimitiveType{Kind: KindInteger}, nil
	case reflect.Float32, reflect.Float64:
		return PrimitiveType{Kind: KindNumber}, nil
	case reflect.Interface:
		return PrimitiveType{Kind: KindAny}, nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key of %s must be string (or have a registered encoder)", ErrBadType, t)
		}
		valExpr, err := mapType(t.Elem(), cfg)
		if err != nil {
			return nil, err
		}
		return MapType{Key: PrimitiveType{Kind: KindString}, Value: valExpr}, nil

	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			return nil, fmt.Errorf("%w: %s needs a registered FieldEncoder, []byte has no default codec", ErrBadType, t)
		}
		if tup, ok := reflect.New(t).Elem().Interface().(SerpycoTuple); ok {
			return tupleFromFields(tup, cfg)
		}
		itemExpr, err := mapType(t.Elem(), cfg)
		if err != nil {
			return nil, err
		}
		if t.Kind() == reflect.Array {
			items := make([]TypeExpr, t.Len())
			for i := range items {
				items[i] = itemExpr
			}
			return TupleType{Items: items}, nil
		}
		_, isSet := reflect.New(t).Elem().Interface().(SerpycoSet)
		return SeqType{Item: itemExpr, Set: isSet}, nil

	case reflect.Struct:
		if tup, ok := reflect.New(t).Elem().Interface().(SerpycoTuple); ok {
			return tupleFromFields(tup, cfg)
		}
		if _, err := buildRecord(t, cfg); err != nil {
			return nil, err
		}
		return RecordRef{Type: t}, nil
	}

	return nil, fmt.Errorf("%w: %s has no TypeExpr mapping and no registered encoder", ErrBadType, t)
}

func enumFromMembers(t reflect.Type, en SerpycoEnum) (TypeExpr, error) {
	members := en.Members()
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %s declares no enum members", ErrBadType, t)
	}
	return EnumType{Name: t.Name(), Kind: primitiveKindOf(members[0].Value), Members: members}, nil
}

func primitiveKindOf(v Value) PrimitiveKind {
	switch v.(type) {
	case string:
		return KindString
	case bool:
		return KindBoolean
	case int64, int:
		return KindInteger
	case float64:
		return KindNumber
	default:
		return KindAny
	}
}

func tupleFromFields(tup SerpycoTuple, cfg *recordBuildConfig) (TypeExpr, error) {
	fields := tup.TupleFields()
	items := make([]TypeExpr, len(fields))
	for i, f := range fields {
		if f == nil {
			items[i] = PrimitiveType{Kind: KindAny}
			continue
		}
		expr, err := mapType(reflect.TypeOf(f), cfg)
		if err != nil {
			return nil, err
		}
		items[i] = expr
	}
	return TupleType{Items: items}, nil
}

// Bind resolves record's declared TypeParams against args, returning a
// copy whose fields have every ParamRef (including ones nested inside
// Seq/Map/Union/Tuple shapes) substituted by its bound TypeExpr. Go has no
// runtime introspection of instantiated generic type arguments, so a
// record meant to be reused across several concrete element types
// declares its variable fields as `any` tagged `type_param=T` and Bind
// supplies T's resolution explicitly (spec.md §4.1's "parameters are
// bound to their arguments on entry").
func Bind(record *RecordType, args map[string]TypeExpr) *RecordType {
	bound := *record
	bound.Bound = args
	bound.Fields = make([]Field, len(record.Fields))
	for i, f := range record.Fields {
		f.Type = substitute(f.Type, args)
		bound.Fields[i] = f
	}
	return &bound
}

func substitute(expr TypeExpr, args map[string]TypeExpr) TypeExpr {
	switch e := expr.(type) {
	case ParamRef:
		if bound, ok := args[e.Name]; ok {
			return bound
		}
		return e
	case UnionType:
		variants := make([]TypeExpr, len(e.Variants))
		for i, v := range e.Variants {
			variants[i] = substitute(v, args)
		}
		return UnionType{Variants: variants}
	case SeqType:
		return SeqType{Item: substitute(e.Item, args), Set: e.Set}
	case TupleType:
		items := make([]TypeExpr, len(e.Items))
		for i, it := range e.Items {
			items[i] = substitute(it, args)
		}
		return TupleType{Items: items}
	case MapType:
		return MapType{Key: e.Key, Value: substitute(e.Value, args)}
	default:
		return expr
	}
}
