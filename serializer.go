package serpyco

import (
	"fmt"
	"reflect"
	"strconv"
)

// Config is the Serializer's Configuration, per spec.md §6.
type Config struct {
	// Many, when true, makes Dump/Load accept and return a sequence rather
	// than a single record, and wraps the compiled schema in
	// {type: "array", items: <record schema>}.
	Many bool

	Only    []string
	Exclude []string

	// TypeEncoders are serializer-scoped FieldEncoder overrides, the
	// second scope of the §4.2 resolution order.
	TypeEncoders map[reflect.Type]FieldEncoder

	// OmitNone, nil or true (the default), omits an Optional field's key
	// entirely when its dumped value is null; false keeps the key with a
	// null value. Per the REDESIGN FLAG in spec.md §7, this never applies
	// to a non-Optional field that happens to dump to null.
	OmitNone *bool

	GetDefinitionName GetDefinitionNameFunc

	// Strict, if true, sets additionalProperties to false on every compiled
	// record schema (unknown keys are rejected); otherwise it is true.
	Strict bool

	// LoadAsType substitutes an alternate constructor for the root record
	// only: fields are matched to it by declared Go field name rather than
	// by struct index, so the substitute type need not share the source
	// struct's field layout.
	LoadAsType reflect.Type
}

func (c Config) omitNone() bool {
	return c.OmitNone == nil || *c.OmitNone
}

// Serializer is the C4 Record Serializer: built once per (record type,
// view, encoder set) triple and immutable thereafter, per spec.md §4.1
// Lifecycles. It owns the record's compiled Schema and Validator.
type Serializer struct {
	record   *RecordType
	goType   reflect.Type
	view     View
	registry *Registry
	cfg      Config

	schema    *Schema
	validator *Validator
}

// NewSerializer builds a Serializer for t (a struct, or pointer to one).
func NewSerializer(t reflect.Type, cfg Config) (*Serializer, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	registry := NewRegistry(cfg.TypeEncoders)
	record, err := BuildRecord(t, WithRegistry(registry))
	if err != nil {
		return nil, err
	}

	view := View{Only: cfg.Only, Exclude: cfg.Exclude}
	compiler := NewCompiler(CompilerConfig{
		Registry:          registry,
		GetDefinitionName: cfg.GetDefinitionName,
		Strict:            cfg.Strict,
	})
	schema, err := compiler.Compile(record, view, cfg.Many)
	if err != nil {
		return nil, err
	}

	return &Serializer{
		record:    record,
		goType:    t,
		view:      view,
		registry:  registry,
		cfg:       cfg,
		schema:    schema,
		validator: NewValidator(record.Name, compiler.FieldValidators()),
	}, nil
}

// Schema returns the compiled draft-04 Schema.
func (s *Serializer) Schema() *Schema { return s.schema }

// Validator returns the compiled user-predicate Validator.
func (s *Serializer) Validator() *Validator { return s.validator }

// Dump converts rec to a Value tree, per spec.md §4.4's dump algorithm.
// When the Serializer is configured Many, rec must be a slice (or array)
// of records.
func (s *Serializer) Dump(rec any, validate bool) (Value, error) {
	if s.cfg.Many {
		return s.dumpMany(rec, validate)
	}
	v, err := s.dumpOne(rec)
	if err != nil {
		return nil, err
	}
	if validate {
		if err := s.validateValue(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (s *Serializer) dumpMany(recs any, validate bool) (Value, error) {
	rv := reflect.ValueOf(recs)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: many-mode Dump needs a slice, got %T", ErrInvalidValue, recs)
	}
	out := make([]Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, err := s.dumpOne(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	if validate {
		if err := s.validateValue(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Serializer) dumpOne(rec any) (Value, error) {
	return s.dumpRecord(s.record, rec, &s.view)
}

// dumpRecord applies record's pre_dump/post_dump hooks around dumping its
// fields. view restricts which of record's fields are dumped: the root
// Serializer's Config.Only/Exclude for the top-level call, or a containing
// field's FieldHints.Only/Exclude (spec.md §3 "subview selection for
// nested records") when record is reached through a nested RecordRef.
func (s *Serializer) dumpRecord(record *RecordType, rec any, view *View) (Value, error) {
	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	rv, err := runPreDump(record.hooks.preDump, rv)
	if err != nil {
		return nil, err
	}

	fields, err := s.dumpFields(record, rv, view)
	if err != nil {
		return nil, err
	}

	return runPostDump(record.hooks.postDump, rv, Value(fields))
}

func (s *Serializer) dumpFields(record *RecordType, rv reflect.Value, view *View) (ValueMap, error) {
	out := ValueMap{}
	for _, field := range record.Fields {
		if field.Hints.Ignore {
			continue
		}
		if view != nil && !view.empty() && !view.includes(field.Name) {
			continue
		}

		var val Value
		var err error
		if field.Hints.Getter != nil {
			val, err = field.Hints.Getter(rv.Interface())
		} else {
			val, err = s.dumpExpr(field.Type, rv.FieldByIndex(field.Index), field.Hints.TypeEncoders, fieldLevelView(field.Hints))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: field %q of %s: %v", ErrInvalidValue, field.Name, record.Name, err)
		}

		if val == nil && s.cfg.omitNone() && isOptionalType(field.Type) {
			continue
		}
		out[field.DictKey()] = val
	}
	return out, nil
}

// isOptionalType reports whether t is a Union with a null variant, the
// condition that gates omit_none (spec.md §7's REDESIGN FLAG: omit_none
// applies only to fields declared Optional).
func isOptionalType(t TypeExpr) bool {
	u, ok := t.(UnionType)
	return ok && unionHasNull(u)
}

// fieldLevelView turns a field's only/exclude hint into a *View, or nil
// when neither is set, so a plain field costs nothing beyond the nil
// check in dumpExpr/loadExpr's RecordRef case.
func fieldLevelView(hints FieldHints) *View {
	if len(hints.Only) == 0 && len(hints.Exclude) == 0 {
		return nil
	}
	return &View{Only: hints.Only, Exclude: hints.Exclude}
}

// dumpExpr converts one Go value to its Value representation per expr's
// TypeExpr shape.
func (s *Serializer) dumpExpr(expr TypeExpr, rv reflect.Value, fieldEncoders map[reflect.Type]FieldEncoder, view *View) (Value, error) {
	switch e := expr.(type) {
	case PrimitiveType:
		return dumpPrimitive(e.Kind, rv)

	case EnumType:
		return dumpPrimitive(e.Kind, rv)

	case UnionType:
		if e.Optional() {
			if rv.Kind() == reflect.Ptr {
				if rv.IsNil() {
					return nil, nil
				}
				return s.dumpExpr(e.Inner(), rv.Elem(), fieldEncoders, view)
			}
			return s.dumpExpr(e.Inner(), rv, fieldEncoders, view)
		}
		// A general (non-Optional) Union has no single Go representation
		// this reflective model can dispatch on directly; try each variant
		// against the field's dynamic value in declared order, same as
		// UnionFieldEncoder.Dump. Fields needing faithful N-ary union
		// round-trip should register an OpaqueRef FieldEncoder instead.
		dynamic := rv
		if rv.Kind() == reflect.Interface && !rv.IsNil() {
			dynamic = reflect.ValueOf(rv.Interface())
		}
		var lastErr error
		for _, v := range e.Variants {
			out, err := s.dumpExpr(v, dynamic, fieldEncoders, view)
			if err == nil {
				return out, nil
			}
			lastErr = err
		}
		return nil, fmt.Errorf("%w: no union branch accepted value: %v", ErrInvalidValue, lastErr)

	case SeqType:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		out := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			v, err := s.dumpExpr(e.Item, rv.Index(i), nil, view)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case TupleType:
		if tup, ok := rv.Interface().(SerpycoTuple); ok {
			fields := tup.TupleFields()
			out := make([]Value, len(fields))
			for i, f := range fields {
				if i >= len(e.Items) {
					break
				}
				v, err := s.dumpExpr(e.Items[i], reflect.ValueOf(f), nil, view)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		}
		out := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			v, err := s.dumpExpr(e.Items[i], rv.Index(i), nil, view)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case MapType:
		if rv.IsNil() {
			return nil, nil
		}
		out := ValueMap{}
		iter := rv.MapRange()
		for iter.Next() {
			v, err := s.dumpExpr(e.Value, iter.Value(), nil, view)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = v
		}
		return out, nil

	case RecordRef:
		inner := rv
		if inner.Kind() == reflect.Ptr {
			if inner.IsNil() {
				return nil, nil
			}
			inner = inner.Elem()
		}
		sub := recordFor(e.Type)
		return s.dumpRecord(sub, inner.Interface(), view)

	case OpaqueRef:
		enc, err := s.registry.Resolve(e.Type, fieldEncoders)
		if err != nil {
			return nil, err
		}
		return enc.Dump(rv.Interface())

	default:
		return nil, fmt.Errorf("%w: unrecognized TypeExpr %T", ErrInvalidValue, expr)
	}
}

func dumpPrimitive(kind PrimitiveKind, rv reflect.Value) (Value, error) {
	switch kind {
	case KindNull:
		return nil, nil
	case KindAny:
		if !rv.IsValid() {
			return nil, nil
		}
		return rv.Interface(), nil
	case KindString:
		return rv.String(), nil
	case KindBoolean:
		return rv.Bool(), nil
	case KindInteger:
		switch rv.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return int64(rv.Uint()), nil
		default:
			return rv.Int(), nil
		}
	case KindNumber:
		return rv.Float(), nil
	default:
		return nil, fmt.Errorf("%w: unknown primitive kind %q", ErrInvalidValue, kind)
	}
}

func recordFor(t reflect.Type) *RecordType {
	recordMu.RLock()
	defer recordMu.RUnlock()
	return recordCache[t]
}

// DumpJSON is dump_json = codec.print ∘ dump (spec.md §4.4).
func (s *Serializer) DumpJSON(rec any, validate bool) ([]byte, error) {
	v, err := s.Dump(rec, validate)
	if err != nil {
		return nil, err
	}
	return PrintJSON(v)
}

func (s *Serializer) validateValue(v Value) error {
	if err := s.schema.Validate(v); err != nil {
		return err
	}
	if err := s.validator.Validate(v); err != nil {
		return err
	}
	return nil
}

// Load converts a Value tree back into a record, writing the result into
// out (a pointer to the target struct, or to a slice of it when the
// Serializer is configured Many), per spec.md §4.4's load algorithm.
func (s *Serializer) Load(v Value, out any, validate bool) error {
	ov := reflect.ValueOf(out)
	if ov.Kind() != reflect.Ptr || ov.IsNil() {
		return fmt.Errorf("%w: Load needs a non-nil pointer, got %T", ErrInvalidValue, out)
	}

	if s.cfg.Many {
		result, err := s.loadMany(v, validate)
		if err != nil {
			return err
		}
		ov.Elem().Set(reflect.ValueOf(result))
		return nil
	}

	result, err := s.loadOne(v, validate)
	if err != nil {
		return err
	}
	ov.Elem().Set(reflect.ValueOf(result))
	return nil
}

func (s *Serializer) loadMany(v Value, validate bool) (any, error) {
	arr, ok := v.([]Value)
	if !ok {
		return nil, fmt.Errorf("%w: many-mode Load needs an array, got %T", ErrInvalidValue, v)
	}
	// The many-mode schema describes the whole array, so the array is
	// validated once, before any element's pre_load hook runs.
	if validate {
		if err := s.validateValue(arr); err != nil {
			return nil, err
		}
	}
	out := reflect.MakeSlice(reflect.SliceOf(s.goType), len(arr), len(arr))
	for i, item := range arr {
		rec, err := s.loadOne(item, false)
		if err != nil {
			return nil, err
		}
		out.Index(i).Set(reflect.ValueOf(rec))
	}
	return out.Interface(), nil
}

func (s *Serializer) loadOne(v Value, validate bool) (any, error) {
	current, err := runPreLoad(s.record.hooks.preLoad, s.goType, v)
	if err != nil {
		return nil, err
	}

	if validate {
		if err := s.validateValue(current); err != nil {
			return nil, err
		}
	}

	targetType := s.goType
	substituted := s.cfg.LoadAsType != nil
	if substituted {
		targetType = s.cfg.LoadAsType
		for targetType.Kind() == reflect.Ptr {
			targetType = targetType.Elem()
		}
	}

	elem, err := s.constructInto(s.record, targetType, current, &s.view, substituted)
	if err != nil {
		return nil, err
	}

	// When load_as_type substitutes a different constructor, post_load
	// discovery re-runs against that type: the cached plan on s.record was
	// computed from the original Go type, which the constructed instance
	// no longer is.
	postLoadPlan := s.record.hooks.postLoad
	if substituted {
		postLoadPlan = planFor(targetType, postLoaderType, postLoadAllerType)
	}
	if err := runPostLoad(postLoadPlan, elem); err != nil {
		return nil, err
	}
	return elem.Interface(), nil
}

// constructInto builds one instance of targetType from record's field plan
// against the Value obj. byName matches fields by declared Go name instead
// of struct index, the convention load_as_type substitution requires since
// the substitute type need not share record's own field layout.
func (s *Serializer) constructInto(record *RecordType, targetType reflect.Type, v Value, view *View, byName bool) (reflect.Value, error) {
	obj, ok := v.(ValueMap)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: expected object for %s, got %s", ErrInvalidValue, record.Name, TypeName(v))
	}

	ptr := reflect.New(targetType)
	elem := ptr.Elem()

	for _, field := range record.Fields {
		if field.Hints.Ignore {
			continue
		}
		if view != nil && !view.empty() && !view.includes(field.Name) {
			continue
		}

		raw, present := obj[field.DictKey()]
		if !present {
			switch {
			case field.HasDefault:
				raw = field.Default
			case field.HasDefaultFunc:
				raw = field.DefaultFunc()
			case isOptionalType(field.Type):
				raw = nil
			default:
				return reflect.Value{}, fmt.Errorf("%w: missing field %q on %s", ErrConstruct, field.DictKey(), record.Name)
			}
		}

		var target reflect.Value
		if byName {
			target = elem.FieldByName(field.Name)
			if !target.IsValid() {
				continue // load_as_type substitute doesn't carry this field
			}
		} else {
			target = elem.FieldByIndex(field.Index)
		}

		fv, err := s.loadExpr(field.Type, target.Type(), raw, field.Hints.CastOnLoad, field.Hints.TypeEncoders, fieldLevelView(field.Hints))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: field %q of %s: %v", ErrInvalidValue, field.Name, record.Name, err)
		}
		target.Set(fv)
	}

	return elem, nil
}

func (s *Serializer) loadExpr(expr TypeExpr, goType reflect.Type, v Value, castOnLoad bool, fieldEncoders map[reflect.Type]FieldEncoder, view *View) (reflect.Value, error) {
	switch e := expr.(type) {
	case PrimitiveType:
		if e.Kind == KindNull {
			return reflect.Zero(goType), nil
		}
		if e.Kind == KindAny {
			if v == nil {
				return reflect.Zero(goType), nil
			}
			return reflect.ValueOf(v), nil
		}
		return loadPrimitive(e.Kind, goType, v, castOnLoad)

	case EnumType:
		return loadPrimitive(e.Kind, goType, v, castOnLoad)

	case UnionType:
		if e.Optional() {
			if v == nil {
				return reflect.Zero(goType), nil
			}
			innerType := goType.Elem()
			inner, err := s.loadExpr(e.Inner(), innerType, v, castOnLoad, fieldEncoders, view)
			if err != nil {
				return reflect.Value{}, err
			}
			ptr := reflect.New(innerType)
			ptr.Elem().Set(inner)
			return ptr, nil
		}
		// See dumpExpr's UnionType case: a general Union with no single Go
		// shape is loaded as its raw decoded value when the field is an
		// interface; a field needing real N-ary union typing should use a
		// registered FieldEncoder instead.
		if goType.Kind() == reflect.Interface {
			return reflect.ValueOf(v), nil
		}
		var lastErr error
		for _, variant := range e.Variants {
			out, err := s.loadExpr(variant, goType, v, castOnLoad, fieldEncoders, view)
			if err == nil {
				return out, nil
			}
			lastErr = err
		}
		return reflect.Value{}, fmt.Errorf("%w: no union branch accepted value: %v", ErrInvalidValue, lastErr)

	case SeqType:
		if v == nil {
			return reflect.Zero(goType), nil
		}
		arr, ok := v.([]Value)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected array, got %s", ErrInvalidValue, TypeName(v))
		}
		if e.Set {
			arr = dedupValues(arr)
		}
		itemType := goType.Elem()
		out := reflect.MakeSlice(goType, len(arr), len(arr))
		for i, item := range arr {
			iv, err := s.loadExpr(e.Item, itemType, item, castOnLoad, nil, view)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(iv)
		}
		return out, nil

	case TupleType:
		arr, ok := v.([]Value)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected array, got %s", ErrInvalidValue, TypeName(v))
		}
		if goType.Kind() == reflect.Array {
			out := reflect.New(goType).Elem()
			for i := 0; i < goType.Len() && i < len(arr); i++ {
				iv, err := s.loadExpr(e.Items[i], goType.Elem(), arr[i], castOnLoad, nil, view)
				if err != nil {
					return reflect.Value{}, err
				}
				out.Index(i).Set(iv)
			}
			return out, nil
		}

		zero := reflect.New(goType).Elem().Interface()
		loader, ok := reflect.New(goType).Interface().(SerpycoTupleLoader)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s is a tuple but does not implement SerpycoTupleLoader", ErrBadType, goType)
		}
		zeroFields := zero.(SerpycoTuple).TupleFields()
		loaded := make([]any, len(zeroFields))
		for i := range zeroFields {
			if i >= len(arr) {
				break
			}
			itemType := reflect.TypeOf(zeroFields[i])
			iv, err := s.loadExpr(e.Items[i], itemType, arr[i], castOnLoad, nil, view)
			if err != nil {
				return reflect.Value{}, err
			}
			loaded[i] = iv.Interface()
		}
		if err := loader.SetTupleFields(loaded); err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrConstruct, err)
		}
		return reflect.ValueOf(loader).Elem(), nil

	case MapType:
		if v == nil {
			return reflect.Zero(goType), nil
		}
		obj, ok := v.(ValueMap)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected object, got %s", ErrInvalidValue, TypeName(v))
		}
		valType := goType.Elem()
		out := reflect.MakeMapWithSize(goType, len(obj))
		for k, val := range obj {
			lv, err := s.loadExpr(e.Value, valType, val, castOnLoad, nil, view)
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(reflect.ValueOf(k), lv)
		}
		return out, nil

	case RecordRef:
		if v == nil {
			return reflect.Zero(goType), nil
		}
		sub := recordFor(e.Type)
		elemType := goType
		ptrResult := false
		if elemType.Kind() == reflect.Ptr {
			elemType = elemType.Elem()
			ptrResult = true
		}
		elem, err := s.constructInto(sub, elemType, v, view, false)
		if err != nil {
			return reflect.Value{}, err
		}
		if ptrResult {
			ptr := reflect.New(elemType)
			ptr.Elem().Set(elem)
			return ptr, nil
		}
		return elem, nil

	case OpaqueRef:
		enc, err := s.registry.Resolve(e.Type, fieldEncoders)
		if err != nil {
			return reflect.Value{}, err
		}
		out, err := enc.Load(v)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.ValueOf(out)
		if !rv.IsValid() {
			return reflect.Zero(goType), nil
		}
		if rv.Type() != goType && rv.Type().ConvertibleTo(goType) {
			rv = rv.Convert(goType)
		}
		return rv, nil

	default:
		return reflect.Value{}, fmt.Errorf("%w: unrecognized TypeExpr %T", ErrInvalidValue, expr)
	}
}

// dedupValues drops later elements of arr that are value.Equal to an
// earlier one, keeping first-occurrence order, for a Seq{Set: true}
// field's load-time de-duplication (spec.md §4.2).
func dedupValues(arr []Value) []Value {
	out := make([]Value, 0, len(arr))
	for _, item := range arr {
		dup := false
		for _, kept := range out {
			if Equal(kept, item) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, item)
		}
	}
	return out
}

func loadPrimitive(kind PrimitiveKind, goType reflect.Type, v Value, castOnLoad bool) (reflect.Value, error) {
	switch kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			if !castOnLoad {
				return reflect.Value{}, fmt.Errorf("%w: expected string, got %s", ErrInvalidValue, TypeName(v))
			}
			s = fmt.Sprint(v)
		}
		return reflect.ValueOf(s).Convert(goType), nil

	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			if !castOnLoad {
				return reflect.Value{}, fmt.Errorf("%w: expected boolean, got %s", ErrInvalidValue, TypeName(v))
			}
			str := fmt.Sprint(v)
			parsed, err := strconv.ParseBool(str)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%w: cannot cast %q to boolean", ErrInvalidValue, str)
			}
			b = parsed
		}
		return reflect.ValueOf(b).Convert(goType), nil

	case KindInteger:
		var n int64
		switch t := v.(type) {
		case int64:
			n = t
		case int:
			n = int64(t)
		case float64:
			n = int64(t)
		case string:
			if !castOnLoad {
				return reflect.Value{}, fmt.Errorf("%w: expected integer, got string", ErrInvalidValue)
			}
			parsed, err := strconv.ParseInt(t, 10, 64)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%w: cannot cast %q to integer", ErrInvalidValue, t)
			}
			n = parsed
		default:
			return reflect.Value{}, fmt.Errorf("%w: expected integer, got %s", ErrInvalidValue, TypeName(v))
		}
		if goType.Kind() >= reflect.Uint && goType.Kind() <= reflect.Uint64 {
			return reflect.ValueOf(uint64(n)).Convert(goType), nil
		}
		return reflect.ValueOf(n).Convert(goType), nil

	case KindNumber:
		var f float64
		switch t := v.(type) {
		case float64:
			f = t
		case int64:
			f = float64(t)
		case string:
			if !castOnLoad {
				return reflect.Value{}, fmt.Errorf("%w: expected number, got string", ErrInvalidValue)
			}
			parsed, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%w: cannot cast %q to number", ErrInvalidValue, t)
			}
			f = parsed
		default:
			return reflect.Value{}, fmt.Errorf("%w: expected number, got %s", ErrInvalidValue, TypeName(v))
		}
		return reflect.ValueOf(f).Convert(goType), nil

	default:
		return reflect.Value{}, fmt.Errorf("%w: unknown primitive kind %q", ErrInvalidValue, kind)
	}
}

// LoadJSON is load_json = load ∘ codec.parse (spec.md §4.4).
func (s *Serializer) LoadJSON(data []byte, out any, validate bool) error {
	v, err := ParseJSON(data)
	if err != nil {
		return err
	}
	return s.Load(v, out, validate)
}
