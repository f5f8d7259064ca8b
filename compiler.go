package serpyco

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// GetDefinitionNameFunc overrides defname's default naming for a record,
// the Serializer-level "get_definition_name" escape hatch spec.md §4.4
// lists alongside the rest of a Serializer's Configuration.
type GetDefinitionNameFunc func(qualifiedName string, argNames, only, exclude []string) string

// View selects a subset of a record's fields for one compilation: Only, if
// non-empty, restricts the fields present; Exclude then drops fields from
// whatever remains. Per spec.md §4.1 Invariant 5, Exclude wins over Only
// whenever a name appears in both.
type View struct {
	Only    []string
	Exclude []string
}

func (v View) empty() bool { return len(v.Only) == 0 && len(v.Exclude) == 0 }

// includes reports whether a field named name survives this view.
func (v View) includes(name string) bool {
	for _, e := range v.Exclude {
		if e == name {
			return false
		}
	}
	if len(v.Only) == 0 {
		return true
	}
	for _, o := range v.Only {
		if o == name {
			return true
		}
	}
	return false
}

// CompilerConfig carries the Registry a Compiler resolves OpaqueRef
// fragments through, and an optional definition-naming override.
type CompilerConfig struct {
	Registry          *Registry
	GetDefinitionName GetDefinitionNameFunc
	Strict            bool // additionalProperties defaults to !Strict
}

// Compiler is the C3 Schema Compiler: it walks a RecordType's normalized
// TypeExpr tree and produces a draft-04 Schema, sharing sub-schemas by
// stable definition name and breaking reference cycles with "$ref", the
// way the teacher's own Compiler caches schemas by URI and threads a
// waiting-list of unresolved references through compilation, minus the
// URI/network/media-type/YAML machinery this module has no use for: every
// reference here resolves against the single document Compile produces,
// never an external one.
type Compiler struct {
	mu  sync.RWMutex
	cfg CompilerConfig

	preds []Predicate // field_validators() result from the most recent Compile
}

// NewCompiler builds a Compiler scoped to cfg.
func NewCompiler(cfg CompilerConfig) *Compiler {
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry(nil)
	}
	return &Compiler{cfg: cfg}
}

// defname implements spec.md §4.3's definition naming formula:
// qualified_name + "[" + argNames joined "," + "]" (if args non-empty) +
// "_only_" + only sorted and joined "_" (if only non-empty) + "_exclude_" +
// exclude sorted and joined "_" (if exclude non-empty). Collision-free by construction over
// the (type, args, view) cache key.
func defname(qualifiedName string, argNames, only, exclude []string) string {
	var b strings.Builder
	b.WriteString(qualifiedName)
	if len(argNames) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(argNames, ","))
		b.WriteString("]")
	}
	if len(only) > 0 {
		sorted := append([]string(nil), only...)
		sort.Strings(sorted)
		b.WriteString("_only_")
		b.WriteString(strings.Join(sorted, "_"))
	}
	if len(exclude) > 0 {
		sorted := append([]string(nil), exclude...)
		sort.Strings(sorted)
		b.WriteString("_exclude_")
		b.WriteString(strings.Join(sorted, "_"))
	}
	return b.String()
}

func argNamesOf(record *RecordType) []string {
	if len(record.TypeParams) == 0 {
		return nil
	}
	names := make([]string, 0, len(record.TypeParams))
	for _, p := range record.TypeParams {
		if bound, ok := record.Bound[p.Name]; ok {
			names = append(names, typeExprName(bound))
		} else {
			names = append(names, p.Name)
		}
	}
	return names
}

// typeExprName renders a resolved TypeExpr as the short label defname's
// "[arg names]" segment uses.
func typeExprName(t TypeExpr) string {
	switch e := t.(type) {
	case PrimitiveType:
		return string(e.Kind)
	case EnumType:
		return e.Name
	case RecordRef:
		return e.Type.Name()
	case OpaqueRef:
		return e.Type.Name()
	case SeqType:
		return "Seq[" + typeExprName(e.Item) + "]"
	case MapType:
		return "Map[" + typeExprName(e.Value) + "]"
	case UnionType:
		if e.Optional() {
			return "Optional[" + typeExprName(e.Inner()) + "]"
		}
		parts := make([]string, len(e.Variants))
		for i, v := range e.Variants {
			parts[i] = typeExprName(v)
		}
		return strings.Join(parts, "|")
	case TupleType:
		parts := make([]string, len(e.Items))
		for i, it := range e.Items {
			parts[i] = typeExprName(it)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case ParamRef:
		return e.Name
	default:
		return "any"
	}
}

// compileCtx threads the ancestor stack and the shared definitions table
// through one Compile call's recursive descent. A defname on the
// "building" stack is an ancestor still being compiled: spec.md's cycle
// breaking rule fires on it without recursing again.
type compileCtx struct {
	root        string
	building    map[string]bool
	definitions map[string]*Schema
	predicates  []Predicate
}

// Compile produces the full draft-04 Schema for record under view. With
// many=true, the returned schema wraps the record schema in
// {type: "array", items: <record schema>}, per spec.md §4.3's public
// contract.
func (c *Compiler) Compile(record *RecordType, view View, many bool) (*Schema, error) {
	ctx := &compileCtx{
		building:    map[string]bool{},
		definitions: map[string]*Schema{},
	}
	ctx.root = c.defnameFor(record, view)

	root, err := c.compileRecord(record, view, ctx)
	if err != nil {
		return nil, err
	}
	if len(ctx.definitions) > 0 {
		root.Definitions = ctx.definitions
	}

	c.mu.Lock()
	c.preds = ctx.predicates
	c.mu.Unlock()

	if !many {
		root.SchemaURI = "http://json-schema.org/draft-04/schema#"
		return root, nil
	}

	defs := root.Definitions
	root.Definitions = nil
	return &Schema{
		SchemaURI:   "http://json-schema.org/draft-04/schema#",
		Type:        "array",
		Items:       root,
		Definitions: defs,
	}, nil
}

// FieldValidators returns the (json_pointer_path, predicate) pairs
// collected by the most recent Compile call on c, in declared traversal
// order, per C3's field_validators() contract.
func (c *Compiler) FieldValidators() []Predicate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.preds
}

func (c *Compiler) defnameFor(record *RecordType, view View) string {
	if get := c.cfg.GetDefinitionName; get != nil {
		return get(record.Name, argNamesOf(record), view.Only, view.Exclude)
	}
	return defname(record.Name, argNamesOf(record), view.Only, view.Exclude)
}

// compileRecord builds the full object schema for one record under view,
// per spec.md §4.3's Root assembly: type "object", properties, required,
// additionalProperties (true, or false when the compiler is configured Strict),
// a $comment naming the record (used by ValidationError's top line), and
// the record's docstring as description, if any.
func (c *Compiler) compileRecord(record *RecordType, view View, ctx *compileCtx) (*Schema, error) {
	name := c.defnameFor(record, view)

	schema := &Schema{
		Comment:     record.Name,
		Type:        "object",
		Description: record.Doc,
	}
	schema.AdditionalPropertiesBool = BoolPtr(!c.cfg.Strict)

	properties := SchemaMap{}
	var required []string

	ctx.building[name] = true
	defer delete(ctx.building, name)

	for _, field := range record.Fields {
		if field.Hints.Ignore {
			continue
		}
		if !view.empty() && !view.includes(field.Name) {
			continue
		}

		fieldSchema, req, err := c.compileField(record, field, ctx)
		if err != nil {
			return nil, err
		}
		properties[field.DictKey()] = fieldSchema
		if req {
			required = append(required, field.DictKey())
		}

		if field.Hints.Validator != nil {
			ctx.predicates = append(ctx.predicates, Predicate{
				Path:  "#/" + field.DictKey(),
				Check: PredicateFunc(field.Hints.Validator),
			})
		}
	}

	sort.Strings(required)
	schema.Properties = &properties
	schema.Required = required
	return schema, nil
}

// compileField computes one field's schema fragment (Fragment rules
// table) and applies its literal hints, returning the fragment and
// whether the field is required (spec.md §4.3 step 4: required iff
// neither a static default nor a factory default exists, and never for an
// Optional-shaped field).
func (c *Compiler) compileField(owner *RecordType, field Field, ctx *compileCtx) (*Schema, bool, error) {
	view := View{Only: field.Hints.Only, Exclude: field.Hints.Exclude}
	fragment, err := c.compileType(field.Type, view, ctx)
	if err != nil {
		return nil, false, fmt.Errorf("%w: field %q of %s: %v", ErrSchemaCompilation, field.Name, owner.Name, err)
	}

	applyFieldHints(fragment, field.Hints)

	if field.HasDefault {
		fragment.Default = field.Default
	}

	required := true
	if u, ok := field.Type.(UnionType); ok && unionHasNull(u) {
		required = false
	}
	if field.HasDefault || field.HasDefaultFunc {
		required = false
	}
	return fragment, required, nil
}

// unionHasNull reports whether any variant of u is Primitive(null), the
// condition spec.md §4.3's Fragment rules table uses to set required
// false for both the Optional(T) sugar and a general Union.
func unionHasNull(u UnionType) bool {
	for _, v := range u.Variants {
		if p, ok := v.(PrimitiveType); ok && p.Kind == KindNull {
			return true
		}
	}
	return false
}

// applyFieldHints overlays description, examples, string/number
// constraints, and allowed_values (intersected with any pre-existing enum)
// onto fragment, per spec.md §4.3 step 3.
func applyFieldHints(fragment *Schema, hints FieldHints) {
	if hints.Description != "" {
		fragment.Description = hints.Description
	}
	if len(hints.Examples) > 0 {
		fragment.Examples = hints.Examples
	}
	if hints.Format != "" {
		fragment.Format = hints.Format
	}
	if hints.Pattern != "" {
		fragment.Pattern = hints.Pattern
	}
	if hints.MinLength != nil {
		fragment.MinLength = hints.MinLength
	}
	if hints.MaxLength != nil {
		fragment.MaxLength = hints.MaxLength
	}
	if hints.Minimum != nil {
		fragment.Minimum = hints.Minimum
	}
	if hints.Maximum != nil {
		fragment.Maximum = hints.Maximum
	}
	if len(hints.AllowedValues) > 0 {
		if len(fragment.Enum) == 0 {
			fragment.Enum = hints.AllowedValues
		} else {
			fragment.Enum = intersectValues(fragment.Enum, hints.AllowedValues)
		}
	}
}

func intersectValues(a, b []Value) []Value {
	allowed := map[string]bool{}
	for _, v := range b {
		allowed[fmt.Sprint(v)] = true
	}
	var out []Value
	for _, v := range a {
		if allowed[fmt.Sprint(v)] {
			out = append(out, v)
		}
	}
	return out
}

// compileType translates one TypeExpr into its schema fragment, per the
// Fragment rules table of spec.md §4.3. view carries the enclosing field's
// only/exclude hint (spec.md §3 "subview selection for nested records")
// down to whichever RecordRef this TypeExpr eventually reaches, however
// many Seq/Map/Union/Tuple layers lie between.
func (c *Compiler) compileType(expr TypeExpr, view View, ctx *compileCtx) (*Schema, error) {
	switch e := expr.(type) {
	case PrimitiveType:
		switch e.Kind {
		case KindAny:
			return &Schema{}, nil
		case KindNull:
			return &Schema{Type: "null"}, nil
		default:
			return &Schema{Type: string(e.Kind)}, nil
		}

	case EnumType:
		return &Schema{Type: string(e.Kind), Enum: enumValues(e)}, nil

	case UnionType:
		if e.Optional() {
			inner, err := c.compileType(e.Inner(), view, ctx)
			if err != nil {
				return nil, err
			}
			return &Schema{AnyOf: []*Schema{inner, {Type: "null"}}}, nil
		}
		branches := make([]*Schema, len(e.Variants))
		for i, v := range e.Variants {
			b, err := c.compileType(v, view, ctx)
			if err != nil {
				return nil, err
			}
			branches[i] = b
		}
		return &Schema{AnyOf: branches}, nil

	case SeqType:
		item, err := c.compileType(e.Item, view, ctx)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: item}, nil

	case TupleType:
		items := make([]*Schema, len(e.Items))
		for i, it := range e.Items {
			s, err := c.compileType(it, view, ctx)
			if err != nil {
				return nil, err
			}
			items[i] = s
		}
		n := len(items)
		return &Schema{Type: "array", TupleItems: items, MinItems: IntPtr(n), MaxItems: IntPtr(n)}, nil

	case MapType:
		val, err := c.compileType(e.Value, view, ctx)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalPropertiesSchema: val}, nil

	case RecordRef:
		return c.compileRecordRef(e.Type, view, ctx)

	case OpaqueRef:
		enc, err := c.cfg.Registry.Resolve(e.Type, nil)
		if err != nil {
			return nil, err
		}
		return enc.JSONSchema(), nil

	case ParamRef:
		return nil, fmt.Errorf("%w: unbound type parameter %q", ErrUnboundTypeParam, e.Name)

	default:
		return nil, fmt.Errorf("%w: unrecognized TypeExpr %T", ErrSchemaCompilation, expr)
	}
}

func enumValues(e EnumType) []Value {
	vals := make([]Value, len(e.Members))
	for i, m := range e.Members {
		vals[i] = m.Value
	}
	return vals
}

// compileRecordRef handles the "Record(id) nested" fragment rule. A
// sub-record is looked up by its reflect.Type in the BuildRecord cache
// (every RecordRef is produced by a prior BuildRecord call, so it is
// always present). view is the containing field's only/exclude hint, if
// any (spec.md §3 "subview selection for nested records"); it folds into
// defname so a record referenced under two different subviews compiles to
// two distinct, independently cached definitions. If its defname is on the
// ancestor stack or equals the root, compilation emits "$ref" without
// descending again (cycle breaking); otherwise the sub-record is compiled
// into ctx.definitions the first time it's seen and every further
// reference under the same view shares that one definition by defname, per
// spec.md §4.3 Invariant 3.
func (c *Compiler) compileRecordRef(t reflect.Type, view View, ctx *compileCtx) (*Schema, error) {
	recordMu.RLock()
	record, ok := recordCache[t]
	recordMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s has no built RecordType", ErrSchemaCompilation, t)
	}

	name := c.defnameFor(record, view)

	if name == ctx.root {
		return &Schema{Ref: "#"}, nil
	}
	if ctx.building[name] {
		return &Schema{Ref: "#/definitions/" + name}, nil
	}
	if _, exists := ctx.definitions[name]; exists {
		return &Schema{Ref: "#/definitions/" + name}, nil
	}

	// Reserve the slot before recursing so a cycle through this record
	// resolves to the same $ref instead of compiling it twice.
	ctx.definitions[name] = &Schema{}
	sub, err := c.compileRecord(record, view, ctx)
	if err != nil {
		delete(ctx.definitions, name)
		return nil, err
	}
	ctx.definitions[name] = sub
	return &Schema{Ref: "#/definitions/" + name}, nil
}
