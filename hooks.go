package serpyco

import (
	"fmt"
	"reflect"
)

// The four lifecycle hook classes spec.md §6 lists ("Hooks ... attached to
// the record type and discovered at build time") are Go interfaces a
// record's Go type may implement, value or pointer receiver, checked once
// when its RecordType is built rather than scanned by method name the way
// the source's `__serpyco_tags__` decorator attributes are
// (original_source/serpyco/decorator.py). PreDump/PostLoad mutate the
// receiver in place around field dump/construction; PostDump/PreLoad
// transform the Value tree around it.
type (
	PreDumper  interface{ PreDump() }
	PostDumper interface{ PostDump(Value) Value }
	PreLoader  interface{ PreLoad(Value) Value }
	PostLoader interface{ PostLoad() }
)

// The ...Aller interfaces are the multi-hook form of each class above
// (spec.md's "ordered lists" of hooks per class). A type implementing one
// supplies every callback to run, in declared order, instead of a single
// method; discoverHooks prefers the Aller form when both are implemented.
type (
	PreDumpAller  interface{ PreDumpAll() []func() }
	PostDumpAller interface{ PostDumpAll() []func(Value) Value }
	PreLoadAller  interface{ PreLoadAll() []func(Value) Value }
	PostLoadAller interface{ PostLoadAll() []func() }
)

var (
	preDumperType     = reflect.TypeOf((*PreDumper)(nil)).Elem()
	preDumpAllerType  = reflect.TypeOf((*PreDumpAller)(nil)).Elem()
	postDumperType    = reflect.TypeOf((*PostDumper)(nil)).Elem()
	postDumpAllerType = reflect.TypeOf((*PostDumpAller)(nil)).Elem()
	preLoaderType     = reflect.TypeOf((*PreLoader)(nil)).Elem()
	preLoadAllerType  = reflect.TypeOf((*PreLoadAller)(nil)).Elem()
	postLoaderType    = reflect.TypeOf((*PostLoader)(nil)).Elem()
	postLoadAllerType = reflect.TypeOf((*PostLoadAller)(nil)).Elem()
)

// hookMode classifies how (or whether) a record's Go type satisfies one
// hook class.
type hookMode int

const (
	hookAbsent hookMode = iota
	hookSingle
	hookMulti
)

// hookPlan is the resolved mode for one hook class, computed once by
// planFor. needPtr is true when only the pointer-receiver form of the
// interface is satisfied, so invocation must run against an addressable
// value.
type hookPlan struct {
	mode    hookMode
	needPtr bool
}

// hookSet is the four resolved hookPlans for one record's Go type,
// computed once in buildRecord and cached on RecordType (spec.md §5: "no
// per-call state leaks" — the interface check never repeats per Dump/Load
// call).
type hookSet struct {
	preDump  hookPlan
	postDump hookPlan
	preLoad  hookPlan
	postLoad hookPlan
}

func discoverHooks(t reflect.Type) hookSet {
	return hookSet{
		preDump:  planFor(t, preDumperType, preDumpAllerType),
		postDump: planFor(t, postDumperType, postDumpAllerType),
		preLoad:  planFor(t, preLoaderType, preLoadAllerType),
		postLoad: planFor(t, postLoaderType, postLoadAllerType),
	}
}

// planFor checks t and *t against single and multi, multi taking
// precedence when both are implemented, so the common one-hook case uses
// the plain interface and only multi-hook classes pay for the slice
// indirection.
func planFor(t, single, multi reflect.Type) hookPlan {
	ptr := reflect.PtrTo(t)
	switch {
	case t.Implements(multi):
		return hookPlan{mode: hookMulti}
	case ptr.Implements(multi):
		return hookPlan{mode: hookMulti, needPtr: true}
	case t.Implements(single):
		return hookPlan{mode: hookSingle}
	case ptr.Implements(single):
		return hookPlan{mode: hookSingle, needPtr: true}
	default:
		return hookPlan{mode: hookAbsent}
	}
}

// addressablePtr returns a pointer to rv, copying rv into a new
// addressable value first if it wasn't already addressable (e.g. it came
// from an interface{} holding a value rather than a pointer).
func addressablePtr(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv.Addr()
	}
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	return ptr
}

// callVoidHook recovers a panic from fn into ErrHookFailed: none of the
// four hook interfaces declare an error return, so a panic is the only
// failure a hook can signal, and recovering it keeps a buggy hook from
// crashing the caller's Dump/Load.
func callVoidHook(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHookFailed, r)
		}
	}()
	fn()
	return nil
}

func callValueHook(fn func(Value) Value, v Value) (out Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHookFailed, r)
		}
	}()
	return fn(v), nil
}

// runPreDump runs record's pre_dump hook(s), if any, on rv (the struct
// value about to be read field-by-field), returning the value dump should
// continue reading from: when the hook needs a pointer receiver, this is
// an addressable copy of rv carrying whatever mutation the hook made.
func runPreDump(plan hookPlan, rv reflect.Value) (reflect.Value, error) {
	if plan.mode == hookAbsent {
		return rv, nil
	}
	target := rv
	if plan.needPtr {
		target = addressablePtr(rv).Elem()
	}
	receiver := target
	if plan.needPtr {
		receiver = target.Addr()
	}

	switch plan.mode {
	case hookMulti:
		for _, fn := range receiver.Interface().(PreDumpAller).PreDumpAll() {
			if err := callVoidHook(fn); err != nil {
				return rv, err
			}
		}
	case hookSingle:
		if err := callVoidHook(receiver.Interface().(PreDumper).PreDump); err != nil {
			return rv, err
		}
	}
	return target, nil
}

// runPostDump runs record's post_dump hook(s), if any, transforming val
// after every field has been dumped into it. rv is the same struct value
// runPreDump returned, used only to obtain the hook's receiver.
func runPostDump(plan hookPlan, rv reflect.Value, val Value) (Value, error) {
	if plan.mode == hookAbsent {
		return val, nil
	}
	receiver := rv
	if plan.needPtr {
		receiver = addressablePtr(rv)
	}

	switch plan.mode {
	case hookMulti:
		for _, fn := range receiver.Interface().(PostDumpAller).PostDumpAll() {
			var err error
			if val, err = callValueHook(fn, val); err != nil {
				return nil, err
			}
		}
	case hookSingle:
		var err error
		if val, err = callValueHook(receiver.Interface().(PostDumper).PostDump, val); err != nil {
			return nil, err
		}
	}
	return val, nil
}

// runPreLoad runs record's pre_load hook(s), if any, transforming v before
// structural validation and field loading. No record instance exists yet,
// so the hook runs against a zero value of goType (or *goType).
func runPreLoad(plan hookPlan, goType reflect.Type, v Value) (Value, error) {
	if plan.mode == hookAbsent {
		return v, nil
	}
	var receiver reflect.Value
	if plan.needPtr {
		receiver = reflect.New(goType)
	} else {
		receiver = reflect.Zero(goType)
	}

	switch plan.mode {
	case hookMulti:
		for _, fn := range receiver.Interface().(PreLoadAller).PreLoadAll() {
			var err error
			if v, err = callValueHook(fn, v); err != nil {
				return nil, err
			}
		}
	case hookSingle:
		var err error
		if v, err = callValueHook(receiver.Interface().(PreLoader).PreLoad, v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// runPostLoad runs record's post_load hook(s), if any, against elem (the
// fully constructed, addressable instance), after every field has been
// loaded into it.
func runPostLoad(plan hookPlan, elem reflect.Value) error {
	if plan.mode == hookAbsent {
		return nil
	}
	receiver := elem
	if plan.needPtr {
		receiver = elem.Addr()
	}

	switch plan.mode {
	case hookMulti:
		for _, fn := range receiver.Interface().(PostLoadAller).PostLoadAll() {
			if err := callVoidHook(fn); err != nil {
				return err
			}
		}
	case hookSingle:
		if err := callVoidHook(receiver.Interface().(PostLoader).PostLoad); err != nil {
			return err
		}
	}
	return nil
}
