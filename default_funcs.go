package serpyco

import (
	"fmt"
	"sync"
	"time"
)

// DefaultFactory produces a field's default value on demand. Per spec.md
// §4.3 step 4, a factory default is never materialized into the compiled
// schema (unlike a static default), only applied by the Serializer when a
// key is absent on load.
type DefaultFactory func() Value

// defaultFuncRegistry lets a struct tag reference a factory by name
// ("default_factory=now") instead of requiring a RecordOption at every
// BuildRecord call site, the way WithFieldDefaultFunc does for one-off
// closures. Guarded the same way the encoder registry is: registration
// happens at init, not concurrently with BuildRecord.
var (
	defaultFuncMu       sync.RWMutex
	defaultFuncRegistry = map[string]DefaultFactory{
		"now": func() Value { return time.Now().UTC().Format(time.RFC3339Nano) },
	}
)

// RegisterDefaultFunc installs a named DefaultFactory, resolvable from a
// "default_factory=<name>" struct tag.
func RegisterDefaultFunc(name string, fn DefaultFactory) error {
	defaultFuncMu.Lock()
	defer defaultFuncMu.Unlock()
	if _, exists := defaultFuncRegistry[name]; exists {
		return fmt.Errorf("%w: default factory %q already registered", ErrEncoderAlreadyRegistered, name)
	}
	defaultFuncRegistry[name] = fn
	return nil
}

// UnregisterDefaultFunc removes a named DefaultFactory, if any.
func UnregisterDefaultFunc(name string) {
	defaultFuncMu.Lock()
	defer defaultFuncMu.Unlock()
	delete(defaultFuncRegistry, name)
}

func lookupDefaultFunc(name string) (DefaultFactory, bool) {
	defaultFuncMu.RLock()
	defer defaultFuncMu.RUnlock()
	fn, ok := defaultFuncRegistry[name]
	return fn, ok
}
