// Package host is the name-keyed table of native functions exposed to a
// value-evaluation host.
package host

import (
	"fmt"
	"sort"
	"sync"

	"github.com/JonMunkholm/tabconv/internal/value"
)

// NativeFunc is a callable exposed to the host. Implementations check their
// own arity and argument types.
type NativeFunc func(args []value.Value) (value.Value, error)

// Function is a registered NativeFunc with its listing metadata.
type Function struct {
	Name      string
	Signature string
	Doc       string
	Fn        NativeFunc
}

// ErrUnknownFunction is returned by Call for names that are not registered.
type ErrUnknownFunction struct {
	Name string
}

func (e *ErrUnknownFunction) Error() string {
	return fmt.Sprintf("unknown function: %s", e.Name)
}

var (
	registry   = make(map[string]Function)
	registryMu sync.RWMutex
)

// Register adds a function to the registry.
// Panics if a function with the same name is already registered.
func Register(f Function) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if f.Name == "" || f.Fn == nil {
		panic("host: function needs a name and an implementation")
	}
	if _, exists := registry[f.Name]; exists {
		panic(fmt.Sprintf("function already registered: %s", f.Name))
	}

	registry[f.Name] = f
}

// RegisterAll registers every function in fns.
func RegisterAll(fns ...Function) {
	for _, f := range fns {
		Register(f)
	}
}

// Get returns a function by name.
// Returns false if not found.
func Get(name string) (Function, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[name]
	return f, ok
}

// Call looks up name and invokes it with args.
func Call(name string, args []value.Value) (value.Value, error) {
	f, ok := Get(name)
	if !ok {
		return nil, &ErrUnknownFunction{Name: name}
	}
	return f.Fn(args)
}

// Names returns the registered names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns all registered functions sorted by name.
func Describe() []Function {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Function, 0, len(registry))
	for _, f := range registry {
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Count returns the number of registered functions.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered functions.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Function)
}
