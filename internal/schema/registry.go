package schema

import "fmt"

// Registry is the immutable table of element definitions for one schema
// version, keyed by element kind.
type Registry struct {
	version string
	defs    map[string]*Element
}

// NewRegistry builds a registry from the given definitions. Registering two
// definitions under the same key is a programming error and panics.
func NewRegistry(version string, defs ...*Element) *Registry {
	r := &Registry{version: version, defs: make(map[string]*Element, len(defs))}
	for _, def := range defs {
		key := def.RegistryKey()
		if _, ok := r.defs[key]; ok {
			panic(fmt.Sprintf("schema: duplicate element definition %q for version %s", key, version))
		}
		r.defs[key] = def
	}
	return r
}

// Version returns the schema version the registry describes.
func (r *Registry) Version() string {
	return r.version
}

// Lookup returns the definition registered under key.
func (r *Registry) Lookup(key string) (*Element, bool) {
	def, ok := r.defs[key]
	return def, ok
}

// Len returns the number of registered element kinds.
func (r *Registry) Len() int {
	return len(r.defs)
}
