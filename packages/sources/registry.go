// Package sources tracks the dependency-source types the tool knows
// how to scan. The registry is injected into the configuration core,
// which consults it only to answer "is this type known".
package sources

// DefaultTypes lists the built-in source-type identifiers.
var DefaultTypes = []string{
	"bundler",
	"cabal",
	"cargo",
	"composer",
	"go",
	"gradle",
	"manifest",
	"mix",
	"npm",
	"nuget",
	"pip",
	"pipenv",
	"pnpm",
	"swift",
	"yarn",
}

// Registry is an enumerable set of known source-type identifiers.
type Registry struct {
	order []string
	known map[string]struct{}
}

// NewRegistry returns a registry containing the given types.
func NewRegistry(types ...string) *Registry {
	r := &Registry{known: make(map[string]struct{}, len(types))}
	for _, name := range types {
		r.Register(name)
	}
	return r
}

// Default returns a registry seeded with DefaultTypes.
func Default() *Registry {
	return NewRegistry(DefaultTypes...)
}

// Register adds a source type. Registering an existing type is a no-op.
func (r *Registry) Register(name string) {
	if _, ok := r.known[name]; ok {
		return
	}
	r.known[name] = struct{}{}
	r.order = append(r.order, name)
}

// Known reports whether name is a registered source type.
func (r *Registry) Known(name string) bool {
	_, ok := r.known[name]
	return ok
}

// Types returns the registered identifiers in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
