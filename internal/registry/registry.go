// Package registry holds the named, anchored patterns that columns are
// matched against.
//
// Iteration order is most-recent-registration order: registering a name that
// already exists replaces its definition and moves it to the end.
package registry

import (
	"regexp"
	"time"

	"github.com/ppiankov/csvtypes/internal/cache"
	"github.com/ppiankov/csvtypes/internal/model"
)

// patterns is shared by every registry that is not given its own cache.
var patterns cache.Cache = cache.NewMemoryCache(0, 10*time.Minute)

// TypeDef is a named pattern compiled for full-string matching
type TypeDef struct {
	Name    string
	Pattern string // as configured, without anchors
	re      *regexp.Regexp
}

// Anchor wraps pattern so that it must match the whole value.
func Anchor(pattern string) string {
	return "^(?:" + pattern + ")$"
}

// Match reports whether value matches the definition as a whole.
func (t TypeDef) Match(value string) bool {
	return t.re.MatchString(value)
}

// Anchored returns the pattern that is actually compiled
func (t TypeDef) Anchored() string {
	return Anchor(t.Pattern)
}

// Registry is an ordered, name-deduplicated set of TypeDefs. It is not safe
// for concurrent mutation; matching calls only read it.
type Registry struct {
	list   []TypeDef
	byName map[string]TypeDef
	cache  cache.Cache
}

// Option configures a Registry
type Option func(*Registry)

// WithCache compiles patterns through c instead of the process-wide cache
func WithCache(c cache.Cache) Option {
	return func(r *Registry) {
		r.cache = c
	}
}

// New creates an empty registry
func New(opts ...Option) *Registry {
	r := &Registry{
		byName: make(map[string]TypeDef),
		cache:  patterns,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromDefs registers defs in order. The first pattern that fails to compile
// aborts construction.
func FromDefs(defs []model.TypeDef, opts ...Option) (*Registry, error) {
	r := New(opts...)
	for _, def := range defs {
		if err := r.Register(def.Name, def.Pattern); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a registry holding the built-in string, float and int types
func Default(opts ...Option) *Registry {
	r, err := FromDefs(model.DefaultTypes(), opts...)
	if err != nil {
		panic("registry: built-in type failed to compile: " + err.Error())
	}
	return r
}

// Register compiles pattern as a full-match pattern and stores it under name.
func (r *Registry) Register(name, pattern string) error {
	re, err := cache.Compile(r.cache, Anchor(pattern))
	if err != nil {
		return &CompileError{Name: name, Pattern: pattern, Err: err}
	}
	r.add(TypeDef{Name: name, Pattern: pattern, re: re})
	return nil
}

func (r *Registry) add(def TypeDef) {
	if _, exists := r.byName[def.Name]; exists {
		kept := r.list[:0]
		for _, t := range r.list {
			if t.Name != def.Name {
				kept = append(kept, t)
			}
		}
		r.list = kept
	}
	r.list = append(r.list, def)
	r.byName[def.Name] = def
}

// Lookup returns the latest definition registered under name
func (r *Registry) Lookup(name string) (TypeDef, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Ordered returns a copy of the definitions in iteration order
func (r *Registry) Ordered() []TypeDef {
	out := make([]TypeDef, len(r.list))
	copy(out, r.list)
	return out
}

// Names returns the type names in iteration order
func (r *Registry) Names() []string {
	return Names(r.list)
}

// Len returns the number of distinct names
func (r *Registry) Len() int {
	return len(r.list)
}

// Definitions returns the uncompiled (name, pattern) pairs in iteration order
func (r *Registry) Definitions() []model.TypeDef {
	out := make([]model.TypeDef, len(r.list))
	for i, t := range r.list {
		out[i] = model.TypeDef{Name: t.Name, Pattern: t.Pattern}
	}
	return out
}

// Resolve looks up one definition per name, in order. Surrounding
// whitespace in names is ignored.
func (r *Registry) Resolve(names []string) ([]TypeDef, error) {
	defs := make([]TypeDef, 0, len(names))
	for _, name := range names {
		def, ok := r.Lookup(trimName(name))
		if !ok {
			return nil, &UndefinedTypeError{Name: trimName(name)}
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Names extracts the names of defs
func Names(defs []TypeDef) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}
