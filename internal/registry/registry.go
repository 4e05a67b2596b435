// Package registry maps short format names to annotation format implementations.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/simonhull/annotkit/internal/types"
)

// Registry maps format names to formats.
//
// Built-in formats register into Default from their package init functions.
// Registration is expected at startup or on explicit user extension; lookups
// may run concurrently with each other and with late registrations.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]types.Format
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{formats: make(map[string]types.Format)}
}

// Default is the process-wide registry holding the built-in formats.
var Default = New()

// Register adds f under f.Name().
//
// It fails with a *types.ConfigError if the name is empty or already taken,
// or if f is neither a types.SeqFormat nor a types.BBoxFormat.
func (r *Registry) Register(f types.Format) error {
	if f == nil {
		return &types.ConfigError{Reason: "cannot register a nil format"}
	}
	name := f.Name()
	if name == "" {
		return &types.ConfigError{Reason: fmt.Sprintf("format %T has an empty name", f)}
	}
	if types.KindOf(f) == 0 {
		return &types.ConfigError{
			Name:   name,
			Reason: fmt.Sprintf("%T implements neither SeqFormat nor BBoxFormat", f),
		}
	}
	if len(f.Ext()) == 0 {
		return &types.ConfigError{Name: name, Reason: "format declares no file extensions"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.formats[name]; ok {
		return &types.ConfigError{
			Name:   name,
			Reason: fmt.Sprintf("name already registered by %T", existing),
		}
	}
	r.formats[name] = f
	return nil
}

// MustRegister is Register for init functions: it panics on error.
func (r *Registry) MustRegister(f types.Format) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// ByName returns the format registered under name.
// It fails with a *types.NotFoundError listing the valid names.
func (r *Registry) ByName(name string) (types.Format, error) {
	r.mu.RLock()
	f, ok := r.formats[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &types.NotFoundError{Name: name, Valid: r.AsList()}
	}
	return f, nil
}

// AsList returns the registered names sorted lexicographically.
func (r *Registry) AsList() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ForPath returns the sorted names of formats accepting the extension of path.
func (r *Registry) ForPath(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for name, f := range r.formats {
		if slices.ContainsFunc(f.Ext(), func(ext string) bool { return strings.HasSuffix(path, ext) }) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Register adds f to Default.
func Register(f types.Format) error { return Default.Register(f) }

// MustRegister adds f to Default and panics on error.
func MustRegister(f types.Format) { Default.MustRegister(f) }

// ByName looks name up in Default.
func ByName(name string) (types.Format, error) { return Default.ByName(name) }

// AsList lists the names registered in Default.
func AsList() []string { return Default.AsList() }
