package render

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry stores renderers by name and indexes them by the file extensions
// they claim. Names and extensions are case-insensitive.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	byExt     map[string][]string
}

// Info describes a registered renderer for listings.
type Info struct {
	Name        string   `json:"name"`
	ContentType string   `json:"contentType"`
	Extensions  []string `json:"extensions"`
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		byExt:     make(map[string][]string),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := normalize(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	for _, ext := range renderer.Extensions() {
		ext = normalize(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		names := append(r.byExt[ext], name)
		slices.Sort(names)
		r.byExt[ext] = slices.Compact(names)
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// ForPath picks the renderer that claims the extension of path. When several
// do, the first by name wins.
func (r *Registry) ForPath(path string) (Renderer, error) {
	ext := normalize(filepath.Ext(path))
	if ext == "" {
		return nil, fmt.Errorf("render: %q has no extension", path)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.byExt[ext]
	if len(names) == 0 {
		return nil, fmt.Errorf("render: no renderer for extension %q", ext)
	}
	return r.renderers[names[0]], nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describe lists every renderer with its content type and extensions,
// sorted by name.
func (r *Registry) Describe() []Info {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(names))
	for _, name := range names {
		renderer, ok := r.renderers[name]
		if !ok {
			continue
		}
		out = append(out, Info{
			Name:        name,
			ContentType: renderer.ContentType(),
			Extensions:  slices.Clone(renderer.Extensions()),
		})
	}
	return out
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[normalize(name)]
	return ok
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
