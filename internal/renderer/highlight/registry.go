package highlight

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry manages available highlighters.
type Registry struct {
	mu sync.RWMutex

	// byLanguage maps lower-cased language names and aliases to highlighters
	byLanguage map[string]Highlighter

	// byExtension maps file extensions to highlighters
	byExtension map[string]Highlighter

	// names holds the canonical language names
	names map[string]struct{}
}

// NewRegistry creates a new highlighter registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]Highlighter),
		byExtension: make(map[string]Highlighter),
		names:       make(map[string]struct{}),
	}
}

// DefaultRegistry returns a registry with the built-in highlighters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltinHighlighters(r)
	return r
}

// Register adds a highlighter to the registry. A later registration for
// the same name or extension replaces the earlier one.
func (r *Registry) Register(h Highlighter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names[h.Language()] = struct{}{}
	r.byLanguage[strings.ToLower(h.Language())] = h
	for _, alias := range h.Aliases() {
		r.byLanguage[strings.ToLower(alias)] = h
	}
	for _, ext := range h.FileExtensions() {
		r.byExtension[strings.ToLower(ext)] = h
	}
}

// GetByLanguage returns a highlighter for the given language name or
// alias. Lookup is case-insensitive.
func (r *Registry) GetByLanguage(language string) (Highlighter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byLanguage[strings.ToLower(strings.TrimSpace(language))]
	return h, ok
}

// GetByExtension returns a highlighter for the given file extension.
func (r *Registry) GetByExtension(ext string) (Highlighter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ext == "" {
		return nil, false
	}
	if ext[0] != '.' {
		ext = "." + ext
	}

	h, ok := r.byExtension[strings.ToLower(ext)]
	return h, ok
}

// LanguageForPath returns the language name for a file path, or "" when
// no highlighter handles its extension.
func (r *Registry) LanguageForPath(path string) string {
	h, ok := r.GetByExtension(filepath.Ext(path))
	if !ok {
		return ""
	}
	return h.Language()
}

// Languages returns all registered language names, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.names))
	for lang := range r.names {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
