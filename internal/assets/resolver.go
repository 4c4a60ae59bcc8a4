package assets

import (
	"errors"
	"sort"
)

// Resolver combines custom and embedded loaders with fallback logic.
// When a custom directory is configured, templates found there take
// precedence; missing ones fall back to the embedded set.
type Resolver struct {
	custom   *FilesystemLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewResolver creates a Resolver.
// If customBasePath is empty, only embedded templates are used.
// Returns error if customBasePath is set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadMarkup loads a markup template, trying the custom loader first.
func (r *Resolver) LoadMarkup(name string) (string, error) {
	content, _, err := r.LoadMarkupSource(name)
	return content, err
}

// LoadMarkupSource is LoadMarkup that also reports whether the content came
// from the custom directory.
func (r *Resolver) LoadMarkupSource(name string) (content string, custom bool, err error) {
	if r.custom == nil {
		content, err = r.embedded.LoadMarkup(name)
		return content, false, err
	}

	content, err = r.custom.LoadMarkup(name)
	if err == nil {
		return content, true, nil
	}
	// Only fall back for "not found" errors, not validation or I/O errors.
	if !errors.Is(err, ErrMarkupNotFound) {
		return "", false, err
	}
	content, err = r.embedded.LoadMarkup(name)
	return content, false, err
}

// Names lists every loadable template name, custom and embedded, sorted
// and deduplicated.
func (r *Resolver) Names() []string {
	names := r.embedded.Names()
	if r.custom == nil {
		return names
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range r.custom.Names() {
		if !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	sort.Strings(names)
	return names
}

// HasCustomLoader returns true if a custom template directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
