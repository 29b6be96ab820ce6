package assets

import (
	"errors"
	"sort"
)

// AssetResolver combines a custom directory with the embedded assets.
//
// Styles are looked up in the custom directory first. Template sets are
// merged per file: each template found under templates/{name}/ replaces
// the embedded one, and the rest come from the embedded set of the same
// name, or the default set when there is none. A custom directory can
// therefore override only item.html and keep the built-in control documents.
type AssetResolver struct {
	custom   *FilesystemLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}
	return resolver, nil
}

// LoadStyle loads a CSS style, trying the custom directory first.
// Only a not-found error falls through; validation and I/O errors surface.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom != nil {
		css, err := r.custom.LoadStyle(name)
		if err == nil || !errors.Is(err, ErrStyleNotFound) {
			return css, err
		}
	}
	return r.embedded.LoadStyle(name)
}

// StyleNames lists custom and embedded style names, sorted and unique.
func (r *AssetResolver) StyleNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(list []string) {
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	if r.custom != nil {
		add(r.custom.StyleNames())
	}
	add(r.embedded.StyleNames())
	sort.Strings(names)
	return names
}

// LoadTemplateSet resolves the named set, overlaying custom templates on
// the embedded base. Overridden lists the file names taken from disk.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplateSet(name)
	}

	overrides, err := r.custom.LoadTemplateOverrides(name)
	if err != nil {
		if errors.Is(err, ErrTemplateSetNotFound) {
			return r.embedded.LoadTemplateSet(name)
		}
		return nil, err
	}

	base, err := r.embedded.LoadTemplateSet(name)
	if errors.Is(err, ErrTemplateSetNotFound) {
		base, err = r.embedded.LoadTemplateSet(DefaultTemplateSetName)
	}
	if err != nil {
		return nil, err
	}

	ts := &TemplateSet{Name: name}
	for _, file := range TemplateNames {
		content, ok := overrides[file]
		if ok {
			ts.Overridden = append(ts.Overridden, file)
		} else {
			content, _ = base.Source(file)
		}
		ts.set(file, content)
	}
	return ts, nil
}

var (
	_ AssetLoader = (*AssetResolver)(nil)
	_ StyleLister = (*AssetResolver)(nil)
)
