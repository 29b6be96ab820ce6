package assets

// AssetLoader loads extra styles and EPUB template sets by name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css. ErrStyleNotFound when absent,
	// ErrInvalidAssetName when name is not a single path element.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns the five templates of templates/{name}/.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// StyleLister is implemented by loaders that can enumerate their styles.
type StyleLister interface {
	StyleNames() []string
}
