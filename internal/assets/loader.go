package assets

// MarkupExt is the file extension of markup templates.
const MarkupExt = ".md.tmpl"

// Loader defines the contract for loading markup templates.
type Loader interface {
	// LoadMarkup loads a markup template by name (without extension).
	// Returns ErrMarkupNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadMarkup(name string) (string, error)
}
