package assets

// AssetLoader defines the contract for loading stylesheets.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadStylesheet loads a stylesheet by name (without .yaml extension).
	// Returns ErrStylesheetNotFound if the sheet doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStylesheet(name string) (string, error)

	// ListStylesheets returns the names of the available sheets, sorted.
	ListStylesheets() ([]string, error)
}

// DefaultStylesheetName is the name of the built-in stylesheet.
const DefaultStylesheetName = "default"

// stylesheetExt is the file extension of stylesheets.
const stylesheetExt = ".yaml"
