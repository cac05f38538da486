package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed styles/*.yaml
var styles embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStylesheet loads a stylesheet from embedded assets by name.
// The name should not include the .yaml extension.
func (e *EmbeddedLoader) LoadStylesheet(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + stylesheetExt)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStylesheetNotFound, name)
	}

	return string(content), nil
}

// ListStylesheets returns the built-in sheet names.
func (e *EmbeddedLoader) ListStylesheets() ([]string, error) {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	var names []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), stylesheetExt); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
