package assets

import (
	"errors"
	"fmt"
	"io/fs"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/fileutil"
	"github.com/alnah/go-docpdf/internal/yamlutil"
)

// Load reads the named stylesheet from loader and parses it.
// Returns ErrStylesheetNotFound if the sheet does not exist and
// ErrInvalidAssetName if the name contains path separators or traversal.
func Load(loader AssetLoader, name string) (*Stylesheet, error) {
	content, err := loader.LoadStylesheet(name)
	if err != nil {
		return nil, err
	}
	return ParseStylesheet(content)
}

// LoadFile reads a stylesheet from a file path outside any asset directory.
func LoadFile(path string) (*Stylesheet, error) {
	var s Stylesheet
	if err := yamlutil.ReadStrict(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrStylesheetNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidStylesheet, yamlutil.Describe(err))
	}
	return &s, nil
}

// BuildRegistry merges the built-in styles, the named sheet and extra
// definitions, in that order, and resolves the result. A name containing a
// path separator is read with LoadFile instead of loader.
func BuildRegistry(loader AssetLoader, name string, extra ...docpdf.StyleDef) (*docpdf.Registry, error) {
	defs := docpdf.DefaultStyles()
	if name != "" {
		var sheet *Stylesheet
		var err error
		if fileutil.IsFilePath(name) {
			sheet, err = LoadFile(name)
		} else {
			sheet, err = Load(loader, name)
		}
		if err != nil {
			return nil, err
		}
		sheetDefs, err := sheet.Defs()
		if err != nil {
			return nil, err
		}
		defs = MergeDefs(defs, sheetDefs...)
	}
	return docpdf.NewRegistry(MergeDefs(defs, extra...)...)
}
