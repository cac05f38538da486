package source

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// MaxSheetRows caps the rows read from one sheet. Larger sheets are
// rejected rather than cut.
const MaxSheetRows = 10000

// SheetRef points a table at a worksheet in an .xlsx workbook.
type SheetRef struct {
	Path    string `yaml:"path"`    // relative to the document file
	Name    string `yaml:"name"`    // empty = first sheet
	MaxRows int    `yaml:"maxRows"` // keep the first rows only; 0 = all
}

func (s SheetRef) rows(dir string) ([][]string, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("%w: sheet path is required", ErrSheet)
	}
	path := s.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return ReadSheet(path, s.Name, s.MaxRows)
}

// ReadSheet returns the rows of sheet in the workbook at path. Trailing
// empty cells are dropped by excelize, so rows may have different lengths.
// A positive maxRows keeps only the first maxRows rows. A sheet with more
// than MaxSheetRows rows left after that fails with ErrSheet.
func ReadSheet(path, sheet string, maxRows int) ([][]string, error) {
	return readSheet(path, sheet, maxRows, MaxSheetRows)
}

func readSheet(path, sheet string, maxRows, limit int) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSheet, path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", ErrSheet, path)
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s [%s]: %v", ErrSheet, path, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s [%s] is empty", ErrSheet, path, sheet)
	}
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	if len(rows) > limit {
		return nil, fmt.Errorf("%w: %s [%s] has %d rows, more than %d (set maxRows to keep the first rows)",
			ErrSheet, path, sheet, len(rows), limit)
	}
	return rows, nil
}
