package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	docpdf "github.com/alnah/go-docpdf"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// writeWorkbook saves rows to sheet "Figures" in dir/name.
func writeWorkbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", "Figures"); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Figures", cell, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestParseDocument - YAML and JSON document files
// ---------------------------------------------------------------------------

func TestParseDocument(t *testing.T) {
	t.Parallel()

	content := `title: Platform Overview
author: Docs Team
keywords: [platform]
footer: "Page {page} of {total}"
blocks:
  - type: heading
    text: Introduction
  - type: heading
    level: 2
    text: Scope
    style: Heading1Center
  - type: paragraph
    text: The platform connects founders with investors.
  - type: list
    ordered: true
    items: [Register, Verify, Match]
  - type: code
    language: go
    text: "fmt.Println(1)"
  - type: spacer
    height: 18
  - type: pagebreak
  - type: table
    widths: [100, 60]
    rows:
      - [Name, Value]
      - [alpha]
`

	c, err := ParseDocument(context.Background(), []byte(content), t.TempDir())
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	if c.Metadata.Title != "Platform Overview" || c.Metadata.Author != "Docs Team" {
		t.Errorf("Metadata = %+v", c.Metadata)
	}
	if c.Footer != "Page {page} of {total}" || c.Header != "" {
		t.Errorf("Header/Footer = %q/%q", c.Header, c.Footer)
	}

	want := []docpdf.Block{
		docpdf.Heading{Level: 1, Text: "Introduction"},
		docpdf.Heading{Level: 2, Text: "Scope", Style: "Heading1Center"},
		docpdf.Paragraph{Text: "The platform connects founders with investors."},
		docpdf.List{Items: []string{"Register", "Verify", "Match"}, Ordered: true},
		docpdf.Code{Language: "go", Text: "fmt.Println(1)"},
		docpdf.Spacer{Height: 18},
		docpdf.PageBreak{},
		docpdf.Table{Rows: [][]string{{"Name", "Value"}, {"alpha", ""}}, ColumnWidths: []float64{100, 60}},
	}
	if !reflect.DeepEqual(c.Blocks, want) {
		t.Errorf("Blocks =\n%#v\nwant\n%#v", c.Blocks, want)
	}
}

func TestParseDocument_JSON(t *testing.T) {
	t.Parallel()

	content := `{"title": "J", "blocks": [{"type": "paragraph", "text": "hello"}]}`
	c, err := ParseDocument(context.Background(), []byte(content), "")
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if c.Metadata.Title != "J" || len(c.Blocks) != 1 {
		t.Errorf("Content = %+v", c)
	}
}

func TestParseDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "unknown key",
			content: "blocks:\n  - type: paragraph\n    txt: x\n",
		},
		{
			name:    "unknown block type",
			content: "blocks:\n  - type: image\n",
			errText: `unknown type "image"`,
		},
		{
			name:    "missing type",
			content: "blocks:\n  - text: x\n",
			errText: "block 0: missing type",
		},
		{
			name:    "rows and sheet",
			content: "blocks:\n  - type: table\n    rows: [[a]]\n    sheet: {path: x.xlsx}\n",
			errText: "both rows and sheet",
		},
		{
			name:    "malformed",
			content: "blocks: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDocument(context.Background(), []byte(tt.content), t.TempDir())
			if !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("ParseDocument() error = %v, want ErrInvalidDocument", err)
			}
			if tt.errText != "" && !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("error = %q, want containing %q", err, tt.errText)
			}
		})
	}
}

func TestParseDocument_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseDocument(ctx, []byte("blocks:\n  - type: pagebreak\n"), "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ParseDocument() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestSheet - Table rows from .xlsx
// ---------------------------------------------------------------------------

func TestLoadDocument_SheetTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWorkbook(t, dir, "figures.xlsx", [][]any{
		{"Quarter", "Signups", "Deals"},
		{"Q1", 120, 4},
		{"Q2", 180},
	})
	path := writeFile(t, dir, "report.yaml", `blocks:
  - type: table
    sheet:
      path: figures.xlsx
      name: Figures
`)

	c, err := LoadDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	tbl, ok := c.Blocks[0].(docpdf.Table)
	if !ok {
		t.Fatalf("block 0 = %T, want docpdf.Table", c.Blocks[0])
	}
	want := [][]string{{"Quarter", "Signups", "Deals"}, {"Q1", "120", "4"}, {"Q2", "180", ""}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("Rows = %v, want %v", tbl.Rows, want)
	}
}

func TestReadSheet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeWorkbook(t, dir, "data.xlsx", [][]any{{"a"}, {"b"}, {"c"}})

	t.Run("first sheet by default", func(t *testing.T) {
		t.Parallel()

		rows, err := ReadSheet(path, "", 0)
		if err != nil {
			t.Fatalf("ReadSheet() error = %v", err)
		}
		if len(rows) != 3 {
			t.Errorf("len(rows) = %d, want 3", len(rows))
		}
	})

	t.Run("maxRows caps the result", func(t *testing.T) {
		t.Parallel()

		rows, err := ReadSheet(path, "Figures", 2)
		if err != nil {
			t.Fatalf("ReadSheet() error = %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("len(rows) = %d, want 2", len(rows))
		}
	})

	t.Run("rows over the limit fail", func(t *testing.T) {
		t.Parallel()

		_, err := readSheet(path, "", 0, 2)
		if !errors.Is(err, ErrSheet) {
			t.Fatalf("readSheet() error = %v, want ErrSheet", err)
		}
		if !strings.Contains(err.Error(), "has 3 rows, more than 2") {
			t.Errorf("error = %q, want the row count and limit", err)
		}
	})

	t.Run("maxRows within the limit", func(t *testing.T) {
		t.Parallel()

		rows, err := readSheet(path, "", 2, 2)
		if err != nil {
			t.Fatalf("readSheet() error = %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("len(rows) = %d, want 2", len(rows))
		}
	})

	t.Run("unknown sheet", func(t *testing.T) {
		t.Parallel()

		_, err := ReadSheet(path, "Missing", 0)
		if !errors.Is(err, ErrSheet) {
			t.Errorf("ReadSheet() error = %v, want ErrSheet", err)
		}
	})

	t.Run("missing workbook", func(t *testing.T) {
		t.Parallel()

		_, err := ReadSheet(filepath.Join(dir, "nope.xlsx"), "", 0)
		if !errors.Is(err, ErrSheet) {
			t.Errorf("ReadSheet() error = %v, want ErrSheet", err)
		}
	})
}

func TestPadRows(t *testing.T) {
	t.Parallel()

	got := padRows([][]string{{"a", "b", "c"}, {"d"}, {}})
	want := [][]string{{"a", "b", "c"}, {"d", "", ""}, {"", "", ""}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("padRows() = %v, want %v", got, want)
	}
}
