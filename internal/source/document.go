package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/yamlutil"
)

// Block types accepted in document files.
const (
	TypeHeading   = "heading"
	TypeParagraph = "paragraph"
	TypeList      = "list"
	TypeCode      = "code"
	TypeSpacer    = "spacer"
	TypePageBreak = "pagebreak"
	TypeTable     = "table"
)

// File is the document file format. JSON files use the same keys.
//
//	title: Platform Overview
//	footer: "Page {page} of {total}"
//	blocks:
//	  - type: heading
//	    text: Introduction
//	  - type: paragraph
//	    text: The platform connects founders with investors.
//	  - type: table
//	    sheet: {path: figures.xlsx, name: Q1}
type File struct {
	Title    string    `yaml:"title"`
	Author   string    `yaml:"author"`
	Subject  string    `yaml:"subject"`
	Keywords []string  `yaml:"keywords"`
	Header   string    `yaml:"header"`
	Footer   string    `yaml:"footer"`
	Blocks   []Element `yaml:"blocks"`
}

// Element is one block. Type selects which other fields apply.
type Element struct {
	Type  string `yaml:"type"`
	Style string `yaml:"style"`

	// heading, paragraph
	Text  string `yaml:"text"`
	Level int    `yaml:"level"` // heading only, default 1

	// list
	Items   []string `yaml:"items"`
	Ordered bool     `yaml:"ordered"`

	// code
	Language string `yaml:"language"`

	// spacer
	Height float64 `yaml:"height"`

	// table
	Rows        [][]string `yaml:"rows"`
	Sheet       *SheetRef  `yaml:"sheet"`
	Widths      []float64  `yaml:"widths"`
	NoHeader    bool       `yaml:"noHeader"`
	HeaderStyle string     `yaml:"headerStyle"`
	CellStyle   string     `yaml:"cellStyle"`
}

// LoadDocument reads a YAML or JSON document file. Sheet paths are
// resolved against the file's directory.
func LoadDocument(ctx context.Context, path string) (*Content, error) {
	data, err := readFile(path, int64(yamlutil.MaxInputSize))
	if err != nil {
		return nil, err
	}
	return ParseDocument(ctx, data, filepath.Dir(path))
}

// ParseDocument decodes a document file strictly and converts its blocks.
func ParseDocument(ctx context.Context, data []byte, dir string) (*Content, error) {
	var f File
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, yamlutil.Describe(err))
	}

	c := &Content{
		Metadata: docpdf.Metadata{
			Title:    f.Title,
			Author:   f.Author,
			Subject:  f.Subject,
			Keywords: f.Keywords,
		},
		Header: f.Header,
		Footer: f.Footer,
		Blocks: make([]docpdf.Block, 0, len(f.Blocks)),
	}
	for i, e := range f.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := e.block(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrInvalidDocument, i, err)
		}
		c.Blocks = append(c.Blocks, b)
	}
	return c, nil
}

func (e Element) block(dir string) (docpdf.Block, error) {
	switch strings.ToLower(e.Type) {
	case TypeHeading:
		level := e.Level
		if level == 0 {
			level = 1
		}
		return docpdf.Heading{Level: level, Text: e.Text, Style: e.Style}, nil
	case TypeParagraph:
		return docpdf.Paragraph{Text: e.Text, Style: e.Style}, nil
	case TypeList:
		return docpdf.List{Items: e.Items, Ordered: e.Ordered, Style: e.Style}, nil
	case TypeCode:
		return docpdf.Code{Language: e.Language, Text: e.Text, Style: e.Style}, nil
	case TypeSpacer:
		return docpdf.Spacer{Height: e.Height}, nil
	case TypePageBreak:
		return docpdf.PageBreak{}, nil
	case TypeTable:
		return e.table(dir)
	case "":
		return nil, fmt.Errorf("missing type")
	}
	return nil, fmt.Errorf("unknown type %q", e.Type)
}

func (e Element) table(dir string) (docpdf.Block, error) {
	rows := e.Rows
	switch {
	case e.Sheet != nil && len(rows) > 0:
		return nil, fmt.Errorf("table has both rows and sheet")
	case e.Sheet != nil:
		var err error
		if rows, err = e.Sheet.rows(dir); err != nil {
			return nil, err
		}
	}
	return docpdf.Table{
		Rows:         padRows(rows),
		ColumnWidths: e.Widths,
		NoHeader:     e.NoHeader,
		HeaderStyle:  e.HeaderStyle,
		CellStyle:    e.CellStyle,
	}, nil
}

// padRows extends short rows with empty cells to the widest row.
func padRows(rows [][]string) [][]string {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		if len(r) == cols {
			out[i] = r
			continue
		}
		padded := make([]string, cols)
		copy(padded, r)
		out[i] = padded
	}
	return out
}
