package docpdf

import (
	"fmt"
	"strings"
)

// Block is one unit of document content. The set of implementations is
// closed: Heading, Paragraph, Spacer, PageBreak, Table, List and Code.
type Block interface {
	// Kind returns a short lowercase name used in logs and errors.
	Kind() string
	validate() error
	styleRefs() []string
}

// Heading is a section title. An empty Style selects "Heading<Level>".
type Heading struct {
	Level int // 1..6
	Text  string
	Style string
}

func (Heading) Kind() string { return "heading" }

func (h Heading) validate() error {
	if h.Level < 1 || h.Level > 6 {
		return fmt.Errorf("%w: heading level %d (must be between 1 and 6)", ErrInvalidBlock, h.Level)
	}
	return nil
}

func (h Heading) styleRefs() []string { return []string{h.styleName()} }

func (h Heading) styleName() string {
	if h.Style != "" {
		return h.Style
	}
	return HeadingStyle(h.Level)
}

// Paragraph is a run of wrapped text. An empty Style selects "BodyText".
// Embedded newlines force line breaks.
type Paragraph struct {
	Text  string
	Style string
}

func (Paragraph) Kind() string { return "paragraph" }

func (Paragraph) validate() error { return nil }

func (p Paragraph) styleRefs() []string { return []string{p.styleName()} }

func (p Paragraph) styleName() string {
	if p.Style != "" {
		return p.Style
	}
	return StyleBodyText
}

// Spacer is vertical whitespace in points.
type Spacer struct {
	Height float64
}

func (Spacer) Kind() string { return "spacer" }

func (s Spacer) validate() error {
	if s.Height < 0 {
		return fmt.Errorf("%w: negative spacer height %.2f", ErrInvalidBlock, s.Height)
	}
	return nil
}

func (Spacer) styleRefs() []string { return nil }

// PageBreak starts a new page unconditionally.
type PageBreak struct{}

func (PageBreak) Kind() string        { return "pagebreak" }
func (PageBreak) validate() error     { return nil }
func (PageBreak) styleRefs() []string { return nil }

// Table is a grid of text cells. Rows[0] is the header row unless NoHeader
// is set; it is repeated at the top of every page the table spans.
type Table struct {
	Rows [][]string
	// ColumnWidths in points. Nil derives widths from content. Widths that
	// overflow the content area are scaled down proportionally.
	ColumnWidths []float64
	HeaderStyle  string // default "TableHeader"
	CellStyle    string // default "TableCell"
	HeaderFill   *Color // default LightGrey
	NoHeader     bool
	// Padding inside each cell in points. Zero uses DefaultCellPadding.
	Padding float64
}

// DefaultCellPadding is the inner cell padding in points.
const DefaultCellPadding = 4.0

func (Table) Kind() string { return "table" }

func (t Table) validate() error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("%w: no rows", ErrInvalidTable)
	}
	cols := len(t.Rows[0])
	if cols == 0 {
		return fmt.Errorf("%w: row 0 has no cells", ErrInvalidTable)
	}
	for i, row := range t.Rows {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidTable, i, len(row), cols)
		}
	}
	if t.ColumnWidths != nil {
		if len(t.ColumnWidths) != cols {
			return fmt.Errorf("%w: %d column widths for %d columns", ErrInvalidTable, len(t.ColumnWidths), cols)
		}
		for i, w := range t.ColumnWidths {
			if w <= 0 {
				return fmt.Errorf("%w: column %d width %.2f must be positive", ErrInvalidTable, i, w)
			}
		}
	}
	if t.Padding < 0 {
		return fmt.Errorf("%w: negative padding", ErrInvalidTable)
	}
	return nil
}

func (t Table) styleRefs() []string {
	refs := []string{t.cellStyleName()}
	if t.hasHeader() {
		refs = append(refs, t.headerStyleName())
	}
	return refs
}

func (t Table) hasHeader() bool { return !t.NoHeader && len(t.Rows) > 1 }

func (t Table) headerStyleName() string {
	if t.HeaderStyle != "" {
		return t.HeaderStyle
	}
	return StyleTableHeader
}

func (t Table) cellStyleName() string {
	if t.CellStyle != "" {
		return t.CellStyle
	}
	return StyleTableCell
}

func (t Table) padding() float64 {
	if t.Padding > 0 {
		return t.Padding
	}
	return DefaultCellPadding
}

// List is a bulleted or numbered list. Each item wraps with a hanging indent.
// An empty Style selects "BodyText".
type List struct {
	Items   []string
	Ordered bool
	Style   string
}

func (List) Kind() string { return "list" }

func (l List) validate() error {
	if len(l.Items) == 0 {
		return fmt.Errorf("%w: list has no items", ErrInvalidBlock)
	}
	return nil
}

func (l List) styleRefs() []string { return []string{l.styleName()} }

func (l List) styleName() string {
	if l.Style != "" {
		return l.Style
	}
	return StyleBodyText
}

// marker returns the bullet or number printed before item i.
func (l List) marker(i int) string {
	if l.Ordered {
		return fmt.Sprintf("%d.", i+1)
	}
	return "•"
}

// Code is preformatted text drawn in a monospaced font. Language selects
// syntax colouring; unknown or empty languages are drawn in the style colour.
// An empty Style selects "Code".
type Code struct {
	Language string
	Text     string
	Style    string
}

func (Code) Kind() string { return "code" }

func (Code) validate() error { return nil }

func (c Code) styleRefs() []string { return []string{c.styleName()} }

func (c Code) styleName() string {
	if c.Style != "" {
		return c.Style
	}
	return StyleCode
}

// lines splits the code text, dropping one trailing newline and expanding tabs.
func (c Code) lines() []string {
	text := strings.TrimSuffix(strings.ReplaceAll(c.Text, "\r\n", "\n"), "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	return strings.Split(text, "\n")
}
