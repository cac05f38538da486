package docpdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PageInfo describes the page being decorated by a header or footer.
type PageInfo struct {
	Number int // 1-based
	Total  int
}

// PageFunc returns the blocks drawn in a header or footer for one page.
// Only Heading, Paragraph and Spacer blocks are allowed. It is called once
// per page with the final total, and once with page 1 during validation.
type PageFunc func(PageInfo) []Block

// Metadata is written to the PDF information dictionary.
type Metadata struct {
	Title     string
	Author    string
	Subject   string
	Keywords  []string
	Creator   string
	ID        string    // document identifier, stored as the subject suffix when set
	CreatedAt time.Time // zero uses the assembler clock
}

// Document is the input of a render: ordered blocks, styles, geometry and
// optional page decorations.
type Document struct {
	Blocks   []Block
	Styles   *Registry
	Page     PageGeometry
	Header   PageFunc
	Footer   PageFunc
	Metadata Metadata
}

// Validate checks geometry, blocks and that every style reference resolves.
// Returns *UnknownStyleError for unresolved references.
func (d *Document) Validate() error {
	if d == nil || len(d.Blocks) == 0 {
		return ErrEmptyDocument
	}
	if d.Styles == nil {
		return ErrNilRegistry
	}
	if err := d.Page.Validate(); err != nil {
		return err
	}

	for i, b := range d.Blocks {
		if b == nil {
			return fmt.Errorf("%w: block %d is nil", ErrInvalidBlock, i)
		}
		if err := b.validate(); err != nil {
			return fmt.Errorf("block %d (%s): %w", i, b.Kind(), err)
		}
		for _, ref := range b.styleRefs() {
			if _, ok := d.Styles.Lookup(ref); !ok {
				return &UnknownStyleError{Name: ref, Block: i}
			}
		}
	}

	for _, fn := range []struct {
		name string
		f    PageFunc
	}{{"header", d.Header}, {"footer", d.Footer}} {
		if fn.f == nil {
			continue
		}
		if err := validateDecoration(fn.f(PageInfo{Number: 1, Total: 1}), d.Styles); err != nil {
			return fmt.Errorf("%s: %w", fn.name, err)
		}
	}
	return nil
}

// validateDecoration checks header or footer output.
func validateDecoration(blocks []Block, reg *Registry) error {
	for i, b := range blocks {
		switch b.(type) {
		case Heading, Paragraph, Spacer:
		case nil:
			return fmt.Errorf("%w: block %d is nil", ErrInvalidBlock, i)
		default:
			return fmt.Errorf("%w: %s not allowed in header or footer", ErrInvalidBlock, b.Kind())
		}
		if err := b.validate(); err != nil {
			return err
		}
		for _, ref := range b.styleRefs() {
			if _, ok := reg.Lookup(ref); !ok {
				return &UnknownStyleError{Name: ref, Block: -1}
			}
		}
	}
	return nil
}

// ExpandPageTokens replaces {page} and {total} in s.
func ExpandPageTokens(s string, p PageInfo) string {
	if !strings.Contains(s, "{") {
		return s
	}
	return strings.NewReplacer(
		"{page}", strconv.Itoa(p.Number),
		"{total}", strconv.Itoa(p.Total),
	).Replace(s)
}

// TextDecoration returns a PageFunc that draws one paragraph in style, with
// {page} and {total} expanded. An empty template yields no output.
func TextDecoration(style, template string) PageFunc {
	return func(p PageInfo) []Block {
		if template == "" {
			return nil
		}
		return []Block{Paragraph{Text: ExpandPageTokens(template, p), Style: style}}
	}
}

// Builder assembles a Document fluently. Errors are deferred to Build.
type Builder struct {
	doc Document
}

// NewBuilder starts a document using reg and the default page geometry.
func NewBuilder(reg *Registry) *Builder {
	return &Builder{doc: Document{Styles: reg, Page: DefaultPageGeometry()}}
}

// Page sets the page geometry.
func (b *Builder) Page(g PageGeometry) *Builder {
	b.doc.Page = g
	return b
}

// Meta sets the document metadata.
func (b *Builder) Meta(m Metadata) *Builder {
	b.doc.Metadata = m
	return b
}

// Header sets the header function.
func (b *Builder) Header(fn PageFunc) *Builder {
	b.doc.Header = fn
	return b
}

// Footer sets the footer function.
func (b *Builder) Footer(fn PageFunc) *Builder {
	b.doc.Footer = fn
	return b
}

// Add appends arbitrary blocks.
func (b *Builder) Add(blocks ...Block) *Builder {
	b.doc.Blocks = append(b.doc.Blocks, blocks...)
	return b
}

// Heading appends a heading using the default style for level.
func (b *Builder) Heading(level int, text string) *Builder {
	return b.Add(Heading{Level: level, Text: text})
}

// Title appends a level 1 heading in the Title style.
func (b *Builder) Title(text string) *Builder {
	return b.Add(Heading{Level: 1, Text: text, Style: StyleTitle})
}

// Paragraph appends body text.
func (b *Builder) Paragraph(text string) *Builder {
	return b.Add(Paragraph{Text: text})
}

// Styled appends a paragraph in the named style.
func (b *Builder) Styled(style, text string) *Builder {
	return b.Add(Paragraph{Text: text, Style: style})
}

// Spacer appends vertical space in points.
func (b *Builder) Spacer(height float64) *Builder {
	return b.Add(Spacer{Height: height})
}

// PageBreak appends a forced page break.
func (b *Builder) PageBreak() *Builder {
	return b.Add(PageBreak{})
}

// Table appends a table whose first row is the header.
func (b *Builder) Table(rows [][]string, widths ...float64) *Builder {
	t := Table{Rows: rows}
	if len(widths) > 0 {
		t.ColumnWidths = widths
	}
	return b.Add(t)
}

// Bullets appends an unordered list.
func (b *Builder) Bullets(items ...string) *Builder {
	return b.Add(List{Items: items})
}

// Numbered appends an ordered list.
func (b *Builder) Numbered(items ...string) *Builder {
	return b.Add(List{Items: items, Ordered: true})
}

// Code appends a code block.
func (b *Builder) Code(language, text string) *Builder {
	return b.Add(Code{Language: language, Text: text})
}

// Build validates and returns the document.
func (b *Builder) Build() (*Document, error) {
	doc := b.doc
	doc.Blocks = append([]Block(nil), b.doc.Blocks...)
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
