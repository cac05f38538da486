package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"

	docpdf "github.com/alnah/go-docpdf"
)

// LoadDocx reads a Word document. Paragraph styles Title and Heading1 to
// Heading6 become headings, numbered or list-styled paragraphs become list
// items, tables keep their cell text, and explicit page breaks are kept.
// Character formatting is dropped.
func LoadDocx(ctx context.Context, path string) (*Content, error) {
	data, err := readFile(path, MaxFileSize)
	if err != nil {
		return nil, err
	}
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceRead, path, err)
	}
	return ConvertDocx(ctx, doc)
}

// ConvertDocx walks the body in order and converts paragraphs and tables.
func ConvertDocx(ctx context.Context, doc *document.Document) (*Content, error) {
	c := &Content{}
	c.Metadata.Title = doc.CoreProperties.Title()

	// ---- Build lookup maps from underlying XML ptr -> high-level wrapper ----
	pMap := make(map[*wml.CT_P]document.Paragraph)
	for _, p := range doc.Paragraphs() {
		pMap[p.X()] = p
	}
	tMap := make(map[*wml.CT_Tbl]document.Table)
	for _, tbl := range doc.Tables() {
		tMap[tbl.X()] = tbl
	}

	body := doc.X().Body
	if body == nil {
		return c, nil
	}

	w := docxWalker{c: c}
	for _, bl := range body.EG_BlockLevelElts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, cb := range bl.EG_ContentBlockContent {
			for _, cp := range cb.P {
				if p, ok := pMap[cp]; ok {
					w.paragraph(p)
				}
			}
			for _, ct := range cb.Tbl {
				if t, ok := tMap[ct]; ok {
					w.table(t)
				}
			}
		}
	}
	w.flushList()
	return c, nil
}

type docxWalker struct {
	c       *Content
	items   []string
	ordered bool
}

func (w *docxWalker) add(b docpdf.Block) {
	w.flushList()
	w.c.Blocks = append(w.c.Blocks, b)
}

// flushList emits pending list items as one List block.
func (w *docxWalker) flushList() {
	if len(w.items) == 0 {
		return
	}
	w.c.Blocks = append(w.c.Blocks, docpdf.List{Items: w.items, Ordered: w.ordered})
	w.items = nil
}

// paragraph emits the blocks of one Word paragraph. Page break runs split
// it, so a break placed before the text lands before the block.
func (w *docxWalker) paragraph(p document.Paragraph) {
	if ppr := p.X().PPr; ppr != nil && isOn(ppr.PageBreakBefore) {
		w.add(docpdf.PageBreak{})
	}
	for i, text := range paragraphParts(p) {
		if i > 0 {
			w.add(docpdf.PageBreak{})
		}
		if text != "" {
			w.text(p, text)
		}
	}
}

func (w *docxWalker) text(p document.Paragraph, text string) {
	style := p.Style()
	switch level := headingLevel(style); {
	case style == "Title":
		if w.c.Metadata.Title == "" {
			w.c.Metadata.Title = text
		}
		w.add(docpdf.Heading{Level: level, Text: text, Style: docpdf.StyleTitle})
	case level > 0:
		w.add(docpdf.Heading{Level: level, Text: text})
	case isListParagraph(p, style):
		ordered := strings.Contains(style, "Number")
		if len(w.items) > 0 && ordered != w.ordered {
			w.flushList()
		}
		w.ordered = ordered
		w.items = append(w.items, text)
	default:
		w.add(docpdf.Paragraph{Text: text})
	}
}

func (w *docxWalker) table(t document.Table) {
	var rows [][]string
	for _, row := range t.Rows() {
		var cells []string
		for _, cell := range row.Cells() {
			var parts []string
			for _, p := range cell.Paragraphs() {
				if s := strings.Join(paragraphParts(p), " "); strings.TrimSpace(s) != "" {
					parts = append(parts, strings.TrimSpace(s))
				}
			}
			cells = append(cells, strings.Join(parts, "\n"))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}
	w.add(docpdf.Table{Rows: padRows(rows)})
}

// paragraphParts returns the trimmed run text of p split at page breaks.
// A paragraph without breaks yields one part; a leading or trailing break
// yields an empty first or last part.
func paragraphParts(p document.Paragraph) []string {
	var parts []string
	var b strings.Builder
	for _, r := range p.Runs() {
		for _, ic := range r.X().EG_RunInnerContent {
			switch {
			case ic.T != nil:
				b.WriteString(ic.T.Content)
			case ic.Tab != nil:
				b.WriteByte('\t')
			case ic.Br != nil && ic.Br.TypeAttr == wml.ST_BrTypePage:
				parts = append(parts, strings.TrimSpace(b.String()))
				b.Reset()
			}
		}
	}
	return append(parts, strings.TrimSpace(b.String()))
}

// isOn reports whether a Word on/off property is present and not switched off.
func isOn(v *wml.CT_OnOff) bool {
	if v == nil {
		return false
	}
	if v.ValAttr == nil {
		return true
	}
	if v.ValAttr.Bool != nil {
		return *v.ValAttr.Bool
	}
	return v.ValAttr.ST_OnOff1 != sharedTypes.ST_OnOff1Off
}

// headingLevel maps Word paragraph style IDs to heading levels.
func headingLevel(style string) int {
	if style == "Title" {
		return 1
	}
	if rest, ok := strings.CutPrefix(style, "Heading"); ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
		return int(rest[0] - '0')
	}
	return 0
}

func isListParagraph(p document.Paragraph, style string) bool {
	if strings.HasPrefix(style, "List") {
		return true
	}
	ppr := p.X().PPr
	return ppr != nil && ppr.NumPr != nil
}
