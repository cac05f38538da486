package docpdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// codePadding is the horizontal inset of code text inside its background.
const codePadding = 4.0

// codeBackground fills behind Code blocks.
var codeBackground = Color{246, 248, 250}

// fragment is a drawable piece of a block placed on one page.
type fragment interface {
	draw(c *canvas, y float64)
}

// canvas wraps the gofpdf document being drawn.
type canvas struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	font fontKey
}

func (c *canvas) setStyle(st *StyleSpec) {
	k := fontKey{family: st.Family, style: st.Weight.fpdfStyle(), size: st.Size}
	if k != c.font {
		c.pdf.SetFont(k.family, k.style, k.size)
		c.font = k
	}
	c.setTextColor(st.Color)
}

func (c *canvas) setTextColor(col Color) {
	c.pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
}

func (c *canvas) width(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *canvas) text(x, baseline float64, s string) {
	if s == "" {
		return
	}
	c.pdf.Text(x, baseline, c.tr(s))
}

// baseline returns the text baseline for a line box starting at top.
func baseline(top, lineHeight, size float64) float64 {
	return top + (lineHeight-size)/2 + size*0.8
}

// drawLine draws l inside [x, x+w] using the style alignment.
func (c *canvas) drawLine(l line, st *StyleSpec, x, w, top float64) {
	base := baseline(top, st.LineHeight(), st.Size)
	switch st.Alignment {
	case AlignCenter:
		c.text(x+(w-l.width)/2, base, l.text)
	case AlignRight:
		c.text(x+w-l.width, base, l.text)
	case AlignJustify:
		if l.last || len(l.words) < 2 {
			c.text(x, base, l.text)
			return
		}
		used := 0.0
		for _, word := range l.words {
			used += c.width(word)
		}
		gap := (w - used) / float64(len(l.words)-1)
		cx := x
		for _, word := range l.words {
			c.text(cx, base, word)
			cx += c.width(word) + gap
		}
	default:
		c.text(x, base, l.text)
	}
}

// fragLine is a wrapped line plus list decoration.
type fragLine struct {
	line
	indent float64
	marker string
}

// textFrag draws headings, paragraphs and list items.
type textFrag struct {
	x, width float64
	st       *StyleSpec
	lines    []fragLine
}

func (f *textFrag) draw(c *canvas, y float64) {
	c.setStyle(f.st)
	lh := f.st.LineHeight()
	for i, l := range f.lines {
		top := y + float64(i)*lh
		if l.marker != "" {
			c.text(f.x, baseline(top, lh, f.st.Size), l.marker)
		}
		c.drawLine(l.line, f.st, f.x+l.indent, f.width-l.indent, top)
	}
}

// codeFrag draws coloured monospaced lines on a light background.
type codeFrag struct {
	x, width float64
	st       *StyleSpec
	lines    []codeLine
}

func (f *codeFrag) draw(c *canvas, y float64) {
	lh := f.st.LineHeight()
	c.pdf.SetFillColor(int(codeBackground.R), int(codeBackground.G), int(codeBackground.B))
	c.pdf.Rect(f.x, y, f.width, float64(len(f.lines))*lh, "F")
	c.setStyle(f.st)
	for i, l := range f.lines {
		base := baseline(y+float64(i)*lh, lh, f.st.Size)
		x := f.x + codePadding
		for _, span := range l {
			c.setTextColor(span.color)
			c.text(x, base, span.text)
			x += c.width(span.text)
		}
	}
}

// tableFrag draws a header row (if any) followed by a run of body rows.
type tableFrag struct {
	x      float64
	widths []float64
	pad    float64
	header *tableRow
	rows   []tableRow
	hs, cs *StyleSpec
	fill   Color
}

func (f *tableFrag) draw(c *canvas, y float64) {
	c.pdf.SetLineWidth(1)
	c.pdf.SetDrawColor(0, 0, 0)
	if f.header != nil {
		f.drawRow(c, *f.header, f.hs, y)
		y += f.header.height
	}
	for _, r := range f.rows {
		f.drawRow(c, r, f.cs, y)
		y += r.height
	}
}

func (f *tableFrag) drawRow(c *canvas, r tableRow, st *StyleSpec, y float64) {
	x := f.x
	for i, w := range f.widths {
		if r.header {
			c.pdf.SetFillColor(int(f.fill.R), int(f.fill.G), int(f.fill.B))
			c.pdf.Rect(x, y, w, r.height, "FD")
		} else {
			c.pdf.Rect(x, y, w, r.height, "D")
		}
		c.setStyle(st)
		lh := st.LineHeight()
		for j, l := range r.cells[i] {
			c.drawLine(l, st, x+f.pad, w-2*f.pad, y+f.pad+float64(j)*lh)
		}
		x += w
	}
}

// drawOptions tune the output document.
type drawOptions struct {
	compress bool
	now      time.Time
}

// draw renders a finished layout into a PDF byte buffer.
func draw(l *Layout, meta Metadata, opts drawOptions) (*bytes.Buffer, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: l.Width, Ht: l.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(opts.compress)
	applyMetadata(pdf, meta, opts.now)

	c := &canvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, page := range l.Pages {
		pdf.AddPage()
		c.font = fontKey{}
		for _, group := range [][]Item{page.Header, page.Body, page.Footer} {
			for _, it := range group {
				if it.frag != nil {
					it.frag.draw(c, it.Y)
				}
			}
		}
		if pdf.Err() {
			return nil, fmt.Errorf("%w: page %d: %v", ErrRender, page.Number, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return &buf, nil
}

func applyMetadata(pdf *gofpdf.Fpdf, meta Metadata, now time.Time) {
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	subject := meta.Subject
	if meta.ID != "" {
		subject = strings.TrimSpace(subject + " [" + meta.ID + "]")
	}
	if subject != "" {
		pdf.SetSubject(subject, true)
	}
	if len(meta.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
	}
	creator := meta.Creator
	if creator == "" {
		creator = "go-docpdf"
	}
	pdf.SetCreator(creator, true)

	created := meta.CreatedAt
	if created.IsZero() {
		created = now
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
}
