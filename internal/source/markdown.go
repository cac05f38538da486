package source

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	docpdf "github.com/alnah/go-docpdf"
)

// PageBreakComment forces a page break when it stands alone in Markdown.
const PageBreakComment = "<!-- pagebreak -->"

// ThematicBreakHeight is the spacer drawn for a Markdown "---".
const ThematicBreakHeight = 12.0

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	),
)

// LoadMarkdown reads a Markdown file. The first level-1 heading becomes
// the document title.
func LoadMarkdown(ctx context.Context, path string) (*Content, error) {
	data, err := readFile(path, MaxFileSize)
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(ctx, string(data))
}

// ParseMarkdown converts Markdown to blocks.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func ParseMarkdown(ctx context.Context, content string) (*Content, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan *Content, 1)
	go func() {
		src := []byte(preprocessMarkdown(content))
		doc := markdown.Parser().Parse(text.NewReader(src))
		c := &Content{}
		w := mdWalker{src: src, c: c}
		w.blocks(doc)
		done <- c
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case c := <-done:
		return c, nil
	}
}

type mdWalker struct {
	src []byte
	c   *Content
}

func (w *mdWalker) add(b docpdf.Block) {
	w.c.Blocks = append(w.c.Blocks, b)
}

// blocks converts the block children of n.
func (w *mdWalker) blocks(n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Heading:
			t := w.inline(node)
			if node.Level == 1 && w.c.Metadata.Title == "" {
				w.c.Metadata.Title = t
			}
			w.add(docpdf.Heading{Level: node.Level, Text: t})
		case *ast.Paragraph, *ast.TextBlock:
			if t := w.inline(node); t != "" {
				w.add(docpdf.Paragraph{Text: t})
			}
		case *ast.List:
			w.add(docpdf.List{Items: w.listItems(node, ""), Ordered: node.IsOrdered()})
		case *ast.FencedCodeBlock:
			w.add(docpdf.Code{Language: string(node.Language(w.src)), Text: w.lines(node)})
		case *ast.CodeBlock:
			w.add(docpdf.Code{Text: w.lines(node)})
		case *ast.ThematicBreak:
			w.add(docpdf.Spacer{Height: ThematicBreakHeight})
		case *ast.HTMLBlock:
			if strings.TrimSpace(w.lines(node)) == PageBreakComment {
				w.add(docpdf.PageBreak{})
			}
		case *east.Table:
			if t, ok := w.table(node); ok {
				w.add(t)
			}
		default:
			// Blockquotes and other containers contribute their content.
			w.blocks(child)
		}
	}
}

// listItems flattens a list. Nested items are appended to their parent
// item on new lines, indented and marked.
func (w *mdWalker) listItems(l *ast.List, indent string) []string {
	var items []string
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		var parts []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.List:
				for _, sub := range w.listItems(c, indent+"  ") {
					parts = append(parts, indent+"  - "+sub)
				}
			default:
				if t := w.inline(c); t != "" {
					parts = append(parts, t)
				}
			}
		}
		items = append(items, strings.Join(parts, "\n"))
	}
	return items
}

func (w *mdWalker) table(t *east.Table) (docpdf.Table, bool) {
	var rows [][]string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var row []string
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			row = append(row, w.inline(cell))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return docpdf.Table{}, false
	}
	return docpdf.Table{Rows: padRows(rows)}, true
}

// lines joins the raw source lines of a block.
func (w *mdWalker) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(w.src))
	}
	return b.String()
}

// inline returns the plain text of n's inline content. Soft breaks become
// spaces and hard breaks newlines.
func (w *mdWalker) inline(n ast.Node) string {
	var b strings.Builder
	w.writeInline(&b, n, false)
	return strings.TrimSpace(b.String())
}

// writeInline appends the text below n. Outside code spans, backslash
// escapes and entity references are resolved.
func (w *mdWalker) writeInline(b *strings.Builder, n ast.Node, raw bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			v := c.Segment.Value(w.src)
			if !raw && !c.IsRaw() {
				v = resolveText(v)
			}
			b.Write(v)
			switch {
			case c.HardLineBreak():
				b.WriteByte('\n')
			case c.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(w.src))
		case *ast.RawHTML:
			// dropped
		case *ast.CodeSpan:
			w.writeInline(b, c, true)
		default:
			w.writeInline(b, c, raw)
		}
	}
}

func resolveText(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}

