package docpdf

import (
	"context"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
)

// Layout is the result of pagination: every block fragment with its page
// and vertical position. It is deterministic for a given Document.
type Layout struct {
	Width  float64 // page width in points
	Height float64 // page height in points
	Pages  []PageLayout
	// BlockPages lists, for each block index, the 1-based pages it occupies.
	BlockPages [][]int
	// Truncated counts table rows cut under OverflowTruncate.
	Truncated int
}

// PageCount returns the number of pages.
func (l *Layout) PageCount() int {
	return len(l.Pages)
}

// PageLayout holds the items drawn on one page.
type PageLayout struct {
	Number int
	Header []Item
	Body   []Item
	Footer []Item
}

// Item is one placed fragment.
type Item struct {
	Block  int // index into Document.Blocks, -1 for header and footer output
	Kind   string
	Y      float64 // top edge, in points from the page top
	Height float64
	// Lines holds the visible text: one entry per text line, or one entry
	// per table row with cells separated by " | ".
	Lines []string

	frag fragment
}

// blockPlan is a measured block, ready for pagination.
type blockPlan struct {
	kind         string
	spaceBefore  float64
	spaceAfter   float64
	keepWithNext bool
	keepTogether bool

	units []float64 // heights of the indivisible pieces, in order
	lead  float64   // height repeated at the top of every fragment
	build func(from, to int) (fragment, []string)

	spacer    float64
	isSpacer  bool
	pageBreak bool
}

func (pl *blockPlan) height() float64 {
	h := pl.lead
	for _, u := range pl.units {
		h += u
	}
	return h
}

// firstHeight is the minimum height the block needs to start on a page.
func (pl *blockPlan) firstHeight() float64 {
	if len(pl.units) == 0 {
		return 0
	}
	return pl.lead + pl.units[0]
}

// planner measures blocks against the content area.
type planner struct {
	m        measurer
	reg      *Registry
	x        float64
	width    float64
	contentH float64
	theme    string
	policy   OverflowPolicy
	log      *zap.Logger
	// tr is the encoder used to draw; nil skips the encoding check.
	tr func(string) string

	truncated int
}

func (p *planner) style(name string, block int) (*StyleSpec, error) {
	st, ok := p.reg.Lookup(name)
	if !ok {
		return nil, &UnknownStyleError{Name: name, Block: block}
	}
	return st, nil
}

func (p *planner) plan(i int, b Block) (*blockPlan, error) {
	switch b := b.(type) {
	case Heading:
		return p.planText(i, b.Kind(), b.styleName(), b.Text)
	case Paragraph:
		return p.planText(i, b.Kind(), b.styleName(), b.Text)
	case Spacer:
		return &blockPlan{kind: b.Kind(), isSpacer: true, spacer: math.Min(b.Height, p.contentH)}, nil
	case PageBreak:
		return &blockPlan{kind: b.Kind(), pageBreak: true}, nil
	case List:
		return p.planList(i, b)
	case Code:
		return p.planCode(i, b)
	case Table:
		return p.planTable(i, b)
	}
	return nil, fmt.Errorf("%w: block %d has unsupported type %T", ErrInvalidBlock, i, b)
}

// checkEncoding warns about characters the core fonts cannot draw. The
// layout keeps the original text; the PDF shows "." in their place.
func (p *planner) checkEncoding(i int, b Block) {
	if p.tr == nil {
		return
	}
	var missing []rune
	for _, s := range blockText(b) {
		for _, r := range unmapped(p.tr, s) {
			if !slices.Contains(missing, r) {
				missing = append(missing, r)
			}
		}
	}
	if len(missing) == 0 {
		return
	}
	p.log.Warn("characters not in core font encoding",
		zap.Int("block", i),
		zap.String("kind", b.Kind()),
		zap.String("runes", string(missing)))
}

// blockText lists the strings a block draws.
func blockText(b Block) []string {
	switch b := b.(type) {
	case Heading:
		return []string{b.Text}
	case Paragraph:
		return []string{b.Text}
	case Code:
		return []string{b.Text}
	case List:
		return b.Items
	case Table:
		var out []string
		for _, row := range b.Rows {
			out = append(out, row...)
		}
		return out
	}
	return nil
}

func (p *planner) planText(i int, kind, styleName, text string) (*blockPlan, error) {
	st, err := p.style(styleName, i)
	if err != nil {
		return nil, err
	}
	lines := wrapText(p.m, st, text, p.width)
	if len(lines) == 0 {
		lines = []line{{last: true}}
	}
	flines := make([]fragLine, len(lines))
	for j, l := range lines {
		flines[j] = fragLine{line: l}
	}
	return p.textPlan(kind, st, flines), nil
}

func (p *planner) planList(i int, l List) (*blockPlan, error) {
	st, err := p.style(l.styleName(), i)
	if err != nil {
		return nil, err
	}
	indent := 0.0
	for j := range l.Items {
		indent = math.Max(indent, p.m.width(st, l.marker(j)))
	}
	indent += st.Size * 0.6

	var flines []fragLine
	for j, item := range l.Items {
		lines := wrapText(p.m, st, item, p.width-indent)
		if len(lines) == 0 {
			lines = []line{{last: true}}
		}
		for k, ln := range lines {
			fl := fragLine{line: ln, indent: indent}
			if k == 0 {
				fl.marker = l.marker(j)
			}
			flines = append(flines, fl)
		}
	}
	return p.textPlan(l.Kind(), st, flines), nil
}

func (p *planner) textPlan(kind string, st *StyleSpec, flines []fragLine) *blockPlan {
	lh := st.LineHeight()
	units := make([]float64, len(flines))
	for j := range units {
		units[j] = lh
	}
	x, width := p.x, p.width
	return &blockPlan{
		kind:         kind,
		spaceBefore:  st.SpaceBefore,
		spaceAfter:   st.SpaceAfter,
		keepWithNext: st.KeepWithNext,
		keepTogether: true,
		units:        units,
		build: func(from, to int) (fragment, []string) {
			part := flines[from:to]
			texts := make([]string, len(part))
			for j, fl := range part {
				texts[j] = fl.text
				if fl.marker != "" {
					texts[j] = fl.marker + " " + fl.text
				}
			}
			return &textFrag{x: x, width: width, st: st, lines: part}, texts
		},
	}
}

func (p *planner) planCode(i int, c Code) (*blockPlan, error) {
	st, err := p.style(c.styleName(), i)
	if err != nil {
		return nil, err
	}
	charW := p.m.width(st, "M")
	maxChars := 1
	if charW > 0 {
		maxChars = int((p.width - 2*codePadding) / charW)
	}

	var lines []codeLine
	for _, l := range highlight(c, p.theme, st) {
		lines = append(lines, wrapCodeLine(l, maxChars)...)
	}
	if len(lines) == 0 {
		lines = []codeLine{nil}
	}

	lh := st.LineHeight()
	units := make([]float64, len(lines))
	for j := range units {
		units[j] = lh
	}
	x, width := p.x, p.width
	return &blockPlan{
		kind:         c.Kind(),
		spaceBefore:  st.SpaceBefore,
		spaceAfter:   st.SpaceAfter,
		keepWithNext: st.KeepWithNext,
		keepTogether: true,
		units:        units,
		build: func(from, to int) (fragment, []string) {
			part := lines[from:to]
			texts := make([]string, len(part))
			for j, l := range part {
				texts[j] = l.text()
			}
			return &codeFrag{x: x, width: width, st: st, lines: part}, texts
		},
	}, nil
}

// pager places planned blocks onto pages with a vertical cursor.
type pager struct {
	top, bottom float64
	pages       []PageLayout
	y           float64
	atTop       bool
	blockPages  [][]int
}

func newPager(top, bottom float64, blocks int) *pager {
	p := &pager{top: top, bottom: bottom, blockPages: make([][]int, blocks)}
	p.newPage()
	return p
}

func (p *pager) newPage() {
	p.pages = append(p.pages, PageLayout{Number: len(p.pages) + 1})
	p.y = p.top
	p.atTop = true
}

func (p *pager) remaining() float64     { return p.bottom - p.y }
func (p *pager) contentHeight() float64 { return p.bottom - p.top }

func (p *pager) mark(block int) {
	n := len(p.pages)
	bp := p.blockPages[block]
	if len(bp) == 0 || bp[len(bp)-1] != n {
		p.blockPages[block] = append(bp, n)
	}
}

func (p *pager) place(it Item) {
	it.Y = p.y
	cur := &p.pages[len(p.pages)-1]
	cur.Body = append(cur.Body, it)
	p.y += it.Height
	p.atTop = false
	p.mark(it.Block)
}

// skip advances the cursor without breaking the page.
func (p *pager) skip(h float64) {
	p.y = math.Min(p.y+h, p.bottom)
}

func (p *pager) add(i int, pl, next *blockPlan) {
	switch {
	case pl.pageBreak:
		p.mark(i)
		p.newPage()
	case pl.isSpacer:
		if pl.spacer > p.remaining()+measureEpsilon {
			p.newPage()
		}
		p.place(Item{Block: i, Kind: pl.kind, Height: pl.spacer})
	default:
		p.flow(i, pl, next)
	}
}

func (p *pager) flow(i int, pl, next *blockPlan) {
	sb := pl.spaceBefore
	if p.atTop {
		sb = 0
	}
	total := pl.height()

	if sb+total <= p.remaining()+measureEpsilon {
		if pl.keepWithNext && next != nil && !p.atTop {
			first := next.firstHeight()
			if first > 0 &&
				sb+total+next.spaceBefore+first > p.remaining()+measureEpsilon &&
				total+next.spaceBefore+first <= p.contentHeight()+measureEpsilon {
				p.newPage()
				sb = 0
			}
		}
		p.emit(i, pl, 0, len(pl.units), sb)
		p.skip(pl.spaceAfter)
		return
	}

	if pl.keepTogether && !p.atTop && total <= p.contentHeight()+measureEpsilon {
		p.newPage()
		p.emit(i, pl, 0, len(pl.units), 0)
		p.skip(pl.spaceAfter)
		return
	}

	for from := 0; from < len(pl.units); {
		avail := p.remaining() - sb
		h := pl.lead
		to := from
		for to < len(pl.units) && h+pl.units[to] <= avail+measureEpsilon {
			h += pl.units[to]
			to++
		}
		if to == from {
			if !p.atTop {
				p.newPage()
				sb = 0
				continue
			}
			// Taller than an empty page; drawn past the bottom margin.
			to = from + 1
		}
		p.emit(i, pl, from, to, sb)
		sb = 0
		from = to
		if from < len(pl.units) {
			p.newPage()
		}
	}
	p.skip(pl.spaceAfter)
}

func (p *pager) emit(i int, pl *blockPlan, from, to int, sb float64) {
	p.y += sb
	h := pl.lead
	for _, u := range pl.units[from:to] {
		h += u
	}
	frag, lines := pl.build(from, to)
	p.place(Item{Block: i, Kind: pl.kind, Height: h, Lines: lines, frag: frag})
}

// layout runs both measuring and pagination.
func (a *Assembler) layout(ctx context.Context, doc *Document) (*Layout, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	g := doc.Page
	w, h := g.Dimensions()
	m := newFontMeasurer()
	pl := &planner{
		m:        m,
		reg:      doc.Styles,
		x:        g.Margins.Left,
		width:    g.ContentWidth(),
		contentH: g.ContentHeight(),
		theme:    a.codeTheme,
		policy:   a.overflow,
		log:      a.logger,
		tr:       m.tr,
	}

	plans := make([]*blockPlan, len(doc.Blocks))
	for i, b := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bp, err := pl.plan(i, b)
		if err != nil {
			return nil, err
		}
		pl.checkEncoding(i, b)
		plans[i] = bp
	}

	pg := newPager(g.Margins.Top, h-g.Margins.Bottom, len(plans))
	for i, bp := range plans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var next *blockPlan
		if i+1 < len(plans) {
			next = plans[i+1]
		}
		pg.add(i, bp, next)
	}

	out := &Layout{
		Width:      w,
		Height:     h,
		Pages:      pg.pages,
		BlockPages: pg.blockPages,
		Truncated:  pl.truncated,
	}

	total := len(out.Pages)
	for n := range out.Pages {
		info := PageInfo{Number: n + 1, Total: total}
		var err error
		if doc.Header != nil {
			out.Pages[n].Header, err = pl.decoration(doc.Header(info), g.headerTop())
			if err == nil {
				err = g.checkHeaderBand(out.Pages[n].Header)
			}
			if err != nil {
				return nil, fmt.Errorf("header page %d: %w", n+1, err)
			}
		}
		if doc.Footer != nil {
			out.Pages[n].Footer, err = pl.decoration(doc.Footer(info), g.footerTop())
			if err == nil {
				err = g.checkFooterBand(out.Pages[n].Footer)
			}
			if err != nil {
				return nil, fmt.Errorf("footer page %d: %w", n+1, err)
			}
		}
	}

	if err := m.err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	a.logger.Debug("layout complete",
		zap.Int("blocks", len(doc.Blocks)),
		zap.Int("pages", total),
		zap.Int("truncated_rows", out.Truncated))
	return out, nil
}

// decoration stacks header or footer blocks downward from top. The output
// is not paginated and does not move the body cursor.
func (p *planner) decoration(blocks []Block, top float64) ([]Item, error) {
	if err := validateDecoration(blocks, p.reg); err != nil {
		return nil, err
	}
	var items []Item
	y := top
	for j, b := range blocks {
		if s, ok := b.(Spacer); ok {
			y += s.Height
			continue
		}
		bp, err := p.plan(-1, b)
		if err != nil {
			return nil, err
		}
		if j > 0 {
			y += bp.spaceBefore
		}
		frag, lines := bp.build(0, len(bp.units))
		h := bp.height()
		items = append(items, Item{Block: -1, Kind: bp.kind, Y: y, Height: h, Lines: lines, frag: frag})
		y += h + bp.spaceAfter
	}
	return items, nil
}
