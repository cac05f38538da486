package docpdf

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// OverflowPolicy decides what happens to a table row taller than a page.
type OverflowPolicy int

const (
	// OverflowFail aborts the render with an *OverflowError.
	OverflowFail OverflowPolicy = iota
	// OverflowTruncate cuts the row's cells to the lines that fit and ends
	// them with TruncationMarker.
	OverflowTruncate
)

// TruncationMarker ends a cell cut by OverflowTruncate.
const TruncationMarker = "[...]"

func (o OverflowPolicy) String() string {
	switch o {
	case OverflowFail:
		return "fail"
	case OverflowTruncate:
		return "truncate"
	}
	return fmt.Sprintf("OverflowPolicy(%d)", int(o))
}

// ParseOverflowPolicy parses "fail" or "truncate".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return OverflowFail, nil
	case "truncate":
		return OverflowTruncate, nil
	}
	return OverflowFail, fmt.Errorf("invalid overflow policy %q (must be fail or truncate)", s)
}

// tableRow is a measured row.
type tableRow struct {
	cells  [][]line
	height float64
	header bool
}

func (r tableRow) text() string {
	parts := make([]string, len(r.cells))
	for i, c := range r.cells {
		words := make([]string, 0, len(c))
		for _, l := range c {
			if l.text != "" {
				words = append(words, l.text)
			}
		}
		parts[i] = strings.Join(words, " ")
	}
	return strings.Join(parts, " | ")
}

// columnWidths returns explicit widths scaled down to fit, or widths derived
// from the widest unwrapped cell of each column.
func columnWidths(m measurer, t Table, hs, cs *StyleSpec, available float64) []float64 {
	cols := len(t.Rows[0])
	widths := make([]float64, cols)
	pad := t.padding()

	if t.ColumnWidths != nil {
		copy(widths, t.ColumnWidths)
	} else {
		for r, row := range t.Rows {
			st := cs
			if r == 0 && t.hasHeader() {
				st = hs
			}
			for c, cell := range row {
				widest := 0.0
				for _, part := range strings.Split(cell, "\n") {
					widest = math.Max(widest, m.width(st, part))
				}
				widths[c] = math.Max(widths[c], widest+2*pad)
			}
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > available {
		scale := available / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

func measureRow(m measurer, cells []string, st *StyleSpec, widths []float64, pad float64) tableRow {
	row := tableRow{cells: make([][]line, len(cells))}
	maxLines := 1
	for c, cell := range cells {
		inner := math.Max(widths[c]-2*pad, 1)
		lines := wrapText(m, st, cell, inner)
		row.cells[c] = lines
		maxLines = max(maxLines, len(lines))
	}
	row.height = float64(maxLines)*st.LineHeight() + 2*pad
	return row
}

// truncateRow keeps the lines of each cell that fit in available height.
// It reports false when not even one line fits.
func truncateRow(r tableRow, st *StyleSpec, pad, available float64) (tableRow, bool) {
	lh := st.LineHeight()
	fit := int(math.Floor((available-2*pad)/lh + measureEpsilon))
	if fit < 1 {
		return r, false
	}
	out := tableRow{cells: make([][]line, len(r.cells)), header: r.header}
	for c, lines := range r.cells {
		if len(lines) <= fit {
			out.cells[c] = lines
			continue
		}
		kept := append([]line(nil), lines[:fit-1]...)
		kept = append(kept, line{text: TruncationMarker, words: []string{TruncationMarker}, last: true})
		out.cells[c] = kept
	}
	out.height = float64(fit)*lh + 2*pad
	return out, true
}

func (p *planner) planTable(i int, t Table) (*blockPlan, error) {
	cs, err := p.style(t.cellStyleName(), i)
	if err != nil {
		return nil, err
	}
	hs := cs
	if t.hasHeader() {
		if hs, err = p.style(t.headerStyleName(), i); err != nil {
			return nil, err
		}
	}

	pad := t.padding()
	widths := columnWidths(p.m, t, hs, cs, p.width)

	var header *tableRow
	bodyRows := t.Rows
	if t.hasHeader() {
		hr := measureRow(p.m, t.Rows[0], hs, widths, pad)
		hr.header = true
		header = &hr
		bodyRows = t.Rows[1:]
	}

	lead := 0.0
	if header != nil {
		lead = header.height
	}
	available := p.contentH - lead

	rows := make([]tableRow, len(bodyRows))
	units := make([]float64, len(bodyRows))
	for r, cells := range bodyRows {
		row := measureRow(p.m, cells, cs, widths, pad)
		rowIndex := r
		if header != nil {
			rowIndex++
		}
		if row.height > available+measureEpsilon {
			overflow := &OverflowError{Block: i, Row: rowIndex, Height: row.height, Available: available}
			if p.policy != OverflowTruncate {
				return nil, overflow
			}
			cut, ok := truncateRow(row, cs, pad, available)
			if !ok {
				return nil, overflow
			}
			p.truncated++
			p.log.Warn("table row truncated",
				zap.Int("block", i),
				zap.Int("row", rowIndex),
				zap.Float64("height", row.height),
				zap.Float64("available", available))
			row = cut
		}
		rows[r] = row
		units[r] = row.height
	}

	fill := LightGrey
	if t.HeaderFill != nil {
		fill = *t.HeaderFill
	}
	x := p.x
	return &blockPlan{
		kind:  t.Kind(),
		units: units,
		lead:  lead,
		build: func(from, to int) (fragment, []string) {
			part := rows[from:to]
			var texts []string
			if header != nil {
				texts = append(texts, header.text())
			}
			for _, r := range part {
				texts = append(texts, r.text())
			}
			return &tableFrag{x: x, widths: widths, pad: pad, header: header, rows: part, hs: hs, cs: cs, fill: fill}, texts
		},
	}, nil
}
