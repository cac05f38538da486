package docpdf

import (
	"strings"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

// measureEpsilon absorbs float rounding in fit checks.
const measureEpsilon = 1e-6

// measurer reports string widths in points for a style.
type measurer interface {
	width(st *StyleSpec, s string) float64
}

// fontMeasurer uses gofpdf core font metrics. It owns a page-less gofpdf
// instance so layout never touches the document being drawn.
type fontMeasurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	cur fontKey
}

type fontKey struct {
	family string
	style  string
	size   float64
}

func newFontMeasurer() *fontMeasurer {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", SizeStr: "Letter"})
	return &fontMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *fontMeasurer) width(st *StyleSpec, s string) float64 {
	k := fontKey{family: st.Family, style: st.Weight.fpdfStyle(), size: st.Size}
	if k != m.cur {
		m.pdf.SetFont(k.family, k.style, k.size)
		m.cur = k
	}
	return m.pdf.GetStringWidth(m.tr(s))
}

// unmapped returns the distinct runes of s that the cp1252 core font
// encoding cannot represent. gofpdf draws each of them as ".".
func unmapped(tr func(string) string, s string) []rune {
	var out []rune
	seen := map[rune]bool{}
	for _, r := range s {
		if r < utf8.RuneSelf || seen[r] {
			continue
		}
		if tr(string(r)) == "." {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func (m *fontMeasurer) err() error {
	return m.pdf.Error()
}

// line is one wrapped line of text.
type line struct {
	text  string
	words []string
	width float64
	// last marks the final line of a hard line; justified text leaves it
	// ragged.
	last bool
}

// wrapText breaks text into lines no wider than maxWidth. Newlines force a
// break. Words wider than maxWidth are split between characters.
func wrapText(m measurer, st *StyleSpec, text string, maxWidth float64) []line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []line
	for _, hard := range strings.Split(text, "\n") {
		out = append(out, wrapHardLine(m, st, hard, maxWidth)...)
	}
	return out
}

func wrapHardLine(m measurer, st *StyleSpec, text string, maxWidth float64) []line {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []line{{last: true}}
	}

	var (
		out []line
		cur []string
	)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		s := strings.Join(cur, " ")
		out = append(out, line{text: s, words: cur, width: m.width(st, s)})
		cur = nil
	}

	for _, w := range words {
		if m.width(st, w) > maxWidth+measureEpsilon {
			flush()
			pieces := splitWord(m, st, w, maxWidth)
			for _, p := range pieces[:len(pieces)-1] {
				out = append(out, line{text: p, words: []string{p}, width: m.width(st, p)})
			}
			cur = []string{pieces[len(pieces)-1]}
			continue
		}
		candidate := append(append([]string(nil), cur...), w)
		if len(cur) > 0 && m.width(st, strings.Join(candidate, " ")) > maxWidth+measureEpsilon {
			flush()
			cur = []string{w}
			continue
		}
		cur = candidate
	}
	flush()
	out[len(out)-1].last = true
	return out
}

// splitWord cuts w into pieces that each fit maxWidth. Every piece holds at
// least one rune so progress is guaranteed.
func splitWord(m measurer, st *StyleSpec, w string, maxWidth float64) []string {
	var pieces []string
	for w != "" {
		n := 0
		for i := range w {
			if i == 0 {
				continue
			}
			if m.width(st, w[:i]) > maxWidth+measureEpsilon {
				break
			}
			n = i
		}
		if m.width(st, w) <= maxWidth+measureEpsilon {
			n = len(w)
		}
		if n == 0 {
			_, size := utf8.DecodeRuneInString(w)
			n = size
		}
		pieces = append(pieces, w[:n])
		w = w[n:]
	}
	return pieces
}
