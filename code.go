package docpdf

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeTheme is the chroma style used for Code blocks.
const DefaultCodeTheme = "github"

// codeSpan is a run of code text in one colour.
type codeSpan struct {
	text  string
	color Color
}

// codeLine is one drawn line of a Code block.
type codeLine []codeSpan

func (l codeLine) text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

// highlight tokenises code and returns coloured lines. Unknown languages
// and tokeniser failures fall back to plain text in the style colour.
func highlight(c Code, theme string, st *StyleSpec) []codeLine {
	plain := func() []codeLine {
		raw := c.lines()
		out := make([]codeLine, len(raw))
		for i, l := range raw {
			out[i] = codeLine{{text: l, color: st.Color}}
		}
		return out
	}

	if c.Language == "" {
		return plain()
	}
	lexer := lexers.Get(c.Language)
	if lexer == nil {
		return plain()
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	raw := c.lines()
	it, err := lexer.Tokenise(nil, strings.Join(raw, "\n"))
	if err != nil {
		return plain()
	}

	var out []codeLine
	for _, toks := range chroma.SplitTokensIntoLines(it.Tokens()) {
		var cl codeLine
		for _, tok := range toks {
			v := strings.TrimRight(tok.Value, "\n")
			if v == "" {
				continue
			}
			col := st.Color
			if e := style.Get(tok.Type); e.Colour.IsSet() {
				col = Color{R: e.Colour.Red(), G: e.Colour.Green(), B: e.Colour.Blue()}
			}
			cl = append(cl, codeSpan{text: v, color: col})
		}
		out = append(out, cl)
	}
	// Lexers append a newline, which yields one empty trailing line.
	for len(out) > len(raw) && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// wrapCodeLine splits a line into chunks of at most maxChars runes, keeping
// span colours.
func wrapCodeLine(l codeLine, maxChars int) []codeLine {
	if maxChars < 1 {
		maxChars = 1
	}
	if utf8.RuneCountInString(l.text()) <= maxChars {
		return []codeLine{l}
	}
	var (
		out  []codeLine
		cur  codeLine
		used int
	)
	for _, span := range l {
		rest := span.text
		for rest != "" {
			room := maxChars - used
			n := 0
			cut := len(rest)
			for i := range rest {
				if n == room {
					cut = i
					break
				}
				n++
			}
			cur = append(cur, codeSpan{text: rest[:cut], color: span.color})
			used += n
			rest = rest[cut:]
			if used == maxChars {
				out = append(out, cur)
				cur, used = nil, 0
			}
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
