package source

import "regexp"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(\S(?:.*?\S)?)==`)
)

// preprocessMarkdown prepares Markdown for parsing. PDF output has no
// highlight mark, so ==text== keeps only its text.
func preprocessMarkdown(content string) string {
	content = normalizeLineEndings(content)
	content = stripHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

func stripHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, "$1")
}
