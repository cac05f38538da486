// Package source turns input files into docpdf blocks.
//
// Supported formats, selected by file extension:
//   - .yaml, .yml, .json: document files listing blocks explicitly
//   - .md, .markdown: Markdown parsed with goldmark (GFM tables included)
//   - .docx: Word documents read with unioffice
//
// Table blocks in document files may read their rows from an .xlsx sheet
// instead of listing them inline.
//
// Loaders only build blocks. Style names are checked later, when the
// document is validated against a registry.
package source
