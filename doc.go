// Package docpdf assembles content blocks and a style registry into a
// paginated PDF with a repeating header, footer and page numbers.
//
// # Quick Start
//
// Build a document, then render it:
//
//	doc, err := docpdf.NewBuilder(docpdf.DefaultRegistry()).
//	    Title("Project Documentation").
//	    Heading(2, "Overview").
//	    Paragraph("The platform connects founders with investors.").
//	    Table([][]string{{"Layer", "Technology"}, {"Backend", "Go"}}).
//	    Footer(docpdf.TextDecoration(docpdf.StyleFooter, "Page {page} of {total}")).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, _ := os.Create("output.pdf")
//	defer f.Close()
//	if err := docpdf.Render(doc, f); err != nil {
//	    log.Fatal(err)
//	}
//
// # Rendering Pipeline
//
// A render runs in three stages:
//
//  1. Validation of page geometry, blocks and every style reference
//  2. Layout: blocks are measured with core font metrics and assigned to
//     pages with a vertical cursor (keep-together, line-wise splitting of
//     blocks taller than a page, repeated table header rows)
//  3. Drawing via gofpdf into an in-memory buffer, written to the sink in
//     one call
//
// Layout is deterministic: the same Document always yields the same page
// count and block-to-page assignment. Use Assembler.Layout for dry runs.
//
// # Styles
//
// Styles are declared as StyleDef values with an optional Base. NewRegistry
// flattens inheritance once, so every StyleSpec in a Registry is complete:
//
//	reg, err := docpdf.NewRegistry(append(docpdf.DefaultStyles(),
//	    docpdf.StyleDef{Name: "Note", Base: "BodyText", Weight: docpdf.WeightItalic},
//	)...)
//
// Only the PDF core fonts are available: Helvetica (alias Arial), Times and
// Courier, each in normal, bold, italic and bold-italic. Text is encoded as
// cp1252: characters outside it are drawn as "." and logged at Warn level
// with the block index, while the Layout keeps the original text.
//
// # Configuration
//
// Use functional options to customize the assembler:
//
//	asm := docpdf.NewAssembler(
//	    docpdf.WithLogger(logger),
//	    docpdf.WithOverflowPolicy(docpdf.OverflowTruncate),
//	    docpdf.WithCodeTheme("monokailight"),
//	)
//	res, err := asm.RenderFile(ctx, doc, "out/report.pdf")
//
// # Errors
//
// Failures are reported with sentinel errors checked via errors.Is, plus
// three typed errors: *UnknownStyleError (validation), *OverflowError (a
// table row taller than a page) and *IOError (sink failure).
package docpdf
