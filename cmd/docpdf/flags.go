package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags. Lengths are in points.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// decorationFlags holds header and footer flags.
type decorationFlags struct {
	headerText string
	footerText string
	noHeader   bool
	noFooter   bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title  string
	author string
	id     string
}

// styleFlags holds stylesheet and rendering flags.
type styleFlags struct {
	stylesheet string // name or path
	assetPath  string
	codeTheme  string
	overflow   string
	noCompress bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common     commonFlags
	output     string
	workers    int
	dryRun     bool
	page       pageFlags
	decoration decorationFlags
	document   documentFlags
	style      styleFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed logs and timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in points (all sides)")
}

// addDecorationFlags adds header and footer flags to a FlagSet.
func addDecorationFlags(fs *flag.FlagSet, f *decorationFlags) {
	fs.StringVar(&f.headerText, "header-text", "", "header text ({page}, {total}, {date}, {title}, {id})")
	fs.StringVar(&f.footerText, "footer-text", "", "footer text ({page}, {total}, {date}, {title}, {id})")
	fs.BoolVar(&f.noHeader, "no-header", false, "disable header")
	fs.BoolVar(&f.noFooter, "no-footer", false, "disable footer")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "doc-title", "", "document title (\"\" = from the source)")
	fs.StringVar(&f.author, "doc-author", "", "document author")
	fs.StringVar(&f.id, "doc-id", "", "document ID (\"auto\" = random UUID)")
}

// addStyleFlags adds stylesheet and rendering flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.stylesheet, "stylesheet", "", "stylesheet name or YAML file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.codeTheme, "code-theme", "", "code block colour theme")
	fs.StringVar(&f.overflow, "overflow", "", "oversized table rows: fail, truncate")
	fs.BoolVar(&f.noCompress, "no-compress", false, "write uncompressed PDF streams")
}

// newBuildFlagSet registers every build flag on a new FlagSet.
// Shared by parseBuildFlags and completion generation.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file, directory or s3:// location")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "paginate and report without writing")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addDecorationFlags(fs, &f.decoration)
	addDocumentFlags(fs, &f.document)
	addStyleFlags(fs, &f.style)

	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage goes to w on -h or on a parse error.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printBuildUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
