package main

import (
	"errors"
	"os"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/assets"
	"github.com/alnah/go-docpdf/internal/config"
	"github.com/alnah/go-docpdf/internal/dateutil"
	"github.com/alnah/go-docpdf/internal/hints"
	"github.com/alnah/go-docpdf/internal/sink"
	"github.com/alnah/go-docpdf/internal/source"
)

// Exit codes for the docpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All documents built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, styles or input documents
	ExitIO      = 3 // Missing input, unreadable source, failed write or upload
	ExitRender  = 4 // Pagination or PDF generation failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	if errors.Is(err, docpdf.ErrRender) ||
		errors.Is(err, docpdf.ErrRowOverflow) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docpdf.ErrWrite) ||
		errors.Is(err, source.ErrSourceRead) ||
		errors.Is(err, source.ErrSheet) ||
		errors.Is(err, sink.ErrS3Config) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoSupportedFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, docpdf.ErrEmptyDocument) ||
		errors.Is(err, docpdf.ErrInvalidBlock) ||
		errors.Is(err, docpdf.ErrInvalidTable) ||
		errors.Is(err, docpdf.ErrInvalidPageSize) ||
		errors.Is(err, docpdf.ErrInvalidOrientation) ||
		errors.Is(err, docpdf.ErrInvalidMargin) ||
		errors.Is(err, docpdf.ErrUnknownStyle) ||
		errors.Is(err, docpdf.ErrStyleCycle) ||
		errors.Is(err, docpdf.ErrUnsupportedFont) ||
		errors.Is(err, docpdf.ErrDuplicateStyle) ||
		errors.Is(err, docpdf.ErrInvalidFontSize) ||
		errors.Is(err, docpdf.ErrInvalidAlignment) ||
		errors.Is(err, docpdf.ErrInvalidWeight) ||
		errors.Is(err, assets.ErrStylesheetNotFound) ||
		errors.Is(err, assets.ErrInvalidStylesheet) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, source.ErrUnsupportedFormat) ||
		errors.Is(err, source.ErrInvalidDocument) ||
		errors.Is(err, source.ErrEmptyInput) ||
		errors.Is(err, sink.ErrInvalidTarget) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "" when none applies.
func hintFor(err error) string {
	var ioErr *docpdf.IOError
	switch {
	case errors.Is(err, docpdf.ErrRowOverflow):
		return hints.ForRowOverflow()
	case errors.Is(err, sink.ErrS3Config):
		return hints.ForS3Upload()
	case errors.Is(err, source.ErrUnsupportedFormat):
		return hints.ForUnsupportedInput(source.Extensions())
	case errors.As(err, &ioErr):
		switch ioErr.Op {
		case "upload":
			return hints.ForS3Upload()
		case "mkdir", "create":
			return hints.ForOutputDirectory()
		}
	}
	return ""
}
