package docpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrEmptyDocument = errors.New("document has no blocks")
	ErrNilRegistry   = errors.New("document has no style registry")
	ErrInvalidBlock  = errors.New("invalid block")
	ErrInvalidTable  = errors.New("invalid table")
	ErrRender        = errors.New("PDF rendering failed")

	// Style registry errors.
	ErrUnknownStyle     = errors.New("unknown style")
	ErrDuplicateStyle   = errors.New("duplicate style name")
	ErrStyleCycle       = errors.New("style inheritance cycle")
	ErrUnsupportedFont  = errors.New("unsupported font family")
	ErrInvalidFontSize  = errors.New("invalid font size")
	ErrInvalidAlignment = errors.New("invalid alignment")
	ErrInvalidWeight    = errors.New("invalid font weight")

	// Page geometry errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Pagination errors.
	ErrRowOverflow = errors.New("table row taller than one page")

	// Sink errors.
	ErrWrite = errors.New("failed to write PDF")
)

// UnknownStyleError reports a style reference that does not resolve in the
// registry. Block is the index of the offending block, or -1 when the
// reference comes from a style definition's base or from header/footer output.
type UnknownStyleError struct {
	Name  string
	Block int
}

func (e *UnknownStyleError) Error() string {
	if e.Block < 0 {
		return fmt.Sprintf("%v: %q", ErrUnknownStyle, e.Name)
	}
	return fmt.Sprintf("%v: %q (block %d)", ErrUnknownStyle, e.Name, e.Block)
}

// Is makes errors.Is(err, ErrUnknownStyle) match.
func (e *UnknownStyleError) Is(target error) bool {
	return target == ErrUnknownStyle
}

// OverflowError reports a table row that cannot fit on an empty page.
type OverflowError struct {
	Block     int
	Row       int
	Height    float64
	Available float64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: block %d row %d needs %.1fpt, page has %.1fpt",
		ErrRowOverflow, e.Block, e.Row, e.Height, e.Available)
}

// Is makes errors.Is(err, ErrRowOverflow) match.
func (e *OverflowError) Is(target error) bool {
	return target == ErrRowOverflow
}

// IOError wraps a failure of the destination sink.
type IOError struct {
	Op   string // "write", "create", "rename", "upload"
	Path string // empty for plain io.Writer sinks
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s: %v", ErrWrite, e.Op, e.Err)
	}
	return fmt.Sprintf("%v: %s %s: %v", ErrWrite, e.Op, e.Path, e.Err)
}

// Is makes errors.Is(err, ErrWrite) match.
func (e *IOError) Is(target error) bool {
	return target == ErrWrite
}

func (e *IOError) Unwrap() error {
	return e.Err
}
