package docpdf

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
	PageSizeCustom = "custom"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in points.
const (
	MinMargin     = 0.0
	MaxMargin     = 216.0 // 3in
	DefaultMargin = 72.0  // 1in
)

// Custom page bounds in points.
const (
	MinPageDimension = 72.0
	MaxPageDimension = 14400.0 // PDF user-space limit
)

// pageSizes holds portrait dimensions in points.
var pageSizes = map[string][2]float64{
	PageSizeLetter: {612, 792},
	PageSizeA4:     {595.28, 841.89},
	PageSizeLegal:  {612, 1008},
}

// Margins are page margins in points.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// UniformMargins returns margins with the same value on every side.
func UniformMargins(v float64) Margins {
	return Margins{Top: v, Right: v, Bottom: v, Left: v}
}

// PageGeometry configures page dimensions. The zero value is not usable;
// start from DefaultPageGeometry.
type PageGeometry struct {
	Size        string  // "letter", "a4", "legal", "custom"
	Width       float64 // points, only for "custom"
	Height      float64 // points, only for "custom"
	Orientation string  // "portrait", "landscape"
	Margins     Margins

	// HeaderOffset is the distance from the page top to the top of the header
	// output. Zero places the header in the middle of the top margin.
	HeaderOffset float64
	// FooterOffset is the distance from the bottom margin edge down to the
	// top of the footer output. Zero places the footer in the middle of the
	// bottom margin.
	FooterOffset float64
}

// DefaultPageGeometry returns US letter, portrait, with one inch margins.
func DefaultPageGeometry() PageGeometry {
	return PageGeometry{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margins:     UniformMargins(DefaultMargin),
	}
}

// Validate checks sizes, orientation and margins.
// Does not mutate - uses case-insensitive comparison.
func (p PageGeometry) Validate() error {
	size := strings.ToLower(p.Size)
	switch {
	case size == PageSizeCustom:
		if p.Width < MinPageDimension || p.Width > MaxPageDimension ||
			p.Height < MinPageDimension || p.Height > MaxPageDimension {
			return fmt.Errorf("%w: custom %.1fx%.1f (each side must be between %.0f and %.0f points)",
				ErrInvalidPageSize, p.Width, p.Height, MinPageDimension, MaxPageDimension)
		}
	case !isValidPageSize(size):
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	m := p.Margins
	for _, side := range []struct {
		name string
		v    float64
	}{{"top", m.Top}, {"right", m.Right}, {"bottom", m.Bottom}, {"left", m.Left}} {
		if side.v < MinMargin || side.v > MaxMargin {
			return fmt.Errorf("%w: %s %.2f (must be between %.0f and %.0f)", ErrInvalidMargin, side.name, side.v, MinMargin, MaxMargin)
		}
	}
	if p.HeaderOffset < 0 || p.FooterOffset < 0 {
		return fmt.Errorf("%w: negative header or footer offset", ErrInvalidMargin)
	}

	w, h := p.Dimensions()
	if cw := w - m.Left - m.Right; cw < MinPageDimension/2 {
		return fmt.Errorf("%w: content width %.1f too small", ErrInvalidMargin, cw)
	}
	if ch := h - m.Top - m.Bottom; ch < MinPageDimension/2 {
		return fmt.Errorf("%w: content height %.1f too small", ErrInvalidMargin, ch)
	}
	return nil
}

// Dimensions returns the page width and height in points after applying
// the orientation.
func (p PageGeometry) Dimensions() (width, height float64) {
	size := strings.ToLower(p.Size)
	if size == PageSizeCustom {
		width, height = p.Width, p.Height
	} else {
		d := pageSizes[size]
		width, height = d[0], d[1]
	}
	landscape := strings.EqualFold(p.Orientation, OrientationLandscape)
	if landscape != (width > height) {
		width, height = height, width
	}
	return width, height
}

// ContentWidth returns the width between the left and right margins.
func (p PageGeometry) ContentWidth() float64 {
	w, _ := p.Dimensions()
	return w - p.Margins.Left - p.Margins.Right
}

// ContentHeight returns the height between the top and bottom margins.
func (p PageGeometry) ContentHeight() float64 {
	_, h := p.Dimensions()
	return h - p.Margins.Top - p.Margins.Bottom
}

// headerTop returns the y coordinate where header output starts.
func (p PageGeometry) headerTop() float64 {
	if p.HeaderOffset > 0 {
		return p.HeaderOffset
	}
	return p.Margins.Top / 2
}

// footerTop returns the y coordinate where footer output starts.
func (p PageGeometry) footerTop() float64 {
	_, h := p.Dimensions()
	if p.FooterOffset > 0 {
		return h - p.Margins.Bottom + p.FooterOffset
	}
	return h - p.Margins.Bottom/2
}

// checkHeaderBand reports header output that leaves the top margin, so it
// would overlap the body.
func (p PageGeometry) checkHeaderBand(items []Item) error {
	for _, it := range items {
		if bottom := it.Y + it.Height; bottom > p.Margins.Top+measureEpsilon {
			return fmt.Errorf("%w: header ends at %.1f but the top margin is %.1f",
				ErrInvalidMargin, bottom, p.Margins.Top)
		}
	}
	return nil
}

// checkFooterBand reports footer output that starts inside the body or ends
// past the page edge.
func (p PageGeometry) checkFooterBand(items []Item) error {
	_, h := p.Dimensions()
	bodyBottom := h - p.Margins.Bottom
	for _, it := range items {
		if it.Y < bodyBottom-measureEpsilon {
			return fmt.Errorf("%w: footer starts at %.1f, above the bottom margin at %.1f",
				ErrInvalidMargin, it.Y, bodyBottom)
		}
		if bottom := it.Y + it.Height; bottom > h+measureEpsilon {
			return fmt.Errorf("%w: footer ends at %.1f, past the page height %.1f (bottom margin %.1f)",
				ErrInvalidMargin, bottom, h, p.Margins.Bottom)
		}
	}
	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	_, ok := pageSizes[strings.ToLower(size)]
	return ok
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}
