package docpdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Alignment controls horizontal placement of text lines.
// AlignInherit is only meaningful in a StyleDef.
type Alignment int

const (
	AlignInherit Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

var alignmentNames = map[Alignment]string{
	AlignInherit: "",
	AlignLeft:    "left",
	AlignCenter:  "center",
	AlignRight:   "right",
	AlignJustify: "justify",
}

func (a Alignment) String() string {
	if s, ok := alignmentNames[a]; ok {
		return s
	}
	return "Alignment(" + strconv.Itoa(int(a)) + ")"
}

// ParseAlignment parses "left", "center", "right" or "justify"
// (case-insensitive). An empty string yields AlignInherit.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AlignInherit, nil
	case "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justify":
		return AlignJustify, nil
	}
	return AlignInherit, fmt.Errorf("%w: %q (must be left, center, right, or justify)", ErrInvalidAlignment, s)
}

// FontWeight selects the face of a font family.
// WeightInherit is only meaningful in a StyleDef.
type FontWeight int

const (
	WeightInherit FontWeight = iota
	WeightNormal
	WeightBold
	WeightItalic
	WeightBoldItalic
)

var weightNames = map[FontWeight]string{
	WeightInherit:    "",
	WeightNormal:     "normal",
	WeightBold:       "bold",
	WeightItalic:     "italic",
	WeightBoldItalic: "bold-italic",
}

func (w FontWeight) String() string {
	if s, ok := weightNames[w]; ok {
		return s
	}
	return "FontWeight(" + strconv.Itoa(int(w)) + ")"
}

// fpdfStyle returns the gofpdf style string for the weight.
func (w FontWeight) fpdfStyle() string {
	switch w {
	case WeightBold:
		return "B"
	case WeightItalic:
		return "I"
	case WeightBoldItalic:
		return "BI"
	}
	return ""
}

// ParseFontWeight parses "normal", "bold", "italic" or "bold-italic".
// An empty string yields WeightInherit.
func ParseFontWeight(s string) (FontWeight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return WeightInherit, nil
	case "normal", "regular":
		return WeightNormal, nil
	case "bold":
		return WeightBold, nil
	case "italic", "oblique":
		return WeightItalic, nil
	case "bold-italic", "bolditalic", "bold italic":
		return WeightBoldItalic, nil
	}
	return WeightInherit, fmt.Errorf("%w: %q (must be normal, bold, italic, or bold-italic)", ErrInvalidWeight, s)
}

// Color is an RGB colour.
type Color struct {
	R, G, B uint8
}

// Common colours.
var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	LightGrey = Color{211, 211, 211}
)

// ParseHexColor parses "#rgb" or "#rrggbb" (the leading # is optional).
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Style defaults applied to definitions without a base.
const (
	DefaultFontFamily = "Helvetica"
	DefaultFontSize   = 10.0
	DefaultLeading    = 1.2
	MaxFontSize       = 200.0
)

// coreFamilies maps accepted family names to the PDF core font gofpdf knows.
var coreFamilies = map[string]string{
	"helvetica": "Helvetica",
	"arial":     "Helvetica",
	"times":     "Times",
	"courier":   "Courier",
}

// StyleDef is the input form of a style. Zero values (and nil pointers)
// inherit from Base, or from the package defaults when Base is empty.
type StyleDef struct {
	Name         string
	Base         string
	Alignment    Alignment
	Weight       FontWeight
	Family       string
	Size         float64
	Leading      float64 // line height as a multiple of Size
	SpaceBefore  *float64
	SpaceAfter   *float64
	Color        *Color
	KeepWithNext *bool
}

// StyleSpec is a fully materialised style. Specs returned by a Registry are
// shared and must not be modified.
type StyleSpec struct {
	Name         string
	Base         string
	Alignment    Alignment
	Weight       FontWeight
	Family       string
	Size         float64
	Leading      float64
	SpaceBefore  float64
	SpaceAfter   float64
	Color        Color
	KeepWithNext bool
}

// LineHeight returns the distance between consecutive baselines.
func (s *StyleSpec) LineHeight() float64 {
	return s.Size * s.Leading
}

// Pt returns a pointer to v, for optional StyleDef fields.
func Pt(v float64) *float64 { return &v }

// Bool returns a pointer to v, for optional StyleDef fields.
func Bool(v bool) *bool { return &v }

// Registry maps style names to materialised styles. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	styles map[string]*StyleSpec
}

// NewRegistry resolves defs into a registry. Bases may be declared in any
// order; every inherited attribute is copied into the derived spec here so
// lookups never walk an inheritance chain.
func NewRegistry(defs ...StyleDef) (*Registry, error) {
	return (&Registry{}).Extend(defs...)
}

// MustRegistry is like NewRegistry but panics on error. Intended for
// package-level variables and tests.
func MustRegistry(defs ...StyleDef) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Extend returns a new registry holding r's styles plus defs. A def may
// replace an existing style of the same name and may use any style of r as
// its base. r itself is left unchanged.
func (r *Registry) Extend(defs ...StyleDef) (*Registry, error) {
	pending := make(map[string]StyleDef, len(defs))
	for _, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: style with empty name", ErrInvalidBlock)
		}
		if _, dup := pending[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStyle, name)
		}
		d.Name = name
		pending[name] = d
	}

	out := &Registry{styles: make(map[string]*StyleSpec, len(r.styles)+len(defs))}
	for name, spec := range r.styles {
		if _, overridden := pending[name]; !overridden {
			out.styles[name] = spec
		}
	}

	res := resolver{pending: pending, out: out, visiting: make(map[string]bool)}
	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := res.resolve(name); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Lookup returns the style registered under name.
func (r *Registry) Lookup(name string) (*StyleSpec, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.styles[name]
	return s, ok
}

// Names returns the registered style names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered styles.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.styles)
}

type resolver struct {
	pending  map[string]StyleDef
	out      *Registry
	visiting map[string]bool
}

func (rs *resolver) resolve(name string) (*StyleSpec, error) {
	if spec, ok := rs.out.styles[name]; ok {
		return spec, nil
	}
	def, ok := rs.pending[name]
	if !ok {
		return nil, &UnknownStyleError{Name: name, Block: -1}
	}
	if rs.visiting[name] {
		return nil, fmt.Errorf("%w: %q", ErrStyleCycle, name)
	}
	rs.visiting[name] = true
	defer delete(rs.visiting, name)

	spec := StyleSpec{
		Family:    DefaultFontFamily,
		Size:      DefaultFontSize,
		Leading:   DefaultLeading,
		Alignment: AlignLeft,
		Weight:    WeightNormal,
		Color:     Black,
	}
	if def.Base != "" {
		if def.Base == name {
			return nil, fmt.Errorf("%w: %q", ErrStyleCycle, name)
		}
		base, err := rs.resolve(def.Base)
		if err != nil {
			return nil, err
		}
		spec = *base
	}
	spec.Name = name
	spec.Base = def.Base

	if err := def.applyTo(&spec); err != nil {
		return nil, fmt.Errorf("style %q: %w", name, err)
	}
	rs.out.styles[name] = &spec
	return &spec, nil
}

// applyTo overlays the explicitly set fields of d onto spec.
func (d StyleDef) applyTo(spec *StyleSpec) error {
	if d.Alignment != AlignInherit {
		if _, ok := alignmentNames[d.Alignment]; !ok {
			return fmt.Errorf("%w: %v", ErrInvalidAlignment, d.Alignment)
		}
		spec.Alignment = d.Alignment
	}
	if d.Weight != WeightInherit {
		if _, ok := weightNames[d.Weight]; !ok {
			return fmt.Errorf("%w: %v", ErrInvalidWeight, d.Weight)
		}
		spec.Weight = d.Weight
	}
	if d.Family != "" {
		family, ok := coreFamilies[strings.ToLower(d.Family)]
		if !ok {
			return fmt.Errorf("%w: %q (must be helvetica, arial, times, or courier)", ErrUnsupportedFont, d.Family)
		}
		spec.Family = family
	}
	if d.Size != 0 {
		if d.Size < 0 || d.Size > MaxFontSize {
			return fmt.Errorf("%w: %.2f (must be between 0 and %.0f)", ErrInvalidFontSize, d.Size, MaxFontSize)
		}
		spec.Size = d.Size
	}
	if d.Leading != 0 {
		if d.Leading < 0.5 || d.Leading > 4 {
			return fmt.Errorf("%w: leading %.2f (must be between 0.5 and 4)", ErrInvalidFontSize, d.Leading)
		}
		spec.Leading = d.Leading
	}
	if d.SpaceBefore != nil {
		if *d.SpaceBefore < 0 {
			return fmt.Errorf("%w: negative spaceBefore", ErrInvalidBlock)
		}
		spec.SpaceBefore = *d.SpaceBefore
	}
	if d.SpaceAfter != nil {
		if *d.SpaceAfter < 0 {
			return fmt.Errorf("%w: negative spaceAfter", ErrInvalidBlock)
		}
		spec.SpaceAfter = *d.SpaceAfter
	}
	if d.Color != nil {
		spec.Color = *d.Color
	}
	if d.KeepWithNext != nil {
		spec.KeepWithNext = *d.KeepWithNext
	}
	return nil
}

// Well-known style names used as block defaults.
const (
	StyleNormal         = "Normal"
	StyleBodyText       = "BodyText"
	StyleBodyJustify    = "BodyJustify"
	StyleTitle          = "Title"
	StyleHeading1Center = "Heading1Center"
	StyleCode           = "Code"
	StyleHeader         = "Header"
	StyleFooter         = "Footer"
	StyleTableHeader    = "TableHeader"
	StyleTableCell      = "TableCell"
)

// HeadingStyle returns the default style name for a heading level.
func HeadingStyle(level int) string {
	return "Heading" + strconv.Itoa(level)
}

// DefaultStyles returns the built-in sample stylesheet.
func DefaultStyles() []StyleDef {
	return []StyleDef{
		{Name: StyleNormal, Family: "Helvetica", Size: 10, Leading: 1.2},
		{Name: StyleBodyText, Base: StyleNormal, SpaceBefore: Pt(6)},
		{Name: StyleBodyJustify, Base: StyleBodyText, Alignment: AlignJustify, SpaceAfter: Pt(6)},
		{Name: StyleTitle, Base: StyleNormal, Weight: WeightBold, Size: 18, Leading: 1.2, Alignment: AlignCenter, SpaceAfter: Pt(6), KeepWithNext: Bool(true)},
		{Name: "Heading1", Base: StyleNormal, Weight: WeightBold, Size: 18, Leading: 1.2, SpaceAfter: Pt(6), KeepWithNext: Bool(true)},
		{Name: "Heading2", Base: StyleNormal, Weight: WeightBold, Size: 14, Leading: 1.25, SpaceBefore: Pt(12), SpaceAfter: Pt(6), KeepWithNext: Bool(true)},
		{Name: "Heading3", Base: StyleNormal, Weight: WeightBoldItalic, Size: 12, Leading: 1.2, SpaceBefore: Pt(12), SpaceAfter: Pt(6), KeepWithNext: Bool(true)},
		{Name: "Heading4", Base: "Heading3", Weight: WeightBold, Size: 10, SpaceBefore: Pt(10), SpaceAfter: Pt(4)},
		{Name: "Heading5", Base: "Heading4", Size: 9},
		{Name: "Heading6", Base: "Heading4", Size: 7},
		{Name: StyleHeading1Center, Base: "Heading1", Alignment: AlignCenter, SpaceAfter: Pt(12)},
		{Name: StyleCode, Base: StyleNormal, Family: "Courier", Size: 8.5, SpaceBefore: Pt(4), SpaceAfter: Pt(4)},
		{Name: StyleHeader, Base: StyleNormal, Weight: WeightBold, Size: 12, Alignment: AlignCenter},
		{Name: StyleFooter, Base: StyleNormal, Weight: WeightItalic, Size: 8, Alignment: AlignCenter},
		{Name: StyleTableHeader, Base: StyleNormal, Weight: WeightBold, Alignment: AlignCenter},
		{Name: StyleTableCell, Base: StyleNormal, Alignment: AlignCenter},
	}
}

// DefaultRegistry builds a registry from DefaultStyles.
func DefaultRegistry() *Registry {
	return MustRegistry(DefaultStyles()...)
}
