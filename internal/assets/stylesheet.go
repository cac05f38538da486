package assets

import (
	"fmt"
	"strings"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/yamlutil"
)

// Stylesheet is the file form of a set of style definitions.
type Stylesheet struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Styles      []StyleEntry `yaml:"styles"`
}

// StyleEntry is one style in a stylesheet or config file. Empty fields
// inherit from Base.
type StyleEntry struct {
	Name         string   `yaml:"name"`
	Base         string   `yaml:"base"`
	Font         string   `yaml:"font"`
	Size         float64  `yaml:"size"`
	Leading      float64  `yaml:"leading"`
	Weight       string   `yaml:"weight"`
	Align        string   `yaml:"align"`
	SpaceBefore  *float64 `yaml:"spaceBefore"`
	SpaceAfter   *float64 `yaml:"spaceAfter"`
	Color        string   `yaml:"color"`
	KeepWithNext *bool    `yaml:"keepWithNext"`
}

// ParseStylesheet decodes content strictly: unknown keys are errors.
func ParseStylesheet(content string) (*Stylesheet, error) {
	var s Stylesheet
	if err := yamlutil.UnmarshalStrict([]byte(content), &s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStylesheet, yamlutil.Describe(err))
	}
	return &s, nil
}

// Defs converts every entry to a docpdf.StyleDef.
func (s *Stylesheet) Defs() ([]docpdf.StyleDef, error) {
	return EntryDefs(s.Styles)
}

// EntryDefs converts entries to style definitions, naming the first bad one.
func EntryDefs(entries []StyleEntry) ([]docpdf.StyleDef, error) {
	defs := make([]docpdf.StyleDef, 0, len(entries))
	for i, e := range entries {
		d, err := e.Def()
		if err != nil {
			return nil, fmt.Errorf("style %d (%s): %w", i, e.Name, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// Def converts the entry. Enumerations and colours are parsed here; ranges
// are checked later by docpdf.NewRegistry.
func (e StyleEntry) Def() (docpdf.StyleDef, error) {
	if strings.TrimSpace(e.Name) == "" {
		return docpdf.StyleDef{}, fmt.Errorf("%w: style name is required", ErrInvalidStylesheet)
	}

	align, err := docpdf.ParseAlignment(e.Align)
	if err != nil {
		return docpdf.StyleDef{}, err
	}
	weight, err := docpdf.ParseFontWeight(e.Weight)
	if err != nil {
		return docpdf.StyleDef{}, err
	}

	d := docpdf.StyleDef{
		Name:         e.Name,
		Base:         e.Base,
		Alignment:    align,
		Weight:       weight,
		Family:       e.Font,
		Size:         e.Size,
		Leading:      e.Leading,
		SpaceBefore:  e.SpaceBefore,
		SpaceAfter:   e.SpaceAfter,
		KeepWithNext: e.KeepWithNext,
	}
	if e.Color != "" {
		c, err := docpdf.ParseHexColor(e.Color)
		if err != nil {
			return docpdf.StyleDef{}, err
		}
		d.Color = &c
	}
	return d, nil
}

// MergeDefs returns base with each overlay definition replacing the base
// definition of the same name, or appended when the name is new. Order is
// kept so later lookups stay deterministic.
func MergeDefs(base []docpdf.StyleDef, overlay ...docpdf.StyleDef) []docpdf.StyleDef {
	out := make([]docpdf.StyleDef, len(base), len(base)+len(overlay))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, d := range out {
		index[d.Name] = i
	}
	for _, d := range overlay {
		if i, ok := index[d.Name]; ok {
			out[i] = d
			continue
		}
		index[d.Name] = len(out)
		out = append(out, d)
	}
	return out
}
