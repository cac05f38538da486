package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/assets"
	"github.com/alnah/go-docpdf/internal/fileutil"
	"github.com/alnah/go-docpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits for multi-tenant safety.
const (
	MaxPathLength        = 4096 // Directories and asset base path
	MaxPageSizeLength    = 10   // "letter", "a4", "legal", "custom"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxStyleNameLength   = 64   // Stylesheet and style names
	MaxDecorationLength  = 500  // Header/footer templates
	MaxTitleLength       = 200  // Document title
	MaxAuthorLength      = 100  // Document author
	MaxSubjectLength     = 200  // Document subject
	MaxKeywordLength     = 50   // One keyword
	MaxKeywords          = 20
	MaxIDLength          = 64   // "auto" or a caller-provided identifier
	MaxThemeLength       = 32   // chroma style name
	MaxRegionLength      = 32   // "eu-west-3"
	MaxEndpointLength    = 2048 // Custom S3 endpoint URL
	MaxStyleOverrides    = 100
)

// AutoID asks the CLI to generate a random document identifier.
const AutoID = "auto"

// Config holds all configuration for document builds.
type Config struct {
	Input    InputConfig      `yaml:"input"`
	Output   OutputConfig     `yaml:"output"`
	Page     PageConfig       `yaml:"page"`
	Styles   StylesConfig     `yaml:"styles"`
	Header   DecorationConfig `yaml:"header"`
	Footer   DecorationConfig `yaml:"footer"`
	Table    TableConfig      `yaml:"table"`
	Code     CodeConfig       `yaml:"code"`
	Document DocumentConfig   `yaml:"document"`
	Assets   AssetsConfig     `yaml:"assets"`
	S3       S3Config         `yaml:"s3"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Compress   *bool  `yaml:"compress"`   // nil = compressed
}

// PageConfig defines PDF page settings. Lengths are in points.
type PageConfig struct {
	Size         string         `yaml:"size"`        // "letter", "a4", "legal", "custom" (default: "letter")
	Orientation  string         `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Width        float64        `yaml:"width"`       // custom only
	Height       float64        `yaml:"height"`      // custom only
	Margin       float64        `yaml:"margin"`      // all sides (default: 72)
	Margins      *MarginsConfig `yaml:"margins"`     // per side, wins over margin
	HeaderOffset float64        `yaml:"headerOffset"`
	FooterOffset float64        `yaml:"footerOffset"`
}

// MarginsConfig sets margins per side. Zero sides keep the uniform margin.
type MarginsConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// StylesConfig selects a stylesheet and adds inline style definitions.
type StylesConfig struct {
	Stylesheet string              `yaml:"stylesheet"` // Name or path (empty = built-in styles)
	Overrides  []assets.StyleEntry `yaml:"overrides"`
}

// DecorationConfig defines a repeating header or footer line.
// Text accepts {page}, {total}, {date}, {date:FORMAT}, {title} and {id}.
type DecorationConfig struct {
	Enabled bool   `yaml:"enabled"`
	Text    string `yaml:"text"`
	Style   string `yaml:"style"` // default "Header" or "Footer"
}

// TableConfig defines table pagination options.
type TableConfig struct {
	Overflow string `yaml:"overflow"` // "fail" or "truncate" (default: "fail")
}

// CodeConfig defines code block options.
type CodeConfig struct {
	Theme string `yaml:"theme"` // chroma style (default: "github")
}

// DocumentConfig defines PDF metadata.
type DocumentConfig struct {
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author"`
	Subject  string   `yaml:"subject"`
	Keywords []string `yaml:"keywords"`
	ID       string   `yaml:"id"` // "auto" = random UUID per document
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// S3Config defines options for s3:// outputs. Credentials come from the
// standard AWS chain.
type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`  // S3-compatible stores
	PathStyle bool   `yaml:"pathStyle"` // required by most S3-compatible stores
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"styles.stylesheet", c.Styles.Stylesheet, MaxPathLength},
		{"header.text", c.Header.Text, MaxDecorationLength},
		{"header.style", c.Header.Style, MaxStyleNameLength},
		{"footer.text", c.Footer.Text, MaxDecorationLength},
		{"footer.style", c.Footer.Style, MaxStyleNameLength},
		{"code.theme", c.Code.Theme, MaxThemeLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxAuthorLength},
		{"document.subject", c.Document.Subject, MaxSubjectLength},
		{"document.id", c.Document.ID, MaxIDLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"s3.region", c.S3.Region, MaxRegionLength},
		{"s3.endpoint", c.S3.Endpoint, MaxEndpointLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(c.Document.Keywords) > MaxKeywords {
		return fmt.Errorf("%w: document.keywords (%d entries, max %d)", ErrFieldTooLong, len(c.Document.Keywords), MaxKeywords)
	}
	for i, k := range c.Document.Keywords {
		if err := validateFieldLength(fmt.Sprintf("document.keywords[%d]", i), k, MaxKeywordLength); err != nil {
			return err
		}
	}

	if _, err := c.Page.Geometry(); err != nil {
		return fmt.Errorf("page: %w", err)
	}

	if len(c.Styles.Overrides) > MaxStyleOverrides {
		return fmt.Errorf("%w: styles.overrides (%d entries, max %d)", ErrFieldTooLong, len(c.Styles.Overrides), MaxStyleOverrides)
	}
	if _, err := assets.EntryDefs(c.Styles.Overrides); err != nil {
		return fmt.Errorf("styles.overrides: %w", err)
	}

	if _, err := docpdf.ParseOverflowPolicy(c.Table.Overflow); err != nil {
		return fmt.Errorf("%w: table.overflow: %v", ErrInvalidValue, err)
	}

	if c.Code.Theme != "" && !isKnownTheme(c.Code.Theme) {
		return fmt.Errorf("%w: code.theme: unknown style %q", ErrInvalidValue, c.Code.Theme)
	}

	return nil
}

// Geometry converts the page section to docpdf geometry and validates it.
func (p PageConfig) Geometry() (docpdf.PageGeometry, error) {
	g := docpdf.DefaultPageGeometry()
	if p.Size != "" {
		g.Size = strings.ToLower(p.Size)
	}
	if p.Orientation != "" {
		g.Orientation = strings.ToLower(p.Orientation)
	}
	g.Width = p.Width
	g.Height = p.Height
	if p.Margin > 0 {
		g.Margins = docpdf.UniformMargins(p.Margin)
	}
	if m := p.Margins; m != nil {
		for _, side := range []struct {
			dst *float64
			v   float64
		}{{&g.Margins.Top, m.Top}, {&g.Margins.Right, m.Right}, {&g.Margins.Bottom, m.Bottom}, {&g.Margins.Left, m.Left}} {
			if side.v > 0 {
				*side.dst = side.v
			}
		}
	}
	g.HeaderOffset = p.HeaderOffset
	g.FooterOffset = p.FooterOffset

	if err := g.Validate(); err != nil {
		return docpdf.PageGeometry{}, err
	}
	return g, nil
}

// OverflowPolicy returns the parsed table.overflow value.
func (c *Config) OverflowPolicy() docpdf.OverflowPolicy {
	p, _ := docpdf.ParseOverflowPolicy(c.Table.Overflow)
	return p
}

// Compress reports whether PDF streams should be compressed.
func (c *Config) Compress() bool {
	return c.Output.Compress == nil || *c.Output.Compress
}

func isKnownTheme(name string) bool {
	for _, n := range styles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration with decorations disabled
// and built-in styles.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: ""},
		Page: PageConfig{
			Size:        docpdf.PageSizeLetter,
			Orientation: docpdf.OrientationPortrait,
			Margin:      docpdf.DefaultMargin,
		},
		Styles: StylesConfig{Stylesheet: ""},
		Header: DecorationConfig{Enabled: false},
		Footer: DecorationConfig{Enabled: false},
		Table:  TableConfig{Overflow: docpdf.OverflowFail.String()},
		Code:   CodeConfig{Theme: docpdf.DefaultCodeTheme},
		Assets: AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigParse, yamlutil.Describe(err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-docpdf", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-docpdf/
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
