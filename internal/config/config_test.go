package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/assets"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Styles.Stylesheet != "" {
		t.Errorf("Styles.Stylesheet = %q, want empty", cfg.Styles.Stylesheet)
	}
	if cfg.Header.Enabled || cfg.Footer.Enabled {
		t.Error("decorations enabled by default, want disabled")
	}
	if cfg.OverflowPolicy() != docpdf.OverflowFail {
		t.Errorf("OverflowPolicy() = %v, want fail", cfg.OverflowPolicy())
	}
	if !cfg.Compress() {
		t.Error("Compress() = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit is invalid", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
		errText string
	}{
		{
			name:   "a4 landscape is valid",
			modify: func(c *Config) { c.Page.Size = "A4"; c.Page.Orientation = "landscape" },
		},
		{
			name:    "unknown page size",
			modify:  func(c *Config) { c.Page.Size = "tabloid" },
			wantErr: docpdf.ErrInvalidPageSize,
		},
		{
			name:    "margin too large",
			modify:  func(c *Config) { c.Page.Margin = 500 },
			wantErr: docpdf.ErrInvalidMargin,
		},
		{
			name:    "custom page without dimensions",
			modify:  func(c *Config) { c.Page.Size = "custom" },
			wantErr: docpdf.ErrInvalidPageSize,
		},
		{
			name:    "header text too long",
			modify:  func(c *Config) { c.Header.Text = strings.Repeat("x", MaxDecorationLength+1) },
			wantErr: ErrFieldTooLong,
			errText: "header.text",
		},
		{
			name: "too many keywords",
			modify: func(c *Config) {
				c.Document.Keywords = make([]string, MaxKeywords+1)
			},
			wantErr: ErrFieldTooLong,
			errText: "document.keywords",
		},
		{
			name:    "keyword too long",
			modify:  func(c *Config) { c.Document.Keywords = []string{"ok", strings.Repeat("k", MaxKeywordLength+1)} },
			wantErr: ErrFieldTooLong,
			errText: "document.keywords[1]",
		},
		{
			name:    "invalid overflow policy",
			modify:  func(c *Config) { c.Table.Overflow = "wrap" },
			wantErr: ErrInvalidValue,
			errText: "table.overflow",
		},
		{
			name:   "truncate overflow policy",
			modify: func(c *Config) { c.Table.Overflow = "Truncate" },
		},
		{
			name:    "unknown code theme",
			modify:  func(c *Config) { c.Code.Theme = "no-such-theme" },
			wantErr: ErrInvalidValue,
			errText: "code.theme",
		},
		{
			name:    "bad style override",
			modify:  func(c *Config) { c.Styles.Overrides = []assets.StyleEntry{{Name: "X", Weight: "heavy"}} },
			wantErr: docpdf.ErrInvalidWeight,
			errText: "styles.overrides",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.errText != "" && (err == nil || !strings.Contains(err.Error(), tt.errText)) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.errText)
			}
		})
	}
}

func TestPageConfig_Geometry(t *testing.T) {
	t.Parallel()

	t.Run("zero value is letter portrait", func(t *testing.T) {
		t.Parallel()

		g, err := PageConfig{}.Geometry()
		if err != nil {
			t.Fatalf("Geometry() error = %v", err)
		}
		if g.Size != docpdf.PageSizeLetter || g.Orientation != docpdf.OrientationPortrait {
			t.Errorf("Geometry() = %s %s, want letter portrait", g.Size, g.Orientation)
		}
		if g.Margins != docpdf.UniformMargins(docpdf.DefaultMargin) {
			t.Errorf("Margins = %+v, want uniform %v", g.Margins, docpdf.DefaultMargin)
		}
	})

	t.Run("per-side margins win over uniform margin", func(t *testing.T) {
		t.Parallel()

		g, err := PageConfig{Margin: 36, Margins: &MarginsConfig{Top: 90, Left: 50}}.Geometry()
		if err != nil {
			t.Fatalf("Geometry() error = %v", err)
		}
		want := docpdf.Margins{Top: 90, Right: 36, Bottom: 36, Left: 50}
		if g.Margins != want {
			t.Errorf("Margins = %+v, want %+v", g.Margins, want)
		}
	})

	t.Run("custom size and offsets", func(t *testing.T) {
		t.Parallel()

		g, err := PageConfig{Size: "Custom", Width: 300, Height: 400, Margin: 20, HeaderOffset: 5, FooterOffset: 6}.Geometry()
		if err != nil {
			t.Fatalf("Geometry() error = %v", err)
		}
		w, h := g.Dimensions()
		if w != 300 || h != 400 {
			t.Errorf("Dimensions() = %vx%v, want 300x400", w, h)
		}
		if g.HeaderOffset != 5 || g.FooterOffset != 6 {
			t.Errorf("offsets = %v/%v, want 5/6", g.HeaderOffset, g.FooterOffset)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "test.yaml", `page:
  size: a4
  margins:
    top: 90
styles:
  stylesheet: report
  overrides:
    - name: Callout
      base: BodyText
      weight: bold
header:
  enabled: true
  text: "{title}"
footer:
  enabled: true
  text: "Page {page} of {total}"
table:
  overflow: truncate
document:
  title: Platform Overview
  keywords: [platform, investors]
  id: auto
s3:
  region: eu-west-3
  pathStyle: true
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Size != "a4" || cfg.Page.Margins == nil || cfg.Page.Margins.Top != 90 {
			t.Errorf("Page = %+v", cfg.Page)
		}
		if cfg.Page.Margin != docpdf.DefaultMargin {
			t.Errorf("Page.Margin = %v, want default %v kept", cfg.Page.Margin, docpdf.DefaultMargin)
		}
		if cfg.Styles.Stylesheet != "report" || len(cfg.Styles.Overrides) != 1 {
			t.Errorf("Styles = %+v", cfg.Styles)
		}
		if !cfg.Header.Enabled || cfg.Footer.Text != "Page {page} of {total}" {
			t.Errorf("Header/Footer = %+v / %+v", cfg.Header, cfg.Footer)
		}
		if cfg.OverflowPolicy() != docpdf.OverflowTruncate {
			t.Errorf("OverflowPolicy() = %v, want truncate", cfg.OverflowPolicy())
		}
		if cfg.Document.ID != AutoID || len(cfg.Document.Keywords) != 2 {
			t.Errorf("Document = %+v", cfg.Document)
		}
		if cfg.Code.Theme != docpdf.DefaultCodeTheme {
			t.Errorf("Code.Theme = %q, want default kept", cfg.Code.Theme)
		}
		if !cfg.S3.PathStyle || cfg.S3.Region != "eu-west-3" {
			t.Errorf("S3 = %+v", cfg.S3)
		}
	})

	t.Run("compress can be disabled", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "test.yaml", "output:\n  compress: false\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Compress() {
			t.Error("Compress() = true, want false")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("nonexistent name returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("nonexistent-config-xyz")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
		if err != nil && !strings.Contains(err.Error(), "nonexistent-config-xyz.yml") {
			t.Errorf("error = %v, want tried paths listed", err)
		}
	})

	t.Run("unknown key returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "test.yaml", "page:\n  colour: red\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "test.yaml", "page: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation errors are returned", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "test.yaml", "page:\n  orientation: sideways\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, docpdf.ErrInvalidOrientation) {
			t.Errorf("error = %v, want ErrInvalidOrientation", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "house.yml", "document:\n  author: Docs Team\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("house")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Document.Author != "Docs Team" {
		t.Errorf("Document.Author = %q, want %q", cfg.Document.Author, "Docs Team")
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("house")
	if len(paths) < 2 || paths[0] != "house.yaml" || paths[1] != "house.yml" {
		t.Fatalf("SearchPaths() = %v, want local paths first", paths)
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, "go-docpdf") {
			t.Errorf("path %q not under go-docpdf", p)
		}
	}
}
