package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-docpdf/internal/config"
)

// envPrefix marks the variables read by docpdf.
const envPrefix = "DOCPDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // DOCPDF_CONFIG: config file name or path
	Stylesheet string // DOCPDF_STYLESHEET: stylesheet name or path
	Workers    int    // DOCPDF_WORKERS: parallel workers

	// Tier 2 - I/O
	InputDir  string // DOCPDF_INPUT_DIR: default input directory
	OutputDir string // DOCPDF_OUTPUT_DIR: default output directory or s3:// prefix
	AssetPath string // DOCPDF_ASSET_PATH: custom asset directory

	// Tier 3 - Layout and metadata
	PageSize    string // DOCPDF_PAGE_SIZE: letter, a4, legal
	Orientation string // DOCPDF_ORIENTATION: portrait, landscape
	Overflow    string // DOCPDF_OVERFLOW: fail, truncate
	CodeTheme   string // DOCPDF_CODE_THEME: chroma style
	HeaderText  string // DOCPDF_HEADER_TEXT: header text
	FooterText  string // DOCPDF_FOOTER_TEXT: footer text
	DocAuthor   string // DOCPDF_DOC_AUTHOR: document author
	DocID       string // DOCPDF_DOC_ID: document ID or "auto"

	// Tier 4 - S3 output
	S3Region    string // DOCPDF_S3_REGION
	S3Endpoint  string // DOCPDF_S3_ENDPOINT
	S3PathStyle bool   // DOCPDF_S3_PATH_STYLE
}

// knownEnvVars lists valid DOCPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCPDF_CONFIG":        true,
	"DOCPDF_STYLESHEET":    true,
	"DOCPDF_WORKERS":       true,
	"DOCPDF_INPUT_DIR":     true,
	"DOCPDF_OUTPUT_DIR":    true,
	"DOCPDF_ASSET_PATH":    true,
	"DOCPDF_PAGE_SIZE":     true,
	"DOCPDF_ORIENTATION":   true,
	"DOCPDF_OVERFLOW":      true,
	"DOCPDF_CODE_THEME":    true,
	"DOCPDF_HEADER_TEXT":   true,
	"DOCPDF_FOOTER_TEXT":   true,
	"DOCPDF_DOC_AUTHOR":    true,
	"DOCPDF_DOC_ID":        true,
	"DOCPDF_S3_REGION":     true,
	"DOCPDF_S3_ENDPOINT":   true,
	"DOCPDF_S3_PATH_STYLE": true,
}

// readDotEnv parses the .env file at path. A missing file yields no values;
// any other path, a directory included, must parse.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vars, nil
}

// envLookup returns a getter that prefers the process environment and falls
// back to .env values, matching godotenv's no-override rule.
func envLookup(getenv func(string) string, dotenv map[string]string) func(string) string {
	return func(name string) string {
		if v := getenv(name); v != "" {
			return v
		}
		return dotenv[name]
	}
}

// loadEnvConfig reads configuration through getenv.
// Returns a struct with all recognized DOCPDF_* values.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("DOCPDF_CONFIG"),
		Stylesheet:  getenv("DOCPDF_STYLESHEET"),
		InputDir:    getenv("DOCPDF_INPUT_DIR"),
		OutputDir:   getenv("DOCPDF_OUTPUT_DIR"),
		AssetPath:   getenv("DOCPDF_ASSET_PATH"),
		PageSize:    getenv("DOCPDF_PAGE_SIZE"),
		Orientation: getenv("DOCPDF_ORIENTATION"),
		Overflow:    getenv("DOCPDF_OVERFLOW"),
		CodeTheme:   getenv("DOCPDF_CODE_THEME"),
		HeaderText:  getenv("DOCPDF_HEADER_TEXT"),
		FooterText:  getenv("DOCPDF_FOOTER_TEXT"),
		DocAuthor:   getenv("DOCPDF_DOC_AUTHOR"),
		DocID:       getenv("DOCPDF_DOC_ID"),
		S3Region:    getenv("DOCPDF_S3_REGION"),
		S3Endpoint:  getenv("DOCPDF_S3_ENDPOINT"),
	}

	// Parse int for workers
	if workers := getenv("DOCPDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if v := getenv("DOCPDF_S3_PATH_STYLE"); v != "" {
		cfg.S3PathStyle, _ = strconv.ParseBool(v)
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized DOCPDF_* name.
// Helps catch typos like DOCPDF_STYLE instead of DOCPDF_STYLESHEET.
func warnUnknownEnvVars(w io.Writer, environ []string, dotenv map[string]string) {
	seen := make(map[string]bool)
	for _, env := range environ {
		seen[strings.SplitN(env, "=", 2)[0]] = true
	}
	for name := range dotenv {
		seen[name] = true
	}

	var unknown []string
	for name := range seen {
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables replace config file values; CLI flags are applied later via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Styles
	if env.Stylesheet != "" {
		cfg.Styles.Stylesheet = env.Stylesheet
	}

	// Tier 2 - I/O
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}

	// Tier 3 - Layout
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Orientation != "" {
		cfg.Page.Orientation = env.Orientation
	}
	if env.Overflow != "" {
		cfg.Table.Overflow = env.Overflow
	}
	if env.CodeTheme != "" {
		cfg.Code.Theme = env.CodeTheme
	}

	// Tier 3 - Decorations (auto-enable)
	if env.HeaderText != "" {
		cfg.Header.Text = env.HeaderText
		cfg.Header.Enabled = true
	}
	if env.FooterText != "" {
		cfg.Footer.Text = env.FooterText
		cfg.Footer.Enabled = true
	}

	// Tier 3 - Document metadata
	if env.DocAuthor != "" {
		cfg.Document.Author = env.DocAuthor
	}
	if env.DocID != "" {
		cfg.Document.ID = env.DocID
	}

	// Tier 4 - S3
	if env.S3Region != "" {
		cfg.S3.Region = env.S3Region
	}
	if env.S3Endpoint != "" {
		cfg.S3.Endpoint = env.S3Endpoint
	}
	if env.S3PathStyle {
		cfg.S3.PathStyle = true
	}
}
