package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/assets"
	"github.com/alnah/go-docpdf/internal/config"
	"github.com/alnah/go-docpdf/internal/dateutil"
	"github.com/alnah/go-docpdf/internal/hints"
	"github.com/alnah/go-docpdf/internal/sink"
	"github.com/alnah/go-docpdf/internal/source"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoSupportedFiles   = errors.New("no supported input files found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputConflict     = errors.New("conflicting output paths")
)

// Decoration text used when a header or footer is enabled without text.
const (
	defaultHeaderText = "{title}"
	defaultFooterText = "Page {page}"
)

// buildParams groups everything shared by the files of one build.
type buildParams struct {
	cfg      *config.Config
	styles   *docpdf.Registry
	page     docpdf.PageGeometry
	asm      *docpdf.Assembler
	sink     *sink.Sink
	logger   *zap.Logger
	now      time.Time
	noHeader bool
	noFooter bool
	dryRun   bool
}

// runBuild orchestrates a build: settings, discovery, then the batch.
func runBuild(ctx context.Context, args []string, flags *buildFlags, env *Environment, logger *zap.Logger) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	dotenv, err := readDotEnv(env.DotEnv)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(env.Stderr, env.Environ(), dotenv)
	envCfg := loadEnvConfig(envLookup(env.Getenv, dotenv))

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	inputs, err := resolveInputs(args, cfg)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputs, resolveOutput(flags.output, cfg))
	if err != nil {
		return err
	}

	params, err := newBuildParams(cfg, flags, env, logger)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	workers = docpdf.ResolveWorkers(workers)
	logger.Debug("starting build",
		zap.Int("files", len(files)),
		zap.Int("workers", workers),
		zap.Bool("dryRun", flags.dryRun))

	results := buildBatch(ctx, workers, files, params)
	return printResults(results, flags.common.quiet, flags.common.verbose, flags.dryRun, env)
}

// loadConfig loads the config named by the flag, else by DOCPDF_CONFIG.
// Without either, defaults apply.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
		cfg.Page.Margins = nil
	}

	// Decoration flags (auto-enable)
	if flags.decoration.headerText != "" {
		cfg.Header.Text = flags.decoration.headerText
		cfg.Header.Enabled = true
	}
	if flags.decoration.footerText != "" {
		cfg.Footer.Text = flags.decoration.footerText
		cfg.Footer.Enabled = true
	}

	// Document flags
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
	if flags.document.id != "" {
		cfg.Document.ID = flags.document.id
	}

	// Style flags
	if flags.style.stylesheet != "" {
		cfg.Styles.Stylesheet = flags.style.stylesheet
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if flags.style.codeTheme != "" {
		cfg.Code.Theme = flags.style.codeTheme
	}
	if flags.style.overflow != "" {
		cfg.Table.Overflow = flags.style.overflow
	}
	if flags.style.noCompress {
		off := false
		cfg.Output.Compress = &off
	}

	// Disable flags
	if flags.decoration.noHeader {
		cfg.Header.Enabled = false
	}
	if flags.decoration.noFooter {
		cfg.Footer.Enabled = false
	}
}

// resolveInputs determines the input paths from args or config.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutput determines the output location from flag or config.
func resolveOutput(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > docpdf.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, docpdf.MaxWorkers)
	}
	return nil
}

// newBuildParams resolves the settings shared by every file of the build.
func newBuildParams(cfg *config.Config, flags *buildFlags, env *Environment, logger *zap.Logger) (*buildParams, error) {
	page, err := cfg.Page.Geometry()
	if err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}

	styles, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	asm := docpdf.NewAssembler(
		docpdf.WithLogger(logger),
		docpdf.WithOverflowPolicy(cfg.OverflowPolicy()),
		docpdf.WithCompression(cfg.Compress()),
		docpdf.WithCodeTheme(cfg.Code.Theme),
		docpdf.WithClock(env.Now),
	)

	sinkOpts := []sink.Option{
		sink.WithLogger(logger),
		sink.WithS3Options(sink.S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		}),
	}
	if env.Uploader != nil {
		sinkOpts = append(sinkOpts, sink.WithUploader(env.Uploader))
	}

	return &buildParams{
		cfg:      cfg,
		styles:   styles,
		page:     page,
		asm:      asm,
		sink:     sink.New(asm, sinkOpts...),
		logger:   logger,
		now:      env.Now(),
		noHeader: flags.decoration.noHeader,
		noFooter: flags.decoration.noFooter,
		dryRun:   flags.dryRun,
	}, nil
}

// buildRegistry merges the built-in styles, the configured stylesheet and
// the inline overrides.
func buildRegistry(cfg *config.Config) (*docpdf.Registry, error) {
	overrides, err := assets.EntryDefs(cfg.Styles.Overrides)
	if err != nil {
		return nil, fmt.Errorf("styles.overrides: %w", err)
	}

	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}

	reg, err := assets.BuildRegistry(resolver, cfg.Styles.Stylesheet, overrides...)
	if err != nil {
		return nil, withStylesheetHint(err, resolver)
	}
	return reg, nil
}

// withStylesheetHint appends the available sheet names to a not-found error.
func withStylesheetHint(err error, loader assets.AssetLoader) error {
	if !errors.Is(err, assets.ErrStylesheetNotFound) {
		return err
	}
	names, listErr := loader.ListStylesheets()
	if listErr != nil {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(names))
}

// newDocument combines loaded content with the configured metadata,
// geometry and decorations. Configured metadata wins over the source's.
func (p *buildParams) newDocument(c *source.Content) (*docpdf.Document, error) {
	meta := c.Metadata
	d := p.cfg.Document
	if d.Title != "" {
		meta.Title = d.Title
	}
	if d.Author != "" {
		meta.Author = d.Author
	}
	if d.Subject != "" {
		meta.Subject = d.Subject
	}
	if len(d.Keywords) > 0 {
		meta.Keywords = d.Keywords
	}
	switch d.ID {
	case "":
	case config.AutoID:
		meta.ID = uuid.NewString()
	default:
		meta.ID = d.ID
	}
	meta.Creator = "docpdf " + Version
	meta.CreatedAt = p.now

	vars := map[string]string{"title": meta.Title, "id": meta.ID}
	header, err := p.decoration(p.cfg.Header, c.Header, p.noHeader, defaultHeaderText, docpdf.StyleHeader, vars)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	footer, err := p.decoration(p.cfg.Footer, c.Footer, p.noFooter, defaultFooterText, docpdf.StyleFooter, vars)
	if err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}

	return &docpdf.Document{
		Blocks:   c.Blocks,
		Styles:   p.styles,
		Page:     p.page,
		Header:   header,
		Footer:   footer,
		Metadata: meta,
	}, nil
}

// decoration returns the PageFunc for a header or footer. Configured text
// wins over text from the source; date and metadata placeholders are
// expanded once, {page} and {total} on every page.
func (p *buildParams) decoration(dc config.DecorationConfig, fromSource string, disabled bool,
	fallback, style string, vars map[string]string) (docpdf.PageFunc, error) {
	if disabled {
		return nil, nil
	}

	text := fromSource
	if dc.Enabled {
		switch {
		case dc.Text != "":
			text = dc.Text
		case text == "":
			text = fallback
		}
	}
	if text == "" {
		return nil, nil
	}

	expanded, err := dateutil.Expand(text, p.now, vars)
	if err != nil {
		return nil, err
	}
	if dc.Style != "" {
		style = dc.Style
	}
	return docpdf.TextDecoration(style, expanded), nil
}
