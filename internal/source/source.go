package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	docpdf "github.com/alnah/go-docpdf"
)

// MaxFileSize limits Markdown and Word inputs (32MB).
const MaxFileSize = 32 << 20

// Content is what a loader extracts from one input file.
type Content struct {
	Blocks   []docpdf.Block
	Metadata docpdf.Metadata
	// Header and Footer are text templates declared by the input itself.
	// Empty means the input does not set one.
	Header string
	Footer string
}

// Loader reads one input file.
type Loader interface {
	Load(ctx context.Context, path string) (*Content, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*Content, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) (*Content, error) {
	return f(ctx, path)
}

var loaders = map[string]Loader{
	".yaml":     LoaderFunc(LoadDocument),
	".yml":      LoaderFunc(LoadDocument),
	".json":     LoaderFunc(LoadDocument),
	".md":       LoaderFunc(LoadMarkdown),
	".markdown": LoaderFunc(LoadMarkdown),
	".docx":     LoaderFunc(LoadDocx),
}

// Extensions returns the supported input extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(loaders))
	for ext := range loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether path has a supported extension.
func IsSupported(path string) bool {
	_, ok := loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads path with the loader registered for its extension.
// Returns ErrEmptyInput when the file yields no blocks.
func Load(ctx context.Context, path string) (*Content, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := l.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(c.Blocks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}
	return c, nil
}

// readFile reads path, refusing files larger than limit.
func readFile(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceRead, path)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrSourceRead, path, info.Size(), limit)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	return data, nil
}
