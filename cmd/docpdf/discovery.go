package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docpdf/internal/fileutil"
	"github.com/alnah/go-docpdf/internal/sink"
	"github.com/alnah/go-docpdf/internal/source"
)

// FileToBuild represents a single input and where its PDF goes.
type FileToBuild struct {
	InputPath string
	Target    sink.Target
}

// discovered is an input file with its path relative to the input root.
type discovered struct {
	path string
	rel  string
}

// discoverFiles finds all supported inputs and resolves their targets.
// Directories are walked; their structure is mirrored under output.
func discoverFiles(inputs []string, output string) ([]FileToBuild, error) {
	var found []discovered
	for _, in := range inputs {
		files, err := discoverInput(in)
		if err != nil {
			return nil, err
		}
		found = append(found, files...)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSupportedFiles, strings.Join(inputs, ", "))
	}

	files := make([]FileToBuild, 0, len(found))
	owners := make(map[string]string, len(found))
	for _, f := range found {
		t, err := resolveTarget(f, output, len(found))
		if err != nil {
			return nil, err
		}
		key := t.String()
		if prev, ok := owners[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, f.path, key)
		}
		owners[key] = f.path
		files = append(files, FileToBuild{InputPath: f.path, Target: t})
	}
	return files, nil
}

// discoverInput lists the supported files of one input argument.
func discoverInput(inputPath string) ([]discovered, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !source.IsSupported(inputPath) {
			return nil, fmt.Errorf("%w: %s", source.ErrUnsupportedFormat, inputPath)
		}
		return []discovered{{path: inputPath, rel: filepath.Base(inputPath)}}, nil
	}

	var files []discovered
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && isSkipped(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isSkipped(d.Name()) || !source.IsSupported(path) {
			return nil
		}
		rel, err := filepath.Rel(inputPath, path)
		if err != nil {
			return err
		}
		files = append(files, discovered{path: path, rel: rel})
		return nil
	})
	return files, err
}

// isSkipped reports hidden entries and Office lock files ("~$report.docx").
func isSkipped(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$")
}

// resolveTarget determines the PDF destination for one input.
//   - no output: next to the input
//   - output ending in .pdf: that file or object (single input only)
//   - s3://bucket[/prefix]: an object under the prefix
//   - anything else: a directory
func resolveTarget(f discovered, output string, count int) (sink.Target, error) {
	name := fileutil.ReplaceExt(f.rel, ".pdf")

	switch {
	case output == "":
		return sink.Target{Path: fileutil.ReplaceExt(f.path, ".pdf")}, nil

	case strings.EqualFold(filepath.Ext(output), ".pdf"):
		if count > 1 {
			return sink.Target{}, fmt.Errorf("%w: %s names one file but %d inputs were found", ErrOutputConflict, output, count)
		}
		return sink.ParseTarget(output)

	case strings.HasPrefix(strings.ToLower(output), sink.S3Scheme):
		if !strings.HasSuffix(output, "/") {
			output += "/"
		}
		prefix, err := sink.ParsePrefix(output)
		if err != nil {
			return sink.Target{}, err
		}
		return prefix.Join(filepath.ToSlash(name)), nil

	default:
		return sink.Target{Path: filepath.Join(output, name)}, nil
	}
}
