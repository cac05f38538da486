package main

// Notes:
// - exitCodeFor: we test sentinel errors from every package the CLI calls,
//   plus wrapped and joined errors to verify the errors.Is() chain.
// - hintFor: we test which errors carry a hint, not the hint wording. S3 hints
//   depend on the AWS variables of the machine running the tests, so they are
//   covered in the hints package instead.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	docpdf "github.com/alnah/go-docpdf"
	"github.com/alnah/go-docpdf/internal/assets"
	"github.com/alnah/go-docpdf/internal/config"
	"github.com/alnah/go-docpdf/internal/sink"
	"github.com/alnah/go-docpdf/internal/source"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Render errors (exit 4)
		{"render", docpdf.ErrRender, ExitRender},
		{"row overflow", &docpdf.OverflowError{Block: 2, Row: 5}, ExitRender},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"write", &docpdf.IOError{Op: "rename", Err: errors.New("x")}, ExitIO},
		{"source read", source.ErrSourceRead, ExitIO},
		{"sheet", source.ErrSheet, ExitIO},
		{"s3 config", sink.ErrS3Config, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no supported files", ErrNoSupportedFiles, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty document", docpdf.ErrEmptyDocument, ExitUsage},
		{"invalid page size", docpdf.ErrInvalidPageSize, ExitUsage},
		{"invalid margin", docpdf.ErrInvalidMargin, ExitUsage},
		{"unknown style", &docpdf.UnknownStyleError{Name: "Ghost", Block: 1}, ExitUsage},
		{"style cycle", docpdf.ErrStyleCycle, ExitUsage},
		{"stylesheet not found", assets.ErrStylesheetNotFound, ExitUsage},
		{"unsupported format", source.ErrUnsupportedFormat, ExitUsage},
		{"invalid document", source.ErrInvalidDocument, ExitUsage},
		{"invalid target", sink.ErrInvalidTarget, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"output conflict", ErrOutputConflict, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},

		// Batches report the most severe category present
		{"batch with render failure", &batchError{failed: 2, total: 3, errs: []error{source.ErrInvalidDocument, docpdf.ErrRender}}, ExitRender},
		{"batch with usage failure", &batchError{failed: 1, total: 3, errs: []error{source.ErrInvalidDocument}}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitRender} {
		if code >= 126 {
			t.Errorf("custom code %d must be below 126", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantHint bool
		contains string
	}{
		{"row overflow", &docpdf.OverflowError{}, true, "--overflow truncate"},
		{"unsupported format", fmt.Errorf("%w: x.txt", source.ErrUnsupportedFormat), true, ".docx"},
		{"mkdir failure", &docpdf.IOError{Op: "mkdir", Path: "/x", Err: os.ErrPermission}, true, "writable"},
		{"rename failure", &docpdf.IOError{Op: "rename", Err: errors.New("x")}, false, ""},
		{"plain error", errors.New("boom"), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.wantHint != (got != "") {
				t.Fatalf("hintFor(%v) = %q, want hint: %v", tt.err, got, tt.wantHint)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor(%v) = %q, want containing %q", tt.err, got, tt.contains)
			}
		})
	}
}
