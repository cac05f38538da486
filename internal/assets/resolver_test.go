package assets

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.custom != nil {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if resolver.custom == nil {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadStylesheet(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeSheet(t, tmpDir, "report", "name: report\ndescription: house override\nstyles: []\n")
	writeSheet(t, tmpDir, "house", "name: house\nstyles: []\n")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name     string
		sheet    string
		contains string
		wantErr  error
	}{
		{
			name:     "custom overrides embedded",
			sheet:    "report",
			contains: "house override",
		},
		{
			name:     "custom-only sheet",
			sheet:    "house",
			contains: "name: house",
		},
		{
			name:     "falls back to embedded",
			sheet:    "compact",
			contains: "name: compact",
		},
		{
			name:    "missing everywhere",
			sheet:   "nonexistent-xyz",
			wantErr: ErrStylesheetNotFound,
		},
		{
			name:    "invalid name does not fall back",
			sheet:   "../compact",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.LoadStylesheet(tt.sheet)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStylesheet(%q) error = %v, want %v", tt.sheet, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStylesheet(%q) error = %v", tt.sheet, err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("LoadStylesheet(%q) = %q, want containing %q", tt.sheet, got, tt.contains)
			}
		})
	}
}

func TestAssetResolver_ReadErrorDoesNotFallBack(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// A directory named like the sheet makes ReadFile fail with a non-NotExist error.
	if err := os.MkdirAll(filepath.Join(tmpDir, "styles", "compact.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if _, err := resolver.LoadStylesheet("compact"); !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStylesheet() error = %v, want ErrAssetRead", err)
	}
}

func TestAssetResolver_ListStylesheets(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeSheet(t, tmpDir, "report", "name: report\n")
	writeSheet(t, tmpDir, "house", "name: house\n")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	got, err := resolver.ListStylesheets()
	if err != nil {
		t.Fatalf("ListStylesheets() error = %v", err)
	}
	want := []string{"compact", "default", "house", "report"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListStylesheets() = %v, want %v", got, want)
	}
}

func TestAssetResolver_ImplementsAssetLoader(t *testing.T) {
	t.Parallel()

	var _ AssetLoader = (*AssetResolver)(nil)
}
