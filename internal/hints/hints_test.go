package hints

// Notes:
// - ForS3Upload tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func clearAWSEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "AWS_ACCESS_KEY_ID", "AWS_PROFILE", "AWS_REGION", "AWS_DEFAULT_REGION"} {
		t.Setenv(k, "")
	}
}

func TestForS3Upload_InCI(t *testing.T) {
	// Save and restore IsInContainer (not parallel-safe, see package notes)
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	clearAWSEnv(t)
	t.Setenv("CI", "true")

	hint := ForS3Upload()

	if !strings.Contains(hint, "hint:") {
		t.Error("expected hint prefix")
	}
	if !strings.Contains(hint, "AWS_ACCESS_KEY_ID") {
		t.Error("expected credentials suggestion in CI")
	}
	if !strings.Contains(hint, "AWS_REGION") {
		t.Error("expected region suggestion")
	}
}

func TestForS3Upload_InDocker(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	clearAWSEnv(t)

	if hint := ForS3Upload(); !strings.Contains(hint, "AWS_ACCESS_KEY_ID") {
		t.Error("expected credentials suggestion in Docker")
	}
}

func TestForS3Upload_ProfileSet(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	clearAWSEnv(t)
	t.Setenv("AWS_PROFILE", "reports")

	if hint := ForS3Upload(); strings.Contains(hint, "AWS_ACCESS_KEY_ID") {
		t.Error("should not suggest credentials when a profile is set")
	}
}

func TestForS3Upload_AllConfigured(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	clearAWSEnv(t)
	t.Setenv("CI", "true")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_REGION", "eu-west-1")

	if hint := ForS3Upload(); hint != "" {
		t.Errorf("expected empty hint when all configured, got %q", hint)
	}
}

func TestForRowOverflow(t *testing.T) {
	hint := ForRowOverflow()

	if !strings.Contains(hint, "--overflow truncate") {
		t.Errorf("expected --overflow mention, got %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		wantHint bool
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			wantHint: true,
			contains: "--config",
		},
		{
			name:     "with paths",
			paths:    []string{"./foo.yaml", "~/.config/go-docpdf/foo.yaml"},
			wantHint: true,
			contains: "go-docpdf/foo.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.paths)

			if tt.wantHint && !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForOutputDirectory(t *testing.T) {
	hint := ForOutputDirectory()

	if !strings.Contains(hint, "hint:") {
		t.Error("expected hint prefix")
	}
	if !strings.Contains(hint, "parent directory") {
		t.Error("expected parent directory mention")
	}
}

func TestForStyleNotFound(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		wantEmpty bool
		contains  string
	}{
		{
			name:      "empty available",
			available: []string{},
			wantEmpty: true,
		},
		{
			name:      "with stylesheets",
			available: []string{"compact", "default", "report"},
			contains:  "compact, default, report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForStyleNotFound(tt.available)

			if tt.wantEmpty && hint != "" {
				t.Errorf("expected empty hint, got %q", hint)
			}
			if !tt.wantEmpty && !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForUnsupportedInput(t *testing.T) {
	if hint := ForUnsupportedInput(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	hint := ForUnsupportedInput([]string{".md", ".yaml"})
	if !strings.Contains(hint, ".md, .yaml") {
		t.Errorf("hint = %q, want extension list", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForRowOverflow(),
		ForOutputDirectory(),
		ForUnsupportedInput([]string{".md"}),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
