// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docpdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForS3Upload returns hints for S3 upload failures.
// Detects CI/Docker environment and suggests the AWS variables that are unset.
func ForS3Upload() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	// Containers and CI runners rarely have a shared credentials file.
	if (inCI || IsInContainer()) && os.Getenv("AWS_ACCESS_KEY_ID") == "" && os.Getenv("AWS_PROFILE") == "" {
		hints = append(hints, "set AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY for Docker/CI")
	}

	if os.Getenv("AWS_REGION") == "" && os.Getenv("AWS_DEFAULT_REGION") == "" {
		hints = append(hints, "set AWS_REGION or DOCPDF_S3_REGION")
	}

	return formatHints(hints)
}

// ForRowOverflow returns a hint for table rows taller than a page.
func ForRowOverflow() string {
	return format("use --overflow truncate, or widen the column so the cell wraps to fewer lines")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-docpdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-docpdf) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-docpdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style and stylesheet not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnsupportedInput returns hints for input files with an unknown extension.
func ForUnsupportedInput(extensions []string) string {
	if len(extensions) == 0 {
		return ""
	}
	return format("supported inputs: " + strings.Join(extensions, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
