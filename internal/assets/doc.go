// Package assets provides the stylesheets used to build style registries.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in sheets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in stylesheets (default, report, compact)
// embedded at compile time.
//
// FilesystemLoader allows users to provide custom stylesheets from a
// directory, with path traversal protection and symlink resolution.
//
// AssetResolver is the primary loader used by the CLI. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the sheet is not
// found. This enables overriding a built-in sheet while keeping the others.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.yaml          # Stylesheet (e.g., report.yaml)
//
// # Stylesheet Format
//
// A stylesheet lists style definitions layered over docpdf.DefaultStyles.
// An entry named like a built-in style replaces that definition, so styles
// deriving from it pick up the change:
//
//	name: report
//	styles:
//	  - name: Normal
//	    font: Times
//	    size: 11
//	  - name: Heading1
//	    base: Normal
//	    weight: bold
//	    color: "#1f3864"
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
