package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-docpdf/internal/source"
)

// ErrUnknownCommand is returned by help for a command that does not exist.
var ErrUnknownCommand = errors.New("unknown command")

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build        Build PDF documents from files")
	fmt.Fprintln(w, "  styles       List stylesheets or show one")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docpdf help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpdf build <input...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build paginated PDF documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintf(w, "           Supported: %s\n", strings.Join(source.Extensions(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, directory, or s3://bucket/prefix")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --dry-run             Paginate and report page counts only")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in points, all sides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Header/Footer:")
	fmt.Fprintln(w, "      --header-text <s>     Header text")
	fmt.Fprintln(w, "      --footer-text <s>     Footer text")
	fmt.Fprintln(w, "                            Placeholders: {page}, {total}, {title}, {id},")
	fmt.Fprintln(w, "                            {date}, {date:FORMAT} (e.g. {date:DD/MM/YYYY})")
	fmt.Fprintln(w, "      --no-header           Disable header")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --doc-title <s>       Title (\"\" = from the source)")
	fmt.Fprintln(w, "      --doc-author <s>      Author")
	fmt.Fprintln(w, "      --doc-id <s>          Document ID (\"auto\" = random UUID)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --stylesheet <s>      Stylesheet name or YAML file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --code-theme <s>      Code block colour theme")
	fmt.Fprintln(w, "      --overflow <s>        Oversized table rows: fail, truncate")
	fmt.Fprintln(w, "      --no-compress         Write uncompressed PDF streams")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed logs and timing")
}

// printStylesUsage prints usage for the styles command.
func printStylesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpdf styles [name] [--asset-path <dir>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a name, list the available stylesheets.")
	fmt.Fprintln(w, "With a name or path, show the resolved styles of that sheet.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "styles":
		printStylesUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docpdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docpdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
