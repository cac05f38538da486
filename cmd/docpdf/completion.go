package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docpdf/internal/source"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

var shells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"page-size":   {Values: []string{"letter", "a4", "legal"}},
	"orientation": {Values: []string{"portrait", "landscape"}},
	"overflow":    {Values: []string{"fail", "truncate"}},

	// File flags with glob patterns
	"config":     {FileGlob: "*.yaml,*.yml"},
	"stylesheet": {FileGlob: "*.yaml"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// inputPattern returns the glob of supported input files, e.g. "*.md,*.docx".
func inputPattern() string {
	exts := source.Extensions()
	globs := make([]string, len(exts))
	for i, ext := range exts {
		globs[i] = "*" + ext
	}
	return strings.Join(globs, ",")
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	buildDefs := extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{}))
	stylesFlags := []flagDef{{Long: "asset-path", Type: flagDir, Desc: "custom asset directory"}}

	commands := []commandDef{
		{
			Name:        "build",
			Desc:        "Build PDF documents from files",
			Flags:       buildDefs,
			TakesFiles:  true,
			FilePattern: inputPattern(),
		},
		{
			Name:  "styles",
			Desc:  "List stylesheets or show one",
			Flags: stylesFlags,
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script", Args: shells},
	}
	for i := range commands {
		if commands[i].Name == "help" {
			commands[i].Args = commandNames(commands)
		}
	}
	return commands
}

func commandNames(commands []commandDef) []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	return names
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	commands := getCommands()

	var script string
	switch shell {
	case ShellBash:
		script = generateBash(commands)
	case ShellZsh:
		script = generateZsh(commands)
	case ShellFish:
		script = generateFish(commands)
	case ShellPowerShell:
		script = generatePowerShell(commands)
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(shells, ", "))
	}

	_, err := io.WriteString(w, script)
	return err
}

func generateBash(commands []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for docpdf\n\n")
	b.WriteString("_docpdf() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(commandNames(commands), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range commands {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valueCases []string
		var names []string
		for _, f := range c.Flags {
			names = append(names, "--"+f.Long)
			pattern := "--" + f.Long
			if f.Short != "" {
				names = append(names, "-"+f.Short)
				pattern += "|-" + f.Short
			}
			switch f.Type {
			case flagEnum:
				valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=( $(compgen -W %q -- \"$cur\") ); return ;;", pattern, strings.Join(f.Values, " ")))
			case flagFile:
				valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=( $(compgen -f -- \"$cur\") ); return ;;", pattern))
			case flagDir:
				valueCases = append(valueCases, fmt.Sprintf("        %s) COMPREPLY=( $(compgen -d -- \"$cur\") ); return ;;", pattern))
			case flagString, flagInt, flagFloat:
				valueCases = append(valueCases, fmt.Sprintf("        %s) return ;;", pattern))
			}
		}
		if len(valueCases) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, vc := range valueCases {
				b.WriteString("    " + vc + "\n")
			}
			b.WriteString("        esac\n")
		}
		if len(names) > 0 {
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(names, " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			b.WriteString("        COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _docpdf docpdf\n")
	return b.String()
}

// zshEscape escapes text for a single-quoted zsh _arguments spec.
func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(pattern string) string {
	globs := strings.Split(pattern, ",")
	if len(globs) == 1 {
		return globs[0]
	}
	exts := make([]string, len(globs))
	for i, g := range globs {
		exts[i] = strings.TrimPrefix(g, "*.")
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return `:file:_files -g "` + zshGlob(f.FileGlob) + `"`
	case flagDir:
		return ":directory:_files -/"
	default:
		return ":value: "
	}
}

func generateZsh(commands []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef docpdf\n\n")
	b.WriteString("_docpdf() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")

	for _, c := range commands {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		var specs []string
		for _, f := range c.Flags {
			desc := "[" + zshEscape(f.Desc) + "]"
			action := zshAction(f)
			if f.Short != "" {
				specs = append(specs, fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action))
			} else {
				specs = append(specs, fmt.Sprintf("'--%s%s%s'", f.Long, desc, action))
			}
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(c.Args, " ")))
		case c.TakesFiles:
			specs = append(specs, fmt.Sprintf(`'*:input:_files -g "%s"'`, zshGlob(c.FilePattern)))
		}
		b.WriteString("        _arguments \\\n")
		for i, s := range specs {
			b.WriteString("            " + s)
			if i < len(specs)-1 {
				b.WriteString(" \\")
			}
			b.WriteString("\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_docpdf \"$@\"\n")
	return b.String()
}

func fishQuote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`).Replace(s) + `"`
}

func generateFish(commands []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for docpdf\n\n")
	b.WriteString("complete -c docpdf -f\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c docpdf -n __fish_use_subcommand -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range commands {
		cond := fishQuote("__fish_seen_subcommand_from " + c.Name)
		for _, f := range c.Flags {
			line := "complete -c docpdf -n " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long + " -d " + fishQuote(f.Desc)
			switch f.Type {
			case flagEnum:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a " + fishQuote("(__fish_complete_directories)")
			case flagString, flagInt, flagFloat:
				line += " -x"
			}
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c docpdf -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c docpdf -n %s -F\n", cond)
		}
	}
	return b.String()
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func generatePowerShell(commands []commandDef) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion for docpdf\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName docpdf -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n")
	b.WriteString("    $candidates = @{\n")
	for _, c := range commands {
		var values []string
		for _, f := range c.Flags {
			values = append(values, psQuote("--"+f.Long))
			if f.Short != "" {
				values = append(values, psQuote("-"+f.Short))
			}
		}
		for _, a := range c.Args {
			values = append(values, psQuote(a))
		}
		fmt.Fprintf(&b, "        %s = @(%s)\n", psQuote(c.Name), strings.Join(values, ", "))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    if ($words.Count -lt 2 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates[$words[1]] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(docpdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(docpdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    docpdf completion fish > ~/.config/fish/completions/docpdf.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    docpdf completion powershell | Out-String | Invoke-Expression")
}
