package main

// Notes:
// - Scripts are checked for the commands, flags and values they must offer.
//   We do not run the shells; syntax is covered by keeping generators simple.

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion - Per shell output
// ---------------------------------------------------------------------------

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell Shell
		want  []string
	}{
		{ShellBash, []string{
			"complete -o filenames -F _docpdf docpdf",
			`"build styles version help completion"`,
			"--page-size|-p) COMPREPLY=( $(compgen -W \"letter a4 legal\"",
			"--output|-o) COMPREPLY=( $(compgen -d",
			"--no-compress",
		}},
		{ShellZsh, []string{
			"#compdef docpdf",
			"'build:Build PDF documents from files'",
			"'--overflow[oversized table rows\\: fail, truncate]:value:(fail truncate)'",
			`_files -g "*.(yaml|yml)"`,
			`'*:input:_files -g "*.(docx|json|markdown|md|yaml|yml)"'`,
			"'1:argument:(bash zsh fish powershell)'",
		}},
		{ShellFish, []string{
			"complete -c docpdf -n __fish_use_subcommand -a build",
			"-s w -l workers",
			`-l orientation -d "page orientation: portrait, landscape" -x -a "portrait landscape"`,
			`-a "bash zsh fish powershell"`,
		}},
		{ShellPowerShell, []string{
			"Register-ArgumentCompleter -Native -CommandName docpdf",
			"'build' = 'Build PDF documents from files'",
			"'--dry-run'",
			"'completion' = @('bash', 'zsh', 'fish', 'powershell')",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			if err := GenerateCompletion(&b, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%s) error = %v", tt.shell, err)
			}
			got := b.String()
			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("%s script missing %q", tt.shell, s)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	err := GenerateCompletion(&b, Shell("tcsh"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("GenerateCompletion(tcsh) error = %v, want ErrUnsupportedShell", err)
	}
	if b.Len() != 0 {
		t.Error("nothing should be written for an unsupported shell")
	}
}

// ---------------------------------------------------------------------------
// TestGetCommands - Registry built from the real FlagSets
// ---------------------------------------------------------------------------

func TestGetCommands(t *testing.T) {
	t.Parallel()

	commands := getCommands()
	var build *commandDef
	for i := range commands {
		if commands[i].Name == "build" {
			build = &commands[i]
		}
	}
	if build == nil {
		t.Fatal("build command missing")
	}

	byName := make(map[string]flagDef)
	for _, f := range build.Flags {
		byName[f.Long] = f
	}
	checks := []struct {
		name string
		typ  flagType
	}{
		{"output", flagDir},
		{"workers", flagInt},
		{"margin", flagFloat},
		{"dry-run", flagBool},
		{"page-size", flagEnum},
		{"config", flagFile},
		{"header-text", flagString},
	}
	for _, c := range checks {
		f, ok := byName[c.name]
		if !ok {
			t.Errorf("flag --%s missing", c.name)
			continue
		}
		if f.Type != c.typ {
			t.Errorf("--%s type = %d, want %d", c.name, f.Type, c.typ)
		}
	}
	if byName["workers"].Short != "w" {
		t.Errorf("--workers short = %q, want w", byName["workers"].Short)
	}
}

func TestZshGlob(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"*.yaml":       "*.yaml",
		"*.yaml,*.yml": "*.(yaml|yml)",
	}
	for in, want := range tests {
		if got := zshGlob(in); got != want {
			t.Errorf("zshGlob(%q) = %q, want %q", in, got, want)
		}
	}
}
