package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docpdf/internal/assets"
)

// ErrInvalidArgs reports bad flags or arguments for a command.
var ErrInvalidArgs = errors.New("invalid arguments")

// runStyles lists the available stylesheets, or the resolved styles of one.
func runStyles(args []string, env *Environment) error {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	var assetPath string
	fs.StringVar(&assetPath, "asset-path", "", "custom asset directory")
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printStylesUsage(env.Stdout) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: styles takes at most one stylesheet name", ErrInvalidArgs)
	}

	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return err
	}

	if fs.NArg() == 0 {
		names, err := resolver.ListStylesheets()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	reg, err := assets.BuildRegistry(resolver, fs.Arg(0))
	if err != nil {
		return withStylesheetHint(err, resolver)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFONT\tSIZE\tWEIGHT\tALIGN\tBASE")
	for _, name := range reg.Names() {
		s, _ := reg.Lookup(name)
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%s\t%s\n", s.Name, s.Family, s.Size, s.Weight, s.Alignment, s.Base)
	}
	return tw.Flush()
}
