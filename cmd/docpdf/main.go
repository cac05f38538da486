package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "build":
		return runBuildCmd(rest, env)
	case "styles":
		return report(runStyles(rest, env), env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "docpdf %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return report(runHelp(rest, env), env)
	case "completion":
		return report(runCompletion(rest, env), env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runBuildCmd parses build flags, sets up the runtime and runs the build.
func runBuildCmd(args []string, env *Environment) int {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	setMaxProcs(flags.common.verbose, env.Stderr)

	logger := newLogger(env.Stderr, flags.common.verbose)
	defer func() { _ = logger.Sync() }()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return report(runBuild(ctx, positional, flags, env, logger), env)
}

// setMaxProcs configures GOMAXPROCS for the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// newLogger returns a console logger at debug level when verbose, and a
// JSON logger that only reports warnings otherwise.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if verbose {
		enc := zap.NewDevelopmentEncoderConfig()
		return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel))
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), zapcore.WarnLevel))
}

// report prints err with an actionable hint and returns its exit code.
func report(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(env.Stderr, "interrupted")
		return exitCodeFor(err)
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}
