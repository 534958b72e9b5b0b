// Package main is the entry point for the styledtext rule processor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/styledtext/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	InputPath  string
	OutputPath string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}
	opts.LogOutput = stderr
	opts.StatsOutput = stderr

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	in := stdin
	if opts.InputPath != "" && opts.InputPath != "-" {
		f, err := os.Open(opts.InputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	out := stdout
	var outFile *os.File
	if opts.OutputPath != "" && opts.OutputPath != "-" {
		outFile, err = os.Create(opts.OutputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		out = outFile
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := application.Run(ctx, in, out)
	if outFile != nil {
		if err := outFile.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}

// parseFlags returns the options, or done with an exit code when the
// program should stop (help, version, bad flags).
func parseFlags(args []string, stdout, stderr io.Writer) (cliOptions, int, bool) {
	var opts cliOptions
	var showVersion bool

	fs := flag.NewFlagSet("styledtext", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to rule file (TOML)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to rule file (shorthand)")
	fs.StringVar(&opts.InputPath, "in", "", "Input file of markup lines (default stdin)")
	fs.StringVar(&opts.OutputPath, "out", "", "Output file (default stdout)")
	fs.StringVar(&opts.Format, "format", "", "Output format (markup, text, json, binary)")
	fs.StringVar(&opts.Format, "f", "", "Output format (shorthand)")
	fs.BoolVar(&opts.Stats, "stats", false, "Report character and grapheme counts on stderr")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "styledtext - find/replace and case rules for styled text\n\n")
		fmt.Fprintf(stderr, "Usage: styledtext [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  styledtext -c rules.toml doc.txt        Apply rules, print markup\n")
		fmt.Fprintf(stderr, "  styledtext -c rules.toml -f json < in   Emit JSON lines\n")
		fmt.Fprintf(stderr, "  styledtext -stats -f text doc.txt       Plain text with counts\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "styledtext %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	// Validate log level
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, 1, true
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		if opts.InputPath == "" {
			opts.InputPath = rest[0]
			break
		}
		fallthrough
	default:
		fmt.Fprintf(stderr, "Error: expected at most one input file\n")
		return opts, 2, true
	}

	return opts, 0, false
}
