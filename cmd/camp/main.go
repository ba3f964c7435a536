package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/toyz/camp/internal/cli"
	"github.com/toyz/camp/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("camp", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		configFlag  = flags.String("config", "", "Configuration file (defaults to camp.yaml in the working directory or a parent)")
		outFlag     = flags.String("out", "", "Output directory, overriding output.dir")
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors")
		cleanFlag   = flags.Bool("clean", false, "Delete the outputs listed in the manifest of the last run")
		noSkipFlag  = flags.Bool("no-skip", false, "Rewrite every output even when its fingerprint is unchanged")
		helpFlag    = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: camp [options] <paths...>\n\n")
		fmt.Fprintf(stderr, "Camp JavaScript Metaprogramming Rewriter\n")
		fmt.Fprintf(stderr, "Inlines dependency injection, generates factories and composes traits.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  paths              Files or directories holding JavaScript sources\n")
		fmt.Fprintf(stderr, "                     Supports patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  camp ./...                        # Rewrite everything below the current directory\n")
		fmt.Fprintf(stderr, "  camp --out dist/js ./src/...      # Write outputs to dist/js\n")
		fmt.Fprintf(stderr, "  camp --config build/camp.yaml ./src/...\n")
		fmt.Fprintf(stderr, "  camp --clean                      # Delete the outputs of the last run\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	if *helpFlag {
		flags.Usage()
		return 0
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if stdout != os.Stdout || stderr != os.Stderr {
		diagnostics.SetOutput(stdout, stderr)
	}

	cfg, err := cli.LoadConfig(*configFlag)
	if err != nil {
		cli.NewDiagnosticReporter(diagnostics).ReportError(err)
		return 1
	}
	if *outFlag != "" {
		cfg.Output.Dir = *outFlag
	}
	if *noSkipFlag {
		cfg.SkipUnchanged = false
	}
	cfg.Verbose = *verboseFlag
	cfg.Paths = flags.Args()
	if err := cfg.Validate(); err != nil {
		cli.NewDiagnosticReporter(diagnostics).ReportError(err)
		return 1
	}

	diagnostics.Header("JavaScript Metaprogramming Rewriter")

	if *cleanFlag {
		diagnostics.StartProgress("Cleaning generated files")
		removed, err := cli.NewCleaner().CleanGeneratedFiles(cfg)
		if err != nil {
			diagnostics.EndProgress(false)
			cli.NewDiagnosticReporter(diagnostics).ReportError(err)
			return 1
		}
		diagnostics.EndProgress(true)
		for _, path := range removed {
			diagnostics.Verbose("removed %s", path)
		}
		diagnostics.Success("Removed %d generated files", len(removed))
		return 0
	}

	if len(cfg.Paths) == 0 {
		fmt.Fprintf(stderr, "Error: At least one path is required\n\n")
		flags.Usage()
		return 1
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		source := cfg.Source
		if source == "" {
			source = "defaults"
		}
		diagnostics.List("Config: %s", source)
		diagnostics.List("Paths: %s", strings.Join(cfg.Paths, ", "))
		diagnostics.List("Output: %s", cfg.Output.Dir)
		diagnostics.List("Halt on error: %t", cfg.HaltOnError)
		diagnostics.List("Skip unchanged: %t", cfg.SkipUnchanged)
	}

	generator := cli.NewGenerator(cfg, diagnostics)
	diagnostics.StartProgress("Rewriting sources")
	if err := generator.Generate(ctx); err != nil {
		diagnostics.EndProgress(false)
		generator.Reporter().ReportError(err)
		return 1
	}
	diagnostics.EndProgress(true)

	summary := generator.GetSummary()
	diagnostics.Summary("Rewrite Complete!", summary.Stats())
	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
	diagnostics.GenerationComplete()
	return 0
}
