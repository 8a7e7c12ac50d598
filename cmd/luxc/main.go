// Command luxc is the Lux compiler driver (component H): it sequences
// B->C->E->F->G over one shared arena and returns the process exit
// status, generalizing wut4's lang/ya/main.go subprocess-orchestration
// driver into an in-process pipeline (SPEC_FULL.md §2) with a cobra
// command tree standing in for ya's stdlib-flag validation.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luxlang/luxc/internal/arena"
	"github.com/luxlang/luxc/internal/checker"
	"github.com/luxlang/luxc/internal/config"
	"github.com/luxlang/luxc/internal/diag"
	"github.com/luxlang/luxc/internal/irgen"
	"github.com/luxlang/luxc/internal/lexer"
	"github.com/luxlang/luxc/internal/parser"
	"github.com/luxlang/luxc/internal/srcfile"
)

// version is stamped at release time; "dev" is the unreleased default,
// same convention as the other cobra-based tools in the pack.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := &config.Build{}

	var showVersion, showLicense bool
	root := &cobra.Command{
		Use:   "luxc",
		Short: "luxc compiles Lux source files to native object files",
		RunE: func(cmd *cobra.Command, args []string) error {
			// spec.md §6's -v/--version and -l/--license short-circuit
			// any subcommand dispatch and exit 0; -h/--help is cobra's
			// own default handling, already wired by AddCommand.
			switch {
			case showVersion:
				fmt.Printf("luxc %s\n", version)
			case showLicense:
				fmt.Println(licenseText)
			default:
				return cmd.Help()
			}
			return nil
		},
	}
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "print version and exit")
	root.Flags().BoolVarP(&showLicense, "license", "l", false, "print license and exit")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "V", false, "print stage timing to stderr")

	var exitCode int

	buildCmd := &cobra.Command{
		Use:   "build <source-file>",
		Short: "Compile a Lux source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.SourceFile = args[0]
			exitCode = runBuild(cfg)
			if exitCode != 0 {
				return fmt.Errorf("build failed")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	buildCmd.Flags().StringVar(&cfg.TargetName, "name", "", "base name of the <name>.out output directory (defaults to the source file's stem)")
	buildCmd.Flags().BoolVar(&cfg.SaveIR, "save", false, "keep intermediate .ll IR text alongside each object file")
	buildCmd.Flags().BoolVar(&cfg.Clean, "clean", false, "remove the output directory's contents before compiling")

	root.AddCommand(buildCmd)

	if err := root.Execute(); err != nil {
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

// runBuild implements spec.md §4.8's driver sequence: parse invocation
// options (already done by cobra by the time this runs), initialize one
// arena, read the source file, run B->C->E->F->G, and return a process
// exit status -- zero only if every stage succeeded.
func runBuild(cfg *config.Build) int {
	logger := newLogger(cfg.Verbose)
	defer logger.Sync()

	src, err := srcfile.Read(cfg.SourceFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	targetName := cfg.TargetName
	if targetName == "" {
		base := filepath.Base(cfg.SourceFile)
		targetName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	outputDir := targetName + ".out"
	if cfg.Clean {
		os.RemoveAll(outputDir)
	}

	// The arena is the sole long-lived allocation container for this
	// run (spec.md §4.1/§4.8); a 1 MiB starting buffer matches spec.md
	// §4.8's stated default.
	a := arena.New(1 << 20)
	var sink diag.Sink

	logger.Debug("lexing", zap.String("file", cfg.SourceFile))
	start := time.Now()
	toks := lexer.ScanAll(src, cfg.SourceFile, &sink)
	logger.Debug("lex complete", zap.Duration("elapsed", time.Since(start)), zap.Int("tokens", len(toks)))
	if sink.HasErrors() {
		sink.Report(os.Stderr)
		return 1
	}

	logger.Debug("parsing")
	start = time.Now()
	p := parser.New(a, src, cfg.SourceFile, &sink, toks)
	prog := p.Parse()
	logger.Debug("parse complete", zap.Duration("elapsed", time.Since(start)))
	if sink.HasErrors() {
		sink.Report(os.Stderr)
		return 1
	}

	logger.Debug("type checking")
	start = time.Now()
	c := checker.NewChecker(a, &sink, cfg.SourceFile, src)
	c.Check(prog)
	for _, w := range c.Warnings {
		logger.Debug("warning: " + w)
	}
	logger.Debug("check complete", zap.Duration("elapsed", time.Since(start)))
	if sink.HasErrors() {
		sink.Report(os.Stderr)
		return 1
	}

	logger.Debug("lowering to IR")
	start = time.Now()
	modules := irgen.Lower(a, prog, &sink, cfg.SourceFile)
	logger.Debug("lowering complete", zap.Duration("elapsed", time.Since(start)), zap.Int("modules", len(modules)))
	if sink.HasErrors() {
		sink.Report(os.Stderr)
		return 1
	}

	backend := &irgen.LLCBackend{}
	for _, mod := range modules {
		name := mod.SourceFilename
		if err := backend.EmitObject(mod, name, outputDir); err != nil {
			fmt.Fprintf(os.Stderr, "luxc: emitting %s: %v\n", name, err)
			return 1
		}
		if !cfg.SaveIR {
			os.Remove(filepath.Join(outputDir, name+".ll"))
		}
	}

	logger.Info("build succeeded", zap.String("output", outputDir), zap.Int("modules", len(modules)))
	return 0
}

// newLogger builds a zap logger whose level tracks -V/--verbose: stage
// timing and non-diagnostic warnings (spec.md §4.6's `main` visibility
// promotion, surfaced via Checker.Warnings) are Debug-level and only
// printed when the driver is asked to be verbose, the same gating wut4's
// own driver applies to its *verbose-guarded fmt.Fprintf(os.Stderr, ...)
// lines.
func newLogger(verbose bool) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.DisableStacktrace = true
	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

const licenseText = `luxc is distributed under the terms of the MIT license.
See the LICENSE file in the source distribution for the full text.`
