package cli

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsparse"
	"github.com/toyz/camp/internal/utils"
)

// Generator runs the rewrite: scan, parse and collect every source, process
// the passes, then print and write the units that changed
type Generator struct {
	config        *Config
	scanner       *DirectoryScanner
	fileProcessor *utils.FileProcessor
	reporter      *DiagnosticReporter
	diagnostics   *utils.DiagnosticSystem
	summary       GenerationSummary

	// Diagnostics holds the engine diagnostics of the last run
	Diagnostics []errors.Diagnostic
}

// NewGenerator creates a generator for cfg reporting through diagnostics
func NewGenerator(cfg *Config, diagnostics *utils.DiagnosticSystem) *Generator {
	exclude := append([]string{cfg.Output.Dir}, cfg.Exclude...)
	return &Generator{
		config:        cfg,
		scanner:       NewDirectoryScanner(exclude...),
		fileProcessor: utils.NewFileProcessor(),
		reporter:      NewDiagnosticReporter(diagnostics),
		diagnostics:   diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Reporter returns the reporter used for diagnostics and failures
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// Generate rewrites the sources named by cfg.Paths. Engine diagnostics are
// printed as they are known; an error is returned for I/O, parse and
// configuration failures, and for error diagnostics when halt_on_error is
// set.
func (g *Generator) Generate(ctx context.Context) error {
	g.summary = GenerationSummary{}
	g.Diagnostics = nil

	g.diagnostics.PhaseHeader("Discovering sources")
	sources, err := g.scanner.ScanDirectories(g.config.Paths)
	if err != nil {
		return err
	}
	g.summary.FilesScanned = len(sources)
	if len(sources) == 0 {
		g.reporter.ReportWarning("no JavaScript sources found in " + strings.Join(g.config.Paths, ", "))
		return nil
	}
	g.diagnostics.PhaseItem("Found " + pluralize(len(sources), "source"))
	for _, src := range sources {
		g.diagnostics.Verbose("source %s", src.Path)
	}

	comp := compiler.New(g.config.CompilerPasses(), compiler.WithHaltOnError(g.config.HaltOnError))

	g.diagnostics.PhaseHeader("Parsing and collecting")
	units, err := g.collect(ctx, comp, sources)
	if err != nil {
		return err
	}
	g.diagnostics.PhaseItem("Collected " + pluralize(len(units), "unit"))

	g.diagnostics.PhaseHeader("Rewriting")
	run, runErr := comp.Run(ctx, units)
	g.Diagnostics = run.Diagnostics.Diagnostics()
	g.summary.Errors = run.Diagnostics.ErrorCount()
	g.summary.Warnings = run.Diagnostics.WarningCount()
	g.reporter.ReportDiagnostics(g.Diagnostics)
	if runErr != nil {
		return runErr
	}

	g.summary.Modules = len(run.Registry.Modules())
	g.summary.Factories = len(run.Registry.ResolvePoints()) + len(run.Registry.Binders())
	g.summary.Traits = len(run.Registry.Traits())
	g.summary.Mixins = len(run.Registry.Mixins())
	g.summary.CodeChanges = run.Changes()
	for _, p := range comp.Passes() {
		g.diagnostics.PhaseItem("Ran " + p.Name())
	}

	g.diagnostics.PhaseHeader("Writing outputs")
	return g.write(sources, units)
}

// collect parses and collects every source concurrently. Each unit owns its
// registry and diagnostics, and units keep the order of sources.
func (g *Generator) collect(ctx context.Context, comp *compiler.Compiler, sources []Source) ([]*compiler.Unit, error) {
	units := make([]*compiler.Unit, len(sources))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, src := range sources {
		i, src := i, src
		group.Go(func() error {
			content, err := g.fileProcessor.ReadSource(src.Path)
			if err != nil {
				return errors.WrapFileSystemError("read", src.Path, err)
			}
			root, err := jsparse.Parse(gctx, src.Path, content)
			if err != nil {
				return err
			}

			unit := compiler.NewUnit(src.Path, root)
			comp.Collect(unit)
			units[i] = unit
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// write prints every unit and writes those whose fingerprint differs from
// the previous manifest, then replaces the manifest
func (g *Generator) write(sources []Source, units []*compiler.Unit) error {
	previous, err := LoadManifest(g.config.ManifestPath())
	if err != nil {
		return err
	}
	manifest := &Manifest{Version: ConfigVersion}
	outputs := make(map[string]string)

	for i, unit := range units {
		src := sources[i]
		if other, dup := outputs[src.Rel]; dup {
			return errors.FileSystemError("write", src.Rel, "sources "+other+" and "+src.Path+" map to the same output").
				WithSuggestion("scan the directories containing both files with a common root")
		}
		outputs[src.Rel] = src.Path

		content := jsast.Print(unit.Root)
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		entry := ManifestEntry{
			ID:          UnitID(src.Rel),
			Input:       filepath.ToSlash(src.Path),
			Output:      filepath.ToSlash(src.Rel),
			Fingerprint: Fingerprint(content),
		}
		manifest.Units = append(manifest.Units, entry)

		path := filepath.Join(g.config.Output.Dir, src.Rel)
		if g.unchanged(previous, entry, path) {
			g.summary.UnitsUnchanged++
			g.diagnostics.Verbose("unchanged %s", path)
			continue
		}

		g.diagnostics.PhaseProgress("Writing " + path)
		if err := g.fileProcessor.WriteOutput(path, []byte(content)); err != nil {
			return errors.WrapFileSystemError("write", path, err)
		}
		g.summary.UnitsWritten++
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
	}

	return manifest.Save(g.config.ManifestPath())
}

func (g *Generator) unchanged(previous *Manifest, entry ManifestEntry, path string) bool {
	if !g.config.SkipUnchanged {
		return false
	}
	old, ok := previous.Lookup(entry.ID)
	if !ok || old.Fingerprint != entry.Fingerprint {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
