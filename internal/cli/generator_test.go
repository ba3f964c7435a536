package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/toyz/camp/internal/testutil"
	"github.com/toyz/camp/internal/utils"
)

func quietDiagnostics(out, errOut *bytes.Buffer) *utils.DiagnosticSystem {
	ds := utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	ds.SetOutput(out, errOut)
	return ds
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// readOutputs concatenates every output below dir except the manifest, in
// path order
func readOutputs(t *testing.T, dir, manifest string) string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() != manifest {
			paths = append(paths, path)
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(paths)

	var parts []string
	for _, path := range paths {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		parts = append(parts, testutil.Squash(string(content)))
	}
	return strings.Join(parts, "\n")
}

func lines(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestGenerator_Scenarios(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, archive := range archives {
		name := strings.TrimSuffix(filepath.Base(archive), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(archive)
			require.NoError(t, err)

			dir := t.TempDir()
			cfg := DefaultConfig()
			var expect, wantKeys []string
			var wantErr string
			for _, f := range ar.Files {
				switch {
				case f.Name == DefaultConfigFile:
					cfg, err = ParseConfig(f.Name, f.Data)
					require.NoError(t, err)
				case f.Name == "expect":
					expect = lines(f.Data)
				case f.Name == "diagnostics":
					wantKeys = lines(f.Data)
				case f.Name == "error":
					wantErr = strings.TrimSpace(string(f.Data))
				default:
					writeTree(t, dir, map[string]string{f.Name: string(f.Data)})
				}
			}
			cfg.Paths = []string{filepath.Join(dir, "input") + "/..."}
			cfg.Output.Dir = filepath.Join(dir, "out")

			var out, errOut bytes.Buffer
			gen := NewGenerator(cfg, quietDiagnostics(&out, &errOut))
			err = gen.Generate(context.Background())

			var keys []string
			for _, d := range gen.Diagnostics {
				keys = append(keys, d.Type.Key)
			}
			assert.Equal(t, wantKeys, keys)

			if wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), wantErr)
				assert.NoDirExists(t, cfg.Output.Dir)
				return
			}
			require.NoError(t, err)

			output := readOutputs(t, cfg.Output.Dir, cfg.Output.Manifest)
			for _, line := range expect {
				assert.Contains(t, output, testutil.Squash(line))
			}
			assert.NotContains(t, output, "camp.mixin(")
		})
	}
}

func TestGenerator_MirrorsLayoutAndSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/a.js":           "var a = 1;\n",
		"src/nested/b.js":    "var b = 2;\n",
		"src/vendor.min.js":  "var c=3;\n",
		"src/camp-out/x.js":  "var stale = 1;\n",
		"src/node_modules/m": "ignored",
	})

	cfg := DefaultConfig()
	cfg.Paths = []string{filepath.Join(dir, "src") + "/..."}
	cfg.Output.Dir = filepath.Join(dir, "out")

	var out, errOut bytes.Buffer
	gen := NewGenerator(cfg, quietDiagnostics(&out, &errOut))
	require.NoError(t, gen.Generate(context.Background()))

	summary := gen.GetSummary()
	assert.Equal(t, 2, summary.FilesScanned)
	assert.Equal(t, 2, summary.UnitsWritten)
	assert.Equal(t, 0, summary.UnitsUnchanged)
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "a.js"))
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "nested", "b.js"))

	manifest, err := LoadManifest(cfg.ManifestPath())
	require.NoError(t, err)
	require.Len(t, manifest.Units, 2)
	assert.Equal(t, "a.js", manifest.Units[0].Output)
	assert.Equal(t, UnitID("a.js"), manifest.Units[0].ID)
	assert.Equal(t, "nested/b.js", manifest.Units[1].Output)
	assert.Len(t, manifest.Units[0].Fingerprint, 16)

	require.NoError(t, gen.Generate(context.Background()))
	summary = gen.GetSummary()
	assert.Equal(t, 0, summary.UnitsWritten)
	assert.Equal(t, 2, summary.UnitsUnchanged)

	cfg.SkipUnchanged = false
	require.NoError(t, gen.Generate(context.Background()))
	assert.Equal(t, 2, gen.GetSummary().UnitsWritten)
}

func TestGenerator_RewritesChangedOutput(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"src/a.js": "var a = 1;\n"})

	cfg := DefaultConfig()
	cfg.Paths = []string{filepath.Join(dir, "src")}
	cfg.Output.Dir = filepath.Join(dir, "out")

	var out, errOut bytes.Buffer
	gen := NewGenerator(cfg, quietDiagnostics(&out, &errOut))
	require.NoError(t, gen.Generate(context.Background()))

	writeTree(t, dir, map[string]string{"src/a.js": "var a = 2;\n"})
	require.NoError(t, gen.Generate(context.Background()))
	assert.Equal(t, 1, gen.GetSummary().UnitsWritten)

	content, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "a.js"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "var a = 2;")
}

func TestGenerator_ParseFailure(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/ok.js":     "var ok = 1;\n",
		"src/broken.js": "var = ;\n",
	})

	cfg := DefaultConfig()
	cfg.Paths = []string{filepath.Join(dir, "src") + "/..."}
	cfg.Output.Dir = filepath.Join(dir, "out")

	var out, errOut bytes.Buffer
	gen := NewGenerator(cfg, quietDiagnostics(&out, &errOut))
	err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.js")
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestGenerator_NoSources(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Paths = []string{dir + "/..."}
	cfg.Output.Dir = filepath.Join(dir, "out")

	var out, errOut bytes.Buffer
	gen := NewGenerator(cfg, quietDiagnostics(&out, &errOut))
	require.NoError(t, gen.Generate(context.Background()))
	assert.Contains(t, errOut.String(), "! no JavaScript sources found")
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestGenerator_PassSelection(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"src/a.js": `
/** @constructor */
function Foo() {}
var foo = camp.utils.dependencies.resolve(Foo, bindings);
`})

	cfg := DefaultConfig()
	cfg.Passes.Factories = false
	cfg.Paths = []string{filepath.Join(dir, "src")}
	cfg.Output.Dir = filepath.Join(dir, "out")

	var out, errOut bytes.Buffer
	gen := NewGenerator(cfg, quietDiagnostics(&out, &errOut))
	require.NoError(t, gen.Generate(context.Background()))

	output := readOutputs(t, cfg.Output.Dir, cfg.Output.Manifest)
	assert.Contains(t, output, "var foo = camp.utils.dependencies.resolve(Foo, bindings);")
	assert.NotContains(t, output, "jscomp$newInstance")
	assert.Contains(t, out.String(), "Ran injections")
	assert.NotContains(t, out.String(), "Ran factory")
}
