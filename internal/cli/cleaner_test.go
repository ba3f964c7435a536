package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/a.js":     "var a = 1;\n",
		"src/lib/b.js": "var b = 1;\n",
	})

	cfg := DefaultConfig()
	cfg.Paths = []string{filepath.Join(dir, "src") + "/..."}
	cfg.Output.Dir = filepath.Join(dir, "out")

	var out, errOut bytes.Buffer
	require.NoError(t, NewGenerator(cfg, quietDiagnostics(&out, &errOut)).Generate(context.Background()))

	// Files in the output directory that camp did not write survive
	keep := filepath.Join(cfg.Output.Dir, "keep.js")
	require.NoError(t, os.WriteFile(keep, []byte("var keep;"), 0o644))

	removed, err := NewCleaner().CleanGeneratedFiles(cfg)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(cfg.Output.Dir, "a.js"),
		filepath.Join(cfg.Output.Dir, "lib", "b.js"),
		cfg.ManifestPath(),
	}, removed)

	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, "a.js"))
	assert.NoFileExists(t, cfg.ManifestPath())
	assert.FileExists(t, keep)
	assert.FileExists(t, filepath.Join(dir, "src", "a.js"))

	removed, err = NewCleaner().CleanGeneratedFiles(cfg)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCleaner_IgnoresEntriesOutsideOutput(t *testing.T) {
	dir := t.TempDir()
	victim := filepath.Join(dir, "victim.js")
	require.NoError(t, os.WriteFile(victim, []byte("var v;"), 0o644))

	cfg := DefaultConfig()
	cfg.Output.Dir = filepath.Join(dir, "out")
	manifest := &Manifest{Version: ConfigVersion, Units: []ManifestEntry{
		{ID: UnitID("../victim.js"), Input: "victim.js", Output: "../victim.js"},
	}}
	require.NoError(t, manifest.Save(cfg.ManifestPath()))

	removed, err := NewCleaner().CleanGeneratedFiles(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.ManifestPath()}, removed)
	assert.FileExists(t, victim)
}

func TestManifest(t *testing.T) {
	assert.Equal(t, UnitID("a/b.js"), UnitID("a/b.js"))
	assert.NotEqual(t, UnitID("a/b.js"), UnitID("a/c.js"))
	assert.Len(t, UnitID("a.js"), 36)

	assert.Equal(t, Fingerprint("var a;\n"), Fingerprint("var a;\n"))
	assert.NotEqual(t, Fingerprint("var a;\n"), Fingerprint("var b;\n"))

	path := filepath.Join(t.TempDir(), "m.yaml")
	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Empty(t, m.Units)

	m.Units = append(m.Units, ManifestEntry{ID: UnitID("a.js"), Input: "src/a.js", Output: "a.js", Fingerprint: Fingerprint("x")})
	require.NoError(t, m.Save(path))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	entry, ok := loaded.Lookup(UnitID("a.js"))
	require.True(t, ok)
	assert.Equal(t, "src/a.js", entry.Input)
	_, ok = loaded.Lookup(UnitID("b.js"))
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("units: {"), 0o644))
	_, err = LoadManifest(path)
	assert.Error(t, err)
}
