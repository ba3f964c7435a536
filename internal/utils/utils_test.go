package utils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedRegistry_BasicOperations(t *testing.T) {
	registry := NewOrderedRegistry[string, int]()

	if registry.Size() != 0 {
		t.Errorf("expected empty registry, got size %d", registry.Size())
	}

	registry.Set("b", 1)
	registry.Set("a", 2)
	registry.Set("b", 3)

	value, exists := registry.Get("b")
	if !exists || value != 3 {
		t.Errorf("expected last write to win, got %d (exists=%v)", value, exists)
	}
	if _, exists := registry.Get("missing"); exists {
		t.Error("expected missing key to be absent")
	}
	if registry.Has("missing") {
		t.Error("expected Has to report the missing key")
	}

	assert.Equal(t, []string{"b", "a"}, registry.Keys())
	assert.Equal(t, []int{3, 2}, registry.Values())
}

func TestOrderedRegistry_MergeAndFilter(t *testing.T) {
	base := NewOrderedRegistry[string, int]()
	base.Set("x", 1)

	shard := NewOrderedRegistry[string, int]()
	shard.Set("y", 2)
	shard.Set("x", 10)

	base.Merge(shard)
	assert.Equal(t, []string{"x", "y"}, base.Keys())
	v, _ := base.Get("x")
	assert.Equal(t, 10, v)

	even := base.Filter(func(k string, v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{10, 2}, even)
}

func TestCache_GetOrCompute(t *testing.T) {
	cache := NewCache[string, int]()
	calls := 0
	compute := func() (int, error) {
		calls++
		return 7, nil
	}

	v, err := cache.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = cache.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)

	_, err = cache.GetOrCompute("bad", func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, 1, cache.Size())
}

func TestCache_Concurrent(t *testing.T) {
	cache := NewCache[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = cache.GetOrCompute(i%5, func() (int, error) { return i % 5, nil })
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, cache.Size())
}

func TestFileProcessor_FindJSFiles(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"a.js":                  "var a;",
		"lib/b.js":              "var b;",
		"lib/b.min.js":          "var b;",
		"node_modules/dep/c.js": "var c;",
		".hidden/d.js":          "var d;",
		"out/e.js":              "var e;",
		"notes.txt":             "nope",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	fp := NewFileProcessor(filepath.Join(root, "out"))
	found, err := fp.FindJSFiles(root)
	require.NoError(t, err)

	var rel []string
	for _, f := range found {
		r, _ := filepath.Rel(root, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"a.js", "lib/b.js"}, rel)
}

func TestFileProcessor_WriteAndRemove(t *testing.T) {
	root := t.TempDir()
	fp := NewFileProcessor()
	target := filepath.Join(root, "nested", "dir", "out.js")

	require.NoError(t, fp.WriteOutput(target, []byte("x;")))
	content, err := fp.ReadSource(target)
	require.NoError(t, err)
	assert.Equal(t, "x;", string(content))

	removed, err := fp.RemoveFiles([]string{target, filepath.Join(root, "gone.js")})
	require.NoError(t, err)
	assert.Equal(t, []string{target}, removed)
}

func TestValidatorChain(t *testing.T) {
	chain := NewValidatorChain(
		NotEmpty("output.dir"),
		IsRelativePath("output.dir"),
	)
	assert.NoError(t, chain.Validate("camp-out"))
	assert.Error(t, chain.Validate(""))
	assert.Error(t, chain.Validate("../escape"))

	err := Custom("output.manifest", "must be a file name", func(v string) bool {
		return filepath.Base(v) == v
	})("a/b.yaml")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "output.manifest", verr.Field)

	each := ValidateEach("exclude", NotEmpty("name"))
	assert.Error(t, each([]string{"a", ""}))
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&out, &errOut)

	d.Info("scanning %d files", 3)
	d.Verbose("hidden")
	d.Error("broken")
	d.Summary("Summary", map[string]interface{}{"b": 2, "a": 1})

	assert.Contains(t, out.String(), "[INFO] scanning 3 files")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, errOut.String(), "[ERROR] broken")
	assert.True(t, strings.Index(out.String(), "a: 1") < strings.Index(out.String(), "b: 2"))
	assert.False(t, d.UseColors())
}

func TestDiagnosticSystem_Progress(t *testing.T) {
	var out bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticVerbose)
	d.SetOutput(&out, &out)

	d.StartProgress("Parsing sources")
	d.EndProgress(true)
	d.EndProgress(true)

	assert.Contains(t, out.String(), "Parsing sources...")
	assert.Equal(t, 1, strings.Count(out.String(), "finished in"))
}
