package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type project struct {
	dir    string
	config string
	out    string
}

func newProject(t *testing.T, config string, files map[string]string) project {
	t.Helper()
	dir := t.TempDir()
	p := project{dir: dir, config: filepath.Join(dir, "camp.yaml"), out: filepath.Join(dir, "out")}
	require.NoError(t, os.WriteFile(p.config, []byte(config), 0o644))
	for name, content := range files {
		path := filepath.Join(dir, "src", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return p
}

func (p project) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	base := []string{"--config", p.config, "--out", p.out}
	code := run(context.Background(), append(base, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCLIArgumentParsing(t *testing.T) {
	t.Run("help flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"--help"}, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Contains(t, stderr.String(), "Usage: camp [options] <paths...>")
		assert.Contains(t, stderr.String(), "--no-skip")
		assert.Contains(t, stderr.String(), "./...")
	})

	t.Run("unknown flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"--module", "x"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
	})

	t.Run("no arguments", func(t *testing.T) {
		p := newProject(t, "version: v1.0.0\n", nil)
		code, _, stderr := p.run()
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "At least one path is required")
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		p := newProject(t, "version: v1.0.0\n", nil)
		code, _, stderr := p.run(filepath.Join(p.dir, "missing") + "/...")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "path does not exist")
	})

	t.Run("invalid config", func(t *testing.T) {
		p := newProject(t, "version: v2.0.0\n", nil)
		code, _, stderr := p.run("./...")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Type: ConfigurationError")
		assert.Contains(t, stderr, "not supported")
	})
}

func TestCLIRewrite(t *testing.T) {
	p := newProject(t, "version: v1.0.0\n", map[string]string{
		"app.js": `
/** @constructor */
function Foo() {}
var foo = camp.utils.dependencies.resolve(Foo, bindings);
`,
	})

	code, stdout, stderr := p.run(filepath.Join(p.dir, "src") + "/...")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "camp: JavaScript Metaprogramming Rewriter")
	assert.Contains(t, stdout, "Rewrite Complete!")
	assert.Contains(t, stdout, "Units written: 1")

	content, err := os.ReadFile(filepath.Join(p.out, "app.js"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "var foo = Foo.jscomp$newInstance(bindings);")
	assert.FileExists(t, filepath.Join(p.out, "camp-manifest.yaml"))

	code, stdout, _ = p.run(filepath.Join(p.dir, "src") + "/...")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Units unchanged: 1")

	code, stdout, _ = p.run("--no-skip", filepath.Join(p.dir, "src")+"/...")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Units written: 1")

	code, stdout, _ = p.run("--clean")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Removed 2 generated files")
	assert.NoFileExists(t, filepath.Join(p.out, "app.js"))
	assert.FileExists(t, filepath.Join(p.dir, "src", "app.js"))
}

func TestCLIHaltOnError(t *testing.T) {
	src := map[string]string{"a.js": `
var T = camp.trait({x: 1});
function setup() {
  camp.mixin(A, [T]);
}
`}

	t.Run("halt", func(t *testing.T) {
		p := newProject(t, "version: v1.0.0\n", src)
		code, _, stderr := p.run("--quiet", filepath.Join(p.dir, "src")+"/...")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "[JSC_MESSAGE_FUNCTION_MUST_BE_CALLED_IN_GLOBAL_SCOPE]")
		assert.NoFileExists(t, filepath.Join(p.out, "a.js"))
	})

	t.Run("continue", func(t *testing.T) {
		p := newProject(t, "version: v1.0.0\nhalt_on_error: false\n", src)
		code, stdout, stderr := p.run(filepath.Join(p.dir, "src") + "/...")
		assert.Equal(t, 0, code)
		assert.Contains(t, stderr, "[JSC_MESSAGE_FUNCTION_MUST_BE_CALLED_IN_GLOBAL_SCOPE]")
		assert.Contains(t, stdout, "Errors: 1")
		assert.FileExists(t, filepath.Join(p.out, "a.js"))
	})
}
