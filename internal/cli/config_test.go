package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/camp/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("camp.yaml", []byte("version: v1.2.0\n"))
	require.NoError(t, err)

	assert.Equal(t, "v1.2.0", cfg.Version)
	assert.Equal(t, PassConfig{Injections: true, Factories: true, Mixins: true}, cfg.Passes)
	assert.Equal(t, "camp-out", cfg.Output.Dir)
	assert.Equal(t, "camp-manifest.yaml", cfg.Output.Manifest)
	assert.True(t, cfg.HaltOnError)
	assert.True(t, cfg.SkipUnchanged)
	assert.Equal(t, []string{"node_modules", "camp-out"}, cfg.Exclude)
	assert.Equal(t, "camp.yaml", cfg.Source)
	assert.Equal(t, filepath.Join("camp-out", "camp-manifest.yaml"), cfg.ManifestPath())
}

func TestParseConfig_EmptyFile(t *testing.T) {
	cfg, err := ParseConfig("camp.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, ConfigVersion, cfg.Version)
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := ParseConfig("camp.yaml", []byte(`
version: v1.0.0
passes:
  injections: false
output:
  dir: build/js
halt_on_error: false
skip_unchanged: false
exclude: [vendor]
`))
	require.NoError(t, err)

	assert.Equal(t, PassConfig{Injections: false, Factories: true, Mixins: true}, cfg.Passes)
	assert.Equal(t, "build/js", cfg.Output.Dir)
	assert.Equal(t, "camp-manifest.yaml", cfg.Output.Manifest)
	assert.False(t, cfg.HaltOnError)
	assert.False(t, cfg.SkipUnchanged)
	assert.Equal(t, []string{"vendor"}, cfg.Exclude)

	passes := cfg.CompilerPasses()
	require.Len(t, passes, 2)
	assert.Equal(t, "factory", passes[0].Name())
	assert.Equal(t, "mixins", passes[1].Name())
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"not semver", "version: '1.0'", "not a semantic version"},
		{"wrong major", "version: v2.0.0", "not supported"},
		{"unknown key", "version: v1.0.0\nmode: fast", "failed to parse"},
		{"no passes", "passes: {injections: false, factories: false, mixins: false}", "at least one pass"},
		{"manifest path", "output: {manifest: a/b.yaml}", "must be a file name"},
		{"empty output", "output: {dir: ''}", "output.dir"},
		{"empty exclude", "exclude: ['']", "exclude[0]"},
		{"malformed", "version: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("camp.yaml", []byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			campErr, ok := err.(errors.CampError)
			require.True(t, ok)
			assert.Equal(t, errors.ConfigurationErrorCode, campErr.ErrorCode())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: v1.1.0\nhalt_on_error: false\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.HaltOnError)
	assert.Equal(t, path, cfg.Source)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration")
}

func TestConfigResolver_Find(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("version: v1.0.0\n"), 0o644))

	path, ok, err := NewConfigResolverAt(nested).Find(DefaultConfigFile)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, DefaultConfigFile), path)

	_, ok, err = NewConfigResolverAt(nested).Find("no-such-config.yaml")
	require.NoError(t, err)
	assert.False(t, ok)
}
