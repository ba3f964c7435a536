package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/factory"
	"github.com/toyz/camp/internal/injections"
	"github.com/toyz/camp/internal/mixin"
	"github.com/toyz/camp/internal/utils"
)

const (
	// DefaultConfigFile is looked up when no --config flag is given
	DefaultConfigFile = "camp.yaml"

	// ConfigVersion is the schema version written by camp; files must share
	// its major version
	ConfigVersion = "v1.0.0"

	supportedMajor = "v1"
)

// Config holds the configuration of a generation run
type Config struct {
	Version       string       `yaml:"version"`
	Passes        PassConfig   `yaml:"passes"`
	Output        OutputConfig `yaml:"output"`
	HaltOnError   bool         `yaml:"halt_on_error"`
	SkipUnchanged bool         `yaml:"skip_unchanged"`
	Exclude       []string     `yaml:"exclude"`

	// Paths are the inputs given on the command line
	Paths []string `yaml:"-"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"-"`

	// Source is the file the configuration was read from, empty for defaults
	Source string `yaml:"-"`
}

// PassConfig selects the engines that run, always in this order
type PassConfig struct {
	Injections bool `yaml:"injections"`
	Factories  bool `yaml:"factories"`
	Mixins     bool `yaml:"mixins"`
}

// OutputConfig places the rewritten sources and the run manifest
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Manifest string `yaml:"manifest"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Version: ConfigVersion,
		Passes: PassConfig{
			Injections: true,
			Factories:  true,
			Mixins:     true,
		},
		Output: OutputConfig{
			Dir:      "camp-out",
			Manifest: "camp-manifest.yaml",
		},
		HaltOnError:   true,
		SkipUnchanged: true,
		Exclude:       []string{"node_modules", "camp-out"},
	}
}

// ParseConfig decodes a YAML configuration over the defaults, so missing
// keys keep their default values
func ParseConfig(name string, data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.WrapConfigurationError(name, "parse", err)
	}
	cfg.Source = name
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads the configuration at path. An empty path looks for
// camp.yaml in the working directory and its parents and falls back to the
// defaults when there is none.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		found, ok, err := NewConfigResolver().Find(DefaultConfigFile)
		if err != nil {
			return nil, err
		}
		if !ok {
			return DefaultConfig(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "read", err)
	}
	return ParseConfig(path, data)
}

// Validate checks the schema version and the option values
func (c *Config) Validate() error {
	name := c.Source
	if name == "" {
		name = DefaultConfigFile
	}

	if !semver.IsValid(c.Version) {
		return errors.ConfigurationError(name, fmt.Sprintf("version %q is not a semantic version", c.Version)).
			WithSuggestion("use a version like " + ConfigVersion)
	}
	if major := semver.Major(c.Version); major != supportedMajor {
		return errors.ConfigurationError(name, fmt.Sprintf("version %s is not supported, expected %s.x.y", c.Version, supportedMajor))
	}

	dirs := utils.NewValidatorChain(utils.NotEmpty("output.dir"))
	manifest := utils.NewValidatorChain(
		utils.NotEmpty("output.manifest"),
		utils.Custom("output.manifest", "must be a file name", func(s string) bool {
			return filepath.Base(s) == s
		}),
	)
	passes := utils.Custom("passes", "at least one pass must be enabled", func(p PassConfig) bool {
		return p.Injections || p.Factories || p.Mixins
	})

	for _, err := range []error{
		dirs.Validate(c.Output.Dir),
		manifest.Validate(c.Output.Manifest),
		passes(c.Passes),
		utils.ValidateEach("exclude", utils.NotEmpty("exclude"))(c.Exclude),
	} {
		if err != nil {
			return errors.ConfigurationError(name, err.Error())
		}
	}
	return nil
}

// CompilerPasses returns the enabled passes in execution order
func (c *Config) CompilerPasses() []compiler.Pass {
	var passes []compiler.Pass
	if c.Passes.Injections {
		passes = append(passes, injections.New())
	}
	if c.Passes.Factories {
		passes = append(passes, factory.New())
	}
	if c.Passes.Mixins {
		passes = append(passes, mixin.New())
	}
	return passes
}

// ManifestPath is where the run manifest is written
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Output.Dir, c.Output.Manifest)
}
