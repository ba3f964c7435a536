package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/camp/internal/errors"
)

// ConfigResolver locates the configuration file of a project
type ConfigResolver struct {
	start string
}

// NewConfigResolver creates a resolver searching from the working directory
func NewConfigResolver() *ConfigResolver {
	return &ConfigResolver{}
}

// NewConfigResolverAt creates a resolver searching from dir
func NewConfigResolverAt(dir string) *ConfigResolver {
	return &ConfigResolver{start: dir}
}

// Find looks for name in the start directory and its parents. The boolean
// is false when no directory up to the filesystem root has the file.
func (r *ConfigResolver) Find(name string) (string, bool, error) {
	currentDir := r.start
	if currentDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false, errors.WrapFileSystemError("resolve", ".", err)
		}
		currentDir = wd
	}
	currentDir, err := filepath.Abs(currentDir)
	if err != nil {
		return "", false, errors.WrapFileSystemError("resolve", currentDir, err)
	}

	for {
		candidate := filepath.Join(currentDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return "", false, nil
}
