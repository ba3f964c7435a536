package cli

import (
	"path/filepath"

	"github.com/toyz/camp/internal/utils"
)

// Cleaner removes the outputs of previous runs
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes every output listed in the manifest of cfg
// and the manifest itself. Only listed files are touched, so sources living
// next to the outputs survive. It returns the removed paths.
func (c *Cleaner) CleanGeneratedFiles(cfg *Config) ([]string, error) {
	manifestPath := cfg.ManifestPath()
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	inside := utils.IsRelativePath("output")
	paths := make([]string, 0, len(manifest.Units)+1)
	for _, entry := range manifest.Units {
		if inside(entry.Output) != nil {
			continue
		}
		paths = append(paths, filepath.Join(cfg.Output.Dir, filepath.FromSlash(entry.Output)))
	}
	paths = append(paths, manifestPath)

	return c.fileProcessor.RemoveFiles(paths)
}
