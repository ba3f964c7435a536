package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/utils"
)

// Source is one JavaScript input of a run
type Source struct {
	// Path is the file as found on disk
	Path string

	// Rel is the path below the scanned root, used to mirror the input
	// layout in the output directory
	Rel string
}

// DirectoryScanner finds the JavaScript sources named by command-line paths
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a scanner skipping the excluded directories
func NewDirectoryScanner(exclude ...string) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(exclude...),
	}
}

// ScanDirectories resolves the given paths into sources. A path ending in
// /... is scanned recursively, a directory contributes only its own files
// and a file is taken as is. Sources are returned in path order without
// duplicates.
func (s *DirectoryScanner) ScanDirectories(paths []string) ([]Source, error) {
	var sources []Source
	seen := make(map[string]bool)
	add := func(root, path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", path), err)
		}
		if seen[abs] {
			return nil
		}
		seen[abs] = true

		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(path)
		}
		sources = append(sources, Source{Path: path, Rel: rel})
		return nil
	}

	for _, path := range paths {
		recursive := false
		if path == "..." || strings.HasSuffix(path, "/...") {
			recursive = true
			path = strings.TrimSuffix(strings.TrimSuffix(path, "..."), "/")
			if path == "" {
				path = "."
			}
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.FileSystemError("scan", path, "path does not exist")
			}
			return nil, errors.WrapFileSystemError("scan", path, err)
		}

		if !info.IsDir() {
			if err := add(filepath.Dir(path), path); err != nil {
				return nil, err
			}
			continue
		}

		files, err := s.files(path, recursive)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if err := add(path, file); err != nil {
				return nil, err
			}
		}
	}
	return sources, nil
}

func (s *DirectoryScanner) files(dir string, recursive bool) ([]string, error) {
	if recursive {
		return s.fileProcessor.FindJSFiles(dir)
	}

	filter := utils.JSFileFilter()
	files, err := s.fileProcessor.WalkFiles(dir, utils.FileWalkOptions{
		FileFilter: filter,
		DirectoryFilter: func(path string, info os.DirEntry) bool {
			return false
		},
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", dir, err)
	}
	return files, nil
}
