package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileProcessor provides utilities for walking, reading and writing the
// JavaScript sources a run operates on
type FileProcessor struct {
	skipDirs map[string]bool
}

// NewFileProcessor creates a file processor that additionally skips the
// named directories (matched by base name or by cleaned path)
func NewFileProcessor(extraSkipDirs ...string) *FileProcessor {
	skip := map[string]bool{
		"node_modules": true,
		".git":         true,
		".svn":         true,
		".hg":          true,
		"testdata":     true,
	}
	for _, dir := range extraSkipDirs {
		if dir != "" {
			skip[filepath.Clean(dir)] = true
		}
	}
	return &FileProcessor{skipDirs: skip}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// JSFileFilter accepts .js sources, excluding minified bundles
func JSFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".js") && !strings.HasSuffix(name, ".min.js")
	}
}

// DirectoryFilter skips hidden directories and the configured skip list
func (fp *FileProcessor) DirectoryFilter() DirectoryFilter {
	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !fp.skipDirs[name] && !fp.skipDirs[filepath.Clean(path)]
	}
}

// WalkFiles walks through files in a directory tree with filtering. The
// result is sorted so runs see files in a stable order.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		// Apply directory filter
		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		// Apply file filter
		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}

		return nil
	})

	sort.Strings(matchedFiles)
	return matchedFiles, err
}

// FindJSFiles returns every JavaScript source below rootDir
func (fp *FileProcessor) FindJSFiles(rootDir string) ([]string, error) {
	files, err := fp.WalkFiles(rootDir, FileWalkOptions{
		FileFilter:      JSFileFilter(),
		DirectoryFilter: fp.DirectoryFilter(),
	})
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("directory walk %s", rootDir), err)
	}
	return files, nil
}

// ReadSource reads one source file
func (fp *FileProcessor) ReadSource(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapLoadError(path, err)
	}
	return content, nil
}

// WriteOutput writes content to path, creating parent directories
func (fp *FileProcessor) WriteOutput(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WrapWriteError(filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return WrapWriteError(path, err)
	}
	return nil
}

// RemoveFiles deletes the given files, ignoring ones already gone, and
// returns the paths actually removed
func (fp *FileProcessor) RemoveFiles(paths []string) ([]string, error) {
	var removed []string
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		} else if err != nil {
			return removed, WrapProcessError(fmt.Sprintf("file check %s", path), err)
		}

		if err := os.Remove(path); err != nil {
			return removed, WrapProcessError(fmt.Sprintf("file removal %s", path), err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}
