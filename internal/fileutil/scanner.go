package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".log", "txt")
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeDirs is a list of directory names to exclude (e.g., ".git", "node_modules")
	ExcludeDirs []string
}

// ScanResult contains the results of discovery
type ScanResult struct {
	// Files contains the discovered files in analysis order
	Files []string
	// Errors contains non-fatal errors encountered while scanning directories
	Errors []error
}

// Discover expands paths into the files to analyze. Missing files are kept so
// the analyzer can report them; only a blank argument is an error. An empty
// result is not an error.
func Discover(paths []string, opts ScanOptions) (*ScanResult, error) {
	result := &ScanResult{
		Files:  make([]string, 0, len(paths)),
		Errors: make([]error, 0),
	}
	seen := make(map[string]bool)

	add := func(path string) {
		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if seen[key] {
			return
		}
		seen[key] = true
		result.Files = append(result.Files, path)
	}

	for _, arg := range paths {
		if strings.TrimSpace(arg) == "" {
			return nil, fmt.Errorf("empty path argument")
		}
		path := filepath.Clean(arg)

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			add(path)
			continue
		}

		files, errs := scanDirectory(path, opts)
		result.Errors = append(result.Errors, errs...)
		for _, f := range files {
			add(f)
		}
	}

	return result, nil
}

// scanDirectory returns the sorted matches under dir.
func scanDirectory(dir string, opts ScanOptions) ([]string, []error) {
	var files []string
	var errs []error

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if !opts.Recursive || excludeMap[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if len(extMap) > 0 && !extMap[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to walk directory %s: %w", dir, err))
	}

	sort.Strings(files)
	return files, errs
}
