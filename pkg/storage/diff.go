package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// Drift is a page whose content on disk differs from the freshly generated one.
type Drift struct {
	Name string
	// Stale is set for pages on disk that are no longer generated.
	Stale bool
	Diff  string
}

// Diff compares generated pages with the files in dir. Files in dir with the
// given extension that were not generated are reported as stale, except names
// listed in keep.
func Diff(dir string, pages map[string]string, ext string, keep ...string) ([]Drift, error) {
	var drifts []Drift

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		existing, err := readExisting(dir, name)
		if err != nil {
			return nil, err
		}
		if existing == pages[name] {
			continue
		}
		drifts = append(drifts, Drift{Name: name, Diff: unifiedDiff(name, existing, pages[name])})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return drifts, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) || slices.Contains(keep, name) {
			continue
		}
		if _, generated := pages[name]; generated {
			continue
		}
		existing, err := readExisting(dir, name)
		if err != nil {
			return nil, err
		}
		drifts = append(drifts, Drift{Name: name, Stale: true, Diff: unifiedDiff(name, existing, "")})
	}

	return drifts, nil
}

func readExisting(dir, name string) (string, error) {
	path, err := ValidatePathWithinDir(name, dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}

// unifiedDiff creates a unified diff with three lines of context.
func unifiedDiff(name, original, modified string) string {
	edits := udiff.Strings(original, modified)
	unified, err := udiff.ToUnified("a/"+name, "b/"+name, original, edits, 3)
	if err != nil {
		return fmt.Sprintf("--- a/%s\n+++ b/%s\n(diff generation failed)\n", name, name)
	}
	return unified
}

// ReadPages loads every file with the given extension in dir, keyed by name.
func ReadPages(dir, ext string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	pages := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		content, err := readExisting(dir, name)
		if err != nil {
			return nil, err
		}
		pages[name] = content
	}
	return pages, nil
}
