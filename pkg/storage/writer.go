// Package storage persists generated pages on disk or in memory and compares
// freshly generated pages with the ones already written.
package storage

import (
	"fmt"
	"maps"
	"os"
	"slices"
)

// DirWriter writes pages into a single directory.
type DirWriter struct {
	dir string
}

// NewDirWriter creates a writer for dir. The directory is created lazily by EnsureDir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{dir: dir}
}

// Dir returns the output directory.
func (w *DirWriter) Dir() string {
	return w.dir
}

// EnsureDir creates the output directory if needed. Calling it again is a no-op.
func (w *DirWriter) EnsureDir() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Write stores content as name inside the output directory, overwriting any
// existing file.
func (w *DirWriter) Write(name, content string) error {
	path, err := ValidatePathWithinDir(name, w.dir)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// MemoryWriter keeps pages in memory. It is used to render without touching the
// output directory, e.g. for drift checks.
type MemoryWriter struct {
	pages map[string]string
}

// NewMemoryWriter creates an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{pages: make(map[string]string)}
}

// EnsureDir implements convert.ArtifactWriter.
func (w *MemoryWriter) EnsureDir() error {
	return nil
}

// Write implements convert.ArtifactWriter.
func (w *MemoryWriter) Write(name, content string) error {
	w.pages[name] = content
	return nil
}

// Page returns the content stored under name.
func (w *MemoryWriter) Page(name string) (string, bool) {
	content, ok := w.pages[name]
	return content, ok
}

// Names returns the stored page names in sorted order.
func (w *MemoryWriter) Names() []string {
	return slices.Sorted(maps.Keys(w.pages))
}

// Pages returns a copy of all stored pages.
func (w *MemoryWriter) Pages() map[string]string {
	return maps.Clone(w.pages)
}
