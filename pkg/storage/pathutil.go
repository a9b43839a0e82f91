package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePathWithinDir resolves name against dir and checks that the result
// stays inside dir.
//
// Page names come from resource names in the collection, so a name such as
// "../../etc/passwd" must not let a page escape the output directory. Absolute
// names are rejected unless they already point inside dir.
func ValidatePathWithinDir(name, dir string) (absPath string, err error) {
	targetPath := name
	if !filepath.IsAbs(targetPath) {
		targetPath = filepath.Join(dir, targetPath)
	}

	absPath, err = filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}

	// Trailing separator so /out-evil does not match /out
	if !strings.HasSuffix(absDir, string(filepath.Separator)) {
		absDir += string(filepath.Separator)
	}

	if !strings.HasPrefix(absPath, absDir) {
		return "", fmt.Errorf("access denied: %s is outside the output directory", name)
	}

	return absPath, nil
}
