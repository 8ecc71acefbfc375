package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateRoot checks that root names an existing, readable directory.
// A missing root is reported as ErrCodeNotFound so it surfaces the same way
// as a missing pnpm-workspace.yaml.
func ValidateRoot(root string) error {
	if root == "" {
		return New(ErrCodeInvalidInput, "workspace path cannot be empty")
	}

	info, err := os.Stat(root)
	if err != nil {
		return Wrap(ErrCodeNotFound, err, "workspace %s is not accessible", root)
	}
	if !info.IsDir() {
		return New(ErrCodeNotFound, "workspace %s is not a directory", root)
	}
	return nil
}

// ValidatePattern performs the checks on a packages entry that the glob
// compiler does not: it must be non-empty, free of control characters and
// relative to the workspace root.
//
// Glob syntax itself is validated by the locate package.
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return New(ErrCodeInvalidPattern, "pattern cannot be empty")
	}

	for _, r := range pattern {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPattern, "pattern %q contains control characters", pattern)
		}
	}

	if filepath.IsAbs(pattern) || strings.HasPrefix(pattern, "/") {
		return New(ErrCodeInvalidPattern, "pattern %q must be relative to the workspace root", pattern)
	}

	return nil
}
