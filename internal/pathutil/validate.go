// Package pathutil checks file paths before jiggle writes to them.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvandessel/jiggle/internal/constants"
)

// RedactPath shortens a path to .../<parent>/<base> for error messages, so
// home directories and user names stay out of logs.
func RedactPath(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Base(filepath.Dir(cleaned))
	if parent == "." || parent == string(filepath.Separator) {
		return filepath.Base(cleaned)
	}
	return ".../" + parent + "/" + filepath.Base(cleaned)
}

// ValidatePath returns an error unless path, after cleaning and symlink
// resolution of its existing ancestors, lies inside one of allowedDirs.
// The file itself need not exist.
func ValidatePath(path string, allowedDirs []string) error {
	switch {
	case path == "":
		return fmt.Errorf("path validation failed: path is empty")
	case len(allowedDirs) == 0:
		return fmt.Errorf("path validation failed: no allowed directories configured")
	case strings.ContainsRune(path, '\x00'):
		return fmt.Errorf("path validation failed: path contains null byte")
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	dir, err := resolveExisting(filepath.Dir(abs))
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	resolved := filepath.Join(dir, filepath.Base(abs))

	for _, allowed := range allowedDirs {
		allowedAbs, err := filepath.Abs(filepath.Clean(allowed))
		if err != nil {
			continue
		}
		allowedResolved, err := resolveExisting(allowedAbs)
		if err != nil {
			continue
		}
		if within(resolved, allowedResolved) {
			return nil
		}
	}
	return fmt.Errorf("path validation failed: %q is outside allowed directories", RedactPath(abs))
}

// resolveExisting evaluates symlinks on the deepest existing ancestor of dir
// and re-appends the missing tail.
func resolveExisting(dir string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved, nil
	}
	parent := filepath.Dir(dir)
	if parent == dir {
		return "", fmt.Errorf("cannot resolve path: %s", RedactPath(dir))
	}
	resolvedParent, err := resolveExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(dir)), nil
}

// within reports whether path is base or lies below it.
func within(path, base string) bool {
	return path == base || strings.HasPrefix(path, base+string(os.PathSeparator))
}

// ConfigDirs returns the directories jiggle may write configuration to:
// ~/.jiggle and <projectRoot>/.jiggle.
func ConfigDirs(projectRoot string) ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return []string{
		filepath.Join(homeDir, constants.ConfigDirName),
		filepath.Join(projectRoot, constants.ConfigDirName),
	}, nil
}
