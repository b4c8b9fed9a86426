package config

import (
	"os"
	"path/filepath"
	"strings"
)

// workingDir returns the process working directory, or "." when unknown.
func workingDir() string {
	if wd, err := os.Getwd(); err == nil && strings.TrimSpace(wd) != "" {
		return wd
	}
	return "."
}

// resolvePath resolves a runtime directory. Relative paths are anchored at
// the directory holding the config file, or the working directory when the
// config was parsed from memory.
func (c *AppConfig) resolvePath(raw, fallbackSubdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = fallbackSubdir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	base := c.baseDir
	if base == "" {
		base = workingDir()
	}
	return filepath.Clean(filepath.Join(base, target))
}
