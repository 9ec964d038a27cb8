package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// executableDir returns the directory of the running binary with symlinks
// resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return filepath.Dir(exe), nil
}

// resolvePaths fills ExecutableDir when it was not configured
func (c *Config) resolvePaths() error {
	if c.Paths.ExecutableDir != "" {
		return nil
	}
	dir, err := executableDir()
	if err != nil {
		return err
	}
	c.Paths.ExecutableDir = dir
	return nil
}

// resolveDir prefers a directory next to the executable and falls back to the
// working directory, so binaries work both installed and under `go run`.
func (c *Config) resolveDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	if c.Paths.ExecutableDir != "" {
		candidate := filepath.Join(c.Paths.ExecutableDir, dir)
		if FileExists(candidate) {
			return candidate
		}
	}
	return dir
}

// GetWebDir returns the resolved static web directory
func (c *Config) GetWebDir() string {
	return c.resolveDir(c.Paths.WebDir)
}

// GetLogsDir returns the resolved logs directory
func (c *Config) GetLogsDir() string {
	return c.resolveDir(c.Paths.LogsDir)
}

// FileExists reports whether path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
