package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FileExists checks if a file exists at the given path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ResolveBinaryPath finds a binary, checking PATH and common locations
func ResolveBinaryPath(binaryPath string) string {
	// If it's an absolute path, use it directly
	if filepath.IsAbs(binaryPath) {
		return binaryPath
	}

	// Check if it's in PATH
	if path, err := exec.LookPath(binaryPath); err == nil {
		return path
	}

	// Handle tilde prefix
	if strings.HasPrefix(binaryPath, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, binaryPath[1:])
		}
	}

	// Check common locations
	commonDirs := []string{
		"/usr/local/bin",
		"/opt/homebrew/bin",
	}
	for _, dir := range commonDirs {
		candidate := filepath.Join(dir, binaryPath)
		if FileExists(candidate) {
			return candidate
		}
	}

	// Fall back to the name as given
	return binaryPath
}
