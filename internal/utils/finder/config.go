package finder

import (
	"fmt"
	"os"
	"path/filepath"
)

// searchDirs are tried, in order, when a relative config path does not exist
// relative to the working directory
var searchDirs = []string{"/etc/infradash"}

// FindConfigFile looks for a configuration file and returns its absolute
// path. A relative path is tried against the working directory, the
// executable's directory and /etc/infradash. When nothing is found the
// input is returned unchanged unless mustExist is set.
func FindConfigFile(configPath string, mustExist bool) (string, error) {
	for _, candidate := range candidates(configPath) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			absPath, err := filepath.Abs(candidate)
			if err != nil {
				return "", fmt.Errorf("failed to get absolute path: %w", err)
			}
			return absPath, nil
		}
	}

	if mustExist {
		return "", fmt.Errorf("configuration file not found: %s", configPath)
	}
	return configPath, nil
}

func candidates(configPath string) []string {
	out := []string{configPath}
	if filepath.IsAbs(configPath) {
		return out
	}

	if exe, err := os.Executable(); err == nil {
		out = append(out, filepath.Join(filepath.Dir(exe), configPath))
	}
	for _, dir := range searchDirs {
		out = append(out, filepath.Join(dir, filepath.Base(configPath)))
	}
	return out
}
