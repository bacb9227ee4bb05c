package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "opencode"

// GetLogDir returns the standard log directory for the current OS.
func GetLogDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("neither LOCALAPPDATA nor USERPROFILE is set")
			}
			localAppData = filepath.Join(userProfile, "AppData", "Local")
		}
		return filepath.Join(localAppData, appDirName, "logs"), nil
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, "Library", "Logs", appDirName), nil
	default:
		// XDG Base Directory Specification for state data.
		if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
			return filepath.Join(stateHome, appDirName, "logs"), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, ".local", "state", appDirName, "logs"), nil
	}
}

// GetLogFilePath returns the full path for a log file, creating the log
// directory if needed. An empty logDir selects the OS standard location.
func GetLogFilePath(logDir, filename string) (string, error) {
	dir := logDir
	if dir == "" {
		standard, err := GetLogDir()
		if err != nil {
			return "", err
		}
		dir = standard
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	return filepath.Join(dir, filename), nil
}
