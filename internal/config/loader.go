package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const appDirName = "opencode"

// Load reads the shell configuration from the process environment.
func Load() (*Config, error) {
	v := viper.New()
	bindEnv(v)

	cfg := &Config{
		PortOverride:          envPort(v, EnvPort),
		SkillsPortOverride:    firstPort(envPort(v, EnvSkillsPort), envPort(v, EnvSkillsAPIPort)),
		BaseURLOverride:       envString(v, EnvBaseURL),
		SkillsBaseURLOverride: envString(v, EnvSkillsBaseURL),
		PluginPathOverride:    envString(v, EnvPluginPath),
		ConfigContent:         envString(v, EnvConfigContent),
		Shell:                 envString(v, EnvShell),
	}
	if cfg.Shell == "" {
		cfg.Shell = "/bin/sh"
	}

	stateDir, err := resolveStateDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state directory: %w", err)
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", stateDir, err)
	}
	cfg.StateDir = stateDir

	return cfg, nil
}

func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		EnvPort, EnvSkillsPort, EnvSkillsAPIPort,
		EnvBaseURL, EnvSkillsBaseURL,
		EnvPluginPath, EnvConfigContent, EnvShell,
	} {
		// Bind each variable under its own literal name so lookups stay
		// case-exact.
		_ = v.BindEnv(key, key)
	}
}

// envString returns the trimmed value of an environment variable, with
// empty-after-trim treated as unset.
func envString(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

// envPort parses a port-valued environment variable. Unparseable values
// are treated as unset rather than fatal.
func envPort(v *viper.Viper, key string) *int {
	raw := envString(v, key)
	if raw == "" {
		return nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return nil
	}
	return &port
}

func firstPort(candidates ...*int) *int {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// resolveStateDir returns the per-user application data directory for the
// current OS, following each platform's convention for local app data.
func resolveStateDir() (string, error) {
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
		return filepath.Join(localAppData, appDirName), nil
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, "Library", "Application Support", appDirName), nil
	default:
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, appDirName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, ".local", "share", appDirName), nil
	}
}
