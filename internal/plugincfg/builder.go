// Package plugincfg discovers a locally built orchestrator plugin and
// serializes it into sidecar configuration.
package plugincfg

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"opencode-desktop/internal/config"
)

// maxAncestorDepth bounds the upward directory walk when probing for a
// plugin artifact next to a development checkout.
const maxAncestorDepth = 6

// Builder produces the optional OPENCODE_CONFIG_CONTENT payload injected
// into the sidecar environment. It runs at most once per launch.
type Builder struct {
	cfg    *config.Config
	logger *zap.Logger

	workDir func() (string, error)
}

// NewBuilder creates a builder over the loaded configuration.
func NewBuilder(cfg *config.Config, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{cfg: cfg, logger: logger, workDir: os.Getwd}
}

// Build returns the serialized plugin configuration, or empty when the
// caller already supplies raw configuration or no plugin artifact is
// discoverable.
func (b *Builder) Build() string {
	if b.cfg.ConfigContent != "" {
		// Caller-supplied configuration is final; never override it.
		return ""
	}

	pluginPath := b.findPluginPath()
	if pluginPath == "" {
		return ""
	}

	pluginURL, ok := fileURL(pluginPath)
	if !ok {
		b.logger.Warn("Failed to canonicalize plugin path", zap.String("path", pluginPath))
		return ""
	}

	payload, err := json.Marshal(map[string][]string{"plugin": {pluginURL}})
	if err != nil {
		return ""
	}

	b.logger.Info("Using orchestrator plugin", zap.String("url", pluginURL))
	return string(payload)
}

// findPluginPath locates the orchestrator plugin artifact: the explicit
// override when it names an existing file, otherwise the built artifact
// (preferred) or its source in each ancestor of the working directory.
func (b *Builder) findPluginPath() string {
	if override := b.cfg.PluginPathOverride; override != "" {
		if isFile(override) {
			return override
		}
		b.logger.Warn("Plugin path override does not reference a file, falling back to search",
			zap.String("path", override))
	}

	current, err := b.workDir()
	if err != nil {
		return ""
	}

	dir := current
	for i := 0; i < maxAncestorDepth; i++ {
		dist := filepath.Join(dir, "orchestra", "dist", "index.js")
		if isFile(dist) {
			return dist
		}

		src := filepath.Join(dir, "orchestra", "src", "index.ts")
		if isFile(src) {
			return src
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
