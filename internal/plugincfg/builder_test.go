package plugincfg

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencode-desktop/internal/config"
)

func writePlugin(t *testing.T, dir string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{dir}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("export default {}\n"), 0o644))
	return path
}

func decodePluginList(t *testing.T, payload string) []string {
	t.Helper()
	var decoded map[string][]string
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	return decoded["plugin"]
}

func TestBuildSkippedOnRawContentOverride(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "orchestra", "dist", "index.js")

	b := NewBuilder(&config.Config{ConfigContent: `{"plugin":[]}`}, nil)
	b.workDir = func() (string, error) { return dir, nil }

	assert.Empty(t, b.Build())
}

func TestBuildUsesPathOverride(t *testing.T) {
	dir := t.TempDir()
	plugin := writePlugin(t, dir, "custom", "plugin.js")

	b := NewBuilder(&config.Config{PluginPathOverride: plugin}, nil)
	b.workDir = func() (string, error) { return t.TempDir(), nil }

	payload := b.Build()
	require.NotEmpty(t, payload)

	urls := decodePluginList(t, payload)
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], "plugin.js")
	assert.Contains(t, urls[0], "file://")
}

func TestBuildMissingOverrideFallsThroughToSearch(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "orchestra", "dist", "index.js")

	b := NewBuilder(&config.Config{
		PluginPathOverride: filepath.Join(dir, "does", "not", "exist.js"),
	}, nil)
	b.workDir = func() (string, error) { return dir, nil }

	payload := b.Build()
	require.NotEmpty(t, payload)

	urls := decodePluginList(t, payload)
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], filepath.ToSlash(filepath.Join("orchestra", "dist", "index.js")))
}

func TestBuildPrefersDistOverSource(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "orchestra", "src", "index.ts")
	writePlugin(t, dir, "orchestra", "dist", "index.js")

	b := NewBuilder(&config.Config{}, nil)
	b.workDir = func() (string, error) { return dir, nil }

	urls := decodePluginList(t, b.Build())
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], "index.js")
}

func TestBuildSearchesAncestors(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "orchestra", "src", "index.ts")

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	b := NewBuilder(&config.Config{}, nil)
	b.workDir = func() (string, error) { return nested, nil }

	urls := decodePluginList(t, b.Build())
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], "index.ts")
}

func TestBuildAncestorDepthBound(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "orchestra", "dist", "index.js")

	// Seven levels below the artifact: one past the search bound.
	nested := filepath.Join(root, "1", "2", "3", "4", "5", "6", "7")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	b := NewBuilder(&config.Config{}, nil)
	b.workDir = func() (string, error) { return nested, nil }

	assert.Empty(t, b.Build())
}

func TestBuildAbsentWithoutArtifact(t *testing.T) {
	b := NewBuilder(&config.Config{}, nil)
	b.workDir = func() (string, error) { return t.TempDir(), nil }

	assert.Empty(t, b.Build())
}

func TestFileURLFormatters(t *testing.T) {
	assert.Equal(t, "file:///C:/work/orchestra/dist/index.js",
		windowsFileURL(`C:\work\orchestra\dist\index.js`))
	assert.Equal(t, "file:///home/dev/orchestra/dist/index.js",
		unixFileURL("/home/dev/orchestra/dist/index.js"))
}
