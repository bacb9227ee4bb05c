package plugincfg

import (
	"path/filepath"
	"runtime"
	"strings"
)

// formatFileURL converts a canonical filesystem path into a file-scheme
// URL. The platform strategy is selected once at package init.
var formatFileURL = selectFormatter(runtime.GOOS)

func selectFormatter(goos string) func(string) string {
	if goos == "windows" {
		return windowsFileURL
	}
	return unixFileURL
}

// fileURL canonicalizes a path and renders it as a file URL. The second
// return is false when canonicalization fails.
func fileURL(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", false
	}
	return formatFileURL(resolved), true
}

// windowsFileURL renders drive-letter paths as file:///C:/... with
// forward slashes.
func windowsFileURL(path string) string {
	return "file:///" + strings.ReplaceAll(path, `\`, "/")
}

func unixFileURL(path string) string {
	return "file://" + path
}
