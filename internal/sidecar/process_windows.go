//go:build windows

package sidecar

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// buildCommand constructs the sidecar launch command. On Windows the
// bundled binary is executed directly; no shell wrapping is needed.
func buildCommand(_ string, port int) (*exec.Cmd, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate current executable: %w", err)
	}
	sidecarPath := filepath.Join(filepath.Dir(exe), "opencode-cli.exe")

	return exec.Command(sidecarPath, "serve", fmt.Sprintf("--port=%d", port)), nil
}

// processGroupID has no Unix-style equivalent on Windows.
func processGroupID(_ *exec.Cmd) int {
	return 0
}

// terminateProcess kills the sidecar process. Windows has no process
// groups; descendants spawned by the sidecar are its own responsibility.
func terminateProcess(cmd *exec.Cmd, _ int, _ *zap.Logger) error {
	return cmd.Process.Kill()
}
