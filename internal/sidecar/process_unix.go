//go:build unix

package sidecar

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// buildCommand constructs the sidecar launch command. On Unix the binary
// is run through the user's login shell so profile scripts populate PATH
// the same way they would in a terminal, which GUI launch contexts skip.
func buildCommand(shellPath string, port int) (*exec.Cmd, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate current executable: %w", err)
	}
	sidecarPath := filepath.Join(filepath.Dir(exe), "opencode-cli")

	launchLine := fmt.Sprintf("%s serve --port=%d", sidecarPath, port)
	cmd := exec.Command(shellPath, "-il", "-c", launchLine)

	// New process group, so termination reaches the sidecar and any
	// children it spawns.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}

	return cmd, nil
}

// processGroupID extracts the group ID of a started command, or 0 when
// unavailable.
func processGroupID(cmd *exec.Cmd) int {
	if cmd == nil || cmd.Process == nil {
		return 0
	}
	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		return 0
	}
	return pgid
}

// terminateProcess tears down the sidecar's process group: SIGTERM, a
// short grace period, then SIGKILL for whatever survived.
func terminateProcess(cmd *exec.Cmd, pgid int, logger *zap.Logger) error {
	if pgid <= 0 {
		return cmd.Process.Kill()
	}

	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil {
		logger.Warn("Failed to send SIGTERM to process group",
			zap.Int("pgid", pgid), zap.Error(err))
	}

	time.Sleep(500 * time.Millisecond)

	if err := syscall.Kill(-pgid, 0); err == nil {
		// Still running after SIGTERM.
		if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil {
			return fmt.Errorf("failed to SIGKILL process group %d: %w", pgid, err)
		}
	}

	return nil
}
