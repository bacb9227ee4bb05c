package sidecar

import (
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// Handle is the ownership token for the spawned sidecar process. At most
// one process is owned at a time; the supervisor stores it at spawn and
// Kill destroys it exactly once. The lock is held only for take-and-kill.
type Handle struct {
	mu   sync.Mutex
	cmd  *exec.Cmd
	pgid int

	logger *zap.Logger
}

// NewHandle creates an empty handle. It is shared between the supervisor
// and the command surface, so both observe the same ownership state.
func NewHandle(logger *zap.Logger) *Handle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handle{logger: logger}
}

// set stores the spawned process. Only the supervisor calls this, once.
func (h *Handle) set(cmd *exec.Cmd, pgid int) {
	h.mu.Lock()
	h.cmd = cmd
	h.pgid = pgid
	h.mu.Unlock()
}

// Owned reports whether a live process is currently owned.
func (h *Handle) Owned() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cmd != nil
}

// Kill terminates the owned process and clears the handle. Calling Kill
// with nothing to kill is a benign no-op; double-kill is therefore safe.
func (h *Handle) Kill() {
	h.mu.Lock()
	cmd, pgid := h.cmd, h.pgid
	h.cmd, h.pgid = nil, 0
	h.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		h.logger.Debug("No sidecar process to kill")
		return
	}

	if err := terminateProcess(cmd, pgid, h.logger); err != nil {
		h.logger.Warn("Failed to terminate sidecar process",
			zap.Int("pid", cmd.Process.Pid),
			zap.Error(err))
		return
	}

	h.logger.Info("Killed sidecar process", zap.Int("pid", cmd.Process.Pid))
}
