// Package commands exposes the operations the UI layer invokes against
// supervisor state: kill, fetch logs, copy logs.
package commands

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"opencode-desktop/internal/logbuf"
	"opencode-desktop/internal/sidecar"
)

// ErrLogStateUnavailable indicates the log collector was never
// initialized for this launch.
var ErrLogStateUnavailable = errors.New("log state not found")

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Surface bundles the externally invocable commands. Failures are
// command-local: they never affect supervisor state or other commands.
type Surface struct {
	logs      *logbuf.Collector
	handle    *sidecar.Handle
	clipboard Clipboard
	logger    *zap.Logger
}

// NewSurface creates the command surface over the shared resources.
func NewSurface(logs *logbuf.Collector, handle *sidecar.Handle, clipboard Clipboard, logger *zap.Logger) *Surface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Surface{logs: logs, handle: handle, clipboard: clipboard, logger: logger}
}

// Kill terminates the owned sidecar process. Nothing to kill is a benign
// no-op, observable only in diagnostic output.
func (s *Surface) Kill() {
	if s.handle == nil {
		s.logger.Debug("Server state missing")
		return
	}
	s.handle.Kill()
}

// GetLogs returns the current joined snapshot of captured sidecar
// output.
func (s *Surface) GetLogs() (string, error) {
	if s.logs == nil {
		return "", ErrLogStateUnavailable
	}
	return s.logs.Snapshot(), nil
}

// CopyLogsToClipboard places the current log snapshot on the system
// clipboard.
func (s *Surface) CopyLogsToClipboard() error {
	text, err := s.GetLogs()
	if err != nil {
		return err
	}
	if s.clipboard == nil {
		return errors.New("clipboard not available")
	}
	if err := s.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
