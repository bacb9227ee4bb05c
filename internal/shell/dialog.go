package shell

import (
	"fmt"
	"os"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"opencode-desktop/internal/sidecar"
)

// AlertDialog is the default startup-failure presenter. It raises a
// desktop notification and mirrors the message to stderr, then resolves
// to a preconfigured recovery action. A windowed shell substitutes its
// own Dialog with real buttons.
type AlertDialog struct {
	Action sidecar.RecoveryAction
	logger *zap.Logger
}

// NewAlertDialog creates a dialog resolving to the given action. Copying
// logs before exit is the safer default, so users have something to
// report.
func NewAlertDialog(action sidecar.RecoveryAction, logger *zap.Logger) *AlertDialog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertDialog{Action: action, logger: logger}
}

// StartupFailure surfaces the failure and returns the configured choice.
func (d *AlertDialog) StartupFailure(message string) sidecar.RecoveryAction {
	if err := beeep.Alert("Startup Failed", message, ""); err != nil {
		d.logger.Debug("Failed to raise desktop alert", zap.Error(err))
	}
	fmt.Fprintf(os.Stderr, "Startup Failed: %s\n", message)
	return d.Action
}
