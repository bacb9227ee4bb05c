package shell

import (
	"go.uber.org/zap"

	"opencode-desktop/internal/sidecar"
)

// HeadlessWindow stands in for the webview window. It records the
// startup payload and renders the initialization script the webview
// would run before first paint, which keeps the full launch sequence
// exercisable without a GUI toolkit linked in.
type HeadlessWindow struct {
	logger *zap.Logger

	Payload    *sidecar.StartupPayload
	InitScript string
}

// NewHeadlessWindow creates the headless window collaborator.
func NewHeadlessWindow(logger *zap.Logger) *HeadlessWindow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeadlessWindow{logger: logger}
}

// Present receives the resolved endpoints. Called exactly once per
// launch.
func (w *HeadlessWindow) Present(payload sidecar.StartupPayload) error {
	w.Payload = &payload
	w.InitScript = payload.InitScript()

	w.logger.Info("Publishing resolved endpoints to UI",
		zap.Any("payload", payload))
	return nil
}
