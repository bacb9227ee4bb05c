package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencode-desktop/internal/sidecar"
)

func TestHeadlessWindowRecordsPayload(t *testing.T) {
	w := NewHeadlessWindow(nil)

	port := 4096
	baseURL := "http://127.0.0.1:4096"
	skillsURL := "http://127.0.0.1:4097"

	err := w.Present(sidecar.StartupPayload{
		Port:          &port,
		SkillsPort:    4097,
		BaseURL:       &baseURL,
		SkillsBaseURL: &skillsURL,
	})
	require.NoError(t, err)

	require.NotNil(t, w.Payload)
	assert.Equal(t, 4097, w.Payload.SkillsPort)
	assert.Contains(t, w.InitScript, "window.__OPENCODE__.port = 4096;")
}
