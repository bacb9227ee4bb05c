package sidecar

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"opencode-desktop/internal/logbuf"
)

func TestPumpStreamCapturesAndMirrors(t *testing.T) {
	collector := logbuf.NewCollector(nil)
	var mirror bytes.Buffer

	pumpStream(strings.NewReader("listening on 4096\nready\n"), logbuf.StreamStdout, &mirror, collector, zap.NewNop())

	snapshot := collector.Snapshot()
	assert.Contains(t, snapshot, "[STDOUT] listening on 4096")
	assert.Contains(t, snapshot, "[STDOUT] ready")
	assert.Equal(t, "listening on 4096\nready\n", mirror.String())
}

func TestPumpStreamPreservesEmissionOrder(t *testing.T) {
	collector := logbuf.NewCollector(nil)
	var mirror bytes.Buffer

	pumpStream(strings.NewReader("a\nb\nc\n"), logbuf.StreamStderr, &mirror, collector, zap.NewNop())

	snapshot := collector.Snapshot()
	assert.True(t, strings.Index(snapshot, "a") < strings.Index(snapshot, "b"))
	assert.True(t, strings.Index(snapshot, "b") < strings.Index(snapshot, "c"))
}

func TestPumpStreamLogsScanFailure(t *testing.T) {
	core, observed := observer.New(zap.DebugLevel)
	collector := logbuf.NewCollector(nil)

	// A line past the scanner's limit aborts the scan mid-stream.
	oversized := strings.Repeat("x", maxLineSize+1)
	pumpStream(strings.NewReader("first\n"+oversized+"\n"), logbuf.StreamStdout, io.Discard, collector, zap.New(core))

	assert.Contains(t, collector.Snapshot(), "[STDOUT] first")
	require.Equal(t, 1, observed.FilterMessage("Sidecar output pump stopped").Len())
}
