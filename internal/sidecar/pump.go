package sidecar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"go.uber.org/zap"

	"opencode-desktop/internal/logbuf"
)

// maxLineSize bounds a single captured output line.
const maxLineSize = 1024 * 1024

// startOutputPumps attaches line pumps to a started command. The pumps
// run until the child closes its streams, independent of supervisor
// state, and the child is reaped once both streams drain.
func startOutputPumps(cmd *exec.Cmd, stdout, stderr io.Reader, collector *logbuf.Collector, logger *zap.Logger) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		pumpStream(stdout, logbuf.StreamStdout, os.Stdout, collector, logger)
	}()
	go func() {
		defer wg.Done()
		pumpStream(stderr, logbuf.StreamStderr, os.Stderr, collector, logger)
	}()

	go func() {
		wg.Wait()
		if err := cmd.Wait(); err != nil {
			logger.Debug("Sidecar process exited", zap.Error(err))
		}
	}()
}

// pumpStream copies one output stream line-wise into the collector,
// mirroring each line onto the shell's own stream for terminal users.
// A scan failure (oversized line, read error) ends this stream's
// capture; it is logged once so the gap is diagnosable.
func pumpStream(r io.Reader, stream logbuf.Stream, mirror io.Writer, collector *logbuf.Collector, logger *zap.Logger) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(mirror, line)
		collector.Append(stream, line)
	}

	if err := scanner.Err(); err != nil {
		logger.Debug("Sidecar output pump stopped",
			zap.String("stream", string(stream)),
			zap.Error(err))
	}
}
