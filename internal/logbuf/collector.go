// Package logbuf holds the bounded in-memory capture of sidecar output.
// The output pump is the only writer; command handlers read snapshots.
package logbuf

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// MaxEntries bounds the number of retained log lines. Insertion beyond
// the bound evicts the oldest line first.
const MaxEntries = 200

// Stream identifies which output stream a line arrived on.
type Stream string

const (
	StreamStdout Stream = "STDOUT"
	StreamStderr Stream = "STDERR"
)

// Entry is a single captured output line. Entries are immutable once
// appended.
type Entry struct {
	Stream Stream
	Text   string
}

// String renders the entry the way it appears in joined snapshots.
func (e Entry) String() string {
	return "[" + string(e.Stream) + "] " + e.Text
}

// Collector is a fixed-capacity FIFO of sidecar output lines, shared
// between the output pump (writer) and command handlers (readers).
type Collector struct {
	mu       sync.Mutex
	entries  []Entry
	dropOnce sync.Once

	logger *zap.Logger
}

// NewCollector creates an empty collector.
func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		entries: make([]Entry, 0, MaxEntries),
		logger:  logger,
	}
}

// Append records one output line, evicting the oldest line when the
// collector is full. It never blocks: if the lock is contended the line
// is dropped, since best-effort capture must not stall the output pump.
func (c *Collector) Append(stream Stream, text string) {
	if !c.mu.TryLock() {
		c.noteDrop()
		return
	}
	defer c.mu.Unlock()

	c.entries = append(c.entries, Entry{Stream: stream, Text: text})
	if n := len(c.entries); n > MaxEntries {
		c.entries = append(c.entries[:0], c.entries[n-MaxEntries:]...)
	}
}

// Snapshot returns all retained lines joined in emission order.
func (c *Collector) Snapshot() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	for _, e := range c.entries {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Len reports the number of retained lines.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// noteDrop logs the first dropped line; later drops stay silent.
func (c *Collector) noteDrop() {
	c.dropOnce.Do(func() {
		c.logger.Warn("Log collector contended, dropping sidecar output line")
	})
}
