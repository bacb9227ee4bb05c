package logbuf

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorFIFOEviction(t *testing.T) {
	for _, n := range []int{0, 1, 199, 200, 201, 350} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			c := NewCollector(nil)
			for i := 0; i < n; i++ {
				c.Append(StreamStdout, fmt.Sprintf("line %d", i))
			}

			want := n
			if want > MaxEntries {
				want = MaxEntries
			}
			require.Equal(t, want, c.Len())

			snapshot := c.Snapshot()
			if n == 0 {
				assert.Empty(t, snapshot)
				return
			}

			lines := strings.Split(strings.TrimRight(snapshot, "\n"), "\n")
			require.Len(t, lines, want)

			// Content must be the last `want` entries in emission order.
			first := n - want
			assert.Equal(t, fmt.Sprintf("[STDOUT] line %d", first), lines[0])
			assert.Equal(t, fmt.Sprintf("[STDOUT] line %d", n-1), lines[len(lines)-1])
		})
	}
}

func TestCollectorStreamTags(t *testing.T) {
	c := NewCollector(nil)
	c.Append(StreamStdout, "out")
	c.Append(StreamStderr, "err")

	snapshot := c.Snapshot()
	assert.Contains(t, snapshot, "[STDOUT] out")
	assert.Contains(t, snapshot, "[STDERR] err")
}

func TestCollectorAppendNeverBlocks(t *testing.T) {
	c := NewCollector(nil)

	// Hold the lock from another path and make sure Append returns.
	c.mu.Lock()
	done := make(chan struct{})
	go func() {
		c.Append(StreamStdout, "contended")
		close(done)
	}()
	<-done
	c.mu.Unlock()

	// The contended line was dropped, not deferred.
	assert.Zero(t, c.Len())
}
