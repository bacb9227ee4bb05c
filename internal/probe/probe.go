// Package probe answers one question: is anything accepting TCP
// connections on a loopback port.
package probe

import (
	"net"
	"strconv"
	"time"
)

const dialTimeout = 250 * time.Millisecond

// IsListening reports whether a TCP listener is accepting connections on
// 127.0.0.1:port. Any dial failure means "not listening"; refused,
// timed-out and unreachable are not distinguished at this layer.
func IsListening(port int) bool {
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
