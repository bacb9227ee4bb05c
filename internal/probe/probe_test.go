package probe

import (
	"net"
	"testing"
)

func TestIsListeningDetectsListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to open listener: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port

	if !IsListening(port) {
		t.Fatalf("expected IsListening to report true for open listener on port %d", port)
	}
}

func TestIsListeningClosedPort(t *testing.T) {
	// Bind and immediately release a port so nothing is listening on it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to open listener: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	if IsListening(port) {
		t.Fatalf("expected IsListening to report false for closed port %d", port)
	}
}
