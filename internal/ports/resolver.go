// Package ports decides which loopback ports the sidecar and its skills
// service are reachable on.
package ports

import (
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"

	"opencode-desktop/internal/config"
	"opencode-desktop/internal/probe"
)

// DefaultSkillsPort is the preferred port for the skills service.
const DefaultSkillsPort = 4097

// Build-time port pins, injected via
// -ldflags "-X opencode-desktop/internal/ports.pinnedPort=...". A pin
// takes precedence over the matching environment override.
var (
	pinnedPort       string
	pinnedSkillsPort string
)

// Resolver computes the port assignment for one launch. The probe and
// allocator hooks exist so tests can substitute deterministic behavior.
type Resolver struct {
	cfg    *config.Config
	logger *zap.Logger

	isListening func(port int) bool
	freePort    func() (int, error)
}

// NewResolver creates a resolver over the loaded configuration.
func NewResolver(cfg *config.Config, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		cfg:         cfg,
		logger:      logger,
		isListening: probe.IsListening,
		freePort:    FreePort,
	}
}

// Primary resolves the sidecar port: build-time pin, then environment
// override, then an ephemeral OS-assigned port. It returns nil when an
// external base URL override is in effect, meaning no local sidecar is
// the primary dependency.
func (r *Resolver) Primary() (*int, error) {
	if r.cfg.BaseURLOverride != "" {
		return nil, nil
	}

	if pinnedPort != "" {
		if port, err := strconv.Atoi(pinnedPort); err == nil {
			return &port, nil
		}
	}

	if r.cfg.PortOverride != nil {
		port := *r.cfg.PortOverride
		return &port, nil
	}

	port, err := r.freePort()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate sidecar port: %w", err)
	}
	r.logger.Debug("Allocated ephemeral sidecar port", zap.Int("port", port))
	return &port, nil
}

// Skills resolves the skills service port. An explicit override is used
// unconditionally. Otherwise the default is kept unless a spawn is
// imminent and the default collides with the primary port or with an
// already-listening service, in which case an ephemeral port distinct
// from the primary is chosen.
func (r *Resolver) Skills(primary *int, willSpawn bool) (int, error) {
	if pinnedSkillsPort != "" {
		if port, err := strconv.Atoi(pinnedSkillsPort); err == nil {
			return port, nil
		}
	}

	if r.cfg.SkillsPortOverride != nil {
		return *r.cfg.SkillsPortOverride, nil
	}

	if !willSpawn {
		return DefaultSkillsPort, nil
	}

	conflict := (primary != nil && *primary == DefaultSkillsPort) || r.isListening(DefaultSkillsPort)
	if !conflict {
		return DefaultSkillsPort, nil
	}

	for {
		port, err := r.freePort()
		if err != nil {
			return 0, fmt.Errorf("failed to allocate skills port: %w", err)
		}
		// The allocator can hand back the primary port once it has been
		// released; retry until the two differ.
		if primary == nil || port != *primary {
			r.logger.Debug("Skills port moved off contested default",
				zap.Int("default", DefaultSkillsPort),
				zap.Int("port", port))
			return port, nil
		}
	}
}

// FreePort asks the OS for an unused loopback port by binding port 0 and
// reading back the assignment. The listener is closed before returning.
func FreePort() (int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to bind loopback socket: %w", err)
	}
	defer ln.Close()

	addr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected listener address type %T", ln.Addr())
	}
	return addr.Port, nil
}
