// Package sidecar supervises the lifecycle of the locally spawned
// opencode server: port resolution, spawn, readiness detection, output
// capture and termination.
package sidecar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"opencode-desktop/internal/config"
	"opencode-desktop/internal/logbuf"
	"opencode-desktop/internal/plugincfg"
	"opencode-desktop/internal/ports"
	"opencode-desktop/internal/probe"
)

// Readiness timing. The poll interval doubles as the grace delay applied
// after the first successful probe, giving the server a moment of
// late-stage warm-up before the UI starts talking to it.
const (
	defaultReadyTimeout = 7 * time.Second
	defaultPollInterval = 10 * time.Millisecond
	defaultGraceDelay   = 10 * time.Millisecond
)

// ErrReadinessTimeout is returned when the sidecar never starts
// accepting connections within the readiness bound.
var ErrReadinessTimeout = errors.New("sidecar readiness timeout")

// RecoveryAction is the user's choice after a failed startup.
type RecoveryAction int

// Recovery choices offered by the startup-failure dialog.
const (
	RecoveryExit RecoveryAction = iota
	RecoveryCopyLogsAndExit
)

// Dialog presents the startup-failure choice to the user. Implemented
// outside this package; the supervisor only consumes the decision.
type Dialog interface {
	StartupFailure(message string) RecoveryAction
}

// Window receives the resolved endpoints exactly once, before the UI's
// first paint.
type Window interface {
	Present(payload StartupPayload) error
}

// Supervisor drives the launch sequence: resolve ports, spawn if needed,
// await readiness, publish endpoints. It owns the process handle and
// performs termination at application exit.
type Supervisor struct {
	cfg       *config.Config
	logger    *zap.Logger
	collector *logbuf.Collector
	handle    *Handle
	resolver  *ports.Resolver
	plugins   *plugincfg.Builder
	dialog    Dialog
	window    Window

	phases *phaseMachine

	// UpdaterEnabled is forwarded untouched to the startup payload.
	UpdaterEnabled bool

	// Timing knobs, defaulted by New. Tests compress them.
	ReadyTimeout time.Duration
	PollInterval time.Duration
	GraceDelay   time.Duration

	isListening func(port int) bool
	spawn       func(port, skillsPort int, configOverride string) error
	copyLogs    func() error
	exit        func(code int)
}

// New assembles a supervisor over its injected resources. All shared
// state (handle, collector) is owned by the caller and torn down at exit.
func New(cfg *config.Config, collector *logbuf.Collector, handle *Handle, dialog Dialog, window Window, logger *zap.Logger) *Supervisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Supervisor{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		handle:    handle,
		resolver:  ports.NewResolver(cfg, logger),
		plugins:   plugincfg.NewBuilder(cfg, logger),
		dialog:    dialog,
		window:    window,

		phases: newPhaseMachine(),

		ReadyTimeout: defaultReadyTimeout,
		PollInterval: defaultPollInterval,
		GraceDelay:   defaultGraceDelay,

		isListening: probe.IsListening,
		exit:        os.Exit,
	}
	s.spawn = s.spawnProcess
	return s
}

// SetCopyLogs wires the copy-logs command used by the timeout recovery
// path. Wiring happens at startup, before Run.
func (s *Supervisor) SetCopyLogs(fn func() error) {
	s.copyLogs = fn
}

// Phase returns the supervisor's current lifecycle phase.
func (s *Supervisor) Phase() Phase {
	return s.phases.Current()
}

// Run executes one launch attempt. It is the single background task that
// carries the supervisor from Resolving to Ready (or exits the process
// on readiness timeout). Errors it returns are unrecoverable environment
// problems and abort the application.
func (s *Supervisor) Run(ctx context.Context) error {
	s.phases.Transition(PhaseResolving)

	primary, err := s.resolver.Primary()
	if err != nil {
		return err
	}

	willSpawn := primary != nil && !s.isListening(*primary)

	skillsPort, err := s.resolver.Skills(primary, willSpawn)
	if err != nil {
		return err
	}

	if willSpawn {
		configOverride := s.plugins.Build()

		s.phases.Transition(PhaseSpawning)
		if err := s.spawn(*primary, skillsPort, configOverride); err != nil {
			return fmt.Errorf("failed to spawn sidecar: %w", err)
		}

		s.phases.Transition(PhaseAwaitingReadiness)
		started := time.Now()
		if err := s.awaitReadiness(ctx, *primary); err != nil {
			if ctx.Err() != nil {
				// Application exit, not a failed launch.
				return err
			}
			s.phases.Transition(PhaseFailedTimeout)
			s.recoverFromTimeout()
			return err
		}
		s.phases.Transition(PhaseReady)
		s.logger.Info("Sidecar ready", zap.Duration("elapsed", time.Since(started)))
	} else {
		s.phases.Transition(PhaseAlreadySatisfied)
		if primary != nil {
			s.logger.Info("Sidecar already running, skipping spawn", zap.Int("port", *primary))
		} else {
			s.logger.Info("External base URL override set, skipping spawn",
				zap.String("base_url", s.cfg.BaseURLOverride))
		}
	}

	return s.publish(primary, skillsPort)
}

// Shutdown terminates the owned sidecar process, if any. Safe to call
// regardless of how far the launch sequence got.
func (s *Supervisor) Shutdown() {
	s.phases.Transition(PhaseTerminated)
	s.handle.Kill()
}

// awaitReadiness polls the sidecar port until it accepts connections or
// the wall-clock bound elapses. A short grace delay follows the first
// successful probe.
func (s *Supervisor) awaitReadiness(ctx context.Context, port int) error {
	started := time.Now()
	for {
		if time.Since(started) > s.ReadyTimeout {
			return ErrReadinessTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.PollInterval):
		}
		if s.isListening(port) {
			time.Sleep(s.GraceDelay)
			return nil
		}
	}
}

// recoverFromTimeout presents the startup-failure choice and ends the
// process with a non-zero status. There is no automatic retry.
func (s *Supervisor) recoverFromTimeout() {
	action := s.dialog.StartupFailure(
		"Failed to start the OpenCode server. Copy logs using the button below and send them to the team for assistance.")

	if action == RecoveryCopyLogsAndExit && s.copyLogs != nil {
		if err := s.copyLogs(); err != nil {
			s.logger.Warn("Failed to copy logs to clipboard", zap.Error(err))
		} else {
			s.logger.Info("Logs copied to clipboard")
		}
	}

	// The sidecar lives in its own process group and would survive the
	// parent's exit; terminate it before leaving.
	s.handle.Kill()
	s.exit(1)
}

// publish hands the resolved endpoints to the UI shell. This happens
// exactly once per launch, on Ready or AlreadySatisfied.
func (s *Supervisor) publish(primary *int, skillsPort int) error {
	var baseURL *string
	if s.cfg.BaseURLOverride != "" {
		baseURL = &s.cfg.BaseURLOverride
	} else if primary != nil {
		url := fmt.Sprintf("http://127.0.0.1:%d", *primary)
		baseURL = &url
	}

	skillsBaseURL := s.cfg.SkillsBaseURLOverride
	if skillsBaseURL == "" {
		skillsBaseURL = fmt.Sprintf("http://127.0.0.1:%d", skillsPort)
	}

	payload := StartupPayload{
		UpdaterEnabled: s.UpdaterEnabled,
		Port:           primary,
		SkillsPort:     skillsPort,
		BaseURL:        baseURL,
		SkillsBaseURL:  &skillsBaseURL,
	}

	if err := s.window.Present(payload); err != nil {
		return fmt.Errorf("failed to present application window: %w", err)
	}
	return nil
}

// spawnProcess launches the sidecar with its derived environment and
// attaches the output pumps.
func (s *Supervisor) spawnProcess(port, skillsPort int, configOverride string) error {
	cmd, err := buildCommand(s.cfg.Shell, port)
	if err != nil {
		return err
	}

	env := append(os.Environ(),
		"OPENCODE_CLIENT=desktop",
		"OPENCODE_EXPERIMENTAL_ICON_DISCOVERY=true",
		config.EnvSkillsPort+"="+strconv.Itoa(skillsPort),
		config.EnvSkillsAPIPort+"="+strconv.Itoa(skillsPort),
		"XDG_STATE_HOME="+s.cfg.StateDir,
	)
	if configOverride != "" {
		env = append(env, config.EnvConfigContent+"="+configOverride)
	}
	cmd.Env = env

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start sidecar: %w", err)
	}

	s.handle.set(cmd, processGroupID(cmd))
	startOutputPumps(cmd, stdout, stderr, s.collector, s.logger)

	s.logger.Info("Spawned sidecar",
		zap.Int("pid", cmd.Process.Pid),
		zap.Int("port", port),
		zap.Int("skills_port", skillsPort))
	return nil
}
