package sidecar

import "sync"

// Phase represents the lifecycle state of the sidecar supervisor.
type Phase string

// Supervisor lifecycle phases.
const (
	PhaseIdle              Phase = "Idle"
	PhaseResolving         Phase = "Resolving"
	PhaseSpawning          Phase = "Spawning"
	PhaseAlreadySatisfied  Phase = "AlreadySatisfied"
	PhaseAwaitingReadiness Phase = "AwaitingReadiness"
	PhaseReady             Phase = "Ready"
	PhaseFailedTimeout     Phase = "FailedTimeout"
	PhaseTerminated        Phase = "Terminated"
)

// allowedTransitions defines valid state transitions for the supervisor.
// FailedTimeout is terminal for a launch attempt; the process exits from
// there rather than transitioning further.
var allowedTransitions = map[Phase]map[Phase]struct{}{
	PhaseIdle: {
		PhaseResolving: {},
	},
	PhaseResolving: {
		PhaseSpawning:         {},
		PhaseAlreadySatisfied: {},
	},
	PhaseSpawning: {
		PhaseAwaitingReadiness: {},
	},
	PhaseAlreadySatisfied: {
		PhaseTerminated: {},
	},
	PhaseAwaitingReadiness: {
		PhaseReady:         {},
		PhaseFailedTimeout: {},
	},
	PhaseReady: {
		PhaseTerminated: {},
	},
	PhaseFailedTimeout: {},
	PhaseTerminated:    {},
}

type phaseMachine struct {
	mu      sync.RWMutex
	current Phase
}

func newPhaseMachine() *phaseMachine {
	return &phaseMachine{current: PhaseIdle}
}

// Transition attempts to move the machine to the requested phase,
// enforcing allowed transitions.
func (pm *phaseMachine) Transition(next Phase) bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.current == next {
		return true
	}

	if allowed, ok := allowedTransitions[pm.current]; ok {
		if _, ok := allowed[next]; ok {
			pm.current = next
			return true
		}
	}

	return false
}

// Current returns the currently tracked phase.
func (pm *phaseMachine) Current() Phase {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.current
}
