package sidecar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseHappyPathTransitions(t *testing.T) {
	pm := newPhaseMachine()
	assert.Equal(t, PhaseIdle, pm.Current())

	for _, next := range []Phase{
		PhaseResolving, PhaseSpawning, PhaseAwaitingReadiness, PhaseReady, PhaseTerminated,
	} {
		assert.True(t, pm.Transition(next), "transition to %s", next)
	}
	assert.Equal(t, PhaseTerminated, pm.Current())
}

func TestPhaseAlreadySatisfiedPath(t *testing.T) {
	pm := newPhaseMachine()
	assert.True(t, pm.Transition(PhaseResolving))
	assert.True(t, pm.Transition(PhaseAlreadySatisfied))
	assert.True(t, pm.Transition(PhaseTerminated))
}

func TestPhaseRejectsInvalidTransitions(t *testing.T) {
	pm := newPhaseMachine()
	assert.False(t, pm.Transition(PhaseReady), "Idle cannot jump to Ready")
	assert.False(t, pm.Transition(PhaseSpawning), "Idle cannot jump to Spawning")
	assert.Equal(t, PhaseIdle, pm.Current())
}

func TestPhaseFailedTimeoutIsTerminal(t *testing.T) {
	pm := newPhaseMachine()
	pm.Transition(PhaseResolving)
	pm.Transition(PhaseSpawning)
	pm.Transition(PhaseAwaitingReadiness)
	pm.Transition(PhaseFailedTimeout)

	assert.False(t, pm.Transition(PhaseReady))
	assert.False(t, pm.Transition(PhaseSpawning))
	// Self-transition stays allowed, as for every phase.
	assert.True(t, pm.Transition(PhaseFailedTimeout))
}
