package vehicle

import (
	"testing"

	"github.com/goxdrive/client/internal/models"
	"github.com/stretchr/testify/assert"
)

type testState struct {
	Value    float64
	Centered bool
}

func newTestSeat(seat *models.Seat) *VehicleSeat[testState] {
	parser := func(oldCommand, newCommand models.ControlState, state VehicleStateIFace[testState]) VehicleStateIFace[testState] {
		newState := state.(testState)
		newState.Value = newCommand.Axes[0]
		return newState
	}
	centerer := func(state VehicleStateIFace[testState]) VehicleStateIFace[testState] {
		newState := state.(testState)
		newState.Value = 0
		newState.Centered = true
		return newState
	}
	hud := func(state VehicleStateIFace[testState]) models.Hud {
		return models.Hud{}
	}
	return NewVehicleSeat[testState](seat, parser, centerer, hud)
}

func TestApplyCommandCentersWhenInactive(t *testing.T) {
	seat := &models.Seat{
		CommandChannel: make(chan models.ControlState, 1),
		HudChannel:     make(chan models.Hud, 1),
	}

	vehicleSeat := newTestSeat(seat)

	// No command has ever arrived, so the seat is inactive and the state is
	// centered rather than driven.
	newState := vehicleSeat.ApplyCommand(testState{Value: 55}).(testState)
	assert.True(t, newState.Centered)
	assert.Equal(t, 0.0, newState.Value)
}
