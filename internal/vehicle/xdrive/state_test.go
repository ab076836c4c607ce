package xdrive

import (
	"testing"

	"github.com/goxdrive/client/internal/kinematics"
	"github.com/goxdrive/client/internal/models"
	"github.com/goxdrive/client/internal/vehicle"
	"github.com/stretchr/testify/assert"
)

func controlState(axes []float64, bitButton uint32) models.ControlState {
	masks := vehicle.BuildButtonMasks()
	return models.ControlState{
		Axes:      axes,
		BitButton: bitButton,
		Buttons:   vehicle.ParseButtons(bitButton, masks),
	}
}

func TestDriverParserMapsAxes(t *testing.T) {
	axes := make([]float64, models.ClientAxesCount)
	axes[AxisStrafe] = 30
	axes[AxisForward] = 50
	axes[AxisRotate] = 20

	oldCommand := controlState(make([]float64, models.ClientAxesCount), 0)
	newCommand := controlState(axes, 0)

	newState := driverParser[XDriveState](oldCommand, newCommand, XDriveState{}).(XDriveState)
	assert.Equal(t, kinematics.AxisSample{ForwardY: 50, StrafeX: 30, RotateX: 20}, newState.Drive)
}

func TestDriverParserButtonActions(t *testing.T) {
	axes := make([]float64, models.ClientAxesCount)
	released := controlState(axes, 0)

	pressed := controlState(axes, 1<<ModeCycle|1<<LauncherFire|1<<WingToggle|1<<ImuCalibrate)

	newState := driverParser[XDriveState](released, pressed, XDriveState{Mode: kinematics.ModeSingleMove}).(XDriveState)
	assert.Equal(t, kinematics.ModeFluid, newState.Mode)
	assert.True(t, newState.LaunchRequested)
	assert.True(t, newState.WingRequested)
	assert.True(t, newState.CalibrateRequested)

	// Holding the buttons down must not retrigger anything.
	heldState := driverParser[XDriveState](pressed, pressed, XDriveState{Mode: kinematics.ModeSingleMove}).(XDriveState)
	assert.Equal(t, kinematics.ModeSingleMove, heldState.Mode)
	assert.False(t, heldState.LaunchRequested)
}

func TestDriverCenterZeroesDriveAndRequests(t *testing.T) {
	state := XDriveState{
		Drive:           kinematics.AxisSample{ForwardY: 80},
		Mode:            kinematics.ModeFieldCentric,
		LaunchRequested: true,
		WingDeployed:    true,
	}

	centered := driverCenter[XDriveState](state).(XDriveState)
	assert.Equal(t, kinematics.AxisSample{}, centered.Drive)
	assert.False(t, centered.LaunchRequested)

	// Mode and wing position survive a stale-input center.
	assert.Equal(t, kinematics.ModeFieldCentric, centered.Mode)
	assert.True(t, centered.WingDeployed)
}

func TestDriverHudLines(t *testing.T) {
	state := XDriveState{
		Mode:      kinematics.ModeFluid,
		Heading:   45.0,
		HeadingOK: true,
		Powers:    kinematics.WheelPowers{FrontLeft: 40, BackLeft: 40, FrontRight: -40, BackRight: -40},
	}

	hud := driverHud[XDriveState](state)
	assert.Equal(t, "mode: fluid", hud.Lines[0])
	assert.Equal(t, "heading: 45.0 deg", hud.Lines[1])

	state.Stopped = true
	state.HeadingOK = false
	hud = driverHud[XDriveState](state)
	assert.Equal(t, "heading: uncalibrated", hud.Lines[1])
	assert.Equal(t, "stopped", hud.Lines[2])
}
