package kinematics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriveControllerRejectsInvalidMode(t *testing.T) {
	_, err := NewDriveController(DriveMode(42))
	assert.Error(t, err)
}

func TestSetModeRejectsInvalidMode(t *testing.T) {
	drive, err := NewDriveController(ModeFluid)
	require.NoError(t, err)

	err = drive.SetMode(DriveMode(-1))
	assert.Error(t, err)
	assert.Equal(t, ModeFluid, drive.Mode(), "mode should be unchanged after a rejected set")
}

func TestModeChangeTakesEffectNextTick(t *testing.T) {
	drive, err := NewDriveController(ModeFluid)
	require.NoError(t, err)

	sample := AxisSample{ForwardY: 50, StrafeX: 30, RotateX: 20}

	powers, stop := drive.Tick(sample, 0, true)
	require.False(t, stop)
	assert.Equal(t, Fluid(sample), powers, "first tick uses the mode active when it ran")

	require.NoError(t, drive.SetMode(ModeFieldCentric))

	powers, stop = drive.Tick(sample, 0, true)
	require.False(t, stop)
	assert.Equal(t, FieldCentric(sample, 0).Scale(MaxInput), powers, "next tick uses the new mode")
}

func TestTickSingleMove(t *testing.T) {
	drive, err := NewDriveController(ModeSingleMove)
	require.NoError(t, err)

	powers, stop := drive.Tick(AxisSample{ForwardY: 50}, 0, false)
	require.False(t, stop)
	assert.Equal(t, WheelPowers{50, 50, 50, 50}, powers)

	_, stop = drive.Tick(AxisSample{ForwardY: 5}, 0, false)
	assert.True(t, stop)
}

func TestTickFluidStopsWhenDead(t *testing.T) {
	drive, err := NewDriveController(ModeFluid)
	require.NoError(t, err)

	_, stop := drive.Tick(AxisSample{ForwardY: 9, StrafeX: -9, RotateX: 9}, 0, false)
	assert.True(t, stop)
}

func TestTickFieldCentricWithoutHeadingFallsBackToFluid(t *testing.T) {
	drive, err := NewDriveController(ModeFieldCentric)
	require.NoError(t, err)

	sample := AxisSample{ForwardY: 50, StrafeX: 30, RotateX: 20}

	powers, stop := drive.Tick(sample, 0, false)
	require.False(t, stop)
	assert.Equal(t, Fluid(sample), powers)

	// Once the heading is live the real strategy runs again.
	powers, stop = drive.Tick(sample, 0, true)
	require.False(t, stop)
	assert.Equal(t, FieldCentric(sample, 0).Scale(MaxInput), powers)
}

func TestTickIsIdempotentAcrossTicks(t *testing.T) {
	drive, err := NewDriveController(ModeFluid)
	require.NoError(t, err)

	sample := AxisSample{ForwardY: 40, RotateX: 40}
	first, _ := drive.Tick(sample, 0, false)
	second, _ := drive.Tick(sample, 0, false)
	assert.Equal(t, first, second, "no state may carry over between ticks")
}

func TestParseDriveMode(t *testing.T) {
	for _, name := range []string{"single_move", "fluid", "field_centric"} {
		mode, err := ParseDriveMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, mode.String())
	}

	_, err := ParseDriveMode("crab_walk")
	assert.Error(t, err)
}

func TestDriveModeNextCycles(t *testing.T) {
	assert.Equal(t, ModeFluid, ModeSingleMove.Next())
	assert.Equal(t, ModeFieldCentric, ModeFluid.Next())
	assert.Equal(t, ModeSingleMove, ModeFieldCentric.Next())
}
