package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadSampleStopsEveryStrategy(t *testing.T) {
	samples := []AxisSample{
		{},
		{ForwardY: 5, StrafeX: -9, RotateX: 9},
		{ForwardY: -9.9, StrafeX: 9.9, RotateX: -9.9},
	}

	for _, sample := range samples {
		_, ok := SingleMove(sample)
		assert.False(t, ok, "single move should stop for %+v", sample)

		assert.True(t, Fluid(sample).IsZero(), "fluid should stop for %+v", sample)

		assert.True(t, FieldCentric(sample, 1.25).IsZero(), "field centric should stop for %+v", sample)
	}
}

func TestSingleMovePriority(t *testing.T) {
	tests := []struct {
		name      string
		sample    AxisSample
		direction MoveDirection
		magnitude float64
	}{
		{"forward wins", AxisSample{ForwardY: 50}, MoveForward, 50},
		{"forward beats strafe and rotate", AxisSample{ForwardY: 20, StrafeX: 90, RotateX: 90}, MoveForward, 20},
		{"backward", AxisSample{ForwardY: -35}, MoveBackward, 35},
		{"strafe right", AxisSample{StrafeX: 60, RotateX: 80}, MoveStrafeRight, 60},
		{"strafe left", AxisSample{StrafeX: -60}, MoveStrafeLeft, 60},
		{"rotate right", AxisSample{RotateX: 40}, MoveRotateRight, 40},
		{"rotate left", AxisSample{RotateX: -40}, MoveRotateLeft, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			move, ok := SingleMove(tc.sample)
			require.True(t, ok)
			assert.Equal(t, tc.direction, move.Direction)
			assert.Equal(t, tc.magnitude, move.Magnitude)
		})
	}
}

func TestSingleMoveForwardPowersAllWheels(t *testing.T) {
	move, ok := SingleMove(AxisSample{ForwardY: 50})
	require.True(t, ok)

	powers := move.Powers()
	assert.Equal(t, WheelPowers{50, 50, 50, 50}, powers)
}

func TestFluidRotateOnly(t *testing.T) {
	powers := Fluid(AxisSample{RotateX: 40})
	assert.Equal(t, WheelPowers{FrontLeft: 40, BackLeft: 40, FrontRight: -40, BackRight: -40}, powers)
}

func TestFluidSignTable(t *testing.T) {
	sample := AxisSample{ForwardY: 30, StrafeX: 20, RotateX: 15}
	powers := Fluid(sample)

	assert.Equal(t, 15.0+30+20, powers.FrontLeft)
	assert.Equal(t, 15.0+30-20, powers.BackLeft)
	assert.Equal(t, -15.0+30-20, powers.FrontRight)
	assert.Equal(t, -15.0+30+20, powers.BackRight)
}

func TestFluidIsLinear(t *testing.T) {
	sample := AxisSample{ForwardY: 40, StrafeX: 30, RotateX: 20}
	doubled := AxisSample{ForwardY: 80, StrafeX: 60, RotateX: 40}

	base := Fluid(sample)
	scaled := Fluid(doubled)

	assert.Equal(t, base.Scale(2), scaled)
}

func TestFluidDoesNotNormalize(t *testing.T) {
	// Raw sums may exceed full power; clamping belongs to the motor driver.
	powers := Fluid(AxisSample{ForwardY: 100, StrafeX: 100, RotateX: 100})
	assert.Equal(t, 300.0, powers.FrontLeft)
}

func TestFieldCentricNormalizationBound(t *testing.T) {
	samples := []AxisSample{
		{ForwardY: 100, StrafeX: 100, RotateX: 100},
		{ForwardY: 1e6, StrafeX: -1e6, RotateX: 1e6},
		{ForwardY: -15, StrafeX: 11, RotateX: 99},
	}
	headings := []float64{0, 0.5, math.Pi / 2, math.Pi, 4.2}

	for _, sample := range samples {
		for _, heading := range headings {
			powers := FieldCentric(sample, heading)
			for _, p := range []float64{powers.FrontLeft, powers.BackLeft, powers.FrontRight, powers.BackRight} {
				assert.LessOrEqual(t, math.Abs(p), 1.0, "sample %+v heading %f", sample, heading)
			}
		}
	}
}

func TestFieldCentricZeroHeadingMatchesNormalizedFluid(t *testing.T) {
	sample := AxisSample{ForwardY: 50, StrafeX: 30, RotateX: 20}

	fluid := Fluid(sample)
	denom := math.Abs(sample.ForwardY) + math.Abs(sample.StrafeX) + math.Abs(sample.RotateX)
	expected := fluid.Scale(1 / denom)

	powers := FieldCentric(sample, 0)
	assert.InDelta(t, expected.FrontLeft, powers.FrontLeft, 1e-9)
	assert.InDelta(t, expected.BackLeft, powers.BackLeft, 1e-9)
	assert.InDelta(t, expected.FrontRight, powers.FrontRight, 1e-9)
	assert.InDelta(t, expected.BackRight, powers.BackRight, 1e-9)
}

func TestFieldCentricQuarterTurn(t *testing.T) {
	// At a 90 degree heading, stick-forward maps onto the robot's strafe axis.
	// Checked against the closed-form rotation, not an approximation.
	sample := AxisSample{ForwardY: 100}
	heading := math.Pi / 2

	sin, cos := math.Sincos(-heading)
	rx := -sample.ForwardY * sin
	ry := sample.ForwardY * cos
	denom := math.Abs(ry) + math.Abs(rx)

	powers := FieldCentric(sample, heading)
	assert.InDelta(t, (ry+rx)/denom, powers.FrontLeft, 1e-9)
	assert.InDelta(t, (ry-rx)/denom, powers.BackLeft, 1e-9)
	assert.InDelta(t, (ry-rx)/denom, powers.FrontRight, 1e-9)
	assert.InDelta(t, (ry+rx)/denom, powers.BackRight, 1e-9)

	// Which collapses to the strafe-right wheel pattern.
	assert.InDelta(t, 1.0, powers.FrontLeft, 1e-9)
	assert.InDelta(t, -1.0, powers.BackLeft, 1e-9)
	assert.InDelta(t, -1.0, powers.FrontRight, 1e-9)
	assert.InDelta(t, 1.0, powers.BackRight, 1e-9)
}

func TestFieldCentricSmallInputsFloorDenominator(t *testing.T) {
	// Inputs just past the dead zone sum under 1 would otherwise divide by a
	// tiny denominator; the floor keeps outputs proportional instead.
	sample := AxisSample{ForwardY: 0, StrafeX: 0, RotateX: 0}
	powers := FieldCentric(sample, 0)
	assert.True(t, powers.IsZero())
}

func TestDeadZoneClassification(t *testing.T) {
	assert.True(t, AxisSample{ForwardY: 9.9, StrafeX: -9.9}.TranslationDead())
	assert.False(t, AxisSample{ForwardY: 10}.TranslationDead())
	assert.False(t, AxisSample{StrafeX: -10}.TranslationDead())

	assert.True(t, AxisSample{RotateX: 9.9}.RotationDead())
	assert.False(t, AxisSample{RotateX: -10}.RotationDead())
}
