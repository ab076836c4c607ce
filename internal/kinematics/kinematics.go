package kinematics

import "math"

const (
	// DeadZone is the axis magnitude below which a stick is treated as released.
	// Same units as the axis range.
	DeadZone = 10.0

	MaxInput = 100.0
	MinInput = -100.0
)

// AxisSample is one tick's worth of joystick input. ForwardY is the left stick
// vertical axis (positive forward), StrafeX the left stick horizontal axis
// (positive right), RotateX the right stick horizontal axis (positive
// clockwise). All three are percent deflection in -100..100.
type AxisSample struct {
	ForwardY float64
	StrafeX  float64
	RotateX  float64
}

// TranslationDead reports whether both translation axes are inside the dead zone.
func (s AxisSample) TranslationDead() bool {
	return math.Abs(s.ForwardY) < DeadZone && math.Abs(s.StrafeX) < DeadZone
}

// RotationDead reports whether the rotation axis is inside the dead zone.
func (s AxisSample) RotationDead() bool {
	return math.Abs(s.RotateX) < DeadZone
}

// WheelPowers is the signed power for each wheel of the X arrangement.
// Positive spins the wheel in its forward direction.
type WheelPowers struct {
	FrontLeft  float64
	BackLeft   float64
	FrontRight float64
	BackRight  float64
}

func (w WheelPowers) IsZero() bool {
	return w.FrontLeft == 0 && w.BackLeft == 0 && w.FrontRight == 0 && w.BackRight == 0
}

func (w WheelPowers) Scale(f float64) WheelPowers {
	return WheelPowers{
		FrontLeft:  w.FrontLeft * f,
		BackLeft:   w.BackLeft * f,
		FrontRight: w.FrontRight * f,
		BackRight:  w.BackRight * f,
	}
}

// MoveDirection is one of the six discrete motions of single-move driving.
type MoveDirection int

const (
	MoveForward MoveDirection = iota
	MoveBackward
	MoveStrafeRight
	MoveStrafeLeft
	MoveRotateRight
	MoveRotateLeft
)

var moveDirectionNames = map[MoveDirection]string{
	MoveForward:     "forward",
	MoveBackward:    "backward",
	MoveStrafeRight: "strafe_right",
	MoveStrafeLeft:  "strafe_left",
	MoveRotateRight: "rotate_right",
	MoveRotateLeft:  "rotate_left",
}

func (d MoveDirection) String() string {
	name, ok := moveDirectionNames[d]
	if !ok {
		return "unknown"
	}
	return name
}

// Move is a single discrete motion with an unsigned magnitude in 0..100.
type Move struct {
	Direction MoveDirection
	Magnitude float64
}

// Powers expands the discrete move into per-wheel powers.
func (m Move) Powers() WheelPowers {
	v := m.Magnitude
	switch m.Direction {
	case MoveForward:
		return WheelPowers{v, v, v, v}
	case MoveBackward:
		return WheelPowers{-v, -v, -v, -v}
	case MoveStrafeRight:
		return WheelPowers{v, -v, -v, v}
	case MoveStrafeLeft:
		return WheelPowers{-v, v, v, -v}
	case MoveRotateRight:
		return WheelPowers{v, v, -v, -v}
	case MoveRotateLeft:
		return WheelPowers{-v, -v, v, v}
	default:
		return WheelPowers{}
	}
}

// SingleMove picks at most one discrete motion for the tick. The first axis
// direction past the dead zone wins, checked in priority order: forward,
// backward, strafe right, strafe left, rotate right, rotate left. Returns
// false when every axis is dead, which means stop.
func SingleMove(s AxisSample) (Move, bool) {
	switch {
	case s.ForwardY > DeadZone:
		return Move{MoveForward, s.ForwardY}, true
	case s.ForwardY < -DeadZone:
		return Move{MoveBackward, -s.ForwardY}, true
	case s.StrafeX > DeadZone:
		return Move{MoveStrafeRight, s.StrafeX}, true
	case s.StrafeX < -DeadZone:
		return Move{MoveStrafeLeft, -s.StrafeX}, true
	case s.RotateX > DeadZone:
		return Move{MoveRotateRight, s.RotateX}, true
	case s.RotateX < -DeadZone:
		return Move{MoveRotateLeft, -s.RotateX}, true
	default:
		return Move{}, false
	}
}

// Fluid mixes all three axes additively. Each live axis contributes to every
// wheel with the sign fixed by the wheel's mounting:
//
//	wheel  rotate  forward  strafe
//	FL     +       +        +
//	BL     +       +        -
//	FR     -       +        -
//	BR     -       +        +
//
// Sums are not normalized; the motor driver clamps anything past full power.
// An all-zero result means stop.
func Fluid(s AxisSample) WheelPowers {
	var p WheelPowers

	if !s.RotationDead() {
		p.FrontLeft += s.RotateX
		p.BackLeft += s.RotateX
		p.FrontRight -= s.RotateX
		p.BackRight -= s.RotateX
	}

	if !s.TranslationDead() {
		p.FrontLeft += s.ForwardY
		p.BackLeft += s.ForwardY
		p.FrontRight += s.ForwardY
		p.BackRight += s.ForwardY

		p.FrontLeft += s.StrafeX
		p.BackLeft -= s.StrafeX
		p.FrontRight -= s.StrafeX
		p.BackRight += s.StrafeX
	}

	return p
}

// FieldCentric rotates the translation vector by the negative of the robot
// heading before mixing, so stick-forward stays field-forward no matter which
// way the robot points. Outputs are normalized to [-1, 1]; the denominator is
// floored at 1, which also guards the division. Scale by MaxInput for percent.
func FieldCentric(s AxisSample, headingRadians float64) WheelPowers {
	forward := s.ForwardY
	strafe := s.StrafeX
	rotate := s.RotateX

	// Dead-zone gating happens on the raw stick, before rotation.
	if s.TranslationDead() {
		forward, strafe = 0, 0
	}
	if s.RotationDead() {
		rotate = 0
	}

	sin, cos := math.Sincos(-headingRadians)
	rx := strafe*cos - forward*sin
	ry := strafe*sin + forward*cos

	denom := math.Abs(ry) + math.Abs(rx) + math.Abs(rotate)
	if denom < 1 {
		denom = 1
	}

	return WheelPowers{
		FrontLeft:  (ry + rx + rotate) / denom,
		BackLeft:   (ry - rx + rotate) / denom,
		FrontRight: (ry - rx - rotate) / denom,
		BackRight:  (ry + rx - rotate) / denom,
	}
}
