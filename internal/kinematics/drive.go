package kinematics

import (
	"fmt"
	"log"
)

// DriveMode selects the mixing strategy used each tick.
type DriveMode int

const (
	ModeSingleMove DriveMode = iota
	ModeFluid
	ModeFieldCentric
)

var driveModeNames = map[DriveMode]string{
	ModeSingleMove:   "single_move",
	ModeFluid:        "fluid",
	ModeFieldCentric: "field_centric",
}

func (m DriveMode) String() string {
	name, ok := driveModeNames[m]
	if !ok {
		return fmt.Sprintf("invalid(%d)", int(m))
	}
	return name
}

func (m DriveMode) Valid() bool {
	_, ok := driveModeNames[m]
	return ok
}

// Next cycles to the following mode, wrapping after field centric.
func (m DriveMode) Next() DriveMode {
	switch m {
	case ModeSingleMove:
		return ModeFluid
	case ModeFluid:
		return ModeFieldCentric
	default:
		return ModeSingleMove
	}
}

func ParseDriveMode(name string) (DriveMode, error) {
	for mode, modeName := range driveModeNames {
		if modeName == name {
			return mode, nil
		}
	}
	return ModeSingleMove, fmt.Errorf("unknown drive mode: %q", name)
}

// DriveController holds the active drive mode and turns one axis sample per
// tick into wheel powers. It carries no other state across ticks: every call
// to Tick is a fresh computation from its inputs.
type DriveController struct {
	mode DriveMode

	warnedNoHeading bool
}

func NewDriveController(mode DriveMode) (*DriveController, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid drive mode: %d", int(mode))
	}
	return &DriveController{mode: mode}, nil
}

func (d *DriveController) Mode() DriveMode {
	return d.mode
}

// SetMode replaces the active mode, taking effect on the next tick. Values
// outside the enum are rejected rather than silently defaulted.
func (d *DriveController) SetMode(mode DriveMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid drive mode: %d", int(mode))
	}
	if mode != d.mode {
		log.Printf("drive mode changed: %s -> %s\n", d.mode, mode)
	}
	d.mode = mode
	return nil
}

// Tick maps one axis sample to wheel powers under the active mode. Powers are
// in percent (-100..100, unclamped for fluid mixing). headingOK reports
// whether headingRadians is a live, calibrated reading; without one, field
// centric driving falls back to fluid mixing for the tick. stop is true when
// every axis is dead and the motors should be given the stop directive.
func (d *DriveController) Tick(sample AxisSample, headingRadians float64, headingOK bool) (powers WheelPowers, stop bool) {
	switch d.mode {
	case ModeSingleMove:
		move, ok := SingleMove(sample)
		if !ok {
			return WheelPowers{}, true
		}
		return move.Powers(), false

	case ModeFluid:
		powers = Fluid(sample)
		return powers, powers.IsZero()

	case ModeFieldCentric:
		if !headingOK {
			if !d.warnedNoHeading {
				log.Println("field centric requested without calibrated heading, using fluid mixing")
				d.warnedNoHeading = true
			}
			powers = Fluid(sample)
			return powers, powers.IsZero()
		}
		d.warnedNoHeading = false
		powers = FieldCentric(sample, headingRadians).Scale(MaxInput)
		return powers, powers.IsZero()

	default:
		// Unreachable while SetMode validates, but stopping is the safe answer.
		return WheelPowers{}, true
	}
}
