package vehicle

import (
	"context"
	"fmt"
	"math"

	"github.com/goxdrive/client/internal/models"
)

// MotorCommand is one named output value with its legal range. The command
// driver maps it onto whatever the hardware wants (pulse width, duty cycle).
type MotorCommand struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

type MotorDriverIFace interface {
	Init() error
	Set(MotorCommand) error
	SetMany([]MotorCommand) error
	// StopAll is the single stop directive covering every drive output.
	StopAll() error
	Stop() error
}

type HeadingSensorIFace interface {
	Calibrate(context.Context) error
	// Heading returns degrees in [0,360) relative to the calibration frame.
	// ok is false until Calibrate has succeeded.
	Heading() (value float64, ok bool)
}

type Vehicle interface {
	Init() error
	Start(context.Context) error
}

// Creates 32 uints each with only 1 bit. 1,2,4,8,16,32...
func BuildButtonMasks() []uint32 {
	buttonMasks := make([]uint32, 32)
	for i := 0; i < 32; i++ {
		buttonMasks[i] = uint32(math.Pow(2, float64(i)))
	}
	return buttonMasks
}

func ParseButtons(bitButton uint32, masks []uint32) []bool {
	returnvalue := make([]bool, 32)
	for i := range masks {
		returnvalue[i] = ((bitButton & masks[i]) != 0) //Check if bitbutton and mask both have bits in same place
	}
	return returnvalue
}

// NewPress runs f only when the button went from released to pressed between
// the two states, so held buttons do not retrigger.
func NewPress(oldState, newState models.ControlState, buttonIndex int, f func()) (bool, error) {
	if len(newState.Buttons) != len(oldState.Buttons) {
		return false, fmt.Errorf("length of buttons states mismatched")
	}

	if buttonIndex < 0 || buttonIndex >= len(oldState.Buttons) {
		return false, fmt.Errorf("buttonIndex out of bounds - buttonIndex: %d maxIndex: %d", buttonIndex, len(oldState.Buttons)-1)
	}

	if newState.Buttons[buttonIndex] && !oldState.Buttons[buttonIndex] {
		f()
		return true, nil
	}
	return false, nil
}

func GetValueWithMidDeadZone(value, midValue, deadZone float64) float64 {
	if value > midValue && midValue+deadZone > value {
		return midValue
	} else if value < midValue && midValue-deadZone < value {
		return midValue
	}
	return value
}

func MapToRange(value, min, max, minReturn, maxReturn float64) float64 {
	mappedValue := (maxReturn-minReturn)*(value-min)/(max-min) + minReturn

	if mappedValue > maxReturn {
		return maxReturn
	} else if mappedValue < minReturn {
		return minReturn
	} else {
		return mappedValue
	}
}
