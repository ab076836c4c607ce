package pipwm

import (
	"fmt"
	"log"

	"github.com/goxdrive/client/internal/config"
	"github.com/goxdrive/client/internal/vehicle"
	"github.com/stianeikeland/go-rpio/v4"
)

const (
	Frequency           = 100000
	CycleLength         = uint32(2000)
	MaxSupportedOutputs = 4
)

var PinMap = []int{12, 13, 18, 19} //the pi's hardware pwm pins, one per wheel

// CommandDriver is the direct-pwm alternative for rigs without a pca9685. The
// pi only has four hardware pwm pins, so it covers the drive motors and no
// mechanisms; launcher and wing commands for unconfigured outputs are dropped.
type CommandDriver struct {
	cfg     config.CommandConfig
	outputs map[string]Output
}

type Output struct {
	name     string
	inverted bool
	offset   float64
	pin      rpio.Pin
	maxValue uint32
	minValue uint32
}

func NewCommand(cfg config.CommandConfig) *CommandDriver {
	return &CommandDriver{
		cfg: cfg,
	}
}

func (c *CommandDriver) Init() error {
	err := rpio.Open()
	if err != nil {
		return fmt.Errorf("failed opening rpio: %w", err)
	}

	outputs := make(map[string]Output, MaxSupportedOutputs)
	for i := range c.cfg.OutputCfgs {
		if i >= MaxSupportedOutputs {
			break
		}

		name := c.cfg.OutputCfgs[i].Name
		outputs[name] = Output{
			name:     name,
			inverted: c.cfg.OutputCfgs[i].Inverted,
			offset:   float64(c.cfg.OutputCfgs[i].Offset) / 100,
			pin:      rpio.Pin(PinMap[i]),
			maxValue: uint32(c.cfg.OutputCfgs[i].MaxPulse),
			minValue: uint32(c.cfg.OutputCfgs[i].MinPulse),
		}
		outputs[name].pin.Mode(rpio.Pwm)
		outputs[name].pin.Freq(Frequency)
		log.Printf("output added: %s\n", name)
	}
	c.outputs = outputs
	return c.StopAll()
}

func (c *CommandDriver) Stop() error {
	err := rpio.Close()
	if err != nil {
		return fmt.Errorf("failed closing rpio: %w", err)
	}
	return nil
}

// StopAll sets every pin to mid duty, the stopped pulse for a drive esc.
func (c *CommandDriver) StopAll() error {
	for i := range c.outputs {
		midValue := (c.outputs[i].maxValue + c.outputs[i].minValue) / 2
		c.outputs[i].pin.DutyCycle(midValue, CycleLength)
	}
	return nil
}

func (c *CommandDriver) SetMany(cmds []vehicle.MotorCommand) error {
	for i := range cmds {
		err := c.Set(cmds[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *CommandDriver) Set(cmd vehicle.MotorCommand) error {
	val, ok := c.outputs[cmd.Name]
	if ok {
		mappedValue := vehicle.MapToRange(cmd.Value+val.offset*(cmd.Max-cmd.Min)/2, cmd.Min, cmd.Max, float64(val.minValue), float64(val.maxValue))
		if val.inverted {
			mappedValue = float64(val.maxValue) - mappedValue + float64(val.minValue)
		}

		val.pin.DutyCycle(uint32(mappedValue), CycleLength)
	}
	return nil
}
