package command

import (
	"fmt"
	"log"

	"github.com/goxdrive/client/internal/config"
	"github.com/goxdrive/client/internal/vehicle"
	"github.com/googolgl/go-i2c"
	"github.com/googolgl/go-pca9685"
)

const (
	MaxValue = 1.0
	MinValue = 0.0
	MaxPulse = pca9685.ServoMaxPulseDef
	MinPulse = pca9685.ServoMinPulseDef
	AcRange  = pca9685.ServoRangeDef

	MaxSupportedOutputs = 16
)

// CommandDriver drives the four ESCs and the mechanism servos through a
// pca9685 pwm controller. Drive ESCs treat mid pulse as stopped, so centering
// a channel is the stop command for it.
type CommandDriver struct {
	cfg     config.CommandConfig
	conn    *i2c.Options
	outputs map[string]Output
	driver  *pca9685.PCA9685
}

type Output struct {
	name     string
	inverted bool
	offset   float64
	servo    *pca9685.Servo
}

func NewCommand(cfg config.CommandConfig) *CommandDriver {
	return &CommandDriver{
		cfg: cfg,
	}
}

func (c *CommandDriver) Init() error {
	conn, err := i2c.New(c.cfg.Address, c.cfg.I2CDevice)
	if err != nil {
		return fmt.Errorf("error starting i2c with address - %w", err)
	}
	c.conn = conn

	c.driver, err = pca9685.New(conn, nil)
	if err != nil {
		return fmt.Errorf("error getting pwm driver - %w", err)
	}

	outputs := make(map[string]Output, MaxSupportedOutputs)
	for i := range c.cfg.OutputCfgs {
		name := c.cfg.OutputCfgs[i].Name
		outputs[name] = Output{
			name:     name,
			inverted: c.cfg.OutputCfgs[i].Inverted,
			offset:   float64(c.cfg.OutputCfgs[i].Offset) / 100,
			servo: c.driver.ServoNew(c.cfg.OutputCfgs[i].Channel, &pca9685.ServOptions{
				AcRange:  AcRange,
				MinPulse: float32(c.cfg.OutputCfgs[i].MinPulse),
				MaxPulse: float32(c.cfg.OutputCfgs[i].MaxPulse),
			}),
		}
		log.Printf("output added: %s\n", name)
	}
	c.outputs = outputs
	return c.StopAll()
}

// StopAll centers every channel: neutral pulse on the ESCs stops the wheels.
func (c *CommandDriver) StopAll() error {
	for i := range c.outputs {
		err := c.outputs[i].servo.Fraction(0.5)
		if err != nil {
			return fmt.Errorf("failed centering output %s - %w", c.outputs[i].name, err)
		}
	}
	return nil
}

func (c *CommandDriver) Stop() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	if err != nil {
		return fmt.Errorf("failed closing i2c: %w", err)
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
		mappedValue := vehicle.MapToRange(cmd.Value+val.offset*(cmd.Max-cmd.Min)/2, cmd.Min, cmd.Max, MinValue, MaxValue)
		if val.inverted {
			mappedValue = MaxValue - mappedValue
		}

		err := val.servo.Fraction(float32(mappedValue))
		if err != nil {
			return fmt.Errorf("failed setting output value - name: %s value: %.2f - error: %w", cmd.Name, mappedValue, err)
		}
	}
	return nil
}
