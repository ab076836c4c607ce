package imu

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/goxdrive/client/internal/config"
	"github.com/googolgl/go-i2c"
)

// bno055 register map, euler angles in ndof fusion mode
const (
	regOprMode       = 0x3D
	regEulerHeading  = 0x1A
	oprModeNdof      = 0x0C
	headingScale     = 16.0 //lsb per degree
	modeSwitchTimeMs = 20
)

// Imu reads the robot heading from a bno055 over i2c. Heading reports false
// until Calibrate has captured the zero offset, so field-centric driving
// cannot silently run against an arbitrary reference frame.
type Imu struct {
	cfg  config.ImuConfig
	lock sync.RWMutex
	conn *i2c.Options

	offset     float64
	calibrated bool
}

func NewImu(cfg config.ImuConfig) *Imu {
	return &Imu{
		cfg: cfg,
	}
}

func (m *Imu) Init() error {
	conn, err := i2c.New(m.cfg.Address, m.cfg.I2CDevice)
	if err != nil {
		return fmt.Errorf("error starting imu i2c: %w", err)
	}
	m.conn = conn

	err = conn.WriteRegU8(regOprMode, oprModeNdof)
	if err != nil {
		return fmt.Errorf("error setting imu fusion mode: %w", err)
	}
	time.Sleep(modeSwitchTimeMs * time.Millisecond)

	log.Println("imu initialized")
	return nil
}

// Calibrate captures the current heading as the zero of the field frame. Run
// once before autonomous or teleop, with the robot pointed down-field.
func (m *Imu) Calibrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := m.readHeading()
	if err != nil {
		return fmt.Errorf("error reading heading during calibration: %w", err)
	}

	m.lock.Lock()
	m.offset = raw
	m.calibrated = true
	m.lock.Unlock()

	log.Printf("imu calibrated with offset %.1f deg\n", raw)
	return nil
}

// Heading returns degrees in [0,360) relative to the calibration frame, and
// false until calibrated or when the sensor read fails.
func (m *Imu) Heading() (float64, bool) {
	m.lock.RLock()
	offset := m.offset
	calibrated := m.calibrated
	m.lock.RUnlock()

	if !calibrated {
		return 0, false
	}

	raw, err := m.readHeading()
	if err != nil {
		log.Printf("error: imu heading read failed: %s\n", err.Error())
		return 0, false
	}

	return normalizeDegrees(raw - offset), true
}

func (m *Imu) Stop() error {
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	if err != nil {
		return fmt.Errorf("failed closing imu i2c: %w", err)
	}
	return nil
}

func (m *Imu) readHeading() (float64, error) {
	raw, err := m.conn.ReadRegU16LE(regEulerHeading)
	if err != nil {
		return 0, err
	}
	return float64(raw) / headingScale, nil
}

func normalizeDegrees(value float64) float64 {
	value = math.Mod(value, 360)
	if value < 0 {
		value += 360
	}
	return value
}

// Disabled stands in when no imu is fitted. Field-centric driving then falls
// back to fluid mixing.
type Disabled struct{}

func (Disabled) Calibrate(context.Context) error {
	return fmt.Errorf("no heading sensor configured")
}

func (Disabled) Heading() (float64, bool) {
	return 0, false
}
