package xdrive

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/goxdrive/client/internal/vehicle"
)

// Mechanism is an auxiliary servo (launcher arm, wing) moved fire-and-forget
// in the background so a motion never stalls the drive tick. The busy flag is
// the only coordination: a second request while a motion is in flight is
// dropped.
type Mechanism struct {
	name   string
	driver vehicle.MotorDriverIFace
	travel time.Duration
	busy   atomic.Bool
}

func NewMechanism(name string, driver vehicle.MotorDriverIFace, travel time.Duration) *Mechanism {
	return &Mechanism{
		name:   name,
		driver: driver,
		travel: travel,
	}
}

func (m *Mechanism) Busy() bool {
	return m.busy.Load()
}

// MoveTo drives the servo to position and holds it there. Returns false if a
// previous motion is still travelling.
func (m *Mechanism) MoveTo(position float64) bool {
	if !m.busy.CompareAndSwap(false, true) {
		log.Printf("%s busy, ignoring request\n", m.name)
		return false
	}

	go func() {
		defer m.busy.Store(false)
		m.set(position)
		time.Sleep(m.travel)
	}()
	return true
}

// Cycle drives the servo to position and back to rest, one shot. Returns false
// if a previous motion is still travelling.
func (m *Mechanism) Cycle(position, rest float64) bool {
	if !m.busy.CompareAndSwap(false, true) {
		log.Printf("%s busy, ignoring request\n", m.name)
		return false
	}

	go func() {
		defer m.busy.Store(false)
		m.set(position)
		time.Sleep(m.travel)
		m.set(rest)
		time.Sleep(m.travel)
	}()
	return true
}

func (m *Mechanism) set(position float64) {
	err := m.driver.Set(vehicle.MotorCommand{
		Name:  m.name,
		Value: position,
		Min:   MinOutput,
		Max:   MaxOutput,
	})
	if err != nil {
		log.Printf("error: failed setting %s position: %s\n", m.name, err.Error())
	}
}
