package xdrive

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/goxdrive/client/internal/config"
	"github.com/goxdrive/client/internal/kinematics"
	"github.com/goxdrive/client/internal/models"
	"github.com/goxdrive/client/internal/vehicle"
	"github.com/prometheus/procfs"
	"golang.org/x/sync/errgroup"
)

func NewXDrive(cfg config.XDriveConfig, motorDriver vehicle.MotorDriverIFace, headingSensor vehicle.HeadingSensorIFace, seats []models.Seat) (*XDrive, error) {
	log.Printf("setting up xdrive with %d seats\n", len(seats))

	mode, err := kinematics.ParseDriveMode(cfg.DefaultMode)
	if err != nil {
		return nil, fmt.Errorf("error: bad default drive mode: %w", err)
	}

	drive, err := kinematics.NewDriveController(mode)
	if err != nil {
		return nil, err
	}

	return &XDrive{
		cfg:           cfg,
		drive:         drive,
		motorDriver:   motorDriver,
		headingSensor: headingSensor,
		state:         XDriveState{Mode: mode},
		seats:         NewXDriveSeats(seats),
		launcher:      NewMechanism(ServoLauncher, motorDriver, time.Duration(cfg.LauncherTravelMs)*time.Millisecond),
		wing:          NewMechanism(ServoWing, motorDriver, time.Duration(cfg.WingTravelMs)*time.Millisecond),
	}, nil
}

func NewXDriveSeats(seats []models.Seat) []*vehicle.VehicleSeat[XDriveState] {
	xdriveSeats := make([]*vehicle.VehicleSeat[XDriveState], 0, len(seats))
	for i := range seats {
		if i >= MaxSeats {
			break
		}
		log.Println("setting up driver seat")
		xdriveSeats = append(xdriveSeats, NewDriverSeat(&seats[i]))
	}
	return xdriveSeats
}

func (x *XDrive) Init() error {
	err := x.motorDriver.Init()
	if err != nil {
		return fmt.Errorf("error: failed initializing xdrive motor driver: %w", err)
	}

	for i := range x.seats {
		err = x.seats[i].Init()
		if err != nil {
			return err
		}
	}

	//Motors stopped, mechanisms at rest
	err = x.motorDriver.StopAll()
	if err != nil {
		return fmt.Errorf("error: failed stopping motors on init: %w", err)
	}
	x.launcher.MoveTo(x.cfg.LauncherRest)
	x.wing.MoveTo(x.cfg.WingStowed)
	return nil
}

func (x *XDrive) Stop() error {
	log.Println("stopping xdrive")
	err := x.motorDriver.StopAll()
	if err != nil {
		return fmt.Errorf("error: failed stopping motors: %w", err)
	}
	err = x.motorDriver.Stop()
	if err != nil {
		return fmt.Errorf("error: failed stopping motor driver: %w", err)
	}
	return nil
}

func (x *XDrive) Start(ctx context.Context) error {
	log.Println("starting xdrive")
	errGroup, errGroupCtx := errgroup.WithContext(ctx)

	defer x.Stop()

	for i := range x.seats {
		seatNum := i
		errGroup.Go(func() error {
			return x.seats[seatNum].Start(errGroupCtx)
		})
	}

	errGroup.Go(func() error {
		commandTicker := time.NewTicker(time.Duration(x.cfg.TickMs) * time.Millisecond)
		proc, err := procfs.Self()
		if err != nil {
			return fmt.Errorf("error: procfs could not get process: %w", err)
		}
		for {
			select {
			case <-errGroupCtx.Done():
				log.Printf("stopping xdrive tick loop: %s\n", errGroupCtx.Err().Error())
				return errGroupCtx.Err()
			case <-commandTicker.C:
				statesWithNewCommand := make([]XDriveState, 0, len(x.seats))
				for i := range x.seats {
					newState := x.seats[i].ApplyCommand(x.state).(XDriveState)
					statesWithNewCommand = append(statesWithNewCommand, newState)
				}

				mergedState := x.mergeSeatStates(statesWithNewCommand)
				err := x.applyState(errGroupCtx, mergedState)
				if err != nil {
					return fmt.Errorf("failed applying xdrive state: %w", err)
				}

				x.updateNetStats(proc)

				for i := range x.seats {
					x.seats[i].UpdateHud(x.state)
				}
			}
		}
	})

	err := errGroup.Wait()
	if err != nil {
		return fmt.Errorf("xdrive error group closed: %w", err)
	}
	return nil
}

// mergeSeatStates merges multiple states into one state. With a single driver
// seat the driver's state wins outright.
func (x *XDrive) mergeSeatStates(states []XDriveState) XDriveState {
	if len(states) < 1 {
		log.Println("no xdrive states given, so making an empty one")
		return XDriveState{Mode: x.drive.Mode()}
	}

	return states[0]
}

// applyState runs one drive tick: resolve the mode change between ticks,
// dispatch mechanism requests, read the heading, mix, and command the motors.
func (x *XDrive) applyState(ctx context.Context, state XDriveState) error {
	x.lock.Lock()
	defer x.lock.Unlock()

	if state.Mode != x.drive.Mode() {
		err := x.drive.SetMode(state.Mode)
		if err != nil {
			log.Printf("error: rejecting mode change: %s\n", err.Error())
			state.Mode = x.drive.Mode()
		}
	}

	x.handleRequests(ctx, &state)

	heading, headingOK := x.headingSensor.Heading()
	powers, stop := x.drive.Tick(state.Drive, heading*math.Pi/180, headingOK)

	var err error
	if stop {
		err = x.motorDriver.StopAll()
	} else {
		err = x.motorDriver.SetMany(x.buildCommands(powers))
	}
	if err != nil {
		return fmt.Errorf("failed setting xdrive motor commands: %w", err)
	}

	state.Heading = heading
	state.HeadingOK = headingOK
	state.Powers = powers
	state.Stopped = stop
	state.clearRequests()
	x.state = state
	return nil
}

// handleRequests kicks off the one-shot background motions. None of these
// block: mechanisms move in their own goroutines and calibration runs once in
// the background while driving continues in fluid mixing.
func (x *XDrive) handleRequests(ctx context.Context, state *XDriveState) {
	if state.LaunchRequested {
		x.launcher.Cycle(x.cfg.LauncherFire, x.cfg.LauncherRest)
	}

	if state.WingRequested {
		if state.WingDeployed {
			if x.wing.MoveTo(x.cfg.WingStowed) {
				state.WingDeployed = false
			}
		} else {
			if x.wing.MoveTo(x.cfg.WingDeployed) {
				state.WingDeployed = true
			}
		}
	}

	if state.CalibrateRequested && !x.calibrating {
		x.calibrating = true
		go func() {
			defer func() {
				x.lock.Lock()
				x.calibrating = false
				x.lock.Unlock()
			}()
			err := x.headingSensor.Calibrate(ctx)
			if err != nil {
				log.Printf("error: heading calibration failed: %s\n", err.Error())
				return
			}
			log.Println("heading calibrated")
		}()
	}
}

func (x *XDrive) buildCommands(powers kinematics.WheelPowers) []vehicle.MotorCommand {
	return []vehicle.MotorCommand{
		{
			Name:  MotorFrontLeft,
			Value: powers.FrontLeft,
			Min:   MinOutput,
			Max:   MaxOutput,
		},
		{
			Name:  MotorBackLeft,
			Value: powers.BackLeft,
			Min:   MinOutput,
			Max:   MaxOutput,
		},
		{
			Name:  MotorFrontRight,
			Value: powers.FrontRight,
			Min:   MinOutput,
			Max:   MaxOutput,
		},
		{
			Name:  MotorBackRight,
			Value: powers.BackRight,
			Min:   MinOutput,
			Max:   MaxOutput,
		},
	}
}

func (x *XDrive) updateNetStats(proc procfs.Proc) {
	netDev, err := proc.NetDev()
	if err != nil {
		log.Printf("error: failed getting netstat: %s\n", err.Error())
		return
	}

	ifaceStats, ok := netDev[x.cfg.NetInterface]
	if !ok {
		if !x.warnedNoIface {
			log.Printf("net interface %s not found, hud net stats disabled\n", x.cfg.NetInterface)
			x.warnedNoIface = true
		}
		return
	}

	x.lock.Lock()
	x.state.RxBytes = float64(ifaceStats.RxBytes)
	x.state.TxBytes = float64(ifaceStats.TxBytes)
	x.lock.Unlock()
}
