package xdrive

import (
	"fmt"

	"github.com/goxdrive/client/internal/models"
	"github.com/goxdrive/client/internal/vehicle"
)

func NewDriverSeat(seat *models.Seat) *vehicle.VehicleSeat[XDriveState] {
	return vehicle.NewVehicleSeat[XDriveState](seat, driverParser[XDriveState], driverCenter[XDriveState], driverHud[XDriveState])
}

func driverParser[T XDriveState](oldCommand, newCommand models.ControlState, state vehicle.VehicleStateIFace[T]) vehicle.VehicleStateIFace[T] {
	newState := state.(XDriveState)

	vehicle.NewPress(oldCommand, newCommand, ModeCycle, newState.cycleMode)
	vehicle.NewPress(oldCommand, newCommand, LauncherFire, newState.requestLaunch)
	vehicle.NewPress(oldCommand, newCommand, WingToggle, newState.requestWingToggle)
	vehicle.NewPress(oldCommand, newCommand, ImuCalibrate, newState.requestCalibrate)

	newState.mapDrive(newCommand.Axes[AxisStrafe], newCommand.Axes[AxisForward], newCommand.Axes[AxisRotate])

	return newState
}

func driverCenter[T XDriveState](state vehicle.VehicleStateIFace[T]) vehicle.VehicleStateIFace[T] {
	newState := state.(XDriveState)
	newState.mapDrive(0, 0, 0)
	newState.clearRequests()
	return newState
}

func driverHud[T XDriveState](state vehicle.VehicleStateIFace[T]) models.Hud {
	s := state.(XDriveState)

	headingLine := "heading: uncalibrated"
	if s.HeadingOK {
		headingLine = fmt.Sprintf("heading: %.1f deg", s.Heading)
	}

	driveLine := fmt.Sprintf("fl:%+.0f bl:%+.0f fr:%+.0f br:%+.0f", s.Powers.FrontLeft, s.Powers.BackLeft, s.Powers.FrontRight, s.Powers.BackRight)
	if s.Stopped {
		driveLine = "stopped"
	}

	wingLine := "wing: stowed"
	if s.WingDeployed {
		wingLine = "wing: deployed"
	}

	return models.Hud{
		Lines: []string{
			fmt.Sprintf("mode: %s", s.Mode),
			headingLine,
			driveLine,
			wingLine,
			fmt.Sprintf("net rx:%.0fB tx:%.0fB", s.RxBytes, s.TxBytes),
		},
	}
}
