package xdrive

import (
	"sync"

	"github.com/goxdrive/client/internal/config"
	"github.com/goxdrive/client/internal/kinematics"
	"github.com/goxdrive/client/internal/vehicle"
)

const (
	MaxSeats = 1

	//Button Maps
	ModeCycle    = 0
	LauncherFire = 1
	WingToggle   = 2
	ImuCalibrate = 3

	//Axis Maps
	AxisStrafe  = 0
	AxisForward = 1
	AxisRotate  = 2

	MaxInput  = 100.0
	MinInput  = -100.0
	MaxOutput = 100.0
	MinOutput = -100.0

	//Command driver output names
	MotorFrontLeft  = "front_left"
	MotorBackLeft   = "back_left"
	MotorFrontRight = "front_right"
	MotorBackRight  = "back_right"
	ServoLauncher   = "launcher"
	ServoWing       = "wing"
)

type XDrive struct {
	cfg           config.XDriveConfig
	lock          sync.RWMutex
	seats         []*vehicle.VehicleSeat[XDriveState]
	state         XDriveState
	drive         *kinematics.DriveController
	motorDriver   vehicle.MotorDriverIFace
	headingSensor vehicle.HeadingSensorIFace

	launcher *Mechanism
	wing     *Mechanism

	calibrating   bool
	warnedNoIface bool
}

// XDriveState is the per-tick command state assembled from seat input. The
// drive sample and the mechanism requests are consumed every tick; the
// telemetry fields are filled by the tick loop for the HUD.
type XDriveState struct {
	Drive kinematics.AxisSample
	Mode  kinematics.DriveMode

	LaunchRequested    bool
	WingRequested      bool
	CalibrateRequested bool

	WingDeployed bool

	//Telemetry for the HUD
	Heading   float64
	HeadingOK bool
	Powers    kinematics.WheelPowers
	Stopped   bool
	RxBytes   float64
	TxBytes   float64
}
