package xdrive

import (
	"log"

	"github.com/goxdrive/client/internal/kinematics"
)

func (s *XDriveState) cycleMode() {
	log.Printf("cycling drive mode from %s\n", s.Mode)
	s.Mode = s.Mode.Next()
}

func (s *XDriveState) requestLaunch() {
	log.Println("launcher fire requested")
	s.LaunchRequested = true
}

func (s *XDriveState) requestWingToggle() {
	log.Println("wing toggle requested")
	s.WingRequested = true
}

func (s *XDriveState) requestCalibrate() {
	log.Println("heading calibration requested")
	s.CalibrateRequested = true
}

// mapDrive stores the tick's raw axis sample. Dead-zone arbitration belongs to
// the kinematics engine, so no filtering happens here.
func (s *XDriveState) mapDrive(strafe, forward, rotate float64) {
	s.Drive = kinematics.AxisSample{
		ForwardY: forward,
		StrafeX:  strafe,
		RotateX:  rotate,
	}
}

// clearRequests drops the one-shot mechanism requests after the tick loop has
// acted on them, so a single press never fires twice.
func (s *XDriveState) clearRequests() {
	s.LaunchRequested = false
	s.WingRequested = false
	s.CalibrateRequested = false
}
