package models

import (
	"github.com/google/uuid"
	"github.com/pion/webrtc/v3"
)

const ClientAxesCount = 10

type ConnectReq struct {
	Key       string `json:"key"`
	Password  string `json:"password"`
	SeatCount int    `json:"seat_count"`
}

type ConnectResp struct {
	Robot Robot
	Arena Arena
}

type Robot struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Type      string    `json:"type"`
}

type Arena struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Type      string    `json:"type"`
}

type IceCandidate struct {
	Candidate      webrtc.ICECandidateInit `json:"candidate"`
	RobotShortName string                  `json:"robot_name"`
	SeatNum        int                     `json:"seat_number"`
	UserId         uuid.UUID               `json:"user_id"`
}

type Offer struct {
	Offer          webrtc.SessionDescription `json:"offer"`
	RobotShortName string                    `json:"robot_name"`
	SeatNumber     int                       `json:"seat_number"`
	UserId         uuid.UUID                 `json:"user_id"`
}

type Answer struct {
	Answer     *webrtc.SessionDescription `json:"answer"`
	SeatNumber int                        `json:"seat_number"`
}

// ControlState is one gamepad snapshot from the driver station. Axes are
// percent deflections in -100..100; BitButton packs the 32 buttons.
type ControlState struct {
	Axes      []float64 `json:"axes"`
	BitButton uint32    `json:"bit_buttons"`
	TimeStamp int64     `json:"time_stamp"`
	Buttons   []bool
}

type Hud struct {
	Lines []string `json:"lines"`
}

type Ping struct {
	Source    string `json:"source"`
	TimeStamp int64  `json:"time_stamp"`
}

type Seat struct {
	Index          int
	CommandChannel chan ControlState
	HudChannel     chan Hud
}
