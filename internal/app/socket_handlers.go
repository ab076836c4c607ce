package app

import (
	"log"

	"github.com/goxdrive/client/internal/models"
	socketio "github.com/googollee/go-socket.io"
	"github.com/pion/webrtc/v3"
)

func (a *App) onOffer(socketConn socketio.Conn, msgs []string) {
	if len(msgs) != 1 {
		log.Printf("offer from %s had to many msgs: %d\n", socketConn.ID(), len(msgs))
	}
	msg := msgs[0]

	offer := models.Offer{}
	err := decode(msg, &offer)
	if err != nil {
		log.Printf("offer from %s failed unmarshaling: %s\n - msg - %s", socketConn.ID(), err.Error(), msg)
		return
	}

	if offer.SeatNumber < 0 || offer.SeatNumber >= a.cfg.ServerCfg.SeatCount {
		log.Printf("offer was for unsupported seat number: %d\n", offer.SeatNumber)
		return
	}

	peerConnection, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		log.Printf("failed creating peer connection on offer for seat %d: %s\n", offer.SeatNumber, err.Error())
		return
	}

	newConnection, err := NewConnection(socketConn, a.seats[offer.SeatNumber].CommandChannel, a.seats[offer.SeatNumber].HudChannel, peerConnection)
	if err != nil {
		log.Printf("failed creating connection on offer for seat %d: %s\n", offer.SeatNumber, err.Error())
		return
	}

	if oldConnection, ok := a.userConns[offer.SeatNumber]; ok {
		oldConnection.Disconnect()
	}
	a.userConns[offer.SeatNumber] = newConnection

	err = newConnection.RegisterHandlers()
	if err != nil {
		log.Printf("failed registering handlers for connection for seat %d: %s\n", offer.SeatNumber, err.Error())
		return
	}

	// Set the received offer as the remote description
	err = newConnection.PeerConnection.SetRemoteDescription(offer.Offer)
	if err != nil {
		log.Printf("failed to set remote description: %s\n", err)
		return
	}

	// Create answer
	answer, err := newConnection.PeerConnection.CreateAnswer(nil)
	if err != nil {
		log.Printf("failed to create answer: %s\n", err)
		return
	}

	// Create channel that is blocked until ICE Gathering is complete
	gatherComplete := webrtc.GatheringCompletePromise(newConnection.PeerConnection)

	// Sets the LocalDescription, and starts our UDP listeners
	err = newConnection.PeerConnection.SetLocalDescription(answer)
	if err != nil {
		log.Println("failed to set local description:", err)
		return
	}

	// Block until ICE Gathering is complete, disabling trickle ICE
	// we do this because we only can exchange one signaling message
	<-gatherComplete

	answerReq := models.Answer{
		Answer:     newConnection.PeerConnection.LocalDescription(),
		SeatNumber: offer.SeatNumber,
	}

	encodedAnswer, err := encode(answerReq)
	if err != nil {
		log.Printf("failed encoding answer: %s\n", err.Error())
		return
	}
	log.Println("sending answer")
	a.client.Emit("answer", encodedAnswer)
}

func (a *App) onICECandidate(socketConn socketio.Conn, msg string) {
	decodedMsg := ""
	err := decode(msg, &decodedMsg)
	if err != nil {
		log.Printf("ice candidate from %s failed unmarshaling: %s\n", socketConn.ID(), msg)
		return
	}
}

func (a *App) onRegisterSuccess(socketConn socketio.Conn, msgs []string) {
	if len(msgs) != 1 {
		log.Printf("register response from %s had to many msgs: %d\n", socketConn.ID(), len(msgs))
	}
	msg := msgs[0]

	decodedMsg := models.ConnectResp{}
	err := decode(msg, &decodedMsg)
	if err != nil {
		log.Printf("register response from %s failed unmarshaling: %s\n", socketConn.ID(), msg)
		return
	}

	a.robotInfo = decodedMsg.Robot
	a.arenaInfo = decodedMsg.Arena
	log.Printf("robot connected as %s(%s) @ %s(%s) with %d seats available\n", a.robotInfo.Name, a.robotInfo.ShortName, a.arenaInfo.Name, a.arenaInfo.ShortName, a.cfg.ServerCfg.SeatCount)
}
