package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/goxdrive/client/internal/models"
	socketio "github.com/googollee/go-socket.io"
	"github.com/pion/webrtc/v3"
)

// Connection is one driver's webrtc session: the command data channel feeds
// the seat's control channel and the hud/ping channels go back the other way.
type Connection struct {
	Socket         socketio.Conn
	PeerConnection *webrtc.PeerConnection
	Ctx            context.Context
	CtxCancel      context.CancelFunc
	CommandChannel chan models.ControlState
	HudChannel     chan models.Hud

	HudOutput  *webrtc.DataChannel
	PingOutput *webrtc.DataChannel
	PingInput  chan int64
}

func NewConnection(socketConn socketio.Conn, commandChan chan models.ControlState, hudChan chan models.Hud, peerConn *webrtc.PeerConnection) (*Connection, error) {
	log.Printf("creating user connection %s\n", socketConn.ID())
	ctx, cancel := context.WithCancel(context.Background())
	conn := &Connection{
		Socket:         socketConn,
		PeerConnection: peerConn,
		Ctx:            ctx,
		CtxCancel:      cancel,
		CommandChannel: commandChan,
		HudChannel:     hudChan,
		PingInput:      make(chan int64, 10),
	}
	return conn, nil
}

func (c *Connection) Disconnect() {
	log.Println("user disconnecting")
	c.CtxCancel()
	c.PeerConnection.Close()
}

func (c *Connection) RegisterHandlers() error {
	log.Println("start event listeners")

	// This will notify you when the peer has connected/disconnected
	c.PeerConnection.OnICEConnectionStateChange(c.onICEConnectionStateChange)

	// Handle ICE candidate messages from the client
	c.PeerConnection.OnICECandidate(c.onICECandidate)

	c.PeerConnection.OnDataChannel(c.onDataChannel)

	go c.userUpdater()
	return nil
}

// userUpdater pushes hud frames at 30hz and pings once a second over the data
// channels for as long as the connection lives.
func (c *Connection) userUpdater() {
	pingTicker := time.NewTicker(1 * time.Second)
	hudTicker := time.NewTicker(33 * time.Millisecond) //30hz
	sent := true
	hudToSend := models.Hud{}
	lastPing := int64(0)
	for {
		select {
		case <-c.Ctx.Done():
			log.Printf("stopping user updater: %s\n", c.Ctx.Err().Error())
			return
		case hud, ok := <-c.HudChannel:
			if !ok {
				log.Println("hud channel closed")
				return
			}
			if c.HudOutput != nil {
				hudToSend = hud
				sent = false
			}
		case <-pingTicker.C:
			if c.PingOutput != nil {
				data, err := encode(models.Ping{
					TimeStamp: time.Now().UnixMilli(),
					Source:    PingSourceName,
				})
				if err != nil {
					log.Printf("error: failed encoding ping: %s\n", err.Error())
					continue
				}
				err = c.PingOutput.SendText(data)
				if err != nil {
					log.Printf("error: failed sending ping: %s\n", err.Error())
					continue
				}
			}
		case recievedPing, ok := <-c.PingInput:
			if !ok {
				log.Println("ping channel closed")
				return
			}
			lastPing = recievedPing
		case <-hudTicker.C:
			if !sent && c.HudOutput != nil {
				if len(hudToSend.Lines) > 0 {
					hudToSend.Lines[0] = fmt.Sprintf("%s | Ping:%dms", hudToSend.Lines[0], lastPing)
				}
				encodedMsg, err := encode(hudToSend)
				if err != nil {
					log.Printf("error: failed encoding hud: %s\n", err.Error())
					continue
				}
				sent = true
				err = c.HudOutput.SendText(encodedMsg)
				if err != nil {
					log.Printf("error: failed sending hud: %s\n", err.Error())
					continue
				}
			}
		}
	}
}
