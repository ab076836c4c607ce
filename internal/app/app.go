package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	pca9685 "github.com/goxdrive/client/internal/command/pca9685"
	pipwm "github.com/goxdrive/client/internal/command/pi_pwm"
	"github.com/goxdrive/client/internal/config"
	"github.com/goxdrive/client/internal/imu"
	"github.com/goxdrive/client/internal/models"
	"github.com/goxdrive/client/internal/vehicle"
	"github.com/goxdrive/client/internal/vehicle/xdrive"
	socketio "github.com/googollee/go-socket.io"
	"golang.org/x/sync/errgroup"
)

type App struct {
	ctx       context.Context
	ctxCancel context.CancelFunc

	robot vehicle.Vehicle

	robotInfo models.Robot
	arenaInfo models.Arena

	client    *socketio.Client
	userConns map[int]*Connection
	cfg       config.Config

	seats []models.Seat

	headingSensor vehicle.HeadingSensorIFace
	motorDriver   vehicle.MotorDriverIFace
}

func NewApp(cfg config.Config, client *socketio.Client) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	seats := make([]models.Seat, 0, cfg.ServerCfg.SeatCount)
	for i := 0; i < cfg.ServerCfg.SeatCount; i++ {
		seats = append(seats, models.Seat{
			Index:          i,
			CommandChannel: make(chan models.ControlState, 100),
			HudChannel:     make(chan models.Hud, 100),
		})
	}

	motorDriver, err := newMotorDriver(cfg.CommandCfg)
	if err != nil {
		cancel()
		return nil, err
	}

	headingSensor := newHeadingSensor(cfg.ImuCfg)

	robot, err := xdrive.NewXDrive(cfg.XDriveCfg, motorDriver, headingSensor, seats)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("error creating xdrive: %w", err)
	}

	return &App{
		cfg:           cfg,
		client:        client,
		ctx:           ctx,
		ctxCancel:     cancel,
		seats:         seats,
		userConns:     make(map[int]*Connection, cfg.ServerCfg.SeatCount),
		motorDriver:   motorDriver,
		headingSensor: headingSensor,
		robot:         robot,
	}, nil
}

func newMotorDriver(cfg config.CommandConfig) (vehicle.MotorDriverIFace, error) {
	switch cfg.CommandDriver {
	case "pca9685":
		return pca9685.NewCommand(cfg), nil
	case "pi_pwm":
		return pipwm.NewCommand(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported command driver: %s", cfg.CommandDriver)
	}
}

func newHeadingSensor(cfg config.ImuConfig) vehicle.HeadingSensorIFace {
	if !cfg.Enabled {
		log.Println("no imu configured, field centric driving disabled")
		return imu.Disabled{}
	}

	sensor := imu.NewImu(cfg)
	err := sensor.Init()
	if err != nil {
		log.Printf("error: imu init failed, field centric driving disabled: %s\n", err.Error())
		return imu.Disabled{}
	}
	return sensor
}

func (a *App) RegisterHandlers() error {
	log.Println("registering handlers")
	a.client.OnEvent("reply", func(s socketio.Conn, msg string) {
		log.Println("Receive Message /reply: ", "reply", msg)
	})

	a.client.OnEvent("offer", a.onOffer)

	a.client.OnEvent("candidate", a.onICECandidate)

	a.client.OnEvent("register_success", a.onRegisterSuccess)

	log.Println("attemping to connect to server...")
	err := a.client.Connect() //Client must have atleast 1 event handler to work
	if err != nil {
		return fmt.Errorf("error connecting to server - %w", err)
	}
	log.Println("connected to server")
	return nil
}

func (a *App) Start() error {
	group, groupCtx := errgroup.WithContext(a.ctx)
	log.Println("starting...")

	defer func() {
		log.Println("stopping...")
		a.client.Close()
	}()

	err := a.robot.Init()
	if err != nil {
		return fmt.Errorf("error initializing robot: %w", err)
	}

	//kill listener
	group.Go(func() error {
		signalChannel := make(chan os.Signal, 1)
		signal.Notify(signalChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-signalChannel:
			log.Printf("received signal: %s\n", sig)
			a.ctxCancel()
			return fmt.Errorf("received signal: %s", sig)
		case <-groupCtx.Done():
			log.Println("closing signal goroutine")
			return groupCtx.Err()
		}
	})

	//Start robot
	group.Go(func() error {
		return a.robot.Start(groupCtx)
	})

	//Send connect and send healthchecks
	group.Go(func() error {
		encodedMsg, err := encode(models.ConnectReq{
			Key:       a.cfg.ServerCfg.Key,
			Password:  a.cfg.ServerCfg.Password,
			SeatCount: a.cfg.ServerCfg.SeatCount,
		})
		if err != nil {
			return fmt.Errorf("error encoding connect request: %w", err)
		}
		a.client.Emit("robot_connect", encodedMsg)

		healthTicker := time.NewTicker(30 * time.Second)

		for {
			select {
			case <-groupCtx.Done():
				log.Println("health checker stopped")
				return groupCtx.Err()
			case <-healthTicker.C:
				a.client.Emit("robot_healthy", "")
			}
		}
	})

	err = group.Wait()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Println("context was cancelled")
			return nil
		} else {
			return fmt.Errorf("client stopping due to error - %w", err)
		}
	}

	log.Println("shutting down")
	return a.client.Close()
}
