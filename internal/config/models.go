package config

const (
	MaxSupportedOutputs = 16
	AppEnvBase          = "GOXD_"

	DefaultServer    = "127.0.0.1:8181"
	DefaultRobotKey  = ""
	DefaultPassword  = ""
	DefaultSeatCount = 1

	// Default Command Options
	DefaultCommandDriver = "pca9685"
	DefaultAddress       = 0x40
	DefaultI2CDevice     = "/dev/i2c-1"
	DefaultMaxPulse      = 2250
	DefaultMinPulse      = 750
	DefaultInverted      = false
	DefaultOffset        = 0

	// Default IMU Options
	DefaultImuEnabled   = true
	DefaultImuAddress   = 0x28
	DefaultImuI2CDevice = "/dev/i2c-1"

	// Default XDrive Options
	DefaultDriveMode        = "fluid"
	DefaultTickMs           = 20
	DefaultNetInterface     = "wlan0"
	DefaultLauncherRest     = -100.0
	DefaultLauncherFire     = 100.0
	DefaultLauncherTravelMs = 350
	DefaultWingStowed       = -100.0
	DefaultWingDeployed     = 100.0
	DefaultWingTravelMs     = 500
)

type Config struct {
	ServerCfg  ServerConfig
	CommandCfg CommandConfig
	ImuCfg     ImuConfig
	XDriveCfg  XDriveConfig
}

type ServerConfig struct {
	Server    string
	Key       string
	Password  string
	SeatCount int
}

type CommandConfig struct {
	CommandDriver string
	Address       byte
	I2CDevice     string
	OutputCfgs    []OutputConfig
}

// OutputConfig describes one channel on the command driver: a drive ESC or a
// mechanism servo.
type OutputConfig struct {
	Name     string
	Channel  int
	MaxPulse float64
	MinPulse float64
	Inverted bool
	Offset   int
}

type ImuConfig struct {
	Enabled   bool
	Address   byte
	I2CDevice string
}

type XDriveConfig struct {
	DefaultMode  string
	TickMs       int
	NetInterface string

	LauncherRest     float64
	LauncherFire     float64
	LauncherTravelMs int

	WingStowed   float64
	WingDeployed float64
	WingTravelMs int
}
