package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

func GetConfig() Config {
	cfg := Config{
		ServerCfg:  GetServerConfig(),
		CommandCfg: GetCommandConfig(),
		ImuCfg:     GetImuConfig(),
		XDriveCfg:  GetXDriveConfig(),
	}

	log.Printf("app Config: \n%+v\n", cfg)
	return cfg
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Server:    GetStringEnv("SERVER", DefaultServer),
		Key:       GetStringEnv("ROBOTKEY", DefaultRobotKey),
		Password:  GetStringEnv("ROBOTPASSWORD", DefaultPassword),
		SeatCount: GetIntEnv("SEATCOUNT", DefaultSeatCount),
	}
}

func GetCommandConfig() CommandConfig {
	commandCfg := CommandConfig{
		CommandDriver: GetStringEnv("COMMANDDRIVER", DefaultCommandDriver),
		Address:       DefaultAddress,
		I2CDevice:     GetStringEnv("I2CDEVICE", DefaultI2CDevice),
		OutputCfgs:    make([]OutputConfig, 0, MaxSupportedOutputs),
	}

	for i := 0; i < MaxSupportedOutputs; i++ {
		envPrefix := fmt.Sprintf("OUTPUT%d_", i)
		outputCfg := OutputConfig{
			Name:     GetStringEnv(envPrefix+"NAME", defaultOutputName(i)),
			Channel:  GetIntEnv(envPrefix+"CHANNEL", i),
			MaxPulse: float64(GetIntEnv(envPrefix+"MAXPULSE", DefaultMaxPulse)),
			MinPulse: float64(GetIntEnv(envPrefix+"MINPULSE", DefaultMinPulse)),
			Inverted: GetBoolEnv(envPrefix+"INVERTED", DefaultInverted),
			Offset:   GetIntEnv(envPrefix+"MIDOFFSET", DefaultOffset),
		}

		if outputCfg.Name != "" {
			log.Printf("found config for output: %s\n", outputCfg.Name)
			commandCfg.OutputCfgs = append(commandCfg.OutputCfgs, outputCfg)
		}
	}
	return commandCfg
}

// The first six channels carry the four drive motors and both mechanisms, so
// the client works on defaults with no env at all.
func defaultOutputName(channel int) string {
	defaults := []string{"front_left", "back_left", "front_right", "back_right", "launcher", "wing"}
	if channel < len(defaults) {
		return defaults[channel]
	}
	return ""
}

func GetImuConfig() ImuConfig {
	envPrefix := "IMU_"
	return ImuConfig{
		Enabled:   GetBoolEnv(envPrefix+"ENABLED", DefaultImuEnabled),
		Address:   byte(GetIntEnv(envPrefix+"ADDRESS", DefaultImuAddress)),
		I2CDevice: GetStringEnv(envPrefix+"I2CDEVICE", DefaultImuI2CDevice),
	}
}

func GetXDriveConfig() XDriveConfig {
	envPrefix := "XDRIVE_"
	return XDriveConfig{
		DefaultMode:  GetStringEnv(envPrefix+"MODE", DefaultDriveMode),
		TickMs:       GetIntEnv(envPrefix+"TICK_MS", DefaultTickMs),
		NetInterface: GetStringEnv(envPrefix+"NET_INTERFACE", DefaultNetInterface),

		LauncherRest:     GetFloatEnv(envPrefix+"LAUNCHER_REST", DefaultLauncherRest),
		LauncherFire:     GetFloatEnv(envPrefix+"LAUNCHER_FIRE", DefaultLauncherFire),
		LauncherTravelMs: GetIntEnv(envPrefix+"LAUNCHER_TRAVEL_MS", DefaultLauncherTravelMs),

		WingStowed:   GetFloatEnv(envPrefix+"WING_STOWED", DefaultWingStowed),
		WingDeployed: GetFloatEnv(envPrefix+"WING_DEPLOYED", DefaultWingDeployed),
		WingTravelMs: GetIntEnv(envPrefix+"WING_TRAVEL_MS", DefaultWingTravelMs),
	}
}

func GetIntEnv(env string, defaultValue int) int {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := strconv.ParseInt(strings.Trim(envValue, "\r"), 10, 32)
		if err != nil {
			log.Printf("warning:%s not parsed - error: %s\n", env, err)
			return defaultValue
		} else {
			return int(value)
		}
	}
}

func GetBoolEnv(env string, defaultValue bool) bool {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := strconv.ParseBool(strings.Trim(envValue, "\r"))
		if err != nil {
			log.Printf("warning:%s not parsed - error: %s\n", env, err)
			return defaultValue
		} else {
			return value
		}
	}
}

func GetStringEnv(env string, defaultValue string) string {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		return strings.ToLower(strings.Trim(envValue, "\r"))
	}
}

func GetFloatEnv(env string, defaultValue float64) float64 {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return defaultValue
		}
		return value
	}
}
