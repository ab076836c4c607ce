package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigDefaults(t *testing.T) {
	cfg := GetConfig()

	assert.Equal(t, DefaultServer, cfg.ServerCfg.Server)
	assert.Equal(t, DefaultSeatCount, cfg.ServerCfg.SeatCount)
	assert.Equal(t, "pca9685", cfg.CommandCfg.CommandDriver)
	assert.Equal(t, "fluid", cfg.XDriveCfg.DefaultMode)
	assert.Equal(t, DefaultTickMs, cfg.XDriveCfg.TickMs)
}

func TestDefaultOutputChannels(t *testing.T) {
	cfg := GetCommandConfig()

	names := make([]string, 0, len(cfg.OutputCfgs))
	for _, output := range cfg.OutputCfgs {
		names = append(names, output.Name)
	}

	// Four wheels and both mechanisms come up without any env set.
	assert.Equal(t, []string{"front_left", "back_left", "front_right", "back_right", "launcher", "wing"}, names)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOXD_XDRIVE_MODE", "field_centric")
	t.Setenv("GOXD_XDRIVE_TICK_MS", "50")
	t.Setenv("GOXD_IMU_ENABLED", "false")
	t.Setenv("GOXD_XDRIVE_LAUNCHER_FIRE", "75.5")

	cfg := GetConfig()
	assert.Equal(t, "field_centric", cfg.XDriveCfg.DefaultMode)
	assert.Equal(t, 50, cfg.XDriveCfg.TickMs)
	assert.False(t, cfg.ImuCfg.Enabled)
	assert.Equal(t, 75.5, cfg.XDriveCfg.LauncherFire)
}

func TestBadEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("GOXD_XDRIVE_TICK_MS", "not-a-number")

	cfg := GetXDriveConfig()
	assert.Equal(t, DefaultTickMs, cfg.TickMs)
}

func TestOutputEnvOverride(t *testing.T) {
	t.Setenv("GOXD_OUTPUT0_NAME", "front_left")
	t.Setenv("GOXD_OUTPUT0_CHANNEL", "7")
	t.Setenv("GOXD_OUTPUT0_INVERTED", "true")

	cfg := GetCommandConfig()
	assert.Equal(t, "front_left", cfg.OutputCfgs[0].Name)
	assert.Equal(t, 7, cfg.OutputCfgs[0].Channel)
	assert.True(t, cfg.OutputCfgs[0].Inverted)
}
