// Package config loads fpsrig settings with viper.
package config

import (
	"errors"
	"fmt"

	"fpsrig/internal/input"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type WindowConfig struct {
	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"`
	Title        string `mapstructure:"title"`
	TargetFPS    int    `mapstructure:"targetFPS"`
	Fullscreen   bool   `mapstructure:"fullscreen"`
	CursorToggle string `mapstructure:"cursorToggle"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// PlayerConfig holds the live-tunable PlayerController values.
type PlayerConfig struct {
	MoveSpeed            float32 `mapstructure:"moveSpeed"`
	JumpHeight           float32 `mapstructure:"jumpHeight"`
	Gravity              float32 `mapstructure:"gravity"`
	SprintMultiplier     float32 `mapstructure:"sprintMultiplier"`
	AimSpeedFactor       float32 `mapstructure:"aimSpeedFactor"`
	LookSensitivity      float32 `mapstructure:"lookSensitivity"`
	AimSensitivityFactor float32 `mapstructure:"aimSensitivityFactor"`
	PitchMin             float32 `mapstructure:"pitchMin"`
	PitchMax             float32 `mapstructure:"pitchMax"`
	GroundCheckDistance  float32 `mapstructure:"groundCheckDistance"`
}

// Props is the PlayerController property map for script appliers.
func (p PlayerConfig) Props() map[string]any {
	return map[string]any{
		"moveSpeed":            p.MoveSpeed,
		"jumpHeight":           p.JumpHeight,
		"gravity":              p.Gravity,
		"sprintMultiplier":     p.SprintMultiplier,
		"aimSpeedFactor":       p.AimSpeedFactor,
		"lookSensitivity":      p.LookSensitivity,
		"aimSensitivityFactor": p.AimSensitivityFactor,
		"pitchMin":             p.PitchMin,
		"pitchMax":             p.PitchMax,
		"groundCheckDistance":  p.GroundCheckDistance,
	}
}

// GunConfig holds the live-tunable GunController values.
type GunConfig struct {
	FireRange   float32 `mapstructure:"fireRange"`
	MaxMagazine int     `mapstructure:"maxMagazine"`
	ReloadTime  float32 `mapstructure:"reloadTime"`
	NormalFOV   float32 `mapstructure:"normalFOV"`
	AimFOV      float32 `mapstructure:"aimFOV"`
	FireRate    float32 `mapstructure:"fireRate"`
}

// Props is the GunController property map for script appliers.
func (g GunConfig) Props() map[string]any {
	return map[string]any{
		"fireRange":   g.FireRange,
		"maxMagazine": g.MaxMagazine,
		"reloadTime":  g.ReloadTime,
		"normalFOV":   g.NormalFOV,
		"aimFOV":      g.AimFOV,
		"fireRate":    g.FireRate,
	}
}

type Config struct {
	Window  WindowConfig   `mapstructure:"window"`
	Log     LogConfig      `mapstructure:"log"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Input   input.Bindings `mapstructure:"input"`
	Player  PlayerConfig   `mapstructure:"player"`
	Gun     GunConfig      `mapstructure:"gun"`
	Scene   string         `mapstructure:"scene"`
}

func setDefaults() {
	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.title", "fpsrig")
	viper.SetDefault("window.targetFPS", 60)
	viper.SetDefault("window.fullscreen", false)
	viper.SetDefault("window.cursorToggle", "Tab")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)

	viper.SetDefault("metrics.addr", "")

	b := input.DefaultBindings()
	viper.SetDefault("input.forward", b.Forward)
	viper.SetDefault("input.back", b.Back)
	viper.SetDefault("input.left", b.Left)
	viper.SetDefault("input.right", b.Right)
	viper.SetDefault("input.jump", b.Jump)
	viper.SetDefault("input.sprint", b.Sprint)
	viper.SetDefault("input.aim", b.Aim)
	viper.SetDefault("input.fire", b.Fire)
	viper.SetDefault("input.reload", b.Reload)

	viper.SetDefault("player.moveSpeed", 1.0)
	viper.SetDefault("player.jumpHeight", 0.5)
	viper.SetDefault("player.gravity", -9.81)
	viper.SetDefault("player.sprintMultiplier", 2.0)
	viper.SetDefault("player.aimSpeedFactor", 0.5)
	viper.SetDefault("player.lookSensitivity", 8.0)
	viper.SetDefault("player.aimSensitivityFactor", 0.5)
	viper.SetDefault("player.pitchMin", -80.0)
	viper.SetDefault("player.pitchMax", 80.0)
	viper.SetDefault("player.groundCheckDistance", 0.2)

	viper.SetDefault("gun.fireRange", 10.0)
	viper.SetDefault("gun.maxMagazine", 10)
	viper.SetDefault("gun.reloadTime", 1.0)
	viper.SetDefault("gun.normalFOV", 60.0)
	viper.SetDefault("gun.aimFOV", 10.0)
	viper.SetDefault("gun.fireRate", 0.0)

	viper.SetDefault("scene", "levels/range.yaml")
}

// Load reads the config file at path over the defaults. An empty path
// uses defaults only. Environment variables prefixed FPSRIG_ override both.
func Load(path string) (Config, error) {
	setDefaults()
	viper.SetEnvPrefix("fpsrig")
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return current()
}

func current() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Player.PitchMin > c.Player.PitchMax {
		return fmt.Errorf("config: player.pitchMin %v above pitchMax %v", c.Player.PitchMin, c.Player.PitchMax)
	}
	if c.Gun.MaxMagazine < 0 {
		return fmt.Errorf("config: gun.maxMagazine %d", c.Gun.MaxMagazine)
	}
	return nil
}

// ErrNoConfigFile is returned by Watch when Load was given no file.
var ErrNoConfigFile = errors.New("config: no config file to watch")

// Watch calls onChange with the re-read config each time the file is
// written. It runs on viper's watcher goroutine; invalid edits are logged
// and skipped.
func Watch(onChange func(Config)) error {
	if viper.ConfigFileUsed() == "" {
		return ErrNoConfigFile
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		cfg, err := current()
		if err != nil {
			log.Error().Err(err).Str("file", e.Name).Msg("config reload rejected")
			return
		}
		log.Info().Str("file", e.Name).Msg("config reloaded")
		onChange(cfg)
	})
	viper.WatchConfig()
	return nil
}
