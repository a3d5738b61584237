// Package config reads the application settings from the environment,
// optionally seeded from .env files.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const prefix = "TRIANGLE_"

const (
	keyTitle              = prefix + "TITLE"
	keyWidth              = prefix + "WIDTH"
	keyHeight             = prefix + "HEIGHT"
	keyValidation         = prefix + "VALIDATION"
	keyValidationLayer    = prefix + "VALIDATION_LAYER"
	keyRequirePortability = prefix + "REQUIRE_PORTABILITY"
	keyAssetDir           = prefix + "ASSET_DIR"
	keyStatsInterval      = prefix + "STATS_INTERVAL"
	keyClearColor         = prefix + "CLEAR_COLOR"
	keyLogLevel           = prefix + "LOG_LEVEL"
	keyLogFormat          = prefix + "LOG_FORMAT"
)

type Config struct {
	Window   WindowConfig
	Renderer RendererConfig
	Log      LogConfig
}

type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

type RendererConfig struct {
	// Validation defaults to on unless built with the release tag.
	Validation         bool
	ValidationLayer    string
	RequirePortability bool
	// AssetDir holds the compiled shaders/ directory.
	AssetDir      string
	StatsInterval time.Duration
	// ClearColor is an sRGB-encoded RGBA colour, written as "r,g,b,a" with
	// components in [0, 1].
	ClearColor mgl32.Vec4
}

type LogConfig struct {
	Level  logrus.Level
	Format string
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Vulkan",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			Validation:      defaultValidation,
			ValidationLayer: "VK_LAYER_KHRONOS_validation",
			AssetDir:        ".",
			StatsInterval:   5 * time.Second,
			ClearColor:      mgl32.Vec4{0, 0, 0, 1},
		},
		Log: LogConfig{
			Level:  logrus.InfoLevel,
			Format: "text",
		},
	}
}

// Load seeds the environment from envFiles, never overriding variables
// already set, and then overlays TRIANGLE_* variables on Default.
// Missing env files are an error; pass none to skip them.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		values, err := godotenv.Read(envFiles...)
		if err != nil {
			return Config{}, errors.Wrap(err, "read env files")
		}
		for key, value := range values {
			if _, err := envy.MustGet(key); err != nil {
				envy.Set(key, value)
			}
		}
	}

	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Default()
	var err error

	cfg.Window.Title = envy.Get(keyTitle, cfg.Window.Title)

	if cfg.Window.Width, err = intVar(keyWidth, cfg.Window.Width); err != nil {
		return Config{}, err
	}
	if cfg.Window.Height, err = intVar(keyHeight, cfg.Window.Height); err != nil {
		return Config{}, err
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return Config{}, errors.Newf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}

	if cfg.Renderer.Validation, err = boolVar(keyValidation, cfg.Renderer.Validation); err != nil {
		return Config{}, err
	}
	cfg.Renderer.ValidationLayer = envy.Get(keyValidationLayer, cfg.Renderer.ValidationLayer)
	if cfg.Renderer.RequirePortability, err = boolVar(keyRequirePortability, cfg.Renderer.RequirePortability); err != nil {
		return Config{}, err
	}
	cfg.Renderer.AssetDir = envy.Get(keyAssetDir, cfg.Renderer.AssetDir)
	if cfg.Renderer.StatsInterval, err = durationVar(keyStatsInterval, cfg.Renderer.StatsInterval); err != nil {
		return Config{}, err
	}
	if cfg.Renderer.ClearColor, err = colorVar(keyClearColor, cfg.Renderer.ClearColor); err != nil {
		return Config{}, err
	}

	if raw, err := envy.MustGet(keyLogLevel); err == nil {
		cfg.Log.Level, err = logrus.ParseLevel(raw)
		if err != nil {
			return Config{}, errors.Wrapf(err, "parse %s", keyLogLevel)
		}
	}

	cfg.Log.Format = envy.Get(keyLogFormat, cfg.Log.Format)
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return Config{}, errors.Newf("%s must be text or json, got %q", keyLogFormat, cfg.Log.Format)
	}

	return cfg, nil
}

func intVar(key string, fallback int) (int, error) {
	raw, err := envy.MustGet(key)
	if err != nil {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return value, nil
}

func boolVar(key string, fallback bool) (bool, error) {
	raw, err := envy.MustGet(key)
	if err != nil {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "parse %s", key)
	}
	return value, nil
}

func durationVar(key string, fallback time.Duration) (time.Duration, error) {
	raw, err := envy.MustGet(key)
	if err != nil {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return value, nil
}

func colorVar(key string, fallback mgl32.Vec4) (mgl32.Vec4, error) {
	raw, err := envy.MustGet(key)
	if err != nil {
		return fallback, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return mgl32.Vec4{}, errors.Newf("%s must have four components, got %q", key, raw)
	}

	var color mgl32.Vec4
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return mgl32.Vec4{}, errors.Wrapf(err, "parse %s", key)
		}
		if mgl32.Clamp(float32(value), 0, 1) != float32(value) {
			return mgl32.Vec4{}, errors.Newf("%s components must be within [0, 1], got %q", key, raw)
		}
		color[i] = float32(value)
	}
	return color, nil
}

// Logger builds the process logger. Output goes to stderr.
func (c LogConfig) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(c.Level)

	if c.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
