package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	envy.Temp(func() {
		c := qt.New(t)
		cfg, err := Load()
		c.Assert(err, qt.IsNil)
		c.Assert(cfg, qt.DeepEquals, Default())
		c.Assert(cfg.Renderer.Validation, qt.Equals, defaultValidation)
	})
}

func TestLoadOverrides(t *testing.T) {
	envy.Temp(func() {
		c := qt.New(t)
		envy.Set(keyTitle, "triangle")
		envy.Set(keyWidth, "1024")
		envy.Set(keyHeight, "768")
		envy.Set(keyValidation, "false")
		envy.Set(keyRequirePortability, "true")
		envy.Set(keyAssetDir, "/opt/triangle")
		envy.Set(keyStatsInterval, "250ms")
		envy.Set(keyClearColor, "0.5, 0.25,0,1")
		envy.Set(keyLogLevel, "debug")
		envy.Set(keyLogFormat, "json")

		cfg, err := Load()
		c.Assert(err, qt.IsNil)
		c.Assert(cfg.Window, qt.Equals, WindowConfig{Title: "triangle", Width: 1024, Height: 768})
		c.Assert(cfg.Renderer.Validation, qt.IsFalse)
		c.Assert(cfg.Renderer.RequirePortability, qt.IsTrue)
		c.Assert(cfg.Renderer.AssetDir, qt.Equals, "/opt/triangle")
		c.Assert(cfg.Renderer.StatsInterval, qt.Equals, 250*time.Millisecond)
		c.Assert(cfg.Renderer.ClearColor, qt.Equals, mgl32.Vec4{0.5, 0.25, 0, 1})
		c.Assert(cfg.Log, qt.Equals, LogConfig{Level: logrus.DebugLevel, Format: "json"})
	})
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
		err        string
	}{
		{keyWidth, "wide", `parse TRIANGLE_WIDTH: .*`},
		{keyHeight, "0", `window size must be positive, got 800x0`},
		{keyValidation, "maybe", `parse TRIANGLE_VALIDATION: .*`},
		{keyStatsInterval, "often", `parse TRIANGLE_STATS_INTERVAL: .*`},
		{keyClearColor, "0,0,0", `TRIANGLE_CLEAR_COLOR must have four components, got "0,0,0"`},
		{keyClearColor, "0,0,black,1", `parse TRIANGLE_CLEAR_COLOR: .*`},
		{keyClearColor, "0,0,2,1", `TRIANGLE_CLEAR_COLOR components must be within \[0, 1\], got "0,0,2,1"`},
		{keyClearColor, "0,-0.5,0,1", `TRIANGLE_CLEAR_COLOR components must be within \[0, 1\], .*`},
		{keyLogLevel, "loud", `parse TRIANGLE_LOG_LEVEL: .*`},
		{keyLogFormat, "xml", `TRIANGLE_LOG_FORMAT must be text or json, got "xml"`},
	}

	for _, test := range tests {
		t.Run(test.key+"="+test.value, func(t *testing.T) {
			envy.Temp(func() {
				c := qt.New(t)
				envy.Set(test.key, test.value)
				_, err := Load()
				c.Assert(err, qt.ErrorMatches, test.err)
			})
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	envy.Temp(func() {
		c := qt.New(t)

		path := filepath.Join(t.TempDir(), "triangle.env")
		err := os.WriteFile(path, []byte("TRIANGLE_TITLE=from file\nTRIANGLE_WIDTH=640\n"), 0o600)
		c.Assert(err, qt.IsNil)

		// Already set variables win over the file
		envy.Set(keyWidth, "320")

		cfg, err := Load(path)
		c.Assert(err, qt.IsNil)
		c.Assert(cfg.Window.Title, qt.Equals, "from file")
		c.Assert(cfg.Window.Width, qt.Equals, 320)
		c.Assert(cfg.Window.Height, qt.Equals, 600)
	})
}

func TestLoadMissingEnvFile(t *testing.T) {
	envy.Temp(func() {
		_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
		qt.Assert(t, err, qt.ErrorMatches, `read env files: .*`)
	})
}

func TestLogger(t *testing.T) {
	c := qt.New(t)

	log := LogConfig{Level: logrus.WarnLevel, Format: "json"}.Logger()
	c.Assert(log.GetLevel(), qt.Equals, logrus.WarnLevel)
	c.Assert(log.Formatter, qt.FitsTypeOf, &logrus.JSONFormatter{})

	log = Default().Log.Logger()
	c.Assert(log.GetLevel(), qt.Equals, logrus.InfoLevel)
	c.Assert(log.Formatter, qt.FitsTypeOf, &logrus.TextFormatter{})
}
