// Package config handles scene viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Shaders  ShaderConfig   `yaml:"shaders"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FovY       float32    `yaml:"fov_y"` // radians
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ClearColor [4]float32 `yaml:"clear_color"`
}

// CameraConfig holds free-fly camera settings.
type CameraConfig struct {
	MoveSpeed        float32    `yaml:"move_speed"`        // units per second
	TurnSpeed        float32    `yaml:"turn_speed"`        // radians per second
	MouseSensitivity float32    `yaml:"mouse_sensitivity"` // radians per pixel
	GrabMouse        bool       `yaml:"grab_mouse"`
	Start            [3]float32 `yaml:"start"`
}

// SceneConfig holds mesh paths and animation settings.
type SceneConfig struct {
	TerrainPath    string  `yaml:"terrain_path"`
	HelicopterPath string  `yaml:"helicopter_path"`
	MainRotorSpeed float32 `yaml:"main_rotor_speed"` // radians per second
	TailRotorSpeed float32 `yaml:"tail_rotor_speed"` // radians per second
	PrintGraph     bool    `yaml:"print_graph"`
}

// ShaderConfig holds optional shader source paths. Empty paths select the
// embedded shaders.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// DebugConfig holds debug tooling settings.
type DebugConfig struct {
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			FovY:       0.5,
			Near:       1,
			Far:        1000,
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		},
		Camera: CameraConfig{
			MoveSpeed:        100,
			TurnSpeed:        1,
			MouseSensitivity: 0.005,
			GrabMouse:        false,
		},
		Scene: SceneConfig{
			TerrainPath:    "resources/lunarsurface.obj",
			HelicopterPath: "resources/helicopter.obj",
			MainRotorSpeed: 10,
			TailRotorSpeed: 15,
		},
		Debug: DebugConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

var screenshotFormats = map[string]bool{"png": true, "bmp": true, "tiff": true}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("graphics: invalid size %dx%d", g.Width, g.Height))
	}
	if g.FovY <= 0 || g.FovY >= 3.14159 {
		err = multierr.Append(err, fmt.Errorf("graphics: fov_y %v out of range (0, pi)", g.FovY))
	}
	if g.Near <= 0 || g.Far <= g.Near {
		err = multierr.Append(err, fmt.Errorf("graphics: need 0 < near < far, got near=%v far=%v", g.Near, g.Far))
	}
	if c.Camera.MoveSpeed < 0 || c.Camera.TurnSpeed < 0 || c.Camera.MouseSensitivity < 0 {
		err = multierr.Append(err, errors.New("camera: speeds must not be negative"))
	}
	if c.Scene.TerrainPath == "" {
		err = multierr.Append(err, errors.New("scene: terrain_path is empty"))
	}
	if c.Scene.HelicopterPath == "" {
		err = multierr.Append(err, errors.New("scene: helicopter_path is empty"))
	}
	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		err = multierr.Append(err, errors.New("shaders: vertex and fragment must be set together"))
	}
	if !screenshotFormats[c.Debug.ScreenshotFormat] {
		err = multierr.Append(err, fmt.Errorf("debug: unknown screenshot_format %q", c.Debug.ScreenshotFormat))
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return err
}
