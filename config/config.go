// Package config reads, defaults and validates the ground station configuration.
package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/groundstation/logging"
	"go.viam.com/groundstation/scene"
	"go.viam.com/groundstation/telemetry"
	"go.viam.com/groundstation/utils"
)

// Defaults used by ApplyDefaults.
const (
	DefaultViewportWidth  = 800
	DefaultViewportHeight = 800
	DefaultSteeringFrame  = "base_link"
	DefaultRobotColor     = "#7d007d"
	DefaultGoalColor      = "#4486fc"
	DefaultArrowColor     = "#000000"
)

// A Config describes how the ground station draws its scene and where its telemetry comes from.
type Config struct {
	ConfigFilePath string `json:"-"`

	Downsample    int            `json:"downsample"`
	Margin        *float64       `json:"margin"`
	Topics        TopicsConfig   `json:"topics"`
	Colors        ColorsConfig   `json:"colors"`
	Viewport      ViewportConfig `json:"viewport"`
	SteeringFrame string         `json:"steering_frame"`
	LogLevel      string         `json:"log_level"`
	Debug         bool           `json:"debug"`
}

// TopicsConfig names the topic of every telemetry stream.
type TopicsConfig struct {
	DEM    string `json:"dem"`
	Hazard string `json:"hazmap"`
	State  string `json:"state"`
	Goal   string `json:"current_goal"`
	Joy    string `json:"joy"`
	Steer  string `json:"steer"`
}

// ColorsConfig holds overlay colors as hex strings, e.g. "#7d007d".
type ColorsConfig struct {
	Robot string `json:"robot"`
	Goal  string `json:"goal"`
	Arrow string `json:"arrow"`
}

// ViewportConfig is the rendered output size.
type ViewportConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ApplyDefaults fills in every unset field.
func (conf *Config) ApplyDefaults() {
	if conf.Downsample == 0 {
		conf.Downsample = scene.DefaultDownsample
	}
	if conf.Margin == nil {
		margin := scene.DefaultMargin
		conf.Margin = &margin
	}
	conf.Topics.applyDefaults()
	if conf.Colors.Robot == "" {
		conf.Colors.Robot = DefaultRobotColor
	}
	if conf.Colors.Goal == "" {
		conf.Colors.Goal = DefaultGoalColor
	}
	if conf.Colors.Arrow == "" {
		conf.Colors.Arrow = DefaultArrowColor
	}
	if conf.Viewport.Width == 0 {
		conf.Viewport.Width = DefaultViewportWidth
	}
	if conf.Viewport.Height == 0 {
		conf.Viewport.Height = DefaultViewportHeight
	}
	if conf.SteeringFrame == "" {
		conf.SteeringFrame = DefaultSteeringFrame
	}
	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}
}

func (tc *TopicsConfig) applyDefaults() {
	defaults := map[*string]string{
		&tc.DEM:    "dem",
		&tc.Hazard: "hazmap",
		&tc.State:  "state",
		&tc.Goal:   "current_goal",
		&tc.Joy:    "joy",
		&tc.Steer:  "steer",
	}
	for field, def := range defaults {
		if *field == "" {
			*field = def
		}
	}
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.Downsample < 1 {
		return utils.NewConfigValidationError(path, errors.Errorf("downsample must be at least 1, got %d", conf.Downsample))
	}
	if conf.Margin != nil && *conf.Margin < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("margin cannot be negative, got %v", *conf.Margin))
	}
	if err := conf.Topics.Validate(fmt.Sprintf("%s.%s", path, "topics")); err != nil {
		return err
	}
	if err := conf.Colors.Validate(fmt.Sprintf("%s.%s", path, "colors")); err != nil {
		return err
	}
	if err := conf.Viewport.Validate(fmt.Sprintf("%s.%s", path, "viewport")); err != nil {
		return err
	}
	if _, err := logging.LevelFromString(conf.LogLevel); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// Validate ensures every topic is named.
func (tc *TopicsConfig) Validate(path string) error {
	for field, topic := range map[string]string{
		"dem":          tc.DEM,
		"hazmap":       tc.Hazard,
		"state":        tc.State,
		"current_goal": tc.Goal,
		"joy":          tc.Joy,
		"steer":        tc.Steer,
	} {
		if topic == "" {
			return utils.NewConfigValidationFieldRequiredError(path, field)
		}
	}
	return nil
}

// Validate ensures every color parses.
func (cc *ColorsConfig) Validate(path string) error {
	for field, hex := range map[string]string{"robot": cc.Robot, "goal": cc.Goal, "arrow": cc.Arrow} {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, field), err)
		}
	}
	return nil
}

// Validate ensures the viewport has an area.
func (vc *ViewportConfig) Validate(path string) error {
	if vc.Width < 0 || vc.Height < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("bad viewport size %dx%d", vc.Width, vc.Height))
	}
	return nil
}

// Palette returns the overlay colors. Unset colors use the scene defaults.
func (conf *Config) Palette() (scene.Palette, error) {
	palette := scene.DefaultPalette
	for _, entry := range []struct {
		hex string
		dst *color.Color
	}{
		{conf.Colors.Robot, &palette.Robot},
		{conf.Colors.Goal, &palette.Goal},
		{conf.Colors.Arrow, &palette.Arrow},
	} {
		if entry.hex == "" {
			continue
		}
		c, err := colorful.Hex(entry.hex)
		if err != nil {
			return scene.Palette{}, errors.Wrapf(err, "bad color %q", entry.hex)
		}
		r, g, b := c.RGB255()
		*entry.dst = color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return palette, nil
}

// SceneOptions converts the config into scene controller options.
func (conf *Config) SceneOptions() (scene.Options, error) {
	palette, err := conf.Palette()
	if err != nil {
		return scene.Options{}, err
	}
	opts := scene.Options{Downsample: conf.Downsample, Margin: scene.DefaultMargin, Palette: palette}
	if conf.Margin != nil {
		opts.Margin = *conf.Margin
	}
	return opts, nil
}

// TopicMap returns the topic for every inbound event kind.
func (conf *Config) TopicMap() map[telemetry.Kind]string {
	return map[telemetry.Kind]string{
		telemetry.KindElevation:  conf.Topics.DEM,
		telemetry.KindHazard:     conf.Topics.Hazard,
		telemetry.KindRobotState: conf.Topics.State,
		telemetry.KindGoal:       conf.Topics.Goal,
		telemetry.KindJoy:        conf.Topics.Joy,
	}
}
