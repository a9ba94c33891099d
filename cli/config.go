package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/user-none/blitloop/host"
)

// Config holds the runtime settings for the windowed runner. Values
// layer as defaults, then an optional config file, then BLITLOOP_*
// environment variables.
type Config struct {
	Title  string
	Width  int
	Height int
	Scale  int

	SampleRate int
	Channels   int
	RingMillis int

	Volume    float64
	Capture   string
	ShowStats bool
}

// setDefaults registers the baseline configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "blitloop")
	v.SetDefault("width", 640)
	v.SetDefault("height", 360)
	v.SetDefault("scale", 2)
	v.SetDefault("sample_rate", host.DefaultSampleRate)
	v.SetDefault("channels", host.DefaultChannels)
	v.SetDefault("ring_ms", 90)
	v.SetDefault("volume", 1.0)
	v.SetDefault("capture", "")
	v.SetDefault("show_stats", false)
}

// LoadConfig assembles the configuration. With an empty path a file
// named blitloop.* in the working directory is used when present; a
// named path must exist and parse.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("blitloop")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("blitloop")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := Config{
		Title:      v.GetString("title"),
		Width:      v.GetInt("width"),
		Height:     v.GetInt("height"),
		Scale:      v.GetInt("scale"),
		SampleRate: v.GetInt("sample_rate"),
		Channels:   v.GetInt("channels"),
		RingMillis: v.GetInt("ring_ms"),
		Volume:     v.GetFloat64("volume"),
		Capture:    v.GetString("capture"),
		ShowStats:  v.GetBool("show_stats"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate covers the runner's own settings; the loop core validates
// the rest when the driver is built.
func (c Config) validate() error {
	if c.Scale < 1 {
		return fmt.Errorf("scale %d: must be at least 1", c.Scale)
	}
	if c.RingMillis < 1 {
		return fmt.Errorf("ring_ms %d: must be at least 1", c.RingMillis)
	}
	return nil
}

// hostConfig converts to the loop core configuration, rounding the
// ring up to a whole channel group.
func (c Config) hostConfig() host.Config {
	samples := c.SampleRate * c.Channels * c.RingMillis / 1000
	if c.Channels > 0 {
		if rem := samples % c.Channels; rem != 0 {
			samples += c.Channels - rem
		}
	}
	return host.Config{
		Width:       c.Width,
		Height:      c.Height,
		SampleRate:  c.SampleRate,
		Channels:    c.Channels,
		RingSamples: samples,
	}
}
