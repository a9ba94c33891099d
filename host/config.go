package host

import "fmt"

const (
	// DefaultSampleRate is the output rate used when none is configured.
	DefaultSampleRate = 48000

	// DefaultChannels is the interleaved channel count used when none
	// is configured.
	DefaultChannels = 2

	// defaultRingMillis sizes the sample ring when RingSamples is zero.
	defaultRingMillis = 90
)

// Config fixes the pixel dimensions and audio layout for the lifetime
// of the loop. The layout is negotiated once at startup; there is no
// renegotiation path.
type Config struct {
	Width  int
	Height int

	SampleRate int
	Channels   int

	// RingSamples is the sample ring capacity in samples. Zero selects
	// roughly 90 ms of buffering for the configured rate and layout.
	RingSamples int
}

// applyDefaults fills zero-valued audio fields.
func (c *Config) applyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Channels == 0 {
		c.Channels = DefaultChannels
	}
	if c.RingSamples == 0 {
		c.RingSamples = ringSizeFor(c.SampleRate, c.Channels)
	}
}

// ringSizeFor returns about 90 ms of samples, rounded up to a whole
// channel group.
func ringSizeFor(sampleRate, channels int) int {
	n := sampleRate * channels * defaultRingMillis / 1000
	if rem := n % channels; rem != 0 {
		n += channels - rem
	}
	return n
}

// Validate reports the first configuration violation. Violations are
// startup-fatal; nothing validates anew at runtime.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("pixel dimensions %dx%d: must be positive", c.Width, c.Height)
	}
	if c.SampleRate < 1 {
		return fmt.Errorf("sample rate %d: must be positive", c.SampleRate)
	}
	if c.Channels < 1 {
		return fmt.Errorf("channel count %d: must be positive", c.Channels)
	}
	return nil
}
