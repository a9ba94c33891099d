package host

import (
	"log"
	"sync/atomic"
	"time"
)

// underrunLogInterval spaces out starvation diagnostics so a starved
// device does not flood the log from its real-time goroutine.
const underrunLogInterval = time.Second

// AudioCallback drains the sample ring on behalf of the audio device.
// Fill runs on the device's real-time goroutine: it never blocks,
// never allocates, and always hands back a full buffer, padding with
// silence whenever the producer has fallen behind. Starvation is
// counted and logged at a limited rate, never surfaced as an error.
type AudioCallback struct {
	ring *SampleRing

	underruns       atomic.Uint64
	underrunSamples atomic.Uint64
	samplesRead     atomic.Uint64
	lastWarn        atomic.Int64
}

// NewAudioCallback creates the device-side consumer for the ring.
func NewAudioCallback(ring *SampleRing) *AudioCallback {
	return &AudioCallback{ring: ring}
}

// Fill copies available samples into dst and zero-fills the remainder.
// A short fill records exactly one underrun plus the number of samples
// that had to be silenced.
func (c *AudioCallback) Fill(dst []int16) {
	n := c.ring.Pop(dst)
	c.samplesRead.Add(uint64(n))
	if n == len(dst) {
		return
	}

	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	missing := len(dst) - n
	c.underruns.Add(1)
	c.underrunSamples.Add(uint64(missing))

	now := time.Now().UnixNano()
	last := c.lastWarn.Load()
	if now-last >= int64(underrunLogInterval) && c.lastWarn.CompareAndSwap(last, now) {
		log.Printf("Warning: audio underrun, %d samples silenced", missing)
	}
}

// Underruns returns how many device pulls came up short.
func (c *AudioCallback) Underruns() uint64 {
	return c.underruns.Load()
}

// UnderrunSamples returns the total number of samples replaced with
// silence across all underruns.
func (c *AudioCallback) UnderrunSamples() uint64 {
	return c.underrunSamples.Load()
}

// SamplesRead returns the total number of samples delivered from the
// ring since startup.
func (c *AudioCallback) SamplesRead() uint64 {
	return c.samplesRead.Load()
}
