// Package host implements the core of the loop: a lock-free sample
// ring bridging the frame driver and the audio device, the per-tick
// sequencing of input, update, audio fill and presentation, and the
// normalized input event model shared by all frontends.
package host

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Frame is the per-tick view handed to App.Update. Pixels is the RGBA
// framebuffer to draw into; Samples is scratch the update must fill
// completely with interleaved PCM. Both are reused across ticks.
type Frame struct {
	Delta  float64
	Pixels []byte
	Width  int
	Height int

	Samples    []int16
	Channels   int
	SampleRate int
}

// App is implemented by the application the loop drives. Both methods
// run on the tick goroutine, never concurrently. Neither may block on
// I/O; the audio device keeps pulling while they run.
type App interface {
	// HandleInput receives one buffered event, in arrival order.
	HandleInput(ev Event)

	// Update advances the application by Frame.Delta seconds, draws
	// into Frame.Pixels and fills Frame.Samples.
	Update(frame *Frame)
}

// Presenter receives the finished pixel buffer at the end of a tick.
// Presentation failures stay inside the presenter; the loop does not
// observe them.
type Presenter interface {
	Present(pixels []byte, width, height int)
}

// AudioTap observes every sample slice accepted by the ring. Runs on
// the tick goroutine after the samples are published.
type AudioTap interface {
	Consume(samples []int16)
}

// Driver owns one production cycle per display tick: drain buffered
// input, run the application update, publish the synthesized audio,
// hand off the pixels. At most one cycle runs at a time; a tick that
// arrives while another still holds the guard is dropped, and the
// skipped time folds into the next delta.
type Driver struct {
	cfg   Config
	app   App
	ring  *SampleRing
	input InputQueue
	guard TickGuard

	presenter Presenter
	tap       AudioTap

	pixels  []byte
	scratch []int16
	frame   Frame
	last    time.Time

	ticks   atomic.Uint64
	dropped atomic.Uint64
	pushed  atomic.Uint64
}

// Stats is a snapshot of the loop counters.
type Stats struct {
	Ticks         uint64
	DroppedTicks  uint64
	SamplesPushed uint64
}

// NewDriver builds the loop core for the given configuration. The
// presenter may be nil when nothing displays the pixels.
func NewDriver(cfg Config, app App, presenter Presenter) (*Driver, error) {
	if app == nil {
		return nil, fmt.Errorf("driver requires an app")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ring, err := NewSampleRing(cfg.RingSamples, cfg.Channels)
	if err != nil {
		return nil, err
	}

	return &Driver{
		cfg:       cfg,
		app:       app,
		ring:      ring,
		presenter: presenter,
		pixels:    make([]byte, cfg.Width*cfg.Height*4),
		scratch:   make([]int16, ring.Capacity()),
	}, nil
}

// Config returns the configuration after defaulting.
func (d *Driver) Config() Config {
	return d.cfg
}

// Ring returns the sample ring the audio device consumes from.
func (d *Driver) Ring() *SampleRing {
	return d.ring
}

// Input returns the queue the windowing backend feeds.
func (d *Driver) Input() *InputQueue {
	return &d.input
}

// SetAudioTap attaches a producer-side observer. Must be set before
// the first tick.
func (d *Driver) SetAudioTap(tap AudioTap) {
	d.tap = tap
}

// Tick runs one production cycle at the given timestamp. Delta is the
// time elapsed since the previous completed tick, zero on the first.
// Returns false when the cycle was skipped because the guard was
// contended; nothing is retried or queued in that case.
func (d *Driver) Tick(now time.Time) bool {
	if !d.guard.TryAcquire() {
		d.dropped.Add(1)
		return false
	}
	defer d.guard.Release()

	var delta float64
	if !d.last.IsZero() {
		delta = now.Sub(d.last).Seconds()
	}

	d.input.Drain(d.app.HandleInput)

	// Clamp the synthesis request to what the ring can accept so the
	// update never produces samples that would be thrown away.
	n := d.ring.Writable()
	if n > len(d.scratch) {
		n = len(d.scratch)
	}
	samples := d.scratch[:n]

	d.frame = Frame{
		Delta:      delta,
		Pixels:     d.pixels,
		Width:      d.cfg.Width,
		Height:     d.cfg.Height,
		Samples:    samples,
		Channels:   d.cfg.Channels,
		SampleRate: d.cfg.SampleRate,
	}
	d.app.Update(&d.frame)

	written := d.ring.Push(samples)
	d.pushed.Add(uint64(written))
	if d.tap != nil && written > 0 {
		d.tap.Consume(samples[:written])
	}

	if d.presenter != nil {
		d.presenter.Present(d.pixels, d.cfg.Width, d.cfg.Height)
	}

	d.last = now
	d.ticks.Add(1)
	return true
}

// ResetClock makes now the reference point for the next delta without
// running a tick. Callers resuming after a stretch of suppressed ticks
// use it so the idle time does not land in one giant delta. Returns
// false if a tick held the guard, in which case the clock is left
// alone.
func (d *Driver) ResetClock(now time.Time) bool {
	if !d.guard.TryAcquire() {
		return false
	}
	defer d.guard.Release()
	if !d.last.IsZero() {
		d.last = now
	}
	return true
}

// Stats returns a snapshot of the loop counters.
func (d *Driver) Stats() Stats {
	return Stats{
		Ticks:         d.ticks.Load(),
		DroppedTicks:  d.dropped.Load(),
		SamplesPushed: d.pushed.Load(),
	}
}
