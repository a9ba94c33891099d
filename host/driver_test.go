package host

import (
	"testing"
	"time"
)

// loopRecorder implements App, Presenter and AudioTap, recording the
// order in which the driver invokes them.
type loopRecorder struct {
	order     []string
	events    []Event
	last      Frame
	reqs      []int
	written   []int16
	presented int
	fill      int16
}

func (l *loopRecorder) HandleInput(ev Event) {
	l.order = append(l.order, "input")
	l.events = append(l.events, ev)
}

func (l *loopRecorder) Update(f *Frame) {
	l.order = append(l.order, "update")
	l.last = *f
	l.reqs = append(l.reqs, len(f.Samples))
	for i := range f.Samples {
		f.Samples[i] = l.fill
	}
}

func (l *loopRecorder) Consume(samples []int16) {
	l.order = append(l.order, "audio")
	l.written = append(l.written, samples...)
}

func (l *loopRecorder) Present(pixels []byte, width, height int) {
	l.order = append(l.order, "present")
	l.presented++
}

func newTestDriver(t *testing.T, cfg Config, rec *loopRecorder) *Driver {
	t.Helper()
	d, err := NewDriver(cfg, rec, rec)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	d.SetAudioTap(rec)
	return d
}

func TestDriver_TickSequence(t *testing.T) {
	rec := &loopRecorder{}
	d := newTestDriver(t, Config{Width: 4, Height: 4, SampleRate: 48000, Channels: 2, RingSamples: 64}, rec)

	d.Input().Key(KeyA, 0, true, false)
	d.Input().MouseMove(3, -1)

	if !d.Tick(time.Now()) {
		t.Fatal("tick was dropped with a free guard")
	}

	want := []string{"input", "input", "update", "audio", "present"}
	if len(rec.order) != len(want) {
		t.Fatalf("call order %v, want %v", rec.order, want)
	}
	for i := range want {
		if rec.order[i] != want[i] {
			t.Fatalf("call order %v, want %v", rec.order, want)
		}
	}

	if len(rec.events) != 2 || rec.events[0].Key != KeyA || rec.events[1].Kind != EventMouseMove {
		t.Errorf("delivered events: %+v", rec.events)
	}
}

func TestDriver_FrameContents(t *testing.T) {
	rec := &loopRecorder{fill: 5}
	d := newTestDriver(t, Config{Width: 6, Height: 4, SampleRate: 44100, Channels: 2, RingSamples: 64}, rec)

	d.Tick(time.Now())

	f := rec.last
	if f.Width != 6 || f.Height != 4 {
		t.Errorf("frame dimensions: got %dx%d, want 6x4", f.Width, f.Height)
	}
	if len(f.Pixels) != 6*4*4 {
		t.Errorf("pixel buffer length: got %d, want %d", len(f.Pixels), 6*4*4)
	}
	if f.SampleRate != 44100 || f.Channels != 2 {
		t.Errorf("audio layout: got %d/%d, want 44100/2", f.SampleRate, f.Channels)
	}

	// First tick may fill everything the ring accepts: capacity minus
	// slack minus the pre-published group.
	if len(f.Samples) != 60 {
		t.Errorf("first synthesis request: got %d, want 60", len(f.Samples))
	}
	for i, s := range rec.written {
		if s != 5 {
			t.Errorf("pushed sample %d: got %d, want 5", i, s)
		}
	}
}

func TestDriver_FirstTickDeltaZero(t *testing.T) {
	rec := &loopRecorder{}
	d := newTestDriver(t, Config{Width: 2, Height: 2, RingSamples: 32}, rec)

	d.Tick(time.Now())
	if rec.last.Delta != 0 {
		t.Errorf("first delta: got %v, want 0", rec.last.Delta)
	}
}

func TestDriver_DeltaBetweenTicks(t *testing.T) {
	rec := &loopRecorder{}
	d := newTestDriver(t, Config{Width: 2, Height: 2, RingSamples: 32}, rec)

	base := time.Now()
	d.Tick(base)

	// Drain so the second tick is not starved of ring space.
	buf := make([]int16, 32)
	d.Ring().Pop(buf)

	d.Tick(base.Add(16 * time.Millisecond))
	want := (16 * time.Millisecond).Seconds()
	if rec.last.Delta != want {
		t.Errorf("delta: got %v, want %v", rec.last.Delta, want)
	}
}

// A tick denied by the guard is dropped, and the skipped wall time
// folds into the next successful delta.
func TestDriver_DroppedTickFoldsDelta(t *testing.T) {
	rec := &loopRecorder{}
	d := newTestDriver(t, Config{Width: 2, Height: 2, RingSamples: 32}, rec)

	base := time.Now()
	d.Tick(base)

	buf := make([]int16, 32)
	d.Ring().Pop(buf)

	if !d.guard.TryAcquire() {
		t.Fatal("could not stage a held guard")
	}
	if d.Tick(base.Add(10 * time.Millisecond)) {
		t.Fatal("tick ran while the guard was held")
	}
	d.guard.Release()

	if got := d.Stats().DroppedTicks; got != 1 {
		t.Errorf("dropped ticks: got %d, want 1", got)
	}
	if got := len(rec.reqs); got != 1 {
		t.Errorf("updates after drop: got %d, want 1", got)
	}

	d.Tick(base.Add(20 * time.Millisecond))
	want := (20 * time.Millisecond).Seconds()
	if rec.last.Delta != want {
		t.Errorf("delta spanning the drop: got %v, want %v", rec.last.Delta, want)
	}
}

// With nothing consuming, the ring fills and the synthesis request
// shrinks to zero instead of overwriting unread samples.
func TestDriver_RequestClampedToRingSpace(t *testing.T) {
	rec := &loopRecorder{}
	d := newTestDriver(t, Config{Width: 2, Height: 2, RingSamples: 16, Channels: 2}, rec)

	base := time.Now()
	d.Tick(base)
	d.Tick(base.Add(time.Millisecond))

	if len(rec.reqs) != 2 {
		t.Fatalf("updates: got %d, want 2", len(rec.reqs))
	}
	if rec.reqs[0] != 12 {
		t.Errorf("first request: got %d, want 12", rec.reqs[0])
	}
	if rec.reqs[1] != 0 {
		t.Errorf("request with a full ring: got %d, want 0", rec.reqs[1])
	}
	if rec.presented != 2 {
		t.Errorf("presents: got %d, want 2", rec.presented)
	}
}

// Producer ticks against a consumer pulling at the device rate. After
// the ring charges up, every tick settles to synthesizing exactly one
// tick's worth of audio, with no underruns and no drift.
func TestDriver_SteadyStateConvergence(t *testing.T) {
	const (
		sampleRate  = 48000
		channels    = 2
		ticksPerSec = 60
		perTick     = sampleRate / ticksPerSec * channels
	)

	rec := &loopRecorder{}
	d := newTestDriver(t, Config{Width: 2, Height: 2, SampleRate: sampleRate, Channels: channels}, rec)
	cb := NewAudioCallback(d.Ring())

	now := time.Now()
	step := time.Second / ticksPerSec
	dst := make([]int16, perTick)

	for tick := 0; tick < 10000; tick++ {
		d.Tick(now)
		now = now.Add(step)
		cb.Fill(dst)
	}

	// Tick 0 charges the ring; afterwards production must match
	// consumption exactly.
	for i, req := range rec.reqs[1:] {
		if req != perTick {
			t.Fatalf("tick %d: request %d, want %d", i+1, req, perTick)
		}
	}
	if got := cb.Underruns(); got != 0 {
		t.Errorf("underruns in steady state: got %d, want 0", got)
	}

	capacity := d.Ring().Capacity()
	if got := d.Ring().Writable() + d.Ring().Readable(); got != capacity-channels {
		t.Errorf("writable+readable: got %d, want %d", got, capacity-channels)
	}
}

// After a stretch of suppressed ticks, resetting the clock keeps the
// idle time out of the next delta.
func TestDriver_ResetClock(t *testing.T) {
	rec := &loopRecorder{}
	d := newTestDriver(t, Config{Width: 2, Height: 2, RingSamples: 32}, rec)

	base := time.Now()
	d.Tick(base)

	buf := make([]int16, 32)
	d.Ring().Pop(buf)

	// Five seconds pass without ticking, then the clock is rebased.
	if !d.ResetClock(base.Add(5 * time.Second)) {
		t.Fatal("ResetClock failed with a free guard")
	}
	d.Tick(base.Add(5*time.Second + 16*time.Millisecond))

	want := (16 * time.Millisecond).Seconds()
	if rec.last.Delta != want {
		t.Errorf("delta after reset: got %v, want %v", rec.last.Delta, want)
	}
}

func TestDriver_ValidationErrors(t *testing.T) {
	rec := &loopRecorder{}

	if _, err := NewDriver(Config{Width: 2, Height: 2}, nil, nil); err == nil {
		t.Error("nil app accepted")
	}
	if _, err := NewDriver(Config{Width: 0, Height: 2}, rec, nil); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := NewDriver(Config{Width: 2, Height: 2, Channels: 2, RingSamples: 15}, rec, nil); err == nil {
		t.Error("misaligned ring capacity accepted")
	}
}

func TestDriver_DefaultsApplied(t *testing.T) {
	rec := &loopRecorder{}
	d := newTestDriver(t, Config{Width: 2, Height: 2}, rec)

	cfg := d.Config()
	if cfg.SampleRate != DefaultSampleRate || cfg.Channels != DefaultChannels {
		t.Errorf("audio defaults: got %d/%d, want %d/%d",
			cfg.SampleRate, cfg.Channels, DefaultSampleRate, DefaultChannels)
	}

	// About 90 ms, group aligned.
	want := DefaultSampleRate * DefaultChannels * 90 / 1000
	if cfg.RingSamples != want {
		t.Errorf("default ring size: got %d, want %d", cfg.RingSamples, want)
	}
	if cfg.RingSamples%cfg.Channels != 0 {
		t.Errorf("default ring size %d not a multiple of %d", cfg.RingSamples, cfg.Channels)
	}
}
