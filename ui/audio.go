package ui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/google/uuid"

	"github.com/user-none/blitloop/host"
)

// AudioPlayer owns the oto player that drains the loop's sample ring.
// oto pulls on its own goroutine through a reader that never blocks,
// so a starved ring plays silence instead of stalling the device.
type AudioPlayer struct {
	player *oto.Player
	ring   *host.SampleRing
	cb     *host.AudioCallback
	id     uuid.UUID
}

// oto context singleton
var (
	otoCtx      *oto.Context
	otoInitOnce sync.Once
	otoInitErr  error
	otoRate     int
	otoChannels int
)

// ensureOtoContext initializes the oto audio context on first use.
// The first caller fixes the device layout for the process; there is
// no renegotiation path.
func ensureOtoContext(sampleRate, channels int) (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-readyChan
		otoRate = sampleRate
		otoChannels = channels
	})
	if otoInitErr == nil && (otoRate != sampleRate || otoChannels != channels) {
		return nil, fmt.Errorf("audio device already opened at %d Hz %d ch", otoRate, otoChannels)
	}
	return otoCtx, otoInitErr
}

// bufferSizeFor returns 100 ms of device-side buffering in bytes for
// 16-bit samples.
func bufferSizeFor(sampleRate, channels int) int {
	return sampleRate * channels * 2 / 10
}

// clampVolume keeps vol inside the range oto accepts.
func clampVolume(vol float64) float64 {
	if vol < 0 {
		return 0
	}
	if vol > 1 {
		return 1
	}
	return vol
}

// NewAudioPlayer opens the audio device over the given ring and starts
// playback. The device pulls samples itself; nothing is ever pushed to
// the player.
func NewAudioPlayer(ring *host.SampleRing, sampleRate int, volume float64) (*AudioPlayer, error) {
	ctx, err := ensureOtoContext(sampleRate, ring.Channels())
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	cb := host.NewAudioCallback(ring)
	reader := &ringReader{
		cb:      cb,
		scratch: make([]int16, ring.Capacity()),
	}

	player := ctx.NewPlayer(reader)
	player.SetBufferSize(bufferSizeFor(sampleRate, ring.Channels()))
	player.SetVolume(clampVolume(volume))
	player.Play()

	id := uuid.New()
	log.Printf("audio player %s: %d Hz, %d ch, ring %d samples",
		id, sampleRate, ring.Channels(), ring.Capacity())

	return &AudioPlayer{
		player: player,
		ring:   ring,
		cb:     cb,
		id:     id,
	}, nil
}

// BufferLevel returns the total bytes of audio currently buffered
// (sample ring + oto player internal buffer).
func (a *AudioPlayer) BufferLevel() int {
	return a.ring.Readable()*2 + a.player.BufferedSize()
}

// Underruns returns how many device pulls found too few samples.
func (a *AudioPlayer) Underruns() uint64 {
	return a.cb.Underruns()
}

// UnderrunSamples returns the total samples replaced with silence.
func (a *AudioPlayer) UnderrunSamples() uint64 {
	return a.cb.UnderrunSamples()
}

// SetVolume sets the playback volume (0.0 = silent, 1.0 = full).
func (a *AudioPlayer) SetVolume(vol float64) {
	a.player.SetVolume(clampVolume(vol))
}

// Close stops the device pull and releases the player.
func (a *AudioPlayer) Close() {
	if a.player != nil {
		a.player.Close()
		a.player = nil
	}
}

// ringReader adapts the device-side callback to oto's pull model.
// Read runs on oto's playback goroutine: it always returns a full
// buffer, converting to little-endian bytes from a pre-allocated
// scratch slice that only grows if the device asks for more than it
// ever has before.
type ringReader struct {
	cb      *host.AudioCallback
	scratch []int16
}

// Read implements io.Reader for oto. Whole samples only; a trailing
// odd byte stays unread rather than shearing the stream.
func (r *ringReader) Read(p []byte) (int, error) {
	n := len(p) / 2
	if n == 0 {
		return 0, nil
	}
	if cap(r.scratch) < n {
		r.scratch = make([]int16, n)
	}
	samples := r.scratch[:n]
	r.cb.Fill(samples)

	for i, s := range samples {
		p[i*2] = byte(s)
		p[i*2+1] = byte(s >> 8)
	}
	return n * 2, nil
}
