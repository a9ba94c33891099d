package ui

import (
	"fmt"
	"log"
	"os"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"

	"github.com/user-none/blitloop/host"
)

// WavCapture records every sample accepted by the ring into a 16-bit
// PCM WAV file. It taps the producer side, so the file holds exactly
// what was published regardless of what the device managed to play.
type WavCapture struct {
	mu      sync.Mutex
	f       *os.File
	enc     *wav.Encoder
	buf     *goaudio.IntBuffer
	id      uuid.UUID
	path    string
	samples uint64
	closed  bool
}

var _ host.AudioTap = (*WavCapture)(nil)

// NewWavCapture creates the file at path and prepares the encoder.
func NewWavCapture(path string, sampleRate, channels int) (*WavCapture, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating capture file: %w", err)
	}

	return &WavCapture{
		f:   f,
		enc: wav.NewEncoder(f, sampleRate, 16, channels, 1),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				SampleRate:  sampleRate,
				NumChannels: channels,
			},
			SourceBitDepth: 16,
		},
		id:   uuid.New(),
		path: path,
	}, nil
}

// Consume implements host.AudioTap. Runs on the tick goroutine; a
// failed write disables the capture rather than failing the tick.
func (w *WavCapture) Consume(samples []int16) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || len(samples) == 0 {
		return
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}

	if err := w.enc.Write(w.buf); err != nil {
		log.Printf("Warning: audio capture %s write failed, stopping capture: %v", w.id, err)
		w.closed = true
		w.enc.Close()
		w.f.Close()
		return
	}
	w.samples += uint64(len(samples))
}

// Close finalizes the WAV header and closes the file.
func (w *WavCapture) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("finalizing capture: %w", err)
	}
	if err := w.f.Sync(); err != nil {
		w.f.Close()
		return fmt.Errorf("syncing capture file: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("closing capture file: %w", err)
	}

	log.Printf("audio capture %s: wrote %d samples to %s", w.id, w.samples, w.path)
	return nil
}
