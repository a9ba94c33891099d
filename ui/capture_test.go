package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWavCapture_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.wav")

	c, err := NewWavCapture(path, 48000, 2)
	if err != nil {
		t.Fatalf("NewWavCapture: %v", err)
	}
	c.Consume([]int16{100, -100, 200, -200})
	c.Consume([]int16{300, -300})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}

	if buf.Format.SampleRate != 48000 || buf.Format.NumChannels != 2 {
		t.Errorf("format: got %d Hz %d ch, want 48000 Hz 2 ch",
			buf.Format.SampleRate, buf.Format.NumChannels)
	}

	want := []int{100, -100, 200, -200, 300, -300}
	if len(buf.Data) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestWavCapture_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.wav")

	c, err := NewWavCapture(path, 48000, 2)
	if err != nil {
		t.Fatalf("NewWavCapture: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestWavCapture_ConsumeAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.wav")

	c, err := NewWavCapture(path, 48000, 2)
	if err != nil {
		t.Fatalf("NewWavCapture: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Must be a quiet no-op.
	c.Consume([]int16{1, 2})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}
	if len(buf.Data) != 0 {
		t.Errorf("samples written after close: %d", len(buf.Data))
	}
}
