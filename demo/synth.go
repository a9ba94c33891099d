package demo

import (
	"math"

	"github.com/user-none/go-chip-sn76489"
)

const (
	// psgClockHz is the classic 3.58 MHz master clock the chip expects.
	psgClockHz = 3579545

	psgBufferSize = 1024
	psgGain       = 1898.0
	lpfCutoffHz   = 2840.0

	// psgChunkFrames bounds how many mono frames one chip run may
	// produce, keeping the chip's internal buffer from overflowing.
	psgChunkFrames = 256
)

// Synth voices a single square-wave tone on an SN76489 PSG and shapes
// it with a first-order RC low-pass. The chip renders mono at the
// output rate; Synthesize duplicates the filtered stream across the
// interleaved output channels.
type Synth struct {
	psg        *sn76489.SN76489
	sampleRate int
	lpfAlpha   float64

	// carry holds mono frames generated past what the last Synthesize
	// consumed; the chip cannot emit partial runs.
	carry []int16

	filterPrev float64
	toneReg    int
}

// NewSynth builds the voice for a fixed output rate.
func NewSynth(sampleRate int) *Synth {
	psg := sn76489.New(psgClockHz, sampleRate, psgBufferSize, sn76489.Sega)
	psg.SetGain(psgGain)

	// Tone on channel 0, everything else silent.
	psg.Write(0x90 | 0x02)
	psg.Write(0xBF)
	psg.Write(0xDF)
	psg.Write(0xFF)

	return &Synth{
		psg:        psg,
		sampleRate: sampleRate,
		// alpha = dt / (RC + dt) where RC = 1/(2*pi*fc)
		lpfAlpha: 1.0 / (float64(sampleRate)/(2*math.Pi*lpfCutoffHz) + 1),
		toneReg:  -1,
	}
}

// SetPitch retunes channel 0 to approximately hz. Repeated calls with
// an unchanged register value write nothing to the chip.
func (s *Synth) SetPitch(hz float64) {
	if hz <= 0 {
		return
	}

	// The chip divides its clock by 32*n to produce the tone.
	n := int(float64(psgClockHz)/(32*hz) + 0.5)
	if n < 1 {
		n = 1
	}
	if n > 0x3FF {
		n = 0x3FF
	}
	if n == s.toneReg {
		return
	}
	s.toneReg = n

	s.psg.Write(0x80 | byte(n&0x0F))
	s.psg.Write(byte(n >> 4))
}

// Synthesize fills dst with interleaved frames of the current tone.
// len(dst) must be a multiple of channels.
func (s *Synth) Synthesize(dst []int16, channels int) {
	frames := len(dst) / channels

	for len(s.carry) < frames {
		s.generateChunk()
	}

	for i := 0; i < frames; i++ {
		s.filterPrev = s.lpfAlpha*float64(s.carry[i]) + (1-s.lpfAlpha)*s.filterPrev
		v := int16(math.Round(s.filterPrev))
		for c := 0; c < channels; c++ {
			dst[i*channels+c] = v
		}
	}

	s.carry = append(s.carry[:0], s.carry[frames:]...)
}

// generateChunk runs the chip for one bounded burst and appends the
// clamped output to the carry.
func (s *Synth) generateChunk() {
	s.psg.ResetBuffer()
	s.psg.Run(psgChunkFrames * psgClockHz / s.sampleRate)

	buf, count := s.psg.GetBuffer()
	for i := 0; i < count; i++ {
		s.carry = append(s.carry, int16(clampInt32(int32(buf[i]), -32768, 32767)))
	}
}

// clampInt32 clamps v to [min, max].
func clampInt32(v, min, max int32) int32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
