package demo

import "testing"

func TestSynth_PitchRegisterClamped(t *testing.T) {
	s := NewSynth(48000)

	s.SetPitch(1e9)
	if s.toneReg != 1 {
		t.Errorf("extreme high pitch: tone register %d, want 1", s.toneReg)
	}

	s.SetPitch(0.001)
	if s.toneReg != 0x3FF {
		t.Errorf("extreme low pitch: tone register %d, want %d", s.toneReg, 0x3FF)
	}

	reg := s.toneReg
	s.SetPitch(-1)
	if s.toneReg != reg {
		t.Errorf("non-positive pitch changed register to %d", s.toneReg)
	}
}

func TestSynth_OutputDuplicatedAcrossChannels(t *testing.T) {
	s := NewSynth(48000)
	s.SetPitch(440)

	dst := make([]int16, 128)
	s.Synthesize(dst, 2)

	for i := 0; i < len(dst); i += 2 {
		if dst[i] != dst[i+1] {
			t.Fatalf("frame %d: channels differ (%d, %d)", i/2, dst[i], dst[i+1])
		}
	}
}

func TestSynth_CarryAcrossCalls(t *testing.T) {
	s := NewSynth(48000)
	s.SetPitch(440)

	// Odd request sizes force partial chip runs to carry over.
	for _, n := range []int{6, 50, 2, 198, 34} {
		dst := make([]int16, n)
		s.Synthesize(dst, 2)
	}

	// Leftover never accumulates beyond one chip run.
	if len(s.carry) > psgBufferSize {
		t.Errorf("carry grew to %d frames", len(s.carry))
	}
}

func TestSynth_EmptyRequest(t *testing.T) {
	s := NewSynth(48000)
	s.Synthesize(nil, 2)
	s.Synthesize([]int16{}, 2)
}
