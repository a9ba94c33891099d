package host

import (
	"fmt"
	"sync/atomic"
)

// SampleRing is a single-producer single-consumer ring buffer of
// interleaved 16-bit PCM samples. The frame driver writes on the tick
// goroutine, the audio device pulls on its own real-time goroutine, and
// neither side ever locks, blocks, or allocates.
//
// Both positions live in one atomic word: the write position in the
// high 32 bits, the read position in the low 32 bits. Each side mutates
// only its own half through a compare-and-swap loop that carries the
// other half forward unchanged, so a concurrent update by the peer
// forces a retry instead of being overwritten.
//
// One channel group of slack is reserved: the buffer holds at most
// capacity-channels samples, which keeps write==read meaning empty.
// Positions are always multiples of the channel count, so samples for
// one output frame never straddle a publish.
type SampleRing struct {
	index    atomic.Uint64
	data     []int16
	capacity int
	channels int
}

// NewSampleRing creates a ring holding capacity interleaved samples for
// the given channel count. Capacity must be a positive multiple of
// channels and large enough to leave room after the reserved slack.
// One channel group of silence is pre-published so the device's first
// pull has something defined to read.
func NewSampleRing(capacity, channels int) (*SampleRing, error) {
	if channels < 1 {
		return nil, fmt.Errorf("channel count %d: must be at least 1", channels)
	}
	if capacity <= channels {
		return nil, fmt.Errorf("ring capacity %d: must exceed channel count %d", capacity, channels)
	}
	if capacity%channels != 0 {
		return nil, fmt.Errorf("ring capacity %d: must be a multiple of channel count %d", capacity, channels)
	}
	if capacity > 1<<30 {
		return nil, fmt.Errorf("ring capacity %d: exceeds index range", capacity)
	}

	r := &SampleRing{
		data:     make([]int16, capacity),
		capacity: capacity,
		channels: channels,
	}
	r.index.Store(packIndex(uint32(channels), 0))
	return r, nil
}

// packIndex combines the write and read positions into one word.
func packIndex(write, read uint32) uint64 {
	return uint64(write)<<32 | uint64(read)
}

// unpackIndex splits the packed word into write and read positions.
func unpackIndex(v uint64) (write, read uint32) {
	return uint32(v >> 32), uint32(v)
}

// Capacity returns the fixed sample capacity of the ring.
func (r *SampleRing) Capacity() int {
	return r.capacity
}

// Channels returns the interleaved channel count.
func (r *SampleRing) Channels() int {
	return r.channels
}

// Writable returns how many samples the producer may push right now
// without overtaking the reader. Computed from a single load of the
// packed index; the true value can only grow afterwards, since only the
// consumer moves the read position.
func (r *SampleRing) Writable() int {
	w, rd := unpackIndex(r.index.Load())
	return (int(rd) + r.capacity - int(w) - r.channels) % r.capacity
}

// Readable returns how many samples the consumer may pop right now.
// Computed from a single load; only the producer can increase it.
func (r *SampleRing) Readable() int {
	w, rd := unpackIndex(r.index.Load())
	return (int(w) + r.capacity - int(rd)) % r.capacity
}

// Push copies samples into the ring and publishes the new write
// position. Input beyond the writable region or beyond a whole channel
// group is dropped. Returns the number of samples written. Producer
// side only.
func (r *SampleRing) Push(samples []int16) int {
	n := len(samples) - len(samples)%r.channels

	w, rd := unpackIndex(r.index.Load())
	free := (int(rd) + r.capacity - int(w) - r.channels) % r.capacity
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	// Copy before publishing: the atomic swap below is what makes these
	// slots visible to the consumer.
	start := int(w)
	first := r.capacity - start
	if first >= n {
		copy(r.data[start:], samples[:n])
	} else {
		copy(r.data[start:], samples[:first])
		copy(r.data[0:], samples[first:n])
	}

	newWrite := uint32((start + n) % r.capacity)
	for {
		old := r.index.Load()
		_, curRead := unpackIndex(old)
		if r.index.CompareAndSwap(old, packIndex(newWrite, curRead)) {
			return n
		}
	}
}

// Pop copies up to len(dst) samples out of the ring in publish order
// and advances the read position. Shortfall is reported, not waited
// for: the return value is how many samples were actually copied, in
// whole channel groups. Consumer side only.
func (r *SampleRing) Pop(dst []int16) int {
	n := len(dst) - len(dst)%r.channels

	w, rd := unpackIndex(r.index.Load())
	avail := (int(w) + r.capacity - int(rd)) % r.capacity
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}

	start := int(rd)
	first := r.capacity - start
	if first >= n {
		copy(dst[:n], r.data[start:start+n])
	} else {
		copy(dst[:first], r.data[start:])
		copy(dst[first:n], r.data[:n-first])
	}

	newRead := uint32((start + n) % r.capacity)
	for {
		old := r.index.Load()
		curWrite, _ := unpackIndex(old)
		if r.index.CompareAndSwap(old, packIndex(curWrite, newRead)) {
			return n
		}
	}
}
