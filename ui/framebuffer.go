package ui

import (
	"sync"

	"github.com/user-none/blitloop/host"
)

// SharedFramebuffer carries pixels from the tick goroutine to whatever
// renders them. Present copies into a write buffer under lock; Read
// snapshots into a separate read buffer so the caller can use it
// without holding the lock while the next tick writes.
type SharedFramebuffer struct {
	mu          sync.Mutex
	writePixels []byte
	readPixels  []byte
	width       int
	height      int
	presented   bool
}

var _ host.Presenter = (*SharedFramebuffer)(nil)

// NewSharedFramebuffer pre-allocates both buffers for the fixed
// dimensions. Dimensions never change after startup.
func NewSharedFramebuffer(width, height int) *SharedFramebuffer {
	return &SharedFramebuffer{
		writePixels: make([]byte, width*height*4),
		readPixels:  make([]byte, width*height*4),
		width:       width,
		height:      height,
	}
}

// Present implements host.Presenter.
func (sf *SharedFramebuffer) Present(pixels []byte, width, height int) {
	sf.mu.Lock()
	n := len(sf.writePixels)
	if n > len(pixels) {
		n = len(pixels)
	}
	copy(sf.writePixels[:n], pixels[:n])
	sf.presented = true
	sf.mu.Unlock()
}

// Read returns a snapshot of the most recently presented frame. ok is
// false until the first Present.
func (sf *SharedFramebuffer) Read() (pixels []byte, width, height int, ok bool) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if !sf.presented {
		return nil, sf.width, sf.height, false
	}
	copy(sf.readPixels, sf.writePixels)
	return sf.readPixels, sf.width, sf.height, true
}
