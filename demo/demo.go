// Package demo is a small sample application for the loop: a sprite
// steered with WASD or the arrow keys over a plasma background, voiced
// by a PSG tone whose pitch follows the sprite across the screen.
package demo

import (
	"math"

	"github.com/user-none/blitloop/host"
)

const (
	spriteSize  = 16
	spriteSpeed = 180.0 // pixels per second

	pitchLowHz  = 220.0
	pitchHighHz = 880.0
)

// App implements host.App. All state is mutated on the tick goroutine
// only; the loop guarantees Update and HandleInput never overlap.
type App struct {
	synth *Synth

	x, y  float64
	phase float64

	up, down, left, right bool

	placed bool
}

// New creates the demo application. The synth is built on the first
// update, once the loop's sample rate is known.
func New() *App {
	return &App{}
}

// HandleInput implements host.App.
func (a *App) HandleInput(ev host.Event) {
	switch ev.Kind {
	case host.EventKey:
		if ev.Repeat {
			return
		}
		switch ev.Key {
		case host.KeyW, host.KeyArrowUp:
			a.up = ev.Pressed
		case host.KeyS, host.KeyArrowDown:
			a.down = ev.Pressed
		case host.KeyA, host.KeyArrowLeft:
			a.left = ev.Pressed
		case host.KeyD, host.KeyArrowRight:
			a.right = ev.Pressed
		}
	case host.EventMouseMove:
		a.x += ev.DX
		a.y += ev.DY
	}
}

// Update implements host.App: advance the sprite, repaint the frame
// and fill the requested audio.
func (a *App) Update(frame *host.Frame) {
	if !a.placed {
		a.x = float64(frame.Width-spriteSize) / 2
		a.y = float64(frame.Height-spriteSize) / 2
		a.placed = true
	}

	a.phase += frame.Delta

	if a.up {
		a.y -= spriteSpeed * frame.Delta
	}
	if a.down {
		a.y += spriteSpeed * frame.Delta
	}
	if a.left {
		a.x -= spriteSpeed * frame.Delta
	}
	if a.right {
		a.x += spriteSpeed * frame.Delta
	}
	a.x = clampFloat(a.x, 0, float64(frame.Width-spriteSize))
	a.y = clampFloat(a.y, 0, float64(frame.Height-spriteSize))

	a.drawBackground(frame)
	a.drawSprite(frame)

	if a.synth == nil {
		a.synth = NewSynth(frame.SampleRate)
	}
	span := float64(frame.Width - spriteSize)
	if span < 1 {
		span = 1
	}
	a.synth.SetPitch(pitchLowHz + (pitchHighHz-pitchLowHz)*a.x/span)
	a.synth.Synthesize(frame.Samples, frame.Channels)
}

// drawBackground paints a slowly drifting plasma gradient. Per-row and
// per-column waves are tabulated once per frame so the inner loop is a
// table sum per pixel.
func (a *App) drawBackground(frame *host.Frame) {
	cols := make([]float64, frame.Width)
	rows := make([]float64, frame.Height)
	for x := range cols {
		cols[x] = math.Sin(float64(x)/23.0 + a.phase)
	}
	for y := range rows {
		rows[y] = math.Sin(float64(y)/17.0 + a.phase*1.3)
	}

	for y := 0; y < frame.Height; y++ {
		row := frame.Pixels[y*frame.Width*4:]
		for x := 0; x < frame.Width; x++ {
			// v in [0, 1]
			v := (cols[x] + rows[y] + 2) / 4
			p := row[x*4 : x*4+4]
			p[0] = uint8(40 + 90*v)
			p[1] = uint8(20 + 50*v)
			p[2] = uint8(90 + 160*v)
			p[3] = 0xFF
		}
	}
}

// drawSprite paints the player square with a darker border.
func (a *App) drawSprite(frame *host.Frame) {
	sx, sy := int(a.x), int(a.y)
	for dy := 0; dy < spriteSize; dy++ {
		for dx := 0; dx < spriteSize; dx++ {
			px, py := sx+dx, sy+dy
			if px < 0 || px >= frame.Width || py < 0 || py >= frame.Height {
				continue
			}
			p := frame.Pixels[(py*frame.Width+px)*4:]
			edge := dx == 0 || dy == 0 || dx == spriteSize-1 || dy == spriteSize-1
			if edge {
				p[0], p[1], p[2], p[3] = 0x80, 0x40, 0x00, 0xFF
			} else {
				p[0], p[1], p[2], p[3] = 0xFF, 0xA0, 0x20, 0xFF
			}
		}
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
