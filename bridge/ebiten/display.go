// Package ebiten hosts the loop inside an Ebiten window. Input is
// translated into the host queue once per tick, and each presented
// frame is blitted to the screen scaled to fit the window.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Display blits the fixed-size pixel buffer to the window, scaled to
// fit while preserving aspect ratio.
type Display struct {
	offscreen *ebiten.Image           // Offscreen buffer at native resolution
	drawOpts  ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation
	width     int
	height    int
}

// NewDisplay creates a display for the loop's native resolution.
func NewDisplay(width, height int) *Display {
	return &Display{
		width:  width,
		height: height,
	}
}

// Draw renders a pixel snapshot to the screen.
func (d *Display) Draw(screen *ebiten.Image, pixels []byte) {
	required := d.width * d.height * 4
	if len(pixels) < required {
		return
	}

	if d.offscreen == nil {
		d.offscreen = ebiten.NewImage(d.width, d.height)
	}
	d.offscreen.WritePixels(pixels[:required])

	// Scale to fit the window while preserving aspect ratio
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeW := float64(d.width)
	nativeH := float64(d.height)

	scaleX := float64(screenW) / nativeW
	scaleY := float64(screenH) / nativeH
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	scaledW := nativeW * scale
	scaledH := nativeH * scale
	offsetX := (float64(screenW) - scaledW) / 2
	offsetY := (float64(screenH) - scaledH) / 2

	d.drawOpts = ebiten.DrawImageOptions{}
	d.drawOpts.GeoM.Scale(scale, scale)
	d.drawOpts.GeoM.Translate(offsetX, offsetY)
	d.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(d.offscreen, &d.drawOpts)
}

// Layout implements the ebiten.Game layout contract.
func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
