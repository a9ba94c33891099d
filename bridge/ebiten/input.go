package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/user-none/blitloop/host"
)

// Key repeat cadence in ticks at 60 TPS: first repeat after ~500 ms,
// then 20 per second.
const (
	repeatDelayTicks    = 30
	repeatIntervalTicks = 3
)

// InputPoller reads Ebiten input state once per tick and feeds the
// host queue: modifier levels, discrete key presses, releases and
// repeats, and relative mouse motion.
type InputPoller struct {
	keys       []ebiten.Key
	prevX      int
	prevY      int
	cursorSeen bool
}

// Poll gathers this tick's input state into q. Modifier keys go
// through the level mask only; everything else is forwarded discrete,
// unmapped keys included.
func (p *InputPoller) Poll(q *host.InputQueue) {
	mods := readModifiers()
	q.SetModifiers(mods)

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if isModifierKey(k) {
			continue
		}
		q.Key(translateKey(k), mods, true, false)
	}

	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if isModifierKey(k) {
			continue
		}
		q.Key(translateKey(k), mods, false, false)
	}

	p.keys = inpututil.AppendPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if isModifierKey(k) {
			continue
		}
		held := inpututil.KeyPressDuration(k)
		if held >= repeatDelayTicks && (held-repeatDelayTicks)%repeatIntervalTicks == 0 {
			q.Key(translateKey(k), mods, true, true)
		}
	}

	x, y := ebiten.CursorPosition()
	if p.cursorSeen && (x != p.prevX || y != p.prevY) {
		q.MouseMove(float64(x-p.prevX), float64(y-p.prevY))
	}
	p.prevX, p.prevY = x, y
	p.cursorSeen = true
}
