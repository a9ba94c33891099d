package ebiten

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/user-none/blitloop/host"
)

// FrameSource supplies the most recently presented frame for drawing.
// ui.SharedFramebuffer satisfies it.
type FrameSource interface {
	Read() (pixels []byte, width, height int, ok bool)
}

// Game runs the loop from Ebiten's update cadence: poll input, run one
// driver tick, blit the latest presented frame. The window title shows
// the measured FPS, refreshed once a second.
type Game struct {
	driver  *host.Driver
	display *Display
	poller  InputPoller
	frames  FrameSource
	title   string

	stats     func() string
	lastTitle time.Time
}

// NewGame wires a driver and its frame source into an ebiten.Game.
func NewGame(driver *host.Driver, frames FrameSource, title string) *Game {
	cfg := driver.Config()
	return &Game{
		driver:  driver,
		display: NewDisplay(cfg.Width, cfg.Height),
		frames:  frames,
		title:   title,
	}
}

// SetStats attaches an optional diagnostics line drawn over the frame.
func (g *Game) SetStats(stats func() string) {
	g.stats = stats
}

// Update implements ebiten.Game: one display tick drives one loop tick.
func (g *Game) Update() error {
	g.poller.Poll(g.driver.Input())
	g.driver.Tick(time.Now())

	if now := time.Now(); now.Sub(g.lastTitle) >= time.Second {
		ebiten.SetWindowTitle(fmt.Sprintf("%s - %.2f fps", g.title, ebiten.ActualFPS()))
		g.lastTitle = now
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if pixels, _, _, ok := g.frames.Read(); ok {
		g.display.Draw(screen, pixels)
	}
	if g.stats != nil {
		ebitenutil.DebugPrintAt(screen, g.stats(), 4, 4)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.display.Layout(outsideWidth, outsideHeight)
}
