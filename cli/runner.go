// Package cli wires an application into a windowed run of the loop:
// configuration, the driver, audio output, optional capture, and the
// Ebiten frontend, plus pause and shutdown handling.
package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	loopbridge "github.com/user-none/blitloop/bridge/ebiten"
	"github.com/user-none/blitloop/host"
	"github.com/user-none/blitloop/ui"
)

// Runner owns a windowed session. It implements ebiten.Game by
// delegating to the bridge, layering focus and pause handling on top:
// a paused or unfocused window stops ticking the driver, and the
// driver's clock is reset so the idle stretch never lands in one
// oversized delta.
type Runner struct {
	cfg    Config
	driver *host.Driver
	game   *loopbridge.Game

	framebuffer *ui.SharedFramebuffer
	audioPlayer *ui.AudioPlayer
	capture     *ui.WavCapture

	paused bool
}

// NewRunner builds the session for the given application. Audio device
// failure is non-fatal; the loop runs silent with a warning, matching
// how a missing device should degrade. A capture path that cannot be
// opened is an error, since the recording was explicitly requested.
func NewRunner(cfg Config, app host.App) (*Runner, error) {
	framebuffer := ui.NewSharedFramebuffer(cfg.Width, cfg.Height)

	driver, err := host.NewDriver(cfg.hostConfig(), app, framebuffer)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:         cfg,
		driver:      driver,
		framebuffer: framebuffer,
	}

	player, err := ui.NewAudioPlayer(driver.Ring(), cfg.SampleRate, cfg.Volume)
	if err != nil {
		log.Printf("Warning: audio initialization failed, running silent: %v", err)
	} else {
		r.audioPlayer = player
	}

	if cfg.Capture != "" {
		capture, err := ui.NewWavCapture(cfg.Capture, cfg.SampleRate, cfg.Channels)
		if err != nil {
			r.Close()
			return nil, err
		}
		driver.SetAudioTap(capture)
		r.capture = capture
	}

	r.game = loopbridge.NewGame(driver, framebuffer, cfg.Title)
	if cfg.ShowStats {
		r.game.SetStats(r.statsLine)
	}
	return r, nil
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyPause) {
		r.TogglePause()
	}

	if r.paused || !ebiten.IsFocused() {
		r.driver.ResetClock(time.Now())
		return nil
	}
	return r.game.Update()
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.game.Draw(screen)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.game.Layout(outsideWidth, outsideHeight)
}

// TogglePause flips the pause state. While paused the driver is never
// ticked; the audio device keeps pulling and drains into silence.
func (r *Runner) TogglePause() {
	r.paused = !r.paused
}

// Paused reports whether ticking is suspended.
func (r *Runner) Paused() bool {
	return r.paused
}

// Close stops the session: the audio device stops pulling, the capture
// file is finalized, and the final loop counters are logged.
func (r *Runner) Close() {
	if r.audioPlayer != nil {
		r.audioPlayer.Close()
		r.audioPlayer = nil
	}
	if r.capture != nil {
		if err := r.capture.Close(); err != nil {
			log.Printf("Warning: %v", err)
		}
		r.capture = nil
	}

	stats := r.driver.Stats()
	log.Printf("loop: %d ticks (%d dropped), %d samples pushed",
		stats.Ticks, stats.DroppedTicks, stats.SamplesPushed)
}

// statsLine renders the diagnostics overlay.
func (r *Runner) statsLine() string {
	stats := r.driver.Stats()
	line := fmt.Sprintf("ticks %d  dropped %d  pushed %d",
		stats.Ticks, stats.DroppedTicks, stats.SamplesPushed)
	if r.audioPlayer != nil {
		bytesPerMilli := r.cfg.SampleRate * r.cfg.Channels * 2 / 1000
		if bytesPerMilli > 0 {
			line += fmt.Sprintf("  buffered %d ms", r.audioPlayer.BufferLevel()/bytesPerMilli)
		}
		line += fmt.Sprintf("  underruns %d", r.audioPlayer.Underruns())
	}
	return line
}
