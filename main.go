package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/blitloop/cli"
	"github.com/user-none/blitloop/demo"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: blitloop.* in the working directory)")
	capturePath := flag.String("capture", "", "record published audio to this WAV file")
	showStats := flag.Bool("stats", false, "draw the diagnostics overlay")
	flag.Parse()

	cfg, err := cli.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *capturePath != "" {
		cfg.Capture = *capturePath
	}
	if *showStats {
		cfg.ShowStats = true
	}

	runner, err := cli.NewRunner(cfg, demo.New())
	if err != nil {
		log.Fatalf("Failed to initialize loop: %v", err)
	}
	defer runner.Close()

	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
