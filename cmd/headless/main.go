// Command headless soaks the loop without a window: the frame driver
// ticks at a fixed rate against a simulated audio device pulling at its
// own cadence, then the bridge counters are printed. Useful for
// checking producer/consumer pacing without display or audio hardware.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/user-none/blitloop/demo"
	"github.com/user-none/blitloop/host"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "how long to run")
	tps := flag.Int("tps", 60, "frame driver ticks per second")
	deviceFrames := flag.Int("device-frames", 512, "frames pulled per simulated device callback")
	sampleRate := flag.Int("sample-rate", host.DefaultSampleRate, "output sample rate")
	channels := flag.Int("channels", host.DefaultChannels, "interleaved channel count")
	flag.Parse()

	if *tps < 1 || *deviceFrames < 1 {
		log.Fatal("tps and device-frames must be positive")
	}

	driver, err := host.NewDriver(host.Config{
		Width:      320,
		Height:     180,
		SampleRate: *sampleRate,
		Channels:   *channels,
	}, demo.New(), nil)
	if err != nil {
		log.Fatalf("Failed to initialize loop: %v", err)
	}

	callback := host.NewAudioCallback(driver.Ring())

	// Simulated device: pull a fixed buffer at the cadence real hardware
	// would, on its own goroutine.
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]int16, (*deviceFrames)*(*channels))
		interval := time.Duration(*deviceFrames) * time.Second / time.Duration(*sampleRate)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				callback.Fill(buf)
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(*tps))
	defer ticker.Stop()
	deadline := time.After(*duration)

loop:
	for {
		select {
		case <-deadline:
			break loop
		case now := <-ticker.C:
			driver.Tick(now)
		}
	}

	close(stop)
	<-done

	stats := driver.Stats()
	log.Printf("ticks %d (%d dropped), samples pushed %d",
		stats.Ticks, stats.DroppedTicks, stats.SamplesPushed)
	log.Printf("device read %d samples, underruns %d (%d samples silenced)",
		callback.SamplesRead(), callback.Underruns(), callback.UnderrunSamples())
	log.Printf("ring: %d samples readable of %d capacity at shutdown",
		driver.Ring().Readable(), driver.Ring().Capacity())
}
