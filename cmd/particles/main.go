// Command particles is a terminal particle sandbox: click to spawn a burst,
// Esc, Ctrl-C or q to quit.
package main

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/TheBitDrifter/stockroom"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/TheBitDrifter/stockroom/internal/config"
	"github.com/TheBitDrifter/stockroom/internal/logging"
	"github.com/TheBitDrifter/stockroom/internal/scene"
	"github.com/TheBitDrifter/stockroom/internal/sim"
)

const defaultConfigPath = "config/particles.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "particles: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := os.Getenv("PARTICLES_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	stockroom.Config.SetLogger(log.Named("stockroom"))

	sc, err := scene.Load(cfg.Scene.Path, presetFromConfig(cfg.Spawn))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sb, err := sim.New(screen, sc, sim.Options{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Seed:   uint64(time.Now().UnixNano()),
		Logger: log,
	})
	if err != nil {
		return err
	}

	loop(screen, sb, cfg.Display.TickRate, log)
	return nil
}

func loop(screen tcell.Screen, sb *sim.Sandbox, tickRate time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Fini was called
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
				continue
			}
			if !sb.Handle(ev) {
				log.Info("quit requested", zap.Int("particles", sb.Particles()))
				return
			}

		case now := <-ticker.C:
			sb.Tick(now.Sub(last))
			last = now
		}
	}
}

func presetFromConfig(c config.SpawnConfig) scene.Preset {
	symbol := c.Symbol
	if _, size := utf8.DecodeRuneInString(symbol); size > 0 {
		symbol = symbol[:size]
	}
	return scene.Preset{
		Name:     scene.DefaultPreset,
		Burst:    c.Burst,
		Speed:    scene.Range{Min: c.SpeedMin, Max: c.SpeedMax},
		Lifetime: scene.Range{Min: c.LifetimeMin, Max: c.LifetimeMax},
		Symbol:   symbol,
	}
}
