// Package sim is the particle sandbox: a stockroom world driven by a fixed
// set of systems that spawn, move, age and draw particles.
package sim

import (
	"fmt"
	"time"

	"github.com/TheBitDrifter/stockroom"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/TheBitDrifter/stockroom/internal/scene"
)

const sweepInterval = time.Second

type Options struct {
	Width, Height int // drawing area, 0 = screen size
	Seed          uint64
	Logger        *zap.Logger
}

// Sandbox wires a world, its systems and a screen together.
type Sandbox struct {
	World   *stockroom.World
	Input   *InputSystem
	Cleanup *CleanupSystem
	runner  *Runner
	log     *zap.Logger
}

// New builds a sandbox drawing to screen and queues one burst for each of
// the scene's emitters.
func New(screen tcell.Screen, sc *scene.Scene, opts Options) (*Sandbox, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	w, err := NewWorld()
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	preset, ok := sc.Index(scene.DefaultPreset)
	if !ok {
		return nil, fmt.Errorf("scene has no %q preset", scene.DefaultPreset)
	}

	sb := &Sandbox{
		World:   w,
		Input:   NewInputSystem(w, preset, log),
		Cleanup: NewCleanupSystem(w, sweepInterval),
		runner:  NewRunner(),
		log:     log,
	}
	sb.runner.Register(sb.Input)
	sb.runner.Register(NewSpawnSystem(w, sc.Presets, opts.Seed, log))
	sb.runner.Register(NewMovementSystem(w))
	sb.runner.Register(NewLifetimeSystem(w))
	sb.runner.Register(NewRenderSystem(w, screen, opts.Width, opts.Height))
	sb.runner.Register(sb.Cleanup)

	for i, em := range sc.Emitters {
		index, _ := sc.Index(em.Preset)
		if _, err := RequestBurst(w, em.X, em.Y, index); err != nil {
			return nil, fmt.Errorf("emitter %d: %w", i, err)
		}
	}
	log.Info("sandbox ready",
		zap.Int("presets", sc.Presets.Len()),
		zap.Int("emitters", len(sc.Emitters)),
	)
	return sb, nil
}

// Handle forwards a terminal event to the input system. It reports false
// when the program should quit.
func (s *Sandbox) Handle(ev tcell.Event) bool {
	return s.Input.Handle(ev)
}

// Tick runs every system once.
func (s *Sandbox) Tick(dt time.Duration) {
	s.runner.Tick(dt)
}

// Particles returns the number of live particles.
func (s *Sandbox) Particles() int {
	particles, err := s.World.QueryEntities(ParticleComponent)
	if err != nil {
		s.log.Error("count particles", zap.Error(err))
		return 0
	}
	return len(particles)
}
