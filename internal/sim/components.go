package sim

import (
	"github.com/TheBitDrifter/stockroom"
)

type Position struct {
	X, Y float64
}

// Velocity is in cells per second.
type Velocity struct {
	X, Y float64
}

// Lifetime is the number of seconds a particle has left.
type Lifetime struct {
	Remaining float64
}

type Particle struct {
	Symbol rune
}

// SpawnRequest asks the spawn system for one burst of a scene preset.
type SpawnRequest struct {
	X, Y   float64
	Preset uint32
}

var (
	PositionComponent     = stockroom.FactoryNewComponent[Position]()
	VelocityComponent     = stockroom.FactoryNewComponent[Velocity]()
	LifetimeComponent     = stockroom.FactoryNewComponent[Lifetime]()
	ParticleComponent     = stockroom.FactoryNewComponent[Particle]()
	SpawnRequestComponent = stockroom.FactoryNewComponent[SpawnRequest]()
)

// NewWorld builds a world declaring every sandbox component.
func NewWorld() (*stockroom.World, error) {
	return stockroom.Factory.NewWorld(
		PositionComponent,
		VelocityComponent,
		LifetimeComponent,
		ParticleComponent,
		SpawnRequestComponent,
	)
}

// RequestBurst creates a spawn request entity at (x, y).
func RequestBurst(w *stockroom.World, x, y float64, preset uint32) (stockroom.Entity, error) {
	e := w.CreateEntity()
	if err := SpawnRequestComponent.EnqueueAdd(w, e, SpawnRequest{X: x, Y: y, Preset: preset}); err != nil {
		return e, err
	}
	return e, nil
}
