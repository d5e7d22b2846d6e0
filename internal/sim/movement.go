package sim

import (
	"time"

	"github.com/TheBitDrifter/stockroom"
)

// MovementSystem advances every particle by its velocity.
type MovementSystem struct {
	cursor *stockroom.Cursor
}

func NewMovementSystem(w *stockroom.World) *MovementSystem {
	query := stockroom.Factory.NewQuery()
	query.And(PositionComponent, VelocityComponent)
	return &MovementSystem{cursor: stockroom.Factory.NewCursor(query, w)}
}

func (s *MovementSystem) Phase() Phase { return PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	for s.cursor.Next() {
		pos := PositionComponent.GetFromCursor(s.cursor)
		vel := VelocityComponent.GetFromCursor(s.cursor)
		pos.X += vel.X * sec
		pos.Y += vel.Y * sec
	}
}

// LifetimeSystem ages particles and destroys the expired ones once the
// pass is over.
type LifetimeSystem struct {
	world  *stockroom.World
	cursor *stockroom.Cursor
}

func NewLifetimeSystem(w *stockroom.World) *LifetimeSystem {
	query := stockroom.Factory.NewQuery()
	query.And(LifetimeComponent)
	return &LifetimeSystem{world: w, cursor: stockroom.Factory.NewCursor(query, w)}
}

func (s *LifetimeSystem) Phase() Phase { return PhaseUpdate }

func (s *LifetimeSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	for s.cursor.Next() {
		life := LifetimeComponent.GetFromCursor(s.cursor)
		life.Remaining -= sec
		if life.Remaining <= 0 {
			s.world.EnqueueDestroyEntities(s.cursor.CurrentEntity())
		}
	}
}

// CleanupSystem sweeps the components of destroyed entities at a fixed interval.
type CleanupSystem struct {
	world   *stockroom.World
	every   time.Duration
	elapsed time.Duration
	swept   int
}

func NewCleanupSystem(w *stockroom.World, every time.Duration) *CleanupSystem {
	return &CleanupSystem{world: w, every: every}
}

func (s *CleanupSystem) Phase() Phase { return PhaseCleanup }

func (s *CleanupSystem) Update(dt time.Duration) {
	s.elapsed += dt
	if s.elapsed < s.every {
		return
	}
	s.elapsed = 0
	if n, err := s.world.Sweep(); err == nil {
		s.swept += n
	}
}

// Swept returns the number of components reclaimed so far.
func (s *CleanupSystem) Swept() int { return s.swept }
