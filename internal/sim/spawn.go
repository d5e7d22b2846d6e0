package sim

import (
	"math"
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/TheBitDrifter/stockroom"
	"go.uber.org/zap"

	"github.com/TheBitDrifter/stockroom/internal/scene"
)

// SpawnSystem expands every spawn request into a burst of particles and
// destroys the request.
type SpawnSystem struct {
	world   *stockroom.World
	presets stockroom.Cache[scene.Preset]
	rng     *rand.Rand
	log     *zap.Logger
}

func NewSpawnSystem(w *stockroom.World, presets stockroom.Cache[scene.Preset], seed uint64, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{
		world:   w,
		presets: presets,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:     log,
	}
}

func (s *SpawnSystem) Phase() Phase { return PhaseSpawn }

func (s *SpawnSystem) Update(dt time.Duration) {
	requests, err := s.world.QueryEntities(SpawnRequestComponent)
	if err != nil {
		s.log.Error("query spawn requests", zap.Error(err))
		return
	}
	for _, e := range requests {
		req, ok := SpawnRequestComponent.GetFromEntity(s.world, e)
		if !ok {
			continue
		}
		if int(req.Preset) >= s.presets.Len() {
			s.log.Warn("spawn request for unknown preset", zap.Uint32("preset", req.Preset))
			continue
		}
		s.burst(*req, s.presets.GetItem32(req.Preset))
	}
	if err := s.world.DestroyEntities(requests...); err != nil {
		s.log.Error("destroy spawn requests", zap.Error(err))
	}
}

func (s *SpawnSystem) burst(req SpawnRequest, p *scene.Preset) {
	symbol, _ := utf8.DecodeRuneInString(p.Symbol)
	for range p.Burst {
		speed := s.between(p.Speed)
		angle := s.rng.Float64() * 2 * math.Pi

		e := s.world.CreateEntity()
		err := PositionComponent.Add(s.world, e, Position{X: req.X, Y: req.Y})
		if err == nil {
			err = VelocityComponent.Add(s.world, e, Velocity{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed})
		}
		if err == nil {
			err = LifetimeComponent.Add(s.world, e, Lifetime{Remaining: s.between(p.Lifetime)})
		}
		if err == nil {
			err = ParticleComponent.Add(s.world, e, Particle{Symbol: symbol})
		}
		if err != nil {
			s.log.Error("spawn particle", zap.Stringer("entity", e), zap.Error(err))
			if err := s.world.DestroyEntity(e); err != nil {
				s.log.Error("destroy partial particle", zap.Stringer("entity", e), zap.Error(err))
			}
			return
		}
	}
	s.log.Debug("burst spawned",
		zap.String("preset", p.Name),
		zap.Int("count", p.Burst),
		zap.Float64("x", req.X),
		zap.Float64("y", req.Y),
	)
}

func (s *SpawnSystem) between(r scene.Range) float64 {
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}
