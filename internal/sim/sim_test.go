package sim

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/TheBitDrifter/stockroom"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/TheBitDrifter/stockroom/internal/scene"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestWorld(t *testing.T) *stockroom.World {
	t.Helper()
	w, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	return w
}

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.Parse([]byte(`
presets:
  - name: spark
    burst: 8
    speed: {min: 4, max: 6}
    lifetime: {min: 1, max: 2}
    symbol: "+"
emitters:
  - {x: 10, y: 5, preset: spark}
`), scene.Preset{
		Burst:    3,
		Speed:    scene.Range{Min: 1, Max: 1},
		Lifetime: scene.Range{Min: 5, Max: 5},
		Symbol:   "*",
	})
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	return sc
}

type recordingSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (s recordingSystem) Phase() Phase { return s.phase }
func (s recordingSystem) Update(dt time.Duration) { *s.log = append(*s.log, s.name) }

func TestRunnerPhaseOrder(t *testing.T) {
	var calls []string
	r := NewRunner()
	r.Register(recordingSystem{"render", PhaseRender, &calls})
	r.Register(recordingSystem{"move", PhaseUpdate, &calls})
	r.Register(recordingSystem{"input", PhaseInput, &calls})
	r.Register(recordingSystem{"age", PhaseUpdate, &calls})

	r.Tick(time.Millisecond)

	want := []string{"input", "move", "age", "render"}
	if !slices.Equal(calls, want) {
		t.Errorf("systems ran as %v, want %v", calls, want)
	}
}

func TestSpawnSystem(t *testing.T) {
	w := newTestWorld(t)
	sc := testScene(t)
	spark, _ := sc.Index("spark")
	request, _ := RequestBurst(w, 10, 5, spark)

	NewSpawnSystem(w, sc.Presets, 1, zap.NewNop()).Update(0)

	if w.IsAlive(request) {
		t.Error("spawn request survived its burst")
	}
	particles, _ := w.QueryEntities(PositionComponent, VelocityComponent, LifetimeComponent, ParticleComponent)
	if len(particles) != 8 {
		t.Fatalf("spawned %d particles, want 8", len(particles))
	}
	for _, e := range particles {
		pos, _ := PositionComponent.GetFromEntity(w, e)
		vel, _ := VelocityComponent.GetFromEntity(w, e)
		life, _ := LifetimeComponent.GetFromEntity(w, e)
		particle, _ := ParticleComponent.GetFromEntity(w, e)

		if *pos != (Position{X: 10, Y: 5}) {
			t.Errorf("%v spawned at %+v", e, *pos)
		}
		if speed := math.Hypot(vel.X, vel.Y); speed < 4-1e-9 || speed > 6+1e-9 {
			t.Errorf("%v speed %v outside [4, 6]", e, speed)
		}
		if life.Remaining < 1 || life.Remaining > 2 {
			t.Errorf("%v lifetime %v outside [1, 2]", e, life.Remaining)
		}
		if particle.Symbol != '+' {
			t.Errorf("%v symbol %q, want '+'", e, particle.Symbol)
		}
	}
}

func TestSpawnSystemUnknownPreset(t *testing.T) {
	w := newTestWorld(t)
	sc := testScene(t)
	request, _ := RequestBurst(w, 0, 0, 99)

	NewSpawnSystem(w, sc.Presets, 1, zap.NewNop()).Update(0)

	if w.IsAlive(request) {
		t.Error("request for an unknown preset was kept")
	}
	if w.Len() != 0 {
		t.Errorf("world holds %d entities, want 0", w.Len())
	}
}

func TestSpawnSystemLockedWorld(t *testing.T) {
	w := newTestWorld(t)
	sc := testScene(t)
	spark, _ := sc.Index("spark")
	request, _ := RequestBurst(w, 1, 1, spark)

	core, logs := observer.New(zapcore.ErrorLevel)
	w.AddLock(3)
	NewSpawnSystem(w, sc.Presets, 1, zap.New(core)).Update(0)
	w.RemoveLock(3)

	for _, msg := range []string{"spawn particle", "destroy partial particle", "destroy spawn requests"} {
		if n := logs.FilterMessage(msg).Len(); n != 1 {
			t.Errorf("logged %q %d times, want 1", msg, n)
		}
	}
	if !w.IsAlive(request) {
		t.Error("request destroyed while the world was locked")
	}
}

func TestMovementSystem(t *testing.T) {
	w := newTestWorld(t)
	moving := w.CreateEntity()
	_ = PositionComponent.Add(w, moving, Position{X: 1, Y: 1})
	_ = VelocityComponent.Add(w, moving, Velocity{X: 2, Y: -4})
	still := w.CreateEntity()
	_ = PositionComponent.Add(w, still, Position{X: 3, Y: 3})

	NewMovementSystem(w).Update(500 * time.Millisecond)

	if pos, _ := PositionComponent.GetFromEntity(w, moving); *pos != (Position{X: 2, Y: -1}) {
		t.Errorf("moving entity at %+v, want {2 -1}", *pos)
	}
	if pos, _ := PositionComponent.GetFromEntity(w, still); *pos != (Position{X: 3, Y: 3}) {
		t.Errorf("entity without velocity moved to %+v", *pos)
	}
	if w.Locked() {
		t.Error("world left locked after the movement pass")
	}
}

func TestLifetimeSystem(t *testing.T) {
	w := newTestWorld(t)
	expiring := w.CreateEntity()
	_ = LifetimeComponent.Add(w, expiring, Lifetime{Remaining: 0.5})
	exact := w.CreateEntity()
	_ = LifetimeComponent.Add(w, exact, Lifetime{Remaining: 1})
	lasting := w.CreateEntity()
	_ = LifetimeComponent.Add(w, lasting, Lifetime{Remaining: 2.5})

	NewLifetimeSystem(w).Update(time.Second)

	tests := []struct {
		name   string
		entity stockroom.Entity
		alive  bool
	}{
		{"Expired", expiring, false},
		{"Reached zero", exact, false},
		{"Still running", lasting, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w.IsAlive(tt.entity) != tt.alive {
				t.Errorf("IsAlive() = %v, want %v", !tt.alive, tt.alive)
			}
		})
	}
	if life, _ := LifetimeComponent.GetFromEntity(w, lasting); life.Remaining != 1.5 {
		t.Errorf("remaining = %v, want 1.5", life.Remaining)
	}
}

func TestCleanupSystem(t *testing.T) {
	w := newTestWorld(t)
	e := w.CreateEntity()
	_ = PositionComponent.Add(w, e, Position{})
	_ = ParticleComponent.Add(w, e, Particle{Symbol: '*'})
	_ = w.DestroyEntity(e)

	cleanup := NewCleanupSystem(w, time.Second)
	cleanup.Update(600 * time.Millisecond)
	if cleanup.Swept() != 0 {
		t.Fatalf("swept before the interval elapsed")
	}
	cleanup.Update(600 * time.Millisecond)
	if cleanup.Swept() != 2 {
		t.Errorf("Swept() = %d, want 2", cleanup.Swept())
	}
}

func TestRenderSystem(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	w := newTestWorld(t)

	draw := func(x, y float64, symbol rune) {
		e := w.CreateEntity()
		_ = PositionComponent.Add(w, e, Position{X: x, Y: y})
		_ = ParticleComponent.Add(w, e, Particle{Symbol: symbol})
	}
	draw(3.7, 2.2, '+')
	draw(-1, 4, 'x')
	draw(15, 4, 'y') // outside the 12x8 clip
	draw(5, 9, 'z')

	NewRenderSystem(w, screen, 12, 8).Update(0)

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"Floored position", 3, 2, '+'},
		{"Clipped by width", 15, 4, ' '},
		{"Clipped by height", 5, 9, ' '},
		{"Empty cell", 0, 0, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mainc, _, _, _ := screen.GetContent(tt.x, tt.y)
			if mainc != tt.want {
				t.Errorf("cell (%d, %d) = %q, want %q", tt.x, tt.y, mainc, tt.want)
			}
		})
	}
}

func TestInputSystem(t *testing.T) {
	w := newTestWorld(t)
	input := NewInputSystem(w, 0, zap.NewNop())

	events := []tcell.Event{
		tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone), // drag
		tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(7, 3, tcell.Button2, tcell.ModNone),
		tcell.NewEventMouse(8, 6, tcell.Button1, tcell.ModNone),
	}
	for _, ev := range events {
		if !input.Handle(ev) {
			t.Fatalf("mouse event asked to quit")
		}
	}
	input.Update(0)

	requests, _ := w.QueryEntities(SpawnRequestComponent)
	if len(requests) != 2 {
		t.Fatalf("got %d spawn requests, want 2", len(requests))
	}
	first, _ := SpawnRequestComponent.GetFromEntity(w, requests[0])
	second, _ := SpawnRequestComponent.GetFromEntity(w, requests[1])
	if first.X != 4 || first.Y != 2 || second.X != 8 || second.Y != 6 {
		t.Errorf("requests at (%v, %v) and (%v, %v), want (4, 2) and (8, 6)", first.X, first.Y, second.X, second.Y)
	}

	input.Update(0)
	if again, _ := w.QueryEntities(SpawnRequestComponent); len(again) != 2 {
		t.Error("clicks were replayed on the next update")
	}
}

func TestIsQuitKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want bool
	}{
		{"Escape", tcell.KeyEscape, 0, true},
		{"Ctrl-C", tcell.KeyCtrlC, 0, true},
		{"q", tcell.KeyRune, 'q', true},
		{"Other rune", tcell.KeyRune, 'a', false},
		{"Enter", tcell.KeyEnter, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuitKey(tt.key, tt.r); got != tt.want {
				t.Errorf("isQuitKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSandboxLifecycle(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	sb, err := New(screen, testScene(t), Options{Seed: 7})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sb.Tick(10 * time.Millisecond)
	if got := sb.Particles(); got != 8 {
		t.Fatalf("Particles() = %d after the emitter burst, want 8", got)
	}

	sb.Handle(tcell.NewEventMouse(20, 10, tcell.Button1, tcell.ModNone))
	sb.Tick(10 * time.Millisecond)
	if got := sb.Particles(); got != 11 {
		t.Errorf("Particles() = %d after a click, want 11", got)
	}

	// Longest lifetime in the scene is 5 seconds
	for range 6 {
		sb.Tick(time.Second)
	}
	if got := sb.Particles(); got != 0 {
		t.Errorf("Particles() = %d after every lifetime expired, want 0", got)
	}
	if sb.Cleanup.Swept() == 0 {
		t.Error("cleanup never reclaimed dead particles")
	}
	if sb.World.Locked() {
		t.Error("world left locked between ticks")
	}
}
