package sim

import (
	"time"

	"github.com/TheBitDrifter/stockroom"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// InputSystem turns left-button presses into spawn requests. Only the
// transition from released to pressed counts, so dragging does not repeat.
type InputSystem struct {
	world   *stockroom.World
	preset  uint32
	pressed bool
	clicks  []Position
	log     *zap.Logger
}

func NewInputSystem(w *stockroom.World, preset uint32, log *zap.Logger) *InputSystem {
	return &InputSystem{world: w, preset: preset, log: log}
}

func (s *InputSystem) Phase() Phase { return PhaseInput }

// Handle consumes one terminal event. It reports false when the event asks
// the program to quit.
func (s *InputSystem) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return !isQuitKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !s.pressed {
			x, y := ev.Position()
			s.clicks = append(s.clicks, Position{X: float64(x), Y: float64(y)})
		}
		s.pressed = down
	}
	return true
}

func (s *InputSystem) Update(dt time.Duration) {
	for _, c := range s.clicks {
		if _, err := RequestBurst(s.world, c.X, c.Y, s.preset); err != nil {
			s.log.Warn("spawn request rejected", zap.Error(err))
		}
	}
	s.clicks = s.clicks[:0]
}

func isQuitKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q'
	}
	return false
}
