package sim

import (
	"math"
	"time"

	"github.com/TheBitDrifter/stockroom"
	"github.com/gdamore/tcell/v2"
)

// RenderSystem draws every particle inside the visible area and shows the frame.
type RenderSystem struct {
	screen        tcell.Screen
	cursor        *stockroom.Cursor
	width, height int
	style         tcell.Style
}

// NewRenderSystem clips drawing to width x height; zero means the screen size.
func NewRenderSystem(w *stockroom.World, screen tcell.Screen, width, height int) *RenderSystem {
	query := stockroom.Factory.NewQuery()
	query.And(PositionComponent, ParticleComponent)
	return &RenderSystem{
		screen: screen,
		cursor: stockroom.Factory.NewCursor(query, w),
		width:  width,
		height: height,
		style:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
}

func (s *RenderSystem) Phase() Phase { return PhaseRender }

func (s *RenderSystem) Update(dt time.Duration) {
	width, height := s.bounds()
	s.screen.Clear()
	for s.cursor.Next() {
		pos := PositionComponent.GetFromCursor(s.cursor)
		particle := ParticleComponent.GetFromCursor(s.cursor)
		x, y := int(math.Floor(pos.X)), int(math.Floor(pos.Y))
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		s.screen.SetContent(x, y, particle.Symbol, nil, s.style)
	}
	s.screen.Show()
}

func (s *RenderSystem) bounds() (int, int) {
	width, height := s.screen.Size()
	if s.width > 0 && s.width < width {
		width = s.width
	}
	if s.height > 0 && s.height < height {
		height = s.height
	}
	return width, height
}
