package runner

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/core"
	rc "github.com/vovakirdan/tui-runner/internal/games/runner/core"
)

// Visual characters for rendering
const (
	GroundTopChar  = '▀'
	GroundFillChar = '░'
	HazardChar     = '▲'
	BlockChar      = '▓'
	BarChar        = '═'
	SpikeChar      = '^'
	PlayerChar     = '█'
	HeadChar       = '◆'
	SlideChar      = '▬'
	LifeChar       = '♥'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, "runner: no world (see log)")
		return
	}

	g.world.Queue().ForEach(func(s *rc.Segment) {
		g.drawSegment(dst, s)
	})
	g.drawPlayer(dst)
	g.drawHUD(dst)

	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.gameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.State().Score))
	case g.complete:
		g.drawCenteredMessage(dst, fmt.Sprintf("LEVEL %d COMPLETE", g.level), "Press R for the next level")
	}
}

// fillWorld fills the cells covered by a world rectangle, never the HUD row.
func (g *Game) fillWorld(dst *core.Screen, r core.RectF, ch rune, c core.Color) {
	x0, x1, y0, y1 := g.layout.cells(r)
	for y := max(y0, 1); y <= y1; y++ {
		dst.DrawHLine(x0, y, x1-x0+1, ch, c)
	}
}

// drawSegment renders a segment column from its surface to the screen
// bottom, plus its obstacle.
func (g *Game) drawSegment(dst *core.Screen, s *rc.Segment) {
	top := s.Position().Y
	x0, x1, surface, _ := g.layout.cells(core.RectF{X: s.Left(), Y: top - 1, W: s.Width(), H: 1})

	ch, color := GroundTopChar, core.ColorGround
	if s.Kind() == rc.PlatformPit {
		ch, color = HazardChar, core.ColorHazard
	}
	if surface >= 1 {
		dst.DrawHLine(x0, surface, x1-x0+1, ch, color)
	}
	for y := max(surface+1, 1); y < dst.Height(); y++ {
		dst.DrawHLine(x0, y, x1-x0+1, GroundFillChar, core.ColorDim)
	}

	box, ok := g.phys.obstacleBox(s)
	if !ok {
		return
	}
	switch s.Obstacle().Kind {
	case rc.ObstacleJump:
		g.fillWorld(dst, box, BlockChar, core.ColorObstacle)
	case rc.ObstacleSlide:
		g.fillWorld(dst, box, BarChar, core.ColorObstacle)
	case rc.ObstaclePit:
		g.fillWorld(dst, box, SpikeChar, core.ColorHazard)
	}
}

// drawPlayer renders the runner. Sliding shrinks it to the slide height.
func (g *Game) drawPlayer(dst *core.Screen) {
	p := g.world.Player()
	box := g.phys.hitbox(p.Position())

	color := core.ColorPlayer
	if p.IsFrozen() && g.frame < 6 {
		color = core.ColorFrozen
	}

	if p.IsSliding() {
		box.H = g.cfg.Player.SlideHeight
		g.fillWorld(dst, box, SlideChar, color)
		return
	}
	g.fillWorld(dst, box, PlayerChar, color)

	x0, x1, y0, y1 := g.layout.cells(box)
	if y0 >= 1 && y1 > y0 {
		dst.DrawHLine(x0, y0, x1-x0+1, HeadChar, color)
	}
}

// drawHUD renders the status line on row 0.
func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	w := g.world

	left := fmt.Sprintf(" Score: %d  Life: %s ", st.Score, strings.Repeat(string(LifeChar), st.Life))
	dst.DrawTextColored(1, 0, left, core.ColorHUD)

	var right string
	switch {
	case g.endless:
		right = fmt.Sprintf(" Endless  Spd: %.1f ", w.Speed())
	case g.cfg.Level.Distance > 0:
		pct := math.Min(100, 100*w.Travelled()/g.cfg.Level.Distance)
		right = fmt.Sprintf(" Lvl %d  %3.0f%%  Spd: %.1f ", g.level, pct, w.Speed())
	default:
		right = fmt.Sprintf(" Lvl %d  Spd: %.1f ", g.level, w.Speed())
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, core.ColorHUD)

	if w.Player().IsFrozen() {
		dst.DrawTextColored((dst.Width()-10)/2, 0, "RECOVERING", core.ColorFrozen)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorHUD)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
