package defense

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/core"
)

// Visual characters for rendering
const (
	EmptyChar   = '·'
	PathChar    = '░'
	BlockedChar = '▓'
	StartChar   = 'S'
	GoalChar    = 'G'
)

const (
	cellW     = 3 // Terminal columns per board cell
	hudHeight = 2 // Rows above the board
	footer    = 3 // Rows below the board: inspector, status, help
)

const helpLine = "←↑↓→ move  space build  tab kind  u upgrade  x sell  n wave  g path  p pause"

// Render draws the current game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.sim == nil {
		title := "CANNOT START"
		if g.failed == nil {
			title = "LOADING"
		}
		drawCenteredMessage(dst, title, g.message)
		return
	}

	b := g.sim.Board()
	area := g.boardRect(dst)
	if area.W > dst.Width() || area.Bottom()+footer > dst.Height() {
		drawCenteredMessage(dst, "TERMINAL TOO SMALL",
			fmt.Sprintf("Need %dx%d", area.W, hudHeight+area.H+footer))
		return
	}

	g.drawHUD(dst)
	dst.DrawBox(area, platformcore.ColorGray)
	inner := area.Inset(1)
	for _, cell := range b.Cells() {
		g.drawCell(dst, inner, cell)
	}
	g.drawTowers(dst, inner)
	g.drawEnemies(dst, inner)
	g.drawCursor(dst, inner)

	y := area.Bottom()
	dst.DrawText(area.X, y, g.inspect())
	dst.DrawTextColored(area.X, y+1, g.message, platformcore.ColorYellow)
	dst.DrawTextColored(0, dst.Height()-1, helpLine, platformcore.ColorGray)

	switch {
	case g.sim.Progress().Won():
		drawCenteredMessage(dst, "VICTORY", fmt.Sprintf("Score: %d  |  Press R to restart", g.sim.Progress().Score()))
	case g.sim.Progress().Lost():
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Wave %d  |  Press R to restart", g.sim.Director().Wave()))
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// boardRect returns the framed board area, centered horizontally.
func (g *Game) boardRect(dst *platformcore.Screen) platformcore.Rect {
	b := g.sim.Board()
	w := b.W*cellW + 2
	h := b.H + 2
	return platformcore.NewRect(max((dst.Width()-w)/2, 0), hudHeight, w, h)
}

// screenPos returns the left column and row of a board cell.
func screenPos(inner platformcore.Rect, c core.Coord) (int, int) {
	return inner.X + c.X*cellW, inner.Y + c.Y
}

func (g *Game) drawHUD(dst *platformcore.Screen) {
	p := g.sim.Progress()
	d := g.sim.Director()
	hud := fmt.Sprintf(" Wave %d/%d  Lives %d  Money $%d  Score %d ", d.Wave(), d.MaxWaves(), p.Lives(), p.Money(), p.Score())
	dst.DrawText(1, 0, hud)

	state := d.State().String()
	if !g.sim.Started() {
		state = "Ready"
	}
	dst.DrawTextColored(dst.Width()-len(state)-2, 0, state, platformcore.ColorCyan)

	if kinds := g.sim.TowerKinds(); len(kinds) > 0 {
		k := kinds[g.kind%len(kinds)]
		color := platformcore.ColorGreen
		if k.Cost > p.Money() {
			color = platformcore.ColorRed
		}
		build := fmt.Sprintf(" Build: %c %s $%d  dmg %d  range %.1f  every %s ", k.Glyph, k.Name, k.Cost, k.BaseDamage, k.Range, k.AttackInterval)
		dst.DrawTextColored(1, 1, build, color)
	}
}

func (g *Game) drawCell(dst *platformcore.Screen, inner platformcore.Rect, cell core.Cell) {
	x, y := screenPos(inner, cell.Coord)
	b := g.sim.Board()

	ch, color := EmptyChar, platformcore.ColorGray
	switch cell.Kind {
	case core.CellPath:
		ch, color = PathChar, platformcore.ColorYellow
	case core.CellBlocked:
		ch, color = BlockedChar, platformcore.ColorGray
	}
	switch cell.Coord {
	case b.Start():
		ch, color = StartChar, platformcore.ColorBrightGreen
	case b.Goal():
		ch, color = GoalChar, platformcore.ColorBrightRed
	}

	if cell.Kind == core.CellPath && ch == PathChar {
		dst.DrawTextColored(x, y, string([]rune{ch, ch, ch}), color)
		return
	}
	dst.SetColored(x+1, y, ch, color)
}

func (g *Game) drawTowers(dst *platformcore.Screen, inner platformcore.Rect) {
	money := g.sim.Progress().Money()
	for _, t := range g.sim.Towers() {
		x, y := screenPos(inner, t.Coord)
		color := platformcore.ColorCyan
		if t.UpgradeEnabled() && t.UpgradeCost() <= money {
			color = platformcore.ColorBrightCyan
		}
		dst.SetColored(x+1, y, t.Kind.Glyph, color)
		if t.Level() > 0 {
			dst.SetColored(x+2, y, levelRune(t.Level()), color)
		}
	}
}

// levelRune returns a single digit, or '+' past nine.
func levelRune(level int) rune {
	if level > 9 {
		return '+'
	}
	return rune('0' + level)
}

func (g *Game) drawEnemies(dst *platformcore.Screen, inner platformcore.Rect) {
	b := g.sim.Board()
	count := make(map[core.Coord]int)
	for _, e := range g.sim.Enemies() {
		c, ok := b.CellAt(e.Pos)
		if !ok {
			continue
		}
		count[c]++
		x, y := screenPos(inner, c)
		dst.SetColored(x+1, y, e.Glyph, healthColor(e.Health, e.MaxHealth))
		if count[c] > 1 {
			dst.SetColored(x+2, y, levelRune(count[c]), platformcore.ColorRed)
		}
	}
}

// healthColor shades enemies from bright red (fresh) to magenta (nearly dead).
func healthColor(health, maxHealth int) platformcore.Color {
	if maxHealth <= 0 {
		return platformcore.ColorBrightRed
	}
	switch frac := float64(health) / float64(maxHealth); {
	case frac > 0.66:
		return platformcore.ColorBrightRed
	case frac > 0.33:
		return platformcore.ColorOrange
	default:
		return platformcore.ColorMagenta
	}
}

func (g *Game) drawCursor(dst *platformcore.Screen, inner platformcore.Rect) {
	x, y := screenPos(inner, g.cursor)
	dst.SetColored(x, y, '[', platformcore.ColorBrightWhite)
	if dst.Get(x+2, y) == PathChar || dst.Get(x+2, y) == ' ' {
		dst.SetColored(x+2, y, ']', platformcore.ColorBrightWhite)
	}
}

// inspect describes the cell under the cursor.
func (g *Game) inspect() string {
	if t, ok := g.sim.TowerAt(g.cursor); ok {
		upgrade := "upgrade locked"
		if t.UpgradeEnabled() {
			upgrade = fmt.Sprintf("upgrade $%d", t.UpgradeCost())
		}
		return fmt.Sprintf("%s L%d  dmg %d  range %.1f  queue %d  %s", t.Kind.Name, t.Level(), t.Damage(), t.Kind.Range, len(t.Queue()), upgrade)
	}
	cell, ok := g.sim.Board().Cell(g.cursor)
	if !ok {
		return ""
	}
	if cell.Buildable() {
		return fmt.Sprintf("%s  buildable", cell.Coord)
	}
	return fmt.Sprintf("%s  %s", cell.Coord, cell.Kind)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *platformcore.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := platformcore.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, platformcore.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
