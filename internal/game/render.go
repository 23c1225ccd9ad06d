package game

import (
	"fmt"

	"github.com/cuhuuhoang/tetrix/internal/core"
	"github.com/cuhuuhoang/tetrix/internal/engine"
)

// Each board column is drawn two runes wide so cells look square in a
// terminal font.
const (
	cellW       = 2
	boardPixelW = engine.Width*cellW + 2 // playfield plus border
	panelW      = 16
	hudHeight   = 2
)

// kindColors maps piece kinds to their display color.
var kindColors = map[engine.Kind]core.Color{
	engine.KindI: core.ColorCyan,
	engine.KindJ: core.ColorBlue,
	engine.KindL: core.ColorOrange,
	engine.KindO: core.ColorYellow,
	engine.KindS: core.ColorGreen,
	engine.KindT: core.ColorMagenta,
	engine.KindZ: core.ColorRed,
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(screen *core.Screen) {
	screen.Clear()

	if g.tooSmall {
		screen.DrawTextCentered(screen.Height()/2, "Terminal too small for Tetrix")
		screen.DrawTextCentered(screen.Height()/2+1,
			fmt.Sprintf("Need at least %dx%d", boardPixelW+panelW+4, engine.Height+2+hudHeight))
		return
	}

	rs := g.eng.RenderState()

	boardX := (screen.Width() - boardPixelW - panelW - 2) / 2
	if boardX < 0 {
		boardX = 0
	}
	boardY := hudHeight

	g.drawHUD(screen, rs)
	g.drawBoard(screen, rs, boardX, boardY)
	g.drawPanel(screen, rs, boardX+boardPixelW+2, boardY)
	g.drawOverlays(screen, rs, boardX, boardY)
}

// drawHUD renders the top status line and separator.
func (g *Game) drawHUD(screen *core.Screen, rs engine.RenderState) {
	hud := fmt.Sprintf(" Score: %d   Level: %d   Lines: %d", rs.Score, rs.Level, rs.Lines)
	screen.DrawText(0, 0, hud)

	controls := "p:pause r:restart q:quit "
	screen.DrawText(screen.Width()-len(controls), 0, controls)

	screen.DrawHLine(0, 1, screen.Width(), '─')
}

// drawBoard renders the bordered playfield with locked cells, the ghost
// landing marker, and the active piece.
func (g *Game) drawBoard(screen *core.Screen, rs engine.RenderState, ox, oy int) {
	screen.DrawBox(core.NewRect(ox, oy, boardPixelW, engine.Height+2))

	for y := range rs.Grid {
		for x, k := range rs.Grid[y] {
			if k != engine.KindNone {
				g.drawCell(screen, ox, oy, x, y, '█', kindColors[k])
			}
		}
	}

	if rs.Piece == nil {
		return
	}

	if g.cfg.Display.ShowGhost && rs.GhostY > rs.Piece.Y {
		g.drawShape(screen, ox, oy, rs.Piece.Shape, rs.Piece.X, rs.GhostY, '░', core.ColorGray)
	}
	g.drawShape(screen, ox, oy, rs.Piece.Shape, rs.Piece.X, rs.Piece.Y, '█', kindColors[rs.Piece.Kind])
}

// drawShape stamps a piece shape onto the board. Rows above the top edge are
// skipped, matching the playfield's hidden spawn area.
func (g *Game) drawShape(screen *core.Screen, ox, oy int, shape engine.Shape, px, py int, r rune, c core.Color) {
	for dy := range shape {
		for dx, filled := range shape[dy] {
			if filled && py+dy >= 0 {
				g.drawCell(screen, ox, oy, px+dx, py+dy, r, c)
			}
		}
	}
}

// drawCell fills one board cell (two runes wide) at grid coordinates (x, y).
func (g *Game) drawCell(screen *core.Screen, ox, oy, x, y int, r rune, c core.Color) {
	sx := ox + 1 + x*cellW
	sy := oy + 1 + y
	screen.SetColor(sx, sy, r, c)
	screen.SetColor(sx+1, sy, r, c)
}

// drawPanel renders the side panel: next-piece preview and session stats.
func (g *Game) drawPanel(screen *core.Screen, rs engine.RenderState, ox, oy int) {
	y := oy
	if g.cfg.Display.ShowNext && rs.Next != engine.KindNone {
		screen.DrawText(ox, y, "Next:")
		shape := engine.ShapeFor(rs.Next)
		for dy := range shape {
			for dx, filled := range shape[dy] {
				if filled {
					screen.SetColor(ox+dx*cellW, y+1+dy, '█', kindColors[rs.Next])
					screen.SetColor(ox+dx*cellW+1, y+1+dy, '█', kindColors[rs.Next])
				}
			}
		}
		y += len(shape) + 2
	}

	screen.DrawText(ox, y, fmt.Sprintf("Score %d", rs.Score))
	screen.DrawText(ox, y+1, fmt.Sprintf("Level %d", rs.Level))
	screen.DrawText(ox, y+2, fmt.Sprintf("Lines %d", rs.Lines))
	screen.DrawText(ox, y+4, fmt.Sprintf("Drop  %dms", rs.DropInterval.Milliseconds()))
}

// drawOverlays renders the pause and game-over banners over the board.
func (g *Game) drawOverlays(screen *core.Screen, rs engine.RenderState, ox, oy int) {
	centerY := oy + engine.Height/2

	banner := func(text string) {
		x := ox + (boardPixelW-len(text))/2
		screen.DrawText(x, centerY, text)
	}

	switch {
	case rs.GameOver:
		banner(" GAME OVER ")
		text := " r:restart q:quit "
		screen.DrawText(ox+(boardPixelW-len(text))/2, centerY+2, text)
	case g.paused:
		banner(" PAUSED ")
	}
}
