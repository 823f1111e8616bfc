package frontend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"spaceshooter/game"
)

var (
	colorField     = color.RGBA{255, 255, 255, 255}
	colorPanel     = color.RGBA{0, 0, 0, 255}
	colorStrip     = color.RGBA{128, 128, 128, 255}
	colorOutline   = color.RGBA{0, 0, 0, 255}
	colorText      = color.RGBA{255, 255, 255, 255}
	colorAffordOK  = color.RGBA{0, 160, 0, 255}
	colorAffordNo  = color.RGBA{160, 0, 0, 255}
	colorHealthBg  = color.RGBA{100, 0, 0, 255}
	colorHealthBar = color.RGBA{0, 255, 0, 255}
	colorGameOver  = color.RGBA{200, 0, 0, 255}
)

// Renderer draws frames onto the canvas: the field on the left, the upgrade
// panel on the right and the stats strip below the field
type Renderer struct {
	face      text.Face
	lineH     float64
	debugGrid bool
	cellSize  float64
}

// NewRenderer creates a renderer using the built-in bitmap font
func NewRenderer(cfg game.Config) *Renderer {
	return &Renderer{
		face:     text.NewGoXFace(basicfont.Face7x13),
		lineH:    15,
		cellSize: cfg.Collision.CellSize,
	}
}

// ToggleGrid shows or hides the broad-phase grid overlay
func (r *Renderer) ToggleGrid() {
	r.debugGrid = !r.debugGrid
}

// Draw renders one frame
func (r *Renderer) Draw(screen *ebiten.Image, f game.Frame) {
	fw, fh := float32(f.FieldWidth), float32(f.FieldHeight)
	sh := screen.Bounds().Dy()

	screen.Fill(colorPanel)
	vector.DrawFilledRect(screen, 0, 0, fw, fh, colorField, false)
	vector.DrawFilledRect(screen, 0, fh, fw, float32(sh)-fh, colorStrip, false)

	if r.debugGrid && r.cellSize > 0 {
		r.drawGrid(screen, f)
	}

	for _, b := range f.Bodies {
		r.drawBody(screen, b)
	}

	r.drawUpgrades(screen, f)
	r.drawStats(screen, f, float64(fh))

	if f.GameOver {
		r.drawText(screen, "Game Over", float64(fw)/2-30, float64(fh)/2-20, colorGameOver)
		r.drawText(screen, "press space to restart", float64(fw)/2-75, float64(fh)/2, colorGameOver)
	}
}

func (r *Renderer) drawBody(screen *ebiten.Image, b game.BodyView) {
	x := float32(b.X - b.W/2)
	y := float32(b.Y - b.H/2)
	w, h := float32(b.W), float32(b.H)

	switch b.Role {
	case game.RoleProjectile.String():
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), w/2, b.Color, true)
	case game.RoleEnemy.String():
		vector.DrawFilledRect(screen, x, y, w, h, b.Color, false)
		vector.StrokeRect(screen, x, y, w, h, 1, colorOutline, false)
	default:
		vector.DrawFilledRect(screen, x, y, w, h, b.Color, false)
	}
}

func (r *Renderer) drawUpgrades(screen *ebiten.Image, f game.Frame) {
	for i, u := range f.Upgrades {
		bg := colorAffordNo
		if u.Affordable {
			bg = colorAffordOK
		}
		bx, by := float32(u.Box.X), float32(u.Box.Y)
		vector.DrawFilledRect(screen, bx, by, float32(u.Box.W), float32(u.Box.H), bg, false)

		level := fmt.Sprintf("Level %d/%d", u.Level, u.MaxLevel)
		cost := fmt.Sprintf("Cost: %d", u.Cost)
		if u.Level >= u.MaxLevel {
			cost = "Maxed"
		}
		tx, ty := u.Box.X+8, u.Box.Y+8
		r.drawText(screen, fmt.Sprintf("[%d] %s", i+1, u.Name), tx, ty, colorText)
		r.drawText(screen, level, tx, ty+r.lineH, colorText)
		r.drawText(screen, cost, tx, ty+2*r.lineH, colorText)
	}
}

func (r *Renderer) drawStats(screen *ebiten.Image, f game.Frame, top float64) {
	s := f.Stats
	lines := []string{
		fmt.Sprintf("Kills: %d   Spawned: %d", s.EnemiesKilled, s.EnemiesSpawned),
		fmt.Sprintf("Time: %.1fs   Score: %d", s.SecondsAlive, f.Score),
		fmt.Sprintf("Credits: %d   Run: %d", s.Credits, f.Run),
	}
	for i, l := range lines {
		r.drawText(screen, l, 10, top+8+float64(i)*r.lineH, colorText)
	}

	// Health bar along the bottom of the strip
	barW := float32(f.FieldWidth - 20)
	barY := float32(top) + 8 + 3*float32(r.lineH) + 8
	vector.DrawFilledRect(screen, 10, barY, barW, 12, colorHealthBg, false)
	vector.DrawFilledRect(screen, 10, barY, barW*float32(f.HealthPercent/100), 12, colorHealthBar, false)
}

func (r *Renderer) drawGrid(screen *ebiten.Image, f game.Frame) {
	grid := color.RGBA{220, 220, 220, 255}
	for x := r.cellSize; x < f.FieldWidth; x += r.cellSize {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(f.FieldHeight), 1, grid, false)
	}
	for y := r.cellSize; y < f.FieldHeight; y += r.cellSize {
		vector.StrokeLine(screen, 0, float32(y), float32(f.FieldWidth), float32(y), 1, grid, false)
	}
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}
