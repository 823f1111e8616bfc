package game

import (
	"image/color"
	"math"
)

// EnemyState holds the enemy-specific part of an Entity
type EnemyState struct {
	Archetype string
	Speed     float64
	MaxHealth float64
	Color     color.RGBA
}

// NewEnemy builds an enemy from an (already modified) archetype copy at a
// random grid-aligned column just above the field. The caller registers it.
func NewEnemy(cfg Config, a EnemyArchetype, rng randSource) *Entity {
	e := &Entity{
		Role:   RoleEnemy,
		Health: a.Health,
		Size: Size{
			W: cfg.Enemy.Width,
			H: cfg.Enemy.HeightPerHealth * a.Health,
		},
		Enemy: &EnemyState{
			Archetype: a.Name,
			Speed:     a.Speed,
			MaxHealth: a.Health,
			Color:     a.RGBA(),
		},
	}
	e.Pos = Vec2{X: enemySpawnX(cfg, rng.Float64()), Y: cfg.Enemy.SpawnY}
	return e
}

// enemySpawnX maps r in [0,1) to a column that keeps the whole body inside
// the field, snapped to the spawn grid step
func enemySpawnX(cfg Config, r float64) float64 {
	margin := cfg.Enemy.Width / 2
	step := cfg.Enemy.SpawnGridStep
	if step <= 0 {
		step = 1
	}
	columns := math.Floor((cfg.FieldWidth - 2*margin) / step)
	if columns < 1 {
		return cfg.FieldWidth / 2
	}
	return margin + step*math.Floor(r*(columns+1))
}

// updateEnemy moves the enemy straight down; below the field it leaves
// without scoring
func updateEnemy(e *Entity, s *Simulation, dt float64) {
	if e.Pos.Y > s.cfg.FieldHeight {
		e.Remove(s.world.Removals())
		return
	}

	// Height tracks remaining health
	e.Size.H = s.cfg.Enemy.HeightPerHealth * e.Health

	e.Vel = Vec2{X: 0, Y: e.Enemy.Speed}
	e.Integrate(dt)
}
