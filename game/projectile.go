package game

// ProjectileState holds the projectile-specific part of an Entity.
// Remaining penetration lives in Entity.Health.
type ProjectileState struct {
	Strength    float64
	Penetration float64
	Radius      float64
}

// NewProjectile builds a projectile at pos carrying the shooter's strength
// and penetration. The caller registers it.
func NewProjectile(cfg Config, pos Vec2, strength, penetration float64) *Entity {
	r := cfg.Projectile.Size
	return &Entity{
		Role:   RoleProjectile,
		Pos:    pos,
		Size:   Size{W: 2 * r, H: 2 * r},
		Health: penetration,
		Projectile: &ProjectileState{
			Strength:    strength,
			Penetration: penetration,
			Radius:      r,
		},
	}
}

// updateProjectile flies straight up and leaves once above the field
func updateProjectile(e *Entity, s *Simulation, dt float64) {
	if e.Pos.Y < 0 {
		e.Remove(s.world.Removals())
		return
	}
	e.Vel = Vec2{X: 0, Y: -s.cfg.Projectile.Speed}
	e.Integrate(dt)
}
