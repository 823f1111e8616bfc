package game

import "math"

// Controller is the movement/action intent written by an input collaborator
// between ticks. Axes are in [-1, 1].
type Controller struct {
	MoveX float64 `json:"moveX"`
	MoveY float64 `json:"moveY"`
	Fire  bool    `json:"fire"`
}

// Clamped returns the controller with both axes limited to [-1, 1]
func (c Controller) Clamped() Controller {
	c.MoveX = math.Max(-1, math.Min(1, c.MoveX))
	c.MoveY = math.Max(-1, math.Min(1, c.MoveY))
	return c
}

// PlayerState holds the player-specific part of an Entity
type PlayerState struct {
	Controller Controller

	MaxHealth          float64
	Speed              float64
	ShotsPerSecond     float64
	ProjectileStrength float64
	ShotCollisions     float64

	// Cooldown counts ticks until the next shot may fire
	Cooldown float64

	// TicksPerShot is TickRate / ShotsPerSecond
	TicksPerShot float64

	tickRate float64
}

// NewPlayer creates the player ship at the bottom-center of the field
func NewPlayer(cfg Config) *Entity {
	p := &PlayerState{
		MaxHealth:          cfg.Player.Health,
		Speed:              cfg.Player.Speed,
		ProjectileStrength: cfg.Player.Strength,
		ShotCollisions:     cfg.Player.ShotCollisions,
		tickRate:           float64(cfg.TickRate),
	}
	p.SetShotsPerSecond(cfg.Player.ShotsPerSecond)

	return &Entity{
		Role:   RolePlayer,
		Pos:    Vec2{X: cfg.FieldWidth / 2, Y: cfg.FieldHeight - cfg.Player.Margin},
		Size:   Size{W: cfg.Player.Width, H: cfg.Player.Height},
		Health: cfg.Player.Health,
		Player: p,
	}
}

// SetShotsPerSecond changes the fire rate and recomputes the cooldown window.
// Rates below one shot per second are clamped to one.
func (p *PlayerState) SetShotsPerSecond(sps float64) {
	p.ShotsPerSecond = math.Max(1, sps)
	p.TicksPerShot = p.tickRate / p.ShotsPerSecond
}

// Velocity returns the velocity the controller asks for. Diagonal movement
// is normalized so the ship never moves faster than Speed.
func (p *PlayerState) Velocity() Vec2 {
	c := p.Controller
	switch {
	case c.MoveX == 0 && c.MoveY == 0:
		return Vec2{}
	case c.MoveX == 0:
		return Vec2{X: 0, Y: p.Speed * c.MoveY}
	case c.MoveY == 0:
		return Vec2{X: p.Speed * c.MoveX, Y: 0}
	default:
		diag := p.Speed / math.Sqrt2
		return Vec2{X: diag * c.MoveX, Y: diag * c.MoveY}
	}
}

// updatePlayer handles shooting, then movement, then clamps to the field
func updatePlayer(e *Entity, s *Simulation, dt float64) {
	p := e.Player

	// Shoot when the cooldown has run out
	if p.Cooldown <= 0 {
		if p.Controller.Fire {
			p.Cooldown = p.TicksPerShot
			s.world.Spawn(NewProjectile(s.cfg, e.Pos, p.ProjectileStrength, p.ShotCollisions))
		}
	} else {
		p.Cooldown--
	}

	e.Vel = p.Velocity()
	e.Integrate(dt)

	m := s.cfg.Player.Margin
	e.Pos.X = clamp(e.Pos.X, m, s.cfg.FieldWidth-m)
	e.Pos.Y = clamp(e.Pos.Y, m, s.cfg.FieldHeight-m)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(lo, v), hi)
}
