package game

import "image/color"

// EntityID is the public, monotonically assigned identifier of a body.
// IDs are never reused within a run.
type EntityID uint64

// InvalidEntityID represents an unset entity reference.
const InvalidEntityID EntityID = 0

// Vec2 is a 2D vector in field coordinates (pixels, y grows downward)
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Size is the width/height of an axis-aligned bounding box
type Size struct {
	W, H float64
}

// Role identifies which behavior an entity runs
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
	RoleProjectile
	roleCount
)

// String returns the role name used in logs, snapshots and autopilot scripts
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleEnemy:
		return "enemy"
	case RoleProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Entity is a simulated body. Kinematics and health are shared by every role;
// exactly one of the role pointers is set, selected by Role.
type Entity struct {
	// Public identifier (monotonic within a run)
	ID EntityID

	// Arena slot and generation, assigned by World.Spawn
	Handle Handle

	// Role tag consulted by the update switch and the collision rule table
	Role Role

	// Center position in field coordinates
	Pos Vec2

	// Velocity in pixels per second
	Vel Vec2

	// Bounding box dimensions
	Size Size

	// Health points (0 or less means dead). Projectiles use it as penetration.
	Health float64

	Player     *PlayerState
	Enemy      *EnemyState
	Projectile *ProjectileState
}

// HalfSize returns half of the bounding box dimensions
func (e *Entity) HalfSize() Size {
	return Size{W: e.Size.W / 2, H: e.Size.H / 2}
}

// IsDead reports whether health has dropped to zero or below
func (e *Entity) IsDead() bool {
	return e.Health <= 0
}

// Integrate advances the position by one explicit Euler step
func (e *Entity) Integrate(dt float64) {
	e.Pos.X += e.Vel.X * dt
	e.Pos.Y += e.Vel.Y * dt
}

// Remove marks the entity for removal at the next flush.
// Queuing the same entity twice is harmless.
func (e *Entity) Remove(q *RemovalQueue) {
	q.Push(e.Handle)
}

// TakeHit subtracts damage from health. It returns true only when this hit
// moved the entity from alive to dead, in which case it is queued for removal.
func (e *Entity) TakeHit(damage float64, q *RemovalQueue) bool {
	wasDead := e.IsDead()
	e.Health -= damage
	if !wasDead && e.IsDead() {
		e.Remove(q)
		return true
	}
	return false
}

// CollidesWith reports whether the two bounding boxes overlap on both axes.
// Touching edges do not count as overlap.
func (e *Entity) CollidesWith(other *Entity) bool {
	a, b := e.HalfSize(), other.HalfSize()
	return e.Pos.X-a.W < other.Pos.X+b.W &&
		e.Pos.X+a.W > other.Pos.X-b.W &&
		e.Pos.Y-a.H < other.Pos.Y+b.H &&
		e.Pos.Y+a.H > other.Pos.Y-b.H
}

// MaxHealth returns the health the entity started with, where the role tracks it
func (e *Entity) MaxHealth() float64 {
	switch e.Role {
	case RolePlayer:
		return e.Player.MaxHealth
	case RoleEnemy:
		return e.Enemy.MaxHealth
	case RoleProjectile:
		return e.Projectile.Penetration
	}
	return 0
}

// Color returns the display color for the entity
func (e *Entity) Color() color.RGBA {
	switch e.Role {
	case RolePlayer:
		return colorPlayer
	case RoleEnemy:
		return e.Enemy.Color
	default:
		return colorProjectile
	}
}

var (
	colorPlayer     = color.RGBA{0, 0, 0, 255}
	colorProjectile = color.RGBA{0, 0, 0, 255}
)

// Update advances the entity by one tick using its role's rule
func (e *Entity) Update(s *Simulation, dt float64) {
	switch e.Role {
	case RolePlayer:
		updatePlayer(e, s, dt)
	case RoleEnemy:
		updateEnemy(e, s, dt)
	case RoleProjectile:
		updateProjectile(e, s, dt)
	}
}
