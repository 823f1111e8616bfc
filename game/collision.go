package game

// collisionRule is applied to an ordered pair of overlapping, live bodies
type collisionRule func(c *CollisionSystem, e1, e2 *Entity)

// collisionRules is the interaction matrix keyed by (e1.Role, e2.Role).
// Nil entries are no-ops.
var collisionRules = [roleCount][roleCount]collisionRule{
	RolePlayer: {
		RoleEnemy: ramEnemy,
	},
	RoleEnemy: {
		RolePlayer: hitPlayer,
	},
	RoleProjectile: {
		RoleEnemy: hitEnemy,
	},
}

// CollisionSystem resolves collisions between the bodies of one tick
type CollisionSystem struct {
	cfg      Config
	stats    *RunStats
	removals *RemovalQueue
	grid     *Grid

	candidates []int
}

// NewCollisionSystem creates a collision system that writes kills and credits
// into stats and queues removals on q
func NewCollisionSystem(cfg Config, stats *RunStats, q *RemovalQueue) *CollisionSystem {
	c := &CollisionSystem{
		cfg:      cfg,
		stats:    stats,
		removals: q,
	}
	if cfg.Collision.BroadPhase {
		c.grid = NewGrid(cfg.FieldWidth, cfg.FieldHeight, cfg.Collision.CellSize)
	}
	return c
}

// Resolve visits every ordered pair of distinct bodies in snapshot order and
// applies the matching rule to overlapping pairs. With the broad phase enabled
// only pairs in neighboring grid cells are tested, in the same order.
func (c *CollisionSystem) Resolve(bodies []*Entity) {
	if c.grid == nil {
		c.resolveAll(bodies)
		return
	}

	c.grid.Build(bodies, c.cfg.Collision.CellSize)
	for i, e1 := range bodies {
		c.candidates = c.grid.Candidates(i, c.candidates)
		for _, j := range c.candidates {
			c.HandleCollision(e1, bodies[j])
		}
	}
}

func (c *CollisionSystem) resolveAll(bodies []*Entity) {
	for i, e1 := range bodies {
		for j, e2 := range bodies {
			if i == j {
				continue
			}
			c.HandleCollision(e1, e2)
		}
	}
}

// HandleCollision applies the rule for (e1, e2) if both are alive and overlap
func (c *CollisionSystem) HandleCollision(e1, e2 *Entity) {
	rule := collisionRules[e1.Role][e2.Role]
	if rule == nil {
		return
	}
	if e1.IsDead() || e2.IsDead() {
		return
	}
	if !e1.CollidesWith(e2) {
		return
	}
	rule(c, e1, e2)
}

// ramEnemy destroys an enemy the player flies into. No kill or credit is awarded.
func ramEnemy(c *CollisionSystem, player, enemy *Entity) {
	enemy.Remove(c.removals)
}

// hitPlayer damages the player when an enemy reaches it
func hitPlayer(c *CollisionSystem, enemy, player *Entity) {
	player.TakeHit(c.cfg.Player.DamagePerHit, c.removals)
}

// hitEnemy applies projectile damage and spends one point of penetration
func hitEnemy(c *CollisionSystem, projectile, enemy *Entity) {
	if enemy.TakeHit(projectile.Projectile.Strength, c.removals) {
		c.stats.EnemiesKilled++
		c.stats.Credits += int(enemy.Enemy.MaxHealth)
	}
	projectile.TakeHit(1, c.removals)
}
