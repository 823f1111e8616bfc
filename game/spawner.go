package game

import "math"

// randSource is the subset of *rand.Rand the simulation draws from
type randSource interface {
	Float64() float64
	Intn(n int) int
}

// EnemySpawner creates enemies at a rate that escalates with elapsed run time.
// Every Window seconds the spawn rate, the speed modifier and the maximum
// rollable health each step up.
type EnemySpawner struct {
	cfg     Config
	rng     randSource
	counter int
	elapsed float64

	// rate is the current enemies-per-second, recomputed every tick
	rate int
}

// NewEnemySpawner creates a spawner at difficulty level zero
func NewEnemySpawner(cfg Config, rng randSource) *EnemySpawner {
	return &EnemySpawner{
		cfg:  cfg,
		rng:  rng,
		rate: SpawnRate(cfg.Spawner, 0),
	}
}

// Level returns the number of whole windows survived at elapsed seconds
func Level(sc SpawnerConfig, elapsed float64) int {
	if sc.Window <= 0 {
		return 0
	}
	return int(math.Floor(elapsed / sc.Window))
}

// SpawnRate returns enemies per second at elapsed seconds (never below 1)
func SpawnRate(sc SpawnerConfig, elapsed float64) int {
	return max(1, sc.BaseRate+Level(sc, elapsed))
}

// SpeedModifier returns the archetype speed multiplier at elapsed seconds
// (never below 1)
func SpeedModifier(sc SpawnerConfig, elapsed float64) int {
	return max(1, min(sc.MaxSpeedModifier, 1+Level(sc, elapsed)))
}

// RollHealth rolls an enemy's health at elapsed seconds; r is in [0,1).
// The result is never below 1, so spawned enemies are always alive.
func RollHealth(sc SpawnerConfig, elapsed, r float64) float64 {
	h := math.Ceil(1 + r*float64(Level(sc, elapsed)))
	return math.Max(1, math.Min(float64(sc.MaxEnemyHealth), h))
}

// Elapsed returns the simulated seconds the spawner has run
func (sp *EnemySpawner) Elapsed() float64 {
	return sp.elapsed
}

// Rate returns the current enemies-per-second
func (sp *EnemySpawner) Rate() int {
	return sp.rate
}

// Update advances the spawner by one tick and returns the spawned enemy, if any.
// The caller registers the enemy and counts it.
func (sp *EnemySpawner) Update(dt float64) *Entity {
	sp.counter++
	sp.elapsed += dt

	// Recompute before the threshold test so rate changes apply immediately
	sp.rate = SpawnRate(sp.cfg.Spawner, sp.elapsed)
	ticksPerSpawn := float64(sp.cfg.TickRate) / float64(sp.rate)

	if float64(sp.counter) < ticksPerSpawn {
		return nil
	}
	sp.counter = 0

	a := RandomArchetype(sp.cfg.Enemy.Archetypes, sp.rng)
	a.Speed *= float64(SpeedModifier(sp.cfg.Spawner, sp.elapsed))
	a.Health = RollHealth(sp.cfg.Spawner, sp.elapsed, sp.rng.Float64())
	return NewEnemy(sp.cfg, a, sp.rng)
}
