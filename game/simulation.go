package game

import (
	"io"
	"log"
	"math/rand"
	"time"
)

// Simulation owns all state of a run and advances it one fixed tick at a time.
// It is not safe for concurrent use.
type Simulation struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	world      *World
	stats      RunStats
	spawner    *EnemySpawner
	collisions *CollisionSystem
	player     *Entity
	upgrades   []*Upgrade

	// Input written between ticks
	controller      Controller
	pendingClick    *Vec2
	pendingUpgrades []int

	seed      int64
	tick      uint64
	run       int
	overShown bool
}

// Option configures a Simulation
type Option func(*Simulation)

// WithLogger sets the logger used for run lifecycle messages
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		s.logger = l
	}
}

// WithRand replaces the RNG seeded from Config.Seed
func WithRand(r *rand.Rand) Option {
	return func(s *Simulation) {
		s.rng = r
	}
}

// NewSimulation validates cfg and starts the first run
func NewSimulation(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed = cfg.Seed
	if s.rng == nil {
		if s.seed == 0 {
			s.seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(s.seed))
	}

	s.upgrades = NewUpgrades(cfg)
	s.Restart()
	return s, nil
}

// Restart discards the current run and starts a fresh one
func (s *Simulation) Restart() {
	s.world = NewWorld()
	s.stats = RunStats{}
	s.spawner = NewEnemySpawner(s.cfg, s.rng)
	s.collisions = NewCollisionSystem(s.cfg, &s.stats, s.world.Removals())
	s.player = s.world.Spawn(NewPlayer(s.cfg))
	for _, u := range s.upgrades {
		u.Reset()
	}
	s.pendingClick = nil
	s.pendingUpgrades = s.pendingUpgrades[:0]
	s.overShown = false
	s.run++

	s.logger.Printf("run %d started", s.run)
}

// SetController replaces the controller snapshot used by the next tick
func (s *Simulation) SetController(c Controller) {
	s.controller = c.Clamped()
}

// Controller returns the current controller snapshot
func (s *Simulation) Controller() Controller {
	return s.controller
}

// Click records a pointer click in canvas coordinates. Only the latest click
// before a tick is kept; it is consumed by that tick.
func (s *Simulation) Click(x, y float64) {
	s.pendingClick = &Vec2{X: x, Y: y}
}

// RequestUpgrade queues a purchase of the upgrade at index i for the next tick
func (s *Simulation) RequestUpgrade(i int) {
	if i < 0 || i >= len(s.upgrades) {
		return
	}
	s.pendingUpgrades = append(s.pendingUpgrades, i)
}

// Step advances the simulation by one tick. While the player is dead it only
// watches for the restart signal (fire held).
func (s *Simulation) Step() {
	s.tick++

	if s.player.IsDead() {
		s.pendingClick = nil
		s.pendingUpgrades = s.pendingUpgrades[:0]
		if s.controller.Fire {
			s.Restart()
		}
		return
	}

	s.applyPurchases()

	dt := s.cfg.TickSeconds()
	s.stats.SecondsAlive += dt
	s.player.Player.Controller = s.controller

	// Updates, then collisions, both over the tick-start membership
	bodies := s.world.Snapshot()
	for _, e := range bodies {
		if e.IsDead() {
			continue
		}
		e.Update(s, dt)
	}
	s.collisions.Resolve(bodies)
	s.world.Flush()

	if e := s.spawner.Update(dt); e != nil {
		s.world.Spawn(e)
		s.stats.EnemiesSpawned++
	}

	if s.player.IsDead() && !s.overShown {
		s.overShown = true
		s.logger.Printf("run %d over: %s", s.run, s.stats)
	}
}

// applyPurchases consumes the pending click and keyboard requests
func (s *Simulation) applyPurchases() {
	if c := s.pendingClick; c != nil {
		s.pendingClick = nil
		for _, u := range s.upgrades {
			if u.Box.Contains(c.X, c.Y) {
				s.purchase(u)
			}
		}
	}
	for _, i := range s.pendingUpgrades {
		s.purchase(s.upgrades[i])
	}
	s.pendingUpgrades = s.pendingUpgrades[:0]
}

func (s *Simulation) purchase(u *Upgrade) {
	cost := u.CostNow
	if u.Purchase(&s.stats, s.player.Player) {
		s.logger.Printf("bought %s level %d for %d credits", u.Name, u.Level, cost)
	}
}

// Config returns the configuration the simulation runs with
func (s *Simulation) Config() Config {
	return s.cfg
}

// World returns the entity registry of the current run
func (s *Simulation) World() *World {
	return s.world
}

// Player returns the player entity of the current run
func (s *Simulation) Player() *Entity {
	return s.player
}

// Stats returns the counters of the current run
func (s *Simulation) Stats() RunStats {
	return s.stats
}

// Upgrades returns the upgrade list in panel order
func (s *Simulation) Upgrades() []*Upgrade {
	return s.upgrades
}

// Spawner returns the enemy spawner of the current run
func (s *Simulation) Spawner() *EnemySpawner {
	return s.spawner
}

// GameOver reports whether the player is dead
func (s *Simulation) GameOver() bool {
	return s.player.IsDead()
}

// Seed returns the seed the RNG was created from. When Config.Seed is 0 this
// is the clock-derived seed, so a run can be replayed by setting it. With
// WithRand it is Config.Seed unchanged.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Tick returns the number of Step calls since the simulation was created
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Run returns the 1-based number of the current run
func (s *Simulation) Run() int {
	return s.run
}
