package game

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStepAdvancesTickAndTime(t *testing.T) {
	s := newTestSimulation(t, nil)
	s.Step()
	if s.Tick() != 1 {
		t.Fatalf("tick after 1 step = %d, want 1", s.Tick())
	}
	if got, want := s.Stats().SecondsAlive, s.Config().TickSeconds(); got != want {
		t.Fatalf("seconds alive = %g, want %g", got, want)
	}

	for i := 0; i < 19; i++ {
		s.Step()
	}
	if s.Stats().EnemiesSpawned != 1 {
		t.Fatalf("spawned after 20 ticks = %d, want 1", s.Stats().EnemiesSpawned)
	}
	enemies := 0
	for _, e := range s.World().Snapshot() {
		if e.Role == RoleEnemy {
			enemies++
		}
	}
	if enemies != 1 {
		t.Fatalf("enemies in world = %d, want 1", enemies)
	}
}

func TestClickBuysUpgrade(t *testing.T) {
	s := newTestSimulation(t, nil)
	s.stats.Credits = 20

	s.Click(500, 60)
	s.Step()

	u := s.Upgrades()[0]
	if u.Level != 2 || u.CostNow != 16 {
		t.Fatalf("level=%d cost=%d, want 2 and 16", u.Level, u.CostNow)
	}
	if s.Stats().Credits != 12 {
		t.Fatalf("credits = %d, want 12", s.Stats().Credits)
	}
	if s.Player().Player.ShotsPerSecond != 2 {
		t.Fatalf("shots/second = %g, want 2", s.Player().Player.ShotsPerSecond)
	}

	// The click was consumed by that tick
	s.Step()
	if u.Level != 2 {
		t.Fatal("click applied twice")
	}
}

func TestClickOutsideBoxes(t *testing.T) {
	s := newTestSimulation(t, nil)
	s.stats.Credits = 100
	s.Click(200, 200)
	s.Click(425, 60)
	s.Step()
	for _, u := range s.Upgrades() {
		if u.Level != 1 {
			t.Fatalf("%s bought by a click outside its box", u.Name)
		}
	}
	if s.Stats().Credits != 100 {
		t.Fatalf("credits = %d, want 100", s.Stats().Credits)
	}
}

func TestRequestUpgrade(t *testing.T) {
	s := newTestSimulation(t, nil)
	s.stats.Credits = 8
	s.RequestUpgrade(1)
	s.RequestUpgrade(99)
	s.Step()
	if s.Player().Player.Speed != 100 {
		t.Fatalf("speed = %g, want 100", s.Player().Player.Speed)
	}
	if s.Stats().Credits != 0 {
		t.Fatalf("credits = %d, want 0", s.Stats().Credits)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	s, err := NewSimulation(cfg, WithLogger(log.New(&buf, "", 0)))
	if err != nil {
		t.Fatal(err)
	}
	s.stats.Credits = 8
	s.RequestUpgrade(2)
	s.Step()

	// An enemy parked on the player kills it in ten ticks
	p := s.Player()
	for i := 0; i < 10; i++ {
		s.World().Spawn(enemyAt(p.Pos.X, p.Pos.Y, 1))
		s.Step()
	}
	if !s.GameOver() {
		t.Fatalf("player alive with health %g", p.Health)
	}
	if s.World().Contains(p.Handle) {
		t.Fatal("dead player still registered")
	}
	if !strings.Contains(buf.String(), "run 1 over") {
		t.Fatalf("game over not logged: %q", buf.String())
	}

	// Dead: ticks do nothing until fire is held
	seconds := s.Stats().SecondsAlive
	s.Step()
	if s.Stats().SecondsAlive != seconds || s.Run() != 1 {
		t.Fatal("simulation advanced while the player was dead")
	}

	s.SetController(Controller{Fire: true})
	s.Step()
	if s.Run() != 2 || s.GameOver() {
		t.Fatalf("run=%d gameOver=%v after restart", s.Run(), s.GameOver())
	}
	if s.Stats() != (RunStats{}) {
		t.Fatalf("stats not reset: %+v", s.Stats())
	}
	if s.World().Len() != 1 {
		t.Fatalf("world has %d entities after restart, want 1", s.World().Len())
	}
	if s.Upgrades()[2].Level != 1 || s.Player().Player.ProjectileStrength != 1 {
		t.Fatal("upgrades not reset")
	}
	if s.Player().Health != cfg.Player.Health {
		t.Fatalf("new player health = %g", s.Player().Health)
	}
}

func TestRemovedIDsStayAbsent(t *testing.T) {
	s := newTestSimulation(t, func(c *Config) {
		c.Player.Health = 1e9
	})
	s.SetController(Controller{MoveX: 1, Fire: true})

	seen := map[EntityID]bool{}
	gone := map[EntityID]bool{}
	for tick := 0; tick < 3000; tick++ {
		if tick%200 == 0 {
			s.SetController(Controller{MoveX: -s.Controller().MoveX, Fire: true})
		}
		s.Step()

		if s.World().Removals().Len() != 0 {
			t.Fatalf("tick %d: removal queue not empty after step", tick)
		}
		current := map[EntityID]bool{}
		for _, e := range s.World().Snapshot() {
			if e.IsDead() {
				t.Fatalf("tick %d: dead entity %d still registered", tick, e.ID)
			}
			if gone[e.ID] {
				t.Fatalf("tick %d: entity %d came back", tick, e.ID)
			}
			current[e.ID] = true
			seen[e.ID] = true
		}
		for id := range seen {
			if !current[id] {
				gone[id] = true
			}
		}
	}
	if s.Stats().EnemiesKilled == 0 {
		t.Fatal("no kills in 50 seconds of firing")
	}
	if s.Stats().Credits < s.Stats().EnemiesKilled {
		t.Fatalf("credits %d below kills %d", s.Stats().Credits, s.Stats().EnemiesKilled)
	}
}

func TestFrame(t *testing.T) {
	s := newTestSimulation(t, nil)
	s.Step()
	f := s.Frame()

	if f.Tick != 1 || f.GameOver {
		t.Fatalf("tick=%d gameOver=%v", f.Tick, f.GameOver)
	}
	if f.HealthPercent != 100 {
		t.Fatalf("health percent = %g, want 100", f.HealthPercent)
	}
	if len(f.Bodies) != 1 || f.Bodies[0].Role != "player" {
		t.Fatalf("bodies = %+v, want just the player", f.Bodies)
	}
	if len(f.Upgrades) != 4 {
		t.Fatalf("upgrades = %d, want 4", len(f.Upgrades))
	}
	for _, u := range f.Upgrades {
		if u.Affordable || u.Level != 1 || u.Cost != 8 {
			t.Fatalf("upgrade view %+v", u)
		}
	}

	s.stats.EnemiesKilled = 2
	s.stats.SecondsAlive = 12.7
	if got := s.Frame().Score; got != 72 {
		t.Fatalf("score = %d, want 72", got)
	}
}

func TestNewSimulationRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 0
	if _, err := NewSimulation(cfg); err == nil {
		t.Fatal("expected an error for tick_rate 0")
	}
}

func TestSeedReplaysRun(t *testing.T) {
	cfg := DefaultConfig()
	first, err := NewSimulation(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if first.Seed() == 0 {
		t.Fatal("clock-seeded simulation reports seed 0")
	}

	cfg.Seed = first.Seed()
	replay, err := NewSimulation(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if replay.Seed() != cfg.Seed {
		t.Fatalf("seed = %d, want %d", replay.Seed(), cfg.Seed)
	}

	for i := 0; i < 300; i++ {
		first.Step()
		replay.Step()
	}
	a, b := first.Frame(), replay.Frame()
	if len(a.Bodies) != len(b.Bodies) || a.Stats != b.Stats {
		t.Fatalf("replay diverged: %d bodies %+v vs %d bodies %+v", len(a.Bodies), a.Stats, len(b.Bodies), b.Stats)
	}
	for i := range a.Bodies {
		if a.Bodies[i].X != b.Bodies[i].X || a.Bodies[i].Y != b.Bodies[i].Y {
			t.Fatalf("body %d at (%g, %g), replay at (%g, %g)", i, a.Bodies[i].X, a.Bodies[i].Y, b.Bodies[i].X, b.Bodies[i].Y)
		}
	}
}
