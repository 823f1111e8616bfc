package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestEnemySpawnX(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		r    float64
		want float64
	}{
		{0, 10},
		{0.5, 200},
		{0.999999, 390},
	}
	for _, tt := range tests {
		if got := enemySpawnX(cfg, tt.r); got != tt.want {
			t.Errorf("enemySpawnX(%g) = %g, want %g", tt.r, got, tt.want)
		}
	}
}

func TestNewEnemyStaysOnScreen(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3))
	half := cfg.Enemy.Width / 2
	for i := 0; i < 500; i++ {
		a := RandomArchetype(cfg.Enemy.Archetypes, rng)
		a.Health = 3
		e := NewEnemy(cfg, a, rng)
		if e.Pos.X-half < 0 || e.Pos.X+half > cfg.FieldWidth {
			t.Fatalf("enemy at x=%g sticks out of the field", e.Pos.X)
		}
		if math.Mod(e.Pos.X, cfg.Enemy.SpawnGridStep) != 0 {
			t.Fatalf("enemy at x=%g not on the spawn grid", e.Pos.X)
		}
		if e.Pos.Y != cfg.Enemy.SpawnY {
			t.Fatalf("enemy y = %g, want %g", e.Pos.Y, cfg.Enemy.SpawnY)
		}
		if e.Size.H != 24 || e.Enemy.MaxHealth != 3 {
			t.Fatalf("height=%g maxHealth=%g, want 24 and 3", e.Size.H, e.Enemy.MaxHealth)
		}
	}
}

func TestEnemyFallsAndShrinks(t *testing.T) {
	s := newTestSimulation(t, nil)
	e := s.World().Spawn(enemyAt(100, 100, 3))
	e.Health = 1

	updateEnemy(e, s, 0.5)
	if e.Pos != (Vec2{X: 100, Y: 120}) {
		t.Fatalf("pos = %+v, want {100 120}", e.Pos)
	}
	if e.Size.H != s.cfg.Enemy.HeightPerHealth {
		t.Fatalf("height = %g, want %g", e.Size.H, s.cfg.Enemy.HeightPerHealth)
	}
}

func TestEnemyLeavesBelowField(t *testing.T) {
	s := newTestSimulation(t, nil)
	e := s.World().Spawn(enemyAt(100, s.cfg.FieldHeight+1, 1))
	before := e.Pos

	updateEnemy(e, s, s.cfg.TickSeconds())
	if !s.World().Removals().Contains(e.Handle) {
		t.Fatal("enemy below the field not queued")
	}
	if e.Pos != before {
		t.Fatal("exiting enemy should not move")
	}
	s.World().Flush()
	if s.Stats().EnemiesKilled != 0 || s.Stats().Credits != 0 {
		t.Fatal("exiting enemy scored")
	}
}

func TestProjectileFliesUpAndLeaves(t *testing.T) {
	s := newTestSimulation(t, nil)
	p := s.World().Spawn(projectileAt(s.cfg, 50, 10, 1, 1))

	updateProjectile(p, s, 0.1)
	if p.Pos.Y != 10-s.cfg.Projectile.Speed*0.1 {
		t.Fatalf("y = %g, want %g", p.Pos.Y, 10-s.cfg.Projectile.Speed*0.1)
	}
	if p.Size != (Size{W: 16, H: 16}) {
		t.Fatalf("size = %+v, want 16x16", p.Size)
	}

	updateProjectile(p, s, 0.1)
	if !s.World().Removals().Contains(p.Handle) {
		t.Fatal("projectile above the field not queued")
	}
}
