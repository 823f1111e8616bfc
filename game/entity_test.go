package game

import (
	"math/rand"
	"testing"
)

func box(x, y, w, h float64) *Entity {
	return &Entity{Pos: Vec2{X: x, Y: y}, Size: Size{W: w, H: h}, Health: 1}
}

func TestCollidesWith(t *testing.T) {
	tests := []struct {
		name string
		a, b *Entity
		want bool
	}{
		{"same center", box(10, 10, 4, 4), box(10, 10, 2, 2), true},
		{"partial overlap", box(10, 10, 10, 10), box(17, 12, 10, 10), true},
		{"touching x edges", box(10, 10, 10, 10), box(20, 10, 10, 10), false},
		{"touching y edges", box(10, 10, 10, 10), box(10, 20, 10, 10), false},
		{"overlap x only", box(10, 10, 10, 10), box(12, 30, 10, 10), false},
		{"far apart", box(0, 0, 1, 1), box(100, 100, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.CollidesWith(tt.b); got != tt.want {
				t.Errorf("a.CollidesWith(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.CollidesWith(tt.a); got != tt.want {
				t.Errorf("b.CollidesWith(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollidesWithSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		a := box(rng.Float64()*50, rng.Float64()*50, 1+rng.Float64()*20, 1+rng.Float64()*20)
		b := box(rng.Float64()*50, rng.Float64()*50, 1+rng.Float64()*20, 1+rng.Float64()*20)
		if a.CollidesWith(b) != b.CollidesWith(a) {
			t.Fatalf("asymmetric result for %+v / %+v", a, b)
		}
	}
}

func TestTakeHitReportsKillOnce(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(box(0, 0, 1, 1))
	e.Health = 2

	if e.TakeHit(1, w.Removals()) {
		t.Fatal("first hit reported a kill with health left")
	}
	if w.Removals().Len() != 0 {
		t.Fatalf("queue length = %d, want 0", w.Removals().Len())
	}
	if !e.TakeHit(1, w.Removals()) {
		t.Fatal("second hit should report the kill")
	}
	if e.TakeHit(5, w.Removals()) {
		t.Fatal("hit on a dead entity reported another kill")
	}
	if w.Removals().Len() != 1 {
		t.Fatalf("queue length = %d, want 1", w.Removals().Len())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(box(0, 0, 1, 1))
	e.Remove(w.Removals())
	e.Remove(w.Removals())

	if n := w.Flush(); n != 1 {
		t.Fatalf("Flush removed %d entities, want 1", n)
	}
	if _, ok := w.Lookup(e.ID); ok {
		t.Fatal("entity still registered after flush")
	}

	// Removing again after the flush is a no-op
	e.Remove(w.Removals())
	if n := w.Flush(); n != 0 {
		t.Fatalf("Flush of stale handle removed %d entities, want 0", n)
	}
}

func TestIntegrate(t *testing.T) {
	e := box(10, 20, 1, 1)
	e.Vel = Vec2{X: 60, Y: -30}
	e.Integrate(0.5)
	if e.Pos != (Vec2{X: 40, Y: 5}) {
		t.Fatalf("Pos = %+v, want {40 5}", e.Pos)
	}
}
