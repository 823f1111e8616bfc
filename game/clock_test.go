package game

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(60, 5)
	step := c.Step()

	if ticks, dropped := c.Advance(3 * step); ticks != 3 || dropped != 0 {
		t.Fatalf("Advance(3 steps) = %d, %d, want 3, 0", ticks, dropped)
	}
	if ticks, _ := c.Advance(step / 2); ticks != 0 {
		t.Fatalf("half a step ran %d ticks", ticks)
	}
	if ticks, _ := c.Advance(step / 2); ticks != 1 {
		t.Fatalf("two half steps ran %d ticks, want 1", ticks)
	}
}

func TestClockCatchUpCap(t *testing.T) {
	c := NewClock(60, 5)
	ticks, dropped := c.Advance(time.Second)
	if ticks != 5 || dropped != 55 {
		t.Fatalf("Advance(1s) = %d, %d, want 5, 55", ticks, dropped)
	}
	// Dropped time is gone, not carried over
	if ticks, _ := c.Advance(0); ticks != 0 {
		t.Fatalf("backlog carried over: %d ticks", ticks)
	}
}

func TestClockTick(t *testing.T) {
	c := NewClock(60, 5)
	start := time.Unix(100, 0)
	if ticks, _ := c.Tick(start); ticks != 0 {
		t.Fatal("first Tick should only start the clock")
	}
	if ticks, _ := c.Tick(start.Add(2 * c.Step())); ticks != 2 {
		t.Fatalf("ticks = %d, want 2", ticks)
	}
}
