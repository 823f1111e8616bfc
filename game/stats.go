package game

import (
	"fmt"
	"math"
)

// RunStats are the counters of the current run
type RunStats struct {
	EnemiesSpawned int     `json:"enemiesSpawned" msgpack:"spawned"`
	EnemiesKilled  int     `json:"enemiesKilled" msgpack:"killed"`
	Credits        int     `json:"credits" msgpack:"credits"`
	SecondsAlive   float64 `json:"secondsAlive" msgpack:"seconds"`
}

// Score is 30 points per kill plus one per whole second survived
func (s RunStats) Score() int {
	return 30*s.EnemiesKilled + int(math.Floor(s.SecondsAlive))
}

// String formats the stats for log lines
func (s RunStats) String() string {
	return fmt.Sprintf("kills=%d spawned=%d seconds=%.1f credits=%d score=%d",
		s.EnemiesKilled, s.EnemiesSpawned, s.SecondsAlive, s.Credits, s.Score())
}
