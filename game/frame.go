package game

import (
	"image/color"
	"math"
)

// BodyView is the render-facing copy of one live entity
type BodyView struct {
	ID        EntityID   `json:"id" msgpack:"id"`
	Role      string     `json:"role" msgpack:"role"`
	X         float64    `json:"x" msgpack:"x"`
	Y         float64    `json:"y" msgpack:"y"`
	W         float64    `json:"w" msgpack:"w"`
	H         float64    `json:"h" msgpack:"h"`
	Health    float64    `json:"health" msgpack:"health"`
	MaxHealth float64    `json:"maxHealth" msgpack:"max_health"`
	Color     color.RGBA `json:"-" msgpack:"-"`
}

// UpgradeView is the render-facing state of one upgrade
type UpgradeView struct {
	Name       string `json:"name" msgpack:"name"`
	Level      int    `json:"level" msgpack:"level"`
	MaxLevel   int    `json:"maxLevel" msgpack:"max_level"`
	Cost       int    `json:"cost" msgpack:"cost"`
	Affordable bool   `json:"affordable" msgpack:"affordable"`
	Box        Rect   `json:"-" msgpack:"-"`
}

// Frame is a read-only snapshot of the simulation taken after a tick
type Frame struct {
	Tick          uint64        `json:"tick" msgpack:"tick"`
	Run           int           `json:"run" msgpack:"run"`
	FieldWidth    float64       `json:"fieldWidth" msgpack:"-"`
	FieldHeight   float64       `json:"fieldHeight" msgpack:"-"`
	Bodies        []BodyView    `json:"bodies" msgpack:"bodies"`
	Player        BodyView      `json:"player" msgpack:"player"`
	Stats         RunStats      `json:"stats" msgpack:"stats"`
	Score         int           `json:"score" msgpack:"score"`
	HealthPercent float64       `json:"healthPercent" msgpack:"health_pct"`
	Upgrades      []UpgradeView `json:"upgrades" msgpack:"upgrades"`
	GameOver      bool          `json:"gameOver" msgpack:"game_over"`
}

func viewOf(e *Entity) BodyView {
	return BodyView{
		ID:        e.ID,
		Role:      e.Role.String(),
		X:         e.Pos.X,
		Y:         e.Pos.Y,
		W:         e.Size.W,
		H:         e.Size.H,
		Health:    e.Health,
		MaxHealth: e.MaxHealth(),
		Color:     e.Color(),
	}
}

// Frame builds the render snapshot of the current state
func (s *Simulation) Frame() Frame {
	bodies := s.world.Snapshot()
	f := Frame{
		Tick:        s.tick,
		Run:         s.run,
		FieldWidth:  s.cfg.FieldWidth,
		FieldHeight: s.cfg.FieldHeight,
		Bodies:      make([]BodyView, len(bodies)),
		Player:      viewOf(s.player),
		Stats:       s.stats,
		Score:       s.stats.Score(),
		Upgrades:    make([]UpgradeView, len(s.upgrades)),
		GameOver:    s.player.IsDead(),
	}
	for i, e := range bodies {
		f.Bodies[i] = viewOf(e)
	}
	if full := s.player.Player.MaxHealth; full > 0 {
		f.HealthPercent = math.Max(0, s.player.Health/full*100)
	}
	for i, u := range s.upgrades {
		f.Upgrades[i] = UpgradeView{
			Name:       u.Name,
			Level:      u.Level,
			MaxLevel:   u.MaxLevel,
			Cost:       u.CostNow,
			Affordable: u.Affordable(s.stats.Credits),
			Box:        u.Box,
		}
	}
	return f
}
