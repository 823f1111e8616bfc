package autopilot

import "spaceshooter/game"

// Context is passed to autopilot scripts as input
type Context struct {
	Tick        uint64  `json:"tick"`
	FieldWidth  float64 `json:"fieldWidth"`
	FieldHeight float64 `json:"fieldHeight"`

	Player      BodyInfo      `json:"player"`
	Enemies     []BodyInfo    `json:"enemies"`
	Projectiles []BodyInfo    `json:"projectiles"`
	Upgrades    []UpgradeInfo `json:"upgrades"`

	Credits  int  `json:"credits"`
	GameOver bool `json:"gameOver"`
}

// BodyInfo describes one body
type BodyInfo struct {
	ID     uint64  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Health float64 `json:"health"`
}

// UpgradeInfo describes one upgrade slot
type UpgradeInfo struct {
	Name       string `json:"name"`
	Level      int    `json:"level"`
	MaxLevel   int    `json:"maxLevel"`
	Cost       int    `json:"cost"`
	Affordable bool   `json:"affordable"`
}

// Decision is returned from autopilot scripts
type Decision struct {
	// Movement direction (-1 to 1 for each axis)
	MoveX float64 `json:"moveX"`
	MoveY float64 `json:"moveY"`

	Fire bool `json:"fire"`

	// Upgrade index to buy this tick; absent or negative buys nothing
	Upgrade *int `json:"upgrade,omitempty"`
}

// Controller converts the decision into simulation input
func (d Decision) Controller() game.Controller {
	return game.Controller{MoveX: d.MoveX, MoveY: d.MoveY, Fire: d.Fire}.Clamped()
}

// BuildContext creates a Context from a render frame
func BuildContext(f game.Frame) Context {
	ctx := Context{
		Tick:        f.Tick,
		FieldWidth:  f.FieldWidth,
		FieldHeight: f.FieldHeight,
		Player:      infoOf(f.Player),
		Enemies:     []BodyInfo{},
		Projectiles: []BodyInfo{},
		Upgrades:    make([]UpgradeInfo, len(f.Upgrades)),
		Credits:     f.Stats.Credits,
		GameOver:    f.GameOver,
	}

	for _, b := range f.Bodies {
		switch b.Role {
		case game.RoleEnemy.String():
			ctx.Enemies = append(ctx.Enemies, infoOf(b))
		case game.RoleProjectile.String():
			ctx.Projectiles = append(ctx.Projectiles, infoOf(b))
		}
	}
	for i, u := range f.Upgrades {
		ctx.Upgrades[i] = UpgradeInfo{
			Name:       u.Name,
			Level:      u.Level,
			MaxLevel:   u.MaxLevel,
			Cost:       u.Cost,
			Affordable: u.Affordable,
		}
	}
	return ctx
}

func infoOf(b game.BodyView) BodyInfo {
	return BodyInfo{
		ID:     uint64(b.ID),
		X:      b.X,
		Y:      b.Y,
		W:      b.W,
		H:      b.H,
		Health: b.Health,
	}
}
