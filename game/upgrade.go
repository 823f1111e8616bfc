package game

// UpgradeKind selects the player stat an upgrade raises
type UpgradeKind string

const (
	UpgradeShotsPerSecond UpgradeKind = "shots_per_second"
	UpgradeSpeed          UpgradeKind = "speed"
	UpgradeDamage         UpgradeKind = "damage"
	UpgradePenetration    UpgradeKind = "penetration"
)

// upgradeEffects maps each kind to the mutation applied on purchase
var upgradeEffects = map[UpgradeKind]func(p *PlayerState, amount float64){
	UpgradeShotsPerSecond: func(p *PlayerState, amount float64) {
		p.SetShotsPerSecond(p.ShotsPerSecond + amount)
	},
	UpgradeSpeed: func(p *PlayerState, amount float64) {
		p.Speed += amount
	},
	UpgradeDamage: func(p *PlayerState, amount float64) {
		p.ProjectileStrength += amount
	},
	UpgradePenetration: func(p *PlayerState, amount float64) {
		p.ShotCollisions += amount
	},
}

// DefaultUpgrades returns the four upgrades in panel order
func DefaultUpgrades() []UpgradeConfig {
	return []UpgradeConfig{
		{Kind: UpgradeShotsPerSecond, Name: "Shots/Second", MaxLevel: 4, Cost: 8, Amount: 1},
		{Kind: UpgradeSpeed, Name: "Speed", MaxLevel: 5, Cost: 8, Amount: 25},
		{Kind: UpgradeDamage, Name: "Damage", MaxLevel: 5, Cost: 8, Amount: 1},
		{Kind: UpgradePenetration, Name: "Shot Penetration", MaxLevel: 3, Cost: 8, Amount: 1},
	}
}

// Rect is an axis-aligned screen rectangle anchored at its top-left corner
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies strictly inside the rectangle
func (r Rect) Contains(x, y float64) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

// Upgrade panel geometry, relative to the panel's left edge
const (
	upgradeBoxWidth   = 150
	upgradeBoxHeight  = 75
	upgradeBoxMarginX = 25
	upgradeBoxMarginY = 25
	upgradeBoxPitch   = 100
)

// Upgrade is a purchasable, leveled run upgrade
type Upgrade struct {
	UpgradeConfig

	Level   int
	CostNow int

	// Box is the clickable area in canvas coordinates
	Box Rect
}

// NewUpgrades builds the upgrade list with boxes stacked in the panel right
// of the field
func NewUpgrades(cfg Config) []*Upgrade {
	ups := make([]*Upgrade, len(cfg.Upgrades))
	for i, uc := range cfg.Upgrades {
		ups[i] = &Upgrade{
			UpgradeConfig: uc,
			Box: Rect{
				X: cfg.FieldWidth + upgradeBoxMarginX,
				Y: upgradeBoxMarginY + float64(i*upgradeBoxPitch),
				W: upgradeBoxWidth,
				H: upgradeBoxHeight,
			},
		}
		ups[i].Reset()
	}
	return ups
}

// Reset puts the upgrade back to level 1 at its original cost
func (u *Upgrade) Reset() {
	u.Level = 1
	u.CostNow = u.Cost
}

// Maxed reports whether the upgrade has reached its last level
func (u *Upgrade) Maxed() bool {
	return u.Level >= u.MaxLevel
}

// Affordable reports whether a purchase would succeed with the given credits
func (u *Upgrade) Affordable(credits int) bool {
	return !u.Maxed() && credits >= u.CostNow
}

// Purchase buys the next level if possible: it spends credits, doubles the
// cost and applies the effect to the player. A failed attempt changes nothing.
func (u *Upgrade) Purchase(stats *RunStats, p *PlayerState) bool {
	if !u.Affordable(stats.Credits) {
		return false
	}
	effect, ok := upgradeEffects[u.Kind]
	if !ok {
		return false
	}
	u.Level++
	stats.Credits -= u.CostNow
	u.CostNow *= 2
	effect(p, u.Amount)
	return true
}
