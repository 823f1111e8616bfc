package game

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds game configuration constants
type Config struct {
	// FieldWidth is the width of the playable field in pixels
	FieldWidth float64 `toml:"field_width"`

	// FieldHeight is the height of the playable field in pixels
	FieldHeight float64 `toml:"field_height"`

	// CanvasWidth is the window width in pixels (field + upgrade panel)
	CanvasWidth int `toml:"canvas_width"`

	// CanvasHeight is the window height in pixels (field + stats strip)
	CanvasHeight int `toml:"canvas_height"`

	// TickRate is the number of simulation ticks per second
	TickRate int `toml:"tick_rate"`

	// MaxCatchUpTicks caps how many ticks a front-end runs back-to-back after a stall
	MaxCatchUpTicks int `toml:"max_catch_up_ticks"`

	// Seed for the simulation RNG (0 = seed from the clock)
	Seed int64 `toml:"seed"`

	Player     PlayerConfig     `toml:"player"`
	Projectile ProjectileConfig `toml:"projectile"`
	Enemy      EnemyConfig      `toml:"enemy"`
	Spawner    SpawnerConfig    `toml:"spawner"`
	Collision  CollisionConfig  `toml:"collision"`

	// Upgrades lists the purchasable upgrades in panel order
	Upgrades []UpgradeConfig `toml:"upgrade"`
}

// PlayerConfig holds the starting stats of the player ship
type PlayerConfig struct {
	Health         float64 `toml:"health"`
	Speed          float64 `toml:"speed"`
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	Margin         float64 `toml:"margin"`
	ShotsPerSecond float64 `toml:"shots_per_second"`
	Strength       float64 `toml:"strength"`
	ShotCollisions float64 `toml:"shot_collisions"`

	// DamagePerHit is subtracted from the player each tick an enemy overlaps it
	DamagePerHit float64 `toml:"damage_per_hit"`
}

// ProjectileConfig holds projectile tuning
type ProjectileConfig struct {
	Size  float64 `toml:"size"`
	Speed float64 `toml:"speed"`
}

// EnemyConfig holds enemy geometry and the archetype table
type EnemyConfig struct {
	Width           float64 `toml:"width"`
	HeightPerHealth float64 `toml:"height_per_health"`
	SpawnY          float64 `toml:"spawn_y"`
	SpawnGridStep   float64 `toml:"spawn_grid_step"`

	Archetypes []EnemyArchetype `toml:"archetype"`
}

// SpawnerConfig holds the difficulty ramp
type SpawnerConfig struct {
	// BaseRate is the starting number of enemies per second
	BaseRate int `toml:"base_rate"`

	// Window is the number of seconds between difficulty steps
	Window float64 `toml:"window"`

	MaxSpeedModifier int `toml:"max_speed_modifier"`
	MaxEnemyHealth   int `toml:"max_enemy_health"`
}

// CollisionConfig controls the broad phase
type CollisionConfig struct {
	BroadPhase bool    `toml:"broad_phase"`
	CellSize   float64 `toml:"cell_size"`
}

// UpgradeConfig describes one purchasable upgrade
type UpgradeConfig struct {
	Kind     UpgradeKind `toml:"kind"`
	Name     string      `toml:"name"`
	MaxLevel int         `toml:"max_level"`
	Cost     int         `toml:"cost"`
	Amount   float64     `toml:"amount"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		FieldWidth:      400,
		FieldHeight:     500,
		CanvasWidth:     600,
		CanvasHeight:    600,
		TickRate:        60,
		MaxCatchUpTicks: 5,
		Player: PlayerConfig{
			Health:         100,
			Speed:          75,
			Width:          10,
			Height:         10,
			Margin:         20,
			ShotsPerSecond: 1,
			Strength:       1,
			ShotCollisions: 1,
			DamagePerHit:   10,
		},
		Projectile: ProjectileConfig{
			Size:  8,
			Speed: 200,
		},
		Enemy: EnemyConfig{
			Width:           20,
			HeightPerHealth: 8,
			SpawnY:          -50,
			SpawnGridStep:   10,
			Archetypes:      DefaultArchetypes(),
		},
		Spawner: SpawnerConfig{
			BaseRate:         3,
			Window:           30,
			MaxSpeedModifier: 5,
			MaxEnemyHealth:   4,
		},
		Collision: CollisionConfig{
			BroadPhase: true,
			CellSize:   64,
		},
		Upgrades: DefaultUpgrades(),
	}
}

// Validate rejects configurations the simulation cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	if c.FieldWidth <= 0 || c.FieldHeight <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %gx%g", c.FieldWidth, c.FieldHeight))
	}
	if 2*c.Player.Margin > c.FieldWidth || 2*c.Player.Margin > c.FieldHeight {
		errs = append(errs, fmt.Errorf("player margin %g does not fit the field", c.Player.Margin))
	}
	if c.Player.Health <= 0 {
		errs = append(errs, fmt.Errorf("player health must be positive, got %g", c.Player.Health))
	}
	if len(c.Enemy.Archetypes) == 0 {
		errs = append(errs, errors.New("at least one enemy archetype is required"))
	}
	if c.Spawner.Window <= 0 {
		errs = append(errs, fmt.Errorf("spawner window must be positive, got %g", c.Spawner.Window))
	}
	if c.Spawner.MaxEnemyHealth <= 0 {
		errs = append(errs, fmt.Errorf("max_enemy_health must be positive, got %d", c.Spawner.MaxEnemyHealth))
	}
	if c.Spawner.MaxSpeedModifier <= 0 {
		errs = append(errs, fmt.Errorf("max_speed_modifier must be positive, got %d", c.Spawner.MaxSpeedModifier))
	}
	for i, u := range c.Upgrades {
		if _, ok := upgradeEffects[u.Kind]; !ok {
			errs = append(errs, fmt.Errorf("upgrade %d: unknown kind %q", i, u.Kind))
		}
		if u.Cost <= 0 {
			errs = append(errs, fmt.Errorf("upgrade %d: cost must be positive, got %d", i, u.Cost))
		}
		if u.MaxLevel <= 0 {
			errs = append(errs, fmt.Errorf("upgrade %d: max_level must be positive, got %d", i, u.MaxLevel))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TickSeconds returns the fixed timestep in seconds
func (c Config) TickSeconds() float64 {
	return 1 / float64(max(1, c.TickRate))
}

// LoadConfig reads a TOML file over the defaults, then applies SHOOTER_*
// overrides from the given .env files and the process environment (the
// environment wins). An empty path skips the file.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	env := map[string]string{}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		values, err := godotenv.Read(f)
		if err != nil {
			return cfg, fmt.Errorf("failed to read env file %s: %w", f, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	if err := cfg.applyEnv(env); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

var envKeys = []string{
	"SHOOTER_TICK_RATE",
	"SHOOTER_SEED",
	"SHOOTER_MAX_CATCH_UP_TICKS",
	"SHOOTER_BROAD_PHASE",
	"SHOOTER_PLAYER_SPEED",
	"SHOOTER_PLAYER_HEALTH",
}

// applyEnv applies the SHOOTER_* overrides present in env
func (c *Config) applyEnv(env map[string]string) error {
	for _, k := range envKeys {
		v, ok := env[k]
		if !ok || v == "" {
			continue
		}
		var err error
		switch k {
		case "SHOOTER_TICK_RATE":
			c.TickRate, err = strconv.Atoi(v)
		case "SHOOTER_SEED":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case "SHOOTER_MAX_CATCH_UP_TICKS":
			c.MaxCatchUpTicks, err = strconv.Atoi(v)
		case "SHOOTER_BROAD_PHASE":
			c.Collision.BroadPhase, err = strconv.ParseBool(v)
		case "SHOOTER_PLAYER_SPEED":
			c.Player.Speed, err = strconv.ParseFloat(v, 64)
		case "SHOOTER_PLAYER_HEALTH":
			c.Player.Health, err = strconv.ParseFloat(v, 64)
		}
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", k, v, err)
		}
	}
	return nil
}

// RGBA is a TOML-friendly color ("#rrggbb" or a CSS-style name)
type RGBA color.RGBA

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding
func (c *RGBA) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if named, ok := namedColors[s]; ok {
		*c = RGBA(named)
		return nil
	}
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	*c = RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (c RGBA) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), nil
}

var namedColors = map[string]color.RGBA{
	"white":  {255, 255, 255, 255},
	"orange": {255, 165, 0, 255},
	"red":    {255, 0, 0, 255},
	"black":  {0, 0, 0, 255},
}
