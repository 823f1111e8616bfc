package game

import "image/color"

// EnemyArchetype is a template of base enemy stats sampled at spawn time.
// Archetypes are copied before modification and never changed in place.
type EnemyArchetype struct {
	Name   string  `toml:"name"`
	Speed  float64 `toml:"speed"`
	Health float64 `toml:"health"`
	Color  RGBA    `toml:"color"`
}

// DefaultArchetypes returns the white/orange/red enemy table.
// Orange is 1.5x and red 2x the speed of white.
func DefaultArchetypes() []EnemyArchetype {
	return []EnemyArchetype{
		{Name: "white", Speed: 40, Health: 1, Color: RGBA(namedColors["white"])},
		{Name: "orange", Speed: 60, Health: 1, Color: RGBA(namedColors["orange"])},
		{Name: "red", Speed: 80, Health: 1, Color: RGBA(namedColors["red"])},
	}
}

// RandomArchetype picks one archetype uniformly and returns a copy of it
func RandomArchetype(archetypes []EnemyArchetype, rng randSource) EnemyArchetype {
	return archetypes[rng.Intn(len(archetypes))]
}

// RGBA converts the archetype color for rendering
func (a EnemyArchetype) RGBA() color.RGBA {
	return color.RGBA(a.Color)
}
