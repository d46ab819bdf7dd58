package arcade

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DebugConfig controls what World.DrawDebug draws.
type DebugConfig struct {
	ShowBody        bool  `yaml:"showBody"`
	ShowStaticBody  bool  `yaml:"showStaticBody"`
	ShowVelocity    bool  `yaml:"showVelocity"`
	BodyColor       Color `yaml:"bodyColor"`
	StaticBodyColor Color `yaml:"staticBodyColor"`
	VelocityColor   Color `yaml:"velocityColor"`
	BlockedColor    Color `yaml:"blockedColor"`
}

// WorldConfig holds the tunables of a World. The zero value is not useful;
// start from DefaultWorldConfig.
type WorldConfig struct {
	FPS       int     `yaml:"fps"`
	FixedStep bool    `yaml:"fixedStep"`
	TimeScale float64 `yaml:"timeScale"`

	Gravity        Vec2  `yaml:"gravity"`
	Bounds         Rect  `yaml:"bounds"`
	CheckCollision Edges `yaml:"checkCollision"`

	OverlapBias float64 `yaml:"overlapBias"`
	TileBias    float64 `yaml:"tileBias"`

	UseTree    bool `yaml:"useTree"`
	MaxEntries int  `yaml:"maxEntries"`

	Debug DebugConfig `yaml:"debug"`
}

// DefaultWorldConfig returns a 60 Hz fixed-step world with no gravity and
// an 800x600 bounds rectangle.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		FPS:            DefaultFPS,
		FixedStep:      true,
		TimeScale:      1,
		Bounds:         Rect{Width: 800, Height: 600},
		CheckCollision: AllEdges,
		OverlapBias:    DefaultOverlapBias,
		TileBias:       DefaultTileBias,
		UseTree:        true,
		MaxEntries:     DefaultMaxEntries,
		Debug: DebugConfig{
			ShowBody:        true,
			ShowStaticBody:  true,
			ShowVelocity:    true,
			BodyColor:       Color{R: 1, G: 0, B: 1, A: 1},
			StaticBodyColor: Color{R: 0, G: 0, B: 1, A: 1},
			VelocityColor:   Color{R: 0, G: 1, B: 0, A: 1},
			BlockedColor:    Color{R: 1, G: 0.5, B: 0, A: 1},
		},
	}
}

// LoadWorldConfig decodes YAML on top of DefaultWorldConfig, so omitted keys
// keep their defaults.
func LoadWorldConfig(data []byte) (WorldConfig, error) {
	cfg := DefaultWorldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WorldConfig{}, fmt.Errorf("parse world config: %w", err)
	}
	if cfg.FPS <= 0 {
		return WorldConfig{}, fmt.Errorf("parse world config: fps must be positive, got %d", cfg.FPS)
	}
	return cfg, nil
}
