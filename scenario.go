package arcade

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BodySpec describes one body of a Scenario.
type BodySpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Static bool    `yaml:"static"`
	// Sprite attaches the body to a sprite centred on X, Y instead of placing
	// a bare body's top-left corner there.
	Sprite bool `yaml:"sprite"`

	Velocity           Vec2    `yaml:"velocity"`
	Acceleration       Vec2    `yaml:"acceleration"`
	Gravity            Vec2    `yaml:"gravity"`
	Bounce             Vec2    `yaml:"bounce"`
	Drag               Vec2    `yaml:"drag"`
	Mass               float64 `yaml:"mass"`
	Immovable          bool    `yaml:"immovable"`
	CollideWorldBounds bool    `yaml:"collideWorldBounds"`
	AllowGravity       *bool   `yaml:"allowGravity"`
	CheckCollision     *Edges  `yaml:"checkCollision"`
}

// GroupSpec describes a group of previously declared bodies.
type GroupSpec struct {
	Name    string   `yaml:"name"`
	Static  bool     `yaml:"static"`
	Members []string `yaml:"members"`
}

// LayerSpec describes a tile layer.
type LayerSpec struct {
	Name       string   `yaml:"name"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	TileWidth  float64  `yaml:"tileWidth"`
	TileHeight float64  `yaml:"tileHeight"`
	Data       []uint32 `yaml:"data"`
	// Collide lists indexes that collide on every side.
	Collide []int `yaml:"collide"`
	// OneWay lists indexes that only stop bodies falling onto them.
	OneWay []int `yaml:"oneWay"`
}

// ColliderSpec pairs two named objects.
type ColliderSpec struct {
	Name    string `yaml:"name"`
	A       string `yaml:"a"`
	B       string `yaml:"b"`
	Overlap bool   `yaml:"overlap"`
}

// Scenario is a declarative world setup run for a fixed number of frames.
// It drives cmd/arcadesim and regression tests.
type Scenario struct {
	World     WorldConfig    `yaml:"world"`
	Frames    int            `yaml:"frames"`
	DT        float64        `yaml:"dt"`
	Bodies    []BodySpec     `yaml:"bodies"`
	Groups    []GroupSpec    `yaml:"groups"`
	Layers    []LayerSpec    `yaml:"layers"`
	Colliders []ColliderSpec `yaml:"colliders"`
}

// LoadScenario decodes a YAML scenario. World settings omitted from the file
// keep their DefaultWorldConfig values.
func LoadScenario(data []byte) (*Scenario, error) {
	sc := &Scenario{World: DefaultWorldConfig()}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Frames <= 0 {
		return nil, fmt.Errorf("parse scenario: frames must be positive, got %d", sc.Frames)
	}
	if sc.World.FPS <= 0 {
		return nil, fmt.Errorf("parse scenario: fps must be positive, got %d", sc.World.FPS)
	}
	if sc.DT <= 0 {
		sc.DT = 1 / float64(sc.World.FPS)
	}
	return sc, nil
}

// Simulation is a world built from a Scenario, with its objects by name.
type Simulation struct {
	World  *World
	Bodies map[string]*Body
	Groups map[string]*Group
	Layers map[string]*TileLayer

	// Collisions counts callback invocations per collider name.
	Collisions map[string]int

	order  []string
	frames int
	dt     float64
}

// Build creates the world described by the scenario.
func (sc *Scenario) Build() (*Simulation, error) {
	w := NewWorld(sc.World)
	sim := &Simulation{
		World:      w,
		Bodies:     make(map[string]*Body),
		Groups:     make(map[string]*Group),
		Layers:     make(map[string]*TileLayer),
		Collisions: make(map[string]int),
		frames:     sc.Frames,
		dt:         sc.DT,
	}

	for i, spec := range sc.Bodies {
		if spec.Name == "" {
			return nil, fmt.Errorf("scenario: body %d has no name", i)
		}
		if _, dup := sim.Bodies[spec.Name]; dup {
			return nil, fmt.Errorf("scenario: duplicate body %q", spec.Name)
		}
		sim.Bodies[spec.Name] = spec.build(w)
		sim.order = append(sim.order, spec.Name)
	}

	for _, spec := range sc.Groups {
		var g *Group
		if spec.Static {
			g = w.NewStaticGroup(spec.Name)
		} else {
			g = w.NewGroup(spec.Name, nil)
		}
		for _, name := range spec.Members {
			b, ok := sim.Bodies[name]
			if !ok {
				return nil, fmt.Errorf("scenario: group %q: unknown body %q", spec.Name, name)
			}
			// Bodies keep their own settings rather than the group defaults.
			g.add(b)
		}
		sim.Groups[spec.Name] = g
	}

	for _, spec := range sc.Layers {
		if len(spec.Data) != spec.Width*spec.Height {
			return nil, fmt.Errorf("scenario: layer %q: %d tiles for a %dx%d grid",
				spec.Name, len(spec.Data), spec.Width, spec.Height)
		}
		l := NewTileLayer(spec.Name, spec.Width, spec.Height, spec.TileWidth, spec.TileHeight, spec.Data)
		l.X, l.Y = spec.X, spec.Y
		l.SetCollision(spec.Collide, true)
		for _, t := range l.TilesWithin(0, 0, l.Width(), l.Height(), TileFilter{NonEmpty: true}) {
			if containsIndex(spec.OneWay, t.Index) {
				t.SetCollision(false, false, true, false)
			}
		}
		sim.Layers[spec.Name] = l
	}

	for i, spec := range sc.Colliders {
		a, err := sim.lookup(spec.A)
		if err != nil {
			return nil, fmt.Errorf("scenario: collider %d: %w", i, err)
		}
		b, err := sim.lookup(spec.B)
		if err != nil {
			return nil, fmt.Errorf("scenario: collider %d: %w", i, err)
		}
		name := spec.Name
		if name == "" {
			name = spec.A + "/" + spec.B
		}
		count := func(_, _ any) { sim.Collisions[name]++ }
		var c *Collider
		if spec.Overlap {
			c = w.AddOverlap(a, b, count, nil)
		} else {
			c = w.AddCollider(a, b, count, nil)
		}
		c.SetName(name)
	}

	return sim, nil
}

func (spec BodySpec) build(w *World) *Body {
	var b *Body
	switch {
	case spec.Sprite:
		s := NewSprite(spec.Name, spec.Width, spec.Height)
		s.SetPosition(spec.X, spec.Y)
		if spec.Static {
			b = w.EnableStatic(s)
		} else {
			b = w.Enable(s)
		}
	case spec.Static:
		b = w.NewStaticBody(spec.X, spec.Y, spec.Width, spec.Height)
	default:
		b = w.NewBody(spec.X, spec.Y, spec.Width, spec.Height)
	}

	b.Velocity = spec.Velocity
	b.Acceleration = spec.Acceleration
	b.Gravity = spec.Gravity
	b.Bounce = spec.Bounce
	b.Drag = spec.Drag
	if spec.Mass != 0 {
		b.Mass = spec.Mass
	}
	if spec.Immovable {
		b.Immovable = true
	}
	b.CollideWorldBounds = spec.CollideWorldBounds
	if spec.AllowGravity != nil {
		b.AllowGravity = *spec.AllowGravity
	}
	if spec.CheckCollision != nil {
		b.CheckCollision = *spec.CheckCollision
	}
	return b
}

// lookup resolves a name to a body, group or layer, in that order.
func (sim *Simulation) lookup(name string) (any, error) {
	if b, ok := sim.Bodies[name]; ok {
		return b, nil
	}
	if g, ok := sim.Groups[name]; ok {
		return g, nil
	}
	if l, ok := sim.Layers[name]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("unknown object %q", name)
}

// ScenarioResult is the outcome of Simulation.Run.
type ScenarioResult struct {
	Frames     int
	Steps      uint64
	Collisions map[string]int
	// Bodies holds the final state of each declared body by name.
	Bodies map[string]BodyState
	// Order lists body names in declaration order.
	Order []string
}

// Run advances the simulation for the scenario's frame count, writing back
// to sprites after every frame.
func (sim *Simulation) Run() ScenarioResult {
	for i := 0; i < sim.frames; i++ {
		sim.World.Update(sim.dt)
		sim.World.PostUpdate()
	}
	res := ScenarioResult{
		Frames:     sim.frames,
		Steps:      sim.World.StepCount(),
		Collisions: sim.Collisions,
		Bodies:     make(map[string]BodyState, len(sim.Bodies)),
		Order:      sim.order,
	}
	for name, b := range sim.Bodies {
		res.Bodies[name] = b.state()
	}
	return res
}

// RunScenario loads, builds and runs a YAML scenario.
func RunScenario(data []byte) (ScenarioResult, *Simulation, error) {
	sc, err := LoadScenario(data)
	if err != nil {
		return ScenarioResult{}, nil, err
	}
	sim, err := sc.Build()
	if err != nil {
		return ScenarioResult{}, nil, err
	}
	return sim.Run(), sim, nil
}
