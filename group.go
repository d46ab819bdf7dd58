package arcade

// GroupConfig holds the body defaults a Group applies to every dynamic body
// added to it.
type GroupConfig struct {
	// Frame size of sprites made by Create.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	CollideWorldBounds bool    `yaml:"collideWorldBounds"`
	Velocity           Vec2    `yaml:"velocity"`
	Acceleration       Vec2    `yaml:"acceleration"`
	Bounce             Vec2    `yaml:"bounce"`
	Drag               Vec2    `yaml:"drag"`
	Gravity            Vec2    `yaml:"gravity"`
	Friction           Vec2    `yaml:"friction"`
	MaxVelocity        Vec2    `yaml:"maxVelocity"`
	AllowGravity       bool    `yaml:"allowGravity"`
	AllowDrag          bool    `yaml:"allowDrag"`
	AllowRotation      bool    `yaml:"allowRotation"`
	Immovable          bool    `yaml:"immovable"`
	Mass               float64 `yaml:"mass"`
	CheckCollision     Edges   `yaml:"checkCollision"`
}

// DefaultGroupConfig returns the defaults a new body would have anyway.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		Width:          defaultBodySize,
		Height:         defaultBodySize,
		Friction:       Vec2{X: 1, Y: 0},
		MaxVelocity:    Vec2{X: 10000, Y: 10000},
		AllowGravity:   true,
		AllowDrag:      true,
		AllowRotation:  true,
		Mass:           1,
		CheckCollision: AllEdges,
	}
}

func (c *GroupConfig) apply(b *Body) {
	b.CollideWorldBounds = c.CollideWorldBounds
	b.Velocity = c.Velocity
	b.Acceleration = c.Acceleration
	b.Bounce = c.Bounce
	b.Drag = c.Drag
	b.Gravity = c.Gravity
	b.Friction = c.Friction
	b.MaxVelocity = c.MaxVelocity
	b.AllowGravity = c.AllowGravity
	b.AllowDrag = c.AllowDrag
	b.AllowRotation = c.AllowRotation
	b.Immovable = c.Immovable
	b.Mass = c.Mass
	b.CheckCollision = c.CheckCollision
}

// Group is an ordered collection of bodies. Groups are collision targets:
// bodies are resolved against group members in insertion order.
type Group struct {
	Name string

	// Defaults is applied to every dynamic body added to the group.
	Defaults GroupConfig

	world  *World
	static bool
	bodies []*Body
	order  map[*Body]int
	// dynamic counts members with dynamic bodies.
	dynamic int
}

// NewGroup creates a group of dynamic bodies. A nil cfg uses
// DefaultGroupConfig.
func (w *World) NewGroup(name string, cfg *GroupConfig) *Group {
	g := &Group{Name: name, world: w, Defaults: DefaultGroupConfig(), order: make(map[*Body]int)}
	if cfg != nil {
		g.Defaults = *cfg
	}
	return g
}

// NewStaticGroup creates a group of static bodies. Sprites added to it get
// static bodies; call Refresh after moving them.
func (w *World) NewStaticGroup(name string) *Group {
	g := w.NewGroup(name, nil)
	g.static = true
	return g
}

// IsStatic reports whether this is a static group.
func (g *Group) IsStatic() bool { return g.static }

// Create makes a sprite of the configured size at x, y, enables a body for
// it and adds it to the group.
func (g *Group) Create(x, y float64) *Sprite {
	s := NewSprite(g.Name, g.Defaults.Width, g.Defaults.Height)
	s.SetPosition(x, y)
	g.Add(s)
	return s
}

// Add adds a *Sprite or *Body. Sprites without a body get one of the
// group's kind. Dynamic bodies take the group's Defaults, except in a static
// group, which keeps them as they are and still collides with them. Other
// types panic.
func (g *Group) Add(obj any) *Body {
	var b *Body
	switch v := obj.(type) {
	case *Sprite:
		b = v.Body
		if b == nil {
			if g.static {
				b = g.world.EnableStatic(v)
			} else {
				b = g.world.Enable(v)
			}
		}
	case *Body:
		b = v
	default:
		panic("arcade: group members must be *Sprite or *Body")
	}
	if b.physicsType == PhysicsDynamic && !g.static {
		g.Defaults.apply(b)
	}
	if g.world.locked() {
		g.world.queue(pendingChange{op: opGroupAdd, group: g, body: b})
	} else {
		g.add(b)
	}
	return b
}

func (g *Group) add(b *Body) {
	if _, ok := g.order[b]; ok {
		return
	}
	g.order[b] = len(g.bodies)
	g.bodies = append(g.bodies, b)
	if b.physicsType == PhysicsDynamic {
		g.dynamic++
	}
}

// Remove removes a body from the group. The body stays in the world.
func (g *Group) Remove(b *Body) {
	if g.world.locked() {
		g.world.queue(pendingChange{op: opGroupRemove, group: g, body: b})
		return
	}
	g.remove(b)
}

func (g *Group) remove(b *Body) {
	i, ok := g.order[b]
	if !ok {
		return
	}
	delete(g.order, b)
	if b.physicsType == PhysicsDynamic {
		g.dynamic--
	}
	copy(g.bodies[i:], g.bodies[i+1:])
	g.bodies[len(g.bodies)-1] = nil
	g.bodies = g.bodies[:len(g.bodies)-1]
	for j := i; j < len(g.bodies); j++ {
		g.order[g.bodies[j]] = j
	}
}

// Contains reports whether b is a member.
func (g *Group) Contains(b *Body) bool {
	_, ok := g.order[b]
	return ok
}

// Bodies returns the members in insertion order. The returned slice MUST NOT
// be mutated.
func (g *Group) Bodies() []*Body {
	return g.bodies
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.bodies)
}

// Refresh re-syncs every static member from its sprite and updates the
// static tree.
func (g *Group) Refresh() {
	for _, b := range g.bodies {
		if b.physicsType == PhysicsStatic {
			b.Refresh()
		}
	}
}

// Clear removes every member. With destroy set, the members' bodies are
// destroyed too.
func (g *Group) Clear(destroy bool) {
	bodies := g.bodies
	g.bodies = nil
	g.dynamic = 0
	clear(g.order)
	if destroy {
		for _, b := range bodies {
			b.Destroy()
		}
	}
}
