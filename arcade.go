package arcade

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Only used by the
// debug renderer.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, velocities, sizes and per-axis
// coefficients throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Right returns X + Width.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Edges holds one flag per AABB edge. It is used for collision enables
// (CheckCollision) as well as collision results (Touching, Blocked).
type Edges struct {
	Up    bool `yaml:"up"`
	Down  bool `yaml:"down"`
	Left  bool `yaml:"left"`
	Right bool `yaml:"right"`
}

// AllEdges has every edge enabled.
var AllEdges = Edges{Up: true, Down: true, Left: true, Right: true}

// None reports whether no edge is set.
func (e Edges) None() bool {
	return !e.Up && !e.Down && !e.Left && !e.Right
}

// Any reports whether at least one edge is set.
func (e Edges) Any() bool {
	return !e.None()
}

// Set sets all four edges.
func (e *Edges) Set(up, down, left, right bool) {
	e.Up, e.Down, e.Left, e.Right = up, down, left, right
}

// Clear unsets all four edges.
func (e *Edges) Clear() {
	*e = Edges{}
}

// PhysicsType distinguishes dynamic bodies from static ones.
type PhysicsType uint8

const (
	PhysicsDynamic PhysicsType = iota // integrated every step
	PhysicsStatic                     // never integrated, indexed in the static tree
)

// Facing is the direction a body last moved in.
type Facing uint8

const (
	FacingNone  Facing = iota // has not moved yet
	FacingUp                  // last vertical movement was upward
	FacingDown                // last vertical movement was downward
	FacingLeft                // last horizontal movement was leftward
	FacingRight               // last horizontal movement was rightward
)

// EventType identifies a kind of world event.
type EventType uint8

const (
	EventWorldBounds  EventType = iota // a body hit the world bounds (Body.OnWorldBounds)
	EventCollide                       // two bodies collided (Body.OnCollide on either)
	EventOverlap                       // two bodies overlapped (Body.OnOverlap on either)
	EventTileCollide                   // a body collided with a tile (Body.OnCollide)
	EventTileOverlap                   // a body overlapped a tile (Body.OnOverlap)
	EventWorldStep                     // a simulation step finished
	EventPause                         // the world was paused
	EventResume                        // the world was resumed
	eventTypeCount
)

// Default tuning constants.
const (
	DefaultOverlapBias = 4.0
	DefaultTileBias    = 16.0
	DefaultFPS         = 60
	DefaultMaxEntries  = 16
)
