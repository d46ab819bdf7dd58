package arcade

import "math"

// defaultBodySize is used for bodies created without a frame size.
const defaultBodySize = 64

// defaultMaxAngular is 1000 degrees per second, in radians.
const defaultMaxAngular = 1000 * math.Pi / 180

// Body holds the physics state of one game object: an axis-aligned box with
// position, velocity and collision flags. Dynamic bodies are integrated every
// step; static bodies (PhysicsType() == PhysicsStatic) never move on their own.
//
// Every field may be set directly. Setters exist for convenience and to keep
// derived fields (half sizes, centre, static tree) in sync. Nothing is
// validated: NaN or negative sizes propagate as-is.
type Body struct {
	// ID is stable for the lifetime of the body and unique within its World.
	ID uint32

	// GameObject is the sprite this body reads its transform from and writes
	// its movement back to. Nil for bare bodies.
	GameObject *Sprite

	world       *World
	physicsType PhysicsType

	// Enable gates integration and every collision check.
	Enable bool

	// Circle bodies are sized from Radius but collide as their bounding box.
	IsCircle bool
	Radius   float64

	// Offset of the box from the owner's display origin, in frame pixels.
	Offset Vec2

	// Position is the top-left corner of the box in world space.
	Position Vec2
	// Prev is the position at the start of the current step.
	Prev Vec2
	// PrevFrame is the position at the start of the current frame.
	PrevFrame Vec2

	AllowRotation bool
	Rotation      float64 // radians
	PreRotation   float64

	Width, Height             float64
	SourceWidth, SourceHeight float64
	HalfWidth, HalfHeight     float64
	Center                    Vec2

	Velocity Vec2
	// NewVelocity is the displacement applied by the last step.
	NewVelocity Vec2
	// DeltaMax caps the per-frame movement written to the owner. Zero means
	// no cap.
	DeltaMax     Vec2
	Acceleration Vec2
	AllowDrag    bool
	Drag         Vec2
	// UseDamping switches Drag from a linear deceleration to a per-second
	// multiplier (values in 0..1).
	UseDamping   bool
	AllowGravity bool
	// Gravity is added to the world gravity.
	Gravity Vec2
	Bounce  Vec2
	// WorldBounce, when set, replaces Bounce for world-bounds collisions.
	WorldBounce *Vec2
	// CustomBoundsRect, when set, replaces the world bounds for this body.
	CustomBoundsRect *Rect

	// Event opt-ins.
	OnWorldBounds bool
	OnCollide     bool
	OnOverlap     bool

	MaxVelocity Vec2
	// MaxSpeed caps the velocity magnitude. Negative means no cap.
	MaxSpeed float64
	// Friction scales how much of an immovable partner's perpendicular motion
	// this body inherits while resting on it.
	Friction Vec2

	AngularVelocity     float64
	AngularAcceleration float64
	AngularDrag         float64
	MaxAngular          float64

	Mass float64

	// Angle and Speed describe Velocity after the last step.
	Angle  float64
	Speed  float64
	Facing Facing

	// Immovable bodies are never displaced by separation.
	Immovable bool
	// Moves gates integration and the write-back to the owner.
	Moves bool

	// CustomSeparateX/Y exclude this body from positional correction on that
	// axis. OverlapX/Y still record the computed overlap.
	CustomSeparateX bool
	CustomSeparateY bool
	OverlapX        float64
	OverlapY        float64

	// Embedded is set when the body overlapped a partner while neither moved
	// on the tested axis.
	Embedded bool

	CollideWorldBounds bool

	// CheckCollision enables collision response per edge.
	CheckCollision Edges
	// Touching is the result of the current step; WasTouching of the previous.
	Touching    Edges
	WasTouching Edges
	// Blocked marks edges pressed against something immovable: world bounds,
	// tiles, static or immovable bodies.
	Blocked Edges

	dx, dy    float64 // movement during the last step
	sx, sy    float64 // absolute owner scale the size was last computed with
	transform decomposedTransform

	treeBox   treeBBox // bounds the static tree indexed this body with
	inTree    bool
	destroyed bool
}

// newBody creates a body attached to s (which may be nil). Bare bodies start
// at the origin with the default size.
func newBody(w *World, s *Sprite, pt PhysicsType) *Body {
	b := &Body{
		world:          w,
		GameObject:     s,
		physicsType:    pt,
		Enable:         true,
		SourceWidth:    defaultBodySize,
		SourceHeight:   defaultBodySize,
		AllowRotation:  true,
		AllowDrag:      true,
		AllowGravity:   true,
		MaxVelocity:    Vec2{X: 10000, Y: 10000},
		MaxSpeed:       -1,
		Friction:       Vec2{X: 1, Y: 0},
		MaxAngular:     defaultMaxAngular,
		Mass:           1,
		Moves:          true,
		CheckCollision: AllEdges,
		sx:             1,
		sy:             1,
	}
	if pt == PhysicsStatic {
		b.Immovable = true
		b.Moves = false
		b.AllowGravity = false
		b.AllowRotation = false
	}
	if s != nil {
		if s.Width != 0 || s.Height != 0 {
			b.SourceWidth, b.SourceHeight = s.Width, s.Height
		}
		b.transform = decompose(s)
		b.sx, b.sy = abs(b.transform.scaleX), abs(b.transform.scaleY)
		b.Rotation = b.transform.rotation
		b.PreRotation = b.Rotation
	}
	b.Width = b.SourceWidth * b.sx
	b.Height = b.SourceHeight * b.sy
	b.HalfWidth = b.Width / 2
	b.HalfHeight = b.Height / 2
	if s != nil {
		b.syncPosition()
	}
	b.updateCenter()
	b.Prev = b.Position
	b.PrevFrame = b.Position
	return b
}

// PhysicsType reports whether this is a dynamic or static body.
func (b *Body) PhysicsType() PhysicsType {
	return b.physicsType
}

// World returns the world that owns this body.
func (b *Body) World() *World {
	return b.world
}

// IsDestroyed reports whether Destroy has been called.
func (b *Body) IsDestroyed() bool {
	return b.destroyed
}

// --- Owner synchronisation ---

// updateBounds re-reads the owner's transform and resizes the box when the
// owner's scale changed.
func (b *Body) updateBounds() {
	b.transform = decompose(b.GameObject)
	asx, asy := abs(b.transform.scaleX), abs(b.transform.scaleY)
	if asx == b.sx && asy == b.sy {
		return
	}
	b.Width = b.SourceWidth * asx
	b.Height = b.SourceHeight * asy
	b.sx, b.sy = asx, asy
	b.HalfWidth = b.Width / 2
	b.HalfHeight = b.Height / 2
	if b.IsCircle {
		b.Radius = b.HalfWidth
	}
	b.updateCenter()
}

// syncPosition places the box from the cached owner transform and Offset.
func (b *Body) syncPosition() {
	t := b.transform
	b.Position.X = t.x + t.scaleX*(b.Offset.X-t.displayOriginX)
	b.Position.Y = t.y + t.scaleY*(b.Offset.Y-t.displayOriginY)
	b.updateCenter()
}

// updateFromGameObject re-syncs size and position from the owner.
func (b *Body) updateFromGameObject() {
	b.updateBounds()
	b.syncPosition()
}

func (b *Body) updateCenter() {
	b.Center.X = b.Position.X + b.HalfWidth
	b.Center.Y = b.Position.Y + b.HalfHeight
}

// --- Per-frame lifecycle ---

// preUpdate runs once per frame before any step: the box is re-synced from
// its owner and the frame's starting position recorded.
func (b *Body) preUpdate() {
	if b.GameObject != nil {
		b.updateFromGameObject()
		b.Rotation = b.transform.rotation
	}
	b.PreRotation = b.Rotation
	if b.Moves {
		b.Prev = b.Position
		b.PrevFrame = b.Position
	}
}

// update integrates one step of motion and checks the world bounds.
func (b *Body) update(delta float64) {
	b.resetFlags(false)
	b.Prev = b.Position

	if b.Moves {
		b.world.updateMotion(b, delta)

		vx, vy := b.Velocity.X, b.Velocity.Y
		b.NewVelocity = Vec2{X: vx * delta, Y: vy * delta}
		b.Position.X += b.NewVelocity.X
		b.Position.Y += b.NewVelocity.Y
		b.updateCenter()

		b.Angle = math.Atan2(vy, vx)
		b.Speed = math.Hypot(vx, vy)

		if b.CollideWorldBounds && b.checkWorldBounds() && b.OnWorldBounds {
			b.world.emit(Event{Type: EventWorldBounds, Body1: b, Edges: b.Blocked})
		}
	}

	b.dx = b.Position.X - b.Prev.X
	b.dy = b.Position.Y - b.Prev.Y
}

// postUpdate writes the frame's movement back to the owner.
func (b *Body) postUpdate() {
	dx := b.Position.X - b.PrevFrame.X
	dy := b.Position.Y - b.PrevFrame.Y

	if b.Moves {
		dx = clampDelta(dx, b.DeltaMax.X)
		dy = clampDelta(dy, b.DeltaMax.Y)
		if s := b.GameObject; s != nil {
			s.X += dx
			s.Y += dy
		}
	}

	if dx < 0 {
		b.Facing = FacingLeft
	} else if dx > 0 {
		b.Facing = FacingRight
	}
	if dy < 0 {
		b.Facing = FacingUp
	} else if dy > 0 {
		b.Facing = FacingDown
	}

	if b.AllowRotation && b.GameObject != nil {
		b.GameObject.Rotation += b.DeltaZ()
	}

	b.PrevFrame = b.Position
}

// clampDelta limits d to ±max. A max of zero disables the limit.
func clampDelta(d, max float64) float64 {
	if max == 0 || d == 0 {
		return d
	}
	if d < -max {
		return -max
	}
	if d > max {
		return max
	}
	return d
}

// checkWorldBounds clamps the body inside the world (or its custom) bounds,
// treating each enabled edge as an immovable wall. Returns true if any edge
// was hit.
func (b *Body) checkWorldBounds() bool {
	bounds := b.world.Bounds
	if b.CustomBoundsRect != nil {
		bounds = *b.CustomBoundsRect
	}
	check := b.world.CheckCollision

	bx, by := -b.Bounce.X, -b.Bounce.Y
	if b.WorldBounce != nil {
		bx, by = -b.WorldBounce.X, -b.WorldBounce.Y
	}

	hit := false
	if b.Position.X < bounds.X && check.Left && b.CheckCollision.Left {
		b.Position.X = bounds.X
		b.Velocity.X *= bx
		b.Blocked.Left = true
		b.Touching.Left = true
		hit = true
	} else if b.Right() > bounds.Right() && check.Right && b.CheckCollision.Right {
		b.Position.X = bounds.Right() - b.Width
		b.Velocity.X *= bx
		b.Blocked.Right = true
		b.Touching.Right = true
		hit = true
	}

	if b.Position.Y < bounds.Y && check.Up && b.CheckCollision.Up {
		b.Position.Y = bounds.Y
		b.Velocity.Y *= by
		b.Blocked.Up = true
		b.Touching.Up = true
		hit = true
	} else if b.Bottom() > bounds.Bottom() && check.Down && b.CheckCollision.Down {
		b.Position.Y = bounds.Bottom() - b.Height
		b.Velocity.Y *= by
		b.Blocked.Down = true
		b.Touching.Down = true
		hit = true
	}

	if hit {
		b.updateCenter()
	}
	return hit
}

// resetFlags rotates Touching into WasTouching and clears per-step results.
// With clear set, WasTouching is cleared as well.
func (b *Body) resetFlags(clear bool) {
	b.WasTouching = b.Touching
	if clear {
		b.WasTouching.Clear()
	}
	b.Touching.Clear()
	b.Blocked.Clear()
	b.OverlapX = 0
	b.OverlapY = 0
	b.Embedded = false
}

// --- Setters ---

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(x, y float64) {
	b.Velocity = Vec2{X: x, Y: y}
	b.Speed = math.Hypot(x, y)
}

// SetVelocityX sets the horizontal velocity.
func (b *Body) SetVelocityX(x float64) {
	b.SetVelocity(x, b.Velocity.Y)
}

// SetVelocityY sets the vertical velocity.
func (b *Body) SetVelocityY(y float64) {
	b.SetVelocity(b.Velocity.X, y)
}

// SetAcceleration sets both acceleration components.
func (b *Body) SetAcceleration(x, y float64) {
	b.Acceleration = Vec2{X: x, Y: y}
}

// SetAccelerationX sets the horizontal acceleration.
func (b *Body) SetAccelerationX(x float64) { b.Acceleration.X = x }

// SetAccelerationY sets the vertical acceleration.
func (b *Body) SetAccelerationY(y float64) { b.Acceleration.Y = y }

// SetBounce sets the restitution on both axes.
func (b *Body) SetBounce(x, y float64) {
	b.Bounce = Vec2{X: x, Y: y}
}

// SetBounceX sets the horizontal restitution.
func (b *Body) SetBounceX(x float64) { b.Bounce.X = x }

// SetBounceY sets the vertical restitution.
func (b *Body) SetBounceY(y float64) { b.Bounce.Y = y }

// SetWorldBounce overrides Bounce for world-bounds collisions.
func (b *Body) SetWorldBounce(x, y float64) {
	b.WorldBounce = &Vec2{X: x, Y: y}
}

// SetDrag sets the drag on both axes.
func (b *Body) SetDrag(x, y float64) {
	b.Drag = Vec2{X: x, Y: y}
}

// SetDragX sets the horizontal drag.
func (b *Body) SetDragX(x float64) { b.Drag.X = x }

// SetDragY sets the vertical drag.
func (b *Body) SetDragY(y float64) { b.Drag.Y = y }

// SetDamping switches drag between linear deceleration and damping.
func (b *Body) SetDamping(v bool) { b.UseDamping = v }

// SetAllowDrag enables or disables drag.
func (b *Body) SetAllowDrag(v bool) { b.AllowDrag = v }

// SetGravity sets the body gravity, added to the world gravity.
func (b *Body) SetGravity(x, y float64) {
	b.Gravity = Vec2{X: x, Y: y}
}

// SetAllowGravity enables or disables gravity.
func (b *Body) SetAllowGravity(v bool) { b.AllowGravity = v }

// SetAllowRotation enables or disables angular motion.
func (b *Body) SetAllowRotation(v bool) { b.AllowRotation = v }

// SetAngularVelocity sets the angular velocity in radians per second.
func (b *Body) SetAngularVelocity(v float64) { b.AngularVelocity = v }

// SetAngularAcceleration sets the angular acceleration.
func (b *Body) SetAngularAcceleration(v float64) { b.AngularAcceleration = v }

// SetAngularDrag sets the angular drag.
func (b *Body) SetAngularDrag(v float64) { b.AngularDrag = v }

// SetImmovable marks the body as never displaced by separation.
func (b *Body) SetImmovable(v bool) { b.Immovable = v }

// SetMass sets the mass used to weight separation between two movable bodies.
func (b *Body) SetMass(m float64) { b.Mass = m }

// SetMaxVelocity caps each velocity component.
func (b *Body) SetMaxVelocity(x, y float64) {
	b.MaxVelocity = Vec2{X: x, Y: y}
}

// SetMaxSpeed caps the velocity magnitude. Negative disables the cap.
func (b *Body) SetMaxSpeed(v float64) { b.MaxSpeed = v }

// SetFriction sets how much of an immovable partner's motion is inherited.
func (b *Body) SetFriction(x, y float64) {
	b.Friction = Vec2{X: x, Y: y}
}

// SetCollideWorldBounds enables clamping to the world bounds.
func (b *Body) SetCollideWorldBounds(v bool) { b.CollideWorldBounds = v }

// SetBoundsRectangle replaces the world bounds for this body. Nil restores
// the world bounds.
func (b *Body) SetBoundsRectangle(r *Rect) { b.CustomBoundsRect = r }

// SetEnable enables or disables the body.
func (b *Body) SetEnable(v bool) { b.Enable = v }

// SetOffset sets the box offset from the owner's display origin.
func (b *Body) SetOffset(x, y float64) {
	b.Offset = Vec2{X: x, Y: y}
	b.updateCenter()
	if b.physicsType == PhysicsStatic {
		b.Refresh()
	}
}

// SetOffsetAndSize resizes the box without centring it and then applies
// the given offset.
func (b *Body) SetOffsetAndSize(x, y, width, height float64) {
	b.setSize(width, height, false)
	b.SetOffset(x, y)
}

// SetSize resizes the box in frame pixels and centres it on the owner. A zero
// dimension falls back to the owner's frame size.
func (b *Body) SetSize(width, height float64) {
	b.setSize(width, height, true)
}

func (b *Body) setSize(width, height float64, center bool) {
	s := b.GameObject
	if s != nil {
		if width == 0 {
			width = s.Width
		}
		if height == 0 {
			height = s.Height
		}
	}
	b.SourceWidth, b.SourceHeight = width, height
	b.Width = width * b.sx
	b.Height = height * b.sy
	b.HalfWidth = b.Width / 2
	b.HalfHeight = b.Height / 2
	b.IsCircle = false
	b.Radius = 0
	if center && s != nil {
		b.Offset = Vec2{X: (s.Width - width) / 2, Y: (s.Height - height) / 2}
	}
	b.updateCenter()
	if b.physicsType == PhysicsStatic {
		b.Refresh()
	}
}

// SetCircle turns the body into a circle of the given radius, offset from the
// owner's display origin. Collision still uses the bounding box. A radius of
// zero or less reverts to a plain box.
func (b *Body) SetCircle(radius, offsetX, offsetY float64) {
	if radius <= 0 {
		b.IsCircle = false
		return
	}
	b.IsCircle = true
	b.Radius = radius
	b.SourceWidth = radius * 2
	b.SourceHeight = radius * 2
	b.Width = b.SourceWidth * b.sx
	b.Height = b.SourceHeight * b.sy
	b.HalfWidth = b.Width / 2
	b.HalfHeight = b.Height / 2
	b.Offset = Vec2{X: offsetX, Y: offsetY}
	b.updateCenter()
	if b.physicsType == PhysicsStatic {
		b.Refresh()
	}
}

// Reset teleports the body (and its owner) to x, y, zeroes all motion and
// clears every collision flag. With an owner, x and y are the owner's new
// position; otherwise they are the box's top-left corner.
func (b *Body) Reset(x, y float64) {
	b.Stop()
	if s := b.GameObject; s != nil {
		s.SetPosition(x, y)
		b.updateFromGameObject()
		b.Rotation = b.transform.rotation
		b.PreRotation = b.Rotation
	} else {
		b.Position = Vec2{X: x, Y: y}
		b.updateCenter()
	}
	b.Prev = b.Position
	b.PrevFrame = b.Position
	b.dx, b.dy = 0, 0
	if b.physicsType == PhysicsStatic {
		b.world.reindexStatic(b)
	} else if b.world != nil {
		b.world.treeDirty = true
	}
	if b.CollideWorldBounds {
		b.checkWorldBounds()
	}
	b.resetFlags(true)
}

// Stop zeroes linear and angular velocity and acceleration.
func (b *Body) Stop() {
	b.Velocity = Vec2{}
	b.Acceleration = Vec2{}
	b.Speed = 0
	b.AngularVelocity = 0
	b.AngularAcceleration = 0
}

// Refresh re-reads the owner's transform. Static bodies never follow their
// owner automatically, so call this after moving or scaling a static
// body's sprite; the static tree is updated too.
func (b *Body) Refresh() {
	if b.GameObject != nil {
		b.updateFromGameObject()
	}
	b.Prev = b.Position
	b.PrevFrame = b.Position
	if b.physicsType == PhysicsStatic && b.world != nil {
		b.world.reindexStatic(b)
	}
}

// Destroy removes the body from its world and detaches it from its owner.
func (b *Body) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.Enable = false
	if b.world != nil {
		b.world.RemoveBody(b)
	}
	if s := b.GameObject; s != nil && s.Body == b {
		s.Body = nil
	}
}

// --- Queries ---

// Left returns the box's left edge.
func (b *Body) Left() float64 { return b.Position.X }

// Right returns the box's right edge.
func (b *Body) Right() float64 { return b.Position.X + b.Width }

// Top returns the box's top edge.
func (b *Body) Top() float64 { return b.Position.Y }

// Bottom returns the box's bottom edge.
func (b *Body) Bottom() float64 { return b.Position.Y + b.Height }

// Bounds returns the box as a Rect.
func (b *Body) Bounds() Rect {
	return Rect{X: b.Position.X, Y: b.Position.Y, Width: b.Width, Height: b.Height}
}

// DeltaX returns the horizontal movement of the last step.
func (b *Body) DeltaX() float64 { return b.dx }

// DeltaY returns the vertical movement of the last step.
func (b *Body) DeltaY() float64 { return b.dy }

// DeltaAbsX returns |DeltaX|.
func (b *Body) DeltaAbsX() float64 { return abs(b.dx) }

// DeltaAbsY returns |DeltaY|.
func (b *Body) DeltaAbsY() float64 { return abs(b.dy) }

// DeltaZ returns the rotation change since the start of the frame.
func (b *Body) DeltaZ() float64 { return b.Rotation - b.PreRotation }

// OnFloor reports whether the body is blocked from below.
func (b *Body) OnFloor() bool { return b.Blocked.Down }

// OnCeiling reports whether the body is blocked from above.
func (b *Body) OnCeiling() bool { return b.Blocked.Up }

// OnWall reports whether the body is blocked on either side.
func (b *Body) OnWall() bool { return b.Blocked.Left || b.Blocked.Right }

// HitTest reports whether the world point lies inside the body. Circle
// bodies test against the circle, everything else against the box.
func (b *Body) HitTest(x, y float64) bool {
	if b.IsCircle {
		if b.Radius <= 0 || x < b.Left() || x > b.Right() || y < b.Top() || y > b.Bottom() {
			return false
		}
		dx := b.Center.X - x
		dy := b.Center.Y - y
		return dx*dx+dy*dy <= b.HalfWidth*b.HalfWidth
	}
	return b.Bounds().Contains(x, y)
}
