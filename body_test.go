package arcade

import (
	"math"
	"testing"
)

const frame = 1.0 / 60

func newTestWorld() *World {
	return NewWorld(DefaultWorldConfig())
}

// setDelta makes b look as if it moved by dx, dy during the last step.
func setDelta(b *Body, dx, dy float64) {
	b.dx, b.dy = dx, dy
	b.Prev = Vec2{X: b.Position.X - dx, Y: b.Position.Y - dy}
}

func TestEnableSpriteBody(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("hero", 32, 32)
	s.SetPosition(100, 100)
	b := w.Enable(s)

	if s.Body != b || b.GameObject != s {
		t.Fatal("sprite and body should reference each other")
	}
	if b.ID == 0 || w.Body(b.ID) != b {
		t.Error("body should be registered by ID")
	}
	// Origin 0.5: the box is centred on the sprite position.
	assertNear(t, "Position.X", b.Position.X, 84)
	assertNear(t, "Position.Y", b.Position.Y, 84)
	assertNear(t, "Center.X", b.Center.X, 100)
	assertNear(t, "Width", b.Width, 32)
	assertNear(t, "HalfHeight", b.HalfHeight, 16)
	if b.PhysicsType() != PhysicsDynamic {
		t.Error("expected dynamic body")
	}
	if w.Enable(s) != b {
		t.Error("enabling twice should return the same body")
	}
}

func TestBodyDefaults(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)

	if !b.Enable || !b.Moves || !b.AllowGravity || !b.AllowDrag || !b.AllowRotation {
		t.Error("dynamic body flags should default to true")
	}
	if b.Immovable {
		t.Error("dynamic body should not be immovable")
	}
	if b.Mass != 1 {
		t.Errorf("Mass = %v, want 1", b.Mass)
	}
	if b.MaxSpeed != -1 {
		t.Errorf("MaxSpeed = %v, want -1", b.MaxSpeed)
	}
	if b.Friction != (Vec2{X: 1, Y: 0}) {
		t.Errorf("Friction = %v", b.Friction)
	}
	if b.MaxVelocity != (Vec2{X: 10000, Y: 10000}) {
		t.Errorf("MaxVelocity = %v", b.MaxVelocity)
	}
	if b.CheckCollision != AllEdges {
		t.Errorf("CheckCollision = %v", b.CheckCollision)
	}
}

func TestStaticBodyDefaults(t *testing.T) {
	w := newTestWorld()
	b := w.NewStaticBody(0, 0, 10, 10)

	if b.PhysicsType() != PhysicsStatic {
		t.Fatal("expected static body")
	}
	if !b.Immovable || b.Moves || b.AllowGravity || b.AllowRotation {
		t.Error("static body should be immovable and never move")
	}
	if len(w.StaticBodies()) != 1 || len(w.Bodies()) != 0 {
		t.Error("static body should live in the static list only")
	}
}

func TestContainerBodyUsesDefaultSize(t *testing.T) {
	w := newTestWorld()
	s := NewContainer("empty")
	s.SetPosition(10, 20)
	b := w.Enable(s)

	assertNear(t, "Width", b.Width, 64)
	assertNear(t, "Height", b.Height, 64)
	assertNear(t, "Position.X", b.Position.X, 10)
	assertNear(t, "Position.Y", b.Position.Y, 20)
}

func TestSetSizeCentresOnSprite(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 32, 32)
	s.SetPosition(100, 100)
	b := w.Enable(s)

	b.SetSize(16, 8)
	assertNear(t, "Offset.X", b.Offset.X, 8)
	assertNear(t, "Offset.Y", b.Offset.Y, 12)
	assertNear(t, "Width", b.Width, 16)

	w.Update(frame)
	assertNear(t, "Position.X", b.Position.X, 92)
	assertNear(t, "Position.Y", b.Position.Y, 96)
	assertNear(t, "Center.X", b.Center.X, 100)
	assertNear(t, "Center.Y", b.Center.Y, 100)
}

func TestSetSizeZeroUsesFrame(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 20, 30)
	b := w.Enable(s)
	b.SetSize(0, 0)
	assertNear(t, "Width", b.Width, 20)
	assertNear(t, "Height", b.Height, 30)
}

func TestBodyFollowsSpriteScale(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 32, 32)
	s.SetPosition(100, 100)
	b := w.Enable(s)

	s.SetScale(2, 2)
	w.Update(frame)

	assertNear(t, "Width", b.Width, 64)
	assertNear(t, "Position.X", b.Position.X, 68)
	assertNear(t, "Center.X", b.Center.X, 100)
}

func TestSetOffsetAndSize(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 32, 32)
	s.SetPosition(100, 100)
	b := w.Enable(s)

	b.SetOffsetAndSize(4, 2, 10, 10)
	w.Update(frame)

	assertNear(t, "Position.X", b.Position.X, 88)
	assertNear(t, "Position.Y", b.Position.Y, 86)
	assertNear(t, "Width", b.Width, 10)
}

func TestSetCircle(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)

	b.SetCircle(8, 0, 0)
	if !b.IsCircle {
		t.Fatal("expected circle")
	}
	assertNear(t, "Width", b.Width, 16)
	assertNear(t, "Radius", b.Radius, 8)

	b.SetCircle(0, 0, 0)
	if b.IsCircle {
		t.Error("radius 0 should revert to a box")
	}
}

func TestHitTest(t *testing.T) {
	w := newTestWorld()
	box := w.NewBody(0, 0, 20, 20)
	if !box.HitTest(0, 0) || !box.HitTest(20, 20) || box.HitTest(21, 5) {
		t.Error("box hit test should include edges only")
	}

	circle := w.NewBody(0, 0, 20, 20)
	circle.SetCircle(10, 0, 0)
	if !circle.HitTest(10, 10) {
		t.Error("centre should hit")
	}
	if circle.HitTest(1, 1) {
		t.Error("corner should miss the circle")
	}
}

func TestResetTeleportsAndClears(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 32, 32)
	s.SetPosition(100, 100)
	b := w.Enable(s)
	b.SetVelocity(50, 60)
	b.SetAcceleration(1, 2)
	b.AngularVelocity = 3
	b.Touching.Down = true
	b.Blocked.Left = true

	b.Reset(200, 50)

	if s.X != 200 || s.Y != 50 {
		t.Errorf("sprite = (%v, %v), want (200, 50)", s.X, s.Y)
	}
	assertNear(t, "Position.X", b.Position.X, 184)
	assertNear(t, "Position.Y", b.Position.Y, 34)
	if b.Velocity != (Vec2{}) || b.Acceleration != (Vec2{}) || b.AngularVelocity != 0 {
		t.Error("motion should be zeroed")
	}
	if b.Touching.Any() || b.WasTouching.Any() || b.Blocked.Any() {
		t.Error("flags should be cleared")
	}
	if b.Prev != b.Position || b.PrevFrame != b.Position {
		t.Error("previous positions should match the new position")
	}
}

func TestResetBareBody(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.Reset(30, 40)
	assertNear(t, "Position.X", b.Position.X, 30)
	assertNear(t, "Center.Y", b.Center.Y, 45)
}

func TestSetVelocityUpdatesSpeed(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetVelocity(3, 4)
	assertNear(t, "Speed", b.Speed, 5)
	b.SetVelocityX(0)
	assertNear(t, "Speed", b.Speed, 4)
}

func TestSettersDoNotValidate(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetMass(-2)
	b.SetBounce(5, -1)
	if b.Mass != -2 || b.Bounce != (Vec2{X: 5, Y: -1}) {
		t.Error("setters should store values as given")
	}
}

func TestWorldBoundsClamp(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(790, 300, 32, 32)
	b.SetCollideWorldBounds(true)
	b.SetVelocity(200, 0)
	b.OnWorldBounds = true

	var got []Event
	w.OnWorldBounds(func(ev Event) { got = append(got, ev) })

	w.Step(frame)

	assertNear(t, "Right", b.Right(), 800)
	if b.Velocity.X != 0 {
		t.Errorf("Velocity.X = %v, want 0", b.Velocity.X)
	}
	if !b.Touching.Right || !b.Blocked.Right || !b.OnWall() {
		t.Error("right edge should be touching and blocked")
	}
	if len(got) != 1 || got[0].Body1 != b || !got[0].Edges.Right {
		t.Errorf("world bounds events = %+v", got)
	}
}

func TestWorldBoundsBounce(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 585, 10, 10)
	b.SetCollideWorldBounds(true)
	b.SetVelocity(0, 600)
	b.SetBounce(1, 1)

	w.Step(frame)
	assertNear(t, "Bottom", b.Bottom(), 600)
	assertNear(t, "Velocity.Y", b.Velocity.Y, -600)
	if !b.OnFloor() {
		t.Error("expected OnFloor")
	}

	b.SetWorldBounce(0.5, 0.5)
	b.SetVelocity(0, 600)
	w.Step(frame)
	assertNear(t, "Velocity.Y", b.Velocity.Y, -300)
}

func TestWorldBoundsDisabledEdge(t *testing.T) {
	w := newTestWorld()
	w.SetBoundsCollision(true, true, true, false)
	b := w.NewBody(0, 595, 10, 10)
	b.SetCollideWorldBounds(true)

	w.Step(frame)
	if b.Blocked.Down {
		t.Error("disabled bottom edge should not block")
	}
	assertNear(t, "Position.Y", b.Position.Y, 595)
}

func TestCustomBoundsRect(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(40, 0, 20, 20)
	b.SetCollideWorldBounds(true)
	b.SetBoundsRectangle(&Rect{X: 0, Y: 0, Width: 50, Height: 50})

	w.Step(frame)
	assertNear(t, "Right", b.Right(), 50)
	if !b.Blocked.Right {
		t.Error("custom bounds should block")
	}
}

func TestPostUpdateWritesSprite(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 32, 32)
	s.SetPosition(100, 100)
	b := w.Enable(s)
	b.SetVelocity(60, 0)

	w.Update(frame)
	w.PostUpdate()

	assertNear(t, "sprite.X", s.X, 101)
	assertNear(t, "sprite.Y", s.Y, 100)
	if b.Facing != FacingRight {
		t.Errorf("Facing = %v, want FacingRight", b.Facing)
	}
}

func TestDeltaMaxClampsWriteBack(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 32, 32)
	s.SetPosition(100, 100)
	b := w.Enable(s)
	b.SetVelocity(60, -120)
	b.DeltaMax = Vec2{X: 0.5, Y: 0.5}

	w.Update(frame)
	w.PostUpdate()

	assertNear(t, "sprite.X", s.X, 100.5)
	assertNear(t, "sprite.Y", s.Y, 99.5)
	if b.Facing != FacingUp {
		t.Errorf("Facing = %v, want FacingUp", b.Facing)
	}
}

func TestRotationWrittenBack(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 32, 32)
	b := w.Enable(s)
	b.SetAngularVelocity(1)

	w.Update(frame)
	w.PostUpdate()

	assertNear(t, "sprite.Rotation", s.Rotation, frame)
	assertNear(t, "DeltaZ", b.DeltaZ(), frame)
}

func TestMovesFalseStaysPut(t *testing.T) {
	w := newTestWorld()
	w.Gravity = Vec2{Y: 100}
	b := w.NewBody(10, 10, 10, 10)
	b.Moves = false
	b.SetVelocity(100, 100)

	w.Step(frame)
	assertNear(t, "Position.X", b.Position.X, 10)
	assertNear(t, "Position.Y", b.Position.Y, 10)
}

func TestDestroy(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("s", 10, 10)
	b := w.Enable(s)

	b.Destroy()
	b.Destroy() // no-op

	if !b.IsDestroyed() || b.Enable {
		t.Error("body should be destroyed and disabled")
	}
	if s.Body != nil {
		t.Error("sprite should be detached")
	}
	if w.Body(b.ID) != nil || len(w.Bodies()) != 0 {
		t.Error("body should be removed from the world")
	}
}

func TestStaticRefreshReindexes(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("wall", 20, 20)
	s.SetPosition(10, 10)
	b := w.EnableStatic(s)

	if got := w.StaticBodiesWithin(Rect{X: 0, Y: 0, Width: 5, Height: 5}); len(got) != 1 {
		t.Fatalf("before move: %d bodies", len(got))
	}

	s.SetPosition(300, 300)
	b.Refresh()

	if got := w.StaticBodiesWithin(Rect{X: 0, Y: 0, Width: 5, Height: 5}); len(got) != 0 {
		t.Errorf("old area still returns %d bodies", len(got))
	}
	got := w.StaticBodiesWithin(Rect{X: 295, Y: 295, Width: 10, Height: 10})
	if len(got) != 1 || got[0] != b {
		t.Errorf("new area = %v", got)
	}
	assertNear(t, "Position.X", b.Position.X, 290)
}

func TestStaticBodyIgnoresSpriteUntilRefresh(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("wall", 20, 20)
	b := w.EnableStatic(s)

	s.SetPosition(50, 0)
	w.Update(frame)
	assertNear(t, "Position.X", b.Position.X, -10)
}

func TestBoundsAndEdges(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(5, 6, 7, 8)
	r := b.Bounds()
	if r != (Rect{X: 5, Y: 6, Width: 7, Height: 8}) {
		t.Errorf("Bounds = %v", r)
	}
	assertNear(t, "Right", b.Right(), 12)
	assertNear(t, "Bottom", b.Bottom(), 14)
	if math.IsNaN(b.Center.X) {
		t.Error("centre should be set")
	}
}
