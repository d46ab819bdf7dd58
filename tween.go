package arcade

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields on a Sprite simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation) and call Update(dt) each frame. Static bodies on the sprite
// are refreshed after every write; dynamic bodies pick the change up at the
// next World.Update. If the sprite is disposed, the group stops immediately.
//
// There is no global animation manager: users call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	target *Sprite
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the sprite.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil && g.target.Body != nil && g.target.Body.physicsType == PhysicsStatic {
		g.target.Body.Refresh()
	}
}

// TweenPosition creates a TweenGroup that animates s.X and s.Y to the given
// target coordinates over the specified duration using the easing function.
func TweenPosition(s *Sprite, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: s}
	g.tweens[0] = gween.New(float32(s.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(s.Y), float32(toY), duration, fn)
	g.fields[0] = &s.X
	g.fields[1] = &s.Y
	return g
}

// TweenScale creates a TweenGroup that animates s.ScaleX and s.ScaleY. Bodies
// resize with the scale.
func TweenScale(s *Sprite, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: s}
	g.tweens[0] = gween.New(float32(s.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(s.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &s.ScaleX
	g.fields[1] = &s.ScaleY
	return g
}

// TweenRotation creates a TweenGroup that animates s.Rotation (radians).
func TweenRotation(s *Sprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: s}
	g.tweens[0] = gween.New(float32(s.Rotation), float32(to), duration, fn)
	g.fields[0] = &s.Rotation
	return g
}

// BodyTween moves a dynamic body along an eased path by setting its
// velocity, so the world integrates the motion and bodies resting on it are
// carried along. Call Update(dt) once per frame before World.Update with the
// same dt.
type BodyTween struct {
	tx, ty  *gween.Tween
	body    *Body
	arrived bool
	Done    bool
}

// TweenBodyTo creates a BodyTween that brings b's top-left corner to toX, toY
// over duration seconds. The body should not be affected by gravity or drag.
func TweenBodyTo(b *Body, toX, toY float64, duration float32, fn ease.TweenFunc) *BodyTween {
	return &BodyTween{
		tx:   gween.New(float32(b.Position.X), float32(toX), duration, fn),
		ty:   gween.New(float32(b.Position.Y), float32(toY), duration, fn),
		body: b,
	}
}

// Update advances the tween and sets the body's velocity so the next dt of
// simulation lands it on the eased position. The call after arrival zeroes
// the velocity and sets Done.
func (t *BodyTween) Update(dt float32) {
	if t.Done {
		return
	}
	b := t.body
	if b.destroyed || t.arrived {
		b.Velocity = Vec2{}
		t.Done = true
		return
	}

	x, fx := t.tx.Update(dt)
	y, fy := t.ty.Update(dt)
	if d := float64(dt); d > 0 {
		b.Velocity = Vec2{
			X: (float64(x) - b.Position.X) / d,
			Y: (float64(y) - b.Position.Y) / d,
		}
	}
	t.arrived = fx && fy
}
