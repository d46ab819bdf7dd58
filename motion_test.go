package arcade

import (
	"math"
	"testing"
)

func TestGravityIntegration(t *testing.T) {
	w := newTestWorld()
	w.Gravity = Vec2{Y: 600}
	b := w.NewBody(0, 0, 10, 10)

	w.Step(0.1)

	assertNear(t, "Velocity.Y", b.Velocity.Y, 60)
	assertNear(t, "Position.Y", b.Position.Y, 6)
	assertNear(t, "DeltaY", b.DeltaY(), 6)
	assertNear(t, "NewVelocity.Y", b.NewVelocity.Y, 6)
}

func TestBodyGravityAddsToWorld(t *testing.T) {
	w := newTestWorld()
	w.Gravity = Vec2{Y: 600}
	b := w.NewBody(0, 0, 10, 10)
	b.SetGravity(0, 100)

	w.Step(0.1)
	assertNear(t, "Velocity.Y", b.Velocity.Y, 70)
}

func TestAllowGravityFalse(t *testing.T) {
	w := newTestWorld()
	w.Gravity = Vec2{Y: 600}
	b := w.NewBody(0, 0, 10, 10)
	b.SetAllowGravity(false)

	w.Step(0.1)
	assertNear(t, "Velocity.Y", b.Velocity.Y, 0)
}

func TestAcceleration(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetAcceleration(100, 0)
	b.SetDrag(1000, 0)

	w.Step(0.5)
	// Drag does not apply while accelerating on that axis.
	assertNear(t, "Velocity.X", b.Velocity.X, 50)
	assertNear(t, "Position.X", b.Position.X, 25)
}

func TestLinearDrag(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetVelocity(100, -100)
	b.SetDrag(50, 50)

	w.Step(1)
	assertNear(t, "Velocity.X", b.Velocity.X, 50)
	assertNear(t, "Velocity.Y", b.Velocity.Y, -50)

	w.Step(1)
	w.Step(1)
	if b.Velocity != (Vec2{}) {
		t.Errorf("drag should stop at zero, got %v", b.Velocity)
	}
}

func TestAllowDragFalse(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetVelocity(100, 0)
	b.SetDrag(50, 0)
	b.SetAllowDrag(false)

	w.Step(1)
	assertNear(t, "Velocity.X", b.Velocity.X, 100)
}

func TestDamping(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetVelocity(100, 0)
	b.SetDrag(0.5, 0)
	b.SetDamping(true)

	w.Step(1)
	assertNear(t, "Velocity.X", b.Velocity.X, 50)
}

func TestApplyDrag(t *testing.T) {
	tests := []struct {
		name    string
		v, drag float64
		damping bool
		want    float64
	}{
		{"linear positive", 10, 4, false, 6},
		{"linear negative", -10, 4, false, -6},
		{"linear stops", 3, 4, false, 0},
		{"damping", 8, 0.25, true, 2},
		{"damping stops", 0.001, 0.5, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "v", applyDrag(tt.v, tt.drag, 1, tt.damping), tt.want)
		})
	}
}

func TestMaxVelocity(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetVelocity(500, -500)
	b.SetMaxVelocity(100, 200)

	w.Step(frame)
	assertNear(t, "Velocity.X", b.Velocity.X, 100)
	assertNear(t, "Velocity.Y", b.Velocity.Y, -200)
}

func TestMaxSpeed(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetVelocity(300, 400)
	b.SetMaxSpeed(100)

	w.Step(frame)
	assertNear(t, "Velocity.X", b.Velocity.X, 60)
	assertNear(t, "Velocity.Y", b.Velocity.Y, 80)
	assertNear(t, "Speed", b.Speed, 100)
}

func TestAngleAndSpeed(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetVelocity(0, 50)

	w.Step(frame)
	assertNear(t, "Angle", b.Angle, math.Pi/2)
	assertNear(t, "Speed", b.Speed, 50)
}

func TestAngularDrag(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetAngularVelocity(2)
	b.SetAngularDrag(1)

	w.Step(1)
	assertNear(t, "AngularVelocity", b.AngularVelocity, 1)
	assertNear(t, "Rotation", b.Rotation, 1)

	w.Step(1)
	assertNear(t, "AngularVelocity", b.AngularVelocity, 0)
}

func TestAngularAccelerationClamped(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetAngularAcceleration(100)
	b.MaxAngular = 5

	w.Step(1)
	assertNear(t, "AngularVelocity", b.AngularVelocity, 5)
}

func TestAllowRotationFalse(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	b.SetAngularVelocity(2)
	b.SetAllowRotation(false)

	w.Step(1)
	assertNear(t, "Rotation", b.Rotation, 0)
}

func TestClampSym(t *testing.T) {
	assertNear(t, "above", clampSym(5, 3), 3)
	assertNear(t, "below", clampSym(-5, 3), -3)
	assertNear(t, "inside", clampSym(2, 3), 2)
}
