package arcade

import "math"

// angularEpsilon is the tolerance used when comparing angular velocities
// against drag.
const angularEpsilon = 0.1

// dampingStopSpeed is the speed below which a damped body is brought to rest.
const dampingStopSpeed = 0.001

// updateMotion integrates acceleration, gravity and drag into the body's
// velocity for one step of length delta.
func (w *World) updateMotion(b *Body, delta float64) {
	if b.AllowRotation {
		w.computeAngularVelocity(b, delta)
	}
	w.computeVelocity(b, delta)
}

func (w *World) computeAngularVelocity(b *Body, delta float64) {
	v := b.AngularVelocity

	if b.AngularAcceleration != 0 {
		v += b.AngularAcceleration * delta
	} else if b.AllowDrag && b.AngularDrag != 0 {
		drag := b.AngularDrag * delta
		switch {
		case v-drag > -angularEpsilon && v+drag > angularEpsilon:
			v -= drag
		case v+drag < angularEpsilon && v-drag < -angularEpsilon:
			v += drag
		default:
			v = 0
		}
	}

	v = clampSym(v, b.MaxAngular)
	b.AngularVelocity = v
	b.Rotation += v * delta
}

func (w *World) computeVelocity(b *Body, delta float64) {
	vx, vy := b.Velocity.X, b.Velocity.Y
	ax, ay := b.Acceleration.X, b.Acceleration.Y
	dragX, dragY := b.Drag.X, b.Drag.Y

	if b.AllowGravity {
		vx += (w.Gravity.X + b.Gravity.X) * delta
		vy += (w.Gravity.Y + b.Gravity.Y) * delta
	}

	useDrag := b.AllowDrag

	if ax != 0 {
		vx += ax * delta
	} else if useDrag && dragX != 0 {
		vx = applyDrag(vx, dragX, delta, b.UseDamping)
	}

	if ay != 0 {
		vy += ay * delta
	} else if useDrag && dragY != 0 {
		vy = applyDrag(vy, dragY, delta, b.UseDamping)
	}

	vx = clampSym(vx, b.MaxVelocity.X)
	vy = clampSym(vy, b.MaxVelocity.Y)

	speed := math.Hypot(vx, vy)
	if b.MaxSpeed > -1 && speed > b.MaxSpeed {
		vx = vx / speed * b.MaxSpeed
		vy = vy / speed * b.MaxSpeed
		speed = b.MaxSpeed
	}

	b.Velocity = Vec2{X: vx, Y: vy}
	b.Speed = speed
}

// applyDrag slows v by drag over delta. Linear drag subtracts drag*delta and
// stops at zero; damping multiplies by drag^delta.
func applyDrag(v, drag, delta float64, damping bool) float64 {
	if damping {
		v *= math.Pow(drag, delta)
		if math.Abs(v) < dampingStopSpeed {
			return 0
		}
		return v
	}
	d := drag * delta
	switch {
	case v-d > 0:
		return v - d
	case v+d < 0:
		return v + d
	default:
		return 0
	}
}

// clampSym clamps v to [-max, max].
func clampSym(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
