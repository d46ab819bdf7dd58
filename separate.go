package arcade

import "math"

// Intersects reports whether the boxes of b1 and b2 overlap. Boxes that only
// share an edge do not intersect.
func (w *World) Intersects(b1, b2 *Body) bool {
	if b1 == b2 {
		return false
	}
	return !(b1.Right() <= b2.Left() ||
		b1.Bottom() <= b2.Top() ||
		b1.Left() >= b2.Right() ||
		b1.Top() >= b2.Bottom())
}

// Separate resolves the overlap between two bodies without invoking any
// callbacks. With overlapOnly set it only flags Touching and never moves
// either body. Returns true if the bodies overlapped.
func (w *World) Separate(b1, b2 *Body, overlapOnly bool) bool {
	return w.separate(b1, b2, overlapOnly)
}

func (w *World) separate(b1, b2 *Body, overlapOnly bool) bool {
	if b1 == b2 || !b1.Enable || !b2.Enable {
		return false
	}
	if !overlapOnly && (b1.CheckCollision.None() || b2.CheckCollision.None()) {
		return false
	}
	if !w.Intersects(b1, b2) {
		return false
	}

	px := (b1.HalfWidth + b2.HalfWidth) - math.Abs(b1.Center.X-b2.Center.X)
	py := (b1.HalfHeight + b2.HalfHeight) - math.Abs(b1.Center.Y-b2.Center.Y)

	if overlapOnly {
		if px <= py {
			w.getOverlapX(b1, b2, true)
		} else {
			w.getOverlapY(b1, b2, true)
		}
		return true
	}

	var rx, ry bool
	if px <= py {
		rx = w.separateX(b1, b2)
		if w.Intersects(b1, b2) {
			ry = w.separateY(b1, b2)
		}
	} else {
		ry = w.separateY(b1, b2)
		if w.Intersects(b1, b2) {
			rx = w.separateX(b1, b2)
		}
	}
	return rx || ry
}

// getOverlapX computes the signed horizontal overlap of two intersecting
// bodies from their relative motion, sets Touching (and Blocked against
// immovable partners) and records OverlapX on both. A positive overlap means
// b1 is on the left. The second result reports whether neither body moved
// horizontally, in which case the overlap comes from the centres.
func (w *World) getOverlapX(b1, b2 *Body, overlapOnly bool) (float64, bool) {
	var overlap float64
	embedded := false
	maxOverlap := b1.DeltaAbsX() + b2.DeltaAbsX() + w.OverlapBias

	switch dx1, dx2 := b1.DeltaX(), b2.DeltaX(); {
	case dx1 == 0 && dx2 == 0:
		embedded = true
		b1.Embedded = true
		b2.Embedded = true
		if b1.Center.X <= b2.Center.X {
			overlap = b1.Right() - b2.Left()
		} else {
			overlap = b1.Left() - b2.Right()
		}
	case dx1 > dx2:
		overlap = b1.Right() - b2.Left()
		if overlap > maxOverlap && !overlapOnly {
			overlap = 0
		}
	default:
		overlap = b1.Left() - b2.Right()
		if -overlap > maxOverlap && !overlapOnly {
			overlap = 0
		}
	}

	if !overlapOnly {
		if overlap > 0 && (!b1.CheckCollision.Right || !b2.CheckCollision.Left) {
			overlap = 0
		} else if overlap < 0 && (!b1.CheckCollision.Left || !b2.CheckCollision.Right) {
			overlap = 0
		}
	}

	if overlap > 0 {
		b1.Touching.Right = true
		b2.Touching.Left = true
		if !overlapOnly {
			if b2.Immovable {
				b1.Blocked.Right = true
			}
			if b1.Immovable {
				b2.Blocked.Left = true
			}
		}
	} else if overlap < 0 {
		b1.Touching.Left = true
		b2.Touching.Right = true
		if !overlapOnly {
			if b2.Immovable {
				b1.Blocked.Left = true
			}
			if b1.Immovable {
				b2.Blocked.Right = true
			}
		}
	}

	b1.OverlapX = overlap
	b2.OverlapX = overlap
	return overlap, embedded
}

// getOverlapY is the vertical counterpart of getOverlapX. A positive overlap
// means b1 is above b2.
func (w *World) getOverlapY(b1, b2 *Body, overlapOnly bool) (float64, bool) {
	var overlap float64
	embedded := false
	maxOverlap := b1.DeltaAbsY() + b2.DeltaAbsY() + w.OverlapBias

	switch dy1, dy2 := b1.DeltaY(), b2.DeltaY(); {
	case dy1 == 0 && dy2 == 0:
		embedded = true
		b1.Embedded = true
		b2.Embedded = true
		if b1.Center.Y <= b2.Center.Y {
			overlap = b1.Bottom() - b2.Top()
		} else {
			overlap = b1.Top() - b2.Bottom()
		}
	case dy1 > dy2:
		overlap = b1.Bottom() - b2.Top()
		if overlap > maxOverlap && !overlapOnly {
			overlap = 0
		}
	default:
		overlap = b1.Top() - b2.Bottom()
		if -overlap > maxOverlap && !overlapOnly {
			overlap = 0
		}
	}

	if !overlapOnly {
		if overlap > 0 && (!b1.CheckCollision.Down || !b2.CheckCollision.Up) {
			overlap = 0
		} else if overlap < 0 && (!b1.CheckCollision.Up || !b2.CheckCollision.Down) {
			overlap = 0
		}
	}

	if overlap > 0 {
		b1.Touching.Down = true
		b2.Touching.Up = true
		if !overlapOnly {
			if b2.Immovable {
				b1.Blocked.Down = true
			}
			if b1.Immovable {
				b2.Blocked.Up = true
			}
		}
	} else if overlap < 0 {
		b1.Touching.Up = true
		b2.Touching.Down = true
		if !overlapOnly {
			if b2.Immovable {
				b1.Blocked.Up = true
			}
			if b1.Immovable {
				b2.Blocked.Down = true
			}
		}
	}

	b1.OverlapY = overlap
	b2.OverlapY = overlap
	return overlap, embedded
}

// separateX pushes two overlapping bodies apart horizontally. Returns true if
// a valid overlap existed, even when neither body could be moved.
func (w *World) separateX(b1, b2 *Body) bool {
	overlap, embedded := w.getOverlapX(b1, b2, false)
	if overlap == 0 {
		return false
	}

	ex1 := b1.Immovable || b1.CustomSeparateX
	ex2 := b2.Immovable || b2.CustomSeparateX
	if ex1 && ex2 {
		return true
	}

	v1, v2 := b1.Velocity.X, b2.Velocity.X

	switch {
	case !ex1 && !ex2:
		m1, m2 := b1.Mass, b2.Mass
		b1.Position.X -= overlap * m2 / (m1 + m2)
		b2.Position.X += overlap * m1 / (m1 + m2)
		if !embedded {
			nv1, nv2 := exchangeVelocity(v1, v2, m1, m2)
			b1.Velocity.X = nv1 * b1.Bounce.X
			b2.Velocity.X = nv2 * b2.Bounce.X
		}
	case !ex1:
		b1.Position.X -= overlap
		if !embedded {
			b1.Velocity.X = v2 - v1*b1.Bounce.X
		}
		if b2.Moves {
			b1.Position.Y += (b2.Position.Y - b2.Prev.Y) * b2.Friction.Y
		}
	default:
		b2.Position.X += overlap
		if !embedded {
			b2.Velocity.X = v1 - v2*b2.Bounce.X
		}
		if b1.Moves {
			b2.Position.Y += (b1.Position.Y - b1.Prev.Y) * b1.Friction.Y
		}
	}

	b1.updateCenter()
	b2.updateCenter()
	return true
}

// separateY pushes two overlapping bodies apart vertically. Bodies resting on
// a moving immovable partner are carried along horizontally by its Friction.X.
func (w *World) separateY(b1, b2 *Body) bool {
	overlap, embedded := w.getOverlapY(b1, b2, false)
	if overlap == 0 {
		return false
	}

	ex1 := b1.Immovable || b1.CustomSeparateY
	ex2 := b2.Immovable || b2.CustomSeparateY
	if ex1 && ex2 {
		return true
	}

	v1, v2 := b1.Velocity.Y, b2.Velocity.Y

	switch {
	case !ex1 && !ex2:
		m1, m2 := b1.Mass, b2.Mass
		b1.Position.Y -= overlap * m2 / (m1 + m2)
		b2.Position.Y += overlap * m1 / (m1 + m2)
		if !embedded {
			nv1, nv2 := exchangeVelocity(v1, v2, m1, m2)
			b1.Velocity.Y = nv1 * b1.Bounce.Y
			b2.Velocity.Y = nv2 * b2.Bounce.Y
		}
	case !ex1:
		b1.Position.Y -= overlap
		if !embedded {
			b1.Velocity.Y = v2 - v1*b1.Bounce.Y
		}
		if b2.Moves {
			b1.Position.X += (b2.Position.X - b2.Prev.X) * b2.Friction.X
		}
	default:
		b2.Position.Y += overlap
		if !embedded {
			b2.Velocity.Y = v1 - v2*b2.Bounce.Y
		}
		if b1.Moves {
			b2.Position.X += (b1.Position.X - b1.Prev.X) * b1.Friction.X
		}
	}

	b1.updateCenter()
	b2.updateCenter()
	return true
}

// exchangeVelocity returns the velocities two bodies would leave a collision
// with if each took on the other's momentum, before restitution.
func exchangeVelocity(v1, v2, m1, m2 float64) (float64, float64) {
	nv1 := math.Copysign(math.Sqrt(v2*v2*m2/m1), v2)
	nv2 := math.Copysign(math.Sqrt(v1*v1*m1/m2), v1)
	return nv1, nv2
}
