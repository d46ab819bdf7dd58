package arcade

import "math"

// VelocityFromRotation returns a velocity of the given speed pointing along
// rotation (radians, 0 = right, clockwise with Y down).
func VelocityFromRotation(rotation, speed float64) Vec2 {
	sin, cos := math.Sincos(rotation)
	return Vec2{X: cos * speed, Y: sin * speed}
}

// MoveTo sets b's velocity towards the world point x, y. With maxTime > 0
// (seconds) the speed is chosen so the point is reached in that time.
// Returns the angle of travel. The body does not stop at the target.
func MoveTo(b *Body, x, y, speed, maxTime float64) float64 {
	dx := x - b.Center.X
	dy := y - b.Center.Y
	angle := math.Atan2(dy, dx)
	if maxTime > 0 {
		speed = math.Hypot(dx, dy) / maxTime
	}
	b.Velocity = VelocityFromRotation(angle, speed)
	return angle
}

// AccelerateTo sets b's acceleration towards the world point x, y and caps
// its velocity at maxX, maxY. Returns the angle of acceleration.
func AccelerateTo(b *Body, x, y, speed, maxX, maxY float64) float64 {
	angle := math.Atan2(y-b.Center.Y, x-b.Center.X)
	b.Acceleration = VelocityFromRotation(angle, speed)
	b.MaxVelocity = Vec2{X: maxX, Y: maxY}
	return angle
}

// Closest returns the enabled body in targets whose centre is nearest to
// source's centre, ignoring source itself. Nil if there is none.
func Closest(source *Body, targets []*Body) *Body {
	return pickByDistance(source, targets, func(d, best float64) bool { return d < best })
}

// Furthest returns the enabled body in targets whose centre is furthest from
// source's centre, ignoring source itself. Nil if there is none.
func Furthest(source *Body, targets []*Body) *Body {
	return pickByDistance(source, targets, func(d, best float64) bool { return d > best })
}

func pickByDistance(source *Body, targets []*Body, better func(d, best float64) bool) *Body {
	var pick *Body
	var best float64
	for _, t := range targets {
		if t == nil || t == source || !t.Enable {
			continue
		}
		dx := t.Center.X - source.Center.X
		dy := t.Center.Y - source.Center.Y
		d := dx*dx + dy*dy
		if pick == nil || better(d, best) {
			pick = t
			best = d
		}
	}
	return pick
}
