package arcade

import "math"

// computeLocalTransform computes the local affine matrix from the sprite's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale -> Rotate -> Translate(X, Y)
//
// The origin is not part of the matrix; bodies apply it themselves.
func computeLocalTransform(s *Sprite) [6]float64 {
	sin, cos := math.Sincos(s.Rotation)
	return [6]float64{
		cos * s.ScaleX,
		sin * s.ScaleX,
		-sin * s.ScaleY,
		cos * s.ScaleY,
		s.X,
		s.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// worldTransform returns the sprite's matrix accumulated through all of its
// container parents.
func worldTransform(s *Sprite) [6]float64 {
	m := computeLocalTransform(s)
	for p := s.Parent; p != nil; p = p.Parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// decomposedTransform is a matrix broken back down into the properties a
// body needs.
type decomposedTransform struct {
	x, y           float64
	rotation       float64
	scaleX, scaleY float64
	displayOriginX float64
	displayOriginY float64
}

// decompose reads the sprite's transform in world space. Sprites without a
// parent are read directly so negative scales survive.
func decompose(s *Sprite) decomposedTransform {
	t := decomposedTransform{
		displayOriginX: s.DisplayOriginX(),
		displayOriginY: s.DisplayOriginY(),
	}
	if s.Parent == nil {
		t.x, t.y = s.X, s.Y
		t.rotation = s.Rotation
		t.scaleX, t.scaleY = s.ScaleX, s.ScaleY
		return t
	}
	m := worldTransform(s)
	t.x, t.y = m[4], m[5]
	t.rotation = math.Atan2(m[1], m[0])
	t.scaleX = math.Hypot(m[0], m[1])
	t.scaleY = math.Hypot(m[2], m[3])
	return t
}

// WorldPosition returns the sprite's position after applying every
// container parent's transform.
func (s *Sprite) WorldPosition() (float64, float64) {
	if s.Parent == nil {
		return s.X, s.Y
	}
	return transformPoint(worldTransform(s.Parent), s.X, s.Y)
}
