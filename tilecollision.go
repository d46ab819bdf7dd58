package arcade

import "math"

// TileIntersectsBody reports whether the body's box overlaps the tile.
// Touching edges do not count.
func TileIntersectsBody(tile *Tile, b *Body) bool {
	return !(b.Right() <= tile.Left() ||
		b.Bottom() <= tile.Top() ||
		b.Left() >= tile.Right() ||
		b.Top() >= tile.Bottom())
}

// collideSpriteVsTileLayer resolves b against every tile of layer under its
// box. Tiles are visited in row-major order and each one is tested against
// the box as corrected by the tiles before it.
func (w *World) collideSpriteVsTileLayer(b *Body, layer *TileLayer, collideCb CollideCallback, processCb ProcessCallback, overlapOnly bool) bool {
	if !b.Enable {
		return false
	}
	if !overlapOnly && b.CheckCollision.None() {
		return false
	}

	filter := TileFilter{NonEmpty: true, Colliding: !overlapOnly}
	tiles := layer.appendTilesWithinWorldXY(nil, b.Position.X, b.Position.Y, b.Width, b.Height, filter)
	if len(tiles) == 0 {
		return false
	}

	obj := b.object()
	result := false
	for _, tile := range tiles {
		if !TileIntersectsBody(tile, b) {
			continue
		}
		if cb := layer.tileCallback(tile); cb != nil && !cb(obj, tile) {
			continue
		}
		if !overlapOnly && !w.separateTile(b, tile) {
			continue
		}
		if processCb != nil && !processCb(obj, tile) {
			continue
		}

		result = true
		w.total++
		if collideCb != nil {
			collideCb(obj, tile)
		}
		switch {
		case overlapOnly && b.OnOverlap:
			w.emit(Event{Type: EventTileOverlap, Body1: b, Tile: tile, Object1: obj, Object2: tile})
		case !overlapOnly && b.OnCollide:
			w.emit(Event{Type: EventTileCollide, Body1: b, Tile: tile, Object1: obj, Object2: tile, Edges: b.Touching})
		}
	}
	return result
}

// separateTile pushes b out of tile through the tile's faces. The axis with
// the smaller distance to the tile's edges goes first when b moves on both
// axes and the tile has both kinds of face; otherwise the axis b moves
// fastest on goes first. Returns true if b was separated on either axis.
func (w *World) separateTile(b *Body, tile *Tile) bool {
	left, right := tile.Left(), tile.Right()
	top, bottom := tile.Top(), tile.Bottom()

	faceH := tile.FaceLeft || tile.FaceRight
	faceV := tile.FaceTop || tile.FaceBottom
	if !faceH && !faceV {
		return false
	}

	var ox, oy float64
	minX, minY := 0.0, 1.0

	if b.DeltaAbsX() > b.DeltaAbsY() {
		minX = -1
	} else if b.DeltaAbsX() < b.DeltaAbsY() {
		minY = -1
	}

	if b.DeltaX() != 0 && b.DeltaY() != 0 && faceH && faceV {
		minX = math.Min(math.Abs(b.Left()-right), math.Abs(b.Right()-left))
		minY = math.Min(math.Abs(b.Top()-bottom), math.Abs(b.Bottom()-top))
	}

	if minX < minY {
		if faceH {
			ox = w.tileCheckX(b, tile, left, right)
			if ox != 0 && !TileIntersectsBody(tile, b) {
				return true
			}
		}
		if faceV {
			oy = w.tileCheckY(b, tile, top, bottom)
		}
	} else {
		if faceV {
			oy = w.tileCheckY(b, tile, top, bottom)
			if oy != 0 && !TileIntersectsBody(tile, b) {
				return true
			}
		}
		if faceH {
			ox = w.tileCheckX(b, tile, left, right)
		}
	}

	return ox != 0 || oy != 0
}

// tileCheckX tests b's horizontal motion against the tile's left and right
// faces and applies the correction. Overlaps deeper than TileBias are
// ignored. Returns the overlap found.
func (w *World) tileCheckX(b *Body, tile *Tile, left, right float64) float64 {
	var ox float64
	dx := b.DeltaX()

	if dx < 0 && tile.FaceRight && b.CheckCollision.Left {
		if b.Left() < right {
			ox = b.Left() - right
			if ox < -w.TileBias {
				ox = 0
			}
		}
	} else if dx > 0 && tile.FaceLeft && b.CheckCollision.Right {
		if b.Right() > left {
			ox = b.Right() - left
			if ox > w.TileBias {
				ox = 0
			}
		}
	}

	if ox != 0 {
		if b.CustomSeparateX {
			b.OverlapX = ox
		} else {
			processTileSeparationX(b, ox)
		}
	}
	return ox
}

// tileCheckY is the vertical counterpart of tileCheckX.
func (w *World) tileCheckY(b *Body, tile *Tile, top, bottom float64) float64 {
	var oy float64
	dy := b.DeltaY()

	if dy < 0 && tile.FaceBottom && b.CheckCollision.Up {
		if b.Top() < bottom {
			oy = b.Top() - bottom
			if oy < -w.TileBias {
				oy = 0
			}
		}
	} else if dy > 0 && tile.FaceTop && b.CheckCollision.Down {
		if b.Bottom() > top {
			oy = b.Bottom() - top
			if oy > w.TileBias {
				oy = 0
			}
		}
	}

	if oy != 0 {
		if b.CustomSeparateY {
			b.OverlapY = oy
		} else {
			processTileSeparationY(b, oy)
		}
	}
	return oy
}

// processTileSeparationX moves b out of a tile by x. The tile has infinite
// mass: b's velocity is zeroed or reflected by its bounce.
func processTileSeparationX(b *Body, x float64) {
	if x < 0 {
		b.Blocked.Left = true
		b.Touching.Left = true
	} else if x > 0 {
		b.Blocked.Right = true
		b.Touching.Right = true
	}

	b.Position.X -= x
	b.updateCenter()

	if b.Bounce.X == 0 {
		b.Velocity.X = 0
	} else {
		b.Velocity.X = -b.Velocity.X * b.Bounce.X
	}
}

// processTileSeparationY moves b out of a tile by y.
func processTileSeparationY(b *Body, y float64) {
	if y < 0 {
		b.Blocked.Up = true
		b.Touching.Up = true
	} else if y > 0 {
		b.Blocked.Down = true
		b.Touching.Down = true
	}

	b.Position.Y -= y
	b.updateCenter()

	if b.Bounce.Y == 0 {
		b.Velocity.Y = 0
	} else {
		b.Velocity.Y = -b.Velocity.Y * b.Bounce.Y
	}
}
