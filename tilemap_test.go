package arcade

import (
	"slices"
	"testing"
)

// gridData builds row-major GIDs for a w x h layer from rows of indexes.
func gridData(rows ...[]uint32) []uint32 {
	var out []uint32
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

func TestNewTileLayerDecodesGIDs(t *testing.T) {
	l := NewTileLayer("ground", 3, 1, 16, 16, []uint32{0, 5 | tileFlipH, 7 | tileFlipV | tileFlipD})

	if !l.TileAt(0, 0).IsEmpty() {
		t.Error("GID 0 should be empty")
	}
	t1 := l.TileAt(1, 0)
	if t1.Index != 5 || !t1.FlipX || t1.FlipY {
		t.Errorf("tile 1 = %+v", t1)
	}
	t2 := l.TileAt(2, 0)
	if t2.Index != 7 || t2.FlipX || !t2.FlipY || !t2.FlipD {
		t.Errorf("tile 2 = %+v", t2)
	}
	if t2.Layer() != l || t2.X != 2 || t2.Y != 0 {
		t.Error("tile should know its layer and cell")
	}
}

func TestShortDataIsEmpty(t *testing.T) {
	l := NewTileLayer("l", 2, 2, 8, 8, []uint32{1})
	if l.TileAt(0, 0).IsEmpty() || !l.TileAt(1, 1).IsEmpty() {
		t.Error("missing data should become empty cells")
	}
}

func TestTileAtOutOfRange(t *testing.T) {
	l := NewTileLayer("l", 2, 2, 8, 8, nil)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if l.TileAt(c[0], c[1]) != nil {
			t.Errorf("TileAt(%d, %d) should be nil", c[0], c[1])
		}
	}
}

func TestWorldTileConversion(t *testing.T) {
	l := NewTileLayer("l", 4, 4, 16, 8, nil)
	l.X, l.Y = 100, 50

	x, y := l.WorldToTileXY(133, 59)
	if x != 2 || y != 1 {
		t.Errorf("WorldToTileXY = %d, %d", x, y)
	}
	x, y = l.WorldToTileXY(99, 49)
	if x != -1 || y != -1 {
		t.Errorf("WorldToTileXY before origin = %d, %d", x, y)
	}
	wx, wy := l.TileToWorldXY(2, 1)
	assertNear(t, "wx", wx, 132)
	assertNear(t, "wy", wy, 58)
	if l.TileAtWorldXY(99, 60) != nil {
		t.Error("point left of the layer should have no tile")
	}
	if got := l.Bounds(); got != (Rect{X: 100, Y: 50, Width: 64, Height: 32}) {
		t.Errorf("Bounds = %v", got)
	}

	tile := l.TileAt(2, 1)
	if tile.Left() != 132 || tile.Right() != 148 || tile.Top() != 58 || tile.Bottom() != 66 {
		t.Errorf("tile bounds = %v", tile.Bounds())
	}
}

func TestFacesSkipInternalEdges(t *testing.T) {
	l := NewTileLayer("l", 3, 3, 16, 16, gridData(
		[]uint32{1, 1, 1},
		[]uint32{1, 1, 1},
		[]uint32{1, 1, 1},
	))
	l.SetCollision([]int{1}, true)

	center := l.TileAt(1, 1)
	if !center.Collides() || center.HasInterestingFace() {
		t.Errorf("center faces = %+v", center)
	}
	corner := l.TileAt(0, 0)
	if !corner.FaceTop || !corner.FaceLeft || corner.FaceBottom || corner.FaceRight {
		t.Errorf("corner faces = %+v", corner)
	}

	l.RemoveTileAt(1, 0)
	if !center.FaceTop {
		t.Error("removing the tile above should expose the top face")
	}
	if removed := l.TileAt(1, 0); !removed.IsEmpty() || removed.Collides() || removed.HasInterestingFace() {
		t.Errorf("removed tile = %+v", removed)
	}
	if !l.TileAt(0, 0).FaceRight {
		t.Error("left neighbour should get a right face")
	}

	// Index 1 is registered as colliding, so the new tile collides.
	l.PutTileAt(1, 1, 0)
	if center.FaceTop || !l.TileAt(1, 0).Collides() {
		t.Error("putting the tile back should restore collision")
	}
}

func TestOneSidedTileFaces(t *testing.T) {
	l := NewTileLayer("l", 2, 1, 16, 16, []uint32{1, 1})
	l.SetCollision([]int{1}, true)
	l.TileAt(0, 0).SetCollision(false, false, true, false)

	platform := l.TileAt(0, 0)
	if !platform.FaceTop || platform.FaceLeft || platform.FaceRight || platform.FaceBottom {
		t.Errorf("platform faces = %+v", platform)
	}
	// The platform still collides, so the neighbour has no left face.
	if l.TileAt(1, 0).FaceLeft {
		t.Error("neighbour of a colliding tile should not get a face")
	}

	platform.ResetCollision()
	if platform.Collides() || !l.TileAt(1, 0).FaceLeft {
		t.Error("resetting collision should expose the neighbour")
	}
}

func TestPutTileAtOutOfRange(t *testing.T) {
	l := NewTileLayer("l", 2, 2, 8, 8, nil)
	if l.PutTileAt(1, 5, 5) != nil || l.RemoveTileAt(-1, 0) != nil {
		t.Error("out-of-range edits should return nil")
	}
	if tile := l.PutTileAt(0, 0, 0); !tile.IsEmpty() {
		t.Error("index 0 should clear the cell")
	}
}

func TestSetCollisionBetweenAndExclusion(t *testing.T) {
	l := NewTileLayer("l", 4, 1, 8, 8, []uint32{1, 2, 3, 4})

	l.SetCollisionBetween(2, 3, true)
	got := tileIndexes(l.TilesWithin(0, 0, 4, 1, TileFilter{Colliding: true}))
	if !slices.Equal(got, []int{2, 3}) {
		t.Errorf("between = %v", got)
	}

	l.SetCollisionBetween(3, 2, false) // empty range
	l.SetCollisionBetween(2, 3, false)
	l.SetCollisionByExclusion([]int{1}, true)
	got = tileIndexes(l.TilesWithin(0, 0, 4, 1, TileFilter{Colliding: true}))
	if !slices.Equal(got, []int{2, 3, 4}) {
		t.Errorf("exclusion = %v", got)
	}

	// Indexes registered by exclusion apply to new tiles too.
	l.PutTileAt(4, 0, 0)
	if !l.TileAt(0, 0).Collides() {
		t.Error("new tile with a colliding index should collide")
	}
}

func TestSetCollisionByProperty(t *testing.T) {
	l := NewTileLayer("l", 3, 1, 8, 8, []uint32{1, 2, 1})
	l.SetPropertiesByIndex(1, map[string]any{"solid": true})
	l.SetPropertiesByIndex(2, map[string]any{"solid": false})

	l.SetCollisionByProperty(map[string]any{"solid": true}, true)

	got := tileIndexes(l.TilesWithin(0, 0, 3, 1, TileFilter{Colliding: true}))
	if !slices.Equal(got, []int{1, 1}) {
		t.Errorf("colliding = %v", got)
	}
}

func TestSetDataKeepsCollisionIndexes(t *testing.T) {
	l := NewTileLayer("l", 1, 1, 8, 8, []uint32{1})
	l.SetCollision([]int{2}, true)
	l.SetData([]uint32{2, 1}, 2, 1)

	if l.Width() != 2 || l.Height() != 1 {
		t.Fatalf("size = %dx%d", l.Width(), l.Height())
	}
	if !l.TileAt(0, 0).Collides() || l.TileAt(1, 0).Collides() {
		t.Error("SetData should apply registered collision indexes")
	}
}

func TestTilesWithinClamps(t *testing.T) {
	l := NewTileLayer("l", 3, 3, 16, 16, gridData(
		[]uint32{1, 0, 2},
		[]uint32{3, 4, 5},
		[]uint32{6, 7, 8},
	))

	got := l.TilesWithin(-1, -1, 3, 3, TileFilter{})
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0] != l.TileAt(0, 0) || got[3] != l.TileAt(1, 1) {
		t.Error("tiles should come back in row-major order")
	}

	got = l.TilesWithin(0, 0, 3, 1, TileFilter{NonEmpty: true})
	if !slices.Equal(tileIndexes(got), []int{1, 2}) {
		t.Errorf("non-empty = %v", tileIndexes(got))
	}

	if got := l.TilesWithin(5, 5, 2, 2, TileFilter{}); len(got) != 0 {
		t.Errorf("outside = %d tiles", len(got))
	}
}

func TestTilesWithinWorldXY(t *testing.T) {
	l := NewTileLayer("l", 4, 4, 16, 16, nil)
	l.X = 100

	if got := l.TilesWithinWorldXY(100, 0, 16, 16, TileFilter{}); len(got) != 1 || got[0] != l.TileAt(0, 0) {
		t.Errorf("exact tile = %v", got)
	}
	if got := l.TilesWithinWorldXY(108, 8, 16, 16, TileFilter{}); len(got) != 4 {
		t.Errorf("straddling = %d tiles, want 4", len(got))
	}
}

func TestTileCallbackPrecedence(t *testing.T) {
	l := NewTileLayer("l", 2, 1, 8, 8, []uint32{1, 1})
	byIndex := func(any, *Tile) bool { return true }
	byLocation := func(any, *Tile) bool { return false }

	l.SetTileIndexCallback([]int{1}, byIndex)
	l.SetTileLocationCallback(1, 0, 1, 1, byLocation)

	if cb := l.tileCallback(l.TileAt(0, 0)); cb == nil || !cb(nil, nil) {
		t.Error("index callback should apply")
	}
	if cb := l.tileCallback(l.TileAt(1, 0)); cb == nil || cb(nil, nil) {
		t.Error("location callback should take precedence")
	}

	l.SetTileIndexCallback([]int{1}, nil)
	if l.tileCallback(l.TileAt(0, 0)) != nil {
		t.Error("nil callback should remove it")
	}
}

func tileIndexes(tiles []*Tile) []int {
	out := make([]int, len(tiles))
	for i, t := range tiles {
		out[i] = t.Index
	}
	return out
}
