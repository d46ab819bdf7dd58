package arcade

import "math"

// GID flag bits (same convention as Tiled TMX format).
const (
	tileFlipH    uint32 = 1 << 31 // horizontal flip
	tileFlipV    uint32 = 1 << 30 // vertical flip
	tileFlipD    uint32 = 1 << 29 // diagonal flip (90° rotation)
	tileFlagMask uint32 = tileFlipH | tileFlipV | tileFlipD
)

// EmptyTile is the index of a grid cell with no tile.
const EmptyTile = -1

// TileCallback is consulted before a body is resolved against a tile.
// Returning false skips the tile for this body.
type TileCallback func(obj any, tile *Tile) bool

// Tile is one cell of a TileLayer. Collide flags say which sides stop bodies;
// Face flags are the subset of those sides not covered by a colliding
// neighbour, and are what tile collision actually tests.
type Tile struct {
	Index int // EmptyTile for an empty cell
	X, Y  int // grid column and row

	// Flip flags decoded from the GID.
	FlipX, FlipY, FlipD bool

	CollideUp    bool
	CollideDown  bool
	CollideLeft  bool
	CollideRight bool

	FaceTop    bool
	FaceBottom bool
	FaceLeft   bool
	FaceRight  bool

	Properties map[string]any

	// CollisionCallback takes precedence over the layer's index callbacks.
	CollisionCallback TileCallback

	layer *TileLayer
}

// Layer returns the layer this tile belongs to.
func (t *Tile) Layer() *TileLayer { return t.layer }

// IsEmpty reports whether the cell holds no tile.
func (t *Tile) IsEmpty() bool { return t.Index == EmptyTile }

// Collides reports whether any side collides.
func (t *Tile) Collides() bool {
	return t.CollideUp || t.CollideDown || t.CollideLeft || t.CollideRight
}

// HasInterestingFace reports whether any face is set.
func (t *Tile) HasInterestingFace() bool {
	return t.FaceTop || t.FaceBottom || t.FaceLeft || t.FaceRight
}

// Left returns the world X of the tile's left edge.
func (t *Tile) Left() float64 {
	return t.layer.X + float64(t.X)*t.layer.TileWidth
}

// Top returns the world Y of the tile's top edge.
func (t *Tile) Top() float64 {
	return t.layer.Y + float64(t.Y)*t.layer.TileHeight
}

// Right returns the world X of the tile's right edge.
func (t *Tile) Right() float64 { return t.Left() + t.layer.TileWidth }

// Bottom returns the world Y of the tile's bottom edge.
func (t *Tile) Bottom() float64 { return t.Top() + t.layer.TileHeight }

// Bounds returns the tile's world rectangle.
func (t *Tile) Bounds() Rect {
	return Rect{X: t.Left(), Y: t.Top(), Width: t.layer.TileWidth, Height: t.layer.TileHeight}
}

// SetCollision sets the four collide flags and recalculates the faces of
// this tile and its neighbours.
func (t *Tile) SetCollision(left, right, up, down bool) {
	t.CollideLeft = left
	t.CollideRight = right
	t.CollideUp = up
	t.CollideDown = down
	if t.layer != nil {
		t.layer.CalculateFacesAt(t.X, t.Y)
	}
}

// ResetCollision clears every collide and face flag.
func (t *Tile) ResetCollision() {
	t.SetCollision(false, false, false, false)
}

func (t *Tile) setAllCollision(collides bool) {
	t.CollideLeft = collides
	t.CollideRight = collides
	t.CollideUp = collides
	t.CollideDown = collides
}

// TileFilter selects which tiles a range query returns.
type TileFilter struct {
	NonEmpty  bool // skip EmptyTile cells
	Colliding bool // only tiles with at least one collide flag
	HasFace   bool // only tiles with at least one face
}

func (f TileFilter) match(t *Tile) bool {
	if f.NonEmpty && t.IsEmpty() {
		return false
	}
	if f.Colliding && !t.Collides() {
		return false
	}
	if f.HasFace && !t.HasInterestingFace() {
		return false
	}
	return true
}

// TileLayer is a row-major grid of tiles positioned in world space. Bodies
// collide with it through World.Collide and colliders.
type TileLayer struct {
	Name string

	// World position of the layer's top-left corner.
	X, Y float64

	// Tile dimensions in pixels.
	TileWidth  float64
	TileHeight float64

	tiles  []Tile
	width  int // in tiles
	height int // in tiles

	collideIndexes map[int]bool
	indexCallbacks map[int]TileCallback
}

// NewTileLayer creates a layer from row-major tile GIDs (Tiled convention:
// 0 is empty, the top three bits are flip flags). No tile collides until one
// of the SetCollision helpers is called.
func NewTileLayer(name string, w, h int, tileWidth, tileHeight float64, data []uint32) *TileLayer {
	l := &TileLayer{
		Name:       name,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
	}
	l.SetData(data, w, h)
	return l
}

// SetData replaces the whole grid. Collision indexes set earlier are applied
// to the new tiles.
func (l *TileLayer) SetData(data []uint32, w, h int) {
	l.width = w
	l.height = h
	l.tiles = make([]Tile, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := row*w + col
			var gid uint32
			if i < len(data) {
				gid = data[i]
			}
			t := &l.tiles[i]
			t.X, t.Y = col, row
			t.layer = l
			t.setGID(gid)
			t.setAllCollision(l.collideIndexes[t.Index])
		}
	}
	l.CalculateFaces()
}

func (t *Tile) setGID(gid uint32) {
	t.FlipX = gid&tileFlipH != 0
	t.FlipY = gid&tileFlipV != 0
	t.FlipD = gid&tileFlipD != 0
	id := gid &^ tileFlagMask
	if id == 0 {
		t.Index = EmptyTile
		return
	}
	t.Index = int(id)
}

// Width returns the layer width in tiles.
func (l *TileLayer) Width() int { return l.width }

// Height returns the layer height in tiles.
func (l *TileLayer) Height() int { return l.height }

// Bounds returns the layer's world rectangle.
func (l *TileLayer) Bounds() Rect {
	return Rect{
		X: l.X, Y: l.Y,
		Width:  float64(l.width) * l.TileWidth,
		Height: float64(l.height) * l.TileHeight,
	}
}

// TileAt returns the tile at the given grid cell, or nil when out of range.
// Empty cells are returned as tiles with Index EmptyTile.
func (l *TileLayer) TileAt(x, y int) *Tile {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return nil
	}
	return &l.tiles[y*l.width+x]
}

// TileAtWorldXY returns the tile under a world point, or nil.
func (l *TileLayer) TileAtWorldXY(wx, wy float64) *Tile {
	x, y := l.WorldToTileXY(wx, wy)
	return l.TileAt(x, y)
}

// WorldToTileXY converts a world point to grid coordinates.
func (l *TileLayer) WorldToTileXY(wx, wy float64) (int, int) {
	return int(math.Floor((wx - l.X) / l.TileWidth)), int(math.Floor((wy - l.Y) / l.TileHeight))
}

// TileToWorldXY returns the world position of a cell's top-left corner.
func (l *TileLayer) TileToWorldXY(x, y int) (float64, float64) {
	return l.X + float64(x)*l.TileWidth, l.Y + float64(y)*l.TileHeight
}

// PutTileAt places a tile index at a cell (EmptyTile clears it). The tile
// collides if its index was registered through SetCollision and friends.
// Returns nil when out of range.
func (l *TileLayer) PutTileAt(index, x, y int) *Tile {
	t := l.TileAt(x, y)
	if t == nil {
		return nil
	}
	if index <= 0 {
		index = EmptyTile
	}
	t.Index = index
	t.FlipX, t.FlipY, t.FlipD = false, false, false
	t.setAllCollision(index != EmptyTile && l.collideIndexes[index])
	l.CalculateFacesAt(x, y)
	return t
}

// RemoveTileAt empties a cell. Returns the tile (now empty) or nil when out
// of range.
func (l *TileLayer) RemoveTileAt(x, y int) *Tile {
	return l.PutTileAt(EmptyTile, x, y)
}

// --- Collision setup ---

// SetCollision marks tiles with any of the given indexes as colliding on
// every side (or not) and recalculates faces.
func (l *TileLayer) SetCollision(indexes []int, collides bool) {
	for _, idx := range indexes {
		l.setCollideIndex(idx, collides)
	}
	l.applyCollision(func(t *Tile) bool { return containsIndex(indexes, t.Index) }, collides)
}

// SetCollisionBetween is SetCollision for every index in [start, stop].
func (l *TileLayer) SetCollisionBetween(start, stop int, collides bool) {
	if start > stop {
		return
	}
	for idx := start; idx <= stop; idx++ {
		l.setCollideIndex(idx, collides)
	}
	l.applyCollision(func(t *Tile) bool { return t.Index >= start && t.Index <= stop }, collides)
}

// SetCollisionByExclusion is SetCollision for every non-empty index not in
// indexes.
func (l *TileLayer) SetCollisionByExclusion(indexes []int, collides bool) {
	l.applyCollision(func(t *Tile) bool {
		if t.IsEmpty() || containsIndex(indexes, t.Index) {
			return false
		}
		l.setCollideIndex(t.Index, collides)
		return true
	}, collides)
}

// SetCollisionByProperty sets collision on every tile whose Properties hold
// all of the given key/value pairs.
func (l *TileLayer) SetCollisionByProperty(props map[string]any, collides bool) {
	l.applyCollision(func(t *Tile) bool {
		if t.IsEmpty() || len(t.Properties) == 0 {
			return false
		}
		for k, v := range props {
			if pv, ok := t.Properties[k]; !ok || pv != v {
				return false
			}
		}
		return true
	}, collides)
}

// SetPropertiesByIndex assigns the same property map to every tile with the
// given index. Tiled stores properties per tileset entry, this mirrors that.
func (l *TileLayer) SetPropertiesByIndex(index int, props map[string]any) {
	for i := range l.tiles {
		if l.tiles[i].Index == index {
			l.tiles[i].Properties = props
		}
	}
}

func (l *TileLayer) setCollideIndex(idx int, collides bool) {
	if collides {
		if l.collideIndexes == nil {
			l.collideIndexes = make(map[int]bool)
		}
		l.collideIndexes[idx] = true
		return
	}
	delete(l.collideIndexes, idx)
}

func (l *TileLayer) applyCollision(match func(*Tile) bool, collides bool) {
	for i := range l.tiles {
		if t := &l.tiles[i]; match(t) {
			t.setAllCollision(collides)
		}
	}
	l.CalculateFaces()
}

func containsIndex(indexes []int, idx int) bool {
	for _, v := range indexes {
		if v == idx {
			return true
		}
	}
	return false
}

// SetTileIndexCallback registers cb for every tile with one of the given
// indexes. A nil cb removes the callback.
func (l *TileLayer) SetTileIndexCallback(indexes []int, cb TileCallback) {
	for _, idx := range indexes {
		if cb == nil {
			delete(l.indexCallbacks, idx)
			continue
		}
		if l.indexCallbacks == nil {
			l.indexCallbacks = make(map[int]TileCallback)
		}
		l.indexCallbacks[idx] = cb
	}
}

// SetTileLocationCallback sets Tile.CollisionCallback on every tile in the
// given grid area.
func (l *TileLayer) SetTileLocationCallback(x, y, w, h int, cb TileCallback) {
	for _, t := range l.TilesWithin(x, y, w, h, TileFilter{}) {
		t.CollisionCallback = cb
	}
}

// tileCallback returns the predicate that applies to t, if any.
func (l *TileLayer) tileCallback(t *Tile) TileCallback {
	if t.CollisionCallback != nil {
		return t.CollisionCallback
	}
	return l.indexCallbacks[t.Index]
}

// --- Faces ---

// CalculateFaces recalculates the faces of every tile.
func (l *TileLayer) CalculateFaces() {
	l.CalculateFacesWithin(0, 0, l.width, l.height)
}

// CalculateFacesAt recalculates the faces of one cell and its four
// neighbours.
func (l *TileLayer) CalculateFacesAt(x, y int) {
	l.calculateFace(l.TileAt(x, y))
	l.calculateFace(l.TileAt(x, y-1))
	l.calculateFace(l.TileAt(x, y+1))
	l.calculateFace(l.TileAt(x-1, y))
	l.calculateFace(l.TileAt(x+1, y))
}

// CalculateFacesWithin recalculates the faces of every tile in a grid area.
func (l *TileLayer) CalculateFacesWithin(x, y, w, h int) {
	for _, t := range l.TilesWithin(x, y, w, h, TileFilter{}) {
		l.calculateFace(t)
	}
}

// calculateFace sets each face when that side collides and the neighbour on
// that side does not collide.
func (l *TileLayer) calculateFace(t *Tile) {
	if t == nil {
		return
	}
	if !t.Collides() {
		t.FaceTop, t.FaceBottom, t.FaceLeft, t.FaceRight = false, false, false, false
		return
	}
	t.FaceTop = t.CollideUp && !l.collidesAt(t.X, t.Y-1)
	t.FaceBottom = t.CollideDown && !l.collidesAt(t.X, t.Y+1)
	t.FaceLeft = t.CollideLeft && !l.collidesAt(t.X-1, t.Y)
	t.FaceRight = t.CollideRight && !l.collidesAt(t.X+1, t.Y)
}

func (l *TileLayer) collidesAt(x, y int) bool {
	t := l.TileAt(x, y)
	return t != nil && t.Collides()
}

// --- Range queries ---

// TilesWithin returns the tiles in a grid area, clamped to the layer, in
// row-major order.
func (l *TileLayer) TilesWithin(x, y, w, h int, filter TileFilter) []*Tile {
	return l.appendTilesWithin(nil, x, y, w, h, filter)
}

func (l *TileLayer) appendTilesWithin(dst []*Tile, x, y, w, h int, filter TileFilter) []*Tile {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > l.width {
		w = l.width - x
	}
	if y+h > l.height {
		h = l.height - y
	}
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			t := &l.tiles[row*l.width+col]
			if filter.match(t) {
				dst = append(dst, t)
			}
		}
	}
	return dst
}

// TilesWithinWorldXY returns the tiles overlapping a world rectangle in
// row-major order.
func (l *TileLayer) TilesWithinWorldXY(x, y, w, h float64, filter TileFilter) []*Tile {
	return l.appendTilesWithinWorldXY(nil, x, y, w, h, filter)
}

func (l *TileLayer) appendTilesWithinWorldXY(dst []*Tile, x, y, w, h float64, filter TileFilter) []*Tile {
	xStart := int(math.Floor((x - l.X) / l.TileWidth))
	yStart := int(math.Floor((y - l.Y) / l.TileHeight))
	xEnd := int(math.Ceil((x + w - l.X) / l.TileWidth))
	yEnd := int(math.Ceil((y + h - l.Y) / l.TileHeight))
	return l.appendTilesWithin(dst, xStart, yStart, xEnd-xStart, yEnd-yStart, filter)
}
