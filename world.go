package arcade

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// World owns every body and collider and drives the simulation: per-frame
// sync from sprites, fixed-step integration, broad phase and colliders.
//
// A World is not safe for concurrent use. Bodies, colliders and group
// members added or removed while the world is stepping (or inside Collide
// and Overlap) are queued and applied when that iteration ends.
type World struct {
	// Gravity is applied to every body with AllowGravity.
	Gravity Vec2

	// Bounds is the rectangle bodies with CollideWorldBounds stay in.
	Bounds Rect
	// CheckCollision enables each bounds edge.
	CheckCollision Edges

	// FPS is the fixed step rate.
	FPS int
	// FixedStep runs Step(1/FPS) as often as elapsed time allows. When false
	// Update steps once with the frame's delta.
	FixedStep bool
	// TimeScale stretches real time per step: 2 runs at half speed.
	TimeScale float64

	// OverlapBias is added to the combined motion of two bodies to get the
	// deepest overlap that is still separated.
	OverlapBias float64
	// TileBias is the deepest tile overlap that is still separated.
	TileBias float64

	// UseTree enables the dynamic R-tree for body/group collisions.
	UseTree bool

	DebugConfig DebugConfig

	bodies       []*Body
	staticBodies []*Body
	bodyByID     map[uint32]*Body
	nextBodyID   uint32

	tree       *rtree
	staticTree *rtree
	treeBuf    []*Body
	// treeDirty is set when the dynamic tree no longer matches the bodies.
	treeDirty bool

	colliders      []*Collider
	nextColliderID uint32

	elapsed        float64
	stepCount      uint64
	stepsLastFrame int
	isPaused       bool

	// total counts resolved pairs; Collide and Overlap compare it before and
	// after dispatch.
	total int

	lockDepth int
	pending   []pendingChange

	handlers handlerRegistry
	store    EventStore
	debug    bool
}

// NewWorld creates an empty world from cfg.
func NewWorld(cfg WorldConfig) *World {
	w := &World{bodyByID: make(map[uint32]*Body)}
	w.applyConfig(cfg)
	return w
}

func (w *World) applyConfig(cfg WorldConfig) {
	w.Gravity = cfg.Gravity
	w.Bounds = cfg.Bounds
	w.CheckCollision = cfg.CheckCollision
	w.FPS = cfg.FPS
	if w.FPS <= 0 {
		w.FPS = DefaultFPS
	}
	w.FixedStep = cfg.FixedStep
	w.TimeScale = cfg.TimeScale
	if w.TimeScale <= 0 {
		w.TimeScale = 1
	}
	w.OverlapBias = cfg.OverlapBias
	w.TileBias = cfg.TileBias
	w.UseTree = cfg.UseTree
	w.DebugConfig = cfg.Debug
	w.tree = newRTree(cfg.MaxEntries)
	w.staticTree = newRTree(cfg.MaxEntries)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-sprite
// access panics and per-step timing stats are logged to stderr.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set World debug flag so that sprite
// operations (which lack a World pointer) can check it cheaply.
var globalDebug bool

// StepCount returns the number of steps run so far.
func (w *World) StepCount() uint64 {
	return w.stepCount
}

// --- Bounds ---

// SetBounds sets the world bounds rectangle.
func (w *World) SetBounds(x, y, width, height float64) {
	w.Bounds = Rect{X: x, Y: y, Width: width, Height: height}
}

// SetBoundsCollision enables or disables each bounds edge.
func (w *World) SetBoundsCollision(left, right, up, down bool) {
	w.CheckCollision = Edges{Up: up, Down: down, Left: left, Right: right}
}

// --- Pause ---

// Pause stops Update from stepping.
func (w *World) Pause() {
	w.isPaused = true
	w.emit(Event{Type: EventPause})
}

// Resume undoes Pause.
func (w *World) Resume() {
	w.isPaused = false
	w.emit(Event{Type: EventResume})
}

// IsPaused reports whether the world is paused.
func (w *World) IsPaused() bool {
	return w.isPaused
}

// --- Bodies ---

// Enable creates a dynamic body for s and adds it to the world. A sprite
// that already has a body keeps it and the body is re-enabled.
func (w *World) Enable(s *Sprite) *Body {
	return w.enable(s, PhysicsDynamic)
}

// Disable destroys the sprite's body.
func (w *World) Disable(s *Sprite) {
	if s.Body != nil {
		s.Body.Destroy()
	}
}

func (w *World) enable(s *Sprite, pt PhysicsType) *Body {
	if globalDebug {
		debugCheckDisposed(s, "Enable")
	}
	if s.Body != nil {
		s.Body.Enable = true
		return s.Body
	}
	b := w.newBody(s, pt)
	s.Body = b
	w.AddBody(b)
	return b
}

// NewBody creates a dynamic body with no sprite, its top-left corner at
// x, y, and adds it to the world.
func (w *World) NewBody(x, y, width, height float64) *Body {
	b := w.newBareBody(x, y, width, height, PhysicsDynamic)
	w.AddBody(b)
	return b
}

func (w *World) newBody(s *Sprite, pt PhysicsType) *Body {
	b := newBody(w, s, pt)
	w.nextBodyID++
	b.ID = w.nextBodyID
	return b
}

func (w *World) newBareBody(x, y, width, height float64, pt PhysicsType) *Body {
	b := w.newBody(nil, pt)
	b.SourceWidth, b.SourceHeight = width, height
	b.Width, b.Height = width, height
	b.HalfWidth, b.HalfHeight = width/2, height/2
	b.Position = Vec2{X: x, Y: y}
	b.Prev = b.Position
	b.PrevFrame = b.Position
	b.updateCenter()
	return b
}

// AddBody adds a body created by this world (or removed from it earlier).
// Adding a body that is already present does nothing.
func (w *World) AddBody(b *Body) {
	if w.locked() {
		w.queue(pendingChange{op: opAddBody, body: b})
		return
	}
	w.addBody(b)
}

func (w *World) addBody(b *Body) {
	if _, ok := w.bodyByID[b.ID]; ok {
		return
	}
	if b.ID == 0 {
		w.nextBodyID++
		b.ID = w.nextBodyID
	}
	b.world = w
	b.destroyed = false
	w.bodyByID[b.ID] = b
	if b.physicsType == PhysicsStatic {
		w.staticBodies = append(w.staticBodies, b)
		w.staticTree.Insert(b)
		b.inTree = true
		return
	}
	w.bodies = append(w.bodies, b)
	w.treeDirty = true
	if w.debug {
		w.debugCheckBodyCount()
	}
}

// RemoveBody takes a body out of the world without destroying it.
func (w *World) RemoveBody(b *Body) {
	if w.locked() {
		w.queue(pendingChange{op: opRemoveBody, body: b})
		return
	}
	w.removeBody(b)
}

func (w *World) removeBody(b *Body) {
	if w.bodyByID[b.ID] != b {
		return
	}
	delete(w.bodyByID, b.ID)
	if b.physicsType == PhysicsStatic {
		w.staticBodies = removeBodyPtr(w.staticBodies, b)
		if b.inTree {
			w.staticTree.Remove(b)
			b.inTree = false
		}
		return
	}
	w.bodies = removeBodyPtr(w.bodies, b)
	w.treeDirty = true
}

func removeBodyPtr(s []*Body, b *Body) []*Body {
	for i, other := range s {
		if other == b {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}

// Body returns the body with the given ID, or nil.
func (w *World) Body(id uint32) *Body {
	return w.bodyByID[id]
}

// Bodies returns the dynamic bodies in insertion order. The returned slice
// MUST NOT be mutated.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// StaticBodies returns the static bodies in insertion order. The returned
// slice MUST NOT be mutated.
func (w *World) StaticBodies() []*Body {
	return w.staticBodies
}

// --- Simulation ---

// Tick advances the world by one ebiten tick and writes the result back to
// the sprites. Call it from ebiten.Game.Update.
func (w *World) Tick() {
	w.Update(1.0 / float64(ebiten.TPS()))
	w.PostUpdate()
}

// Update advances the world by dt seconds of real time: every enabled body
// is synced from its sprite once, then as many fixed steps run as the
// accumulated time allows. Call PostUpdate afterwards to write positions back.
func (w *World) Update(dt float64) {
	w.stepsLastFrame = 0
	if w.isPaused {
		return
	}

	fixedDelta := 1.0 / float64(w.FPS)
	perStep := fixedDelta * w.TimeScale

	for _, b := range w.bodies {
		if b.Enable {
			b.preUpdate()
		}
	}

	if !w.FixedStep {
		w.Step(dt / w.TimeScale)
		w.stepsLastFrame = 1
		return
	}

	w.elapsed += dt
	for w.elapsed >= perStep {
		w.elapsed -= perStep
		w.Step(fixedDelta)
		w.stepsLastFrame++
	}
}

// PostUpdate writes each body's movement for the frame back to its sprite.
// It does nothing if the last Update ran no step.
func (w *World) PostUpdate() {
	if w.stepsLastFrame == 0 {
		return
	}
	for _, b := range w.bodies {
		if b.Enable {
			b.postUpdate()
		}
	}
}

// Step advances the simulation by delta seconds: integrate every dynamic
// body, rebuild the dynamic tree, run every active collider in order and
// emit EventWorldStep.
func (w *World) Step(delta float64) {
	w.lock()
	defer w.unlock()

	var stats debugStats
	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}

	for _, b := range w.bodies {
		if b.Enable {
			b.update(delta)
		}
	}
	for _, b := range w.staticBodies {
		if b.Enable {
			b.resetFlags(false)
		}
	}

	if w.debug {
		stats.integrateTime = time.Since(t0)
		t0 = time.Now()
	}

	if w.UseTree {
		w.rebuildTree()
	} else {
		w.treeDirty = true
	}

	if w.debug {
		stats.treeTime = time.Since(t0)
		t0 = time.Now()
	}

	before := w.total
	for _, c := range w.colliders {
		if c.Active {
			c.update()
		}
	}

	w.stepCount++

	if w.debug {
		stats.colliderTime = time.Since(t0)
		stats.bodyCount = len(w.bodies)
		stats.staticCount = len(w.staticBodies)
		stats.colliderCount = len(w.colliders)
		stats.pairCount = w.total - before
		w.debugLog(stats)
	}

	w.emit(Event{Type: EventWorldStep})
}

// rebuildTree bulk-loads every enabled dynamic body into the dynamic tree.
func (w *World) rebuildTree() {
	w.tree.Clear()
	w.treeBuf = w.treeBuf[:0]
	for _, b := range w.bodies {
		if b.Enable {
			w.treeBuf = append(w.treeBuf, b)
		}
	}
	w.tree.Load(w.treeBuf)
	w.treeDirty = false
}

// syncTree rebuilds the dynamic tree if bodies were added, removed or reset
// since it was last built.
func (w *World) syncTree() {
	if w.treeDirty {
		w.rebuildTree()
	}
}

// --- Collide & overlap ---

// Collide separates obj1 and obj2 (see ToTarget for accepted types) right
// now. collideCb runs for every pair that separated and was not vetoed by
// processCb. Returns true if at least one such pair existed.
func (w *World) Collide(obj1, obj2 any, collideCb CollideCallback, processCb ProcessCallback) bool {
	return w.collideObjects(ToTarget(obj1), ToTarget(obj2), collideCb, processCb, false)
}

// Overlap tests obj1 against obj2 without separating them. Edge collision
// flags are ignored.
func (w *World) Overlap(obj1, obj2 any, overlapCb CollideCallback, processCb ProcessCallback) bool {
	return w.collideObjects(ToTarget(obj1), ToTarget(obj2), overlapCb, processCb, true)
}

func (w *World) collideObjects(t1, t2 CollisionTarget, collideCb CollideCallback, processCb ProcessCallback, overlapOnly bool) bool {
	if t1.Kind == TargetLayer {
		t1, t2 = t2, t1
	}

	w.lock()
	defer w.unlock()
	before := w.total

	switch t1.Kind {
	case TargetBody:
		switch t2.Kind {
		case TargetBody:
			w.collideSpriteVsSprite(t1.Body, t2.Body, collideCb, processCb, overlapOnly)
		case TargetGroup, TargetBodies:
			w.collideSpriteVsGroup(t1.Body, t2, collideCb, processCb, overlapOnly)
		case TargetLayer:
			w.collideSpriteVsTileLayer(t1.Body, t2.Layer, collideCb, processCb, overlapOnly)
		}
	case TargetGroup, TargetBodies:
		switch {
		case t2.Kind == TargetNone || t1.sameList(t2):
			w.collideGroupVsSelf(t1.members(), collideCb, processCb, overlapOnly)
		case t2.Kind == TargetBody:
			w.collideSpriteVsGroup(t2.Body, t1, collideCb, processCb, overlapOnly)
		case t2.isList():
			for _, b := range t1.members() {
				w.collideSpriteVsGroup(b, t2, collideCb, processCb, overlapOnly)
			}
		case t2.Kind == TargetLayer:
			for _, b := range t1.members() {
				w.collideSpriteVsTileLayer(b, t2.Layer, collideCb, processCb, overlapOnly)
			}
		}
	}

	return w.total > before
}

// collideSpriteVsSprite resolves one pair and runs the pair's callbacks.
func (w *World) collideSpriteVsSprite(b1, b2 *Body, collideCb CollideCallback, processCb ProcessCallback, overlapOnly bool) bool {
	if b1 == nil || b2 == nil {
		return false
	}
	if !w.separate(b1, b2, overlapOnly) {
		return false
	}

	obj1, obj2 := b1.object(), b2.object()
	if processCb != nil && !processCb(obj1, obj2) {
		return false
	}

	w.total++
	if collideCb != nil {
		collideCb(obj1, obj2)
	}
	switch {
	case overlapOnly && (b1.OnOverlap || b2.OnOverlap):
		w.emit(Event{Type: EventOverlap, Body1: b1, Body2: b2, Object1: obj1, Object2: obj2})
	case !overlapOnly && (b1.OnCollide || b2.OnCollide):
		w.emit(Event{Type: EventCollide, Body1: b1, Body2: b2, Object1: obj1, Object2: obj2, Edges: b1.Touching})
	}
	return true
}

// collideSpriteVsGroup resolves b against the members of a group or slice.
// Candidates come from the static tree and, when UseTree is set, the dynamic
// tree. Dynamic members of a static group are scanned directly without it.
// Candidates are always resolved in member order.
func (w *World) collideSpriteVsGroup(b *Body, target CollisionTarget, collideCb CollideCallback, processCb ProcessCallback, overlapOnly bool) {
	if b == nil || !b.Enable {
		return
	}
	if !overlapOnly && b.CheckCollision.None() {
		return
	}

	g := target.Group
	if g == nil || (!g.static && !w.UseTree) {
		for _, other := range target.members() {
			if other != b {
				w.collideSpriteVsSprite(b, other, collideCb, processCb, overlapOnly)
			}
		}
		return
	}

	bb := bodyBBox(b)
	var candidates []*Body
	candidates = w.staticTree.appendSearch(candidates, bb)
	switch {
	case g.dynamic == 0:
	case w.UseTree:
		w.syncTree()
		candidates = w.tree.appendSearch(candidates, bb)
	default:
		for _, other := range g.bodies {
			if other.physicsType == PhysicsDynamic {
				candidates = append(candidates, other)
			}
		}
	}

	n := 0
	for _, other := range candidates {
		if other != b && g.Contains(other) {
			candidates[n] = other
			n++
		}
	}
	candidates = candidates[:n]
	slices.SortFunc(candidates, func(a, c *Body) int { return g.order[a] - g.order[c] })

	for _, other := range candidates {
		w.collideSpriteVsSprite(b, other, collideCb, processCb, overlapOnly)
	}
}

// collideGroupVsSelf resolves every unordered pair of members once.
func (w *World) collideGroupVsSelf(members []*Body, collideCb CollideCallback, processCb ProcessCallback, overlapOnly bool) {
	for i := 0; i < len(members)-1; i++ {
		b1 := members[i]
		if b1 == nil || !b1.Enable {
			continue
		}
		for j := i + 1; j < len(members); j++ {
			w.collideSpriteVsSprite(b1, members[j], collideCb, processCb, overlapOnly)
		}
	}
}

// object returns what callbacks receive for b: its sprite, or b itself.
func (b *Body) object() any {
	if b.GameObject != nil {
		return b.GameObject
	}
	return b
}

// --- Queries ---

// OverlapRect returns the enabled bodies whose boxes touch or overlap the
// rectangle. Dynamic bodies come first.
func (w *World) OverlapRect(x, y, width, height float64, includeDynamic, includeStatic bool) []*Body {
	r := Rect{X: x, Y: y, Width: width, Height: height}
	var out []*Body
	if includeDynamic {
		if w.UseTree {
			w.syncTree()
			for _, b := range w.tree.Search(r) {
				if b.Enable && b.Bounds().Intersects(r) {
					out = append(out, b)
				}
			}
		} else {
			for _, b := range w.bodies {
				if b.Enable && b.Bounds().Intersects(r) {
					out = append(out, b)
				}
			}
		}
	}
	if includeStatic {
		for _, b := range w.staticTree.Search(r) {
			if b.Enable {
				out = append(out, b)
			}
		}
	}
	return out
}
