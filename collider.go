package arcade

import "fmt"

// CollideCallback is invoked for every pair that collided or overlapped.
// For body/group pairs the single body's object comes first; for tile pairs
// the body's object comes first and obj2 is the *Tile.
type CollideCallback func(obj1, obj2 any)

// ProcessCallback runs after a pair was separated (or found overlapping) and
// before it is counted. Returning false vetoes the pair: it is not counted
// and no callback or event fires, but any separation already applied stays.
type ProcessCallback func(obj1, obj2 any) bool

// TargetKind identifies what a CollisionTarget refers to.
type TargetKind uint8

const (
	TargetNone   TargetKind = iota // nothing; collides with nothing
	TargetBody                     // a single body
	TargetGroup                    // a Group, in insertion order
	TargetBodies                   // a plain slice of bodies
	TargetLayer                    // a tile layer
)

// CollisionTarget is one side of a collide or overlap request.
type CollisionTarget struct {
	Kind   TargetKind
	Body   *Body
	Group  *Group
	Bodies []*Body
	Layer  *TileLayer
}

// ToTarget resolves a value into a CollisionTarget. Accepted values are
// *Body, *Sprite (its body), *Group, []*Body, []*Sprite, *TileLayer and
// CollisionTarget itself. Nil values and sprites without a body resolve to
// TargetNone. Any other type panics.
func ToTarget(obj any) CollisionTarget {
	switch v := obj.(type) {
	case nil:
		return CollisionTarget{}
	case CollisionTarget:
		return v
	case *Body:
		if v == nil {
			return CollisionTarget{}
		}
		return CollisionTarget{Kind: TargetBody, Body: v}
	case *Sprite:
		if v == nil || v.Body == nil {
			return CollisionTarget{}
		}
		return CollisionTarget{Kind: TargetBody, Body: v.Body}
	case *Group:
		if v == nil {
			return CollisionTarget{}
		}
		return CollisionTarget{Kind: TargetGroup, Group: v}
	case []*Body:
		return CollisionTarget{Kind: TargetBodies, Bodies: v}
	case []*Sprite:
		bodies := make([]*Body, 0, len(v))
		for _, s := range v {
			if s != nil && s.Body != nil {
				bodies = append(bodies, s.Body)
			}
		}
		return CollisionTarget{Kind: TargetBodies, Bodies: bodies}
	case *TileLayer:
		if v == nil {
			return CollisionTarget{}
		}
		return CollisionTarget{Kind: TargetLayer, Layer: v}
	}
	panic(fmt.Sprintf("arcade: cannot collide with %T", obj))
}

// isList reports whether the target holds several bodies.
func (t CollisionTarget) isList() bool {
	return t.Kind == TargetGroup || t.Kind == TargetBodies
}

// members returns the bodies of a group or slice target in order.
func (t CollisionTarget) members() []*Body {
	switch t.Kind {
	case TargetGroup:
		return t.Group.bodies
	case TargetBodies:
		return t.Bodies
	}
	return nil
}

// sameList reports whether both targets refer to the same group or slice.
func (t CollisionTarget) sameList(o CollisionTarget) bool {
	switch {
	case t.Kind == TargetGroup && o.Kind == TargetGroup:
		return t.Group == o.Group
	case t.Kind == TargetBodies && o.Kind == TargetBodies:
		return len(t.Bodies) > 0 && len(t.Bodies) == len(o.Bodies) && &t.Bodies[0] == &o.Bodies[0]
	}
	return false
}

// Collider pairs two targets and collides (or overlaps) them on every world
// step, in the order colliders were added.
type Collider struct {
	ID   uint32
	Name string

	Object1 CollisionTarget
	Object2 CollisionTarget

	CollideCallback CollideCallback
	ProcessCallback ProcessCallback

	OverlapOnly bool

	// Active colliders run each step.
	Active bool

	world *World
}

// SetName sets the collider's name and returns it for chaining.
func (c *Collider) SetName(name string) *Collider {
	c.Name = name
	return c
}

// Destroy removes the collider from its world.
func (c *Collider) Destroy() {
	if c.world != nil {
		c.world.RemoveCollider(c)
	}
}

func (c *Collider) update() {
	c.world.collideObjects(c.Object1, c.Object2, c.CollideCallback, c.ProcessCallback, c.OverlapOnly)
}

// AddCollider registers a persistent collider between two objects (see
// ToTarget for the accepted types).
func (w *World) AddCollider(obj1, obj2 any, collideCb CollideCallback, processCb ProcessCallback) *Collider {
	return w.addCollider(obj1, obj2, collideCb, processCb, false)
}

// AddOverlap registers a persistent overlap check between two objects.
func (w *World) AddOverlap(obj1, obj2 any, overlapCb CollideCallback, processCb ProcessCallback) *Collider {
	return w.addCollider(obj1, obj2, overlapCb, processCb, true)
}

func (w *World) addCollider(obj1, obj2 any, collideCb CollideCallback, processCb ProcessCallback, overlapOnly bool) *Collider {
	w.nextColliderID++
	c := &Collider{
		ID:              w.nextColliderID,
		Object1:         ToTarget(obj1),
		Object2:         ToTarget(obj2),
		CollideCallback: collideCb,
		ProcessCallback: processCb,
		OverlapOnly:     overlapOnly,
		Active:          true,
		world:           w,
	}
	if w.locked() {
		w.queue(pendingChange{op: opAddCollider, collider: c})
	} else {
		w.colliders = append(w.colliders, c)
	}
	return c
}

// RemoveCollider removes a collider. Removal requested during a step takes
// effect when the step ends.
func (w *World) RemoveCollider(c *Collider) {
	if w.locked() {
		w.queue(pendingChange{op: opRemoveCollider, collider: c})
		return
	}
	w.removeCollider(c)
}

func (w *World) removeCollider(c *Collider) {
	for i, other := range w.colliders {
		if other == c {
			copy(w.colliders[i:], w.colliders[i+1:])
			w.colliders[len(w.colliders)-1] = nil
			w.colliders = w.colliders[:len(w.colliders)-1]
			return
		}
	}
}

// Colliders returns the registered colliders. The returned slice MUST NOT be
// mutated.
func (w *World) Colliders() []*Collider {
	return w.colliders
}
