package arcade

// pendingOp is a structural change requested while the world was iterating.
type pendingOp uint8

const (
	opAddBody pendingOp = iota
	opRemoveBody
	opAddCollider
	opRemoveCollider
	opGroupAdd
	opGroupRemove
)

type pendingChange struct {
	op       pendingOp
	body     *Body
	collider *Collider
	group    *Group
}

// lock marks the world as iterating. Locks nest: Collide can be called from
// inside a collider callback.
func (w *World) lock() {
	w.lockDepth++
}

// unlock releases one lock level and applies queued changes once the
// outermost iteration has finished.
func (w *World) unlock() {
	w.lockDepth--
	if w.lockDepth == 0 {
		w.flushPending()
	}
}

func (w *World) locked() bool {
	return w.lockDepth > 0
}

func (w *World) queue(c pendingChange) {
	w.pending = append(w.pending, c)
}

// flushPending applies queued changes in FIFO order. Changes queued by the
// changes themselves are applied in the same pass.
func (w *World) flushPending() {
	for len(w.pending) > 0 {
		c := w.pending[0]
		copy(w.pending, w.pending[1:])
		w.pending[len(w.pending)-1] = pendingChange{}
		w.pending = w.pending[:len(w.pending)-1]

		switch c.op {
		case opAddBody:
			w.addBody(c.body)
		case opRemoveBody:
			w.removeBody(c.body)
		case opAddCollider:
			w.colliders = append(w.colliders, c.collider)
		case opRemoveCollider:
			w.removeCollider(c.collider)
		case opGroupAdd:
			c.group.add(c.body)
		case opGroupRemove:
			c.group.remove(c.body)
		}
	}
}

// PendingChanges returns the number of queued structural changes.
func (w *World) PendingChanges() int {
	return len(w.pending)
}
