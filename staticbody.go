package arcade

// EnableStatic creates a static body for s and adds it to the world. Static
// bodies are immovable, never integrated and only follow their sprite when
// refreshed.
func (w *World) EnableStatic(s *Sprite) *Body {
	return w.enable(s, PhysicsStatic)
}

// NewStaticBody creates a static body with no sprite, its top-left corner at
// x, y, and adds it to the world.
func (w *World) NewStaticBody(x, y, width, height float64) *Body {
	b := w.newBareBody(x, y, width, height, PhysicsStatic)
	w.AddBody(b)
	return b
}

// reindexStatic moves b to its current box in the static tree. Bodies not
// yet added to the world are skipped; they are indexed when added.
func (w *World) reindexStatic(b *Body) {
	if !b.inTree {
		return
	}
	w.staticTree.Remove(b)
	w.staticTree.Insert(b)
}

// StaticBodiesWithin returns the enabled static bodies whose boxes touch or
// overlap r, using the static tree.
func (w *World) StaticBodiesWithin(r Rect) []*Body {
	return w.OverlapRect(r.X, r.Y, r.Width, r.Height, false, true)
}
