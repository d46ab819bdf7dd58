package arcade

// spriteIDCounter is a plain counter (no atomic, arcade is single-threaded).
var spriteIDCounter uint32

func nextSpriteID() uint32 {
	spriteIDCounter++
	return spriteIDCounter
}

// Sprite is the game object a Body is attached to. It carries only the
// transform the physics core reads and writes: position, rotation, scale,
// origin and frame size. Sprites can be nested under container sprites, in
// which case their body follows the accumulated world transform.
//
// A single flat struct is used for containers and leaf objects alike.
type Sprite struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Sprite
	children []*Sprite

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians

	// OriginX and OriginY are normalized (0..1) within the frame. The default
	// of 0.5 puts X, Y at the frame centre.
	OriginX float64
	OriginY float64

	// Frame size in pixels, before scaling.
	Width  float64
	Height float64

	// Body is the physics body, or nil if physics is not enabled.
	Body *Body

	// Metadata
	UserData any

	disposed bool
}

// spriteDefaults sets the common default field values shared by all constructors.
func spriteDefaults(s *Sprite) {
	s.ID = nextSpriteID()
	s.ScaleX = 1
	s.ScaleY = 1
}

// NewSprite creates a sprite with the given frame size and a centred origin.
func NewSprite(name string, width, height float64) *Sprite {
	s := &Sprite{Name: name, Width: width, Height: height, OriginX: 0.5, OriginY: 0.5}
	spriteDefaults(s)
	return s
}

// NewContainer creates a sprite with no frame, used only to group children
// under a shared transform.
func NewContainer(name string) *Sprite {
	s := &Sprite{Name: name}
	spriteDefaults(s)
	return s
}

// SetPosition sets the local X and Y.
func (s *Sprite) SetPosition(x, y float64) {
	s.X = x
	s.Y = y
}

// SetScale sets the local ScaleX and ScaleY.
func (s *Sprite) SetScale(sx, sy float64) {
	s.ScaleX = sx
	s.ScaleY = sy
}

// SetOrigin sets the normalized origin.
func (s *Sprite) SetOrigin(ox, oy float64) {
	s.OriginX = ox
	s.OriginY = oy
}

// DisplayOriginX returns the origin in frame pixels.
func (s *Sprite) DisplayOriginX() float64 { return s.OriginX * s.Width }

// DisplayOriginY returns the origin in frame pixels.
func (s *Sprite) DisplayOriginY() float64 { return s.OriginY * s.Height }

// DisplayWidth returns the scaled frame width.
func (s *Sprite) DisplayWidth() float64 { return s.Width * abs(s.ScaleX) }

// DisplayHeight returns the scaled frame height.
func (s *Sprite) DisplayHeight() float64 { return s.Height * abs(s.ScaleY) }

// --- Tree manipulation ---

// AddChild appends child to this sprite's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this sprite (cycle).
func (s *Sprite) AddChild(child *Sprite) {
	if child == nil {
		panic("arcade: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(s, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, s) {
		panic("arcade: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = s
	s.children = append(s.children, child)
}

// RemoveChild detaches child from this sprite.
// Panics if child.Parent != s.
func (s *Sprite) RemoveChild(child *Sprite) {
	if child.Parent != s {
		panic("arcade: child's parent is not this sprite")
	}
	s.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this sprite from its parent.
// No-op if this sprite has no parent.
func (s *Sprite) RemoveFromParent() {
	if s.Parent == nil {
		return
	}
	s.Parent.RemoveChild(s)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (s *Sprite) Children() []*Sprite {
	return s.children
}

// NumChildren returns the number of children.
func (s *Sprite) NumChildren() int {
	return len(s.children)
}

// --- Disposal ---

// Dispose removes this sprite from its parent, destroys its body, marks it
// as disposed, and recursively disposes all descendants.
func (s *Sprite) Dispose() {
	if s.disposed {
		return
	}
	s.RemoveFromParent()
	s.dispose()
}

func (s *Sprite) dispose() {
	s.disposed = true
	s.ID = 0
	if s.Body != nil {
		s.Body.Destroy()
	}
	for _, child := range s.children {
		child.Parent = nil
		child.dispose()
	}
	s.children = nil
	s.Parent = nil
	s.UserData = nil
}

// IsDisposed returns true if this sprite has been disposed.
func (s *Sprite) IsDisposed() bool {
	return s.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of sprite.
func isAncestor(candidate, sprite *Sprite) bool {
	for p := sprite; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from s.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (s *Sprite) removeChildByPtr(child *Sprite) {
	for i, c := range s.children {
		if c == child {
			copy(s.children[i:], s.children[i+1:])
			s.children[len(s.children)-1] = nil
			s.children = s.children[:len(s.children)-1]
			return
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
