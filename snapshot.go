package arcade

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// BodyState is the restorable state of one body.
type BodyState struct {
	ID                  uint32  `msgpack:"id"`
	Enable              bool    `msgpack:"enable"`
	Position            Vec2    `msgpack:"position"`
	Velocity            Vec2    `msgpack:"velocity"`
	Acceleration        Vec2    `msgpack:"acceleration"`
	Rotation            float64 `msgpack:"rotation"`
	AngularVelocity     float64 `msgpack:"angularVelocity"`
	AngularAcceleration float64 `msgpack:"angularAcceleration"`
	Touching            Edges   `msgpack:"touching"`
	WasTouching         Edges   `msgpack:"wasTouching"`
	Blocked             Edges   `msgpack:"blocked"`
	Facing              Facing  `msgpack:"facing"`
}

// Snapshot captures the state of every body in a world at one point in time.
// It is used for replays and for regression fixtures of scenario runs.
type Snapshot struct {
	Step    uint64      `msgpack:"step"`
	Elapsed float64     `msgpack:"elapsed"`
	Bodies  []BodyState `msgpack:"bodies"`
}

// Snapshot records every dynamic and static body, in that order.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Step:    w.stepCount,
		Elapsed: w.elapsed,
		Bodies:  make([]BodyState, 0, len(w.bodies)+len(w.staticBodies)),
	}
	for _, b := range w.bodies {
		snap.Bodies = append(snap.Bodies, b.state())
	}
	for _, b := range w.staticBodies {
		snap.Bodies = append(snap.Bodies, b.state())
	}
	return snap
}

func (b *Body) state() BodyState {
	return BodyState{
		ID:                  b.ID,
		Enable:              b.Enable,
		Position:            b.Position,
		Velocity:            b.Velocity,
		Acceleration:        b.Acceleration,
		Rotation:            b.Rotation,
		AngularVelocity:     b.AngularVelocity,
		AngularAcceleration: b.AngularAcceleration,
		Touching:            b.Touching,
		WasTouching:         b.WasTouching,
		Blocked:             b.Blocked,
		Facing:              b.Facing,
	}
}

// Restore puts every body in snap back into its recorded state. Sprites are
// moved by the same amount as their bodies. Bodies are matched by ID;
// unknown IDs are reported after the known ones were restored.
func (w *World) Restore(snap Snapshot) error {
	w.stepCount = snap.Step
	w.elapsed = snap.Elapsed

	var missing []uint32
	for _, st := range snap.Bodies {
		b := w.bodyByID[st.ID]
		if b == nil {
			missing = append(missing, st.ID)
			continue
		}
		b.restore(st)
	}
	if len(missing) > 0 {
		return fmt.Errorf("restore snapshot: unknown body ids %v", missing)
	}
	return nil
}

func (b *Body) restore(st BodyState) {
	if s := b.GameObject; s != nil {
		s.X += st.Position.X - b.Position.X
		s.Y += st.Position.Y - b.Position.Y
		s.Rotation += st.Rotation - b.Rotation
	}
	b.Enable = st.Enable
	b.Position = st.Position
	b.Prev = st.Position
	b.PrevFrame = st.Position
	b.Velocity = st.Velocity
	b.Acceleration = st.Acceleration
	b.Rotation = st.Rotation
	b.PreRotation = st.Rotation
	b.AngularVelocity = st.AngularVelocity
	b.AngularAcceleration = st.AngularAcceleration
	b.Touching = st.Touching
	b.WasTouching = st.WasTouching
	b.Blocked = st.Blocked
	b.Facing = st.Facing
	b.dx, b.dy = 0, 0
	b.updateCenter()
	if b.physicsType == PhysicsStatic {
		b.world.reindexStatic(b)
	} else {
		b.world.treeDirty = true
	}
}

// Marshal encodes the snapshot with msgpack.
func (s Snapshot) Marshal() ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot produced by Snapshot.Marshal.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
