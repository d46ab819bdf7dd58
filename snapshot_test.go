package arcade

import (
	"reflect"
	"strings"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	w := newTestWorld()
	a := w.NewBody(10, 20, 10, 10)
	a.SetVelocity(60, -30)
	a.Acceleration = Vec2{X: 1, Y: 2}
	a.AngularVelocity = 0.5
	w.NewStaticBody(0, 100, 200, 10)
	w.Update(frame)
	w.PostUpdate()

	snap := w.Snapshot()
	if snap.Step != 1 || len(snap.Bodies) != 2 {
		t.Fatalf("snapshot step=%d bodies=%d", snap.Step, len(snap.Bodies))
	}
	if snap.Bodies[0].ID != a.ID || snap.Bodies[0].Facing != FacingUp {
		t.Errorf("first body = %+v", snap.Bodies[0])
	}

	data, err := snap.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestUnmarshalSnapshotError(t *testing.T) {
	_, err := UnmarshalSnapshot([]byte{0xc1})
	if err == nil || !strings.Contains(err.Error(), "decode snapshot") {
		t.Errorf("err = %v", err)
	}
}

func TestRestoreRewindsBodiesAndSprites(t *testing.T) {
	w := newTestWorld()
	s := NewSprite("runner", 10, 10)
	s.SetPosition(50, 50)
	b := w.Enable(s)
	b.SetVelocity(60, 0)

	w.Update(frame)
	w.PostUpdate()
	snap := w.Snapshot()
	assertNear(t, "body X at snapshot", b.Position.X, 46)

	w.Update(frame)
	w.PostUpdate()
	w.Update(frame)
	w.PostUpdate()
	b.Velocity.X = 999

	if err := w.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	assertNear(t, "body X", b.Position.X, 46)
	assertNear(t, "sprite X", s.X, 51)
	assertNear(t, "Velocity.X", b.Velocity.X, 60)
	if w.StepCount() != 1 {
		t.Errorf("StepCount = %d, want 1", w.StepCount())
	}

	// The restored world continues from the snapshot.
	w.Update(frame)
	w.PostUpdate()
	assertNear(t, "body X after step", b.Position.X, 47)
	assertNear(t, "sprite X after step", s.X, 52)
}

func TestRestoreStaticBodyReindexes(t *testing.T) {
	w := newTestWorld()
	wall := w.NewStaticBody(0, 0, 10, 10)
	snap := w.Snapshot()
	snap.Bodies[0].Position = Vec2{X: 300, Y: 300}

	if err := w.Restore(snap); err != nil {
		t.Fatal(err)
	}
	if got := w.StaticBodiesWithin(Rect{X: 302, Y: 302, Width: 1, Height: 1}); len(got) != 1 || got[0] != wall {
		t.Errorf("static tree not updated: %v", got)
	}
}

func TestRestoreUnknownBody(t *testing.T) {
	w := newTestWorld()
	b := w.NewBody(0, 0, 10, 10)
	snap := w.Snapshot()
	snap.Bodies[0].Position.X = 25
	snap.Bodies = append(snap.Bodies, BodyState{ID: 99})

	err := w.Restore(snap)
	if err == nil || !strings.Contains(err.Error(), "unknown body ids [99]") {
		t.Errorf("err = %v", err)
	}
	// Known bodies are restored regardless.
	assertNear(t, "X", b.Position.X, 25)
}
