package arcade

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedChildPanics(t *testing.T) {
	w := newTestWorld()
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	parent := NewContainer("parent")
	child := NewSprite("child", 10, 10)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed sprite, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestReleaseMode_DisposedSpriteNoPanic(t *testing.T) {
	w := newTestWorld()
	w.SetDebugMode(false)

	s := NewSprite("ghost", 10, 10)
	s.Dispose()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic on disposed sprite, got: %v", r)
		}
	}()

	w.Enable(s)
}

func TestDebugMode_StepStats(t *testing.T) {
	w := newTestWorld()
	a := w.NewBody(0, 0, 10, 10)
	b := w.NewBody(5, 0, 10, 10)
	w.AddOverlap(a, b, nil, nil)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	output := captureStderr(t, func() { w.Step(frame) })

	if !strings.Contains(output, "[arcade] step 1") {
		t.Errorf("expected step timing line, got: %q", output)
	}
	if !strings.Contains(output, "bodies: 2") || !strings.Contains(output, "pairs: 1") {
		t.Errorf("expected body and pair counts, got: %q", output)
	}
}

func TestReleaseMode_NoStepStats(t *testing.T) {
	w := newTestWorld()
	w.NewBody(0, 0, 10, 10)

	output := captureStderr(t, func() { w.Step(frame) })
	if output != "" {
		t.Errorf("release mode should not log, got: %q", output)
	}
}

func TestDebugMode_BodyCountWarning(t *testing.T) {
	w := newTestWorld()
	w.UseTree = false
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	output := captureStderr(t, func() {
		for i := 0; i < debugMaxBodyCount+1; i++ {
			w.NewBody(0, 0, 1, 1)
		}
	})

	if !strings.Contains(output, "warning:") || !strings.Contains(output, "UseTree") {
		t.Errorf("expected body count warning in stderr, got: %q", output)
	}
}

func TestDebugStats_AllFieldsPopulated(t *testing.T) {
	stats := debugStats{
		integrateTime: 100,
		treeTime:      50,
		colliderTime:  30,
		bodyCount:     1000,
		staticCount:   10,
		colliderCount: 3,
		pairCount:     15,
	}

	if stats.integrateTime == 0 || stats.treeTime == 0 || stats.colliderTime == 0 {
		t.Error("expected all timing fields to be non-zero")
	}
	if stats.bodyCount == 0 || stats.pairCount == 0 {
		t.Error("expected count fields to be non-zero")
	}
}

func TestDrawDebug(t *testing.T) {
	w := newTestWorld()
	box := w.NewBody(10, 10, 20, 20)
	box.SetVelocity(50, -20)
	box.Blocked = AllEdges

	ball := w.NewBody(100, 100, 20, 20)
	ball.SetCircle(10, 0, 0)

	w.NewStaticBody(0, 200, 300, 20)
	hidden := w.NewBody(50, 50, 5, 5)
	hidden.Enable = false

	screen := ebiten.NewImage(320, 240)
	w.DrawDebug(screen)

	w.DebugConfig.ShowBody = false
	w.DebugConfig.ShowVelocity = false
	w.DrawDebug(screen)
}

func TestColorToRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 1}.toRGBA()
	if c.R != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("toRGBA = %+v", c)
	}
}
