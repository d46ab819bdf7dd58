package arcade

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugStats holds per-step timing and collision metrics.
// Only populated when World.debug is true.
type debugStats struct {
	integrateTime time.Duration
	treeTime      time.Duration
	colliderTime  time.Duration
	bodyCount     int
	staticCount   int
	colliderCount int
	pairCount     int
}

// debugLog prints timing and collision stats to stderr.
func (w *World) debugLog(stats debugStats) {
	if !w.debug {
		return
	}
	total := stats.integrateTime + stats.treeTime + stats.colliderTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[arcade] step %d | integrate: %v | tree: %v | colliders: %v | total: %v\n",
		w.stepCount, stats.integrateTime, stats.treeTime, stats.colliderTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[arcade] bodies: %d | static: %d | colliders: %d | pairs: %d\n",
		stats.bodyCount, stats.staticCount, stats.colliderCount, stats.pairCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed sprite
// is used in a tree or physics operation. Callers only invoke this in debug
// mode.
func debugCheckDisposed(s *Sprite, op string) {
	if s.disposed {
		panic(fmt.Sprintf("arcade debug: %s on disposed sprite %q", op, s.Name))
	}
}

// debugMaxBodyCount is the body count above which debug mode warns that the
// world should probably enable UseTree.
const debugMaxBodyCount = 1000

func (w *World) debugCheckBodyCount() {
	if !w.UseTree && len(w.bodies) > debugMaxBodyCount {
		_, _ = fmt.Fprintf(os.Stderr, "[arcade] warning: %d dynamic bodies with UseTree disabled (threshold %d)\n",
			len(w.bodies), debugMaxBodyCount)
	}
}

// DrawDebug outlines every body onto screen using the world's DebugConfig:
// dynamic bodies, static bodies, a velocity line from each dynamic body's
// centre, and a thicker stroke on blocked edges.
func (w *World) DrawDebug(screen *ebiten.Image) {
	cfg := w.DebugConfig
	if cfg.ShowStaticBody {
		clr := cfg.StaticBodyColor.toRGBA()
		for _, b := range w.staticBodies {
			if b.Enable {
				drawBodyOutline(screen, b, clr)
			}
		}
	}
	if !cfg.ShowBody && !cfg.ShowVelocity {
		return
	}
	bodyClr := cfg.BodyColor.toRGBA()
	velClr := cfg.VelocityColor.toRGBA()
	blockedClr := cfg.BlockedColor.toRGBA()
	for _, b := range w.bodies {
		if !b.Enable {
			continue
		}
		if cfg.ShowBody {
			drawBodyOutline(screen, b, bodyClr)
			drawBlockedEdges(screen, b, blockedClr)
		}
		if cfg.ShowVelocity {
			cx, cy := float32(b.Center.X), float32(b.Center.Y)
			vector.StrokeLine(screen, cx, cy,
				cx+float32(b.Velocity.X/2), cy+float32(b.Velocity.Y/2), 1, velClr, true)
		}
	}
}

func drawBodyOutline(screen *ebiten.Image, b *Body, clr color.RGBA) {
	if b.IsCircle {
		vector.StrokeCircle(screen, float32(b.Center.X), float32(b.Center.Y),
			float32(math.Max(b.HalfWidth, b.HalfHeight)), 1, clr, true)
		return
	}
	vector.StrokeRect(screen, float32(b.Position.X), float32(b.Position.Y),
		float32(b.Width), float32(b.Height), 1, clr, false)
}

func drawBlockedEdges(screen *ebiten.Image, b *Body, clr color.RGBA) {
	if b.Blocked.None() {
		return
	}
	l, t := float32(b.Left()), float32(b.Top())
	r, btm := float32(b.Right()), float32(b.Bottom())
	if b.Blocked.Up {
		vector.StrokeLine(screen, l, t, r, t, 3, clr, false)
	}
	if b.Blocked.Down {
		vector.StrokeLine(screen, l, btm, r, btm, 3, clr, false)
	}
	if b.Blocked.Left {
		vector.StrokeLine(screen, l, t, l, btm, 3, clr, false)
	}
	if b.Blocked.Right {
		vector.StrokeLine(screen, r, t, r, btm, 3, clr, false)
	}
}
