// physics spawns random boxes and balls with gravity, collisions, and
// click-to-explode. All shapes are procedural (no textures).
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/arcade"
)

const (
	screenW    = 1280
	screenH    = 720
	shapeCount = 100
	gravity    = 450
	bounce     = 0.25
	maxVel     = 720.0

	// Explosion settings
	blastRadius = 350.0
	blastForce  = 3000.0

	// Flash animation
	flashFrames = 12
)

type shape struct {
	baseColor  color.RGBA
	flashTimer int
}

type game struct {
	world  *arcade.World
	shapes *arcade.Group
}

func newGame() *game {
	cfg := arcade.DefaultWorldConfig()
	cfg.Gravity = arcade.Vec2{Y: gravity}
	cfg.Bounds = arcade.Rect{Width: screenW, Height: screenH}
	cfg.Debug.ShowVelocity = false
	world := arcade.NewWorld(cfg)

	defaults := arcade.DefaultGroupConfig()
	defaults.CollideWorldBounds = true
	defaults.Bounce = arcade.Vec2{X: bounce, Y: bounce}
	defaults.MaxVelocity = arcade.Vec2{X: maxVel, Y: maxVel}
	defaults.Drag = arcade.Vec2{X: 20}
	g := &game{world: world, shapes: world.NewGroup("shapes", &defaults)}

	for i := 0; i < shapeCount; i++ {
		size := 30.0 + rand.Float64()*30.0
		s := arcade.NewSprite(fmt.Sprintf("shape%d", i), size, size)
		s.SetPosition(size+rand.Float64()*(screenW-2*size), size+rand.Float64()*(screenH-2*size))
		s.UserData = &shape{baseColor: color.RGBA{
			R: uint8(80 + rand.IntN(175)),
			G: uint8(80 + rand.IntN(175)),
			B: uint8(80 + rand.IntN(175)),
			A: 255,
		}}

		b := g.shapes.Add(s)
		b.Mass = size / 40
		b.SetVelocityX((rand.Float64() - 0.5) * 120)
		if rand.IntN(2) == 0 {
			b.SetCircle(size/2, 0, 0)
		}
	}

	world.AddCollider(g.shapes, nil, nil, nil)
	return g
}

func (g *game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		for _, b := range g.world.OverlapRect(float64(mx), float64(my), 1, 1, true, false) {
			if b.HitTest(float64(mx), float64(my)) {
				g.explode(b)
				break
			}
		}
	}

	g.world.Tick()

	for _, b := range g.shapes.Bodies() {
		if sh := b.GameObject.UserData.(*shape); sh.flashTimer > 0 {
			sh.flashTimer--
		}
	}
	return nil
}

// explode applies a radial blast from the clicked body, flinging nearby shapes
// outward with force that falls off with distance. Lighter shapes fly further.
func (g *game) explode(src *arcade.Body) {
	src.SetVelocity(src.Velocity.X+(rand.Float64()-0.5)*200, -blastForce/src.Mass/4)
	src.GameObject.UserData.(*shape).flashTimer = flashFrames

	cx, cy := src.Center.X, src.Center.Y
	area := g.world.OverlapRect(cx-blastRadius, cy-blastRadius, blastRadius*2, blastRadius*2, true, false)
	for _, b := range area {
		if b == src {
			continue
		}
		dx := b.Center.X - cx
		dy := b.Center.Y - cy
		dist := math.Hypot(dx, dy)
		if dist > blastRadius || dist < 0.1 {
			continue
		}

		strength := blastForce * (1.0 - dist/blastRadius) / b.Mass / 4
		angle := math.Atan2(dy-0.5*dist, dx)
		v := arcade.VelocityFromRotation(angle, strength)
		b.SetVelocity(b.Velocity.X+v.X, b.Velocity.Y+v.Y)
		b.GameObject.UserData.(*shape).flashTimer = int(float64(flashFrames) * (1.0 - dist/blastRadius))
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 15, G: 15, B: 23, A: 255})
	for _, b := range g.shapes.Bodies() {
		sh := b.GameObject.UserData.(*shape)
		clr := sh.baseColor
		if sh.flashTimer > 0 {
			t := float64(sh.flashTimer) / flashFrames
			clr.R = uint8(float64(clr.R) + (255-float64(clr.R))*t)
			clr.G = uint8(float64(clr.G) + (255-float64(clr.G))*t)
			clr.B = uint8(float64(clr.B) + (255-float64(clr.B))*t)
		}
		if b.IsCircle {
			vector.FillCircle(screen, float32(b.Center.X), float32(b.Center.Y), float32(b.HalfWidth), clr, true)
		} else {
			vector.FillRect(screen, float32(b.Position.X), float32(b.Position.Y), float32(b.Width), float32(b.Height), clr, false)
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.world.DrawDebug(screen)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f  steps %d  (click a shape, hold D for debug)",
		ebiten.ActualTPS(), g.world.StepCount()))
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

func main() {
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Arcade — Physics Shapes")
	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
