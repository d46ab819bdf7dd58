// Package arcade is an Arcade-style 2D physics core for [Ebitengine].
//
// Arcade moves axis-aligned boxes: every [Body] is integrated with
// acceleration, gravity and drag, kept inside the world bounds, and pushed
// out of other bodies and tile layers with a cheap, stable AABB separation.
// There are no rotated shapes, joints or constraint solvers.
//
// # Quick start
//
// Create a [World], give sprites bodies, register colliders and call
// [World.Tick] from your game's Update:
//
//	world := arcade.NewWorld(arcade.DefaultWorldConfig())
//	world.Gravity = arcade.Vec2{Y: 600}
//
//	player := arcade.NewSprite("player", 32, 48)
//	player.SetPosition(100, 100)
//	body := world.Enable(player)
//	body.SetCollideWorldBounds(true)
//
//	ground := world.NewStaticBody(0, 560, 800, 40)
//	world.AddCollider(player, ground, nil, nil)
//
//	func (g *Game) Update() error { g.world.Tick(); return nil }
//
// # Frames and steps
//
// [World.Update] runs once per frame: bodies are re-synced from their
// sprites, then [World.Step] runs at a fixed rate ([World.FPS]) as many times
// as the elapsed time allows. [World.PostUpdate] writes the frame's movement
// back to the sprites. [World.Tick] does both with the ebiten tick rate.
//
// Each step integrates every dynamic body, rebuilds the broad-phase R-tree
// and runs every active [Collider] in the order it was added.
//
// # Collisions
//
// [World.Collide] and [World.Overlap] resolve bodies, sprites, groups and
// tile layers against each other immediately; [World.AddCollider] and
// [World.AddOverlap] do the same on every step. A [ProcessCallback] can veto
// a pair after it was separated; the separation is not undone.
//
// Static bodies ([World.EnableStatic], [World.NewStaticBody]) are immovable,
// indexed in their own tree and only move when refreshed.
//
// # Tiles
//
// A [TileLayer] holds a grid of tiles with per-side collision flags. Only
// faces not covered by a colliding neighbour are tested, which keeps bodies
// from catching on internal edges. One-way platforms are tiles that collide
// only on their top side.
//
// # Tooling
//
// [WorldConfig] and [Scenario] load from YAML, [Snapshot] encodes body state
// with msgpack, [World.DrawDebug] outlines bodies on an ebiten image, tweens
// (via [gween]) can drive sprites and bodies, and events can be forwarded to
// an ECS via the [Donburi] adapter in arcade/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arcade
