// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-skyrunner/pkg/engine"
)

var (
	hoverColor  = color.RGBA{120, 200, 255, 255}
	cruiseColor = color.RGBA{255, 255, 255, 255}
	markerColor = color.RGBA{128, 128, 128, 255}
	cameraColor = color.RGBA{255, 200, 0, 255}
)

// spriteEntity is one drawn object
type spriteEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements engine.Renderer by moving sprites for the craft,
// the chase camera and the world origin across the ground plane.
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	assets       *AssetManager

	// Pixels per world unit
	scale float32

	craft  *spriteEntity
	camera *spriteEntity
	origin *spriteEntity
}

// NewEngoRenderer creates a new Engo-based renderer
func NewEngoRenderer(scale float32) *EngoRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &EngoRenderer{
		assets: NewAssetManager(),
		scale:  scale,
		craft:  newSpriteEntity(16, 16, cruiseColor),
		camera: newSpriteEntity(6, 6, cameraColor),
		origin: newSpriteEntity(12, 12, markerColor),
	}
}

func newSpriteEntity(width, height float32, c color.Color) *spriteEntity {
	return &spriteEntity{
		BasicEntity:     ecs.NewBasic(),
		RenderComponent: common.RenderComponent{Color: c},
		SpaceComponent:  common.SpaceComponent{Width: width, Height: height},
	}
}

// Initialize loads sprites and adds the entities to the world's render
// system. Needs an OpenGL context.
func (r *EngoRenderer) Initialize(world *ecs.World) error {
	if err := r.assets.LoadAssets(); err != nil {
		return err
	}
	r.craft.Drawable = r.assets.Sprite(SpriteCraft)
	r.camera.Drawable = r.assets.Sprite(SpriteCamera)
	r.origin.Drawable = r.assets.Sprite(SpriteOrigin)

	for _, system := range world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			r.renderSystem = rs
		}
	}
	if r.renderSystem == nil {
		r.renderSystem = &common.RenderSystem{}
		world.AddSystem(r.renderSystem)
	}

	for _, e := range []*spriteEntity{r.origin, r.camera, r.craft} {
		r.renderSystem.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	}
	r.place(r.origin, mgl64.Vec3{})
	return nil
}

// RenderFrame implements engine.Renderer
func (r *EngoRenderer) RenderFrame(frame engine.Frame) {
	r.place(r.craft, frame.Transform.Position)
	// engo rotates clockwise in degrees; heading turns counterclockwise
	// seen from above.
	r.craft.Rotation = -float32(mgl64.RadToDeg(frame.Craft.Heading))
	if frame.Hovering {
		r.craft.Color = hoverColor
	} else {
		r.craft.Color = cruiseColor
	}

	r.place(r.camera, frame.Camera.Position)
}

// place centers e on the ground projection of world.
func (r *EngoRenderer) place(e *spriteEntity, world mgl64.Vec3) {
	ground := groundProjection(world)
	e.Position = engo.Point{
		X: float32(ground.X())*r.scale - e.Width/2,
		Y: float32(ground.Y())*r.scale - e.Height/2,
	}
}

// Remove takes every entity out of the render system
func (r *EngoRenderer) Remove() {
	if r.renderSystem == nil {
		return
	}
	for _, e := range []*spriteEntity{r.origin, r.camera, r.craft} {
		r.renderSystem.Remove(e.BasicEntity)
	}
}
