// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"

	"github.com/EngoEngine/engo/common"
)

// Sprite names
const (
	SpriteCraft  = "craft"
	SpriteOrigin = "origin"
	SpriteCamera = "camera"
)

// craftPattern is a dart pointing up the screen
var craftPattern = [][]int{
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 1, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
	{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1},
}

// ringPattern marks the world origin
var ringPattern = [][]int{
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0},
	{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
	{0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0},
	{0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
}

// crossPattern marks the chase camera
var crossPattern = [][]int{
	{0, 0, 1, 1, 0, 0},
	{0, 0, 1, 1, 0, 0},
	{1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1},
	{0, 0, 1, 1, 0, 0},
	{0, 0, 1, 1, 0, 0},
}

// AssetManager builds and holds the sprites
type AssetManager struct {
	sprites map[string]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[string]common.Drawable),
	}
}

// LoadAssets creates every sprite. It needs an OpenGL context.
func (am *AssetManager) LoadAssets() error {
	white := color.NRGBA{255, 255, 255, 255}
	am.sprites[SpriteCraft] = toTexture(patternImage(craftPattern, white))
	am.sprites[SpriteOrigin] = toTexture(patternImage(ringPattern, white))
	am.sprites[SpriteCamera] = toTexture(patternImage(crossPattern, white))
	return nil
}

// Sprite returns the named sprite, or nil before LoadAssets.
func (am *AssetManager) Sprite(name string) common.Drawable {
	return am.sprites[name]
}

// patternImage draws a pixel pattern into a transparent image sized to the
// pattern's widest row.
func patternImage(pattern [][]int, c color.Color) *image.NRGBA {
	width := 0
	for _, row := range pattern {
		if len(row) > width {
			width = len(row)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, len(pattern)))
	for y, row := range pattern {
		for x, pixel := range row {
			if pixel == 1 {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

func toTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}
