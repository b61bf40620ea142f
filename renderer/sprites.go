// Package renderer draws the simulation with raylib. Nothing here feeds back
// into the simulation state.
package renderer

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/assets"
)

// Sprites holds the GPU textures built from an asset bundle.
// Must be created after the window exists and unloaded before it closes.
type Sprites struct {
	Birds      []rl.Texture2D
	PipeTop    rl.Texture2D
	PipeBottom rl.Texture2D
	Ground     rl.Texture2D
	Background rl.Texture2D
}

// LoadSprites uploads every image of the bundle.
func LoadSprites(b *assets.Bundle) *Sprites {
	s := &Sprites{
		PipeTop:    upload(b.PipeTop),
		PipeBottom: upload(b.PipeBottom),
		Ground:     upload(b.Ground),
		Background: upload(b.Background),
	}
	for _, frame := range b.BirdFrames {
		s.Birds = append(s.Birds, upload(frame))
	}
	return s
}

func upload(img image.Image) rl.Texture2D {
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	return tex
}

// Unload releases the textures.
func (s *Sprites) Unload() {
	for _, t := range s.Birds {
		rl.UnloadTexture(t)
	}
	rl.UnloadTexture(s.PipeTop)
	rl.UnloadTexture(s.PipeBottom)
	rl.UnloadTexture(s.Ground)
	rl.UnloadTexture(s.Background)
}
