// Package assets builds the sprite images and collision masks used by the
// simulation and the renderer.
//
// Sprites are generated procedurally by default. A directory of PNG files can
// replace them; the expected names are bird1.png, bird2.png, bird3.png,
// pipe.png, base.png and bg.png.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/systems"
)

// ErrAssetMissing is returned when an override directory lacks a required sprite.
var ErrAssetMissing = errors.New("asset missing")

var birdFiles = [3]string{"bird1.png", "bird2.png", "bird3.png"}

const (
	pipeFile       = "pipe.png"
	groundFile     = "base.png"
	backgroundFile = "bg.png"
)

// Bundle holds every sprite at display scale plus the derived collision masks.
type Bundle struct {
	BirdFrames []*image.NRGBA
	PipeBottom *image.NRGBA
	PipeTop    *image.NRGBA // PipeBottom flipped vertically
	Ground     *image.NRGBA
	Background *image.NRGBA

	Masks systems.Silhouettes
}

// NewBundle builds the sprite set described by cfg.
func NewBundle(cfg config.AssetsConfig) (*Bundle, error) {
	var (
		native nativeSprites
		err    error
	)
	if cfg.Dir == "" {
		native = proceduralSprites()
	} else {
		native, err = loadSprites(cfg.Dir)
		if err != nil {
			return nil, err
		}
	}

	scale := cfg.Scale
	if scale < 1 {
		scale = 1
	}

	b := &Bundle{
		PipeBottom: upscale(native.pipe, scale),
		Ground:     upscale(native.ground, scale),
		Background: upscale(native.background, scale),
	}
	b.PipeTop = flipVertical(b.PipeBottom)

	for _, f := range native.bird {
		frame := upscale(f, scale)
		b.BirdFrames = append(b.BirdFrames, frame)
		b.Masks.Bird = append(b.Masks.Bird, systems.MaskFromImage(frame))
	}
	b.Masks.PipeTop = systems.MaskFromImage(b.PipeTop)
	b.Masks.PipeBottom = systems.MaskFromImage(b.PipeBottom)

	return b, nil
}

// MustDefault returns the procedural bundle at the given scale.
func MustDefault(scale int) *Bundle {
	b, err := NewBundle(config.AssetsConfig{Scale: scale})
	if err != nil {
		panic(fmt.Sprintf("assets: procedural bundle: %v", err))
	}
	return b
}

// PipeGeometry returns the on-screen size of one pipe half.
func (b *Bundle) PipeGeometry() systems.PipeGeometry {
	r := b.PipeBottom.Bounds()
	return systems.PipeGeometry{Width: float64(r.Dx()), Height: float64(r.Dy())}
}

// BirdSize returns the on-screen size of a bird frame.
func (b *Bundle) BirdSize() (w, h float64) {
	r := b.BirdFrames[0].Bounds()
	return float64(r.Dx()), float64(r.Dy())
}

// GroundWidth returns the width of one ground tile.
func (b *Bundle) GroundWidth() float64 {
	return float64(b.Ground.Bounds().Dx())
}

type nativeSprites struct {
	bird       []*image.NRGBA
	pipe       *image.NRGBA
	ground     *image.NRGBA
	background *image.NRGBA
}

func proceduralSprites() nativeSprites {
	s := nativeSprites{
		pipe:       drawPipe(),
		ground:     drawGround(),
		background: drawBackground(),
	}
	for _, d := range birdDesigns {
		s.bird = append(s.bird, generateSprite(d, birdPalette, birdNativeW/len(d[0])))
	}
	return s
}

func loadSprites(dir string) (nativeSprites, error) {
	var s nativeSprites
	for _, name := range birdFiles {
		img, err := loadPNG(dir, name)
		if err != nil {
			return s, err
		}
		s.bird = append(s.bird, img)
	}

	var err error
	if s.pipe, err = loadPNG(dir, pipeFile); err != nil {
		return s, err
	}
	if s.ground, err = loadPNG(dir, groundFile); err != nil {
		return s, err
	}
	if s.background, err = loadPNG(dir, backgroundFile); err != nil {
		return s, err
	}
	return s, nil
}

func loadPNG(dir, name string) (*image.NRGBA, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAssetMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening sprite: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// upscale performs nearest-neighbour integer scaling.
func upscale(src *image.NRGBA, k int) *image.NRGBA {
	if k == 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*k, b.Dy()*k))
	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			dst.SetNRGBA(x, y, src.NRGBAAt(b.Min.X+x/k, b.Min.Y+y/k))
		}
	}
	return dst
}

func flipVertical(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetNRGBA(x, b.Dy()-1-y, src.NRGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
