package assets

import (
	"image"
	"image/color"
)

// Bird designs are drawn at half native resolution (17×12 → 34×24).
// Legend:
// . = transparent
// K = outline
// Y = body
// W = wing / eye white
// O = belly
// R = beak
var birdDesigns = [3][]string{
	{ // wing up
		"......KKKKKK.....",
		"....KKYYYKWWK....",
		"...KYYYYKWWWWK...",
		".KKKKYYYKWWWKWK..",
		"KWWWWKYYKWWWKWK..",
		"KWWWWWKYYKWWWWK..",
		"KYWWWYKYYYKKKKKK.",
		".KYYYKYYYKRRRRRRK",
		"..KKKYYYKRKKKKKK.",
		"..KOOOOOOKRRRRRK.",
		"...KKOOOOOKKKKK..",
		".....KKKKK.......",
	},
	{ // wing level
		"......KKKKKK.....",
		"....KKYYYKWWK....",
		"...KYYYYKWWWWK...",
		"..KYYYYYKWWWKWK..",
		".KKKKYYYKWWWKWK..",
		"KWWWWKYYYKWWWWK..",
		"KWWWWWKYYYKKKKKK.",
		".KKKKKYYYKRRRRRRK",
		"..KYYYYYKRKKKKKK.",
		"..KOOOOOOKRRRRRK.",
		"...KKOOOOOKKKKK..",
		".....KKKKK.......",
	},
	{ // wing down
		"......KKKKKK.....",
		"....KKYYYKWWK....",
		"...KYYYYKWWWWK...",
		"..KYYYYYKWWWKWK..",
		"..KYYYYYKWWWKWK..",
		".KKKKKYYYKWWWWK..",
		"KWWWWWKYYYKKKKKK.",
		"KWWWWKYYYKRRRRRRK",
		".KWWKYYYKRKKKKKK.",
		"..KKOOOOOKRRRRRK.",
		"...KKOOOOOKKKKK..",
		".....KKKKK.......",
	},
}

var birdPalette = map[rune]color.NRGBA{
	'K': {R: 84, G: 56, B: 71, A: 255},
	'Y': {R: 247, G: 200, B: 48, A: 255},
	'W': {R: 250, G: 250, B: 250, A: 255},
	'O': {R: 245, G: 160, B: 40, A: 255},
	'R': {R: 230, G: 80, B: 40, A: 255},
}

// Native sprite dimensions, before the configured upscale.
const (
	birdNativeW   = 34
	birdNativeH   = 24
	pipeNativeW   = 52
	pipeNativeH   = 320
	pipeCapH      = 24
	groundNativeW = 336
	groundNativeH = 112
	bgNativeW     = 288
	bgNativeH     = 512

	groundStripes = 12 // native px per grass stripe pair
)

var (
	pipeOutline   = color.NRGBA{R: 84, G: 56, B: 71, A: 255}
	pipeLight     = color.NRGBA{R: 158, G: 227, B: 86, A: 255}
	pipeMid       = color.NRGBA{R: 116, G: 191, B: 46, A: 255}
	pipeDark      = color.NRGBA{R: 85, G: 128, B: 34, A: 255}
	grassLight    = color.NRGBA{R: 156, G: 230, B: 89, A: 255}
	grassDark     = color.NRGBA{R: 115, G: 191, B: 46, A: 255}
	dirt          = color.NRGBA{R: 222, G: 216, B: 149, A: 255}
	dirtEdge      = color.NRGBA{R: 206, G: 173, B: 92, A: 255}
	skyTop        = color.NRGBA{R: 78, G: 192, B: 202, A: 255}
	skyBottom     = color.NRGBA{R: 190, G: 236, B: 230, A: 255}
	cloud         = color.NRGBA{R: 233, G: 252, B: 217, A: 255}
)

// generateSprite converts an ASCII grid into an image, scaling every cell to
// cell×cell pixels.
func generateSprite(design []string, palette map[rune]color.NRGBA, cell int) *image.NRGBA {
	h := len(design)
	w := len(design[0])
	img := image.NewNRGBA(image.Rect(0, 0, w*cell, h*cell))

	for y, row := range design {
		for x, char := range row {
			col, ok := palette[char]
			if !ok {
				continue
			}
			for dy := 0; dy < cell; dy++ {
				for dx := 0; dx < cell; dx++ {
					img.SetNRGBA(x*cell+dx, y*cell+dy, col)
				}
			}
		}
	}
	return img
}

// drawPipe renders a bottom pipe (cap at the top edge) at native size.
func drawPipe() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, pipeNativeW, pipeNativeH))
	const inset = 2

	shade := func(x, left, right int) color.NRGBA {
		switch {
		case x == left || x == right-1:
			return pipeOutline
		case x < left+8:
			return pipeLight
		case x > right-10:
			return pipeDark
		default:
			return pipeMid
		}
	}

	for y := 0; y < pipeNativeH; y++ {
		left, right := inset, pipeNativeW-inset
		if y < pipeCapH {
			left, right = 0, pipeNativeW
		}
		for x := left; x < right; x++ {
			c := shade(x, left, right)
			if y == 0 || y == pipeCapH-1 {
				c = pipeOutline
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// drawGround renders the ground tile with diagonal grass stripes that line up
// across tile boundaries.
func drawGround() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, groundNativeW, groundNativeH))
	const grassH = 12

	for y := 0; y < groundNativeH; y++ {
		for x := 0; x < groundNativeW; x++ {
			var c color.NRGBA
			switch {
			case y == 0 || y == grassH:
				c = pipeOutline
			case y < grassH:
				if ((x+y)/(groundStripes/2))%2 == 0 {
					c = grassLight
				} else {
					c = grassDark
				}
			case y < grassH+4:
				c = dirtEdge
			default:
				c = dirt
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// drawBackground renders a sky gradient with a low cloud bank.
func drawBackground() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, bgNativeW, bgNativeH))
	cloudTop := bgNativeH * 3 / 4

	for y := 0; y < bgNativeH; y++ {
		t := float64(y) / float64(bgNativeH-1)
		row := color.NRGBA{
			R: lerp8(skyTop.R, skyBottom.R, t),
			G: lerp8(skyTop.G, skyBottom.G, t),
			B: lerp8(skyTop.B, skyBottom.B, t),
			A: 255,
		}
		for x := 0; x < bgNativeW; x++ {
			c := row
			// Scalloped cloud edge, one bump every 32 px
			bump := x % 32
			if bump > 16 {
				bump = 32 - bump
			}
			if y >= cloudTop-bump/2 {
				c = cloud
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
