package icon

import (
	"image"
	"image/color"
)

// Theme colors from the app
var (
	accent     = color.RGBA{R: 0xFF, G: 0x7A, B: 0x59, A: 0xFF}
	darkBG     = color.RGBA{R: 0x14, G: 0x13, B: 0x1A, A: 0xFF}
	phoneBody  = color.RGBA{R: 0x2A, G: 0x28, B: 0x36, A: 0xFF}
	sheetCol   = color.RGBA{R: 0xF4, G: 0xEF, B: 0xE6, A: 0xFF}
	handleCol  = color.RGBA{R: 0xB8, G: 0xB0, B: 0xA4, A: 0xFF}
	backdropCl = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x70}
)

// Generate returns 64x64 and 32x32 icon images for use with ebiten.SetWindowIcon.
func Generate() []image.Image {
	return []image.Image{
		generate(64),
		generate(32),
	}
}

func generate(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	fillRoundedRect(img, 0, 0, s, s, s*0.18, darkBG)
	drawPhone(img, s)
	return img
}

// drawPhone draws a handset with a bottom sheet pulled up over its screen.
func drawPhone(img *image.RGBA, s float64) {
	px, py := s*0.24, s*0.08
	pw, ph := s*0.52, s*0.84
	fillRoundedRect(img, px, py, pw, ph, s*0.08, phoneBody)

	// Screen content behind the sheet: a route line ending in a pin.
	sx, sy := px+s*0.04, py+s*0.06
	sw, sh := pw-s*0.08, ph-s*0.12
	fillRoundedRect(img, sx, sy, sw, sh, s*0.03, color.RGBA{R: 0x3C, G: 0x3A, B: 0x4C, A: 0xFF})
	for i := 0; i < 8; i++ {
		t := float64(i) / 7
		fillCircle(img, sx+sw*(0.2+0.5*t), sy+sh*(0.45-0.3*t*t), s*0.02, accent)
	}
	fillCircle(img, sx+sw*0.7, sy+sh*0.15, s*0.05, accent)

	// Dimmed backdrop, then the sheet itself.
	fillRoundedRect(img, sx, sy, sw, sh, s*0.03, backdropCl)
	sheetY := sy + sh*0.52
	fillRoundedRect(img, sx, sheetY, sw, sy+sh-sheetY, s*0.05, sheetCol)
	fillRoundedRect(img, sx+sw*0.38, sheetY+s*0.03, sw*0.24, s*0.025, s*0.012, handleCol)
	for i, w := range []float64{0.7, 0.5, 0.6} {
		y := sheetY + s*0.09 + float64(i)*s*0.06
		fillRoundedRect(img, sx+sw*0.12, y, sw*w, s*0.025, s*0.012, handleCol)
	}
}

func fillRoundedRect(img *image.RGBA, xf, yf, wf, hf, r float64, c color.Color) {
	bounds := img.Bounds()
	for y := int(yf); y <= int(yf+hf) && y < bounds.Max.Y; y++ {
		for x := int(xf); x <= int(xf+wf) && x < bounds.Max.X; x++ {
			if x < 0 || y < 0 {
				continue
			}
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if fx < xf || fy < yf || fx > xf+wf || fy > yf+hf {
				continue
			}
			// Distance from the nearest corner center, when inside a corner box.
			cx := clamp(fx, xf+r, xf+wf-r)
			cy := clamp(fy, yf+r, yf+hf-r)
			dx, dy := fx-cx, fy-cy
			if dx*dx+dy*dy <= r*r {
				blendPixel(img, x, y, c)
			}
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r float64, c color.Color) {
	fillRoundedRect(img, cx-r, cy-r, 2*r, 2*r, r, c)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// blendPixel alpha-blends color c onto the existing pixel at (x, y).
func blendPixel(img *image.RGBA, x, y int, c color.Color) {
	r, g, b, a := c.RGBA() // premultiplied
	if a == 0 {
		return
	}
	if a == 0xFFFF {
		img.Set(x, y, c)
		return
	}

	dst := img.RGBAAt(x, y)
	inv := 0xFFFF - a
	mix := func(src uint32, d uint8) uint8 {
		return uint8((src + uint32(d)*257*inv/0xFFFF) >> 8)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: mix(r, dst.R),
		G: mix(g, dst.G),
		B: mix(b, dst.B),
		A: 0xFF,
	})
}
