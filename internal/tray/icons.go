package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

var (
	brandGreen = color.RGBA{R: 70, G: 150, B: 43, A: 255}
	badgeAmber = color.RGBA{R: 255, G: 193, B: 7, A: 255}
)

// Tray icons, rendered once at init.
var (
	iconIdle   []byte
	iconUpdate []byte
)

func init() {
	iconIdle = renderIcon(brandGreen, nil)
	iconUpdate = renderIcon(brandGreen, &badgeAmber)
}

const iconSize = 64

// renderIcon draws a filled disc in fill and, when badge is set, a small
// dot in the upper right corner. The result is a 64x64 PNG.
func renderIcon(fill color.RGBA, badge *color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	disc(img, iconSize/2, iconSize/2, 28, fill)
	if badge != nil {
		disc(img, iconSize-12, 12, 11, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		disc(img, iconSize-12, 12, 9, *badge)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// disc paints a circle with a one pixel soft edge over whatever is below.
func disc(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	r2 := float64(radius * radius)
	outer := float64((radius + 1) * (radius + 1))
	for y := cy - radius - 1; y <= cy+radius+1; y++ {
		for x := cx - radius - 1; x <= cx+radius+1; x++ {
			if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
				continue
			}
			dx, dy := float64(x-cx), float64(y-cy)
			d := dx*dx + dy*dy
			switch {
			case d <= r2:
				img.SetRGBA(x, y, c)
			case d <= outer:
				alpha := 1 - (d-r2)/(outer-r2)
				if img.RGBAAt(x, y).A == 0 {
					img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)})
				}
			}
		}
	}
}
