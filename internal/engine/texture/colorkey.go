// Package texture provides image decoding and colour-key processing for
// level materials.
package texture

import (
	"image"
	"image/color"

	"github.com/Faultbox/m64vr/pkg/formats"
)

// ApplyColorKey converts img to NRGBA with alpha derived from key. Pixels
// whose RGB exactly equals the key become fully transparent and keep their
// RGB; every other pixel is fully opaque. A nil key yields an opaque image.
func ApplyColorKey(img image.Image, key *formats.KeyColor) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := rgb8(img.At(x, y))
			a := uint8(255)
			if key != nil && key.Matches(r, g, b) {
				a = 0
			}
			i := out.PixOffset(x, y)
			out.Pix[i] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = b
			out.Pix[i+3] = a
		}
	}

	return out
}

// ToNRGBA converts any image to *image.NRGBA, keeping its alpha channel.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// rgb8 returns the straight (non-premultiplied) 8-bit RGB of c.
func rgb8(c color.Color) (r, g, b uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R, n.G, n.B
}

// HasTransparency reports whether any pixel has alpha below 255.
func HasTransparency(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			return true
		}
	}
	return false
}
