// Package filter turns white and near-white pixels transparent.
package filter

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// DefaultThreshold is the per-channel lower bound used when none is configured.
const DefaultThreshold uint8 = 240

// Counts describes what RemoveWhite did to an image.
type Counts struct {
	Matched int // pixels classified as background
	Cleared int // background pixels whose alpha was non-zero before
}

// IsBackground reports whether all three colour channels are strictly above threshold.
func IsBackground(c color.NRGBA, threshold uint8) bool {
	return c.R > threshold && c.G > threshold && c.B > threshold
}

// RemoveWhite returns a copy of src in which every background pixel has alpha 0.
// Other pixels keep their alpha, and RGB values and dimensions are never changed.
func RemoveWhite(src image.Image, threshold uint8) (*image.NRGBA, Counts) {
	dst := ToNRGBA(src)
	var counts Counts
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			if row[i] > threshold && row[i+1] > threshold && row[i+2] > threshold {
				counts.Matched++
				if row[i+3] != 0 {
					counts.Cleared++
					row[i+3] = 0
				}
			}
		}
	}
	return dst, counts
}

// ToNRGBA copies src into a new origin-based 8-bit straight-alpha image.
// Sources without transparency get alpha 255 everywhere.
func ToNRGBA(src image.Image) *image.NRGBA {
	if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
		// premultiplied and straight alpha agree when every pixel is opaque
		rgba := clone.AsRGBA(src)
		return &image.NRGBA{
			Pix:    rgba.Pix,
			Stride: rgba.Stride,
			Rect:   image.Rect(0, 0, rgba.Rect.Dx(), rgba.Rect.Dy()),
		}
	}
	return imaging.Clone(src)
}
