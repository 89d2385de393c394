package filter

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func nrgba(w, h int, px ...color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range px {
		img.SetNRGBA(i%w, i/w, c)
	}
	return img
}

func TestRemoveWhite_Examples(t *testing.T) {
	tests := []struct {
		name string
		in   color.NRGBA
		want color.NRGBA
	}{
		{"pure white", color.NRGBA{255, 255, 255, 255}, color.NRGBA{255, 255, 255, 0}},
		{"blue below threshold", color.NRGBA{250, 250, 230, 255}, color.NRGBA{250, 250, 230, 255}},
		{"semi transparent near white", color.NRGBA{241, 241, 241, 128}, color.NRGBA{241, 241, 241, 0}},
		{"one channel fails", color.NRGBA{241, 241, 200, 255}, color.NRGBA{241, 241, 200, 255}},
		{"exactly at threshold", color.NRGBA{240, 240, 240, 255}, color.NRGBA{240, 240, 240, 255}},
		{"dark keeps partial alpha", color.NRGBA{10, 20, 30, 77}, color.NRGBA{10, 20, 30, 77}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := RemoveWhite(nrgba(1, 1, tt.in), DefaultThreshold)
			require.Equal(t, tt.want, out.NRGBAAt(0, 0))
		})
	}
}

func TestRemoveWhite_NamedColors(t *testing.T) {
	// ivory is (255,255,240): blue sits on the threshold, not above it
	ivory := color.NRGBAModel.Convert(colornames.Ivory).(color.NRGBA)
	snow := color.NRGBAModel.Convert(colornames.Snow).(color.NRGBA)
	black := color.NRGBAModel.Convert(colornames.Black).(color.NRGBA)

	out, counts := RemoveWhite(nrgba(3, 1, ivory, snow, black), DefaultThreshold)
	require.Equal(t, 1, counts.Matched)
	require.Equal(t, uint8(255), out.NRGBAAt(0, 0).A)
	require.Equal(t, uint8(0), out.NRGBAAt(1, 0).A)
	require.Equal(t, uint8(255), out.NRGBAAt(2, 0).A)
}

func TestRemoveWhite_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	src := image.NewNRGBA(image.Rect(0, 0, 32, 24))
	rng.Read(src.Pix)
	// bias half of the rows toward white so both branches are exercised
	for y := 0; y < 12; y++ {
		for x := 0; x < 32; x++ {
			c := src.NRGBAAt(x, y)
			c.R, c.G, c.B = 200+c.R%56, 200+c.G%56, 200+c.B%56
			src.SetNRGBA(x, y, c)
		}
	}

	for _, threshold := range []uint8{0, 100, 200, 240, 254, 255} {
		out, counts := RemoveWhite(src, threshold)
		require.Equal(t, src.Rect, out.Rect)

		matched := 0
		for y := 0; y < 24; y++ {
			for x := 0; x < 32; x++ {
				in, got := src.NRGBAAt(x, y), out.NRGBAAt(x, y)
				require.Equal(t, [3]uint8{in.R, in.G, in.B}, [3]uint8{got.R, got.G, got.B})
				if IsBackground(in, threshold) {
					matched++
					require.Zero(t, got.A)
				} else {
					require.Equal(t, in.A, got.A)
				}
			}
		}
		require.Equal(t, matched, counts.Matched, "threshold %d", threshold)

		again, _ := RemoveWhite(out, threshold)
		require.Equal(t, out.Pix, again.Pix, "threshold %d", threshold)
	}
}

func TestRemoveWhite_DoesNotMutateSource(t *testing.T) {
	src := nrgba(2, 1, color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 255})
	before := append([]uint8(nil), src.Pix...)
	RemoveWhite(src, DefaultThreshold)
	require.Equal(t, before, src.Pix)
}

func TestRemoveWhite_Counts(t *testing.T) {
	src := nrgba(4, 1,
		color.NRGBA{255, 255, 255, 255},
		color.NRGBA{255, 255, 255, 0},
		color.NRGBA{250, 250, 250, 9},
		color.NRGBA{1, 2, 3, 255},
	)
	_, counts := RemoveWhite(src, DefaultThreshold)
	require.Equal(t, Counts{Matched: 3, Cleared: 2}, counts)

	_, counts = RemoveWhite(src, 255)
	require.Equal(t, Counts{}, counts)
}

func TestToNRGBA_OpaqueSources(t *testing.T) {
	rgb := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range rgb.Pix {
		rgb.Pix[i] = 255
	}
	rgb.Set(1, 1, color.RGBA{12, 34, 56, 255})

	out := ToNRGBA(rgb)
	require.Equal(t, color.NRGBA{255, 255, 255, 255}, out.NRGBAAt(0, 0))
	require.Equal(t, color.NRGBA{12, 34, 56, 255}, out.NRGBAAt(1, 1))

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 250})
	out, counts := RemoveWhite(gray, DefaultThreshold)
	require.Equal(t, 1, counts.Matched)
	require.Equal(t, color.NRGBA{250, 250, 250, 0}, out.NRGBAAt(0, 0))
}

func TestToNRGBA_RebasesBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.SetNRGBA(7, 6, color.NRGBA{1, 2, 3, 4})

	out := ToNRGBA(src)
	require.Equal(t, image.Rect(0, 0, 3, 2), out.Rect)
	require.Equal(t, color.NRGBA{1, 2, 3, 4}, out.NRGBAAt(2, 1))
}
