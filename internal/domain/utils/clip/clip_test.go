package clip

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{R: 20, G: 20, B: 20, A: 255}
			if (x/10+y/10)%2 == 0 {
				c = color.NRGBA{R: 230, G: 230, B: 230, A: 128}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestRounded_ZeroRadiusIsIdentity(t *testing.T) {
	src := checker(100)
	got := Rounded(src, 100, 0)
	want := Composite(src, 100)
	require.Equal(t, want.Bounds(), got.Bounds())
	assert.Equal(t, want.Pix, got.Pix)
}

func TestRounded_ClipsCorners(t *testing.T) {
	src := checker(100)
	got := Rounded(src, 100, 30)

	_, _, _, a := got.At(0, 0).RGBA()
	assert.Zero(t, a, "corner pixel must be clipped")
	_, _, _, a = got.At(99, 99).RGBA()
	assert.Zero(t, a)

	assert.Equal(t, Composite(src, 100).At(55, 45), got.At(55, 45))
	assert.Equal(t, Composite(src, 100).At(50, 1), got.At(50, 1))
}

func TestRadius(t *testing.T) {
	assert.Equal(t, 0.0, Radius(-5, 100))
	assert.Equal(t, 12.0, Radius(12, 100))
	assert.Equal(t, 50.0, Radius(500, 100))
}
