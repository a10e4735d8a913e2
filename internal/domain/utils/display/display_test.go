package display

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(size int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestPreview_Empty(t *testing.T) {
	p := NewPreview(280)
	_, ok := p.Frame()
	assert.False(t, ok)
}

func TestPreview_ScalesToDisplaySize(t *testing.T) {
	p := NewPreview(100)
	p.Replace(solid(100, color.RGBA{R: 255, A: 255}))
	p.SetDisplay(50, 0)

	frame, ok := p.Frame()
	require.True(t, ok)
	assert.Equal(t, 50, frame.Bounds().Dx())
	assert.Equal(t, 50, frame.Bounds().Dy())

	r, _, _, a := frame.At(25, 25).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestPreview_RadiusClipsCorners(t *testing.T) {
	p := NewPreview(100)
	p.Replace(solid(100, color.RGBA{R: 255, A: 255}))
	p.SetDisplay(100, 30)

	frame, ok := p.Frame()
	require.True(t, ok)

	_, _, _, a := frame.At(0, 0).RGBA()
	assert.Zero(t, a)
	_, _, _, a = frame.At(50, 50).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestPreview_Clear(t *testing.T) {
	p := NewPreview(10)
	p.Replace(solid(10, color.Black))
	p.Clear()
	_, ok := p.Frame()
	assert.False(t, ok)
}
