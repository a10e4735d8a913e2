package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/pkg/logger"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{B: 255, A: 255})
		}
	}
	// transparent top-left pixel gets flattened on white
	img.Set(0, 0, color.NRGBA{})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLogoLoader_FromBytes(t *testing.T) {
	l := NewLogoLoader(nil, logger.Nop())

	logo, err := l.FromBytes("wide.png", encodePNG(t, 400, 200))
	require.NoError(t, err)
	assert.Equal(t, "image/png", logo.MIME)
	assert.Equal(t, "wide.png", logo.Name)

	img, err := png.Decode(bytes.NewReader(logo.Data))
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dx())
	assert.Equal(t, 75, img.Bounds().Dy())

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestLogoLoader_SmallImageKeepsSize(t *testing.T) {
	l := NewLogoLoader(nil, logger.Nop())
	logo, err := l.FromBytes("small.png", encodePNG(t, 40, 20))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(logo.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
}

func TestLogoLoader_Rejects(t *testing.T) {
	l := NewLogoLoader(nil, logger.Nop())

	_, err := l.FromBytes("notes.txt", []byte("just some text"))
	assert.ErrorIs(t, err, errorz.ErrNotImage)

	broken := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage")...)
	_, err = l.FromBytes("broken.png", broken)
	assert.ErrorIs(t, err, errorz.ErrLogoDecode)
}

func TestLogoLoader_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 10, 10), 0o644))

	l := NewLogoLoader(nil, logger.Nop())
	logo, err := l.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "brand.png", logo.Name)

	_, err = l.FromFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLogoLoader_FromURL(t *testing.T) {
	data := encodePNG(t, 10, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logo.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	l := NewLogoLoader(nil, logger.Nop())
	l.allowPrivate = true
	logo, err := l.FromURL(context.Background(), srv.URL+"/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "logo.png", logo.Name)

	_, err = l.FromURL(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

func TestLogoLoader_FromURLRefusesLocalHosts(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(encodePNG(t, 10, 10))
	}))
	defer srv.Close()

	l := NewLogoLoader(nil, logger.Nop())
	_, err := l.FromURL(context.Background(), srv.URL+"/logo.png")
	assert.ErrorIs(t, err, errorz.ErrLogoURL)
	assert.Zero(t, hits)
}

func TestLogoLoader_FromURLRefusesSchemes(t *testing.T) {
	l := NewLogoLoader(nil, logger.Nop())
	for _, raw := range []string{"file:///etc/passwd", "ftp://files.site.com/logo.png", "logo.png", "http://"} {
		_, err := l.FromURL(context.Background(), raw)
		assert.ErrorIs(t, err, errorz.ErrLogoURL, raw)
	}
}

func TestLogoLoader_FromURLLimitsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		// chunked, so only the read limit stops it
		w.(http.Flusher).Flush()
		chunk := make([]byte, 1<<20)
		for i := 0; i <= MaxLogoBytes>>20; i++ {
			if _, err := w.Write(chunk); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	l := NewLogoLoader(nil, logger.Nop())
	l.allowPrivate = true
	_, err := l.FromURL(context.Background(), srv.URL+"/huge.png")
	assert.ErrorIs(t, err, errorz.ErrLogoTooLarge)
}

func TestLogoLoader_RejectsHugeDimensions(t *testing.T) {
	l := NewLogoLoader(nil, logger.Nop())

	// GIF header declaring a 30000x30000 screen
	header := []byte("GIF89a\x30\x75\x30\x75\x00\x00\x00")
	_, err := l.FromBytes("huge.gif", header)
	assert.ErrorIs(t, err, errorz.ErrLogoTooLarge)

	_, err = l.FromBytes("big.png", make([]byte, MaxLogoBytes+1))
	assert.ErrorIs(t, err, errorz.ErrLogoTooLarge)
}
