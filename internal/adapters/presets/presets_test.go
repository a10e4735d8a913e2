package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

const sample = `
presets:
  - name: ink
    config:
      dot-color: "#000000"
      corner-color: "#000000"
      bg-color: "#ffffff"
      dot-style: square
      corner-style: square
  - name: sunset
    config:
      dot-color: "#ff5500"
      use-gradient: true
      gradient-type: radial
      gradient-color-2: "#aa00ff"
      border-radius: 120
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeFile(t, sample))
	require.NoError(t, err)

	ink, err := s.Get("ink")
	require.NoError(t, err)
	assert.Equal(t, "#000000", ink.DotColor)
	assert.Equal(t, entity.DotSquare, ink.DotStyle)
	assert.Equal(t, 10, ink.Margin)
	assert.Equal(t, entity.DefaultExportSize, ink.ExportSize)

	sunset, err := s.Get("sunset")
	require.NoError(t, err)
	assert.True(t, sunset.UseGradient)
	assert.Equal(t, entity.GradientRadial, sunset.GradientType)
	assert.Equal(t, 120, sunset.BorderRadius)
	assert.Equal(t, "#ffffff", sunset.CornerColor)

	names := []string{}
	for _, p := range s.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{DefaultName, "ink", "sunset"}, names)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, errorz.ErrPresetNotFound)
}

func TestLoadWithoutFile(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	cfg, err := s.Get(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultConfiguration(), cfg)
}

func TestReloadKeepsPresetsOnError(t *testing.T) {
	path := writeFile(t, sample)
	s, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - name: bad\n    config:\n      dot-color: red\n"), 0o644))
	assert.ErrorIs(t, s.Reload(path), errorz.ErrInvalidConfig)

	_, err = s.Get("ink")
	assert.NoError(t, err)
	_, err = s.Get("bad")
	assert.ErrorIs(t, err, errorz.ErrPresetNotFound)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("presets:\n  - config:\n      margin: 1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte(":::"))
	assert.Error(t, err)
}
