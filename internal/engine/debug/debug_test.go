package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxes(t *testing.T) {
	assert.Nil(t, Axes(0))
	assert.Nil(t, Axes(-1))

	axes := Axes(2)
	require.Len(t, axes, 3)
	assert.Equal(t, [3]float32{2, 0, 0}, axes[0].To)
	assert.Equal(t, [3]float32{0, 1, 0}, axes[1].Color)

	v := AxisVertices(axes)
	require.Len(t, v, 18)
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 2}, v[12:])
}

func TestScreenshotSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "frame")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2 image, bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := s.Save(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "frame_2024-05-01_12-00-00.000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b, "top row comes first after the flip")
}

func TestScreenshotSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "frame")
	_, err := s.Save(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}
