package framebuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGLCoords(t *testing.T) {
	tests := []struct {
		name       string
		x, y       int32
		wantX      int32
		wantY      int32
		wantInside bool
	}{
		{"top left", 0, 0, 0, 479, true},
		{"bottom right", 639, 479, 639, 0, true},
		{"middle", 320, 240, 320, 239, true},
		{"left of buffer", -1, 10, 0, 0, false},
		{"below buffer", 10, 480, 0, 0, false},
		{"right of buffer", 640, 10, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := glCoords(tt.x, tt.y, 640, 480)
			assert.Equal(t, tt.wantInside, ok)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}
