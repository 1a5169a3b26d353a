package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTitle(t *testing.T) {
	assert.Equal(t, "checkers3d", StatusTitle("checkers3d", ""))
	assert.Equal(t, "checkers3d - parse error", StatusTitle("checkers3d", "parse error"))
}

func TestScale(t *testing.T) {
	assert.Equal(t, 200, scale(100, 640, 1280))
	assert.Equal(t, 100, scale(100, 640, 640))
	assert.Equal(t, 7, scale(7, 0, 1280))
}
