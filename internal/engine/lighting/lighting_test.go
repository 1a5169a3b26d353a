package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttenuationValid(t *testing.T) {
	tests := []struct {
		a    Attenuation
		want bool
	}{
		{Attenuation{1, 0, 0}, true},
		{Attenuation{0, 1, 0}, true},
		{Attenuation{0, 0.5, 1}, true},
		{Attenuation{1, 1, 0}, false},
		{Attenuation{0, 0, 0}, false},
		{Attenuation{0.5, 0.5, 0.5}, false},
		{Attenuation{1, 1, 1}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Valid(), "%+v", tt.a)
	}
	assert.True(t, DefaultAttenuation().Valid())
}

func TestBufferCapacity(t *testing.T) {
	b := NewBuffer(0)
	assert.Equal(t, MaxLights, b.Capacity)

	reserved := NewBuffer(1)
	lights := make([]Light, 10)
	dropped := reserved.Set(lights)
	assert.Equal(t, 7, len(reserved.Lights))
	assert.Equal(t, 3, dropped)
	assert.False(t, reserved.Add(Light{}))
}

func TestFlattenSpot(t *testing.T) {
	b := NewBuffer(0)
	b.Add(Light{ID: "omni", Enabled: true, Location: [4]float32{1, 2, 3, 1}, Attenuation: DefaultAttenuation()})
	b.Add(Light{
		ID:          "spot",
		Kind:        Spot,
		Location:    [4]float32{0, 5, 0, 1},
		Target:      [3]float32{0, 0, 0},
		Angle:       60,
		Exponent:    2,
		Attenuation: Attenuation{0, 1, 0},
	})

	u := b.Flatten()
	assert.Equal(t, int32(2), u.Count)
	assert.Equal(t, int32(1), u.Enabled[0])
	assert.Equal(t, int32(0), u.Enabled[1])
	assert.Equal(t, int32(1), u.Spot[1])
	assert.Equal(t, float32(3), u.Position[2])
	assert.InDelta(t, -1, u.Direction[4], 1e-6)
	assert.InDelta(t, 0.5, u.CutoffCos[1], 1e-6)
	assert.Equal(t, float32(1), u.Atten[4])

	assert.True(t, b.Toggle("spot"))
	assert.True(t, b.Lights[1].Enabled)
	assert.False(t, b.Toggle("missing"))
}
