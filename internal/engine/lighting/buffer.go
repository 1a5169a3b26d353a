package lighting

import "github.com/chewxy/math32"

// Buffer holds the lights bound to shader slots.
type Buffer struct {
	Lights []Light
	// Capacity is the number of usable slots, MaxLights minus any reserved.
	Capacity int
}

// NewBuffer creates an empty buffer. reserved slots are kept free for lights
// the application adds itself.
func NewBuffer(reserved int) *Buffer {
	c := MaxLights - reserved
	if c < 0 {
		c = 0
	}
	return &Buffer{Lights: make([]Light, 0, c), Capacity: c}
}

// Clear removes all lights.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
}

// Add appends a light. Returns false if the buffer is full.
func (b *Buffer) Add(l Light) bool {
	if len(b.Lights) >= b.Capacity {
		return false
	}
	b.Lights = append(b.Lights, l)
	return true
}

// Set replaces all lights, truncating to capacity. It returns how many were
// dropped.
func (b *Buffer) Set(lights []Light) int {
	b.Clear()
	n := len(lights)
	if n > b.Capacity {
		n = b.Capacity
	}
	b.Lights = append(b.Lights, lights[:n]...)
	return len(lights) - n
}

// Toggle flips the enabled flag of the light with the given ID.
func (b *Buffer) Toggle(id string) bool {
	for i := range b.Lights {
		if b.Lights[i].ID == id {
			b.Lights[i].Enabled = !b.Lights[i].Enabled
			return true
		}
	}
	return false
}

// Uniforms is the flattened light state, one entry per slot.
type Uniforms struct {
	Count     int32
	Enabled   [MaxLights]int32
	Spot      [MaxLights]int32
	Position  [MaxLights * 4]float32
	Ambient   [MaxLights * 4]float32
	Diffuse   [MaxLights * 4]float32
	Specular  [MaxLights * 4]float32
	Atten     [MaxLights * 3]float32
	Direction [MaxLights * 3]float32
	CutoffCos [MaxLights]float32
	Exponent  [MaxLights]float32
}

// Flatten packs the lights into fixed-size arrays for glUniform*v calls.
func (b *Buffer) Flatten() Uniforms {
	var u Uniforms
	u.Count = int32(len(b.Lights))
	for i, l := range b.Lights {
		if l.Enabled {
			u.Enabled[i] = 1
		}
		copy(u.Position[i*4:], l.Location[:])
		copy(u.Ambient[i*4:], l.Ambient[:])
		copy(u.Diffuse[i*4:], l.Diffuse[:])
		copy(u.Specular[i*4:], l.Specular[:])
		u.Atten[i*3+0] = l.Attenuation.Constant
		u.Atten[i*3+1] = l.Attenuation.Linear
		u.Atten[i*3+2] = l.Attenuation.Quadratic
		if l.Kind == Spot {
			u.Spot[i] = 1
			d := l.Direction()
			copy(u.Direction[i*3:], d[:])
			u.CutoffCos[i] = math32.Cos(l.Angle * math32.Pi / 180)
			u.Exponent[i] = l.Exponent
		}
	}
	return u
}

func sqrt(v float32) float32 { return math32.Sqrt(v) }
