// Package lighting holds the scene's light sources and flattens them for
// GPU upload.
package lighting

// MaxLights is the number of light slots the shaders provide.
const MaxLights = 8

// Kind distinguishes light types.
type Kind int

const (
	Omni Kind = iota
	Spot
)

func (k Kind) String() string {
	if k == Spot {
		return "spot"
	}
	return "omni"
}

// Attenuation holds distance falloff coefficients.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DefaultAttenuation is used when a light does not declare one.
func DefaultAttenuation() Attenuation {
	return Attenuation{Constant: 1}
}

// Valid reports whether exactly one coefficient equals 1.
func (a Attenuation) Valid() bool {
	n := 0
	for _, v := range [3]float32{a.Constant, a.Linear, a.Quadratic} {
		if v == 1 {
			n++
		}
	}
	return n == 1
}

// Light is an omni or spot light.
type Light struct {
	ID      string
	Kind    Kind
	Enabled bool

	// Location is homogeneous: w=0 makes a directional light.
	Location [4]float32
	Ambient  [4]float32
	Diffuse  [4]float32
	Specular [4]float32

	Attenuation Attenuation

	// Spot only. Angle is the cutoff in degrees.
	Angle    float32
	Exponent float32
	Target   [3]float32
}

// Direction returns the normalized spot direction from location to target.
func (l Light) Direction() [3]float32 {
	d := [3]float32{
		l.Target[0] - l.Location[0],
		l.Target[1] - l.Location[1],
		l.Target[2] - l.Location[2],
	}
	n := d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
	if n == 0 {
		return [3]float32{0, -1, 0}
	}
	inv := 1 / sqrt(n)
	return [3]float32{d[0] * inv, d[1] * inv, d[2] * inv}
}
