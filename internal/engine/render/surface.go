// Package render walks the scene graph and issues draw calls to a Surface.
//
// Traversal is depth-first pre-order. Each node inherits its parent's
// material and texture unless it names its own, composes its transform onto
// the parent's, and is skipped entirely while its animation has not started.
package render

import "github.com/Faultbox/checkers3d/pkg/math"

// Shader selects the program used for the next draws.
type Shader int

const (
	ShaderDefault Shader = iota
	ShaderHighlight
)

// Wrap is a texture coordinate wrapping mode.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// Surface is the matrix stack and shader state the traversal drives.
type Surface interface {
	PushMatrix()
	PopMatrix()
	MultMatrix(m math.Mat4)
	UseShader(s Shader)
	// SetHighlight sets the highlight colour, scale and pulse in [0, 1].
	SetHighlight(color [3]float32, scale, pulse float32)
	// RegisterForPick sets the pick ID for subsequent draws.
	RegisterForPick(id int)
}

// Primitive is drawable geometry.
type Primitive interface {
	Display()
	// ScaleTexCoords sets the texture lengths for the next Display.
	// (1, 1) restores the unit mapping.
	ScaleTexCoords(s, t float32)
}

// Texture is an image ready for sampling.
type Texture interface {
	Bind()
}

// Appearance is a material with an optional bound texture.
type Appearance interface {
	Apply()
	// SetTexture binds tex for the next Apply. Nil draws untextured.
	SetTexture(tex Texture)
	SetTextureWrap(s, t Wrap)
}

// Resources resolves scene IDs to drawable objects.
type Resources interface {
	Appearance(materialID string) (Appearance, bool)
	Texture(textureID string) (Texture, bool)
	Primitive(primitiveID string) (Primitive, bool)
}
