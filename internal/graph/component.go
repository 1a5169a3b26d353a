package graph

import "github.com/Faultbox/checkers3d/pkg/math"

// Sentinel IDs usable in place of a material or texture reference.
const (
	Inherit = "inherit"
	None    = "none"
)

// Unselectable is the picking ID of a component that is not registered in
// the current frame's pick pass.
const Unselectable = -1

// TextureRef names a texture and how many world units one repeat spans.
type TextureRef struct {
	ID      string
	LengthS float32
	LengthT float32
}

// InheritTexture defers to the nearest ancestor's texture.
var InheritTexture = TextureRef{ID: Inherit, LengthS: 1, LengthT: 1}

// NoTexture removes any inherited texture.
var NoTexture = TextureRef{ID: None, LengthS: 1, LengthT: 1}

// IsInherit reports whether the reference defers to the parent.
func (t TextureRef) IsInherit() bool { return t.ID == Inherit }

// IsNone reports whether the reference clears the texture.
func (t TextureRef) IsNone() bool { return t.ID == None || t.ID == "" }

// NeedsScaling reports whether texture coordinates must be rescaled.
func (t TextureRef) NeedsScaling() bool { return t.LengthS != 1 || t.LengthT != 1 }

// Highlight makes a component pulse in a colour while Active.
type Highlight struct {
	Color  [3]float32
	Scale  float32
	Active bool
}

// Component is a node of the scene graph.
type Component struct {
	ID string

	// Transform is the named transformation, empty when inline or absent.
	Transform string
	// Matrix is the resolved local transform. Nil means the parent's.
	Matrix *math.Mat4

	// Materials lists material IDs, possibly Inherit. CurrMaterial indexes
	// into it and advances with material cycling.
	Materials    []string
	CurrMaterial int

	Texture   TextureRef
	Animation string

	Children   []string
	Primitives []string

	Highlight *Highlight

	// PickingID is assigned per frame during the pick pass.
	PickingID int
}

// NewComponent returns a component with inherited material and texture.
func NewComponent(id string) *Component {
	return &Component{
		ID:        id,
		Materials: []string{Inherit},
		Texture:   InheritTexture,
		PickingID: Unselectable,
	}
}

// Material returns the current material ID.
func (c *Component) Material() string {
	if len(c.Materials) == 0 {
		return Inherit
	}
	return c.Materials[c.CurrMaterial%len(c.Materials)]
}

// CycleMaterial advances to the next material in the list.
func (c *Component) CycleMaterial() {
	if len(c.Materials) == 0 {
		return
	}
	c.CurrMaterial = (c.CurrMaterial + 1) % len(c.Materials)
}

// Highlighted reports whether the highlight is set and active.
func (c *Component) Highlighted() bool {
	return c.Highlight != nil && c.Highlight.Active
}

// LocalMatrix returns the component's own transform or identity.
func (c *Component) LocalMatrix() math.Mat4 {
	if c.Matrix == nil {
		return math.Identity()
	}
	return *c.Matrix
}
