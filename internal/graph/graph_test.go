package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/checkers3d/internal/engine/animation"
	"github.com/Faultbox/checkers3d/internal/engine/primitive"
	"github.com/Faultbox/checkers3d/pkg/math"
)

func sampleGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	g.Root = "root"
	g.AxisLength = 5

	require.NoError(t, g.AddMaterial(Material{ID: "red", Shininess: 10, Diffuse: [4]float32{1, 0, 0, 1}}))
	require.NoError(t, g.AddMaterial(Material{ID: "blue", Shininess: 10, Diffuse: [4]float32{0, 0, 1, 1}}))
	require.NoError(t, g.AddTexture(TextureDef{ID: "wood", File: "wood.png"}))
	require.NoError(t, g.AddPrimitive(PrimitiveDef{ID: "quad", Geometry: primitive.Rectangle{X1: 0, Y1: 0, X2: 1, Y2: 1}}))
	require.NoError(t, g.AddTransformation(Transformation{ID: "up", Ops: []Op{{Kind: OpTranslate, Vec: math.Vec3{Y: 1}}}}))

	anim, err := animation.NewKeyFrame("spin", []animation.Key{
		{Instant: 0, Scale: math.Vec3{X: 1, Y: 1, Z: 1}},
		{Instant: 2, Scale: math.Vec3{X: 1, Y: 1, Z: 1}, Translation: math.Vec3{X: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, g.AddAnimation(anim))

	root := NewComponent("root")
	root.Materials = []string{"red", "blue"}
	root.Texture = TextureRef{ID: "wood", LengthS: 1, LengthT: 1}
	root.Children = []string{"child"}
	require.NoError(t, g.AddComponent(root))

	child := NewComponent("child")
	child.Primitives = []string{"quad"}
	child.Highlight = &Highlight{Color: [3]float32{1, 1, 0}, Scale: 0.2}
	require.NoError(t, g.AddComponent(child))
	return g
}

func TestAddComponentDuplicate(t *testing.T) {
	g := sampleGraph(t)

	err := g.AddComponent(NewComponent("child"))
	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Contains(t, err.Error(), `"child"`)
}

func TestNamespacesAreIndependent(t *testing.T) {
	g := sampleGraph(t)

	// "red" is a material; using it as a texture ID is fine.
	assert.NoError(t, g.AddTexture(TextureDef{ID: "red", File: "red.png"}))
	assert.ErrorIs(t, g.AddMaterial(Material{ID: "red"}), ErrDuplicateID)
}

func TestCycleMaterials(t *testing.T) {
	g := sampleGraph(t)
	root := g.RootComponent()
	require.NotNil(t, root)

	assert.Equal(t, "red", root.Material())
	g.CycleMaterials()
	assert.Equal(t, "blue", root.Material())
	g.CycleMaterials()
	assert.Equal(t, "red", root.Material())

	// Single-entry lists stay put.
	child, _ := g.Component("child")
	g.CycleMaterials()
	assert.Equal(t, Inherit, child.Material())
}

func TestHighlightToggles(t *testing.T) {
	g := sampleGraph(t)
	child, _ := g.Component("child")

	assert.False(t, child.Highlighted())
	assert.Equal(t, 1, g.ToggleHighlights())
	assert.True(t, child.Highlighted())

	assert.Equal(t, 0, g.ToggleHighlights())
	assert.False(t, child.Highlighted())
}

func TestResetPicking(t *testing.T) {
	g := sampleGraph(t)
	for _, c := range g.Components {
		c.PickingID = 7
	}
	g.ResetPicking()
	for _, c := range g.Components {
		assert.Equal(t, Unselectable, c.PickingID)
	}
}

func TestParents(t *testing.T) {
	g := sampleGraph(t)
	parents := g.Parents()
	assert.Equal(t, []string{"root"}, parents["child"])
	assert.NotContains(t, parents, "root")
}

func TestFingerprintIgnoresRuntimeState(t *testing.T) {
	a, b := sampleGraph(t), sampleGraph(t)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	a.CycleMaterials()
	a.ToggleHighlights()
	a.Update(1)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Materials["red"] = Material{ID: "red", Shininess: 11}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestTextureRef(t *testing.T) {
	assert.True(t, InheritTexture.IsInherit())
	assert.True(t, NoTexture.IsNone())
	assert.False(t, InheritTexture.NeedsScaling())
	assert.True(t, TextureRef{ID: "x", LengthS: 2, LengthT: 1}.NeedsScaling())
}

func TestTransformationCompose(t *testing.T) {
	tr := Transformation{ID: "t", Ops: []Op{
		{Kind: OpTranslate, Vec: math.Vec3{X: 1}},
		{Kind: OpScale, Vec: math.Vec3{X: 2, Y: 2, Z: 2}},
	}}
	p := tr.Matrix().TransformPoint([3]float32{1, 0, 0})
	assert.InDelta(t, 3, p[0], 1e-6)
}

func TestBoardLayout(t *testing.T) {
	b := &BoardLayout{
		Position:   math.Vec3{X: -4, Z: -4},
		TileSize:   1,
		Tile:       "tile",
		WhitePiece: "white",
		BlackPiece: "black",
		Buttons:    []Button{{Action: ActionPlay, Component: "play"}},
	}
	c := b.TileCenter(0, 7)
	assert.InDelta(t, 3.5, c.X, 1e-6)
	assert.InDelta(t, -3.5, c.Z, 1e-6)

	btn, ok := b.Button(ActionPlay)
	assert.True(t, ok)
	assert.Equal(t, "play", btn.Component)
	_, ok = b.Button(ActionUndo)
	assert.False(t, ok)

	assert.Equal(t, []string{"tile", "white", "black", "play"}, b.Templates())
	assert.True(t, ValidAction("rematch"))
	assert.False(t, ValidAction("fly"))
}
