// Package graph holds the scene graph: components and the tables of views,
// lights, textures, materials, transformations, primitives and animations
// they reference.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/checkers3d/internal/engine/animation"
	"github.com/Faultbox/checkers3d/internal/engine/camera"
	"github.com/Faultbox/checkers3d/internal/engine/lighting"
)

// ErrDuplicateID is returned when an ID is added twice to the same table.
var ErrDuplicateID = errors.New("duplicate id")

// Graph is a fully parsed scene.
type Graph struct {
	Globals

	Views map[string]camera.View
	// ViewOrder lists view IDs in document order.
	ViewOrder []string

	Lights []lighting.Light

	Textures        map[string]TextureDef
	Materials       map[string]Material
	Transformations map[string]Transformation
	Primitives      map[string]PrimitiveDef
	Animations      map[string]*animation.KeyFrame
	Components      map[string]*Component

	// Board is nil when the scene has no board block.
	Board *BoardLayout
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Views:           make(map[string]camera.View),
		Textures:        make(map[string]TextureDef),
		Materials:       make(map[string]Material),
		Transformations: make(map[string]Transformation),
		Primitives:      make(map[string]PrimitiveDef),
		Animations:      make(map[string]*animation.KeyFrame),
		Components:      make(map[string]*Component),
	}
}

func duplicate(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrDuplicateID)
}

// AddView adds a view, keeping document order.
func (g *Graph) AddView(v camera.View) error {
	if _, ok := g.Views[v.ID]; ok {
		return duplicate("view", v.ID)
	}
	g.Views[v.ID] = v
	g.ViewOrder = append(g.ViewOrder, v.ID)
	return nil
}

// AddLight appends a light.
func (g *Graph) AddLight(l lighting.Light) error {
	for _, existing := range g.Lights {
		if existing.ID == l.ID {
			return duplicate("light", l.ID)
		}
	}
	g.Lights = append(g.Lights, l)
	return nil
}

// AddTexture adds a texture definition.
func (g *Graph) AddTexture(t TextureDef) error {
	if _, ok := g.Textures[t.ID]; ok {
		return duplicate("texture", t.ID)
	}
	g.Textures[t.ID] = t
	return nil
}

// AddMaterial adds a material.
func (g *Graph) AddMaterial(m Material) error {
	if _, ok := g.Materials[m.ID]; ok {
		return duplicate("material", m.ID)
	}
	g.Materials[m.ID] = m
	return nil
}

// AddTransformation adds a named transformation.
func (g *Graph) AddTransformation(t Transformation) error {
	if _, ok := g.Transformations[t.ID]; ok {
		return duplicate("transformation", t.ID)
	}
	g.Transformations[t.ID] = t
	return nil
}

// AddPrimitive adds a primitive definition.
func (g *Graph) AddPrimitive(p PrimitiveDef) error {
	if _, ok := g.Primitives[p.ID]; ok {
		return duplicate("primitive", p.ID)
	}
	g.Primitives[p.ID] = p
	return nil
}

// AddAnimation adds a keyframe animation.
func (g *Graph) AddAnimation(a *animation.KeyFrame) error {
	if _, ok := g.Animations[a.ID]; ok {
		return duplicate("animation", a.ID)
	}
	g.Animations[a.ID] = a
	return nil
}

// AddComponent adds a component.
func (g *Graph) AddComponent(c *Component) error {
	if _, ok := g.Components[c.ID]; ok {
		return duplicate("component", c.ID)
	}
	g.Components[c.ID] = c
	return nil
}

// Component looks up a component by ID.
func (g *Graph) Component(id string) (*Component, bool) {
	c, ok := g.Components[id]
	return c, ok
}

// RootComponent returns the root component, or nil if it is missing.
func (g *Graph) RootComponent() *Component {
	return g.Components[g.Root]
}

// Parents maps each referenced child component ID to the IDs of the
// components that list it, in sorted order.
func (g *Graph) Parents() map[string][]string {
	parents := make(map[string][]string)
	for _, id := range sortedKeys(g.Components) {
		for _, child := range g.Components[id].Children {
			if _, ok := g.Components[child]; ok {
				parents[child] = append(parents[child], id)
			}
		}
	}
	return parents
}

// CycleMaterials advances every component to its next material.
func (g *Graph) CycleMaterials() {
	for _, c := range g.Components {
		c.CycleMaterial()
	}
}

// ResetPicking marks every component unselectable.
func (g *Graph) ResetPicking() {
	for _, c := range g.Components {
		c.PickingID = Unselectable
	}
}

// ToggleHighlights flips every declared highlight and returns how many
// components are highlighted afterwards.
func (g *Graph) ToggleHighlights() int {
	n := 0
	for _, c := range g.Components {
		if c.Highlight == nil {
			continue
		}
		c.Highlight.Active = !c.Highlight.Active
		if c.Highlight.Active {
			n++
		}
	}
	return n
}

// Update advances every keyframe animation to t seconds.
func (g *Graph) Update(t float64) {
	for _, a := range g.Animations {
		a.Update(t)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
