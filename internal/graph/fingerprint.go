package graph

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the parsed tables. Runtime state (current material,
// picking IDs, highlight toggles, animation progress) is excluded, so two
// parses of the same document always produce the same value.
func (g *Graph) Fingerprint() uint64 {
	d := xxhash.New()
	g.writeCanonical(d)
	return d.Sum64()
}

func (g *Graph) writeCanonical(w io.Writer) {
	fmt.Fprintf(w, "scene %q %v %v %v %q\n", g.Root, g.AxisLength, g.Ambient, g.Background, g.DefaultView)

	for _, id := range g.ViewOrder {
		fmt.Fprintf(w, "view %+v\n", g.Views[id])
	}
	for _, l := range g.Lights {
		fmt.Fprintf(w, "light %+v\n", l)
	}
	for _, id := range sortedKeys(g.Textures) {
		fmt.Fprintf(w, "texture %+v\n", g.Textures[id])
	}
	for _, id := range sortedKeys(g.Materials) {
		fmt.Fprintf(w, "material %+v\n", g.Materials[id])
	}
	for _, id := range sortedKeys(g.Transformations) {
		fmt.Fprintf(w, "transformation %+v\n", g.Transformations[id])
	}
	for _, id := range sortedKeys(g.Primitives) {
		p := g.Primitives[id]
		fmt.Fprintf(w, "primitive %q %s %+v\n", p.ID, p.Geometry.Kind(), p.Geometry)
	}
	for _, id := range sortedKeys(g.Animations) {
		fmt.Fprintf(w, "animation %q %+v\n", id, g.Animations[id].Keys())
	}
	for _, id := range sortedKeys(g.Components) {
		c := g.Components[id]
		fmt.Fprintf(w, "component %q %q %v %v %+v %q %v %v",
			c.ID, c.Transform, c.LocalMatrix(), c.Materials, c.Texture, c.Animation, c.Children, c.Primitives)
		if c.Highlight != nil {
			fmt.Fprintf(w, " highlight %v %v", c.Highlight.Color, c.Highlight.Scale)
		}
		fmt.Fprintln(w)
	}
	if g.Board != nil {
		fmt.Fprintf(w, "board %+v\n", *g.Board)
	}
}
