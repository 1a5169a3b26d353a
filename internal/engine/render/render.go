package render

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/engine/picking"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/internal/logger"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// ComponentTarget is what a scene component resolves to when picked.
type ComponentTarget struct {
	ID string
}

// Renderer draws a graph onto a surface.
type Renderer struct {
	graph   *graph.Graph
	surface Surface
	res     Resources
	log     *zap.Logger

	// time in seconds, drives the highlight pulse
	time float64

	missing map[string]bool
}

// New creates a renderer for g.
func New(g *graph.Graph, surface Surface, res Resources) *Renderer {
	return &Renderer{
		graph:   g,
		surface: surface,
		res:     res,
		log:     logger.Named("render"),
		missing: make(map[string]bool),
	}
}

// SetTime sets the clock used by time-varying effects.
func (r *Renderer) SetTime(seconds float64) { r.time = seconds }

// Pulse returns the highlight pulse factor in [0, 1] with a one second
// period.
func (r *Renderer) Pulse() float32 {
	return (math32.Sin(2*math32.Pi*float32(r.time)) + 1) / 2
}

// RenderScene draws the whole graph from its root. When pick is non-nil
// every component that draws geometry is registered under its own ID.
func (r *Renderer) RenderScene(pick *picking.Context) {
	r.Render(r.graph.Root, "", graph.NoTexture, pick)
}

// Render draws component id and its subtree with the given inherited
// material and texture. Unknown IDs draw nothing.
func (r *Renderer) Render(id, material string, tex graph.TextureRef, pick *picking.Context) {
	r.visit(id, state{material: material, texture: tex, pick: pick, pickID: graph.Unselectable})
}

// RenderAt draws a template component under an extra transform. When pick
// is non-nil, the whole subtree is registered under one ID that resolves to
// target.
func (r *Renderer) RenderAt(id string, m math.Mat4, material string, tex graph.TextureRef, pick *picking.Context, target any) {
	st := state{material: material, texture: tex, pick: pick, pickID: graph.Unselectable}
	if pick != nil && target != nil {
		st.pickID = pick.Register(target)
	}
	r.surface.PushMatrix()
	r.surface.MultMatrix(m)
	r.visit(id, st)
	r.surface.PopMatrix()
}

type state struct {
	material string
	texture  graph.TextureRef
	pick     *picking.Context
	// pickID is fixed for RenderAt subtrees, Unselectable otherwise.
	pickID int
}

func (r *Renderer) visit(id string, in state) {
	c, ok := r.graph.Component(id)
	if !ok {
		r.reportMissing(id)
		return
	}

	r.surface.PushMatrix()
	defer r.surface.PopMatrix()

	if c.Matrix != nil {
		r.surface.MultMatrix(*c.Matrix)
	}
	if c.Animation != "" {
		if a, ok := r.graph.Animations[c.Animation]; ok {
			if !a.Started() {
				return
			}
			a.Apply(r.surface)
		}
	}

	out := in
	if m := c.Material(); m != graph.Inherit {
		out.material = m
	}
	switch {
	case c.Texture.IsInherit():
	case c.Texture.IsNone():
		out.texture = graph.NoTexture
	default:
		out.texture = c.Texture
	}

	if len(c.Primitives) > 0 {
		r.applyAppearance(out.material, out.texture)

		if in.pick != nil {
			pid := in.pickID
			if pid == graph.Unselectable {
				pid = in.pick.Register(ComponentTarget{ID: c.ID})
			}
			c.PickingID = pid
			r.surface.RegisterForPick(pid)
		}

		highlighted := in.pick == nil && c.Highlighted()
		if highlighted {
			r.surface.UseShader(ShaderHighlight)
			r.surface.SetHighlight(c.Highlight.Color, c.Highlight.Scale, r.Pulse())
		}

		scale := !out.texture.IsNone() && out.texture.NeedsScaling()
		for _, pid := range c.Primitives {
			p, ok := r.res.Primitive(pid)
			if !ok {
				r.reportMissing("primitive:" + pid)
				continue
			}
			if scale {
				p.ScaleTexCoords(out.texture.LengthS, out.texture.LengthT)
			}
			p.Display()
			if scale {
				p.ScaleTexCoords(1, 1)
			}
		}

		if highlighted {
			r.surface.UseShader(ShaderDefault)
		}
	}

	for _, child := range c.Children {
		r.visit(child, out)
	}
}

func (r *Renderer) applyAppearance(material string, tex graph.TextureRef) {
	app, ok := r.res.Appearance(material)
	if !ok {
		return
	}
	var t Texture
	if !tex.IsNone() {
		if found, ok := r.res.Texture(tex.ID); ok {
			t = found
		}
	}
	app.SetTexture(t)
	app.SetTextureWrap(WrapRepeat, WrapRepeat)
	app.Apply()
}

// reportMissing logs a lookup miss once per ID.
func (r *Renderer) reportMissing(id string) {
	if r.missing[id] {
		return
	}
	r.missing[id] = true
	r.log.Debug("render: unknown id, skipped", zap.String("id", id))
}
