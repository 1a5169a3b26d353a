package parser

import (
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/formats"
)

func (p *Parser) parseComponents(el *formats.Element) error {
	for _, child := range el.Children {
		if child.Name != "component" {
			p.warn(BlockComponents, child, "unknown tag <%s> ignored", child.Name)
			continue
		}
		c, err := p.parseComponent(child)
		if err != nil {
			return err
		}
		if err := p.g.AddComponent(c); err != nil {
			return fail(BlockComponents, c.ID, child, ErrDuplicateID, "component defined twice")
		}
	}
	if len(p.g.Components) == 0 {
		return fail(BlockComponents, "", el, ErrInvalidValue, "at least one component is required")
	}
	return nil
}

func (p *Parser) parseComponent(el *formats.Element) (*graph.Component, error) {
	id, err := el.String("id")
	if err != nil {
		return nil, failAttr(BlockComponents, "", el, err)
	}
	c := graph.NewComponent(id)

	if tr := el.Child("transformation"); tr != nil {
		if err := p.componentTransform(c, tr); err != nil {
			return nil, err
		}
	} else {
		p.warn(BlockComponents, el, "component %q has no <transformation>", id)
	}

	mats := el.Child("materials")
	if mats == nil {
		return nil, fail(BlockComponents, id, el, ErrInvalidValue, "missing <materials>")
	}
	if err := p.componentMaterials(c, mats); err != nil {
		return nil, err
	}

	if tex := el.Child("texture"); tex != nil {
		if err := p.componentTexture(c, tex); err != nil {
			return nil, err
		}
	} else {
		p.warn(BlockComponents, el, "component %q has no <texture>, inheriting", id)
	}

	if ar := el.Child("animationref"); ar != nil {
		ref, err := ar.String("id")
		if err != nil {
			return nil, failAttr(BlockComponents, id, ar, err)
		}
		if _, ok := p.g.Animations[ref]; !ok {
			return nil, fail(BlockComponents, id, ar, ErrUndefinedRef, "animation %q is not defined", ref)
		}
		c.Animation = ref
	}

	children := el.Child("children")
	if children == nil {
		return nil, fail(BlockComponents, id, el, ErrInvalidValue, "missing <children>")
	}
	if err := p.componentChildren(c, children); err != nil {
		return nil, err
	}

	if hl := el.Child("highlighted"); hl != nil {
		rgb, err := hl.RGB()
		if err != nil {
			return nil, failAttr(BlockComponents, id, hl, err)
		}
		scale, err := hl.Float("scale_h")
		if err != nil {
			return nil, failAttr(BlockComponents, id, hl, err)
		}
		c.Highlight = &graph.Highlight{Color: rgb, Scale: scale}
	}

	p.unknownChildren(BlockComponents, el, "transformation", "materials", "texture", "animationref", "children", "highlighted")
	return c, nil
}

// componentTransform accepts either one transformationref or inline steps.
func (p *Parser) componentTransform(c *graph.Component, el *formats.Element) error {
	refs := el.ChildrenNamed("transformationref")
	ops, err := p.parseOps(BlockComponents, c.ID, el)
	if err != nil {
		return err
	}

	switch {
	case len(refs) > 0 && len(ops) > 0:
		return fail(BlockComponents, c.ID, el, ErrInvalidValue, "transformationref cannot be mixed with inline steps")
	case len(refs) > 1:
		return fail(BlockComponents, c.ID, el, ErrInvalidValue, "only one transformationref is allowed")
	case len(refs) == 1:
		ref, err := refs[0].String("id")
		if err != nil {
			return failAttr(BlockComponents, c.ID, refs[0], err)
		}
		t, ok := p.g.Transformations[ref]
		if !ok {
			return fail(BlockComponents, c.ID, refs[0], ErrUndefinedRef, "transformation %q is not defined", ref)
		}
		m := t.Matrix()
		c.Transform = ref
		c.Matrix = &m
	case len(ops) > 0:
		m := graph.Compose(ops)
		c.Matrix = &m
	}
	return nil
}

func (p *Parser) componentMaterials(c *graph.Component, el *formats.Element) error {
	c.Materials = c.Materials[:0]
	for _, m := range el.Children {
		if m.Name != "material" {
			p.warn(BlockComponents, m, "unknown tag <%s> in <materials> ignored", m.Name)
			continue
		}
		ref, err := m.String("id")
		if err != nil {
			return failAttr(BlockComponents, c.ID, m, err)
		}
		if ref != graph.Inherit {
			if _, ok := p.g.Materials[ref]; !ok {
				return fail(BlockComponents, c.ID, m, ErrUndefinedRef, "material %q is not defined", ref)
			}
		}
		c.Materials = append(c.Materials, ref)
	}
	if len(c.Materials) == 0 {
		return fail(BlockComponents, c.ID, el, ErrInvalidValue, "at least one material is required")
	}
	return nil
}

func (p *Parser) componentTexture(c *graph.Component, el *formats.Element) error {
	ref, err := el.String("id")
	if err != nil {
		return failAttr(BlockComponents, c.ID, el, err)
	}
	switch ref {
	case graph.Inherit:
		c.Texture = graph.InheritTexture
		if el.Has("length_s") || el.Has("length_t") {
			// An inherited texture keeps the ancestor's lengths.
			p.warn(BlockComponents, el, "length_s/length_t ignored for inherited texture")
		}
		return nil
	case graph.None:
		c.Texture = graph.NoTexture
		return nil
	}

	if _, ok := p.g.Textures[ref]; !ok {
		return fail(BlockComponents, c.ID, el, ErrUndefinedRef, "texture %q is not defined", ref)
	}
	c.Texture = graph.TextureRef{ID: ref, LengthS: 1, LengthT: 1}
	for _, l := range []struct {
		name string
		dst  *float32
	}{
		{"length_s", &c.Texture.LengthS},
		{"length_t", &c.Texture.LengthT},
	} {
		if !el.Has(l.name) {
			p.warn(BlockComponents, el, "component %q texture has no %s, using 1", c.ID, l.name)
		}
		v, err := el.FloatOr(l.name, 1)
		if err != nil {
			return failAttr(BlockComponents, c.ID, el, err)
		}
		if v <= 0 {
			return fail(BlockComponents, c.ID, el, ErrInvalidValue, "%s must be positive, got %v", l.name, v)
		}
		*l.dst = v
	}
	return nil
}

// componentChildren records child references. Component references are
// resolved in finish, once every component is known.
func (p *Parser) componentChildren(c *graph.Component, el *formats.Element) error {
	for _, ch := range el.Children {
		switch ch.Name {
		case "componentref":
			ref, err := ch.String("id")
			if err != nil {
				return failAttr(BlockComponents, c.ID, ch, err)
			}
			c.Children = append(c.Children, ref)
		case "primitiveref":
			ref, err := ch.String("id")
			if err != nil {
				return failAttr(BlockComponents, c.ID, ch, err)
			}
			if _, ok := p.g.Primitives[ref]; !ok {
				return fail(BlockComponents, c.ID, ch, ErrUndefinedRef, "primitive %q is not defined", ref)
			}
			c.Primitives = append(c.Primitives, ref)
		default:
			p.warn(BlockComponents, ch, "unknown tag <%s> in <children> ignored", ch.Name)
		}
	}
	if len(c.Children)+len(c.Primitives) == 0 {
		p.warn(BlockComponents, el, "component %q has no children", c.ID)
	}
	return nil
}
