package parser

import (
	"github.com/Faultbox/checkers3d/internal/engine/camera"
	"github.com/Faultbox/checkers3d/pkg/formats"
	"github.com/Faultbox/checkers3d/pkg/math"
)

func (p *Parser) parseScene(el *formats.Element) error {
	root, err := el.String("root")
	if err != nil {
		return failAttr(BlockScene, "", el, err)
	}
	axis, err := el.Float("axis_length")
	if err != nil {
		return failAttr(BlockScene, "", el, err)
	}
	if axis < 0 {
		p.warn(BlockScene, el, "negative axis_length %v, using 0", axis)
		axis = 0
	}
	p.g.Root = root
	p.g.AxisLength = axis
	return nil
}

func (p *Parser) parseViews(el *formats.Element) error {
	def, err := el.String("default")
	if err != nil {
		return failAttr(BlockViews, "", el, err)
	}

	for _, child := range el.Children {
		var (
			v   camera.View
			err error
		)
		switch child.Name {
		case "perspective":
			v, err = p.parsePerspective(child)
		case "ortho":
			v, err = p.parseOrtho(child)
		default:
			p.warn(BlockViews, child, "unknown view type <%s> ignored", child.Name)
			continue
		}
		if err != nil {
			return err
		}
		if err := p.g.AddView(v); err != nil {
			return fail(BlockViews, v.ID, child, ErrDuplicateID, "view defined twice")
		}
	}

	if len(p.g.Views) == 0 {
		return fail(BlockViews, "", el, ErrInvalidValue, "at least one view is required")
	}
	if _, ok := p.g.Views[def]; !ok {
		return fail(BlockViews, def, el, ErrUndefinedRef, "default view is not defined")
	}
	p.g.DefaultView = def
	return nil
}

// viewCommon reads id, near, far and the from/to points.
func (p *Parser) viewCommon(el *formats.Element) (camera.View, error) {
	var v camera.View
	id, err := el.String("id")
	if err != nil {
		return v, failAttr(BlockViews, "", el, err)
	}
	v.ID = id

	if v.Near, err = el.Float("near"); err != nil {
		return v, failAttr(BlockViews, id, el, err)
	}
	if v.Far, err = el.Float("far"); err != nil {
		return v, failAttr(BlockViews, id, el, err)
	}
	if v.Near >= v.Far {
		return v, fail(BlockViews, id, el, ErrInvalidValue, "near (%v) must be less than far (%v)", v.Near, v.Far)
	}

	for _, name := range []string{"from", "to"} {
		c := el.Child(name)
		if c == nil {
			return v, fail(BlockViews, id, el, ErrInvalidValue, "missing <%s>", name)
		}
		xyz, err := c.Coords3()
		if err != nil {
			return v, failAttr(BlockViews, id, c, err)
		}
		if name == "from" {
			v.From = math.Vec3FromArray(xyz)
		} else {
			v.To = math.Vec3FromArray(xyz)
		}
	}

	v.Up = math.Vec3{Y: 1}
	if c := el.Child("up"); c != nil {
		xyz, err := c.Coords3()
		if err != nil {
			return v, failAttr(BlockViews, id, c, err)
		}
		v.Up = math.Vec3FromArray(xyz)
	}

	p.unknownChildren(BlockViews, el, "from", "to", "up")
	return v, nil
}

func (p *Parser) parsePerspective(el *formats.Element) (camera.View, error) {
	v, err := p.viewCommon(el)
	if err != nil {
		return v, err
	}
	v.Kind = camera.Perspective
	if v.Angle, err = el.Float("angle"); err != nil {
		return v, failAttr(BlockViews, v.ID, el, err)
	}
	if v.Angle <= 0 || v.Angle >= 180 {
		return v, fail(BlockViews, v.ID, el, ErrInvalidValue, "angle must be in (0, 180), got %v", v.Angle)
	}
	return v, nil
}

func (p *Parser) parseOrtho(el *formats.Element) (camera.View, error) {
	v, err := p.viewCommon(el)
	if err != nil {
		return v, err
	}
	v.Kind = camera.Ortho
	bounds, err := el.Floats("left", "right", "top", "bottom")
	if err != nil {
		return v, failAttr(BlockViews, v.ID, el, err)
	}
	v.Left, v.Right, v.Top, v.Bottom = bounds[0], bounds[1], bounds[2], bounds[3]
	if v.Left == v.Right || v.Top == v.Bottom {
		return v, fail(BlockViews, v.ID, el, ErrInvalidValue, "ortho bounds are degenerate")
	}
	if el.Child("up") == nil {
		p.warn(BlockViews, el, "ortho view %q has no <up>, using (0,1,0)", v.ID)
	}
	return v, nil
}

func (p *Parser) parseAmbient(el *formats.Element) error {
	p.g.Ambient = [4]float32{0.2, 0.2, 0.2, 1}
	p.g.Background = [4]float32{0, 0, 0, 1}

	for _, name := range []string{"ambient", "background"} {
		c := el.Child(name)
		if c == nil {
			p.warn(BlockAmbient, el, "missing <%s>, using default", name)
			continue
		}
		rgba, err := c.Color()
		if err != nil {
			return failAttr(BlockAmbient, "", c, err)
		}
		if name == "ambient" {
			p.g.Ambient = rgba
		} else {
			p.g.Background = rgba
		}
	}
	p.unknownChildren(BlockAmbient, el, "ambient", "background")
	return nil
}
