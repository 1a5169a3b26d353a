package parser

import (
	"github.com/Faultbox/checkers3d/internal/engine/primitive"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/formats"
)

// geometryTags lists the accepted primitive shapes.
var geometryTags = map[string]bool{
	"rectangle": true,
	"triangle":  true,
	"cylinder":  true,
	"sphere":    true,
	"torus":     true,
	"patch":     true,
	"model":     true,
}

func (p *Parser) parsePrimitives(el *formats.Element) error {
	for _, child := range el.Children {
		if child.Name != "primitive" {
			p.warn(BlockPrimitives, child, "unknown tag <%s> ignored", child.Name)
			continue
		}
		id, err := child.String("id")
		if err != nil {
			return failAttr(BlockPrimitives, "", child, err)
		}

		var shape *formats.Element
		for _, c := range child.Children {
			if !geometryTags[c.Name] {
				p.warn(BlockPrimitives, c, "unknown geometry <%s> ignored", c.Name)
				continue
			}
			if shape != nil {
				return fail(BlockPrimitives, id, c, ErrInvalidGeometry, "more than one geometry (<%s> and <%s>)", shape.Name, c.Name)
			}
			shape = c
		}
		if shape == nil {
			return fail(BlockPrimitives, id, child, ErrInvalidGeometry, "no geometry")
		}

		geom, err := p.parseGeometry(id, shape)
		if err != nil {
			return err
		}
		if err := primitive.Validate(geom); err != nil {
			return &Error{Block: BlockPrimitives, ID: id, Line: shape.Line, Err: err}
		}
		if err := p.g.AddPrimitive(graph.PrimitiveDef{ID: id, Geometry: geom}); err != nil {
			return fail(BlockPrimitives, id, child, ErrDuplicateID, "primitive defined twice")
		}
	}
	return nil
}

func (p *Parser) parseGeometry(id string, el *formats.Element) (primitive.Geometry, error) {
	bad := func(err error) (primitive.Geometry, error) {
		return nil, failAttr(BlockPrimitives, id, el, err)
	}

	switch el.Name {
	case "rectangle":
		v, err := el.Floats("x1", "y1", "x2", "y2")
		if err != nil {
			return bad(err)
		}
		return primitive.Rectangle{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil

	case "triangle":
		v, err := el.Floats("x1", "y1", "z1", "x2", "y2", "z2", "x3", "y3", "z3")
		if err != nil {
			return bad(err)
		}
		return primitive.Triangle{
			P1: [3]float32{v[0], v[1], v[2]},
			P2: [3]float32{v[3], v[4], v[5]},
			P3: [3]float32{v[6], v[7], v[8]},
		}, nil

	case "cylinder":
		v, err := el.Floats("base", "top", "height")
		if err != nil {
			return bad(err)
		}
		slices, err := el.Int("slices")
		if err != nil {
			return bad(err)
		}
		stacks, err := el.Int("stacks")
		if err != nil {
			return bad(err)
		}
		return primitive.Cylinder{Base: v[0], Top: v[1], Height: v[2], Slices: slices, Stacks: stacks}, nil

	case "sphere":
		r, err := el.Float("radius")
		if err != nil {
			return bad(err)
		}
		slices, err := el.Int("slices")
		if err != nil {
			return bad(err)
		}
		stacks, err := el.Int("stacks")
		if err != nil {
			return bad(err)
		}
		return primitive.Sphere{Radius: r, Slices: slices, Stacks: stacks}, nil

	case "torus":
		v, err := el.Floats("inner", "outer")
		if err != nil {
			return bad(err)
		}
		slices, err := el.Int("slices")
		if err != nil {
			return bad(err)
		}
		loops, err := el.Int("loops")
		if err != nil {
			return bad(err)
		}
		return primitive.Torus{Inner: v[0], Outer: v[1], Slices: slices, Loops: loops}, nil

	case "patch":
		return p.parsePatch(id, el)

	case "model":
		file, err := el.String("file")
		if err != nil {
			return bad(err)
		}
		return primitive.Model{File: p.path(file)}, nil
	}
	return nil, fail(BlockPrimitives, id, el, ErrInvalidGeometry, "unknown geometry <%s>", el.Name)
}

func (p *Parser) parsePatch(id string, el *formats.Element) (primitive.Geometry, error) {
	var dims [4]int
	for i, name := range []string{"npointsU", "npointsV", "npartsU", "npartsV"} {
		n, err := el.Int(name)
		if err != nil {
			return nil, failAttr(BlockPrimitives, id, el, err)
		}
		dims[i] = n
	}

	patch := primitive.Patch{PointsU: dims[0], PointsV: dims[1], PartsU: dims[2], PartsV: dims[3]}
	for _, c := range el.Children {
		if c.Name != "controlpoint" {
			p.warn(BlockPrimitives, c, "unknown tag <%s> in <patch> ignored", c.Name)
			continue
		}
		xyz, err := c.Coords3()
		if err != nil {
			return nil, failAttr(BlockPrimitives, id, c, err)
		}
		patch.ControlPoints = append(patch.ControlPoints, xyz)
	}
	return patch, nil
}
