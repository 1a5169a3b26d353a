package parser

import (
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/formats"
	"github.com/Faultbox/checkers3d/pkg/math"
)

func (p *Parser) parseTransformations(el *formats.Element) error {
	for _, child := range el.Children {
		if child.Name != "transformation" {
			p.warn(BlockTransformations, child, "unknown tag <%s> ignored", child.Name)
			continue
		}
		id, err := child.String("id")
		if err != nil {
			return failAttr(BlockTransformations, "", child, err)
		}
		ops, err := p.parseOps(BlockTransformations, id, child)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			return fail(BlockTransformations, id, child, ErrInvalidValue, "at least one translate, rotate or scale is required")
		}
		if err := p.g.AddTransformation(graph.Transformation{ID: id, Ops: ops}); err != nil {
			return fail(BlockTransformations, id, child, ErrDuplicateID, "transformation defined twice")
		}
	}
	return nil
}

// parseOps reads translate, rotate and scale children in document order.
// Angles in the file are degrees.
func (p *Parser) parseOps(block, id string, el *formats.Element) ([]graph.Op, error) {
	var ops []graph.Op
	for _, c := range el.Children {
		switch c.Name {
		case "translate", "scale":
			xyz, err := c.Coords3()
			if err != nil {
				return nil, failAttr(block, id, c, err)
			}
			op := graph.Op{Kind: graph.OpTranslate, Vec: math.Vec3FromArray(xyz)}
			if c.Name == "scale" {
				op.Kind = graph.OpScale
			}
			ops = append(ops, op)
		case "rotate":
			axisName, err := c.String("axis")
			if err != nil {
				return nil, failAttr(block, id, c, err)
			}
			axis, err := math.ParseAxis(axisName)
			if err != nil {
				return nil, fail(block, id, c, ErrInvalidValue, "rotate axis %q must be x, y or z", axisName)
			}
			angle, err := c.Float("angle")
			if err != nil {
				return nil, failAttr(block, id, c, err)
			}
			ops = append(ops, graph.Op{Kind: graph.OpRotate, Axis: axis, Angle: math.Radians(angle)})
		case "transformationref":
			// Handled by the component parser.
		default:
			p.warn(block, c, "unknown transformation step <%s> ignored", c.Name)
		}
	}
	return ops, nil
}
