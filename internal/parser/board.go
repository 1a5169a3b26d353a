package parser

import (
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/formats"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// parseBoard reads the checkers layout:
//
//	<board>
//	  <position x y z/>
//	  <tiles size component/>
//	  <pieces white black king/>
//	  <tilematerials white black selected possible/>
//	  <playerviews player1 player2/>
//	  <buttons><button action component><position x y z/></button></buttons>
//	</board>
func (p *Parser) parseBoard(el *formats.Element) error {
	b := &graph.BoardLayout{}

	if pos := el.Child("position"); pos != nil {
		xyz, err := pos.Coords3()
		if err != nil {
			return failAttr(BlockBoard, "", pos, err)
		}
		b.Position = math.Vec3FromArray(xyz)
	}

	tiles := el.Child("tiles")
	if tiles == nil {
		return fail(BlockBoard, "", el, ErrInvalidValue, "missing <tiles>")
	}
	size, err := tiles.Float("size")
	if err != nil {
		return failAttr(BlockBoard, "", tiles, err)
	}
	if size <= 0 {
		return fail(BlockBoard, "", tiles, ErrInvalidValue, "tile size must be positive, got %v", size)
	}
	b.TileSize = size
	if b.Tile, err = p.componentRef(tiles, "component"); err != nil {
		return err
	}

	pieces := el.Child("pieces")
	if pieces == nil {
		return fail(BlockBoard, "", el, ErrInvalidValue, "missing <pieces>")
	}
	if b.WhitePiece, err = p.componentRef(pieces, "white"); err != nil {
		return err
	}
	if b.BlackPiece, err = p.componentRef(pieces, "black"); err != nil {
		return err
	}
	if pieces.Has("king") {
		if b.King, err = p.componentRef(pieces, "king"); err != nil {
			return err
		}
	}

	mats := el.Child("tilematerials")
	if mats == nil {
		return fail(BlockBoard, "", el, ErrInvalidValue, "missing <tilematerials>")
	}
	for _, m := range []struct {
		name string
		dst  *string
	}{
		{"white", &b.Materials.White},
		{"black", &b.Materials.Black},
		{"selected", &b.Materials.Selected},
		{"possible", &b.Materials.Possible},
	} {
		ref, err := mats.String(m.name)
		if err != nil {
			return failAttr(BlockBoard, "", mats, err)
		}
		if _, ok := p.g.Materials[ref]; !ok {
			return fail(BlockBoard, "", mats, ErrUndefinedRef, "material %q is not defined", ref)
		}
		*m.dst = ref
	}

	if pv := el.Child("playerviews"); pv != nil {
		for i, name := range []string{"player1", "player2"} {
			if !pv.Has(name) {
				continue
			}
			ref, err := pv.String(name)
			if err != nil {
				return failAttr(BlockBoard, "", pv, err)
			}
			if _, ok := p.g.Views[ref]; !ok {
				return fail(BlockBoard, "", pv, ErrUndefinedRef, "view %q is not defined", ref)
			}
			b.PlayerViews[i] = ref
		}
	}

	if buttons := el.Child("buttons"); buttons != nil {
		seen := make(map[graph.Action]bool)
		for _, be := range buttons.Children {
			if be.Name != "button" {
				p.warn(BlockBoard, be, "unknown tag <%s> in <buttons> ignored", be.Name)
				continue
			}
			action, err := be.String("action")
			if err != nil {
				return failAttr(BlockBoard, "", be, err)
			}
			a := graph.Action(action)
			if !graph.ValidAction(a) {
				p.warn(BlockBoard, be, "unknown button action %q ignored", action)
				continue
			}
			if seen[a] {
				return fail(BlockBoard, action, be, ErrDuplicateID, "button defined twice")
			}
			seen[a] = true

			btn := graph.Button{Action: a}
			if btn.Component, err = p.componentRef(be, "component"); err != nil {
				return err
			}
			if pos := be.Child("position"); pos != nil {
				xyz, err := pos.Coords3()
				if err != nil {
					return failAttr(BlockBoard, action, pos, err)
				}
				btn.Position = math.Vec3FromArray(xyz)
			}
			b.Buttons = append(b.Buttons, btn)
		}
		if !seen[graph.ActionPlay] {
			p.warn(BlockBoard, buttons, "no play button, the game cannot be started by click")
		}
	} else {
		p.warn(BlockBoard, el, "no <buttons>, the game cannot be started by click")
	}

	p.unknownChildren(BlockBoard, el, "position", "tiles", "pieces", "tilematerials", "playerviews", "buttons")
	p.g.Board = b
	return nil
}

// componentRef reads an attribute naming an existing component.
func (p *Parser) componentRef(el *formats.Element, attr string) (string, error) {
	ref, err := el.String(attr)
	if err != nil {
		return "", failAttr(BlockBoard, "", el, err)
	}
	if _, ok := p.g.Components[ref]; !ok {
		return "", fail(BlockBoard, "", el, ErrUndefinedRef, "component %q is not defined", ref)
	}
	return ref, nil
}
