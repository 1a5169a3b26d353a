package game

import (
	"github.com/Faultbox/checkers3d/internal/engine/picking"
	"github.com/Faultbox/checkers3d/internal/engine/render"
	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/game/states"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// boardDrawer draws the game objects with the board layout's template
// components. During the pick pass pick is set and tiles, pieces and
// buttons register as click targets.
type boardDrawer struct {
	r      *render.Renderer
	layout *graph.BoardLayout
	pick   *picking.Context
}

var _ states.View = (*boardDrawer)(nil)

func (d *boardDrawer) DrawBoard(v states.BoardView) {
	if d.layout == nil || v.Board == nil {
		return
	}
	l := d.layout
	for _, t := range v.Board.Tiles() {
		var target any
		if v.Pickable {
			target = states.TileTarget{Pos: t.Pos}
		}
		at := d.tileMatrix(t.Pos)

		d.r.RenderAt(l.Tile, at, d.tileMaterial(t, v), graph.NoTexture, d.pick, target)

		p, ok := t.Piece()
		if !ok || v.IsHidden(t.Pos) {
			continue
		}
		d.drawPiece(p, at, target)
	}
}

func (d *boardDrawer) DrawPiece(p checkers.Piece, m math.Mat4) {
	if d.layout == nil {
		return
	}
	d.drawPiece(p, m, nil)
}

func (d *boardDrawer) DrawButtons(actions ...graph.Action) {
	if d.layout == nil {
		return
	}
	for _, a := range actions {
		b, ok := d.layout.Button(a)
		if !ok {
			continue
		}
		at := math.Translate(b.Position.X, b.Position.Y, b.Position.Z)
		d.r.RenderAt(b.Component, at, "", graph.NoTexture, d.pick, states.ButtonTarget{Action: a})
	}
}

func (d *boardDrawer) drawPiece(p checkers.Piece, at math.Mat4, target any) {
	template := d.layout.WhitePiece
	if p.Color == checkers.Black {
		template = d.layout.BlackPiece
	}
	d.r.RenderAt(template, at, "", graph.NoTexture, d.pick, target)
	if p.King && d.layout.King != "" {
		d.r.RenderAt(d.layout.King, at, "", graph.NoTexture, d.pick, target)
	}
}

func (d *boardDrawer) tileMatrix(pos checkers.Pos) math.Mat4 {
	c := d.layout.TileCenter(pos.Row, pos.Col)
	return math.Translate(c.X, c.Y, c.Z)
}

func (d *boardDrawer) tileMaterial(t checkers.Tile, v states.BoardView) string {
	m := d.layout.Materials
	switch {
	case v.Selected != nil && *v.Selected == t.Pos && m.Selected != "":
		return m.Selected
	case v.IsPossible(t.Pos) && m.Possible != "":
		return m.Possible
	case t.Color == checkers.Black:
		return m.Black
	}
	return m.White
}

// clickTarget converts a resolved pick object into a game target.
func clickTarget(obj any) states.Target {
	switch t := obj.(type) {
	case states.TileTarget:
		return t
	case states.ButtonTarget:
		return t
	case render.ComponentTarget:
		return states.SceneTarget{Component: t.ID}
	}
	return nil
}
