package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/checkers3d/internal/engine/audio"
	"github.com/Faultbox/checkers3d/internal/engine/camera"
	"github.com/Faultbox/checkers3d/internal/engine/picking"
	"github.com/Faultbox/checkers3d/internal/engine/primitive"
	"github.com/Faultbox/checkers3d/internal/engine/render"
	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/game/states"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// draw is one primitive draw seen by the fake surface.
type draw struct {
	prim     string
	material string
	pickID   int
}

type surface struct {
	draws    []draw
	material string
	pickID   int
}

func (s *surface) PushMatrix()                               {}
func (s *surface) PopMatrix()                                {}
func (s *surface) MultMatrix(math.Mat4)                      {}
func (s *surface) UseShader(render.Shader)                   {}
func (s *surface) SetHighlight([3]float32, float32, float32) {}
func (s *surface) RegisterForPick(id int)                    { s.pickID = id }

type prim struct {
	id string
	s  *surface
}

func (p prim) Display() {
	p.s.draws = append(p.s.draws, draw{prim: p.id, material: p.s.material, pickID: p.s.pickID})
}
func (prim) ScaleTexCoords(float32, float32) {}

type appearance struct {
	id string
	s  *surface
}

func (a appearance) Apply()                                { a.s.material = a.id }
func (appearance) SetTexture(render.Texture)               {}
func (appearance) SetTextureWrap(render.Wrap, render.Wrap) {}

type resources struct{ s *surface }

func (r resources) Appearance(id string) (render.Appearance, bool) {
	return appearance{id: id, s: r.s}, true
}
func (resources) Texture(string) (render.Texture, bool) { return nil, false }
func (r resources) Primitive(id string) (render.Primitive, bool) {
	return prim{id: id, s: r.s}, true
}

// newDrawer builds a board scene whose templates each draw one primitive
// named after the template.
func newDrawer(t *testing.T) (*boardDrawer, *surface) {
	t.Helper()
	g := graph.New()
	g.Root = "root"
	for _, id := range []string{"root", "tile", "white-piece", "black-piece", "king", "button"} {
		require.NoError(t, g.AddPrimitive(graph.PrimitiveDef{ID: id, Geometry: primitive.Rectangle{X2: 1, Y2: 1}}))
		c := graph.NewComponent(id)
		c.Primitives = []string{id}
		require.NoError(t, g.AddComponent(c))
	}
	g.Board = &graph.BoardLayout{
		TileSize:   1,
		Tile:       "tile",
		WhitePiece: "white-piece",
		BlackPiece: "black-piece",
		King:       "king",
		Materials:  graph.TileMaterials{White: "light", Black: "dark", Selected: "selected", Possible: "possible"},
		Buttons: []graph.Button{
			{Action: graph.ActionPlay, Component: "button"},
			{Action: graph.ActionUndo, Component: "button"},
		},
	}
	s := &surface{}
	return &boardDrawer{r: render.New(g, s, resources{s: s}), layout: g.Board}, s
}

func count(draws []draw, match func(draw) bool) int {
	n := 0
	for _, d := range draws {
		if match(d) {
			n++
		}
	}
	return n
}

func byPrim(id string) func(draw) bool {
	return func(d draw) bool { return d.prim == id }
}

func TestDrawBoardStartingPosition(t *testing.T) {
	d, s := newDrawer(t)
	d.DrawBoard(states.BoardView{Board: checkers.NewBoard()})

	assert.Equal(t, 64, count(s.draws, byPrim("tile")))
	assert.Equal(t, 12, count(s.draws, byPrim("white-piece")))
	assert.Equal(t, 12, count(s.draws, byPrim("black-piece")))
	assert.Zero(t, count(s.draws, byPrim("king")))

	assert.Equal(t, 32, count(s.draws, func(d draw) bool { return d.prim == "tile" && d.material == "dark" }))
	assert.Equal(t, 32, count(s.draws, func(d draw) bool { return d.prim == "tile" && d.material == "light" }))
	assert.Equal(t, draw{prim: "tile", material: "dark"}, s.draws[0], "tile (0,0) is dark")
}

func TestDrawBoardSelection(t *testing.T) {
	d, s := newDrawer(t)
	sel := checkers.Pos{Row: 2, Col: 2}
	d.DrawBoard(states.BoardView{
		Board:    checkers.NewBoard(),
		Selected: &sel,
		Possible: []checkers.Pos{{Row: 3, Col: 1}, {Row: 3, Col: 3}},
		Hidden:   []checkers.Pos{{Row: 0, Col: 0}},
	})

	assert.Equal(t, 1, count(s.draws, func(d draw) bool { return d.material == "selected" && d.prim == "tile" }))
	assert.Equal(t, 2, count(s.draws, func(d draw) bool { return d.material == "possible" && d.prim == "tile" }))
	assert.Equal(t, 11, count(s.draws, byPrim("white-piece")), "hidden piece is skipped")
}

func TestDrawKing(t *testing.T) {
	d, s := newDrawer(t)
	d.DrawPiece(checkers.Piece{Color: checkers.Black, King: true}, math.Identity())
	require.Len(t, s.draws, 2)
	assert.Equal(t, "black-piece", s.draws[0].prim)
	assert.Equal(t, "king", s.draws[1].prim)
}

func TestPickPassRegistersTargets(t *testing.T) {
	d, s := newDrawer(t)
	pick := picking.NewContext()
	d.pick = pick

	d.DrawBoard(states.BoardView{Board: checkers.NewBoard(), Pickable: true})
	d.DrawButtons(graph.ActionUndo, graph.ActionRematch)

	// 64 tiles, 24 pieces sharing their tile's target, one known button
	assert.Equal(t, 64+24+1, pick.Len())

	// First tile and its piece share one ID
	require.GreaterOrEqual(t, len(s.draws), 2)
	assert.Equal(t, s.draws[0].pickID, s.draws[1].pickID)
	obj, ok := pick.Resolve(s.draws[0].pickID)
	require.True(t, ok)
	assert.Equal(t, states.TileTarget{Pos: checkers.Pos{}}, clickTarget(obj))

	last := s.draws[len(s.draws)-1]
	assert.Equal(t, "button", last.prim)
	obj, ok = pick.Resolve(last.pickID)
	require.True(t, ok)
	assert.Equal(t, states.ButtonTarget{Action: graph.ActionUndo}, clickTarget(obj))
}

func TestNonPickableBoardRegistersComponents(t *testing.T) {
	d, s := newDrawer(t)
	pick := picking.NewContext()
	d.pick = pick

	d.DrawBoard(states.BoardView{Board: checkers.EmptyBoard()})
	require.NotEmpty(t, s.draws)
	obj, ok := pick.Resolve(s.draws[0].pickID)
	require.True(t, ok)
	assert.Equal(t, states.SceneTarget{Component: "tile"}, clickTarget(obj))
}

func TestDrawerWithoutLayout(t *testing.T) {
	d := &boardDrawer{}
	assert.NotPanics(t, func() {
		d.DrawBoard(states.BoardView{Board: checkers.NewBoard()})
		d.DrawPiece(checkers.Piece{}, math.Identity())
		d.DrawButtons(graph.ActionPlay)
	})
}

func TestClickTargetUnknown(t *testing.T) {
	assert.Nil(t, clickTarget("something"))
	assert.Nil(t, clickTarget(nil))
}

func testView(id string, x float32) camera.View {
	return camera.View{
		ID:    id,
		From:  math.Vec3{X: x, Y: 5, Z: 10},
		To:    math.Vec3{},
		Near:  0.1,
		Far:   100,
		Angle: 45,
	}
}

func TestCameraRigFlight(t *testing.T) {
	rig := newCameraRig(1)
	a, b := testView("a", 0), testView("b", 10)
	rig.Set(a)
	assert.InDelta(t, 0, rig.View().From.X, 1e-4)

	rig.FlyTo(b)
	assert.True(t, rig.Flying())

	// Input is ignored mid-flight
	before := rig.View()
	rig.Drag(100, 0)
	rig.Zoom(1)
	assert.Equal(t, before, rig.View())

	rig.Update(2)
	rig.Update(2.5)
	assert.InDelta(t, 5, rig.View().From.X, 1e-3, "halfway")
	rig.Update(3)
	assert.False(t, rig.Flying())
	assert.InDelta(t, 10, rig.View().From.X, 1e-3)
	assert.Equal(t, "b", rig.View().ID)

	rig.Zoom(1)
	assert.Less(t, rig.View().From.Sub(b.To).Length(), b.From.Sub(b.To).Length())
}

type sounds struct{ played []audio.Effect }

func (s *sounds) Play(e audio.Effect) error {
	s.played = append(s.played, e)
	return nil
}

func TestMatchEvents(t *testing.T) {
	dir := t.TempDir()
	snd := &sounds{}
	rig := newCameraRig(1)
	rig.Set(testView("start", 0))

	ev := &matchEvents{
		camera:    rig,
		sounds:    snd,
		recordDir: filepath.Join(dir, "records"),
		log:       zaptest.NewLogger(t),
	}
	ev.views[checkers.Player2] = testView("black", 10)
	ev.hasView[checkers.Player2] = true

	ev.TurnStarted(checkers.Player1)
	assert.False(t, rig.Flying(), "player 1 has no view")
	ev.TurnStarted(checkers.Player2)
	assert.True(t, rig.Flying())

	m := states.NewMatch(nil, states.DefaultTiming(), ev)
	mv, err := m.Play(checkers.Player1, checkers.Pos{Row: 2, Col: 2}, checkers.Pos{Row: 3, Col: 3})
	require.NoError(t, err)
	ev.Moved(mv)
	ev.GameOver(checkers.Player1, m)
	assert.Equal(t, []audio.Effect{audio.EffectMove, audio.EffectGameOver}, snd.played)

	entries, err := os.ReadDir(ev.recordDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".yaml"))

	rec, err := checkers.LoadRecord(filepath.Join(ev.recordDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "player1", rec.Winner)
	require.Len(t, rec.Moves, 1)

	seq, err := rec.Sequence()
	require.NoError(t, err)
	assert.Equal(t, 1, seq.Len())
}

func TestMatchEventsWithoutSounds(t *testing.T) {
	ev := &matchEvents{log: zaptest.NewLogger(t)}
	assert.NotPanics(t, func() {
		ev.TurnStarted(checkers.Player1)
		ev.Moved(&checkers.GameMove{})
		ev.GameOver(checkers.Player2, states.NewMatch(nil, states.DefaultTiming(), nil))
	})
}
