package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/engine/camera"
	"github.com/Faultbox/checkers3d/internal/engine/lighting"
	"github.com/Faultbox/checkers3d/internal/engine/render"
	"github.com/Faultbox/checkers3d/internal/engine/renderer"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/internal/parser"
)

// scene is a parsed graph together with its GPU resources.
type scene struct {
	graph   *graph.Graph
	library *renderer.Library
	lights  *lighting.Buffer
	render  *render.Renderer
	// viewIdx indexes graph.ViewOrder.
	viewIdx int
}

// loadScene parses path and uploads its resources to r.
func loadScene(path string, reserved int, r *renderer.Renderer, log *zap.Logger) (*scene, error) {
	g, warnings, err := parser.ParseFile(path,
		parser.WithReservedLights(reserved),
		parser.WithLogger(log))
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn("scene", zap.Error(w))
	}

	lib, err := r.NewLibrary(g)
	if err != nil {
		// Missing textures only lose their texture.
		log.Warn("scene resources", zap.Error(err))
	}

	lights := lighting.NewBuffer(reserved)
	if dropped := lights.Set(g.Lights); dropped > 0 {
		log.Warn("too many lights", zap.Int("dropped", dropped))
	}

	s := &scene{
		graph:   g,
		library: lib,
		lights:  lights,
		render:  render.New(g, r, lib),
	}
	for i, id := range g.ViewOrder {
		if id == g.DefaultView {
			s.viewIdx = i
		}
	}
	log.Info("scene loaded",
		zap.String("path", path),
		zap.Int("components", len(g.Components)),
		zap.Int("lights", len(lights.Lights)),
		zap.String("fingerprint", fmt.Sprintf("%016x", g.Fingerprint())),
		zap.Int("warnings", len(warnings)))
	return s, nil
}

// view returns the currently selected scene view.
func (s *scene) view() camera.View {
	return s.graph.Views[s.graph.ViewOrder[s.viewIdx]]
}

// nextView advances to the next view in document order.
func (s *scene) nextView() camera.View {
	s.viewIdx = (s.viewIdx + 1) % len(s.graph.ViewOrder)
	return s.view()
}

// playerViews resolves the board's per-player view IDs.
func (s *scene) playerViews() (views [2]camera.View, ok [2]bool) {
	if s.graph.Board == nil {
		return views, ok
	}
	for i, id := range s.graph.Board.PlayerViews {
		if id == "" {
			continue
		}
		views[i], ok[i] = s.graph.Views[id]
	}
	return views, ok
}

func (s *scene) close() {
	if s.library != nil {
		s.library.Delete()
	}
}
