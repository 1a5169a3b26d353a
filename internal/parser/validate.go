package parser

import (
	"sort"

	"github.com/Faultbox/checkers3d/internal/graph"
)

// finish checks cross-references that need the whole document: child
// components, the root, material inheritance and cycles.
func (p *Parser) finish() error {
	g := p.g

	ids := make([]string, 0, len(g.Components))
	for id := range g.Components {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, child := range g.Components[id].Children {
			if _, ok := g.Components[child]; !ok {
				return fail(BlockComponents, id, nil, ErrUndefinedRef, "child component %q is not defined", child)
			}
		}
	}

	if _, ok := g.Components[g.Root]; !ok {
		return fail(BlockScene, g.Root, nil, ErrUndefinedRef, "root component is not defined")
	}

	parents := g.Parents()
	templates := make(map[string]bool)
	if g.Board != nil {
		for _, id := range g.Board.Templates() {
			templates[id] = true
		}
	}
	// Only tiles are drawn with a material from the board; pieces, kings
	// and buttons have nothing to inherit from.
	if g.Board != nil {
		for _, id := range g.Board.Templates() {
			if id == g.Board.Tile {
				continue
			}
			for _, m := range g.Components[id].Materials {
				if m == graph.Inherit {
					return fail(BlockBoard, id, nil, ErrInvalidValue, "board template cannot inherit a material")
				}
			}
		}
	}
	for _, id := range ids {
		c := g.Components[id]
		if len(parents[id]) > 0 || templates[id] {
			continue
		}
		for _, m := range c.Materials {
			if m == graph.Inherit {
				return fail(BlockComponents, id, nil, ErrInvalidValue, "material inherit requires a parent component")
			}
		}
	}

	if cycle := findCycle(g); cycle != "" {
		return fail(BlockComponents, cycle, nil, ErrInvalidValue, "component is its own ancestor")
	}

	reachable := make(map[string]bool)
	mark(g, g.Root, reachable)
	for id := range templates {
		mark(g, id, reachable)
	}
	for _, id := range ids {
		if !reachable[id] {
			p.warn(BlockComponents, nil, "component %q is never drawn", id)
		}
	}
	return nil
}

// findCycle returns a component on a parent/child cycle, or "".
func findCycle(g *graph.Graph) string {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g.Components))

	var visit func(id string) string
	visit = func(id string) string {
		switch state[id] {
		case active:
			return id
		case done:
			return ""
		}
		state[id] = active
		for _, child := range g.Components[id].Children {
			if found := visit(child); found != "" {
				return found
			}
		}
		state[id] = done
		return ""
	}

	ids := make([]string, 0, len(g.Components))
	for id := range g.Components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if found := visit(id); found != "" {
			return found
		}
	}
	return ""
}

func mark(g *graph.Graph, id string, seen map[string]bool) {
	if seen[id] {
		return
	}
	c, ok := g.Components[id]
	if !ok {
		return
	}
	seen[id] = true
	for _, child := range c.Children {
		mark(g, child, seen)
	}
}
