package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/checkers3d/internal/game/checkers"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/internal/parser"
)

// errInvalid is returned by validate when any scene failed to parse.
var errInvalid = errors.New("invalid scenes")

// result is the outcome of parsing one scene.
type result struct {
	path     string
	graph    *graph.Graph
	warnings []error
	err      error
}

// parseAll parses every path with at most jobs parsers running at once.
// Results keep the order of paths.
func parseAll(ctx context.Context, paths []string, jobs int) []result {
	results := make([]result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = result{path: path, err: err}
				return nil
			}
			sg, warnings, err := parser.ParseFile(path)
			results[i] = result{path: path, graph: sg, warnings: warnings, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func cmdValidate(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	jobs := fs.Int("j", runtime.NumCPU(), "Parse up to N files at once")
	quiet := fs.Bool("q", false, "Only print failures")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: sgxtool validate [-j N] <scene.xml>...")
	}
	if *jobs < 1 {
		*jobs = 1
	}

	failed := 0
	for _, r := range parseAll(context.Background(), fs.Args(), *jobs) {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s\n     %v\n", r.path, r.err)
			continue
		}
		if *quiet {
			continue
		}
		fmt.Fprintf(w, "ok   %s  %016x  (%d warnings)\n", r.path, r.graph.Fingerprint(), len(r.warnings))
		for _, warn := range r.warnings {
			fmt.Fprintf(w, "     warning: %v\n", warn)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, fs.NArg(), errInvalid)
	}
	return nil
}

func cmdInfo(w io.Writer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: sgxtool info <scene.xml>")
	}
	g, warnings, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Scene:       %s\n", args[0])
	fmt.Fprintf(w, "Fingerprint: %016x\n", g.Fingerprint())
	fmt.Fprintf(w, "Root:        %s\n", g.Root)
	fmt.Fprintf(w, "Views:       %d (default %s)\n", len(g.Views), g.DefaultView)
	fmt.Fprintf(w, "Lights:      %d\n", len(g.Lights))
	fmt.Fprintf(w, "Textures:    %d\n", len(g.Textures))
	fmt.Fprintf(w, "Materials:   %d\n", len(g.Materials))
	fmt.Fprintf(w, "Primitives:  %d\n", len(g.Primitives))
	fmt.Fprintf(w, "Animations:  %d\n", len(g.Animations))
	fmt.Fprintf(w, "Components:  %d\n", len(g.Components))
	fmt.Fprintf(w, "Warnings:    %d\n", len(warnings))

	if b := g.Board; b != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Board:")
		fmt.Fprintf(w, "  tile     %s (size %g)\n", b.Tile, b.TileSize)
		fmt.Fprintf(w, "  pieces   %s / %s (king %s)\n", b.WhitePiece, b.BlackPiece, b.King)
		fmt.Fprintf(w, "  views    %s / %s\n", b.PlayerViews[0], b.PlayerViews[1])
		actions := make([]string, 0, len(b.Buttons))
		for _, btn := range b.Buttons {
			actions = append(actions, string(btn.Action))
		}
		sort.Strings(actions)
		fmt.Fprintf(w, "  buttons  %v\n", actions)
	}
	return nil
}

func cmdReplay(w io.Writer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: sgxtool replay <record.yaml>")
	}
	rec, err := checkers.LoadRecord(args[0])
	if err != nil {
		return err
	}
	seq, err := rec.Sequence()
	if err != nil {
		return fmt.Errorf("record %s: %w", rec.MatchID, err)
	}

	fmt.Fprintf(w, "Match:  %s\n", rec.MatchID)
	fmt.Fprintf(w, "Played: %s\n", rec.Played.Format("2006-01-02 15:04:05"))
	if rec.Winner != "" {
		fmt.Fprintf(w, "Winner: %s\n", rec.Winner)
	}
	fmt.Fprintln(w)
	for i, mv := range seq.Moves() {
		line := fmt.Sprintf("%3d. %s", i+1, mv)
		if mv.Capture() {
			line += fmt.Sprintf("  x%d", len(mv.Captured))
		}
		if mv.Promoted {
			line += "  king"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, seq.Current())
	return nil
}
