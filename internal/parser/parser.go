// Package parser builds a scene graph from an XML scene document.
//
// A document is an <sxs> element holding the blocks scene, views, ambient,
// lights, textures, materials, transformations, primitives, animations,
// components and board, in that order. Every block but board is required.
// The first fatal problem aborts the parse with a *Error; recoverable ones
// are logged and collected as warnings.
package parser

import (
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/engine/lighting"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/internal/logger"
	"github.com/Faultbox/checkers3d/pkg/formats"
)

// RootTag is the document element name.
const RootTag = "sxs"

// Block names in document order.
const (
	BlockScene           = "scene"
	BlockViews           = "views"
	BlockAmbient         = "ambient"
	BlockLights          = "lights"
	BlockTextures        = "textures"
	BlockMaterials       = "materials"
	BlockTransformations = "transformations"
	BlockPrimitives      = "primitives"
	BlockAnimations      = "animations"
	BlockComponents      = "components"
	BlockBoard           = "board"
)

// BlockOrder is the expected order of top-level blocks.
var BlockOrder = []string{
	BlockScene, BlockViews, BlockAmbient, BlockLights, BlockTextures,
	BlockMaterials, BlockTransformations, BlockPrimitives, BlockAnimations,
	BlockComponents, BlockBoard,
}

// Option configures a Parser.
type Option func(*Parser)

// WithReservedLights keeps n light slots free for the application.
func WithReservedLights(n int) Option {
	return func(p *Parser) { p.reservedLights = n }
}

// WithLogger sets the logger warnings are written to.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithBaseDir resolves relative texture and model paths against dir.
func WithBaseDir(dir string) Option {
	return func(p *Parser) { p.baseDir = dir }
}

// Parser turns a scene document into a graph. A Parser is single use.
type Parser struct {
	log            *zap.Logger
	reservedLights int
	baseDir        string

	g        *graph.Graph
	warnings error
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{reservedLights: 1}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Named("parser")
	}
	return p
}

// ParseFile loads and parses a scene file. Relative asset paths resolve
// against the file's directory unless WithBaseDir is given.
func ParseFile(path string, opts ...Option) (*graph.Graph, []error, error) {
	opts = append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)
	p := New(opts...)
	g, err := p.ParseFile(path)
	return g, p.Warnings(), err
}

// ParseFile loads and parses a scene file.
func (p *Parser) ParseFile(path string) (*graph.Graph, error) {
	doc, err := formats.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	return p.Parse(doc)
}

// Warnings returns the recoverable problems found so far.
func (p *Parser) Warnings() []error {
	return multierr.Errors(p.warnings)
}

// Parse builds the graph from a decoded document. It returns nil and the
// first fatal error if the scene cannot be loaded.
func (p *Parser) Parse(doc *formats.Element) (*graph.Graph, error) {
	if doc.Name != RootTag {
		return nil, fail(doc.Name, "", doc, ErrInvalidValue, "root element must be <%s>", RootTag)
	}
	p.g = graph.New()

	blocks := p.collectBlocks(doc)

	steps := []struct {
		name  string
		parse func(*formats.Element) error
	}{
		{BlockScene, p.parseScene},
		{BlockViews, p.parseViews},
		{BlockAmbient, p.parseAmbient},
		{BlockLights, p.parseLights},
		{BlockTextures, p.parseTextures},
		{BlockMaterials, p.parseMaterials},
		{BlockTransformations, p.parseTransformations},
		{BlockPrimitives, p.parsePrimitives},
		{BlockAnimations, p.parseAnimations},
		{BlockComponents, p.parseComponents},
		{BlockBoard, p.parseBoard},
	}
	for _, s := range steps {
		el, ok := blocks[s.name]
		if !ok {
			if s.name == BlockBoard {
				p.warn(BlockBoard, doc, "no <board> block, game disabled")
				continue
			}
			return nil, fail(s.name, "", doc, ErrMissingBlock, "block <%s> is required", s.name)
		}
		if err := s.parse(el); err != nil {
			return nil, err
		}
	}

	if err := p.finish(); err != nil {
		return nil, err
	}

	p.log.Debug("scene parsed",
		zap.String("root", p.g.Root),
		zap.Int("components", len(p.g.Components)),
		zap.Int("primitives", len(p.g.Primitives)),
		zap.Int("warnings", len(p.Warnings())),
	)
	return p.g, nil
}

// collectBlocks indexes the top-level blocks, warning on unknown, repeated
// and out-of-order ones.
func (p *Parser) collectBlocks(doc *formats.Element) map[string]*formats.Element {
	index := make(map[string]int, len(BlockOrder))
	for i, name := range BlockOrder {
		index[name] = i
	}

	blocks := make(map[string]*formats.Element, len(BlockOrder))
	last := -1
	for _, el := range doc.Children {
		i, known := index[el.Name]
		if !known {
			p.warn(RootTag, el, "unknown block <%s> ignored", el.Name)
			continue
		}
		if _, dup := blocks[el.Name]; dup {
			p.warn(el.Name, el, "repeated block ignored")
			continue
		}
		if i < last {
			p.warn(el.Name, el, "block <%s> out of order, expected after <%s>", el.Name, BlockOrder[last])
		} else {
			last = i
		}
		blocks[el.Name] = el
	}
	return blocks
}

func (p *Parser) warn(block string, el *formats.Element, format string, args ...any) {
	w := &Warning{Block: block, Msg: fmt.Sprintf(format, args...)}
	if el != nil {
		w.Line = el.Line
	}
	p.warnings = multierr.Append(p.warnings, w)
	p.log.Warn(w.Msg, zap.String("block", block), zap.Int("line", w.Line))
}

// path resolves an asset path from the scene file.
func (p *Parser) path(file string) string {
	if filepath.IsAbs(file) || p.baseDir == "" {
		return file
	}
	return filepath.Join(p.baseDir, file)
}

func (p *Parser) lightCapacity() int {
	c := lighting.MaxLights - p.reservedLights
	if c < 0 {
		return 0
	}
	return c
}

// unknownChildren warns about child tags not in allowed.
func (p *Parser) unknownChildren(block string, el *formats.Element, allowed ...string) {
	for _, c := range el.Children {
		ok := false
		for _, a := range allowed {
			if c.Name == a {
				ok = true
				break
			}
		}
		if !ok {
			p.warn(block, c, "unknown tag <%s> in <%s> ignored", c.Name, el.Name)
		}
	}
}
