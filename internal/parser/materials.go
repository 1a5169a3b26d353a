package parser

import (
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/formats"
)

func (p *Parser) parseTextures(el *formats.Element) error {
	for _, child := range el.Children {
		if child.Name != "texture" {
			p.warn(BlockTextures, child, "unknown tag <%s> ignored", child.Name)
			continue
		}
		id, err := child.String("id")
		if err != nil {
			return failAttr(BlockTextures, "", child, err)
		}
		if id == graph.Inherit || id == graph.None {
			return fail(BlockTextures, id, child, ErrInvalidValue, "%q is reserved", id)
		}
		file, err := child.String("file")
		if err != nil {
			return failAttr(BlockTextures, id, child, err)
		}
		if err := p.g.AddTexture(graph.TextureDef{ID: id, File: p.path(file)}); err != nil {
			return fail(BlockTextures, id, child, ErrDuplicateID, "texture defined twice")
		}
	}
	return nil
}

func (p *Parser) parseMaterials(el *formats.Element) error {
	for _, child := range el.Children {
		if child.Name != "material" {
			p.warn(BlockMaterials, child, "unknown tag <%s> ignored", child.Name)
			continue
		}
		m, err := p.parseMaterial(child)
		if err != nil {
			return err
		}
		if err := p.g.AddMaterial(m); err != nil {
			return fail(BlockMaterials, m.ID, child, ErrDuplicateID, "material defined twice")
		}
	}
	if len(p.g.Materials) == 0 {
		return fail(BlockMaterials, "", el, ErrInvalidValue, "at least one material is required")
	}
	return nil
}

func (p *Parser) parseMaterial(el *formats.Element) (graph.Material, error) {
	var m graph.Material
	id, err := el.String("id")
	if err != nil {
		return m, failAttr(BlockMaterials, "", el, err)
	}
	if id == graph.Inherit || id == graph.None {
		return m, fail(BlockMaterials, id, el, ErrInvalidValue, "%q is reserved", id)
	}
	m.ID = id

	if m.Shininess, err = el.Float("shininess"); err != nil {
		return m, failAttr(BlockMaterials, id, el, err)
	}
	if m.Shininess < 0 {
		return m, fail(BlockMaterials, id, el, ErrInvalidValue, "shininess must be non-negative")
	}

	for _, c := range []struct {
		name string
		dst  *[4]float32
	}{
		{"emission", &m.Emission},
		{"ambient", &m.Ambient},
		{"diffuse", &m.Diffuse},
		{"specular", &m.Specular},
	} {
		ce := el.Child(c.name)
		if ce == nil {
			return m, fail(BlockMaterials, id, el, ErrInvalidValue, "missing <%s>", c.name)
		}
		if *c.dst, err = ce.Color(); err != nil {
			return m, failAttr(BlockMaterials, id, ce, err)
		}
	}
	p.unknownChildren(BlockMaterials, el, "emission", "ambient", "diffuse", "specular")
	return m, nil
}
