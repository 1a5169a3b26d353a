package parser

import (
	"github.com/Faultbox/checkers3d/internal/engine/lighting"
	"github.com/Faultbox/checkers3d/pkg/formats"
)

func (p *Parser) parseLights(el *formats.Element) error {
	capacity := p.lightCapacity()
	skipped := 0
	seen := make(map[string]bool)

	for _, child := range el.Children {
		var kind lighting.Kind
		switch child.Name {
		case "omni":
			kind = lighting.Omni
		case "spot":
			kind = lighting.Spot
		default:
			p.warn(BlockLights, child, "unknown light type <%s> ignored", child.Name)
			continue
		}

		l, err := p.parseLight(child, kind)
		if err != nil {
			return err
		}
		if seen[l.ID] {
			return fail(BlockLights, l.ID, child, ErrDuplicateID, "light defined twice")
		}
		seen[l.ID] = true
		if len(p.g.Lights) >= capacity {
			skipped++
			continue
		}
		if err := p.g.AddLight(l); err != nil {
			return fail(BlockLights, l.ID, child, ErrDuplicateID, "light defined twice")
		}
	}

	if len(p.g.Lights) == 0 {
		return fail(BlockLights, "", el, ErrInvalidValue, "at least one light is required")
	}
	if skipped > 0 {
		p.warn(BlockLights, el, "only %d lights are supported, %d ignored", capacity, skipped)
	}
	return nil
}

func (p *Parser) parseLight(el *formats.Element, kind lighting.Kind) (lighting.Light, error) {
	l := lighting.Light{Kind: kind, Enabled: true, Attenuation: lighting.DefaultAttenuation()}

	id, err := el.String("id")
	if err != nil {
		return l, failAttr(BlockLights, "", el, err)
	}
	l.ID = id

	if el.Has("enabled") {
		if l.Enabled, err = el.Bool("enabled"); err != nil {
			return l, failAttr(BlockLights, id, el, err)
		}
	} else {
		p.warn(BlockLights, el, "light %q has no enabled attribute, assuming true", id)
	}

	loc := el.Child("location")
	if loc == nil {
		return l, fail(BlockLights, id, el, ErrInvalidValue, "missing <location>")
	}
	if l.Location, err = loc.Coords4(); err != nil {
		return l, failAttr(BlockLights, id, loc, err)
	}

	for _, c := range []struct {
		name string
		dst  *[4]float32
	}{
		{"ambient", &l.Ambient},
		{"diffuse", &l.Diffuse},
		{"specular", &l.Specular},
	} {
		ce := el.Child(c.name)
		if ce == nil {
			return l, fail(BlockLights, id, el, ErrInvalidValue, "missing <%s>", c.name)
		}
		if *c.dst, err = ce.Color(); err != nil {
			return l, failAttr(BlockLights, id, ce, err)
		}
	}

	if att := el.Child("attenuation"); att != nil {
		v, err := att.Floats("constant", "linear", "quadratic")
		if err != nil {
			return l, failAttr(BlockLights, id, att, err)
		}
		l.Attenuation = lighting.Attenuation{Constant: v[0], Linear: v[1], Quadratic: v[2]}
		if !l.Attenuation.Valid() {
			return l, fail(BlockLights, id, att, ErrInvalidValue,
				"exactly one of constant, linear, quadratic must be 1, got %v/%v/%v", v[0], v[1], v[2])
		}
	}

	allowed := []string{"location", "ambient", "diffuse", "specular", "attenuation"}
	if kind == lighting.Spot {
		if l.Angle, err = el.Float("angle"); err != nil {
			return l, failAttr(BlockLights, id, el, err)
		}
		if l.Exponent, err = el.Float("exponent"); err != nil {
			return l, failAttr(BlockLights, id, el, err)
		}
		tgt := el.Child("target")
		if tgt == nil {
			return l, fail(BlockLights, id, el, ErrInvalidValue, "spot light needs <target>")
		}
		if l.Target, err = tgt.Coords3(); err != nil {
			return l, failAttr(BlockLights, id, tgt, err)
		}
		allowed = append(allowed, "target")
	}
	p.unknownChildren(BlockLights, el, allowed...)
	return l, nil
}
