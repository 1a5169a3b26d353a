package parser

import (
	"github.com/Faultbox/checkers3d/internal/engine/animation"
	"github.com/Faultbox/checkers3d/pkg/formats"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// rotationOrder is the canonical order of keyframe rotation channels.
var rotationOrder = [3]math.Axis{math.AxisZ, math.AxisY, math.AxisX}

func (p *Parser) parseAnimations(el *formats.Element) error {
	for _, child := range el.Children {
		if child.Name != "keyframeanim" {
			p.warn(BlockAnimations, child, "unknown tag <%s> ignored", child.Name)
			continue
		}
		id, err := child.String("id")
		if err != nil {
			return failAttr(BlockAnimations, "", child, err)
		}

		var keys []animation.Key
		for _, kf := range child.Children {
			if kf.Name != "keyframe" {
				p.warn(BlockAnimations, kf, "unknown tag <%s> in <keyframeanim> ignored", kf.Name)
				continue
			}
			k, err := p.parseKeyframe(id, kf)
			if err != nil {
				return err
			}
			if n := len(keys); n > 0 && k.Instant <= keys[n-1].Instant {
				return fail(BlockAnimations, id, kf, ErrInvalidValue,
					"keyframe instants must increase (%v after %v)", k.Instant, keys[n-1].Instant)
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			return fail(BlockAnimations, id, child, ErrInvalidValue, "at least one keyframe is required")
		}

		anim, err := animation.NewKeyFrame(id, keys)
		if err != nil {
			return fail(BlockAnimations, id, child, ErrInvalidValue, "%v", err)
		}
		if err := p.g.AddAnimation(anim); err != nil {
			return fail(BlockAnimations, id, child, ErrDuplicateID, "animation defined twice")
		}
	}
	return nil
}

// parseKeyframe reads one pose. The instant is in seconds and rotation
// angles are in degrees.
func (p *Parser) parseKeyframe(id string, el *formats.Element) (animation.Key, error) {
	var k animation.Key

	instant, err := el.Float("instant")
	if err != nil {
		return k, failAttr(BlockAnimations, id, el, err)
	}
	if instant < 0 {
		return k, fail(BlockAnimations, id, el, ErrInvalidValue, "instant must be non-negative, got %v", instant)
	}
	k.Instant = float64(instant)

	tr := el.Child("translation")
	if tr == nil {
		return k, fail(BlockAnimations, id, el, ErrInvalidValue, "keyframe at %v has no <translation>", instant)
	}
	xyz, err := tr.Coords3()
	if err != nil {
		return k, failAttr(BlockAnimations, id, tr, err)
	}
	k.Translation = math.Vec3FromArray(xyz)

	sc := el.Child("scale")
	if sc == nil {
		return k, fail(BlockAnimations, id, el, ErrInvalidValue, "keyframe at %v has no <scale>", instant)
	}
	if xyz, err = sc.Coords3(); err != nil {
		return k, failAttr(BlockAnimations, id, sc, err)
	}
	k.Scale = math.Vec3FromArray(xyz)

	var (
		angles [3]float32
		seen   [3]bool
		order  []math.Axis
	)
	for _, r := range el.ChildrenNamed("rotation") {
		name, err := r.String("axis")
		if err != nil {
			return k, failAttr(BlockAnimations, id, r, err)
		}
		axis, err := math.ParseAxis(name)
		if err != nil {
			return k, fail(BlockAnimations, id, r, ErrInvalidValue, "rotation axis %q must be x, y or z", name)
		}
		angle, err := r.Float("angle")
		if err != nil {
			return k, failAttr(BlockAnimations, id, r, err)
		}
		slot := rotationSlot(axis)
		if seen[slot] {
			return k, fail(BlockAnimations, id, r, ErrInvalidValue, "rotation about %s given twice", axis)
		}
		seen[slot] = true
		angles[slot] = math.Radians(angle)
		order = append(order, axis)
	}
	for slot, ok := range seen {
		if !ok {
			return k, fail(BlockAnimations, id, el, ErrInvalidValue, "keyframe at %v has no rotation about %s", instant, rotationOrder[slot])
		}
	}
	if order[0] != rotationOrder[0] || order[1] != rotationOrder[1] {
		p.warn(BlockAnimations, el, "keyframe rotations should be listed z, y, x; reordered")
	}

	k.Rotations = make([]animation.Rotation, 3)
	for i, axis := range rotationOrder {
		k.Rotations[i] = animation.Rotation{Axis: axis, Angle: angles[i]}
	}

	p.unknownChildren(BlockAnimations, el, "translation", "rotation", "scale")
	return k, nil
}

func rotationSlot(a math.Axis) int {
	for i, axis := range rotationOrder {
		if axis == a {
			return i
		}
	}
	return 0
}
