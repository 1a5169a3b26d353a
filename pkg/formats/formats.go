// Package formats reads the XML scene description format.
//
// A scene file is a tree of elements. The reader keeps document order for
// both child elements and attributes, since block order matters to the
// scene parser, and records the source line of every element so errors can
// point back at the file.
package formats

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Attribute errors.
var (
	ErrMissingAttr   = errors.New("missing attribute")
	ErrMalformedAttr = errors.New("malformed attribute")
)

// AttrError describes a problem with one attribute of one element.
type AttrError struct {
	Element string
	Attr    string
	Line    int
	Value   string
	Err     error
}

func (e *AttrError) Error() string {
	if errors.Is(e.Err, ErrMissingAttr) {
		return fmt.Sprintf("<%s> line %d: missing attribute %q", e.Element, e.Line, e.Attr)
	}
	return fmt.Sprintf("<%s> line %d: attribute %q has invalid value %q", e.Element, e.Line, e.Attr, e.Value)
}

func (e *AttrError) Unwrap() error { return e.Err }

// Attr is a single name/value pair.
type Attr struct {
	Name  string
	Value string
}

// Element is a parsed XML element.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Line     int
}

// Load reads and decodes a scene file.
func Load(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses an XML document and returns its root element.
func Decode(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var stack []*Element
	var root *Element

	for {
		line, _ := dec.InputPos()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Line: line}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xml: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("xml: empty document")
	}
	return root, nil
}

// Attr returns the raw value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the attribute is present.
func (e *Element) Has(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Child returns the first child with the given tag name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given tag name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (e *Element) attrErr(name, value string, err error) error {
	return &AttrError{Element: e.Name, Attr: name, Line: e.Line, Value: value, Err: err}
}

// String returns a required, non-empty string attribute.
func (e *Element) String(name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok {
		return "", e.attrErr(name, "", ErrMissingAttr)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", e.attrErr(name, v, ErrMalformedAttr)
	}
	return v, nil
}

// Float returns a required float attribute.
func (e *Element) Float(name string) (float32, error) {
	v, ok := e.Attr(name)
	if !ok {
		return 0, e.attrErr(name, "", ErrMissingAttr)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
	if err != nil {
		return 0, e.attrErr(name, v, ErrMalformedAttr)
	}
	// NaN and infinities would pass every range check that follows.
	if x := float32(f); math32.IsNaN(x) || math32.IsInf(x, 0) {
		return 0, e.attrErr(name, v, ErrMalformedAttr)
	}
	return float32(f), nil
}

// FloatOr returns a float attribute or def when it is absent.
// A present but malformed value is still an error.
func (e *Element) FloatOr(name string, def float32) (float32, error) {
	if !e.Has(name) {
		return def, nil
	}
	return e.Float(name)
}

// Int returns a required integer attribute.
func (e *Element) Int(name string) (int, error) {
	v, ok := e.Attr(name)
	if !ok {
		return 0, e.attrErr(name, "", ErrMissingAttr)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, e.attrErr(name, v, ErrMalformedAttr)
	}
	return n, nil
}

// Bool returns a required boolean attribute. Accepts true/false/1/0.
func (e *Element) Bool(name string) (bool, error) {
	v, ok := e.Attr(name)
	if !ok {
		return false, e.attrErr(name, "", ErrMissingAttr)
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, e.attrErr(name, v, ErrMalformedAttr)
}

// Coords3 reads the x, y and z attributes.
func (e *Element) Coords3() ([3]float32, error) {
	v, err := e.Floats("x", "y", "z")
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{v[0], v[1], v[2]}, nil
}

// Coords4 reads x, y, z and w.
func (e *Element) Coords4() ([4]float32, error) {
	v, err := e.Floats("x", "y", "z", "w")
	if err != nil {
		return [4]float32{}, err
	}
	return [4]float32{v[0], v[1], v[2], v[3]}, nil
}

// Color reads r, g, b and a. Components must lie in [0, 1].
func (e *Element) Color() ([4]float32, error) {
	names := [4]string{"r", "g", "b", "a"}
	var c [4]float32
	for i, n := range names {
		f, err := e.Float(n)
		if err != nil {
			return c, err
		}
		if f < 0 || f > 1 {
			raw, _ := e.Attr(n)
			return c, e.attrErr(n, raw, ErrMalformedAttr)
		}
		c[i] = f
	}
	return c, nil
}

// Floats reads several required float attributes in order.
func (e *Element) Floats(names ...string) ([]float32, error) {
	out := make([]float32, len(names))
	for i, n := range names {
		f, err := e.Float(n)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// RGB reads r, g and b without an alpha channel.
func (e *Element) RGB() ([3]float32, error) {
	v, err := e.Floats("r", "g", "b")
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{v[0], v[1], v[2]}, nil
}
