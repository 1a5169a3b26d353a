package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/checkers3d/internal/engine/primitive"
	"github.com/Faultbox/checkers3d/internal/graph"
	"github.com/Faultbox/checkers3d/pkg/formats"
)

// Fatal error kinds. A *Error wraps exactly one of these.
var (
	ErrMissingBlock    = errors.New("missing block")
	ErrDuplicateID     = graph.ErrDuplicateID
	ErrInvalidValue    = errors.New("invalid value")
	ErrUndefinedRef    = errors.New("undefined reference")
	ErrInvalidGeometry = primitive.ErrInvalidGeometry
)

// Error is a fatal scene error with the block and element it came from.
type Error struct {
	Block string
	ID    string
	Line  int
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s>", e.Block)
	if e.ID != "" {
		fmt.Fprintf(&b, " %q", e.ID)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Warning is a recoverable problem. Parsing continues after a warning.
type Warning struct {
	Block string
	Line  int
	Msg   string
}

func (w *Warning) Error() string {
	if w.Line > 0 {
		return fmt.Sprintf("<%s> line %d: %s", w.Block, w.Line, w.Msg)
	}
	return fmt.Sprintf("<%s>: %s", w.Block, w.Msg)
}

// fail builds a fatal error of the given kind.
func fail(block, id string, el *formats.Element, kind error, format string, args ...any) error {
	e := &Error{Block: block, ID: id, Err: fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)}
	if el != nil {
		e.Line = el.Line
	}
	return e
}

// failAttr wraps an attribute read error as an invalid value.
func failAttr(block, id string, el *formats.Element, err error) error {
	e := &Error{Block: block, ID: id, Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)}
	if el != nil {
		e.Line = el.Line
	}
	return e
}
