// Package picking maps per-frame pick IDs to the objects that were drawn
// with them.
//
// The renderer draws every selectable object into an off-screen buffer in a
// flat colour derived from its ID, then reads back the pixel under the
// cursor. A Context is reset at the start of every frame so IDs always
// reflect what is currently drawn.
package picking

// BaseID is the first ID handed out. 0 means "nothing was picked".
const BaseID = 1

// Context assigns pick IDs during one frame.
type Context struct {
	next    int
	targets []any
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{next: BaseID}
}

// Register assigns the next ID to target.
func (c *Context) Register(target any) int {
	id := c.next
	c.next++
	c.targets = append(c.targets, target)
	return id
}

// Resolve returns the target registered under id.
func (c *Context) Resolve(id int) (any, bool) {
	i := id - BaseID
	if i < 0 || i >= len(c.targets) {
		return nil, false
	}
	return c.targets[i], true
}

// Len returns how many targets are registered.
func (c *Context) Len() int { return len(c.targets) }

// Reset clears every registration and restarts numbering at BaseID.
func (c *Context) Reset() {
	c.next = BaseID
	clear(c.targets)
	c.targets = c.targets[:0]
}
