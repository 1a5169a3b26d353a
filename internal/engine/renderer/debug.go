package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/checkers3d/internal/engine/debug"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// axes is the uploaded axes gizmo.
type axes struct {
	length float32
	lines  []debug.Axis
	vao    uint32
	vbo    uint32
}

// DrawAxes draws the world axes at the origin with flat colours. Nothing
// is drawn when length is zero or during the pick pass.
func (r *Renderer) DrawAxes(length float32) {
	if length <= 0 || r.Picking() {
		return
	}
	if r.axes == nil || r.axes.length != length {
		r.uploadAxes(length)
	}

	p := r.pick
	p.Use()
	model := math.Identity()
	gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, model.Ptr())
	gl.Uniform2f(p.Uniform("uTexScale"), 1, 1)
	gl.BindVertexArray(r.axes.vao)
	for i, a := range r.axes.lines {
		gl.Uniform3f(p.Uniform("uPickColor"), a.Color[0], a.Color[1], a.Color[2])
		gl.DrawArrays(gl.LINES, int32(i*2), 2)
	}
	gl.BindVertexArray(0)
	r.active.Use()
}

func (r *Renderer) uploadAxes(length float32) {
	r.deleteAxes()
	a := &axes{length: length, lines: debug.Axes(length)}
	verts := debug.AxisVertices(a.lines)

	gl.GenVertexArrays(1, &a.vao)
	gl.BindVertexArray(a.vao)
	gl.GenBuffers(1, &a.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, a.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	r.axes = a
}

func (r *Renderer) deleteAxes() {
	if r.axes == nil {
		return
	}
	gl.DeleteVertexArrays(1, &r.axes.vao)
	gl.DeleteBuffers(1, &r.axes.vbo)
	r.axes = nil
}

// ReadPixels returns the visible frame as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}
