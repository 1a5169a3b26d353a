// Package framebuffer provides the off-screen ID buffer of the pick pass.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer renders into an unfiltered RGBA8 texture with a depth
// renderbuffer, so every pixel holds exactly the colour that was written.
type Framebuffer struct {
	fbo, color, depth uint32
	width, height     int32

	// Binding and viewport saved by Begin.
	prevFBO      int32
	prevViewport [4]int32
	bound        bool
}

// New allocates a framebuffer of at least 1x1 pixels.
func New(width, height int32) (*Framebuffer, error) {
	fb := &Framebuffer{width: max(width, 1), height: max(height, 1)}

	gl.GenFramebuffers(1, &fb.fbo)
	gl.GenTextures(1, &fb.color)
	gl.GenRenderbuffers(1, &fb.depth)

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	fb.storage()
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("pick framebuffer incomplete: status 0x%x", status)
	}
	return fb, nil
}

func (fb *Framebuffer) storage() {
	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
}

// Begin makes the framebuffer the draw target and clears it to black, which
// decodes as "nothing". End undoes it.
func (fb *Framebuffer) Begin() {
	if !fb.bound {
		gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &fb.prevFBO)
		gl.GetIntegerv(gl.VIEWPORT, &fb.prevViewport[0])
		fb.bound = true
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End restores the framebuffer and viewport that were active at Begin.
func (fb *Framebuffer) End() {
	if !fb.bound {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb.prevFBO))
	v := fb.prevViewport
	gl.Viewport(v[0], v[1], v[2], v[3])
	fb.bound = false
}

// Size returns the dimensions in pixels.
func (fb *Framebuffer) Size() (width, height int32) { return fb.width, fb.height }

// Resize reallocates storage when the dimensions change.
func (fb *Framebuffer) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width, fb.height = width, height
	fb.storage()
}

// ReadPixel returns the colour at (x, y) with y growing downwards, as mouse
// events report it. Points outside the buffer read as black.
func (fb *Framebuffer) ReadPixel(x, y int32) (r, g, b uint8) {
	gx, gy, ok := glCoords(x, y, fb.width, fb.height)
	if !ok {
		return 0, 0, 0
	}
	var px [4]uint8
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.ReadPixels(gx, gy, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return px[0], px[1], px[2]
}

// glCoords flips a top-left origin point to GL's bottom-left origin.
func glCoords(x, y, width, height int32) (int32, int32, bool) {
	if x < 0 || y < 0 || x >= width || y >= height {
		return 0, 0, false
	}
	return x, height - 1 - y, true
}

// Destroy releases the GL objects. It is safe to call twice.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
	}
	if fb.color != 0 {
		gl.DeleteTextures(1, &fb.color)
	}
	if fb.depth != 0 {
		gl.DeleteRenderbuffers(1, &fb.depth)
	}
	fb.fbo, fb.color, fb.depth = 0, 0, 0
}
