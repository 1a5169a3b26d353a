// Package renderer is the OpenGL implementation of the scene render surface.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/engine/camera"
	"github.com/Faultbox/checkers3d/internal/engine/framebuffer"
	"github.com/Faultbox/checkers3d/internal/engine/lighting"
	"github.com/Faultbox/checkers3d/internal/engine/picking"
	"github.com/Faultbox/checkers3d/internal/engine/render"
	"github.com/Faultbox/checkers3d/internal/engine/shader"
	"github.com/Faultbox/checkers3d/internal/logger"
	"github.com/Faultbox/checkers3d/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// Files reads texture files. Nil reads them directly from disk.
	Files FileSource
}

// FileSource returns the contents of a file. *assets.Manager implements it.
type FileSource interface {
	Load(path string) ([]byte, error)
}

// Renderer handles all OpenGL rendering. It implements render.Surface.
type Renderer struct {
	config Config
	log    *zap.Logger

	scene *shader.Program
	pick  *shader.Program
	// active is scene or pick.
	active *shader.Program

	pickBuffer *framebuffer.Framebuffer

	stack      *Stack
	projection math.Mat4
	view       math.Mat4

	axes *axes
}

var _ render.Surface = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		stack:  NewStack(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	if r.scene, err = shader.Load("scene.vert", "scene.frag"); err != nil {
		return nil, fmt.Errorf("scene program: %w", err)
	}
	if r.pick, err = shader.Load("scene.vert", "pick.frag"); err != nil {
		r.scene.Delete()
		return nil, fmt.Errorf("pick program: %w", err)
	}
	if r.pickBuffer, err = framebuffer.New(int32(cfg.Width), int32(cfg.Height)); err != nil {
		r.scene.Delete()
		r.pick.Delete()
		return nil, err
	}

	r.active = r.scene
	r.scene.Use()
	gl.Uniform1i(r.scene.Uniform("uTexture"), 0)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.deleteAxes()
	r.pickBuffer.Destroy()
	r.scene.Delete()
	r.pick.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.pickBuffer.Resize(int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts the visible pass.
func (r *Renderer) Begin(background [4]float32) {
	gl.ClearColor(background[0], background[1], background[2], background[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.stack.Reset()
	r.use(r.scene)
}

// SetCamera uploads the view and projection of v.
func (r *Renderer) SetCamera(v camera.View) {
	r.projection = v.Projection(r.Aspect())
	r.view = v.ViewMatrix()
	for _, p := range []*shader.Program{r.scene, r.pick} {
		p.Use()
		gl.UniformMatrix4fv(p.Uniform("uProjection"), 1, false, r.projection.Ptr())
		gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, r.view.Ptr())
	}
	r.scene.Use()
	eye := v.Position()
	gl.Uniform3f(r.scene.Uniform("uEye"), eye.X, eye.Y, eye.Z)
	r.active.Use()
}

// SetLights uploads the light slots and the global ambient colour.
func (r *Renderer) SetLights(b *lighting.Buffer, ambient [4]float32) {
	u := b.Flatten()
	p := r.scene
	p.Use()
	gl.Uniform4fv(p.Uniform("uGlobalAmbient"), 1, &ambient[0])
	gl.Uniform1i(p.Uniform("uLightCount"), u.Count)
	gl.Uniform1iv(p.Uniform("uLightEnabled"), lighting.MaxLights, &u.Enabled[0])
	gl.Uniform1iv(p.Uniform("uLightSpot"), lighting.MaxLights, &u.Spot[0])
	gl.Uniform4fv(p.Uniform("uLightPosition"), lighting.MaxLights, &u.Position[0])
	gl.Uniform4fv(p.Uniform("uLightAmbient"), lighting.MaxLights, &u.Ambient[0])
	gl.Uniform4fv(p.Uniform("uLightDiffuse"), lighting.MaxLights, &u.Diffuse[0])
	gl.Uniform4fv(p.Uniform("uLightSpecular"), lighting.MaxLights, &u.Specular[0])
	gl.Uniform3fv(p.Uniform("uLightAtten"), lighting.MaxLights, &u.Atten[0])
	gl.Uniform3fv(p.Uniform("uLightDirection"), lighting.MaxLights, &u.Direction[0])
	gl.Uniform1fv(p.Uniform("uLightCutoff"), lighting.MaxLights, &u.CutoffCos[0])
	gl.Uniform1fv(p.Uniform("uLightExponent"), lighting.MaxLights, &u.Exponent[0])
	r.active.Use()
}

// BeginPick redirects drawing into the off-screen ID buffer.
func (r *Renderer) BeginPick() {
	r.pickBuffer.Begin()
	gl.Disable(gl.BLEND)
	r.stack.Reset()
	r.use(r.pick)
}

// EndPick reads the ID under the cursor at window coordinates (x, y) and
// returns to the visible pass. 0 means nothing was hit.
func (r *Renderer) EndPick(x, y int) int {
	rr, g, b := r.pickBuffer.ReadPixel(int32(x), int32(y))
	r.pickBuffer.End()
	gl.Enable(gl.BLEND)
	r.use(r.scene)
	return picking.DecodeID(rr, g, b)
}

// Picking reports whether the pick pass is active.
func (r *Renderer) Picking() bool { return r.active == r.pick }

func (r *Renderer) use(p *shader.Program) {
	r.active = p
	p.Use()
}

func (r *Renderer) PushMatrix() { r.stack.Push() }

func (r *Renderer) PopMatrix() { r.stack.Pop() }

func (r *Renderer) MultMatrix(m math.Mat4) { r.stack.Mult(m) }

// UseShader switches between the plain and highlighted scene shading. It
// has no effect during the pick pass.
func (r *Renderer) UseShader(s render.Shader) {
	if r.Picking() {
		return
	}
	on := int32(0)
	if s == render.ShaderHighlight {
		on = 1
	} else {
		gl.Uniform1f(r.scene.Uniform("uPulse"), 0)
	}
	gl.Uniform1i(r.scene.Uniform("uHighlight"), on)
}

func (r *Renderer) SetHighlight(color [3]float32, scale, pulse float32) {
	if r.Picking() {
		return
	}
	p := r.scene
	gl.Uniform3f(p.Uniform("uHighlightColor"), color[0], color[1], color[2])
	gl.Uniform1f(p.Uniform("uHighlightScale"), scale)
	gl.Uniform1f(p.Uniform("uPulse"), pulse)
}

func (r *Renderer) RegisterForPick(id int) {
	if !r.Picking() {
		return
	}
	c := picking.EncodeID(id)
	gl.Uniform3f(r.pick.Uniform("uPickColor"), c[0], c[1], c[2])
}

// draw issues the draw call for an uploaded mesh with the current model
// matrix.
func (r *Renderer) draw(m *Mesh) {
	model := r.stack.Top()
	p := r.active
	gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, model.Ptr())
	if !r.Picking() {
		normal := model.NormalMatrix()
		gl.UniformMatrix3fv(p.Uniform("uNormalMatrix"), 1, false, &normal[0])
	}
	gl.Uniform2f(p.Uniform("uTexScale"), m.texScale[0], m.texScale[1])
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// applyMaterial uploads material colours and texture state. The pick pass
// draws flat IDs and ignores materials.
func (r *Renderer) applyMaterial(a *Appearance) {
	if r.Picking() {
		return
	}
	p := r.scene
	m := a.material
	gl.Uniform4fv(p.Uniform("uMatEmission"), 1, &m.Emission[0])
	gl.Uniform4fv(p.Uniform("uMatAmbient"), 1, &m.Ambient[0])
	gl.Uniform4fv(p.Uniform("uMatDiffuse"), 1, &m.Diffuse[0])
	gl.Uniform4fv(p.Uniform("uMatSpecular"), 1, &m.Specular[0])
	gl.Uniform1f(p.Uniform("uMatShininess"), m.Shininess)

	if a.texture == nil {
		gl.Uniform1i(p.Uniform("uTextured"), 0)
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	a.texture.Bind()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(a.wrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(a.wrapT))
	gl.Uniform1i(p.Uniform("uTextured"), 1)
}

func glWrap(w render.Wrap) int32 {
	if w == render.WrapClamp {
		return gl.CLAMP_TO_EDGE
	}
	return gl.REPEAT
}
