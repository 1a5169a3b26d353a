package renderer

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/engine/primitive"
	"github.com/Faultbox/checkers3d/internal/engine/render"
	"github.com/Faultbox/checkers3d/internal/engine/texture"
	"github.com/Faultbox/checkers3d/internal/graph"
)

// Mesh is a primitive uploaded to the GPU.
type Mesh struct {
	r        *Renderer
	mesh     *primitive.Mesh
	vao      uint32
	vbo      uint32
	ebo      uint32
	count    int32
	texScale [2]float32
}

var _ render.Primitive = (*Mesh)(nil)

// Upload copies mesh data into GPU buffers.
func (r *Renderer) Upload(m *primitive.Mesh) *Mesh {
	gm := &Mesh{r: r, mesh: m, count: int32(len(m.Indices)), texScale: [2]float32{1, 1}}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return gm
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	stride := int32(unsafe.Sizeof(primitive.Vertex{}))
	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return gm
}

// Display draws the mesh with the renderer's current state.
func (m *Mesh) Display() {
	if m.vao == 0 {
		return
	}
	m.r.draw(m)
}

// ScaleTexCoords sets the texture lengths used by the next Display.
func (m *Mesh) ScaleTexCoords(s, t float32) {
	m.texScale = m.mesh.TexScale(s, t)
}

// Delete releases the GPU buffers.
func (m *Mesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		m.vao = 0
	}
}

// Texture is an uploaded image.
type Texture struct {
	id            uint32
	Width, Height int
}

var _ render.Texture = (*Texture)(nil)

// LoadTexture decodes an image file and uploads it with mipmaps.
func (r *Renderer) LoadTexture(path string) (*Texture, error) {
	img, err := r.decodeTexture(path)
	if err != nil {
		return nil, err
	}
	if img.Rect.Empty() {
		return nil, fmt.Errorf("texture %s is empty", path)
	}
	texture.FlipVertical(img)

	t := &Texture{Width: img.Rect.Dx(), Height: img.Rect.Dy()}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.Width), int32(t.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return t, nil
}

// buildGeometry generates a mesh. OBJ models are read through Files when
// one is configured.
func (r *Renderer) buildGeometry(geom primitive.Geometry) (*primitive.Mesh, error) {
	model, ok := geom.(primitive.Model)
	if !ok || r.config.Files == nil {
		return geom.Build()
	}
	if err := primitive.Validate(model); err != nil {
		return nil, err
	}
	data, err := r.config.Files.Load(model.File)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	m, err := primitive.DecodeOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", model.File, err)
	}
	return m, nil
}

func (r *Renderer) decodeTexture(path string) (*image.RGBA, error) {
	if r.config.Files == nil {
		return texture.Load(path)
	}
	data, err := r.config.Files.Load(path)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Bind binds the texture to the active unit.
func (t *Texture) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the texture.
func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// Appearance is a scene material plus the texture currently bound to it.
type Appearance struct {
	r            *Renderer
	material     graph.Material
	texture      render.Texture
	wrapS, wrapT render.Wrap
}

var _ render.Appearance = (*Appearance)(nil)

// NewAppearance wraps a material.
func (r *Renderer) NewAppearance(m graph.Material) *Appearance {
	return &Appearance{r: r, material: m}
}

func (a *Appearance) Apply() { a.r.applyMaterial(a) }

func (a *Appearance) SetTexture(t render.Texture) { a.texture = t }

func (a *Appearance) SetTextureWrap(s, t render.Wrap) { a.wrapS, a.wrapT = s, t }

// Library holds the GPU resources of one scene graph.
type Library struct {
	appearances map[string]*Appearance
	textures    map[string]*Texture
	meshes      map[string]*Mesh
}

var _ render.Resources = (*Library)(nil)

// NewLibrary builds meshes, loads textures and wraps materials for g. A
// texture or primitive that fails to load is skipped and reported in the
// returned error; the library is usable either way.
func (r *Renderer) NewLibrary(g *graph.Graph) (*Library, error) {
	lib := &Library{
		appearances: make(map[string]*Appearance, len(g.Materials)),
		textures:    make(map[string]*Texture, len(g.Textures)),
		meshes:      make(map[string]*Mesh, len(g.Primitives)),
	}

	var errs error
	for id, m := range g.Materials {
		lib.appearances[id] = r.NewAppearance(m)
	}
	for id, def := range g.Textures {
		t, err := r.LoadTexture(def.File)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("texture %q: %w", id, err))
			continue
		}
		lib.textures[id] = t
	}
	for id, def := range g.Primitives {
		m, err := r.buildGeometry(def.Geometry)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("primitive %q: %w", id, err))
			continue
		}
		lib.meshes[id] = r.Upload(m)
	}

	r.log.Debug("scene resources loaded",
		zap.Int("materials", len(lib.appearances)),
		zap.Int("textures", len(lib.textures)),
		zap.Int("meshes", len(lib.meshes)),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
	return lib, errs
}

func (l *Library) Appearance(id string) (render.Appearance, bool) {
	a, ok := l.appearances[id]
	return a, ok
}

func (l *Library) Texture(id string) (render.Texture, bool) {
	t, ok := l.textures[id]
	return t, ok
}

func (l *Library) Primitive(id string) (render.Primitive, bool) {
	m, ok := l.meshes[id]
	return m, ok
}

// Delete releases every GPU resource.
func (l *Library) Delete() {
	for _, t := range l.textures {
		t.Delete()
	}
	for _, m := range l.meshes {
		m.Delete()
	}
}
