package maskfx

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenTextureUnits is the number of texture units the backend exposes:
// the source on 0 and the mask on 1.
const ebitenTextureUnits = 2

// EbitenOptions configures an EbitenBackend. The zero value is valid.
type EbitenOptions struct {
	// DisableNPOTRepeat makes the backend report no support for repeat
	// wrapping on non-power-of-two textures, forcing clamp-to-edge.
	DisableNPOTRepeat bool
}

// boundTexture is what a texture unit holds after Bind.
type boundTexture struct {
	tex      *EbitenTexture
	sampling Sampling
}

// EbitenBackend draws mask effect nodes onto an *ebiten.Image with Kage
// shaders. It implements Backend and GraphicsContext.
//
// Filtering and wrapping are emulated in the shader from the sampling state
// each unit was bound with. The combined matrix maps node coordinates to
// target pixels and is applied to the vertices on the CPU.
type EbitenBackend struct {
	opts   EbitenOptions
	target *ebiten.Image

	activeUnit int
	units      [ebitenTextureUnits]boundTexture
	program    *ebitenProgram

	// Kage programs by shader name (no sync.Once: maskfx is single-threaded).
	shaders map[string]*ebiten.Shader

	verts    [quadVertexCount]ebiten.Vertex
	shaderOp ebiten.DrawTrianglesShaderOptions
	maskBuf  *ebiten.Image

	binds, rebinds int
}

// NewEbitenBackend returns a backend drawing onto target.
func NewEbitenBackend(target *ebiten.Image, opts EbitenOptions) *EbitenBackend {
	return &EbitenBackend{
		opts:    opts,
		target:  target,
		shaders: make(map[string]*ebiten.Shader, 2),
	}
}

// SetTarget changes the image subsequent draws go to.
func (b *EbitenBackend) SetTarget(target *ebiten.Image) { b.target = target }

// Target returns the current draw target.
func (b *EbitenBackend) Target() *ebiten.Image { return b.target }

// Context returns the backend itself.
func (b *EbitenBackend) Context() GraphicsContext { return b }

// HasFeature reports optional capabilities. Ebitengine images support repeat
// wrapping at any size unless disabled by EbitenOptions.
func (b *EbitenBackend) HasFeature(f Feature) bool {
	switch f {
	case FeatureNPOTTextureRepeat:
		return !b.opts.DisableNPOTRepeat
	}
	return false
}

// ActiveTexture selects the unit for subsequent Bind calls.
func (b *EbitenBackend) ActiveTexture(unit int) {
	if unit < 0 || unit >= ebitenTextureUnits {
		panic(fmt.Sprintf("maskfx: texture unit %d out of range", unit))
	}
	b.activeUnit = unit
}

// UnbindTexture clears unit. Out-of-range units panic.
func (b *EbitenBackend) UnbindTexture(unit int) {
	if unit < 0 || unit >= ebitenTextureUnits {
		panic(fmt.Sprintf("maskfx: texture unit %d out of range", unit))
	}
	b.units[unit] = boundTexture{}
}

// BindCounts returns how many Bind and UpdateBindOptions calls the backend
// has received.
func (b *EbitenBackend) BindCounts() (binds, rebinds int) { return b.binds, b.rebinds }

// LinkProgram compiles src's Kage shader. attributes must be the position and
// texture coordinate names, in that order.
func (b *EbitenBackend) LinkProgram(src ShaderSource, attributes []string) (Program, error) {
	if !slices.Equal(attributes, maskEffectAttributes) {
		return nil, fmt.Errorf("maskfx: unsupported attributes %v", attributes)
	}
	s, ok := b.shaders[src.Name]
	if !ok {
		var err error
		s, err = ebiten.NewShader(src.Kage)
		if err != nil {
			return nil, fmt.Errorf("maskfx: compile kage %s: %w", src.Name, err)
		}
		b.shaders[src.Name] = s
	}
	return newEbitenProgram(src.Name, s), nil
}

// UseProgram makes p current. p must come from LinkProgram.
func (b *EbitenBackend) UseProgram(p Program) {
	b.program = p.(*ebitenProgram)
}

// DrawGeometry draws g with the current program. Nothing is drawn without a
// program, a target or a source texture on unit 0. A missing mask draws as
// fully covered.
func (b *EbitenBackend) DrawGeometry(g *Geometry) {
	p := b.program
	src := b.units[0]
	if p == nil || b.target == nil || src.tex == nil {
		return
	}
	page := src.tex.image
	bounds := page.Bounds()

	buildVertices(b.verts[:], g.Vertices(), p.matrix, bounds)

	var maskRegion *ebiten.Image
	maskSampling := DefaultSampling()
	if unit := p.maskUnit; unit >= 0 && unit < ebitenTextureUnits {
		if m := b.units[unit]; m.tex != nil {
			maskRegion = m.tex.region()
			maskSampling = m.sampling
		}
	}

	p.uniforms["SourceSampling"] = samplingUniform(src.sampling)
	p.uniforms["MaskSampling"] = samplingUniform(maskSampling)

	b.shaderOp.Images[0] = page
	b.shaderOp.Images[1] = b.fitMask(maskRegion, bounds.Dx(), bounds.Dy())
	b.shaderOp.Uniforms = p.uniforms
	b.target.DrawTrianglesShader(b.verts[:], g.Indices(), p.shader, &b.shaderOp)
}

// fitMask returns mask resampled to w×h, since every image passed to a
// shader draw must have the source's size. A nil mask yields an opaque
// white image.
func (b *EbitenBackend) fitMask(mask *ebiten.Image, w, h int) *ebiten.Image {
	if mask != nil && mask.Bounds().Dx() == w && mask.Bounds().Dy() == h {
		return mask
	}
	if b.maskBuf == nil || b.maskBuf.Bounds().Dx() != w || b.maskBuf.Bounds().Dy() != h {
		if b.maskBuf != nil {
			b.maskBuf.Deallocate()
		}
		b.maskBuf = ebiten.NewImage(w, h)
	}
	if mask == nil {
		b.maskBuf.Fill(color.White)
		return b.maskBuf
	}
	b.maskBuf.Clear()
	var op ebiten.DrawImageOptions
	mb := mask.Bounds()
	op.GeoM.Scale(float64(w)/float64(mb.Dx()), float64(h)/float64(mb.Dy()))
	op.Filter = ebiten.FilterLinear
	b.maskBuf.DrawImage(mask, &op)
	return b.maskBuf
}

// buildVertices transforms node-space vertices by m and converts normalized
// texture coordinates to source pixels within page.
func buildVertices(dst []ebiten.Vertex, src []TexturedPoint2D, m mgl32.Mat4, page image.Rectangle) {
	pw, ph := float32(page.Dx()), float32(page.Dy())
	ox, oy := float32(page.Min.X), float32(page.Min.Y)
	for i, v := range src {
		p := m.Mul4x1(mgl32.Vec4{v.X, v.Y, 0, 1})
		dst[i] = ebiten.Vertex{
			DstX:   p[0],
			DstY:   p[1],
			SrcX:   ox + v.TX*pw,
			SrcY:   oy + v.TY*ph,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
}

// samplingUniform packs s for the Kage shader: x is 1 for linear filtering,
// y and z are the horizontal and vertical wrap codes.
func samplingUniform(s Sampling) []float32 {
	var linear float32
	if s.Filtering == FilterLinear {
		linear = 1
	}
	return []float32{linear, wrapCode(s.HorizontalWrap), wrapCode(s.VerticalWrap), 0}
}

func wrapCode(w WrapMode) float32 {
	switch w {
	case WrapRepeat:
		return 1
	case WrapMirrorRepeat:
		return 2
	}
	return 0
}

// --- Program ---

// Uniform locations handed out by ebitenProgram.
const (
	ebitenUniformMatrix = iota
	ebitenUniformOpacity
	ebitenUniformSourceScale
	ebitenUniformMask
	ebitenUniformMaskScale
	ebitenUniformMaskOffset
)

// ebitenProgram maps the uniform names used by the binders onto the exported
// Kage uniforms.
type ebitenProgram struct {
	name     string
	shader   *ebiten.Shader
	uniforms map[string]any
	matrix   mgl32.Mat4
	maskUnit int
}

func newEbitenProgram(name string, s *ebiten.Shader) *ebitenProgram {
	p := &ebitenProgram{
		name:     name,
		shader:   s,
		uniforms: make(map[string]any, 6),
		matrix:   mgl32.Ident4(),
		maskUnit: maskTextureUnit,
	}
	p.uniforms["SourceScale"] = []float32{1, 1}
	p.uniforms["MaskScale"] = []float32{1, 1}
	p.uniforms["MaskOffset"] = []float32{0, 0}
	if name == ShaderTranslucent {
		p.uniforms["Opacity"] = float32(1)
	}
	return p
}

func (p *ebitenProgram) UniformLocation(name string) int {
	switch name {
	case UniformMatrix:
		return ebitenUniformMatrix
	case UniformOpacity:
		if p.name != ShaderTranslucent {
			return -1
		}
		return ebitenUniformOpacity
	case UniformSourceScale:
		return ebitenUniformSourceScale
	case UniformMask:
		return ebitenUniformMask
	case UniformMaskScale:
		return ebitenUniformMaskScale
	case UniformMaskOffset:
		return ebitenUniformMaskOffset
	}
	return -1
}

func (p *ebitenProgram) SetUniformInt(location int, v int32) {
	if location == ebitenUniformMask {
		p.maskUnit = int(v)
	}
}

func (p *ebitenProgram) SetUniformFloat(location int, v float32) {
	if location == ebitenUniformOpacity {
		p.uniforms["Opacity"] = v
	}
}

func (p *ebitenProgram) SetUniformVec2(location int, v mgl32.Vec2) {
	var key string
	switch location {
	case ebitenUniformSourceScale:
		key = "SourceScale"
	case ebitenUniformMaskScale:
		key = "MaskScale"
	case ebitenUniformMaskOffset:
		key = "MaskOffset"
	default:
		return
	}
	p.uniforms[key] = []float32{v[0], v[1]}
}

func (p *ebitenProgram) SetUniformMat4(location int, v mgl32.Mat4) {
	if location == ebitenUniformMatrix {
		p.matrix = v
	}
}

// --- Texture ---

// EbitenTexture is a Texture backed by an *ebiten.Image. Atlas textures
// reference a region of a shared page image and never deallocate it.
type EbitenTexture struct {
	BaseTexture
	backend *EbitenBackend
	image   *ebiten.Image // whole image or atlas page
	rect    image.Rectangle
	owned   bool
}

// NewTexture wraps img as a standalone texture. Dispose deallocates img.
func (b *EbitenBackend) NewTexture(img *ebiten.Image) *EbitenTexture {
	bounds := img.Bounds()
	return &EbitenTexture{
		BaseTexture: NewBaseTexture(NewTextureID(), bounds.Dx(), bounds.Dy()),
		backend:     b,
		image:       img,
		rect:        bounds,
		owned:       true,
	}
}

// newAtlasTexture returns a texture for region r (in page pixels) of page.
func (b *EbitenBackend) newAtlasTexture(page *ebiten.Image, pageID TextureID, r image.Rectangle) *EbitenTexture {
	pb := page.Bounds()
	sub := Rect{
		X:      float64(r.Min.X - pb.Min.X),
		Y:      float64(r.Min.Y - pb.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
	return &EbitenTexture{
		BaseTexture: NewAtlasBaseTexture(pageID, pb.Dx(), pb.Dy(), sub),
		backend:     b,
		image:       page,
		rect:        r,
	}
}

// Image returns the backing image: the whole page for atlas textures.
func (t *EbitenTexture) Image() *ebiten.Image { return t.image }

// region returns the part of the backing image this texture covers.
func (t *EbitenTexture) region() *ebiten.Image {
	if !t.IsAtlasTexture() {
		return t.image
	}
	return t.image.SubImage(t.rect).(*ebiten.Image)
}

// Bind puts the texture on the backend's active unit.
func (t *EbitenTexture) Bind() {
	b := t.backend
	b.units[b.activeUnit] = boundTexture{tex: t, sampling: t.Sampling()}
	b.binds++
}

// UpdateBindOptions refreshes the sampling of the texture on the active unit.
func (t *EbitenTexture) UpdateBindOptions() {
	b := t.backend
	b.units[b.activeUnit] = boundTexture{tex: t, sampling: t.Sampling()}
	b.rebinds++
}

// Dispose deallocates the image of a standalone texture. Atlas textures only
// mark themselves disposed.
func (t *EbitenTexture) Dispose() {
	if t.IsDisposed() {
		return
	}
	t.BaseTexture.Dispose()
	if t.owned {
		t.image.Deallocate()
	}
}
