package maskfx

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// MaterialType is a process-wide identity token shared by every instance of
// one concrete material variant. Hosts compare *MaterialType pointers to pick
// the shader binder and to decide whether two draws may share a program.
type MaterialType struct {
	name string
}

// String returns the variant name.
func (t *MaterialType) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

var (
	opaqueTextureMaterialType = &MaterialType{name: ShaderOpaque}
	textureMaterialType       = &MaterialType{name: ShaderTranslucent}
)

// Material is a GPU draw-state descriptor. Compare returns 0 only when the
// two materials can be drawn without a state update in between; the other
// material must have the same Type.
type Material interface {
	Type() *MaterialType
	CreateShader() Shader
	Compare(other Material) int
}

// MaterialVariant selects which of a node's two materials is active.
type MaterialVariant uint8

const (
	VariantOpaque      MaterialVariant = iota // used when the node is fully opaque
	VariantTranslucent                        // carries an opacity uniform
)

// OpaqueTextureMaterial draws a texture modulated by the alpha of a mask
// texture. It is used when the node's inherited opacity is 1.
type OpaqueTextureMaterial struct {
	texture     Texture
	maskTexture Texture
	sampling    Sampling
	maskScale   mgl32.Vec2
	maskOffset  mgl32.Vec2
	sourceScale mgl32.Vec2
}

// materialDefaults sets the field values shared by both variants.
func materialDefaults(m *OpaqueTextureMaterial) {
	m.sampling = DefaultSampling()
	m.maskScale = mgl32.Vec2{1, 1}
	m.sourceScale = mgl32.Vec2{1, 1}
}

// NewOpaqueTextureMaterial returns a material with default sampling and unit
// scales.
func NewOpaqueTextureMaterial() *OpaqueTextureMaterial {
	m := &OpaqueTextureMaterial{}
	materialDefaults(m)
	return m
}

// Type returns the token shared by all opaque texture materials.
func (m *OpaqueTextureMaterial) Type() *MaterialType { return opaqueTextureMaterialType }

// CreateShader returns a new binder for this material type.
func (m *OpaqueTextureMaterial) CreateShader() Shader { return NewOpaqueTextureMaterialShader() }

// Compare returns 0 only if other is this very instance. Texture identity is
// not enough to decide equality once mask, scale and offset are involved, so
// distinct instances are never batched together.
func (m *OpaqueTextureMaterial) Compare(other Material) int {
	return compareMaterials(m, other)
}

// Texture returns the source texture, or nil.
func (m *OpaqueTextureMaterial) Texture() Texture { return m.texture }

// SetTexture replaces the source texture. Ownership is not transferred.
func (m *OpaqueTextureMaterial) SetTexture(t Texture) { m.texture = t }

// MaskTexture returns the mask texture, or nil.
func (m *OpaqueTextureMaterial) MaskTexture() Texture { return m.maskTexture }

// SetMaskTexture replaces the mask texture reference. A texture with the same
// GPU ID as the current mask is treated as unchanged, which keeps on-demand
// texture regeneration from looking like a new mask. Panics if t is nil.
func (m *OpaqueTextureMaterial) SetMaskTexture(t Texture) {
	mustTexture(t, "SetMaskTexture")
	if m.maskTexture == nil {
		m.maskTexture = t
		return
	}
	if t.TextureID() == m.maskTexture.TextureID() {
		return
	}
	m.maskTexture = t
}

// Sampling returns the filter, wrap, mip and anisotropy settings.
func (m *OpaqueTextureMaterial) Sampling() Sampling { return m.sampling }

// Filtering returns the texture filter.
func (m *OpaqueTextureMaterial) Filtering() Filtering { return m.sampling.Filtering }

// SetFiltering sets the texture filter.
func (m *OpaqueTextureMaterial) SetFiltering(f Filtering) { m.sampling.Filtering = f }

// MipmapFiltering returns the mip filter.
func (m *OpaqueTextureMaterial) MipmapFiltering() MipmapFiltering { return m.sampling.MipmapFiltering }

// SetMipmapFiltering sets the mip filter.
func (m *OpaqueTextureMaterial) SetMipmapFiltering(f MipmapFiltering) {
	m.sampling.MipmapFiltering = f
}

// HorizontalWrapMode returns the wrap mode along the texture's x axis.
func (m *OpaqueTextureMaterial) HorizontalWrapMode() WrapMode { return m.sampling.HorizontalWrap }

// SetHorizontalWrapMode sets the wrap mode along the texture's x axis.
func (m *OpaqueTextureMaterial) SetHorizontalWrapMode(w WrapMode) { m.sampling.HorizontalWrap = w }

// VerticalWrapMode returns the wrap mode along the texture's y axis.
func (m *OpaqueTextureMaterial) VerticalWrapMode() WrapMode { return m.sampling.VerticalWrap }

// SetVerticalWrapMode sets the wrap mode along the texture's y axis.
func (m *OpaqueTextureMaterial) SetVerticalWrapMode(w WrapMode) { m.sampling.VerticalWrap = w }

// AnisotropyLevel returns the anisotropic filtering level.
func (m *OpaqueTextureMaterial) AnisotropyLevel() AnisotropyLevel { return m.sampling.Anisotropy }

// SetAnisotropyLevel sets the anisotropic filtering level.
func (m *OpaqueTextureMaterial) SetAnisotropyLevel(a AnisotropyLevel) { m.sampling.Anisotropy = a }

// MaskScale returns the scale applied to mask coordinates.
func (m *OpaqueTextureMaterial) MaskScale() mgl32.Vec2 { return m.maskScale }

// SetMaskScale sets the scale applied to mask coordinates.
func (m *OpaqueTextureMaterial) SetMaskScale(v mgl32.Vec2) {
	if v == m.maskScale {
		return
	}
	m.maskScale = v
}

// MaskOffset returns the offset added to mask coordinates.
func (m *OpaqueTextureMaterial) MaskOffset() mgl32.Vec2 { return m.maskOffset }

// SetMaskOffset sets the offset added to mask coordinates.
func (m *OpaqueTextureMaterial) SetMaskOffset(v mgl32.Vec2) {
	if v == m.maskOffset {
		return
	}
	m.maskOffset = v
}

// SourceScale returns the scale from texture coordinates to item coordinates.
func (m *OpaqueTextureMaterial) SourceScale() mgl32.Vec2 { return m.sourceScale }

// SetSourceScale sets the scale from texture coordinates to item coordinates.
func (m *OpaqueTextureMaterial) SetSourceScale(v mgl32.Vec2) {
	if v == m.sourceScale {
		return
	}
	m.sourceScale = v
}

// SamplerDescriptor returns the material's sampling as a sampler descriptor.
func (m *OpaqueTextureMaterial) SamplerDescriptor() gputypes.SamplerDescriptor {
	return m.sampling.Descriptor()
}

// state returns the embedded opaque state; both variants implement it so the
// shader binder can read either one.
func (m *OpaqueTextureMaterial) state() *OpaqueTextureMaterial { return m }

// TextureMaterial is the translucent variant of OpaqueTextureMaterial. Its
// binder additionally uploads the inherited opacity. Opacity is not part of
// Compare; batching across opacity changes is left to the host.
type TextureMaterial struct {
	OpaqueTextureMaterial
}

// NewTextureMaterial returns a translucent material with default settings.
func NewTextureMaterial() *TextureMaterial {
	m := &TextureMaterial{}
	materialDefaults(&m.OpaqueTextureMaterial)
	return m
}

// Type returns the token shared by all translucent texture materials.
func (m *TextureMaterial) Type() *MaterialType { return textureMaterialType }

// CreateShader returns a new binder for this material type.
func (m *TextureMaterial) CreateShader() Shader { return NewTextureMaterialShader() }

// Compare applies the same identity rule as OpaqueTextureMaterial.
func (m *TextureMaterial) Compare(other Material) int {
	return compareMaterials(m, other)
}

// textureMaterialState is implemented by both variants.
type textureMaterialState interface {
	Material
	state() *OpaqueTextureMaterial
}

// compareMaterials returns 0 if a and b are the same instance and 1 otherwise.
func compareMaterials(a, b Material) int {
	if globalDebug {
		if b == nil {
			panic("maskfx debug: Compare with nil material")
		}
		debugCheckSameType(a, b, "Compare")
	}
	if a == b {
		return 0
	}
	return 1
}
