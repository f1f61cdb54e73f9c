package maskfx

import "github.com/go-gl/mathgl/mgl32"

// MaskEffectNode draws a texture clipped by the alpha channel of a mask
// texture. It owns its geometry and both material variants; the host picks
// the active material with ActiveMaterial and consumes the dirty flags once
// per frame.
//
// Every setter is a no-op when called with the current value.
type MaskEffectNode struct {
	// Name is a human-readable label used in logs.
	Name string

	geometry       Geometry
	material       TextureMaterial
	opaqueMaterial OpaqueTextureMaterial

	rect         Rect
	sourceRect   Rect
	texCoordMode TexCoordTransform

	ownsTexture bool
	disposed    bool
	dirty       DirtyState
}

// NewMaskEffectNode creates a node with no texture, empty rects and default
// sampling (nearest filtering, no mipmaps, clamp-to-edge).
func NewMaskEffectNode(name string) *MaskEffectNode {
	n := &MaskEffectNode{Name: name}
	materialDefaults(&n.material.OpaqueTextureMaterial)
	materialDefaults(&n.opaqueMaterial)
	n.material.SetMipmapFiltering(MipmapNone)
	n.opaqueMaterial.SetMipmapFiltering(MipmapNone)
	return n
}

// --- Dirty tracking ---

// DirtyState returns the flags accumulated since the last ClearDirty.
func (n *MaskEffectNode) DirtyState() DirtyState { return n.dirty }

// MarkDirty ORs flags into the node's dirty state.
func (n *MaskEffectNode) MarkDirty(flags DirtyState) { n.dirty |= flags }

// ClearDirty resets the dirty state. Called by the host after it has
// consumed the node's changes.
func (n *MaskEffectNode) ClearDirty() { n.dirty = 0 }

// --- Materials and geometry ---

// Material returns the translucent material.
func (n *MaskEffectNode) Material() *TextureMaterial { return &n.material }

// OpaqueMaterial returns the opaque material.
func (n *MaskEffectNode) OpaqueMaterial() *OpaqueTextureMaterial { return &n.opaqueMaterial }

// ActiveMaterial returns the opaque material when inheritedOpacity is 1 and
// the translucent one otherwise.
func (n *MaskEffectNode) ActiveMaterial(inheritedOpacity float64) Material {
	if n.ActiveVariant(inheritedOpacity) == VariantOpaque {
		return &n.opaqueMaterial
	}
	return &n.material
}

// ActiveVariant reports which material ActiveMaterial selects.
func (n *MaskEffectNode) ActiveVariant(inheritedOpacity float64) MaterialVariant {
	if inheritedOpacity >= 1 {
		return VariantOpaque
	}
	return VariantTranslucent
}

// Geometry returns the node's quad.
func (n *MaskEffectNode) Geometry() *Geometry { return &n.geometry }

func (n *MaskEffectNode) rebuildGeometry() {
	RebuildGeometry(&n.geometry, n.material.Texture(), n.rect, n.sourceRect, n.texCoordMode)
}

// --- Rects and transform ---

// Rect returns the destination rectangle in node coordinates.
func (n *MaskEffectNode) Rect() Rect { return n.rect }

// SetRect sets the destination rectangle.
func (n *MaskEffectNode) SetRect(r Rect) {
	if r == n.rect {
		return
	}
	n.rect = r
	n.rebuildGeometry()
	n.MarkDirty(DirtyGeometry)
}

// SourceRect returns the region of the texture to draw, in texture pixels.
func (n *MaskEffectNode) SourceRect() Rect { return n.sourceRect }

// SetSourceRect sets the region of the texture to draw. An empty rect draws
// the whole texture.
func (n *MaskEffectNode) SetSourceRect(r Rect) {
	if r == n.sourceRect {
		return
	}
	n.sourceRect = r
	n.rebuildGeometry()
	n.MarkDirty(DirtyGeometry)
}

// TextureCoordinatesTransform returns the mirror/rotate mode.
func (n *MaskEffectNode) TextureCoordinatesTransform() TexCoordTransform { return n.texCoordMode }

// SetTextureCoordinatesTransform sets the mirror/rotate mode. Bits outside
// the three defined flags are dropped.
func (n *MaskEffectNode) SetTextureCoordinatesTransform(mode TexCoordTransform) {
	mode &= texCoordTransformMask
	if mode == n.texCoordMode {
		return
	}
	n.texCoordMode = mode
	n.rebuildGeometry()
	n.MarkDirty(DirtyGeometry)
}

// --- Textures ---

// Texture returns the source texture, or nil.
func (n *MaskEffectNode) Texture() Texture { return n.material.Texture() }

// SetTexture installs the source texture in both materials. Setting the
// current texture again only marks the material dirty, for textures whose
// content changed in place. When the node owns its texture the previous one
// is disposed. Panics if t is nil.
func (n *MaskEffectNode) SetTexture(t Texture) {
	mustTexture(t, "SetTexture")

	old := n.material.Texture()
	if t == old {
		n.MarkDirty(DirtyMaterial)
		return
	}

	wasAtlas := old != nil && old.IsAtlasTexture()
	if n.ownsTexture && old != nil {
		old.Dispose()
	}
	n.material.SetTexture(t)
	n.opaqueMaterial.SetTexture(t)
	n.rebuildGeometry()

	dirty := DirtyMaterial
	// Atlas placement feeds the UVs even when no rect changed.
	if wasAtlas || t.IsAtlasTexture() {
		dirty |= DirtyGeometry
	}
	n.MarkDirty(dirty)
}

// MaskTexture returns the mask texture, or nil.
func (n *MaskEffectNode) MaskTexture() Texture { return n.material.MaskTexture() }

// SetMaskTexture installs the mask texture in both materials. The node never
// disposes the mask. Panics if t is nil.
func (n *MaskEffectNode) SetMaskTexture(t Texture) {
	mustTexture(t, "SetMaskTexture")
	if t == n.material.MaskTexture() {
		return
	}
	n.material.SetMaskTexture(t)
	n.opaqueMaterial.SetMaskTexture(t)
	n.MarkDirty(DirtyMaterial)
}

// OwnsTexture reports whether the node disposes its source texture.
func (n *MaskEffectNode) OwnsTexture() bool { return n.ownsTexture }

// SetOwnsTexture sets whether the node disposes its source texture when it is
// replaced or the node is disposed.
func (n *MaskEffectNode) SetOwnsTexture(owns bool) { n.ownsTexture = owns }

// Dispose releases the source texture if the node owns it. Calling Dispose
// more than once has no further effect.
func (n *MaskEffectNode) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	if t := n.material.Texture(); n.ownsTexture && t != nil {
		t.Dispose()
	}
}

// IsDisposed reports whether Dispose has been called.
func (n *MaskEffectNode) IsDisposed() bool { return n.disposed }

// --- Mask placement ---

// MaskScale returns the scale applied to mask coordinates.
func (n *MaskEffectNode) MaskScale() mgl32.Vec2 { return n.material.MaskScale() }

// SetMaskScale sets the scale applied to mask coordinates.
func (n *MaskEffectNode) SetMaskScale(v mgl32.Vec2) {
	if v == n.material.MaskScale() {
		return
	}
	n.material.SetMaskScale(v)
	n.opaqueMaterial.SetMaskScale(v)
	n.MarkDirty(DirtyMaterial)
}

// MaskOffset returns the offset added to mask coordinates.
func (n *MaskEffectNode) MaskOffset() mgl32.Vec2 { return n.material.MaskOffset() }

// SetMaskOffset sets the offset added to mask coordinates.
func (n *MaskEffectNode) SetMaskOffset(v mgl32.Vec2) {
	if v == n.material.MaskOffset() {
		return
	}
	n.material.SetMaskOffset(v)
	n.opaqueMaterial.SetMaskOffset(v)
	n.MarkDirty(DirtyMaterial)
}

// SourceScale returns the scale from texture to item coordinates.
func (n *MaskEffectNode) SourceScale() mgl32.Vec2 { return n.material.SourceScale() }

// SetSourceScale sets the scale from texture to item coordinates.
func (n *MaskEffectNode) SetSourceScale(v mgl32.Vec2) {
	if v == n.material.SourceScale() {
		return
	}
	n.material.SetSourceScale(v)
	n.opaqueMaterial.SetSourceScale(v)
	n.MarkDirty(DirtyMaterial)
}

// --- Sampling ---

// Filtering returns the minification and magnification filter.
func (n *MaskEffectNode) Filtering() Filtering { return n.material.Filtering() }

// SetFiltering sets the filter on both material variants.
func (n *MaskEffectNode) SetFiltering(f Filtering) {
	if f == n.material.Filtering() {
		return
	}
	n.material.SetFiltering(f)
	n.opaqueMaterial.SetFiltering(f)
	n.MarkDirty(DirtyMaterial)
}

// MipmapFiltering returns the mip-map filter.
func (n *MaskEffectNode) MipmapFiltering() MipmapFiltering { return n.material.MipmapFiltering() }

// SetMipmapFiltering sets the mip-map filter on both material variants.
func (n *MaskEffectNode) SetMipmapFiltering(f MipmapFiltering) {
	if f == n.material.MipmapFiltering() {
		return
	}
	n.material.SetMipmapFiltering(f)
	n.opaqueMaterial.SetMipmapFiltering(f)
	n.MarkDirty(DirtyMaterial)
}

// HorizontalWrapMode returns the wrap mode along the texture X axis.
func (n *MaskEffectNode) HorizontalWrapMode() WrapMode { return n.material.HorizontalWrapMode() }

// SetHorizontalWrapMode sets the X wrap mode on both material variants.
func (n *MaskEffectNode) SetHorizontalWrapMode(w WrapMode) {
	if w == n.material.HorizontalWrapMode() {
		return
	}
	n.material.SetHorizontalWrapMode(w)
	n.opaqueMaterial.SetHorizontalWrapMode(w)
	n.MarkDirty(DirtyMaterial)
}

// VerticalWrapMode returns the wrap mode along the texture Y axis.
func (n *MaskEffectNode) VerticalWrapMode() WrapMode { return n.material.VerticalWrapMode() }

// SetVerticalWrapMode sets the Y wrap mode on both material variants.
func (n *MaskEffectNode) SetVerticalWrapMode(w WrapMode) {
	if w == n.material.VerticalWrapMode() {
		return
	}
	n.material.SetVerticalWrapMode(w)
	n.opaqueMaterial.SetVerticalWrapMode(w)
	n.MarkDirty(DirtyMaterial)
}

// AnisotropyLevel returns the anisotropic filtering level.
func (n *MaskEffectNode) AnisotropyLevel() AnisotropyLevel { return n.material.AnisotropyLevel() }

// SetAnisotropyLevel sets the anisotropy on both material variants.
func (n *MaskEffectNode) SetAnisotropyLevel(a AnisotropyLevel) {
	if a == n.material.AnisotropyLevel() {
		return
	}
	n.material.SetAnisotropyLevel(a)
	n.opaqueMaterial.SetAnisotropyLevel(a)
	n.MarkDirty(DirtyMaterial)
}
