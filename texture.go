package maskfx

// TextureID is an opaque handle to the GPU resource behind a Texture. Several
// Texture values may share one ID, e.g. all textures packed into the same
// atlas page.
type TextureID uint64

// InvalidTextureID is the zero value, never handed out by NewTextureID.
const InvalidTextureID TextureID = 0

// textureIDCounter is a plain counter (no atomic: maskfx is single-threaded).
var textureIDCounter TextureID

// NewTextureID returns a fresh, process-unique texture ID. Backends call this
// once per GPU resource they create.
func NewTextureID() TextureID {
	textureIDCounter++
	return textureIDCounter
}

// Texture is a GPU texture as seen by materials and shader binders.
//
// Bind uploads the texture to the currently active texture unit.
// UpdateBindOptions re-applies the sampling state to a texture that is already
// bound there. Dispose releases the GPU resource; it is only ever called by
// the owner of the texture.
type Texture interface {
	TextureID() TextureID
	TextureSize() (w, h int)
	IsAtlasTexture() bool
	// NormalizedTextureSubRect returns the region of the underlying GPU
	// texture covered by this texture, in [0, 1] coordinates. It is
	// {0, 0, 1, 1} for textures that are not part of an atlas.
	NormalizedTextureSubRect() Rect
	Sampling() Sampling
	SetSampling(s Sampling)
	Bind()
	UpdateBindOptions()
	Dispose()
}

// BaseTexture implements the bookkeeping half of Texture. Backends embed it
// and add Bind, UpdateBindOptions and, when they own GPU memory, Dispose.
type BaseTexture struct {
	id       TextureID
	w, h     int
	atlas    bool
	subRect  Rect
	sampling Sampling
	disposed bool
}

// NewBaseTexture returns a standalone texture of the given size with its own
// ID and default sampling.
func NewBaseTexture(id TextureID, w, h int) BaseTexture {
	return BaseTexture{
		id:       id,
		w:        w,
		h:        h,
		subRect:  Rect{0, 0, 1, 1},
		sampling: DefaultSampling(),
	}
}

// NewAtlasBaseTexture returns a texture occupying subRect (in pixels) of an
// atlas page of size pageW×pageH. The texture shares the page's ID.
func NewAtlasBaseTexture(pageID TextureID, pageW, pageH int, subRect Rect) BaseTexture {
	t := NewBaseTexture(pageID, int(subRect.Width), int(subRect.Height))
	t.atlas = true
	if pageW > 0 && pageH > 0 {
		t.subRect = Rect{
			X:      subRect.X / float64(pageW),
			Y:      subRect.Y / float64(pageH),
			Width:  subRect.Width / float64(pageW),
			Height: subRect.Height / float64(pageH),
		}
	}
	return t
}

// TextureID returns the ID of the underlying GPU resource.
func (t *BaseTexture) TextureID() TextureID { return t.id }

// TextureSize returns the texture size in pixels.
func (t *BaseTexture) TextureSize() (w, h int) { return t.w, t.h }

// IsAtlasTexture reports whether the texture is a region of a shared page.
func (t *BaseTexture) IsAtlasTexture() bool { return t.atlas }

// NormalizedTextureSubRect returns the normalized region of the GPU texture.
func (t *BaseTexture) NormalizedTextureSubRect() Rect { return t.subRect }

// Sampling returns the current bind options.
func (t *BaseTexture) Sampling() Sampling { return t.sampling }

// SetSampling replaces the bind options. They take effect on the next Bind
// or UpdateBindOptions.
func (t *BaseTexture) SetSampling(s Sampling) { t.sampling = s }

// Dispose marks the texture as released.
func (t *BaseTexture) Dispose() { t.disposed = true }

// IsDisposed reports whether Dispose has been called.
func (t *BaseTexture) IsDisposed() bool { return t.disposed }

// isNPOT reports whether either dimension of t is not a power of two.
func isNPOT(t Texture) bool {
	w, h := t.TextureSize()
	return !isPowerOfTwo(w) || !isPowerOfTwo(h)
}

// sameTextureID reports whether a and b are backed by the same GPU resource.
// A nil texture never matches.
func sameTextureID(a, b Texture) bool {
	if a == nil || b == nil {
		return false
	}
	return a.TextureID() == b.TextureID()
}

// convertToNormalizedSourceRect maps a pixel-space source rect into the
// normalized coordinates of the underlying GPU texture, accounting for atlas
// placement. Zero-size textures are treated as 1×1.
func convertToNormalizedSourceRect(t Texture, r Rect) Rect {
	w, h := t.TextureSize()
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	sub := t.NormalizedTextureSubRect()
	sx := sub.Width / float64(w)
	sy := sub.Height / float64(h)
	return Rect{
		X:      sub.X + r.X*sx,
		Y:      sub.Y + r.Y*sy,
		Width:  r.Width * sx,
		Height: r.Height * sy,
	}
}
