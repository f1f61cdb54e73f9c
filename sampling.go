package maskfx

import "github.com/gogpu/gputypes"

// Filtering selects the magnification/minification filter of a texture.
type Filtering = gputypes.FilterMode

const (
	FilterNearest = gputypes.FilterModeNearest
	FilterLinear  = gputypes.FilterModeLinear
)

// MipmapFiltering selects how mip levels are sampled. MipmapNone disables
// mip-mapping entirely.
type MipmapFiltering = gputypes.MipmapFilterMode

const (
	MipmapNone    = gputypes.MipmapFilterModeUndefined
	MipmapNearest = gputypes.MipmapFilterModeNearest
	MipmapLinear  = gputypes.MipmapFilterModeLinear
)

// WrapMode describes how texture coordinates outside [0, 1] are resolved.
type WrapMode = gputypes.AddressMode

const (
	WrapClampToEdge  = gputypes.AddressModeClampToEdge
	WrapRepeat       = gputypes.AddressModeRepeat
	WrapMirrorRepeat = gputypes.AddressModeMirrorRepeat
)

// AnisotropyLevel is the maximum anisotropic filtering level.
type AnisotropyLevel uint8

const (
	AnisotropyNone AnisotropyLevel = iota
	Anisotropy2x
	Anisotropy4x
	Anisotropy8x
	Anisotropy16x
)

// MaxAnisotropy returns the sampler clamp value for the level (1 = disabled).
func (a AnisotropyLevel) MaxAnisotropy() uint16 {
	if a > Anisotropy16x {
		return 16
	}
	return 1 << a
}

// String returns the level name.
func (a AnisotropyLevel) String() string {
	switch a {
	case AnisotropyNone:
		return "None"
	case Anisotropy2x:
		return "2x"
	case Anisotropy4x:
		return "4x"
	case Anisotropy8x:
		return "8x"
	case Anisotropy16x:
		return "16x"
	default:
		return "Unknown"
	}
}

// Sampling is the complete set of bind options applied to a texture before a
// draw. Value type; compare with ==.
type Sampling struct {
	Filtering       Filtering
	MipmapFiltering MipmapFiltering
	HorizontalWrap  WrapMode
	VerticalWrap    WrapMode
	Anisotropy      AnisotropyLevel
}

// DefaultSampling returns nearest filtering, no mip-mapping, clamp-to-edge
// wrapping and no anisotropy.
func DefaultSampling() Sampling {
	return Sampling{
		Filtering:       FilterNearest,
		MipmapFiltering: MipmapNone,
		HorizontalWrap:  WrapClampToEdge,
		VerticalWrap:    WrapClampToEdge,
		Anisotropy:      AnisotropyNone,
	}
}

// Descriptor converts the sampling state into a sampler descriptor for
// backends that create explicit sampler objects.
func (s Sampling) Descriptor() gputypes.SamplerDescriptor {
	d := gputypes.DefaultSamplerDescriptor()
	d.AddressModeU = s.HorizontalWrap
	d.AddressModeV = s.VerticalWrap
	d.MagFilter = s.Filtering
	d.MinFilter = s.Filtering
	d.MaxAnisotropy = s.Anisotropy.MaxAnisotropy()
	if s.MipmapFiltering == MipmapNone {
		d.MipmapFilter = gputypes.MipmapFilterModeNearest
		d.LodMaxClamp = 0
	} else {
		d.MipmapFilter = s.MipmapFiltering
	}
	return d
}
