package maskfx

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has zero width or zero height.
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// DirtyState is a bitmask of node changes not yet consumed by the host.
// Values are OR-combined by setters and only cleared by the host.
type DirtyState uint8

const (
	DirtyGeometry DirtyState = 1 << iota // vertex positions or texture coordinates changed
	DirtyMaterial                        // material state changed
)

// Has reports whether all bits in flag are set.
func (d DirtyState) Has(flag DirtyState) bool {
	return d&flag == flag
}

// String returns a readable form such as "geometry|material".
func (d DirtyState) String() string {
	switch d {
	case 0:
		return "clean"
	case DirtyGeometry:
		return "geometry"
	case DirtyMaterial:
		return "material"
	case DirtyGeometry | DirtyMaterial:
		return "geometry|material"
	default:
		return "unknown"
	}
}

// TexCoordTransform selects how the corners of the source rectangle map onto
// the corners of the quad. Flags can be combined with bitwise OR, giving eight
// distinct orientations.
type TexCoordTransform uint8

const (
	TexCoordNoTransform         TexCoordTransform = 0
	TexCoordMirrorHorizontally  TexCoordTransform = 1 << 0 // swap left and right
	TexCoordMirrorVertically    TexCoordTransform = 1 << 1 // swap top and bottom
	TexCoordRotate90            TexCoordTransform = 1 << 2 // rotate content 90° clockwise
	texCoordTransformMask                         = TexCoordMirrorHorizontally | TexCoordMirrorVertically | TexCoordRotate90
	TexCoordRotate180                             = TexCoordMirrorHorizontally | TexCoordMirrorVertically
	TexCoordRotate270                             = TexCoordRotate180 | TexCoordRotate90
)

// Has reports whether all bits in flag are set.
func (m TexCoordTransform) Has(flag TexCoordTransform) bool {
	return m&flag == flag
}

// Feature identifies an optional capability of the graphics backend.
type Feature uint8

const (
	// FeatureNPOTTextureRepeat reports that repeat wrapping works on textures
	// whose dimensions are not powers of two.
	FeatureNPOTTextureRepeat Feature = iota
)

// isPowerOfTwo reports whether x is a power of two. Assumes x >= 1.
func isPowerOfTwo(x int) bool {
	return x == x&-x
}
