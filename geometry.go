package maskfx

// TexturedPoint2D is one vertex of a textured quad: a position in node
// coordinates and a normalized texture coordinate.
type TexturedPoint2D struct {
	X, Y   float32
	TX, TY float32
}

// Vertex corner indices of the quad, in triangle-strip order.
const (
	cornerTopLeft = iota
	cornerBottomLeft
	cornerTopRight
	cornerBottomRight
	quadVertexCount
)

// quadIndices splits the strip into two triangles for backends without
// strip support.
var quadIndices = [6]uint16{0, 1, 2, 1, 3, 2}

// Geometry is a pre-allocated four-vertex triangle strip.
// Vertex order: top-left, bottom-left, top-right, bottom-right.
type Geometry struct {
	vertices [quadVertexCount]TexturedPoint2D
}

// Vertices returns the vertex buffer. The returned slice aliases the geometry
// and MUST NOT be retained across rebuilds.
func (g *Geometry) Vertices() []TexturedPoint2D {
	return g.vertices[:]
}

// Indices returns the triangle-list indices covering the quad.
func (g *Geometry) Indices() []uint16 {
	return quadIndices[:]
}

// RebuildGeometry recomputes g from the destination rect, the source rect and
// the coordinate transform mode.
//
// With a nil texture the source rect is used as normalized coordinates
// directly. Otherwise it is a pixel rect inside the texture (an empty rect
// meaning the whole texture) that is normalized against the texture size and
// remapped into the texture's atlas region.
//
// Degenerate rects produce a zero-area quad.
func RebuildGeometry(g *Geometry, tex Texture, rect, sourceRect Rect, mode TexCoordTransform) {
	uv := sourceRect
	if tex != nil {
		if sourceRect.IsEmpty() {
			w, h := tex.TextureSize()
			sourceRect = Rect{0, 0, float64(w), float64(h)}
		}
		uv = convertToNormalizedSourceRect(tex, sourceRect)
	}
	updateTexturedRectGeometry(g, rect, uv, mode)
}

// updateTexturedRectGeometry writes rect's corners and the transformed UV
// corners into g.
func updateTexturedRectGeometry(g *Geometry, rect, uv Rect, mode TexCoordTransform) {
	l, r := float32(uv.Left()), float32(uv.Right())
	t, b := float32(uv.Top()), float32(uv.Bottom())

	if mode.Has(TexCoordMirrorHorizontally) {
		l, r = r, l
	}
	if mode.Has(TexCoordMirrorVertically) {
		t, b = b, t
	}

	tex := [quadVertexCount][2]float32{
		cornerTopLeft:     {l, t},
		cornerBottomLeft:  {l, b},
		cornerTopRight:    {r, t},
		cornerBottomRight: {r, b},
	}
	if mode.Has(TexCoordRotate90) {
		// Clockwise: each corner shows what the corner counter-clockwise
		// from it showed before.
		tex[cornerTopLeft], tex[cornerBottomLeft], tex[cornerTopRight], tex[cornerBottomRight] =
			tex[cornerBottomLeft], tex[cornerBottomRight], tex[cornerTopLeft], tex[cornerTopRight]
	}

	x0, x1 := float32(rect.Left()), float32(rect.Right())
	y0, y1 := float32(rect.Top()), float32(rect.Bottom())
	pos := [quadVertexCount][2]float32{
		cornerTopLeft:     {x0, y0},
		cornerBottomLeft:  {x0, y1},
		cornerTopRight:    {x1, y0},
		cornerBottomRight: {x1, y1},
	}

	for i := range g.vertices {
		g.vertices[i] = TexturedPoint2D{
			X:  pos[i][0],
			Y:  pos[i][1],
			TX: tex[i][0],
			TY: tex[i][1],
		}
	}
}
