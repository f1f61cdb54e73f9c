package maskfx

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion describes a sub-rectangle within an atlas page.
type TextureRegion struct {
	Page      int // atlas page index
	X, Y      int // top-left corner within the page
	Width     int
	Height    int
	OriginalW int  // untrimmed sprite width as authored
	OriginalH int  // untrimmed sprite height as authored
	Rotated   bool // stored 90 degrees clockwise in the page
}

// Rect returns the region in page pixels.
func (r TextureRegion) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Atlas holds one or more page images and the named regions packed into
// them. Every texture taken from the same page shares the page's TextureID,
// so binders treat switching between them as a rebind of the same resource.
type Atlas struct {
	// Pages contains the page images indexed by page number.
	Pages   []*ebiten.Image
	pageIDs []TextureID
	regions map[string]TextureRegion
	backend *EbitenBackend
}

// Region returns the region for name and whether it exists.
func (a *Atlas) Region(name string) (TextureRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Len returns the number of regions.
func (a *Atlas) Len() int { return len(a.regions) }

// PageID returns the TextureID shared by all textures on page i.
func (a *Atlas) PageID(i int) TextureID { return a.pageIDs[i] }

// Texture returns an atlas texture for the named region. If the name does not
// exist, or its page was not supplied, it logs a warning and returns a 1×1
// magenta placeholder texture.
func (a *Atlas) Texture(name string) *EbitenTexture {
	r, ok := a.regions[name]
	if !ok || r.Page < 0 || r.Page >= len(a.Pages) || a.Pages[r.Page] == nil {
		Logger().Warn("maskfx: atlas region not found, using magenta placeholder", "region", name)
		return a.backend.magentaTexture()
	}
	page := a.Pages[r.Page]
	pr := r.Rect().Add(page.Bounds().Min)
	return a.backend.newAtlasTexture(page, a.pageIDs[r.Page], pr)
}

// magenta placeholder image (no sync.Once: maskfx is single-threaded)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// magentaTexture wraps the shared placeholder image. Disposing it leaves the
// image alive.
func (b *EbitenBackend) magentaTexture() *EbitenTexture {
	t := b.NewTexture(ensureMagentaImage())
	t.owned = false
	return t
}

// LoadAtlas parses TexturePacker JSON and associates the given page images.
// Both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists) are supported. Textures are
// created through backend.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image, backend *EbitenBackend) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("maskfx: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		pageIDs: make([]TextureID, len(pages)),
		regions: make(map[string]TextureRegion),
		backend: backend,
	}
	for i := range atlas.pageIDs {
		atlas.pageIDs[i] = NewTextureID()
	}

	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("maskfx: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	for name, r := range atlas.regions {
		if r.Rotated {
			Logger().Warn("maskfx: rotated atlas region is drawn unrotated", "region", name)
		}
	}
	return atlas, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame      jsonRect `json:"frame"`
	Rotated    bool     `json:"rotated"`
	SourceSize jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses {"name": {frame...}, ...}.
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("maskfx: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, page)
	}
	return nil
}

// parseArrayFormat parses [{"image": "...", "frames": {...}}, ...].
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("maskfx: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, i)
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page int) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         f.Frame.X,
		Y:         f.Frame.Y,
		Width:     f.Frame.W,
		Height:    f.Frame.H,
		OriginalW: f.SourceSize.W,
		OriginalH: f.SourceSize.H,
		Rotated:   f.Rotated,
	}
}
