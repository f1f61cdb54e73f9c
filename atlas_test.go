package maskfx

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const singlePageJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
      "sourceSize": {"w": 64, "h": 64}
    },
    "vignette.png": {
      "frame": {"x": 128, "y": 256, "w": 128, "h": 64},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 128, "h": 64},
      "sourceSize": {"w": 128, "h": 64}
    },
    "rotated.png": {
      "frame": {"x": 200, "y": 0, "w": 48, "h": 32},
      "rotated": true,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 48, "h": 32},
      "sourceSize": {"w": 32, "h": 48}
    }
  },
  "meta": {
    "image": "atlas.png",
    "size": {"w": 512, "h": 512}
  }
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "page0.png": {"frame": {"x": 0, "y": 0, "w": 64, "h": 64}, "sourceSize": {"w": 64, "h": 64}}
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "page1.png": {"frame": {"x": 10, "y": 20, "w": 50, "h": 50}, "sourceSize": {"w": 50, "h": 50}}
      }
    }
  ]
}`

func loadSinglePage(t *testing.T) *Atlas {
	t.Helper()
	page := ebiten.NewImage(512, 512)
	atlas, err := LoadAtlas([]byte(singlePageJSON), []*ebiten.Image{page}, NewEbitenBackend(nil, EbitenOptions{}))
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	return atlas
}

func TestLoadAtlas_SinglePage(t *testing.T) {
	atlas := loadSinglePage(t)
	if got := atlas.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	r, ok := atlas.Region("vignette.png")
	if !ok {
		t.Fatal("vignette.png not found")
	}
	if r.X != 128 || r.Y != 256 || r.Width != 128 || r.Height != 64 || r.Page != 0 {
		t.Errorf("vignette.png = %+v, want page 0 {128 256 128 64}", r)
	}
	if r, _ := atlas.Region("rotated.png"); !r.Rotated {
		t.Error("rotated.png Rotated = false, want true")
	}
}

func TestAtlasTexture(t *testing.T) {
	atlas := loadSinglePage(t)
	hero := atlas.Texture("hero.png")
	vignette := atlas.Texture("vignette.png")

	if !hero.IsAtlasTexture() || !vignette.IsAtlasTexture() {
		t.Error("atlas textures should report IsAtlasTexture")
	}
	if hero.TextureID() != vignette.TextureID() || hero.TextureID() != atlas.PageID(0) {
		t.Error("textures on the same page should share the page ID")
	}
	if w, h := vignette.TextureSize(); w != 128 || h != 64 {
		t.Errorf("TextureSize() = %dx%d, want 128x64", w, h)
	}
	want := Rect{X: 0.25, Y: 0.5, Width: 0.25, Height: 0.125}
	if got := vignette.NormalizedTextureSubRect(); got != want {
		t.Errorf("NormalizedTextureSubRect() = %+v, want %+v", got, want)
	}
}

func TestAtlasTexture_Missing_ReturnsMagenta(t *testing.T) {
	atlas := loadSinglePage(t)
	tex := atlas.Texture("nonexistent.png")
	if tex.IsAtlasTexture() {
		t.Error("placeholder should not be an atlas texture")
	}
	if w, h := tex.TextureSize(); w != 1 || h != 1 {
		t.Errorf("placeholder size = %dx%d, want 1x1", w, h)
	}
	if tex.Image() != ensureMagentaImage() {
		t.Error("placeholder should use the shared magenta image")
	}
	if tex.owned {
		t.Error("placeholder should not own the shared image")
	}
}

func TestLoadAtlas_MultiPage(t *testing.T) {
	pages := []*ebiten.Image{ebiten.NewImage(64, 64), ebiten.NewImage(128, 128)}
	atlas, err := LoadAtlas([]byte(multiPageJSON), pages, NewEbitenBackend(nil, EbitenOptions{}))
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	r, ok := atlas.Region("page1.png")
	if !ok || r.Page != 1 {
		t.Errorf("page1.png = %+v (found %v), want page 1", r, ok)
	}
	a, b := atlas.Texture("page0.png"), atlas.Texture("page1.png")
	if a.TextureID() == b.TextureID() {
		t.Error("textures on different pages should have different IDs")
	}
}

func TestLoadAtlas_InvalidJSON(t *testing.T) {
	if _, err := LoadAtlas([]byte("{not json"), nil, NewEbitenBackend(nil, EbitenOptions{})); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadAtlas_NoFramesOrTextures(t *testing.T) {
	if _, err := LoadAtlas([]byte(`{"meta": {}}`), nil, NewEbitenBackend(nil, EbitenOptions{})); err == nil {
		t.Error("expected error when neither frames nor textures present")
	}
}
