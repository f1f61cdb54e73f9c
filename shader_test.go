package maskfx

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// binderFixture is a material with source and mask textures wired to a
// recording context.
type binderFixture struct {
	ctx  *fakeContext
	tex  *fakeTexture
	mask *fakeTexture
	prog *fakeProgram
}

func newBinderFixture(texW, texH int) *binderFixture {
	f := &binderFixture{
		ctx:  &fakeContext{},
		tex:  newFakeTexture("photo", texW, texH),
		mask: newFakeTexture("mask", 64, 64),
		// Both programs expose opacity so a stray upload is observable.
		prog: newFakeProgram(UniformMatrix, UniformOpacity, UniformSourceScale,
			UniformMask, UniformMaskScale, UniformMaskOffset),
	}
	f.tex.ctx = f.ctx
	f.mask.ctx = f.ctx
	return f
}

func (f *binderFixture) opaque() *OpaqueTextureMaterial {
	m := NewOpaqueTextureMaterial()
	m.SetTexture(f.tex)
	m.SetMaskTexture(f.mask)
	return m
}

func (f *binderFixture) translucent() *TextureMaterial {
	m := NewTextureMaterial()
	m.SetTexture(f.tex)
	m.SetMaskTexture(f.mask)
	return m
}

func (f *binderFixture) state(dirty RenderDirty) *RenderState {
	return &RenderState{Dirty: dirty, Matrix: mgl32.Translate3D(1, 2, 0), Opacity: 0.5, Context: f.ctx}
}

func TestShaderNPOTWrapFallback(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		npotRepeat bool
		want       WrapMode
	}{
		{"npot without support", 100, 64, false, WrapClampToEdge},
		{"npot height without support", 64, 100, false, WrapClampToEdge},
		{"pot without support", 64, 128, false, WrapRepeat},
		{"npot with support", 100, 100, true, WrapRepeat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBinderFixture(tt.w, tt.h)
			f.ctx.npotRepeat = tt.npotRepeat
			m := f.opaque()
			m.SetHorizontalWrapMode(WrapRepeat)
			m.SetVerticalWrapMode(WrapRepeat)

			s := NewOpaqueTextureMaterialShader()
			s.Initialize(f.prog)
			s.UpdateState(f.state(0), m, nil)

			got := f.tex.Sampling()
			if got.HorizontalWrap != tt.want || got.VerticalWrap != tt.want {
				t.Errorf("texture wrap = %v/%v, want %v", got.HorizontalWrap, got.VerticalWrap, tt.want)
			}
			if m.HorizontalWrapMode() != WrapRepeat || m.VerticalWrapMode() != WrapRepeat {
				t.Error("material wrap modes should not be modified")
			}
		})
	}
}

func TestShaderAppliesSampling(t *testing.T) {
	f := newBinderFixture(64, 64)
	m := f.opaque()
	m.SetFiltering(FilterLinear)
	m.SetMipmapFiltering(MipmapLinear)
	m.SetAnisotropyLevel(Anisotropy8x)

	s := NewOpaqueTextureMaterialShader()
	s.Initialize(f.prog)
	s.UpdateState(f.state(0), m, nil)

	if got := f.tex.Sampling(); got != m.Sampling() {
		t.Errorf("texture sampling = %+v, want %+v", got, m.Sampling())
	}
}

func TestShaderMatrixOnlyWhenDirty(t *testing.T) {
	f := newBinderFixture(64, 64)
	m := f.opaque()
	s := NewOpaqueTextureMaterialShader()
	s.Initialize(f.prog)

	s.UpdateState(f.state(0), m, nil)
	if n := f.prog.sets[UniformMatrix]; n != 0 {
		t.Errorf("matrix uploads = %d, want 0 when not dirty", n)
	}

	s.UpdateState(f.state(DirtyMatrix), m, m)
	if n := f.prog.sets[UniformMatrix]; n != 1 {
		t.Errorf("matrix uploads = %d, want 1 when dirty", n)
	}
	if got, want := f.prog.mat4s[UniformMatrix], mgl32.Translate3D(1, 2, 0); got != want {
		t.Errorf("matrix = %v, want %v", got, want)
	}
}

func TestShaderOpacityOnlyTranslucentAndDirty(t *testing.T) {
	f := newBinderFixture(64, 64)

	opaque := NewOpaqueTextureMaterialShader()
	opaque.Initialize(f.prog)
	opaque.UpdateState(f.state(DirtyOpacity), f.opaque(), nil)
	if n := f.prog.sets[UniformOpacity]; n != 0 {
		t.Errorf("opaque binder opacity uploads = %d, want 0", n)
	}

	translucent := NewTextureMaterialShader()
	translucent.Initialize(f.prog)
	m := f.translucent()
	translucent.UpdateState(f.state(0), m, nil)
	if n := f.prog.sets[UniformOpacity]; n != 0 {
		t.Errorf("opacity uploads = %d, want 0 when not dirty", n)
	}
	translucent.UpdateState(f.state(DirtyOpacity), m, m)
	if n := f.prog.sets[UniformOpacity]; n != 1 {
		t.Errorf("opacity uploads = %d, want 1 when dirty", n)
	}
	if got := f.prog.floats[UniformOpacity]; got != 0.5 {
		t.Errorf("opacity = %v, want 0.5", got)
	}
}

func TestShaderUniformsEveryUpdate(t *testing.T) {
	f := newBinderFixture(64, 64)
	m := f.opaque()
	m.SetSourceScale(mgl32.Vec2{2, 2})
	m.SetMaskScale(mgl32.Vec2{0.5, 0.25})
	m.SetMaskOffset(mgl32.Vec2{0.1, 0.2})

	s := NewOpaqueTextureMaterialShader()
	s.Initialize(f.prog)
	s.UpdateState(f.state(0), m, nil)
	s.UpdateState(f.state(0), m, m)

	for _, name := range []string{UniformSourceScale, UniformMask, UniformMaskScale, UniformMaskOffset} {
		if n := f.prog.sets[name]; n != 2 {
			t.Errorf("%s uploads = %d, want 2", name, n)
		}
	}
	if got := f.prog.ints[UniformMask]; got != maskTextureUnit {
		t.Errorf("mask unit = %d, want %d", got, maskTextureUnit)
	}
	if got := f.prog.vec2s[UniformSourceScale]; got != (mgl32.Vec2{2, 2}) {
		t.Errorf("sourceScale = %v, want [2 2]", got)
	}
	if got := f.prog.vec2s[UniformMaskScale]; got != (mgl32.Vec2{0.5, 0.25}) {
		t.Errorf("maskScale = %v, want [0.5 0.25]", got)
	}
	if got := f.prog.vec2s[UniformMaskOffset]; got != (mgl32.Vec2{0.1, 0.2}) {
		t.Errorf("maskOffset = %v, want [0.1 0.2]", got)
	}
}

func TestShaderBindOrder(t *testing.T) {
	f := newBinderFixture(64, 64)
	s := NewOpaqueTextureMaterialShader()
	s.Initialize(f.prog)

	s.UpdateState(f.state(0), f.opaque(), nil)
	want := []string{"bind photo", "unit 1", "bind mask", "unit 0"}
	if !slices.Equal(f.ctx.log, want) {
		t.Errorf("calls = %v, want %v", f.ctx.log, want)
	}
}

func TestShaderBindVersusUpdate(t *testing.T) {
	f := newBinderFixture(64, 64)
	s := NewOpaqueTextureMaterialShader()
	s.Initialize(f.prog)

	prev := f.opaque()
	next := f.opaque()
	s.UpdateState(f.state(0), next, prev)
	want := []string{"update photo", "unit 1", "update mask", "unit 0"}
	if !slices.Equal(f.ctx.log, want) {
		t.Errorf("same textures: calls = %v, want %v", f.ctx.log, want)
	}

	// New source, same mask: each texture follows its own rule.
	f.ctx.log = nil
	other := newFakeTexture("other", 64, 64)
	other.ctx = f.ctx
	next.SetTexture(other)
	s.UpdateState(f.state(0), next, prev)
	want = []string{"bind other", "unit 1", "update mask", "unit 0"}
	if !slices.Equal(f.ctx.log, want) {
		t.Errorf("new source: calls = %v, want %v", f.ctx.log, want)
	}
}

func TestShaderNilTextureIsNoOp(t *testing.T) {
	f := newBinderFixture(64, 64)
	m := NewOpaqueTextureMaterial()
	s := NewOpaqueTextureMaterialShader()
	s.Initialize(f.prog)
	s.UpdateState(f.state(DirtyMatrix), m, nil)

	if len(f.ctx.log) != 0 {
		t.Errorf("calls = %v, want none", f.ctx.log)
	}
	if len(f.prog.sets) != 0 {
		t.Errorf("uniform uploads = %v, want none", f.prog.sets)
	}
}

func TestShaderNilMaskUnbindsMaskUnit(t *testing.T) {
	f := newBinderFixture(64, 64)
	m := NewOpaqueTextureMaterial()
	m.SetTexture(f.tex)
	s := NewOpaqueTextureMaterialShader()
	s.Initialize(f.prog)
	s.UpdateState(f.state(0), m, nil)

	want := []string{"bind photo", "unbind 1"}
	if !slices.Equal(f.ctx.log, want) {
		t.Errorf("calls = %v, want %v", f.ctx.log, want)
	}
}

func TestShaderCrossTypeUpdateDebugPanics(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	f := newBinderFixture(64, 64)
	s := NewTextureMaterialShader()
	s.Initialize(f.prog)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for mismatched material types in debug mode")
		}
	}()
	s.UpdateState(f.state(0), f.translucent(), f.opaque())
}

func TestShaderNamesAndAttributes(t *testing.T) {
	if got := NewOpaqueTextureMaterialShader().ShaderName(); got != ShaderOpaque {
		t.Errorf("opaque ShaderName() = %q, want %q", got, ShaderOpaque)
	}
	if got := NewTextureMaterialShader().ShaderName(); got != ShaderTranslucent {
		t.Errorf("translucent ShaderName() = %q, want %q", got, ShaderTranslucent)
	}
	want := []string{"position", "texCoord"}
	if got := NewTextureMaterialShader().AttributeNames(); !slices.Equal(got, want) {
		t.Errorf("AttributeNames() = %v, want %v", got, want)
	}
}
