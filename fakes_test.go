package maskfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeContext records texture unit switches and bind calls in order.
type fakeContext struct {
	npotRepeat bool
	unit       int
	log        []string
}

func (c *fakeContext) HasFeature(f Feature) bool {
	return f == FeatureNPOTTextureRepeat && c.npotRepeat
}

func (c *fakeContext) ActiveTexture(unit int) {
	c.unit = unit
	c.log = append(c.log, fmt.Sprintf("unit %d", unit))
}

func (c *fakeContext) UnbindTexture(unit int) {
	c.log = append(c.log, fmt.Sprintf("unbind %d", unit))
}

// fakeTexture counts Bind, UpdateBindOptions and Dispose calls.
type fakeTexture struct {
	BaseTexture
	name     string
	ctx      *fakeContext
	binds    int
	rebinds  int
	disposes int
}

func newFakeTexture(name string, w, h int) *fakeTexture {
	return &fakeTexture{name: name, BaseTexture: NewBaseTexture(NewTextureID(), w, h)}
}

func newFakeAtlasTexture(name string, pageID TextureID, pageW, pageH int, sub Rect) *fakeTexture {
	return &fakeTexture{name: name, BaseTexture: NewAtlasBaseTexture(pageID, pageW, pageH, sub)}
}

func (t *fakeTexture) Bind() {
	t.binds++
	if t.ctx != nil {
		t.ctx.log = append(t.ctx.log, "bind "+t.name)
	}
}

func (t *fakeTexture) UpdateBindOptions() {
	t.rebinds++
	if t.ctx != nil {
		t.ctx.log = append(t.ctx.log, "update "+t.name)
	}
}

func (t *fakeTexture) Dispose() {
	t.disposes++
	t.BaseTexture.Dispose()
}

// fakeProgram resolves a fixed set of uniform names and records every upload.
type fakeProgram struct {
	locations map[string]int
	names     map[int]string
	sets      map[string]int
	ints      map[string]int32
	floats    map[string]float32
	vec2s     map[string]mgl32.Vec2
	mat4s     map[string]mgl32.Mat4
}

func newFakeProgram(uniforms ...string) *fakeProgram {
	p := &fakeProgram{
		locations: make(map[string]int),
		names:     make(map[int]string),
		sets:      make(map[string]int),
		ints:      make(map[string]int32),
		floats:    make(map[string]float32),
		vec2s:     make(map[string]mgl32.Vec2),
		mat4s:     make(map[string]mgl32.Mat4),
	}
	for i, u := range uniforms {
		p.locations[u] = i
		p.names[i] = u
	}
	return p
}

// newFakeProgramFor returns a program exposing every uniform of the named
// variant.
func newFakeProgramFor(shader string) *fakeProgram {
	return newFakeProgram(expectedUniforms(shader)...)
}

func (p *fakeProgram) UniformLocation(name string) int {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (p *fakeProgram) record(loc int) (string, bool) {
	name, ok := p.names[loc]
	if ok {
		p.sets[name]++
	}
	return name, ok
}

func (p *fakeProgram) SetUniformInt(loc int, v int32) {
	if name, ok := p.record(loc); ok {
		p.ints[name] = v
	}
}

func (p *fakeProgram) SetUniformFloat(loc int, v float32) {
	if name, ok := p.record(loc); ok {
		p.floats[name] = v
	}
}

func (p *fakeProgram) SetUniformVec2(loc int, v mgl32.Vec2) {
	if name, ok := p.record(loc); ok {
		p.vec2s[name] = v
	}
}

func (p *fakeProgram) SetUniformMat4(loc int, v mgl32.Mat4) {
	if name, ok := p.record(loc); ok {
		p.mat4s[name] = v
	}
}

// fakeBackend links fake programs and counts draws.
type fakeBackend struct {
	ctx      *fakeContext
	programs map[string]*fakeProgram
	links    int
	current  Program
	draws    int
	linkErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		ctx:      &fakeContext{npotRepeat: true},
		programs: make(map[string]*fakeProgram),
	}
}

func (b *fakeBackend) Context() GraphicsContext { return b.ctx }

func (b *fakeBackend) LinkProgram(src ShaderSource, attributes []string) (Program, error) {
	if b.linkErr != nil {
		return nil, b.linkErr
	}
	b.links++
	p := newFakeProgramFor(src.Name)
	b.programs[src.Name] = p
	return p, nil
}

func (b *fakeBackend) UseProgram(p Program) { b.current = p }

func (b *fakeBackend) DrawGeometry(*Geometry) { b.draws++ }
