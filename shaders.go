package maskfx

import (
	_ "embed"
	"fmt"
)

// Logical program names. Hosts look up sources by these names.
const (
	ShaderOpaque      = "maskeffect-opaque"
	ShaderTranslucent = "maskeffect"
)

// Vertex attribute names, in binding order.
const (
	AttributePosition = "position"
	AttributeTexCoord = "texCoord"
)

// Uniform names shared by both programs. UniformOpacity only exists in the
// translucent program.
const (
	UniformMatrix      = "matrix"
	UniformOpacity     = "opacity"
	UniformSourceScale = "sourceScale"
	UniformMask        = "mask"
	UniformMaskScale   = "maskScale"
	UniformMaskOffset  = "maskOffset"
)

//go:embed shaders/maskeffect.wgsl
var maskEffectWGSL string

//go:embed shaders/maskeffect-opaque.wgsl
var maskEffectOpaqueWGSL string

//go:embed shaders/maskeffect.kage
var maskEffectKage []byte

//go:embed shaders/maskeffect-opaque.kage
var maskEffectOpaqueKage []byte

// ShaderSource holds the sources of one program variant. WGSL carries both
// entry points (vs_main and fs_main); Kage is the Ebitengine fragment shader.
type ShaderSource struct {
	Name string
	WGSL string
	Kage []byte
}

// ShaderNames lists the program variants in a stable order.
func ShaderNames() []string {
	return []string{ShaderOpaque, ShaderTranslucent}
}

// ShaderSourceFor returns the embedded sources for a logical program name.
func ShaderSourceFor(name string) (ShaderSource, error) {
	switch name {
	case ShaderOpaque:
		return ShaderSource{Name: name, WGSL: maskEffectOpaqueWGSL, Kage: maskEffectOpaqueKage}, nil
	case ShaderTranslucent:
		return ShaderSource{Name: name, WGSL: maskEffectWGSL, Kage: maskEffectKage}, nil
	}
	return ShaderSource{}, fmt.Errorf("maskfx: unknown shader %q", name)
}

// expectedUniforms returns the uniform names a program variant must expose.
func expectedUniforms(name string) []string {
	u := []string{UniformMatrix, UniformSourceScale, UniformMask, UniformMaskScale, UniformMaskOffset}
	if name == ShaderTranslucent {
		u = append(u, UniformOpacity)
	}
	return u
}
