package maskfx

import (
	"fmt"
	"slices"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
)

// CompiledShader is a WGSL program variant compiled to SPIR-V, together with
// the interface names reflected from its IR.
type CompiledShader struct {
	Name string
	// SPIRV is the little-endian SPIR-V binary.
	SPIRV []byte
	// Attributes are the vertex entry point's location-bound inputs, ordered
	// by location.
	Attributes []string
	// Uniforms are the members of the uniform-space struct followed by the
	// names of texture bindings.
	Uniforms []string
}

// Words returns the SPIR-V binary as 32-bit words.
func (c *CompiledShader) Words() []uint32 {
	words := make([]uint32, len(c.SPIRV)/4)
	for i := range words {
		words[i] = uint32(c.SPIRV[i*4]) |
			uint32(c.SPIRV[i*4+1])<<8 |
			uint32(c.SPIRV[i*4+2])<<16 |
			uint32(c.SPIRV[i*4+3])<<24
	}
	return words
}

// CompileShader compiles src's WGSL to SPIR-V and reflects its interface
// from the lowered module.
func CompileShader(src ShaderSource) (*CompiledShader, error) {
	module, err := lowerShader(src)
	if err != nil {
		return nil, err
	}
	errs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("maskfx: compile %s: validate: %w", src.Name, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("maskfx: compile %s: validate: %w", src.Name, &errs[0])
	}
	code, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, fmt.Errorf("maskfx: compile %s: %w", src.Name, err)
	}
	c := &CompiledShader{
		Name:       src.Name,
		SPIRV:      code,
		Attributes: reflectAttributes(module),
		Uniforms:   reflectUniforms(module),
	}
	Logger().Debug("maskfx: compiled shader", "name", src.Name, "bytes", len(code))
	return c, nil
}

// lowerShader parses and lowers src's WGSL to naga IR.
func lowerShader(src ShaderSource) (*ir.Module, error) {
	ast, err := naga.Parse(src.WGSL)
	if err != nil {
		return nil, fmt.Errorf("maskfx: compile %s: %w", src.Name, err)
	}
	module, err := naga.LowerWithSource(ast, src.WGSL)
	if err != nil {
		return nil, fmt.Errorf("maskfx: compile %s: lower: %w", src.Name, err)
	}
	return module, nil
}

// CheckContract reports an error when the compiled program does not expose
// the attribute and uniform names the binders use.
func (c *CompiledShader) CheckContract() error {
	want := []string{AttributePosition, AttributeTexCoord}
	if !slices.Equal(c.Attributes, want) {
		return fmt.Errorf("maskfx: %s: attributes %v, want %v", c.Name, c.Attributes, want)
	}
	for _, u := range expectedUniforms(c.Name) {
		if !slices.Contains(c.Uniforms, u) {
			return fmt.Errorf("maskfx: %s: missing uniform %q", c.Name, u)
		}
	}
	return nil
}

// reflectAttributes returns the location-bound arguments of the first vertex
// entry point, indexed by location.
func reflectAttributes(m *ir.Module) []string {
	for _, ep := range m.EntryPoints {
		if ep.Stage != ir.StageVertex {
			continue
		}
		var byLoc []string
		for _, arg := range ep.Function.Arguments {
			loc, ok := locationOf(arg.Binding)
			if !ok {
				continue
			}
			for uint32(len(byLoc)) <= loc {
				byLoc = append(byLoc, "")
			}
			byLoc[loc] = arg.Name
		}
		return byLoc
	}
	return nil
}

func locationOf(b *ir.Binding) (uint32, bool) {
	if b == nil {
		return 0, false
	}
	switch lb := (*b).(type) {
	case ir.LocationBinding:
		return lb.Location, true
	case *ir.LocationBinding:
		return lb.Location, true
	}
	return 0, false
}

// reflectUniforms returns the member names of the struct bound in the
// uniform address space, then the name of each texture binding.
func reflectUniforms(m *ir.Module) []string {
	var names, textures []string
	for _, g := range m.GlobalVariables {
		inner := m.Types[g.Type].Inner
		switch g.Space {
		case ir.SpaceUniform:
			names = append(names, structMembers(inner)...)
		case ir.SpaceHandle:
			switch inner.(type) {
			case ir.ImageType, *ir.ImageType:
				textures = append(textures, g.Name)
			}
		}
	}
	return append(names, textures...)
}

func structMembers(inner ir.TypeInner) []string {
	var members []ir.StructMember
	switch st := inner.(type) {
	case ir.StructType:
		members = st.Members
	case *ir.StructType:
		members = st.Members
	}
	names := make([]string, 0, len(members))
	for _, mem := range members {
		names = append(names, mem.Name)
	}
	return names
}
