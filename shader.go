package maskfx

import "github.com/go-gl/mathgl/mgl32"

// maskTextureUnit is the texture unit the mask is bound to. The source
// texture always uses unit 0.
const maskTextureUnit = 1

// GraphicsContext is the slice of the graphics API the shader binders need.
type GraphicsContext interface {
	HasFeature(f Feature) bool
	// ActiveTexture selects the texture unit that subsequent Bind and
	// UpdateBindOptions calls apply to.
	ActiveTexture(unit int)
	// UnbindTexture leaves unit with no texture.
	UnbindTexture(unit int)
}

// Program is a linked shader program. Locations are resolved by name once the
// program is linked; -1 means the uniform does not exist, and setters ignore
// it.
type Program interface {
	UniformLocation(name string) int
	SetUniformInt(location int, v int32)
	SetUniformFloat(location int, v float32)
	SetUniformVec2(location int, v mgl32.Vec2)
	SetUniformMat4(location int, v mgl32.Mat4)
}

// RenderDirty flags the parts of the render state that changed since the
// previous UpdateState call on the same program.
type RenderDirty uint8

const (
	DirtyMatrix  RenderDirty = 1 << iota // combined matrix changed
	DirtyOpacity                         // inherited opacity changed
)

// RenderState is the per-draw state handed to Shader.UpdateState by the host.
type RenderState struct {
	Dirty   RenderDirty
	Matrix  mgl32.Mat4 // combined node-to-target transform
	Opacity float32    // inherited opacity in [0, 1]
	Context GraphicsContext
}

// IsMatrixDirty reports whether the combined matrix must be re-uploaded.
func (s *RenderState) IsMatrixDirty() bool { return s.Dirty&DirtyMatrix != 0 }

// IsOpacityDirty reports whether the opacity must be re-uploaded.
func (s *RenderState) IsOpacityDirty() bool { return s.Dirty&DirtyOpacity != 0 }

// Shader binds a material's state to a linked program before a draw.
//
// The host calls Initialize once after linking the program built from
// ShaderName's sources with AttributeNames bound in order, then UpdateState
// once per distinct material. oldMaterial is the material of the previous
// draw with this program, or nil after a program switch; when non-nil it has
// the same Type as newMaterial.
type Shader interface {
	ShaderName() string
	AttributeNames() []string
	Initialize(p Program)
	UpdateState(state *RenderState, newMaterial, oldMaterial Material)
}

var maskEffectAttributes = []string{AttributePosition, AttributeTexCoord}

// OpaqueTextureMaterialShader binds an OpaqueTextureMaterial: the source
// texture on unit 0, the mask on unit 1, and the scale/offset uniforms.
type OpaqueTextureMaterialShader struct {
	program  Program
	matrixID int
}

// NewOpaqueTextureMaterialShader returns an uninitialized binder.
func NewOpaqueTextureMaterialShader() *OpaqueTextureMaterialShader {
	return &OpaqueTextureMaterialShader{matrixID: -1}
}

// ShaderName returns the logical name of the program sources.
func (s *OpaqueTextureMaterialShader) ShaderName() string { return ShaderOpaque }

// AttributeNames returns the vertex attribute names in binding order.
func (s *OpaqueTextureMaterialShader) AttributeNames() []string { return maskEffectAttributes }

// Initialize records the program and caches the matrix uniform location.
func (s *OpaqueTextureMaterialShader) Initialize(p Program) {
	s.program = p
	s.matrixID = p.UniformLocation(UniformMatrix)
}

// Program returns the program passed to Initialize.
func (s *OpaqueTextureMaterialShader) Program() Program { return s.program }

// UpdateState pushes newMaterial's textures and uniforms.
func (s *OpaqueTextureMaterialShader) UpdateState(state *RenderState, newMaterial, oldMaterial Material) {
	if globalDebug && oldMaterial != nil {
		debugCheckSameType(newMaterial, oldMaterial, "UpdateState")
	}
	s.updateState(state, newMaterial, oldMaterial)
}

func (s *OpaqueTextureMaterialShader) updateState(state *RenderState, newMaterial, oldMaterial Material) {
	newTx := newMaterial.(textureMaterialState).state()

	t := newTx.Texture()
	if t == nil {
		return
	}

	// TODO: cache the last applied Sampling per texture ID and skip
	// SetSampling when it is unchanged.
	sampling := newTx.Sampling()
	if !state.Context.HasFeature(FeatureNPOTTextureRepeat) && isNPOT(t) {
		if sampling.HorizontalWrap != WrapClampToEdge || sampling.VerticalWrap != WrapClampToEdge {
			w, h := t.TextureSize()
			Logger().Debug("maskfx: NPOT texture forced to clamp-to-edge",
				"texture", t.TextureID(), "width", w, "height", h)
		}
		sampling.HorizontalWrap = WrapClampToEdge
		sampling.VerticalWrap = WrapClampToEdge
	}
	t.SetSampling(sampling)

	var oldTx *OpaqueTextureMaterial
	if oldMaterial != nil {
		oldTx = oldMaterial.(textureMaterialState).state()
	}

	if oldTx == nil || !sameTextureID(oldTx.Texture(), t) {
		t.Bind()
	} else {
		t.UpdateBindOptions()
	}

	if mask := newTx.MaskTexture(); mask != nil {
		state.Context.ActiveTexture(maskTextureUnit)
		if oldTx == nil || !sameTextureID(oldTx.MaskTexture(), mask) {
			mask.Bind()
		} else {
			mask.UpdateBindOptions()
		}
		state.Context.ActiveTexture(0)
	} else {
		// A mask left bound by a previous draw must not leak into this one.
		state.Context.UnbindTexture(maskTextureUnit)
	}

	p := s.program
	p.SetUniformVec2(p.UniformLocation(UniformSourceScale), newTx.SourceScale())
	p.SetUniformInt(p.UniformLocation(UniformMask), maskTextureUnit)
	p.SetUniformVec2(p.UniformLocation(UniformMaskScale), newTx.MaskScale())
	p.SetUniformVec2(p.UniformLocation(UniformMaskOffset), newTx.MaskOffset())

	if state.IsMatrixDirty() {
		p.SetUniformMat4(s.matrixID, state.Matrix)
	}
}

// TextureMaterialShader binds a TextureMaterial. It uploads the inherited
// opacity when dirty and otherwise behaves like OpaqueTextureMaterialShader.
type TextureMaterialShader struct {
	OpaqueTextureMaterialShader
	opacityID int
}

// NewTextureMaterialShader returns an uninitialized binder.
func NewTextureMaterialShader() *TextureMaterialShader {
	return &TextureMaterialShader{
		OpaqueTextureMaterialShader: OpaqueTextureMaterialShader{matrixID: -1},
		opacityID:                   -1,
	}
}

// ShaderName returns the logical name of the program sources.
func (s *TextureMaterialShader) ShaderName() string { return ShaderTranslucent }

// Initialize caches the matrix and opacity uniform locations.
func (s *TextureMaterialShader) Initialize(p Program) {
	s.OpaqueTextureMaterialShader.Initialize(p)
	s.opacityID = p.UniformLocation(UniformOpacity)
}

// UpdateState uploads the opacity if dirty, then the opaque state.
func (s *TextureMaterialShader) UpdateState(state *RenderState, newMaterial, oldMaterial Material) {
	if globalDebug && oldMaterial != nil {
		debugCheckSameType(newMaterial, oldMaterial, "UpdateState")
	}
	if state.IsOpacityDirty() {
		s.program.SetUniformFloat(s.opacityID, state.Opacity)
	}
	s.updateState(state, newMaterial, oldMaterial)
}
