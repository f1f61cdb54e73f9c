package maskfx

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Backend is the graphics API a Renderer draws through.
type Backend interface {
	// Context returns the feature query and texture-unit selector passed to
	// shader binders.
	Context() GraphicsContext
	// LinkProgram builds a program from src with attributes bound to
	// locations 0..n-1 in order.
	LinkProgram(src ShaderSource, attributes []string) (Program, error)
	// UseProgram makes p the program for subsequent draws.
	UseProgram(p Program)
	// DrawGeometry draws g with the current program and bound textures.
	DrawGeometry(g *Geometry)
}

// RenderItem is one node to draw, with the state it inherits from its
// ancestors.
type RenderItem struct {
	Node    *MaskEffectNode
	Matrix  mgl32.Mat4 // node-to-target transform
	Opacity float64    // inherited opacity in [0, 1]
}

// RendererConfig holds optional Renderer settings. The zero value is valid.
type RendererConfig struct {
	// Debug enables debug assertions (see SetDebug) and per-frame stats
	// logging.
	Debug bool
	// Sink, when set, receives the stats of every frame.
	Sink StatsSink
}

// StatsSink receives per-frame counters. Implementations forward them to an
// ECS world, a metrics exporter or a debug overlay.
type StatsSink interface {
	EmitFrameStats(s FrameStats)
}

// FrameStats counts what the last Render call did.
type FrameStats struct {
	Draws           int // geometry draws issued
	StateUpdates    int // Shader.UpdateState calls
	ProgramSwitches int // UseProgram calls
	Batched         int // draws that reused the previous state unchanged
	Skipped         int // items without a node or texture
	Elapsed         time.Duration
}

// linkedProgram pairs a shader binder with the program it was initialized
// with.
type linkedProgram struct {
	shader  Shader
	program Program
	name    string
}

// Renderer walks a list of mask effect nodes in draw order and drives the
// shader binders the way a scene-graph renderer would: one program per
// material type, UpdateState only when the material or the inherited state
// changed, then one draw per node.
type Renderer struct {
	backend  Backend
	debug    bool
	sink     StatsSink
	programs map[*MaterialType]*linkedProgram

	current      *linkedProgram
	lastMaterial Material
	lastMatrix   mgl32.Mat4
	lastOpacity  float32

	stats FrameStats
}

// NewRenderer creates a renderer drawing through backend.
func NewRenderer(backend Backend, cfg RendererConfig) *Renderer {
	r := &Renderer{
		backend:  backend,
		programs: make(map[*MaterialType]*linkedProgram),
		sink:     cfg.Sink,
	}
	r.SetDebugMode(cfg.Debug)
	return r
}

// SetDebugMode enables or disables debug mode. When enabled, material type
// mismatches panic and per-frame stats are logged at debug level.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
	globalDebug = enabled
}

// SetStatsSink replaces the frame stats sink. Pass nil to stop emitting.
func (r *Renderer) SetStatsSink(s StatsSink) { r.sink = s }

// Stats returns the counters of the last Render call.
func (r *Renderer) Stats() FrameStats { return r.stats }

// Render draws items in order. Node dirty flags are cleared after each draw.
// It returns an error only when a program fails to link; items before the
// failing one have been drawn.
func (r *Renderer) Render(items []RenderItem) error {
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	r.stats = FrameStats{}
	// The backend may have drawn with other programs between frames.
	r.current = nil
	r.lastMaterial = nil

	for i := range items {
		if err := r.draw(&items[i]); err != nil {
			return err
		}
	}

	if r.debug {
		r.stats.Elapsed = time.Since(t0)
		r.debugLog(r.stats)
	}
	if r.sink != nil {
		r.sink.EmitFrameStats(r.stats)
	}
	return nil
}

func (r *Renderer) draw(item *RenderItem) error {
	n := item.Node
	if n == nil || n.Texture() == nil {
		r.stats.Skipped++
		return nil
	}

	mat := n.ActiveMaterial(item.Opacity)
	lp, err := r.programFor(mat)
	if err != nil {
		return err
	}

	state := RenderState{
		Matrix:  item.Matrix,
		Opacity: float32(item.Opacity),
		Context: r.backend.Context(),
	}
	old := r.lastMaterial
	if lp != r.current {
		r.backend.UseProgram(lp.program)
		r.current = lp
		r.stats.ProgramSwitches++
		state.Dirty = DirtyMatrix | DirtyOpacity
		old = nil
	} else {
		if state.Matrix != r.lastMatrix {
			state.Dirty |= DirtyMatrix
		}
		if state.Opacity != r.lastOpacity {
			state.Dirty |= DirtyOpacity
		}
	}

	if old == nil || state.Dirty != 0 || mat.Compare(old) != 0 {
		lp.shader.UpdateState(&state, mat, old)
		r.stats.StateUpdates++
	} else {
		r.stats.Batched++
	}
	r.lastMaterial = mat
	r.lastMatrix = state.Matrix
	r.lastOpacity = state.Opacity

	r.backend.DrawGeometry(n.Geometry())
	r.stats.Draws++
	n.ClearDirty()
	return nil
}

// programFor returns the program for mat's type, creating the shader binder
// and linking the program on first use.
func (r *Renderer) programFor(mat Material) (*linkedProgram, error) {
	typ := mat.Type()
	if lp, ok := r.programs[typ]; ok {
		return lp, nil
	}
	shader := mat.CreateShader()
	name := shader.ShaderName()
	src, err := ShaderSourceFor(name)
	if err != nil {
		return nil, err
	}
	p, err := r.backend.LinkProgram(src, shader.AttributeNames())
	if err != nil {
		return nil, fmt.Errorf("maskfx: link %s: %w", name, err)
	}
	shader.Initialize(p)
	lp := &linkedProgram{shader: shader, program: p, name: name}
	r.programs[typ] = lp
	Logger().Debug("maskfx: linked program", "shader", name, "type", typ)
	return lp, nil
}

func (r *Renderer) debugLog(s FrameStats) {
	Logger().Debug("maskfx: frame",
		"draws", s.Draws,
		"updates", s.StateUpdates,
		"programs", s.ProgramSwitches,
		"batched", s.Batched,
		"skipped", s.Skipped,
		"elapsed", s.Elapsed,
	)
}
