// Package maskfx draws a texture clipped by the alpha channel of a second
// "mask" texture, as a retained scene-graph node for [Ebitengine] and other
// GPU hosts.
//
// # Node
//
// A [MaskEffectNode] owns a textured quad and two materials: an opaque one
// used when the inherited opacity is 1 and a translucent one otherwise.
// Setters are no-ops when the value is unchanged and otherwise record
// [DirtyGeometry] or [DirtyMaterial] for the host to consume:
//
//	node := maskfx.NewMaskEffectNode("portrait")
//	node.SetTexture(photo)
//	node.SetMaskTexture(vignette)
//	node.SetRect(maskfx.Rect{Width: 256, Height: 256})
//	node.SetMaskOffset(mgl32.Vec2{0.25, 0})
//
// # Materials and binders
//
// Each material type has a process-wide [MaterialType] token and creates a
// [Shader] binder that uploads its state to a linked [Program]. Distinct
// material instances never compare equal, so hosts never batch across them.
//
// # Hosts
//
// [Renderer] drives the binders for a list of nodes through a [Backend].
// [EbitenBackend] is a ready-made backend that draws with Kage shaders:
//
//	backend := maskfx.NewEbitenBackend(screen, maskfx.EbitenOptions{})
//	r := maskfx.NewRenderer(backend, maskfx.RendererConfig{})
//	r.Render([]maskfx.RenderItem{{Node: node, Matrix: mgl32.Ident4(), Opacity: 1}})
//
// The WGSL sources of both programs are embedded as well; [CompileShader]
// turns them into SPIR-V with [naga] for wgpu-based hosts.
//
// maskfx is single-threaded: nodes, materials and backends must only be used
// from the render goroutine. [SetLogger] is the exception.
//
// [Ebitengine]: https://ebitengine.org
// [naga]: https://github.com/gogpu/naga
package maskfx
