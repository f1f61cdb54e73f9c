// Package ecs provides ECS adapters for maskfx.
//
// The primary adapter is [NewDonburiSink], which publishes the per-frame
// counters of a [maskfx.Renderer] into a [Donburi] world as typed events.
// Subscribe to [FrameStatsEventType] in your ECS systems to receive them, or
// read the running summary with [LatestRendererStats].
//
// Usage:
//
//	r := maskfx.NewRenderer(backend, maskfx.RendererConfig{
//	    Sink: ecs.NewDonburiSink(world),
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
