package ecs

import (
	"github.com/phanxgames/maskfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameStatsEventType is the Donburi event type for renderer frame stats.
var FrameStatsEventType = events.NewEventType[maskfx.FrameStats]()

// RendererStats is the world-scoped summary a sink keeps up to date.
type RendererStats struct {
	Frames    int               // frames observed
	Last      maskfx.FrameStats // most recent frame
	PeakDraws int               // highest Draws of any frame
}

// RendererStatsComponent holds the single RendererStats entity of a world.
var RendererStatsComponent = donburi.NewComponentType[RendererStats]()

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
	ok     bool
}

// NewDonburiSink creates a StatsSink backed by a Donburi world. Each frame
// updates the world's RendererStats entity (created on first use) and
// publishes the frame to FrameStatsEventType, which systems consume with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) maskfx.StatsSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitFrameStats(stats maskfx.FrameStats) {
	entry := s.statsEntry()
	rs := RendererStatsComponent.Get(entry)
	rs.Frames++
	rs.Last = stats
	rs.PeakDraws = max(rs.PeakDraws, stats.Draws)

	FrameStatsEventType.Publish(s.world, stats)
}

// statsEntry returns the RendererStats entry, reusing one another sink
// already created in the same world.
func (s *donburiSink) statsEntry() *donburi.Entry {
	if s.ok && s.world.Valid(s.entity) {
		return s.world.Entry(s.entity)
	}
	if entry, found := RendererStatsComponent.First(s.world); found {
		s.entity, s.ok = entry.Entity(), true
		return entry
	}
	s.entity, s.ok = s.world.Create(RendererStatsComponent), true
	return s.world.Entry(s.entity)
}

// LatestRendererStats returns the world's RendererStats, or false when no
// frame has been emitted into it yet.
func LatestRendererStats(world donburi.World) (RendererStats, bool) {
	entry, ok := RendererStatsComponent.First(world)
	if !ok {
		return RendererStats{}, false
	}
	return *RendererStatsComponent.Get(entry), true
}
