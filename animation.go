package maskfx

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates one vec2 property of a MaskEffectNode. Create one via
// TweenMaskOffset, TweenMaskScale or TweenSourceScale and call Update(dt)
// each frame. Values are written through the node's setters, so the node is
// only marked dirty when a value actually changes. If the node is disposed,
// the group stops immediately.
//
// There is no global animation manager: users call Update themselves.
type TweenGroup struct {
	x, y   *gween.Tween
	apply  func(mgl32.Vec2)
	target *MaskEffectNode
	Done   bool
}

// Update advances the tweens by dt seconds and applies the value.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.Done = true
		return
	}
	x, xDone := g.x.Update(dt)
	y, yDone := g.y.Update(dt)
	g.apply(mgl32.Vec2{x, y})
	g.Done = xDone && yDone
}

func newTweenGroup(node *MaskEffectNode, from, to mgl32.Vec2, duration float32, fn ease.TweenFunc, apply func(mgl32.Vec2)) *TweenGroup {
	return &TweenGroup{
		x:      gween.New(from[0], to[0], duration, fn),
		y:      gween.New(from[1], to[1], duration, fn),
		apply:  apply,
		target: node,
	}
}

// TweenMaskOffset animates the node's mask offset to to.
func TweenMaskOffset(node *MaskEffectNode, to mgl32.Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, node.MaskOffset(), to, duration, fn, node.SetMaskOffset)
}

// TweenMaskScale animates the node's mask scale to to.
func TweenMaskScale(node *MaskEffectNode, to mgl32.Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, node.MaskScale(), to, duration, fn, node.SetMaskScale)
}

// TweenSourceScale animates the node's source scale to to.
func TweenSourceScale(node *MaskEffectNode, to mgl32.Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, node.SourceScale(), to, duration, fn, node.SetSourceScale)
}
