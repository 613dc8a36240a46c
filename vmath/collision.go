package vmath

import "github.com/lixenwraith/vi-runner/core"

// Overlap reports whether two boxes intersect using the strict AABB rule
// Touching edges and boxes without area never overlap
func Overlap(a, b core.Box) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return a.X < b.Right() &&
		a.Right() > b.X &&
		a.Y < b.Bottom() &&
		a.Bottom() > b.Y
}

// Translate offsets a local box by the origin of anchor, keeping its size
func Translate(box, anchor core.Box) core.Box {
	return core.Box{
		X:      box.X + anchor.X,
		Y:      box.Y + anchor.Y,
		Width:  box.Width,
		Height: box.Height,
	}
}

// Inset shrinks a box by n pixels on every edge
func Inset(box core.Box, n int) core.Box {
	return core.Box{
		X:      box.X + n,
		Y:      box.Y + n,
		Width:  box.Width - 2*n,
		Height: box.Height - 2*n,
	}
}
