package physics

import (
	"github.com/lixenwraith/vi-runner/core"
	"github.com/lixenwraith/vi-runner/vmath"
)

// FootprintInset trims each edge of a footprint before the broad phase
const FootprintInset = 1

// Collider is anything with a footprint and local hitboxes
// Implementations must tolerate a nil receiver by returning an empty footprint
type Collider interface {
	Bounds() core.Box
	Hitboxes() []core.Box
}

// Probe counts detector phases, used to observe that the narrow phase only runs after a broad hit
type Probe struct {
	BroadPhase  int
	NarrowPhase int
}

// Detector performs two-phase AABB collision between two colliders
type Detector struct {
	Probe *Probe
}

// Check reports whether a and b collide
// Broad phase compares the inset footprints; narrow phase compares every pair
// of hitboxes translated by their owner's inset origin
func (d *Detector) Check(a, b Collider) bool {
	if a == nil || b == nil {
		return false
	}

	outerA := vmath.Inset(a.Bounds(), FootprintInset)
	outerB := vmath.Inset(b.Bounds(), FootprintInset)
	if outerA.Empty() || outerB.Empty() {
		return false
	}

	if d.Probe != nil {
		d.Probe.BroadPhase++
	}
	if !vmath.Overlap(outerA, outerB) {
		return false
	}

	if d.Probe != nil {
		d.Probe.NarrowPhase++
	}
	for _, ha := range a.Hitboxes() {
		if ha.Empty() {
			continue
		}
		boxA := vmath.Translate(ha, outerA)
		for _, hb := range b.Hitboxes() {
			if hb.Empty() {
				continue
			}
			if vmath.Overlap(boxA, vmath.Translate(hb, outerB)) {
				return true
			}
		}
	}
	return false
}
