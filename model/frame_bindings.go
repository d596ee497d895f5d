package model

// FrameBindings tracks, per frame in flight, whether the resources bound to a mesh changed since that frame's
// descriptor set was last written. A set may only be rewritten once its frame's fence has been waited on, so a change
// is recorded for every slot and each slot catches up when it comes around again.
type FrameBindings struct {
	stale []bool
}

// NewFrameBindings returns bindings for n frames in flight, all of them stale.
func NewFrameBindings(n int) *FrameBindings {
	fb := &FrameBindings{stale: make([]bool, n)}
	fb.Invalidate()
	return fb
}

func (fb *FrameBindings) Invalidate() {
	for i := range fb.stale {
		fb.stale[i] = true
	}
}

// Consume reports whether slot needs a rewrite and marks it as up to date.
func (fb *FrameBindings) Consume(slot int) bool {
	if slot < 0 || slot >= len(fb.stale) {
		return false
	}
	s := fb.stale[slot]
	fb.stale[slot] = false
	return s
}
