package logic

// SentinelDetector turns "last row visible" samples into discrete signals.
// It fires once per transition from hidden to visible, so a sentinel that
// stays on screen does not request page after page.
type SentinelDetector struct {
	visible bool
}

// Observe records the latest visibility and reports whether it just became
// visible.
func (d *SentinelDetector) Observe(visible bool) bool {
	fired := visible && !d.visible
	d.visible = visible
	return fired
}

// Reset forgets the last sample. The next visible sample fires again.
func (d *SentinelDetector) Reset() {
	d.visible = false
}
