package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap_FindsNearestTargetWithinThreshold(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 5, 0, 2) // left edge at 5s => 50px at pps=10

	result, ok := e.Snap([]float64{54}, SnapOptions{ThresholdPx: 10})

	assert.True(t, ok)
	assert.Equal(t, 50.0, result.TargetPx)
	assert.Equal(t, -4.0, result.Offset, "offset is target - candidate")
}

func TestSnap_NoMatchOutsideThreshold(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 5, 0, 2)

	_, ok := e.Snap([]float64{1000}, SnapOptions{ThresholdPx: 5})

	assert.False(t, ok)
}

func TestSnap_IgnoresExcludedIDs(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 5, 0, 2)

	_, ok := e.Snap([]float64{50}, SnapOptions{ThresholdPx: 10, IgnoreIDs: map[string]bool{"c1": true}})

	// playhead (0) and timeline-end (duration=60 => 600px) remain, neither within threshold of 50px.
	assert.False(t, ok)
}
