package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginClipDrag_RefusedInRazorMode(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 5, 0, 2)
	e.SetRazorMode(true)

	err := e.BeginClipDrag("c1", "tx1")
	assert.ErrorIs(t, err, ErrRazorModeActive, "drag should be refused while razor mode is active")
}

func TestBeginClipDrag_RefusedWhileGestureInProgress(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 5, 0, 2)
	c.Selected = true // a move gesture starts over the current selection
	require.NoError(t, e.BeginClipDrag("c1", "tx1"))

	err := e.BeginClipDrag("c1", "tx2")
	assert.ErrorIs(t, err, ErrGestureInProgress, "a second gesture should be refused while one is active")
}

func TestResizeLeftHandle_NormalClip_PreservesDuration(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 5, 2, 7)

	require.NoError(t, e.BeginClipResize("c1", HandleLeft, "tx1"))
	require.NoError(t, e.ResizeClip(1.5))

	assert.Equal(t, 3.5, c.Position, "position should shift left by the drag delta")
	assert.Equal(t, 0.5, c.Start, "start should shift left by the drag delta")
	assert.Equal(t, 5.5, c.End, "end should shift left by the same delta, preserving duration")
	assert.Equal(t, 5.0, c.Duration(), "trimming the left handle must not change duration")
}

func TestResizeLeftHandle_NormalClip_ClampsAtZero(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 1, 1, 4)

	require.NoError(t, e.BeginClipResize("c1", HandleLeft, "tx1"))
	// drag 3 seconds left, but start/position only have 1 second of room
	require.NoError(t, e.ResizeClip(3))

	assert.Equal(t, 0.0, c.Position, "position should clamp at 0")
	assert.Equal(t, 0.0, c.Start, "start should clamp at 0")
	assert.Equal(t, 3.0, c.End, "end should shrink by the amount start was actually able to move")
}

func TestResizeLeftHandle_SingleImageClip_EndUnchanged(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 5, 2, 7)
	c.Reader.HasSingleImage = true

	require.NoError(t, e.BeginClipResize("c1", HandleLeft, "tx1"))
	require.NoError(t, e.ResizeClip(1.5))

	assert.Equal(t, 0.5, c.Start, "start should shift left by the drag delta")
	assert.Equal(t, 7.0, c.End, "end must stay at its original value for a single-image clip")
	assert.Equal(t, 6.5, c.Duration(), "duration grows because end did not move")
}

func TestResizeRightHandle_CappedByReaderDuration(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 5)
	c.Reader.Duration = 6

	require.NoError(t, e.BeginClipResize("c1", HandleRight, "tx1"))
	require.NoError(t, e.ResizeClip(10))

	assert.Equal(t, 6.0, c.End, "right handle must not extend past the reader's natural duration")
}

func TestResizeRightHandle_UnlimitedInTimingMode(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 5)
	c.Reader.Duration = 6
	e.SetTimingMode(true)

	require.NoError(t, e.BeginClipResize("c1", HandleRight, "tx1"))
	require.NoError(t, e.ResizeClip(10))

	assert.Equal(t, 15.0, c.End, "timing mode lifts the reader-duration cap")
}

func TestStopClipResize_Trim_QuantisesToFrameGrid(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 5)

	require.NoError(t, e.BeginClipResize("c1", HandleRight, "tx1"))
	require.NoError(t, e.ResizeClip(0.017)) // not an exact multiple of 1/30s
	require.NoError(t, e.StopClipResize())

	assert.InDelta(t, 5.017, c.End, 1.0/60, "end should land on the nearest frame boundary")
	assert.Nil(t, c.UI.KeyframePreview, "preview should be cleared once the gesture commits")
}
