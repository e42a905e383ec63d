package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelToTimeAndBack(t *testing.T) {
	assert.Equal(t, 5.0, PixelToTime(50, 10))
	assert.Equal(t, 50.0, TimeToPixel(5, 10))
	assert.Equal(t, 0.0, PixelToTime(50, 0), "zero pixelsPerSecond should not divide by zero")
}

func TestSnapToFPSGridTime_Idempotent(t *testing.T) {
	snapped := SnapToFPSGridTime(1.603, 30, 1)
	assert.Equal(t, snapped, SnapToFPSGridTime(snapped, 30, 1))
}

func TestSnapToFPSGridTime_RoundsToNearestFrame(t *testing.T) {
	assert.InDelta(t, 1.6, SnapToFPSGridTime(1.61, 30, 1), 1e-9)
}

func TestClampCanvasWidth(t *testing.T) {
	assert.Equal(t, float64(MaxCanvasWidthPx), ClampCanvasWidth(99999))
	assert.Equal(t, 0.0, ClampCanvasWidth(-5))
	assert.Equal(t, 100.0, ClampCanvasWidth(100))
}

func TestToNumber_FallsBackOnNonFinite(t *testing.T) {
	assert.Equal(t, 7.0, ToNumber(7, 0))
	assert.Equal(t, 0.0, ToNumber(math.NaN(), 0))
}
