package engine

import (
	"fmt"
	"math"
)

// MaxCanvasWidthPx is the pixel width clamp applied to rendered canvases to
// avoid platform rendering limits (spec §4.1).
const MaxCanvasWidthPx = 32767

// PixelToTime converts a pixel x-position to seconds given pixelsPerSecond.
func PixelToTime(px, pixelsPerSecond float64) float64 {
	if pixelsPerSecond == 0 {
		return 0
	}
	return px / pixelsPerSecond
}

// TimeToPixel converts seconds to a pixel x-position given pixelsPerSecond.
func TimeToPixel(t, pixelsPerSecond float64) float64 {
	return t * pixelsPerSecond
}

// SnapToFPSGridTime rounds t to the nearest whole frame of an fpsNum/fpsDen
// grid (spec §4.1). Idempotent: SnapToFPSGridTime(SnapToFPSGridTime(t)) == SnapToFPSGridTime(t).
func SnapToFPSGridTime(t float64, fpsNum, fpsDen int) float64 {
	if fpsNum == 0 {
		return t
	}
	f := float64(fpsNum) / float64(fpsDen)
	frame := math.Round(t * f)
	return frame * float64(fpsDen) / float64(fpsNum)
}

// SecondsToTimeFrame converts seconds into an HH:MM:SS,frame tuple for the
// ruler readout (spec §4.1).
func SecondsToTimeFrame(t float64, fpsNum, fpsDen int) (hours, minutes, seconds, frame int) {
	if t < 0 {
		t = 0
	}
	f := 0.0
	if fpsDen != 0 {
		f = float64(fpsNum) / float64(fpsDen)
	}

	totalSeconds := int(math.Floor(t))
	hours = totalSeconds / 3600
	minutes = (totalSeconds % 3600) / 60
	seconds = totalSeconds % 60

	if f > 0 {
		frame = int(math.Round(t*f)) % int(math.Round(f))
		if frame < 0 {
			frame = 0
		}
	}
	return
}

// SecondsToTimecode formats the HH:MM:SS,frame ruler readout as a string.
func SecondsToTimecode(t float64, fpsNum, fpsDen int) string {
	h, m, s, f := SecondsToTimeFrame(t, fpsNum, fpsDen)
	return fmt.Sprintf("%02d:%02d:%02d,%02d", h, m, s, f)
}

// ClampCanvasWidth clamps a rendered canvas width to MaxCanvasWidthPx.
func ClampCanvasWidth(px float64) float64 {
	if px > MaxCanvasWidthPx {
		return MaxCanvasWidthPx
	}
	if px < 0 {
		return 0
	}
	return px
}

// ToNumber returns value if it is finite, otherwise fallback (spec §7:
// "Missing/invalid numerics ... replaced by a specified fallback").
func ToNumber(value float64, fallback float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback
	}
	return value
}
