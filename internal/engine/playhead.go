package engine

import "math"

// MovePlayhead implements spec §6.1 movePlayhead / §4.12: quantises to the
// FPS grid and updates the replica's playhead position.
func (e *Engine) MovePlayhead(t float64) {
	f := e.project.FPS
	e.project.PlayheadPosition = SnapToFPSGridTime(math.Max(0, t), f.Num, f.Den)
}

// MovePlayheadToFrame implements spec §6.1 movePlayheadToFrame.
func (e *Engine) MovePlayheadToFrame(frame int) {
	f := e.fps()
	if f == 0 {
		return
	}
	e.MovePlayhead(float64(frame-1) / f)
}

// PreviewFrame implements spec §4.12 previewFrame: frame = round(t*F) + 1,
// reported to the host via PlayheadMoved.
func (e *Engine) PreviewFrame(t float64) {
	frame := int(math.Round(t*e.fps())) + 1
	e.host.PlayheadMoved(frame)
}

// PreviewClipFrame implements spec §4.12 previewClipFrame: rounds to the
// frame grid first so that inputs within [t-0.5/F, t+0.5/F) produce the same
// frame (spec §8 invariant 8).
func (e *Engine) PreviewClipFrame(clipID string, t float64) {
	f := e.project.FPS
	quantised := SnapToFPSGridTime(t, f.Num, f.Den)
	frame := int(math.Round(quantised*e.fps())) + 1
	e.host.PreviewClipFrame(clipID, frame)
}
