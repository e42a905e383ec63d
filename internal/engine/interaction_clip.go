package engine

import (
	"encoding/json"
	"math"

	"github.com/reelhost/timeline-engine/internal/domain"
)

// BeginClipDrag starts a move gesture over the current selection, anchored
// on clipID (spec §4.6 drag). Refused while razor mode is active or
// another gesture is in progress.
func (e *Engine) BeginClipDrag(clipID, transactionID string) error {
	if e.Dragging() {
		return ErrGestureInProgress
	}
	if e.razorMode {
		return ErrRazorModeActive
	}
	if _, err := e.project.ClipByID(clipID); err != nil {
		return err
	}

	bb := e.BuildBoundingBox()
	if bb == nil {
		return ErrNoSelection
	}

	e.ctx = &InteractionContext{
		Kind:          GestureMove,
		TransactionID: transactionID,
		BoundingBox:   bb,
		ClipID:        clipID,
	}
	return nil
}

// DragClip applies one frame of pointer movement to the active move
// gesture (spec §4.3/§4.6).
func (e *Engine) DragClip(deltaXPx, deltaYPx float64) (MoveResult, error) {
	if e.ctx == nil || e.ctx.Kind != GestureMove {
		return MoveResult{}, ErrNoActiveGesture
	}
	return e.ProposeMove(e.ctx.BoundingBox, deltaXPx, deltaYPx), nil
}

// StopClipDrag finalises the active move gesture: quantises every moved
// entity to the FPS grid, resolves final layers, commits each under the
// shared transaction ID, grows the timeline if needed, and (for a single
// moved item) runs missing-transition detection (spec §4.6/§4.7/§4.9).
func (e *Engine) StopClipDrag() error {
	if e.ctx == nil || e.ctx.Kind != GestureMove {
		return ErrNoActiveGesture
	}
	bb := e.ctx.BoundingBox
	txID := e.ctx.TransactionID

	for id, moved := range bb.MoveClips {
		e.commitMovedEntity(id, moved, txID)
	}

	e.growTimelineIfNeeded()

	if len(bb.Elements) == 1 {
		for id := range bb.Elements {
			e.DetectMissingTransitions(id)
		}
	}

	e.ctx = nil
	return nil
}

func (e *Engine) commitMovedEntity(id string, moved ClipPos, txID string) {
	f := e.project.FPS
	position := SnapToFPSGridTime(moved.Position, f.Num, f.Den)

	if c, err := e.project.ClipByID(id); err == nil {
		c.Position = position
		if layer, err := e.project.LayerByNumber(moved.Layer); err == nil {
			c.Layer = layer.Number
		}
		e.commitClip(c, true, txID)
		return
	}
	if t, err := e.project.TransitionByID(id); err == nil {
		t.Position = position
		if layer, err := e.project.LayerByNumber(moved.Layer); err == nil {
			t.Layer = layer.Number
		}
		e.commitTransition(t, txID)
	}
}

func (e *Engine) commitClip(c *domain.Clip, allowKeyframes bool, txID string) {
	payload, err := json.Marshal(c)
	if err != nil {
		e.logger.Error("marshal clip for commit", "clip_id", c.ID, "error", err)
		e.host.QtLog("error", "failed to marshal clip "+c.ID+" for commit")
		return
	}
	e.host.UpdateClipData(payload, allowKeyframes, true, false, txID)
}

func (e *Engine) commitTransition(t *domain.Transition, txID string) {
	payload, err := json.Marshal(t)
	if err != nil {
		e.logger.Error("marshal transition for commit", "transition_id", t.ID, "error", err)
		e.host.QtLog("error", "failed to marshal transition "+t.ID+" for commit")
		return
	}
	e.host.UpdateTransitionData(payload, true, false, txID)
}

// growTimelineIfNeeded implements spec §4.9 timeline autogrow.
func (e *Engine) growTimelineIfNeeded() {
	maxRight := 0.0
	for _, c := range e.project.Clips {
		if r := c.Right(); r > maxRight {
			maxRight = r
		}
	}
	for _, t := range e.project.Effects {
		if r := t.Right(); r > maxRight {
			maxRight = r
		}
	}
	if maxRight > e.project.Duration {
		newDuration := math.Max(e.cfg.MinTimelineLen, maxRight+e.cfg.MinTimelinePad)
		e.project.Duration = newDuration
		e.host.ResizeTimeline(newDuration)
	}
}

// BeginClipResize starts a trim or retime gesture on one of a clip's two
// handles (spec §4.6). Retime mode is used whenever timing mode is on;
// otherwise the gesture previews as a trim.
func (e *Engine) BeginClipResize(clipID string, handle Handle, transactionID string) error {
	if e.Dragging() {
		return ErrGestureInProgress
	}
	if e.razorMode {
		return ErrRazorModeActive
	}
	c, err := e.project.ClipByID(clipID)
	if err != nil {
		return err
	}

	mode := domain.PreviewModeTrim
	kind := GestureTrim
	if e.timingMode {
		mode = domain.PreviewModeRetime
		kind = GestureRetime
	}

	waveform := append([]float64(nil), c.UI.AudioData...)

	pps := e.project.PixelsPerSecond()
	c.UI.KeyframePreview = &domain.KeyframePreview{
		Mode:            mode,
		OriginalStart:   c.Start,
		OriginalEnd:     c.End,
		DisplayStart:    c.Start,
		DisplayEnd:      c.End,
		ProjectedStart:  c.Start,
		ProjectedEnd:    c.End,
		PixelsPerSecond: pps,
	}

	e.ctx = &InteractionContext{
		Kind:             kind,
		TransactionID:    transactionID,
		Handle:           handle,
		ClipID:           clipID,
		OriginalStart:    c.Start,
		OriginalEnd:      c.End,
		OriginalPosition: c.Position,
		OriginalWaveform: waveform,
		PreviewMode:      mode,
	}
	return nil
}

// ResizeClip applies one frame of pointer movement (expressed in source
// seconds, i.e. already divided by pixelsPerSecond) to the active
// trim/retime gesture, updating both the clip and its live preview window
// (spec §4.6).
func (e *Engine) ResizeClip(deltaSeconds float64) error {
	if e.ctx == nil || (e.ctx.Kind != GestureTrim && e.ctx.Kind != GestureRetime) {
		return ErrNoActiveGesture
	}
	c, err := e.project.ClipByID(e.ctx.ClipID)
	if err != nil {
		return err
	}

	if e.ctx.Handle == HandleLeft {
		e.resizeLeftHandle(c, deltaSeconds)
	} else {
		e.resizeRightHandle(c, deltaSeconds)
	}

	e.updateResizePreview(c)
	return nil
}

func (e *Engine) resizeLeftHandle(c *domain.Clip, deltaSeconds float64) {
	newStart := math.Max(0, c.Start-deltaSeconds)
	newPosition := math.Max(0, c.Position-deltaSeconds)
	appliedStartDelta := c.Start - newStart

	c.Position = newPosition
	if c.IsSingleImage() || e.timingMode {
		c.Start = newStart
		// end stays at its original value: overflow extends duration.
		c.End = e.ctx.OriginalEnd
	} else {
		c.End = c.End - appliedStartDelta
		c.Start = newStart
	}
	if c.End < c.Start {
		c.End = c.Start
	}
}

func (e *Engine) resizeRightHandle(c *domain.Clip, deltaSeconds float64) {
	maxDuration, unlimited := e.maxClipDuration(c)
	newEnd := c.End + deltaSeconds
	if !unlimited {
		capEnd := c.Start + maxDuration
		if newEnd > capEnd {
			newEnd = capEnd
		}
	}
	if newEnd < c.Start {
		newEnd = c.Start
	}
	c.End = newEnd
}

// maxClipDuration resolves the right-handle cap (spec §4.6): the reader's
// natural duration, unless timing mode is on or a time track exists, in
// which case the cap is lifted (unlimited is true) or derived from the
// time curve's frame span.
func (e *Engine) maxClipDuration(c *domain.Clip) (maxDuration float64, unlimited bool) {
	if e.timingMode {
		return 0, true
	}
	if track := c.Properties.Track("time"); track.HasAnimation() {
		f := e.fps()
		if f == 0 {
			return 0, true
		}
		maxFrame := 0
		for _, p := range track.Points {
			if p.Co.X > maxFrame {
				maxFrame = p.Co.X
			}
		}
		span := float64(maxFrame-1) / f
		if span <= 0 {
			return 0, true
		}
		return span, false
	}
	return c.Reader.Duration, false
}

func (e *Engine) updateResizePreview(c *domain.Clip) {
	preview := c.UI.KeyframePreview
	if preview == nil {
		return
	}
	preview.DisplayStart = c.Start
	preview.DisplayEnd = c.End
	if e.ctx.Kind == GestureRetime {
		preview.ProjectedStart = e.ctx.OriginalStart
		preview.ProjectedEnd = e.ctx.OriginalEnd
	} else {
		preview.ProjectedStart = c.Start
		preview.ProjectedEnd = c.End
	}
	preview.PixelsPerSecond = e.project.PixelsPerSecond()
	e.kfCache = make(map[string]kfCacheEntry)
}

// StopClipResize commits the active trim/retime gesture (spec §4.6): trim
// mode quantises to the frame grid and commits the clip; retime mode pins
// start, tells the host to RetimeClip, and resamples the cached waveform.
// Either way it closes the preview, grows the timeline, and (single item)
// runs missing-transition detection.
func (e *Engine) StopClipResize() error {
	if e.ctx == nil || (e.ctx.Kind != GestureTrim && e.ctx.Kind != GestureRetime) {
		return ErrNoActiveGesture
	}
	c, err := e.project.ClipByID(e.ctx.ClipID)
	if err != nil {
		e.ctx = nil
		return err
	}

	switch e.ctx.Kind {
	case GestureTrim:
		f := e.project.FPS
		c.Start = SnapToFPSGridTime(c.Start, f.Num, f.Den)
		c.End = SnapToFPSGridTime(c.End, f.Num, f.Den)
		c.Position = SnapToFPSGridTime(c.Position, f.Num, f.Den)
		if c.End < c.Start {
			c.End = c.Start
		}
		c.UI.KeyframePreview = nil
		e.commitClip(c, true, e.ctx.TransactionID)

	case GestureRetime:
		newDuration := c.End - c.Start
		originalDuration := e.ctx.OriginalEnd - e.ctx.OriginalStart
		c.UI.AudioData = ResampleWaveform(e.ctx.OriginalWaveform, originalDuration, newDuration)
		c.UI.KeyframePreview = nil
		e.host.RetimeClip(c.ID, c.End, c.Position)
	}

	e.growTimelineIfNeeded()
	if e.ctx.Handle != "" {
		e.DetectMissingTransitions(c.ID)
	}

	e.ctx = nil
	return nil
}
