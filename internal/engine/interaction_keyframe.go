package engine

import (
	"math"

	"github.com/reelhost/timeline-engine/internal/domain"
)

// BeginKeyframeDrag starts a keyframe-drag gesture (spec §4.6 last
// paragraph). owner/ownerID name the entity the dragged point belongs to:
// a clip, a transition, or a per-clip effect.
func (e *Engine) BeginKeyframeDrag(owner ItemKind, ownerID string, frame int, transactionID string) error {
	if e.Dragging() {
		return ErrGestureInProgress
	}
	if _, _, _, ok := e.keyframeBounds(owner, ownerID); !ok {
		return ErrUnknownItem
	}

	e.ctx = &InteractionContext{
		Kind:              GestureKeyframeDrag,
		TransactionID:     transactionID,
		KeyframeOwnerKind: owner,
		KeyframeOwnerID:   ownerID,
		OriginalFrame:     frame,
		CurrentFrame:      frame,
	}
	e.host.StartKeyframeDrag(owner, ownerID, transactionID)
	return nil
}

// DragKeyframe proposes a new frame from a pointer-derived time, snapping
// to the FPS grid and clamping to [start, end-1/F] (spec §4.6: the right
// edge is exclusive, so the last valid frame is floor(end*F)).
func (e *Engine) DragKeyframe(proposedSeconds float64) (int, error) {
	if e.ctx == nil || e.ctx.Kind != GestureKeyframeDrag {
		return 0, ErrNoActiveGesture
	}

	start, end, f, ok := e.keyframeBounds(e.ctx.KeyframeOwnerKind, e.ctx.KeyframeOwnerID)
	if !ok || f == 0 {
		return e.ctx.CurrentFrame, ErrUnknownItem
	}

	quantised := SnapToFPSGridTime(proposedSeconds, e.project.FPS.Num, e.project.FPS.Den)
	frame := int(math.Round(quantised*f)) + 1

	minFrame := int(math.Round(start*f)) + 1
	maxFrame := int(math.Floor(end * f))
	if frame < minFrame {
		frame = minFrame
	}
	if frame > maxFrame {
		frame = maxFrame
	}

	e.ctx.CurrentFrame = frame
	return frame, nil
}

// keyframeBounds resolves the clip-local [start, end) window and FPS that
// bound a keyframe drag for the given owner.
func (e *Engine) keyframeBounds(owner ItemKind, ownerID string) (start, end, fps float64, ok bool) {
	switch owner {
	case ItemClip:
		if c, err := e.project.ClipByID(ownerID); err == nil {
			return c.Start, c.End, e.fps(), true
		}
	case ItemTransition:
		if t, err := e.project.TransitionByID(ownerID); err == nil {
			return t.Start, t.End, e.fps(), true
		}
	case ItemEffect:
		if c, _, err := e.project.EffectByID(ownerID); err == nil {
			return c.Start, c.End, e.fps(), true
		}
	}
	return 0, 0, 0, false
}

// StopKeyframeDrag commits the active keyframe drag: if the frame changed,
// it remaps every point at the original frame (across every property,
// including color channels) to the new frame, emits the owning entity's
// update_*_data call with allowKeyframes=false and forceJsonDiff=true, and
// finalises the transaction (spec §4.5.5).
func (e *Engine) StopKeyframeDrag() error {
	if e.ctx == nil || e.ctx.Kind != GestureKeyframeDrag {
		return ErrNoActiveGesture
	}
	owner, ownerID := e.ctx.KeyframeOwnerKind, e.ctx.KeyframeOwnerID
	oldFrame, newFrame := e.ctx.OriginalFrame, e.ctx.CurrentFrame
	txID := e.ctx.TransactionID

	if oldFrame != newFrame {
		switch owner {
		case ItemClip:
			if c, err := e.project.ClipByID(ownerID); err == nil {
				remapFrame(c.Properties, oldFrame, newFrame, domain.ClipProperties)
				e.commitClip(c, false, txID)
			}
		case ItemTransition:
			if t, err := e.project.TransitionByID(ownerID); err == nil {
				remapFrame(t.Properties, oldFrame, newFrame, domain.TransitionProperties)
				e.commitTransition(t, txID)
			}
		case ItemEffect:
			if c, eff, err := e.project.EffectByID(ownerID); err == nil {
				remapFrame(eff.Properties, oldFrame, newFrame, domain.ClipProperties)
				e.commitClip(c, false, txID)
			}
		}
		e.kfCache = make(map[string]kfCacheEntry)
	}

	e.host.FinalizeKeyframeDrag(owner, ownerID)
	e.host.SeekToKeyframe(newFrame)
	e.ctx = nil
	return nil
}

// remapFrame rewrites every point whose Co.X equals oldFrame to newFrame,
// across every descriptor's track(s) (spec §4.5.5).
func remapFrame(props domain.PropertyTracks, oldFrame, newFrame int, descriptors []domain.PropertyDescriptor) {
	remapTrack := func(t *domain.Track) {
		if t == nil {
			return
		}
		for i := range t.Points {
			if t.Points[i].Co.X == oldFrame {
				t.Points[i].Co.X = newFrame
			}
		}
	}

	for _, d := range descriptors {
		if d.Kind == domain.PropertyColor {
			ct := props.Color(d.Name)
			if ct == nil {
				continue
			}
			remapTrack(&ct.Red)
			remapTrack(&ct.Green)
			remapTrack(&ct.Blue)
			continue
		}
		remapTrack(props.Track(d.Name))
	}
}
