package engine

import "github.com/reelhost/timeline-engine/internal/domain"

// GestureKind distinguishes the three direct-manipulation directives that
// share the bounding-box/snap machinery (spec §4.6).
type GestureKind string

const (
	GestureMove         GestureKind = "move"
	GestureTrim         GestureKind = "trim"
	GestureRetime       GestureKind = "retime"
	GestureKeyframeDrag GestureKind = "keyframe"
)

// Handle names the active resize handle of a trim/retime gesture.
type Handle string

const (
	HandleLeft  Handle = "left"
	HandleRight Handle = "right"
)

// InteractionContext is the consolidated per-gesture mutable state spec §9
// asks for in place of the scattered globals (bounding_box, dragLoc,
// previous_drag_position, start_clips, move_clips). Its lifetime is one
// gesture: created on drag-start, discarded on drag-stop or cancel. Only
// one directive may hold it at a time (spec §5): BeginClipDrag,
// BeginClipResize, BeginKeyframeDrag and StartManualMove each return
// ErrGestureInProgress while one is held.
type InteractionContext struct {
	Kind          GestureKind
	TransactionID string
	BoundingBox   *BoundingBox

	Handle       Handle
	ClipID       string
	TransitionID string

	OriginalStart, OriginalEnd, OriginalPosition float64
	OriginalWaveform                             []float64

	PreviewMode domain.PreviewMode

	KeyframeOwnerKind ItemKind
	KeyframeOwnerID   string
	OriginalFrame     int
	CurrentFrame      int

	PreviousXPx, PreviousYPx float64
}

// Dragging reports whether a gesture currently owns the InteractionContext
// (spec §4.4: selection must not race drags).
func (e *Engine) Dragging() bool { return e.ctx != nil }

// CancelGesture discards the current InteractionContext without emitting
// any host call, restoring the replica to its pre-drag values is the
// caller's responsibility (the engine never buffers undo state itself).
func (e *Engine) CancelGesture() { e.ctx = nil }
