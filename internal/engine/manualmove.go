package engine

// StartManualMove implements spec §6.1 startManualMove: pre-initialises the
// bounding box for a drag the host itself is driving (rather than a local
// pointer gesture). kind is currently unused by the bounding-box engine,
// which only distinguishes clip/transition membership by entity, not by a
// caller-supplied type tag; it is accepted to match the host method shape.
func (e *Engine) StartManualMove(kind string, ids []string) error {
	if e.Dragging() {
		return ErrGestureInProgress
	}

	for _, id := range ids {
		e.setSelected(id, ItemClip, true)
		e.setSelected(id, ItemTransition, true)
	}

	bb := e.BuildBoundingBox()
	if bb == nil {
		return ErrNoSelection
	}
	e.ctx = &InteractionContext{Kind: GestureMove, BoundingBox: bb}
	return nil
}

// MoveItem implements spec §6.1 moveItem: continues an externally-driven
// drag by one increment.
func (e *Engine) MoveItem(deltaXPx, deltaYPx float64) (MoveResult, error) {
	if e.ctx == nil || e.ctx.Kind != GestureMove {
		return MoveResult{}, ErrNoActiveGesture
	}
	return e.ProposeMove(e.ctx.BoundingBox, deltaXPx, deltaYPx), nil
}

// UpdateRecentItemJSON implements spec §6.1 updateRecentItemJSON: finalises
// an externally-driven drag under the given transaction ID, reusing the
// same commit path as a local drag-stop (spec §4.6).
func (e *Engine) UpdateRecentItemJSON(kind string, ids []string, transactionID string) error {
	if e.ctx == nil || e.ctx.Kind != GestureMove {
		return ErrNoActiveGesture
	}
	e.ctx.TransactionID = transactionID
	return e.StopClipDrag()
}
