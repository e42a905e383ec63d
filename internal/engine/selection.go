package engine

// SelectEvent carries the modifier keys (and, since razor-mode needs a
// cursor position to slice at, the live cursor time) that accompany a
// selection click (spec §4.4).
type SelectEvent struct {
	Ctrl          bool
	Shift         bool
	Alt           bool
	CursorSeconds float64
}

// selectionAnchor remembers the entity a subsequent shift-range selection
// is computed against (spec §4.4's lastSelectedItem / §9's consolidation
// guidance).
type selectionAnchor struct {
	ID       string
	Kind     ItemKind
	Position float64
	End      float64
	Layer    int
}

// Select implements the modifier-dispatch table of spec §4.4.
func (e *Engine) Select(itemID string, kind ItemKind, clearSelections bool, ev SelectEvent, forceRipple bool) {
	if itemID == "" && clearSelections {
		e.clearKind(kind)
		return
	}

	if e.Dragging() {
		return
	}

	if e.razorMode {
		var clipID, transitionID string
		switch kind {
		case ItemClip:
			clipID = itemID
		case ItemTransition:
			transitionID = itemID
		}
		e.host.RazorSliceAtCursor(clipID, transitionID, ev.CursorSeconds)
		return
	}

	if (ev.Alt || forceRipple) && (kind == ItemClip || kind == ItemTransition) {
		e.selectRipple(itemID, kind, clearSelections, ev.Ctrl)
		return
	}

	if ev.Shift && e.lastSelected != nil && (kind == ItemClip || kind == ItemTransition) {
		e.selectRange(itemID, kind, clearSelections, ev.Ctrl)
		return
	}

	e.selectPlainOrToggle(itemID, kind, clearSelections, ev.Ctrl)
}

// itemExtent resolves an entity's (position, end, layer) by id/kind,
// resolving effects per spec §4.4: global list first (the project model
// defines no top-level effects, so this step is a no-op by construction),
// then every clip's effects[].
func (e *Engine) itemExtent(id string, kind ItemKind) (position, end float64, layer int, ok bool) {
	switch kind {
	case ItemClip:
		if c, err := e.project.ClipByID(id); err == nil {
			return c.Left(), c.Right(), c.Layer, true
		}
	case ItemTransition:
		if t, err := e.project.TransitionByID(id); err == nil {
			return t.Left(), t.Right(), t.Layer, true
		}
	case ItemEffect:
		if c, _, err := e.project.EffectByID(id); err == nil {
			return c.Left(), c.Right(), c.Layer, true
		}
	}
	return 0, 0, 0, false
}

func (e *Engine) setSelected(id string, kind ItemKind, selected bool) {
	switch kind {
	case ItemClip:
		if c, err := e.project.ClipByID(id); err == nil {
			c.Selected = selected
		}
	case ItemTransition:
		if t, err := e.project.TransitionByID(id); err == nil {
			t.Selected = selected
		}
	case ItemEffect:
		if _, eff, err := e.project.EffectByID(id); err == nil {
			eff.Selected = selected
		}
	}
}

func (e *Engine) isSelected(id string, kind ItemKind) bool {
	switch kind {
	case ItemClip:
		if c, err := e.project.ClipByID(id); err == nil {
			return c.Selected
		}
	case ItemTransition:
		if t, err := e.project.TransitionByID(id); err == nil {
			return t.Selected
		}
	case ItemEffect:
		if _, eff, err := e.project.EffectByID(id); err == nil {
			return eff.Selected
		}
	}
	return false
}

// clearKind deselects every entity of kind, informing the host of each
// transition from selected to unselected. Clearing "effect" clears every
// per-clip effect, never the clips themselves (spec §4.4).
func (e *Engine) clearKind(kind ItemKind) {
	switch kind {
	case ItemClip:
		for _, c := range e.project.Clips {
			if c.Selected {
				c.Selected = false
				e.host.RemoveSelection(c.ID, ItemClip)
			}
		}
	case ItemTransition:
		for _, t := range e.project.Effects {
			if t.Selected {
				t.Selected = false
				e.host.RemoveSelection(t.ID, ItemTransition)
			}
		}
	case ItemEffect:
		e.clearEffects()
	}
}

func (e *Engine) clearEffects() {
	for _, c := range e.project.Clips {
		for _, eff := range c.Effects {
			if eff.Selected {
				eff.Selected = false
				e.host.RemoveSelection(eff.ID, ItemEffect)
			}
		}
	}
}

// selectRipple implements the alt/forceRipple row: every clip or
// transition on the anchor's layer with position >= anchor.position is
// selected. lastSelectedItem is left untouched.
func (e *Engine) selectRipple(itemID string, kind ItemKind, clearSelections, ctrl bool) {
	anchorPos, _, anchorLayer, ok := e.itemExtent(itemID, kind)
	if !ok {
		return
	}

	if !ctrl && clearSelections {
		e.clearKind(ItemClip)
		e.clearKind(ItemTransition)
	}

	for _, c := range e.project.Clips {
		if c.Layer == anchorLayer && c.Position >= anchorPos {
			if !c.Selected {
				c.Selected = true
				e.host.AddSelection(c.ID, ItemClip, false)
			}
		}
	}
	for _, t := range e.project.Effects {
		if t.Layer == anchorLayer && t.Position >= anchorPos {
			if !t.Selected {
				t.Selected = true
				e.host.AddSelection(t.ID, ItemTransition, false)
			}
		}
	}
}

// selectRange implements the shift-extend row: select every clip/transition
// fully contained by the rectangle spanned by lastSelectedItem and itemID.
func (e *Engine) selectRange(itemID string, kind ItemKind, clearSelections, ctrl bool) {
	targetPos, targetEnd, targetLayer, ok := e.itemExtent(itemID, kind)
	if !ok {
		return
	}

	anchor := e.lastSelected
	minStart := anchor.Position
	maxEnd := anchor.End
	minLayer := anchor.Layer
	maxLayer := anchor.Layer
	if targetPos < minStart {
		minStart = targetPos
	}
	if targetEnd > maxEnd {
		maxEnd = targetEnd
	}
	if targetLayer < minLayer {
		minLayer = targetLayer
	}
	if targetLayer > maxLayer {
		maxLayer = targetLayer
	}

	if !ctrl && clearSelections {
		e.clearKind(ItemClip)
		e.clearKind(ItemTransition)
	}

	within := func(position, end float64, layer int) bool {
		return position >= minStart && end <= maxEnd && layer >= minLayer && layer <= maxLayer
	}

	for _, c := range e.project.Clips {
		if within(c.Left(), c.Right(), c.Layer) && !c.Selected {
			c.Selected = true
			e.host.AddSelection(c.ID, ItemClip, false)
		}
	}
	for _, t := range e.project.Effects {
		if within(t.Left(), t.Right(), t.Layer) && !t.Selected {
			t.Selected = true
			e.host.AddSelection(t.ID, ItemTransition, false)
		}
	}
}

// selectPlainOrToggle implements the fallthrough row: optional clear, then
// toggle (ctrl) or plain select of the target, updating lastSelectedItem.
func (e *Engine) selectPlainOrToggle(itemID string, kind ItemKind, clearSelections, ctrl bool) {
	if clearSelections && !ctrl {
		e.clearKind(kind)
		e.clearEffects()
	}

	alreadySelected := e.isSelected(itemID, kind)
	if ctrl && alreadySelected {
		e.setSelected(itemID, kind, false)
		e.host.RemoveSelection(itemID, kind)
	} else {
		e.setSelected(itemID, kind, true)
		e.host.AddSelection(itemID, kind, clearSelections && !ctrl)
	}

	position, end, layer, ok := e.itemExtent(itemID, kind)
	if !ok {
		return
	}
	e.lastSelected = &selectionAnchor{ID: itemID, Kind: kind, Position: position, End: end, Layer: layer}
}

// SelectAll implements spec §6.1 selectAll.
func (e *Engine) SelectAll() {
	for _, c := range e.project.Clips {
		if !c.Selected {
			c.Selected = true
			e.host.AddSelection(c.ID, ItemClip, false)
		}
	}
	for _, t := range e.project.Effects {
		if !t.Selected {
			t.Selected = true
			e.host.AddSelection(t.ID, ItemTransition, false)
		}
	}
}

// ClearAllSelections implements spec §6.1 clearAllSelections.
func (e *Engine) ClearAllSelections() {
	e.clearKind(ItemClip)
	e.clearKind(ItemTransition)
	e.clearEffects()
	e.lastSelected = nil
}
