package engine

// MarqueeSelect implements spec §4.8: a rubber-band rectangle over the
// droppable surface, filtered to clips and transitions, synchronised with
// the host via addSelection/removeSelection. Cancellation regions are a
// transport-layer concern (hit-testing DOM classes); the engine only
// applies the already-filtered rectangle.
func (e *Engine) MarqueeSelect(minSeconds, maxSeconds float64, minLayer, maxLayer int, clearOthers bool) {
	if clearOthers {
		e.clearKind(ItemClip)
		e.clearKind(ItemTransition)
	}

	within := func(left, right float64, layer int) bool {
		return right >= minSeconds && left <= maxSeconds && layer >= minLayer && layer <= maxLayer
	}

	for _, c := range e.project.Clips {
		inside := within(c.Left(), c.Right(), c.Layer)
		if inside && !c.Selected {
			c.Selected = true
			e.host.AddSelection(c.ID, ItemClip, false)
		} else if !inside && c.Selected && clearOthers {
			c.Selected = false
			e.host.RemoveSelection(c.ID, ItemClip)
		}
	}
	for _, t := range e.project.Effects {
		inside := within(t.Left(), t.Right(), t.Layer)
		if inside && !t.Selected {
			t.Selected = true
			e.host.AddSelection(t.ID, ItemTransition, false)
		} else if !inside && t.Selected && clearOthers {
			t.Selected = false
			e.host.RemoveSelection(t.ID, ItemTransition)
		}
	}
}
