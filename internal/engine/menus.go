package engine

// The Show*Menu inbound methods of spec §6.1 carry no engine-side state;
// they are direct pass-throughs to the host's context-menu outbound calls
// (spec §6.2), kept on Engine so the controller layer has one dispatch
// surface for every inbound method name.

func (e *Engine) ShowClipMenu(clipID string)             { e.host.ShowClipMenu(clipID) }
func (e *Engine) ShowEffectMenu(effectID string)          { e.host.ShowEffectMenu(effectID) }
func (e *Engine) ShowTransitionMenu(transitionID string)  { e.host.ShowTransitionMenu(transitionID) }
func (e *Engine) ShowTrackMenu(layerNumber int)           { e.host.ShowTrackMenu(layerNumber) }
func (e *Engine) ShowMarkerMenu(markerID string)          { e.host.ShowMarkerMenu(markerID) }
func (e *Engine) ShowPlayheadMenu()                       { e.host.ShowPlayheadMenu() }
func (e *Engine) ShowTimelineMenu(cursorSeconds float64, layerNumber int) {
	e.host.ShowTimelineMenu(cursorSeconds, layerNumber)
}
