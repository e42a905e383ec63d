package engine

// ItemKind distinguishes the three selectable entity kinds (spec §4.4).
type ItemKind string

const (
	ItemClip       ItemKind = "clip"
	ItemTransition ItemKind = "transition"
	ItemEffect     ItemKind = "effect"
)

// Host is the outbound half of the host bridge (spec §6.2): every call the
// engine makes back to the native application during a gesture, a
// selection change, or a proposal. One Engine holds exactly one Host.
type Host interface {
	AddSelection(id string, kind ItemKind, forceClearOthers bool)
	RemoveSelection(id string, kind ItemKind)

	UpdateClipData(clipJSON []byte, allowKeyframes, forceJSONDiff, ignoreRefresh bool, transactionID string)
	UpdateTransitionData(transitionJSON []byte, forceJSONDiff, ignoreRefresh bool, transactionID string)

	StartKeyframeDrag(kind ItemKind, id, transactionID string)
	FinalizeKeyframeDrag(kind ItemKind, id string)

	RetimeClip(id string, end, position float64)
	SeekToKeyframe(frame int)

	RazorSliceAtCursor(clipID, transitionID string, cursorSeconds float64)

	PlayheadMoved(frame int)
	PreviewClipFrame(clipID string, frame int)
	PageReady()
	QtLog(level, msg string)
	ResizeTimeline(seconds float64)

	ShowClipMenu(clipID string)
	ShowEffectMenu(effectID string)
	ShowTransitionMenu(transitionID string)
	ShowTrackMenu(layerNumber int)
	ShowMarkerMenu(markerID string)
	ShowPlayheadMenu()
	ShowTimelineMenu(cursorSeconds float64, layerNumber int)

	AddMissingTransition(transitionJSON []byte)
}

// NopHost is a Host that discards every call. It is the default for an
// Engine constructed without SetHost (spec §7: all public methods are safe
// to call before enableQt).
type NopHost struct{}

func (NopHost) AddSelection(string, ItemKind, bool)                 {}
func (NopHost) RemoveSelection(string, ItemKind)                    {}
func (NopHost) UpdateClipData([]byte, bool, bool, bool, string)     {}
func (NopHost) UpdateTransitionData([]byte, bool, bool, string)     {}
func (NopHost) StartKeyframeDrag(ItemKind, string, string)          {}
func (NopHost) FinalizeKeyframeDrag(ItemKind, string)               {}
func (NopHost) RetimeClip(string, float64, float64)                 {}
func (NopHost) SeekToKeyframe(int)                                  {}
func (NopHost) RazorSliceAtCursor(string, string, float64)          {}
func (NopHost) PlayheadMoved(int)                                   {}
func (NopHost) PreviewClipFrame(string, int)                        {}
func (NopHost) PageReady()                                          {}
func (NopHost) QtLog(string, string)                                {}
func (NopHost) ResizeTimeline(float64)                              {}
func (NopHost) ShowClipMenu(string)                                 {}
func (NopHost) ShowEffectMenu(string)                                {}
func (NopHost) ShowTransitionMenu(string)                            {}
func (NopHost) ShowTrackMenu(int)                                    {}
func (NopHost) ShowMarkerMenu(string)                                {}
func (NopHost) ShowPlayheadMenu()                                    {}
func (NopHost) ShowTimelineMenu(float64, int)                         {}
func (NopHost) AddMissingTransition([]byte)                           {}
