package domain

import "encoding/json"

// Effect is an image/audio processing node nested in a clip (spec §3). It
// has no own position — it inherits its parent clip's timeline extent.
type Effect struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Selected bool   `json:"selected"`

	Properties PropertyTracks `json:"-"`

	// PaletteColor is the effect's assigned color, used to tint its
	// keyframe icons (spec §4.5.1).
	PaletteColor string `json:"-"`
}

type effectWire struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Selected bool   `json:"selected"`
}

// MarshalJSON flattens Properties into the wire object, using the same
// property table as Clip (spec §4.5.1: effect keyframes are walked via
// ClipProperties).
func (e *Effect) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(effectWire{ID: e.ID, Type: e.Type, Selected: e.Selected})
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(base, &raw); err != nil {
		return nil, err
	}
	return marshalWithProperties(raw, e.Properties, ClipProperties)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Effect) UnmarshalJSON(data []byte) error {
	var w effectWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.ID, e.Type, e.Selected = w.ID, w.Type, w.Selected

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Properties = unmarshalProperties(raw, ClipProperties)
	return nil
}
