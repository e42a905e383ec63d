package domain

import "encoding/json"

// Transition is an overlap-region effect placed as an independent timeline
// entity (spec §3). Transitions may overlap clips and each other.
type Transition struct {
	ID       string  `json:"id"`
	Layer    int     `json:"layer"`
	Position float64 `json:"position"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Selected bool    `json:"selected"`

	Properties PropertyTracks   `json:"-"`
	UI         *KeyframePreview `json:"ui_keyframe_preview,omitempty"`
}

type transitionWire struct {
	ID       string           `json:"id"`
	Layer    int              `json:"layer"`
	Position float64          `json:"position"`
	Start    float64          `json:"start"`
	End      float64          `json:"end"`
	Selected bool             `json:"selected"`
	UI       *KeyframePreview `json:"ui_keyframe_preview,omitempty"`
}

// MarshalJSON flattens Properties into the wire object (spec §4.11, mirrors Clip).
func (t *Transition) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(transitionWire{
		ID: t.ID, Layer: t.Layer, Position: t.Position,
		Start: t.Start, End: t.End, Selected: t.Selected, UI: t.UI,
	})
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(base, &raw); err != nil {
		return nil, err
	}
	return marshalWithProperties(raw, t.Properties, TransitionProperties)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (t *Transition) UnmarshalJSON(data []byte) error {
	var w transitionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.ID, t.Layer, t.Position, t.Start, t.End, t.Selected, t.UI =
		w.ID, w.Layer, w.Position, w.Start, w.End, w.Selected, w.UI

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Properties = unmarshalProperties(raw, TransitionProperties)
	return nil
}

// Duration returns End-Start (Start is always 0 for a transition per spec §3).
func (t *Transition) Duration() float64 { return t.End - t.Start }

// Left returns the transition's left timeline edge in seconds.
func (t *Transition) Left() float64 { return t.Position }

// Right returns the transition's right timeline edge in seconds.
func (t *Transition) Right() float64 { return t.Position + t.Duration() }
