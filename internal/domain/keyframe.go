package domain

import "encoding/json"

// Interpolation identifies a keyframe's easing curve.
type Interpolation int

const (
	InterpolationBezier Interpolation = iota
	InterpolationLinear
	InterpolationConstant
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "linear"
	case InterpolationConstant:
		return "constant"
	default:
		return "bezier"
	}
}

// Coordinate is a keyframe control point: X is a 1-based frame number, Y is
// the property's value at that frame.
type Coordinate struct {
	X int     `json:"X"`
	Y float64 `json:"Y"`
}

// Point is one entry of a Track.
type Point struct {
	Co            Coordinate    `json:"co"`
	Interpolation Interpolation `json:"interpolation"`
}

// Track is a single animatable channel (e.g. "alpha", "location_x", or one
// channel of a color triple).
type Track struct {
	Points []Point `json:"Points"`
}

// HasAnimation reports whether the track carries more than one point
// (spec §4.5.1: "a property contributes its points only if ... Points.length > 1").
func (t *Track) HasAnimation() bool {
	return t != nil && len(t.Points) > 1
}

// ColorTrack is a three-channel scalar track set, modelled as three parallel
// scalar tracks sharing a schema (spec §9).
type ColorTrack struct {
	Red   Track `json:"red"`
	Green Track `json:"green"`
	Blue  Track `json:"blue"`
}

// PropertyKind distinguishes how a property's points are walked.
type PropertyKind int

const (
	PropertyScalar PropertyKind = iota
	PropertyColor
	PropertyTimeCurve
)

// PropertyDescriptor names one animatable property of an entity kind and
// how to reach its Track(s), replacing reflection-based tree-walking with
// an explicit table (spec §9).
type PropertyDescriptor struct {
	Name string
	Kind PropertyKind
}

// ClipProperties enumerates the animatable properties carried by a Clip,
// in the order they should be scanned.
var ClipProperties = []PropertyDescriptor{
	{Name: "alpha", Kind: PropertyScalar},
	{Name: "location_x", Kind: PropertyScalar},
	{Name: "location_y", Kind: PropertyScalar},
	{Name: "scale_x", Kind: PropertyScalar},
	{Name: "scale_y", Kind: PropertyScalar},
	{Name: "rotation", Kind: PropertyScalar},
	{Name: "volume", Kind: PropertyScalar},
	{Name: "time", Kind: PropertyTimeCurve},
	{Name: "color", Kind: PropertyColor},
}

// TransitionProperties enumerates the animatable properties of a Transition.
var TransitionProperties = []PropertyDescriptor{
	{Name: "brightness", Kind: PropertyScalar},
	{Name: "contrast", Kind: PropertyScalar},
}

// PropertyTracks is the generic container a Clip/Transition/Effect exposes
// its animatable state through: scalar tracks keyed by property name, plus
// an optional color track for color-valued properties.
type PropertyTracks struct {
	Scalars map[string]*Track      `json:"-"`
	Colors  map[string]*ColorTrack `json:"-"`
}

func NewPropertyTracks() PropertyTracks {
	return PropertyTracks{
		Scalars: make(map[string]*Track),
		Colors:  make(map[string]*ColorTrack),
	}
}

// Track returns the named scalar track, or nil if absent.
func (pt PropertyTracks) Track(name string) *Track {
	return pt.Scalars[name]
}

// Color returns the named color track, or nil if absent.
func (pt PropertyTracks) Color(name string) *ColorTrack {
	return pt.Colors[name]
}

// SetTrack installs or replaces a scalar track.
func (pt *PropertyTracks) SetTrack(name string, t *Track) {
	if pt.Scalars == nil {
		pt.Scalars = make(map[string]*Track)
	}
	pt.Scalars[name] = t
}

// SetColor installs or replaces a color track.
func (pt *PropertyTracks) SetColor(name string, c *ColorTrack) {
	if pt.Colors == nil {
		pt.Colors = make(map[string]*ColorTrack)
	}
	pt.Colors[name] = c
}

// marshalWithProperties merges each descriptor's track into the already
// wire-encoded known fields, keyed by property name, matching the host's
// flat per-entity JSON shape (spec §3: keyframe tracks are ordinary keyed
// fields alongside id/position/etc).
func marshalWithProperties(known map[string]json.RawMessage, props PropertyTracks, descriptors []PropertyDescriptor) ([]byte, error) {
	for _, d := range descriptors {
		if d.Kind == PropertyColor {
			ct := props.Color(d.Name)
			if ct == nil {
				continue
			}
			b, err := json.Marshal(ct)
			if err != nil {
				return nil, err
			}
			known[d.Name] = b
			continue
		}

		t := props.Track(d.Name)
		if t == nil {
			continue
		}
		b, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		known[d.Name] = b
	}
	return json.Marshal(known)
}

// unmarshalProperties extracts the descriptor-named fields of raw into a
// fresh PropertyTracks.
func unmarshalProperties(raw map[string]json.RawMessage, descriptors []PropertyDescriptor) PropertyTracks {
	props := NewPropertyTracks()
	for _, d := range descriptors {
		data, ok := raw[d.Name]
		if !ok {
			continue
		}
		if d.Kind == PropertyColor {
			var ct ColorTrack
			if json.Unmarshal(data, &ct) == nil {
				props.SetColor(d.Name, &ct)
			}
			continue
		}
		var t Track
		if json.Unmarshal(data, &t) == nil {
			props.SetTrack(d.Name, &t)
		}
	}
	return props
}
