package engine

import (
	"errors"
	"math"
	"sort"

	"github.com/reelhost/timeline-engine/internal/domain"
)

// ErrLockedLayer is returned when a proposed move would cross a locked
// layer's vertical extent (spec §4.3).
var ErrLockedLayer = errors.New("move crosses a locked layer")

// ClipPos is a (position, layer) pair: the minimal state the bounding-box
// engine needs to track per selected element during a group move.
type ClipPos struct {
	Position float64
	Layer    int
}

// BoundingBox encloses the current multi-selection and is the target of a
// group move (spec §4.3). It consolidates the teacher-analog global
// mutables (bounding_box, start_clips, move_clips) into one value (spec §9).
type BoundingBox struct {
	Left, Right float64 // seconds
	Top, Bottom float64 // px

	Elements   map[string]bool
	StartClips map[string]ClipPos
	MoveClips  map[string]ClipPos

	PreviousXPx float64
	PreviousYPx float64
}

// BuildBoundingBox scans the current selection and returns the enclosing
// box, or nil if nothing is selected.
func (e *Engine) BuildBoundingBox() *BoundingBox {
	bb := &BoundingBox{
		Elements:   make(map[string]bool),
		StartClips: make(map[string]ClipPos),
		MoveClips:  make(map[string]ClipPos),
		Left:       math.Inf(1), Right: math.Inf(-1),
		Top: math.Inf(1), Bottom: math.Inf(-1),
	}

	include := func(id string, left, right float64, layer int) {
		bb.Elements[id] = true
		bb.StartClips[id] = ClipPos{Position: left, Layer: layer}
		bb.MoveClips[id] = ClipPos{Position: left, Layer: layer}
		if left < bb.Left {
			bb.Left = left
		}
		if right > bb.Right {
			bb.Right = right
		}
		if ly, err := e.project.LayerByNumber(layer); err == nil {
			if float64(ly.Y) < bb.Top {
				bb.Top = float64(ly.Y)
			}
			if float64(ly.Y+ly.Height) > bb.Bottom {
				bb.Bottom = float64(ly.Y + ly.Height)
			}
		}
	}

	for _, c := range e.project.Clips {
		if c.Selected {
			include(c.ID, c.Position, c.Right(), c.Layer)
		}
	}
	for _, t := range e.project.Effects {
		if t.Selected {
			include(t.ID, t.Position, t.Right(), t.Layer)
		}
	}

	if len(bb.Elements) == 0 {
		return nil
	}
	return bb
}

// FindTrackAtLocation returns the layer whose [Y, Y+Height) band contains
// y, scanning layers sorted by Y (spec §4.3 drag-stop).
func (e *Engine) FindTrackAtLocation(y float64) (*domain.Layer, error) {
	layers := make([]domain.Layer, len(e.project.Layers))
	copy(layers, e.project.Layers)
	sort.Slice(layers, func(i, j int) bool { return layers[i].Y < layers[j].Y })

	for _, ly := range layers {
		if y >= float64(ly.Y) && y < float64(ly.Y+ly.Height) {
			found := ly
			return &found, nil
		}
	}
	return nil, domain.ErrLayerNotFound
}

// anyLockedLayerInRange reports whether any layer overlapping [top, bottom]
// is locked (spec §4.3's locked-track refusal rule).
func (e *Engine) anyLockedLayerInRange(top, bottom float64) bool {
	for _, ly := range e.project.Layers {
		layerTop := float64(ly.Y)
		layerBottom := float64(ly.Y + ly.Height)
		if layerBottom <= top || layerTop >= bottom {
			continue
		}
		if ly.Lock {
			return true
		}
	}
	return false
}

// MoveResult reports the outcome of one ProposeMove call.
type MoveResult struct {
	Refused      bool
	Snapped      bool
	SnapTargetPx float64
	DeltaSeconds float64
	LayerDelta   int
}

// ProposeMove computes a horizontal/vertical delta from raw pointer-pixel
// movement, snaps the horizontal component, and refuses the whole move if
// it would cross a locked layer (spec §4.3). On success it writes the
// corrected positions into bb.MoveClips; on refusal bb.MoveClips is left
// unchanged (the pointer follows, the items do not move).
func (e *Engine) ProposeMove(bb *BoundingBox, deltaXPx, deltaYPx float64) MoveResult {
	newTop := bb.Top + deltaYPx
	newBottom := bb.Bottom + deltaYPx
	if e.anyLockedLayerInRange(newTop, newBottom) {
		return MoveResult{Refused: true}
	}

	pps := e.project.PixelsPerSecond()
	leftPx := TimeToPixel(bb.Left, pps) + deltaXPx
	rightPx := TimeToPixel(bb.Right, pps) + deltaXPx

	correctedDeltaXPx := deltaXPx
	result := MoveResult{}
	if e.snappingMode {
		if snap, ok := e.Snap([]float64{leftPx, rightPx}, SnapOptions{
			ThresholdPx:      e.cfg.SnapThresholdPx,
			IgnoreIDs:        bb.Elements,
			IncludeKeyframes: true,
		}); ok {
			correctedDeltaXPx += snap.Offset
			result.Snapped = true
			result.SnapTargetPx = snap.TargetPx
		}
	}

	deltaSeconds := PixelToTime(correctedDeltaXPx, pps)
	result.DeltaSeconds = deltaSeconds

	layerDelta := 0
	if newTrack, err := e.FindTrackAtLocation(newTop); err == nil {
		if oldTrack, err := e.FindTrackAtLocation(bb.Top); err == nil {
			layerDelta = newTrack.Number - oldTrack.Number
		}
	}
	result.LayerDelta = layerDelta

	for id, start := range bb.StartClips {
		bb.MoveClips[id] = ClipPos{
			Position: start.Position + deltaSeconds,
			Layer:    start.Layer + layerDelta,
		}
	}

	return result
}
