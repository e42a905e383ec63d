package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reelhost/timeline-engine/internal/domain"
)

func TestBuildBoundingBox_NilWhenNothingSelected(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 5, 0, 2)

	assert.Nil(t, e.BuildBoundingBox(), "bounding box should be nil with no selection")
}

func TestBuildBoundingBox_EnclosesSelection(t *testing.T) {
	e, p := newTestEngine()
	c1 := addClip(p, "c1", 1, 0, 0, 2)
	c2 := addClip(p, "c2", 1, 5, 0, 3)
	c1.Selected = true
	c2.Selected = true

	bb := e.BuildBoundingBox()
	assert.NotNil(t, bb)
	assert.Equal(t, 0.0, bb.Left)
	assert.Equal(t, 8.0, bb.Right, "right edge should be the rightmost selected element's end")
	assert.Len(t, bb.Elements, 2)
}

func TestProposeMove_RefusesAcrossLockedLayer(t *testing.T) {
	e, p := newTestEngine()
	p.Layers = []domain.Layer{
		{Number: 1, Y: 0, Height: 60},
		{Number: 2, Y: 60, Height: 60, Lock: true},
	}
	c := addClip(p, "c1", 1, 0, 0, 2)
	c.Selected = true

	bb := e.BuildBoundingBox()
	result := e.ProposeMove(bb, 0, 60)

	assert.True(t, result.Refused, "moving into a locked layer's band should be refused")
	assert.Equal(t, ClipPos{Position: 0, Layer: 1}, bb.MoveClips["c1"], "refused move must leave MoveClips untouched")
}

func TestProposeMove_AppliesDeltaWithoutSnap(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 2)
	c.Selected = true
	e.SetSnappingMode(false)

	bb := e.BuildBoundingBox()
	result := e.ProposeMove(bb, 100, 0) // pps = TickPixels/Scale = 10

	assert.False(t, result.Refused)
	assert.Equal(t, 10.0, result.DeltaSeconds)
	assert.Equal(t, 10.0, bb.MoveClips["c1"].Position)
}
