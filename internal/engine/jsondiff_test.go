package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhost/timeline-engine/internal/domain"
)

func TestApplyJSONDiff_UpdateScalarField(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 0, 0, 2)

	err := e.ApplyJSONDiff([]DiffAction{
		{
			Type:  DiffUpdate,
			Key:   []interface{}{"clips", map[string]interface{}{"id": "c1"}},
			Value: map[string]interface{}{"position": 3.0},
		},
	})
	require.NoError(t, err)

	c, err := e.project.ClipByID("c1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, c.Position, "update should merge the new position into the existing clip object")
	assert.Equal(t, 0.0, c.Start, "fields not named in the update should be left alone")
}

func TestApplyJSONDiff_DeleteClip(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 0, 0, 2)
	addClip(p, "c2", 1, 5, 0, 2)

	err := e.ApplyJSONDiff([]DiffAction{
		{Type: DiffDelete, Key: []interface{}{"clips", map[string]interface{}{"id": "c1"}}},
	})
	require.NoError(t, err)

	assert.Len(t, e.project.Clips, 1)
	_, err = e.project.ClipByID("c1")
	assert.Error(t, err, "deleted clip should no longer be findable")
}

func TestApplyJSONDiff_InsertIntoArray(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 5, 0, 2)

	err := e.ApplyJSONDiff([]DiffAction{
		{
			Type: DiffInsert,
			Key:  []interface{}{"clips"},
			Value: map[string]interface{}{
				"id": "c2", "file_id": "f2", "layer": 1.0,
				"position": 0.0, "start": 0.0, "end": 1.0,
				"reader": map[string]interface{}{}, "ui": map[string]interface{}{},
			},
		},
	})
	require.NoError(t, err)

	assert.Len(t, e.project.Clips, 2)
	_, err = e.project.ClipByID("c2")
	assert.NoError(t, err)
}

func TestApplyJSONDiff_ResortsByPositionAfterPatch(t *testing.T) {
	e, p := newTestEngine()
	addClip(p, "c1", 1, 10, 0, 2)
	addClip(p, "c2", 1, 0, 0, 2)

	err := e.ApplyJSONDiff(nil)
	require.NoError(t, err)

	require.Len(t, e.project.Clips, 2)
	assert.Equal(t, "c2", e.project.Clips[0].ID, "clips should be re-sorted by position ascending")
	assert.Equal(t, "c1", e.project.Clips[1].ID)
}

func TestApplyJSONDiff_ReindexesLayerY(t *testing.T) {
	e, p := newTestEngine()
	p.Layers = []domain.Layer{
		{Number: 2, Height: 40},
		{Number: 1, Height: 60},
	}
	_ = p
	err := e.ApplyJSONDiff(nil)
	require.NoError(t, err)

	require.Len(t, e.project.Layers, 2)
	assert.Equal(t, 1, e.project.Layers[0].Number)
	assert.Equal(t, 0, e.project.Layers[0].Y)
	assert.Equal(t, 2, e.project.Layers[1].Number)
	assert.Equal(t, 60, e.project.Layers[1].Y)
}
