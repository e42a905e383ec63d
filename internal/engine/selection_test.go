package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_PlainSelectSetsLastSelected(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 2)

	e.Select("c1", ItemClip, true, SelectEvent{}, false)

	assert.True(t, c.Selected)
	require.NotNil(t, e.lastSelected)
	assert.Equal(t, "c1", e.lastSelected.ID)
}

func TestSelect_CtrlTogglesOff(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 2)
	c.Selected = true

	e.Select("c1", ItemClip, false, SelectEvent{Ctrl: true}, false)

	assert.False(t, c.Selected, "ctrl-click on a selected item should deselect it")
}

func TestSelect_RazorModeDoesNotSelect(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 2)
	e.SetRazorMode(true)

	e.Select("c1", ItemClip, true, SelectEvent{CursorSeconds: 1}, false)

	assert.False(t, c.Selected, "razor mode should slice, not select")
}

func TestSelect_RippleSelectsSameLayerAtOrPastAnchor(t *testing.T) {
	e, p := newTestEngine()
	near := addClip(p, "near", 1, 0, 0, 1)
	far := addClip(p, "far", 1, 5, 0, 1)
	before := addClip(p, "before", 1, -2, -2, -1) // position < anchor, i.e. earlier

	e.Select("near", ItemClip, true, SelectEvent{Alt: true}, false)

	assert.True(t, near.Selected)
	assert.True(t, far.Selected, "ripple select should include everything at or after the anchor on the same layer")
	assert.False(t, before.Selected, "ripple select must not include items before the anchor")
}

func TestSelectAll_SelectsEveryClipAndTransition(t *testing.T) {
	e, p := newTestEngine()
	c1 := addClip(p, "c1", 1, 0, 0, 1)
	c2 := addClip(p, "c2", 1, 2, 0, 1)

	e.SelectAll()

	assert.True(t, c1.Selected)
	assert.True(t, c2.Selected)
}

func TestClearAllSelections(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 1)
	c.Selected = true
	e.lastSelected = &selectionAnchor{ID: "c1"}

	e.ClearAllSelections()

	assert.False(t, c.Selected)
	assert.Nil(t, e.lastSelected)
}
