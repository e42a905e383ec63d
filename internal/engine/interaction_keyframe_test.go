package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhost/timeline-engine/internal/domain"
)

func TestDragKeyframe_SnapsToFrameGrid(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 2)
	track := &domain.Track{Points: []domain.Point{{Co: domain.Coordinate{X: 10, Y: 0.5}}}}
	c.Properties.SetTrack("alpha", track)

	require.NoError(t, e.BeginKeyframeDrag(ItemClip, "c1", 10, "tx1"))

	frame, err := e.DragKeyframe(1.6)
	require.NoError(t, err)
	assert.Equal(t, 49, frame, "1.6s at 30fps should land on frame 49")
}

func TestDragKeyframe_ClampsToExclusiveRightEdge(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 2)
	c.Properties.SetTrack("alpha", &domain.Track{Points: []domain.Point{{Co: domain.Coordinate{X: 10, Y: 0.5}}}})

	require.NoError(t, e.BeginKeyframeDrag(ItemClip, "c1", 10, "tx1"))

	frame, err := e.DragKeyframe(100)
	require.NoError(t, err)
	assert.Equal(t, 60, frame, "end=2s at 30fps has last valid frame floor(2*30)=60")
}

func TestDragKeyframe_ClampsToStart(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 2)
	c.Properties.SetTrack("alpha", &domain.Track{Points: []domain.Point{{Co: domain.Coordinate{X: 10, Y: 0.5}}}})

	require.NoError(t, e.BeginKeyframeDrag(ItemClip, "c1", 10, "tx1"))

	frame, err := e.DragKeyframe(-5)
	require.NoError(t, err)
	assert.Equal(t, 1, frame, "minimum frame at start=0 is 1")
}

func TestStopKeyframeDrag_RemapsPointAcrossAllChannels(t *testing.T) {
	e, p := newTestEngine()
	c := addClip(p, "c1", 1, 0, 0, 2)
	c.Properties.SetTrack("alpha", &domain.Track{Points: []domain.Point{
		{Co: domain.Coordinate{X: 10, Y: 0.5}},
		{Co: domain.Coordinate{X: 20, Y: 1.0}},
	}})
	c.Properties.SetColor("color", &domain.ColorTrack{
		Red:   domain.Track{Points: []domain.Point{{Co: domain.Coordinate{X: 10, Y: 255}}}},
		Green: domain.Track{Points: []domain.Point{{Co: domain.Coordinate{X: 10, Y: 0}}}},
		Blue:  domain.Track{Points: []domain.Point{{Co: domain.Coordinate{X: 10, Y: 0}}}},
	})

	require.NoError(t, e.BeginKeyframeDrag(ItemClip, "c1", 10, "tx1"))
	_, err := e.DragKeyframe(1.6)
	require.NoError(t, err)
	require.NoError(t, e.StopKeyframeDrag())

	assert.Equal(t, 49, c.Properties.Track("alpha").Points[0].Co.X, "moved point should land on the new frame")
	assert.Equal(t, 20, c.Properties.Track("alpha").Points[1].Co.X, "untouched point should stay put")
	assert.Equal(t, 49, c.Properties.Color("color").Red.Points[0].Co.X, "color channels should remap alongside scalar tracks")
	assert.Equal(t, 49, c.Properties.Color("color").Blue.Points[0].Co.X)
	assert.Nil(t, e.ctx, "gesture context should clear once the drag commits")
}
