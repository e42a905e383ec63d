package engine

import (
	"log/slog"

	"github.com/reelhost/timeline-engine/internal/domain"
)

// newTestProject builds a minimal single-layer, single-clip replica shared
// by the gesture tests below: 30fps, one 10px/sec scale, one unlocked layer.
func newTestProject() *domain.Project {
	return &domain.Project{
		FPS:        domain.FPS{Num: 30, Den: 1},
		Duration:   60,
		Scale:      1,
		TickPixels: 10,
		Layers: []domain.Layer{
			{Number: 1, Label: "Track 1", Y: 0, Height: 60},
		},
		Clips: []*domain.Clip{},
		Effects: []*domain.Transition{},
	}
}

func newTestEngine() (*Engine, *domain.Project) {
	project := newTestProject()
	e := New(DefaultConfig(), project, slog.Default())
	return e, project
}

func addClip(p *domain.Project, id string, layer int, position, start, end float64) *domain.Clip {
	c := &domain.Clip{
		ID:       id,
		FileID:   "file-" + id,
		Layer:    layer,
		Position: position,
		Start:    start,
		End:      end,
		Reader:   domain.Reader{Duration: 30},
	}
	p.Clips = append(p.Clips, c)
	return c
}
