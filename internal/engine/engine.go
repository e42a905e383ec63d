// Package engine implements the timeline controller and interaction engine
// described in spec.md: the project replica, the snap/bounding-box/selection
// machinery, the keyframe preview mapper, and the host-bridge operations
// that drive them. One Engine instance owns exactly one project replica and
// runs on exactly one goroutine (spec §5).
package engine

import (
	"log/slog"

	"github.com/reelhost/timeline-engine/internal/domain"
)

// Config holds the session-level knobs spec.md leaves to the host/embedder
// (SPEC_FULL §4.2: snap tolerance and the timeline autogrow length/padding
// are configurable; the FPS grid always comes from the loaded project).
type Config struct {
	SnapThresholdPx float64
	MinTimelineLen  float64
	MinTimelinePad  float64
}

// DefaultConfig mirrors the constants named in spec §4.7/§4.9.
func DefaultConfig() Config {
	return Config{
		SnapThresholdPx: 10,
		MinTimelineLen:  300,
		MinTimelinePad:  10,
	}
}

// Engine is the single-threaded controller for one project replica.
type Engine struct {
	cfg     Config
	project *domain.Project
	logger  *slog.Logger
	host    Host
	view    ViewState

	ctx *InteractionContext

	lastSelected   *selectionAnchor
	razorMode      bool
	timingMode     bool
	followMode     bool
	snappingMode   bool
	propertyFilter string

	kfCache map[string]kfCacheEntry
}

// New builds an Engine over an already-loaded project replica.
func New(cfg Config, project *domain.Project, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:          cfg,
		project:      project,
		logger:       logger,
		host:         NopHost{},
		snappingMode: true,
		kfCache:      make(map[string]kfCacheEntry),
	}
}

// SetHost installs the outbound half of the host bridge (spec §6.2).
func (e *Engine) SetHost(h Host) {
	if h == nil {
		h = NopHost{}
	}
	e.host = h
}

// Project exposes the live replica (read-mostly outside the engine).
func (e *Engine) Project() *domain.Project { return e.project }

// LoadJSON replaces the entire project replica (spec §6.1 loadJson).
func (e *Engine) LoadJSON(project *domain.Project) {
	e.project = project
	e.kfCache = make(map[string]kfCacheEntry)
	e.lastSelected = nil
	e.ctx = nil
}

func (e *Engine) fps() float64 {
	return e.project.FPS.Value()
}

// SetSnappingMode, SetRazorMode, SetTimingMode, SetFollow implement the
// mode-flag inbound methods of spec §6.1.
func (e *Engine) SetSnappingMode(on bool) { e.snappingMode = on }
func (e *Engine) SetRazorMode(on bool)    { e.razorMode = on }
func (e *Engine) SetTimingMode(on bool)   { e.timingMode = on }
func (e *Engine) SetFollow(on bool)       { e.followMode = on }

// SetPropertyFilter implements spec §6.1 setPropertyFilter.
func (e *Engine) SetPropertyFilter(filter string) {
	e.propertyFilter = filter
	e.kfCache = make(map[string]kfCacheEntry)
}

// RenderCache implements spec §6.1 renderCache.
func (e *Engine) RenderCache(ranges []domain.ProgressRange) {
	e.project.Progress.Ranges = ranges
}
