package engine

import (
	"encoding/json"
	"math"
)

const (
	minMissingTransitionDuration = 0.5
	transitionEdgeEpsilon        = 0.01
)

// missingTransitionProposal is the shape reported via add_missing_transition
// (spec §4.7).
type missingTransitionProposal struct {
	Position float64 `json:"position"`
	Layer    int     `json:"layer"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
}

// DetectMissingTransitions runs spec §4.7's overlap scan for a single clip
// that just finished a drag or resize, emitting add_missing_transition for
// every surviving proposal. Per spec, this only runs for single-item moves;
// callers must not invoke it for group moves.
func (e *Engine) DetectMissingTransitions(clipID string) {
	clip, err := e.project.ClipByID(clipID)
	if err != nil {
		return
	}

	for _, other := range e.project.Clips {
		if other.ID == clip.ID || other.Layer != clip.Layer {
			continue
		}

		var proposal *missingTransitionProposal
		switch {
		case clip.Left() < other.Right() && clip.Left() > other.Left():
			proposal = &missingTransitionProposal{Position: clip.Left(), Layer: clip.Layer, Start: 0, End: other.Right() - clip.Left()}
		case clip.Right() > other.Left() && clip.Right() < other.Right():
			proposal = &missingTransitionProposal{Position: other.Left(), Layer: clip.Layer, Start: 0, End: clip.Right() - other.Left()}
		default:
			continue
		}

		if proposal.End-proposal.Start < minMissingTransitionDuration {
			continue
		}
		if e.coincidesWithExistingTransition(proposal, clip.Layer) {
			continue
		}

		if payload, err := json.Marshal(proposal); err == nil {
			e.host.AddMissingTransition(payload)
		}
	}
}

func (e *Engine) coincidesWithExistingTransition(p *missingTransitionProposal, layer int) bool {
	for _, t := range e.project.Effects {
		if t.Layer != layer {
			continue
		}
		if math.Abs(t.Left()-p.Position) < transitionEdgeEpsilon {
			return true
		}
		if math.Abs(t.Right()-(p.Position+(p.End-p.Start))) < transitionEdgeEpsilon {
			return true
		}
	}
	return false
}
