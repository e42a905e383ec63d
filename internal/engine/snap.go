package engine

import "math"

// SnapResult is the nearest snap target found for a set of candidate pixel
// positions (spec §4.2).
type SnapResult struct {
	TargetPx float64
	Offset   float64 // target - candidate that produced it; add to correct the move
	Label    string
}

// SnapOptions controls what the snap engine considers.
type SnapOptions struct {
	ThresholdPx      float64
	IgnoreIDs        map[string]bool
	IncludeKeyframes bool
}

// Snap scans clip/transition edges, markers, the playhead, and the
// timeline end for the candidate nearest any of them within ThresholdPx,
// breaking ties by scan order (spec §4.2). ok is false if nothing matched.
func (e *Engine) Snap(candidates []float64, opts SnapOptions) (SnapResult, bool) {
	pps := e.project.PixelsPerSecond()
	targets := e.snapTargetsPx(pps, opts)

	var best SnapResult
	found := false
	bestAbs := math.Inf(1)

	for _, candidate := range candidates {
		for _, tgt := range targets {
			diff := tgt.px - candidate
			abs := math.Abs(diff)
			if abs > opts.ThresholdPx {
				continue
			}
			if abs < bestAbs {
				bestAbs = abs
				best = SnapResult{TargetPx: tgt.px, Offset: diff, Label: tgt.label}
				found = true
			}
		}
	}

	return best, found
}

type snapTarget struct {
	px    float64
	label string
}

// snapTargetsPx enumerates every candidate snap target in the fixed scan
// order the tie-break rule depends on: clip edges, transition edges,
// markers, playhead, timeline end, then (optionally) keyframes.
func (e *Engine) snapTargetsPx(pps float64, opts SnapOptions) []snapTarget {
	var out []snapTarget

	for _, c := range e.project.Clips {
		if opts.IgnoreIDs[c.ID] {
			continue
		}
		out = append(out,
			snapTarget{TimeToPixel(c.Left(), pps), "clip:" + c.ID + ":left"},
			snapTarget{TimeToPixel(c.Right(), pps), "clip:" + c.ID + ":right"},
		)
	}

	for _, t := range e.project.Effects {
		if opts.IgnoreIDs[t.ID] {
			continue
		}
		out = append(out,
			snapTarget{TimeToPixel(t.Left(), pps), "transition:" + t.ID + ":left"},
			snapTarget{TimeToPixel(t.Right(), pps), "transition:" + t.ID + ":right"},
		)
	}

	for _, m := range e.project.Markers {
		out = append(out, snapTarget{TimeToPixel(m.Position, pps), "marker:" + m.ID})
	}

	out = append(out, snapTarget{TimeToPixel(e.project.PlayheadPosition, pps), "playhead"})
	out = append(out, snapTarget{TimeToPixel(e.project.Duration, pps), "timeline-end"})

	if opts.IncludeKeyframes {
		for _, c := range e.project.Clips {
			if !c.Selected {
				continue
			}
			for frame := range e.GetKeyframes(KeyframeOwner{Clip: c}, "") {
				t := e.frameToTimelineSeconds(c, frame)
				out = append(out, snapTarget{TimeToPixel(t, pps), "keyframe"})
			}
		}
		for _, tr := range e.project.Effects {
			if !tr.Selected {
				continue
			}
			for frame := range e.GetKeyframes(KeyframeOwner{Transition: tr}, "") {
				t := tr.Position + float64(frame-1)/e.fps()
				out = append(out, snapTarget{TimeToPixel(t, pps), "keyframe"})
			}
		}
	}

	return out
}
