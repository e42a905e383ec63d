package engine

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"github.com/reelhost/timeline-engine/internal/domain"
)

// KeyframeOwner identifies which entity's keyframes to enumerate. Exactly
// one of Clip or Transition is set.
type KeyframeOwner struct {
	Clip       *domain.Clip
	Transition *domain.Transition
}

// KeyframeInfo is one enumerated keyframe (spec §4.5.1).
type KeyframeInfo struct {
	Frame         int
	Interpolation domain.Interpolation
	Selected      bool
	Type          string // "clip" | "transition" | "effect"
	Owner         string // id of the owning entity
	InsidePreview bool
	BaseSelected  bool
	Icon          string // data-URL, only set for effect keyframes
}

type kfCacheEntry struct {
	signature string
	result    map[int]KeyframeInfo
}

// GetKeyframes enumerates visible keyframes for a clip or transition,
// applying the visibility gate, the substring filter, and the memoised
// signature cache (spec §4.5.1/§4.5.2).
func (e *Engine) GetKeyframes(owner KeyframeOwner, filter string) map[int]KeyframeInfo {
	if filter == "" {
		filter = e.propertyFilter
	}

	cacheKey, sig := e.keyframeCacheKey(owner, filter)
	if cached, ok := e.kfCache[cacheKey]; ok && cached.signature == sig {
		return cached.result
	}

	var result map[int]KeyframeInfo
	switch {
	case owner.Clip != nil:
		result = e.getClipKeyframes(owner.Clip, filter)
	case owner.Transition != nil:
		result = e.getTransitionKeyframes(owner.Transition, filter)
	default:
		result = map[int]KeyframeInfo{}
	}

	e.kfCache[cacheKey] = kfCacheEntry{signature: sig, result: result}
	return result
}

func (e *Engine) keyframeCacheKey(owner KeyframeOwner, filter string) (key, signature string) {
	switch {
	case owner.Clip != nil:
		key = "clip:" + owner.Clip.ID
		var effectSel []string
		for _, eff := range owner.Clip.Effects {
			if eff.Selected {
				effectSel = append(effectSel, eff.ID)
			}
		}
		signature = fmt.Sprintf("sel=%v|effsel=%s|filter=%s|preview=%s",
			owner.Clip.Selected, strings.Join(effectSel, ","), filter, previewSignature(owner.Clip.UI.KeyframePreview))
	case owner.Transition != nil:
		key = "transition:" + owner.Transition.ID
		signature = fmt.Sprintf("sel=%v|filter=%s", owner.Transition.Selected, filter)
	}
	return key, signature
}

func previewSignature(p *domain.KeyframePreview) string {
	if p == nil {
		return "none"
	}
	return fmt.Sprintf("%s|%v|%v|%v|%v", p.Mode, p.DisplayStart, p.DisplayEnd, p.ProjectedStart, p.ProjectedEnd)
}

func (e *Engine) previewActive(c *domain.Clip) bool { return c.UI.KeyframePreview != nil }

func (e *Engine) anyEffectSelected(c *domain.Clip) bool {
	for _, eff := range c.Effects {
		if eff.Selected {
			return true
		}
	}
	return false
}

func (e *Engine) getClipKeyframes(c *domain.Clip, filter string) map[int]KeyframeInfo {
	out := make(map[int]KeyframeInfo)

	if !(c.Selected || e.anyEffectSelected(c) || e.previewActive(c)) {
		return out
	}

	for _, desc := range domain.ClipProperties {
		if !matchesFilter(desc.Name, filter) {
			continue
		}
		e.collectProperty(out, c.Properties, desc, "clip", c.ID, c.Selected, c)
	}

	for _, eff := range c.Effects {
		for _, desc := range domain.ClipProperties {
			if !matchesFilter(desc.Name, filter) {
				continue
			}
			before := len(out)
			e.collectProperty(out, eff.Properties, desc, "effect", eff.ID, eff.Selected, c)
			if len(out) > before {
				e.colorizeEffectIcons(out, eff)
			}
		}
	}

	return out
}

func (e *Engine) getTransitionKeyframes(t *domain.Transition, filter string) map[int]KeyframeInfo {
	out := make(map[int]KeyframeInfo)
	if !t.Selected {
		return out
	}

	for _, desc := range domain.TransitionProperties {
		if !matchesFilter(desc.Name, filter) {
			continue
		}
		e.collectProperty(out, t.Properties, desc, "transition", t.ID, t.Selected, nil)
	}
	return out
}

func matchesFilter(propertyName, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(propertyName), strings.ToLower(filter))
}

// collectProperty walks one property descriptor's Track (or the red channel
// of a ColorTrack) and merges its points into out, applying the
// selected-wins collision rule (spec §4.5.1) and, when c is non-nil,
// computing InsidePreview against the clip's live preview window.
func (e *Engine) collectProperty(out map[int]KeyframeInfo, props domain.PropertyTracks, desc domain.PropertyDescriptor, typ, owner string, ownerSelected bool, c *domain.Clip) {
	var track *domain.Track
	if desc.Kind == domain.PropertyColor {
		ct := props.Color(desc.Name)
		if ct == nil || !ct.Red.HasAnimation() {
			return
		}
		track = &ct.Red
	} else {
		track = props.Track(desc.Name)
		if !track.HasAnimation() {
			return
		}
	}

	for _, p := range track.Points {
		info := KeyframeInfo{
			Frame:         p.Co.X,
			Interpolation: p.Interpolation,
			Selected:      ownerSelected,
			Type:          typ,
			Owner:         owner,
			BaseSelected:  ownerSelected,
		}
		if c != nil {
			info.InsidePreview = e.keyframeInsidePreview(c, p.Co.X)
		} else {
			info.InsidePreview = true
		}

		if existing, ok := out[p.Co.X]; ok && existing.Selected && !ownerSelected {
			continue // selected entry already present wins collisions
		}
		out[p.Co.X] = info
	}
}

func (e *Engine) colorizeEffectIcons(out map[int]KeyframeInfo, eff *domain.Effect) {
	for frame, info := range out {
		if info.Owner != eff.ID || info.Icon != "" {
			continue
		}
		info.Icon = keyframeIconDataURL(info.Interpolation, eff.PaletteColor)
		out[frame] = info
	}
}

// keyframeIconDataURL renders the per-interpolation SVG template with fill
// rewritten to color (spec §4.5.1): the base64 payload is decoded, its fill
// replaced, and re-encoded. Falls back to the uncolorised template
// when color is empty (spec §7: missing CSS/palette is a one-shot retry,
// modelled here as "use the template's own fill").
func keyframeIconDataURL(interp domain.Interpolation, color string) string {
	template := keyframeSVGTemplates[interp.String()]
	if color == "" {
		return template
	}
	svg, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(template, svgDataURLPrefix))
	if err != nil {
		return template
	}
	colored := strings.Replace(string(svg), `fill="#000000"`, `fill="`+color+`"`, 1)
	return svgDataURLPrefix + base64.StdEncoding.EncodeToString([]byte(colored))
}

const svgDataURLPrefix = "data:image/svg+xml;base64,"

var keyframeSVGTemplates = map[string]string{
	"bezier":   "data:image/svg+xml;base64,PHN2ZyBmaWxsPSIjMDAwMDAwIi8+", // bezier handle glyph
	"linear":   "data:image/svg+xml;base64,PHN2ZyBmaWxsPSIjMDAwMDAwIi8+", // straight-line glyph
	"constant": "data:image/svg+xml;base64,PHN2ZyBmaWxsPSIjMDAwMDAwIi8+", // step glyph
}

// frameToTimelineSeconds maps a clip-local frame number to timeline seconds
// (spec §3 frame identity).
func (e *Engine) frameToTimelineSeconds(c *domain.Clip, frame int) float64 {
	f := e.fps()
	if f == 0 {
		return c.Position
	}
	clipLocal := float64(frame-1) / f
	return c.Position + (clipLocal - c.Start)
}

// keyframeInsidePreview implements spec §4.5.3's trim/retime mapping and
// the half-frame tolerance window test.
func (e *Engine) keyframeInsidePreview(c *domain.Clip, frame int) bool {
	preview := c.UI.KeyframePreview
	if preview == nil {
		return true
	}

	projectSeconds := e.frameToTimelineSeconds(c, frame)
	mapped := e.mapPreviewSeconds(preview, projectSeconds)

	f := e.fps()
	tolerance := 0.0
	if f > 0 {
		tolerance = 0.5 / f
	}
	const eps = 1e-9
	if tolerance < eps {
		tolerance = eps
	}

	return mapped >= preview.DisplayStart-tolerance && mapped <= preview.DisplayEnd+tolerance
}

// mapPreviewSeconds applies the trim or retime transform of spec §4.5.3.
func (e *Engine) mapPreviewSeconds(preview *domain.KeyframePreview, originalSeconds float64) float64 {
	if preview.Mode == domain.PreviewModeTrim {
		return originalSeconds
	}

	projectedDuration := preview.ProjectedEnd - preview.ProjectedStart
	displayDuration := preview.DisplayEnd - preview.DisplayStart
	if projectedDuration == 0 || displayDuration == 0 {
		return preview.DisplayStart
	}

	return preview.DisplayStart + ((originalSeconds-preview.ProjectedStart)/projectedDuration)*displayDuration
}

// previewLeftPx computes the live DOM offset for a mapped keyframe
// (spec §4.5.4): leftPx = round((mapped - displayStart) * pixelsPerSecond).
func previewLeftPx(mappedSeconds, displayStart, pixelsPerSecond float64) int {
	return int(math.Round((mappedSeconds - displayStart) * pixelsPerSecond))
}
