package engine

import (
	"fmt"
	"math"

	"github.com/reelhost/timeline-engine/internal/domain"
)

// ThumbnailURL implements spec §6.3: {ThumbServer}{file_id}/{frame}/?{nonce}
// where frame = floor(sourceFps * clip.start) + 1. nonce is supplied by the
// caller (a random value, to defeat aggressive caching).
func (e *Engine) ThumbnailURL(c *domain.Clip, nonce string) string {
	frame := int(math.Floor(c.Reader.FPS.Value()*c.Start)) + 1
	return fmt.Sprintf("%s%s/%d/?%s", e.view.ThumbAddress, c.FileID, frame, nonce)
}

// ViewState holds the viewport/presentation knobs the host pushes via the
// simple setter methods of spec §6.1 that neither mutate the project tree
// nor drive a gesture.
type ViewState struct {
	Bound         bool
	ThumbAddress  string
	ThemeColors   map[string]string
	ThemeCSS      string
	TrackLabel    string
	ScrollNormalized float64
	ScrollLeftPx  float64
}

// EnableQt implements spec §6.1 enableQt: marks the engine bound to the
// native host and reports readiness.
func (e *Engine) EnableQt() {
	e.view.Bound = true
	e.host.PageReady()
}

// SetThumbAddress implements spec §6.1 setThumbAddress.
func (e *Engine) SetThumbAddress(url string) { e.view.ThumbAddress = url }

// SetThemeColors implements spec §6.1 setThemeColors.
func (e *Engine) SetThemeColors(vars map[string]string) { e.view.ThemeColors = vars }

// SetTheme implements spec §6.1 setTheme: installs theme CSS and forces
// every effect keyframe icon to re-colorise on the next enumeration.
func (e *Engine) SetTheme(css string) {
	e.view.ThemeCSS = css
	e.kfCache = make(map[string]kfCacheEntry)
}

// SetTrackLabel implements spec §6.1 setTrackLabel: a %s format string
// where %s is substituted with the layer number at render time.
func (e *Engine) SetTrackLabel(format string) { e.view.TrackLabel = format }

// TrackLabel renders the configured format for a given layer number.
func (e *Engine) TrackLabel(layerNumber int) string {
	if e.view.TrackLabel == "" {
		return ""
	}
	return fmtTrackLabel(e.view.TrackLabel, layerNumber)
}

func fmtTrackLabel(format string, layerNumber int) string {
	out := make([]byte, 0, len(format)+4)
	for i := 0; i < len(format); i++ {
		if format[i] == '%' && i+1 < len(format) && format[i+1] == 's' {
			out = append(out, []byte(itoa(layerNumber))...)
			i++
			continue
		}
		out = append(out, format[i])
	}
	return string(out)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// SetScale implements spec §6.1 setScale: changes pixelsPerSecond while
// keeping the time under cursorX (or the playhead, or the left edge)
// fixed. resolveScaleAnchor names the fallback explicitly (spec §9 open
// question).
func (e *Engine) SetScale(scale float64, cursorXPx float64) {
	anchorSeconds := e.resolveScaleAnchor(cursorXPx)
	oldPPS := e.project.PixelsPerSecond()
	anchorPx := TimeToPixel(anchorSeconds, oldPPS)

	e.project.Scale = scale
	newPPS := e.project.PixelsPerSecond()

	newAnchorPx := TimeToPixel(anchorSeconds, newPPS)
	e.view.ScrollLeftPx += newAnchorPx - anchorPx
}

// resolveScaleAnchor picks the time to keep fixed under a rescale: cursorX
// when it is positive, else the playhead if it is not scrolled off the left
// edge (the engine does not track the viewport width, so a playhead past the
// right edge also counts), else the left edge of the viewport (spec §6.1/§9).
func (e *Engine) resolveScaleAnchor(cursorXPx float64) float64 {
	if cursorXPx > 0 {
		return PixelToTime(cursorXPx+e.view.ScrollLeftPx, e.project.PixelsPerSecond())
	}
	playheadPx := TimeToPixel(e.project.PlayheadPosition, e.project.PixelsPerSecond())
	if playheadPx >= e.view.ScrollLeftPx {
		return e.project.PlayheadPosition
	}
	return PixelToTime(e.view.ScrollLeftPx, e.project.PixelsPerSecond())
}

// SetScroll implements spec §6.1 setScroll: absolute scroll position in
// [0,1] of the total scrollable width.
func (e *Engine) SetScroll(normalized float64) {
	normalized = math.Max(0, math.Min(1, normalized))
	e.view.ScrollNormalized = normalized
	totalWidthPx := TimeToPixel(e.project.Duration, e.project.PixelsPerSecond())
	e.view.ScrollLeftPx = normalized * totalWidthPx
}

// ScrollLeft implements spec §6.1 scrollLeft: relative horizontal scroll.
func (e *Engine) ScrollLeft(deltaPx float64) {
	e.view.ScrollLeftPx = math.Max(0, e.view.ScrollLeftPx+deltaPx)
}

// CenterOnTime implements spec §6.1 centerOnTime.
func (e *Engine) CenterOnTime(t float64, viewportWidthPx float64) {
	pps := e.project.PixelsPerSecond()
	targetPx := TimeToPixel(t, pps) - viewportWidthPx/2
	totalWidthPx := TimeToPixel(e.project.Duration, pps)
	maxLeft := math.Max(0, totalWidthPx-viewportWidthPx)
	e.view.ScrollLeftPx = math.Max(0, math.Min(maxLeft, targetPx))
}

// CenterOnPlayhead implements spec §6.1 centerOnPlayhead.
func (e *Engine) CenterOnPlayhead(viewportWidthPx float64) {
	e.CenterOnTime(e.project.PlayheadPosition, viewportWidthPx)
}

// SetDragging implements spec §6.1 setDragging. SetDragging(false) discards
// any in-progress gesture; SetDragging(true) has no effect, because the
// dragging state is whether a gesture context exists (see Dragging).
func (e *Engine) SetDragging(b bool) {
	if !b {
		e.ctx = nil
	}
}

// RefreshTimeline implements spec §6.1 refreshTimeline: forces a full
// keyframe-cache invalidation so the next render re-walks every entity.
func (e *Engine) RefreshTimeline() {
	e.kfCache = make(map[string]kfCacheEntry)
}

// UpdateThumbnail implements spec §6.1 updateThumbnail as a no-op: it
// changes no replica state and makes no host call. ThumbnailURL takes its
// cache-busting nonce from its caller.
func (e *Engine) UpdateThumbnail(clipID string) {}

// ReDrawAllAudioData implements spec §6.1 reDrawAllAudioData: a render hint
// with no replica state to mutate at the engine layer.
func (e *Engine) ReDrawAllAudioData() {}
