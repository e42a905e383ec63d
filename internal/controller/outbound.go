// outbound.go implements engine.Host over one bound websocket connection,
// the counterpart of the teacher's broadcast/writeToConn helpers adapted
// to spec §6.2's single-connection-per-engine host bridge.
package controller

import (
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/reelhost/timeline-engine/internal/engine"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// wsHost writes every engine.Host call as an {type,payload} envelope to
// the one connection bound to a session (spec §5: one connection at a
// time, so there is no fan-out to manage here).
type wsHost struct {
	conn   *websocket.Conn
	mu     *chanMutex
	logger *slog.Logger
}

// chanMutex serializes writes to the connection: engine calls into Host
// synchronously from the single goroutine driving ServeConn, but
// background pushes (none today, reserved for future timers) would race
// gorilla's single-writer requirement without this.
type chanMutex struct {
	ch chan struct{}
}

func newChanMutex() *chanMutex {
	m := &chanMutex{ch: make(chan struct{}, 1)}
	m.ch <- struct{}{}
	return m
}

func (m *chanMutex) lock()   { <-m.ch }
func (m *chanMutex) unlock() { m.ch <- struct{}{} }

func newWSHost(conn *websocket.Conn, logger *slog.Logger) *wsHost {
	return &wsHost{conn: conn, mu: newChanMutex(), logger: logger}
}

func (h *wsHost) write(msgType string, payload any) {
	h.mu.lock()
	defer h.mu.unlock()
	if err := h.conn.WriteJSON(&Output{Type: msgType, Payload: payload}); err != nil {
		h.logger.Warn("failed to write outbound message", "type", msgType, "error", err)
	}
}

func (h *wsHost) AddSelection(id string, kind engine.ItemKind, forceClearOthers bool) {
	h.write("addSelection", map[string]any{"id": id, "kind": kind, "force_clear_others": forceClearOthers})
}

func (h *wsHost) RemoveSelection(id string, kind engine.ItemKind) {
	h.write("removeSelection", map[string]any{"id": id, "kind": kind})
}

func (h *wsHost) UpdateClipData(clipJSON []byte, allowKeyframes, forceJSONDiff, ignoreRefresh bool, transactionID string) {
	h.write("updateClipData", map[string]any{
		"clip":             rawJSON(clipJSON),
		"allow_keyframes":  allowKeyframes,
		"force_json_diff":  forceJSONDiff,
		"ignore_refresh":   ignoreRefresh,
		"transaction_id":   transactionID,
	})
}

func (h *wsHost) UpdateTransitionData(transitionJSON []byte, forceJSONDiff, ignoreRefresh bool, transactionID string) {
	h.write("updateTransitionData", map[string]any{
		"transition":      rawJSON(transitionJSON),
		"force_json_diff": forceJSONDiff,
		"ignore_refresh":  ignoreRefresh,
		"transaction_id":  transactionID,
	})
}

func (h *wsHost) StartKeyframeDrag(kind engine.ItemKind, id, transactionID string) {
	h.write("startKeyframeDrag", map[string]any{"kind": kind, "id": id, "transaction_id": transactionID})
}

func (h *wsHost) FinalizeKeyframeDrag(kind engine.ItemKind, id string) {
	h.write("finalizeKeyframeDrag", map[string]any{"kind": kind, "id": id})
}

func (h *wsHost) RetimeClip(id string, end, position float64) {
	h.write("retimeClip", map[string]any{"id": id, "end": end, "position": position})
}

func (h *wsHost) SeekToKeyframe(frame int) {
	h.write("seekToKeyframe", map[string]any{"frame": frame})
}

func (h *wsHost) RazorSliceAtCursor(clipID, transitionID string, cursorSeconds float64) {
	h.write("razorSliceAtCursor", map[string]any{"clip_id": clipID, "transition_id": transitionID, "cursor_seconds": cursorSeconds})
}

func (h *wsHost) PlayheadMoved(frame int) {
	h.write("playheadMoved", map[string]any{"frame": frame})
}

func (h *wsHost) PreviewClipFrame(clipID string, frame int) {
	h.write("previewClipFrame", map[string]any{"clip_id": clipID, "frame": frame})
}

func (h *wsHost) PageReady() {
	h.write("pageReady", nil)
}

func (h *wsHost) QtLog(level, msg string) {
	switch level {
	case "error":
		h.logger.Error(msg, "source", "qt_log")
	case "warn", "warning":
		h.logger.Warn(msg, "source", "qt_log")
	default:
		h.logger.Info(msg, "source", "qt_log")
	}
	h.write("qtLog", map[string]any{"level": level, "message": msg})
}

func (h *wsHost) ResizeTimeline(seconds float64) {
	h.write("resizeTimeline", map[string]any{"seconds": seconds})
}

func (h *wsHost) ShowClipMenu(clipID string) {
	h.write("showClipMenu", map[string]any{"clip_id": clipID})
}

func (h *wsHost) ShowEffectMenu(effectID string) {
	h.write("showEffectMenu", map[string]any{"effect_id": effectID})
}

func (h *wsHost) ShowTransitionMenu(transitionID string) {
	h.write("showTransitionMenu", map[string]any{"transition_id": transitionID})
}

func (h *wsHost) ShowTrackMenu(layerNumber int) {
	h.write("showTrackMenu", map[string]any{"layer_number": layerNumber})
}

func (h *wsHost) ShowMarkerMenu(markerID string) {
	h.write("showMarkerMenu", map[string]any{"marker_id": markerID})
}

func (h *wsHost) ShowPlayheadMenu() {
	h.write("showPlayheadMenu", nil)
}

func (h *wsHost) ShowTimelineMenu(cursorSeconds float64, layerNumber int) {
	h.write("showTimelineMenu", map[string]any{"cursor_seconds": cursorSeconds, "layer_number": layerNumber})
}

func (h *wsHost) AddMissingTransition(transitionJSON []byte) {
	h.write("addMissingTransition", rawJSON(transitionJSON))
}

// rawJSON lets a []byte that is already-marshaled JSON pass through
// WriteJSON without being re-escaped as a base64 string.
func rawJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return json.RawMessage(b)
}
