// dispatch.go wires every inbound websocket method name (spec §6.1) to a
// call on the per-connection *engine.Engine, the counterpart of the
// teacher's per-room inbound handler table in ws-handler.controller.go.
package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/reelhost/timeline-engine/internal/domain"
	"github.com/reelhost/timeline-engine/internal/engine"
	"github.com/reelhost/timeline-engine/pkg/wsrouter"
)

// decode unmarshals the router's raw payload into T. The router always
// hands handlers a json.RawMessage; typed wraps that one assertion so each
// handler below can work with a concrete struct instead.
func decode[T any](payload any) (T, error) {
	var dst T
	raw, ok := payload.(json.RawMessage)
	if !ok {
		return dst, fmt.Errorf("unexpected payload type %T", payload)
	}
	if len(raw) == 0 {
		return dst, nil
	}
	if err := json.Unmarshal(raw, &dst); err != nil {
		return dst, fmt.Errorf("decode payload: %w", err)
	}
	return dst, nil
}

func typed[T any](f func(ctx context.Context, conn *websocket.Conn, in T) error) wsrouter.HandlerFunc[any] {
	return func(ctx context.Context, conn *websocket.Conn, payload any) error {
		in, err := decode[T](payload)
		if err != nil {
			return err
		}
		return f(ctx, conn, in)
	}
}

// buildDispatchRouter registers the full inbound method table against one
// engine instance. A fresh router is built per connection since each
// connection drives exactly one engine (spec §5).
func (c *Controller) buildDispatchRouter(e *engine.Engine) *wsrouter.WSRouter {
	r := wsrouter.New()
	r.Use(c.wsRequestIDMw())
	r.Use(c.loggerWSMw())

	r.Handle("loadJson", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Project *domain.Project `json:"project"`
	}) error {
		e.LoadJSON(in.Project)
		return nil
	}))

	r.Handle("applyJsonDiff", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Actions []engine.DiffAction `json:"actions"`
	}) error {
		return e.ApplyJSONDiff(in.Actions)
	}))

	r.Handle("select", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		ItemID          string          `json:"item_id"`
		Kind            engine.ItemKind `json:"kind"`
		ClearSelections bool            `json:"clear_selections"`
		Ctrl            bool            `json:"ctrl"`
		Shift           bool            `json:"shift"`
		Alt             bool            `json:"alt"`
		CursorSeconds   float64         `json:"cursor_seconds"`
		ForceRipple     bool            `json:"force_ripple"`
	}) error {
		e.Select(in.ItemID, in.Kind, in.ClearSelections, engine.SelectEvent{
			Ctrl:          in.Ctrl,
			Shift:         in.Shift,
			Alt:           in.Alt,
			CursorSeconds: in.CursorSeconds,
		}, in.ForceRipple)
		return nil
	}))

	r.Handle("selectAll", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		e.SelectAll()
		return nil
	}))

	r.Handle("clearAllSelections", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		e.ClearAllSelections()
		return nil
	}))

	r.Handle("beginClipDrag", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		ClipID        string `json:"clip_id"`
		TransactionID string `json:"transaction_id"`
	}) error {
		return e.BeginClipDrag(in.ClipID, in.TransactionID)
	}))

	r.Handle("dragClip", typed(func(_ context.Context, conn *websocket.Conn, in struct {
		DeltaXPx float64 `json:"delta_x_px"`
		DeltaYPx float64 `json:"delta_y_px"`
	}) error {
		result, err := e.DragClip(in.DeltaXPx, in.DeltaYPx)
		if err != nil {
			return err
		}
		return conn.WriteJSON(&Output{Type: "moveResult", Payload: result})
	}))

	r.Handle("stopClipDrag", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		return e.StopClipDrag()
	}))

	r.Handle("beginClipResize", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		ClipID        string        `json:"clip_id"`
		Handle        engine.Handle `json:"handle"`
		TransactionID string        `json:"transaction_id"`
	}) error {
		return e.BeginClipResize(in.ClipID, in.Handle, in.TransactionID)
	}))

	r.Handle("resizeClip", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		DeltaSeconds float64 `json:"delta_seconds"`
	}) error {
		return e.ResizeClip(in.DeltaSeconds)
	}))

	r.Handle("stopClipResize", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		return e.StopClipResize()
	}))

	r.Handle("beginKeyframeDrag", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		OwnerKind     engine.ItemKind `json:"owner_kind"`
		OwnerID       string          `json:"owner_id"`
		Frame         int             `json:"frame"`
		TransactionID string          `json:"transaction_id"`
	}) error {
		return e.BeginKeyframeDrag(in.OwnerKind, in.OwnerID, in.Frame, in.TransactionID)
	}))

	r.Handle("dragKeyframe", typed(func(_ context.Context, conn *websocket.Conn, in struct {
		ProposedSeconds float64 `json:"proposed_seconds"`
	}) error {
		frame, err := e.DragKeyframe(in.ProposedSeconds)
		if err != nil {
			return err
		}
		return conn.WriteJSON(&Output{Type: "keyframeDragFrame", Payload: frame})
	}))

	r.Handle("stopKeyframeDrag", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		return e.StopKeyframeDrag()
	}))

	r.Handle("startManualMove", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Kind string   `json:"kind"`
		IDs  []string `json:"ids"`
	}) error {
		return e.StartManualMove(in.Kind, in.IDs)
	}))

	r.Handle("moveItem", typed(func(_ context.Context, conn *websocket.Conn, in struct {
		DeltaXPx float64 `json:"delta_x_px"`
		DeltaYPx float64 `json:"delta_y_px"`
	}) error {
		result, err := e.MoveItem(in.DeltaXPx, in.DeltaYPx)
		if err != nil {
			return err
		}
		return conn.WriteJSON(&Output{Type: "moveResult", Payload: result})
	}))

	r.Handle("updateRecentItemJson", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Kind          string   `json:"kind"`
		IDs           []string `json:"ids"`
		TransactionID string   `json:"transaction_id"`
	}) error {
		return e.UpdateRecentItemJSON(in.Kind, in.IDs, in.TransactionID)
	}))

	r.Handle("marqueeSelect", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		MinSeconds  float64 `json:"min_seconds"`
		MaxSeconds  float64 `json:"max_seconds"`
		MinLayer    int     `json:"min_layer"`
		MaxLayer    int     `json:"max_layer"`
		ClearOthers bool    `json:"clear_others"`
	}) error {
		e.MarqueeSelect(in.MinSeconds, in.MaxSeconds, in.MinLayer, in.MaxLayer, in.ClearOthers)
		return nil
	}))

	r.Handle("setSnappingMode", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		On bool `json:"on"`
	}) error {
		e.SetSnappingMode(in.On)
		return nil
	}))

	r.Handle("setRazorMode", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		On bool `json:"on"`
	}) error {
		e.SetRazorMode(in.On)
		return nil
	}))

	r.Handle("setTimingMode", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		On bool `json:"on"`
	}) error {
		e.SetTimingMode(in.On)
		return nil
	}))

	r.Handle("setFollow", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		On bool `json:"on"`
	}) error {
		e.SetFollow(in.On)
		return nil
	}))

	r.Handle("setPropertyFilter", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Filter string `json:"filter"`
	}) error {
		e.SetPropertyFilter(in.Filter)
		return nil
	}))

	r.Handle("renderCache", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Ranges []domain.ProgressRange `json:"ranges"`
	}) error {
		e.RenderCache(in.Ranges)
		return nil
	}))

	r.Handle("enableQt", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		e.EnableQt()
		return nil
	}))

	r.Handle("setThumbAddress", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		URL string `json:"url"`
	}) error {
		e.SetThumbAddress(in.URL)
		return nil
	}))

	r.Handle("setThemeColors", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Vars map[string]string `json:"vars"`
	}) error {
		e.SetThemeColors(in.Vars)
		return nil
	}))

	r.Handle("setTheme", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		CSS string `json:"css"`
	}) error {
		e.SetTheme(in.CSS)
		return nil
	}))

	r.Handle("setTrackLabel", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Format string `json:"format"`
	}) error {
		e.SetTrackLabel(in.Format)
		return nil
	}))

	r.Handle("setScale", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Scale     float64 `json:"scale"`
		CursorXPx float64 `json:"cursor_x_px"`
	}) error {
		e.SetScale(in.Scale, in.CursorXPx)
		return nil
	}))

	r.Handle("setScroll", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Normalized float64 `json:"normalized"`
	}) error {
		e.SetScroll(in.Normalized)
		return nil
	}))

	r.Handle("scrollLeft", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		DeltaPx float64 `json:"delta_px"`
	}) error {
		e.ScrollLeft(in.DeltaPx)
		return nil
	}))

	r.Handle("centerOnTime", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Seconds         float64 `json:"seconds"`
		ViewportWidthPx float64 `json:"viewport_width_px"`
	}) error {
		e.CenterOnTime(in.Seconds, in.ViewportWidthPx)
		return nil
	}))

	r.Handle("centerOnPlayhead", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		ViewportWidthPx float64 `json:"viewport_width_px"`
	}) error {
		e.CenterOnPlayhead(in.ViewportWidthPx)
		return nil
	}))

	r.Handle("setDragging", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Dragging bool `json:"dragging"`
	}) error {
		e.SetDragging(in.Dragging)
		return nil
	}))

	r.Handle("refreshTimeline", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		e.RefreshTimeline()
		return nil
	}))

	r.Handle("updateThumbnail", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		ClipID string `json:"clip_id"`
	}) error {
		e.UpdateThumbnail(in.ClipID)
		return nil
	}))

	r.Handle("reDrawAllAudioData", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		e.ReDrawAllAudioData()
		return nil
	}))

	r.Handle("movePlayhead", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Seconds float64 `json:"seconds"`
	}) error {
		e.MovePlayhead(in.Seconds)
		return nil
	}))

	r.Handle("movePlayheadToFrame", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Frame int `json:"frame"`
	}) error {
		e.MovePlayheadToFrame(in.Frame)
		return nil
	}))

	r.Handle("previewFrame", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		Seconds float64 `json:"seconds"`
	}) error {
		e.PreviewFrame(in.Seconds)
		return nil
	}))

	r.Handle("previewClipFrame", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		ClipID  string  `json:"clip_id"`
		Seconds float64 `json:"seconds"`
	}) error {
		e.PreviewClipFrame(in.ClipID, in.Seconds)
		return nil
	}))

	r.Handle("showClipMenu", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		ClipID string `json:"clip_id"`
	}) error {
		e.ShowClipMenu(in.ClipID)
		return nil
	}))

	r.Handle("showEffectMenu", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		EffectID string `json:"effect_id"`
	}) error {
		e.ShowEffectMenu(in.EffectID)
		return nil
	}))

	r.Handle("showTransitionMenu", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		TransitionID string `json:"transition_id"`
	}) error {
		e.ShowTransitionMenu(in.TransitionID)
		return nil
	}))

	r.Handle("showTrackMenu", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		LayerNumber int `json:"layer_number"`
	}) error {
		e.ShowTrackMenu(in.LayerNumber)
		return nil
	}))

	r.Handle("showMarkerMenu", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		MarkerID string `json:"marker_id"`
	}) error {
		e.ShowMarkerMenu(in.MarkerID)
		return nil
	}))

	r.Handle("showPlayheadMenu", typed(func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		e.ShowPlayheadMenu()
		return nil
	}))

	r.Handle("showTimelineMenu", typed(func(_ context.Context, _ *websocket.Conn, in struct {
		CursorSeconds float64 `json:"cursor_seconds"`
		LayerNumber   int     `json:"layer_number"`
	}) error {
		e.ShowTimelineMenu(in.CursorSeconds, in.LayerNumber)
		return nil
	}))

	return r
}
