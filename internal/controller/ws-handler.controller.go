package controller

import (
	"context"
	"net/http"
)

// HandleWS upgrades the connection, resolves the connect token to a live
// engine, binds the connection, and runs the inbound dispatch loop until
// the connection drops (spec §5/§6: one connection drives one engine).
func (c *Controller) HandleWS(w http.ResponseWriter, r *http.Request) {
	connectToken := r.URL.Query().Get("connect-token")
	if connectToken == "" {
		http.Error(w, "missing connect-token", http.StatusBadRequest)
		return
	}

	sessionID, e, err := c.sessionService.JoinSession(r.Context(), connectToken)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to join session", "error", err)
		http.Error(w, "invalid connect-token", http.StatusUnauthorized)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	if err := c.binder.BindConn(conn, sessionID); err != nil {
		c.logger.WarnContext(r.Context(), "failed to bind connection", "error", err)
		conn.WriteJSON(&Output{Type: "error", Payload: err.Error()})
		conn.Close()
		return
	}
	defer c.binder.UnbindConn(conn)

	e.SetHost(newWSHost(conn, c.logger))
	defer e.SetHost(nil)

	if err := conn.WriteJSON(&Output{
		Type:    "joined",
		Payload: map[string]any{"session_id": sessionID, "project": e.Project()},
	}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to write joined message", "error", err)
		return
	}

	ctx := context.WithValue(r.Context(), sessionIDCtxKey, sessionID)

	router := c.buildDispatchRouter(e)
	if err := router.ServeConn(ctx, conn); err != nil {
		c.logger.InfoContext(ctx, "ws connection closed", "error", err)
	}

	if err := c.sessionService.PersistSnapshot(context.Background(), sessionID, e); err != nil {
		c.logger.WarnContext(ctx, "failed to persist snapshot on disconnect", "error", err)
	}
}
