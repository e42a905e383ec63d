package wsrouter

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HandlerFunc processes one decoded inbound message. T is the router's
// shared payload type: callers that want per-route decoding supply their
// own decode step inside the handler and keep T as json.RawMessage, or
// register routes pre-decoded into a common envelope type.
type HandlerFunc[T any] func(ctx context.Context, conn *websocket.Conn, payload T) error

// Middleware wraps a HandlerFunc with cross-cutting behavior (request IDs,
// logging, recovery) without the route handlers needing to know about it.
type Middleware func(next HandlerFunc[any]) HandlerFunc[any]

// WSRouter dispatches inbound { "type", "payload" } envelopes read off one
// connection to a handler registered for that type, running every handler
// through the same middleware chain.
type WSRouter struct {
	routes     map[string]HandlerFunc[any]
	middleware []Middleware
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]HandlerFunc[any])}
}

// Use appends to the middleware chain; earlier calls wrap outside later
// ones, so the first middleware registered runs first.
func (r *WSRouter) Use(mw Middleware) {
	r.middleware = append(r.middleware, mw)
}

func (r *WSRouter) Handle(messageType string, handler HandlerFunc[any]) {
	wrapped := handler
	for i := len(r.middleware) - 1; i >= 0; i-- {
		wrapped = r.middleware[i](wrapped)
	}
	r.routes[messageType] = wrapped
}

// ServeConn runs the read loop for one connection until it errors or the
// context is cancelled, routing each message by its "type" field.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		routeCtx := withMessageType(ctx, msg.Type)

		handler, exists := r.routes[msg.Type]
		if !exists {
			conn.WriteJSON(map[string]string{"error": "unknown message type: " + msg.Type})
			continue
		}

		if err := handler(routeCtx, conn, msg.Payload); err != nil {
			conn.WriteJSON(map[string]string{"error": err.Error()})
		}
	}
}
