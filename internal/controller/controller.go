// Package controller is the transport layer: REST handshake endpoints plus
// the websocket connection that carries spec.md's inbound/outbound method
// traffic. Grounded on _examples/sharetube-server/internal/controller's
// newer ".controller.go" generation (controller.go, router.controller.go,
// rest-handler.go, ws-handler.controller.go, ws-middleware.controller.go,
// context.controller.go).
package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/reelhost/timeline-engine/internal/domain"
	"github.com/reelhost/timeline-engine/internal/engine"
	"github.com/reelhost/timeline-engine/pkg/validator"
)

// iSessionService is the subset of session.Service the controller depends
// on, named at the call site the way the teacher's iRoomService is.
type iSessionService interface {
	CreateSession(ctx context.Context, project *domain.Project) (string, error)
	JoinSession(ctx context.Context, connectToken string) (string, *engine.Engine, error)
	IssueConnectToken(ctx context.Context, sessionID string) (string, error)
	PersistSnapshot(ctx context.Context, sessionID string, e *engine.Engine) error
	EndSession(ctx context.Context, sessionID string) error
}

// iSessionBinder tracks which connection currently drives which session,
// so a second connection cannot hijack a session mid-edit.
type iSessionBinder interface {
	BindConn(conn *websocket.Conn, sessionID string) error
	UnbindConn(conn *websocket.Conn)
	SessionIDByConn(conn *websocket.Conn) (string, bool)
}

type Controller struct {
	sessionService iSessionService
	binder         iSessionBinder
	upgrader       websocket.Upgrader
	validate       *validator.Validator
	logger         *slog.Logger
}

func NewController(sessionService iSessionService, binder iSessionBinder, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		sessionService: sessionService,
		binder:         binder,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}
}
