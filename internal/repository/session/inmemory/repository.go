// Package inmemory registers the live *engine.Engine for every session
// this process currently hosts, and tracks which connection a session is
// currently bound to, mirroring the teacher's connection/inmemory
// conn<->id registry (_examples/sharetube-server/internal/repository/connection/inmemory/repository.go).
package inmemory

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/reelhost/timeline-engine/internal/domain"
	"github.com/reelhost/timeline-engine/internal/engine"
)

type Repo struct {
	engines  map[string]*engine.Engine
	connList map[*websocket.Conn]string
	idList   map[string]*websocket.Conn
	mu       sync.RWMutex
}

func NewRepo() *Repo {
	return &Repo{
		engines:  make(map[string]*engine.Engine),
		connList: make(map[*websocket.Conn]string),
		idList:   make(map[string]*websocket.Conn),
	}
}

func (r *Repo) Register(sessionID string, e *engine.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[sessionID] = e
}

func (r *Repo) Get(sessionID string) (*engine.Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[sessionID]
	return e, ok
}

func (r *Repo) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.engines, sessionID)
	if conn, ok := r.idList[sessionID]; ok {
		delete(r.connList, conn)
		delete(r.idList, sessionID)
	}
}

// BindConn records that sessionID is now driven by conn, refusing a second
// connection from binding the same session (spec §5: one session, one
// host connection at a time).
func (r *Repo) BindConn(conn *websocket.Conn, sessionID string) error {
	slog.Debug("session.inmemory.BindConn", "session_id", sessionID)
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idList[sessionID]; ok {
		return domain.ErrSessionAlreadyBound
	}

	r.connList[conn] = sessionID
	r.idList[sessionID] = conn
	return nil
}

func (r *Repo) UnbindConn(conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID, ok := r.connList[conn]
	if !ok {
		return
	}
	delete(r.connList, conn)
	delete(r.idList, sessionID)
}

func (r *Repo) SessionIDByConn(conn *websocket.Conn) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.connList[conn]
	return sessionID, ok
}
