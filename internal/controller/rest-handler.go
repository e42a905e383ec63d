package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelhost/timeline-engine/internal/domain"
	"github.com/reelhost/timeline-engine/pkg/rest"
)

// validateCreateSession is the body of POST /api/v1/session/create: the
// initial project tree loadJson would otherwise push after connecting
// (spec §6.1), supplied up front so the connect token can be minted
// against an already-persisted snapshot.
type validateCreateSession struct {
	Project *domain.Project `json:"project" validate:"required"`
}

type createSessionResponse struct {
	ConnectToken string `json:"connect_token"`
}

func (c *Controller) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req validateCreateSession
	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "CreateSession", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	connectToken, err := c.sessionService.CreateSession(r.Context(), req.Project)
	if err != nil {
		c.logger.InfoContext(r.Context(), "CreateSession", "create session err", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": createSessionResponse{ConnectToken: connectToken}})
}

// ValidateJoinSession issues a fresh connect token for an already-existing
// session, the counterpart of the teacher's ValidateJoinRoom.
func (c *Controller) ValidateJoinSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")
	if sessionID == "" {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "session not found"})
		return
	}

	connectToken, err := c.sessionService.IssueConnectToken(r.Context(), sessionID)
	if err != nil {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": createSessionResponse{ConnectToken: connectToken}})
}
