// Package session orchestrates one timeline-engine session: creating a
// fresh project replica, issuing the connect token a host presents to bind
// to it, and resolving that token back to a live *engine.Engine instance.
// Grounded on _examples/sharetube-server/internal/service/room/service.go's
// service struct / NewService constructor shape and its CreateRoom /
// JoinRoom session-token handshake, generalized from "one room, many
// members" to "one session, one embedding host".
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/reelhost/timeline-engine/internal/domain"
	"github.com/reelhost/timeline-engine/internal/engine"
)

// ProjectRepository persists/restores a session's project replica across
// process restarts (spec.md is silent on persistence; this is an ambient
// concern the teacher's room service carries for identical reasons).
type ProjectRepository interface {
	SaveSnapshot(ctx context.Context, sessionID string, project *domain.Project) error
	LoadSnapshot(ctx context.Context, sessionID string) (*domain.Project, error)
	DeleteSnapshot(ctx context.Context, sessionID string) error
}

// EngineRegistry tracks which sessions this process currently hosts a live
// *engine.Engine for.
type EngineRegistry interface {
	Register(sessionID string, e *engine.Engine)
	Get(sessionID string) (*engine.Engine, bool)
	Remove(sessionID string)
}

// Config mirrors the teacher's room.Config shape: secrets and timeouts the
// embedder supplies at startup.
type Config struct {
	Secret       string
	SessionExp   time.Duration
	EngineConfig engine.Config
}

type Service struct {
	projectRepo ProjectRepository
	registry    EngineRegistry
	cfg         Config
	logger      *slog.Logger
}

func NewService(projectRepo ProjectRepository, registry EngineRegistry, cfg *Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{projectRepo: projectRepo, registry: registry, cfg: *cfg, logger: logger}
}

// Claims is the JWT payload of a connect token: just the session it grants
// access to (spec.md has no multi-user auth model to mirror beyond this).
type Claims struct {
	SessionID string `json:"session_id"`
}

func (s *Service) generateJWT(sessionID string) (string, error) {
	claims := jwt.MapClaims{"session_id": sessionID}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *Service) parseJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse connect token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid connect token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid connect token claims")
	}
	sessionID, _ := claims["session_id"].(string)
	if sessionID == "" {
		return nil, errors.New("connect token missing session_id")
	}
	return &Claims{SessionID: sessionID}, nil
}

// CreateSession persists a freshly-loaded project under a new session ID,
// spins up its Engine, and returns the connect token a host presents to
// bind to it (spec §6.1 loadJson's counterpart on the handshake side).
func (s *Service) CreateSession(ctx context.Context, project *domain.Project) (string, error) {
	sessionID := uuid.NewString()

	if err := s.projectRepo.SaveSnapshot(ctx, sessionID, project); err != nil {
		return "", fmt.Errorf("save initial snapshot: %w", err)
	}

	e := engine.New(s.cfg.EngineConfig, project, s.logger.With("session_id", sessionID))
	s.registry.Register(sessionID, e)

	return s.generateJWT(sessionID)
}

// JoinSession resolves a connect token to the session's live Engine,
// rehydrating it from the persisted snapshot if this process doesn't
// already hold it in memory (e.g. after a restart).
func (s *Service) JoinSession(ctx context.Context, connectToken string) (string, *engine.Engine, error) {
	claims, err := s.parseJWT(connectToken)
	if err != nil {
		return "", nil, err
	}

	if e, ok := s.registry.Get(claims.SessionID); ok {
		return claims.SessionID, e, nil
	}

	project, err := s.projectRepo.LoadSnapshot(ctx, claims.SessionID)
	if err != nil {
		return "", nil, fmt.Errorf("load snapshot: %w", err)
	}

	e := engine.New(s.cfg.EngineConfig, project, s.logger.With("session_id", claims.SessionID))
	s.registry.Register(claims.SessionID, e)
	return claims.SessionID, e, nil
}

// PersistSnapshot writes an engine's current replica back to storage. The
// controller calls it when a host connection closes, so a reconnect or a
// process restart resumes from the replica as it was at that disconnect.
func (s *Service) PersistSnapshot(ctx context.Context, sessionID string, e *engine.Engine) error {
	return s.projectRepo.SaveSnapshot(ctx, sessionID, e.Project())
}

// IssueConnectToken mints a fresh connect token for an already-existing
// session, used when a host reconnects to a session it was disconnected
// from rather than creating a new one.
func (s *Service) IssueConnectToken(ctx context.Context, sessionID string) (string, error) {
	if _, ok := s.registry.Get(sessionID); !ok {
		if _, err := s.projectRepo.LoadSnapshot(ctx, sessionID); err != nil {
			return "", fmt.Errorf("session not found: %w", err)
		}
	}
	return s.generateJWT(sessionID)
}

// EndSession drops a session's in-memory engine and persisted snapshot.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	s.registry.Remove(sessionID)
	return s.projectRepo.DeleteSnapshot(ctx, sessionID)
}
