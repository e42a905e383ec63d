package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhost/timeline-engine/internal/domain"
	"github.com/reelhost/timeline-engine/internal/engine"
)

// fakeProjectRepo is an in-memory stand-in for the redis-backed
// ProjectRepository, enough to exercise the service without a live redis.
type fakeProjectRepo struct {
	mu   sync.Mutex
	data map[string]*domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{data: make(map[string]*domain.Project)}
}

func (f *fakeProjectRepo) SaveSnapshot(_ context.Context, sessionID string, project *domain.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[sessionID] = project
	return nil
}

func (f *fakeProjectRepo) LoadSnapshot(_ context.Context, sessionID string) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return p, nil
}

func (f *fakeProjectRepo) DeleteSnapshot(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, sessionID)
	return nil
}

type fakeRegistry struct {
	mu      sync.Mutex
	engines map[string]*engine.Engine
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{engines: make(map[string]*engine.Engine)}
}

func (r *fakeRegistry) Register(sessionID string, e *engine.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[sessionID] = e
}

func (r *fakeRegistry) Get(sessionID string) (*engine.Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.engines[sessionID]
	return e, ok
}

func (r *fakeRegistry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.engines, sessionID)
}

func newTestProject() *domain.Project {
	return &domain.Project{
		FPS:        domain.FPS{Num: 30, Den: 1},
		Duration:   60,
		Scale:      1,
		TickPixels: 10,
		Layers:     []domain.Layer{{Number: 1, Y: 0, Height: 60}},
	}
}

func newTestService() (*Service, *fakeProjectRepo, *fakeRegistry) {
	repo := newFakeProjectRepo()
	registry := newFakeRegistry()
	svc := NewService(repo, registry, &Config{
		Secret:       "test-secret",
		EngineConfig: engine.DefaultConfig(),
	}, nil)
	return svc, repo, registry
}

func TestCreateSession_ReturnsConnectTokenAndRegistersEngine(t *testing.T) {
	svc, repo, registry := newTestService()
	ctx := context.Background()

	token, err := svc.CreateSession(ctx, newTestProject())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.parseJWT(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.SessionID)

	_, ok := registry.Get(claims.SessionID)
	assert.True(t, ok, "engine must be registered after CreateSession")

	_, err = repo.LoadSnapshot(ctx, claims.SessionID)
	assert.NoError(t, err, "initial snapshot must be persisted")
}

func TestJoinSession_ReturnsInMemoryEngineWithoutReload(t *testing.T) {
	svc, _, registry := newTestService()
	ctx := context.Background()

	token, err := svc.CreateSession(ctx, newTestProject())
	require.NoError(t, err)

	sessionID, e, err := svc.JoinSession(ctx, token)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)

	registered, _ := registry.Get(sessionID)
	assert.Same(t, registered, e, "JoinSession must return the already-registered engine")
}

func TestJoinSession_RehydratesFromSnapshotWhenNotRegistered(t *testing.T) {
	svc, _, registry := newTestService()
	ctx := context.Background()

	token, err := svc.CreateSession(ctx, newTestProject())
	require.NoError(t, err)

	claims, err := svc.parseJWT(token)
	require.NoError(t, err)
	registry.Remove(claims.SessionID)

	sessionID, e, err := svc.JoinSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, claims.SessionID, sessionID)
	assert.NotNil(t, e)

	_, ok := registry.Get(sessionID)
	assert.True(t, ok, "JoinSession must re-register the rehydrated engine")
}

func TestJoinSession_RejectsTokenSignedWithWrongSecret(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	other, _, _ := newTestService()
	other.cfg.Secret = "a-different-secret"

	token, err := other.CreateSession(ctx, newTestProject())
	require.NoError(t, err)

	_, _, err = svc.JoinSession(ctx, token)
	assert.Error(t, err)
}

func TestIssueConnectToken_FailsForUnknownSession(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.IssueConnectToken(context.Background(), "does-not-exist")
	assert.Error(t, err)
}

func TestEndSession_RemovesEngineAndSnapshot(t *testing.T) {
	svc, repo, registry := newTestService()
	ctx := context.Background()

	token, err := svc.CreateSession(ctx, newTestProject())
	require.NoError(t, err)
	claims, err := svc.parseJWT(token)
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(ctx, claims.SessionID))

	_, ok := registry.Get(claims.SessionID)
	assert.False(t, ok)

	_, err = repo.LoadSnapshot(ctx, claims.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
