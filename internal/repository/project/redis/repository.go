// Package redis persists one project replica's snapshot per session, the
// way the teacher's room repository persists one room's player/member
// state: a TTL'd key refreshed on every access, grounded on
// internal/repository/room/redis in the teacher. The project tree is a
// single nested document rather than the teacher's flat per-field hashes,
// so it is stored as one JSON blob instead of an HSET-per-field record.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reelhost/timeline-engine/internal/domain"
)

type Repo struct {
	rc             *redis.Client
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *Repo {
	return &Repo{rc: rc, expireDuration: expireDuration}
}

func (r *Repo) snapshotKey(sessionID string) string {
	return "session:" + sessionID + ":project"
}

// SaveSnapshot writes the full project tree under sessionID, refreshing
// the session's expiry the way the teacher's SetPlayer/SetMember do.
func (r *Repo) SaveSnapshot(ctx context.Context, sessionID string, project *domain.Project) error {
	payload, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("marshal project snapshot: %w", err)
	}

	if err := r.rc.Set(ctx, r.snapshotKey(sessionID), payload, r.expireDuration).Err(); err != nil {
		return fmt.Errorf("save project snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the project tree for sessionID and refreshes its
// expiry, matching the teacher's read-then-Expire idiom.
func (r *Repo) LoadSnapshot(ctx context.Context, sessionID string) (*domain.Project, error) {
	payload, err := r.rc.Get(ctx, r.snapshotKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load project snapshot: %w", err)
	}

	var project domain.Project
	if err := json.Unmarshal(payload, &project); err != nil {
		return nil, fmt.Errorf("unmarshal project snapshot: %w", err)
	}

	r.rc.Expire(ctx, r.snapshotKey(sessionID), r.expireDuration)
	return &project, nil
}

// DeleteSnapshot removes a session's persisted project; Service.EndSession
// calls it. A connection closing does not delete the snapshot.
func (r *Repo) DeleteSnapshot(ctx context.Context, sessionID string) error {
	return r.rc.Del(ctx, r.snapshotKey(sessionID)).Err()
}
