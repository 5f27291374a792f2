// README: Session snapshots backed by Redis (optional, survives restarts).
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "voyage:session:%s"
	// Sessions are short-lived by nature; a day of retention is generous.
	snapshotTTL = 24 * time.Hour
)

// SnapshotStore persists whole-session JSON blobs. The in-memory store stays
// authoritative; snapshots exist so a restarted process can rehydrate.
type SnapshotStore struct {
	redis *redis.Client
}

func NewSnapshotStore(redis *redis.Client) *SnapshotStore {
	return &SnapshotStore{redis: redis}
}

func (s *SnapshotStore) Save(ctx context.Context, st State) error {
	buf, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(st.ID), buf, snapshotTTL).Err()
}

func (s *SnapshotStore) Load(ctx context.Context, id string) (*State, error) {
	val, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(val, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf(sessionKeyPrefix, id)
}
