package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/wizard"
)

const draftKeyPrefix = "wizard_draft"

// redisDraftStore keeps one JSON-encoded draft per role in Redis. The key
// carries a TTL matching the retention period; staleness is still checked at
// read time by the draft manager.
type redisDraftStore struct {
	client *redis.Client
	maxAge time.Duration
}

// NewRedisDraftStore builds a Redis-backed draft store.
func NewRedisDraftStore(client *redis.Client, maxAge time.Duration) wizard.DraftStore {
	return &redisDraftStore{client: client, maxAge: maxAge}
}

func draftKey(role domain.UserRole) string {
	return draftKeyPrefix + "_" + string(role)
}

func (s *redisDraftStore) Load(ctx context.Context, role domain.UserRole) (*domain.Draft, error) {
	raw, err := s.client.Get(ctx, draftKey(role)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var draft domain.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *redisDraftStore) Save(ctx context.Context, role domain.UserRole, draft domain.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftKey(role), raw, s.maxAge).Err()
}

func (s *redisDraftStore) Delete(ctx context.Context, role domain.UserRole) error {
	return s.client.Del(ctx, draftKey(role)).Err()
}

func (s *redisDraftStore) Exists(ctx context.Context, role domain.UserRole) (bool, error) {
	count, err := s.client.Exists(ctx, draftKey(role)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
