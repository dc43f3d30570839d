package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"homestay-checkout/internal/infra"
	"homestay-checkout/internal/infra/converter"
	"homestay-checkout/internal/pkg/config"
	"homestay-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSessionStore(client *redis.Client, cfg config.CheckoutConfig, logger *slog.Logger) *SessionStore {
	return &SessionStore{client: client, ttl: cfg.SessionTTL, logger: logger}
}

// Save writes the whole session and restarts its TTL.
func (s *SessionStore) Save(ctx context.Context, session *shared.Session) error {
	data, err := json.Marshal(converter.SessionToRecord(session))
	if err != nil {
		return infra.WrapAdapterErr(s.logger, infra.KindDecodeFailure, "failed to encode checkout session", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return infra.WrapAdapterErr(s.logger, infra.KindCacheFailure, "failed to save checkout session", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*shared.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, infra.WrapAdapterErr(s.logger, infra.KindNotFound, "checkout session not found", nil)
	}
	if err != nil {
		return nil, infra.WrapAdapterErr(s.logger, infra.KindCacheFailure, "failed to load checkout session", err)
	}

	var rec converter.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, infra.WrapAdapterErr(s.logger, infra.KindDecodeFailure, "failed to decode checkout session", err)
	}
	return converter.RecordToSession(rec), nil
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("checkout:session:%s", id)
}
