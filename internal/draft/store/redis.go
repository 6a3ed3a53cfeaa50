package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/gridlock/internal/draft/engine"
	"github.com/mcdev12/gridlock/internal/models"
	backend "github.com/redis/go-redis/v9"
)

// Redis is a DraftStore on a single Redis key per draft. The optimistic
// version check rides on WATCH: the write aborts if the key changed between
// the read and the transaction, which maps to the same conflict semantics
// as the Postgres conditional UPDATE.
type Redis struct {
	client *backend.Client
	prefix string
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix for drafts.
func WithPrefix(prefix string) RedisOption {
	return func(s *Redis) { s.prefix = prefix }
}

// NewRedis creates a draft store from an existing client.
func NewRedis(client *backend.Client, opts ...RedisOption) *Redis {
	s := &Redis{
		client: client,
		prefix: "gridlock:draft:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Redis) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

func (s *Redis) CreateDraft(ctx context.Context, d *models.DraftSession) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key(d.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save draft to redis: %w", err)
	}
	if !ok {
		return fmt.Errorf("draft %s already exists", d.ID)
	}
	return nil
}

func (s *Redis) GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftSession, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, engine.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft from redis: %w", err)
	}

	var d models.DraftSession
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &d, nil
}

func (s *Redis) UpdateDraft(ctx context.Context, d *models.DraftSession, expectedVersion int) error {
	key := s.key(d.ID)

	next := *d
	next.Version = expectedVersion + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *backend.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if errors.Is(err, backend.Nil) {
			return engine.ErrDraftNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get draft from redis: %w", err)
		}

		var stored models.DraftSession
		if err := json.Unmarshal([]byte(val), &stored); err != nil {
			return fmt.Errorf("failed to unmarshal stored draft: %w", err)
		}
		if stored.Version != expectedVersion {
			return engine.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, backend.TxFailedErr) {
		return engine.ErrVersionConflict
	}
	if err != nil {
		return err
	}

	d.Version = next.Version
	return nil
}
