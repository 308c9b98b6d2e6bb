package ai

import (
	"context"
	"encoding/json"
	"time"

	"cafebooking/models"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// maxStoredTurns bounds the history replayed to the model per session.
const maxStoredTurns = 40

// ContextStore keeps booking-chat history between requests, keyed by session id.
type ContextStore interface {
	Get(ctx context.Context, sessionID string) (*models.ChatContext, error)
	Set(ctx context.Context, sessionID string, chatCtx *models.ChatContext) error
	Clear(ctx context.Context, sessionID string) error
}

type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

// Get returns an empty context for unknown or expired sessions.
func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*models.ChatContext, error) {
	data, err := s.client.Get(ctx, chatContextPrefix+sessionID).Result()
	if err == redis.Nil {
		return &models.ChatContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var chatCtx models.ChatContext
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, err
	}
	return &chatCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, chatCtx *models.ChatContext) error {
	if len(chatCtx.Turns) > maxStoredTurns {
		chatCtx.Turns = chatCtx.Turns[len(chatCtx.Turns)-maxStoredTurns:]
	}
	b, err := json.Marshal(chatCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, chatContextPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, chatContextPrefix+sessionID).Err()
}
