package history

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each room log in a Redis list.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// RedisKey is the list key holding roomID's log.
func RedisKey(roomID string) string {
	return fmt.Sprintf("room:%s:messages", roomID)
}

func (s *RedisStore) Append(ctx context.Context, roomID, text string) error {
	if err := s.client.RPush(ctx, RedisKey(roomID), text).Err(); err != nil {
		return fmt.Errorf("redis rpush %s: %w", roomID, err)
	}
	return nil
}

func (s *RedisStore) ReadAll(ctx context.Context, roomID string) ([]string, error) {
	lines, err := s.client.LRange(ctx, RedisKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %s: %w", roomID, err)
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}
