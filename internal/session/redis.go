package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const albumKeyPrefix = "storefront:session:album:"

// albumCommands is the slice of the redis client the store uses;
// *redis.Client satisfies it.
type albumCommands interface {
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisStore struct {
	client albumCommands
}

// NewRedisStore returns a redis-backed store. GETDEL gives the read-and-clear
// atomicity the contract requires. Useful when several bot replicas share one
// token; the default memory store is enough for a single process.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func albumKey(chatID int64) string {
	return albumKeyPrefix + strconv.FormatInt(chatID, 10)
}

func (s *redisStore) TakeLastAlbum(ctx context.Context, chatID int64) ([]int, error) {
	val, err := s.client.GetDel(ctx, albumKey(chatID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to take last album for chat %d: %w", chatID, err)
	}

	var ids []int
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode album ids for chat %d: %w", chatID, err)
	}
	return ids, nil
}

func (s *redisStore) SetLastAlbum(ctx context.Context, chatID int64, messageIDs []int) error {
	data, err := json.Marshal(messageIDs)
	if err != nil {
		return fmt.Errorf("failed to encode album ids for chat %d: %w", chatID, err)
	}

	if err := s.client.Set(ctx, albumKey(chatID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set last album for chat %d: %w", chatID, err)
	}
	return nil
}
