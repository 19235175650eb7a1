package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = time.Second

// RedisStorage persists values as JSON strings in redis, for deployments
// running more than one API instance. Keys are stored without TTL: session
// state has no automatic expiry, only explicit clears.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (r *RedisStorage) Load(key string, v interface{}) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.Printf("cart storage: redis get %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("cart storage: parse %s: %v", key, err)
		return false
	}
	return true
}

func (r *RedisStorage) Save(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("cart storage: marshal %s: %v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		log.Printf("cart storage: redis set %s: %v", key, err)
	}
}
