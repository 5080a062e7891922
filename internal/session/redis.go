package session

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "classroom:session:"

// RedisBlob keeps the session in redis, for setups where several console
// processes share one login.
type RedisBlob struct {
	rdb *redis.Client
}

func NewRedisBlob(rdb *redis.Client) *RedisBlob {
	return &RedisBlob{rdb: rdb}
}

func (b *RedisBlob) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := b.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (b *RedisBlob) Set(ctx context.Context, key string, data []byte) error {
	return b.rdb.Set(ctx, redisKeyPrefix+key, data, 0).Err()
}

func (b *RedisBlob) Delete(ctx context.Context, key string) error {
	return b.rdb.Del(ctx, redisKeyPrefix+key).Err()
}
