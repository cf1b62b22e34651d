package mock

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis shared by every scenario. Client is what the
// API under test talks to; Server lets steps inspect what it stored.
type Redis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

var (
	redisOnce sync.Once
	redisMock *Redis
)

// NewRedis starts the shared server on first use.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisMock = &Redis{
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
			Server: server,
		}
	})
	return redisMock
}

// Clear drops every key.
func (r *Redis) Clear() {
	r.Server.FlushAll()
}

// Keys returns the stored keys that start with prefix, sorted.
func (r *Redis) Keys(prefix string) []string {
	var keys []string
	for _, key := range r.Server.Keys() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Counter reads an INCR counter. A missing key counts as zero.
func (r *Redis) Counter(key string) (int, error) {
	value, err := r.Server.Get(key)
	if errors.Is(err, miniredis.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}
