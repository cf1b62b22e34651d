package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/config"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("disabled without url", func(t *testing.T) {
		client, err := NewRedisClient(&config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
		require.NoError(t, err)
		defer client.Close()

		require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
		assert.Equal(t, "v", mr.Get("k"))
	})

	t.Run("rejects bad url", func(t *testing.T) {
		_, err := NewRedisClient(&config.RedisConfig{URL: "not-a-url"})
		assert.Error(t, err)
	})
}
