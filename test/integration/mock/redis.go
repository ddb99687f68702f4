package mock

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewRedis starts an embedded Redis and returns a client connected to it.
func NewRedis() *redis.Client {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)
}

// ClearRedis removes every key from the embedded Redis.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
