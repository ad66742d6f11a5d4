package store

import (
	"context"

	"github.com/go-redis/redis"

	"github.com/remind101/encbench/retry"
	"github.com/remind101/encbench/strategy"
)

// Redis persists rows as one list per scope. Inserts are buffered and
// pushed through a pipeline in chunks of chunkSize.
type Redis struct {
	client *redis.Client
	key    string
	buf    []interface{}
}

// OpenRedis connects and verifies the connection under a bounded retry.
func OpenRedis(addr, scope string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	r := retry.NewRetrier("redis-dial", retry.DefaultBackOffOpts, retry.RetryOnAnyError)
	if _, err := r.Retry(func() (interface{}, error) { return nil, client.Ping().Err() }); err != nil {
		client.Close()
		return nil, unavailable("redis", err)
	}

	return &Redis{client: client, key: "bench:rows:" + scope}, nil
}

func (r *Redis) Reset(ctx context.Context) error {
	r.buf = r.buf[:0]
	if err := r.client.Del(r.key).Err(); err != nil {
		return unavailable("redis", err)
	}
	return nil
}

func (r *Redis) Insert(ctx context.Context, row *strategy.StoredRow) error {
	r.buf = append(r.buf, row.EncodeBinary())
	if len(r.buf) >= chunkSize {
		return r.Flush(ctx)
	}
	return nil
}

// Flush pushes any buffered rows in one pipelined RPUSH.
func (r *Redis) Flush(ctx context.Context) error {
	if len(r.buf) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	pipe.RPush(r.key, r.buf...)
	if _, err := pipe.Exec(); err != nil {
		return unavailable("redis", err)
	}
	r.buf = r.buf[:0]
	return nil
}

func (r *Redis) FetchAll(ctx context.Context) ([]*strategy.StoredRow, error) {
	if err := r.Flush(ctx); err != nil {
		return nil, err
	}

	values, err := r.client.LRange(r.key, 0, -1).Result()
	if err != nil {
		return nil, unavailable("redis", err)
	}

	out := make([]*strategy.StoredRow, len(values))
	for i, v := range values {
		row, err := strategy.DecodeBinary([]byte(v))
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
