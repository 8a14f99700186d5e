package kv

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Hash fields used for every key.
const (
	redisValueField    = "value"
	redisRevisionField = "revision"
)

// Redis is a Medium that keeps each key as a Redis hash holding the value and
// its revision. Conditional writes use WATCH/MULTI so a concurrent writer
// aborts the transaction instead of being overwritten.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis constructs a Redis medium. prefix is prepended to every key so
// several installations can share one Redis database.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Get implements Medium.
func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+key).Result()
	if err != nil {
		return Entry{}, false, fmt.Errorf("kv.Redis.Get: %w", err)
	}
	if len(fields) == 0 {
		return Entry{}, false, nil
	}

	rev, err := strconv.ParseInt(fields[redisRevisionField], 10, 64)
	if err != nil {
		return Entry{}, false, fmt.Errorf("kv.Redis.Get: bad revision %q: %w", fields[redisRevisionField], err)
	}
	return Entry{Value: []byte(fields[redisValueField]), Revision: rev}, true, nil
}

// Put implements Medium.
func (r *Redis) Put(ctx context.Context, key string, value []byte, expect int64) (int64, error) {
	full := r.prefix + key
	var next int64

	txf := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, full, redisRevisionField).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}

		if expect != AnyRevision && expect != current {
			return ErrConflict
		}

		next = current + 1
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, full, redisValueField, value, redisRevisionField, next)
			return nil
		})
		return err
	}

	if err := r.client.Watch(ctx, txf, full); err != nil {
		if errors.Is(err, redis.TxFailedErr) || errors.Is(err, ErrConflict) {
			return 0, fmt.Errorf("kv.Redis.Put: %w", ErrConflict)
		}
		return 0, fmt.Errorf("kv.Redis.Put: %w", err)
	}
	return next, nil
}
