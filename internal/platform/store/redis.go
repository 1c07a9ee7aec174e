package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixTable   = "sheet:"
	maxWatchAttempts = 5
)

var ErrTableContention = errors.New("table changed concurrently")

// RedisStore keeps every table as one JSON encoded grid under "sheet:<table>".
// Writes run as WATCH/MULTI transactions so a concurrent writer makes the
// write retry instead of being overwritten.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func makeTableKey(table string) string {
	return keyPrefixTable + table
}

func (s *RedisStore) GetRange(ctx context.Context, table, span string) ([][]string, error) {
	sp, err := ParseSpan(span)
	if err != nil {
		return nil, err
	}

	g, err := s.load(ctx, s.client, table)
	if err != nil {
		return nil, err
	}
	return g.read(sp), nil
}

func (s *RedisStore) AppendRows(ctx context.Context, table, span string, rows [][]string) error {
	return s.mutate(ctx, table, span, func(g grid, sp Span) (grid, error) {
		return g.append(sp, cloneRows(rows))
	})
}

func (s *RedisStore) ReplaceRange(ctx context.Context, table, span string, rows [][]string) error {
	return s.mutate(ctx, table, span, func(g grid, sp Span) (grid, error) {
		return g.replace(sp, cloneRows(rows))
	})
}

func (s *RedisStore) ClearRange(ctx context.Context, table, span string) error {
	return s.mutate(ctx, table, span, func(g grid, sp Span) (grid, error) {
		return g.clear(sp), nil
	})
}

func (s *RedisStore) load(ctx context.Context, c redis.Cmdable, table string) (grid, error) {
	data, err := c.Get(ctx, makeTableKey(table)).Bytes()
	if err == redis.Nil {
		return grid{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", table, err)
	}

	var g grid
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to decode table %s: %w", table, err)
	}
	return g, nil
}

func (s *RedisStore) mutate(ctx context.Context, table, span string, fn func(grid, Span) (grid, error)) error {
	sp, err := ParseSpan(span)
	if err != nil {
		return err
	}

	key := makeTableKey(table)
	txf := func(tx *redis.Tx) error {
		g, err := s.load(ctx, tx, table)
		if err != nil {
			return err
		}
		g, err = fn(g, sp)
		if err != nil {
			return err
		}
		data, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("failed to encode table %s: %w", table, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchAttempts; i++ {
		err = s.client.Watch(ctx, txf, key)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrTableContention, table)
}
