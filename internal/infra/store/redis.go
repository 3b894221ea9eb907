package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps each collection under <prefix><collection>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(c Collection) string {
	return s.prefix + string(c)
}

func (s *RedisStore) Load(ctx context.Context, c Collection) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c, err)
	}
	return b, nil
}

func (s *RedisStore) Save(ctx context.Context, c Collection, data []byte) error {
	if err := s.client.Set(ctx, s.key(c), data, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", c, err)
	}
	return nil
}

// InTx buffers the saves made by fn and commits them in one MULTI/EXEC.
func (s *RedisStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	tx := &redisTx{parent: s, pending: map[Collection][]byte{}}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.pending) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, c := range tx.order {
			p.Set(ctx, s.key(c), tx.pending[c], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type redisTx struct {
	parent  *RedisStore
	pending map[Collection][]byte
	order   []Collection
}

func (t *redisTx) Load(ctx context.Context, c Collection) ([]byte, error) {
	if b, ok := t.pending[c]; ok {
		return b, nil
	}
	return t.parent.Load(ctx, c)
}

func (t *redisTx) Save(_ context.Context, c Collection, data []byte) error {
	if _, ok := t.pending[c]; !ok {
		t.order = append(t.order, c)
	}
	t.pending[c] = data
	return nil
}

var _ Transactional = (*RedisStore)(nil)
