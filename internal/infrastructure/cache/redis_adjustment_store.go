package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/reposicion-api/internal/application/ports"
)

const defaultAdjustmentPrefix = "reposicion:ajuste:"

// RedisAdjustmentStore guarda ajustes pendientes en Redis con TTL; sirve para varias instancias.
type RedisAdjustmentStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisAdjustmentStore crea el store sobre un cliente existente.
func NewRedisAdjustmentStore(client *redis.Client, keyPrefix string) *RedisAdjustmentStore {
	if keyPrefix == "" {
		keyPrefix = defaultAdjustmentPrefix
	}
	return &RedisAdjustmentStore{client: client, keyPrefix: keyPrefix}
}

// Save guarda el ajuste bajo el token con vencimiento ttl.
func (s *RedisAdjustmentStore) Save(ctx context.Context, token string, adj ports.PendingAdjustment, ttl time.Duration) error {
	raw, err := json.Marshal(adj)
	if err != nil {
		return fmt.Errorf("encode pending adjustment: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save pending adjustment: %w", err)
	}
	return nil
}

// Take lee y borra el ajuste en una sola operación (GETDEL), así un token se usa una vez.
func (s *RedisAdjustmentStore) Take(ctx context.Context, token string) (*ports.PendingAdjustment, error) {
	raw, err := s.client.GetDel(ctx, s.keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("take pending adjustment: %w", err)
	}
	var adj ports.PendingAdjustment
	if err := json.Unmarshal(raw, &adj); err != nil {
		return nil, fmt.Errorf("decode pending adjustment: %w", err)
	}
	return &adj, nil
}

var _ ports.PendingAdjustmentStore = (*RedisAdjustmentStore)(nil)
