package storage

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// Adapter reads and writes JSON collections through a KV backend.
// Reads fall back to caller-supplied defaults; writes are best-effort.
type Adapter struct {
	kv     KV
	logger *zap.Logger
}

func NewAdapter(kv KV, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{kv: kv, logger: logger}
}

// LoadStored decodes the value under key. ok is false when the key is absent
// or its content cannot be decoded.
func LoadStored[T any](ctx context.Context, a *Adapter, key string) (value T, ok bool) {
	raw, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			a.logger.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		}
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		a.logger.Warn("stored value is malformed, ignoring", zap.String("key", key), zap.Error(err))
		var zero T
		return zero, false
	}
	return value, true
}

// Load returns the stored value under key, or fallback when it is absent or malformed.
func Load[T any](ctx context.Context, a *Adapter, key string, fallback T) T {
	if v, ok := LoadStored[T](ctx, a, key); ok {
		return v
	}
	return fallback
}

// Save overwrites key with the JSON encoding of value. Failures are logged and dropped.
func (a *Adapter) Save(ctx context.Context, key string, value any) {
	if err := a.save(ctx, key, value); err != nil {
		a.logger.Warn("storage write dropped", zap.String("key", key), zap.Error(err))
	}
}

func (a *Adapter) save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, key, payload)
}
