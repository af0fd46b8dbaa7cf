package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadJSON decodes key into out. A missing key or a value that does not parse
// reports false with a nil error and leaves out untouched, even when the value
// decodes in part; only backend failures are returned.
func LoadJSON[T any](ctx context.Context, b Bucket, key string, out *T) (bool, error) {
	raw, err := b.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, nil
	}
	*out = v
	return true, nil
}

func SaveJSON(ctx context.Context, b Bucket, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := b.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Batch collects JSON values for a single SetMany call.
type Batch map[string][]byte

func (bt Batch) Put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	bt[key] = raw
	return nil
}

func (bt Batch) Commit(ctx context.Context, b Bucket) error {
	if err := b.SetMany(ctx, bt); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
