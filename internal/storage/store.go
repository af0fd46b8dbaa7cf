// Package storage holds per-session key/value state. It stands in for the
// browser's local storage: every session owns a flat namespace of JSON blobs.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is implemented by the memory, Redis and Postgres backends.
// Values are JSON documents.
type Store interface {
	Get(ctx context.Context, session, key string) ([]byte, error)
	Set(ctx context.Context, session, key string, value []byte) error
	Delete(ctx context.Context, session, key string) error
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, session string, values map[string][]byte) error
}

// Bucket is a Store bound to one session.
type Bucket struct {
	store   Store
	session string
}

func Scope(s Store, session string) Bucket {
	return Bucket{store: s, session: session}
}

func (b Bucket) Session() string { return b.session }

func (b Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	return b.store.Get(ctx, b.session, key)
}

func (b Bucket) Set(ctx context.Context, key string, value []byte) error {
	return b.store.Set(ctx, b.session, key, value)
}

func (b Bucket) Delete(ctx context.Context, key string) error {
	return b.store.Delete(ctx, b.session, key)
}

func (b Bucket) SetMany(ctx context.Context, values map[string][]byte) error {
	return b.store.SetMany(ctx, b.session, values)
}
