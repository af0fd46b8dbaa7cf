// Package wishlist stores the ids a session saved for later and the ids it
// looked at most recently.
package wishlist

import (
	"context"
	"slices"

	"github.com/ariefcatur/lawfirm-shop/internal/storage"
)

const RecentLimit = 10

type Wishlist struct {
	bucket storage.Bucket
}

func New(b storage.Bucket) *Wishlist { return &Wishlist{bucket: b} }

func (w *Wishlist) IDs(ctx context.Context) ([]string, error) {
	return loadIDs(ctx, w.bucket, storage.KeyWishlist)
}

func (w *Wishlist) Contains(ctx context.Context, id string) (bool, error) {
	ids, err := w.IDs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// Add is a no-op for ids already present.
func (w *Wishlist) Add(ctx context.Context, id string) error {
	ids, err := w.IDs(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	return storage.SaveJSON(ctx, w.bucket, storage.KeyWishlist, append(ids, id))
}

func (w *Wishlist) Remove(ctx context.Context, id string) error {
	ids, err := w.IDs(ctx)
	if err != nil {
		return err
	}
	i := slices.Index(ids, id)
	if i < 0 {
		return nil
	}
	return storage.SaveJSON(ctx, w.bucket, storage.KeyWishlist, slices.Delete(ids, i, i+1))
}

// Viewed moves id to the front of the recently viewed list, keeping at most
// RecentLimit entries.
func Viewed(ctx context.Context, b storage.Bucket, id string) error {
	ids, err := loadIDs(ctx, b, storage.KeyRecentlyViewed)
	if err != nil {
		return err
	}
	out := make([]string, 0, RecentLimit)
	out = append(out, id)
	for _, v := range ids {
		if v != id && len(out) < RecentLimit {
			out = append(out, v)
		}
	}
	return storage.SaveJSON(ctx, b, storage.KeyRecentlyViewed, out)
}

func RecentlyViewed(ctx context.Context, b storage.Bucket) ([]string, error) {
	return loadIDs(ctx, b, storage.KeyRecentlyViewed)
}

func loadIDs(ctx context.Context, b storage.Bucket, key string) ([]string, error) {
	var ids []string
	if _, err := storage.LoadJSON(ctx, b, key, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
