// Package prefs stores per-session display preferences.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/lawfirm-shop/internal/storage"
)

var ErrUnknownTheme = errors.New("unknown theme")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

// GetTheme returns the stored theme, or light when nothing usable is stored.
func GetTheme(ctx context.Context, b storage.Bucket) (Theme, error) {
	var t Theme
	ok, err := storage.LoadJSON(ctx, b, storage.KeyTheme, &t)
	if err != nil {
		return "", err
	}
	if !ok || !t.Valid() {
		return ThemeLight, nil
	}
	return t, nil
}

func SetTheme(ctx context.Context, b storage.Bucket, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, t)
	}
	return storage.SaveJSON(ctx, b, storage.KeyTheme, t)
}
