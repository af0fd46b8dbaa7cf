package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/ariefcatur/lawfirm-shop/internal/storage"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-Id"
	SessionCookie = "sid"

	maxSessionLen = 128
)

type bucketKey struct{}

// Sessions resolves the caller's session from the header or cookie, issuing
// a new one when neither is usable, and binds a storage bucket to it.
func Sessions(store storage.Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					id = c.Value
				}
			}
			if id == "" || len(id) > maxSessionLen {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(SessionHeader, id)
			ctx := context.WithValue(r.Context(), bucketKey{}, storage.Scope(store, id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bucket(r *http.Request) storage.Bucket {
	return r.Context().Value(bucketKey{}).(storage.Bucket)
}
