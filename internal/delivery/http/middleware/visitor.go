package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// VisitorCookieName is the cookie carrying the opaque visitor identifier.
const VisitorCookieName = "bingo_visitor_id"

// visitorCookieMaxAge keeps the identity stable across an event season.
const visitorCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

type visitorKeyType struct{}

var visitorKey visitorKeyType

// SetVisitorID returns a context with the visitor ID set.
func SetVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorKey, visitorID)
}

// VisitorIDFromContext returns the visitor ID from the context, if present.
func VisitorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorKey).(string)
	return id, ok
}

// VisitorIdentity ensures every request carries a stable visitor ID: it
// reads the identity cookie, minting and setting a new UUID when absent,
// and stores the ID in the request context.
func VisitorIdentity(secure bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var visitorID string
		if cookie, err := r.Cookie(VisitorCookieName); err == nil && cookie.Value != "" {
			visitorID = cookie.Value
		} else {
			visitorID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     VisitorCookieName,
				Value:    visitorID,
				Path:     "/",
				MaxAge:   visitorCookieMaxAge,
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(SetVisitorID(r.Context(), visitorID)))
	})
}
