package auth

import (
	"context"
	"net/http"
)

type contextKey string

var userCtxKey = contextKey("user")

// Middleware resolves the request's user from its token.
type Middleware struct {
	Config Config
	Users  *Users
}

func (m Middleware) resolve(r *http.Request) (*User, bool) {
	tokenStr := m.Config.TokenFromRequest(r)
	if tokenStr == "" {
		return nil, false
	}
	id, _, err := m.Config.Parse(tokenStr)
	if err != nil {
		return nil, false
	}
	// Ensure user still exists
	u, err := m.Users.ByID(r.Context(), id)
	if err != nil {
		return nil, false
	}
	return u, true
}

// Required rejects requests without a valid token.
func (m Middleware) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := m.resolve(r)
		if !ok {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// Optional attaches the user when a valid token is present and never rejects.
func (m Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := m.resolve(r); ok {
			r = r.WithContext(WithUser(r.Context(), u))
		}
		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// CurrentUser returns the authenticated user, or nil for guests.
func CurrentUser(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey).(*User)
	return u
}
