package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"planner/internal/core"
	"planner/internal/log"
)

type contextKey string

const identityKey contextKey = "identity"

func withIdentity(ctx context.Context, id core.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the authenticated caller stored by requireSession.
func IdentityFrom(ctx context.Context) (core.Identity, bool) {
	id, ok := ctx.Value(identityKey).(core.Identity)
	return id, ok
}

// requireSession rejects requests without a live session and stores the
// caller's identity in the context. Sessions renewed by the auth service get
// a fresh cookie.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.opts.CookieName)
		if err != nil || cookie.Value == "" {
			fail(w, http.StatusUnauthorized, "Not authenticated", nil)
			return
		}

		sess, renewed, err := s.svc.Auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, core.ErrUnauthenticated) {
				s.clearSessionCookie(w)
				fail(w, http.StatusUnauthorized, "Not authenticated", nil)
				return
			}
			respondError(w, r, err, "Session")
			return
		}
		if renewed {
			s.setSessionCookie(w, sess.Token, sess.ExpiresAt)
		}

		ctx := withIdentity(r.Context(), core.Identity{ID: sess.UserID, Email: sess.Email})
		ctx = log.WithLogger(ctx, log.FromContext(ctx).With(log.FieldUserID, sess.UserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// identity returns the caller; routes behind requireSession always have one.
func identity(r *http.Request) core.Identity {
	id, _ := IdentityFrom(r.Context())
	return id
}
