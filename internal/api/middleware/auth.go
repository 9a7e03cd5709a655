package middleware

import (
	"context"
	"net/http"

	"github.com/podcastsite/backend/internal/service"
)

type contextKey string

const (
	SessionClaimsKey contextKey = "sessionClaims"

	// SessionCookieName is the cookie carrying the admin session token.
	SessionCookieName = "admin_session"

	loginPath = "/login"
)

// SessionVerifier is satisfied by *service.SessionService.
type SessionVerifier interface {
	Verify(token string) (*service.SessionClaims, bool)
}

// RequireSession guards admin data routes: requests without a valid session
// get a 401 JSON body and never reach next.
func RequireSession(sessions SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyRequest(sessions, r)
			if !ok {
				logger().Debug().Str("path", r.URL.Path).Msg("rejected unauthenticated admin request")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"error":"Unauthorized"}`))
				return
			}

			ctx := context.WithValue(r.Context(), SessionClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePageSession guards admin pages: requests without a valid session are
// redirected to the login page and any stale cookie is cleared.
func RequirePageSession(sessions SessionVerifier, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyRequest(sessions, r)
			if !ok {
				if _, err := r.Cookie(SessionCookieName); err == nil {
					ClearSessionCookie(w, secureCookie)
				}
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), SessionClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSessionClaims(ctx context.Context) (*service.SessionClaims, bool) {
	claims, ok := ctx.Value(SessionClaimsKey).(*service.SessionClaims)
	return claims, ok
}

// SessionToken returns the raw token from the session cookie, if any.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie writes the session cookie with the attributes admin pages rely on.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func verifyRequest(sessions SessionVerifier, r *http.Request) (*service.SessionClaims, bool) {
	token := SessionToken(r)
	if token == "" {
		return nil, false
	}
	return sessions.Verify(token)
}
