package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

// bearer token from the Authorization header, or the token query parameter
// for clients that cannot set headers (browser websockets).
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// Auth attaches valid session claims to the request context. Requests without
// a valid token pass through untouched; handlers decide what needs claims.
func Auth(log logrus.FieldLogger, j *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := j.Parse(token)
			if err != nil {
				log.WithField("error", err).Debug("rejected session token")
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionClaims(r *http.Request) (*config.SessionClaims, bool) {
	claims, ok := r.Context().Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
