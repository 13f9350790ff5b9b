package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
)

const (
	HeaderAdminToken     = "X-Admin-Token"
	HeaderResponderToken = "X-Responder-Token"
	HeaderActorID        = "X-Actor-Id"
)

func tokenMatches(got, want string) bool {
	return want != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// StaffAuth resolves the caller role from the staff token headers. Requests
// without a token are citizens; a wrong token is rejected.
func StaffAuth(cfg config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := domain.Caller{Role: domain.RoleCitizen}
			actor := r.Header.Get(HeaderActorID)

			if tok := r.Header.Get(HeaderAdminToken); tok != "" {
				if !tokenMatches(tok, cfg.AdminToken) {
					unauthorized(w)
					return
				}
				caller = domain.Caller{Role: domain.RoleAdmin, ActorID: actor}
			} else if tok := r.Header.Get(HeaderResponderToken); tok != "" {
				if !tokenMatches(tok, cfg.ResponderToken) {
					unauthorized(w)
					return
				}
				caller = domain.Caller{Role: domain.RoleResponder, ActorID: actor}
			}

			next.ServeHTTP(w, r.WithContext(domain.WithCaller(r.Context(), caller)))
		})
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := domain.CallerFrom(r.Context()).Role
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			unauthorized(w)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
}
