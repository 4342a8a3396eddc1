package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/RichardMcSorley/breather/internal/rest"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(userContextMiddleware(deps.UserService))
}

// userContextMiddleware resolves the X-User-Id header into the request context.
// API calls without the header are rejected, except user registration.
func userContextMiddleware(userService user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get(userIdHeader)
			ctx := req.Context()

			if uid == "" {
				if requiresUser(req) {
					log.Debugf("missing %s header for %s %s", userIdHeader, req.Method, req.URL.Path)
					rest.WriteError(w, http.StatusUnauthorized, "User not authenticated", "")
					return
				}
				next.ServeHTTP(w, req)
				return
			}

			u, err := userService.GetUserByUid(ctx, uid)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", uid)
					rest.WriteError(w, http.StatusForbidden, "User not found", "")
					return
				}
				log.Errorf("failed to get user: %v", err)
				rest.WriteError(w, http.StatusInternalServerError, "Failed to resolve user", "")
				return
			}
			log.Tracef("user found: %s", u.Uid)
			next.ServeHTTP(w, req.WithContext(user.WithUser(ctx, u)))
		})
	}
}

func requiresUser(req *http.Request) bool {
	if !strings.HasPrefix(req.URL.Path, "/api/") {
		return false
	}
	return !(req.Method == http.MethodPost && req.URL.Path == "/api/user")
}
