package middleware

import (
	"context"
	"net/http"

	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=admin_mocks_test.go -package=middleware_test

type adminChecker interface {
	IsAdmin(ctx context.Context, userID int) (bool, error)
}

// AdminOnly guards admin routes. Non-admins get a success:false payload with status 200,
// the same shape the admin endpoints use for their own failures.
func AdminOnly(checker adminChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := auth.UserIDFromContext(r.Context())
			if !ok {
				pkg.WriteActionResponse(w, false, "Unauthorized")
				return
			}

			isAdmin, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				log.Errorf("admin check for user %d: %s", userID, err)
				http.Error(w, "admin check failed", http.StatusInternalServerError)
				return
			}
			if !isAdmin {
				log.Warnf("user %d tried to access admin route %s", userID, r.URL.Path)
				pkg.WriteActionResponse(w, false, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
