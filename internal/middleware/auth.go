package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type loginChecker interface {
	UserID(ctx context.Context, token string) (int, bool, error)
}

const loginPath = "/login/"

type AuthMiddlewareHandler struct {
	loginChecker loginChecker
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(loginChecker loginChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		allowedPaths: map[string]bool{
			// public catalog
			"/": true,

			// account:
			loginPath:  true,
			"/signup/": true,
			"/logout/": true,
			"/metrics": true,
		},
	}
}

// AuthCheck resolves the session token and stores the user id in the request context.
// Public paths pass through, still getting the user id when a valid session is present.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			isPublic := h.allowedPaths[r.URL.Path]
			authToken := auth.TokenFromRequest(r)

			if authToken == "" {
				if isPublic {
					span.SetStatus(codes.Ok, "ok")
					next.ServeHTTP(w, r)
					return
				}
				log.Tracef("[missing token] [auth middleware] unauthenticated => %s", r.URL.Path)
				span.SetStatus(codes.Error, "missing-auth-token")
				unauthenticated(w, r)
				return
			}

			userID, ok, err := h.loginChecker.UserID(ctx, authToken)
			if err != nil {
				log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				span.RecordError(err)
				span.SetStatus(codes.Error, "check-logged-err")
				if isPublic {
					next.ServeHTTP(w, r)
					return
				}
				unauthenticated(w, r)
				return
			}
			if !ok {
				if isPublic {
					span.SetStatus(codes.Ok, "ok")
					next.ServeHTTP(w, r)
					return
				}
				log.Tracef("[invalid token] [auth middleware] unauthenticated => %s", r.URL.Path)
				span.SetStatus(codes.Error, "not-logged")
				unauthenticated(w, r)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

// browsers are sent to the login page, API clients get a plain 401
func unauthenticated(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, loginPath+"?next="+r.URL.Path, http.StatusFound)
		return
	}
	http.Error(w, "no can do", http.StatusUnauthorized)
}
