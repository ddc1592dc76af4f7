package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/gymquest/internal/telemetry/metrics"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Principal is what a successful credentials check yields.
type Principal struct {
	UserID  int
	IsAdmin bool
}

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type credentialsVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*Principal, error)
}

type sessionService interface {
	Login(ctx context.Context, userID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
	TTL() time.Duration
}

type Handler struct {
	verifier       credentialsVerifier
	sessions       sessionService
	metricsManager *metrics.Manager
	cookieSecure   bool
}

func NewHandler(
	verifier credentialsVerifier,
	sessions sessionService,
	metricsManager *metrics.Manager,
	cookieSecure bool,
) *Handler {
	return &Handler{
		verifier:       verifier,
		sessions:       sessions,
		metricsManager: metricsManager,
		cookieSecure:   cookieSecure,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router, loginRateLimit func(http.Handler) http.Handler) {
	loginHandler := http.Handler(http.HandlerFunc(handler.HandleLogin))
	if loginRateLimit != nil {
		loginHandler = loginRateLimit(loginHandler)
	}
	router.Handle("/login/", loginHandler).Methods("POST", "OPTIONS").Name("login")
	router.HandleFunc("/logout/", handler.HandleLogout).Methods("GET", "POST", "OPTIONS").Name("logout")
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq loginRequest
	if err := pkg.DecodeRequest(r, &loginReq); err != nil {
		log.Debugf("login, decode request: %s", err)
		http.Error(w, "error, username and password required", http.StatusBadRequest)
		return
	}

	principal, err := handler.verifier.VerifyCredentials(ctx, loginReq.Username, loginReq.Password)
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) {
			log.Tracef("failed login attempt for user: %s", loginReq.Username)
			handler.metricsManager.CounterLogins.WithLabelValues("wrong_credentials").Inc()
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed, verify credentials: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	token, err := handler.sessions.Login(ctx, principal.UserID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	SetSessionCookie(w, token, handler.sessions.TTL(), handler.cookieSecure)

	redirect := "/"
	if principal.IsAdmin {
		redirect = "/admin-dashboard/"
	}

	handler.metricsManager.CounterLogins.WithLabelValues("ok").Inc()
	log.Tracef("new login success, user %d", principal.UserID)
	pkg.WriteJSON(w, loginResponse{Token: token, Redirect: redirect}, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	// clear the cookie regardless of the session state
	ClearSessionCookie(w, handler.cookieSecure)

	authToken := TokenFromRequest(r)
	if authToken == "" {
		pkg.WriteActionResponse(w, true, "logged out")
		return
	}

	if err := handler.sessions.Logout(ctx, authToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			pkg.WriteActionResponse(w, true, "logged out")
			return
		}
		log.Errorf("logout failed: %s", err)
		http.Error(w, "logout error", http.StatusInternalServerError)
		return
	}

	log.Trace("logout success")
	pkg.WriteActionResponse(w, true, "logged out")
}
