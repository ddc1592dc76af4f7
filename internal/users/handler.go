package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/gymquest/internal/achievements"
	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const profileFeedSize = 5

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type usersService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (*User, error)
	Streak(ctx context.Context, id int) (Streak, error)
}

type activityFeed interface {
	RecentAchievements(ctx context.Context, userID, limit int) ([]achievements.Achievement, error)
	RecentActivities(ctx context.Context, userID, limit int) ([]achievements.Activity, error)
}

type sessionStarter interface {
	Login(ctx context.Context, userID int, createdAt time.Time) (string, error)
	TTL() time.Duration
}

type SignUpResponse struct {
	User     *User  `json:"user"`
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
}

type ProfileResponse struct {
	User               *User                      `json:"user"`
	Streak             Streak                     `json:"streak"`
	RecentAchievements []achievements.Achievement `json:"recent_achievements"`
	RecentActivity     []achievements.Activity    `json:"recent_activity"`
}

type Handler struct {
	service      usersService
	feed         activityFeed
	sessions     sessionStarter
	cookieSecure bool
}

func NewHandler(
	service usersService,
	feed activityFeed,
	sessions sessionStarter,
	cookieSecure bool,
) *Handler {
	return &Handler{
		service:      service,
		feed:         feed,
		sessions:     sessions,
		cookieSecure: cookieSecure,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router, signupRateLimit func(http.Handler) http.Handler) {
	signupHandler := http.Handler(http.HandlerFunc(handler.HandleSignUp))
	if signupRateLimit != nil {
		signupHandler = signupRateLimit(signupHandler)
	}
	router.Handle("/signup/", signupHandler).Methods("POST", "OPTIONS").Name("signup")
	router.HandleFunc("/profile/", handler.HandleGetProfile).Methods("GET").Name("profile-get")
	router.HandleFunc("/profile/", handler.HandleUpdateProfile).Methods("POST", "OPTIONS").Name("profile-update")
}

// HandleSignUp creates the account and logs the new user in.
func (handler *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.signup")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var req SignUpRequest
	if err := pkg.DecodeRequest(r, &req); err != nil {
		log.Debugf("signup, decode request: %s", err)
		pkg.WriteJSON(w, pkg.ActionResponse{Message: err.Error()}, http.StatusBadRequest)
		return
	}

	user, err := handler.service.SignUp(ctx, req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			pkg.WriteJSON(w, pkg.ActionResponse{Message: msg}, http.StatusBadRequest)
			return
		}
		log.Errorf("signup failed: %s", err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	token, err := handler.sessions.Login(ctx, user.ID, time.Now())
	if err != nil {
		// the account exists, the user can still log in manually
		log.Errorf("signup, login user %d: %s", user.ID, err)
		pkg.WriteJSON(w, SignUpResponse{User: user, Redirect: "/login/"}, http.StatusCreated)
		return
	}
	auth.SetSessionCookie(w, token, handler.sessions.TTL(), handler.cookieSecure)

	pkg.WriteJSON(w, SignUpResponse{User: user, Token: token, Redirect: "/"}, http.StatusCreated)
}

func (handler *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.profile")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.service.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile %d: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	streak, err := handler.service.Streak(ctx, userID)
	if err != nil {
		log.Errorf("get profile %d, streak: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	recentAchievements, err := handler.feed.RecentAchievements(ctx, userID, profileFeedSize)
	if err != nil {
		log.Errorf("get profile %d, recent achievements: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	recentActivity, err := handler.feed.RecentActivities(ctx, userID, profileFeedSize)
	if err != nil {
		log.Errorf("get profile %d, recent activity: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ProfileResponse{
		User:               user,
		Streak:             streak,
		RecentAchievements: recentAchievements,
		RecentActivity:     recentActivity,
	}, http.StatusOK)
}

func (handler *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.updateProfile")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var update ProfileUpdate
	if err := pkg.DecodeRequest(r, &update); err != nil {
		pkg.WriteActionResponse(w, false, err.Error())
		return
	}

	user, err := handler.service.UpdateProfile(ctx, userID, update)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			pkg.WriteActionResponse(w, false, msg)
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("update profile %d: %s", userID, err)
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("profile updated: %d [%s]", user.ID, user.Username)
	pkg.WriteJSON(w, struct {
		pkg.ActionResponse
		User *User `json:"user"`
	}{
		ActionResponse: pkg.ActionResponse{Success: true, Message: "Profile updated successfully."},
		User:           user,
	}, http.StatusOK)
}

// validationMessage maps user-input errors to the message shown to the user.
func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match.", true
	case errors.Is(err, ErrUsernameTaken):
		return "Username already exists.", true
	case errors.Is(err, ErrEmailTaken):
		return "Email already exists.", true
	case errors.Is(err, pkg.ErrInvalidRequest):
		return err.Error(), true
	}
	return "", false
}
