package achievements

import (
	"context"
	"net/http"

	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=achievements_test

type achievementsEvaluator interface {
	Evaluate(ctx context.Context, userID int) ([]Achievement, error)
}

type achievementsLister interface {
	List(ctx context.Context, userID int) ([]Achievement, error)
}

type UnlockedAchievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CheckResponse struct {
	Achievements []UnlockedAchievement `json:"achievements"`
}

type Handler struct {
	evaluator achievementsEvaluator
	lister    achievementsLister
}

func NewHandler(evaluator achievementsEvaluator, lister achievementsLister) *Handler {
	return &Handler{
		evaluator: evaluator,
		lister:    lister,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/check-achievements/", handler.HandleCheck).Methods("POST", "OPTIONS").Name("check-achievements")
	router.HandleFunc("/achievements/", handler.HandleList).Methods("GET").Name("achievements")
}

func (handler *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.check")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	unlocked, err := handler.evaluator.Evaluate(ctx, userID)
	if err != nil {
		log.Errorf("check achievements for user %d: %s", userID, err)
		http.Error(w, "failed to check achievements", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, NewCheckResponse(unlocked), http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	achievements, err := handler.lister.List(ctx, userID)
	if err != nil {
		log.Errorf("list achievements for user %d: %s", userID, err)
		http.Error(w, "failed to list achievements", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, achievements, http.StatusOK)
}

func NewCheckResponse(unlocked []Achievement) CheckResponse {
	resp := CheckResponse{
		Achievements: make([]UnlockedAchievement, 0, len(unlocked)),
	}
	for _, a := range unlocked {
		resp.Achievements = append(resp.Achievements, UnlockedAchievement{
			Name:        a.Name,
			Description: a.Description,
		})
	}
	return resp
}
