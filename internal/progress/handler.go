package progress

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/gymquest/internal/achievements"
	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/internal/exercises"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/internal/users"
	"github.com/2beens/gymquest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const defaultHistoryLimit = 50

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressRecorder interface {
	Record(ctx context.Context, userID, exerciseID, reps int) (*Result, error)
}

type historyProvider interface {
	History(ctx context.Context, userID, limit int) ([]Progress, error)
}

type UpdateRequest struct {
	ExerciseID int `json:"exercise_id" validate:"required,gt=0"`
	Reps       int `json:"reps" validate:"max=10000"`
}

type UpdateResponse struct {
	ExpEarned     int                                `json:"exp_earned"`
	TotalExp      int                                `json:"total_exp"`
	Level         int                                `json:"level"`
	RewardPoints  int                                `json:"reward_points"`
	PointsAwarded int                                `json:"points_awarded"`
	LeveledUp     bool                               `json:"leveled_up"`
	Streak        int                                `json:"streak"`
	Rank          int                                `json:"rank,omitempty"`
	Achievements  []achievements.UnlockedAchievement `json:"achievements"`
}

type Handler struct {
	recorder progressRecorder
	history  historyProvider
}

func NewHandler(recorder progressRecorder, history historyProvider) *Handler {
	return &Handler{
		recorder: recorder,
		history:  history,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/update-progress/", handler.HandleUpdate).Methods("POST", "OPTIONS").Name("update-progress")
	router.HandleFunc("/progress/", handler.HandleHistory).Methods("GET").Name("progress-history")
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req UpdateRequest
	if err := pkg.DecodeRequest(r, &req); err != nil {
		log.Debugf("update progress, bad request: %s", err)
		http.Error(w, "invalid progress update", http.StatusBadRequest)
		return
	}

	result, err := handler.recorder.Record(ctx, userID, req.ExerciseID, req.Reps)
	if err != nil {
		switch {
		case errors.Is(err, ErrNegativeReps):
			http.Error(w, "reps must not be negative", http.StatusBadRequest)
		case errors.Is(err, ErrExpOutOfRange):
			http.Error(w, "too many reps", http.StatusBadRequest)
		case errors.Is(err, exercises.ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		case errors.Is(err, users.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		default:
			log.Errorf("update progress for user %d: %s", userID, err)
			http.Error(w, "failed to update progress", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSON(w, UpdateResponse{
		ExpEarned:     result.ExpEarned,
		TotalExp:      result.TotalExp,
		Level:         result.Level,
		RewardPoints:  result.RewardPoints,
		PointsAwarded: result.PointsAwarded,
		LeveledUp:     result.LeveledUp,
		Streak:        result.Streak,
		Rank:          result.Rank,
		Achievements:  achievements.NewCheckResponse(result.Achievements).Achievements,
	}, http.StatusOK)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.history")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	history, err := handler.history.History(ctx, userID, defaultHistoryLimit)
	if err != nil {
		log.Errorf("progress history for user %d: %s", userID, err)
		http.Error(w, "failed to get progress history", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, history, http.StatusOK)
}
