package exercises

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesCatalog interface {
	List(ctx context.Context) ([]Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
}

type totalsProvider interface {
	ExerciseTotals(ctx context.Context, userID, exerciseID int) (UserTotals, error)
}

type ListResponse struct {
	Exercises []Exercise `json:"exercises"`
	Total     int        `json:"total"`
}

type SessionResponse struct {
	Exercise *Exercise  `json:"exercise"`
	Totals   UserTotals `json:"totals"`
}

type Handler struct {
	catalog exercisesCatalog
	totals  totalsProvider
}

func NewHandler(catalog exercisesCatalog, totals totalsProvider) *Handler {
	return &Handler{
		catalog: catalog,
		totals:  totals,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/", handler.HandleList).Methods("GET").Name("index")
	router.HandleFunc("/exercises/", handler.HandleList).Methods("GET").Name("exercises")
	router.HandleFunc("/exercise/{id}/", handler.HandleGet).Methods("GET").Name("exercise")
	router.HandleFunc("/exercise/{id}/session/", handler.HandleSession).Methods("GET").Name("exercise-session")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	exercises, err := handler.catalog.List(ctx)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		http.Error(w, "failed to list exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{
		Exercises: exercises,
		Total:     len(exercises),
	}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	exercise, ok := handler.exerciseFromPath(w, r.WithContext(ctx))
	if !ok {
		return
	}

	pkg.WriteJSON(w, exercise, http.StatusOK)
}

// HandleSession returns the exercise together with the caller's progress on it.
func (handler *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.session")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exercise, ok := handler.exerciseFromPath(w, r.WithContext(ctx))
	if !ok {
		return
	}

	totals, err := handler.totals.ExerciseTotals(ctx, userID, exercise.ID)
	if err != nil {
		log.Errorf("exercise session, totals for user %d exercise %d: %s", userID, exercise.ID, err)
		http.Error(w, "failed to get exercise session", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, SessionResponse{
		Exercise: exercise,
		Totals:   totals,
	}, http.StatusOK)
}

func (handler *Handler) exerciseFromPath(w http.ResponseWriter, r *http.Request) (*Exercise, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return nil, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return nil, false
	}

	exercise, err := handler.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return nil, false
		}
		log.Errorf("failed to get exercise %d: %s", id, err)
		http.Error(w, "failed to get exercise", http.StatusInternalServerError)
		return nil, false
	}
	return exercise, true
}
