package leaderboard

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

const defaultPageSize = 20

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=leaderboard_test

type pageProvider interface {
	Page(ctx context.Context, page, size, userID int) (*Page, error)
}

type Handler struct {
	board       pageProvider
	defaultSize int
}

func NewHandler(board pageProvider, defaultSize int) *Handler {
	if defaultSize <= 0 {
		defaultSize = defaultPageSize
	}
	return &Handler{
		board:       board,
		defaultSize: defaultSize,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/leaderboard/", handler.HandleGet).Methods("GET").Name("leaderboard")
}

// HandleGet handles GET /leaderboard/?page=&size=
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.get")
	defer span.End()

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = p
	}

	size := handler.defaultSize
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		s, err := strconv.Atoi(sizeStr)
		if err != nil || s < 1 || s > MaxPageSize {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
		size = s
	}

	if page > MaxPage(size) {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}

	userID, _ := auth.UserIDFromContext(ctx)
	result, err := handler.board.Page(ctx, page, size, userID)
	if errors.Is(err, ErrPageOutOfRange) {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("get leaderboard page %d: %s", page, err)
		http.Error(w, "failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}
