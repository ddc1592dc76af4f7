package rewards

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/internal/users"
	"github.com/2beens/gymquest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=rewards_test

type rewardsService interface {
	Redeem(ctx context.Context, userID, rewardID int) (*Redemption, error)
	Add(ctx context.Context, reward NewReward) (int, error)
	Deactivate(ctx context.Context, id int) error
	ListActive(ctx context.Context) ([]Reward, error)
	ListAll(ctx context.Context) ([]Reward, error)
	UserRewards(ctx context.Context, userID int) ([]UserReward, error)
	Stats(ctx context.Context) (DashboardStats, error)
}

type RewardIDRequest struct {
	RewardID int `json:"reward_id" validate:"required,gt=0"`
}

type StoreResponse struct {
	Rewards  []Reward     `json:"rewards"`
	Redeemed []UserReward `json:"redeemed"`
}

type RedeemResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message,omitempty"`
	RemainingPoints int    `json:"remaining_points"`
}

type AddRewardResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	RewardID int    `json:"reward_id,omitempty"`
}

type DashboardResponse struct {
	Rewards []Reward       `json:"rewards"`
	Stats   DashboardStats `json:"stats"`
}

type Handler struct {
	service rewardsService
}

func NewHandler(service rewardsService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the store routes, admin routes are wrapped with adminOnly.
func (handler *Handler) SetupRoutes(router *mux.Router, adminOnly func(http.Handler) http.Handler) {
	router.HandleFunc("/rewards/", handler.HandleStore).Methods("GET").Name("rewards")
	router.HandleFunc("/redeem-reward/", handler.HandleRedeem).Methods("POST", "OPTIONS").Name("redeem-reward")

	admin := func(h http.HandlerFunc) http.Handler {
		if adminOnly == nil {
			return h
		}
		return adminOnly(h)
	}
	router.Handle("/admin-dashboard/", admin(handler.HandleDashboard)).Methods("GET").Name("admin-dashboard")
	router.Handle("/add-reward/", admin(handler.HandleAdd)).Methods("POST", "OPTIONS").Name("add-reward")
	router.Handle("/delete-reward/", admin(handler.HandleDelete)).Methods("POST", "OPTIONS").Name("delete-reward")
}

func (handler *Handler) HandleStore(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rewards.store")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	rewards, err := handler.service.ListActive(ctx)
	if err != nil {
		log.Errorf("list active rewards: %s", err)
		http.Error(w, "failed to list rewards", http.StatusInternalServerError)
		return
	}

	redeemed, err := handler.service.UserRewards(ctx, userID)
	if err != nil {
		log.Errorf("list redeemed rewards of user %d: %s", userID, err)
		http.Error(w, "failed to list rewards", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, StoreResponse{
		Rewards:  rewards,
		Redeemed: redeemed,
	}, http.StatusOK)
}

func (handler *Handler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rewards.redeem")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req RewardIDRequest
	if err := pkg.DecodeRequest(r, &req); err != nil {
		log.Debugf("redeem reward, bad request: %s", err)
		pkg.WriteActionResponse(w, false, "Invalid reward.")
		return
	}

	redemption, err := handler.service.Redeem(ctx, userID, req.RewardID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientPoints):
			pkg.WriteActionResponse(w, false, "Not enough reward points.")
		case errors.Is(err, ErrRewardNotFound):
			http.Error(w, "reward not found", http.StatusNotFound)
		case errors.Is(err, ErrRewardInactive):
			pkg.WriteActionResponse(w, false, "This reward is no longer available.")
		case errors.Is(err, users.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		default:
			log.Errorf("redeem reward %d for user %d: %s", req.RewardID, userID, err)
			http.Error(w, "failed to redeem reward", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSON(w, RedeemResponse{
		Success:         true,
		Message:         "Reward redeemed: " + redemption.RewardName,
		RemainingPoints: redemption.RemainingPoints,
	}, http.StatusOK)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rewards.dashboard")
	defer span.End()

	rewards, err := handler.service.ListAll(ctx)
	if err != nil {
		log.Errorf("admin dashboard, list rewards: %s", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		log.Errorf("admin dashboard, stats: %s", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DashboardResponse{
		Rewards: rewards,
		Stats:   stats,
	}, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rewards.add")
	defer span.End()

	var req NewReward
	if err := pkg.DecodeRequest(r, &req); err != nil {
		log.Debugf("add reward, bad request: %s", err)
		pkg.WriteJSON(w, AddRewardResponse{Message: "Invalid reward data."}, http.StatusOK)
		return
	}

	id, err := handler.service.Add(ctx, req)
	if err != nil {
		if errors.Is(err, pkg.ErrInvalidRequest) {
			pkg.WriteJSON(w, AddRewardResponse{Message: "Invalid reward data."}, http.StatusOK)
			return
		}
		log.Errorf("add reward [%s]: %s", req.Name, err)
		http.Error(w, "failed to add reward", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, AddRewardResponse{
		Success:  true,
		RewardID: id,
	}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rewards.delete")
	defer span.End()

	var req RewardIDRequest
	if err := pkg.DecodeRequest(r, &req); err != nil {
		log.Debugf("delete reward, bad request: %s", err)
		pkg.WriteActionResponse(w, false, "Invalid reward.")
		return
	}

	if err := handler.service.Deactivate(ctx, req.RewardID); err != nil {
		if errors.Is(err, ErrRewardNotFound) {
			pkg.WriteActionResponse(w, false, "Reward not found.")
			return
		}
		log.Errorf("delete reward %d: %s", req.RewardID, err)
		http.Error(w, "failed to delete reward", http.StatusInternalServerError)
		return
	}

	pkg.WriteActionResponse(w, true, "")
}
