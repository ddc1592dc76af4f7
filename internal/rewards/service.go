package rewards

import (
	"context"
	"errors"
	"strings"

	"github.com/2beens/gymquest/internal/telemetry/metrics"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/internal/users"
	"github.com/2beens/gymquest/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=rewards_test

type rewardsRepo interface {
	Redeem(ctx context.Context, userID, rewardID int) (*Redemption, error)
	Add(ctx context.Context, reward NewReward) (int, error)
	Deactivate(ctx context.Context, id int) error
	ListActive(ctx context.Context) ([]Reward, error)
	ListAll(ctx context.Context) ([]Reward, error)
	UserRewards(ctx context.Context, userID int) ([]UserReward, error)
	Stats(ctx context.Context) (DashboardStats, error)
}

type Service struct {
	repo           rewardsRepo
	metricsManager *metrics.Manager
}

func NewService(repo rewardsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (s *Service) Redeem(ctx context.Context, userID, rewardID int) (_ *Redemption, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "rewards.redeem")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.Int("reward.id", rewardID))

	redemption, err := s.repo.Redeem(ctx, userID, rewardID)
	s.metricsManager.CounterRewardRedemptions.WithLabelValues(redemptionOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	log.Debugf("user %d redeemed reward %d [%s], %d points left", userID, rewardID, redemption.RewardName, redemption.RemainingPoints)
	return redemption, nil
}

func redemptionOutcome(err error) string {
	switch {
	case err == nil:
		return "redeemed"
	case errors.Is(err, ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, ErrRewardNotFound), errors.Is(err, ErrRewardInactive):
		return "unavailable"
	case errors.Is(err, users.ErrUserNotFound):
		return "unknown_user"
	}
	return "error"
}

func (s *Service) Add(ctx context.Context, reward NewReward) (int, error) {
	reward.Name = strings.TrimSpace(reward.Name)
	reward.Description = strings.TrimSpace(reward.Description)
	if err := pkg.Validate(reward); err != nil {
		return 0, err
	}

	id, err := s.repo.Add(ctx, reward)
	if err != nil {
		return 0, err
	}
	log.Debugf("new reward added: %d [%s], cost %d", id, reward.Name, reward.PointsCost)
	return id, nil
}

func (s *Service) Deactivate(ctx context.Context, id int) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	log.Debugf("reward %d deactivated", id)
	return nil
}

func (s *Service) ListActive(ctx context.Context) ([]Reward, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]Reward, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) UserRewards(ctx context.Context, userID int) ([]UserReward, error) {
	return s.repo.UserRewards(ctx, userID)
}

func (s *Service) Stats(ctx context.Context) (DashboardStats, error) {
	return s.repo.Stats(ctx)
}
