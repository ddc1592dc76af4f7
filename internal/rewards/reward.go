package rewards

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardInactive     = errors.New("reward is no longer available")
	ErrInsufficientPoints = errors.New("insufficient reward points")
)

type Reward struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PointsCost  int       `json:"points_cost"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserReward is a redemption record, never mutated after creation.
type UserReward struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	RewardID   int       `json:"reward_id"`
	RewardName string    `json:"reward_name"`
	PointsCost int       `json:"points_cost"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

type Redemption struct {
	UserReward
	RemainingPoints int `json:"remaining_points"`
}

type NewReward struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	PointsCost  int    `json:"points_cost" validate:"required,gt=0"`
}

type DashboardStats struct {
	Users         int `json:"users"`
	Redemptions   int `json:"redemptions"`
	ActiveRewards int `json:"active_rewards"`
}

func redeemedActivity(rewardName string) string {
	return fmt.Sprintf("Redeemed reward: %s", rewardName)
}
