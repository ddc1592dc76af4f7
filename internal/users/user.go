package users

import (
	"errors"
	"time"
)

const (
	ExpPerLevel          = 100
	RewardPointsExpStep  = 300
	baseThresholdPoints  = 5
	thresholdPointsCycle = 5
)

var ErrNegativeExp = errors.New("exp amount must not be negative")

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio"`
	PasswordHash string    `json:"-"`
	Exp          int       `json:"exp"`
	Level        int       `json:"level"`
	RewardPoints int       `json:"reward_points"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// LevelForExp maps cumulative EXP to a level, starting at level 1.
func LevelForExp(exp int) int {
	return exp/ExpPerLevel + 1
}

// AddExp credits EXP and raises the level when the new EXP allows it.
// The level is never lowered.
func (u *User) AddExp(amount int) (leveledUp bool, err error) {
	if amount < 0 {
		return false, ErrNegativeExp
	}

	u.Exp += amount
	if newLevel := LevelForExp(u.Exp); newLevel > u.Level {
		u.Level = newLevel
		return true, nil
	}
	return false, nil
}

// ThresholdRewardPoints returns the reward points granted for a submission that
// earned `earned` EXP and left the user at `exp`. A grant happens when the submission
// crossed a multiple of 300, judged by the remainder only, so one submission crossing
// several multiples still gets a single grant of 5 to 9 points.
func ThresholdRewardPoints(exp, earned int) int {
	if earned <= 0 || exp%RewardPointsExpStep >= earned {
		return 0
	}
	return baseThresholdPoints + (exp/RewardPointsExpStep)%thresholdPointsCycle
}

// AddRewardPoints applies ThresholdRewardPoints to the user and returns the granted amount.
func (u *User) AddRewardPoints(earned int) int {
	points := ThresholdRewardPoints(u.Exp, earned)
	u.RewardPoints += points
	return points
}
