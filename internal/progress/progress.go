package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymquest/internal/achievements"
)

var (
	ErrNegativeReps = errors.New("reps must not be negative")
	// ErrExpOutOfRange is returned when a submission would push EXP past what the INTEGER columns hold.
	ErrExpOutOfRange = errors.New("exp out of range")
)

// Progress is one recorded set. Every submission is stored as its own row.
type Progress struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	ExerciseID    int       `json:"exercise_id"`
	ExerciseName  string    `json:"exercise_name,omitempty"`
	RepsCompleted int       `json:"reps_completed"`
	ExpEarned     int       `json:"exp_earned"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Progression is the user's state right after a submission was committed.
type Progression struct {
	ProgressID    int
	ExpEarned     int
	TotalExp      int
	Level         int
	RewardPoints  int
	PointsAwarded int
	LeveledUp     bool
	Streak        int
}

type Result struct {
	Progression
	Rank         int
	Achievements []achievements.Achievement
}

func levelUpActivity(level int) string {
	return fmt.Sprintf("Reached level %d", level)
}

func rewardPointsActivity(points int) string {
	return fmt.Sprintf("Earned %d reward points", points)
}
