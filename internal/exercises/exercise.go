package exercises

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Exercise is catalog reference data, managed through migrations.
type Exercise struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Difficulty  Difficulty `json:"difficulty"`
	ExpPerRep   int        `json:"exp_per_rep"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ExpFor returns the EXP earned for the given repetitions.
func (e *Exercise) ExpFor(reps int) int {
	return reps * e.ExpPerRep
}

// UserTotals sums one user's recorded sets on an exercise.
type UserTotals struct {
	Sets       int        `json:"sets"`
	Reps       int        `json:"reps"`
	Exp        int        `json:"exp"`
	LastDoneAt *time.Time `json:"last_done_at,omitempty"`
}
