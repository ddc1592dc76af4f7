package achievements

import "time"

type Achievement struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Activity struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Milestone is an achievement that can be unlocked. Level is 0 for
// milestones not tied to a level.
type Milestone struct {
	Name        string
	Description string
	Level       int
}

var FirstSteps = Milestone{
	Name:        "First Steps",
	Description: "Completed your first exercise",
}

// LevelMilestones are ordered by level.
var LevelMilestones = []Milestone{
	{Name: "Getting Started", Description: "Reached level 5", Level: 5},
	{Name: "Intermediate", Description: "Reached level 10", Level: 10},
	{Name: "Advanced", Description: "Reached level 20", Level: 20},
	{Name: "Master", Description: "Reached level 50", Level: 50},
}

// Unlockable returns the milestones the user qualifies for, regardless of
// whether they are already unlocked. First Steps only counts while exactly
// one progress record exists.
func Unlockable(progressCount, level int) []Milestone {
	var milestones []Milestone
	if progressCount == 1 {
		milestones = append(milestones, FirstSteps)
	}
	for _, m := range LevelMilestones {
		if level >= m.Level {
			milestones = append(milestones, m)
		}
	}
	return milestones
}

func EarnedActivity(achievementName string) string {
	return "Earned achievement: " + achievementName
}
