package users

import "time"

// Streak counts consecutive UTC days with at least one recorded exercise.
type Streak struct {
	Current      int        `json:"current"`
	Longest      int        `json:"longest"`
	LastActiveOn *time.Time `json:"last_active_on,omitempty"`
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysSinceActive returns how many calendar days passed between the last active day and `at`.
func (s Streak) daysSinceActive(at time.Time) int {
	return int(truncateToDay(at).Sub(truncateToDay(*s.LastActiveOn)).Hours() / 24)
}

// Next returns the streak after an exercise recorded at `at`. More activity on the
// same day changes nothing, the following day extends the streak and any longer
// gap starts over from 1.
func (s Streak) Next(at time.Time) Streak {
	day := truncateToDay(at)
	next := Streak{
		Current:      1,
		Longest:      s.Longest,
		LastActiveOn: &day,
	}

	if s.LastActiveOn != nil {
		switch days := s.daysSinceActive(at); {
		case days <= 0:
			// same day, or the clock went backwards
			return s
		case days == 1:
			next.Current = s.Current + 1
		}
	}

	next.Longest = max(next.Longest, next.Current)
	return next
}

// AsOf reports the streak as seen at `at`. A streak whose last active day is older
// than yesterday is already broken, so its current length reads 0.
func (s Streak) AsOf(at time.Time) Streak {
	if s.LastActiveOn != nil && s.daysSinceActive(at) > 1 {
		s.Current = 0
	}
	return s
}
