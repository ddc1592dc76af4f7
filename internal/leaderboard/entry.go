package leaderboard

import "errors"

var ErrNotRanked = errors.New("user is not ranked")

// Entry is one leaderboard position. Rank is standard competition ranking:
// 1 + number of users with strictly more EXP, so tied users share a rank.
type Entry struct {
	Rank     int    `json:"rank"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	TotalExp int    `json:"total_exp"`
	Level    int    `json:"level"`
}

// assignRanks fills ranks of a page sorted by EXP descending. firstRank is the
// rank of entries[0], offset its position in the full ordering.
func assignRanks(entries []Entry, offset, firstRank int) {
	for i := range entries {
		switch {
		case i == 0:
			entries[i].Rank = firstRank
		case entries[i].TotalExp == entries[i-1].TotalExp:
			entries[i].Rank = entries[i-1].Rank
		default:
			entries[i].Rank = offset + i + 1
		}
	}
}
