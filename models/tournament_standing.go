package models

import "sort"

// Standing is one competitor's record within a bracket.
type Standing struct {
	Candidate  Candidate `json:"candidate"`
	Played     int       `json:"played"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	Eliminated bool      `json:"eliminated"`
	Placement  int       `json:"placement,omitempty"` // 0 when unplaced
}

// SortStandings orders placed candidates first by place, then everyone else by wins
// (desc), losses (asc) and candidate id.
func SortStandings(standings []Standing) {
	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		switch {
		case a.Placement != 0 && b.Placement != 0:
			return a.Placement < b.Placement
		case a.Placement != 0 || b.Placement != 0:
			return a.Placement != 0
		case a.Wins != b.Wins:
			return a.Wins > b.Wins
		case a.Losses != b.Losses:
			return a.Losses < b.Losses
		}
		return a.Candidate.ID < b.Candidate.ID
	})
}
