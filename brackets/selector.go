package brackets

import (
	"sort"

	"github.com/Dosada05/job-bracket/models"
)

func bracketRank(side models.BracketSide) int {
	if side == models.BracketWinners {
		return 0
	}
	return 1
}

// playsBefore orders matches by round, then winners before losers, then position.
func playsBefore(a, b *models.Match) bool {
	if a.Round != b.Round {
		return a.Round < b.Round
	}
	if a.Bracket != b.Bracket {
		return bracketRank(a.Bracket) < bracketRank(b.Bracket)
	}
	return a.Position < b.Position
}

// nextMatch returns the first open match in play order, or nil when nothing is left.
func nextMatch(set matchSet) *models.Match {
	var next *models.Match
	for i := 0; i < set.len(); i++ {
		m := set.at(i)
		if !m.IsOpen() {
			continue
		}
		if next == nil || playsBefore(m, next) {
			next = m
		}
	}
	return next
}

// OrderedMatches returns every materialized match in play order.
func OrderedMatches(state *State) []models.Match {
	ptrs := make([]*models.Match, 0, state.matches.len())
	for i := 0; i < state.matches.len(); i++ {
		ptrs = append(ptrs, state.matches.at(i))
	}
	sort.SliceStable(ptrs, func(i, j int) bool {
		return playsBefore(ptrs[i], ptrs[j])
	})

	out := make([]models.Match, len(ptrs))
	for i, m := range ptrs {
		out[i] = *m
	}
	return out
}
