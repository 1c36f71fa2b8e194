package brackets

import (
	"fmt"

	"github.com/Dosada05/job-bracket/models"
)

// SelectWinner records winnerID as the winner of the current match and returns the next
// state. The input state is never modified. With no current match the call is a no-op; a
// winner that is not in the current match leaves the state untouched and returns an error
// wrapping ErrNotParticipant.
func SelectWinner(state *State, winnerID int) (*State, error) {
	if state == nil || state.current == nil {
		return state, nil
	}

	current := state.current
	if !state.matches.has(current.ID) {
		return state, nil
	}
	winner, ok := current.Participant(winnerID)
	if !ok {
		return state, fmt.Errorf("%w: candidate %d in match %s", ErrNotParticipant, winnerID, current.ID)
	}

	decided := *current
	decided.Winner = winner
	set := state.matches.put(&decided)

	book := eliminationBook{
		lossCounts: state.lossCounts,
		completed:  state.completed,
		order:      state.eliminationOrder,
	}.recordOutcome(winner, decided.Loser())

	set = materialize(set, &decided)

	next := &State{
		matches:          set,
		current:          nextMatch(set),
		completed:        book.completed,
		lossCounts:       book.lossCounts,
		eliminationOrder: book.order,
		history:          state.history.Append(state.withoutHistory()),
		winners:          state.winners,
		placements:       state.placements,
	}
	if next.current == nil {
		next.winners, next.placements = calculatePlacements(set, book.order)
	}
	return next, nil
}

// UndoSelection restores the state that preceded the last SelectWinner. With an empty
// history the same state is returned.
func UndoSelection(state *State) *State {
	if state == nil || state.history.Len() == 0 {
		return state
	}
	n := state.history.Len()
	previous := *state.history.Get(n - 1)
	previous.history = state.history.Slice(0, n-1)
	return &previous
}

// Progress summarizes how far a tournament has advanced.
type Progress struct {
	TotalMatches     int `json:"total_matches"`
	CompletedMatches int `json:"completed_matches"`
	RemainingJobs    int `json:"remaining_jobs"`
}

func GetBracketProgress(state *State) Progress {
	var p Progress

	p.TotalMatches = BaseTotalMatches
	if state.matches.has(GrandFinalResetID) {
		p.TotalMatches++
	}

	for i := 0; i < state.matches.len(); i++ {
		if state.matches.at(i).Winner != nil {
			p.CompletedMatches++
		}
	}

	if state.current != nil {
		p.RemainingJobs = TotalEntrants - state.completed.Len()
	}
	return p
}

// Standings reports every competitor's record: wins, losses, elimination and final place.
// Placed candidates come first, then by wins (desc), losses (asc) and id.
func Standings(state *State) []models.Standing {
	byID := make(map[int]*models.Standing)
	entry := func(c *models.Candidate) *models.Standing {
		st, ok := byID[c.ID]
		if !ok {
			st = &models.Standing{Candidate: *c}
			byID[c.ID] = st
		}
		return st
	}

	for i := 0; i < state.matches.len(); i++ {
		m := state.matches.at(i)
		if m.Job1 != nil {
			entry(m.Job1).Played += boolToInt(m.Winner != nil)
		}
		if m.Job2 != nil {
			entry(m.Job2).Played += boolToInt(m.Winner != nil)
		}
		if m.Winner != nil {
			entry(m.Winner).Wins++
		}
	}

	out := make([]models.Standing, 0, len(byID))
	for id, st := range byID {
		st.Losses = state.LossCount(id)
		st.Eliminated = state.IsEliminated(id)
		if place, ok := state.Placement(id); ok {
			st.Placement = place
		}
		out = append(out, *st)
	}
	models.SortStandings(out)
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
