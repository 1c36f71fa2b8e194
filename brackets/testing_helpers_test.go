package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/job-bracket/models"
)

func createTestJobs(count int) []models.Candidate {
	jobs := make([]models.Candidate, count)
	for i := range jobs {
		jobs[i] = models.Candidate{
			ID:          i + 1,
			Title:       fmt.Sprintf("Job %d", i+1),
			Description: fmt.Sprintf("Description for job %d", i+1),
		}
	}
	return jobs
}

func newTestBracket(t *testing.T, seed int64) *State {
	t.Helper()
	state, err := InitializeBracket(createTestJobs(TotalEntrants), WithRandSource(NewSeededRand(seed)))
	require.NoError(t, err)
	return state
}

type pickFunc func(m models.Match) int

func pickJob1(m models.Match) int { return m.Job1.ID }
func pickJob2(m models.Match) int { return m.Job2.ID }

func pickLowerID(m models.Match) int {
	if m.Job1.ID < m.Job2.ID {
		return m.Job1.ID
	}
	return m.Job2.ID
}

func pickRandom(seed int64) pickFunc {
	rng := NewSeededRand(seed)
	return func(m models.Match) int {
		if rng.IntN(2) == 0 {
			return m.Job1.ID
		}
		return m.Job2.ID
	}
}

// playN decides up to n matches and returns the final state plus the presented matches.
func playN(t *testing.T, state *State, n int, pick pickFunc) (*State, []models.Match) {
	t.Helper()
	var presented []models.Match
	for i := 0; i < n; i++ {
		current, ok := state.CurrentMatch()
		if !ok {
			break
		}
		presented = append(presented, current)

		next, err := SelectWinner(state, pick(current))
		require.NoError(t, err)
		state = next
	}
	return state, presented
}

func playAll(t *testing.T, state *State, pick pickFunc) (*State, []models.Match) {
	return playN(t, state, BaseTotalMatches+10, pick)
}

func candidatePtr(c models.Candidate) *models.Candidate {
	return &c
}

func decidedMatch(id string, round int, side models.BracketSide, job1, job2, winner models.Candidate) models.Match {
	return models.Match{
		ID:      id,
		Job1:    candidatePtr(job1),
		Job2:    candidatePtr(job2),
		Winner:  candidatePtr(winner),
		Round:   round,
		Bracket: side,
	}
}
