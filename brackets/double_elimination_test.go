package brackets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/job-bracket/models"
)

func TestInitializeBracket(t *testing.T) {
	state := newTestBracket(t, 1)

	matches := state.Matches()
	require.Len(t, matches, firstRoundMatches)

	seen := make(map[int]int)
	for _, m := range matches {
		assert.Equal(t, models.BracketWinners, m.Bracket)
		assert.Equal(t, 1, m.Round)
		assert.Nil(t, m.Winner)
		require.NotNil(t, m.Job1)
		require.NotNil(t, m.Job2)
		seen[m.Job1.ID]++
		seen[m.Job2.ID]++
	}
	assert.Len(t, seen, TotalEntrants)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "candidate %d appears %d times", id, n)
	}

	current, ok := state.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, "w-r1-0", current.ID)

	assert.Zero(t, state.HistoryLen())
	assert.Zero(t, state.EliminatedCount())
	assert.Empty(t, state.EliminationOrder())
	assert.Empty(t, state.Winners())
	assert.Empty(t, state.Placements())
	assert.Len(t, state.LossCounts(), TotalEntrants)
}

func TestInitializeBracketRejectsWrongEntrantCount(t *testing.T) {
	for _, count := range []int{0, 64, 127, 129, 256} {
		_, err := InitializeBracket(createTestJobs(count))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEntrantCount)

		var countErr *InvalidEntrantCountError
		require.True(t, errors.As(err, &countErr))
		assert.Equal(t, TotalEntrants, countErr.Expected)
		assert.Equal(t, count, countErr.Actual)
	}

	_, err := InitializeBracket(createTestJobs(64))
	assert.EqualError(t, err, "expected exactly 128 candidates, but received 64")
}

func TestInitializeBracketDoesNotModifyInput(t *testing.T) {
	jobs := createTestJobs(TotalEntrants)
	original := append([]models.Candidate(nil), jobs...)

	_, err := InitializeBracket(jobs)
	require.NoError(t, err)
	assert.Equal(t, original, jobs)
}

func TestSelectWinner(t *testing.T) {
	state := newTestBracket(t, 7)
	before := state.Snapshot()

	current, _ := state.CurrentMatch()
	next, err := SelectWinner(state, current.Job1.ID)
	require.NoError(t, err)

	decided, ok := next.Match(current.ID)
	require.True(t, ok)
	require.NotNil(t, decided.Winner)
	assert.Equal(t, current.Job1.ID, decided.Winner.ID)

	following, ok := next.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, "w-r1-1", following.ID)

	assert.Equal(t, 1, next.HistoryLen())
	assert.Equal(t, 1, next.LossCount(current.Job2.ID))
	assert.False(t, next.IsEliminated(current.Job2.ID))
	assert.Zero(t, next.LossCount(current.Job1.ID))

	assert.Equal(t, before, state.Snapshot(), "input state must not change")
}

func TestSelectWinnerRejectsNonParticipant(t *testing.T) {
	state := newTestBracket(t, 7)
	current, _ := state.CurrentMatch()

	var outsider int
	for _, c := range createTestJobs(TotalEntrants) {
		if !current.HasParticipant(c.ID) {
			outsider = c.ID
			break
		}
	}

	next, err := SelectWinner(state, outsider)
	require.ErrorIs(t, err, ErrNotParticipant)
	assert.Same(t, state, next)
}

func TestSelectWinnerWithoutCurrentMatchIsNoop(t *testing.T) {
	state, err := FromSnapshot(Snapshot{})
	require.NoError(t, err)

	next, err := SelectWinner(state, 1)
	require.NoError(t, err)
	assert.Same(t, state, next)
}

func TestCompletingFirstRoundMaterializesNextRounds(t *testing.T) {
	state := newTestBracket(t, 3)

	state, _ = playN(t, state, firstRoundMatches-1, pickJob1)
	assert.Empty(t, state.matches.round(models.BracketLosers, 1))
	assert.Empty(t, state.matches.round(models.BracketWinners, 2))

	state, _ = playN(t, state, 1, pickJob1)
	assert.Len(t, state.matches.round(models.BracketWinners, 2), 32)
	assert.Len(t, state.matches.round(models.BracketLosers, 1), 32)
	assert.Empty(t, state.matches.round(models.BracketLosers, 2))

	current, ok := state.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, "l-r1-0", current.ID)
}

func TestMaterializeIsIdempotent(t *testing.T) {
	state := newTestBracket(t, 3)
	state, _ = playN(t, state, firstRoundMatches, pickJob2)

	decided, ok := state.matches.get("w-r1-63")
	require.True(t, ok)

	again := materialize(state.matches, decided)
	assert.Equal(t, state.matches.len(), again.len())
	assert.Equal(t, state.matches.values(), again.values())
}

func TestFullTournamentWithoutReset(t *testing.T) {
	state := newTestBracket(t, 11)

	final, presented := playAll(t, state, pickJob1)

	assert.Len(t, presented, BaseTotalMatches)
	assert.True(t, final.IsComplete())
	_, hasReset := final.Match(GrandFinalResetID)
	assert.False(t, hasReset)

	progress := GetBracketProgress(final)
	assert.Equal(t, Progress{TotalMatches: BaseTotalMatches, CompletedMatches: BaseTotalMatches}, progress)

	assert.Equal(t, TotalEntrants-1, final.EliminatedCount())
	assertRoundSizes(t, final)

	winners := final.Winners()
	require.Len(t, winners, topPlacements)
	for i, w := range winners {
		place, ok := final.Placement(w.ID)
		require.True(t, ok)
		assert.Equal(t, i+1, place)
	}

	grandFinal, ok := final.Match(GrandFinalID)
	require.True(t, ok)
	assert.Equal(t, grandFinal.Winner.ID, winners[0].ID)
	assert.Equal(t, grandFinal.Loser().ID, winners[1].ID)
}

func TestFullTournamentWithReset(t *testing.T) {
	state := newTestBracket(t, 11)

	final, presented := playAll(t, state, pickJob2)

	assert.Len(t, presented, BaseTotalMatches+1)
	assert.True(t, final.IsComplete())

	progress := GetBracketProgress(final)
	assert.Equal(t, BaseTotalMatches+1, progress.TotalMatches)
	assert.Equal(t, BaseTotalMatches+1, progress.CompletedMatches)
	assert.Zero(t, progress.RemainingJobs)

	reset, ok := final.Match(GrandFinalResetID)
	require.True(t, ok)
	assert.Equal(t, WinnersRounds+2, reset.Round)

	winners := final.Winners()
	require.Len(t, winners, topPlacements)
	assert.Equal(t, reset.Winner.ID, winners[0].ID)
	assert.Equal(t, reset.Loser().ID, winners[1].ID)
}

func TestEliminationInvariantsHoldThroughout(t *testing.T) {
	state := newTestBracket(t, 5)
	pick := pickRandom(99)

	for {
		current, ok := state.CurrentMatch()
		if !ok {
			break
		}

		assert.Falsef(t, state.IsEliminated(current.Job1.ID), "eliminated candidate %d presented", current.Job1.ID)
		assert.Falsef(t, state.IsEliminated(current.Job2.ID), "eliminated candidate %d presented", current.Job2.ID)

		next, err := SelectWinner(state, pick(current))
		require.NoError(t, err)
		state = next

		order := state.EliminationOrder()
		require.Len(t, order, state.EliminatedCount())

		ids := make(map[int]bool, len(order))
		for _, c := range order {
			require.Falsef(t, ids[c.ID], "candidate %d eliminated twice", c.ID)
			ids[c.ID] = true
			require.GreaterOrEqual(t, state.LossCount(c.ID), 2)
		}
		for id, losses := range state.LossCounts() {
			require.Equal(t, losses >= 2, state.IsEliminated(id))
		}
	}

	assert.Zero(t, GetBracketProgress(state).RemainingJobs)
	assertRoundSizes(t, state)
}

func TestMatchPresentationOrder(t *testing.T) {
	state := newTestBracket(t, 21)

	_, presented := playAll(t, state, pickRandom(4))
	require.GreaterOrEqual(t, len(presented), BaseTotalMatches)

	for i := 0; i < firstRoundMatches; i++ {
		assert.Equal(t, models.BracketWinners, presented[i].Bracket)
		assert.Equal(t, 1, presented[i].Round)
	}

	lastRound := map[models.BracketSide]int{}
	lastNonFinal := 0
	for _, m := range presented {
		assert.GreaterOrEqualf(t, m.Round, lastRound[m.Bracket], "match %s presented out of order", m.ID)
		lastRound[m.Bracket] = m.Round

		if m.ID == GrandFinalID || m.ID == GrandFinalResetID {
			continue
		}
		assert.GreaterOrEqualf(t, m.Round, lastNonFinal, "match %s presented out of order", m.ID)
		lastNonFinal = m.Round
	}
}

func TestUndoSelection(t *testing.T) {
	state := newTestBracket(t, 2)
	before := state.Snapshot()
	current, _ := state.CurrentMatch()

	next, err := SelectWinner(state, current.Job2.ID)
	require.NoError(t, err)

	undone := UndoSelection(next)
	assert.Equal(t, before, undone.Snapshot())

	restored, ok := undone.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, current.ID, restored.ID)
	assert.Nil(t, restored.Winner)
}

func TestUndoSelectionWithEmptyHistory(t *testing.T) {
	state := newTestBracket(t, 2)
	assert.Same(t, state, UndoSelection(state))
}

func TestUndoSelectionMultipleSteps(t *testing.T) {
	state := newTestBracket(t, 2)

	snapshots := []Snapshot{state.Snapshot()}
	for i := 0; i < firstRoundMatches+3; i++ {
		state, _ = playN(t, state, 1, pickLowerID)
		snapshots = append(snapshots, state.Snapshot())
	}
	require.Equal(t, firstRoundMatches+3, state.HistoryLen())

	for i := len(snapshots) - 2; i >= 0; i-- {
		state = UndoSelection(state)
		require.Equal(t, snapshots[i], state.Snapshot())
	}
	assert.Zero(t, state.HistoryLen())
	assert.Empty(t, state.matches.round(models.BracketLosers, 1))
}

func TestUndoAcrossTournamentCompletion(t *testing.T) {
	state := newTestBracket(t, 8)
	final, _ := playAll(t, state, pickJob1)
	require.True(t, final.IsComplete())

	reopened := UndoSelection(final)
	current, ok := reopened.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, GrandFinalID, current.ID)
	assert.Empty(t, reopened.Winners())
	assert.Empty(t, reopened.Placements())
	assert.Equal(t, TotalEntrants-2, reopened.EliminatedCount())
}

func TestGetBracketProgress(t *testing.T) {
	state := newTestBracket(t, 9)

	progress := GetBracketProgress(state)
	assert.Equal(t, Progress{TotalMatches: BaseTotalMatches, CompletedMatches: 0, RemainingJobs: TotalEntrants}, progress)

	state, _ = playN(t, state, 5, pickJob1)
	progress = GetBracketProgress(state)
	assert.Equal(t, 5, progress.CompletedMatches)
	assert.Equal(t, TotalEntrants, progress.RemainingJobs)
}

func TestOrderedMatches(t *testing.T) {
	state := newTestBracket(t, 12)
	state, _ = playN(t, state, 120, pickRandom(12))

	ordered := OrderedMatches(state)
	require.Len(t, ordered, len(state.Matches()))
	for i := 1; i < len(ordered); i++ {
		assert.False(t, playsBefore(&ordered[i], &ordered[i-1]), "%s listed after %s", ordered[i].ID, ordered[i-1].ID)
	}
}

func TestStandings(t *testing.T) {
	state := newTestBracket(t, 13)
	final, presented := playAll(t, state, pickRandom(13))

	standings := Standings(final)
	require.Len(t, standings, TotalEntrants)

	var wins, played int
	for i, st := range standings {
		wins += st.Wins
		played += st.Played
		if i < topPlacements {
			assert.Equal(t, i+1, st.Placement)
		} else {
			assert.Zero(t, st.Placement)
		}
		assert.Equal(t, st.Losses >= 2, st.Eliminated)
	}
	assert.Equal(t, len(presented), wins)
	assert.Equal(t, 2*len(presented), played)
}

// assertRoundSizes checks the shape of a finished bracket.
func assertRoundSizes(t *testing.T, state *State) {
	t.Helper()

	winnersSizes := []int{64, 32, 16, 8, 4, 2, 1}
	for i, size := range winnersSizes {
		assert.Lenf(t, state.matches.round(models.BracketWinners, i+1), size, "winners round %d", i+1)
	}
	losersSizes := []int{32, 32, 16, 16, 8, 8, 4, 4, 2, 2, 1, 1}
	for i, size := range losersSizes {
		assert.Lenf(t, state.matches.round(models.BracketLosers, i+1), size, "losers round %d", i+1)
	}
}
