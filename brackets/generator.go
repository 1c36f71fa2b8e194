package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/job-bracket/models"
)

const (
	TotalEntrants    = 128
	WinnersRounds    = 7  // 128 -> 64 -> 32 -> 16 -> 8 -> 4 -> 2 -> 1
	LosersRounds     = 12 // two losers rounds per winners round after the first
	BaseTotalMatches = 254

	GrandFinalID      = "grand-final"
	GrandFinalResetID = "grand-final-reset"

	firstRoundMatches = TotalEntrants / 2
	topPlacements     = 5
)

var (
	ErrInvalidEntrantCount = errors.New("invalid entrant count")
	ErrNotParticipant      = errors.New("candidate is not a participant of the current match")
	ErrInvalidSnapshot     = errors.New("invalid bracket snapshot")
)

// InvalidEntrantCountError is returned by InitializeBracket when the candidate list does not
// hold exactly TotalEntrants entries.
type InvalidEntrantCountError struct {
	Expected int
	Actual   int
}

func (e *InvalidEntrantCountError) Error() string {
	return fmt.Sprintf("expected exactly %d candidates, but received %d", e.Expected, e.Actual)
}

func (e *InvalidEntrantCountError) Is(target error) bool {
	return target == ErrInvalidEntrantCount
}

type options struct {
	rand RandSource
}

// Option configures InitializeBracket.
type Option func(*options)

// WithRandSource makes the initial shuffle draw from src. Pass a seeded source for
// reproducible brackets.
func WithRandSource(src RandSource) Option {
	return func(o *options) {
		o.rand = src
	}
}

// InitializeBracket shuffles exactly TotalEntrants candidates and seeds the first winners
// round. Every other match is materialized lazily by SelectWinner.
func InitializeBracket(candidates []models.Candidate, opts ...Option) (*State, error) {
	if len(candidates) != TotalEntrants {
		return nil, &InvalidEntrantCountError{Expected: TotalEntrants, Actual: len(candidates)}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	shuffled := Shuffle(candidates, o.rand)

	set := newMatchSet()
	for i := 0; i < firstRoundMatches; i++ {
		job1, job2 := shuffled[i*2], shuffled[i*2+1]
		set = set.put(&models.Match{
			ID:       matchID(models.BracketWinners, 1, i),
			Job1:     &job1,
			Job2:     &job2,
			Round:    1,
			Bracket:  models.BracketWinners,
			Position: i,
		})
	}

	lossCounts := emptyLossCounts()
	for _, c := range shuffled {
		lossCounts = lossCounts.Set(c.ID, 0)
	}

	first, _ := set.get(matchID(models.BracketWinners, 1, 0))

	return &State{
		matches:          set,
		current:          first,
		completed:        emptyCompleted(),
		lossCounts:       lossCounts,
		eliminationOrder: emptyCandidateList(),
		history:          emptyHistory(),
		placements:       map[int]int{},
	}, nil
}

func matchID(side models.BracketSide, round, position int) string {
	prefix := "w"
	if side == models.BracketLosers {
		prefix = "l"
	}
	return fmt.Sprintf("%s-r%d-%d", prefix, round, position)
}
