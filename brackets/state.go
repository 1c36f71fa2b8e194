package brackets

import (
	"fmt"
	"sort"

	"github.com/benbjohnson/immutable"

	"github.com/Dosada05/job-bracket/models"
)

// State is one immutable snapshot of a double-elimination tournament. It is only ever
// replaced, never mutated: SelectWinner and UndoSelection return new values.
type State struct {
	matches          matchSet
	current          *models.Match
	completed        *immutable.Map[int, struct{}]
	lossCounts       *immutable.Map[int, int]
	eliminationOrder *immutable.List[models.Candidate]
	history          *immutable.List[*State]
	winners          []models.Candidate
	placements       map[int]int
}

func emptyLossCounts() *immutable.Map[int, int]     { return immutable.NewMap[int, int](nil) }
func emptyCompleted() *immutable.Map[int, struct{}] { return immutable.NewMap[int, struct{}](nil) }
func emptyCandidateList() *immutable.List[models.Candidate] {
	return immutable.NewList[models.Candidate]()
}
func emptyHistory() *immutable.List[*State] { return immutable.NewList[*State]() }

// withoutHistory is the copy pushed onto the undo stack.
func (s *State) withoutHistory() *State {
	cp := *s
	cp.history = emptyHistory()
	return &cp
}

// Matches returns every materialized match in creation order.
func (s *State) Matches() []models.Match {
	return s.matches.values()
}

// Match looks a match up by id.
func (s *State) Match(id string) (models.Match, bool) {
	m, ok := s.matches.get(id)
	if !ok {
		return models.Match{}, false
	}
	return *m, true
}

// CurrentMatch returns the match awaiting a decision. ok is false once the tournament is
// complete.
func (s *State) CurrentMatch() (models.Match, bool) {
	if s.current == nil {
		return models.Match{}, false
	}
	return *s.current, true
}

func (s *State) IsComplete() bool {
	return s.current == nil
}

// LossCount returns the recorded losses of a candidate (0 if it never lost).
func (s *State) LossCount(candidateID int) int {
	n, _ := s.lossCounts.Get(candidateID)
	return n
}

func (s *State) LossCounts() map[int]int {
	out := make(map[int]int, s.lossCounts.Len())
	itr := s.lossCounts.Iterator()
	for !itr.Done() {
		id, n, _ := itr.Next()
		out[id] = n
	}
	return out
}

func (s *State) IsEliminated(candidateID int) bool {
	_, ok := s.completed.Get(candidateID)
	return ok
}

// CompletedJobs returns the ids of eliminated candidates in ascending order.
func (s *State) CompletedJobs() []int {
	out := make([]int, 0, s.completed.Len())
	itr := s.completed.Iterator()
	for !itr.Done() {
		id, _, _ := itr.Next()
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (s *State) EliminatedCount() int {
	return s.completed.Len()
}

// EliminationOrder lists eliminated candidates, oldest first.
func (s *State) EliminationOrder() []models.Candidate {
	out := make([]models.Candidate, 0, s.eliminationOrder.Len())
	for i := 0; i < s.eliminationOrder.Len(); i++ {
		out = append(out, s.eliminationOrder.Get(i))
	}
	return out
}

// HistoryLen is the number of decisions that can be undone.
func (s *State) HistoryLen() int {
	return s.history.Len()
}

// Winners is the final top five, empty until the tournament completes.
func (s *State) Winners() []models.Candidate {
	out := make([]models.Candidate, len(s.winners))
	copy(out, s.winners)
	return out
}

// Placements maps candidate id to final rank (1-5).
func (s *State) Placements() map[int]int {
	out := make(map[int]int, len(s.placements))
	for id, place := range s.placements {
		out[id] = place
	}
	return out
}

func (s *State) Placement(candidateID int) (int, bool) {
	place, ok := s.placements[candidateID]
	return place, ok
}

// Snapshot is the plain-value form of a State, without the undo stack.
type Snapshot struct {
	Matches          []models.Match     `json:"matches"`
	CurrentMatchID   string             `json:"current_match_id,omitempty"`
	CompletedJobs    []int              `json:"completed_jobs"`
	LossCounts       map[int]int        `json:"loss_counts"`
	EliminationOrder []models.Candidate `json:"elimination_order"`
	HistoryDepth     int                `json:"history_depth"`
	Winners          []models.Candidate `json:"winners"`
	Placements       map[int]int        `json:"placements"`
}

func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Matches:          s.Matches(),
		CompletedJobs:    s.CompletedJobs(),
		LossCounts:       s.LossCounts(),
		EliminationOrder: s.EliminationOrder(),
		HistoryDepth:     s.HistoryLen(),
		Winners:          s.Winners(),
		Placements:       s.Placements(),
	}
	if s.current != nil {
		snap.CurrentMatchID = s.current.ID
	}
	return snap
}

// FromSnapshot rebuilds a State from plain values. The result has an empty undo stack;
// HistoryDepth is ignored.
func FromSnapshot(snap Snapshot) (*State, error) {
	set := newMatchSet()
	for i := range snap.Matches {
		m := snap.Matches[i]
		if m.ID == "" {
			return nil, fmt.Errorf("%w: match at index %d has no id", ErrInvalidSnapshot, i)
		}
		if set.has(m.ID) {
			return nil, fmt.Errorf("%w: duplicate match id %q", ErrInvalidSnapshot, m.ID)
		}
		if m.Winner != nil && !m.HasParticipant(m.Winner.ID) {
			return nil, fmt.Errorf("%w: winner %d of match %q is not a participant", ErrInvalidSnapshot, m.Winner.ID, m.ID)
		}
		set = set.put(&m)
	}

	state := &State{
		matches:          set,
		completed:        emptyCompleted(),
		lossCounts:       emptyLossCounts(),
		eliminationOrder: emptyCandidateList(),
		history:          emptyHistory(),
		winners:          append([]models.Candidate(nil), snap.Winners...),
		placements:       map[int]int{},
	}

	if snap.CurrentMatchID != "" {
		current, ok := set.get(snap.CurrentMatchID)
		if !ok {
			return nil, fmt.Errorf("%w: current match %q does not exist", ErrInvalidSnapshot, snap.CurrentMatchID)
		}
		if !current.IsOpen() {
			return nil, fmt.Errorf("%w: current match %q is not open", ErrInvalidSnapshot, snap.CurrentMatchID)
		}
		state.current = current
	}

	for _, id := range snap.CompletedJobs {
		state.completed = state.completed.Set(id, struct{}{})
	}
	for id, n := range snap.LossCounts {
		state.lossCounts = state.lossCounts.Set(id, n)
	}
	for _, c := range snap.EliminationOrder {
		state.eliminationOrder = state.eliminationOrder.Append(c)
	}
	for id, place := range snap.Placements {
		state.placements[id] = place
	}
	return state, nil
}
