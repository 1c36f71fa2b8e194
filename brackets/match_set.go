package brackets

import (
	"github.com/benbjohnson/immutable"

	"github.com/Dosada05/job-bracket/models"
)

// matchSet is the persistent match registry: an ordered list of matches plus an id index.
// Every write returns a new set that shares structure with the old one, so snapshots kept
// for undo stay cheap.
type matchSet struct {
	list  *immutable.List[*models.Match]
	index *immutable.Map[string, int]
}

func newMatchSet() matchSet {
	return matchSet{
		list:  immutable.NewList[*models.Match](),
		index: immutable.NewMap[string, int](nil),
	}
}

func (s matchSet) len() int {
	return s.list.Len()
}

func (s matchSet) at(i int) *models.Match {
	return s.list.Get(i)
}

func (s matchSet) get(id string) (*models.Match, bool) {
	i, ok := s.index.Get(id)
	if !ok {
		return nil, false
	}
	return s.list.Get(i), true
}

func (s matchSet) has(id string) bool {
	_, ok := s.index.Get(id)
	return ok
}

// put stores m, replacing the match with the same id in place or appending it.
func (s matchSet) put(m *models.Match) matchSet {
	if i, ok := s.index.Get(m.ID); ok {
		return matchSet{list: s.list.Set(i, m), index: s.index}
	}
	return matchSet{
		list:  s.list.Append(m),
		index: s.index.Set(m.ID, s.list.Len()),
	}
}

// ensure stores m only when its id is not registered yet.
func (s matchSet) ensure(m *models.Match) matchSet {
	if s.has(m.ID) {
		return s
	}
	return s.put(m)
}

func (s matchSet) remove(id string) matchSet {
	if !s.has(id) {
		return s
	}
	rebuilt := newMatchSet()
	for i := 0; i < s.len(); i++ {
		if m := s.at(i); m.ID != id {
			rebuilt = rebuilt.put(m)
		}
	}
	return rebuilt
}

// round returns the matches of one bracket round in position order.
func (s matchSet) round(side models.BracketSide, round int) []*models.Match {
	var matches []*models.Match
	for pos := 0; ; pos++ {
		m, ok := s.get(matchID(side, round, pos))
		if !ok {
			return matches
		}
		matches = append(matches, m)
	}
}

func (s matchSet) values() []models.Match {
	out := make([]models.Match, 0, s.len())
	for i := 0; i < s.len(); i++ {
		out = append(out, *s.at(i))
	}
	return out
}

func allDecided(matches []*models.Match) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if m.Winner == nil {
			return false
		}
	}
	return true
}

func winnersOf(matches []*models.Match) []*models.Candidate {
	out := make([]*models.Candidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Winner)
	}
	return out
}

func losersOf(matches []*models.Match) []*models.Candidate {
	out := make([]*models.Candidate, 0, len(matches))
	for _, m := range matches {
		if loser := m.Loser(); loser != nil {
			out = append(out, loser)
		}
	}
	return out
}

func sameCandidate(a, b *models.Candidate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
