package models

// BracketSide identifies which sub-bracket a match belongs to.
type BracketSide string

const (
	BracketWinners BracketSide = "winners"
	BracketLosers  BracketSide = "losers"
)

// Match is a single head-to-head pairing. Values are never mutated once stored in a
// bracket state; recording a winner produces a new Match.
type Match struct {
	ID       string      `json:"id"`
	Job1     *Candidate  `json:"job1"`
	Job2     *Candidate  `json:"job2"`
	Winner   *Candidate  `json:"winner"`
	Round    int         `json:"round"`
	Bracket  BracketSide `json:"bracket"`
	Position int         `json:"position"`
}

// IsReady reports whether both slots are filled.
func (m Match) IsReady() bool {
	return m.Job1 != nil && m.Job2 != nil
}

// IsDecided reports whether a winner has been recorded.
func (m Match) IsDecided() bool {
	return m.Winner != nil
}

// IsOpen reports whether the match can be presented: seeded and not yet decided.
func (m Match) IsOpen() bool {
	return m.IsReady() && !m.IsDecided()
}

// HasParticipant reports whether candidateID sits in either slot.
func (m Match) HasParticipant(candidateID int) bool {
	return (m.Job1 != nil && m.Job1.ID == candidateID) || (m.Job2 != nil && m.Job2.ID == candidateID)
}

// Participant returns the slot candidate with the given id.
func (m Match) Participant(candidateID int) (*Candidate, bool) {
	switch {
	case m.Job1 != nil && m.Job1.ID == candidateID:
		return m.Job1, true
	case m.Job2 != nil && m.Job2.ID == candidateID:
		return m.Job2, true
	}
	return nil, false
}

// Loser returns the non-winning participant of a decided match, or nil.
func (m Match) Loser() *Candidate {
	if m.Winner == nil || m.Job1 == nil || m.Job2 == nil {
		return nil
	}
	if m.Job1.ID == m.Winner.ID {
		return m.Job2
	}
	return m.Job1
}
