package services

import (
	"time"

	"github.com/Dosada05/job-bracket/brackets"
	"github.com/Dosada05/job-bracket/models"
)

// TournamentView is what clients see of the live tournament after every action.
type TournamentView struct {
	ID           string             `json:"id"`
	StartedAt    time.Time          `json:"started_at"`
	CurrentMatch *models.Match      `json:"current_match,omitempty"`
	Progress     brackets.Progress  `json:"progress"`
	Complete     bool               `json:"complete"`
	CanUndo      bool               `json:"can_undo"`
	Winners      []models.Candidate `json:"winners,omitempty"`
}

type RankedCandidate struct {
	Place int `json:"place"`
	models.Candidate
}

type ResultsView struct {
	TournamentID     string             `json:"tournament_id"`
	Ranking          []RankedCandidate  `json:"ranking"`
	EliminationOrder []models.Candidate `json:"elimination_order"`
	CompletedAt      time.Time          `json:"completed_at"`
}

// MatchDecidedPayload is broadcast after every recorded selection.
type MatchDecidedPayload struct {
	Match     models.Match      `json:"match"`
	NextMatch *models.Match     `json:"next_match,omitempty"`
	Progress  brackets.Progress `json:"progress"`
}

type TournamentCompletedPayload struct {
	Winners []models.Candidate `json:"winners"`
}
