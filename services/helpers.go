package services

import (
	"github.com/Dosada05/job-bracket/brackets"
	"github.com/Dosada05/job-bracket/models"
)

func currentMatchPtr(state *brackets.State) *models.Match {
	m, ok := state.CurrentMatch()
	if !ok {
		return nil
	}
	return &m
}

func rankCandidates(winners []models.Candidate) []RankedCandidate {
	ranked := make([]RankedCandidate, len(winners))
	for i, c := range winners {
		ranked[i] = RankedCandidate{Place: i + 1, Candidate: c}
	}
	return ranked
}
