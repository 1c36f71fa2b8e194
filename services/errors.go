package services

import "errors"

// Errors shared by the services and mapped to HTTP responses by the handlers.
var (
	ErrValidationFailed = errors.New("validation failed")

	// Tournament lifecycle
	ErrNoActiveTournament    = errors.New("no tournament is in progress")
	ErrStaleTournament       = errors.New("tournament is no longer active")
	ErrTournamentNotComplete = errors.New("tournament is not complete yet")
	ErrCandidateNotInMatch   = errors.New("candidate is not part of the current match")

	// Collaborators
	ErrCatalogInvalid = errors.New("candidate catalog is invalid")
	ErrExportDisabled = errors.New("results export is not configured")
	ErrExportFailed   = errors.New("failed to export results")
)
