package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/job-bracket/middleware"
	"github.com/Dosada05/job-bracket/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	exportService     services.ExportService
	sessions          *middleware.SessionManager
}

func NewTournamentHandler(ts services.TournamentService, es services.ExportService, sessions *middleware.SessionManager) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		exportService:     es,
		sessions:          sessions,
	}
}

type startResponse struct {
	Tournament *services.TournamentView `json:"tournament"`
	Token      string                   `json:"token"`
	ExpiresAt  time.Time                `json:"expires_at"`
}

type selectWinnerInput struct {
	CandidateID int `json:"candidate_id"`
}

type exportInput struct {
	Label string `json:"label"`
}

// StartHandler godoc
// @Summary Start a new tournament
// @Tags tournaments
// @Description Shuffles the job catalog into a fresh bracket and returns a session token bound to it. Any live tournament is abandoned.
// @Produce json
// @Success 201 {object} startResponse
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tournaments [post]
func (h *TournamentHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Start(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(view.ID)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	resp := startResponse{Tournament: view, Token: token, ExpiresAt: expiresAt}
	if err := writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler godoc
// @Summary Get the live tournament
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Tournament is no longer active"
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Get(r.Context(), tournamentIDFromURL(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ProgressHandler godoc
// @Summary Get bracket progress
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/progress [get]
func (h *TournamentHandler) ProgressHandler(w http.ResponseWriter, r *http.Request) {
	progress, err := h.tournamentService.Progress(r.Context(), tournamentIDFromURL(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"progress": progress}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MatchesHandler godoc
// @Summary List materialized matches in play order
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches [get]
func (h *TournamentHandler) MatchesHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := h.tournamentService.Matches(r.Context(), tournamentIDFromURL(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler godoc
// @Summary Get every job's record
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/standings [get]
func (h *TournamentHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	standings, err := h.tournamentService.Standings(r.Context(), tournamentIDFromURL(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResultsHandler godoc
// @Summary Get the final top five
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} services.ResultsView
// @Failure 409 {object} map[string]string "Tournament not complete"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/results [get]
func (h *TournamentHandler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	results, err := h.tournamentService.Results(r.Context(), tournamentIDFromURL(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SelectWinnerHandler godoc
// @Summary Pick the winner of the current match
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body selectWinnerInput true "Winning candidate"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]interface{} "Candidate not in the current match"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/selections [post]
func (h *TournamentHandler) SelectWinnerHandler(w http.ResponseWriter, r *http.Request) {
	var input selectWinnerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.CandidateID <= 0 {
		badRequestResponse(w, r, errors.New("candidate_id must be a positive integer"))
		return
	}

	view, err := h.tournamentService.SelectWinner(r.Context(), tournamentIDFromURL(r), input.CandidateID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UndoHandler godoc
// @Summary Undo the last selection
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/undo [post]
func (h *TournamentHandler) UndoHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Undo(r.Context(), tournamentIDFromURL(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AbandonHandler godoc
// @Summary Abandon the live tournament
// @Tags tournaments
// @Param tournamentID path string true "Tournament ID"
// @Success 204
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [delete]
func (h *TournamentHandler) AbandonHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.Abandon(r.Context(), tournamentIDFromURL(r)); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportHandler godoc
// @Summary Publish the results card
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body exportInput false "Optional label printed on the card"
// @Success 201 {object} services.ExportResult
// @Failure 409 {object} map[string]string "Tournament not complete"
// @Failure 503 {object} map[string]string "Export not configured"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/export [post]
func (h *TournamentHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	var input exportInput
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	result, err := h.exportService.Export(r.Context(), tournamentIDFromURL(r), input.Label)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
