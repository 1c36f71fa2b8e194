package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Dosada05/job-bracket/brackets"
	"github.com/Dosada05/job-bracket/catalog"
	"github.com/Dosada05/job-bracket/metrics"
	"github.com/Dosada05/job-bracket/models"
)

// Broadcaster pushes live updates to the clients watching a tournament.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message any)
}

type TournamentService interface {
	Start(ctx context.Context) (*TournamentView, error)
	Get(ctx context.Context, tournamentID string) (*TournamentView, error)
	Progress(ctx context.Context, tournamentID string) (*brackets.Progress, error)
	SelectWinner(ctx context.Context, tournamentID string, candidateID int) (*TournamentView, error)
	Undo(ctx context.Context, tournamentID string) (*TournamentView, error)
	Matches(ctx context.Context, tournamentID string) ([]models.Match, error)
	Standings(ctx context.Context, tournamentID string) ([]models.Standing, error)
	Results(ctx context.Context, tournamentID string) (*ResultsView, error)
	Winners(ctx context.Context, tournamentID string) ([]models.Candidate, error)
	Abandon(ctx context.Context, tournamentID string) error
}

type TournamentServiceConfig struct {
	Catalog     catalog.Loader
	Broadcaster Broadcaster
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	// Seed makes every new bracket shuffle deterministically.
	Seed *int64
}

type liveTournament struct {
	id          string
	startedAt   time.Time
	completedAt time.Time
	state       *brackets.State
}

type tournamentService struct {
	catalog     catalog.Loader
	broadcaster Broadcaster
	metrics     *metrics.Metrics
	logger      *slog.Logger
	seed        *int64
	now         func() time.Time

	mu   sync.Mutex
	live *liveTournament
}

func NewTournamentService(cfg TournamentServiceConfig) TournamentService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	return &tournamentService{
		catalog:     cfg.Catalog,
		broadcaster: cfg.Broadcaster,
		metrics:     m,
		logger:      logger.With(slog.String("service", "tournament")),
		seed:        cfg.Seed,
		now:         time.Now,
	}
}

// Start replaces any live tournament with a freshly shuffled one.
func (s *tournamentService) Start(ctx context.Context) (*TournamentView, error) {
	candidates, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogInvalid, err)
	}
	if err := catalog.Validate(candidates); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogInvalid, err)
	}

	var opts []brackets.Option
	if s.seed != nil {
		opts = append(opts, brackets.WithRandSource(brackets.NewSeededRand(*s.seed)))
	}
	state, err := brackets.InitializeBracket(candidates, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogInvalid, err)
	}

	live := &liveTournament{
		id:        uuid.NewString(),
		startedAt: s.now().UTC(),
		state:     state,
	}

	s.mu.Lock()
	previous := s.live
	s.live = live
	view := s.viewLocked()
	s.mu.Unlock()

	if previous != nil && !previous.state.IsComplete() {
		s.metrics.TournamentsAbandoned.Inc()
		s.broadcast(previous.id, brackets.MessageTournamentAbandoned, nil)
	}
	s.metrics.TournamentsStarted.Inc()
	s.logger.InfoContext(ctx, "tournament started",
		slog.String("tournament_id", live.id),
		slog.Int("candidates", len(candidates)))
	s.broadcast(live.id, brackets.MessageTournamentStarted, view)

	return view, nil
}

// liveLocked returns the live tournament if it is the one the caller refers to.
func (s *tournamentService) liveLocked(tournamentID string) (*liveTournament, error) {
	if s.live == nil {
		return nil, ErrNoActiveTournament
	}
	if s.live.id != tournamentID {
		return nil, fmt.Errorf("%w: %s", ErrStaleTournament, tournamentID)
	}
	return s.live, nil
}

func (s *tournamentService) viewLocked() *TournamentView {
	state := s.live.state
	view := &TournamentView{
		ID:           s.live.id,
		StartedAt:    s.live.startedAt,
		CurrentMatch: currentMatchPtr(state),
		Progress:     brackets.GetBracketProgress(state),
		Complete:     state.IsComplete(),
		CanUndo:      state.HistoryLen() > 0,
	}
	if view.Complete {
		view.Winners = state.Winners()
	}
	return view
}

func (s *tournamentService) Get(ctx context.Context, tournamentID string) (*TournamentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.liveLocked(tournamentID); err != nil {
		return nil, err
	}
	return s.viewLocked(), nil
}

func (s *tournamentService) Progress(ctx context.Context, tournamentID string) (*brackets.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.liveLocked(tournamentID)
	if err != nil {
		return nil, err
	}
	progress := brackets.GetBracketProgress(live.state)
	return &progress, nil
}

func (s *tournamentService) SelectWinner(ctx context.Context, tournamentID string, candidateID int) (*TournamentView, error) {
	s.mu.Lock()
	live, err := s.liveLocked(tournamentID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	decided, hadMatch := live.state.CurrentMatch()
	next, err := brackets.SelectWinner(live.state, candidateID)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, brackets.ErrNotParticipant) {
			return nil, fmt.Errorf("%w: %w", ErrCandidateNotInMatch, err)
		}
		return nil, err
	}
	if !hadMatch {
		view := s.viewLocked()
		s.mu.Unlock()
		return view, nil
	}

	live.state = next
	completed := next.IsComplete()
	if completed {
		live.completedAt = s.now().UTC()
	}
	view := s.viewLocked()
	decided, _ = next.Match(decided.ID)
	s.mu.Unlock()

	s.metrics.MatchesDecided.Inc()
	s.broadcast(tournamentID, brackets.MessageMatchDecided, MatchDecidedPayload{
		Match:     decided,
		NextMatch: view.CurrentMatch,
		Progress:  view.Progress,
	})

	if completed {
		s.metrics.TournamentsCompleted.Inc()
		s.logger.InfoContext(ctx, "tournament completed",
			slog.String("tournament_id", tournamentID),
			slog.String("champion", view.Winners[0].Title))
		s.broadcast(tournamentID, brackets.MessageTournamentCompleted, TournamentCompletedPayload{Winners: view.Winners})
	}
	return view, nil
}

func (s *tournamentService) Undo(ctx context.Context, tournamentID string) (*TournamentView, error) {
	s.mu.Lock()
	live, err := s.liveLocked(tournamentID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	undone := live.state.HistoryLen() > 0
	live.state = brackets.UndoSelection(live.state)
	if undone {
		live.completedAt = time.Time{}
	}
	view := s.viewLocked()
	s.mu.Unlock()

	if undone {
		s.metrics.SelectionsUndone.Inc()
		s.broadcast(tournamentID, brackets.MessageSelectionUndone, view)
	}
	return view, nil
}

func (s *tournamentService) Matches(ctx context.Context, tournamentID string) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.liveLocked(tournamentID)
	if err != nil {
		return nil, err
	}
	return brackets.OrderedMatches(live.state), nil
}

func (s *tournamentService) Standings(ctx context.Context, tournamentID string) ([]models.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.liveLocked(tournamentID)
	if err != nil {
		return nil, err
	}
	return brackets.Standings(live.state), nil
}

func (s *tournamentService) Results(ctx context.Context, tournamentID string) (*ResultsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.liveLocked(tournamentID)
	if err != nil {
		return nil, err
	}
	if !live.state.IsComplete() {
		return nil, ErrTournamentNotComplete
	}
	return &ResultsView{
		TournamentID:     live.id,
		Ranking:          rankCandidates(live.state.Winners()),
		EliminationOrder: live.state.EliminationOrder(),
		CompletedAt:      live.completedAt,
	}, nil
}

func (s *tournamentService) Winners(ctx context.Context, tournamentID string) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.liveLocked(tournamentID)
	if err != nil {
		return nil, err
	}
	if !live.state.IsComplete() {
		return nil, ErrTournamentNotComplete
	}
	return live.state.Winners(), nil
}

// Abandon drops the live tournament so a new one can be started.
func (s *tournamentService) Abandon(ctx context.Context, tournamentID string) error {
	s.mu.Lock()
	live, err := s.liveLocked(tournamentID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.live = nil
	s.mu.Unlock()

	if !live.state.IsComplete() {
		s.metrics.TournamentsAbandoned.Inc()
	}
	s.logger.InfoContext(ctx, "tournament abandoned", slog.String("tournament_id", tournamentID))
	s.broadcast(tournamentID, brackets.MessageTournamentAbandoned, nil)
	return nil
}

func (s *tournamentService) broadcast(tournamentID, messageType string, payload any) {
	if s.broadcaster == nil {
		return
	}
	room := brackets.RoomID(tournamentID)
	s.broadcaster.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    messageType,
		Payload: payload,
		RoomID:  room,
	})
}
