package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/job-bracket/export"
	"github.com/Dosada05/job-bracket/metrics"
	"github.com/Dosada05/job-bracket/models"
	"github.com/Dosada05/job-bracket/storage"
)

const maxLabelLength = 80

type ExportResult struct {
	TournamentID string    `json:"tournament_id"`
	Label        string    `json:"label,omitempty"`
	ImageURL     string    `json:"image_url"`
	ManifestURL  string    `json:"manifest_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// exportManifest is the JSON document stored next to the results card.
type exportManifest struct {
	TournamentID string            `json:"tournament_id"`
	Label        string            `json:"label,omitempty"`
	Ranking      []RankedCandidate `json:"ranking"`
	ImageKey     string            `json:"image_key"`
	CreatedAt    time.Time         `json:"created_at"`
}

type ExportService interface {
	Export(ctx context.Context, tournamentID string, label string) (*ExportResult, error)
}

type exportService struct {
	tournaments TournamentService
	uploader    storage.FileUploader
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
}

// NewExportService returns a service that publishes results cards through uploader. A nil
// uploader disables exports.
func NewExportService(tournaments TournamentService, uploader storage.FileUploader, m *metrics.Metrics, logger *slog.Logger) ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	return &exportService{
		tournaments: tournaments,
		uploader:    uploader,
		metrics:     m,
		logger:      logger.With(slog.String("service", "export")),
		now:         time.Now,
	}
}

func validateLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if utf8.RuneCountInString(label) > maxLabelLength {
		return "", fmt.Errorf("%w: label must be at most %d characters", ErrValidationFailed, maxLabelLength)
	}
	return label, nil
}

func (s *exportService) Export(ctx context.Context, tournamentID string, label string) (*ExportResult, error) {
	if s.uploader == nil {
		return nil, ErrExportDisabled
	}
	label, err := validateLabel(label)
	if err != nil {
		return nil, err
	}

	winners, err := s.tournaments.Winners(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	result, err := s.publish(ctx, tournamentID, label, winners)
	if err != nil {
		s.metrics.Exports.WithLabelValues("error").Inc()
		s.logger.ErrorContext(ctx, "results export failed",
			slog.String("tournament_id", tournamentID),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	s.metrics.Exports.WithLabelValues("ok").Inc()
	s.logger.InfoContext(ctx, "results exported",
		slog.String("tournament_id", tournamentID),
		slog.String("image_url", result.ImageURL))
	return result, nil
}

// publish renders the card and manifest and uploads both concurrently.
func (s *exportService) publish(ctx context.Context, tournamentID, label string, winners []models.Candidate) (*ExportResult, error) {
	createdAt := s.now().UTC()
	prefix := fmt.Sprintf("exports/%s/%s", tournamentID, createdAt.Format("20060102T150405Z"))
	imageKey := prefix + "-results.png"
	manifestKey := prefix + "-results.json"

	var card bytes.Buffer
	if err := export.RenderPNG(&card, export.Card{Label: label, Winners: winners, GeneratedAt: createdAt}); err != nil {
		return nil, fmt.Errorf("failed to render results card: %w", err)
	}

	manifest, err := json.MarshalIndent(exportManifest{
		TournamentID: tournamentID,
		Label:        label,
		Ranking:      rankCandidates(winners),
		ImageKey:     imageKey,
		CreatedAt:    createdAt,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export manifest: %w", err)
	}

	result := &ExportResult{TournamentID: tournamentID, Label: label, CreatedAt: createdAt}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.uploader.Upload(gCtx, imageKey, "image/png", bytes.NewReader(card.Bytes()))
		if err != nil {
			return err
		}
		result.ImageURL = res.Location
		return nil
	})
	g.Go(func() error {
		res, err := s.uploader.Upload(gCtx, manifestKey, "application/json", bytes.NewReader(manifest))
		if err != nil {
			return err
		}
		result.ManifestURL = res.Location
		return nil
	})
	if err := g.Wait(); err != nil {
		s.cleanup(ctx, imageKey, manifestKey)
		return nil, err
	}
	return result, nil
}

// cleanup removes whatever part of a failed export made it to storage.
func (s *exportService) cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.uploader.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to remove partial export", slog.String("key", key), slog.Any("error", err))
		}
	}
}
