// Package catalog loads the list of jobs that enter a tournament.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Dosada05/job-bracket/models"
	"github.com/Dosada05/job-bracket/storage"
)

var (
	ErrDuplicateID      = errors.New("duplicate candidate id")
	ErrInvalidCandidate = errors.New("invalid candidate")
)

//go:embed jobs.json
var embeddedJobs []byte

// Loader supplies the candidates for a new tournament.
type Loader interface {
	Load(ctx context.Context) ([]models.Candidate, error)
}

type embeddedLoader struct{}

// Embedded returns the built-in 128-job catalog.
func Embedded() Loader {
	return embeddedLoader{}
}

func (embeddedLoader) Load(ctx context.Context) ([]models.Candidate, error) {
	return Decode(bytes.NewReader(embeddedJobs))
}

type fileLoader struct {
	path string
}

func NewFileLoader(path string) Loader {
	return &fileLoader{path: path}
}

func (l *fileLoader) Load(ctx context.Context) ([]models.Candidate, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", l.path, err)
	}
	defer f.Close()
	return Decode(f)
}

type objectLoader struct {
	fetcher storage.ObjectFetcher
	key     string
}

// NewObjectLoader reads the catalog from object storage.
func NewObjectLoader(fetcher storage.ObjectFetcher, key string) Loader {
	return &objectLoader{fetcher: fetcher, key: key}
}

func (l *objectLoader) Load(ctx context.Context) ([]models.Candidate, error) {
	rc, err := l.fetcher.Fetch(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog object %s: %w", l.key, err)
	}
	defer rc.Close()
	return Decode(rc)
}

// Decode parses a JSON array of candidates and validates it.
func Decode(r io.Reader) ([]models.Candidate, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var candidates []models.Candidate
	if err := dec.Decode(&candidates); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := Validate(candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// Validate checks that ids are positive and unique and that every candidate has a title.
// The entrant count is checked by the bracket engine.
func Validate(candidates []models.Candidate) error {
	seen := make(map[int]struct{}, len(candidates))
	for i, c := range candidates {
		if c.ID <= 0 {
			return fmt.Errorf("%w: entry %d has non-positive id %d", ErrInvalidCandidate, i, c.ID)
		}
		if strings.TrimSpace(c.Title) == "" {
			return fmt.Errorf("%w: candidate %d has no title", ErrInvalidCandidate, c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
