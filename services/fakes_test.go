package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/job-bracket/brackets"
	"github.com/Dosada05/job-bracket/catalog"
	"github.com/Dosada05/job-bracket/metrics"
	"github.com/Dosada05/job-bracket/models"
	"github.com/Dosada05/job-bracket/storage"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordedMessage struct {
	room string
	msg  brackets.WebSocketMessage
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []recordedMessage
}

func (b *fakeBroadcaster) BroadcastToRoom(roomID string, message any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, recordedMessage{room: roomID, msg: message.(brackets.WebSocketMessage)})
}

func (b *fakeBroadcaster) types(room string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, m := range b.messages {
		if m.room == room {
			out = append(out, m.msg.Type)
		}
	}
	return out
}

type staticLoader []models.Candidate

func (l staticLoader) Load(ctx context.Context) ([]models.Candidate, error) {
	return l, nil
}

type memoryUploader struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failSuffix string
	deleted    []string
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: map[string][]byte{}}
}

func (u *memoryUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.failSuffix != "" && strings.HasSuffix(key, u.failSuffix) {
		return nil, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://files.example.com/" + key
}

func (u *memoryUploader) object(suffix string) ([]byte, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for key, data := range u.objects {
		if strings.HasSuffix(key, suffix) {
			return bytes.Clone(data), true
		}
	}
	return nil, false
}

type testEnv struct {
	service     TournamentService
	broadcaster *fakeBroadcaster
	metrics     *metrics.Metrics
}

func newTestEnv(t *testing.T, seed int64) *testEnv {
	t.Helper()
	b := &fakeBroadcaster{}
	m := metrics.New(prometheus.NewRegistry())
	return &testEnv{
		service: NewTournamentService(TournamentServiceConfig{
			Catalog:     catalog.Embedded(),
			Broadcaster: b,
			Metrics:     m,
			Logger:      discardLogger,
			Seed:        &seed,
		}),
		broadcaster: b,
		metrics:     m,
	}
}

// playToEnd always picks the first slot and returns the final view.
func playToEnd(t *testing.T, svc TournamentService, view *TournamentView) *TournamentView {
	t.Helper()
	ctx := context.Background()
	for view.CurrentMatch != nil {
		next, err := svc.SelectWinner(ctx, view.ID, view.CurrentMatch.Job1.ID)
		require.NoError(t, err)
		view = next
	}
	return view
}
