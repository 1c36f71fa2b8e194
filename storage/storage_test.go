package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "exports/a.png", "https://cdn.example.com/exports/a.png"},
		{"https://cdn.example.com/", "/exports/a.png", "https://cdn.example.com/exports/a.png"},
		{"https://cdn.example.com/media", "exports/a.png", "https://cdn.example.com/media/exports/a.png"},
		{"https://cdn.example.com/media/", "a.json", "https://cdn.example.com/media/a.json"},
		{"", "a.png", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, publicURL(tt.base, tt.key), "base=%q key=%q", tt.base, tt.key)
	}
}

func TestLocalUploader(t *testing.T) {
	ctx := context.Background()
	u, err := NewLocalUploader(t.TempDir(), "http://localhost:8080/exports")
	require.NoError(t, err)

	res, err := u.Upload(ctx, "run/card.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "run/card.png", res.Key)
	assert.Equal(t, "http://localhost:8080/exports/run/card.png", res.Location)

	rc, err := u.Fetch(ctx, "run/card.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, u.Delete(ctx, "run/card.png"))
	require.NoError(t, u.Delete(ctx, "run/card.png"), "deleting a missing key is not an error")

	_, err = u.Fetch(ctx, "run/card.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalUploaderRejectsEscapingKeys(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir(), "")
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), "../outside.txt", "text/plain", strings.NewReader("x"))
	assert.Error(t, err)
	_, err = u.Fetch(context.Background(), "/etc/passwd")
	assert.Error(t, err)
}

// fakeBucket is a minimal path-style S3 endpoint.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/test-bucket/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		b.objects[key] = body
		w.Header().Set("ETag", `"etag-123"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := b.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	case http.MethodDelete:
		delete(b.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestR2(t *testing.T) (*CloudflareR2Client, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	client, err := NewCloudflareR2Uploader(CloudflareR2UploaderConfig{
		AccountID:       "account",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "test-bucket",
		PublicBaseURL:   "https://pub.example.com",
		Endpoint:        srv.URL,
	})
	require.NoError(t, err)
	return client, bucket
}

func TestCloudflareR2ClientUploadFetchDelete(t *testing.T) {
	ctx := context.Background()
	client, bucket := newTestR2(t)

	res, err := client.Upload(ctx, "catalog/jobs.json", "application/json", bytes.NewReader([]byte(`[]`)))
	require.NoError(t, err)
	assert.Equal(t, "etag-123", res.ETag)
	assert.Equal(t, "https://pub.example.com/catalog/jobs.json", res.Location)

	bucket.mu.Lock()
	_, stored := bucket.objects["catalog/jobs.json"]
	bucket.objects["catalog/jobs.json"] = []byte(`[{"id":1}]`)
	bucket.mu.Unlock()
	require.True(t, stored)

	rc, err := client.Fetch(ctx, "catalog/jobs.json")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.JSONEq(t, `[{"id":1}]`, string(data))

	require.NoError(t, client.Delete(ctx, "catalog/jobs.json"))
	_, err = client.Fetch(ctx, "catalog/jobs.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNewCloudflareR2UploaderRequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(CloudflareR2UploaderConfig{AccountID: "a"})
	assert.Error(t, err)
}
