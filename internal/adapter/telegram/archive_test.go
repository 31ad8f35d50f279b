package telegram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeArchiver struct {
	stored map[string][]byte
}

func (f *fakeArchiver) Archive(_ context.Context, listingID string, photo io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(photo)
	if err != nil {
		return "", err
	}
	if f.stored == nil {
		f.stored = make(map[string][]byte)
	}
	f.stored[listingID] = data
	return "url", nil
}

func TestArchivePhotoStoresDownloadedBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	archiver := &fakeArchiver{}
	h := NewHandler(Deps{Logger: zap.NewNop(), Archive: archiver})

	h.archivePhoto(context.Background(), "listing-1", server.URL)

	require.Contains(t, archiver.stored, "listing-1")
	assert.Equal(t, []byte("jpeg-bytes"), archiver.stored["listing-1"])
}

func TestArchivePhotoSkipsErrorResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "file not found", http.StatusNotFound)
	}))
	defer server.Close()

	archiver := &fakeArchiver{}
	h := NewHandler(Deps{Logger: zap.NewNop(), Archive: archiver})

	h.archivePhoto(context.Background(), "listing-1", server.URL)

	assert.Empty(t, archiver.stored, "an error body must never be archived as a photo")
}
