package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/reel-extract-go/internal/domain"
)

// fakeResolver implements domain.PageResolver for testing
type fakeResolver struct {
	info  *domain.PageInfo
	err   error
	calls []string
}

func (r *fakeResolver) Resolve(ctx context.Context, url string) (*domain.PageInfo, error) {
	r.calls = append(r.calls, url)
	return r.info, r.err
}

const testPageURL = "https://www.instagram.com/reel/ABC/"

func newVideoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, testPageURL, r.Header.Get("Referer"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestReelFetcher(resolver domain.PageResolver) *ReelFetcher {
	return NewReelFetcher(resolver, NewVideoStore(), &domain.DownloadConfig{
		HTTPTimeout: 5 * time.Second,
		UserAgent:   "test-agent",
	}, zap.NewNop())
}

func TestReelFetcher_Success(t *testing.T) {
	server := newVideoServer(t, http.StatusOK, "mp4-data")
	resolver := &fakeResolver{info: &domain.PageInfo{
		VideoURL:    server.URL + "/v.mp4",
		Title:       "og title",
		Description: "og description",
	}}
	fetcher := newTestReelFetcher(resolver)
	outputDir := filepath.Join(t.TempDir(), "videos")
	metadata := domain.NewMetadata(domain.InputRow{Title: "csv title", Row: 2}, time.Now())

	path, err := fetcher.Fetch(context.Background(), testPageURL, outputDir, "reel1.mp4", metadata)
	require.NoError(t, err)

	assert.Equal(t, []string{testPageURL}, resolver.calls)
	assert.Equal(t, filepath.Join(outputDir, "reel1.mp4"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mp4-data", string(data))

	// metadata is enriched in place
	require.NotNil(t, metadata.ExtractedTitle)
	assert.Equal(t, "og title", *metadata.ExtractedTitle)
	assert.Equal(t, "og description", *metadata.ExtractedDescription)
	assert.Equal(t, testPageURL, *metadata.SourceURL)

	written, err := ReadMetadata(filepath.Join(outputDir, "reel1_metadata.json"))
	require.NoError(t, err)
	assert.Equal(t, "csv title", written.Title)
	require.NotNil(t, written.ExtractedTitle)
	assert.Equal(t, "og title", *written.ExtractedTitle)
}

func TestReelFetcher_MetadataWarningDoesNotFail(t *testing.T) {
	server := newVideoServer(t, http.StatusOK, "mp4-data")
	resolver := &fakeResolver{info: &domain.PageInfo{
		VideoURL: server.URL + "/v.mp4",
		MetaErr:  errors.New("document detached"),
	}}
	fetcher := newTestReelFetcher(resolver)
	outputDir := t.TempDir()
	metadata := domain.NewMetadata(domain.InputRow{Row: 2}, time.Now())

	_, err := fetcher.Fetch(context.Background(), testPageURL, outputDir, "a.mp4", metadata)
	require.NoError(t, err)

	assert.Nil(t, metadata.ExtractedTitle)
	assert.Nil(t, metadata.SourceURL)
	assert.FileExists(t, filepath.Join(outputDir, "a_metadata.json"))
}

func TestReelFetcher_NilMetadataWritesVideoOnly(t *testing.T) {
	server := newVideoServer(t, http.StatusOK, "mp4-data")
	fetcher := newTestReelFetcher(&fakeResolver{info: &domain.PageInfo{VideoURL: server.URL}})
	outputDir := t.TempDir()

	_, err := fetcher.Fetch(context.Background(), testPageURL, outputDir, "a.mp4", nil)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outputDir, "a.mp4"))
	assert.NoFileExists(t, filepath.Join(outputDir, "a_metadata.json"))
}

func TestReelFetcher_VideoNotFound(t *testing.T) {
	resolver := &fakeResolver{err: domain.NewFetchError(domain.StageWaitVideo, testPageURL, domain.ErrVideoNotFound)}
	fetcher := newTestReelFetcher(resolver)
	outputDir := t.TempDir()

	_, err := fetcher.Fetch(context.Background(), testPageURL, outputDir, "a.mp4", nil)

	assert.True(t, errors.Is(err, domain.ErrVideoNotFound))
	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.StageWaitVideo, fetchErr.Stage)
	assert.NoFileExists(t, filepath.Join(outputDir, "a.mp4"))
}

func TestReelFetcher_ResolverPlainErrorIsWrapped(t *testing.T) {
	fetcher := newTestReelFetcher(&fakeResolver{err: errors.New("chrome crashed")})

	_, err := fetcher.Fetch(context.Background(), testPageURL, t.TempDir(), "a.mp4", nil)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.StageNavigate, fetchErr.Stage)
}

func TestReelFetcher_HTTPErrorStatus(t *testing.T) {
	server := newVideoServer(t, http.StatusForbidden, "denied")
	fetcher := newTestReelFetcher(&fakeResolver{info: &domain.PageInfo{VideoURL: server.URL}})
	outputDir := t.TempDir()
	metadata := domain.NewMetadata(domain.InputRow{Row: 2}, time.Now())

	_, err := fetcher.Fetch(context.Background(), testPageURL, outputDir, "a.mp4", metadata)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.StageDownload, fetchErr.Stage)
	assert.Contains(t, err.Error(), "403")
	assert.NoFileExists(t, filepath.Join(outputDir, "a.mp4"))
	assert.NoFileExists(t, filepath.Join(outputDir, "a_metadata.json"))
}

func TestReelFetcher_UnfetchableVideoURL(t *testing.T) {
	fetcher := newTestReelFetcher(&fakeResolver{info: &domain.PageInfo{VideoURL: "blob:https://www.instagram.com/123"}})

	_, err := fetcher.Fetch(context.Background(), testPageURL, t.TempDir(), "a.mp4", nil)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.StageDownload, fetchErr.Stage)
}

func TestReelFetcher_WriteFailure(t *testing.T) {
	server := newVideoServer(t, http.StatusOK, "mp4-data")
	fetcher := newTestReelFetcher(&fakeResolver{info: &domain.PageInfo{VideoURL: server.URL}})

	// a regular file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "videos")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := fetcher.Fetch(context.Background(), testPageURL, blocker, "a.mp4", nil)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.StageWriteVideo, fetchErr.Stage)
}
