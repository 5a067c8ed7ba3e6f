package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/yourusername/reel-extract-go/internal/domain"
)

// ReelFetcher implements domain.ReelFetcher: resolve the page, download the
// video over plain HTTP, then write video and metadata to disk.
type ReelFetcher struct {
	resolver  domain.PageResolver
	store     *VideoStore
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewReelFetcher creates a new reel fetcher
func NewReelFetcher(
	resolver domain.PageResolver,
	store *VideoStore,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *ReelFetcher {
	return &ReelFetcher{
		resolver:  resolver,
		store:     store,
		client:    &http.Client{Timeout: config.HTTPTimeout},
		userAgent: config.UserAgent,
		logger:    logger,
	}
}

// Fetch downloads the reel at url into outputDir/filename
func (f *ReelFetcher) Fetch(ctx context.Context, url, outputDir, filename string, metadata *domain.Metadata) (string, error) {
	info, err := f.resolver.Resolve(ctx, url)
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			return "", err
		}
		return "", domain.NewFetchError(domain.StageNavigate, url, err)
	}

	f.logger.Info("Found video URL", zap.String("video_url", info.VideoURL))

	if info.MetaErr != nil {
		f.logger.Warn("Could not extract metadata",
			zap.String("url", url),
			zap.Error(info.MetaErr))
	} else if metadata != nil {
		metadata.SetExtracted(info.Title, info.Description, url)
	}

	videoPath, err := f.download(ctx, url, info.VideoURL, outputDir, filename)
	if err != nil {
		return "", err
	}
	f.logger.Info("Downloaded", zap.String("filename", filename), zap.String("path", videoPath))

	if metadata != nil {
		metadataPath, err := f.store.WriteMetadata(outputDir, filename, metadata)
		if err != nil {
			return "", domain.NewFetchError(domain.StageWriteMetadata, url, err)
		}
		f.logger.Info("Saved metadata", zap.String("path", metadataPath))
	}

	return videoPath, nil
}

// download streams the video resource into the store
func (f *ReelFetcher) download(ctx context.Context, pageURL, videoURL, outputDir, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, http.NoBody)
	if err != nil {
		return "", domain.NewFetchError(domain.StageDownload, pageURL, fmt.Errorf("failed to create request: %w", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Referer", pageURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", domain.NewFetchError(domain.StageDownload, pageURL, fmt.Errorf("failed to fetch video: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", domain.NewFetchError(domain.StageDownload, pageURL,
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body := &readErrRecorder{r: resp.Body}
	videoPath, err := f.store.WriteVideo(outputDir, filename, body)
	if err != nil {
		stage := domain.StageWriteVideo
		if body.err != nil {
			stage = domain.StageDownload
		}
		return "", domain.NewFetchError(stage, pageURL, err)
	}

	return videoPath, nil
}

// readErrRecorder remembers read failures so a broken connection is not
// reported as a disk error
type readErrRecorder struct {
	r   io.Reader
	err error
}

func (rr *readErrRecorder) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		rr.err = err
	}
	return n, err
}
