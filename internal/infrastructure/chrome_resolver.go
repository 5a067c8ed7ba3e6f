package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/yourusername/reel-extract-go/internal/domain"
)

// videoSourceJS mirrors reading el.src on the first video element, falling
// back to currentSrc for players that use <source> children.
const videoSourceJS = `(() => {
	const v = document.querySelector('video');
	return v ? (v.src || v.currentSrc || '') : '';
})()`

// ChromeResolver implements PageResolver with a headless Chrome per call
type ChromeResolver struct {
	config *domain.BrowserConfig
	logger *zap.Logger
}

// NewChromeResolver creates a new Chrome page resolver
func NewChromeResolver(config *domain.BrowserConfig, logger *zap.Logger) *ChromeResolver {
	return &ChromeResolver{
		config: config,
		logger: logger,
	}
}

// allocatorOptions builds the Chrome launch flags
func (r *ChromeResolver) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", r.config.Headless))
	if r.config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.config.UserAgent))
	}
	if r.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.config.ExecPath))
	}
	if r.config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// Resolve launches an isolated browser, renders url and reads the video
// source and og: metadata. The browser is torn down before returning,
// whatever the outcome.
func (r *ChromeResolver) Resolve(ctx context.Context, url string) (*domain.PageInfo, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(r.logger.Sugar().Debugf))
	defer cancelBrowser()

	// The first Run starts the browser. It must get the long-lived context,
	// not one of the per-step timeouts, or the browser dies with the step.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, domain.NewFetchError(domain.StageLaunch, url, err)
	}

	if err := r.navigate(browserCtx, url); err != nil {
		return nil, domain.NewFetchError(domain.StageNavigate, url, err)
	}

	videoURL, err := r.waitForVideo(browserCtx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domain.NewFetchError(domain.StageWaitVideo, url, ctx.Err())
		}
		return nil, domain.NewFetchError(domain.StageWaitVideo, url,
			fmt.Errorf("%w: %v", domain.ErrVideoNotFound, err))
	}
	if videoURL == "" {
		return nil, domain.NewFetchError(domain.StageWaitVideo, url, domain.ErrVideoNotFound)
	}

	info := &domain.PageInfo{VideoURL: videoURL}
	info.Title, info.Description, info.MetaErr = r.readMeta(browserCtx)
	return info, nil
}

// navigate loads url and blocks until the main frame reports networkIdle
func (r *ChromeResolver) navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, r.config.NavigationTimeout)
	defer cancel()

	var (
		mu       sync.Mutex
		frameID  cdp.FrameID
		loaderID cdp.LoaderID
		once     sync.Once
		idle     = make(chan struct{})
	)

	chromedp.ListenTarget(navCtx, func(ev interface{}) {
		e, ok := ev.(*page.EventLifecycleEvent)
		if !ok {
			return
		}

		mu.Lock()
		defer mu.Unlock()

		switch e.Name {
		case "init":
			// the first init after enabling lifecycle events is the main frame
			if frameID == "" {
				frameID = e.FrameID
			}
			if e.FrameID == frameID {
				loaderID = e.LoaderID
			}
		case "networkIdle":
			if e.FrameID == frameID && e.LoaderID == loaderID && loaderID != "" {
				once.Do(func() { close(idle) })
			}
		}
	})

	if err := chromedp.Run(navCtx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(url),
	); err != nil {
		return err
	}

	select {
	case <-idle:
		return nil
	case <-navCtx.Done():
		return fmt.Errorf("waiting for network idle: %w", navCtx.Err())
	}
}

// waitForVideo waits for a video element and returns its resolved source URL
func (r *ChromeResolver) waitForVideo(ctx context.Context) (string, error) {
	waitCtx, cancel := context.WithTimeout(ctx, r.config.VideoWaitTimeout)
	defer cancel()

	var videoURL string
	err := chromedp.Run(waitCtx,
		chromedp.WaitReady("video", chromedp.ByQuery),
		chromedp.Evaluate(videoSourceJS, &videoURL),
	)
	return videoURL, err
}

// readMeta snapshots the rendered document and reads its og: tags
func (r *ChromeResolver) readMeta(ctx context.Context) (string, string, error) {
	metaCtx, cancel := context.WithTimeout(ctx, r.config.VideoWaitTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(metaCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", "", fmt.Errorf("failed to read document: %w", err)
	}
	return ExtractPageMeta(html)
}
