package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/reel-extract-go/internal/domain"
)

func TestReporter_Report(t *testing.T) {
	var out bytes.Buffer
	uploader := &domain.UploaderConfig{
		Dir:      "multi-uploader",
		StartCmd: "npm run web",
		URL:      "http://localhost:3000",
	}

	NewReporter(&out, uploader, "multi-uploader/videos").Report([]domain.DownloadResult{
		{Filename: "reel1.mp4"},
		{Filename: "reel2.mp4"},
	})

	text := out.String()
	assert.Contains(t, text, "UPLOAD INSTRUCTIONS")
	assert.Contains(t, text, "Downloaded 2 video(s) successfully!")
	assert.Contains(t, text, "   cd multi-uploader\n")
	assert.Contains(t, text, "   npm run web\n")
	assert.Contains(t, text, "Open your browser to: http://localhost:3000")
	assert.Contains(t, text, "Downloaded videos are in: multi-uploader/videos/\n")
}

func TestReporter_QuotesUploaderDir(t *testing.T) {
	var out bytes.Buffer
	uploader := &domain.UploaderConfig{Dir: "/home/me/My Uploader", StartCmd: "npm run web", URL: "http://localhost:3000"}

	NewReporter(&out, uploader, "/home/me/My Uploader/videos/").Report([]domain.DownloadResult{{Filename: "a.mp4"}})

	assert.Contains(t, out.String(), "cd '/home/me/My Uploader'")
	assert.Contains(t, out.String(), "Navigate to the My Uploader directory")
	assert.Contains(t, out.String(), "Downloaded videos are in: /home/me/My Uploader/videos/\n")
}

func TestReporter_NothingForEmptyResults(t *testing.T) {
	var out bytes.Buffer
	NewReporter(&out, &domain.UploaderConfig{}, "videos").Report(nil)
	assert.Empty(t, out.String())
}
