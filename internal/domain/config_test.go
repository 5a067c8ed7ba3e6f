package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "urls.csv", config.Input.CSVPath)
	assert.Equal(t, "enhanced_urls.csv", config.Input.TemplatePath)
	assert.Equal(t, "multi-uploader/videos", config.Download.OutputDir)
	assert.Equal(t, 5*time.Minute, config.Download.HTTPTimeout)
	assert.True(t, config.Browser.Headless)
	assert.Equal(t, 30*time.Second, config.Browser.NavigationTimeout)
	assert.Equal(t, 30*time.Second, config.Browser.VideoWaitTimeout)
	assert.Contains(t, config.Browser.UserAgent, "Chrome/114")
	assert.Equal(t, "multi-uploader", config.Uploader.Dir)
	assert.Equal(t, "http://localhost:3000", config.Uploader.URL)
	assert.False(t, config.History.Enabled)
	assert.False(t, config.Notification.Enabled)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Empty(t, config.Logging.LogsDir)
}
