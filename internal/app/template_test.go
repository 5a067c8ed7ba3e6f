package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplate_WritesExactContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enhanced_urls.csv")

	require.NoError(t, CreateTemplate(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, TemplateCSV, string(data))
	assert.False(t, len(data) > 0 && data[len(data)-1] == '\n')
}

func TestCreateTemplate_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enhanced_urls.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer than nothing\n"), 0644))

	require.NoError(t, CreateTemplate(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, TemplateCSV, string(data))
}

func TestCreateTemplate_BadPath(t *testing.T) {
	err := CreateTemplate(filepath.Join(t.TempDir(), "missing", "t.csv"))
	assert.Error(t, err)
}

func TestTemplate_ProcessesAsInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enhanced_urls.csv")
	require.NoError(t, CreateTemplate(path))
	fetcher := &stubFetcher{}

	results := newTestProcessor(fetcher).ProcessAll(context.Background(), path, "out")

	require.Len(t, results, 3)
	assert.Equal(t, "reel1.mp4", results[0].Filename)
	assert.Equal(t, "Amazing Reel #1", results[0].Metadata.Title)
	assert.Equal(t, []string{"shorts", "viral", "funny"}, results[0].Metadata.Tags)
	assert.Equal(t, []string{"reels", "instagram"}, results[1].Metadata.Tags)
	assert.Equal(t, "https://www.instagram.com/reel/EXAMPLE2/?igsh=example2", fetcher.calls[2])
}
