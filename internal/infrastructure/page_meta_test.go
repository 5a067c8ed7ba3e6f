package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPageMeta(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		title       string
		description string
	}{
		{
			name: "both tags",
			html: `<html><head>
				<meta property="og:title" content="Creator on Instagram">
				<meta property="og:description" content="12K likes - a reel">
				</head><body><video src="https://cdn.example.com/v.mp4"></video></body></html>`,
			title:       "Creator on Instagram",
			description: "12K likes - a reel",
		},
		{
			name:        "no tags",
			html:        `<html><head><title>x</title></head><body></body></html>`,
			title:       "",
			description: "",
		},
		{
			name: "first tag wins",
			html: `<html><head>
				<meta property="og:title" content="first">
				<meta property="og:title" content="second">
				</head></html>`,
			title:       "first",
			description: "",
		},
		{
			name:        "name attribute is not og property",
			html:        `<html><head><meta name="og:title" content="wrong"></head></html>`,
			title:       "",
			description: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, description, err := ExtractPageMeta(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.description, description)
		})
	}
}
