package domain

import "context"

// ReelFetcher downloads the video behind a reel page
type ReelFetcher interface {
	// Fetch renders url, downloads its video into outputDir/filename and writes
	// metadata next to it. metadata may be nil, and is enriched in place with
	// page-extracted fields when available.
	Fetch(ctx context.Context, url, outputDir, filename string, metadata *Metadata) (string, error)
}

// PageInfo is what a rendered reel page yields
type PageInfo struct {
	VideoURL    string
	Title       string
	Description string
	MetaErr     error // non-nil when og: metadata could not be read
}

// PageResolver renders a page in a browser and reads the video source from it
type PageResolver interface {
	Resolve(ctx context.Context, url string) (*PageInfo, error)
}

// RowSource yields input rows in file order. Next returns io.EOF after the
// last row and a *RowParseError for a record that could not be read.
type RowSource interface {
	Next() (InputRow, error)
	Close() error
}
