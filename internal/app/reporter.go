package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yourusername/reel-extract-go/internal/domain"
	"github.com/yourusername/reel-extract-go/internal/infrastructure"
)

const reportRule = "============================================================"

// Reporter prints the upload instructions after a batch
type Reporter struct {
	out       io.Writer
	uploader  *domain.UploaderConfig
	outputDir string
}

// NewReporter creates a new run reporter
func NewReporter(out io.Writer, uploader *domain.UploaderConfig, outputDir string) *Reporter {
	return &Reporter{
		out:       out,
		uploader:  uploader,
		outputDir: outputDir,
	}
}

// Report prints how to upload the downloaded videos. Nothing is printed for
// an empty result list.
func (r *Reporter) Report(results []domain.DownloadResult) {
	if len(results) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", reportRule)
	fmt.Fprintln(&b, "UPLOAD INSTRUCTIONS")
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "Downloaded %d video(s) successfully!\n", len(results))
	fmt.Fprintln(&b, "\nTo upload videos to YouTube:")
	fmt.Fprintf(&b, "1. Navigate to the %s directory:\n", filepath.Base(r.uploader.Dir))
	fmt.Fprintf(&b, "   cd %s\n", infrastructure.ShellQuote(r.uploader.Dir))
	fmt.Fprintln(&b, "\n2. Start the web interface:")
	fmt.Fprintf(&b, "   %s\n", r.uploader.StartCmd)
	fmt.Fprintf(&b, "\n3. Open your browser to: %s\n", r.uploader.URL)
	fmt.Fprintln(&b, "\n4. Select videos and configure upload settings")
	fmt.Fprintln(&b, "5. Upload to YouTube with custom titles, descriptions, and tags")
	fmt.Fprintf(&b, "\nDownloaded videos are in: %s/\n", strings.TrimSuffix(r.outputDir, "/"))
	fmt.Fprintln(&b, "Metadata files are saved alongside each video")
	fmt.Fprintln(&b, reportRule)

	io.WriteString(r.out, b.String())
}
