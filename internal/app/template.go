package app

import (
	"fmt"
	"os"
)

// TemplateCSV is the example input written by --create-template. The tags
// columns are deliberately left unquoted; the CSV reader joins them back.
const TemplateCSV = `url,filename,title,description,tags
https://www.instagram.com/reel/DLcDq1oIW3q/?igsh=Y2hnaXh2Yjc5cHF1,reel1.mp4,Amazing Reel #1,Check out this amazing content!,shorts,viral,funny
https://www.instagram.com/reel/EXAMPLE1/?igsh=example1,reel2.mp4,Cool Video,Another great video,reels,instagram
https://www.instagram.com/reel/EXAMPLE2/?igsh=example2,reel3.mp4,Trending Content,Latest trending video,trending,social`

// CreateTemplate writes TemplateCSV to path, replacing any existing file
func CreateTemplate(path string) error {
	if err := os.WriteFile(path, []byte(TemplateCSV), 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
