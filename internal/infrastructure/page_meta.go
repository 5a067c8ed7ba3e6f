package infrastructure

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractPageMeta reads og:title and og:description from a rendered HTML
// document. Missing tags yield empty strings.
func ExtractPageMeta(html string) (title, description string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	title, _ = doc.Find(`meta[property="og:title"]`).First().Attr("content")
	description, _ = doc.Find(`meta[property="og:description"]`).First().Attr("content")
	return title, description, nil
}
