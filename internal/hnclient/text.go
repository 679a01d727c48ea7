package hnclient

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// PlainText renders an HN HTML fragment (story_text) as plain text.
// Paragraph breaks are kept as blank lines; links keep their text.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	doc.Find("p").BeforeHtml("\n\n")
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("pre").Each(func(_ int, s *goquery.Selection) {
		s.BeforeHtml("\n")
		s.AfterHtml("\n")
	})

	text := strings.ReplaceAll(doc.Text(), "\r\n", "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
