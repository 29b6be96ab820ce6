package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractTitle returns the whitespace-collapsed text of the first <h1> in
// an HTML document, or "" when there is none.
func ExtractTitle(doc string) string {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(d.Find("h1").First().Text()), " ")
}
