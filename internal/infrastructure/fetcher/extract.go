package fetcher

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var urlDateExpr = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)

// canonicalURL prefers the og:url meta tag the source reports over the probed
// URL; the canonical URL is authoritative for dating the release.
func canonicalURL(doc *goquery.Document, fallback string) string {
	if content, ok := doc.Find(`meta[property="og:url"]`).First().Attr("content"); ok && content != "" {
		return content
	}
	return fallback
}

// dateFromURL pulls the embedded 8-digit date out of a release URL.
// Returns zero when no date is present or the digits are not a real date.
func dateFromURL(url string) time.Time {
	m := urlDateExpr.FindStringSubmatch(url)
	if m == nil {
		return time.Time{}
	}
	parsed, err := time.ParseInLocation(urlDateLayout, m[0], time.UTC)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func extractStatement(doc *goquery.Document) string {
	article := doc.Find("div#article").First()
	if article.Length() == 0 {
		return ""
	}
	// Voting rosters and related-link blocks are boilerplate.
	article.Find("ul.list-unstyled").Remove()
	return cleanText(article.Text())
}

func extractMinutes(doc *goquery.Document) string {
	article := doc.Find("div#article").First()
	if article.Length() == 0 {
		return ""
	}
	article.Find(`a[href^="#fn"]`).Remove()
	article.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.EqualFold(strings.TrimSpace(s.Text()), "return to text")
	}).Remove()
	return cleanText(article.Text())
}

func extractProjection(doc *goquery.Document) string {
	content := doc.Find("div#content > .row:nth-of-type(2) .col-xs-12.col-sm-8.col-md-8").First()
	return cleanText(content.Text())
}

func extractImplementation(doc *goquery.Document) string {
	content := doc.Find("div#content > .row:nth-of-type(3) .col-xs-12").First()
	return cleanText(content.Text())
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
