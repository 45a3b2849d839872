package site

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// classify decides whether a site supports layout-driven publishing pages.
// The descriptor's kind wins when present; otherwise the home page HTML is
// scanned for publishing signals.
func classify(desc *Descriptor, home *goquery.Document) bool {
	switch strings.ToLower(desc.Kind) {
	case "publishing":
		return true
	case "":
		// Older tenants omit kind; fall through to signal scanning.
	default:
		return false
	}

	return publishingScore(home) >= 2.0
}

// publishingScore accumulates weighted signals that a page was rendered
// through a publishing page layout.
func publishingScore(doc *goquery.Document) float64 {
	if doc == nil {
		return 0
	}

	score := 0.0

	// Explicit layout annotation on the page itself.
	if name, ok := doc.Find(`meta[name="page-layout"]`).Attr("content"); ok && name != "" {
		score += 2.0
	}

	// Generator meta naming the publishing feature.
	if gen, ok := doc.Find(`meta[name="generator"]`).Attr("content"); ok {
		if strings.Contains(strings.ToLower(gen), "publishing") {
			score += 1.5
		}
	}

	// Zone placeholders in the rendered markup.
	if doc.Find("[data-layout-zone]").Length() > 0 {
		score += 1.5
	}

	// Layout assets served from the platform layouts path.
	doc.Find(`link[rel="stylesheet"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.Contains(href, "/_layouts/") {
			score += 0.5
			return false
		}
		return true
	})

	return score
}
