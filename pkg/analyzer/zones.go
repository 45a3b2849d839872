package analyzer

import (
	"bufio"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/sitetransform/layoutmap/models"
)

// extractZones walks the rendered page for layout zone placeholders.
// Platform-rendered pages annotate zones with data-layout-zone; pages that
// lost the annotation fall back to semantic landmark elements.
func extractZones(doc *goquery.Document) []models.Zone {
	var zones []models.Zone

	doc.Find("[data-layout-zone]").Each(func(i int, s *goquery.Selection) {
		name, _ := s.Attr("data-layout-zone")
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		zones = append(zones, models.Zone{
			Name:     name,
			Order:    i + 1,
			WebParts: extractWebParts(s),
		})
	})

	if len(zones) > 0 {
		return zones
	}

	// Fallback: treat semantic landmarks as zones.
	order := 0
	doc.Find("header,main,aside,footer").Each(func(i int, s *goquery.Selection) {
		order++
		zones = append(zones, models.Zone{
			Name:     goquery.NodeName(s),
			Order:    order,
			WebParts: extractWebParts(s),
		})
	})

	return zones
}

// extractWebParts collects web part instances placed inside a zone.
func extractWebParts(zone *goquery.Selection) []models.WebPartRef {
	var parts []models.WebPartRef

	zone.Find("[data-webpart-type]").Each(func(i int, s *goquery.Selection) {
		wpType, _ := s.Attr("data-webpart-type")
		wpType = strings.TrimSpace(wpType)
		if wpType == "" {
			return
		}

		title, _ := s.Attr("data-webpart-title")
		if title == "" {
			title = normalizeText(s.Find("h1,h2,h3").First().Text())
		}

		parts = append(parts, models.WebPartRef{
			Type:  wpType,
			Title: title,
		})
	})

	return parts
}

// headerZone returns the page header region if the layout renders one above
// its zones.
func headerZone(doc *goquery.Document) *models.Zone {
	sel := doc.Find(`[data-layout-region="header"]`).First()
	if sel.Length() == 0 {
		return nil
	}

	name, _ := sel.Attr("data-layout-region")
	return &models.Zone{
		Name:     name,
		WebParts: extractWebParts(sel),
	}
}

// mainContentZone identifies which zone carries the primary article
// content. Readability distills the page; the zone whose text best overlaps
// the distilled article wins. When readability finds nothing, the zone with
// the most text is used.
func mainContentZone(doc *goquery.Document, pageURL string, zones []models.Zone) string {
	articleWords := readabilityWords(doc, pageURL)

	best := ""
	bestScore := 0.0
	for _, z := range zones {
		text := normalizeText(zoneSelection(doc, z.Name).Text())
		words := strings.Fields(text)
		if len(words) == 0 {
			continue
		}

		var score float64
		if len(articleWords) > 0 {
			for _, w := range words {
				if _, ok := articleWords[w]; ok {
					score++
				}
			}
		} else {
			score = float64(len(words))
		}

		if score > bestScore {
			bestScore = score
			best = z.Name
		}
	}

	return best
}

func zoneSelection(doc *goquery.Document, name string) *goquery.Selection {
	sel := doc.Find(`[data-layout-zone="` + name + `"]`)
	if sel.Length() > 0 {
		return sel
	}
	return doc.Find(name)
}

// readabilityWords distills the page and returns the word set of the main
// article content. Empty map when readability cannot find an article.
func readabilityWords(doc *goquery.Document, pageURL string) map[string]struct{} {
	html, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = &url.URL{}
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil || article.TextContent == "" {
		return nil
	}

	words := make(map[string]struct{})
	for _, w := range strings.Fields(article.TextContent) {
		words[w] = struct{}{}
	}
	return words
}

// zoneText concatenates readable text from all zones for language
// detection.
func zoneText(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("[data-layout-zone]").Each(func(i int, s *goquery.Selection) {
		sb.WriteString(normalizeText(s.Text()))
		sb.WriteString(" ")
	})
	if sb.Len() == 0 {
		return normalizeText(doc.Find("body").Text())
	}
	return strings.TrimSpace(sb.String())
}

// normalizeText cleans up a string by trimming space and removing excess
// newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
