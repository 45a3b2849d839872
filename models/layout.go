package models

// PageLayout describes one publishing page layout discovered on a site.
// JSON tags match the site's layout listing endpoint; YAML tags serve the
// inspect command's console output.
type PageLayout struct {
	Name    string `json:"name" yaml:"name"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	PageURL string `json:"page_url" yaml:"page_url"`
}

// AnalyzedLayout is the result of inspecting one layout's rendered page.
type AnalyzedLayout struct {
	Layout PageLayout
	Zones  []Zone
	// Header captures the page header region, if one was found above the
	// first zone.
	Header *Zone
	// MainZone is the name of the zone readability identified as holding
	// the primary article content, if any.
	MainZone string
	// Language is the ISO 639-1 code of the dominant content language,
	// empty when detection was inconclusive.
	Language string
}

// Zone is a named placeholder region within a page layout.
type Zone struct {
	Name     string
	Order    int
	WebParts []WebPartRef
}

// WebPartRef identifies a web part instance placed inside a zone.
type WebPartRef struct {
	Type  string
	Title string
}
