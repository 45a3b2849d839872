package models

import (
	"encoding/xml"
	"fmt"
	"time"
)

// MappingVersion is stamped on generated custom mapping documents.
const MappingVersion = "1.0"

// PageLayoutMappingDoc is the root of a page-layout mapping file. Built-in
// exports ship a fixed document of this shape as an embedded template;
// custom exports generate one from live site analysis.
type PageLayoutMappingDoc struct {
	XMLName   xml.Name            `xml:"PageLayoutMapping"`
	Version   string              `xml:"Version,attr"`
	SiteURL   string              `xml:"SiteUrl,attr,omitempty"`
	Generated string              `xml:"Generated,attr,omitempty"`
	Layouts   []PageLayoutMapping `xml:"PageLayout"`
}

// PageLayoutMapping maps one legacy page layout to a modern page template.
type PageLayoutMapping struct {
	Name           string         `xml:"Name,attr"`
	TargetTemplate string         `xml:"TargetTemplate,attr"`
	PageHeader     string         `xml:"PageHeader,attr,omitempty"`
	Language       string         `xml:"Language,attr,omitempty"`
	Sections       []SectionMap   `xml:"Section"`
	WebParts       []WebPartEntry `xml:"WebPart"`
}

// SectionMap maps a layout zone onto a modern page section/column.
type SectionMap struct {
	Zone   string `xml:"Zone,attr"`
	Order  int    `xml:"Order,attr"`
	Column int    `xml:"Column,attr"`
	// Role marks the section carrying the primary content region.
	Role string `xml:"Role,attr,omitempty"`
}

// WebPartEntry maps a legacy web part type found in a zone to its modern
// counterpart.
type WebPartEntry struct {
	Type   string `xml:"Type,attr"`
	Zone   string `xml:"Zone,attr"`
	Target string `xml:"Target,attr"`
}

// BuildPageLayoutMapping assembles a mapping document from analyzed layouts.
func BuildPageLayoutMapping(siteURL string, layouts []AnalyzedLayout) *PageLayoutMappingDoc {
	doc := &PageLayoutMappingDoc{
		Version:   MappingVersion,
		SiteURL:   siteURL,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}

	for _, al := range layouts {
		m := PageLayoutMapping{
			Name:           al.Layout.Name,
			TargetTemplate: targetTemplateFor(al),
			Language:       al.Language,
		}
		if al.Header != nil {
			m.PageHeader = "Custom"
		} else {
			m.PageHeader = "Default"
		}

		for i, z := range al.Zones {
			sec := SectionMap{
				Zone:   z.Name,
				Order:  i + 1,
				Column: 1,
			}
			if z.Name == al.MainZone {
				sec.Role = "MainContent"
			}
			m.Sections = append(m.Sections, sec)

			for _, wp := range z.WebParts {
				m.WebParts = append(m.WebParts, WebPartEntry{
					Type:   wp.Type,
					Zone:   z.Name,
					Target: modernWebPartFor(wp.Type),
				})
			}
		}

		doc.Layouts = append(doc.Layouts, m)
	}

	return doc
}

// Bytes serializes the document as an indented UTF-8 XML file body.
func (d *PageLayoutMappingDoc) Bytes() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mapping document: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// targetTemplateFor picks a modern page template for an analyzed layout.
// Single-zone layouts collapse onto the plain Article template; anything
// with multiple zones keeps its structure via the Columns template.
func targetTemplateFor(al AnalyzedLayout) string {
	if len(al.Zones) <= 1 {
		return "Article"
	}
	return "Columns"
}

// modernWebPartFor maps well-known legacy web part types to their modern
// equivalents. Unknown types fall back to a generic content embed.
func modernWebPartFor(legacyType string) string {
	switch legacyType {
	case "ContentEditorWebPart", "ScriptEditorWebPart":
		return "Text"
	case "ImageWebPart", "PictureLibrarySlideshowWebPart":
		return "Image"
	case "ListViewWebPart", "XsltListViewWebPart":
		return "List"
	case "ContentBySearchWebPart", "ContentByQueryWebPart":
		return "HighlightedContent"
	case "SummaryLinkWebPart", "TableOfContentsWebPart":
		return "QuickLinks"
	case "MediaWebPart":
		return "Media"
	default:
		return "ContentEmbed"
	}
}
