// Package analyzer inspects the page layouts in use on a connected site and
// turns what it finds into a custom page-layout mapping file.
package analyzer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pemistahl/lingua-go"

	"github.com/sitetransform/layoutmap/models"
	"github.com/sitetransform/layoutmap/pkg/storage"
)

// Source supplies the layout inventory and rendered layout pages. A
// connected *site.Site satisfies it.
type Source interface {
	PageLayouts(ctx context.Context) ([]models.PageLayout, error)
	LayoutPage(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Analyzer accumulates an internal model of every layout it inspects.
// AnalyseAll populates the model; GenerateMappingFile serializes it.
type Analyzer struct {
	source   Source
	siteURL  string
	store    *storage.Storage
	detector lingua.LanguageDetector
	layouts  []models.AnalyzedLayout
}

// detectionLanguages is the candidate set for per-layout language
// detection. Small on purpose: lingua loads a model per language.
var detectionLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Italian,
	lingua.Japanese,
}

func New(source Source, siteURL string) *Analyzer {
	return &Analyzer{
		source:  source,
		siteURL: siteURL,
		store:   &storage.Storage{},
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectionLanguages...).
			Build(),
	}
}

// AnalyseAll fetches every layout's rendered page sequentially and builds
// the internal model. Any fetch or parse error aborts the analysis; there
// is no partial mapping output.
func (a *Analyzer) AnalyseAll(ctx context.Context) error {
	layouts, err := a.source.PageLayouts(ctx)
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		return fmt.Errorf("site reports no page layouts in use")
	}

	a.layouts = a.layouts[:0]
	for _, layout := range layouts {
		doc, err := a.source.LayoutPage(ctx, layout.PageURL)
		if err != nil {
			return fmt.Errorf("failed to fetch layout %q: %w", layout.Name, err)
		}

		analyzed, err := a.analyzeLayout(layout, doc)
		if err != nil {
			return fmt.Errorf("failed to analyze layout %q: %w", layout.Name, err)
		}
		a.layouts = append(a.layouts, analyzed)
	}

	return nil
}

// Layouts returns the accumulated model. Empty before AnalyseAll.
func (a *Analyzer) Layouts() []models.AnalyzedLayout {
	return a.layouts
}

// GenerateMappingFile serializes the accumulated model into a mapping
// document at folder/filename, replacing any existing file.
func (a *Analyzer) GenerateMappingFile(folder, filename string) error {
	if len(a.layouts) == 0 {
		return fmt.Errorf("no analyzed layouts; run AnalyseAll first")
	}

	doc := models.BuildPageLayoutMapping(a.siteURL, a.layouts)
	data, err := doc.Bytes()
	if err != nil {
		return err
	}

	return a.store.SaveFile(filepath.Join(folder, filename), data)
}

func (a *Analyzer) analyzeLayout(layout models.PageLayout, doc *goquery.Document) (models.AnalyzedLayout, error) {
	zones := extractZones(doc)
	if len(zones) == 0 {
		return models.AnalyzedLayout{}, fmt.Errorf("no zones found in rendered page")
	}

	analyzed := models.AnalyzedLayout{
		Layout: layout,
		Zones:  zones,
	}

	if header := headerZone(doc); header != nil {
		analyzed.Header = header
	}

	analyzed.MainZone = mainContentZone(doc, layout.PageURL, zones)

	if lang, ok := a.detector.DetectLanguageOf(zoneText(doc)); ok {
		analyzed.Language = isoCode(lang)
	}

	return analyzed, nil
}

func isoCode(lang lingua.Language) string {
	code := lang.IsoCode639_1().String()
	if len(code) != 2 {
		return ""
	}
	return strings.ToLower(code)
}
