// Package exporter writes mapping files to a target folder with
// skip-unless-overwrite protection. It hosts the three export branches:
// the two built-in embedded templates and the site-derived custom mapping.
package exporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sitetransform/layoutmap/pkg/storage"
	"github.com/sitetransform/layoutmap/pkg/templates"
)

// Connection is the slice of a connected site the custom branch needs.
type Connection interface {
	IsPublishingSite() bool
	SiteID() uuid.UUID
}

// CustomAnalyzer derives a site-specific mapping document. Implemented by
// *analyzer.Analyzer; tests substitute a fake.
type CustomAnalyzer interface {
	AnalyseAll(ctx context.Context) error
	GenerateMappingFile(folder, filename string) error
}

// Outcome classifies what happened to one export branch.
type Outcome string

const (
	OutcomeWritten Outcome = "written"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Result is the record of one export branch.
type Result struct {
	File    string
	Path    string
	Outcome Outcome
	Err     error
}

// Exporter holds the collaborators shared by all branches.
type Exporter struct {
	Templates templates.Loader
	Store     *storage.Storage
	// Out receives informational skip notices. Defaults to stdout.
	Out io.Writer
}

func New(loader templates.Loader) *Exporter {
	return &Exporter{
		Templates: loader,
		Store:     &storage.Storage{},
		Out:       os.Stdout,
	}
}

// ResolveFolder validates the output folder. A supplied folder must already
// exist as a directory; it is never created. An empty folder argument
// resolves to the current working directory.
func ResolveFolder(folder string) (string, error) {
	if folder == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return wd, nil
	}

	info, err := os.Stat(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("folder %s does not exist", folder)
		}
		return "", fmt.Errorf("failed to check folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("folder %s does not exist", folder)
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("failed to resolve folder %s: %w", folder, err)
	}
	return abs, nil
}

// ExportTemplate writes one built-in embedded template to folder under its
// fixed name. An existing file is skipped unless overwrite is set.
func (e *Exporter) ExportTemplate(folder, name string, overwrite bool) Result {
	res := Result{
		File: name,
		Path: filepath.Join(folder, name),
	}

	if e.Store.HasFile(res.Path) && !overwrite {
		e.skip(res.File)
		res.Outcome = OutcomeSkipped
		return res
	}

	data, err := e.Templates.LoadTemplate(name)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	if err := e.Store.SaveFile(res.Path, data); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	res.Outcome = OutcomeWritten
	return res
}

// CustomMappingFileName computes the per-site custom mapping file name.
func CustomMappingFileName(siteID uuid.UUID) string {
	return fmt.Sprintf("custompagelayoutmapping-%s.xml", siteID)
}

// ExportCustom derives a custom page-layout mapping from the connected
// site. Requires a publishing site; the existence check runs before any
// site analysis so a skip costs no network traffic.
func (e *Exporter) ExportCustom(ctx context.Context, folder string, overwrite bool, conn Connection, an CustomAnalyzer) Result {
	if !conn.IsPublishingSite() {
		return Result{
			Outcome: OutcomeFailed,
			Err:     fmt.Errorf("custom page layout mapping is only supported for publishing sites"),
		}
	}

	res := Result{
		File: CustomMappingFileName(conn.SiteID()),
	}
	res.Path = filepath.Join(folder, res.File)

	if e.Store.HasFile(res.Path) && !overwrite {
		e.skip(res.File)
		res.Outcome = OutcomeSkipped
		return res
	}

	if err := an.AnalyseAll(ctx); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	if err := an.GenerateMappingFile(folder, res.File); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	res.Outcome = OutcomeWritten
	return res
}

func (e *Exporter) skip(file string) {
	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Skipping %s: file already exists (use --overwrite to replace it)\n", file)
}
